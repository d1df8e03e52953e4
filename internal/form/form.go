// internal/form/form.go
//
// Contact form: one live form instance.
//
// Context
//   A Form owns the FieldState, the visible ErrorSet, and the last
//   SubmittedValues of one user's form.  It moves between three states:
//
//     Editing          initial; values change, errors update per change.
//     Rejected-submit  transient; a submit with errors leaves the form in
//                      Editing with every field's errors visible.
//     Submitted        a submit without errors stores the snapshot, resets
//                      the inputs, and returns to Editing while the snapshot
//                      stays on display.
//
//   Visible errors are limited to touched fields until a submit has been
//   attempted, after which every field is in scope until the next accepted
//   submit.  Within that scope the errors are always recomputed from the
//   current values.
//
// Concurrency
//   Every event runs to completion under mu, so one change's validation is
//   observable before the next event is applied.
//
//------------------------------------------------------------------------------

package form

import "sync"

// Snapshot is a read-only copy of a Form for rendering or encoding.
type Snapshot struct {
	Fields    FieldState       `json:"fields"`
	Errors    ErrorSet         `json:"errors"`
	Submitted *SubmittedValues `json:"submitted,omitempty"`
}

// Form is safe for concurrent use.
type Form struct {
	def  *FormDef
	opts Options

	mu        sync.Mutex
	fields    FieldState
	touched   map[Field]bool
	attempted bool
	errors    ErrorSet
	submitted *SubmittedValues
}

// New returns a Form in its initial Editing state.
func New(def *FormDef, opts Options) *Form {
	return &Form{
		def:     def,
		opts:    opts,
		touched: make(map[Field]bool, len(AllFields)),
		errors:  ErrorSet{},
	}
}

// Change applies one input change and returns the visible errors.
func (f *Form) Change(field Field, value string) ErrorSet {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fields = Apply(f.fields, Change(field, value), f.opts)
	f.touched[field] = true
	f.revalidate()
	return f.errors.Clone()
}

// Submit validates every field and commits the values when none fail.
func (f *Form) Submit() Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submit()
}

// SubmitWith applies posted as change events, in canonical field order, and
// submits, all under one lock.  A concurrent Change or SubmitWith on the
// same form cannot interleave with it.
func (f *Form) SubmitWith(posted map[Field]string) Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, fld := range AllFields {
		if v, ok := posted[fld]; ok {
			f.fields = Apply(f.fields, Change(fld, v), f.opts)
			f.touched[fld] = true
		}
	}
	return f.submit()
}

// submit validates and commits the current fields.  Caller holds mu.
func (f *Form) submit() Outcome {
	f.attempted = true
	all := Validate(f.def, f.fields)
	out := Submit(f.fields, all)
	if !out.Accepted {
		f.errors = all
		out.Errors = all.Clone()
		return out
	}

	f.submitted = out.Submitted
	f.fields = out.Fields
	f.touched = make(map[Field]bool, len(AllFields))
	f.attempted = false
	f.errors = ErrorSet{}

	snap := *out.Submitted
	out.Submitted = &snap
	return out
}

// Snapshot returns a copy of the current state.
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := Snapshot{Fields: f.fields, Errors: f.errors.Clone()}
	if f.submitted != nil {
		sub := *f.submitted
		s.Submitted = &sub
	}
	return s
}

// revalidate recomputes the visible errors.  Caller holds mu.
func (f *Form) revalidate() {
	all := Validate(f.def, f.fields)
	if f.attempted {
		f.errors = all
		return
	}
	f.errors = all.Only(f.touched)
}
