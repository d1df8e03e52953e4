// internal/form/submit.go
//
// Contact form: submission gate.
//
// Context
//   Submit decides whether a submit attempt is committed.  It is pure: the
//   caller owns the state and applies the Outcome.  A rejected attempt
//   changes nothing; an accepted one produces a fresh SubmittedValues
//   snapshot and an empty FieldState.
//
//------------------------------------------------------------------------------

package form

// Outcome is the result of one submit attempt.
type Outcome struct {
	Accepted  bool
	Submitted *SubmittedValues // nil unless Accepted
	Fields    FieldState       // state to continue editing with
	Errors    ErrorSet         // errors that blocked the attempt
}

// Submit gates fields on errs.  errs must be the full ErrorSet for fields.
func Submit(fields FieldState, errs ErrorSet) Outcome {
	if errs.Len() > 0 {
		return Outcome{Fields: fields, Errors: errs}
	}
	snap := SubmittedValues(fields)
	return Outcome{
		Accepted:  true,
		Submitted: &snap,
		Fields:    Apply(fields, Reset(), Options{}),
		Errors:    ErrorSet{},
	}
}
