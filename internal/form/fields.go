// internal/form/fields.go
//
// Contact form: field state and the reducer that mutates it.
//
// Context
//   FieldState is a plain value.  Every mutation goes through Apply, which
//   maps (FieldState, Event) to a new FieldState without side effects, so the
//   validator and submission handler can be exercised without a browser or
//   an HTTP round-trip.
//
//------------------------------------------------------------------------------

package form

import "strings"

// Field names one of the four contact inputs.
type Field string

const (
	FirstName Field = "firstName"
	LastName  Field = "lastName"
	Email     Field = "email"
	Message   Field = "message"
)

// AllFields lists every Field in canonical order.
var AllFields = []Field{FirstName, LastName, Email, Message}

// ParseField maps a submission key to a Field.
func ParseField(s string) (Field, bool) {
	for _, f := range AllFields {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// FieldState holds the live values of the four inputs.  The zero value is
// the initial (empty) form.
type FieldState struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Message   string `json:"message"`
}

// Get returns the value of f.  Unknown fields read as "".
func (s FieldState) Get(f Field) string {
	switch f {
	case FirstName:
		return s.FirstName
	case LastName:
		return s.LastName
	case Email:
		return s.Email
	case Message:
		return s.Message
	}
	return ""
}

// With returns a copy of s with f set to v.  Unknown fields leave s as is.
func (s FieldState) With(f Field, v string) FieldState {
	switch f {
	case FirstName:
		s.FirstName = v
	case LastName:
		s.LastName = v
	case Email:
		s.Email = v
	case Message:
		s.Message = v
	}
	return s
}

// SubmittedValues is the snapshot taken at an accepted submission.
type SubmittedValues FieldState

// Get returns the submitted value of f.
func (v SubmittedValues) Get(f Field) string { return FieldState(v).Get(f) }

// -----------------------------------------------------------------------------
// Events
// -----------------------------------------------------------------------------

// EventKind enumerates the mutations Apply understands.
type EventKind int

const (
	EventChange EventKind = iota // one input changed
	EventReset                   // back to the initial state
)

// Event is one user-driven mutation.
type Event struct {
	Kind  EventKind
	Field Field
	Value string
}

// Change builds an EventChange for f.
func Change(f Field, value string) Event {
	return Event{Kind: EventChange, Field: f, Value: value}
}

// Reset builds an EventReset.
func Reset() Event { return Event{Kind: EventReset} }

// Options controls input normalisation.
type Options struct {
	// TrimSpace strips leading and trailing whitespace from every value
	// before it reaches FieldState.  Validation and SubmittedValues then see
	// the trimmed text.
	TrimSpace bool
}

// Apply is the reducer: it returns the FieldState that results from e.
func Apply(s FieldState, e Event, opts Options) FieldState {
	switch e.Kind {
	case EventChange:
		v := e.Value
		if opts.TrimSpace {
			v = strings.TrimSpace(v)
		}
		return s.With(e.Field, v)
	case EventReset:
		return FieldState{}
	}
	return s
}
