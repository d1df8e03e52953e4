// internal/form/validate.go
//
// Contact form: validation engine.
//
// Context
//   Validate is a pure function from FieldState to ErrorSet.  Each field is
//   checked against its FieldDef; every failing field contributes exactly one
//   message and passing fields contribute nothing, so absence means valid.
//
// Workflow
//   •  Required is checked first.  An empty required field reports the
//      required message and no other rule runs for it.
//   •  An empty optional field is valid.
//   •  Otherwise length, format, and pattern run in that order and the first
//      failure wins.
//
// Failures are data, never a returned error.  Callers that need an error
// value (HTTP handlers, logging) use ErrorSet.Err and IsValidationError.
//
//------------------------------------------------------------------------------

package form

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// formatCheck runs format rules through go-playground/validator.  The email
// grammar there requires a dotted domain (local@domain.tld).
var formatCheck = validator.New()

// -----------------------------------------------------------------------------
// ErrorSet
// -----------------------------------------------------------------------------

// ErrorSet maps a failing field to its user-facing message.
type ErrorSet map[Field]string

// Has reports whether f failed validation.
func (e ErrorSet) Has(f Field) bool {
	_, ok := e[f]
	return ok
}

// Len is the number of failing fields.
func (e ErrorSet) Len() int { return len(e) }

// Fields returns the failing fields in canonical order.
func (e ErrorSet) Fields() []Field {
	out := make([]Field, 0, len(e))
	for _, f := range AllFields {
		if e.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// Only returns the subset of e whose fields are in scope.
func (e ErrorSet) Only(scope map[Field]bool) ErrorSet {
	out := make(ErrorSet, len(e))
	for f, msg := range e {
		if scope[f] {
			out[f] = msg
		}
	}
	return out
}

// Clone returns an independent copy of e.
func (e ErrorSet) Clone() ErrorSet {
	out := make(ErrorSet, len(e))
	for f, msg := range e {
		out[f] = msg
	}
	return out
}

// Err returns nil when e is empty, otherwise an error recognised by
// IsValidationError.
func (e ErrorSet) Err() error {
	if len(e) == 0 {
		return nil
	}
	return validationError{Errors: e.Clone()}
}

// validationError wraps an ErrorSet and satisfies the error interface.
type validationError struct{ Errors ErrorSet }

func (ve validationError) Error() string {
	names := make([]string, 0, len(ve.Errors))
	for _, f := range ve.Errors.Fields() {
		names = append(names, string(f))
	}
	return "form validation failed: " + strings.Join(names, ", ")
}

// IsValidationError reports whether err came from ErrorSet.Err.
func IsValidationError(err error) bool {
	var ve validationError
	return errors.As(err, &ve)
}

// ValidationErrors extracts the ErrorSet carried by err, if any.
func ValidationErrors(err error) (ErrorSet, bool) {
	var ve validationError
	if !errors.As(err, &ve) {
		return nil, false
	}
	return ve.Errors, true
}

// -----------------------------------------------------------------------------
// Public API
// -----------------------------------------------------------------------------

// Validate applies every FieldDef in fd to s.
func Validate(fd *FormDef, s FieldState) ErrorSet {
	errs := make(ErrorSet)
	for i := range fd.Fields {
		f := &fd.Fields[i]
		if msg := checkField(f, s.Get(f.Name)); msg != "" {
			errs[f.Name] = msg
		}
	}
	return errs
}

// checkField returns the message for the first failing rule, or "".
func checkField(f *FieldDef, val string) string {
	if val == "" {
		if f.Required {
			return requiredMsg(f)
		}
		return ""
	}

	n := utf8.RuneCountInString(val)
	if f.MinLength > 0 && n < f.MinLength {
		return minLengthMsg(f)
	}
	if f.MaxLength > 0 && n > f.MaxLength {
		return maxLengthMsg(f)
	}

	switch f.Format {
	case "email":
		if formatCheck.Var(val, "email") != nil {
			return formatMsg(f)
		}
	}

	if f.re != nil && !f.re.MatchString(val) {
		return patternMsg(f)
	}
	return ""
}
