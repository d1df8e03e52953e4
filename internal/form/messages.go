package form

import "fmt"

// Default messages name the field by its submission key, matching the text
// users of the form already see.

func requiredMsg(f *FieldDef) string {
	if f.Messages.Required != "" {
		return f.Messages.Required
	}
	return fmt.Sprintf("%s is a required field", f.Name)
}

func minLengthMsg(f *FieldDef) string {
	if f.Messages.MinLength != "" {
		return f.Messages.MinLength
	}
	return fmt.Sprintf("%s must have at least %d characters", f.Name, f.MinLength)
}

func maxLengthMsg(f *FieldDef) string {
	if f.Messages.MaxLength != "" {
		return f.Messages.MaxLength
	}
	return fmt.Sprintf("%s must have at most %d characters", f.Name, f.MaxLength)
}

func formatMsg(f *FieldDef) string {
	if f.Messages.Format != "" {
		return f.Messages.Format
	}
	return fmt.Sprintf("%s must be a valid %s address", f.Name, f.Format)
}

func patternMsg(f *FieldDef) string {
	if f.Messages.Pattern != "" {
		return f.Messages.Pattern
	}
	return fmt.Sprintf("%s must match the following: %q", f.Name, f.Pattern)
}
