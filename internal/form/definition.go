// internal/form/definition.go
//
// Contact form: YAML rule table loader.
//
// Context
//   The contact form is declared in a YAML file.  The file names the form,
//   its title, and one entry per input carrying the label, the input type,
//   and the validation rules (required, minlength, maxlength, format, and
//   pattern).  The validator consumes this table uniformly, so every rule
//   that can fail is visible in one place instead of hiding behind library
//   defaults.
//
// Workflow
//   •  The built-in definition lives in forms/contact.yaml and is embedded
//      into the binary.  Default returns it, parsed once.
//   •  LoadFormDef parses an operator-supplied YAML file with the same
//      schema.  ParseFormDef does the work for both.
//   •  validateFormDef enforces structural rules: every known field is
//      declared exactly once, types and formats are recognised, regexes
//      compile, and length bounds are sane.
//
// Style
//   Full sentences, two spaces after periods, Oxford commas.
//
//------------------------------------------------------------------------------

package form

import (
	"embed"
	"fmt"
	"os"
	"regexp"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed forms/contact.yaml
var builtin embed.FS

const builtinPath = "forms/contact.yaml"

// -----------------------------------------------------------------------------
// Data structures
// -----------------------------------------------------------------------------

// FormDef represents the contact form definition.  Fields are kept in
// declaration order; that order is the canonical order for rendering and
// for reporting errors.
type FormDef struct {
	ID     string     `yaml:"id"`     // Form identifier, e.g. “contact”.
	Title  string     `yaml:"title"`  // Header text.
	Submit string     `yaml:"submit"` // Button caption, optional.
	Fields []FieldDef `yaml:"fields"` // One entry per known Field.
}

// FieldDef describes a single input control and its rules.
type FieldDef struct {
	Name        Field    `yaml:"name"`        // One of the known Field names.
	Label       string   `yaml:"label"`       // Human-readable label.
	Type        string   `yaml:"type"`        // text, email, or textarea.
	Placeholder string   `yaml:"placeholder"` // Optional placeholder text.
	Required    bool     `yaml:"required"`    // Empty value fails.
	MinLength   int      `yaml:"minlength"`   // ≥ 0, 0 means unset.
	MaxLength   int      `yaml:"maxlength"`   // ≥ 0, 0 means unset.
	Format      string   `yaml:"format"`      // "" or "email".
	Pattern     string   `yaml:"pattern"`     // Regex the value must match.
	Messages    Messages `yaml:"messages"`    // Overrides for default text.

	re *regexp.Regexp // compiled Pattern
}

// Messages overrides the default error text per rule.  Empty strings fall
// back to the defaults in messages.go.
type Messages struct {
	Required  string `yaml:"required"`
	MinLength string `yaml:"minlength"`
	MaxLength string `yaml:"maxlength"`
	Format    string `yaml:"format"`
	Pattern   string `yaml:"pattern"`
}

// Field returns the definition for name.  The boolean is false when the
// form does not declare it.
func (fd *FormDef) Field(name Field) (FieldDef, bool) {
	for _, f := range fd.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDef{}, false
}

// -----------------------------------------------------------------------------
// Loader API
// -----------------------------------------------------------------------------

var (
	defaultOnce sync.Once
	defaultDef  *FormDef
)

// Default returns the embedded contact form definition.  It panics if the
// embedded YAML is malformed, which only a broken build can cause.
func Default() *FormDef {
	defaultOnce.Do(func() {
		raw, err := builtin.ReadFile(builtinPath)
		if err != nil {
			panic("form: embedded definition missing: " + err.Error())
		}
		fd, err := ParseFormDef(raw, builtinPath)
		if err != nil {
			panic("form: embedded definition invalid: " + err.Error())
		}
		defaultDef = fd
	})
	return defaultDef
}

// LoadFormDef parses one YAML file and validates its structure.  An empty
// path yields the embedded definition.
func LoadFormDef(path string) (*FormDef, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read form file %s: %w", path, err)
	}
	return ParseFormDef(raw, path)
}

// ParseFormDef decodes raw YAML and validates it.  source is only used in
// error messages.
func ParseFormDef(raw []byte, source string) (*FormDef, error) {
	var fd FormDef
	if err := yaml.Unmarshal(raw, &fd); err != nil {
		return nil, fmt.Errorf("parse YAML %s: %w", source, err)
	}
	if err := validateFormDef(&fd, source); err != nil {
		return nil, err
	}
	return &fd, nil
}

// -----------------------------------------------------------------------------
// Validation helpers
// -----------------------------------------------------------------------------

var (
	knownTypes   = map[string]bool{"text": true, "email": true, "textarea": true}
	knownFormats = map[string]bool{"": true, "email": true}
)

// validateFormDef enforces structural rules that YAML tags cannot express.
func validateFormDef(fd *FormDef, path string) error {
	if fd.ID == "" {
		return fmt.Errorf("form definition %s: missing required 'id'", path)
	}
	if len(fd.Fields) == 0 {
		return fmt.Errorf("form definition %s: must have 'fields'", path)
	}

	seen := make(map[Field]struct{}, len(fd.Fields))
	for i := range fd.Fields {
		f := &fd.Fields[i]
		if err := validateField(f, path); err != nil {
			return err
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("form %s: duplicate field name '%s'", path, f.Name)
		}
		seen[f.Name] = struct{}{}
	}

	for _, name := range AllFields {
		if _, ok := seen[name]; !ok {
			return fmt.Errorf("form %s: field '%s' not declared", path, name)
		}
	}
	return nil
}

// validateField confirms that essential attributes are present and sane, and
// compiles the pattern.
func validateField(f *FieldDef, path string) error {
	if f.Name == "" {
		return fmt.Errorf("form %s: field missing 'name'", path)
	}
	if _, ok := ParseField(string(f.Name)); !ok {
		return fmt.Errorf("form %s: unknown field '%s'", path, f.Name)
	}
	if f.Label == "" {
		return fmt.Errorf("form %s: field '%s' missing 'label'", path, f.Name)
	}
	if !knownTypes[f.Type] {
		return fmt.Errorf("form %s: field '%s' has unsupported type %q", path, f.Name, f.Type)
	}
	if !knownFormats[f.Format] {
		return fmt.Errorf("form %s: field '%s' has unsupported format %q", path, f.Name, f.Format)
	}

	if f.Pattern != "" {
		re, err := regexp.Compile(f.Pattern)
		if err != nil {
			return fmt.Errorf("form %s: field '%s' invalid regex pattern: %w", path, f.Name, err)
		}
		f.re = re
	}

	if f.MinLength < 0 || f.MaxLength < 0 {
		return fmt.Errorf("form %s: field '%s' minlength/maxlength cannot be negative", path, f.Name)
	}
	if f.MaxLength > 0 && f.MinLength > f.MaxLength {
		return fmt.Errorf("form %s: field '%s' minlength greater than maxlength", path, f.Name)
	}
	return nil
}
