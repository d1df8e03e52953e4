// internal/form/renderer.go
//
// Contact form: HTML renderer.
//
// Context
//   Render is a pure projection of a View into markup.  It holds no state
//   between calls, so the same View always yields the same bytes.  Templates
//   are embedded and parsed once at package init.
//
// Markup contract
//   •  An <h1> with the form title and one <label for> + input pair per
//      field.  Required fields carry a trailing “*” in the label.
//   •  One <p data-testid="error"> per failing field.
//   •  One submit <button>.
//   •  After an accepted submit, a “You Submitted” section with one
//      <p data-testid="<name>Display"> per non-empty value.  A blank message
//      produces no element at all.
//
// Style
//   Output HTML is deliberately plain so the surrounding page can style it
//   via element selectors.  Inputs get id="<name>"; each pair is wrapped in
//   <div class="form-field">.
//
//------------------------------------------------------------------------------

package form

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

var tmpl = template.Must(template.New("form").ParseFS(templateFS, "templates/*.html"))

// View bundles everything the renderer reads.
type View struct {
	Def       *FormDef
	Fields    FieldState
	Errors    ErrorSet
	Submitted *SubmittedValues
	CSRFToken string // omitted from markup when empty
	Action    string // form action URL; "" posts back to the page
}

// ViewOf builds a View from a Snapshot.
func ViewOf(def *FormDef, s Snapshot) View {
	return View{
		Def:       def,
		Fields:    s.Fields,
		Errors:    s.Errors,
		Submitted: s.Submitted,
	}
}

// Render returns the form markup for v.
func Render(v View) (template.HTML, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "contact", model(v)); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// RenderPage writes a complete HTML document around the form markup.
func RenderPage(w io.Writer, v View) error {
	return tmpl.ExecuteTemplate(w, "page", model(v))
}

// -----------------------------------------------------------------------------
// Template model
// -----------------------------------------------------------------------------

type pageModel struct {
	Title     string
	Submit    string
	Action    string
	CSRFToken string
	Rows      []fieldRow
	Display   []displayRow
}

type fieldRow struct {
	ID          string
	Name        string
	Label       string
	Type        string
	Placeholder string
	Required    bool
	Value       string
	Error       string
}

type displayRow struct {
	TestID string
	Label  string
	Value  string
}

// model flattens v into the shape the templates range over.
func model(v View) pageModel {
	m := pageModel{
		Title:     v.Def.Title,
		Submit:    v.Def.Submit,
		Action:    v.Action,
		CSRFToken: v.CSRFToken,
		Rows:      make([]fieldRow, 0, len(v.Def.Fields)),
	}
	if m.Submit == "" {
		m.Submit = "Submit"
	}

	for _, f := range v.Def.Fields {
		m.Rows = append(m.Rows, fieldRow{
			ID:          string(f.Name),
			Name:        string(f.Name),
			Label:       f.Label,
			Type:        f.Type,
			Placeholder: f.Placeholder,
			Required:    f.Required,
			Value:       v.Fields.Get(f.Name),
			Error:       v.Errors[f.Name],
		})
	}

	if v.Submitted != nil {
		for _, f := range v.Def.Fields {
			val := v.Submitted.Get(f.Name)
			if val == "" {
				continue // optional and blank: nothing to show
			}
			m.Display = append(m.Display, displayRow{
				TestID: strings.ToLower(string(f.Name)) + "Display",
				Label:  f.Label,
				Value:  val,
			})
		}
	}
	return m
}
