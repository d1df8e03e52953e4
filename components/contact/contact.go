// components/contact/contact.go
//
// Contact component – the contact form page and its JSON API.
//
// Routes (relative to the mount point “/contact”)
//
//	GET  /                 full page for the caller's session
//	POST /                 submit; applies posted values then validates all
//	POST /fields/{field}   single-field change; returns the form fragment
//	GET  /api              JSON snapshot of the session's form
//	POST /api/validate     stateless validation of a JSON FieldState
//
// Every state-changing HTML POST carries a csrf_token bound to the session
// cookie.  A missing cookie or a bad token is a 400, never a form error.
//
//------------------------------------------------------------------------------

package contact

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/yanizio/contactform/internal/component"
	"github.com/yanizio/contactform/internal/form"
	"github.com/yanizio/contactform/internal/metrics"
	"github.com/yanizio/contactform/internal/session"
)

// compile-time assertions
var (
	_ component.Component   = (*Component)(nil)
	_ component.Initializer = (*Component)(nil)
)

const maxBody = 64 << 10

// Component serves one contact form per browser session.
type Component struct {
	log      *zap.SugaredLogger
	sessions *session.Store
	csrf     *form.CSRF
	def      *form.FormDef
	opts     form.Options
}

/*────────────────── component.Component methods ───────────────────────────*/

// Name returns the canonical component key.
func (c *Component) Name() string { return "contact" }

// Init captures the shared resources.
func (c *Component) Init(d component.Deps) error {
	if d.Sessions == nil || d.CSRF == nil || d.Def == nil {
		return errors.New("contact: sessions, csrf, and form definition are required")
	}
	c.log = d.Log
	if c.log == nil {
		c.log = zap.S()
	}
	c.sessions = d.Sessions
	c.csrf = d.CSRF
	c.def = d.Def
	c.opts = d.Options
	return nil
}

// Routes builds the router mounted at “/contact”.
func (c *Component) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.NoCache)
	r.Get("/", c.handlePage)
	r.Post("/", c.handleSubmit)
	r.Post("/fields/{field}", c.handleField)
	r.Route("/api", func(api chi.Router) {
		api.Get("/", c.handleSnapshot)
		api.Post("/validate", c.handleValidate)
	})
	return r
}

// Register component at program start.
func init() { component.Register(&Component{}) }

/*──────────────────────────── HTML handlers ────────────────────────────────*/

func (c *Component) handlePage(w http.ResponseWriter, r *http.Request) {
	id := session.Ensure(w, r)
	c.renderPage(w, r, id, c.sessions.Get(id).Snapshot())
}

func (c *Component) handleSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := c.verify(w, r)
	if !ok {
		return
	}
	f := c.sessions.Get(id)

	// Posted values are applied as change events and submitted under one
	// lock, so a no-JS browser reaches the same state an interactive one
	// would and two concurrent posts never mix their values.
	posted := make(map[form.Field]string, len(c.def.Fields))
	for _, fd := range c.def.Fields {
		if vals, present := r.PostForm[string(fd.Name)]; present && len(vals) > 0 {
			posted[fd.Name] = vals[0]
		}
	}

	out := f.SubmitWith(posted)
	switch err := out.Errors.Err(); {
	case err == nil:
		metrics.SubmissionsTotal.WithLabelValues("accepted").Inc()
		c.log.Infow("contact submitted",
			"session", id,
			"request_id", chimw.GetReqID(r.Context()),
			"fields", filled(out.Submitted),
		)
	case form.IsValidationError(err):
		errs, _ := form.ValidationErrors(err)
		metrics.SubmissionsTotal.WithLabelValues("rejected").Inc()
		for _, fld := range errs.Fields() {
			metrics.ValidationErrorsTotal.WithLabelValues(string(fld)).Inc()
		}
		c.log.Debugw("contact rejected",
			"session", id,
			"request_id", chimw.GetReqID(r.Context()),
			"err", err,
		)
	default:
		c.fail(w, "submit", err)
		return
	}
	c.renderPage(w, r, id, f.Snapshot())
}

func (c *Component) handleField(w http.ResponseWriter, r *http.Request) {
	fld, ok := form.ParseField(chi.URLParam(r, "field"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	if _, declared := c.def.Field(fld); !declared {
		http.NotFound(w, r)
		return
	}
	id, ok := c.verify(w, r)
	if !ok {
		return
	}
	f := c.sessions.Get(id)
	f.Change(fld, r.PostFormValue("value"))

	tok, err := c.csrf.Generate(id)
	if err != nil {
		c.fail(w, "csrf generate", err)
		return
	}
	v := form.ViewOf(c.def, f.Snapshot())
	v.CSRFToken = tok
	v.Action = c.action(r)
	html, err := form.Render(v)
	if err != nil {
		c.fail(w, "render fragment", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

/*──────────────────────────── JSON handlers ────────────────────────────────*/

type validateResponse struct {
	Valid  bool          `json:"valid"`
	Errors form.ErrorSet `json:"errors"`
}

func (c *Component) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	id := session.Ensure(w, r)
	writeJSON(w, http.StatusOK, c.sessions.Get(id).Snapshot())
}

func (c *Component) handleValidate(w http.ResponseWriter, r *http.Request) {
	var in map[string]string
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	if err := dec.Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed JSON body"})
		return
	}

	var s form.FieldState
	for name, val := range in {
		fld, ok := form.ParseField(name)
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown field " + name})
			return
		}
		s = form.Apply(s, form.Change(fld, val), c.opts)
	}

	errs := form.Validate(c.def, s)
	writeJSON(w, http.StatusOK, validateResponse{Valid: errs.Len() == 0, Errors: errs})
}

/*──────────────────────────── helpers ──────────────────────────────────────*/

// verify parses the body and checks the session cookie and CSRF token.  On
// failure it writes a 400 and returns ok=false.
func (c *Component) verify(w http.ResponseWriter, r *http.Request) (string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form body", http.StatusBadRequest)
		return "", false
	}
	id, ok := session.ID(r)
	if !ok || !c.csrf.Verify(r.PostFormValue("csrf_token"), id) {
		c.log.Warnw("csrf check failed",
			"has_session", ok,
			"request_id", chimw.GetReqID(r.Context()),
		)
		http.Error(w, "invalid or expired form token, reload the page", http.StatusBadRequest)
		return "", false
	}
	return id, true
}

func (c *Component) renderPage(w http.ResponseWriter, r *http.Request, id string, snap form.Snapshot) {
	tok, err := c.csrf.Generate(id)
	if err != nil {
		c.fail(w, "csrf generate", err)
		return
	}
	v := form.ViewOf(c.def, snap)
	v.CSRFToken = tok
	v.Action = c.action(r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := form.RenderPage(w, v); err != nil {
		c.log.Errorw("render page", "err", err)
	}
}

// action returns the mount point the form posts back to, e.g. "/contact".
func (c *Component) action(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || len(rctx.RoutePatterns) == 0 {
		return ""
	}
	p := strings.TrimSuffix(rctx.RoutePatterns[0], "*")
	return strings.TrimSuffix(p, "/")
}

func (c *Component) fail(w http.ResponseWriter, what string, err error) {
	c.log.Errorw(what, "err", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// filled lists the non-empty submitted fields without logging values.
func filled(s *form.SubmittedValues) []form.Field {
	if s == nil {
		return nil
	}
	var out []form.Field
	for _, f := range form.AllFields {
		if s.Get(f) != "" {
			out = append(out, f)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
