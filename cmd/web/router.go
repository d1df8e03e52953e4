// cmd/web/router.go
//
// Root router assembly, kept apart from main() so it can be exercised with
// httptest.

package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yanizio/contactform/internal/component"
	"github.com/yanizio/contactform/internal/config"
	"github.com/yanizio/contactform/internal/form"
	"github.com/yanizio/contactform/internal/middleware"
	"github.com/yanizio/contactform/internal/requestinfo"
	"github.com/yanizio/contactform/internal/session"
)

type routerDeps struct {
	cfg      *config.Config
	log      *zap.SugaredLogger
	sessions *session.Store
	csrf     *form.CSRF
	def      *form.FormDef
	opts     form.Options
	geo      *requestinfo.Geolocator
}

// newRouter mounts every registered component plus the ops endpoints.
func newRouter(d routerDeps) (http.Handler, error) {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(requestinfo.Middleware(d.geo, d.log))
	r.Use(middleware.Security)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	if err := component.MountAll(r, component.Deps{
		Config:   d.cfg,
		Log:      d.log,
		Sessions: d.sessions,
		CSRF:     d.csrf,
		Def:      d.def,
		Options:  d.opts,
	}); err != nil {
		return nil, err
	}

	// The form is the whole site; send the bare host to it.
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/contact", http.StatusFound)
	})
	return r, nil
}
