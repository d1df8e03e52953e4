// internal/component/registry.go
//
// Component registry (cycle-free).
//
// Each concrete component lives under components/<name> and calls
// component.Register() in an init() function.  main.go calls MountAll,
// which runs Init() on every component that implements Initializer and then
// mounts its Routes() under “/<name>”.

package component

import (
	"fmt"
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/contactform/internal/config"
	"github.com/yanizio/contactform/internal/form"
	"github.com/yanizio/contactform/internal/session"
)

// Deps exposes process-wide resources to Components during Init.
type Deps struct {
	Config   *config.Config
	Log      *zap.SugaredLogger
	Sessions *session.Store
	CSRF     *form.CSRF
	Def      *form.FormDef
	Options  form.Options
}

// Initializer is optional.  If a Component implements it, MountAll calls
// Init(deps) once before mounting its routes.
type Initializer interface {
	Init(Deps) error
}

// Component contract.
//
// Routes() should mount BOTH page and API endpoints relative to the
// component root, e.g:
//
//	r := chi.NewRouter()
//	r.Get("/", page)
//	r.Route("/api", func(api chi.Router) { ... })
//	return r
type Component interface {
	Name() string
	Routes() chi.Router
}

var (
	mu       sync.RWMutex
	registry = map[string]Component{}
)

// Register is invoked from component init() functions.  A second component
// with the same name replaces the first.
func Register(c Component) {
	mu.Lock()
	registry[c.Name()] = c
	mu.Unlock()
}

// All returns every registered component sorted by name.
func All() []Component {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Component, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// MountAll initialises every registered component and mounts it on r.
func MountAll(r chi.Router, deps Deps) error {
	for _, c := range All() {
		if in, ok := c.(Initializer); ok {
			if err := in.Init(deps); err != nil {
				return fmt.Errorf("component %s: init: %w", c.Name(), err)
			}
		}
		r.Mount("/"+c.Name(), c.Routes())
		if deps.Log != nil {
			deps.Log.Infow("component mounted", "name", c.Name())
		}
	}
	return nil
}
