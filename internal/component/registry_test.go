package component

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stub struct {
	name    string
	initErr error
	inited  bool
}

func (s *stub) Name() string { return s.name }
func (s *stub) Init(Deps) error {
	s.inited = true
	return s.initErr
}
func (s *stub) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(s.name)) })
	return r
}

// withRegistry swaps the package registry for the duration of a test.
func withRegistry(t *testing.T, cs ...Component) {
	t.Helper()
	mu.Lock()
	saved := registry
	registry = map[string]Component{}
	mu.Unlock()
	for _, c := range cs {
		Register(c)
	}
	t.Cleanup(func() {
		mu.Lock()
		registry = saved
		mu.Unlock()
	})
}

func TestAll_SortedByName(t *testing.T) {
	withRegistry(t, &stub{name: "zeta"}, &stub{name: "alpha"})

	all := All()
	require.Len(t, all, 2)
	assert.Equal(t, "alpha", all[0].Name())
	assert.Equal(t, "zeta", all[1].Name())
}

func TestMountAll_InitsAndMounts(t *testing.T) {
	a := &stub{name: "alpha"}
	withRegistry(t, a)

	r := chi.NewRouter()
	require.NoError(t, MountAll(r, Deps{}))
	assert.True(t, a.inited)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/alpha", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alpha", rec.Body.String())
}

func TestMountAll_InitError(t *testing.T) {
	withRegistry(t, &stub{name: "broken", initErr: errors.New("boom")})

	err := MountAll(chi.NewRouter(), Deps{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "component broken: init: boom")
}
