package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yanizio/contactform/internal/config"
	"github.com/yanizio/contactform/internal/form"
	"github.com/yanizio/contactform/internal/session"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	def := form.Default()
	csrf, err := form.NewCSRF(bytes.Repeat([]byte("x"), 32), 0)
	require.NoError(t, err)

	store := session.NewStore(func() *form.Form { return form.New(def, form.Options{}) },
		session.Options{}, zap.NewNop().Sugar())
	t.Cleanup(store.Close)

	h, err := newRouter(routerDeps{
		cfg:      &config.Config{},
		log:      zap.NewNop().Sugar(),
		sessions: store,
		csrf:     csrf,
		def:      def,
	})
	require.NoError(t, err)
	return h
}

func serve(h http.Handler, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestRouter_Healthz(t *testing.T) {
	rec := serve(testRouter(t), http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
}

func TestRouter_Metrics(t *testing.T) {
	h := testRouter(t)
	serve(h, http.MethodGet, "/healthz")

	rec := serve(h, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
	assert.Contains(t, rec.Body.String(), "contact_active_sessions")
}

func TestRouter_ContactMounted(t *testing.T) {
	rec := serve(testRouter(t), http.MethodGet, "/contact")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Contact Form</h1>")
}

func TestRouter_RootRedirects(t *testing.T) {
	rec := serve(testRouter(t), http.MethodGet, "/")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/contact", rec.Header().Get("Location"))
}
