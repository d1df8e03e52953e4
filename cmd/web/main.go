// cmd/web/main.go
//
// Contact form service – HTTP entry point.
//
// Start-up sequence
// -----------------
//
//  1. Load configuration (conf/.env → conf/global.yaml → CONTACT_* env).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Load the form definition and build the CSRF signer.
//
//  4. Build the session store (lazy per-session forms, idle + LRU eviction).
//
//  5. Build the router: request-id → recoverer → requestinfo → security
//     headers → components, /healthz, /metrics.
//
//  6. Wrap with ForceHTTPS and serve; SIGINT/SIGTERM trigger a graceful
//     shutdown bounded by shutdownGrace.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yanizio/contactform/internal/config"
	"github.com/yanizio/contactform/internal/form"
	"github.com/yanizio/contactform/internal/logger"
	"github.com/yanizio/contactform/internal/middleware"
	"github.com/yanizio/contactform/internal/requestinfo"
	"github.com/yanizio/contactform/internal/server"
	"github.com/yanizio/contactform/internal/session"

	_ "github.com/yanizio/contactform/components/contact" // contact form
)

const shutdownGrace = 10 * time.Second

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	//
	// ── 1.  Config + logger ─────────────────────────────────────────────
	//
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logOut, err := logger.New(cfg.Log.Dir, cfg.Log.Level, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer func() { _ = logOut.Sync() }()

	//
	// ── 2.  Form definition + CSRF ──────────────────────────────────────
	//
	def, err := form.LoadFormDef(cfg.Form.Definition)
	if err != nil {
		logOut.Fatalw("load form definition", "path", cfg.Form.Definition, "err", err)
	}
	key, err := form.DecodeKey(cfg.CSRF.Key)
	if err != nil {
		logOut.Fatalw("csrf key", "err", err)
	}
	csrf, err := form.NewCSRF(key, cfg.CSRF.MaxAge)
	if err != nil {
		logOut.Fatalw("csrf init", "err", err)
	}
	opts := form.Options{TrimSpace: cfg.Form.TrimSpace}

	//
	// ── 3.  Session store ───────────────────────────────────────────────
	//
	store := session.NewStore(func() *form.Form { return form.New(def, opts) },
		session.Options{
			IdleTTL:       cfg.Session.IdleTTL,
			MaxEntries:    cfg.Session.MaxEntries,
			EvictInterval: cfg.Session.EvictInterval,
		}, logOut)
	defer store.Close()

	//
	// ── 4.  Optional GeoIP ──────────────────────────────────────────────
	//
	geo, err := requestinfo.OpenGeo(cfg.GeoIP.Path)
	if err != nil {
		logOut.Warnw("geoip disabled", "path", cfg.GeoIP.Path, "err", err)
	}
	defer func() { _ = geo.Close() }()

	//
	// ── 5.  Router + server ─────────────────────────────────────────────
	//
	router, err := newRouter(routerDeps{
		cfg:      cfg,
		log:      logOut,
		sessions: store,
		csrf:     csrf,
		def:      def,
		opts:     opts,
		geo:      geo,
	})
	if err != nil {
		logOut.Fatalw("build router", "err", err)
	}
	srv := server.New(cfg.HTTP, middleware.ForceHTTPS(cfg.HTTP.ForceHTTPS, router))

	//
	// ── 6.  Serve until signalled ───────────────────────────────────────
	//
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr, "form", def.ID)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logOut.Infow("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		logOut.Errorw("http server", "err", err)
	}
	logOut.Infow("stopped")
}
