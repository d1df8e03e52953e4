// internal/requestinfo/middleware.go
//
// HTTP middleware that enriches each request with *RequestInfo and logs
// one line per request once the handler returns.
//
/*
Context
--------
For every request the middleware:

  1. Parses the User-Agent header and Accept-Language list.
  2. Extracts the left-most client IP from X-Forwarded-For or X-Real-IP,
     falling back to `r.RemoteAddr`.
  3. Performs a GeoLite2 lookup when a database is configured.
  4. Stores a `*RequestInfo` in the request context.
  5. After the handler returns, logs method, route, status, duration,
     browser, device, and country, and records Prometheus counters keyed
     by the chi route pattern (not the raw path, to bound cardinality).
*/
package requestinfo

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/yanizio/contactform/internal/metrics"
)

/*──────────────────────────── middleware ───────────────────────────────────*/

// Middleware returns the enrichment + access-log wrapper.  geo may be nil.
func Middleware(geo *Geolocator, log *zap.SugaredLogger) func(http.Handler) http.Handler {
	if log == nil {
		log = zap.S()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			info := &RequestInfo{
				UA:        parseUA(r.UserAgent(), r.Header.Get("Accept-Language")),
				Geo:       geo.Lookup(clientIP(r)),
				Path:      r.URL.Path,
				Timestamp: start.UTC(),
			}

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(WithInfo(r.Context(), info)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := routePattern(r)
			elapsed := time.Since(start)

			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())

			log.Infow("request",
				"method", r.Method,
				"route", route,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", elapsed,
				"request_id", chimw.GetReqID(r.Context()),
				"ip", info.Geo.IP,
				"country", info.Geo.CountryISO,
				"browser", info.UA.Browser,
				"device", info.UA.Device,
				"bot", info.UA.IsBot,
			)
		})
	}
}

// routePattern returns the matched chi pattern, or "unmatched".
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

/*──────────────────────────── client IP helper ─────────────────────────────*/

// clientIP extracts the left-most address from X-Forwarded-For or
// X-Real-IP, falling back to r.RemoteAddr ("ip:port").
func clientIP(r *http.Request) net.IP {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for _, part := range strings.Split(xff, ",") {
			if ip := net.ParseIP(strings.TrimSpace(part)); ip != nil {
				return ip
			}
		}
	}
	if xrip := r.Header.Get("X-Real-Ip"); xrip != "" {
		if ip := net.ParseIP(strings.TrimSpace(xrip)); ip != nil {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return net.ParseIP(host)
	}
	return nil
}
