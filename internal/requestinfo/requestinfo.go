//
//  internal/requestinfo/requestinfo.go
//
//  Lightweight types and helpers that collect per-request metadata
//  (user-agent fingerprint, IP + geolocation, path, and timestamp).
//  These structs are inert, so they are safe to log or JSON-encode.
//
//  Dependencies
//  • github.com/avct/uasurfer           (UA parsing)
//  • github.com/oschwald/geoip2-golang  (optional MaxMind lookup)
//

package requestinfo

import (
	"context"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/avct/uasurfer"
	"github.com/oschwald/geoip2-golang"
)

//
//  -----------------------------
//  Struct definitions
//  -----------------------------
//

// UA holds the parsed user-agent properties.
type UA struct {
	Browser     string `json:"browser"`      // "Chrome", "Firefox", "Safari", etc.
	Version     string `json:"version"`      // "124", "17.3"
	OS          string `json:"os"`           // "MacOSX", "Windows", "Android", etc.
	Device      string `json:"device"`       // "Desktop", "Phone", "Tablet", ...
	IsBot       bool   `json:"is_bot"`       // crawler signature matched
	PrimaryLang string `json:"primary_lang"` // first Accept-Language tag
}

// Geo holds IP-based geolocation hints.  Fields are empty when no database
// is configured or the address has no match.
type Geo struct {
	IP         net.IP `json:"ip"`
	CountryISO string `json:"country,omitempty"`
	City       string `json:"city,omitempty"`
}

// RequestInfo is stored in the request context by Middleware.
type RequestInfo struct {
	UA        UA        `json:"ua"`
	Geo       Geo       `json:"geo"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"ts"`
}

//
//  -----------------------------
//  Geolocation
//  -----------------------------
//

// Geolocator wraps a MaxMind handle.  A nil *Geolocator is valid and
// returns empty results, so geolocation stays optional.
type Geolocator struct{ r *geoip2.Reader }

// OpenGeo opens a GeoLite2-City database.  An empty path returns nil.
func OpenGeo(path string) (*Geolocator, error) {
	if path == "" {
		return nil, nil
	}
	r, err := geoip2.Open(path)
	if err != nil {
		return nil, err
	}
	return &Geolocator{r: r}, nil
}

// Close releases the database.
func (g *Geolocator) Close() error {
	if g == nil {
		return nil
	}
	return g.r.Close()
}

// Lookup returns best-effort Geo data for ip.
func (g *Geolocator) Lookup(ip net.IP) Geo {
	if g == nil || ip == nil {
		return Geo{IP: ip}
	}
	rec, err := g.r.City(ip)
	if err != nil {
		return Geo{IP: ip}
	}
	return Geo{
		IP:         ip,
		CountryISO: rec.Country.IsoCode,
		City:       rec.City.Names["en"],
	}
}

//
//  -----------------------------
//  Public helper: FromContext
//  -----------------------------
//

type ctxKey struct{}

// FromContext returns the pointer previously stored by Middleware, or nil.
func FromContext(ctx context.Context) *RequestInfo {
	v, _ := ctx.Value(ctxKey{}).(*RequestInfo)
	return v
}

// WithInfo returns a copy of ctx carrying info.
func WithInfo(ctx context.Context, info *RequestInfo) context.Context {
	return context.WithValue(ctx, ctxKey{}, info)
}

//
//  -----------------------------
//  Internal helpers
//  -----------------------------
//

// parseUA converts a raw header into our UA struct using uasurfer.
func parseUA(uaHeader, acceptLang string) UA {
	u := uasurfer.Parse(uaHeader)

	return UA{
		Browser:     strings.TrimPrefix(u.Browser.Name.String(), "Browser"),
		Version:     versionString(u.Browser.Version),
		OS:          strings.TrimPrefix(u.OS.Name.String(), "OS"),
		Device:      deviceString(u.DeviceType),
		IsBot:       u.IsBot(),
		PrimaryLang: primaryLang(acceptLang),
	}
}

// versionString renders a version in dotted form while trimming trailing
// zeros, e.g. 17.0.0 → "17", 17.3.0 → "17.3", 17.3.1 → "17.3.1".
func versionString(v uasurfer.Version) string {
	switch {
	case v.Major == 0 && v.Minor == 0 && v.Patch == 0:
		return ""
	case v.Patch != 0:
		return strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor) + "." + strconv.Itoa(v.Patch)
	case v.Minor != 0:
		return strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor)
	default:
		return strconv.Itoa(v.Major)
	}
}

// deviceString maps uasurfer.DeviceType to a user-friendly string.
func deviceString(dt uasurfer.DeviceType) string {
	switch dt {
	case uasurfer.DeviceComputer:
		return "Desktop"
	case uasurfer.DevicePhone:
		return "Phone"
	case uasurfer.DeviceTablet:
		return "Tablet"
	case uasurfer.DeviceConsole:
		return "Console"
	case uasurfer.DeviceWearable:
		return "Wearable"
	case uasurfer.DeviceTV:
		return "TV"
	default:
		return "Unknown"
	}
}

// primaryLang extracts the first language subtag before any ";q=" rule.
func primaryLang(al string) string {
	if al == "" {
		return ""
	}
	tag := strings.TrimSpace(strings.Split(al, ",")[0])
	if i := strings.Index(tag, ";"); i != -1 {
		tag = tag[:i]
	}
	return strings.ToLower(tag)
}
