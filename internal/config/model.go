// internal/config/model.go
//
// Typed configuration model.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                           – dotenv values,
//   • `conf/global.yaml`                        – primary static file,
//   • `CONTACT_`-prefixed environment overrides – highest precedence.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.  Zero durations and counts are replaced by
// defaults before validation.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.

package config

import "time"

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr   string        `koanf:"listen_addr"   validate:"required,hostname_port"`
	ForceHTTPS   bool          `koanf:"force_https"`
	ReadTimeout  time.Duration `koanf:"read_timeout"  validate:"gte=0"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"gte=0"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"  validate:"gte=0"`
}

// Form selects the rule table and input normalisation.
type Form struct {
	Definition string `koanf:"definition"` // YAML path; empty uses the built-in table
	TrimSpace  bool   `koanf:"trim_space"`
}

// Session bounds the in-memory form store.
type Session struct {
	IdleTTL       time.Duration `koanf:"idle_ttl"       validate:"gte=0"`
	MaxEntries    int           `koanf:"max_entries"    validate:"gte=0"`
	EvictInterval time.Duration `koanf:"evict_interval" validate:"gte=0"`
}

// CSRF holds the token signing key (base64url, ≥ 32 bytes decoded).
type CSRF struct {
	Key    string        `koanf:"key"`
	MaxAge time.Duration `koanf:"max_age" validate:"gte=0"`
}

// GeoIP points at an optional GeoLite2-City database.
type GeoIP struct {
	Path string `koanf:"path"`
}

// Log controls the file logger.
type Log struct {
	Dir   string `koanf:"dir"`
	Level string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
}

// Paths is resolved at runtime, never set in YAML or env.
type Paths struct {
	Root string // CONTACT_ROOT or discovered parent
}

// Config is the immutable aggregate returned by Load().
type Config struct {
	HTTP    HTTP    `koanf:"http"`
	Form    Form    `koanf:"form"`
	Session Session `koanf:"session"`
	CSRF    CSRF    `koanf:"csrf"`
	GeoIP   GeoIP   `koanf:"geoip"`
	Log     Log     `koanf:"log"`
	Paths   Paths   `koanf:"-"`
}

// applyDefaults fills zero values.
func (c *Config) applyDefaults() {
	if c.HTTP.ReadTimeout == 0 {
		c.HTTP.ReadTimeout = 10 * time.Second
	}
	if c.HTTP.WriteTimeout == 0 {
		c.HTTP.WriteTimeout = 15 * time.Second
	}
	if c.HTTP.IdleTimeout == 0 {
		c.HTTP.IdleTimeout = 60 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
