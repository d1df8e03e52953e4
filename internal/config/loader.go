// internal/config/loader.go
//
// Configuration loader.
//
/*
Context
--------
`Load()` builds one immutable `Config` struct from three layers (highest
precedence last):

  1. Optional `.env` file at `<root>/conf/.env`.
  2. `conf/global.yaml`.
  3. Environment variables prefixed `CONTACT_`, where `__` maps to “.”
     (e.g., `CONTACT_HTTP__LISTEN_ADDR → http.listen_addr`).

After merging, the tree is unmarshalled into typed structs, defaulted,
validated, and enriched with the runtime root path.  The caller owns the
returned pointer; nothing is cached at package level.

Instrumentation
---------------
  • DEBUG spans: root discovery, YAML read.
  • ERROR spans: YAML parse, env overlay, unmarshal, validation failures.
  • INFO  span:  final “config loaded” with key highlights.
  • Logs use the global sugared logger (`zap.S()`), which is a no-op until
    the file logger is installed.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

const envPrefix = "CONTACT_"

/*──────────────────────────── root discovery ───────────────────────────────*/

// rootDir resolves CONTACT_ROOT or climbs directories until conf/global.yaml
// is found.  Falls back to the executable layout for production installs.
func rootDir() string {
	if r := os.Getenv(envPrefix + "ROOT"); r != "" {
		return r
	}

	wd, _ := os.Getwd()
	dir := wd
	for {
		if _, err := os.Stat(filepath.Join(dir, "conf", "global.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached filesystem root
			break
		}
		dir = parent
	}

	exe, _ := os.Executable()
	if filepath.Base(filepath.Dir(exe)) == "bin" {
		return filepath.Dir(filepath.Dir(exe))
	}
	return wd
}

/*─────────────────────────────── loader ───────────────────────────────────*/

// Load reads .env, YAML, env overrides, validates, and caches Config.
func Load() (*Config, error) {
	root := rootDir()
	zap.S().Debugw("config root resolved", "root", root)

	// .env (optional, no error if missing)
	_ = godotenv.Load(filepath.Join(root, "conf", ".env"))

	k := koanf.New(".")

	yamlPath := filepath.Join(root, "conf", "global.yaml")
	if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
		zap.S().Errorw("config yaml load failed", "file", yamlPath, "err", err)
		return nil, fmt.Errorf("load %s: %w", yamlPath, err)
	}
	zap.S().Debugw("config yaml loaded", "file", yamlPath)

	// Env overrides: CONTACT_HTTP__LISTEN_ADDR → http.listen_addr
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Paths.Root = root
	cfg.applyDefaults()
	if cfg.Log.Dir == "" {
		cfg.Log.Dir = filepath.Join(root, "logs")
	}
	if cfg.Form.Definition != "" && !filepath.IsAbs(cfg.Form.Definition) {
		cfg.Form.Definition = filepath.Join(root, cfg.Form.Definition)
	}

	if err := validateStruct(&cfg); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, fmt.Errorf("validate config: %w", err)
	}

	zap.S().Infow("config loaded",
		"listen_addr", cfg.HTTP.ListenAddr,
		"force_https", cfg.HTTP.ForceHTTPS,
		"trim_space", cfg.Form.TrimSpace,
		"root", cfg.Paths.Root,
	)
	return &cfg, nil
}

// envKey maps CONTACT_SESSION__IDLE_TTL to session.idle_ttl.
func envKey(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	return strings.ToLower(strings.ReplaceAll(s, "__", "."))
}
