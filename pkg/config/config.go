// Package config loads user settings for the tlfs command.
//
// Settings live in a TOML file, by default $XDG_CONFIG_HOME/tlfs/config.toml
// (~/.config/tlfs/config.toml when XDG_CONFIG_HOME is unset). A missing file
// is not an error: [Default] applies. Command-line flags override the file.
//
//	formats = ["docx", "md"]
//	output_dir = "out"
//	numbering = true
//	section_titles = true
//	cell_template_from = "x"
//
//	[cache]
//	backend = "file"    # file, redis or none
//	dir = ""            # default: $XDG_CACHE_HOME/tlfs
//	redis_url = "redis://localhost:6379/0"
//	ttl = "168h"
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tlfs/pkg/errors"
	"github.com/matzehuels/tlfs/pkg/layout"
	"github.com/matzehuels/tlfs/pkg/sink"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// DefaultCacheTTL is how long rendered artifacts stay cached.
const DefaultCacheTTL = 7 * 24 * time.Hour

// Config is the content of the config file.
type Config struct {
	Formats          []string `toml:"formats"`
	OutputDir        string   `toml:"output_dir"`
	Numbering        bool     `toml:"numbering"`
	SectionTitles    bool     `toml:"section_titles"`
	CellTemplateFrom string   `toml:"cell_template_from"`
	Cache            Cache    `toml:"cache"`
}

// Cache configures the artifact cache.
type Cache struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	TTL      Duration `toml:"ttl"`
}

// Duration is a time.Duration written as a string ("36h", "90m") in TOML.
type Duration struct{ time.Duration }

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) { return []byte(d.Duration.String()), nil }

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Formats:          []string{sink.FormatDOCX},
		Numbering:        true,
		SectionTitles:    true,
		CellTemplateFrom: layout.FromX.String(),
		Cache: Cache{
			Backend: CacheFile,
			TTL:     Duration{DefaultCacheTTL},
		},
	}
}

// Path returns the default config file location.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "tlfs", "config.toml")
}

// Load reads the config file at path on top of [Default]. An empty path
// means [Path]. A missing file yields the defaults; a malformed or invalid
// one fails with INVALID_CONFIG.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = Path()
	}
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.At(err, "%s", path)
	}
	return cfg, nil
}

// Validate checks formats, the template source and the cache backend.
func (c Config) Validate() error {
	if len(c.Formats) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "formats cannot be empty")
	}
	for _, f := range c.Formats {
		if err := sink.ValidateFormat(f); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "formats")
		}
	}
	if _, err := layout.ParseTemplateSource(c.CellTemplateFrom); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "cell_template_from")
	}
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_url is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"invalid cache.backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl cannot be negative")
	}
	return nil
}

// TemplateSource returns the parsed cell_template_from value.
func (c Config) TemplateSource() layout.TemplateSource {
	src, _ := layout.ParseTemplateSource(c.CellTemplateFrom)
	return src
}

// Write stores the config at path, creating parent directories.
func (c Config) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create config dir")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return f.Close()
}
