// Package config loads quill settings from YAML, TOML or JSON files with
// environment overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for config files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Backend names for definitions storage.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type Config struct {
	Log         LogConfig         `mapstructure:"log"`
	Debug       bool              `mapstructure:"debug"`
	Definitions DefinitionsConfig `mapstructure:"definitions"`
	Traits      TraitsConfig      `mapstructure:"traits"`
	Scripts     ScriptsConfig     `mapstructure:"scripts"`
	HTTP        HTTPConfig        `mapstructure:"http"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type DefinitionsConfig struct {
	Backend string      `mapstructure:"backend"`
	Redis   RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type TraitsConfig struct {
	// Manifest is a YAML trait manifest. Empty uses the built-in one.
	Manifest string `mapstructure:"manifest"`
}

type ScriptsConfig struct {
	Dir string `mapstructure:"dir"`
}

type HTTPConfig struct {
	Addr    string `mapstructure:"addr"`
	Metrics bool   `mapstructure:"metrics"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "info", Format: "text"},
		Definitions: DefinitionsConfig{
			Backend: BackendMemory,
			Redis: RedisConfig{
				Addr:    "localhost:6379",
				Prefix:  "quill:def:",
				Timeout: 2 * time.Second,
			},
		},
		Scripts: ScriptsConfig{Dir: "."},
		HTTP:    HTTPConfig{Addr: ":8080", Metrics: true},
	}
}

// Load reads path over the defaults and applies environment overrides.
// An empty path or a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := readFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, err
		default:
			if err := decode(raw, &cfg); err != nil {
				return cfg, fmt.Errorf("invalid config %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate checks the settings that have a closed set of values.
func (c Config) Validate() error {
	switch c.Definitions.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.Definitions.Redis.Timeout <= 0 {
			return fmt.Errorf("definitions.redis.timeout must be positive, got %s", c.Definitions.Redis.Timeout)
		}
	default:
		return fmt.Errorf("unknown definitions backend %q", c.Definitions.Backend)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

func readFile(path string) (map[string]any, error) {
	raw := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &raw); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return raw, nil
	case ".yaml", ".yml", ".json":
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &raw)
	} else {
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return raw, nil
}

func decode(raw map[string]any, cfg *Config) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup("QUILL_LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := lookup("QUILL_DEBUG"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("QUILL_DEBUG: %w", err)
		}
		cfg.Debug = b
	}
	if v, ok := lookup("QUILL_REDIS_ADDR"); ok {
		cfg.Definitions.Redis.Addr = v
		cfg.Definitions.Backend = BackendRedis
	}
	if v, ok := lookup("QUILL_HTTP_ADDR"); ok {
		cfg.HTTP.Addr = v
	}
	return nil
}
