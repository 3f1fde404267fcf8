// Package config assembles dropwatch settings from defaults, an optional
// YAML file and DROPWATCH_* environment variables. Command-line flags are
// applied on top by the cmd package.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/dropwatch/internal/advisor"
	"github.com/abhisek/dropwatch/internal/llm"
	"github.com/abhisek/dropwatch/internal/model"
	"github.com/abhisek/dropwatch/internal/modelcache"
)

// Cache backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Backends lists the supported model cache backends.
var Backends = []string{BackendSQLite, BackendRedis, BackendMemory}

// DefaultDataPath is the student table read when nothing else is set.
const DefaultDataPath = "data.csv"

// CacheConfig selects where trained model artifacts are kept.
type CacheConfig struct {
	Backend string                 `yaml:"backend"`
	Redis   modelcache.RedisConfig `yaml:"redis"`
}

// Config is the full dropwatch configuration.
type Config struct {
	DataPath string         `yaml:"data"`
	DBPath   string         `yaml:"db"` // empty = store.ResolvePath default
	Cache    CacheConfig    `yaml:"cache"`
	Model    model.Config   `yaml:"model"`
	LLM      llm.Config     `yaml:"llm"`
	Advisor  advisor.Config `yaml:"advisor"`

	// SampleSize and SampleSeed control the student sample on the
	// recommendation page.
	SampleSize int    `yaml:"sample_size"`
	SampleSeed uint64 `yaml:"sample_seed"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DataPath: DefaultDataPath,
		Cache: CacheConfig{
			Backend: BackendSQLite,
			Redis:   modelcache.DefaultRedisConfig(),
		},
		Model:      model.DefaultConfig(),
		LLM:        llm.DefaultConfig(),
		Advisor:    advisor.DefaultConfig(),
		SampleSize: 5,
		SampleSeed: 42,
	}
}

// DefaultPath resolves the config file location:
// 1. DROPWATCH_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/dropwatch/config.yaml
// 3. ~/.config/dropwatch/config.yaml
func DefaultPath() (string, error) {
	if p := os.Getenv("DROPWATCH_CONFIG"); p != "" {
		return p, nil
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "dropwatch", "config.yaml"), nil
}

// Load builds the configuration from defaults, the YAML file at path and
// the environment. An empty path uses DefaultPath; a missing file at the
// default location is not an error, but a missing explicit path is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	if err := mergeFile(&cfg, path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			err = nil
		}
		if err != nil {
			return cfg, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// mergeFile overlays the YAML file at path onto cfg. Environment
// references like ${REDIS_PASSWORD} are expanded before parsing.
func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides cfg with DROPWATCH_* variables.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("DROPWATCH_DATA"); v != "" {
		cfg.DataPath = v
	}
	if v := os.Getenv("DROPWATCH_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("DROPWATCH_CACHE"); v != "" {
		cfg.Cache.Backend = v
	}
	if v := os.Getenv("DROPWATCH_REDIS_ADDR"); v != "" {
		if err := cfg.Cache.SetRedisAddr(v); err != nil {
			return err
		}
	}
	if v := os.Getenv("DROPWATCH_REDIS_PASSWORD"); v != "" {
		cfg.Cache.Redis.Password = v
	}
	if v := os.Getenv("DROPWATCH_REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DROPWATCH_REDIS_DB: %w", err)
		}
		cfg.Cache.Redis.DB = n
	}
	if v := os.Getenv("DROPWATCH_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("DROPWATCH_CACHE_TTL: %w", err)
		}
		cfg.Cache.Redis.TTL = d
	}
	if v := os.Getenv("DROPWATCH_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("DROPWATCH_SEED: %w", err)
		}
		cfg.Model.Seed = n
		cfg.SampleSeed = n
	}

	cfg.LLM = llm.ApplyEnv(cfg.LLM)
	if !cfg.LLM.Enabled() {
		cfg.LLM, _ = llm.DiscoverConfig(cfg.LLM)
	}
	return nil
}

// SetRedisAddr parses a "host:port" address into the Redis settings.
func (c *CacheConfig) SetRedisAddr(addr string) error {
	host, port, ok := strings.Cut(addr, ":")
	if !ok {
		c.Redis.Host = addr
		return nil
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("invalid redis address %q: %w", addr, err)
	}
	if host != "" {
		c.Redis.Host = host
	}
	c.Redis.Port = n
	return nil
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("unknown cache backend %q (want one of %s)",
			c.Cache.Backend, strings.Join(Backends, ", "))
	}
	if c.DataPath == "" {
		return errors.New("data path is empty")
	}
	if c.SampleSize < 0 {
		return fmt.Errorf("sample size must not be negative, got %d", c.SampleSize)
	}
	return nil
}
