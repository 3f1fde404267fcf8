package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate clears every variable Load consults.
func isolate(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"DROPWATCH_CONFIG", "DROPWATCH_DATA", "DROPWATCH_DB", "DROPWATCH_CACHE",
		"DROPWATCH_REDIS_ADDR", "DROPWATCH_REDIS_PASSWORD", "DROPWATCH_REDIS_DB",
		"DROPWATCH_CACHE_TTL", "DROPWATCH_SEED", "DROPWATCH_LLM_PROVIDER",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(name, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "data.csv", cfg.DataPath)
	assert.Equal(t, BackendSQLite, cfg.Cache.Backend)
	assert.Equal(t, 5, cfg.SampleSize)
	assert.False(t, cfg.LLM.Enabled())
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_YAMLOverlay(t *testing.T) {
	isolate(t)
	t.Setenv("TEST_REDIS_PW", "s3cret")

	p := writeFile(t, `
data: /srv/students.csv
cache:
  backend: redis
  redis:
    host: cache.internal
    port: 6380
    password: ${TEST_REDIS_PW}
    ttl: 1h
model:
  c: 2.5
  seed: 7
sample_size: 8
advisor:
  max_tokens: 250
  temperature: 0.1
  timeout: 12s
`)
	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "/srv/students.csv", cfg.DataPath)
	assert.Equal(t, BackendRedis, cfg.Cache.Backend)
	assert.Equal(t, "cache.internal:6380", cfg.Cache.Redis.Addr())
	assert.Equal(t, "s3cret", cfg.Cache.Redis.Password)
	assert.Equal(t, time.Hour, cfg.Cache.Redis.TTL)
	assert.Equal(t, 2.5, cfg.Model.C)
	assert.Equal(t, uint64(7), cfg.Model.Seed)
	assert.Equal(t, 8, cfg.SampleSize)
	assert.Equal(t, 250, cfg.Advisor.MaxTokens)
	assert.Equal(t, 0.1, cfg.Advisor.Temperature)
	assert.Equal(t, 12*time.Second, cfg.Advisor.Timeout)

	// Untouched fields keep their defaults.
	assert.Equal(t, 5, cfg.Model.ProbabilityFolds)
	assert.Equal(t, uint64(42), cfg.SampleSeed)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	p := writeFile(t, "data: from-file.csv\ncache:\n  backend: redis\n")
	t.Setenv("DROPWATCH_DATA", "from-env.csv")
	t.Setenv("DROPWATCH_CACHE", "memory")
	t.Setenv("DROPWATCH_REDIS_ADDR", "10.0.0.5:7000")
	t.Setenv("DROPWATCH_SEED", "99")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "from-env.csv", cfg.DataPath)
	assert.Equal(t, BackendMemory, cfg.Cache.Backend)
	assert.Equal(t, "10.0.0.5:7000", cfg.Cache.Redis.Addr())
	assert.Equal(t, uint64(99), cfg.Model.Seed)
	assert.Equal(t, uint64(99), cfg.SampleSeed)
}

func TestLoad_DiscoversLLMKey(t *testing.T) {
	isolate(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.OpenAI.APIKey)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		file string
	}{
		{name: "unknown backend", env: map[string]string{"DROPWATCH_CACHE": "etcd"}},
		{name: "bad redis db", env: map[string]string{"DROPWATCH_REDIS_DB": "zero"}},
		{name: "bad ttl", env: map[string]string{"DROPWATCH_CACHE_TTL": "forever"}},
		{name: "bad seed", env: map[string]string{"DROPWATCH_SEED": "-1"}},
		{name: "bad redis port", env: map[string]string{"DROPWATCH_REDIS_ADDR": "host:port"}},
		{name: "malformed yaml", file: "cache: [unterminated"},
		{name: "negative sample", file: "sample_size: -2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = writeFile(t, tt.file)
			}
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestDefaultPath(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "dropwatch", "config.yaml"), p)

	t.Setenv("DROPWATCH_CONFIG", "/etc/dropwatch.yaml")
	p, err = DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/etc/dropwatch.yaml", p)
}

func TestSetRedisAddr(t *testing.T) {
	c := Default().Cache
	require.NoError(t, c.SetRedisAddr("redis.example"))
	assert.Equal(t, "redis.example:6379", c.Redis.Addr())

	require.NoError(t, c.SetRedisAddr(":6390"))
	assert.Equal(t, "redis.example:6390", c.Redis.Addr())
}
