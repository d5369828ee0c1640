package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victornm/solarium/internal/config"
)

type testConfig struct {
	HTTP struct {
		Port int32
	}

	Auth struct {
		Secret string
		TTL    time.Duration
	}

	Storage struct {
		Driver string
	}

	Redis struct {
		Addrs []string
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "config.yaml", `
http:
  port: 8080
auth:
  secret: from-file
  ttl: 90m
redis:
  addrs:
    - localhost:6379
`)
	dotEnv := writeFile(t, dir, ".env", "STORAGE_DRIVER=memory\n")
	t.Cleanup(func() { os.Unsetenv("STORAGE_DRIVER") })

	t.Setenv("AUTH_SECRET", "from-env")

	var c testConfig
	c.HTTP.Port = 1
	c.Storage.Driver = "postgres"

	require.NoError(t, config.Load(file, &c, config.WithDotEnv(dotEnv)))
	assert.Equal(t, int32(8080), c.HTTP.Port)
	assert.Equal(t, "from-env", c.Auth.Secret)
	assert.Equal(t, 90*time.Minute, c.Auth.TTL)
	assert.Equal(t, "memory", c.Storage.Driver, "values from .env should be visible")
	assert.Equal(t, []string{"localhost:6379"}, c.Redis.Addrs)
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "config.yaml", "http:\n  port: 9000\n")

	var c testConfig
	c.Auth.TTL = time.Hour
	c.Storage.Driver = "postgres"

	require.NoError(t, config.Load(file, &c, config.WithDotEnv()))
	assert.Equal(t, int32(9000), c.HTTP.Port)
	assert.Equal(t, time.Hour, c.Auth.TTL, "defaults set on the struct should survive")
	assert.Equal(t, "postgres", c.Storage.Driver)
}

func TestLoad_EnvPrefix(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "config.yaml", "auth:\n  secret: from-file\n")

	t.Setenv("AUTH_SECRET", "ignored")
	t.Setenv("SOLARIUM_AUTH_SECRET", "from-env")
	t.Setenv("SOLARIUM_REDIS_ADDRS", "a:6379,b:6379")

	var c testConfig
	require.NoError(t, config.Load(file, &c, config.WithDotEnv(), config.WithEnvPrefix("solarium")))
	assert.Equal(t, "from-env", c.Auth.Secret)
	assert.Equal(t, []string{"a:6379", "b:6379"}, c.Redis.Addrs)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := map[string]struct {
		file string
		opts []config.Option
	}{
		"missing file": {
			file: filepath.Join(dir, "missing.yaml"),
			opts: []config.Option{config.WithDotEnv()},
		},
		"broken yaml": {
			file: writeFile(t, dir, "broken.yaml", "http: [port\n"),
			opts: []config.Option{config.WithDotEnv()},
		},
		"broken dotenv": {
			file: writeFile(t, dir, "ok.yaml", "http:\n  port: 1\n"),
			opts: []config.Option{config.WithDotEnv(writeFile(t, dir, "bad.env", "A='unterminated\n"))},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var c testConfig
			assert.Error(t, config.Load(tt.file, &c, tt.opts...))
		})
	}
}
