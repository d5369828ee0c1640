package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_MemoryDriver(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rs := miniredis.RunT(t)

	c := DefaultConfig()
	c.Log.Level = "error"
	c.Auth.Secret = "secret"
	c.Auth.TTL = time.Hour
	c.Auth.Admin.Email = "admin@example.com"
	c.Auth.Admin.Password = "change-me-please"
	c.Storage.Driver = DriverMemory
	c.Redis.Addrs = []string{rs.Addr()}
	c.Redis.Prefix = "test"
	c.CORS.AllowOrigins = []string{"http://localhost:3000"}

	s, err := Init(c)
	require.NoError(t, err)
	t.Cleanup(s.eb.Stop)

	h := s.http.Handler

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"redis":"ok"}`, w.Body.String())

	body, _ := json.Marshal(map[string]string{"email": "admin@example.com", "password": "change-me-please"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://localhost:3000")

	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInit_Invalid(t *testing.T) {
	rs := miniredis.RunT(t)

	tests := map[string]func(c *Config){
		"missing secret": func(c *Config) {
			c.Auth.Secret = ""
		},
		"unknown driver": func(c *Config) {
			c.Storage.Driver = "sqlite"
		},
		"weak admin password": func(c *Config) {
			c.Auth.Admin.Email = "admin@example.com"
			c.Auth.Admin.Password = "short"
		},
	}

	for name, modify := range tests {
		t.Run(name, func(t *testing.T) {
			c := DefaultConfig()
			c.Log.Level = "error"
			c.Auth.Secret = "secret"
			c.Storage.Driver = DriverMemory
			c.Redis.Addrs = []string{rs.Addr()}
			modify(&c)

			_, err := Init(c)
			assert.Error(t, err)
		})
	}
}

func TestInitInfra_ClosesRedisOnStorageFailure(t *testing.T) {
	rs := miniredis.RunT(t)

	c := DefaultConfig()
	c.Log.Level = "error"
	c.Redis.Addrs = []string{rs.Addr()}
	c.Storage.Driver = "sqlite"

	s := &Server{c: c}
	require.Error(t, s.initInfra())
	assert.Nil(t, s.infra.redis)

	assert.Eventually(t, func() bool {
		return rs.CurrentConnectionCount() == 0
	}, time.Second, 10*time.Millisecond, "redis connections should be closed")
}
