package telemetry_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victornm/solarium/internal/telemetry"
)

func TestSetupLogger(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	l := telemetry.SetupLogger(&buf, telemetry.LogConfig{Level: "warn", Format: "json"})

	l.Info("hidden")
	l.Warn("shown", "planet", "mars")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), "should write a single json line: %s", buf.String())
	assert.Equal(t, "shown", line["msg"])
	assert.Equal(t, "mars", line["planet"])
}

func TestHTTPMiddleware(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	telemetry.SetupLogger(&buf, telemetry.LogConfig{Level: "info", Format: "text"})

	e := gin.New()
	e.Use(telemetry.HTTPMiddleware())
	e.GET("/planets/:slug", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/planets/mars", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Contains(t, buf.String(), "path=/planets/mars")
	assert.Contains(t, buf.String(), "status=418")
}

func TestMonitorRedis(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	telemetry.SetupLogger(&buf, telemetry.LogConfig{Level: "debug", Format: "text"})

	rs := miniredis.RunT(t)
	rc := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{rs.Addr()}})
	t.Cleanup(func() { rc.Close() })

	require.NoError(t, telemetry.MonitorRedis(rc))

	ctx := context.Background()
	require.NoError(t, rc.Set(ctx, "planet", "mars", 0).Err())
	require.ErrorIs(t, rc.Get(ctx, "moon").Err(), redis.Nil)
	require.Error(t, rc.Do(ctx, "NOSUCHCOMMAND").Err())

	out := buf.String()
	assert.Contains(t, out, "cmd=set")
	assert.Contains(t, out, "redis: command failed")
}
