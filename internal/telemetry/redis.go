package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
)

var redisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "solarium",
	Name:      "redis_command_duration_seconds",
	Help:      "Duration of Redis commands, pipelines are reported as a single \"pipeline\" command.",
	Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
}, []string{"cmd", "result"})

// MonitorRedis adds OpenTelemetry tracing and metrics to r, plus a hook exporting command
// latency to Prometheus and logging failures. Successful commands are logged at debug level.
func MonitorRedis(r redis.UniversalClient) error {
	if err := redisotel.InstrumentTracing(r); err != nil {
		return fmt.Errorf("instrument tracing: %w", err)
	}
	if err := redisotel.InstrumentMetrics(r); err != nil {
		return fmt.Errorf("instrument metrics: %w", err)
	}
	r.AddHook(redisHook{})
	return nil
}

type redisHook struct{}

func (redisHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		if err != nil {
			slog.WarnContext(ctx, "redis: dial failed", "addr", addr, "error", err)
			return nil, err
		}
		slog.DebugContext(ctx, "redis: connected", "network", network, "addr", addr)
		return conn, nil
	}
}

func (redisHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		observeRedis(ctx, cmd.Name(), start, err)
		return err
	}
}

func (redisHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		observeRedis(ctx, "pipeline", start, err)
		return err
	}
}

func observeRedis(ctx context.Context, name string, start time.Time, err error) {
	elapsed := time.Since(start)

	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, redis.Nil):
		result = "nil"
	default:
		result = "error"
		slog.ErrorContext(ctx, "redis: command failed", "cmd", name, "latency", elapsed, "error", err)
	}

	redisDuration.WithLabelValues(name, result).Observe(elapsed.Seconds())

	if result != "error" {
		slog.DebugContext(ctx, "redis: command", "cmd", name, "latency", elapsed)
	}
}
