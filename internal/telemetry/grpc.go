package telemetry

import (
	"context"
	"log/slog"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var grpcHandled = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "solarium",
	Name:      "grpc_handled_total",
	Help:      "gRPC calls completed on the server, by method and status code.",
}, []string{"method", "code"})

// GRPCServerOptions returns the interceptor chains of the gRPC server: handled call metrics,
// a log line per finished call and recovery from handler panics into Internal errors.
func GRPCServerOptions() []grpc.ServerOption {
	l := grpcServerLogger(slog.Default())
	logOpts := []logging.Option{
		logging.WithLogOnEvents(logging.FinishCall),
	}
	onPanic := recovery.WithRecoveryHandlerContext(recoverGRPC)

	return []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			countUnary,
			logging.UnaryServerInterceptor(l, logOpts...),
			recovery.UnaryServerInterceptor(onPanic),
		),
		grpc.ChainStreamInterceptor(
			countStream,
			logging.StreamServerInterceptor(l, logOpts...),
			recovery.StreamServerInterceptor(onPanic),
		),
	}
}

func recoverGRPC(ctx context.Context, p any) error {
	slog.ErrorContext(ctx, "grpc: panic recovered", "panic", p)
	return status.Error(codes.Internal, "internal error")
}

func countUnary(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	resp, err := handler(ctx, req)
	grpcHandled.WithLabelValues(info.FullMethod, status.Code(err).String()).Inc()
	return resp, err
}

func countStream(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	err := handler(srv, ss)
	grpcHandled.WithLabelValues(info.FullMethod, status.Code(err).String()).Inc()
	return err
}

func grpcServerLogger(l *slog.Logger) logging.Logger {
	return logging.LoggerFunc(func(ctx context.Context, lvl logging.Level, msg string, fields ...any) {
		l.Log(ctx, slog.Level(lvl), msg, fields...)
	})
}
