package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/victornm/solarium/internal/api"
	"github.com/victornm/solarium/internal/attempt"
	"github.com/victornm/solarium/internal/auth"
	"github.com/victornm/solarium/internal/catalog"
	"github.com/victornm/solarium/internal/event"
	"github.com/victornm/solarium/internal/leaderboard"
	"github.com/victornm/solarium/internal/quiz"
	"github.com/victornm/solarium/internal/storage/memory"
	"github.com/victornm/solarium/internal/storage/postgres"
	"github.com/victornm/solarium/internal/teacher"
	"github.com/victornm/solarium/internal/telemetry"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	HTTP struct {
		Port int32
	}

	GRPC struct {
		Port int32
	}

	Log telemetry.LogConfig

	Auth struct {
		Secret string
		TTL    time.Duration

		// Admin is created on start when there is no teacher yet.
		Admin struct {
			Email    string
			Password string
			Name     string
		}
	}

	Storage struct {
		Driver  string
		Migrate bool

		Postgres struct {
			Addr string
			User string
			Pass string
			Name string
		}
	}

	Redis struct {
		Addrs  []string
		Pass   string
		Prefix string
	}

	CORS struct {
		AllowOrigins []string
	}
}

// DefaultConfig returns the values used for every key the config file leaves out.
func DefaultConfig() Config {
	var c Config
	c.HTTP.Port = 8080
	c.GRPC.Port = 8081
	c.Log.Level = "info"
	c.Log.Format = "text"
	c.Auth.TTL = 24 * time.Hour
	c.Auth.Admin.Name = "Administrator"
	c.Storage.Driver = DriverPostgres
	c.Redis.Addrs = []string{"localhost:6379"}
	c.Redis.Prefix = "solarium"
	return c
}

// Store is everything the services persist.
type Store interface {
	quiz.Repository
	attempt.Repository
	teacher.Repository
}

type Server struct {
	c Config

	eb *event.Bus

	infra struct {
		redis    redis.UniversalClient
		postgres *pgxpool.Pool
		store    Store
	}

	service struct {
		catalog     *catalog.Catalog
		quiz        *quiz.Service
		attempt     *attempt.Service
		teacher     *teacher.Service
		leaderboard *leaderboard.Service
	}

	tokens *auth.Tokens
	health *health.Server

	http *http.Server
	grpc *grpc.Server
}

func Init(c Config) (*Server, error) {
	telemetry.SetupLogger(os.Stdout, c.Log)

	s := &Server{c: c}

	if c.Auth.Secret == "" {
		return nil, fmt.Errorf("server: auth.secret is required")
	}

	s.eb = event.NewBus()

	if err := s.initInfra(); err != nil {
		return nil, fmt.Errorf("server: init infra: %w", err)
	}

	s.initService()

	if err := s.bootstrapAdmin(); err != nil {
		return nil, fmt.Errorf("server: bootstrap admin: %w", err)
	}

	s.initAPI()
	return s, nil
}

func (s *Server) initInfra() error {
	if err := s.initRedis(); err != nil {
		return fmt.Errorf("redis: %w", err)
	}

	if err := s.initStorage(); err != nil {
		if cerr := s.infra.redis.Close(); cerr != nil {
			slog.Error("server: close redis failed", "error", cerr)
		}
		s.infra.redis = nil
		return fmt.Errorf("storage: %w", err)
	}

	return nil
}

func (s *Server) initRedis() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	r := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    s.c.Redis.Addrs,
		Password: s.c.Redis.Pass,
	})

	if err := telemetry.MonitorRedis(r); err != nil {
		return err
	}

	if err := r.Ping(ctx).Err(); err != nil {
		return err
	}

	s.infra.redis = r
	return nil
}

func (s *Server) initStorage() error {
	switch s.c.Storage.Driver {
	case DriverMemory:
		slog.Warn("server: using the in-memory store, data is lost on restart")
		s.infra.store = memory.New()
		return nil

	case DriverPostgres, "":
		return s.initPostgres()

	default:
		return fmt.Errorf("unknown driver %q", s.c.Storage.Driver)
	}
}

func (s *Server) initPostgres() error {
	pc := s.c.Storage.Postgres

	if s.c.Storage.Migrate {
		if err := migrateUp(postgres.DSN("pgx5", pc.Addr, pc.User, pc.Pass, pc.Name)); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := postgres.Connect(ctx, postgres.DSN("postgres", pc.Addr, pc.User, pc.Pass, pc.Name))
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}

	s.infra.postgres = db
	s.infra.store = postgres.New(db)
	return nil
}

func migrateUp(dsn string) error {
	m, err := postgres.NewMigrator(dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		return err
	}

	v, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("migrate version: %w", err)
	}

	slog.Info("server: schema migrated", "version", v, "dirty", dirty)
	return nil
}

func (s *Server) initService() {
	s.tokens = auth.NewTokens(auth.Config{
		Secret: s.c.Auth.Secret,
		TTL:    s.c.Auth.TTL,
	})

	s.service.catalog = catalog.New()

	s.service.quiz = quiz.NewService(quiz.Config{
		EventBus: s.eb,
		Repo:     s.infra.store,
		Planets:  s.service.catalog,
	})

	s.service.attempt = attempt.NewService(attempt.Config{
		EventBus: s.eb,
		Quizzes:  s.service.quiz,
		Repo:     s.infra.store,
	})

	s.service.teacher = teacher.NewService(teacher.Config{
		Repo:   s.infra.store,
		Tokens: s.tokens,
	})

	s.service.leaderboard = leaderboard.NewService(leaderboard.Config{
		EventBus: s.eb,
		Redis:    s.infra.redis,
		Prefix:   s.c.Redis.Prefix,
	})
}

func (s *Server) bootstrapAdmin() error {
	a := s.c.Auth.Admin
	if a.Email == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := s.service.teacher.EnsureAdmin(ctx, teacher.EnsureAdminRequest{
		Email:    a.Email,
		Password: a.Password,
		Name:     a.Name,
	})
	return err
}

func (s *Server) initAPI() {
	e := gin.New()
	e.GET("/metrics", gin.WrapH(promhttp.Handler()))
	pprof.Register(e, "/debug/pprof")
	e.GET("/healthz", s.healthz)

	e.Use(gin.Recovery(), telemetry.HTTPMiddleware(), cors.New(s.corsConfig()))

	s.grpc = grpc.NewServer(telemetry.GRPCServerOptions()...)
	s.health = health.NewServer()
	healthpb.RegisterHealthServer(s.grpc, s.health)

	api.New(api.Config{
		EventBus:     s.eb,
		Catalog:      s.service.catalog,
		Quiz:         s.service.quiz,
		Attempt:      s.service.attempt,
		Teacher:      s.service.teacher,
		Leaderboard:  s.service.leaderboard,
		Tokens:       s.tokens,
		Redis:        s.infra.redis,
		PubsubPrefix: s.c.Redis.Prefix,
	}).Register(e)

	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.c.HTTP.Port),
		Handler:           e,
		ReadHeaderTimeout: 60 * time.Second,
	}
}

func (s *Server) corsConfig() cors.Config {
	cc := cors.Config{
		AllowOrigins: s.c.CORS.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}

	if len(cc.AllowOrigins) == 0 {
		cc.AllowAllOrigins = true
	}

	return cc
}

// healthz reports whether Redis and, when used, PostgreSQL answer.
func (s *Server) healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{"redis": "ok"}
	status := http.StatusOK

	if err := s.infra.redis.Ping(ctx).Err(); err != nil {
		checks["redis"] = err.Error()
		status = http.StatusServiceUnavailable
	}

	if s.infra.postgres != nil {
		checks["postgres"] = "ok"
		if err := s.infra.postgres.Ping(ctx); err != nil {
			checks["postgres"] = err.Error()
			status = http.StatusServiceUnavailable
		}
	}

	c.JSON(status, checks)
}

// Start serves HTTP and gRPC. It returns when both servers stopped, with the first error that
// stopped one of them. Shutdown is not a failure.
func (s *Server) Start() error {
	ctx := context.TODO()

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.c.GRPC.Port))
	if err != nil {
		return fmt.Errorf("grpc server: listen: %w", err)
	}

	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	var eg errgroup.Group
	eg.Go(func() error {
		slog.InfoContext(ctx, fmt.Sprintf("server: gRPC listening on port %d", s.c.GRPC.Port))
		if err := s.grpc.Serve(lis); err != nil {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		slog.InfoContext(ctx, fmt.Sprintf("server: HTTP listening on port %d", s.c.HTTP.Port))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	return eg.Wait()
}

func (s *Server) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.health.Shutdown()
	s.grpc.GracefulStop()
	if err := s.http.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "server: shutdown HTTP failed", "error", err)
	}

	s.eb.Stop()

	if s.infra.postgres != nil {
		s.infra.postgres.Close()
	}
	if err := s.infra.redis.Close(); err != nil {
		slog.ErrorContext(ctx, "server: close redis failed", "error", err)
	}

	slog.InfoContext(ctx, "server: shutdown completed")
}
