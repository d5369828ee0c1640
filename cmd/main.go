package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/victornm/solarium/internal/config"
	"github.com/victornm/solarium/internal/server"
)

func main() {
	if err := run(); err != nil {
		slog.Error("solarium: exit", "error", err)
		os.Exit(1)
	}
}

func run() error {
	p := os.Getenv("CONFIG_PATH")
	if p == "" {
		return fmt.Errorf("CONFIG_PATH not set")
	}

	c := server.DefaultConfig()
	if err := config.Load(p, &c); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	s, err := server.Init(c)
	if err != nil {
		return fmt.Errorf("init server: %w", err)
	}

	return serve(s)
}

type service interface {
	Start() error
	Shutdown()
}

// serve runs s until a termination signal arrives or s stops on its own. A server that stops
// by itself is an error, even if it reported none.
func serve(s service) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, os.Interrupt)
	defer stop()

	done := make(chan error, 1)
	go func() { done <- s.Start() }()

	select {
	case err := <-done:
		s.Shutdown()
		if err == nil {
			err = fmt.Errorf("server stopped unexpectedly")
		}
		return err

	case <-ctx.Done():
		s.Shutdown()
		return <-done
	}
}
