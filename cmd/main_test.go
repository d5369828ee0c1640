package main

import (
	"errors"
	"os"
	"sync/atomic"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	start     func(stopped <-chan struct{}) error
	stopped   chan struct{}
	shutdowns atomic.Int32
}

func newFakeService(start func(stopped <-chan struct{}) error) *fakeService {
	return &fakeService{start: start, stopped: make(chan struct{})}
}

func (s *fakeService) Start() error { return s.start(s.stopped) }

func (s *fakeService) Shutdown() {
	if s.shutdowns.Add(1) == 1 {
		close(s.stopped)
	}
}

func TestServe(t *testing.T) {
	tests := map[string]struct {
		start   func(stopped <-chan struct{}) error
		wantErr string
	}{
		"start failure is returned": {
			start: func(<-chan struct{}) error {
				return errors.New("http server: listen tcp :8080: address already in use")
			},
			wantErr: "address already in use",
		},
		"returning without error is still a failure": {
			start:   func(<-chan struct{}) error { return nil },
			wantErr: "stopped unexpectedly",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := newFakeService(tt.start)

			err := serve(s)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, int32(1), s.shutdowns.Load(), "should shut down what was started")
		})
	}
}

func TestServe_Signal(t *testing.T) {
	started := make(chan struct{})
	s := newFakeService(func(stopped <-chan struct{}) error {
		close(started)
		<-stopped
		return nil
	})

	go func() {
		<-started
		_ = syscall.Kill(os.Getpid(), syscall.SIGTERM)
	}()

	require.NoError(t, serve(s))
	assert.Equal(t, int32(1), s.shutdowns.Load())
}
