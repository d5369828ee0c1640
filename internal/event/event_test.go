package event_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victornm/solarium/internal/event"
)

func TestBus_PublishSubscribe(t *testing.T) {
	tests := map[string]struct {
		published  []string
		subscribed map[string][]string
		want       map[string][]string
	}{
		"subscriber only receives the events it subscribed to": {
			published:  []string{"attempt.submitted", "leaderboard.updated"},
			subscribed: map[string][]string{"leaderboard": {"attempt.submitted"}},
			want:       map[string][]string{"leaderboard": {"attempt.submitted"}},
		},
		"repeated events are all delivered": {
			published:  []string{"attempt.submitted", "attempt.submitted"},
			subscribed: map[string][]string{"leaderboard": {"attempt.submitted"}},
			want:       map[string][]string{"leaderboard": {"attempt.submitted", "attempt.submitted"}},
		},
		"every subscriber of an event receives it": {
			published: []string{"attempt.submitted"},
			subscribed: map[string][]string{
				"leaderboard": {"attempt.submitted"},
				"metrics":     {"attempt.submitted"},
			},
			want: map[string][]string{
				"leaderboard": {"attempt.submitted"},
				"metrics":     {"attempt.submitted"},
			},
		},
		"events without subscribers are dropped": {
			published:  []string{"quiz.deleted"},
			subscribed: map[string][]string{"leaderboard": {"attempt.submitted"}},
			want:       map[string][]string{},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var mu sync.Mutex
			got := make(map[string][]string)

			b := event.NewBus(event.WithWorkers(2))
			for sub, names := range tt.subscribed {
				for _, n := range names {
					b.Subscribe(n, func(_ context.Context, e event.Event) error {
						mu.Lock()
						got[sub] = append(got[sub], e.Name())
						mu.Unlock()
						return nil
					})
				}
			}

			for _, n := range tt.published {
				b.Publish(context.Background(), eventWithName(n))
			}
			b.Stop()

			require.Len(t, got, len(tt.want))
			for sub, want := range tt.want {
				assert.ElementsMatch(t, want, got[sub], "subscriber %s", sub)
			}
		})
	}
}

func TestBus_HandlerPanicDoesNotStopOthers(t *testing.T) {
	b := event.NewBus()

	var (
		mu       sync.Mutex
		received []event.Event
	)
	b.Subscribe("e1", func(context.Context, event.Event) error {
		panic("boom")
	})
	b.Subscribe("e1", func(_ context.Context, e event.Event) error {
		mu.Lock()
		received = append(received, e)
		mu.Unlock()
		return nil
	})

	b.Publish(context.Background(), eventWithName("e1"))
	b.Publish(context.Background(), eventWithName("e1"))
	b.Stop()

	assert.Len(t, received, 2)
}

func TestBus_HandlerOutlivesPublisherContext(t *testing.T) {
	b := event.NewBus(event.WithTimeout(time.Second))

	var handlerErr error
	b.Subscribe("e1", func(ctx context.Context, _ event.Event) error {
		handlerErr = ctx.Err()
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b.Publish(ctx, eventWithName("e1"))
	b.Stop()

	assert.NoError(t, handlerErr)
}

func TestBus_ChainedPublish(t *testing.T) {
	b := event.NewBus()

	var got []string
	var mu sync.Mutex
	b.Subscribe("first", func(ctx context.Context, _ event.Event) error {
		b.Publish(ctx, eventWithName("second"))
		return nil
	})
	b.Subscribe("second", func(_ context.Context, e event.Event) error {
		mu.Lock()
		got = append(got, e.Name())
		mu.Unlock()
		return nil
	})

	b.Publish(context.Background(), eventWithName("first"))
	b.Stop()

	assert.Equal(t, []string{"second"}, got)
}

type eventWithName string

func (e eventWithName) Name() string {
	return string(e)
}
