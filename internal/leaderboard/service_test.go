package leaderboard_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/victornm/solarium/internal/domain"
	"github.com/victornm/solarium/internal/errors"
	"github.com/victornm/solarium/internal/event"
	"github.com/victornm/solarium/internal/leaderboard"
)

func TestService_RecordAttempt_KeepsBestScore(t *testing.T) {
	ctx := context.Background()
	s := makeService(t)

	for _, e := range []domain.EventAttemptSubmitted{
		submitted(1, "ada", "50"),
		submitted(1, "ada", "100"),
		submitted(1, "ada", "25"),
		submitted(1, "bob", "66.67"),
		submitted(2, "eve", "10"),
	} {
		require.NoError(t, s.RecordAttempt(ctx, e))
	}

	resp, err := s.GetLeaderboard(ctx, leaderboard.GetLeaderboardRequest{QuizID: 1})
	require.NoError(t, err)

	want := &domain.Leaderboard{
		QuizID: 1,
		Entries: []domain.LeaderboardEntry{
			{Player: "ada", Score: 100},
			{Player: "bob", Score: 66.67},
		},
	}
	require.Equal(t, want, resp)

	top, err := s.GetLeaderboard(ctx, leaderboard.GetLeaderboardRequest{QuizID: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, top.Entries, 1)

	require.NoError(t, s.Reset(ctx, 1))
	_, err = s.GetLeaderboard(ctx, leaderboard.GetLeaderboardRequest{QuizID: 1})
	require.True(t, errors.Is(err, errors.CodeNotFound))

	other, err := s.GetLeaderboard(ctx, leaderboard.GetLeaderboardRequest{QuizID: 2})
	require.NoError(t, err)
	require.Len(t, other.Entries, 1)
}

func TestService_PublishLeaderboardUpdated(t *testing.T) {
	type (
		inputs struct {
			receivedEvents []domain.EventAttemptSubmitted
		}

		outputs struct {
			publishedEvents []domain.EventLeaderboardUpdated
		}
	)

	tests := map[string]struct {
		arrange func() inputs
		assert  func(t *testing.T, out outputs)
	}{
		"should publish leaderboard.updated after receiving attempt.submitted": {
			arrange: func() inputs {
				return inputs{
					receivedEvents: []domain.EventAttemptSubmitted{
						submitted(7, "ada", "75"),
					},
				}
			},

			assert: func(t *testing.T, out outputs) {
				require.Len(t, out.publishedEvents, 1)
				require.Equal(t, domain.Leaderboard{
					QuizID: 7,
					Entries: []domain.LeaderboardEntry{
						{Player: "ada", Score: 75},
					},
				}, out.publishedEvents[0].Leaderboard)
			},
		},

		"should publish once per quiz for attempts of different quizzes": {
			arrange: func() inputs {
				return inputs{
					receivedEvents: []domain.EventAttemptSubmitted{
						submitted(1, "ada", "75"),
						submitted(2, "bob", "50"),
					},
				}
			},

			assert: func(t *testing.T, out outputs) {
				require.Len(t, out.publishedEvents, 2)
			},
		},

		"should publish once for attempts of the same quiz within the publish interval": {
			arrange: func() inputs {
				return inputs{
					receivedEvents: []domain.EventAttemptSubmitted{
						submitted(1, "ada", "75"),
						submitted(1, "bob", "50"),
						submitted(1, "eve", "100"),
					},
				}
			},

			assert: func(t *testing.T, out outputs) {
				require.Len(t, out.publishedEvents, 1)
				require.Equal(t, []domain.LeaderboardEntry{
					{Player: "eve", Score: 100},
					{Player: "ada", Score: 75},
					{Player: "bob", Score: 50},
				}, out.publishedEvents[0].Leaderboard.Entries)
			},
		},

		"should include the last attempt of a burst in the published leaderboard": {
			arrange: func() inputs {
				return inputs{
					receivedEvents: []domain.EventAttemptSubmitted{
						submitted(1, "ada", "50"),
						submitted(1, "eve", "100"),
					},
				}
			},

			assert: func(t *testing.T, out outputs) {
				require.Len(t, out.publishedEvents, 1)
				require.Equal(t, []domain.LeaderboardEntry{
					{Player: "eve", Score: 100},
					{Player: "ada", Score: 50},
				}, out.publishedEvents[0].Leaderboard.Entries)
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			in, out := tt.arrange(), outputs{}

			eb := event.NewBus()

			var mu sync.Mutex
			eb.Subscribe(domain.EventNameLeaderboardUpdated, func(ctx context.Context, e event.Event) error {
				mu.Lock()
				out.publishedEvents = append(out.publishedEvents, e.(domain.EventLeaderboardUpdated))
				mu.Unlock()
				return nil
			})

			makeService(t, withEventBus(eb))

			for _, e := range in.receivedEvents {
				eb.Publish(context.Background(), e)
			}

			eb.Stop()

			tt.assert(t, out)
		})
	}
}

func TestService_SubscribesToAttempts(t *testing.T) {
	eb := event.NewBus()
	s := makeService(t, withEventBus(eb))

	eb.Publish(context.Background(), submitted(3, "ada", "40"))
	eb.Stop()

	l, err := s.GetLeaderboard(context.Background(), leaderboard.GetLeaderboardRequest{QuizID: 3})
	require.NoError(t, err)
	require.Equal(t, []domain.LeaderboardEntry{{Player: "ada", Score: 40}}, l.Entries)
}

func TestService_ResetsOnQuizDeleted(t *testing.T) {
	ctx := context.Background()
	eb := event.NewBus()
	s := makeService(t, withEventBus(eb))

	require.NoError(t, s.RecordAttempt(ctx, submitted(7, "ada", "90")))
	require.NoError(t, s.RecordAttempt(ctx, submitted(8, "bob", "10")))

	eb.Publish(ctx, domain.EventQuizDeleted{QuizID: 7})
	eb.Stop()

	_, err := s.GetLeaderboard(ctx, leaderboard.GetLeaderboardRequest{QuizID: 7})
	require.True(t, errors.Is(err, errors.CodeNotFound), "error: %v", err)

	_, err = s.GetLeaderboard(ctx, leaderboard.GetLeaderboardRequest{QuizID: 8})
	require.NoError(t, err)
}

func submitted(quizID int64, player, percentage string) domain.EventAttemptSubmitted {
	return domain.EventAttemptSubmitted{
		Attempt: domain.Attempt{
			QuizID:     quizID,
			Player:     player,
			Percentage: decimal.RequireFromString(percentage),
			SubmitTime: time.Now(),
		},
	}
}

func makeService(t *testing.T, opts ...options) *leaderboard.Service {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	rs := miniredis.RunT(t)
	rc := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs: []string{rs.Addr()},
	})
	t.Cleanup(func() { rc.Close() })
	require.NoError(t, rc.Ping(ctx).Err(), "should be able to ping redis")

	c := leaderboard.Config{
		EventBus: event.NewBus(),
		Redis:    rc,
		Prefix:   "test",
	}

	for _, opt := range opts {
		opt(&c)
	}

	return leaderboard.NewService(c)
}

type options func(c *leaderboard.Config)

func withEventBus(eb *event.Bus) options {
	return func(c *leaderboard.Config) {
		c.EventBus = eb
	}
}
