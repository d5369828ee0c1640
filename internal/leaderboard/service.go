package leaderboard

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/victornm/solarium/internal/domain"
	"github.com/victornm/solarium/internal/errors"
	"github.com/victornm/solarium/internal/event"
)

const (
	publishInterval = 200 * time.Millisecond
	defaultLimit    = 10
	maxLimit        = 100
)

type Config struct {
	EventBus *event.Bus
	Redis    redis.UniversalClient
	Prefix   string
}

type Service struct {
	eb     *event.Bus
	redis  redis.UniversalClient
	prefix string
}

func NewService(c Config) *Service {
	s := &Service{
		eb:     c.EventBus,
		redis:  c.Redis,
		prefix: c.Prefix,
	}

	s.eb.Subscribe(domain.EventNameAttemptSubmitted, func(ctx context.Context, e event.Event) error {
		return s.RecordAttempt(ctx, e.(domain.EventAttemptSubmitted))
	})

	s.eb.Subscribe(domain.EventNameQuizDeleted, func(ctx context.Context, e event.Event) error {
		return s.Reset(ctx, e.(domain.EventQuizDeleted).QuizID)
	})

	return s
}

type GetLeaderboardRequest struct {
	QuizID int64
	Limit  int
}

// GetLeaderboard returns the best players of a quiz, best score first.
func (s *Service) GetLeaderboard(ctx context.Context, req GetLeaderboardRequest) (*domain.Leaderboard, error) {
	if req.Limit <= 0 {
		req.Limit = defaultLimit
	}
	if req.Limit > maxLimit {
		req.Limit = maxLimit
	}

	res, err := s.redis.ZRevRangeWithScores(ctx, s.getLeaderboardKey(req.QuizID), 0, int64(req.Limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("get leaderboard: %w", err)
	}

	if len(res) == 0 {
		return nil, errors.NotFound("leaderboard not found: quiz=%d", req.QuizID)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(res))
	for _, z := range res {
		entries = append(entries, domain.LeaderboardEntry{
			Player: z.Member.(string),
			Score:  z.Score,
		})
	}

	return &domain.Leaderboard{
		QuizID:  req.QuizID,
		Entries: entries,
	}, nil
}

// RecordAttempt keeps the best percentage of the player in the quiz leaderboard.
func (s *Service) RecordAttempt(ctx context.Context, e domain.EventAttemptSubmitted) error {
	a := e.Attempt

	if err := s.redis.ZAddArgs(ctx, s.getLeaderboardKey(a.QuizID), redis.ZAddArgs{
		GT: true,
		Members: []redis.Z{{
			Score:  a.Percentage.InexactFloat64(),
			Member: a.Player,
		}},
	}).Err(); err != nil {
		return fmt.Errorf("update leaderboard: %w", err)
	}

	return s.schedulePublishLeaderboard(ctx, a)
}

// schedulePublishLeaderboard publishes at most one leaderboard change per quiz and interval.
// The attempt that opens the window waits for it to close and publishes the board as it is
// then, so attempts recorded meanwhile are part of the update.
func (s *Service) schedulePublishLeaderboard(ctx context.Context, a domain.Attempt) error {
	ok, err := s.redis.SetNX(ctx, s.getLeaderboardTimeKey(a.QuizID), a.SubmitTime.UnixMilli(), publishInterval).Result()
	if err != nil {
		return fmt.Errorf("setnx: %w", err)
	}

	if !ok {
		return nil
	}

	t := time.NewTimer(publishInterval)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("wait publish window: quiz=%d: %w", a.QuizID, ctx.Err())
	case <-t.C:
	}

	l, err := s.GetLeaderboard(ctx, GetLeaderboardRequest{
		QuizID: a.QuizID,
	})
	if err != nil {
		return fmt.Errorf("get leaderboard failed: quiz=%d: %w", a.QuizID, err)
	}

	s.eb.Publish(ctx, domain.EventLeaderboardUpdated{
		Leaderboard: *l,
	})

	return nil
}

// Reset drops the leaderboard of a quiz.
func (s *Service) Reset(ctx context.Context, quizID int64) error {
	if err := s.redis.Del(ctx, s.getLeaderboardKey(quizID), s.getLeaderboardTimeKey(quizID)).Err(); err != nil {
		return fmt.Errorf("reset leaderboard: quiz=%d: %w", quizID, err)
	}
	return nil
}

func (s *Service) getLeaderboardKey(quizID int64) string {
	return fmt.Sprintf("%s:quiz:%d:leaderboard", s.prefix, quizID)
}

func (s *Service) getLeaderboardTimeKey(quizID int64) string {
	return fmt.Sprintf("%s:quiz:%d:time", s.prefix, quizID)
}
