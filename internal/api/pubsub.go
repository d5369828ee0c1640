package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/victornm/solarium/internal/domain"
)

const maxConcurrent = 100

type (
	Notification struct {
		Event string `json:"event"`
		Data  any    `json:"data"`
	}

	Leaderboard struct {
		QuizID  int64              `json:"quiz_id"`
		Entries []LeaderboardEntry `json:"entries"`
	}

	LeaderboardEntry struct {
		Rank   int    `json:"rank"`
		Player string `json:"player"`
		Score  string `json:"score"`
	}
)

// PublishLeaderboardUpdated sends the new leaderboard to the quiz channel and to the channel of
// every ranked player.
func (a *API) PublishLeaderboardUpdated(ctx context.Context, e domain.EventLeaderboardUpdated) error {
	l := e.Leaderboard

	data := Leaderboard{
		QuizID:  l.QuizID,
		Entries: make([]LeaderboardEntry, 0, len(l.Entries)),
	}

	for i, entry := range l.Entries {
		data.Entries = append(data.Entries, LeaderboardEntry{
			Rank:   i + 1,
			Player: entry.Player,
			Score:  strconv.FormatFloat(entry.Score, 'f', -1, 64),
		})
	}

	b, err := json.Marshal(Notification{
		Event: e.Name(),
		Data:  data,
	})
	if err != nil {
		return fmt.Errorf("pubsub: marshal %s: %w", e.Name(), err)
	}

	var eg errgroup.Group
	eg.SetLimit(maxConcurrent)

	eg.Go(func() error {
		return a.publish(ctx, QuizChannel(a.prefix, l.QuizID), b)
	})

	for _, entry := range data.Entries {
		eg.Go(func() error {
			return a.publish(ctx, PlayerChannel(a.prefix, entry.Player), b)
		})
	}

	return eg.Wait()
}

func (a *API) publish(ctx context.Context, channel string, msg []byte) error {
	if err := a.redis.Publish(ctx, channel, msg).Err(); err != nil {
		return fmt.Errorf("pubsub: publish %s: %w", channel, err)
	}
	return nil
}

// QuizChannel is the Redis channel carrying the leaderboard of a quiz.
func QuizChannel(prefix string, quizID int64) string {
	return fmt.Sprintf("%s:quiz:%d", prefix, quizID)
}

// PlayerChannel is the Redis channel carrying leaderboards a player is ranked in.
func PlayerChannel(prefix, player string) string {
	return fmt.Sprintf("%s:player:%s", prefix, player)
}
