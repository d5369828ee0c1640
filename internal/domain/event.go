package domain

// Names of the events published on the in-process bus.
const (
	EventNameAttemptSubmitted   = "attempt.submitted"
	EventNameLeaderboardUpdated = "leaderboard.updated"
	EventNameQuizDeleted        = "quiz.deleted"
)

// EventAttemptSubmitted carries a graded attempt after it has been stored.
type EventAttemptSubmitted struct {
	Attempt Attempt
}

func (EventAttemptSubmitted) Name() string { return EventNameAttemptSubmitted }

// EventLeaderboardUpdated carries the top of a quiz leaderboard.
type EventLeaderboardUpdated struct {
	Leaderboard Leaderboard
}

func (EventLeaderboardUpdated) Name() string { return EventNameLeaderboardUpdated }

type EventQuizDeleted struct {
	QuizID int64
}

func (EventQuizDeleted) Name() string { return EventNameQuizDeleted }
