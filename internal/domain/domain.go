package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quiz is a named set of ordered questions.
type Quiz struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Active       bool       `json:"active"`
	DisplayOrder int        `json:"display_order"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Questions    []Question `json:"questions,omitempty"`
}

type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeTrueFalse      QuestionType = "true_false"
	QuestionTypeText           QuestionType = "text"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeMultipleChoice, QuestionTypeTrueFalse, QuestionTypeText:
		return true
	}
	return false
}

// Question belongs to a quiz and optionally refers to a planet of the catalog by slug.
type Question struct {
	ID            int64        `json:"id"`
	QuizID        int64        `json:"quiz_id"`
	PlanetID      string       `json:"planet_id,omitempty"`
	Text          string       `json:"text"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correct_answer"`
	Explanation   string       `json:"explanation,omitempty"`
	Points        int          `json:"points"`
	Order         int          `json:"order"`
	Active        bool         `json:"active"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

type Role string

const (
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleTeacher || r == RoleAdmin
}

// Teacher is a user allowed to manage quiz content. Admins can also manage teachers.
type Teacher struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (t Teacher) IsAdmin() bool {
	return t.Role == RoleAdmin
}

// Attempt is one graded run through a quiz by a player.
type Attempt struct {
	ID         string          `json:"id"`
	QuizID     int64           `json:"quiz_id"`
	Player     string          `json:"player"`
	Results    []AnswerResult  `json:"results"`
	Correct    int             `json:"correct"`
	Total      int             `json:"total"`
	Points     int             `json:"points"`
	MaxPoints  int             `json:"max_points"`
	Percentage decimal.Decimal `json:"percentage"`
	SubmitTime time.Time       `json:"submit_time"`
}

// AnswerResult is the outcome of a single question within an attempt.
type AnswerResult struct {
	QuestionID    int64  `json:"question_id"`
	Answer        string `json:"answer"`
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation,omitempty"`
	Points        int    `json:"points"`
}

// QuizStats aggregates the attempts of a quiz.
type QuizStats struct {
	QuizID            int64           `json:"quiz_id"`
	Title             string          `json:"title"`
	Attempts          int             `json:"attempts"`
	AveragePercentage decimal.Decimal `json:"average_percentage"`
	BestPercentage    decimal.Decimal `json:"best_percentage"`
}

// Leaderboard represents the best score of each player within a quiz.
// The list is sorted by score in descending order.
type Leaderboard struct {
	QuizID  int64              `json:"quiz_id"`
	Entries []LeaderboardEntry `json:"entries"`
}

type LeaderboardEntry struct {
	Player string  `json:"player"`
	Score  float64 `json:"score"`
}
