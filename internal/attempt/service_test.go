package attempt_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victornm/solarium/internal/attempt"
	"github.com/victornm/solarium/internal/catalog"
	"github.com/victornm/solarium/internal/domain"
	"github.com/victornm/solarium/internal/errors"
	"github.com/victornm/solarium/internal/event"
	"github.com/victornm/solarium/internal/quiz"
	"github.com/victornm/solarium/internal/storage/memory"
)

func TestGrade(t *testing.T) {
	questions := []domain.Question{
		{ID: 1, Type: domain.QuestionTypeMultipleChoice, Options: []string{"Jupiter", "Saturn"}, CorrectAnswer: "Jupiter", Points: 2},
		{ID: 2, Type: domain.QuestionTypeTrueFalse, CorrectAnswer: "false", Points: 1},
		{ID: 3, Type: domain.QuestionTypeText, CorrectAnswer: "Olympus Mons", Explanation: "on Mars", Points: 3},
	}

	tests := map[string]struct {
		answers        []string
		wantCorrect    []bool
		wantPoints     int
		wantPercentage string
	}{
		"all correct": {
			answers:        []string{"Jupiter", "false", "Olympus Mons"},
			wantCorrect:    []bool{true, true, true},
			wantPoints:     6,
			wantPercentage: "100",
		},
		"text and boolean answers ignore case and spacing": {
			answers:        []string{" Jupiter ", "FALSE", "  olympus   mons "},
			wantCorrect:    []bool{true, true, true},
			wantPoints:     6,
			wantPercentage: "100",
		},
		"multiple choice is case sensitive": {
			answers:        []string{"jupiter", "false", "x"},
			wantCorrect:    []bool{false, true, false},
			wantPoints:     1,
			wantPercentage: "33.33",
		},
		"missing answers count as wrong": {
			answers:        []string{"Jupiter"},
			wantCorrect:    []bool{true, false, false},
			wantPoints:     2,
			wantPercentage: "33.33",
		},
		"two out of three rounds to two decimals": {
			answers:        []string{"Saturn", "false", "olympus mons"},
			wantCorrect:    []bool{false, true, true},
			wantPoints:     4,
			wantPercentage: "66.67",
		},
		"no answers": {
			answers:        nil,
			wantCorrect:    []bool{false, false, false},
			wantPoints:     0,
			wantPercentage: "0",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			a := attempt.Grade(questions, tt.answers)

			require.Len(t, a.Results, len(questions))
			got := make([]bool, 0, len(a.Results))
			correct := 0
			for i, r := range a.Results {
				got = append(got, r.Correct)
				if r.Correct {
					correct++
				}
				assert.Equal(t, questions[i].ID, r.QuestionID)
				assert.Equal(t, questions[i].CorrectAnswer, r.CorrectAnswer)
			}

			assert.Equal(t, tt.wantCorrect, got)
			assert.Equal(t, correct, a.Correct)
			assert.Equal(t, 3, a.Total)
			assert.Equal(t, 6, a.MaxPoints)
			assert.Equal(t, tt.wantPoints, a.Points)
			assert.True(t, decimal.RequireFromString(tt.wantPercentage).Equal(a.Percentage),
				"want %s, got %s", tt.wantPercentage, a.Percentage)
		})
	}
}

func TestService_Submit(t *testing.T) {
	ctx := context.Background()
	env := makeEnv(t)

	player := gofakeit.Username()
	a, err := env.attempts.Submit(ctx, attempt.SubmitRequest{
		QuizID:  env.quizID,
		Player:  " " + player + " ",
		Answers: []string{"Jupiter", "true"},
	})
	require.NoError(t, err)
	env.bus.Stop()

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, player, a.Player)
	assert.Equal(t, 1, a.Correct)
	assert.Equal(t, 2, a.Total)
	assert.Equal(t, "50", a.Percentage.String())
	assert.Equal(t, env.now, a.SubmitTime)

	require.Len(t, env.published, 1)
	assert.Equal(t, a.ID, env.published[0].Attempt.ID)

	history, err := env.attempts.History(ctx, attempt.HistoryRequest{Player: player})
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, a.ID, history[0].ID)
}

func TestService_Submit_Invalid(t *testing.T) {
	ctx := context.Background()
	env := makeEnv(t)

	tests := map[string]struct {
		req      attempt.SubmitRequest
		wantCode errors.Code
	}{
		"player is required": {
			req:      attempt.SubmitRequest{QuizID: env.quizID, Player: "  ", Answers: []string{"Jupiter"}},
			wantCode: errors.CodeInvalidArgument,
		},
		"too many answers": {
			req:      attempt.SubmitRequest{QuizID: env.quizID, Player: "p", Answers: []string{"a", "b", "c"}},
			wantCode: errors.CodeInvalidArgument,
		},
		"unknown quiz": {
			req:      attempt.SubmitRequest{QuizID: 404, Player: "p"},
			wantCode: errors.CodeNotFound,
		},
		"quiz without questions": {
			req:      attempt.SubmitRequest{QuizID: env.emptyQuizID, Player: "p"},
			wantCode: errors.CodeInvalidArgument,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := env.attempts.Submit(ctx, tt.req)
			assert.True(t, errors.Is(err, tt.wantCode), "error: %v", err)
		})
	}
}

func TestService_HistoryAndStats(t *testing.T) {
	ctx := context.Background()
	env := makeEnv(t)

	for i, answers := range [][]string{
		{"Jupiter", "false"},
		{"Saturn", "false"},
		{"Saturn", "true"},
	} {
		env.now = env.now.Add(time.Minute)
		_, err := env.attempts.Submit(ctx, attempt.SubmitRequest{
			QuizID:  env.quizID,
			Player:  "ada",
			Answers: answers,
		})
		require.NoError(t, err, "attempt %d", i)
	}

	history, err := env.attempts.History(ctx, attempt.HistoryRequest{Player: "ada", Limit: 2})
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, history[0].SubmitTime.After(history[1].SubmitTime), "newest first")
	assert.Equal(t, "0", history[0].Percentage.String())

	_, err = env.attempts.History(ctx, attempt.HistoryRequest{Player: ""})
	assert.True(t, errors.Is(err, errors.CodeInvalidArgument))

	stats, err := env.attempts.Stats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	byQuiz := make(map[int64]domain.QuizStats)
	for _, st := range stats {
		byQuiz[st.QuizID] = st
	}
	assert.Equal(t, 3, byQuiz[env.quizID].Attempts)
	assert.Equal(t, "50", byQuiz[env.quizID].AveragePercentage.String())
	assert.Equal(t, "100", byQuiz[env.quizID].BestPercentage.String())
	assert.Equal(t, 0, byQuiz[env.emptyQuizID].Attempts)
}

type env struct {
	attempts    *attempt.Service
	bus         *event.Bus
	quizID      int64
	emptyQuizID int64
	now         time.Time

	mu        sync.Mutex
	published []domain.EventAttemptSubmitted
}

func makeEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	e := &env{
		bus: event.NewBus(),
		now: time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return e.now }

	store := memory.New()
	qs := quiz.NewService(quiz.Config{Repo: store, Planets: catalog.New(), Now: clock})

	qz, err := qs.CreateQuiz(ctx, quiz.CreateQuizRequest{Title: "Giants"})
	require.NoError(t, err)
	e.quizID = qz.ID

	empty, err := qs.CreateQuiz(ctx, quiz.CreateQuizRequest{Title: "Empty"})
	require.NoError(t, err)
	e.emptyQuizID = empty.ID

	for _, req := range []quiz.CreateQuestionRequest{
		{Text: "Largest planet?", Type: domain.QuestionTypeMultipleChoice, Options: []string{"Jupiter", "Saturn"}, CorrectAnswer: "Jupiter"},
		{Text: "Saturn is denser than water.", Type: domain.QuestionTypeTrueFalse, CorrectAnswer: "false"},
	} {
		req.QuizID = qz.ID
		_, err := qs.CreateQuestion(ctx, req)
		require.NoError(t, err)
	}

	e.bus.Subscribe(domain.EventNameAttemptSubmitted, func(_ context.Context, ev event.Event) error {
		e.mu.Lock()
		e.published = append(e.published, ev.(domain.EventAttemptSubmitted))
		e.mu.Unlock()
		return nil
	})

	e.attempts = attempt.NewService(attempt.Config{
		EventBus: e.bus,
		Quizzes:  qs,
		Repo:     store,
		Now:      clock,
	})

	return e
}
