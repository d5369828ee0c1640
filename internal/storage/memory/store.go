// Package memory keeps every repository in process memory. It backs the demo mode of the
// server and the service tests.
package memory

import (
	"sync"

	"github.com/victornm/solarium/internal/domain"
)

type Store struct {
	mu sync.RWMutex

	seq struct {
		quiz     int64
		question int64
		teacher  int64
	}

	quizzes   map[int64]domain.Quiz
	questions map[int64]domain.Question
	teachers  map[int64]domain.Teacher
	attempts  []domain.Attempt
}

func New() *Store {
	return &Store{
		quizzes:   make(map[int64]domain.Quiz),
		questions: make(map[int64]domain.Question),
		teachers:  make(map[int64]domain.Teacher),
	}
}
