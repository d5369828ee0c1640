package main

import (
	"context"
	"fmt"

	"github.com/victornm/solarium/internal/domain"
	"github.com/victornm/solarium/internal/quiz"
)

type sampleQuiz struct {
	quiz      quiz.CreateQuizRequest
	questions []quiz.CreateQuestionRequest
}

var samples = []sampleQuiz{
	{
		quiz: quiz.CreateQuizRequest{
			Title:        "Meet the planets",
			Description:  "A first tour of the eight planets.",
			DisplayOrder: 1,
		},
		questions: []quiz.CreateQuestionRequest{
			{
				PlanetID:      "mercury",
				Text:          "Which planet is closest to the Sun?",
				Type:          domain.QuestionTypeMultipleChoice,
				Options:       []string{"Mercury", "Venus", "Earth", "Mars"},
				CorrectAnswer: "Mercury",
				Explanation:   "Mercury orbits about 58 million km from the Sun.",
			},
			{
				PlanetID:      "jupiter",
				Text:          "Which planet is the largest?",
				Type:          domain.QuestionTypeMultipleChoice,
				Options:       []string{"Saturn", "Jupiter", "Neptune", "Uranus"},
				CorrectAnswer: "Jupiter",
				Explanation:   "Jupiter is more than twice as massive as all other planets combined.",
			},
			{
				PlanetID:      "venus",
				Text:          "Venus is the hottest planet in the Solar System.",
				Type:          domain.QuestionTypeTrueFalse,
				CorrectAnswer: "true",
				Explanation:   "Its thick CO2 atmosphere traps heat, making it hotter than Mercury.",
			},
			{
				PlanetID:      "mars",
				Text:          "What is the name of the tallest volcano on Mars?",
				Type:          domain.QuestionTypeText,
				CorrectAnswer: "Olympus Mons",
				Explanation:   "Olympus Mons rises about 22 km above the surrounding plains.",
			},
		},
	},
	{
		quiz: quiz.CreateQuizRequest{
			Title:        "Giants and their moons",
			Description:  "Gas giants, ice giants and the worlds that orbit them.",
			DisplayOrder: 2,
		},
		questions: []quiz.CreateQuestionRequest{
			{
				PlanetID:      "saturn",
				Text:          "Saturn would float in a large enough bathtub of water.",
				Type:          domain.QuestionTypeTrueFalse,
				CorrectAnswer: "true",
				Explanation:   "Saturn's mean density is lower than the density of water.",
			},
			{
				PlanetID:      "saturn",
				Text:          "What is Saturn's largest moon?",
				Type:          domain.QuestionTypeMultipleChoice,
				Options:       []string{"Titan", "Enceladus", "Europa", "Io"},
				CorrectAnswer: "Titan",
				Explanation:   "Titan is the only moon with a thick atmosphere.",
			},
			{
				PlanetID:      "uranus",
				Text:          "Which planet rotates on its side?",
				Type:          domain.QuestionTypeMultipleChoice,
				Options:       []string{"Neptune", "Uranus", "Saturn"},
				CorrectAnswer: "Uranus",
				Explanation:   "Uranus has an axial tilt of about 98 degrees.",
			},
			{
				PlanetID:      "neptune",
				Text:          "Which moon of Neptune orbits backwards?",
				Type:          domain.QuestionTypeText,
				CorrectAnswer: "Triton",
				Explanation:   "Triton's retrograde orbit suggests it was captured.",
			},
		},
	},
}

// seed creates the sample quizzes and returns how many were created.
func seed(ctx context.Context, qs *quiz.Service) (int, error) {
	for i, s := range samples {
		q, err := qs.CreateQuiz(ctx, s.quiz)
		if err != nil {
			return i, fmt.Errorf("create quiz %q: %w", s.quiz.Title, err)
		}

		for _, req := range s.questions {
			req.QuizID = q.ID
			if _, err := qs.CreateQuestion(ctx, req); err != nil {
				return i, fmt.Errorf("create question %q: %w", req.Text, err)
			}
		}
	}

	return len(samples), nil
}
