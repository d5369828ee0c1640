// Package api exposes the services over HTTP and fans leaderboard changes out over Redis pub/sub.
package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/victornm/solarium/internal/attempt"
	"github.com/victornm/solarium/internal/auth"
	"github.com/victornm/solarium/internal/catalog"
	"github.com/victornm/solarium/internal/domain"
	"github.com/victornm/solarium/internal/event"
	"github.com/victornm/solarium/internal/leaderboard"
	"github.com/victornm/solarium/internal/quiz"
	"github.com/victornm/solarium/internal/teacher"
)

type Config struct {
	EventBus     *event.Bus
	Catalog      *catalog.Catalog
	Quiz         *quiz.Service
	Attempt      *attempt.Service
	Teacher      *teacher.Service
	Leaderboard  *leaderboard.Service
	Tokens       *auth.Tokens
	Redis        Redis
	PubsubPrefix string
}

type Redis interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

type API struct {
	catalog *catalog.Catalog
	qs      *quiz.Service
	as      *attempt.Service
	ts      *teacher.Service
	ls      *leaderboard.Service
	tokens  *auth.Tokens

	redis  Redis
	prefix string
}

func New(c Config) *API {
	a := &API{
		catalog: c.Catalog,
		qs:      c.Quiz,
		as:      c.Attempt,
		ts:      c.Teacher,
		ls:      c.Leaderboard,
		tokens:  c.Tokens,
		redis:   c.Redis,
		prefix:  c.PubsubPrefix,
	}

	// Register event handlers
	c.EventBus.Subscribe(domain.EventNameLeaderboardUpdated, func(ctx context.Context, e event.Event) error {
		return a.PublishLeaderboardUpdated(ctx, e.(domain.EventLeaderboardUpdated))
	})

	return a
}

// Register mounts every route under /api/v1.
func (a *API) Register(r gin.IRouter) {
	v1 := r.Group("/api/v1")

	v1.POST("/auth/login", a.login)

	v1.GET("/planets", a.listPlanets)
	v1.GET("/planets/compare", a.comparePlanets)
	v1.GET("/planets/weights", a.planetWeights)
	v1.GET("/planets/:slug", a.getPlanet)
	v1.GET("/planets/:slug/moons", a.listPlanetMoons)
	v1.GET("/moons", a.listMoons)
	v1.GET("/asteroids", a.listAsteroids)
	v1.GET("/bodies/:slug", a.selectBody)
	v1.GET("/scene", a.scene)

	v1.GET("/quizzes", a.listActiveQuizzes)
	v1.GET("/quizzes/:id", a.getPlayableQuiz)
	v1.POST("/quizzes/:id/attempts", a.submitAttempt)
	v1.GET("/quizzes/:id/leaderboard", a.getLeaderboard)
	v1.GET("/players/:player/attempts", a.playerHistory)

	admin := v1.Group("/admin", a.authenticate(domain.RoleTeacher, domain.RoleAdmin))
	admin.GET("/me", a.me)
	admin.GET("/stats", a.stats)

	admin.GET("/quizzes", a.listQuizzes)
	admin.POST("/quizzes", a.createQuiz)
	admin.GET("/quizzes/:id", a.getQuiz)
	admin.PUT("/quizzes/:id", a.updateQuiz)
	admin.DELETE("/quizzes/:id", a.deleteQuiz)

	admin.GET("/quizzes/:id/questions", a.listQuestions)
	admin.POST("/quizzes/:id/questions", a.createQuestion)
	admin.PUT("/questions/:id", a.updateQuestion)
	admin.DELETE("/questions/:id", a.deleteQuestion)

	teachers := admin.Group("/teachers", a.authenticate(domain.RoleAdmin))
	teachers.GET("", a.listTeachers)
	teachers.POST("", a.createTeacher)
	teachers.GET("/:id", a.getTeacher)
	teachers.PUT("/:id", a.updateTeacher)
	teachers.DELETE("/:id", a.deleteTeacher)
}
