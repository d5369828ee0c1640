package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/victornm/solarium/internal/attempt"
	"github.com/victornm/solarium/internal/leaderboard"
	"github.com/victornm/solarium/internal/quiz"
)

func (a *API) listActiveQuizzes(c *gin.Context) {
	qs, err := a.qs.ListActiveQuizzes(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, qs)
}

func (a *API) getPlayableQuiz(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	q, err := a.qs.GetPlayableQuiz(c.Request.Context(), quiz.GetQuizRequest{ID: id})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, q)
}

func (a *API) submitAttempt(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	var req attempt.SubmitRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	req.QuizID = id

	at, err := a.as.Submit(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, at)
}

func (a *API) getLeaderboard(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	limit, err := queryInt(c, "limit")
	if err != nil {
		writeError(c, err)
		return
	}

	l, err := a.ls.GetLeaderboard(c.Request.Context(), leaderboard.GetLeaderboardRequest{
		QuizID: id,
		Limit:  limit,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, l)
}

func (a *API) playerHistory(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		writeError(c, err)
		return
	}

	as, err := a.as.History(c.Request.Context(), attempt.HistoryRequest{
		Player: c.Param("player"),
		Limit:  limit,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, as)
}
