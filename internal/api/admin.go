package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/victornm/solarium/internal/quiz"
)

func (a *API) me(c *gin.Context) {
	t, err := currentTeacher(c)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

func (a *API) stats(c *gin.Context) {
	st, err := a.as.Stats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, st)
}

func (a *API) listQuizzes(c *gin.Context) {
	qs, err := a.qs.ListQuizzes(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, qs)
}

func (a *API) createQuiz(c *gin.Context) {
	var req quiz.CreateQuizRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}

	q, err := a.qs.CreateQuiz(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, q)
}

func (a *API) getQuiz(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	q, err := a.qs.GetQuiz(c.Request.Context(), quiz.GetQuizRequest{ID: id})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, q)
}

func (a *API) updateQuiz(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	var req quiz.UpdateQuizRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	req.ID = id

	q, err := a.qs.UpdateQuiz(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, q)
}

func (a *API) deleteQuiz(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	if err := a.qs.DeleteQuiz(c.Request.Context(), quiz.DeleteQuizRequest{ID: id}); err != nil {
		writeError(c, err)
		return
	}

	noContent(c)
}

func (a *API) listQuestions(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	qs, err := a.qs.ListQuestions(c.Request.Context(), quiz.ListQuestionsRequest{QuizID: id})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, qs)
}

func (a *API) createQuestion(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	var req quiz.CreateQuestionRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	req.QuizID = id

	q, err := a.qs.CreateQuestion(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, q)
}

func (a *API) updateQuestion(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	var req quiz.UpdateQuestionRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	req.ID = id

	q, err := a.qs.UpdateQuestion(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, q)
}

func (a *API) deleteQuestion(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	if err := a.qs.DeleteQuestion(c.Request.Context(), quiz.DeleteQuestionRequest{ID: id}); err != nil {
		writeError(c, err)
		return
	}

	noContent(c)
}
