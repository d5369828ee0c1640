package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/victornm/solarium/internal/teacher"
)

func (a *API) login(c *gin.Context) {
	var req teacher.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}

	resp, err := a.ts.Login(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (a *API) listTeachers(c *gin.Context) {
	ts, err := a.ts.ListTeachers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ts)
}

func (a *API) createTeacher(c *gin.Context) {
	var req teacher.CreateTeacherRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}

	t, err := a.ts.CreateTeacher(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, t)
}

func (a *API) getTeacher(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	t, err := a.ts.GetTeacher(c.Request.Context(), teacher.GetTeacherRequest{ID: id})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

func (a *API) updateTeacher(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	var req teacher.UpdateTeacherRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	req.ID = id

	t, err := a.ts.UpdateTeacher(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

func (a *API) deleteTeacher(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	actor, err := currentTeacher(c)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := a.ts.DeleteTeacher(c.Request.Context(), teacher.DeleteTeacherRequest{ID: id, ActorID: actor.ID}); err != nil {
		writeError(c, err)
		return
	}

	noContent(c)
}
