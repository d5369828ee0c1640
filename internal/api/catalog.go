package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/victornm/solarium/internal/errors"
)

func (a *API) listPlanets(c *gin.Context) {
	c.JSON(http.StatusOK, a.catalog.Planets())
}

func (a *API) getPlanet(c *gin.Context) {
	p, err := a.catalog.Planet(c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (a *API) listPlanetMoons(c *gin.Context) {
	ms, err := a.catalog.Moons(c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ms)
}

func (a *API) listMoons(c *gin.Context) {
	c.JSON(http.StatusOK, a.catalog.AllMoons())
}

func (a *API) listAsteroids(c *gin.Context) {
	c.JSON(http.StatusOK, a.catalog.Asteroids())
}

func (a *API) selectBody(c *gin.Context) {
	b, err := a.catalog.Select(c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

func (a *API) comparePlanets(c *gin.Context) {
	first, second := c.Query("a"), c.Query("b")
	if first == "" || second == "" {
		writeError(c, errors.New(errors.CodeInvalidArgument,
			errors.WithMessagef("two planets are required: ?a=<slug>&b=<slug>"),
		))
		return
	}

	cmp, err := a.catalog.Compare(first, second)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, cmp)
}

func (a *API) planetWeights(c *gin.Context) {
	w, err := queryFloat(c, "weight", 0)
	if err != nil {
		writeError(c, err)
		return
	}

	ws, err := a.catalog.Weights(w)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ws)
}

func (a *API) scene(c *gin.Context) {
	t, err := queryFloat(c, "t", 0)
	if err != nil {
		writeError(c, err)
		return
	}

	speed, err := queryFloat(c, "speed", 1)
	if err != nil {
		writeError(c, err)
		return
	}

	s, err := a.catalog.Scene(t, speed)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, s)
}
