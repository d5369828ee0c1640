package catalog_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victornm/solarium/internal/catalog"
	"github.com/victornm/solarium/internal/errors"
)

func TestCatalog_Planets(t *testing.T) {
	c := catalog.New()

	ps := c.Planets()
	require.Len(t, ps, 8)
	for i := 1; i < len(ps); i++ {
		assert.Greater(t, ps[i].DistanceFromSun, ps[i-1].DistanceFromSun, "planets should be ordered from the Sun")
		assert.Greater(t, ps[i].Orbit.Radius, ps[i-1].Orbit.Radius, "display orbits should not cross")
	}

	p, err := c.Planet(" Mars ")
	require.NoError(t, err)
	assert.Equal(t, "mars", p.Slug)

	_, err = c.Planet("pluto")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestCatalog_Moons(t *testing.T) {
	c := catalog.New()

	tests := map[string]struct {
		planet    string
		wantSlugs []string
		wantCode  errors.Code
	}{
		"earth has the moon":          {planet: "earth", wantSlugs: []string{"moon"}},
		"mars has two moons":          {planet: "mars", wantSlugs: []string{"phobos", "deimos"}},
		"venus has no moons":          {planet: "venus", wantSlugs: []string{}},
		"unknown planet is not found": {planet: "vulcan", wantCode: errors.CodeNotFound},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ms, err := c.Moons(tt.planet)
			if tt.wantCode != 0 {
				require.True(t, errors.Is(err, tt.wantCode))
				return
			}
			require.NoError(t, err)

			slugs := make([]string, 0, len(ms))
			for _, m := range ms {
				slugs = append(slugs, m.Slug)
			}
			assert.Equal(t, tt.wantSlugs, slugs)
		})
	}

	for _, m := range c.AllMoons() {
		assert.True(t, c.HasPlanet(m.Planet), "moon %s refers to unknown planet %s", m.Slug, m.Planet)
	}
}

func TestCatalog_Select(t *testing.T) {
	c := catalog.New()

	b, err := c.Select("saturn")
	require.NoError(t, err)
	assert.Equal(t, catalog.BodyKindPlanet, b.Kind)
	require.NotNil(t, b.Planet)
	assert.Nil(t, b.Moon)

	b, err = c.Select("Titan")
	require.NoError(t, err)
	assert.Equal(t, catalog.BodyKindMoon, b.Kind)
	assert.Equal(t, "saturn", b.Moon.Planet)

	b, err = c.Select("ceres")
	require.NoError(t, err)
	assert.Equal(t, catalog.BodyKindAsteroid, b.Kind)

	_, err = c.Select("")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestCatalog_Compare(t *testing.T) {
	c := catalog.New()

	cmp, err := c.Compare("jupiter", "earth")
	require.NoError(t, err)
	assert.Equal(t, "jupiter", cmp.A.Slug)
	assert.Equal(t, "earth", cmp.B.Slug)
	assert.InDelta(t, 317.9, cmp.Ratios["mass"], 0.1)
	assert.InDelta(t, 10.973, cmp.Ratios["radius"], 0.001)

	same, err := c.Compare("earth", "earth")
	require.NoError(t, err)
	for k, v := range same.Ratios {
		assert.Equal(t, 1.0, v, k)
	}

	_, err = c.Compare("earth", "krypton")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestCatalog_Weights(t *testing.T) {
	c := catalog.New()

	ws, err := c.Weights(70)
	require.NoError(t, err)
	require.Len(t, ws, 8)

	got := make(map[string]float64)
	for _, w := range ws {
		got[w.Planet] = w.Weight
	}
	assert.Equal(t, 70.0, got["earth"])
	assert.Equal(t, 26.4, got["mars"])
	assert.Equal(t, 164.83, got["jupiter"])

	for _, bad := range []float64{0, -1, 10001, math.NaN()} {
		_, err := c.Weights(bad)
		assert.True(t, errors.Is(err, errors.CodeInvalidArgument), "weight %v", bad)
	}
}

func TestCatalog_Scene(t *testing.T) {
	c := catalog.New()

	s0, err := c.Scene(0, 1)
	require.NoError(t, err)
	require.Len(t, s0.Bodies, len(c.Planets())+len(c.AllMoons())+len(c.Asteroids()))

	planets := make(map[string]catalog.Planet)
	for _, p := range c.Planets() {
		planets[p.Slug] = p
	}

	positions := make(map[string]catalog.BodyPosition)
	for _, b := range s0.Bodies {
		positions[b.Slug] = b
		assert.Zero(t, b.Position.Y, "bodies move in the ecliptic plane")
		assert.GreaterOrEqual(t, b.Angle, 0.0)
		assert.Less(t, b.Angle, 2*math.Pi)
	}

	t.Run("planets stay on their display orbit", func(t *testing.T) {
		s, err := c.Scene(123.4, 2.5)
		require.NoError(t, err)
		for _, b := range s.Bodies {
			if b.Kind != catalog.BodyKindPlanet {
				continue
			}
			r := math.Hypot(b.Position.X, b.Position.Z)
			assert.InDelta(t, planets[b.Slug].Orbit.Radius, r, 1e-9, b.Slug)
		}
	})

	t.Run("moons orbit their planet", func(t *testing.T) {
		s, err := c.Scene(42, 1)
		require.NoError(t, err)

		at := make(map[string]catalog.BodyPosition)
		for _, b := range s.Bodies {
			at[b.Slug] = b
		}

		for _, m := range c.AllMoons() {
			pos, parent := at[m.Slug].Position, at[m.Planet].Position
			d := math.Hypot(pos.X-parent.X, pos.Z-parent.Z)
			assert.InDelta(t, m.Orbit.Radius, d, 1e-9, m.Slug)
			assert.Equal(t, m.Planet, at[m.Slug].Parent)
		}
	})

	t.Run("angle advances by speed times elapsed time", func(t *testing.T) {
		s, err := c.Scene(1, 1)
		require.NoError(t, err)
		for _, b := range s.Bodies {
			if b.Slug != "earth" {
				continue
			}
			want := math.Mod(positions["earth"].Angle+planets["earth"].Orbit.Speed, 2*math.Pi)
			assert.InDelta(t, want, b.Angle, 1e-9)
		}
	})

	t.Run("zero speed freezes the scene", func(t *testing.T) {
		s, err := c.Scene(1000, 0)
		require.NoError(t, err)
		for _, b := range s.Bodies {
			assert.InDelta(t, positions[b.Slug].Angle, b.Angle, 1e-9, b.Slug)
		}
	})

	t.Run("invalid input", func(t *testing.T) {
		for _, in := range [][2]float64{{-1, 1}, {math.Inf(1), 1}, {0, -0.5}, {0, catalog.MaxSpeed + 1}, {0, math.NaN()}} {
			_, err := c.Scene(in[0], in[1])
			assert.True(t, errors.Is(err, errors.CodeInvalidArgument), "input %v", in)
		}
	})
}
