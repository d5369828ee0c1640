package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/victornm/solarium/internal/errors"
)

// EarthGravity is the surface gravity used as the reference for weights, in m/s^2.
const EarthGravity = 9.81

const maxEarthWeight = 10000

type PlanetType string

const (
	PlanetTypeTerrestrial PlanetType = "terrestrial"
	PlanetTypeGasGiant    PlanetType = "gas_giant"
	PlanetTypeIceGiant    PlanetType = "ice_giant"
)

// Orbit holds the display parameters of a body in the 3D scene. They are unrelated to real
// astronomical distances.
type Orbit struct {
	Radius float64 `json:"radius"`
	Speed  float64 `json:"speed"`
}

type Planet struct {
	Slug            string     `json:"slug"`
	Name            string     `json:"name"`
	Type            PlanetType `json:"type"`
	Mass            float64    `json:"mass"` // 10^24 kg
	Radius          float64    `json:"radius"`
	Gravity         float64    `json:"gravity"`
	DistanceFromSun float64    `json:"distance_from_sun"` // 10^6 km
	OrbitalPeriod   float64    `json:"orbital_period"`    // days
	DayLength       float64    `json:"day_length"`        // hours
	MeanTemperature float64    `json:"mean_temperature"`
	MoonCount       int        `json:"moon_count"`
	Description     string     `json:"description"`
	Image           string     `json:"image"`
	Orbit           Orbit      `json:"orbit"`
}

type Moon struct {
	Slug          string  `json:"slug"`
	Name          string  `json:"name"`
	Planet        string  `json:"planet"`
	Radius        float64 `json:"radius"`
	OrbitalPeriod float64 `json:"orbital_period"`
	Description   string  `json:"description"`
	Orbit         Orbit   `json:"orbit"`
}

type Asteroid struct {
	Slug            string  `json:"slug"`
	Name            string  `json:"name"`
	Radius          float64 `json:"radius"`
	DistanceFromSun float64 `json:"distance_from_sun"`
	OrbitalPeriod   float64 `json:"orbital_period"`
	Description     string  `json:"description"`
	Orbit           Orbit   `json:"orbit"`
}

type BodyKind string

const (
	BodyKindPlanet   BodyKind = "planet"
	BodyKindMoon     BodyKind = "moon"
	BodyKindAsteroid BodyKind = "asteroid"
)

// Body is whatever the user picked in the scene. Exactly one of Planet, Moon, Asteroid is set.
type Body struct {
	Kind     BodyKind  `json:"kind"`
	Planet   *Planet   `json:"planet,omitempty"`
	Moon     *Moon     `json:"moon,omitempty"`
	Asteroid *Asteroid `json:"asteroid,omitempty"`
}

// Catalog is the read-only reference data of the Solar System.
type Catalog struct {
	planets   []Planet
	moons     []Moon
	asteroids []Asteroid

	planetBySlug   map[string]int
	moonBySlug     map[string]int
	asteroidBySlug map[string]int
}

// New returns the built-in catalog.
func New() *Catalog {
	c := &Catalog{
		planets:        planets,
		moons:          moons,
		asteroids:      asteroids,
		planetBySlug:   make(map[string]int, len(planets)),
		moonBySlug:     make(map[string]int, len(moons)),
		asteroidBySlug: make(map[string]int, len(asteroids)),
	}

	for i, p := range c.planets {
		c.planetBySlug[p.Slug] = i
	}
	for i, m := range c.moons {
		c.moonBySlug[m.Slug] = i
	}
	for i, a := range c.asteroids {
		c.asteroidBySlug[a.Slug] = i
	}

	return c
}

// Planets returns the planets ordered by distance from the Sun.
func (c *Catalog) Planets() []Planet {
	return append([]Planet(nil), c.planets...)
}

func (c *Catalog) Planet(slug string) (Planet, error) {
	i, ok := c.planetBySlug[normalize(slug)]
	if !ok {
		return Planet{}, errors.NotFound("planet not found: %s", slug)
	}

	return c.planets[i], nil
}

// HasPlanet reports whether slug names a planet of the catalog.
func (c *Catalog) HasPlanet(slug string) bool {
	_, ok := c.planetBySlug[normalize(slug)]
	return ok
}

// Moons returns the moons of a planet. A planet without moons in the catalog yields an empty list.
func (c *Catalog) Moons(planet string) ([]Moon, error) {
	p, err := c.Planet(planet)
	if err != nil {
		return nil, err
	}

	ms := make([]Moon, 0)
	for _, m := range c.moons {
		if m.Planet == p.Slug {
			ms = append(ms, m)
		}
	}

	return ms, nil
}

func (c *Catalog) AllMoons() []Moon {
	return append([]Moon(nil), c.moons...)
}

func (c *Catalog) Asteroids() []Asteroid {
	return append([]Asteroid(nil), c.asteroids...)
}

// Select looks up any body by slug, planets first.
func (c *Catalog) Select(slug string) (Body, error) {
	s := normalize(slug)

	if i, ok := c.planetBySlug[s]; ok {
		p := c.planets[i]
		return Body{Kind: BodyKindPlanet, Planet: &p}, nil
	}
	if i, ok := c.moonBySlug[s]; ok {
		m := c.moons[i]
		return Body{Kind: BodyKindMoon, Moon: &m}, nil
	}
	if i, ok := c.asteroidBySlug[s]; ok {
		a := c.asteroids[i]
		return Body{Kind: BodyKindAsteroid, Asteroid: &a}, nil
	}

	return Body{}, errors.NotFound("body not found: %s", slug)
}

// Comparison puts two planets side by side. Ratios are A divided by B.
type Comparison struct {
	A      Planet             `json:"a"`
	B      Planet             `json:"b"`
	Ratios map[string]float64 `json:"ratios"`
}

func (c *Catalog) Compare(a, b string) (*Comparison, error) {
	pa, err := c.Planet(a)
	if err != nil {
		return nil, err
	}

	pb, err := c.Planet(b)
	if err != nil {
		return nil, err
	}

	return &Comparison{
		A: pa,
		B: pb,
		Ratios: map[string]float64{
			"mass":              ratio(pa.Mass, pb.Mass),
			"radius":            ratio(pa.Radius, pb.Radius),
			"gravity":           ratio(pa.Gravity, pb.Gravity),
			"distance_from_sun": ratio(pa.DistanceFromSun, pb.DistanceFromSun),
			"orbital_period":    ratio(pa.OrbitalPeriod, pb.OrbitalPeriod),
			"day_length":        ratio(pa.DayLength, pb.DayLength),
		},
	}, nil
}

type Weight struct {
	Planet string  `json:"planet"`
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// Weights converts a weight measured on Earth to the weight on every planet.
func (c *Catalog) Weights(earthWeight float64) ([]Weight, error) {
	if !(earthWeight > 0 && earthWeight <= maxEarthWeight) {
		return nil, errors.InvalidArgument("weight must be greater than 0 and at most %d", maxEarthWeight)
	}

	ws := make([]Weight, 0, len(c.planets))
	for _, p := range c.planets {
		ws = append(ws, Weight{
			Planet: p.Slug,
			Name:   p.Name,
			Weight: round(earthWeight*p.Gravity/EarthGravity, 2),
		})
	}

	return ws, nil
}

func ratio(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return round(a/b, 3)
}

func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

func normalize(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}
