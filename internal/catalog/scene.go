package catalog

import (
	"hash/fnv"
	"math"

	"github.com/victornm/solarium/internal/errors"
)

// MaxSpeed is the largest global speed multiplier accepted by Scene.
const MaxSpeed = 10

type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type BodyPosition struct {
	Slug     string   `json:"slug"`
	Kind     BodyKind `json:"kind"`
	Parent   string   `json:"parent,omitempty"`
	Angle    float64  `json:"angle"`
	Position Vector   `json:"position"`
}

type Scene struct {
	Time   float64        `json:"time"`
	Speed  float64        `json:"speed"`
	Bodies []BodyPosition `json:"bodies"`
}

// Scene places every body at time t (seconds) with the global speed multiplier applied.
// A body at angle a sits at (cos a, 0, sin a) * radius around its parent, the Sun for
// planets and asteroids. A speed of 0 freezes every body at its initial phase.
func (c *Catalog) Scene(t, speed float64) (*Scene, error) {
	if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
		return nil, errors.InvalidArgument("time must be a finite non-negative number")
	}
	if math.IsNaN(speed) || speed < 0 || speed > MaxSpeed {
		return nil, errors.InvalidArgument("speed must be between 0 and %d", MaxSpeed)
	}

	s := &Scene{
		Time:   t,
		Speed:  speed,
		Bodies: make([]BodyPosition, 0, len(c.planets)+len(c.moons)+len(c.asteroids)),
	}

	centers := make(map[string]Vector, len(c.planets))
	for _, p := range c.planets {
		a, pos := orbitPosition(p.Slug, p.Orbit, t, speed, Vector{})
		centers[p.Slug] = pos
		s.Bodies = append(s.Bodies, BodyPosition{Slug: p.Slug, Kind: BodyKindPlanet, Angle: a, Position: pos})
	}

	for _, m := range c.moons {
		a, pos := orbitPosition(m.Slug, m.Orbit, t, speed, centers[m.Planet])
		s.Bodies = append(s.Bodies, BodyPosition{Slug: m.Slug, Kind: BodyKindMoon, Parent: m.Planet, Angle: a, Position: pos})
	}

	for _, as := range c.asteroids {
		a, pos := orbitPosition(as.Slug, as.Orbit, t, speed, Vector{})
		s.Bodies = append(s.Bodies, BodyPosition{Slug: as.Slug, Kind: BodyKindAsteroid, Angle: a, Position: pos})
	}

	return s, nil
}

func orbitPosition(slug string, o Orbit, t, speed float64, center Vector) (float64, Vector) {
	a := math.Mod(phase(slug)+o.Speed*t*speed, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}

	return a, Vector{
		X: center.X + math.Cos(a)*o.Radius,
		Y: center.Y,
		Z: center.Z + math.Sin(a)*o.Radius,
	}
}

// phase spreads bodies around their orbit so they do not start lined up.
func phase(slug string) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(slug))
	return float64(h.Sum32()%3600) / 3600 * 2 * math.Pi
}
