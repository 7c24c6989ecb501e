package ocean

import (
	"math/rand"

	"github.com/corvel/shipfall/vmath"
)

// Decorative environment: a fixed star field and a cloud layer advected by
// the wind. Both live in normalised sky coordinates, x in [-1, 1] and y in
// [0, 1], and are consumed by the render boundary only.

// Star is one star of the night sky.
type Star struct {
	Position   vmath.Vec2
	Brightness float64
}

// Stars is a deterministic star field: the same seed and count produce the
// same sky.
type Stars struct {
	stars []Star
}

// NewStars generates the field.
func NewStars(seed int64, count int) *Stars {
	rng := rand.New(rand.NewSource(seed))

	s := &Stars{stars: make([]Star, count)}
	for i := range s.stars {
		s.stars[i] = Star{
			Position: vmath.Vec2{
				X: rng.Float64()*2.0 - 1.0,
				Y: rng.Float64(),
			},
			Brightness: 0.25 + 0.75*rng.Float64(),
		}
	}
	return s
}

// Stars returns the field.
func (s *Stars) Stars() []Star {
	return s.stars
}

// Cloud is one cloud sprite.
type Cloud struct {
	Position vmath.Vec2
	Scale    float64

	// Larger clouds sit nearer and drift faster.
	speedFactor float64
}

// Clouds is the wind-advected cloud layer.
type Clouds struct {
	clouds []Cloud
}

// Horizontal extent of the cloud band; clouds wrap at the edges.
const cloudBandHalfWidth = 1.5

// NewClouds seeds the layer.
func NewClouds(seed int64, count int) *Clouds {
	rng := rand.New(rand.NewSource(seed))

	c := &Clouds{clouds: make([]Cloud, count)}
	for i := range c.clouds {
		scale := 0.5 + rng.Float64()
		c.clouds[i] = Cloud{
			Position: vmath.Vec2{
				X: (rng.Float64()*2.0 - 1.0) * cloudBandHalfWidth,
				Y: 0.5 + 0.5*rng.Float64(),
			},
			Scale:       scale,
			speedFactor: scale * 0.001,
		}
	}
	return c
}

// Update drifts the clouds with the wind and wraps them around the band.
func (c *Clouds) Update(dt float64, windSpeed vmath.Vec2) {
	for i := range c.clouds {
		cl := &c.clouds[i]
		cl.Position.X += windSpeed.X * cl.speedFactor * dt
		if cl.Position.X > cloudBandHalfWidth {
			cl.Position.X -= 2.0 * cloudBandHalfWidth
		} else if cl.Position.X < -cloudBandHalfWidth {
			cl.Position.X += 2.0 * cloudBandHalfWidth
		}
	}
}

// Clouds returns the layer.
func (c *Clouds) Clouds() []Cloud {
	return c.clouds
}
