// Package physics implements the mass-spring ship simulation: point/spring/
// triangle meshes integrated under gravity, buoyancy, wind and water forcing,
// with stress-driven breakage, water ingress and diffusion, thermal decay,
// and a small electrical layer. A Ship owns flat element arrays and is
// stepped once per World update.
package physics

import (
	"github.com/corvel/shipfall/core"
	"github.com/corvel/shipfall/material"
	"github.com/corvel/shipfall/vmath"
)

// Point is one simulated particle. Mutated every step; never moves between
// ships.
type Point struct {
	Position vmath.Vec2
	Velocity vmath.Vec2

	Material *material.Structural

	// Structural mass, constant after build. Absorbed water adds on top,
	// see TotalMass.
	mass           float64
	buoyancyVolume float64

	Water       float64
	IsLeaking   bool
	Temperature float64

	// Decay runs 1 (sound) down to 0 (rotted through); scales effective
	// spring strength at the endpoints.
	Decay float64

	Light float64

	PlaneID   core.PlaneID
	Pinned    bool
	Orphaned  bool
	Destroyed bool

	// Per-frame force accumulators. toolForce is a one-shot impulse applied
	// on the first substep of the next update.
	force     vmath.Vec2
	toolForce vmath.Vec2

	connectedSprings  []core.ElementIndex
	intactSpringCount int
}

// TotalMass is structural mass plus the absorbed water.
func (p *Point) TotalMass() float64 {
	return p.mass + p.Water*waterMass
}

// WaterCapacity is the most water this point can hold.
func (p *Point) WaterCapacity() float64 {
	return waterCapacityBase * p.Material.WaterRetention
}

// ConnectedSprings lists all springs ever attached, broken ones included.
func (p *Point) ConnectedSprings() []core.ElementIndex {
	return p.connectedSprings
}

// IntactSpringCount is the number of attached unbroken springs.
func (p *Point) IntactSpringCount() int {
	return p.intactSpringCount
}

// AddToolForce accumulates a one-shot interactive force, consumed by the
// next Update.
func (p *Point) AddToolForce(f vmath.Vec2) {
	p.toolForce = p.toolForce.Add(f)
}
