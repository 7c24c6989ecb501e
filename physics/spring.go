package physics

import (
	"github.com/corvel/shipfall/core"
	"github.com/corvel/shipfall/material"
)

// StressState tracks a spring's position in the normal/stressed/broken
// progression. Broken is terminal within a run, barring the repair tool.
type StressState uint8

const (
	StressStateNormal StressState = iota
	StressStateStressed
	StressStateBroken
)

// Spring is an elastic constraint between two points of the same ship.
type Spring struct {
	PointA core.ElementIndex
	PointB core.ElementIndex

	RestLength float64
	Material   *material.Structural

	// Ropes render as their own element class and are softer.
	IsRope bool

	State StressState

	// Triangles whose visibility this spring covers.
	coveringTriangles []core.ElementIndex
}

// IsIntact reports whether the spring still participates in force
// accumulation, diffusion and rendering.
func (s *Spring) IsIntact() bool {
	return s.State != StressStateBroken
}

// breakStrain is the strain at which this spring snaps, given the effective
// strength multiplier (user adjustment times endpoint decay).
func (s *Spring) breakStrain(strengthMultiplier float64) float64 {
	return s.Material.StrainThresholdFraction * s.Material.Strength * strengthMultiplier
}
