// Package render is the boundary between the simulation and whatever draws
// it. The core uploads state through ShipRenderContext and owns nothing on
// the other side: attributes incrementally when only values changed,
// element index buffers wholesale when topology changed.
package render

import (
	"github.com/corvel/shipfall/core"
	"github.com/corvel/shipfall/material"
	"github.com/corvel/shipfall/vmath"
)

// PointLightWater packs the per-point light and water attributes uploaded
// together.
type PointLightWater struct {
	Light float64
	Water float64
}

// PointPlaneDecay packs the per-point plane id and decay attributes.
type PointPlaneDecay struct {
	Plane core.PlaneID
	Decay float64
}

// Elements is the full set of element index buffers for one ship. Uploaded
// wholesale whenever topology changes.
type Elements struct {
	Points          []core.ElementIndex
	Springs         [][2]core.ElementIndex
	Ropes           [][2]core.ElementIndex
	Triangles       [][3]core.ElementIndex
	StressedSprings [][2]core.ElementIndex

	// Free-floating debris points, rendered apart from the mesh.
	OrphanedPoints []core.ElementIndex
}

// ShipRenderContext consumes one ship's simulation output. Implementations
// own no simulation state and are called on the simulation goroutine,
// immediately after the update.
type ShipRenderContext interface {
	UploadPointPositions(positions []vmath.Vec2)
	UploadPointLightWater(attributes []PointLightWater)
	UploadPointPlaneDecay(attributes []PointPlaneDecay)

	// Sparse ranges: start index plus a contiguous run of values.
	UploadPointColorRange(start int, colors []material.ColorKey)
	UploadPointTemperatureRange(start int, temperatures []float64)

	UploadElements(elements Elements)

	// Ephemera spawned this frame, world positions.
	UploadEphemeralBubbles(positions []vmath.Vec2)
	UploadEphemeralDebris(positions []vmath.Vec2)
	UploadEphemeralSparkles(positions []vmath.Vec2)
}

// NopShipRenderContext discards everything; the default sink when nothing
// draws.
type NopShipRenderContext struct{}

func (NopShipRenderContext) UploadPointPositions([]vmath.Vec2)              {}
func (NopShipRenderContext) UploadPointLightWater([]PointLightWater)        {}
func (NopShipRenderContext) UploadPointPlaneDecay([]PointPlaneDecay)        {}
func (NopShipRenderContext) UploadPointColorRange(int, []material.ColorKey) {}
func (NopShipRenderContext) UploadPointTemperatureRange(int, []float64)     {}
func (NopShipRenderContext) UploadElements(Elements)                        {}
func (NopShipRenderContext) UploadEphemeralBubbles([]vmath.Vec2)            {}
func (NopShipRenderContext) UploadEphemeralDebris([]vmath.Vec2)             {}
func (NopShipRenderContext) UploadEphemeralSparkles([]vmath.Vec2)           {}

// RecordingShipRenderContext captures every upload, for tests and for the
// terminal viewer's frame assembly.
type RecordingShipRenderContext struct {
	Positions    []vmath.Vec2
	LightWater   []PointLightWater
	PlaneDecay   []PointPlaneDecay
	Colors       []material.ColorKey
	Temperatures []float64
	LastElements Elements
	Bubbles      []vmath.Vec2
	Debris       []vmath.Vec2
	Sparkles     []vmath.Vec2

	PositionUploads int
	ElementUploads  int
}

func (r *RecordingShipRenderContext) UploadPointPositions(positions []vmath.Vec2) {
	r.Positions = append(r.Positions[:0], positions...)
	r.PositionUploads++
}

func (r *RecordingShipRenderContext) UploadPointLightWater(attributes []PointLightWater) {
	r.LightWater = append(r.LightWater[:0], attributes...)
}

func (r *RecordingShipRenderContext) UploadPointPlaneDecay(attributes []PointPlaneDecay) {
	r.PlaneDecay = append(r.PlaneDecay[:0], attributes...)
}

func (r *RecordingShipRenderContext) UploadPointColorRange(start int, colors []material.ColorKey) {
	need := start + len(colors)
	for len(r.Colors) < need {
		r.Colors = append(r.Colors, material.ColorKey{})
	}
	copy(r.Colors[start:], colors)
}

func (r *RecordingShipRenderContext) UploadPointTemperatureRange(start int, temperatures []float64) {
	need := start + len(temperatures)
	for len(r.Temperatures) < need {
		r.Temperatures = append(r.Temperatures, 0.0)
	}
	copy(r.Temperatures[start:], temperatures)
}

func (r *RecordingShipRenderContext) UploadElements(elements Elements) {
	r.LastElements = elements
	r.ElementUploads++
}

func (r *RecordingShipRenderContext) UploadEphemeralBubbles(positions []vmath.Vec2) {
	r.Bubbles = append(r.Bubbles, positions...)
}

func (r *RecordingShipRenderContext) UploadEphemeralDebris(positions []vmath.Vec2) {
	r.Debris = append(r.Debris, positions...)
}

func (r *RecordingShipRenderContext) UploadEphemeralSparkles(positions []vmath.Vec2) {
	r.Sparkles = append(r.Sparkles, positions...)
}
