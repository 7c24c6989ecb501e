package render

import (
	"github.com/corvel/shipfall/core"
	"github.com/corvel/shipfall/material"
	"github.com/corvel/shipfall/physics"
	"github.com/corvel/shipfall/vmath"
)

// UploadShip pushes one ship's state into the render context, driven by the
// ship's dirt tracking: positions every frame, attribute groups when values
// changed, element buffers wholesale when topology changed. Clears the dirt
// afterwards.
func UploadShip(ship *physics.Ship, ctx ShipRenderContext) {
	dirt := ship.RenderDirt()

	if dirt.PointPositions {
		positions := make([]vmath.Vec2, len(ship.Points))
		for i := range ship.Points {
			positions[i] = ship.Points[i].Position
		}
		ctx.UploadPointPositions(positions)
	}

	if dirt.PointAttributes {
		lightWater := make([]PointLightWater, len(ship.Points))
		planeDecay := make([]PointPlaneDecay, len(ship.Points))
		colors := make([]material.ColorKey, len(ship.Points))
		temperatures := make([]float64, len(ship.Points))
		for i := range ship.Points {
			p := &ship.Points[i]
			lightWater[i] = PointLightWater{Light: p.Light, Water: p.Water}
			planeDecay[i] = PointPlaneDecay{Plane: p.PlaneID, Decay: p.Decay}
			colors[i] = p.Material.RenderColor
			temperatures[i] = p.Temperature
		}
		ctx.UploadPointLightWater(lightWater)
		ctx.UploadPointPlaneDecay(planeDecay)
		ctx.UploadPointColorRange(0, colors)
		ctx.UploadPointTemperatureRange(0, temperatures)
	}

	if dirt.Topology {
		ctx.UploadElements(buildElements(ship))
	}

	if bubbles := ship.DrainBubbles(); len(bubbles) > 0 {
		ctx.UploadEphemeralBubbles(bubbles)
	}
	if debris := ship.DrainDebris(); len(debris) > 0 {
		ctx.UploadEphemeralDebris(debris)
	}
	if sparkles := ship.DrainSparkles(); len(sparkles) > 0 {
		ctx.UploadEphemeralSparkles(sparkles)
	}

	ship.ClearRenderDirt()
}

func buildElements(ship *physics.Ship) Elements {
	var e Elements

	for i := range ship.Points {
		p := &ship.Points[i]
		if p.Destroyed {
			continue
		}
		index := core.ElementIndex(i)
		e.Points = append(e.Points, index)
		if p.Orphaned {
			e.OrphanedPoints = append(e.OrphanedPoints, index)
		}
	}

	for i := range ship.Springs {
		s := &ship.Springs[i]
		if !s.IsIntact() {
			continue
		}
		pair := [2]core.ElementIndex{s.PointA, s.PointB}
		if s.IsRope {
			e.Ropes = append(e.Ropes, pair)
		} else {
			e.Springs = append(e.Springs, pair)
		}
		if s.State == physics.StressStateStressed {
			e.StressedSprings = append(e.StressedSprings, pair)
		}
	}

	for i := range ship.Triangles {
		t := &ship.Triangles[i]
		if !t.Visible {
			continue
		}
		e.Triangles = append(e.Triangles, [3]core.ElementIndex{t.PointA, t.PointB, t.PointC})
	}

	return e
}
