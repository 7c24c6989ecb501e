package physics

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/corvel/shipfall/core"
	"github.com/corvel/shipfall/material"
	"github.com/corvel/shipfall/shipdef"
	"github.com/corvel/shipfall/vmath"
)

// One grid cell spans one metre of world space.
const cellSize = 1.0

// NewShip builds a ship mesh from a resolved definition: one point per
// material cell, springs to the E/SE/S/SW neighbours, two triangles per
// fully occupied square, ropes filled in as endpoint-to-endpoint chains of
// rope-material points.
func NewShip(id core.ShipID, def *shipdef.Definition, db *material.Database, seed int64) (*Ship, error) {
	ship := &Ship{
		ID:   id,
		Name: def.Metadata.ShipName,
		rng:  rand.New(rand.NewSource(seed)),
	}

	// Points, one per occupied cell
	pointAt := make([]core.ElementIndex, def.Width*def.Height)
	for i := range pointAt {
		pointAt[i] = core.NoneElementIndex
	}

	for y := 0; y < def.Height; y++ {
		for x := 0; x < def.Width; x++ {
			m := def.StructuralAt(x, y)
			if m == nil {
				continue
			}
			pointAt[y*def.Width+x] = core.ElementIndex(len(ship.Points))
			ship.Points = append(ship.Points, newPoint(
				def.Metadata.Offset.Add(vmath.Vec2{X: float64(x) * cellSize, Y: float64(y) * cellSize}),
				m,
			))
		}
	}

	// Springs to E, SE, S, SW; scanning every cell covers each pair once
	type pair struct{ a, b core.ElementIndex }
	springAt := make(map[pair]core.ElementIndex)
	neighbours := [4][2]int{{1, 0}, {1, -1}, {0, -1}, {-1, -1}}

	addSpring := func(pa, pb core.ElementIndex, m *material.Structural, isRope bool) core.ElementIndex {
		key := pair{a: pa, b: pb}
		if pa > pb {
			key = pair{a: pb, b: pa}
		}
		if si, exists := springAt[key]; exists {
			return si
		}

		si := core.ElementIndex(len(ship.Springs))
		ship.Springs = append(ship.Springs, Spring{
			PointA:     pa,
			PointB:     pb,
			RestLength: ship.Points[pb].Position.Sub(ship.Points[pa].Position).Length(),
			Material:   m,
			IsRope:     isRope,
			State:      StressStateNormal,
		})
		springAt[key] = si

		for _, pi := range []core.ElementIndex{pa, pb} {
			p := &ship.Points[pi]
			p.connectedSprings = append(p.connectedSprings, si)
			p.intactSpringCount++
		}
		return si
	}

	for y := 0; y < def.Height; y++ {
		for x := 0; x < def.Width; x++ {
			pa := pointAt[y*def.Width+x]
			if pa == core.NoneElementIndex {
				continue
			}
			for _, n := range neighbours {
				nx, ny := x+n[0], y+n[1]
				if nx < 0 || nx >= def.Width || ny < 0 {
					continue
				}
				pb := pointAt[ny*def.Width+nx]
				if pb == core.NoneElementIndex {
					continue
				}
				addSpring(pa, pb, def.StructuralAt(x, y), false)
			}
		}
	}

	// Triangles: two per fully occupied unit square
	coverTriangle := func(ti core.ElementIndex, corners [3]core.ElementIndex) {
		vertexPairs := [3][2]core.ElementIndex{
			{corners[0], corners[1]},
			{corners[1], corners[2]},
			{corners[0], corners[2]},
		}
		for _, vp := range vertexPairs {
			key := pair{a: vp[0], b: vp[1]}
			if key.a > key.b {
				key.a, key.b = key.b, key.a
			}
			if si, exists := springAt[key]; exists {
				ship.Springs[si].coveringTriangles = append(ship.Springs[si].coveringTriangles, ti)
			}
		}
	}

	for y := 0; y+1 < def.Height; y++ {
		for x := 0; x+1 < def.Width; x++ {
			p00 := pointAt[y*def.Width+x]
			p10 := pointAt[y*def.Width+x+1]
			p01 := pointAt[(y+1)*def.Width+x]
			p11 := pointAt[(y+1)*def.Width+x+1]

			if p00 != core.NoneElementIndex && p10 != core.NoneElementIndex && p01 != core.NoneElementIndex {
				ti := core.ElementIndex(len(ship.Triangles))
				ship.Triangles = append(ship.Triangles, Triangle{
					PointA: p00, PointB: p10, PointC: p01, Visible: true,
				})
				coverTriangle(ti, [3]core.ElementIndex{p00, p10, p01})
			}
			if p10 != core.NoneElementIndex && p11 != core.NoneElementIndex && p01 != core.NoneElementIndex {
				ti := core.ElementIndex(len(ship.Triangles))
				ship.Triangles = append(ship.Triangles, Triangle{
					PointA: p10, PointB: p11, PointC: p01, Visible: true,
				})
				coverTriangle(ti, [3]core.ElementIndex{p10, p11, p01})
			}
		}
	}

	// Ropes: chains of rope-material points between the marked endpoints
	if len(def.Ropes) > 0 {
		ropeMaterial := db.Unique(material.UniqueRope)
		if ropeMaterial == nil {
			return nil, fmt.Errorf("ship %q: ropes layer present but palette has no %s material",
				def.Metadata.ShipName, material.UniqueRope)
		}

		for _, rope := range def.Ropes {
			pa := pointAt[rope.AY*def.Width+rope.AX]
			pb := pointAt[rope.BY*def.Width+rope.BX]
			if pa == core.NoneElementIndex || pb == core.NoneElementIndex {
				return nil, fmt.Errorf("ship %q: rope %s endpoint has no structural cell under it",
					def.Metadata.ShipName, rope.Color)
			}
			buildRope(ship, pa, pb, ropeMaterial, addSpring)
		}
	}

	// Electrical elements over their structural points
	for y := 0; y < def.Height; y++ {
		for x := 0; x < def.Width; x++ {
			em := def.ElectricalAt(x, y)
			if em == nil {
				continue
			}
			ship.Electricals = append(ship.Electricals, ElectricalElement{
				PointIndex: pointAt[y*def.Width+x],
				Material:   em,
			})
		}
	}

	ship.dirt = RenderDirt{PointPositions: true, PointAttributes: true, Topology: true}
	return ship, nil
}

func newPoint(position vmath.Vec2, m *material.Structural) Point {
	return Point{
		Position:       position,
		Material:       m,
		mass:           m.Mass(),
		buoyancyVolume: m.BuoyancyVolumeFill,
		Decay:          1.0,
	}
}

// buildRope inserts intermediate rope points roughly one cell apart along
// the segment between the two endpoint points and chains them with rope
// springs.
func buildRope(
	ship *Ship,
	pa, pb core.ElementIndex,
	ropeMaterial *material.Structural,
	addSpring func(core.ElementIndex, core.ElementIndex, *material.Structural, bool) core.ElementIndex,
) {
	start := ship.Points[pa].Position
	end := ship.Points[pb].Position

	length := end.Sub(start).Length()
	segments := int(math.Ceil(length / cellSize))
	if segments < 1 {
		segments = 1
	}

	previous := pa
	for i := 1; i < segments; i++ {
		t := float64(i) / float64(segments)
		position := start.Add(end.Sub(start).Scale(t))

		pi := core.ElementIndex(len(ship.Points))
		ship.Points = append(ship.Points, newPoint(position, ropeMaterial))

		addSpring(previous, pi, ropeMaterial, true)
		previous = pi
	}
	addSpring(previous, pb, ropeMaterial, true)
}
