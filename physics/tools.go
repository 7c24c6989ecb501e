package physics

import (
	"math"

	"github.com/corvel/shipfall/core"
	"github.com/corvel/shipfall/event"
	"github.com/corvel/shipfall/parameter"
	"github.com/corvel/shipfall/vmath"
)

// Interactive tools. All are synchronous single-shot mutations applied by
// the World between frames; none is scheduled for a later step.

// Tool force scales.
const (
	drawForceBase    = 40000.0
	swirlForceBase   = 30000.0
	scrubRestoreStep = 0.25
	toolSegmentWidth = 0.5
)

// DestroyAt breaks every spring attached to the points within the radius and
// marks those points destroyed. Reports each hit through the dispatcher and,
// when enabled, spawns debris ephemera where the points were.
func (ship *Ship) DestroyAt(center vmath.Vec2, radius float64, params parameter.Parameters, env Environment, events *event.Dispatcher) bool {
	squareRadius := radius * radius
	hit := false

	for i := range ship.Points {
		p := &ship.Points[i]
		if p.Destroyed {
			continue
		}
		if p.Position.Sub(center).SquareLength() > squareRadius {
			continue
		}

		for _, si := range p.connectedSprings {
			if ship.Springs[si].IsIntact() {
				ship.breakSpring(si, env, nil)
			}
		}

		p.Destroyed = true
		p.Orphaned = true
		p.Water = 0.0
		p.Light = 0.0
		hit = true

		if params.DoGenerateDebris {
			ship.debris = append(ship.debris, p.Position)
		}
		if events != nil {
			events.OnDestroy(p.Material, ship.isUnderwater(p.Position, env), 1)
		}
	}

	if hit {
		ship.dirt.Topology = true
	}
	return hit
}

// RepairAt restores broken springs whose endpoints both lie within the
// radius, and heals endpoint decay and leaks.
func (ship *Ship) RepairAt(center vmath.Vec2, radius float64) bool {
	squareRadius := radius * radius
	repaired := false

	within := func(pi core.ElementIndex) bool {
		p := &ship.Points[pi]
		return !p.Destroyed && p.Position.Sub(center).SquareLength() <= squareRadius
	}

	for i := range ship.Springs {
		s := &ship.Springs[i]
		if s.IsIntact() {
			continue
		}
		if !within(s.PointA) || !within(s.PointB) {
			continue
		}

		ship.restoreSpring(core.ElementIndex(i))
		repaired = true
	}

	if repaired {
		for i := range ship.Points {
			p := &ship.Points[i]
			if !p.Destroyed && p.Position.Sub(center).SquareLength() <= squareRadius {
				p.Decay = 1.0
				p.IsLeaking = false
			}
		}
	}

	return repaired
}

// SawThrough breaks every intact spring crossing the segment. When enabled,
// each cut spawns a sparkle ephemeron at the spring's midpoint.
func (ship *Ship) SawThrough(start, end vmath.Vec2, params parameter.Parameters, env Environment, events *event.Dispatcher) bool {
	cut := false
	for i := range ship.Springs {
		s := &ship.Springs[i]
		if !s.IsIntact() {
			continue
		}

		a := ship.Points[s.PointA].Position
		b := ship.Points[s.PointB].Position
		if segmentsIntersect(start, end, a, b) {
			ship.breakSpring(core.ElementIndex(i), env, events)
			if params.DoGenerateSparkles {
				ship.sparkles = append(ship.sparkles, a.Add(b).Scale(0.5))
			}
			cut = true
		}
	}
	return cut
}

// DrawTo attracts every point toward the target with an inverse-distance
// falloff. Negative strength repels.
func (ship *Ship) DrawTo(target vmath.Vec2, strength float64) {
	for i := range ship.Points {
		p := &ship.Points[i]
		if p.Destroyed {
			continue
		}
		displacement := target.Sub(p.Position)
		distance := displacement.Length()
		direction := displacement.Scale(vmath.SafeInv(distance))

		magnitude := drawForceBase * strength / (1.0 + distance)
		p.AddToolForce(direction.Scale(magnitude))
	}
}

// SwirlAt applies a tangential force field around the centre.
func (ship *Ship) SwirlAt(center vmath.Vec2, strength float64) {
	for i := range ship.Points {
		p := &ship.Points[i]
		if p.Destroyed {
			continue
		}
		displacement := p.Position.Sub(center)
		distance := displacement.Length()
		tangent := displacement.Perpendicular().Scale(vmath.SafeInv(distance))

		magnitude := swirlForceBase * strength / (1.0 + distance)
		p.AddToolForce(tangent.Scale(magnitude))
	}
}

// TogglePinAt pins or unpins the nearest point within the radius. A pinned
// point ignores all forces. Returns whether a point was toggled.
func (ship *Ship) TogglePinAt(center vmath.Vec2, radius float64) bool {
	nearest := ship.NearestPointTo(center, radius)
	if nearest == core.NoneElementIndex {
		return false
	}
	p := &ship.Points[nearest]
	p.Pinned = !p.Pinned
	if p.Pinned {
		p.Velocity = vmath.Zero2
	}
	ship.dirt.PointAttributes = true
	return true
}

// InjectBubblesAt spawns bubble ephemera at the position when it lies below
// the surface.
func (ship *Ship) InjectBubblesAt(position vmath.Vec2, env Environment) bool {
	if !ship.isUnderwater(position, env) {
		return false
	}
	ship.bubbles = append(ship.bubbles, position)
	return true
}

// FloodAt adds water to every point within the radius. Negative quantity
// dries instead.
func (ship *Ship) FloodAt(center vmath.Vec2, radius, quantity float64) bool {
	squareRadius := radius * radius
	flooded := false

	for i := range ship.Points {
		p := &ship.Points[i]
		if p.Destroyed {
			continue
		}
		if p.Position.Sub(center).SquareLength() > squareRadius {
			continue
		}

		p.Water += quantity
		if p.Water < 0.0 {
			p.Water = 0.0
		} else if capacity := p.WaterCapacity(); p.Water > capacity {
			p.Water = capacity
		}
		flooded = true
	}

	if flooded {
		ship.dirt.PointAttributes = true
	}
	return flooded
}

// ScrubThrough cleans rot off the points near the segment, stepping their
// decay back toward sound.
func (ship *Ship) ScrubThrough(start, end vmath.Vec2) bool {
	scrubbed := false
	for i := range ship.Points {
		p := &ship.Points[i]
		if p.Destroyed || p.Decay >= 1.0 {
			continue
		}
		if distanceToSegment(p.Position, start, end) > toolSegmentWidth {
			continue
		}

		p.Decay += scrubRestoreStep
		if p.Decay > 1.0 {
			p.Decay = 1.0
		}
		scrubbed = true
	}

	if scrubbed {
		ship.dirt.PointAttributes = true
	}
	return scrubbed
}

// MoveBy translates the whole ship and sets every point's velocity to the
// inertial velocity of the move.
func (ship *Ship) MoveBy(offset, inertialVelocity vmath.Vec2) {
	for i := range ship.Points {
		p := &ship.Points[i]
		if p.Destroyed {
			continue
		}
		p.Position = p.Position.Add(offset)
		p.Velocity = inertialVelocity
	}
	ship.dirt.PointPositions = true
}

// MovePointBy translates a single point, for element dragging.
func (ship *Ship) MovePointBy(index core.ElementIndex, offset, inertialVelocity vmath.Vec2) {
	p := &ship.Points[index]
	p.Position = p.Position.Add(offset)
	p.Velocity = inertialVelocity
	ship.dirt.PointPositions = true
}

// RotateBy rotates the whole ship around the centre by the angle in radians.
func (ship *Ship) RotateBy(angle float64, center vmath.Vec2) {
	for i := range ship.Points {
		p := &ship.Points[i]
		if p.Destroyed {
			continue
		}
		p.Position = p.Position.RotateAround(angle, center)
		p.Velocity = p.Velocity.Rotate(angle)
	}
	ship.dirt.PointPositions = true
}

// NearestPointTo returns the index of the closest live point within the
// radius, or NoneElementIndex. Query only, no mutation.
func (ship *Ship) NearestPointTo(position vmath.Vec2, radius float64) core.ElementIndex {
	best := core.NoneElementIndex
	bestSquareDistance := radius * radius

	for i := range ship.Points {
		p := &ship.Points[i]
		if p.Destroyed {
			continue
		}
		d := p.Position.Sub(position).SquareLength()
		if d <= bestSquareDistance {
			bestSquareDistance = d
			best = core.ElementIndex(i)
		}
	}
	return best
}

// segmentsIntersect reports proper intersection of segments pq and ab.
func segmentsIntersect(p, q, a, b vmath.Vec2) bool {
	d1 := q.Sub(p).Cross(a.Sub(p))
	d2 := q.Sub(p).Cross(b.Sub(p))
	d3 := b.Sub(a).Cross(p.Sub(a))
	d4 := b.Sub(a).Cross(q.Sub(a))
	return d1*d2 < 0.0 && d3*d4 < 0.0
}

// distanceToSegment is the distance from p to the closest point of segment
// ab.
func distanceToSegment(p, a, b vmath.Vec2) float64 {
	ab := b.Sub(a)
	t := p.Sub(a).Dot(ab) * vmath.SafeInv(ab.SquareLength())
	t = vmath.Clamp(t, 0.0, 1.0)
	closest := a.Add(ab.Scale(t))
	return math.Sqrt(p.Sub(closest).SquareLength())
}
