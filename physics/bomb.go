package physics

import (
	"github.com/corvel/shipfall/core"
	"github.com/corvel/shipfall/event"
	"github.com/corvel/shipfall/parameter"
	"github.com/corvel/shipfall/vmath"
)

// BombType selects the bomb lifecycle.
type BombType uint8

const (
	BombTimer BombType = iota
	BombRC
	BombImpact
	BombAntimatter
)

// BombState is the lifecycle position of a placed bomb.
type BombState uint8

const (
	BombStateArmed BombState = iota
	BombStateImploding
	BombStateExploded
)

const (
	timerBombFuse = 10.0 // s

	// Velocity change per frame that sets off an impact bomb.
	impactTriggerDeltaV = 6.0

	// Antimatter bombs pull inward for this long before the blast.
	antimatterImplosionDuration = 1.5
	antimatterImplosionForce    = 20000.0
	antimatterBlastMultiplier   = 5.0

	blastForceBase = 80000.0
	blastHeat      = 80.0 // K at the blast centre
)

// Bomb is an explosive attached to the nearest ship point. Its position
// follows the point until detonation.
type Bomb struct {
	Type  BombType
	State BombState

	AttachedPoint core.ElementIndex
	Position      vmath.Vec2

	// Timer fuse remaining, or implosion time remaining.
	timeRemaining float64

	lastPointVelocity vmath.Vec2
}

// Bombs lists the ship's live bombs.
func (ship *Ship) Bombs() []*Bomb {
	return ship.bombs
}

// ToggleBombAt places a bomb of the type attached to the nearest point
// within the radius, or removes an armed bomb of that type already within
// it. Returns whether anything changed.
func (ship *Ship) ToggleBombAt(t BombType, center vmath.Vec2, radius float64) bool {
	squareRadius := radius * radius
	for i, b := range ship.bombs {
		if b.Type == t && b.State == BombStateArmed &&
			b.Position.Sub(center).SquareLength() <= squareRadius {
			ship.bombs = append(ship.bombs[:i], ship.bombs[i+1:]...)
			return true
		}
	}

	nearest := ship.NearestPointTo(center, radius)
	if nearest == core.NoneElementIndex {
		return false
	}

	p := &ship.Points[nearest]
	ship.bombs = append(ship.bombs, &Bomb{
		Type:              t,
		State:             BombStateArmed,
		AttachedPoint:     nearest,
		Position:          p.Position,
		timeRemaining:     timerBombFuse,
		lastPointVelocity: p.Velocity,
	})
	return true
}

// DetonateRCBombs triggers every armed remote-controlled bomb.
func (ship *Ship) DetonateRCBombs(params parameter.Parameters, env Environment, events *event.Dispatcher) bool {
	any := false
	for _, b := range ship.bombs {
		if b.Type == BombRC && b.State == BombStateArmed {
			ship.detonate(b, params, env, events)
			any = true
		}
	}
	ship.removeExploded()
	return any
}

// DetonateAntimatterBombs starts the implosion phase of every armed
// antimatter bomb; the blast follows after the implosion runs out.
func (ship *Ship) DetonateAntimatterBombs() bool {
	any := false
	for _, b := range ship.bombs {
		if b.Type == BombAntimatter && b.State == BombStateArmed {
			b.State = BombStateImploding
			b.timeRemaining = antimatterImplosionDuration
			any = true
		}
	}
	return any
}

// updateBombs advances fuses, follows attached points, triggers impact
// detection and runs the antimatter implosion field.
func (ship *Ship) updateBombs(
	currentSimulationTime float64,
	params parameter.Parameters,
	env Environment,
	events *event.Dispatcher,
) {
	_ = currentSimulationTime
	dt := parameter.SimulationStepTimeDuration

	for _, b := range ship.bombs {
		p := &ship.Points[b.AttachedPoint]
		if !p.Destroyed {
			b.Position = p.Position
		}

		switch b.Type {
		case BombTimer:
			if b.State == BombStateArmed {
				b.timeRemaining -= dt
				if b.timeRemaining <= 0.0 {
					ship.detonate(b, params, env, events)
				}
			}

		case BombImpact:
			if b.State == BombStateArmed && !p.Destroyed {
				deltaV := p.Velocity.Sub(b.lastPointVelocity).Length()
				if deltaV > impactTriggerDeltaV {
					ship.detonate(b, params, env, events)
				}
				b.lastPointVelocity = p.Velocity
			}

		case BombAntimatter:
			if b.State == BombStateImploding {
				ship.applyImplosion(b.Position)
				b.timeRemaining -= dt
				if b.timeRemaining <= 0.0 {
					ship.detonate(b, params, env, events)
				}
			}

		case BombRC:
			// Waits for DetonateRCBombs
		}
	}

	ship.removeExploded()
}

// detonate applies the radial blast and destroys structure at the centre.
func (ship *Ship) detonate(b *Bomb, params parameter.Parameters, env Environment, events *event.Dispatcher) {
	if b.State == BombStateExploded {
		return
	}

	radius := params.BombBlastRadius
	force := blastForceBase * params.BombBlastForceAdjustment
	if b.Type == BombAntimatter {
		radius *= 2.0
		force *= antimatterBlastMultiplier
	}

	ship.ApplyBlastAt(b.Position, radius, force)

	// Structure at the heart of the blast is destroyed outright
	ship.DestroyAt(b.Position, radius*0.3, params, env, events)

	b.State = BombStateExploded
}

// ApplyBlastAt pushes every point within the radius away from the centre
// with linear falloff and heats it.
func (ship *Ship) ApplyBlastAt(center vmath.Vec2, radius, force float64) {
	squareRadius := radius * radius
	for i := range ship.Points {
		p := &ship.Points[i]
		if p.Destroyed {
			continue
		}
		displacement := p.Position.Sub(center)
		squareDistance := displacement.SquareLength()
		if squareDistance > squareRadius {
			continue
		}

		distance := displacement.Length()
		direction := displacement.Scale(vmath.SafeInv(distance))
		falloff := 1.0 - distance/radius

		p.AddToolForce(direction.Scale(force * falloff))
		p.Temperature += blastHeat * falloff
	}
	ship.dirt.PointAttributes = true
}

// applyImplosion pulls everything toward the antimatter bomb.
func (ship *Ship) applyImplosion(center vmath.Vec2) {
	for i := range ship.Points {
		p := &ship.Points[i]
		if p.Destroyed {
			continue
		}
		displacement := center.Sub(p.Position)
		distance := displacement.Length()
		direction := displacement.Scale(vmath.SafeInv(distance))

		p.AddToolForce(direction.Scale(antimatterImplosionForce / (1.0 + distance)))
	}
}

func (ship *Ship) removeExploded() {
	live := ship.bombs[:0]
	for _, b := range ship.bombs {
		if b.State != BombStateExploded {
			live = append(live, b)
		}
	}
	ship.bombs = live
}
