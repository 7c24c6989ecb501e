package world

import (
	"github.com/corvel/shipfall/core"
	"github.com/corvel/shipfall/parameter"
	"github.com/corvel/shipfall/physics"
	"github.com/corvel/shipfall/vmath"
)

// Player interactions. Each tool performs a spatial query against the ships
// and applies a localized, synchronous mutation; nothing here is deferred to
// a later frame. Radii come in pre-clamped through the Parameters the caller
// holds; the world clamps again on Update anyway.

// Pick returns the id of the nearest live point across all ships within the
// radius. Query only, no mutation.
func (w *World) Pick(position vmath.Vec2, radius float64) (core.ElementID, bool) {
	bestShip := core.ShipID(0)
	bestIndex := core.NoneElementIndex
	bestSquareDistance := radius * radius

	for _, ship := range w.ships {
		index := ship.NearestPointTo(position, radius)
		if index == core.NoneElementIndex {
			continue
		}
		d := ship.Points[index].Position.Sub(position).SquareLength()
		if d <= bestSquareDistance {
			bestSquareDistance = d
			bestShip = ship.ID
			bestIndex = index
		}
	}

	if bestIndex == core.NoneElementIndex {
		return core.ElementID{}, false
	}
	return core.ElementID{Ship: bestShip, Index: bestIndex}, true
}

// NearestPointTo is Pick without the found/not-found distinction collapsed;
// kept for callers that track the ship themselves.
func (w *World) NearestPointTo(position vmath.Vec2, radius float64) (core.ElementID, bool) {
	return w.Pick(position, radius)
}

// DestroyAt destroys structure within the radius on every ship it touches.
func (w *World) DestroyAt(position vmath.Vec2, radius float64) bool {
	hit := false
	for _, ship := range w.ships {
		if ship.DestroyAt(position, radius, w.params, w, w.events) {
			hit = true
		}
	}
	if hit {
		w.log.Debug().Float64("x", position.X).Float64("y", position.Y).Msg("destroy")
	}
	return hit
}

// RepairAt restores broken structure within the radius.
func (w *World) RepairAt(position vmath.Vec2, radius float64) bool {
	repaired := false
	for _, ship := range w.ships {
		if ship.RepairAt(position, radius) {
			repaired = true
		}
	}
	return repaired
}

// SawThrough cuts every spring crossing the segment, on every ship.
func (w *World) SawThrough(start, end vmath.Vec2) bool {
	cut := false
	for _, ship := range w.ships {
		if ship.SawThrough(start, end, w.params, w, w.events) {
			cut = true
		}
	}
	return cut
}

// DrawTo attracts all ships' points toward the target; negative strength
// repels.
func (w *World) DrawTo(target vmath.Vec2, strength float64) {
	for _, ship := range w.ships {
		ship.DrawTo(target, strength)
	}
}

// SwirlAt spins all ships' points around the centre.
func (w *World) SwirlAt(center vmath.Vec2, strength float64) {
	for _, ship := range w.ships {
		ship.SwirlAt(center, strength)
	}
}

// TogglePinAt pins or unpins the nearest point across all ships.
func (w *World) TogglePinAt(position vmath.Vec2, radius float64) bool {
	id, found := w.Pick(position, radius)
	if !found {
		return false
	}
	return w.ships[id.Ship].TogglePinAt(w.ships[id.Ship].Points[id.Index].Position, radius)
}

// InjectBubblesAt spawns bubbles at an underwater position.
func (w *World) InjectBubblesAt(position vmath.Vec2) bool {
	injected := false
	for _, ship := range w.ships {
		if ship.InjectBubblesAt(position, w) {
			injected = true
		}
	}
	return injected
}

// FloodAt adds (or, negative, removes) water within the radius.
func (w *World) FloodAt(position vmath.Vec2, radius, quantity float64) bool {
	flooded := false
	for _, ship := range w.ships {
		if ship.FloodAt(position, radius, quantity) {
			flooded = true
		}
	}
	return flooded
}

// ScrubThrough cleans rot off points near the segment.
func (w *World) ScrubThrough(start, end vmath.Vec2) bool {
	scrubbed := false
	for _, ship := range w.ships {
		if ship.ScrubThrough(start, end) {
			scrubbed = true
		}
	}
	return scrubbed
}

// MoveBy translates one ship rigidly.
func (w *World) MoveBy(id core.ShipID, offset, inertialVelocity vmath.Vec2) {
	if int(id) < len(w.ships) {
		w.ships[id].MoveBy(offset, inertialVelocity)
	}
}

// MovePointBy drags a single point.
func (w *World) MovePointBy(id core.ElementID, offset, inertialVelocity vmath.Vec2) {
	if int(id.Ship) < len(w.ships) {
		w.ships[id.Ship].MovePointBy(id.Index, offset, inertialVelocity)
	}
}

// RotateBy rotates one ship around a centre.
func (w *World) RotateBy(id core.ShipID, angle float64, center vmath.Vec2) {
	if int(id) < len(w.ships) {
		w.ships[id].RotateBy(angle, center)
	}
}

// AdjustOceanSurfaceTo drives the interactive wave maker.
func (w *World) AdjustOceanSurfaceTo(x, targetY float64) {
	w.oceanSurface.AdjustTo(w.currentSimulationTime, x, targetY)
}

// AdjustOceanFloorTo edits the seabed along the segment.
func (w *World) AdjustOceanFloorTo(x1, targetY1, x2, targetY2 float64) bool {
	return w.oceanFloor.AdjustTo(x1, targetY1, x2, targetY2)
}

// TriggerTsunami starts a tsunami at a random seeded position via the
// surface's own generator offset to x.
func (w *World) TriggerTsunami(x float64) {
	w.oceanSurface.TriggerTsunami(w.currentSimulationTime, x)
}

// TriggerRogueWave starts a rogue wave at x.
func (w *World) TriggerRogueWave(x float64) {
	w.oceanSurface.TriggerRogueWave(w.currentSimulationTime, x)
}

// Bomb tools. Toggles act on the ship owning the nearest point; detonation
// commands fan out to every ship.

func (w *World) ToggleTimerBombAt(position vmath.Vec2, radius float64) bool {
	return w.toggleBombAt(physics.BombTimer, position, radius)
}

func (w *World) ToggleRCBombAt(position vmath.Vec2, radius float64) bool {
	return w.toggleBombAt(physics.BombRC, position, radius)
}

func (w *World) ToggleImpactBombAt(position vmath.Vec2, radius float64) bool {
	return w.toggleBombAt(physics.BombImpact, position, radius)
}

func (w *World) ToggleAntimatterBombAt(position vmath.Vec2, radius float64) bool {
	return w.toggleBombAt(physics.BombAntimatter, position, radius)
}

func (w *World) toggleBombAt(t physics.BombType, position vmath.Vec2, radius float64) bool {
	id, found := w.Pick(position, radius)
	if !found {
		return false
	}
	return w.ships[id.Ship].ToggleBombAt(t, position, radius)
}

// DetonateRCBombs sets off every armed remote-controlled bomb in the world.
func (w *World) DetonateRCBombs(params parameter.Parameters) bool {
	params = params.Clamped()
	any := false
	for _, ship := range w.ships {
		if ship.DetonateRCBombs(params, w, w.events) {
			any = true
		}
	}
	return any
}

// DetonateAntimatterBombs starts the implosion of every armed antimatter
// bomb.
func (w *World) DetonateAntimatterBombs() bool {
	any := false
	for _, ship := range w.ships {
		if ship.DetonateAntimatterBombs() {
			any = true
		}
	}
	return any
}
