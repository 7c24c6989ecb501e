package physics

import (
	"github.com/corvel/shipfall/core"
	"github.com/corvel/shipfall/material"
	"github.com/corvel/shipfall/parameter"
)

// ElectricalElement attaches electrical behaviour to one point. Generators
// power every conductive element reachable along intact springs; lamps light
// when powered and fail permanently when wet for too long.
type ElectricalElement struct {
	PointIndex core.ElementIndex
	Material   *material.Electrical

	Powered bool
	Failed  bool
}

// IsOperational reports whether the element currently does its job.
func (e *ElectricalElement) IsOperational() bool {
	return !e.Failed && (e.Powered || e.Material.IsSelfPowered)
}

// updateElectrical runs the wet-failure roll every frame and, at the
// connectivity cadence, re-walks power from the generators.
func (ship *Ship) updateElectrical(params parameter.Parameters) {
	if len(ship.Electricals) == 0 {
		return
	}

	for i := range ship.Electricals {
		e := &ship.Electricals[i]
		if e.Failed {
			continue
		}
		p := &ship.Points[e.PointIndex]
		if p.Water > wetPointThreshold && e.Material.WetFailureRate > 0.0 {
			// Rate is failures per simulated minute while wet
			probability := e.Material.WetFailureRate / 60.0 * parameter.SimulationStepTimeDuration
			if ship.rng.Float64() < probability {
				e.Failed = true
				e.Powered = false
				ship.dirt.PointAttributes = true
			}
		}
	}

	if ship.frame%electricalUpdatePeriod == 0 {
		ship.propagatePower()
	}

	// Operating elements generate heat and light at their point
	for i := range ship.Electricals {
		e := &ship.Electricals[i]
		p := &ship.Points[e.PointIndex]

		light := 0.0
		if e.IsOperational() {
			if e.Material.HeatGenerated > 0.0 {
				p.Temperature += e.Material.HeatGenerated /
					p.Material.HeatCapacity() * parameter.SimulationStepTimeDuration
				ship.dirt.PointAttributes = true
			}
			if e.Material.ElectricalType == material.ElectricalLamp {
				light = e.Material.Luminiscence
			}
		}
		if light != p.Light {
			p.Light = light
			ship.dirt.PointAttributes = true
		}
	}
}

// propagatePower walks the conductive subgraph out of every live generator
// along intact springs and sets Powered on what it reaches.
func (ship *Ship) propagatePower() {
	elementAt := make(map[core.ElementIndex]int, len(ship.Electricals))
	for i := range ship.Electricals {
		ship.Electricals[i].Powered = false
		elementAt[ship.Electricals[i].PointIndex] = i
	}

	var queue []core.ElementIndex
	for i := range ship.Electricals {
		e := &ship.Electricals[i]
		if e.Material.ElectricalType == material.ElectricalGenerator && !e.Failed {
			e.Powered = true
			queue = append(queue, e.PointIndex)
		}
	}

	visited := make(map[core.ElementIndex]struct{}, len(queue))
	for _, pi := range queue {
		visited[pi] = struct{}{}
	}

	for len(queue) > 0 {
		pi := queue[0]
		queue = queue[1:]

		for _, si := range ship.Points[pi].connectedSprings {
			s := &ship.Springs[si]
			if !s.IsIntact() {
				continue
			}
			other := s.PointA
			if other == pi {
				other = s.PointB
			}
			if _, seen := visited[other]; seen {
				continue
			}

			ei, hasElement := elementAt[other]
			if !hasElement {
				continue
			}
			e := &ship.Electricals[ei]
			if e.Failed || !e.Material.ConductsElectricity {
				// Power reaches the element but does not pass through
				if !e.Failed {
					e.Powered = true
				}
				continue
			}

			e.Powered = true
			visited[other] = struct{}{}
			queue = append(queue, other)
		}
	}
}
