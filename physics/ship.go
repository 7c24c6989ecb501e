package physics

import (
	"math"
	"math/rand"

	"github.com/corvel/shipfall/core"
	"github.com/corvel/shipfall/event"
	"github.com/corvel/shipfall/parameter"
	"github.com/corvel/shipfall/vmath"
)

// Environment is what a ship reads from the world around it each step.
type Environment interface {
	OceanSurfaceHeightAt(x float64) float64
	OceanFloorHeightAt(x float64) float64
	CurrentWindSpeed() vmath.Vec2
}

// RenderDirt records what changed since the render boundary last consumed
// the ship. Attribute dirt is incremental; topology dirt forces wholesale
// element re-upload.
type RenderDirt struct {
	PointPositions  bool
	PointAttributes bool
	Topology        bool
}

func (d *RenderDirt) clear() {
	*d = RenderDirt{}
}

// Ship is the central simulated entity: flat element arrays stepped once per
// World update. All mesh state is owned exclusively by the ship and touched
// only from the simulation goroutine.
type Ship struct {
	ID   core.ShipID
	Name string

	Points      []Point
	Springs     []Spring
	Triangles   []Triangle
	Electricals []ElectricalElement

	bombs []*Bomb

	rng   *rand.Rand
	frame uint64

	isSinking bool

	// Ephemera spawn positions for this frame, drained by the render
	// boundary.
	bubbles  []vmath.Vec2
	debris   []vmath.Vec2
	sparkles []vmath.Vec2

	dirt RenderDirt
}

// IsSinking reports whether the ship has crossed the sinking threshold.
func (ship *Ship) IsSinking() bool {
	return ship.isSinking
}

// RenderDirt reports the pending dirt; cleared by ClearRenderDirt after the
// render boundary consumed it.
func (ship *Ship) RenderDirt() RenderDirt {
	return ship.dirt
}

func (ship *Ship) ClearRenderDirt() {
	ship.dirt.clear()
}

// DrainBubbles returns the bubble spawn positions accumulated this frame and
// resets the list.
func (ship *Ship) DrainBubbles() []vmath.Vec2 {
	b := ship.bubbles
	ship.bubbles = nil
	return b
}

// DrainDebris returns the debris spawn positions accumulated this frame and
// resets the list.
func (ship *Ship) DrainDebris() []vmath.Vec2 {
	d := ship.debris
	ship.debris = nil
	return d
}

// DrainSparkles returns the sparkle spawn positions accumulated this frame
// and resets the list.
func (ship *Ship) DrainSparkles() []vmath.Vec2 {
	s := ship.sparkles
	ship.sparkles = nil
	return s
}

// Update runs one full simulation step: mechanics substeps, stress and
// breakage, water transport, thermal decay, the electrical walk, topology
// consequences and sinking detection. Interactive tool forces queued since
// the previous frame are consumed on the first substep.
func (ship *Ship) Update(
	currentSimulationTime float64,
	params parameter.Parameters,
	env Environment,
	events *event.Dispatcher,
) {
	ship.frame++

	ship.updateBombs(currentSimulationTime, params, env, events)

	iterations := params.NumMechanicalDynamicsIterations()
	dt := params.MechanicalSimulationStepTimeDuration()
	for iter := 0; iter < iterations; iter++ {
		ship.accumulateForces(iter == 0, params, env)
		ship.integrate(dt, env)
	}

	ship.updateStress(params, env, events)
	ship.updateWater(params, env)
	ship.updateThermal(params)
	ship.updateElectrical(params)
	ship.updateSinking(events)

	ship.dirt.PointPositions = true
}

// accumulateForces zeroes and refills every point's force accumulator.
func (ship *Ship) accumulateForces(firstIteration bool, params parameter.Parameters, env Environment) {
	wind := env.CurrentWindSpeed()

	for i := range ship.Points {
		p := &ship.Points[i]
		if p.Destroyed {
			continue
		}

		p.force = vmath.Zero2

		if firstIteration {
			p.force = p.force.Add(p.toolForce)
			p.toolForce = vmath.Zero2
		}

		totalMass := p.TotalMass()

		// Gravity
		p.force.Y -= parameter.GravityMagnitude * totalMass

		// Submerged fraction ramps over a band around the surface line
		surfaceY := env.OceanSurfaceHeightAt(p.Position.X)
		submerged := vmath.Clamp((surfaceY-p.Position.Y)/submersionBand, 0.0, 1.0)

		if submerged > 0.0 {
			// Buoyancy from displaced water
			p.force.Y += parameter.GravityMagnitude * submerged *
				p.buoyancyVolume * waterBuoyantMass * params.BuoyancyAdjustment

			// Linear water drag
			drag := waterDragBase * params.WaterDragAdjustment * submerged
			p.force = p.force.Sub(p.Velocity.Scale(drag * totalMass * 0.01))
		} else {
			// Wind on exposed points
			relative := wind.Sub(p.Velocity)
			p.force = p.force.Add(relative.Scale(windForceBase * p.Material.WindReceptivity))
		}
	}

	// Spring forces: Hooke along the axis plus velocity damping
	stiffnessAdjustment := params.SpringStiffnessAdjustment
	dampingAdjustment := params.SpringDampingAdjustment
	for i := range ship.Springs {
		s := &ship.Springs[i]
		if !s.IsIntact() {
			continue
		}

		a := &ship.Points[s.PointA]
		b := &ship.Points[s.PointB]

		displacement := b.Position.Sub(a.Position)
		length := displacement.Length()
		direction := displacement.Scale(vmath.SafeInv(length))

		stiffness := springStiffnessBase * s.Material.Stiffness * stiffnessAdjustment
		if s.IsRope {
			// Ropes only pull
			if length <= s.RestLength {
				continue
			}
			stiffness *= 0.2
		}

		hooke := stiffness * (length - s.RestLength)

		relativeVelocity := b.Velocity.Sub(a.Velocity)
		damp := springDampingBase * dampingAdjustment * relativeVelocity.Dot(direction)

		f := direction.Scale(hooke + damp)
		a.force = a.force.Add(f)
		b.force = b.force.Sub(f)
	}
}

// integrate advances velocities and positions one substep of semi-implicit
// Euler, then resolves seabed contact.
func (ship *Ship) integrate(dt float64, env Environment) {
	for i := range ship.Points {
		p := &ship.Points[i]
		if p.Destroyed {
			continue
		}
		if p.Pinned {
			p.Velocity = vmath.Zero2
			continue
		}

		p.Velocity = p.Velocity.Add(p.force.Scale(dt * vmath.SafeInv(p.TotalMass())))
		p.Velocity = p.Velocity.Scale(globalVelocityDamping)
		p.Position = p.Position.Add(p.Velocity.Scale(dt))

		floorY := env.OceanFloorHeightAt(p.Position.X)
		if p.Position.Y < floorY {
			p.Position.Y = floorY
			if p.Velocity.Y < 0.0 {
				p.Velocity.Y = -p.Velocity.Y * floorRestitution
			}
		}
	}
}

// updateStress walks every intact spring, transitions stress states and
// breaks the ones strained past their threshold. Breakage is irreversible
// outside the repair tool.
func (ship *Ship) updateStress(params parameter.Parameters, env Environment, events *event.Dispatcher) {
	strengthAdjustment := params.EffectiveSpringStrengthAdjustment()

	for i := range ship.Springs {
		s := &ship.Springs[i]
		if !s.IsIntact() {
			continue
		}

		a := &ship.Points[s.PointA]
		b := &ship.Points[s.PointB]

		length := b.Position.Sub(a.Position).Length()
		strain := math.Abs(length-s.RestLength) * vmath.SafeInv(s.RestLength)

		// Endpoint decay weakens the spring
		decay := 0.5 * (a.Decay + b.Decay)
		breakStrain := s.breakStrain(strengthAdjustment * decay)

		switch {
		case strain > breakStrain:
			ship.breakSpring(core.ElementIndex(i), env, events)

		case strain > breakStrain*stressStrainFraction:
			if s.State == StressStateNormal {
				s.State = StressStateStressed
				events.OnStress(s.Material, ship.isUnderwater(a.Position, env), 1)
				ship.dirt.Topology = true
			}

		default:
			if s.State == StressStateStressed {
				s.State = StressStateNormal
				ship.dirt.Topology = true
			}
		}
	}
}

// breakSpring marks the spring broken, detaches it from force accumulation,
// hides its covering triangles, breaches hull endpoints and orphans points
// left without intact springs.
func (ship *Ship) breakSpring(index core.ElementIndex, env Environment, events *event.Dispatcher) {
	s := &ship.Springs[index]
	if !s.IsIntact() {
		return
	}
	s.State = StressStateBroken

	for _, ti := range s.coveringTriangles {
		ship.Triangles[ti].Visible = false
	}

	for _, pi := range []core.ElementIndex{s.PointA, s.PointB} {
		p := &ship.Points[pi]
		p.intactSpringCount--
		p.IsLeaking = true
		if p.intactSpringCount <= 0 {
			p.Orphaned = true
		}
	}

	if events != nil {
		a := &ship.Points[s.PointA]
		events.OnBreak(s.Material, ship.isUnderwater(a.Position, env), 1)
	}

	ship.dirt.Topology = true
}

// restoreSpring is the repair tool's inverse of breakSpring.
func (ship *Ship) restoreSpring(index core.ElementIndex) {
	s := &ship.Springs[index]
	if s.IsIntact() {
		return
	}
	s.State = StressStateNormal

	for _, pi := range []core.ElementIndex{s.PointA, s.PointB} {
		p := &ship.Points[pi]
		p.intactSpringCount++
		p.Orphaned = false
	}

	// A hidden triangle comes back only when all its covering springs are
	// whole again
	for _, ti := range s.coveringTriangles {
		ship.Triangles[ti].Visible = ship.triangleIntact(ti)
	}

	ship.dirt.Topology = true
}

func (ship *Ship) triangleIntact(ti core.ElementIndex) bool {
	t := &ship.Triangles[ti]
	for _, si := range ship.Points[t.PointA].connectedSprings {
		s := &ship.Springs[si]
		if !s.IsIntact() && ship.springCovers(si, ti) {
			return false
		}
	}
	for _, si := range ship.Points[t.PointB].connectedSprings {
		s := &ship.Springs[si]
		if !s.IsIntact() && ship.springCovers(si, ti) {
			return false
		}
	}
	return true
}

func (ship *Ship) springCovers(si, ti core.ElementIndex) bool {
	for _, covered := range ship.Springs[si].coveringTriangles {
		if covered == ti {
			return true
		}
	}
	return false
}

// updateWater runs intake, diffusion and evaporation for the frame.
// Attribute dirt is raised only when a water level actually moved.
func (ship *Ship) updateWater(params parameter.Parameters, env Environment) {
	dt := parameter.SimulationStepTimeDuration

	for i := range ship.Points {
		p := &ship.Points[i]
		if p.Destroyed {
			continue
		}

		surfaceY := env.OceanSurfaceHeightAt(p.Position.X)
		if p.Position.Y < surfaceY {
			// Intake at leaking points, proportional to the pressure head.
			// Intact hull keeps water out.
			takesWater := !p.Material.IsHull || p.IsLeaking
			if takesWater && p.Material.WaterIntake > 0.0 {
				head := surfaceY - p.Position.Y
				wasWet := p.Water > wetPointThreshold

				p.Water += head * p.Material.WaterIntake * params.WaterIntakeAdjustment * 0.01 * dt
				if capacity := p.WaterCapacity(); p.Water > capacity {
					p.Water = capacity
				}
				ship.dirt.PointAttributes = true

				if !wasWet && p.Water > wetPointThreshold && params.DoGenerateAirBubbles {
					ship.bubbles = append(ship.bubbles, p.Position)
				}
			}
		} else if p.Water > 0.0 {
			p.Water -= evaporationRate * dt
			if p.Water < 0.0 {
				p.Water = 0.0
			}
			ship.dirt.PointAttributes = true
		}
	}

	// Diffusion along intact springs toward equal levels, amplified by the
	// crazyness knob
	diffusion := params.WaterDiffusionSpeedAdjustment * params.WaterCrazyness
	for i := range ship.Springs {
		s := &ship.Springs[i]
		if !s.IsIntact() {
			continue
		}

		a := &ship.Points[s.PointA]
		b := &ship.Points[s.PointB]

		speed := 0.5 * (a.Material.WaterDiffusionSpeed + b.Material.WaterDiffusionSpeed)
		flow := (a.Water - b.Water) * 0.5 * speed * diffusion
		if flow == 0.0 {
			continue
		}

		if flow > a.Water {
			flow = a.Water
		} else if -flow > b.Water {
			flow = -b.Water
		}

		a.Water -= flow
		b.Water += flow
		ship.dirt.PointAttributes = true
	}
}

// updateThermal diffuses temperature along intact springs and rots wet
// points.
func (ship *Ship) updateThermal(params parameter.Parameters) {
	dt := parameter.SimulationStepTimeDuration

	for i := range ship.Springs {
		s := &ship.Springs[i]
		if !s.IsIntact() {
			continue
		}

		a := &ship.Points[s.PointA]
		b := &ship.Points[s.PointB]

		conductivity := 0.5 * (a.Material.ThermalConductivity + b.Material.ThermalConductivity)
		q := (a.Temperature - b.Temperature) * conductivity * params.HeatDiffusionAdjustment * 0.01 * dt
		if q == 0.0 {
			continue
		}

		a.Temperature -= q * vmath.SafeInv(a.Material.HeatCapacity())
		b.Temperature += q * vmath.SafeInv(b.Material.HeatCapacity())
		ship.dirt.PointAttributes = true
	}

	if params.RotAcceler8r > 0.0 {
		for i := range ship.Points {
			p := &ship.Points[i]
			if p.Destroyed || p.Water <= wetPointThreshold || p.Decay <= 0.0 {
				continue
			}

			rate := rotRateBase * params.RotAcceler8r * p.Material.RustReceptivity
			if p.Material.IsHull {
				rate *= 0.5
			}
			p.Decay -= rate * dt
			if p.Decay < 0.0 {
				p.Decay = 0.0
			}
			ship.dirt.PointAttributes = true
		}
	}
}

// updateSinking fires OnSinkingBegin once when the wet fraction crosses the
// threshold.
func (ship *Ship) updateSinking(events *event.Dispatcher) {
	if ship.isSinking || len(ship.Points) == 0 {
		return
	}

	wet := 0
	for i := range ship.Points {
		if ship.Points[i].Water > wetPointThreshold {
			wet++
		}
	}

	if float64(wet)/float64(len(ship.Points)) > sinkingWetPointFraction {
		ship.isSinking = true
		if events != nil {
			events.OnSinkingBegin(ship.ID)
		}
	}
}

func (ship *Ship) isUnderwater(pos vmath.Vec2, env Environment) bool {
	return pos.Y < env.OceanSurfaceHeightAt(pos.X)
}
