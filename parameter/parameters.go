// Package parameter holds the simulation tunables. A Parameters value is
// consumed by value on every World.Update; Clamped() is applied first so the
// core never sees an out-of-range knob.
package parameter

import "github.com/corvel/shipfall/vmath"

// Simulation step constants, not user-adjustable.
const (
	// SimulationStepTimeDuration is the simulated seconds advanced per frame.
	SimulationStepTimeDuration = 0.02

	// NumMechanicalDynamicsIterationsBase is the substep count before the
	// user adjustment multiplier is applied.
	NumMechanicalDynamicsIterationsBase = 30

	// GravityMagnitude is m/s², applied along -y.
	GravityMagnitude = 9.80

	// UltraViolentStrengthDivisor weakens effective spring strength when
	// ultra-violent mode is on.
	UltraViolentStrengthDivisor = 10.0
)

// Parameters is the full knob set consumed each Update.
type Parameters struct {
	// Mechanics
	NumMechanicalDynamicsIterationsAdjustment float64
	SpringStiffnessAdjustment                 float64
	SpringDampingAdjustment                   float64
	SpringStrengthAdjustment                  float64
	BuoyancyAdjustment                        float64
	WaterDragAdjustment                       float64
	UltraViolentMode                          bool

	// Water dynamics
	WaterIntakeAdjustment         float64
	WaterDiffusionSpeedAdjustment float64
	WaterCrazyness                float64

	// Thermal and decay
	HeatDiffusionAdjustment float64
	RotAcceler8r            float64

	// Wind
	WindSpeedBase    float64
	DoGustModulation bool

	// Waves
	BasalWaveHeightAdjustment float64
	BasalWaveLengthAdjustment float64
	BasalWaveSpeedAdjustment  float64
	TsunamiRate               float64
	RogueWaveRate             float64

	// Ocean floor
	SeaDepth                      float64
	OceanFloorBumpiness           float64
	OceanFloorDetailAmplification float64

	// Tools
	DestroyRadius            float64
	RepairRadius             float64
	FloodRadius              float64
	FloodQuantity            float64
	BombBlastRadius          float64
	BombBlastForceAdjustment float64

	// Ephemera toggles
	DoGenerateAirBubbles bool
	DoGenerateDebris     bool
	DoGenerateSparkles   bool
}

// Defaults returns the stock parameter set.
func Defaults() Parameters {
	return Parameters{
		NumMechanicalDynamicsIterationsAdjustment: 1.0,
		SpringStiffnessAdjustment:                 1.0,
		SpringDampingAdjustment:                   1.0,
		SpringStrengthAdjustment:                  1.0,
		BuoyancyAdjustment:                        1.0,
		WaterDragAdjustment:                       1.0,

		WaterIntakeAdjustment:         1.0,
		WaterDiffusionSpeedAdjustment: 0.5,
		WaterCrazyness:                1.0,

		HeatDiffusionAdjustment: 1.0,
		RotAcceler8r:            1.0,

		WindSpeedBase:    15.0,
		DoGustModulation: true,

		BasalWaveHeightAdjustment: 1.0,
		BasalWaveLengthAdjustment: 1.0,
		BasalWaveSpeedAdjustment:  1.0,
		TsunamiRate:               0.0,
		RogueWaveRate:             2.0,

		SeaDepth:                      300.0,
		OceanFloorBumpiness:           1.0,
		OceanFloorDetailAmplification: 10.0,

		DestroyRadius:            0.75,
		RepairRadius:             2.0,
		FloodRadius:              0.75,
		FloodQuantity:            1.0,
		BombBlastRadius:          2.5,
		BombBlastForceAdjustment: 1.0,

		DoGenerateAirBubbles: true,
		DoGenerateDebris:     true,
		DoGenerateSparkles:   true,
	}
}

// Clamped returns a copy with every adjustable knob forced into its bounds.
func (p Parameters) Clamped() Parameters {
	c := p

	c.NumMechanicalDynamicsIterationsAdjustment = vmath.Clamp(p.NumMechanicalDynamicsIterationsAdjustment,
		MinNumMechanicalDynamicsIterationsAdjustment, MaxNumMechanicalDynamicsIterationsAdjustment)
	c.SpringStiffnessAdjustment = vmath.Clamp(p.SpringStiffnessAdjustment,
		MinSpringStiffnessAdjustment, MaxSpringStiffnessAdjustment)
	c.SpringDampingAdjustment = vmath.Clamp(p.SpringDampingAdjustment,
		MinSpringDampingAdjustment, MaxSpringDampingAdjustment)
	c.SpringStrengthAdjustment = vmath.Clamp(p.SpringStrengthAdjustment,
		MinSpringStrengthAdjustment, MaxSpringStrengthAdjustment)
	c.BuoyancyAdjustment = vmath.Clamp(p.BuoyancyAdjustment,
		MinBuoyancyAdjustment, MaxBuoyancyAdjustment)
	c.WaterDragAdjustment = vmath.Clamp(p.WaterDragAdjustment,
		MinWaterDragAdjustment, MaxWaterDragAdjustment)

	c.WaterIntakeAdjustment = vmath.Clamp(p.WaterIntakeAdjustment,
		MinWaterIntakeAdjustment, MaxWaterIntakeAdjustment)
	c.WaterDiffusionSpeedAdjustment = vmath.Clamp(p.WaterDiffusionSpeedAdjustment,
		MinWaterDiffusionSpeedAdjustment, MaxWaterDiffusionSpeedAdjustment)
	c.WaterCrazyness = vmath.Clamp(p.WaterCrazyness, MinWaterCrazyness, MaxWaterCrazyness)

	c.HeatDiffusionAdjustment = vmath.Clamp(p.HeatDiffusionAdjustment,
		MinHeatDiffusionAdjustment, MaxHeatDiffusionAdjustment)
	c.RotAcceler8r = vmath.Clamp(p.RotAcceler8r, MinRotAcceler8r, MaxRotAcceler8r)

	c.WindSpeedBase = vmath.Clamp(p.WindSpeedBase, MinWindSpeedBase, MaxWindSpeedBase)

	c.BasalWaveHeightAdjustment = vmath.Clamp(p.BasalWaveHeightAdjustment,
		MinBasalWaveHeightAdjustment, MaxBasalWaveHeightAdjustment)
	c.BasalWaveLengthAdjustment = vmath.Clamp(p.BasalWaveLengthAdjustment,
		MinBasalWaveLengthAdjustment, MaxBasalWaveLengthAdjustment)
	c.BasalWaveSpeedAdjustment = vmath.Clamp(p.BasalWaveSpeedAdjustment,
		MinBasalWaveSpeedAdjustment, MaxBasalWaveSpeedAdjustment)
	c.TsunamiRate = vmath.Clamp(p.TsunamiRate, MinTsunamiRate, MaxTsunamiRate)
	c.RogueWaveRate = vmath.Clamp(p.RogueWaveRate, MinRogueWaveRate, MaxRogueWaveRate)

	c.SeaDepth = vmath.Clamp(p.SeaDepth, MinSeaDepth, MaxSeaDepth)
	c.OceanFloorBumpiness = vmath.Clamp(p.OceanFloorBumpiness,
		MinOceanFloorBumpiness, MaxOceanFloorBumpiness)
	c.OceanFloorDetailAmplification = vmath.Clamp(p.OceanFloorDetailAmplification,
		MinOceanFloorDetailAmplification, MaxOceanFloorDetailAmplification)

	c.DestroyRadius = vmath.Clamp(p.DestroyRadius, MinDestroyRadius, MaxDestroyRadius)
	c.RepairRadius = vmath.Clamp(p.RepairRadius, MinRepairRadius, MaxRepairRadius)
	c.FloodRadius = vmath.Clamp(p.FloodRadius, MinFloodRadius, MaxFloodRadius)
	c.FloodQuantity = vmath.Clamp(p.FloodQuantity, MinFloodQuantity, MaxFloodQuantity)
	c.BombBlastRadius = vmath.Clamp(p.BombBlastRadius, MinBombBlastRadius, MaxBombBlastRadius)
	c.BombBlastForceAdjustment = vmath.Clamp(p.BombBlastForceAdjustment,
		MinBombBlastForceAdjustment, MaxBombBlastForceAdjustment)

	return c
}

// EffectiveSpringStrengthAdjustment folds the ultra-violent amplifier into
// the strength adjustment.
func (p Parameters) EffectiveSpringStrengthAdjustment() float64 {
	if p.UltraViolentMode {
		return p.SpringStrengthAdjustment / UltraViolentStrengthDivisor
	}
	return p.SpringStrengthAdjustment
}

// NumMechanicalDynamicsIterations is the substep count for this frame.
func (p Parameters) NumMechanicalDynamicsIterations() int {
	n := int(float64(NumMechanicalDynamicsIterationsBase) * p.NumMechanicalDynamicsIterationsAdjustment)
	if n < 1 {
		n = 1
	}
	return n
}

// MechanicalSimulationStepTimeDuration is the dt of one substep.
func (p Parameters) MechanicalSimulationStepTimeDuration() float64 {
	return SimulationStepTimeDuration / float64(p.NumMechanicalDynamicsIterations())
}
