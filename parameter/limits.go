package parameter

// Bounds for every adjustable knob. Out-of-range values coming from the UI or
// a config file are clamped, never trusted.

// Mechanics
const (
	MinNumMechanicalDynamicsIterationsAdjustment = 0.5
	MaxNumMechanicalDynamicsIterationsAdjustment = 20.0

	MinSpringStiffnessAdjustment = 0.001
	MaxSpringStiffnessAdjustment = 2.4

	MinSpringDampingAdjustment = 0.001
	MaxSpringDampingAdjustment = 4.0

	MinSpringStrengthAdjustment = 0.01
	MaxSpringStrengthAdjustment = 10.0

	MinBuoyancyAdjustment = 0.0
	MaxBuoyancyAdjustment = 4.0

	MinWaterDragAdjustment = 0.0
	MaxWaterDragAdjustment = 1000.0
)

// Water dynamics
const (
	MinWaterIntakeAdjustment = 0.1
	MaxWaterIntakeAdjustment = 10.0

	MinWaterDiffusionSpeedAdjustment = 0.001
	MaxWaterDiffusionSpeedAdjustment = 1.0

	MinWaterCrazyness = 0.0
	MaxWaterCrazyness = 2.0
)

// Thermal and decay
const (
	MinHeatDiffusionAdjustment = 0.001
	MaxHeatDiffusionAdjustment = 10.0

	MinRotAcceler8r = 0.0
	MaxRotAcceler8r = 1000.0
)

// Wind
const (
	MinWindSpeedBase = -100.0
	MaxWindSpeedBase = 100.0

	// Gust modulation factor bounds; the smoothed gust factor always stays
	// inside [WindGustMinFactor, WindGustMaxFactor].
	WindGustMinFactor = 1.0
	WindGustMaxFactor = 2.5
)

// Waves
const (
	MinBasalWaveHeightAdjustment = 0.0
	MaxBasalWaveHeightAdjustment = 100.0

	MinBasalWaveLengthAdjustment = 0.3
	MaxBasalWaveLengthAdjustment = 20.0

	MinBasalWaveSpeedAdjustment = 0.75
	MaxBasalWaveSpeedAdjustment = 20.0

	// Expected minutes between events; zero disables automatic generation.
	MinTsunamiRate = 0.0
	MaxTsunamiRate = 240.0

	MinRogueWaveRate = 0.0
	MaxRogueWaveRate = 240.0
)

// Ocean floor
const (
	MinSeaDepth = 20.0
	MaxSeaDepth = 10000.0

	MinOceanFloorBumpiness = 0.0
	MaxOceanFloorBumpiness = 6.0

	MinOceanFloorDetailAmplification = 0.0
	MaxOceanFloorDetailAmplification = 200.0
)

// Interactive tools
const (
	MinDestroyRadius = 0.1
	MaxDestroyRadius = 10.0

	MinRepairRadius = 0.1
	MaxRepairRadius = 10.0

	MinFloodRadius = 0.1
	MaxFloodRadius = 10.0

	MinFloodQuantity = 0.1
	MaxFloodQuantity = 10000.0

	MinBombBlastRadius = 0.1
	MaxBombBlastRadius = 20.0

	MinBombBlastForceAdjustment = 0.1
	MaxBombBlastForceAdjustment = 20.0
)
