package physics

// Tuning constants of the mechanical step. These are not user knobs; the
// adjustable multipliers live in parameter.
const (
	// Spring force scale applied on top of material stiffness.
	springStiffnessBase = 1800.0

	// Velocity damping along the spring axis.
	springDampingBase = 5.5

	// Global velocity damping per substep, squeezing numerical energy out of
	// the integration.
	globalVelocityDamping = 0.9997

	// Linear water drag coefficient for submerged points.
	waterDragBase = 0.8

	// Wind force scale, multiplied by material wind receptivity.
	windForceBase = 0.15

	// Mass of one unit of absorbed water.
	waterMass = 1.0

	// Specific mass of displaced water per unit of buoyancy volume.
	waterBuoyantMass = 2.2

	// Submersion transition band, metres. A point is fully buoyant this far
	// below the surface, dry the same distance above.
	submersionBand = 1.0

	// Floor bounce restitution; most energy is lost in the impact.
	floorRestitution = 0.3

	// Springs enter the stressed state at this fraction of the break strain.
	stressStrainFraction = 0.5

	// Water level at which a point counts as wet and spawns bubble ephemera.
	wetPointThreshold = 0.5

	// Maximum water a point can hold, scaled by material retention.
	waterCapacityBase = 100.0

	// Water lost per second by points above the surface.
	evaporationRate = 0.05

	// Base rot rate per second for a persistently wet point.
	rotRateBase = 0.00008

	// Fraction of wet points at which the ship starts sinking.
	sinkingWetPointFraction = 0.25

	// Frames between electrical connectivity walks.
	electricalUpdatePeriod = 8
)
