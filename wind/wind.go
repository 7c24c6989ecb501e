// Package wind generates the scalar wind field. Wind blows horizontally; the
// base speed comes from the parameters and, when gust modulation is on, a
// smoothed random factor multiplies it. The factor eases toward a target that
// is re-rolled at gust cadence, so the wind swells and dies rather than
// jumping.
package wind

import (
	"math/rand"

	"github.com/corvel/shipfall/parameter"
	"github.com/corvel/shipfall/vmath"
)

const (
	// Seconds between target re-rolls.
	gustCadence = 5.0

	// Fraction of the remaining distance to the target covered per second.
	gustEasingRate = 0.8

	// Window of the reported-magnitude running average, in frames.
	reportedMagnitudeWindow = 32
)

// Wind produces the current wind speed vector and a separately smoothed
// reported magnitude. The reported value drives visuals only and must never
// feed back into force calculations.
type Wind struct {
	rng *rand.Rand

	currentGustFactor float64
	targetGustFactor  float64
	nextGustRollAt    float64

	currentSpeed vmath.Vec2

	reportedMagnitude *vmath.RunningAverage
}

// New creates a wind generator seeded for gust target selection.
func New(seed int64) *Wind {
	w := &Wind{
		rng:               rand.New(rand.NewSource(seed)),
		currentGustFactor: parameter.WindGustMinFactor,
		targetGustFactor:  parameter.WindGustMinFactor,
		reportedMagnitude: vmath.NewRunningAverage(reportedMagnitudeWindow),
	}
	return w
}

// Update advances the gust state machine and recomputes the speed vector.
func (w *Wind) Update(currentSimulationTime float64, params parameter.Parameters) {
	if params.DoGustModulation {
		if currentSimulationTime >= w.nextGustRollAt {
			w.targetGustFactor = parameter.WindGustMinFactor +
				w.rng.Float64()*(parameter.WindGustMaxFactor-parameter.WindGustMinFactor)
			w.nextGustRollAt = currentSimulationTime + gustCadence*(0.5+w.rng.Float64())
		}

		// Ease toward the target; the factor stays inside the gust bounds
		// because both endpoints do.
		alpha := gustEasingRate * parameter.SimulationStepTimeDuration
		w.currentGustFactor += (w.targetGustFactor - w.currentGustFactor) * alpha
		w.currentGustFactor = vmath.Clamp(w.currentGustFactor,
			parameter.WindGustMinFactor, parameter.WindGustMaxFactor)
	} else {
		w.currentGustFactor = parameter.WindGustMinFactor
		w.targetGustFactor = parameter.WindGustMinFactor
	}

	w.currentSpeed = vmath.Vec2{X: params.WindSpeedBase * w.currentGustFactor, Y: 0.0}

	w.reportedMagnitude.Update(w.currentSpeed.Length())
}

// CurrentSpeed is the physical wind velocity used in force calculations.
func (w *Wind) CurrentSpeed() vmath.Vec2 {
	return w.currentSpeed
}

// CurrentGustFactor reports the live gust multiplier.
func (w *Wind) CurrentGustFactor() float64 {
	return w.currentGustFactor
}

// SpeedMagnitudeRunningAverage is the smoothed magnitude for display use.
// Visuals read this; forces read CurrentSpeed.
func (w *Wind) SpeedMagnitudeRunningAverage() float64 {
	return w.reportedMagnitude.Average()
}
