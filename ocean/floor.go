package ocean

import (
	"math"

	"github.com/corvel/shipfall/parameter"
)

// Frequencies of the floor wave components.
const (
	floorFrequency1 = 0.005
	floorFrequency2 = 0.015
	floorFrequency3 = 0.001
)

// Amplitudes paired with the frequency components above.
const (
	floorAmplitude1 = 7.5
	floorAmplitude2 = 3.0
	floorAmplitude3 = 30.0
)

// Floor is the procedural terrain height field. Heights are absolute world
// y (negative, below the resting surface).
type Floor struct {
	buffer sampleBuffer

	// User bump map, added on top of the sine components and scaled by the
	// detail amplification.
	bumpMap [SamplesCount]float64

	// Parameters we are current for; Update regenerates only on change.
	currentSeaDepth            float64
	currentBumpiness           float64
	currentDetailAmplification float64
	dirty                      bool
}

// NewFloor creates a floor that will regenerate on the first Update.
func NewFloor() *Floor {
	return &Floor{
		currentSeaDepth:            math.NaN(),
		currentBumpiness:           math.NaN(),
		currentDetailAmplification: math.NaN(),
	}
}

// Update regenerates the samples when the driving parameters changed since
// the previous call. Between Updates the field is read-only.
func (f *Floor) Update(params parameter.Parameters) {
	if !f.dirty &&
		params.SeaDepth == f.currentSeaDepth &&
		params.OceanFloorBumpiness == f.currentBumpiness &&
		params.OceanFloorDetailAmplification == f.currentDetailAmplification {
		return
	}

	f.currentSeaDepth = params.SeaDepth
	f.currentBumpiness = params.OceanFloorBumpiness
	f.currentDetailAmplification = params.OceanFloorDetailAmplification
	f.dirty = false

	var values [SamplesCount]float64
	for i := 0; i < SamplesCount; i++ {
		x := Dx * float64(i)

		c1 := math.Sin(x*floorFrequency1) * floorAmplitude1
		c2 := math.Sin(x*floorFrequency2) * floorAmplitude2 * params.OceanFloorBumpiness
		c3 := math.Sin(x*floorFrequency3) * floorAmplitude3

		values[i] = c1 + c2 + c3 +
			f.bumpMap[i]*params.OceanFloorDetailAmplification -
			params.SeaDepth
	}

	f.buffer.set(&values)
}

// HeightAt returns the floor height at x, periodic with Period.
func (f *Floor) HeightAt(x float64) float64 {
	return f.buffer.heightAt(x)
}

// AdjustTo raises or lowers the bump map along the segment (x1,y1)-(x2,y2)
// and marks the field for regeneration. Returns whether any sample changed.
// The terrain-editing tool drives this.
func (f *Floor) AdjustTo(x1, targetY1, x2, targetY2 float64) bool {
	if x2 < x1 {
		x1, x2 = x2, x1
		targetY1, targetY2 = targetY2, targetY1
	}

	i1 := sampleIndexAt(x1)
	i2 := sampleIndexAt(x2)

	changed := false
	span := i2 - i1
	for i := i1; i <= i2; i++ {
		var t float64
		if span > 0 {
			t = float64(i-i1) / float64(span)
		}
		targetHeight := targetY1 + (targetY2-targetY1)*t

		// The bump map holds the detail-amplified residual over the sines;
		// store the target relative to the current non-bump contribution.
		idx := ((i % SamplesCount) + SamplesCount) % SamplesCount
		x := Dx * float64(idx)
		base := math.Sin(x*floorFrequency1)*floorAmplitude1 +
			math.Sin(x*floorFrequency2)*floorAmplitude2*f.currentBumpiness +
			math.Sin(x*floorFrequency3)*floorAmplitude3 -
			f.currentSeaDepth

		amplification := f.currentDetailAmplification
		if amplification == 0 || math.IsNaN(amplification) {
			continue
		}

		newBump := (targetHeight - base) / amplification
		if newBump != f.bumpMap[idx] {
			f.bumpMap[idx] = newBump
			changed = true
		}
	}

	if changed {
		f.dirty = true
	}
	return changed
}

// sampleIndexAt is the nearest sample index left of x, in absolute
// (unwrapped) index space.
func sampleIndexAt(x float64) int {
	return int(math.Floor(x / Dx))
}
