// Package ocean provides the procedural ocean floor and surface height
// fields. Both sample one period into a fixed array and answer point queries
// by wrap-around linear interpolation; the per-sample delta to the next
// sample is precomputed so a query reads one array slot.
package ocean

import "math"

const (
	// Period is the spatial period of both height fields, in metres.
	Period = 2000.0 * math.Pi

	// SamplesCount is the resolution of one period. Power of two.
	SamplesCount = 512

	// Dx is the x step between samples.
	Dx = Period / float64(SamplesCount)
)

// sample stores the value at a sample point and the delta to the next
// sample, so interpolation needs a single read.
type sample struct {
	value            float64
	valuePlusOneMinusValue float64
}

// sampleBuffer is one period of samples with wrap-around interpolation.
type sampleBuffer struct {
	samples [SamplesCount]sample
}

// set stores the raw values and recomputes the deltas, wrapping the last
// sample onto the first.
func (b *sampleBuffer) set(values *[SamplesCount]float64) {
	for i := 0; i < SamplesCount; i++ {
		b.samples[i].value = values[i]
	}
	for i := 0; i < SamplesCount-1; i++ {
		b.samples[i].valuePlusOneMinusValue = b.samples[i+1].value - b.samples[i].value
	}
	b.samples[SamplesCount-1].valuePlusOneMinusValue = b.samples[0].value - b.samples[SamplesCount-1].value
}

// heightAt interpolates the field at x. Negative indices wrap with the
// (SamplesCount-1) + (i % SamplesCount) rule, which together with the
// truncating integer conversion keeps the offset into the sample in [0,1)
// and leaves no seam at x=0.
func (b *sampleBuffer) heightAt(x float64) float64 {
	// Fractional absolute index in the (infinite) sample array
	absoluteSampleIndexF := x / Dx

	// Integral part, truncated toward zero
	absoluteSampleIndexI := int(absoluteSampleIndexF)

	var sampleIndexI int
	var sampleIndexDx float64
	if absoluteSampleIndexI >= 0 {
		sampleIndexI = absoluteSampleIndexI % SamplesCount
		sampleIndexDx = absoluteSampleIndexF - float64(absoluteSampleIndexI)
	} else {
		sampleIndexI = (SamplesCount - 1) + (absoluteSampleIndexI % SamplesCount)
		sampleIndexDx = 1.0 + absoluteSampleIndexF - float64(absoluteSampleIndexI)
	}

	s := &b.samples[sampleIndexI]
	return s.value + s.valuePlusOneMinusValue*sampleIndexDx
}
