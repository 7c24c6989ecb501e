package vmath

// RunningAverage is a fixed-window running mean over float64 samples.
// The render layer uses one to smooth the reported wind magnitude; it is
// deliberately separate from the physical wind value used in force math.
type RunningAverage struct {
	samples []float64
	next    int
	count   int
	sum     float64
}

// NewRunningAverage creates an average over a window of size samples.
func NewRunningAverage(size int) *RunningAverage {
	if size < 1 {
		size = 1
	}
	return &RunningAverage{samples: make([]float64, size)}
}

// Update pushes a sample and returns the new average.
func (r *RunningAverage) Update(sample float64) float64 {
	if r.count == len(r.samples) {
		r.sum -= r.samples[r.next]
	} else {
		r.count++
	}
	r.samples[r.next] = sample
	r.sum += sample
	r.next = (r.next + 1) % len(r.samples)
	return r.Average()
}

// Average returns the current mean, zero when no samples have been pushed.
func (r *RunningAverage) Average() float64 {
	if r.count == 0 {
		return 0.0
	}
	return r.sum / float64(r.count)
}

// Fill resets the window to the given value.
func (r *RunningAverage) Fill(value float64) {
	for i := range r.samples {
		r.samples[i] = value
	}
	r.count = len(r.samples)
	r.next = 0
	r.sum = value * float64(len(r.samples))
}
