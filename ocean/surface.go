package ocean

import (
	"math"
	"math/rand"

	"github.com/corvel/shipfall/parameter"
)

// Basal wave baseline, before the user adjustments.
const (
	basalWaveBaseHeight    = 1.75 // m, peak-to-trough /2
	basalWaveBaseLength    = 90.0 // m
	basalWaveBaseSpeed     = 12.5 // m/s
	basalWaveHarmonicRatio = 0.37 // amplitude of the half-length harmonic
)

// Transient wave event shapes.
const (
	tsunamiDuration    = 45.0   // s
	tsunamiAmplitude   = 30.0   // m
	tsunamiHalfWidth   = 600.0  // m
	rogueWaveDuration  = 12.0   // s
	rogueWaveAmplitude = 10.0   // m
	rogueWaveHalfWidth = 80.0   // m

	// Interactive wave-maker displacement
	interactiveWaveDuration  = 4.0
	interactiveWaveHalfWidth = 60.0
)

// waveEvent is a time-bounded addition to the surface height field with a
// decaying amplitude envelope.
type waveEvent struct {
	startTime float64
	duration  float64
	amplitude float64
	centerX   float64
	halfWidth float64
}

// envelope rises quickly, peaks, and decays to zero at the end of the
// event's life.
func (e *waveEvent) envelope(now float64) float64 {
	t := (now - e.startTime) / e.duration
	if t < 0.0 || t > 1.0 {
		return 0.0
	}
	// sin(pi*t) rises and falls smoothly; squared for a sharper peak
	s := math.Sin(math.Pi * t)
	return s * s
}

func (e *waveEvent) expired(now float64) bool {
	return now > e.startTime+e.duration
}

// contributionAt is the event's height at world x, with a cosine spatial
// profile inside [centerX-halfWidth, centerX+halfWidth], wrapped on the
// field period.
func (e *waveEvent) contributionAt(x, now float64) float64 {
	dx := math.Mod(x-e.centerX, Period)
	if dx > Period/2 {
		dx -= Period
	} else if dx < -Period/2 {
		dx += Period
	}
	if math.Abs(dx) >= e.halfWidth {
		return 0.0
	}
	profile := 0.5 * (1.0 + math.Cos(math.Pi*dx/e.halfWidth))
	return e.amplitude * e.envelope(now) * profile
}

// Surface is the time-varying ocean surface height field.
type Surface struct {
	buffer sampleBuffer

	rng *rand.Rand

	events []*waveEvent

	// Next automatic event times, in simulation seconds; negative means not
	// scheduled (rate 0).
	nextTsunamiAt   float64
	nextRogueWaveAt float64

	// Rates we scheduled against; changing a rate reschedules.
	currentTsunamiRate   float64
	currentRogueWaveRate float64
}

// NewSurface creates a surface using the given seed for transient wave
// generation. The same seed reproduces the same event schedule.
func NewSurface(seed int64) *Surface {
	return &Surface{
		rng:             rand.New(rand.NewSource(seed)),
		nextTsunamiAt:   -1.0,
		nextRogueWaveAt: -1.0,
	}
}

// Update advances the basal phase, retires and spawns transient events, and
// regenerates the samples. HeightAt is read-only until the next Update.
func (s *Surface) Update(currentSimulationTime float64, params parameter.Parameters) {
	s.updateEventSchedule(currentSimulationTime, params)

	// Retire expired events
	live := s.events[:0]
	for _, e := range s.events {
		if !e.expired(currentSimulationTime) {
			live = append(live, e)
		}
	}
	s.events = live

	// Basal wave: primary component plus a half-length harmonic
	waveHeight := basalWaveBaseHeight * params.BasalWaveHeightAdjustment
	waveNumber := 2.0 * math.Pi / (basalWaveBaseLength * params.BasalWaveLengthAdjustment)
	phaseSpeed := basalWaveBaseSpeed * params.BasalWaveSpeedAdjustment
	phase := phaseSpeed * waveNumber * currentSimulationTime

	var values [SamplesCount]float64
	for i := 0; i < SamplesCount; i++ {
		x := Dx * float64(i)

		h := waveHeight * math.Sin(x*waveNumber-phase)
		h += waveHeight * basalWaveHarmonicRatio * math.Sin(x*waveNumber*2.0-phase*1.31)

		for _, e := range s.events {
			h += e.contributionAt(x, currentSimulationTime)
		}

		values[i] = h
	}

	s.buffer.set(&values)
}

// HeightAt returns the surface height at x. Callable every frame from many
// points without recomputation.
func (s *Surface) HeightAt(x float64) float64 {
	return s.buffer.heightAt(x)
}

// TriggerTsunami starts a tsunami event now, centred at x.
func (s *Surface) TriggerTsunami(currentSimulationTime, x float64) {
	s.events = append(s.events, &waveEvent{
		startTime: currentSimulationTime,
		duration:  tsunamiDuration,
		amplitude: tsunamiAmplitude,
		centerX:   x,
		halfWidth: tsunamiHalfWidth,
	})
}

// TriggerRogueWave starts a rogue wave event now, centred at x.
func (s *Surface) TriggerRogueWave(currentSimulationTime, x float64) {
	s.events = append(s.events, &waveEvent{
		startTime: currentSimulationTime,
		duration:  rogueWaveDuration,
		amplitude: rogueWaveAmplitude,
		centerX:   x,
		halfWidth: rogueWaveHalfWidth,
	})
}

// AdjustTo is the interactive wave maker: a short transient displacement at
// x reaching toward height y.
func (s *Surface) AdjustTo(currentSimulationTime, x, y float64) {
	s.events = append(s.events, &waveEvent{
		startTime: currentSimulationTime,
		duration:  interactiveWaveDuration,
		amplitude: y - s.HeightAt(x),
		centerX:   x,
		halfWidth: interactiveWaveHalfWidth,
	})
}

// EventCount reports the live transient events; for diagnostics and tests.
func (s *Surface) EventCount() int {
	return len(s.events)
}

func (s *Surface) updateEventSchedule(now float64, params parameter.Parameters) {
	// Reschedule when a rate knob changes; rate is expected minutes between
	// events, zero disables.
	if params.TsunamiRate != s.currentTsunamiRate {
		s.currentTsunamiRate = params.TsunamiRate
		s.nextTsunamiAt = s.schedule(now, params.TsunamiRate)
	}
	if params.RogueWaveRate != s.currentRogueWaveRate {
		s.currentRogueWaveRate = params.RogueWaveRate
		s.nextRogueWaveAt = s.schedule(now, params.RogueWaveRate)
	}

	if s.nextTsunamiAt >= 0.0 && now >= s.nextTsunamiAt {
		s.TriggerTsunami(now, s.rng.Float64()*Period)
		s.nextTsunamiAt = s.schedule(now, s.currentTsunamiRate)
	}
	if s.nextRogueWaveAt >= 0.0 && now >= s.nextRogueWaveAt {
		s.TriggerRogueWave(now, s.rng.Float64()*Period)
		s.nextRogueWaveAt = s.schedule(now, s.currentRogueWaveRate)
	}
}

// schedule draws the next event time for a rate in expected minutes between
// events; returns negative when the rate disables generation.
func (s *Surface) schedule(now, rate float64) float64 {
	if rate <= 0.0 {
		return -1.0
	}
	// Exponential inter-arrival around the expected interval
	interval := rate * 60.0 * s.rng.ExpFloat64()
	return now + interval
}
