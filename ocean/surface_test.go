package ocean

import (
	"math"
	"testing"

	"github.com/corvel/shipfall/parameter"
)

func TestSurfacePeriodicity(t *testing.T) {
	s := NewSurface(1)
	s.Update(10.0, parameter.Defaults())

	for _, x := range []float64{0, 3.7, 250, -90, Period * 0.75} {
		a := s.HeightAt(x)
		b := s.HeightAt(x + Period)
		if math.Abs(a-b) > 1e-6 {
			t.Errorf("HeightAt(%v)=%v but HeightAt(x+Period)=%v", x, a, b)
		}
	}
}

func TestSurfaceReadOnlyBetweenUpdates(t *testing.T) {
	s := NewSurface(1)
	s.Update(5.0, parameter.Defaults())

	// Repeated queries yield identical values with no Update in between
	first := s.HeightAt(77.0)
	for i := 0; i < 10; i++ {
		if got := s.HeightAt(77.0); got != first {
			t.Fatalf("HeightAt changed between Updates: %v vs %v", got, first)
		}
	}
}

func TestSurfaceBasalWaveMoves(t *testing.T) {
	params := parameter.Defaults()
	params.TsunamiRate = 0
	params.RogueWaveRate = 0

	s := NewSurface(1)
	s.Update(0.0, params)
	h0 := s.HeightAt(100.0)

	s.Update(1.0, params)
	h1 := s.HeightAt(100.0)

	if h0 == h1 {
		t.Errorf("basal wave did not advance with time")
	}
}

func TestSurfaceWaveHeightAdjustment(t *testing.T) {
	params := parameter.Defaults()
	params.TsunamiRate = 0
	params.RogueWaveRate = 0

	params.BasalWaveHeightAdjustment = 0.0
	s := NewSurface(1)
	s.Update(3.0, params)

	// Zero wave height: flat surface
	for _, x := range []float64{0, 50, 1000} {
		if got := s.HeightAt(x); math.Abs(got) > 1e-9 {
			t.Errorf("flat surface expected at %v, got %v", x, got)
		}
	}
}

func TestTransientWaveEventLifecycle(t *testing.T) {
	params := parameter.Defaults()
	params.TsunamiRate = 0
	params.RogueWaveRate = 0
	params.BasalWaveHeightAdjustment = 0.0

	s := NewSurface(1)
	s.Update(0.0, params)

	s.TriggerRogueWave(0.0, 1000.0)
	if s.EventCount() != 1 {
		t.Fatalf("event count = %d, want 1", s.EventCount())
	}

	// Mid-life: visible bump at the centre, nothing far away
	s.Update(rogueWaveDuration/2, params)
	if got := s.HeightAt(1000.0); got < 1.0 {
		t.Errorf("rogue wave peak = %v, want noticeably positive", got)
	}
	if got := s.HeightAt(3000.0); math.Abs(got) > 1e-9 {
		t.Errorf("rogue wave leaked to distant x: %v", got)
	}

	// Past its duration the event is retired and the surface is flat again
	s.Update(rogueWaveDuration+1.0, params)
	if s.EventCount() != 0 {
		t.Errorf("expired event not retired, count=%d", s.EventCount())
	}
	if got := s.HeightAt(1000.0); math.Abs(got) > 1e-9 {
		t.Errorf("surface not flat after event retired: %v", got)
	}
}

func TestRateZeroDisablesAutomaticEvents(t *testing.T) {
	params := parameter.Defaults()
	params.TsunamiRate = 0
	params.RogueWaveRate = 0

	s := NewSurface(42)
	for step := 0; step < 10000; step++ {
		s.Update(float64(step)*0.02, params)
	}

	if s.EventCount() != 0 {
		t.Errorf("rate 0 still generated events: %d", s.EventCount())
	}
}

func TestAdjustToRaisesSurface(t *testing.T) {
	params := parameter.Defaults()
	params.TsunamiRate = 0
	params.RogueWaveRate = 0
	params.BasalWaveHeightAdjustment = 0.0

	s := NewSurface(1)
	s.Update(0.0, params)

	s.AdjustTo(0.0, 200.0, 8.0)

	// Half-way through the displacement's life the surface is lifted
	s.Update(interactiveWaveDuration/2, params)
	if got := s.HeightAt(200.0); got < 1.0 {
		t.Errorf("AdjustTo had no effect: %v", got)
	}
}

func TestSeededSurfaceIsDeterministic(t *testing.T) {
	params := parameter.Defaults()
	params.RogueWaveRate = 0.01 // frequent, to exercise generation

	a := NewSurface(7)
	b := NewSurface(7)
	for step := 0; step < 5000; step++ {
		now := float64(step) * 0.02
		a.Update(now, params)
		b.Update(now, params)
	}

	for _, x := range []float64{0, 123, 4567} {
		if a.HeightAt(x) != b.HeightAt(x) {
			t.Fatalf("same seed diverged at x=%v", x)
		}
	}
}
