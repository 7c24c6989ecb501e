package wind

import (
	"testing"

	"github.com/corvel/shipfall/parameter"
)

func TestGustFactorStaysBounded(t *testing.T) {
	w := New(1)
	params := parameter.Defaults()
	params.DoGustModulation = true

	for step := 0; step < 50000; step++ {
		w.Update(float64(step)*parameter.SimulationStepTimeDuration, params)

		f := w.CurrentGustFactor()
		if f < parameter.WindGustMinFactor || f > parameter.WindGustMaxFactor {
			t.Fatalf("gust factor %v outside [%v, %v] at step %d",
				f, parameter.WindGustMinFactor, parameter.WindGustMaxFactor, step)
		}
	}
}

func TestGustFactorVaries(t *testing.T) {
	w := New(1)
	params := parameter.Defaults()
	params.DoGustModulation = true

	min, max := 1000.0, -1000.0
	for step := 0; step < 50000; step++ {
		w.Update(float64(step)*parameter.SimulationStepTimeDuration, params)
		f := w.CurrentGustFactor()
		if f < min {
			min = f
		}
		if f > max {
			max = f
		}
	}

	if max-min < 0.1 {
		t.Errorf("gust factor barely moved over 1000s: min=%v max=%v", min, max)
	}
}

func TestGustsDisabled(t *testing.T) {
	w := New(1)
	params := parameter.Defaults()
	params.DoGustModulation = false

	for step := 0; step < 100; step++ {
		w.Update(float64(step)*parameter.SimulationStepTimeDuration, params)

		want := params.WindSpeedBase * parameter.WindGustMinFactor
		if got := w.CurrentSpeed().X; got != want {
			t.Fatalf("speed with gusts off = %v, want %v", got, want)
		}
		if got := w.CurrentSpeed().Y; got != 0.0 {
			t.Fatalf("wind has vertical component: %v", got)
		}
	}
}

func TestNegativeBaseSpeedReverses(t *testing.T) {
	w := New(1)
	params := parameter.Defaults()
	params.DoGustModulation = false
	params.WindSpeedBase = -20.0

	w.Update(0.0, params)
	if got := w.CurrentSpeed().X; got != -20.0 {
		t.Errorf("speed = %v, want -20", got)
	}
}

func TestReportedMagnitudeIsSmoothed(t *testing.T) {
	w := New(1)
	params := parameter.Defaults()
	params.DoGustModulation = false
	params.WindSpeedBase = 10.0

	w.Update(0.0, params)

	// One frame at a new base speed barely moves the reported average while
	// the physical speed follows immediately.
	params.WindSpeedBase = 100.0
	w.Update(parameter.SimulationStepTimeDuration, params)

	if got := w.CurrentSpeed().X; got != 100.0 {
		t.Errorf("physical speed = %v, want 100", got)
	}
	if got := w.SpeedMagnitudeRunningAverage(); got >= 100.0 {
		t.Errorf("reported magnitude %v jumped with the physical speed", got)
	}
}

func TestSeededWindIsDeterministic(t *testing.T) {
	params := parameter.Defaults()
	params.DoGustModulation = true

	a := New(7)
	b := New(7)
	for step := 0; step < 10000; step++ {
		now := float64(step) * parameter.SimulationStepTimeDuration
		a.Update(now, params)
		b.Update(now, params)
		if a.CurrentGustFactor() != b.CurrentGustFactor() {
			t.Fatalf("same seed diverged at step %d", step)
		}
	}
}
