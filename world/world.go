// Package world owns the whole simulated scene: the environment singletons
// (ocean floor and surface, wind, stars, clouds), the ships, the event
// dispatcher and the single authoritative simulation clock. Everything the
// player does goes through a World method; rendering reads from it between
// updates.
package world

import (
	"github.com/rs/zerolog"

	"github.com/corvel/shipfall/core"
	"github.com/corvel/shipfall/event"
	"github.com/corvel/shipfall/material"
	"github.com/corvel/shipfall/ocean"
	"github.com/corvel/shipfall/parameter"
	"github.com/corvel/shipfall/physics"
	"github.com/corvel/shipfall/shipdef"
	"github.com/corvel/shipfall/vmath"
	"github.com/corvel/shipfall/wind"
)

const (
	starCount  = 256
	cloudCount = 12
)

// World is the top-level simulation container. Single-threaded: one
// goroutine calls Update, then reads state for rendering, in that order.
type World struct {
	currentSimulationTime float64

	stars        *ocean.Stars
	wind         *wind.Wind
	clouds       *ocean.Clouds
	oceanSurface *ocean.Surface
	oceanFloor   *ocean.Floor

	ships []*physics.Ship

	// Clamped copy of the last Update's parameters, consulted by the tools
	// that run between frames.
	params parameter.Parameters

	events *event.Dispatcher

	log zerolog.Logger
}

// New creates a world. The seed drives every stochastic element (waves,
// gusts, sky); the same seed replays the same environment.
func New(seed int64, events *event.Dispatcher) *World {
	return &World{
		stars:        ocean.NewStars(seed, starCount),
		wind:         wind.New(seed + 1),
		clouds:       ocean.NewClouds(seed+2, cloudCount),
		oceanSurface: ocean.NewSurface(seed + 3),
		oceanFloor:   ocean.NewFloor(),
		params:       parameter.Defaults(),
		events:       events,
		log:          zerolog.Nop(),
	}
}

// WithLogger attaches a logger; the default is silent.
func (w *World) WithLogger(log zerolog.Logger) *World {
	w.log = log
	return w
}

// AddShip builds a ship from its definition and adds it to the scene. Ship
// ids are assigned in add order.
func (w *World) AddShip(def *shipdef.Definition, db *material.Database) (core.ShipID, error) {
	id := core.ShipID(len(w.ships))

	ship, err := physics.NewShip(id, def, db, int64(id)+100)
	if err != nil {
		return 0, err
	}
	w.ships = append(w.ships, ship)

	w.log.Info().
		Uint32("ship", uint32(id)).
		Str("name", ship.Name).
		Int("points", len(ship.Points)).
		Int("springs", len(ship.Springs)).
		Msg("ship added")

	w.events.OnShipLoaded(id, ship.Name, len(ship.Points))
	return id, nil
}

// Ships returns the ships in id order.
func (w *World) Ships() []*physics.Ship {
	return w.ships
}

// CurrentSimulationTime is the authoritative simulation clock.
func (w *World) CurrentSimulationTime() float64 {
	return w.currentSimulationTime
}

// Stars returns the star field.
func (w *World) Stars() *ocean.Stars { return w.stars }

// Clouds returns the cloud layer.
func (w *World) Clouds() *ocean.Clouds { return w.clouds }

// Update advances the scene one frame: clock, then wind, clouds, stars,
// ocean surface, ocean floor, then every ship in id order, and finally one
// dispatcher flush. Parameters are clamped before the core sees them.
func (w *World) Update(params parameter.Parameters) {
	params = params.Clamped()
	w.params = params

	w.currentSimulationTime += parameter.SimulationStepTimeDuration

	w.wind.Update(w.currentSimulationTime, params)
	w.clouds.Update(parameter.SimulationStepTimeDuration, w.wind.CurrentSpeed())
	w.oceanSurface.Update(w.currentSimulationTime, params)
	w.oceanFloor.Update(params)

	for _, ship := range w.ships {
		ship.Update(w.currentSimulationTime, params, w, w.events)
	}

	w.events.Flush()
}

// Environment queries; World satisfies physics.Environment.

// OceanSurfaceHeightAt returns the water surface height at x.
func (w *World) OceanSurfaceHeightAt(x float64) float64 {
	return w.oceanSurface.HeightAt(x)
}

// OceanFloorHeightAt returns the seabed height at x.
func (w *World) OceanFloorHeightAt(x float64) float64 {
	return w.oceanFloor.HeightAt(x)
}

// IsUnderwater reports whether the position lies below the surface.
func (w *World) IsUnderwater(position vmath.Vec2) bool {
	return position.Y < w.oceanSurface.HeightAt(position.X)
}

// CurrentWindSpeed is the physical wind velocity.
func (w *World) CurrentWindSpeed() vmath.Vec2 {
	return w.wind.CurrentSpeed()
}

// WindSpeedMagnitudeRunningAverage is the smoothed wind magnitude for
// display.
func (w *World) WindSpeedMagnitudeRunningAverage() float64 {
	return w.wind.SpeedMagnitudeRunningAverage()
}
