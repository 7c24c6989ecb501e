// Package event implements the game event dispatcher sitting between the
// simulation core and everything else (UI, audio, achievements).
//
// Structural events (stress, break, destroy) are not forwarded synchronously:
// they aggregate per frame, keyed by (material, underwater), with their sizes
// summed, and are emitted once per distinct key on Flush. Lifecycle events
// fire immediately. Flush leaves the dispatcher empty; a frame with no events
// produces no handler calls.
package event

import (
	"context"

	"go.opentelemetry.io/otel/metric"

	"github.com/corvel/shipfall/core"
	"github.com/corvel/shipfall/material"
)

// StructuralHandler receives the aggregated structural events once per
// frame.
type StructuralHandler interface {
	OnStress(m *material.Structural, isUnderwater bool, size int)
	OnBreak(m *material.Structural, isUnderwater bool, size int)
	OnDestroy(m *material.Structural, isUnderwater bool, size int)
}

// LifecycleHandler receives ship lifecycle events immediately.
type LifecycleHandler interface {
	OnShipLoaded(id core.ShipID, name string, pointCount int)
	OnSinkingBegin(id core.ShipID)
}

type aggregationKey struct {
	material     *material.Structural
	isUnderwater bool
}

// Dispatcher aggregates structural events per frame and forwards lifecycle
// events immediately. One registration slot per handler capability. Not
// safe for concurrent use; only the simulation goroutine touches it.
type Dispatcher struct {
	structuralHandler StructuralHandler
	lifecycleHandler  LifecycleHandler

	// Per-frame aggregation state. Keys slices keep first-occurrence order;
	// maps hold the running sums.
	stressKeys  []aggregationKey
	stressSizes map[aggregationKey]int

	breakKeys  []aggregationKey
	breakSizes map[aggregationKey]int

	destroyKeys  []aggregationKey
	destroySizes map[aggregationKey]int

	// Ships already reported sinking this frame.
	sinkingShips map[core.ShipID]struct{}

	aggregated metric.Int64Counter
	flushed    metric.Int64Counter
}

// NewDispatcher creates an empty dispatcher. Metrics use the global OTel
// meter and are no-ops unless one is configured.
func NewDispatcher() *Dispatcher {
	m := meter()
	aggregated, _ := m.Int64Counter(
		"events.structural.aggregated",
		metric.WithDescription("Structural events received for aggregation"),
	)
	flushed, _ := m.Int64Counter(
		"events.structural.flushed",
		metric.WithDescription("Distinct structural events emitted at flush"),
	)

	return &Dispatcher{
		stressSizes:  make(map[aggregationKey]int),
		breakSizes:   make(map[aggregationKey]int),
		destroySizes: make(map[aggregationKey]int),
		sinkingShips: make(map[core.ShipID]struct{}),
		aggregated:   aggregated,
		flushed:      flushed,
	}
}

// RegisterStructuralHandler sets the structural handler slot.
func (d *Dispatcher) RegisterStructuralHandler(h StructuralHandler) {
	d.structuralHandler = h
}

// RegisterLifecycleHandler sets the lifecycle handler slot.
func (d *Dispatcher) RegisterLifecycleHandler(h LifecycleHandler) {
	d.lifecycleHandler = h
}

// OnStress records a stressed-spring event for aggregation.
func (d *Dispatcher) OnStress(m *material.Structural, isUnderwater bool, size int) {
	d.accumulate(&d.stressKeys, d.stressSizes, m, isUnderwater, size)
}

// OnBreak records a spring-break event for aggregation.
func (d *Dispatcher) OnBreak(m *material.Structural, isUnderwater bool, size int) {
	d.accumulate(&d.breakKeys, d.breakSizes, m, isUnderwater, size)
}

// OnDestroy records a destroy-tool hit for aggregation.
func (d *Dispatcher) OnDestroy(m *material.Structural, isUnderwater bool, size int) {
	d.accumulate(&d.destroyKeys, d.destroySizes, m, isUnderwater, size)
}

func (d *Dispatcher) accumulate(
	keys *[]aggregationKey,
	sizes map[aggregationKey]int,
	m *material.Structural,
	isUnderwater bool,
	size int,
) {
	key := aggregationKey{material: m, isUnderwater: isUnderwater}
	if _, seen := sizes[key]; !seen {
		*keys = append(*keys, key)
	}
	sizes[key] += size
	d.aggregated.Add(context.Background(), 1)
}

// OnShipLoaded fires immediately.
func (d *Dispatcher) OnShipLoaded(id core.ShipID, name string, pointCount int) {
	if d.lifecycleHandler != nil {
		d.lifecycleHandler.OnShipLoaded(id, name, pointCount)
	}
}

// OnSinkingBegin fires immediately, at most once per ship per frame.
func (d *Dispatcher) OnSinkingBegin(id core.ShipID) {
	if _, seen := d.sinkingShips[id]; seen {
		return
	}
	d.sinkingShips[id] = struct{}{}

	if d.lifecycleHandler != nil {
		d.lifecycleHandler.OnSinkingBegin(id)
	}
}

// Flush emits the aggregated structural events, one call per distinct key in
// first-occurrence order, then drains all per-frame state. Called once per
// frame after all ship updates.
func (d *Dispatcher) Flush() {
	if d.structuralHandler != nil {
		for _, key := range d.stressKeys {
			d.structuralHandler.OnStress(key.material, key.isUnderwater, d.stressSizes[key])
			d.flushed.Add(context.Background(), 1)
		}
		for _, key := range d.breakKeys {
			d.structuralHandler.OnBreak(key.material, key.isUnderwater, d.breakSizes[key])
			d.flushed.Add(context.Background(), 1)
		}
		for _, key := range d.destroyKeys {
			d.structuralHandler.OnDestroy(key.material, key.isUnderwater, d.destroySizes[key])
			d.flushed.Add(context.Background(), 1)
		}
	}

	d.stressKeys = d.stressKeys[:0]
	d.breakKeys = d.breakKeys[:0]
	d.destroyKeys = d.destroyKeys[:0]
	clear(d.stressSizes)
	clear(d.breakSizes)
	clear(d.destroySizes)
	clear(d.sinkingShips)
}
