package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvel/shipfall/event"
	"github.com/corvel/shipfall/material"
	"github.com/corvel/shipfall/parameter"
	"github.com/corvel/shipfall/physics"
	"github.com/corvel/shipfall/shipdef"
	"github.com/corvel/shipfall/vmath"
)

type stillWater struct{}

func (stillWater) OceanSurfaceHeightAt(float64) float64 { return 0.0 }
func (stillWater) OceanFloorHeightAt(float64) float64   { return -300.0 }
func (stillWater) CurrentWindSpeed() vmath.Vec2         { return vmath.Zero2 }

func buildTestShip(t *testing.T) *physics.Ship {
	t.Helper()

	m := material.NewTestStructural("Iron")
	m.ColorKey = material.ColorKey{R: 1}
	m.RenderColor = material.ColorKey{R: 0x80, G: 0x80, B: 0x80}
	db, err := material.NewDatabase([]*material.Structural{m}, nil)
	require.NoError(t, err)

	def := &shipdef.Definition{
		Metadata:   shipdef.Metadata{ShipName: "raft"},
		Width:      2,
		Height:     2,
		Structural: []*material.Structural{m, m, m, m},
	}

	ship, err := physics.NewShip(0, def, db, 1)
	require.NoError(t, err)
	return ship
}

func TestFirstUploadIsWholesale(t *testing.T) {
	ship := buildTestShip(t)
	ctx := &RecordingShipRenderContext{}

	UploadShip(ship, ctx)

	assert.Len(t, ctx.Positions, 4)
	assert.Len(t, ctx.LightWater, 4)
	assert.Len(t, ctx.Colors, 4)
	assert.Equal(t, 1, ctx.ElementUploads)
	assert.Len(t, ctx.LastElements.Springs, 6)
	assert.Len(t, ctx.LastElements.Triangles, 2)
	assert.Empty(t, ctx.LastElements.OrphanedPoints)
}

func TestNoTopologyReuploadWithoutChange(t *testing.T) {
	ship := buildTestShip(t)
	ctx := &RecordingShipRenderContext{}
	env := stillWater{}
	dispatcher := event.NewDispatcher()
	params := parameter.Defaults()

	UploadShip(ship, ctx)
	require.Equal(t, 1, ctx.ElementUploads)

	// A quiet frame moves points but leaves topology alone
	ship.Update(0.0, params, env, dispatcher)
	UploadShip(ship, ctx)

	assert.Equal(t, 2, ctx.PositionUploads)
	assert.Equal(t, 1, ctx.ElementUploads)
}

func TestBreakTriggersTopologyUpload(t *testing.T) {
	ship := buildTestShip(t)
	ctx := &RecordingShipRenderContext{}
	env := stillWater{}
	dispatcher := event.NewDispatcher()

	UploadShip(ship, ctx)
	intactSprings := len(ctx.LastElements.Springs)

	// Pin the mesh so the displacement is still there when stress is
	// evaluated, instead of being pulled back over the substeps
	for i := range ship.Points {
		ship.Points[i].Pinned = true
	}
	ship.Points[3].Position.X += 10.0
	ship.Update(0.0, parameter.Defaults(), env, dispatcher)
	UploadShip(ship, ctx)

	assert.Equal(t, 2, ctx.ElementUploads)
	assert.Less(t, len(ctx.LastElements.Springs), intactSprings)
}

func TestUploadClearsDirt(t *testing.T) {
	ship := buildTestShip(t)
	ctx := &RecordingShipRenderContext{}

	UploadShip(ship, ctx)

	dirt := ship.RenderDirt()
	assert.False(t, dirt.PointPositions)
	assert.False(t, dirt.PointAttributes)
	assert.False(t, dirt.Topology)
}

func TestNopContextSatisfiesInterface(t *testing.T) {
	var ctx ShipRenderContext = NopShipRenderContext{}
	ctx.UploadPointPositions(nil)
	ctx.UploadElements(Elements{})
}

func TestRecordingSparseRanges(t *testing.T) {
	ctx := &RecordingShipRenderContext{}

	ctx.UploadPointTemperatureRange(2, []float64{5.0, 6.0})
	require.Len(t, ctx.Temperatures, 4)
	assert.Equal(t, 5.0, ctx.Temperatures[2])
	assert.Equal(t, 6.0, ctx.Temperatures[3])

	ctx.UploadPointColorRange(1, []material.ColorKey{{R: 9}})
	require.Len(t, ctx.Colors, 2)
	assert.Equal(t, uint8(9), ctx.Colors[1].R)
}
