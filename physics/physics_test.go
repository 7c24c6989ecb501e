package physics

import (
	"github.com/corvel/shipfall/material"
	"github.com/corvel/shipfall/shipdef"
	"github.com/corvel/shipfall/vmath"
)

// flatEnvironment is a stub world: flat surface, flat floor, steady wind.
type flatEnvironment struct {
	surfaceY float64
	floorY   float64
	wind     vmath.Vec2
}

func (e *flatEnvironment) OceanSurfaceHeightAt(x float64) float64 { return e.surfaceY }
func (e *flatEnvironment) OceanFloorHeightAt(x float64) float64   { return e.floorY }
func (e *flatEnvironment) CurrentWindSpeed() vmath.Vec2           { return e.wind }

func calmEnvironment() *flatEnvironment {
	return &flatEnvironment{surfaceY: 0.0, floorY: -300.0}
}

// testMaterial is NewTestStructural with a distinct colour key so several
// can coexist in one database.
func testMaterial(name string, key uint8) *material.Structural {
	m := material.NewTestStructural(name)
	m.ColorKey = material.ColorKey{R: key}
	return m
}

func testDatabase(structural ...*material.Structural) *material.Database {
	rope := material.NewTestStructural("Rope")
	rope.ColorKey = material.ColorKey{R: 0xfe}
	rope.UniqueType = material.UniqueRope

	db, err := material.NewDatabase(append(structural, rope), nil)
	if err != nil {
		panic(err)
	}
	return db
}

// gridDefinition builds a definition from rows of cells; '#' is the given
// material, '.' empty. Row 0 of the input is the top, matching how a ship
// image reads.
func gridDefinition(m *material.Structural, rows ...string) *shipdef.Definition {
	height := len(rows)
	width := len(rows[0])

	def := &shipdef.Definition{
		Metadata:   shipdef.Metadata{ShipName: "test ship"},
		Width:      width,
		Height:     height,
		Structural: make([]*material.Structural, width*height),
	}
	for i, row := range rows {
		y := height - 1 - i
		for x := 0; x < width; x++ {
			if row[x] == '#' {
				def.Structural[y*width+x] = m
			}
		}
	}
	return def
}
