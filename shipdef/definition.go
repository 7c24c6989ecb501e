// Package shipdef loads ship definitions: a colour-keyed structural layer
// image, optional electrical and ropes layers, and JSON metadata. The loader
// resolves every cell against the material database so the physics builder
// receives an already-validated structure.
package shipdef

import (
	"github.com/corvel/shipfall/material"
	"github.com/corvel/shipfall/vmath"
)

// Metadata is the ship's descriptive header.
type Metadata struct {
	ShipName string     `json:"shipName"`
	Author   string     `json:"author,omitempty"`
	Offset   vmath.Vec2 `json:"offset,omitempty"`
}

// Rope is one rope: two endpoints marked with the same colour in the ropes
// layer, to be filled in with rope-material points by the builder.
type Rope struct {
	Color  material.ColorKey
	AX, AY int
	BX, BY int
}

// Definition is a fully resolved ship definition. Cell (x, y) is indexed
// y*Width+x with row 0 at the bottom of the image.
type Definition struct {
	Metadata Metadata

	Width  int
	Height int

	// Structural material per cell, nil where the cell is empty.
	Structural []*material.Structural

	// Electrical material per cell, nil where absent. Same size as
	// Structural when an electrical layer exists, nil otherwise.
	Electrical []*material.Electrical

	Ropes []Rope
}

// StructuralAt returns the structural material at (x, y), nil outside the
// grid or on empty cells.
func (d *Definition) StructuralAt(x, y int) *material.Structural {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return nil
	}
	return d.Structural[y*d.Width+x]
}

// ElectricalAt returns the electrical material at (x, y), nil when no
// electrical layer is present.
func (d *Definition) ElectricalAt(x, y int) *material.Electrical {
	if d.Electrical == nil || x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return nil
	}
	return d.Electrical[y*d.Width+x]
}
