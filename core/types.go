// Package core holds the small identifier types shared across the
// simulation packages.
package core

import "fmt"

// ShipID identifies a ship within a World. Ids are assigned in AddShip
// order, starting at 0.
type ShipID uint32

// ElementIndex indexes a point, spring or triangle within its ship's flat
// arrays.
type ElementIndex uint32

// NoneElementIndex is the sentinel for "no element".
const NoneElementIndex = ElementIndex(^uint32(0))

// ElementID addresses one point across ships.
type ElementID struct {
	Ship  ShipID
	Index ElementIndex
}

func (e ElementID) String() string {
	return fmt.Sprintf("%d:%d", e.Ship, e.Index)
}

// PlaneID is the depth/ordering index used to layer geometry for rendering
// and layered simulation effects. Higher planes draw on top.
type PlaneID uint32
