// Package layout places elements on a centre-out grid, used for arranging
// switch and gauge panels. Columns are numbered symmetrically around zero,
// rows from zero upward. Decorated elements carry a fixed cell; undecorated
// elements fill the remaining cells top row first, left to right.
package layout

import "fmt"

// Coordinates is a fixed grid cell: Col may be negative, Row starts at 0.
type Coordinates struct {
	Col int
	Row int
}

// Element is one element to lay out. Coordinates is nil for undecorated
// elements.
type Element[T any] struct {
	Value       T
	Coordinates *Coordinates
}

// Layout computes the grid and walks it row-major, invoking onBegin once
// with the final width and height and then onLayout for every cell, with a
// nil element for empty cells. The grid is always wide enough to hold every
// decorated cell; it then grows two columns at a time up to maxWidth, adds a
// second row, and only then grows wider than maxWidth.
func Layout[T any](elements []Element[T], maxWidth int, onBegin func(width, height int), onLayout func(element *T, col, row int)) error {
	if len(elements) == 0 {
		onBegin(0, 0)
		return nil
	}

	width := 1
	height := 1
	decorated := make(map[Coordinates]*T)
	var undecorated []*T
	for i := range elements {
		e := &elements[i]
		if e.Coordinates == nil {
			undecorated = append(undecorated, &e.Value)
			continue
		}
		c := *e.Coordinates
		if c.Row < 0 {
			return fmt.Errorf("layout cell (%d,%d) has a negative row", c.Col, c.Row)
		}
		if _, taken := decorated[c]; taken {
			return fmt.Errorf("layout cell (%d,%d) is assigned twice", c.Col, c.Row)
		}
		decorated[c] = &e.Value

		if w := 2*abs(c.Col) + 1; w > width {
			width = w
		}
		if c.Row+1 > height {
			height = c.Row + 1
		}
	}

	for width*height-len(decorated) < len(undecorated) {
		switch {
		case width < maxWidth:
			width += 2
		case height < 2:
			height++
		default:
			width += 2
		}
	}

	onBegin(width, height)

	colStart := -(width - 1) / 2
	next := 0
	for row := 0; row < height; row++ {
		for col := colStart; col < colStart+width; col++ {
			if value, taken := decorated[Coordinates{Col: col, Row: row}]; taken {
				onLayout(value, col, row)
				continue
			}
			if next < len(undecorated) {
				onLayout(undecorated[next], col, row)
				next++
				continue
			}
			onLayout(nil, col, row)
		}
	}

	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
