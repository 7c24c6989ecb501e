package physics

import "github.com/corvel/shipfall/core"

// Triangle is a filled face over three points. It carries no physical state;
// it stops rendering once any of its covering springs breaks.
type Triangle struct {
	PointA core.ElementIndex
	PointB core.ElementIndex
	PointC core.ElementIndex

	Visible bool
}
