package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/corvel/shipfall/parameter"
	"github.com/corvel/shipfall/physics"
	"github.com/corvel/shipfall/vmath"
	"github.com/corvel/shipfall/world"
)

// Terminal cells are about twice as tall as wide
const (
	cellsPerUnitX = 2.0
	cellsPerUnitY = 1.0
	panStep       = 4.0
)

type viewer struct {
	screen tcell.Screen
	world  *world.World
	params parameter.Parameters
	log    zerolog.Logger

	cameraX float64
	cameraY float64
	paused  bool
}

func newViewer(screen tcell.Screen, w *world.World, params parameter.Parameters, log zerolog.Logger) *viewer {
	return &viewer{
		screen: screen,
		world:  w,
		params: params,
		log:    log,
	}
}

func (v *viewer) run() {
	ticker := time.NewTicker(time.Duration(parameter.SimulationStepTimeDuration * float64(time.Second)))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- v.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !v.handleInput(ev) {
				return
			}

		case <-ticker.C:
			if !v.paused {
				v.world.Update(v.params)
			}
			v.draw()
		}
	}
}

func (v *viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			v.cameraX -= panStep
		case tcell.KeyRight:
			v.cameraX += panStep
		case tcell.KeyUp:
			v.cameraY += panStep
		case tcell.KeyDown:
			v.cameraY -= panStep
		case tcell.KeyRune:
			return v.handleRune(ev.Rune())
		}

	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *viewer) handleRune(r rune) bool {
	center := vmath.Vec2{X: v.cameraX, Y: v.cameraY}
	switch r {
	case 'q':
		return false
	case ' ':
		v.paused = !v.paused
	case 't':
		v.world.TriggerTsunami(v.cameraX)
	case 'r':
		v.world.TriggerRogueWave(v.cameraX)
	case 'd':
		v.world.DestroyAt(center, v.params.DestroyRadius)
	case 'f':
		v.world.RepairAt(center, v.params.RepairRadius)
	case 'p':
		v.world.TogglePinAt(center, 2.0)
	case 'b':
		v.world.ToggleTimerBombAt(center, 2.0)
	case 'm':
		v.world.ToggleRCBombAt(center, 2.0)
	case 'x':
		v.world.DetonateRCBombs(v.params)
	case 'o':
		v.world.FloodAt(center, v.params.FloodRadius, v.params.FloodQuantity)
	}
	return true
}

// toScreen maps a world position to a screen cell, camera-centred.
func (v *viewer) toScreen(p vmath.Vec2, width, height int) (int, int) {
	sx := width/2 + int((p.X-v.cameraX)*cellsPerUnitX)
	sy := height/2 - int((p.Y-v.cameraY)*cellsPerUnitY)
	return sx, sy
}

func (v *viewer) draw() {
	v.screen.Clear()
	width, height := v.screen.Size()
	if width == 0 || height == 0 {
		return
	}

	waterStyle := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	floorStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)

	for sx := 0; sx < width; sx++ {
		worldX := v.cameraX + float64(sx-width/2)/cellsPerUnitX

		_, surfaceY := v.toScreen(vmath.Vec2{X: worldX, Y: v.world.OceanSurfaceHeightAt(worldX)}, width, height)
		if surfaceY >= 0 && surfaceY < height {
			v.screen.SetContent(sx, surfaceY, '~', nil, waterStyle)
		}

		_, floorY := v.toScreen(vmath.Vec2{X: worldX, Y: v.world.OceanFloorHeightAt(worldX)}, width, height)
		for sy := floorY; sy >= 0 && sy < height; sy++ {
			v.screen.SetContent(sx, sy, '▒', nil, floorStyle)
		}
	}

	for _, ship := range v.world.Ships() {
		v.drawShip(ship, width, height)
	}

	v.drawStatus(width)
	v.screen.Show()
}

func (v *viewer) drawShip(ship *physics.Ship, width, height int) {
	stressedStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)

	for i := range ship.Springs {
		s := &ship.Springs[i]
		if !s.IsIntact() {
			continue
		}
		a := ship.Points[s.PointA].Position
		b := ship.Points[s.PointB].Position
		mid := a.Add(b).Scale(0.5)

		style := v.pointStyle(&ship.Points[s.PointA])
		if s.State == physics.StressStateStressed {
			style = stressedStyle
		}
		glyph := '·'
		if s.IsRope {
			glyph = '|'
		}
		sx, sy := v.toScreen(mid, width, height)
		if sx >= 0 && sx < width && sy >= 0 && sy < height {
			v.screen.SetContent(sx, sy, glyph, nil, style)
		}
	}

	for i := range ship.Points {
		p := &ship.Points[i]
		if p.Destroyed {
			continue
		}
		sx, sy := v.toScreen(p.Position, width, height)
		if sx < 0 || sx >= width || sy < 0 || sy >= height {
			continue
		}
		glyph := '#'
		if p.Orphaned {
			glyph = '*'
		}
		v.screen.SetContent(sx, sy, glyph, nil, v.pointStyle(p))
	}
}

func (v *viewer) pointStyle(p *physics.Point) tcell.Style {
	if p.Water > 0.5 {
		return tcell.StyleDefault.Foreground(tcell.ColorTeal)
	}
	c := p.Material.RenderColor
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

func (v *viewer) drawStatus(width int) {
	sinking := 0
	for _, ship := range v.world.Ships() {
		if ship.IsSinking() {
			sinking++
		}
	}

	status := fmt.Sprintf(" t=%6.1fs  wind=%5.1f  ships=%d  sinking=%d  cam=(%.0f,%.0f)",
		v.world.CurrentSimulationTime(),
		v.world.WindSpeedMagnitudeRunningAverage(),
		len(v.world.Ships()),
		sinking,
		v.cameraX, v.cameraY)
	if v.paused {
		status += "  [paused]"
	}

	style := tcell.StyleDefault.Reverse(true)
	for i, r := range status {
		if i >= width {
			break
		}
		v.screen.SetContent(i, 0, r, nil, style)
	}
}
