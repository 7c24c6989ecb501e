package atlas

import (
	"fmt"
	"image"
	"math"
	"sort"

	xdraw "golang.org/x/image/draw"

	"github.com/corvel/shipfall/vmath"
)

// TextureInfo is the size of one frame to be placed.
type TextureInfo struct {
	ID     string
	Width  int
	Height int
}

// Placement is one frame's position in the specification, bottom-left
// origin.
type Placement struct {
	ID      string
	LeftX   int
	BottomY int
}

// Specification is the computed layout of an atlas, before composition.
type Specification struct {
	Placements []Placement
	Width      int
	Height     int
}

// BuildSpecification computes the atlas layout: frames sorted tallest first
// (ties widest first), placed along a position stack that backtracks when a
// row fills and grows the atlas a power of two at a time, preferring the
// cheaper of growing right versus growing up.
func BuildSpecification(infos []TextureInfo) (*Specification, error) {
	if len(infos) == 0 {
		return nil, fmt.Errorf("atlas cannot be built from an empty set of texture frames")
	}

	sorted := make([]TextureInfo, len(infos))
	copy(sorted, infos)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		return a.Height > b.Height || (a.Height == b.Height && a.Width > b.Width)
	})

	totalArea := 0
	for _, ti := range sorted {
		if !vmath.IsPowerOfTwo(ti.Width) || !vmath.IsPowerOfTwo(ti.Height) {
			return nil, fmt.Errorf("dimensions of texture frame %q are not a power of two", ti.ID)
		}
		totalArea += ti.Width * ti.Height
	}

	// Start from half the power-of-two square that would fit the area
	atlasSide := vmath.CeilPowerOfTwo(int(math.Floor(math.Sqrt(float64(totalArea))))) / 2
	atlasWidth := atlasSide
	atlasHeight := atlasSide

	type position struct{ x, y int }
	stack := []position{{0, 0}}

	placements := make([]Placement, 0, len(sorted))
	for _, t := range sorted {
		for {
			current := stack[len(stack)-1]

			fits := current.x+t.Width < atlasWidth
			cannotBacktrack := len(stack) == 1
			extraW := vmath.CeilPowerOfTwo(current.x+t.Width) - atlasWidth
			extraH := vmath.CeilPowerOfTwo(stack[0].y+t.Height) - atlasHeight
			if fits || cannotBacktrack || extraW <= extraH {
				placements = append(placements, Placement{
					ID:      t.ID,
					LeftX:   current.x,
					BottomY: current.y,
				})

				if len(stack) == 1 || current.y+t.Height < stack[len(stack)-2].y {
					// This column keeps going up
					stack[len(stack)-1].y += t.Height
				} else {
					// Column reached the previous level; done with it
					stack = stack[:len(stack)-1]
				}

				// New position to the right of the placed tile
				stack = append(stack, position{x: current.x + t.Width, y: current.y})

				if current.x+t.Width > atlasWidth {
					atlasWidth = vmath.CeilPowerOfTwo(current.x + t.Width)
				}
				if current.y+t.Height > atlasHeight {
					atlasHeight = vmath.CeilPowerOfTwo(current.y + t.Height)
				}
				break
			}

			// Backtrack
			stack = stack[:len(stack)-1]
		}
	}

	return &Specification{
		Placements: placements,
		Width:      vmath.CeilPowerOfTwo(atlasWidth),
		Height:     vmath.CeilPowerOfTwo(atlasHeight),
	}, nil
}

// BuildRegularSpecification lays out uniform frames on a square grid. All
// frames must share the same power-of-two size.
func BuildRegularSpecification(infos []TextureInfo) (*Specification, error) {
	if len(infos) == 0 {
		return nil, fmt.Errorf("regular atlas cannot be built from an empty set of texture frames")
	}

	frameWidth := infos[0].Width
	frameHeight := infos[0].Height
	if !vmath.IsPowerOfTwo(frameWidth) || !vmath.IsPowerOfTwo(frameHeight) {
		return nil, fmt.Errorf("dimensions of texture frame %q are not a power of two", infos[0].ID)
	}
	for _, ti := range infos {
		if ti.Width != frameWidth || ti.Height != frameHeight {
			return nil, fmt.Errorf("dimensions of texture frame %q differ from the dimensions of the other frames", ti.ID)
		}
	}

	// Frame count rounded up to the next square of a power of two
	framesPerSide := 1
	for framesPerSide*framesPerSide < len(infos) {
		framesPerSide *= 2
	}

	placements := make([]Placement, len(infos))
	for i, ti := range infos {
		placements[i] = Placement{
			ID:      ti.ID,
			LeftX:   (i % framesPerSide) * frameWidth,
			BottomY: (i / framesPerSide) * frameHeight,
		}
	}

	return &Specification{
		Placements: placements,
		Width:      framesPerSide * frameWidth,
		Height:     framesPerSide * frameHeight,
	}, nil
}

// Build composes the atlas image and its metadata from a specification.
// The loader supplies each frame's pixels by id. Texture coordinates carry
// the half-texel inset so sampling at the edges never bleeds into the
// neighbouring frame.
func Build(spec *Specification, options Options, loader func(id string) (Frame, error)) (*Atlas, error) {
	dx := 0.5 / float64(spec.Width)
	dy := 0.5 / float64(spec.Height)

	sheet := image.NewRGBA(image.Rect(0, 0, spec.Width, spec.Height))

	frames := make([]AtlasFrameMetadata, 0, len(spec.Placements))
	for _, placement := range spec.Placements {
		frame, err := loader(placement.ID)
		if err != nil {
			return nil, fmt.Errorf("loading texture frame %q: %w", placement.ID, err)
		}

		width := frame.Metadata.Width
		height := frame.Metadata.Height

		// Frame coordinates are bottom-left origin; the image is top-down
		destination := image.Rect(
			placement.LeftX,
			spec.Height-placement.BottomY-height,
			placement.LeftX+width,
			spec.Height-placement.BottomY,
		)
		xdraw.Draw(sheet, destination, frame.Image, frame.Image.Bounds().Min, xdraw.Src)

		frames = append(frames, AtlasFrameMetadata{
			TextureCoordinates: TextureCoordinates{
				Left:   dx + float64(placement.LeftX)/float64(spec.Width),
				Bottom: dy + float64(placement.BottomY)/float64(spec.Height),
				Right:  float64(placement.LeftX+width)/float64(spec.Width) - dx,
				Top:    float64(placement.BottomY+height)/float64(spec.Height) - dy,
			},
			FrameCoordinates: FrameCoordinates{
				Left:   placement.LeftX,
				Bottom: placement.BottomY,
			},
			Frame: frame.Metadata,
		})
	}

	if options&OptionsAlphaPremultiply != 0 {
		alphaPremultiply(sheet)
	}

	return &Atlas{
		Metadata: Metadata{
			Size:    Size{Width: spec.Width, Height: spec.Height},
			Options: options,
			Frames:  frames,
		},
		Image: sheet,
	}, nil
}

func alphaPremultiply(img *image.RGBA) {
	pix := img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		a := uint32(pix[i+3])
		pix[i+0] = uint8(uint32(pix[i+0]) * a / 255)
		pix[i+1] = uint8(uint32(pix[i+1]) * a / 255)
		pix[i+2] = uint8(uint32(pix[i+2]) * a / 255)
	}
}
