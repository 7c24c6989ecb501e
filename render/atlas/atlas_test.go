package atlas

import (
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvel/shipfall/vmath"
)

func solidFrame(id string, width, height int, c color.RGBA) Frame {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return Frame{
		Metadata: FrameMetadata{ID: id, Width: width, Height: height},
		Image:    img,
	}
}

func frameLoader(frames ...Frame) func(string) (Frame, error) {
	byID := make(map[string]Frame, len(frames))
	for _, f := range frames {
		byID[f.Metadata.ID] = f
	}
	return func(id string) (Frame, error) {
		f, found := byID[id]
		if !found {
			return Frame{}, fmt.Errorf("no such frame")
		}
		return f, nil
	}
}

func TestBuildSpecificationFourSquares(t *testing.T) {
	infos := []TextureInfo{
		{ID: "a", Width: 32, Height: 32},
		{ID: "b", Width: 32, Height: 32},
		{ID: "c", Width: 32, Height: 32},
		{ID: "d", Width: 32, Height: 32},
	}

	spec, err := BuildSpecification(infos)
	require.NoError(t, err)

	assert.Equal(t, 64, spec.Width)
	assert.Equal(t, 64, spec.Height)

	want := []Placement{
		{ID: "a", LeftX: 0, BottomY: 0},
		{ID: "b", LeftX: 32, BottomY: 0},
		{ID: "c", LeftX: 0, BottomY: 32},
		{ID: "d", LeftX: 32, BottomY: 32},
	}
	assert.Equal(t, want, spec.Placements)
}

func TestBuildSpecificationNonOverlapAndContainment(t *testing.T) {
	infos := []TextureInfo{
		{ID: "big", Width: 64, Height: 64},
		{ID: "m1", Width: 32, Height: 32},
		{ID: "m2", Width: 32, Height: 32},
		{ID: "m3", Width: 32, Height: 16},
		{ID: "s1", Width: 16, Height: 16},
		{ID: "s2", Width: 16, Height: 16},
		{ID: "s3", Width: 8, Height: 8},
		{ID: "s4", Width: 8, Height: 4},
		{ID: "s5", Width: 4, Height: 4},
	}

	spec, err := BuildSpecification(infos)
	require.NoError(t, err)

	assert.True(t, vmath.IsPowerOfTwo(spec.Width))
	assert.True(t, vmath.IsPowerOfTwo(spec.Height))
	require.Len(t, spec.Placements, len(infos))

	sizeOf := make(map[string]TextureInfo, len(infos))
	for _, ti := range infos {
		sizeOf[ti.ID] = ti
	}

	type rect struct{ l, b, r, t int }
	rects := make([]rect, 0, len(spec.Placements))
	for _, p := range spec.Placements {
		ti := sizeOf[p.ID]
		r := rect{l: p.LeftX, b: p.BottomY, r: p.LeftX + ti.Width, t: p.BottomY + ti.Height}

		assert.GreaterOrEqual(t, r.l, 0, "%s", p.ID)
		assert.GreaterOrEqual(t, r.b, 0, "%s", p.ID)
		assert.LessOrEqual(t, r.r, spec.Width, "%s exceeds atlas width", p.ID)
		assert.LessOrEqual(t, r.t, spec.Height, "%s exceeds atlas height", p.ID)

		rects = append(rects, r)
	}

	for i := 0; i < len(rects); i++ {
		for j := i + 1; j < len(rects); j++ {
			a, b := rects[i], rects[j]
			overlap := a.l < b.r && b.l < a.r && a.b < b.t && b.b < a.t
			assert.False(t, overlap, "frames %s and %s overlap",
				spec.Placements[i].ID, spec.Placements[j].ID)
		}
	}
}

func TestBuildSpecificationRejectsNonPowerOfTwo(t *testing.T) {
	_, err := BuildSpecification([]TextureInfo{{ID: "odd_frame", Width: 30, Height: 32}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "odd_frame")
	assert.Contains(t, err.Error(), "power of two")
}

func TestBuildSpecificationEmpty(t *testing.T) {
	_, err := BuildSpecification(nil)
	require.Error(t, err)
}

func TestRegularSpecification(t *testing.T) {
	infos := []TextureInfo{
		{ID: "a", Width: 16, Height: 16},
		{ID: "b", Width: 16, Height: 16},
		{ID: "c", Width: 16, Height: 16},
	}

	spec, err := BuildRegularSpecification(infos)
	require.NoError(t, err)

	assert.Equal(t, 32, spec.Width)
	assert.Equal(t, 32, spec.Height)
	assert.Equal(t, []Placement{
		{ID: "a", LeftX: 0, BottomY: 0},
		{ID: "b", LeftX: 16, BottomY: 0},
		{ID: "c", LeftX: 0, BottomY: 16},
	}, spec.Placements)
}

func TestRegularSpecificationRejectsMixedSizes(t *testing.T) {
	_, err := BuildRegularSpecification([]TextureInfo{
		{ID: "a", Width: 16, Height: 16},
		{ID: "bad_frame", Width: 8, Height: 8},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad_frame")
}

func TestBuildComposesFrames(t *testing.T) {
	red := color.RGBA{R: 0xff, A: 0xff}
	blue := color.RGBA{B: 0xff, A: 0xff}

	a := solidFrame("a", 16, 16, red)
	b := solidFrame("b", 16, 16, blue)

	spec, err := BuildSpecification([]TextureInfo{
		{ID: "a", Width: 16, Height: 16},
		{ID: "b", Width: 16, Height: 16},
	})
	require.NoError(t, err)

	built, err := Build(spec, OptionsNone, frameLoader(a, b))
	require.NoError(t, err)

	// Frame placed at bottom-left (0,0) occupies the bottom rows of the
	// top-down image
	for _, p := range spec.Placements {
		want := red
		if p.ID == "b" {
			want = blue
		}
		x := p.LeftX + 8
		y := built.Metadata.Size.Height - p.BottomY - 8
		assert.Equal(t, want, built.Image.RGBAAt(x, y), "frame %s", p.ID)
	}
}

func TestTextureCoordinatesHalfTexelInset(t *testing.T) {
	f := solidFrame("a", 16, 16, color.RGBA{A: 0xff})

	spec, err := BuildSpecification([]TextureInfo{{ID: "a", Width: 16, Height: 16}})
	require.NoError(t, err)

	built, err := Build(spec, OptionsNone, frameLoader(f))
	require.NoError(t, err)

	meta := built.Metadata.FrameByID("a")
	require.NotNil(t, meta)

	w := float64(built.Metadata.Size.Width)
	h := float64(built.Metadata.Size.Height)
	p := spec.Placements[0]

	assert.InDelta(t, 0.5/w+float64(p.LeftX)/w, meta.TextureCoordinates.Left, 1e-12)
	assert.InDelta(t, 0.5/h+float64(p.BottomY)/h, meta.TextureCoordinates.Bottom, 1e-12)
	assert.InDelta(t, float64(p.LeftX+16)/w-0.5/w, meta.TextureCoordinates.Right, 1e-12)
	assert.InDelta(t, float64(p.BottomY+16)/h-0.5/h, meta.TextureCoordinates.Top, 1e-12)
}

func TestMetadataRoundTrip(t *testing.T) {
	frames := []Frame{
		solidFrame("a", 32, 32, color.RGBA{R: 1, A: 0xff}),
		solidFrame("b", 16, 16, color.RGBA{G: 1, A: 0xff}),
		solidFrame("c", 16, 16, color.RGBA{B: 1, A: 0xff}),
	}

	spec, err := BuildSpecification([]TextureInfo{
		{ID: "a", Width: 32, Height: 32},
		{ID: "b", Width: 16, Height: 16},
		{ID: "c", Width: 16, Height: 16},
	})
	require.NoError(t, err)

	built, err := Build(spec, OptionsAlphaPremultiply, frameLoader(frames...))
	require.NoError(t, err)

	data, err := built.Metadata.Serialize()
	require.NoError(t, err)

	decoded, err := DeserializeMetadata(data)
	require.NoError(t, err)

	assert.Equal(t, built.Metadata, *decoded)
}

func TestAlphaPremultiply(t *testing.T) {
	f := solidFrame("a", 4, 4, color.RGBA{R: 200, G: 100, B: 50, A: 128})

	spec, err := BuildSpecification([]TextureInfo{{ID: "a", Width: 4, Height: 4}})
	require.NoError(t, err)

	built, err := Build(spec, OptionsAlphaPremultiply, frameLoader(f))
	require.NoError(t, err)

	y := built.Metadata.Size.Height - 1
	got := built.Image.RGBAAt(0, y)
	assert.Equal(t, uint8(200*128/255), got.R)
	assert.Equal(t, uint8(128), got.A)
}