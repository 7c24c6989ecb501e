// Package atlas builds texture atlases: frames packed tallest-first into a
// power-of-two sheet, with half-texel-inset texture coordinates and JSON
// metadata that round-trips exactly.
package atlas

import (
	"encoding/json"
	"fmt"
	"image"
)

// Options flags for atlas composition.
type Options int

const (
	OptionsNone Options = 0

	// OptionsAlphaPremultiply multiplies colour channels by alpha in the
	// composed image.
	OptionsAlphaPremultiply Options = 1
)

// FrameMetadata describes one input frame.
type FrameMetadata struct {
	ID     string `json:"id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Frame is an input frame with its pixels.
type Frame struct {
	Metadata FrameMetadata
	Image    *image.RGBA
}

// TextureCoordinates is a normalised rectangle within the atlas, already
// inset by half a texel on each side.
type TextureCoordinates struct {
	Left   float64 `json:"left"`
	Bottom float64 `json:"bottom"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
}

// FrameCoordinates is the frame's pixel placement, bottom-left origin.
type FrameCoordinates struct {
	Left   int `json:"left"`
	Bottom int `json:"bottom"`
}

// AtlasFrameMetadata is one frame's placement within a built atlas.
type AtlasFrameMetadata struct {
	TextureCoordinates TextureCoordinates `json:"texture_coordinates"`
	FrameCoordinates   FrameCoordinates   `json:"frame_coordinates"`
	Frame              FrameMetadata      `json:"frame"`
}

// Size is the atlas pixel size; both dimensions are powers of two.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Metadata is the full atlas metadata, serialisable to JSON and back with
// identical contents.
type Metadata struct {
	Size    Size                 `json:"size"`
	Options Options              `json:"options"`
	Frames  []AtlasFrameMetadata `json:"frames"`
}

// FrameByID finds a frame's metadata, or nil.
func (m *Metadata) FrameByID(id string) *AtlasFrameMetadata {
	for i := range m.Frames {
		if m.Frames[i].Frame.ID == id {
			return &m.Frames[i]
		}
	}
	return nil
}

// Serialize encodes the metadata to JSON.
func (m *Metadata) Serialize() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// DeserializeMetadata decodes metadata produced by Serialize.
func DeserializeMetadata(data []byte) (*Metadata, error) {
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing atlas metadata: %w", err)
	}
	return &m, nil
}

// Atlas is a composed atlas: the metadata plus the sheet image.
type Atlas struct {
	Metadata Metadata
	Image    *image.RGBA
}
