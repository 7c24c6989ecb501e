package shipdef

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/corvel/shipfall/material"
)

// layerFiles is the on-disk JSON schema of a ship definition.
type layerFiles struct {
	StructuralLayerImage string `json:"structuralLayerImage"`
	ElectricalLayerImage string `json:"electricalLayerImage,omitempty"`
	RopesLayerImage      string `json:"ropesLayerImage,omitempty"`

	Metadata
}

// Load reads a ship definition from its JSON metadata file, decodes the
// layer images and resolves every cell against the database. Any malformed
// layer is fatal to the load, naming the offending file and colour.
func Load(path string, db *material.Database) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ship definition %s: %w", path, err)
	}

	var files layerFiles
	if err := json.Unmarshal(data, &files); err != nil {
		return nil, fmt.Errorf("parsing ship definition %s: %w", path, err)
	}
	if files.StructuralLayerImage == "" {
		return nil, fmt.Errorf("ship definition %s: no structural layer image", path)
	}

	dir := filepath.Dir(path)

	structuralImage, err := loadLayerImage(filepath.Join(dir, files.StructuralLayerImage))
	if err != nil {
		return nil, err
	}

	bounds := structuralImage.Bounds()
	def := &Definition{
		Metadata: files.Metadata,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
	}
	if def.Metadata.ShipName == "" {
		def.Metadata.ShipName = filepath.Base(path)
	}

	if err := def.resolveStructural(structuralImage, db, files.StructuralLayerImage); err != nil {
		return nil, err
	}

	if files.ElectricalLayerImage != "" {
		img, err := loadLayerImage(filepath.Join(dir, files.ElectricalLayerImage))
		if err != nil {
			return nil, err
		}
		if err := def.resolveElectrical(img, db, files.ElectricalLayerImage); err != nil {
			return nil, err
		}
	}

	if files.RopesLayerImage != "" {
		img, err := loadLayerImage(filepath.Join(dir, files.RopesLayerImage))
		if err != nil {
			return nil, err
		}
		if err := def.resolveRopes(img, files.RopesLayerImage); err != nil {
			return nil, err
		}
	}

	return def, nil
}

func loadLayerImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening layer image %s: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding layer image %s: %w", path, err)
	}
	return img, nil
}

// cellColor maps an image pixel to a colour key; ok is false for empty
// cells (transparent or white).
func cellColor(img image.Image, ix, iy int) (material.ColorKey, bool) {
	r, g, b, a := img.At(ix, iy).RGBA()
	if a < 0x8000 {
		return material.ColorKey{}, false
	}
	key := material.ColorKey{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
	if key.R == 0xff && key.G == 0xff && key.B == 0xff {
		return material.ColorKey{}, false
	}
	return key, true
}

// resolveStructural fills the structural grid. Image row 0 is the top; grid
// row 0 is the bottom.
func (d *Definition) resolveStructural(img image.Image, db *material.Database, name string) error {
	d.Structural = make([]*material.Structural, d.Width*d.Height)

	bounds := img.Bounds()
	for iy := 0; iy < d.Height; iy++ {
		for ix := 0; ix < d.Width; ix++ {
			key, ok := cellColor(img, bounds.Min.X+ix, bounds.Min.Y+iy)
			if !ok {
				continue
			}
			m := db.StructuralByColorKey(key)
			if m == nil {
				return fmt.Errorf("structural layer %s: unknown material color %s at (%d,%d)",
					name, key, ix, iy)
			}
			y := d.Height - 1 - iy
			d.Structural[y*d.Width+ix] = m
		}
	}
	return nil
}

func (d *Definition) resolveElectrical(img image.Image, db *material.Database, name string) error {
	bounds := img.Bounds()
	if bounds.Dx() != d.Width || bounds.Dy() != d.Height {
		return fmt.Errorf("electrical layer %s: size %dx%d does not match structural %dx%d",
			name, bounds.Dx(), bounds.Dy(), d.Width, d.Height)
	}

	d.Electrical = make([]*material.Electrical, d.Width*d.Height)
	for iy := 0; iy < d.Height; iy++ {
		for ix := 0; ix < d.Width; ix++ {
			key, ok := cellColor(img, bounds.Min.X+ix, bounds.Min.Y+iy)
			if !ok {
				continue
			}
			m := db.ElectricalByColorKey(key)
			if m == nil {
				return fmt.Errorf("electrical layer %s: unknown material color %s at (%d,%d)",
					name, key, ix, iy)
			}
			y := d.Height - 1 - iy
			if d.Structural[y*d.Width+ix] == nil {
				return fmt.Errorf("electrical layer %s: color %s at (%d,%d) has no structural cell under it",
					name, key, ix, iy)
			}
			d.Electrical[y*d.Width+ix] = m
		}
	}
	return nil
}

// resolveRopes pairs up identically coloured pixels: each colour must appear
// exactly twice, marking the rope's endpoints.
func (d *Definition) resolveRopes(img image.Image, name string) error {
	bounds := img.Bounds()
	if bounds.Dx() != d.Width || bounds.Dy() != d.Height {
		return fmt.Errorf("ropes layer %s: size %dx%d does not match structural %dx%d",
			name, bounds.Dx(), bounds.Dy(), d.Width, d.Height)
	}

	type endpoint struct{ x, y int }
	seen := make(map[material.ColorKey][]endpoint)
	var order []material.ColorKey

	for iy := 0; iy < d.Height; iy++ {
		for ix := 0; ix < d.Width; ix++ {
			key, ok := cellColor(img, bounds.Min.X+ix, bounds.Min.Y+iy)
			if !ok {
				continue
			}
			if _, found := seen[key]; !found {
				order = append(order, key)
			}
			seen[key] = append(seen[key], endpoint{x: ix, y: d.Height - 1 - iy})
		}
	}

	for _, key := range order {
		endpoints := seen[key]
		if len(endpoints) != 2 {
			return fmt.Errorf("ropes layer %s: color %s appears %d times, want exactly 2",
				name, key, len(endpoints))
		}
		d.Ropes = append(d.Ropes, Rope{
			Color: key,
			AX:    endpoints[0].x, AY: endpoints[0].y,
			BX: endpoints[1].x, BY: endpoints[1].y,
		})
	}
	return nil
}
