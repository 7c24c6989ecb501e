package material

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Database is the loaded material palettes. Immutable after load; safe for
// concurrent readers without locking.
type Database struct {
	structural       []*Structural
	electrical       []*Electrical
	structuralByKey  map[ColorKey]*Structural
	electricalByKey  map[ColorKey]*Electrical
	structuralByName map[string]*Structural
	unique           map[UniqueType]*Structural
}

// NewDatabase builds a database from already-decoded palettes, validating
// colour-key uniqueness and presence of the unique materials.
func NewDatabase(structural []*Structural, electrical []*Electrical) (*Database, error) {
	db := &Database{
		structural:       structural,
		electrical:       electrical,
		structuralByKey:  make(map[ColorKey]*Structural, len(structural)),
		electricalByKey:  make(map[ColorKey]*Electrical, len(electrical)),
		structuralByName: make(map[string]*Structural, len(structural)),
		unique:           make(map[UniqueType]*Structural),
	}

	for _, m := range structural {
		if _, dup := db.structuralByKey[m.ColorKey]; dup {
			return nil, fmt.Errorf("structural material %q: duplicate color key %s", m.Name, m.ColorKey)
		}
		db.structuralByKey[m.ColorKey] = m
		db.structuralByName[m.Name] = m
		if m.UniqueType != "" {
			if _, dup := db.unique[m.UniqueType]; dup {
				return nil, fmt.Errorf("structural material %q: duplicate unique type %q", m.Name, m.UniqueType)
			}
			db.unique[m.UniqueType] = m
		}
	}

	for _, m := range electrical {
		if _, dup := db.electricalByKey[m.ColorKey]; dup {
			return nil, fmt.Errorf("electrical material %q: duplicate color key %s", m.Name, m.ColorKey)
		}
		db.electricalByKey[m.ColorKey] = m
	}

	return db, nil
}

// LoadDatabase reads materials_structural.json and materials_electrical.json
// from dir. A malformed palette is fatal to the load, naming the file.
func LoadDatabase(dir string) (*Database, error) {
	structural, err := loadPalette[Structural](filepath.Join(dir, "materials_structural.json"))
	if err != nil {
		return nil, err
	}

	electrical, err := loadPalette[Electrical](filepath.Join(dir, "materials_electrical.json"))
	if err != nil {
		return nil, err
	}

	return NewDatabase(structural, electrical)
}

func loadPalette[T any](path string) ([]*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading material palette %s: %w", path, err)
	}

	var palette []*T
	if err := json.Unmarshal(data, &palette); err != nil {
		return nil, fmt.Errorf("parsing material palette %s: %w", path, err)
	}
	return palette, nil
}

// StructuralByColorKey returns the structural material for key, or nil.
func (db *Database) StructuralByColorKey(key ColorKey) *Structural {
	return db.structuralByKey[key]
}

// ElectricalByColorKey returns the electrical material for key, or nil.
func (db *Database) ElectricalByColorKey(key ColorKey) *Electrical {
	return db.electricalByKey[key]
}

// StructuralByName returns the structural material for name, or nil.
func (db *Database) StructuralByName(name string) *Structural {
	return db.structuralByName[name]
}

// Unique returns the unique material of the given type, or nil when the
// palette has none.
func (db *Database) Unique(t UniqueType) *Structural {
	return db.unique[t]
}

// Structural returns the structural palette in load order.
func (db *Database) Structural() []*Structural {
	return db.structural
}

// Electrical returns the electrical palette in load order.
func (db *Database) Electrical() []*Electrical {
	return db.electrical
}
