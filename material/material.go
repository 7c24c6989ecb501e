// Package material defines the immutable material palettes ships are built
// from. A Database is loaded once from JSON and read-only afterwards; points
// and springs hold references into it for the whole run.
package material

import (
	"encoding/json"
	"fmt"
)

// ColorKey identifies a material by the colour of its cell in a ship
// definition image.
type ColorKey struct {
	R, G, B uint8
}

func (k ColorKey) String() string {
	return fmt.Sprintf("#%02x%02x%02x", k.R, k.G, k.B)
}

// ParseColorKey parses "#rrggbb" (leading '#' optional).
func ParseColorKey(s string) (ColorKey, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return ColorKey{}, fmt.Errorf("color key %q: want 6 hex digits", s)
	}
	var k ColorKey
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &k.R, &k.G, &k.B); err != nil {
		return ColorKey{}, fmt.Errorf("color key %q: %w", s, err)
	}
	return k, nil
}

func (k ColorKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *ColorKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseColorKey(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// UniqueType marks the materials the simulation must be able to find
// directly.
type UniqueType string

const (
	UniqueAir   UniqueType = "Air"
	UniqueRope  UniqueType = "Rope"
	UniqueWater UniqueType = "Water"
)

// CombustionType selects how a structural material burns.
type CombustionType string

const (
	CombustionSlow      CombustionType = "Combustion"
	CombustionExplosion CombustionType = "Explosion"
)

// Structural is a structural material. Shared read-only by many points and
// springs.
type Structural struct {
	ColorKey    ColorKey `json:"colorKey"`
	Name        string   `json:"name"`
	RenderColor ColorKey `json:"renderColor"`

	Strength                float64 `json:"strength"`
	NominalMass             float64 `json:"nominalMass"`
	Density                 float64 `json:"density"`
	BuoyancyVolumeFill      float64 `json:"buoyancyVolumeFill"`
	Stiffness               float64 `json:"stiffness"`
	StrainThresholdFraction float64 `json:"strainThresholdFraction"`

	UniqueType UniqueType `json:"uniqueType,omitempty"`

	// Water
	IsHull              bool    `json:"isHull"`
	WaterIntake         float64 `json:"waterIntake"`
	WaterDiffusionSpeed float64 `json:"waterDiffusionSpeed"`
	WaterRetention      float64 `json:"waterRetention"`
	RustReceptivity     float64 `json:"rustReceptivity"`

	// Heat
	IgnitionTemperature float64        `json:"ignitionTemperature"`
	MeltingTemperature  float64        `json:"meltingTemperature"`
	ThermalConductivity float64        `json:"thermalConductivity"`
	SpecificHeat        float64        `json:"specificHeat"`
	CombustionType      CombustionType `json:"combustionType"`

	// Misc
	WindReceptivity float64 `json:"windReceptivity"`
}

// Mass is the particle mass: one cubic metre filled at the material's
// density fraction. An iron truss is lighter than solid iron.
func (m *Structural) Mass() float64 {
	return m.NominalMass * m.Density
}

// HeatCapacity is J/K for one particle.
func (m *Structural) HeatCapacity() float64 {
	return m.SpecificHeat * m.Mass()
}

func (m *Structural) IsUniqueType(t UniqueType) bool {
	return m.UniqueType == t
}

// ElectricalType selects the element behaviour attached to a point.
type ElectricalType string

const (
	ElectricalCable     ElectricalType = "Cable"
	ElectricalGenerator ElectricalType = "Generator"
	ElectricalLamp      ElectricalType = "Lamp"
	ElectricalEngine    ElectricalType = "Engine"
	ElectricalSwitch    ElectricalType = "InteractiveSwitch"
)

// Electrical is an electrical material.
type Electrical struct {
	ColorKey    ColorKey `json:"colorKey"`
	Name        string   `json:"name"`
	RenderColor ColorKey `json:"renderColor"`

	ElectricalType      ElectricalType `json:"electricalType"`
	IsSelfPowered       bool           `json:"isSelfPowered"`
	ConductsElectricity bool           `json:"conductsElectricity"`

	// Light
	Luminiscence   float64 `json:"luminiscence"`
	WetFailureRate float64 `json:"wetFailureRate"` // failures per simulated minute when wet

	// Heat
	HeatGenerated               float64 `json:"heatGenerated"` // KJ/s while operating
	MinimumOperatingTemperature float64 `json:"minimumOperatingTemperature"`
	MaximumOperatingTemperature float64 `json:"maximumOperatingTemperature"`
}

// NewTestStructural builds a material with neutral properties, for tests.
func NewTestStructural(name string) *Structural {
	return &Structural{
		Name:                    name,
		Strength:                1.0,
		NominalMass:             1.0,
		Density:                 1.0,
		BuoyancyVolumeFill:      1.0,
		Stiffness:               1.0,
		StrainThresholdFraction: 0.5,
		WaterIntake:             1.0,
		WaterDiffusionSpeed:     1.0,
		WaterRetention:          1.0,
		RustReceptivity:         1.0,
		IgnitionTemperature:     200.0,
		MeltingTemperature:      200.0,
		ThermalConductivity:     1.0,
		SpecificHeat:            1.0,
		CombustionType:          CombustionSlow,
		WindReceptivity:         1.0,
	}
}
