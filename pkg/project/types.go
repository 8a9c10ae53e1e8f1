package project

import "strings"

// PitKind selects which inflow scheme applies to the excavation.
type PitKind string

const (
	// Imperfect pits stop above the aquiclude.
	Imperfect PitKind = "imperfect"
	// Perfect pits reach the aquiclude.
	Perfect PitKind = "perfect"
)

// ParsePitKind accepts "imperfect" or "perfect" in any case.
func ParsePitKind(s string) (PitKind, bool) {
	switch PitKind(strings.ToLower(strings.TrimSpace(s))) {
	case Imperfect:
		return Imperfect, true
	case Perfect:
		return Perfect, true
	}
	return "", false
}

// Input is the complete set of values for one inflow calculation.
// Elevations are measured from the ground surface (0.00 m), negative downward.
type Input struct {
	Geometry PitGeometry `yaml:"geometry" json:"geometry"`
	Hydro    HydroInputs `yaml:"hydro" json:"hydro"`
	Pit      PitType     `yaml:"pit" json:"pit"`
	Soil     string      `yaml:"soil,omitempty" json:"soil,omitempty"`
}

// PitGeometry holds the plan dimensions and depth of the excavation, in metres.
type PitGeometry struct {
	Length float64 `yaml:"length" json:"length"`
	Width  float64 `yaml:"width" json:"width"`
	Depth  float64 `yaml:"depth" json:"depth"`
}

// BottomElevation returns the elevation of the pit bottom.
func (g PitGeometry) BottomElevation() float64 {
	return -g.Depth
}

// HydroInputs describes the groundwater conditions at the site.
type HydroInputs struct {
	GroundwaterDepth float64 `yaml:"groundwater_depth" json:"groundwater_depth"`           // m below surface
	Filtration       float64 `yaml:"filtration_coefficient" json:"filtration_coefficient"` // m/day
	Reserve          float64 `yaml:"drawdown_reserve" json:"drawdown_reserve"`             // m below pit bottom
}

// GroundwaterElevation returns the elevation of the groundwater table.
func (h HydroInputs) GroundwaterElevation() float64 {
	return -h.GroundwaterDepth
}

// PitType is the pit variant. The aquiclude elevation is only meaningful
// for perfect pits.
type PitType struct {
	Kind               PitKind  `yaml:"type" json:"type"`
	AquicludeElevation *float64 `yaml:"aquiclude_elevation,omitempty" json:"aquiclude_elevation,omitempty"`
}

// ImperfectPit returns the imperfect variant.
func ImperfectPit() PitType {
	return PitType{Kind: Imperfect}
}

// PerfectPit returns the perfect variant with the given aquiclude elevation.
func PerfectPit(aquiclude float64) PitType {
	return PitType{Kind: Perfect, AquicludeElevation: &aquiclude}
}

// Aquiclude returns the aquiclude elevation and whether one was supplied.
func (p PitType) Aquiclude() (float64, bool) {
	if p.AquicludeElevation == nil {
		return 0, false
	}
	return *p.AquicludeElevation, true
}
