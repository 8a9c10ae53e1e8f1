// Package inflow computes groundwater inflow into an excavation pit.
//
// Two schemes are supported. An imperfect pit stops above the aquiclude and
// is treated with an active-zone model:
//
//	Q = 1.36·k·(H0² − h0²) / (lg(R + r0) − lg r0)
//
// A perfect pit reaches the aquiclude and is treated as a large well in a
// confined layer with a Sichardt influence radius capped at 500 m:
//
//	Q = π·k·(H² − h²) / ln(R / r0)
//
// Calculate is a pure function of its input. It holds no state between calls
// and is safe for concurrent use.
package inflow

import (
	"fmt"
	"math"

	"github.com/remeenemee/pos-vodootliv/pkg/project"
	"github.com/remeenemee/pos-vodootliv/pkg/pump"
	"github.com/remeenemee/pos-vodootliv/pkg/validation"
)

// Result is the outcome of one inflow calculation. Exactly one of
// Imperfect and Perfect is set, matching Kind.
type Result struct {
	Kind      project.PitKind  `json:"type"`
	Drawdown  float64          `json:"drawdown_m"`
	Imperfect *ImperfectDetail `json:"imperfect,omitempty"`
	Perfect   *PerfectDetail   `json:"perfect,omitempty"`

	Flow         float64 `json:"flow_m3_day"`
	HourlyFlow   float64 `json:"hourly_flow_m3_h"`
	ReservedFlow float64 `json:"reserved_flow_m3_h"`

	Pump  pump.Tag `json:"pump"`
	Steps []Step   `json:"steps"`
}

// ImperfectDetail holds the intermediate quantities of the imperfect scheme.
type ImperfectDetail struct {
	ActiveZone      float64 `json:"active_zone_m"`      // H0
	InfluenceRadius float64 `json:"influence_radius_m"` // R
	Ratio           float64 `json:"ratio"`              // B/L
	Eta             float64 `json:"eta"`
	ReducedRadius   float64 `json:"reduced_radius_m"` // r0
	ResidualLevel   float64 `json:"residual_level_m"` // h0
}

// PerfectDetail holds the intermediate quantities of the perfect scheme.
type PerfectDetail struct {
	AquiferThickness   float64 `json:"aquifer_thickness_m"`    // H
	ResidualThickness  float64 `json:"residual_thickness_m"`   // h
	RawInfluenceRadius float64 `json:"raw_influence_radius_m"` // 3000·s·√k
	InfluenceRadius    float64 `json:"influence_radius_m"`     // R
	Capped             bool    `json:"capped"`
	Area               float64 `json:"area_m2"`          // A
	ReducedRadius      float64 `json:"reduced_radius_m"` // r0
}

// InfluenceRadius returns R for either scheme.
func (r *Result) InfluenceRadius() float64 {
	switch {
	case r.Imperfect != nil:
		return r.Imperfect.InfluenceRadius
	case r.Perfect != nil:
		return r.Perfect.InfluenceRadius
	}
	return 0
}

// ReducedRadius returns r0 for either scheme.
func (r *Result) ReducedRadius() float64 {
	switch {
	case r.Imperfect != nil:
		return r.Imperfect.ReducedRadius
	case r.Perfect != nil:
		return r.Perfect.ReducedRadius
	}
	return 0
}

// Drawdown returns s = D + Rsv − Zw, the lowering of the groundwater table
// needed to keep it Rsv below the pit bottom.
func Drawdown(g project.PitGeometry, h project.HydroInputs) float64 {
	return g.Depth + h.Reserve - h.GroundwaterDepth
}

// Calculate computes the inflow for in. It returns an *InvalidInputError
// when a parameter is out of range or the formulas leave their domain.
func Calculate(in project.Input) (*Result, error) {
	if err := checkInputs(in); err != nil {
		return nil, err
	}

	s := Drawdown(in.Geometry, in.Hydro)
	if !(s > 0) {
		return nil, invalid(ReasonNonPositiveDrawdown, "s", s,
			"groundwater already lies below the required level")
	}

	var (
		res *Result
		err error
	)
	switch in.Pit.Kind {
	case project.Imperfect:
		res, err = calculateImperfect(in, s)
	case project.Perfect:
		za, _ := in.Pit.Aquiclude()
		res, err = calculatePerfect(in, za, s)
	}
	if err != nil {
		return nil, err
	}

	res.Kind = in.Pit.Kind
	res.Drawdown = s
	res.HourlyFlow = res.Flow / HoursPerDay
	res.ReservedFlow = res.HourlyFlow * SafetyFactor
	res.Pump = pump.Advise(res.ReservedFlow)

	steps := make([]Step, 0, len(res.Steps)+2)
	steps = append(steps, drawdownStep(in.Geometry.Depth, in.Hydro.Reserve, in.Hydro.GroundwaterDepth, s))
	steps = append(steps, res.Steps...)
	steps = append(steps, hourlyFlowStep(res.Flow, res.HourlyFlow))
	res.Steps = steps

	return res, nil
}

func checkInputs(in project.Input) error {
	g, h := in.Geometry, in.Hydro
	checks := []struct {
		field     string
		value     float64
		allowZero bool
	}{
		{validation.FieldLength, g.Length, false},
		{validation.FieldWidth, g.Width, false},
		{validation.FieldDepth, g.Depth, false},
		{validation.FieldGroundwaterDepth, h.GroundwaterDepth, true},
		{validation.FieldFiltration, h.Filtration, false},
		{validation.FieldReserve, h.Reserve, true},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return invalid(ReasonInvalidParameter, c.field, c.value, "must be finite")
		}
		if c.value < 0 || (c.value == 0 && !c.allowZero) {
			want := "> 0"
			if c.allowZero {
				want = ">= 0"
			}
			return invalid(ReasonInvalidParameter, c.field, c.value, "must be "+want)
		}
	}

	za, supplied := in.Pit.Aquiclude()
	if supplied && (math.IsNaN(za) || math.IsInf(za, 0)) {
		return invalid(ReasonInvalidParameter, validation.FieldAquicludeElevation, za, "must be finite")
	}

	switch in.Pit.Kind {
	case project.Imperfect:
	case project.Perfect:
		if !supplied {
			return invalid(ReasonInvalidParameter, validation.FieldAquicludeElevation, 0,
				"required for a perfect pit")
		}
	default:
		return &InvalidInputError{
			Reason: ReasonInvalidParameter,
			Field:  validation.FieldPitType,
			Detail: fmt.Sprintf("unknown pit type %q", in.Pit.Kind),
		}
	}
	return nil
}
