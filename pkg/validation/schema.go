package validation

import (
	"fmt"
	"math"

	"github.com/remeenemee/pos-vodootliv/pkg/project"
)

// Input paths reported in Result.Field.
const (
	FieldLength             = "geometry.length"
	FieldWidth              = "geometry.width"
	FieldDepth              = "geometry.depth"
	FieldGroundwaterDepth   = "hydro.groundwater_depth"
	FieldFiltration         = "hydro.filtration_coefficient"
	FieldReserve            = "hydro.drawdown_reserve"
	FieldPitType            = "pit.type"
	FieldAquicludeElevation = "pit.aquiclude_elevation"
)

// ValidateSchema performs Level 1 (schema) validation on a pit input.
// Unlike the calculator, which stops at the first violation, it reports
// every problem it finds.
func ValidateSchema(in *project.Input) *Report {
	r := NewReport()

	validateGeometry(in.Geometry, r)
	validateHydro(in.Hydro, r)
	validatePitType(in.Pit, r)

	return r
}

func validateGeometry(g project.PitGeometry, r *Report) {
	requirePositive(r, FieldLength, "pit length", g.Length)
	requirePositive(r, FieldWidth, "pit width", g.Width)
	requirePositive(r, FieldDepth, "pit depth", g.Depth)
}

func validateHydro(h project.HydroInputs, r *Report) {
	requireNonNegative(r, FieldGroundwaterDepth, "groundwater depth", h.GroundwaterDepth)
	requirePositive(r, FieldFiltration, "filtration coefficient", h.Filtration)
	requireNonNegative(r, FieldReserve, "drawdown reserve", h.Reserve)
}

func validatePitType(p project.PitType, r *Report) {
	za, supplied := p.Aquiclude()
	if supplied && !isFinite(za) {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "aquiclude elevation must be a finite number",
			Field:       FieldAquicludeElevation,
			ActualValue: actual(za),
			Expected:    "finite",
		})
	}

	switch p.Kind {
	case project.Imperfect:
	case project.Perfect:
		if !supplied {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     "perfect pit requires an aquiclude elevation",
				Field:       FieldAquicludeElevation,
				Expected:    "elevation in m relative to ground (typically negative)",
				Suggestions: []string{fmt.Sprintf("Set pit.aquiclude_elevation, e.g. %.2f", project.DefaultAquicludeElevation)},
			})
		}
	default:
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("unknown pit type %q", p.Kind),
			Field:       FieldPitType,
			ActualValue: string(p.Kind),
			Expected:    fmt.Sprintf("%q or %q", project.Imperfect, project.Perfect),
		})
	}
}

func requirePositive(r *Report, field, name string, v float64) {
	if isFinite(v) && v > 0 {
		return
	}
	r.AddError(Result{
		Level:       LevelSchema,
		Message:     fmt.Sprintf("%s must be greater than 0", name),
		Field:       field,
		ActualValue: actual(v),
		Expected:    "> 0",
	})
}

func requireNonNegative(r *Report, field, name string, v float64) {
	if isFinite(v) && v >= 0 {
		return
	}
	r.AddError(Result{
		Level:       LevelSchema,
		Message:     fmt.Sprintf("%s must be non-negative", name),
		Field:       field,
		ActualValue: actual(v),
		Expected:    ">= 0",
	})
}

// actual keeps NaN and Inf out of JSON-encoded reports.
func actual(v float64) any {
	if isFinite(v) {
		return v
	}
	return fmt.Sprint(v)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
