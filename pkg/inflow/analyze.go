package inflow

import (
	"errors"
	"fmt"

	"github.com/remeenemee/pos-vodootliv/pkg/project"
	"github.com/remeenemee/pos-vodootliv/pkg/validation"
)

// Analyze runs the calculation and reports analytical findings: the
// rejection reason when the calculation fails, and non-fatal notes about
// the applicability of the chosen scheme when it succeeds. The result is
// nil when the report is invalid.
func Analyze(in project.Input) (*Result, *validation.Report) {
	report := validation.NewReport()

	res, err := Calculate(in)
	if err != nil {
		addCalculationError(report, err)
		return nil, report
	}

	checkPitReach(in, report)
	switch {
	case res.Imperfect != nil:
		checkEtaRange(res.Imperfect, report)
	case res.Perfect != nil:
		checkRadiusCap(res.Perfect, report)
	}

	return res, report
}

// Evaluate runs schema validation, which reports every bad field at once,
// and continues with Analyze only when the schema is valid.
func Evaluate(in project.Input) (*Result, *validation.Report) {
	report := validation.ValidateSchema(&in)
	if !report.Valid {
		return nil, report
	}
	res, analytical := Analyze(in)
	report.Merge(analytical)
	return res, report
}

func addCalculationError(report *validation.Report, err error) {
	var iie *InvalidInputError
	if !errors.As(err, &iie) {
		report.AddError(validation.Result{Level: validation.LevelAnalytical, Message: err.Error()})
		return
	}

	result := validation.Result{
		Level:   validation.LevelAnalytical,
		Message: iie.Error(),
		Field:   iie.Field,
	}
	if iie.Reason == ReasonInvalidParameter {
		result.Level = validation.LevelSchema
	}
	switch iie.Reason {
	case ReasonNonPositiveDrawdown:
		result.Expected = "D + Rsv − Zw > 0"
		result.Suggestions = []string{"Increase the drawdown reserve or check the groundwater depth"}
	case ReasonNonPositiveAquifer:
		result.Field = validation.FieldAquicludeElevation
		result.Expected = "aquiclude below the groundwater table"
	case ReasonDrawdownExceedsAquifer:
		result.Expected = "s < H"
		result.Suggestions = []string{"Check the aquiclude elevation; a drawdown this deep dewaters the whole layer"}
	case ReasonFlowOutOfRange:
		result.Expected = "finite Q > 0"
		result.Suggestions = []string{"Check the units of the pit dimensions and elevations"}
	case ReasonDegenerateRadius:
		result.Expected = "R > r₀"
		result.Suggestions = []string{"Check the filtration coefficient and pit dimensions"}
	}
	report.AddError(result)
}

// checkPitReach compares the pit bottom with the aquiclude, when one is
// known, against the selected pit type.
func checkPitReach(in project.Input, report *validation.Report) {
	za, ok := in.Pit.Aquiclude()
	bottom := in.Geometry.BottomElevation()

	switch in.Pit.Kind {
	case project.Imperfect:
		if ok {
			report.AddWarning(validation.Result{
				Level:       validation.LevelAnalytical,
				Message:     "aquiclude elevation is ignored for an imperfect pit",
				Field:       validation.FieldAquicludeElevation,
				ActualValue: za,
			})
			if bottom <= za {
				report.AddWarning(validation.Result{
					Level:       validation.LevelAnalytical,
					Message:     fmt.Sprintf("pit bottom at %.2f m reaches the aquiclude at %.2f m", bottom, za),
					Field:       validation.FieldPitType,
					ActualValue: string(in.Pit.Kind),
					Suggestions: []string{"Consider the perfect pit scheme"},
				})
			}
		}
	case project.Perfect:
		if bottom > za {
			report.AddWarning(validation.Result{
				Level:       validation.LevelAnalytical,
				Message:     fmt.Sprintf("pit bottom at %.2f m does not reach the aquiclude at %.2f m", bottom, za),
				Field:       validation.FieldPitType,
				ActualValue: string(in.Pit.Kind),
				Suggestions: []string{"Consider the imperfect pit scheme"},
			})
		}
	}
}

func checkEtaRange(d *ImperfectDetail, report *validation.Report) {
	if !EtaClamped(d.Ratio) {
		return
	}
	report.AddInfo(validation.Result{
		Level:       validation.LevelAnalytical,
		Message:     fmt.Sprintf("B/L = %.2f lies outside the η table; η = %.2f", d.Ratio, d.Eta),
		ActualValue: d.Ratio,
	})
}

func checkRadiusCap(d *PerfectDetail, report *validation.Report) {
	if !d.Capped {
		return
	}
	msg := fmt.Sprintf("influence radius %.2f m exceeds the %.0f m limit and was capped",
		d.RawInfluenceRadius, MaxInfluenceRadius)
	report.AddInfo(validation.Result{
		Level:       validation.LevelAnalytical,
		Message:     msg,
		ActualValue: d.RawInfluenceRadius,
		Expected:    fmt.Sprintf("<= %.0f m", MaxInfluenceRadius),
	})
}
