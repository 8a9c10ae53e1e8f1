package inflow

import (
	"fmt"
	"math"

	"github.com/remeenemee/pos-vodootliv/pkg/project"
)

// calculatePerfect applies the confined large-well scheme for a pit that
// reaches the aquiclude at elevation za.
func calculatePerfect(in project.Input, za, s float64) (*Result, error) {
	g := in.Geometry
	k := in.Hydro.Filtration
	zw := math.Abs(in.Hydro.GroundwaterElevation())

	// The aquiclude must lie strictly below the groundwater table. H itself
	// keeps the |Zw| − Za form of the design method.
	if saturated := -zw - za; !(saturated > 0) {
		return nil, invalid(ReasonNonPositiveAquifer, "H", saturated,
			fmt.Sprintf("aquiclude at %.2f m is not below the groundwater table at %.2f m", za, -zw))
	}
	thickness := zw - za

	residual := thickness - s
	if !(residual > 0) {
		return nil, invalid(ReasonDrawdownExceedsAquifer, "s", s,
			fmt.Sprintf("aquifer thickness H = %.2f m", thickness))
	}

	rawRadius := SichardtFactor * s * math.Sqrt(k)
	radius := math.Min(rawRadius, MaxInfluenceRadius)
	capped := rawRadius > MaxInfluenceRadius

	area := g.Length * g.Width
	r0 := math.Sqrt(area / math.Pi)
	if !(radius > r0) {
		return nil, invalid(ReasonDegenerateRadius, "R", radius,
			fmt.Sprintf("influence radius must exceed r0 = %.2f m", r0))
	}

	// H² − h² factored as s·(2H − s).
	q := math.Pi * k * s * (2*thickness - s) / math.Log(radius/r0)
	if err := checkFlow(q); err != nil {
		return nil, err
	}

	radiusStep := Step{
		Label:   "Influence radius",
		Symbol:  "R",
		Formula: "3000 × {s} × √{k}",
		Values:  []Value{val("s", s), val("k", k), val("R_raw", rawRadius)},
		Result:  radius,
		Unit:    "m",
	}
	if capped {
		radiusStep.Limited = true
		radiusStep.Raw = rawRadius
		radiusStep.Note = "R is limited to {R_max} m"
		radiusStep.Values = append(radiusStep.Values, val("R_max", MaxInfluenceRadius))
	}

	return &Result{
		Perfect: &PerfectDetail{
			AquiferThickness:   thickness,
			ResidualThickness:  residual,
			RawInfluenceRadius: rawRadius,
			InfluenceRadius:    radius,
			Capped:             capped,
			Area:               area,
			ReducedRadius:      r0,
		},
		Flow: q,
		Steps: []Step{
			{
				Label:   "Aquifer thickness",
				Symbol:  "H",
				Formula: "{Zw} – ({Za})",
				Values:  []Value{val("Zw", zw), val("Za", za)},
				Result:  thickness,
				Unit:    "m",
			},
			{
				Label:   "Aquifer thickness after drawdown",
				Symbol:  "h",
				Formula: "{H} – {s}",
				Values:  []Value{val("H", thickness), val("s", s)},
				Result:  residual,
				Unit:    "m",
			},
			radiusStep,
			{
				Label:   "Pit footprint area",
				Symbol:  "A",
				Formula: "{L} × {B}",
				Values:  []Value{val("L", g.Length), val("B", g.Width)},
				Result:  area,
				Unit:    "m²",
			},
			{
				Label:   "Reduced pit radius",
				Symbol:  "r₀",
				Formula: "√({A} / π)",
				Values:  []Value{val("A", area)},
				Result:  r0,
				Unit:    "m",
			},
			{
				Label:   "Inflow",
				Symbol:  "Q",
				Formula: "π × {k} × ({H}² – {h}²) / ln({R} / {r0})",
				Values:  []Value{val("k", k), val("H", thickness), val("h", residual), val("R", radius), val("r0", r0)},
				Result:  q,
				Unit:    "m³/day",
			},
		},
	}, nil
}
