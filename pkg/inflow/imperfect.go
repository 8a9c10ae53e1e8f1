package inflow

import (
	"math"

	"github.com/remeenemee/pos-vodootliv/pkg/project"
)

// calculateImperfect applies the active-zone scheme for a pit whose bottom
// stays above the aquiclude.
func calculateImperfect(in project.Input, s float64) (*Result, error) {
	g := in.Geometry
	k := in.Hydro.Filtration

	activeZone := ActiveZoneFactor * s
	radius := ImperfectRadiusFactor * s * math.Sqrt(k*activeZone)

	ratio := g.Width / g.Length
	eta := Eta(ratio)
	r0 := ReducedRadiusFactor * eta * (g.Length + g.Width)
	if !(r0 > 0) {
		return nil, invalid(ReasonDegenerateRadius, "r0", r0, "reduced radius must be positive")
	}

	// h0 > 0 follows from H0 = 4/3·s and s > 0.
	residual := activeZone - s

	denom := math.Log10(radius+r0) - math.Log10(r0)
	if !(denom > 0) {
		return nil, invalid(ReasonDegenerateRadius, "R", radius, "influence radius vanishes against r0")
	}
	// H0² − h0² factored as s·(H0 + h0) so large inputs cannot give Inf − Inf.
	q := ImperfectFlowFactor * k * s * (activeZone + residual) / denom
	if err := checkFlow(q); err != nil {
		return nil, err
	}

	return &Result{
		Imperfect: &ImperfectDetail{
			ActiveZone:      activeZone,
			InfluenceRadius: radius,
			Ratio:           ratio,
			Eta:             eta,
			ReducedRadius:   r0,
			ResidualLevel:   residual,
		},
		Flow: q,
		Steps: []Step{
			{
				Label:   "Active zone height",
				Symbol:  "H₀",
				Formula: "4/3 × {s}",
				Values:  []Value{val("s", s)},
				Result:  activeZone,
				Unit:    "m",
			},
			{
				Label:   "Influence radius",
				Symbol:  "R",
				Formula: "1.95 × {s} × √({k} × {H0})",
				Values:  []Value{val("s", s), val("k", k), val("H0", activeZone)},
				Result:  radius,
				Unit:    "m",
			},
			{
				Label:   "Reduced pit radius",
				Symbol:  "r₀",
				Formula: "0.25 × {eta} × ({L} + {B})",
				Values:  []Value{val("eta", eta), val("L", g.Length), val("B", g.Width), val("ratio", ratio)},
				Result:  r0,
				Unit:    "m",
				Note:    "η = {eta} for B/L = {ratio}",
			},
			{
				Label:   "Residual level in the active zone",
				Symbol:  "h₀",
				Formula: "{H0} – {s}",
				Values:  []Value{val("H0", activeZone), val("s", s)},
				Result:  residual,
				Unit:    "m",
			},
			{
				Label:   "Inflow",
				Symbol:  "Q",
				Formula: "1.36 × {k} × ({H0}² – {h0}²) / (lg({R} + {r0}) – lg({r0}))",
				Values:  []Value{val("k", k), val("H0", activeZone), val("h0", residual), val("R", radius), val("r0", r0)},
				Result:  q,
				Unit:    "m³/day",
			},
		},
	}, nil
}
