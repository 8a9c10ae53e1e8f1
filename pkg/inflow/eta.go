package inflow

// etaPoint is a control point of the η(B/L) table.
type etaPoint struct {
	ratio, eta float64
}

var etaTable = []etaPoint{
	{0.0, 1.00},
	{0.2, 1.12},
	{0.4, 1.16},
	{EtaSaturationRatio, EtaSaturationValue},
}

// Eta returns the shape coefficient η for the plan ratio B/L by linear
// interpolation over the table, clamped to the end values outside it.
func Eta(ratio float64) float64 {
	if ratio <= etaTable[0].ratio {
		return etaTable[0].eta
	}
	if ratio >= EtaSaturationRatio {
		return EtaSaturationValue
	}
	for i := 1; i < len(etaTable); i++ {
		hi := etaTable[i]
		if ratio > hi.ratio {
			continue
		}
		lo := etaTable[i-1]
		t := (ratio - lo.ratio) / (hi.ratio - lo.ratio)
		return lo.eta + t*(hi.eta-lo.eta)
	}
	return EtaSaturationValue
}

// EtaClamped reports whether ratio lies outside the η table.
func EtaClamped(ratio float64) bool {
	return ratio < etaTable[0].ratio || ratio > EtaSaturationRatio
}
