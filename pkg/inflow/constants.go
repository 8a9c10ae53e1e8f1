package inflow

// Coefficients of the imperfect-pit scheme.
const (
	ActiveZoneFactor      = 4.0 / 3.0 // H0 = 4/3·s
	ImperfectRadiusFactor = 1.95      // R = 1.95·s·√(k·H0)
	ReducedRadiusFactor   = 0.25      // r0 = 0.25·η·(L+B)
	ImperfectFlowFactor   = 1.36      // Q = 1.36·k·(H0²−h0²)/lg((R+r0)/r0)
)

// Coefficients of the perfect-pit scheme.
const (
	SichardtFactor     = 3000.0 // R = 3000·s·√k
	MaxInfluenceRadius = 500.0  // m, validity limit of the Sichardt formula
)

// η(B/L) saturates at this ratio.
const (
	EtaSaturationRatio = 0.6
	EtaSaturationValue = 1.18
)

const (
	HoursPerDay  = 24.0
	SafetyFactor = 1.3
)
