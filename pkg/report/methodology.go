package report

// Methodology returns the calculation method as Markdown.
func Methodology() string {
	return methodology
}

const methodology = `# Calculation method

Elevations are measured from the ground surface (0.00 m), negative downward.
With the default inputs the groundwater table lies at −1.10 m and the pit
bottom at −2.25 m.

## Drawdown

s = pit depth + reserve below the bottom − groundwater depth

## Imperfect pit (bottom above the aquiclude)

1. H₀ = 4/3 × s (active zone height)
2. R = 1.95 × s × √(k × H₀) (influence radius)
3. r₀ = 0.25 × η × (L + B), where η depends on B/L:
   0.0 → 1.00, 0.2 → 1.12, 0.4 → 1.16, 0.6 and above → 1.18,
   linear in between
4. h₀ = H₀ − s
5. Q = 1.36 × k × (H₀² − h₀²) / (lg(R + r₀) − lg r₀)

## Perfect pit (bottom reaches the aquiclude)

1. H = |groundwater elevation| − aquiclude elevation
2. h = H − s
3. R = 3000 × s × √k, not more than 500 m (Sichardt)
4. r₀ = √(A / π), A = L × B
5. Q = π × k × (H² − h²) / ln(R / r₀)

## Pump selection

Qh = Q / 24 and the reserved flow is Qh × 1.3. Below 6 m³/h a portable
drainage pump is enough; otherwise a more powerful pump or several units
are needed.
`
