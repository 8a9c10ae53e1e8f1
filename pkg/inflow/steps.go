package inflow

// Value is one quantity substituted into a step formula.
type Value struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Step is one line of the calculation narration. Formula and Note are
// templates whose {Name} placeholders refer to Values; the report layer
// substitutes them with two-decimal numbers. When Limited is set the
// formula evaluates to Raw and Result is the value adopted instead.
type Step struct {
	Label   string  `json:"label"`
	Symbol  string  `json:"symbol"`
	Formula string  `json:"formula"`
	Values  []Value `json:"values"`
	Result  float64 `json:"result"`
	Unit    string  `json:"unit"`
	Note    string  `json:"note,omitempty"`
	Limited bool    `json:"limited,omitempty"`
	Raw     float64 `json:"raw,omitempty"`
}

// Lookup returns the value substituted for name.
func (s Step) Lookup(name string) (float64, bool) {
	for _, v := range s.Values {
		if v.Name == name {
			return v.Value, true
		}
	}
	return 0, false
}

func val(name string, v float64) Value {
	return Value{Name: name, Value: v}
}

func drawdownStep(depth, reserve, gwDepth, s float64) Step {
	return Step{
		Label:   "Drawdown depth",
		Symbol:  "s",
		Formula: "{D} + {Rsv} – {Zw}",
		Values:  []Value{val("D", depth), val("Rsv", reserve), val("Zw", gwDepth)},
		Result:  s,
		Unit:    "m",
	}
}

func hourlyFlowStep(q, qh float64) Step {
	return Step{
		Label:   "Hourly inflow",
		Symbol:  "Qh",
		Formula: "{Q} / 24",
		Values:  []Value{val("Q", q)},
		Result:  qh,
		Unit:    "m³/h",
	}
}
