// Package report turns an inflow result into a calculation report and
// renders it as plain text, Markdown, JSON or an XLSX workbook.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/remeenemee/pos-vodootliv/pkg/inflow"
	"github.com/remeenemee/pos-vodootliv/pkg/project"
	"github.com/remeenemee/pos-vodootliv/pkg/pump"
)

// DefaultTitle heads every report unless Options.Title overrides it.
const DefaultTitle = "Groundwater inflow calculation"

// Options controls report content that is not part of the calculation.
type Options struct {
	ID    string // optional identifier written into workbook properties
	Title string
	Soil  string // used when the input carries no soil description
}

// Document is a renderer-agnostic calculation report.
type Document struct {
	ID    string `json:"id,omitempty"`
	Title string `json:"title"`

	PitHeading string   `json:"pit_heading"`
	Pit        []string `json:"pit"`

	StepsHeading string   `json:"steps_heading"`
	Steps        []string `json:"steps"`

	FlowStatement   string `json:"flow_statement"`
	MarginStatement string `json:"margin_statement"`
	PumpStatement   string `json:"pump_statement,omitempty"`
	Recommendation  string `json:"recommendation"`

	Data []Field `json:"data"`
}

// Field is one named numeric result for tabular output.
type Field struct {
	Name   string  `json:"name"`
	Symbol string  `json:"symbol"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit"`
}

// Build assembles the report for a successful calculation.
func Build(in project.Input, res *inflow.Result, opts Options) *Document {
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}
	soil := in.Soil
	if soil == "" {
		soil = opts.Soil
	}
	if soil == "" {
		soil = project.DefaultSoil
	}

	flow := fmt.Sprintf("Inflow into the pit Q = %s m³/day, or about %s m³/h.",
		Num(res.Flow), Num(res.HourlyFlow))
	margin := fmt.Sprintf("With the safety factor: %s × %s = %s m³/h.",
		Num(res.HourlyFlow), strconv.FormatFloat(inflow.SafetyFactor, 'f', -1, 64), Num(res.ReservedFlow))

	doc := &Document{
		ID:              opts.ID,
		Title:           title,
		PitHeading:      "1. Pit",
		Pit:             pitLines(in, soil),
		StepsHeading:    "2. " + kindTitle(res.Kind) + " pit",
		Steps:           make([]string, 0, len(res.Steps)),
		FlowStatement:   flow,
		MarginStatement: margin,
		Recommendation:  res.Pump.Description(),
		Data:            dataFields(res),
	}
	for _, s := range res.Steps {
		doc.Steps = append(doc.Steps, FormatStep(s))
	}
	if res.Pump.RequiresCapacityStatement() {
		doc.PumpStatement = pump.CapacityStatement(res.ReservedFlow)
	}
	return doc
}

func pitLines(in project.Input, soil string) []string {
	g, h := in.Geometry, in.Hydro
	lines := []string{
		fmt.Sprintf("Dimensions: %s m × %s m", Num(g.Length), Num(g.Width)),
		fmt.Sprintf("Depth: %s m", Num(g.Depth)),
		fmt.Sprintf("Soil: %s, groundwater lies %s m below the surface", soil, Num(h.GroundwaterDepth)),
		fmt.Sprintf("Filtration coefficient k = %s m/day", Num(h.Filtration)),
		fmt.Sprintf("The lowered groundwater level is kept %s m below the pit bottom", Num(h.Reserve)),
	}
	switch in.Pit.Kind {
	case project.Perfect:
		za, _ := in.Pit.Aquiclude()
		lines = append(lines, fmt.Sprintf("The pit is perfect: its bottom reaches the aquiclude (%s m)", Num(za)))
	default:
		lines = append(lines, "The pit is imperfect: its bottom does not reach the aquiclude")
	}
	return lines
}

func kindTitle(k project.PitKind) string {
	if k == project.Perfect {
		return "Perfect"
	}
	return "Imperfect"
}

func dataFields(res *inflow.Result) []Field {
	fields := []Field{{Name: "Drawdown depth", Symbol: "s", Value: res.Drawdown, Unit: "m"}}
	switch {
	case res.Imperfect != nil:
		d := res.Imperfect
		fields = append(fields,
			Field{Name: "Active zone height", Symbol: "H₀", Value: d.ActiveZone, Unit: "m"},
			Field{Name: "Influence radius", Symbol: "R", Value: d.InfluenceRadius, Unit: "m"},
			Field{Name: "Plan ratio", Symbol: "B/L", Value: d.Ratio},
			Field{Name: "Shape coefficient", Symbol: "η", Value: d.Eta},
			Field{Name: "Reduced pit radius", Symbol: "r₀", Value: d.ReducedRadius, Unit: "m"},
			Field{Name: "Residual level", Symbol: "h₀", Value: d.ResidualLevel, Unit: "m"},
		)
	case res.Perfect != nil:
		d := res.Perfect
		fields = append(fields,
			Field{Name: "Aquifer thickness", Symbol: "H", Value: d.AquiferThickness, Unit: "m"},
			Field{Name: "Thickness after drawdown", Symbol: "h", Value: d.ResidualThickness, Unit: "m"},
			Field{Name: "Computed influence radius", Symbol: "R_raw", Value: d.RawInfluenceRadius, Unit: "m"},
			Field{Name: "Influence radius", Symbol: "R", Value: d.InfluenceRadius, Unit: "m"},
			Field{Name: "Footprint area", Symbol: "A", Value: d.Area, Unit: "m²"},
			Field{Name: "Reduced pit radius", Symbol: "r₀", Value: d.ReducedRadius, Unit: "m"},
		)
	}
	return append(fields,
		Field{Name: "Inflow", Symbol: "Q", Value: res.Flow, Unit: "m³/day"},
		Field{Name: "Hourly inflow", Symbol: "Qh", Value: res.HourlyFlow, Unit: "m³/h"},
		Field{Name: "Reserved hourly inflow", Symbol: "Qr", Value: res.ReservedFlow, Unit: "m³/h"},
	)
}

// Num formats a physical quantity with exactly two decimals.
func Num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Expand substitutes every {name} placeholder in template with the matching
// value formatted by Num. Unknown placeholders are left as they are.
func Expand(template string, values []inflow.Value) string {
	if len(values) == 0 {
		return template
	}
	pairs := make([]string, 0, 2*len(values))
	for _, v := range values {
		pairs = append(pairs, "{"+v.Name+"}", Num(v.Value))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// FormatStep renders a step as "Label Symbol = formula = result unit",
// followed by its note when there is one. A limited step shows the value
// of the formula and then the adopted one: "= raw unit → adopted result unit".
func FormatStep(s inflow.Step) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s = %s = ", s.Label, s.Symbol, Expand(s.Formula, s.Values))
	if s.Limited {
		fmt.Fprintf(&b, "%s %s → adopted %s %s", Num(s.Raw), s.Unit, Num(s.Result), s.Unit)
	} else {
		fmt.Fprintf(&b, "%s %s", Num(s.Result), s.Unit)
	}
	if s.Note != "" {
		b.WriteString(" (")
		b.WriteString(Expand(s.Note, s.Values))
		b.WriteString(")")
	}
	return b.String()
}
