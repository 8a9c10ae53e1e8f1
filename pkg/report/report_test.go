package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/remeenemee/pos-vodootliv/pkg/inflow"
	"github.com/remeenemee/pos-vodootliv/pkg/project"
	"github.com/xuri/excelize/v2"
)

func buildDefault(t *testing.T, in project.Input) *Document {
	t.Helper()
	res, err := inflow.Calculate(in)
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	return Build(in, res, Options{ID: "test-id"})
}

func highFlowInput() project.Input {
	in := project.Default()
	in.Hydro.Filtration = 20
	return in
}

func TestNum(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{2.15, "2.15"},
		{1.18, "1.18"},
		{500, "500.00"},
		{0.716666, "0.72"},
		{-5, "-5.00"},
	}
	for _, tt := range tests {
		if got := Num(tt.v); got != tt.want {
			t.Errorf("Num(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestExpand(t *testing.T) {
	values := []inflow.Value{{Name: "R", Value: 500}, {Name: "R_raw", Value: 9121.677}, {Name: "r0", Value: 14.1297}}
	got := Expand("ln({R} / {r0}), raw {R_raw}, {missing}", values)
	want := "ln(500.00 / 14.13), raw 9121.68, {missing}"
	if got != want {
		t.Errorf("Expand = %q, want %q", got, want)
	}
}

func TestFormatStepsImperfect(t *testing.T) {
	doc := buildDefault(t, project.Default())

	want := []string{
		"Drawdown depth s = 2.25 + 1.00 – 1.10 = 2.15 m",
		"Active zone height H₀ = 4/3 × 2.15 = 2.87 m",
		"Influence radius R = 1.95 × 2.15 × √(2.00 × 2.87) = 10.04 m",
		"Reduced pit radius r₀ = 0.25 × 1.18 × (21.48 + 29.20) = 14.95 m (η = 1.18 for B/L = 1.36)",
		"Residual level in the active zone h₀ = 2.87 – 2.15 = 0.72 m",
		"Inflow Q = 1.36 × 2.00 × (2.87² – 0.72²) / (lg(10.04 + 14.95) – lg(14.95)) = 93.93 m³/day",
		"Hourly inflow Qh = 93.93 / 24 = 3.91 m³/h",
	}
	if len(doc.Steps) != len(want) {
		t.Fatalf("got %d steps, want %d: %v", len(doc.Steps), len(want), doc.Steps)
	}
	for i := range want {
		if doc.Steps[i] != want[i] {
			t.Errorf("step %d:\n got %q\nwant %q", i+1, doc.Steps[i], want[i])
		}
	}

	if doc.FlowStatement != "Inflow into the pit Q = 93.93 m³/day, or about 3.91 m³/h." {
		t.Errorf("flow statement = %q", doc.FlowStatement)
	}
	if doc.MarginStatement != "With the safety factor: 3.91 × 1.3 = 5.09 m³/h." {
		t.Errorf("margin statement = %q", doc.MarginStatement)
	}
	if doc.PumpStatement != "" {
		t.Errorf("portable pump should not produce a capacity statement, got %q", doc.PumpStatement)
	}
	if doc.StepsHeading != "2. Imperfect pit" {
		t.Errorf("steps heading = %q", doc.StepsHeading)
	}
}

func TestFormatStepsPerfectCapped(t *testing.T) {
	in := project.Default()
	in.Pit = project.PerfectPit(-5)
	doc := buildDefault(t, in)

	wantR := "Influence radius R = 3000 × 2.15 × √2.00 = 9121.68 m → adopted 500.00 m (R is limited to 500.00 m)"
	if doc.Steps[3] != wantR {
		t.Errorf("R step:\n got %q\nwant %q", doc.Steps[3], wantR)
	}
	wantH := "Aquifer thickness H = 1.10 – (-5.00) = 6.10 m"
	if doc.Steps[1] != wantH {
		t.Errorf("H step:\n got %q\nwant %q", doc.Steps[1], wantH)
	}
	last := doc.Pit[len(doc.Pit)-1]
	if !strings.Contains(last, "perfect") || !strings.Contains(last, "-5.00") {
		t.Errorf("pit type line = %q", last)
	}
}

func TestPumpStatementHighCapacity(t *testing.T) {
	doc := buildDefault(t, highFlowInput())
	if doc.PumpStatement == "" {
		t.Fatal("expected a pump capacity statement")
	}
	if !strings.Contains(doc.PumpStatement, "22.95") {
		t.Errorf("pump statement = %q, want reserved flow 22.95", doc.PumpStatement)
	}
}

func TestBuildSoilFallback(t *testing.T) {
	in := project.Default()
	in.Soil = ""
	res, err := inflow.Calculate(in)
	if err != nil {
		t.Fatal(err)
	}
	doc := Build(in, res, Options{Soil: "Fine sand"})
	if !strings.HasPrefix(doc.Pit[2], "Soil: Fine sand,") {
		t.Errorf("soil line = %q", doc.Pit[2])
	}
	if doc.Title != DefaultTitle {
		t.Errorf("title = %q, want %q", doc.Title, DefaultTitle)
	}
}

func TestWriteTextAndMarkdown(t *testing.T) {
	doc := buildDefault(t, highFlowInput())

	var text bytes.Buffer
	if err := WriteText(&text, doc); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	out := text.String()
	for _, want := range []string{DefaultTitle, "1. Pit", "  1. Drawdown depth s", doc.PumpStatement, "Recommendation:"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q", want)
		}
	}

	var md bytes.Buffer
	if err := WriteMarkdown(&md, doc); err != nil {
		t.Fatalf("WriteMarkdown: %v", err)
	}
	if !strings.HasPrefix(md.String(), "# "+DefaultTitle) {
		t.Errorf("markdown should start with the title heading, got %q", md.String()[:40])
	}
	if !strings.Contains(md.String(), "7. Hourly inflow") {
		t.Error("markdown missing numbered steps")
	}
}

func TestWriteJSON(t *testing.T) {
	doc := buildDefault(t, project.Default())
	var buf bytes.Buffer
	if err := Write(&buf, doc, FormatJSON); err != nil {
		t.Fatalf("Write json: %v", err)
	}
	var decoded Document
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if decoded.ID != "test-id" || len(decoded.Steps) != len(doc.Steps) {
		t.Errorf("decoded document differs: id=%q steps=%d", decoded.ID, len(decoded.Steps))
	}
}

func TestWriteXLSX(t *testing.T) {
	doc := buildDefault(t, highFlowInput())

	var buf bytes.Buffer
	if err := Write(&buf, doc, FormatXLSX); err != nil {
		t.Fatalf("Write xlsx: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopening workbook: %v", err)
	}
	defer f.Close()

	title, err := f.GetCellValue(SheetReport, "A1")
	if err != nil || title != DefaultTitle {
		t.Errorf("A1 = %q (%v), want %q", title, err, DefaultTitle)
	}

	rows, err := f.GetRows(SheetReport)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	var steps, pumpRows int
	for _, r := range rows {
		if len(r) >= 2 && r[0] != "" && strings.Contains(r[1], " = ") {
			steps++
		}
		if len(r) >= 2 && r[1] == doc.PumpStatement {
			pumpRows++
		}
	}
	if steps != len(doc.Steps) {
		t.Errorf("found %d step rows, want %d", steps, len(doc.Steps))
	}
	if pumpRows != 1 {
		t.Errorf("found %d pump statement rows, want 1", pumpRows)
	}

	data, err := f.GetRows(SheetData)
	if err != nil {
		t.Fatalf("GetRows data: %v", err)
	}
	if len(data) != len(doc.Data)+1 {
		t.Errorf("data rows = %d, want %d", len(data), len(doc.Data)+1)
	}

	props, err := f.GetDocProps()
	if err != nil {
		t.Fatalf("GetDocProps: %v", err)
	}
	if props.Identifier != "test-id" {
		t.Errorf("identifier = %q, want test-id", props.Identifier)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatText},
		{"TXT", FormatText},
		{"markdown", FormatMarkdown},
		{"json", FormatJSON},
		{"excel", FormatXLSX},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseFormat("docx"); err == nil {
		t.Error("expected error for unsupported format")
	}
	if FormatText.Extension() != "txt" || FormatXLSX.Extension() != "xlsx" {
		t.Error("unexpected extensions")
	}
}

func TestMethodology(t *testing.T) {
	m := Methodology()
	for _, want := range []string{"Imperfect pit", "Perfect pit", "500 m", "1.3"} {
		if !strings.Contains(m, want) {
			t.Errorf("methodology missing %q", want)
		}
	}
}
