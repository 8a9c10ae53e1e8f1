package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Format names an output encoding of a Document.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "md"
	FormatJSON     Format = "json"
	FormatXLSX     Format = "xlsx"
)

// ParseFormat accepts the format names and a few common aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unknown report format %q (want text, md, json or xlsx)", s)
}

// Extension returns the file extension for f, without the dot.
func (f Format) Extension() string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/plain; charset=utf-8"
}

// Write renders d to w in format f.
func Write(w io.Writer, d *Document, f Format) error {
	switch f {
	case FormatText:
		return WriteText(w, d)
	case FormatMarkdown:
		return WriteMarkdown(w, d)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case FormatXLSX:
		return WriteXLSX(w, d)
	}
	return fmt.Errorf("unknown report format %q", f)
}

// WriteText renders d as plain text.
func WriteText(w io.Writer, d *Document) error {
	ew := &errWriter{w: w}

	ew.printf("%s\n%s\n\n", d.Title, strings.Repeat("=", len([]rune(d.Title))))

	ew.printf("%s\n", d.PitHeading)
	for _, line := range d.Pit {
		ew.printf("  %s\n", line)
	}
	ew.printf("\n%s\n", d.StepsHeading)
	for i, step := range d.Steps {
		ew.printf("  %d. %s\n", i+1, step)
	}

	ew.printf("\n%s\n%s\n", d.FlowStatement, d.MarginStatement)
	if d.PumpStatement != "" {
		ew.printf("%s\n", d.PumpStatement)
	}
	ew.printf("Recommendation: %s\n", d.Recommendation)
	return ew.err
}

// WriteMarkdown renders d as a Markdown document.
func WriteMarkdown(w io.Writer, d *Document) error {
	ew := &errWriter{w: w}

	ew.printf("# %s\n\n", d.Title)

	ew.printf("## %s\n\n", d.PitHeading)
	for _, line := range d.Pit {
		ew.printf("- %s\n", line)
	}
	ew.printf("\n## %s\n\n", d.StepsHeading)
	for i, step := range d.Steps {
		ew.printf("%d. %s\n", i+1, step)
	}

	ew.printf("\n%s\n\n%s\n\n", d.FlowStatement, d.MarginStatement)
	if d.PumpStatement != "" {
		ew.printf("**%s**\n\n", d.PumpStatement)
	}
	ew.printf("_Recommendation:_ %s\n", d.Recommendation)
	return ew.err
}

// errWriter keeps the first write error and skips later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
