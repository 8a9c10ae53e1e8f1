package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Workbook sheet names.
const (
	SheetReport = "Report"
	SheetData   = "Data"
)

// WriteXLSX renders d as an XLSX workbook.
func WriteXLSX(w io.Writer, d *Document) error {
	f, err := NewWorkbook(d)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// NewWorkbook builds the report workbook: the narrative on the Report sheet
// and the numeric results on the Data sheet. The caller closes the file.
func NewWorkbook(d *Document) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := fillWorkbook(f, d); err != nil {
		_ = f.Close()
		return nil, err
	}
	f.SetActiveSheet(0)
	return f, nil
}

func fillWorkbook(f *excelize.File, d *Document) error {
	if err := f.SetSheetName("Sheet1", SheetReport); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetData); err != nil {
		return fmt.Errorf("creating %s sheet: %w", SheetData, err)
	}

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:      d.Title,
		Identifier: d.ID,
		Creator:    "pitinflow",
	}); err != nil {
		return fmt.Errorf("setting document properties: %w", err)
	}

	if err := fillReportSheet(f, d); err != nil {
		return fmt.Errorf("writing %s sheet: %w", SheetReport, err)
	}
	if err := fillDataSheet(f, d); err != nil {
		return fmt.Errorf("writing %s sheet: %w", SheetData, err)
	}
	return nil
}

func fillReportSheet(f *excelize.File, d *Document) error {
	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return err
	}
	headingStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetColWidth(SheetReport, "A", "A", 6); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetReport, "B", "B", 110); err != nil {
		return err
	}

	row := 1
	put := func(col, text string, style int) error {
		cell := fmt.Sprintf("%s%d", col, row)
		if err := f.SetCellValue(SheetReport, cell, text); err != nil {
			return err
		}
		if style != 0 {
			return f.SetCellStyle(SheetReport, cell, cell, style)
		}
		return nil
	}

	if err := put("A", d.Title, titleStyle); err != nil {
		return err
	}
	row += 2

	if err := put("A", d.PitHeading, headingStyle); err != nil {
		return err
	}
	row++
	for _, line := range d.Pit {
		if err := put("B", line, 0); err != nil {
			return err
		}
		row++
	}
	row++

	if err := put("A", d.StepsHeading, headingStyle); err != nil {
		return err
	}
	row++
	for i, step := range d.Steps {
		if err := f.SetCellValue(SheetReport, fmt.Sprintf("A%d", row), i+1); err != nil {
			return err
		}
		if err := put("B", step, 0); err != nil {
			return err
		}
		row++
	}
	row++

	for _, line := range []string{d.FlowStatement, d.MarginStatement, d.PumpStatement, "Recommendation: " + d.Recommendation} {
		if line == "" {
			continue
		}
		if err := put("B", line, 0); err != nil {
			return err
		}
		row++
	}
	return nil
}

func fillDataSheet(f *excelize.File, d *Document) error {
	header := []any{"Quantity", "Symbol", "Value", "Unit"}
	if err := f.SetSheetRow(SheetData, "A1", &header); err != nil {
		return err
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetData, "A1", "D1", boldStyle); err != nil {
		return err
	}
	valueStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return err
	}

	for i, field := range d.Data {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{field.Name, field.Symbol, field.Value, field.Unit}
		if err := f.SetSheetRow(SheetData, cell, &row); err != nil {
			return err
		}
	}
	if len(d.Data) > 0 {
		if err := f.SetCellStyle(SheetData, "C2", fmt.Sprintf("C%d", len(d.Data)+1), valueStyle); err != nil {
			return err
		}
	}
	return f.SetColWidth(SheetData, "A", "A", 30)
}
