package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX renders the report as a workbook with one sheet per section.
// The layout mirrors the markdown rendering so either artifact can be handed
// to a reviewer.
func (r *Report) WriteXLSX(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const issuesSheet = "Issues"
	// The default sheet is renamed rather than deleted so the workbook always
	// opens on the counters.
	if err := f.SetSheetName("Sheet1", issuesSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	setRow := func(sheet string, row int, values []any) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		return f.SetSheetRow(sheet, cell, &values)
	}

	if err := setRow(issuesSheet, 1, []any{"issue", "count"}); err != nil {
		return fmt.Errorf("write issues header: %w", err)
	}
	for i, k := range r.Issues.Keys() {
		if err := setRow(issuesSheet, i+2, []any{k, r.Issues.Count(k)}); err != nil {
			return fmt.Errorf("write issue row: %w", err)
		}
	}

	numSheet := "Numeric"
	if _, err := f.NewSheet(numSheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", numSheet, err)
	}
	if err := setRow(numSheet, 1, []any{"column", "count", "missing", "min", "mean", "median", "max"}); err != nil {
		return fmt.Errorf("write numeric header: %w", err)
	}
	for i, c := range r.Numeric {
		row := []any{c.Name, c.Count, c.Missing, c.Min, c.Mean, c.Median, c.Max}
		if err := setRow(numSheet, i+2, row); err != nil {
			return fmt.Errorf("write numeric row: %w", err)
		}
	}

	catSheet := "Categorical"
	if _, err := f.NewSheet(catSheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", catSheet, err)
	}
	if err := setRow(catSheet, 1, []any{"column", "count", "missing", "cardinality", "top", "top_count"}); err != nil {
		return fmt.Errorf("write categorical header: %w", err)
	}
	for i, c := range r.Categorical {
		row := []any{c.Name, c.Count, c.Missing, c.Cardinality, c.Top, c.TopCount}
		if err := setRow(catSheet, i+2, row); err != nil {
			return fmt.Errorf("write categorical row: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report workbook: %w", err)
	}
	return nil
}
