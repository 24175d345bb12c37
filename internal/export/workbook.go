package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"plateinspect/internal/sector"
)

// ExportWorkbook writes the inspection results to an Excel workbook:
// a Summary sheet with per-sector statistics, followed by one sheet per
// sector listing its holes in snapshot order.
func ExportWorkbook(path string, rep Report) error {
	if rep.Index == nil || rep.Index.Total() == 0 {
		return fmt.Errorf("no holes to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	summary := f.GetSheetName(0)
	if err := f.SetSheetName(summary, "Summary"); err != nil {
		return fmt.Errorf("failed to rename summary sheet: %w", err)
	}
	if err := writeSummarySheet(f, "Summary", rep); err != nil {
		return err
	}

	for _, q := range sector.Quadrants {
		name := q.String()
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", name, err)
		}
		if err := writeSectorSheet(f, name, q, rep); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, sheet string, rep Report) error {
	stats := sector.AggregateAll(rep.Index)
	overall := overallStats(stats)

	rows := [][]interface{}{
		{"Plate", rep.Plate.Name},
		{"Width (mm)", rep.Plate.Width},
		{"Height (mm)", rep.Plate.Height},
		{"Total holes", overall.Total},
		{"Inspected", overall.Inspected()},
		{"Progress (%)", overall.Progress()},
		{"Qualified rate (%)", overall.QualifiedRate()},
		{},
		{"Sector", "Holes", "Pending", "Processing", "Qualified", "Defective", "Blind", "Tie Rod", "Progress (%)"},
	}
	for i, q := range sector.Quadrants {
		st := stats[i]
		rows = append(rows, []interface{}{
			q.String(), st.Total, st.Pending, st.Processing,
			st.Qualified, st.Defective, st.Blind, st.TieRod, st.Progress(),
		})
	}

	return writeRows(f, sheet, rows)
}

func writeSectorSheet(f *excelize.File, sheet string, q sector.Quadrant, rep Report) error {
	rows := [][]interface{}{
		{"ID", "X (mm)", "Y (mm)", "Radius (mm)", "Status"},
	}
	for _, h := range rep.Index.Entities(q) {
		rows = append(rows, []interface{}{h.ID, h.X, h.Y, h.Radius, h.Status.String()})
	}

	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		for j, cell := range row {
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return fmt.Errorf("failed to build cell reference: %w", err)
			}
			if err := f.SetCellValue(sheet, ref, cell); err != nil {
				return fmt.Errorf("failed to write cell %s: %w", ref, err)
			}
		}
	}
	return nil
}
