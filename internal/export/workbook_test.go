package export

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"plateinspect/internal/sector"
)

func TestExportWorkbook_CreatesSheets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.xlsx")
	rep := buildTestReport()

	if err := ExportWorkbook(path, rep); err != nil {
		t.Fatalf("ExportWorkbook returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot reopen workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 5 {
		t.Fatalf("expected 5 sheets (summary + 4 sectors), got %d: %v", len(sheets), sheets)
	}
	if sheets[0] != "Summary" {
		t.Errorf("expected first sheet Summary, got %q", sheets[0])
	}

	// Each sector sheet carries a header row plus one row per hole.
	for _, q := range sector.Quadrants {
		rows, err := f.GetRows(q.String())
		if err != nil {
			t.Fatalf("cannot read sheet %s: %v", q, err)
		}
		want := rep.Index.Count(q) + 1
		if len(rows) != want {
			t.Errorf("sheet %s has %d rows, want %d", q, len(rows), want)
		}
	}
}

func TestExportWorkbook_SummaryContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.xlsx")
	rep := buildTestReport()

	if err := ExportWorkbook(path, rep); err != nil {
		t.Fatalf("ExportWorkbook returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot reopen workbook: %v", err)
	}
	defer f.Close()

	name, err := f.GetCellValue("Summary", "B1")
	if err != nil {
		t.Fatalf("cannot read summary cell: %v", err)
	}
	if name != "Tube Sheet A" {
		t.Errorf("expected plate name in B1, got %q", name)
	}
}

func TestExportWorkbook_EmptyReport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.xlsx")

	if err := ExportWorkbook(path, Report{}); err == nil {
		t.Fatal("expected error for empty report, got nil")
	}
}
