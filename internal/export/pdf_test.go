package export

import (
	"os"
	"path/filepath"
	"testing"

	"plateinspect/internal/model"
	"plateinspect/internal/sector"
)

// buildTestReport creates a realistic inspection report for testing:
// a symmetric hole pattern with a mix of statuses across all four sectors.
func buildTestReport() Report {
	var holes model.Snapshot
	signs := [][2]float64{{1, 1}, {-1, 1}, {-1, -1}, {1, -1}}
	statuses := []model.HoleStatus{
		model.StatusQualified, model.StatusDefective,
		model.StatusPending, model.StatusBlind, model.StatusTieRod,
	}
	n := 0
	for _, s := range signs {
		for i := 0; i < 5; i++ {
			h := model.NewHole(s[0]*float64(20+i*15), s[1]*float64(30+i*10), 8.8)
			h.Status = statuses[n%len(statuses)]
			n++
			holes = append(holes, h)
		}
	}

	center := sector.Center(holes)
	return Report{
		Plate: model.Plate{Name: "Tube Sheet A", Width: 300, Height: 250},
		Holes: holes,
		Index: sector.BuildIndex(holes, center),
	}
}

func TestExportPDF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.pdf")

	err := ExportPDF(path, buildTestReport())
	if err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
	// A valid PDF with 2 pages (plate map + summary) should be a reasonable size
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportPDF_EmptyReport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.pdf")

	err := ExportPDF(path, Report{})
	if err == nil {
		t.Fatal("expected error for empty report, got nil")
	}
}

func TestExportPDF_AllPending(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pending.pdf")

	rep := buildTestReport()
	for _, h := range rep.Holes {
		h.Status = model.StatusPending
	}

	if err := ExportPDF(path, rep); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
}

func TestExportPDF_SingleHole(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "single.pdf")

	holes := model.Snapshot{model.NewHole(10, 10, 8.8)}
	rep := Report{
		Plate: model.Plate{Name: "Tiny", Width: 40, Height: 40},
		Holes: holes,
		Index: sector.BuildIndex(holes, sector.Center(holes)),
	}

	if err := ExportPDF(path, rep); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
}

func TestOverallStats(t *testing.T) {
	rep := buildTestReport()
	overall := overallStats(sector.AggregateAll(rep.Index))

	if overall.Total != len(rep.Holes) {
		t.Errorf("overall total %d, want %d", overall.Total, len(rep.Holes))
	}
	want := overall.Pending + overall.Processing + overall.Qualified +
		overall.Defective + overall.Blind + overall.TieRod
	if overall.Total != want {
		t.Errorf("status counts %d do not sum to total %d", want, overall.Total)
	}
}
