package export

import (
	"os"
	"path/filepath"
	"testing"

	"plateinspect/internal/model"
	"plateinspect/internal/sector"
)

func TestCollectLabelInfos(t *testing.T) {
	rep := buildTestReport()
	labels := CollectLabelInfos(rep)

	if len(labels) != 4 {
		t.Fatalf("expected 4 sector labels, got %d", len(labels))
	}

	totalHoles := 0
	for _, l := range labels {
		if l.Plate != "Tube Sheet A" {
			t.Errorf("unexpected plate name %q", l.Plate)
		}
		if l.Holes == 0 {
			t.Errorf("sector %s label has zero holes", l.Sector)
		}
		totalHoles += l.Holes
	}
	if totalHoles != len(rep.Holes) {
		t.Errorf("label hole counts sum to %d, want %d", totalHoles, len(rep.Holes))
	}
}

func TestCollectLabelInfos_SkipsEmptySectors(t *testing.T) {
	// A single hole sits exactly on the bounding-box center and lands in
	// sector I; the other three sectors stay empty.
	holes := model.Snapshot{model.NewHole(5, 5, 1)}
	rep := Report{
		Plate: model.Plate{Name: "P"},
		Holes: holes,
		Index: sector.BuildIndex(holes, sector.Center(holes)),
	}

	labels := CollectLabelInfos(rep)
	if len(labels) != 1 {
		t.Fatalf("expected 1 label for a single-hole plate, got %d", len(labels))
	}
}

func TestCollectLabelInfos_NilIndex(t *testing.T) {
	if labels := CollectLabelInfos(Report{}); labels != nil {
		t.Errorf("expected nil labels for empty report, got %v", labels)
	}
}

func TestExportLabels_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.pdf")

	err := ExportLabels(path, buildTestReport())
	if err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("label PDF was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("label PDF is empty")
	}
}

func TestExportLabels_EmptyReport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.pdf")

	if err := ExportLabels(path, Report{}); err == nil {
		t.Fatal("expected error for empty report, got nil")
	}
}
