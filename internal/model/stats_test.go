package model

import "testing"

func TestSectorStatsAdd(t *testing.T) {
	var st SectorStats
	for _, s := range []HoleStatus{
		StatusPending, StatusProcessing, StatusQualified,
		StatusQualified, StatusDefective, StatusBlind, StatusTieRod,
	} {
		st.Add(s)
	}

	if st.Total != 7 {
		t.Errorf("expected total 7, got %d", st.Total)
	}
	if st.Pending != 1 || st.Processing != 1 || st.Qualified != 2 ||
		st.Defective != 1 || st.Blind != 1 || st.TieRod != 1 {
		t.Errorf("unexpected counts: %+v", st)
	}
}

func TestSectorStatsInspected(t *testing.T) {
	st := SectorStats{Total: 10, Pending: 3, Processing: 2, Qualified: 3, Defective: 1, Blind: 1}
	if got := st.Inspected(); got != 5 {
		t.Errorf("expected 5 inspected, got %d", got)
	}
}

func TestSectorStatsProgress(t *testing.T) {
	st := SectorStats{Total: 4, Qualified: 1, Defective: 1, Pending: 2}
	if got := st.Progress(); got != 50.0 {
		t.Errorf("expected 50%%, got %v", got)
	}

	var empty SectorStats
	if got := empty.Progress(); got != 0 {
		t.Errorf("empty stats must report 0 progress, got %v", got)
	}
}

func TestSectorStatsQualifiedRate(t *testing.T) {
	st := SectorStats{Total: 10, Qualified: 3, Defective: 1, Pending: 6}
	if got := st.QualifiedRate(); got != 75.0 {
		t.Errorf("expected 75%%, got %v", got)
	}

	uninspected := SectorStats{Total: 10, Pending: 10}
	if got := uninspected.QualifiedRate(); got != 0 {
		t.Errorf("no inspected holes must report 0 rate, got %v", got)
	}
}

func TestAppConfigAddRecentFile(t *testing.T) {
	c := DefaultAppConfig()

	c.AddRecentFile("/a.dxf", 3)
	c.AddRecentFile("/b.csv", 3)
	c.AddRecentFile("/c.xlsx", 3)
	c.AddRecentFile("/a.dxf", 3) // re-open moves to front, no duplicate

	if len(c.RecentFiles) != 3 {
		t.Fatalf("expected 3 recent files, got %d", len(c.RecentFiles))
	}
	if c.RecentFiles[0] != "/a.dxf" {
		t.Errorf("expected /a.dxf first, got %s", c.RecentFiles[0])
	}

	c.AddRecentFile("/d.csv", 3)
	if len(c.RecentFiles) != 3 {
		t.Errorf("expected cap at 3, got %d", len(c.RecentFiles))
	}
	for _, f := range c.RecentFiles {
		if f == "/b.csv" {
			t.Error("oldest entry should have been evicted")
		}
	}
}
