package model

// SectorStats holds per-sector status counts. The counts are always scoped
// to a single sector's holes, never to the full plate.
type SectorStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Qualified  int `json:"qualified"`
	Defective  int `json:"defective"`
	Blind      int `json:"blind"`
	TieRod     int `json:"tie_rod"`
}

// Add counts one hole with the given status.
func (st *SectorStats) Add(s HoleStatus) {
	st.Total++
	switch s {
	case StatusProcessing:
		st.Processing++
	case StatusQualified:
		st.Qualified++
	case StatusDefective:
		st.Defective++
	case StatusBlind:
		st.Blind++
	case StatusTieRod:
		st.TieRod++
	default:
		st.Pending++
	}
}

// Inspected returns the number of holes with a terminal status.
func (st SectorStats) Inspected() int {
	return st.Qualified + st.Defective + st.Blind + st.TieRod
}

// Progress returns the inspection completion percentage.
func (st SectorStats) Progress() float64 {
	if st.Total == 0 {
		return 0
	}
	return float64(st.Inspected()) / float64(st.Total) * 100.0
}

// QualifiedRate returns the percentage of inspected holes that qualified.
func (st SectorStats) QualifiedRate() float64 {
	done := st.Inspected()
	if done == 0 {
		return 0
	}
	return float64(st.Qualified) / float64(done) * 100.0
}
