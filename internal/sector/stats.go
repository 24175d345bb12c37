package sector

import "plateinspect/internal/model"

// Aggregate computes status counts for one quadrant, scoped strictly to the
// holes the index assigned there. It deliberately never looks at the full
// snapshot: a sector stats view must report the sector total, not the plate
// total.
func Aggregate(q Quadrant, idx *AssignmentIndex) model.SectorStats {
	var stats model.SectorStats
	for _, h := range idx.Entities(q) {
		stats.Add(h.Status)
	}
	return stats
}

// AggregateAll computes stats for all four quadrants in angle order.
func AggregateAll(idx *AssignmentIndex) [numQuadrants]model.SectorStats {
	var all [numQuadrants]model.SectorStats
	for i, q := range Quadrants {
		all[i] = Aggregate(q, idx)
	}
	return all
}
