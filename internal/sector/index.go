package sector

import "plateinspect/internal/model"

// AssignmentIndex holds the total hole→quadrant mapping for one snapshot,
// in both directions. Spatial membership depends only on position and
// center, so status mutations never invalidate the index; it is rebuilt
// only when a new snapshot is loaded.
type AssignmentIndex struct {
	center  model.Point2D
	byID    map[string]Quadrant
	buckets [numQuadrants][]*model.Hole
}

// BuildIndex classifies every hole in one pass and returns the index.
// Building is deterministic and idempotent: the same snapshot and center
// always produce identical buckets in identical order.
func BuildIndex(holes model.Snapshot, center model.Point2D) *AssignmentIndex {
	idx := &AssignmentIndex{
		center: center,
		byID:   make(map[string]Quadrant, len(holes)),
	}
	for _, h := range holes {
		q := ClassifyPosition(h.X, h.Y, center)
		idx.byID[h.ID] = q
		idx.buckets[q] = append(idx.buckets[q], h)
	}
	return idx
}

// Center returns the center the index was built against.
func (idx *AssignmentIndex) Center() model.Point2D {
	return idx.center
}

// Entities returns the holes assigned to the quadrant, in snapshot order.
// The returned slice is shared; callers must not modify it.
func (idx *AssignmentIndex) Entities(q Quadrant) []*model.Hole {
	if !q.Valid() {
		return nil
	}
	return idx.buckets[q]
}

// QuadrantOf looks up the quadrant a hole was assigned to.
func (idx *AssignmentIndex) QuadrantOf(id string) (Quadrant, bool) {
	q, ok := idx.byID[id]
	return q, ok
}

// Count returns the number of holes in the quadrant.
func (idx *AssignmentIndex) Count(q Quadrant) int {
	if !q.Valid() {
		return 0
	}
	return len(idx.buckets[q])
}

// Total returns the number of holes across all four quadrants. It always
// equals the snapshot length: the partition is total.
func (idx *AssignmentIndex) Total() int {
	return len(idx.byID)
}

// Counts returns per-quadrant hole counts in angle order.
func (idx *AssignmentIndex) Counts() [numQuadrants]int {
	var counts [numQuadrants]int
	for i, q := range Quadrants {
		counts[i] = len(idx.buckets[q])
	}
	return counts
}
