package sector

import (
	"log"

	"plateinspect/internal/model"
)

// State is the coordinator lifecycle state.
type State int

const (
	StateUnloaded State = iota
	StateLoaded
	StateSectorSelected
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "Loaded"
	case StateSectorSelected:
		return "SectorSelected"
	default:
		return "Unloaded"
	}
}

// EventType identifies coordinator events.
type EventType int

const (
	EventAssignmentUpdated EventType = iota
	EventSectorSelected
	EventSectorCleared
	EventSectorStatsUpdated
)

// AssignmentUpdated is emitted after a snapshot load.
type AssignmentUpdated struct {
	Counts     [numQuadrants]int // per-quadrant hole counts, angle order
	Center     model.Point2D
	Total      int
	Generation uint64
}

// SectorSelected is emitted when the selected sector changes.
type SectorSelected struct {
	Quadrant Quadrant
}

// SectorStatsUpdated is emitted when a sector's stats are recomputed.
type SectorStatsUpdated struct {
	Quadrant Quadrant
	Stats    model.SectorStats
}

// Listener receives coordinator events. The payload is one of the event
// structs above (nil for EventSectorCleared).
type Listener func(data any)

// Coordinator owns the assignment index and per-sector stats and drives the
// load/select/update lifecycle. Both rendering surfaces subscribe to the
// same events and pull geometry through the query surface; neither holds a
// private copy of the partition.
//
// The coordinator is confined to the UI thread: all methods are synchronous
// and none blocks, so no locking is needed.
type Coordinator struct {
	state      State
	generation uint64

	snapshot model.Snapshot
	byID     map[string]*model.Hole
	center   model.Point2D
	index    *AssignmentIndex

	stats [numQuadrants]model.SectorStats
	dirty [numQuadrants]bool

	selected    Quadrant
	hasSelected bool

	listeners map[EventType][]Listener
}

func NewCoordinator() *Coordinator {
	return &Coordinator{
		state:     StateUnloaded,
		listeners: make(map[EventType][]Listener),
	}
}

// On registers a listener for the given event type.
func (c *Coordinator) On(event EventType, l Listener) {
	c.listeners[event] = append(c.listeners[event], l)
}

func (c *Coordinator) emit(event EventType, data any) {
	for _, l := range c.listeners[event] {
		l(data)
	}
}

// State returns the current lifecycle state.
func (c *Coordinator) State() State { return c.state }

// Generation returns the current load generation. Event producers stamp
// their events with this value; events from an older generation are dropped.
func (c *Coordinator) Generation() uint64 { return c.generation }

// Load replaces the working snapshot: recomputes the center, rebuilds the
// assignment index, recomputes all four sectors' stats, and emits
// EventAssignmentUpdated. Any selection from a previous load is discarded.
func (c *Coordinator) Load(snapshot model.Snapshot) {
	c.generation++
	c.snapshot = snapshot
	c.byID = make(map[string]*model.Hole, len(snapshot))
	for _, h := range snapshot {
		c.byID[h.ID] = h
	}

	c.center = Center(snapshot)
	c.index = BuildIndex(snapshot, c.center)
	c.stats = AggregateAll(c.index)
	c.dirty = [numQuadrants]bool{}

	c.hasSelected = false
	c.state = StateLoaded

	c.emit(EventAssignmentUpdated, AssignmentUpdated{
		Counts:     c.index.Counts(),
		Center:     c.center,
		Total:      c.index.Total(),
		Generation: c.generation,
	})
}

// Select makes q the active sector and emits EventSectorSelected followed by
// EventSectorStatsUpdated. Re-selecting the already-selected sector is a
// debounced no-op: nothing is re-emitted, so downstream views don't re-fit
// on repeat clicks. Selecting before any load is logged and ignored.
func (c *Coordinator) Select(q Quadrant) {
	if c.state == StateUnloaded {
		log.Printf("sector: Select(%v) ignored, no plate loaded", q)
		return
	}
	if !q.Valid() {
		log.Printf("sector: Select ignored, invalid quadrant %d", int(q))
		return
	}
	if c.hasSelected && c.selected == q {
		return
	}

	c.selected = q
	c.hasSelected = true
	c.state = StateSectorSelected

	c.emit(EventSectorSelected, SectorSelected{Quadrant: q})
	c.emit(EventSectorStatsUpdated, SectorStatsUpdated{
		Quadrant: q,
		Stats:    c.Stats(q),
	})
}

// Clear drops the sector selection and returns to the Loaded state.
func (c *Coordinator) Clear() {
	if c.state != StateSectorSelected {
		return
	}
	c.hasSelected = false
	c.state = StateLoaded
	c.emit(EventSectorCleared, nil)
}

// Selected returns the active sector, if any.
func (c *Coordinator) Selected() (Quadrant, bool) {
	return c.selected, c.hasSelected
}

// OnStatusChange applies a status-change event from the detection engine.
// The hole's status is mutated in place; its sector assignment never
// changes. If the hole's sector is the selected one, that sector's stats
// are recomputed and re-emitted immediately; otherwise the sector is marked
// dirty and recomputed lazily on the next query.
//
// Events stamped with a stale generation (from before the latest Load) and
// events naming unknown holes are dropped.
func (c *Coordinator) OnStatusChange(ev model.StatusChangeEvent) {
	if c.state == StateUnloaded {
		return
	}
	if ev.Generation != 0 && ev.Generation != c.generation {
		log.Printf("sector: dropping stale status event for %s (gen %d, current %d)",
			ev.HoleID, ev.Generation, c.generation)
		return
	}
	h, ok := c.byID[ev.HoleID]
	if !ok {
		return
	}
	h.Status = ev.NewStatus

	q, ok := c.index.QuadrantOf(ev.HoleID)
	if !ok {
		// Contract violation: the hole is in the snapshot but not the
		// index. BuildIndex covers every hole, so this cannot happen.
		return
	}
	c.dirty[q] = true

	if c.hasSelected && c.selected == q {
		c.emit(EventSectorStatsUpdated, SectorStatsUpdated{
			Quadrant: q,
			Stats:    c.Stats(q),
		})
	}
}

// ─── Query surface ─────────────────────────────────────────

// Stats returns the sector's current stats, recomputing first if status
// changes landed since the last computation.
func (c *Coordinator) Stats(q Quadrant) model.SectorStats {
	if !q.Valid() || c.index == nil {
		return model.SectorStats{}
	}
	if c.dirty[q] {
		c.stats[q] = Aggregate(q, c.index)
		c.dirty[q] = false
	}
	return c.stats[q]
}

// Entities returns the holes assigned to the sector, in snapshot order.
func (c *Coordinator) Entities(q Quadrant) []*model.Hole {
	if c.index == nil {
		return nil
	}
	return c.index.Entities(q)
}

// Overlay returns the sector's wedge polygon at the given radius around the
// current center.
func (c *Coordinator) Overlay(q Quadrant, radius float64) DrawablePath {
	return Wedge(q, c.center, radius)
}

// Center returns the center of the current load, (0,0) before any load.
func (c *Coordinator) Center() model.Point2D { return c.center }

// Snapshot returns the current snapshot. Callers must treat it as read-only.
func (c *Coordinator) Snapshot() model.Snapshot { return c.snapshot }

// Counts returns the per-quadrant hole counts, angle order.
func (c *Coordinator) Counts() [numQuadrants]int {
	if c.index == nil {
		return [numQuadrants]int{}
	}
	return c.index.Counts()
}

// Infos returns display metadata for all four sectors.
func (c *Coordinator) Infos() []Info {
	infos := make([]Info, 0, numQuadrants)
	for _, q := range Quadrants {
		count := 0
		if c.index != nil {
			count = c.index.Count(q)
		}
		infos = append(infos, InfoFor(q, count))
	}
	return infos
}
