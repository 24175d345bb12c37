package sector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plateinspect/internal/model"
)

// crossSnapshot places count holes in each quadrant around (0, 0).
func crossSnapshot(count int) model.Snapshot {
	var holes model.Snapshot
	signs := [][2]float64{{1, 1}, {-1, 1}, {-1, -1}, {1, -1}}
	for _, s := range signs {
		for i := 0; i < count; i++ {
			h := model.NewHole(s[0]*float64(10+i), s[1]*float64(20+i), 8.8)
			holes = append(holes, h)
		}
	}
	// Anchor the bounding box symmetrically so the center stays (0, 0).
	return holes
}

type eventRecorder struct {
	assignments []AssignmentUpdated
	selections  []SectorSelected
	stats       []SectorStatsUpdated
	cleared     int
}

func newRecorder(c *Coordinator) *eventRecorder {
	r := &eventRecorder{}
	c.On(EventAssignmentUpdated, func(data any) {
		r.assignments = append(r.assignments, data.(AssignmentUpdated))
	})
	c.On(EventSectorSelected, func(data any) {
		r.selections = append(r.selections, data.(SectorSelected))
	})
	c.On(EventSectorStatsUpdated, func(data any) {
		r.stats = append(r.stats, data.(SectorStatsUpdated))
	})
	c.On(EventSectorCleared, func(any) { r.cleared++ })
	return r
}

func TestCoordinator_LoadEmitsAssignment(t *testing.T) {
	c := NewCoordinator()
	rec := newRecorder(c)

	holes := crossSnapshot(5)
	c.Load(holes)

	assert.Equal(t, StateLoaded, c.State())
	require.Len(t, rec.assignments, 1)
	ev := rec.assignments[0]
	assert.Equal(t, len(holes), ev.Total)
	assert.Equal(t, uint64(1), ev.Generation)

	sum := 0
	for _, n := range ev.Counts {
		sum += n
	}
	assert.Equal(t, len(holes), sum)
}

func TestCoordinator_SelectEmitsOnceAndDebounces(t *testing.T) {
	c := NewCoordinator()
	rec := newRecorder(c)
	c.Load(crossSnapshot(3))

	c.Select(QuadrantII)
	c.Select(QuadrantII) // repeat click: must not re-emit
	c.Select(QuadrantII)

	assert.Equal(t, StateSectorSelected, c.State())
	require.Len(t, rec.selections, 1)
	assert.Equal(t, QuadrantII, rec.selections[0].Quadrant)
	require.Len(t, rec.stats, 1)
	assert.Equal(t, QuadrantII, rec.stats[0].Quadrant)
	assert.Equal(t, 3, rec.stats[0].Stats.Total)

	// Switching sectors emits again.
	c.Select(QuadrantIV)
	assert.Len(t, rec.selections, 2)
	assert.Len(t, rec.stats, 2)
}

func TestCoordinator_SelectBeforeLoadIsNoOp(t *testing.T) {
	c := NewCoordinator()
	rec := newRecorder(c)

	c.Select(QuadrantI)

	assert.Equal(t, StateUnloaded, c.State())
	assert.Empty(t, rec.selections)
	assert.Empty(t, rec.stats)
	_, selected := c.Selected()
	assert.False(t, selected)
}

func TestCoordinator_Clear(t *testing.T) {
	c := NewCoordinator()
	rec := newRecorder(c)
	c.Load(crossSnapshot(2))

	c.Clear() // no selection yet: no-op
	assert.Zero(t, rec.cleared)

	c.Select(QuadrantI)
	c.Clear()
	assert.Equal(t, StateLoaded, c.State())
	assert.Equal(t, 1, rec.cleared)

	// Re-selecting the same sector after a clear must emit again: the
	// debounce compares against the current selection, not history.
	c.Select(QuadrantI)
	assert.Len(t, rec.selections, 2)
}

func TestCoordinator_StatusChangeInSelectedSector(t *testing.T) {
	c := NewCoordinator()
	rec := newRecorder(c)
	holes := crossSnapshot(4)
	c.Load(holes)
	c.Select(QuadrantI)
	require.Len(t, rec.stats, 1)

	target := c.Entities(QuadrantI)[0]
	c.OnStatusChange(model.StatusChangeEvent{
		HoleID:     target.ID,
		NewStatus:  model.StatusQualified,
		Generation: c.Generation(),
	})

	require.Len(t, rec.stats, 2, "selected-sector change must re-emit stats")
	st := rec.stats[1]
	assert.Equal(t, QuadrantI, st.Quadrant)
	assert.Equal(t, 4, st.Stats.Total)
	assert.Equal(t, 1, st.Stats.Qualified)
	assert.Equal(t, model.StatusQualified, target.Status)
}

func TestCoordinator_StatusChangeInOtherSectorIsLazy(t *testing.T) {
	c := NewCoordinator()
	rec := newRecorder(c)
	c.Load(crossSnapshot(4))
	c.Select(QuadrantI)
	emitted := len(rec.stats)

	target := c.Entities(QuadrantIII)[0]
	c.OnStatusChange(model.StatusChangeEvent{
		HoleID:     target.ID,
		NewStatus:  model.StatusDefective,
		Generation: c.Generation(),
	})

	assert.Len(t, rec.stats, emitted, "unselected-sector change must not emit")
	assert.Equal(t, model.StatusDefective, target.Status, "status still applied")

	// The recompute happens lazily on the next query.
	st := c.Stats(QuadrantIII)
	assert.Equal(t, 1, st.Defective)
	assert.Equal(t, 4, st.Total)
}

func TestCoordinator_StaleGenerationDropped(t *testing.T) {
	c := NewCoordinator()
	first := crossSnapshot(2)
	c.Load(first)
	staleGen := c.Generation()
	staleID := first[0].ID

	second := crossSnapshot(2)
	c.Load(second)

	c.OnStatusChange(model.StatusChangeEvent{
		HoleID:     second[0].ID,
		NewStatus:  model.StatusQualified,
		Generation: staleGen,
	})
	assert.Equal(t, model.StatusPending, second[0].Status, "stale event must be dropped")

	// A stale ID with the current generation is simply unknown: ignored.
	c.OnStatusChange(model.StatusChangeEvent{
		HoleID:     staleID,
		NewStatus:  model.StatusQualified,
		Generation: c.Generation(),
	})
	for _, q := range Quadrants {
		assert.Zero(t, c.Stats(q).Qualified)
	}
}

func TestCoordinator_UnknownHoleIgnored(t *testing.T) {
	c := NewCoordinator()
	c.Load(crossSnapshot(1))

	c.OnStatusChange(model.StatusChangeEvent{
		HoleID:     "no-such-hole",
		NewStatus:  model.StatusDefective,
		Generation: c.Generation(),
	})
	for _, q := range Quadrants {
		assert.Zero(t, c.Stats(q).Defective)
	}
}

func TestCoordinator_ReloadInvalidatesSelection(t *testing.T) {
	c := NewCoordinator()
	c.Load(crossSnapshot(2))
	c.Select(QuadrantII)

	c.Load(crossSnapshot(3))

	assert.Equal(t, StateLoaded, c.State())
	_, selected := c.Selected()
	assert.False(t, selected, "selection must not survive a reload")
	assert.Equal(t, uint64(2), c.Generation())
}

func TestCoordinator_OverlayUsesDeclaredAngles(t *testing.T) {
	c := NewCoordinator()
	c.Load(crossSnapshot(3))
	center := c.Center()

	for _, q := range Quadrants {
		path := c.Overlay(q, 300)
		require.NotEmpty(t, path.Points)
		assert.Equal(t, center, path.Points[0])

		start, _ := q.AngleRange()
		gotStart := AngleOf(path.Points[1].X, path.Points[1].Y, center)
		assert.InDelta(t, start, gotStart, 1e-9)
	}
}

func TestCoordinator_StatsTotalsStableUnderStatusChurn(t *testing.T) {
	c := NewCoordinator()
	holes := crossSnapshot(10)
	c.Load(holes)

	for i, h := range holes {
		c.OnStatusChange(model.StatusChangeEvent{
			HoleID:     h.ID,
			NewStatus:  model.HoleStatus(i%5 + 1),
			Generation: c.Generation(),
		})
	}

	sum := 0
	for _, q := range Quadrants {
		sum += c.Stats(q).Total
	}
	assert.Equal(t, len(holes), sum, "status churn must never change the partition sum")
}
