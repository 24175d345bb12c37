package simulate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plateinspect/internal/model"
)

func testSnapshot(n int) model.Snapshot {
	var holes model.Snapshot
	for i := 0; i < n; i++ {
		holes = append(holes, model.NewHole(float64(i*20), 0, 8.8))
	}
	return holes
}

// collect accumulates events synchronously; only valid with Step-driven runs.
func collect(events *[]model.StatusChangeEvent) Sink {
	return func(ev model.StatusChangeEvent) {
		*events = append(*events, ev)
	}
}

func TestRunner_StepEmitsProcessingThenTerminal(t *testing.T) {
	var events []model.StatusChangeEvent
	r := NewRunner(Config{QualifiedRate: 1.0, Seed: 1}, collect(&events))
	holes := testSnapshot(3)
	r.holes = holes
	r.generation = 7

	ok := r.Step()

	require.True(t, ok)
	require.Len(t, events, 2)
	assert.Equal(t, holes[0].ID, events[0].HoleID)
	assert.Equal(t, model.StatusProcessing, events[0].NewStatus)
	assert.Equal(t, holes[0].ID, events[1].HoleID)
	assert.Equal(t, model.StatusQualified, events[1].NewStatus)
	assert.Equal(t, uint64(7), events[0].Generation)
	assert.Equal(t, uint64(7), events[1].Generation)
}

func TestRunner_StepWalksSnapshotOrder(t *testing.T) {
	var events []model.StatusChangeEvent
	r := NewRunner(Config{QualifiedRate: 1.0, Seed: 1}, collect(&events))
	holes := testSnapshot(4)
	r.holes = holes

	for r.Step() {
	}

	require.Len(t, events, 8) // two events per hole
	for i, h := range holes {
		assert.Equal(t, h.ID, events[2*i].HoleID)
	}
	inspected, total := r.Progress()
	assert.Equal(t, 4, inspected)
	assert.Equal(t, 4, total)
}

func TestRunner_StepSkipsTerminalHoles(t *testing.T) {
	var events []model.StatusChangeEvent
	r := NewRunner(Config{QualifiedRate: 1.0, Seed: 1}, collect(&events))
	holes := testSnapshot(3)
	holes[0].Status = model.StatusTieRod
	holes[1].Status = model.StatusQualified
	r.holes = holes

	for r.Step() {
	}

	require.Len(t, events, 2, "only the one pending hole gets probed")
	assert.Equal(t, holes[2].ID, events[0].HoleID)
}

func TestRunner_RatesRespectedWithSeed(t *testing.T) {
	var events []model.StatusChangeEvent
	r := NewRunner(Config{QualifiedRate: 0, BlindRate: 0, Seed: 42}, collect(&events))
	r.holes = testSnapshot(5)

	for r.Step() {
	}

	for i := 1; i < len(events); i += 2 {
		assert.Equal(t, model.StatusDefective, events[i].NewStatus,
			"zero qualified and blind rates must yield only defects")
	}
}

func TestRunner_StartRejectsEmptySnapshot(t *testing.T) {
	r := NewRunner(DefaultConfig(), func(model.StatusChangeEvent) {})
	err := r.Start(nil, 1)
	assert.Error(t, err)
}

func TestRunner_StartStopLifecycle(t *testing.T) {
	r := NewRunner(Config{Interval: time.Millisecond, QualifiedRate: 1.0, Seed: 1}, discard)

	require.NoError(t, r.Start(testSnapshot(2), 1))
	assert.True(t, r.Running())
	assert.Error(t, r.Start(testSnapshot(2), 1), "double start must fail")

	deadline := time.After(2 * time.Second)
	for r.Running() {
		select {
		case <-deadline:
			t.Fatal("run did not finish in time")
		case <-time.After(time.Millisecond):
		}
	}
	inspected, _ := r.Progress()
	assert.Equal(t, 2, inspected)

	// Stop after completion is a no-op.
	r.Stop()
}

func TestRunner_PauseHaltsProgress(t *testing.T) {
	r := NewRunner(Config{Interval: time.Millisecond, QualifiedRate: 1.0, Seed: 1}, discard)

	require.NoError(t, r.Start(testSnapshot(1000), 1))
	r.Pause()
	assert.True(t, r.Paused())
	before, _ := r.Progress()
	time.Sleep(20 * time.Millisecond)
	after, _ := r.Progress()
	// One probe may have been in flight when Pause landed.
	assert.LessOrEqual(t, after-before, 1)

	r.Resume()
	assert.False(t, r.Paused())
	r.Stop()
	assert.False(t, r.Running())
}

// discard drops events; ticker-driven tests only inspect Progress.
func discard(model.StatusChangeEvent) {}
