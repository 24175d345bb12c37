// Package simulate drives a fake inspection run over a loaded hole
// snapshot, pushing status-change events the way the real probe electronics
// would. The sector coordinator consumes the events; this package knows
// nothing about sectors.
package simulate

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"plateinspect/internal/model"
)

// Config controls the simulated detection run.
type Config struct {
	Interval      time.Duration // Time between probed holes
	QualifiedRate float64       // Probability a probed hole qualifies (0..1)
	BlindRate     float64       // Probability a probed hole is blind (0..1)
	Seed          int64         // RNG seed; 0 means time-based
}

// DefaultConfig returns the config used for demo runs.
func DefaultConfig() Config {
	return Config{
		Interval:      50 * time.Millisecond,
		QualifiedRate: 0.95,
		BlindRate:     0.01,
	}
}

// Sink receives status-change events. The runner calls it from its own
// goroutine; callers that feed a UI must marshal onto their UI thread.
type Sink func(model.StatusChangeEvent)

// Runner walks the snapshot in order on a ticker, marking each hole
// Processing and then assigning a terminal status drawn from the configured
// rates. Holes that already carry a terminal status (tie rods, previously
// inspected) are skipped.
type Runner struct {
	cfg  Config
	sink Sink

	mu         sync.Mutex
	holes      model.Snapshot
	generation uint64
	pos        int
	inspected  int
	rng        *rand.Rand
	running    bool
	paused     bool
	stopCh     chan struct{}
	doneCh     chan struct{}
}

func NewRunner(cfg Config, sink Sink) *Runner {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Runner{
		cfg:  cfg,
		sink: sink,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Start begins a run over the snapshot. The generation must be the
// coordinator generation the snapshot was loaded under; every emitted event
// is stamped with it so a reload invalidates in-flight events.
func (r *Runner) Start(holes model.Snapshot, generation uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return fmt.Errorf("detection run already in progress")
	}
	if len(holes) == 0 {
		return fmt.Errorf("no holes to inspect")
	}

	r.holes = holes
	r.generation = generation
	r.pos = 0
	r.inspected = 0
	r.running = true
	r.paused = false
	r.stopCh = make(chan struct{})
	r.doneCh = make(chan struct{})

	go r.loop(r.stopCh, r.doneCh)
	return nil
}

func (r *Runner) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			r.finish()
			return
		case <-ticker.C:
			r.mu.Lock()
			paused := r.paused
			r.mu.Unlock()
			if paused {
				continue
			}
			if !r.Step() {
				r.finish()
				return
			}
		}
	}
}

func (r *Runner) finish() {
	r.mu.Lock()
	r.running = false
	r.mu.Unlock()
}

// Step probes the next uninspected hole: emits a Processing event followed
// by the terminal result. Returns false once the snapshot is exhausted.
// Exposed so tests and a manual single-step mode can drive the run without
// the ticker.
func (r *Runner) Step() bool {
	r.mu.Lock()
	var hole *model.Hole
	for r.pos < len(r.holes) {
		h := r.holes[r.pos]
		r.pos++
		if !h.Status.Terminal() {
			hole = h
			break
		}
	}
	if hole == nil {
		r.mu.Unlock()
		return false
	}
	gen := r.generation
	status := r.drawStatus()
	r.inspected++
	sink := r.sink
	r.mu.Unlock()

	sink(model.StatusChangeEvent{HoleID: hole.ID, NewStatus: model.StatusProcessing, Generation: gen})
	sink(model.StatusChangeEvent{HoleID: hole.ID, NewStatus: status, Generation: gen})
	return true
}

// drawStatus picks a terminal outcome. Caller holds the lock.
func (r *Runner) drawStatus() model.HoleStatus {
	roll := r.rng.Float64()
	switch {
	case roll < r.cfg.BlindRate:
		return model.StatusBlind
	case roll < r.cfg.BlindRate+r.cfg.QualifiedRate:
		return model.StatusQualified
	default:
		return model.StatusDefective
	}
}

// Pause suspends the run; the ticker keeps firing but holes are not probed.
func (r *Runner) Pause() {
	r.mu.Lock()
	r.paused = true
	r.mu.Unlock()
}

// Resume continues a paused run.
func (r *Runner) Resume() {
	r.mu.Lock()
	r.paused = false
	r.mu.Unlock()
}

// Stop ends the run. Safe to call when not running.
func (r *Runner) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	stop := r.stopCh
	done := r.doneCh
	r.mu.Unlock()

	close(stop)
	<-done
}

// Running reports whether a run is in progress (paused counts as running).
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Paused reports whether the run is paused.
func (r *Runner) Paused() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paused
}

// Progress returns how many holes have been probed and the snapshot size.
func (r *Runner) Progress() (inspected, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inspected, len(r.holes)
}
