package tracker

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ayusman/repcoach/internal/exercise"
	"github.com/ayusman/repcoach/internal/pose"
)

// RepEvent is delivered for every counted repetition.
type RepEvent struct {
	Metrics   exercise.Metrics `json:"metrics"`
	Quality   exercise.Quality `json:"quality"`
	Timestamp time.Time        `json:"timestamp"`
}

// Tracker runs one exercise tracking session: per frame it computes metrics,
// classifies the pose, detects rep edges and advances the progression state.
// Frame processing and the rest tick both take the same mutex, so they never
// interleave mid-update.
type Tracker struct {
	mu      sync.Mutex
	def     *exercise.Definition
	session Session
	edge    RepEdgeDetector
	active  bool

	// OnMetricsUpdate fires for every processed frame, rep or not.
	OnMetricsUpdate func(metrics exercise.Metrics, instruction string)
	// OnRepComplete fires only for counted repetitions.
	OnRepComplete func(event RepEvent)
	// OnSetComplete fires when a set's rep target is reached.
	OnSetComplete func(setsCompleted int)
	// OnWorkoutComplete fires once, when the final set finishes.
	OnWorkoutComplete func()
	// OnRestFinished fires when the rest countdown reaches zero.
	OnRestFinished func()
}

// New creates a Tracker for one exercise and plan. The definition is
// validated here so that configuration errors surface at session start and
// never during frame processing.
func New(def *exercise.Definition, plan Plan) (*Tracker, error) {
	if def == nil {
		return nil, fmt.Errorf("tracker: nil exercise definition")
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("tracker: %w", err)
	}

	return &Tracker{
		def:     def,
		session: NewSession(plan),
		active:  true,
	}, nil
}

// Definition returns the exercise definition this tracker was started with.
func (t *Tracker) Definition() *exercise.Definition {
	return t.def
}

// ProcessFrame handles one landmark frame. A nil frame (no body detected)
// is skipped for classification but logged, since every dropped frame must
// stay observable. Frames arriving after Stop are silently dropped.
func (t *Tracker) ProcessFrame(frame *pose.Frame) {
	t.mu.Lock()

	if !t.active {
		t.mu.Unlock()
		return
	}
	if frame == nil {
		t.mu.Unlock()
		log.Println("tracker: frame without body landmarks skipped")
		return
	}

	metrics := exercise.ComputeMetrics(t.def, frame)
	isAtRep := exercise.AtRepPosition(t.def, metrics)
	instruction := t.instruction(metrics, isAtRep)

	var repEvent *RepEvent
	var setsDone int
	var setDone, workoutDone bool

	if t.edge.Observe(isAtRep, t.session.InRest, t.session.WorkoutComplete) {
		quality := exercise.AssessQuality(t.def, metrics)
		t.session.LastRepQuality = quality.Tier
		setDone, workoutDone = t.session.CompleteRep()
		setsDone = t.session.SetsCompleted

		repEvent = &RepEvent{
			Metrics:   metrics,
			Quality:   quality,
			Timestamp: time.Now(),
		}
	}

	onMetrics := t.OnMetricsUpdate
	onRep := t.OnRepComplete
	onSet := t.OnSetComplete
	onWorkout := t.OnWorkoutComplete
	t.mu.Unlock()

	// Callbacks run outside the lock so they may read Snapshot().
	if onMetrics != nil {
		onMetrics(metrics, instruction)
	}
	if repEvent != nil && onRep != nil {
		onRep(*repEvent)
	}
	if setDone && onSet != nil {
		onSet(setsDone)
	}
	if workoutDone && onWorkout != nil {
		onWorkout()
	}
}

// Tick advances the rest countdown by one second.
func (t *Tracker) Tick() {
	t.mu.Lock()
	if !t.active {
		t.mu.Unlock()
		return
	}
	restOver := t.session.Tick()
	onRest := t.OnRestFinished
	t.mu.Unlock()

	if restOver {
		log.Println("tracker: rest finished, next set active")
		if onRest != nil {
			onRest()
		}
	}
}

// Snapshot returns a copy of the current session state for display or
// persistence. The session itself is never handed out.
func (t *Tracker) Snapshot() Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session
}

// Reset reinitializes the session counters and edge memory, keeping the
// exercise and plan. This is the external reset that leaves COMPLETE.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.session.Reset()
	t.edge.Reset()
	t.active = true
}

// Stop discards the session. Any frame still in flight when Stop returns is
// dropped instead of mutating stale state.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active = false
	t.session.Reset()
	t.edge.Reset()
}

// Active reports whether the tracker is still accepting frames.
func (t *Tracker) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// instruction picks the display string for the current pose: leaving the rep
// position comes first, then settling into the start, then the ready prompt.
func (t *Tracker) instruction(metrics exercise.Metrics, isAtRep bool) string {
	switch {
	case isAtRep:
		return t.def.Instructions.Return
	case exercise.AtStartingPosition(t.def, metrics):
		return t.def.Instructions.InPosition
	default:
		return t.def.Instructions.Ready
	}
}
