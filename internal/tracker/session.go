// Package tracker turns classified pose frames into counted repetitions and
// drives set/rest/completion progression against a workout plan.
package tracker

import "log"

// Plan is the workout target supplied once when a session starts. Absent
// fields default to zero: a plan with TargetRepsPerSet 0 never completes a
// set, and a plan with TargetSets 0 never completes the workout.
type Plan struct {
	TargetSets       int     `json:"target_sets"`
	TargetRepsPerSet int     `json:"target_reps_per_set"`
	RestSeconds      int     `json:"rest_seconds"`
	TargetWeight     float64 `json:"target_weight,omitempty"`
}

// Session is the progression state for one tracked exercise. It is mutated
// only by counted repetitions and the per-second rest tick.
//
// SetsCompleted increments at the moment a set's rep target is reached,
// before the rest period begins. That policy is applied uniformly: at every
// observable point TotalReps() equals the cumulative counted-rep total.
type Session struct {
	RepsInSet       int    `json:"reps_in_set"`
	SetsCompleted   int    `json:"sets_completed"`
	InRest          bool   `json:"in_rest"`
	RestRemaining   int    `json:"rest_remaining"`
	WorkoutComplete bool   `json:"workout_complete"`
	LastRepQuality  string `json:"last_rep_quality,omitempty"`
	Plan            Plan   `json:"plan"`
}

// NewSession creates an initial session for the given plan: first set
// active, nothing counted.
func NewSession(plan Plan) Session {
	return Session{Plan: plan}
}

// TotalReps returns the cumulative number of counted repetitions since the
// session started.
func (s *Session) TotalReps() int {
	return s.SetsCompleted*s.Plan.TargetRepsPerSet + s.RepsInSet
}

// Reset reinitializes all counters to the initial state, keeping the plan.
// This is the only way out of a completed workout.
func (s *Session) Reset() {
	plan := s.Plan
	*s = Session{Plan: plan}
}

// CompleteRep records one counted repetition and advances the progression
// state machine. It reports whether the rep finished a set and whether it
// finished the whole workout. Reps arriving while resting or complete are a
// programming error (the rep-edge detector gates them) and are ignored.
func (s *Session) CompleteRep() (setDone, workoutDone bool) {
	if s.InRest || s.WorkoutComplete {
		log.Printf("progression: rep ignored in state rest=%v complete=%v", s.InRest, s.WorkoutComplete)
		return false, false
	}

	s.RepsInSet++

	if s.Plan.TargetRepsPerSet <= 0 || s.RepsInSet < s.Plan.TargetRepsPerSet {
		return false, false
	}

	// Set finished: count it now, before any rest starts.
	s.RepsInSet = 0
	s.SetsCompleted++
	if s.SetsCompleted > s.Plan.TargetSets && s.Plan.TargetSets > 0 {
		log.Printf("progression: sets_completed %d exceeds target %d, clamping", s.SetsCompleted, s.Plan.TargetSets)
		s.SetsCompleted = s.Plan.TargetSets
	}

	if s.Plan.TargetSets > 0 && s.SetsCompleted >= s.Plan.TargetSets {
		// No rest after the final set.
		s.WorkoutComplete = true
		s.InRest = false
		s.RestRemaining = 0
		return true, true
	}

	if s.Plan.RestSeconds > 0 {
		s.InRest = true
		s.RestRemaining = s.Plan.RestSeconds
	}
	return true, false
}

// Tick advances the rest countdown by one second. It reports whether this
// tick ended the rest period. Outside of rest it is a no-op.
func (s *Session) Tick() (restOver bool) {
	if !s.InRest {
		return false
	}

	s.RestRemaining--
	if s.RestRemaining > 0 {
		return false
	}

	s.RestRemaining = 0
	s.InRest = false
	return true
}
