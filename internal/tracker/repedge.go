package tracker

import "log"

// RepEdgeDetector converts the noisy per-frame "at rep position" boolean
// into discrete repetition events. Holding the rep position fires nothing;
// only the transition out of it (the falling edge) counts a rep. One bit of
// memory spans frames; it is reset when a session starts.
type RepEdgeDetector struct {
	wasAtRep bool
}

// Observe feeds one frame's classification and reports whether a repetition
// was completed on this frame. A falling edge while resting or after workout
// completion is observed but discarded, so a rep performed during the rest
// window can never be counted. The memory bit updates unconditionally every
// frame, regardless of gating.
func (d *RepEdgeDetector) Observe(isAtRep, inRest, complete bool) bool {
	fallingEdge := d.wasAtRep && !isAtRep
	d.wasAtRep = isAtRep

	if !fallingEdge {
		return false
	}
	if inRest || complete {
		log.Printf("rep edge discarded (resting=%v complete=%v)", inRest, complete)
		return false
	}
	return true
}

// Reset clears the edge memory.
func (d *RepEdgeDetector) Reset() {
	d.wasAtRep = false
}
