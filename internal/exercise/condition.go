package exercise

import "math"

// Metrics maps metric names to values for one frame. A metric that could not
// be computed is absent from the map; it is never present as zero.
type Metrics map[string]float64

// Evaluate reports whether every condition in the list holds against the
// metric map. The list is an AND: evaluation short-circuits to false on the
// first failing condition or on any condition whose metric is unavailable
// (fail-closed — a pose is never judged using a metric that could not be
// computed). An empty list always passes.
func Evaluate(metrics Metrics, conditions []Condition) bool {
	for _, c := range conditions {
		value, ok := metrics[c.Metric]
		if !ok {
			return false
		}
		if !c.holds(value) {
			return false
		}
	}
	return true
}

// holds applies the condition's operator to a metric value. The abs_
// variants compare the magnitude, for signed metrics like lateral lean
// where either direction should trigger.
func (c Condition) holds(value float64) bool {
	switch c.Op {
	case OpLess:
		return value < c.Value
	case OpLessEq:
		return value <= c.Value
	case OpGreater:
		return value > c.Value
	case OpGreaterEq:
		return value >= c.Value
	case OpEqual:
		return value == c.Value
	case OpAbsLess:
		return math.Abs(value) < c.Value
	case OpAbsGreater:
		return math.Abs(value) > c.Value
	default:
		return false
	}
}
