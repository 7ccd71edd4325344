// Package exercise provides the data-driven exercise definition model and the
// per-frame evaluation that classifies a body pose against it.
package exercise

import (
	"errors"
	"fmt"

	"github.com/ayusman/repcoach/internal/pose"
)

// ErrNotFound is returned when a requested exercise does not exist.
var ErrNotFound = errors.New("exercise not found")

// Calculation identifies the formula used to compute a metric. The set is
// closed: computeMetric switches exhaustively over these kinds.
type Calculation string

const (
	// CalcBilateralAngle averages a three-point joint angle over both sides.
	CalcBilateralAngle Calculation = "bilateral_angle"
	// CalcUnilateralAngle computes a three-point joint angle on one side.
	CalcUnilateralAngle Calculation = "unilateral_angle"
	// CalcVerticalDistanceAverage averages the signed vertical offset between
	// two joints over both sides.
	CalcVerticalDistanceAverage Calculation = "vertical_distance_average"
	// CalcDistance2DAverage averages the planar distance between two joints
	// over both sides.
	CalcDistance2DAverage Calculation = "distance_2d_average"
	// CalcSingleJointY reads the y-coordinate of one joint.
	CalcSingleJointY Calculation = "single_joint_y"
	// CalcHorizontalDistanceAverage is the horizontal distance between the
	// two wrists.
	CalcHorizontalDistanceAverage Calculation = "horizontal_distance_average"
)

// knownCalculations is the closed set accepted by validation.
var knownCalculations = map[Calculation]bool{
	CalcBilateralAngle:            true,
	CalcUnilateralAngle:           true,
	CalcVerticalDistanceAverage:   true,
	CalcDistance2DAverage:         true,
	CalcSingleJointY:              true,
	CalcHorizontalDistanceAverage: true,
}

// Operator is a comparison operator used in conditions.
type Operator string

const (
	OpLess       Operator = "<"
	OpLessEq     Operator = "<="
	OpGreater    Operator = ">"
	OpGreaterEq  Operator = ">="
	OpEqual      Operator = "=="
	OpAbsLess    Operator = "abs_<"
	OpAbsGreater Operator = "abs_>"
)

var knownOperators = map[Operator]bool{
	OpLess:       true,
	OpLessEq:     true,
	OpGreater:    true,
	OpGreaterEq:  true,
	OpEqual:      true,
	OpAbsLess:    true,
	OpAbsGreater: true,
}

// Condition compares one named metric against a threshold.
type Condition struct {
	Metric string   `json:"metric"`
	Op     Operator `json:"operator"`
	Value  float64  `json:"value"`
}

// Metric describes how one scalar metric is computed from joint positions.
type Metric struct {
	Calc     Calculation `json:"calculation"`
	Points   []string    `json:"points,omitempty"`
	Side     string      `json:"side,omitempty"`
	Absolute bool        `json:"absolute,omitempty"`
}

// Position is a condition set identifying one posture of a repetition.
type Position struct {
	Conditions []Condition `json:"conditions"`
}

// Positions holds the two postures that bound one repetition.
type Positions struct {
	Starting Position `json:"starting_position"`
	Rep      Position `json:"rep_position"`
}

// QualityLevel is one condition-gated feedback tier.
type QualityLevel struct {
	Conditions []Condition `json:"conditions,omitempty"`
	Message    string      `json:"message"`
}

// QualityLevels is the ordered feedback ladder. Excellent is tried first,
// then good; default is the unconditional fallback.
type QualityLevels struct {
	Excellent *QualityLevel `json:"excellent,omitempty"`
	Good      *QualityLevel `json:"good,omitempty"`
	Default   QualityLevel  `json:"default"`
}

// Joints declares which anatomical joints an exercise needs from a frame.
type Joints struct {
	Required  []string `json:"required"`
	Bilateral bool     `json:"bilateral"`
}

// Instructions are the three display strings shown during tracking.
type Instructions struct {
	Ready      string `json:"ready"`
	InPosition string `json:"in_position"`
	Return     string `json:"return"`
}

// Definition is the static, data-driven description of one exercise. It is
// loaded from configuration, validated once, and read-only afterwards.
type Definition struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Category     string            `json:"category"`
	Joints       Joints            `json:"joints"`
	Metrics      map[string]Metric `json:"metrics"`
	Positions    Positions         `json:"positions"`
	Quality      QualityLevels     `json:"quality_levels"`
	Instructions Instructions      `json:"instructions"`
}

// Validate checks that the definition is internally consistent: all joint
// names are known and declared, calculation kinds and operators belong to
// the closed sets, and every condition references a defined metric.
// Validation runs once at load time so that frame processing never has to
// surface configuration errors.
func (d *Definition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("definition missing id")
	}
	if d.Name == "" {
		return fmt.Errorf("definition %s: missing name", d.ID)
	}

	declared := make(map[string]bool, len(d.Joints.Required))
	for _, joint := range d.Joints.Required {
		if !pose.KnownJoint(joint) {
			return fmt.Errorf("definition %s: unknown joint %q", d.ID, joint)
		}
		declared[joint] = true
	}

	for name, m := range d.Metrics {
		if !knownCalculations[m.Calc] {
			return fmt.Errorf("definition %s: metric %s: unknown calculation %q", d.ID, name, m.Calc)
		}
		if err := validateMetricShape(name, m); err != nil {
			return fmt.Errorf("definition %s: %w", d.ID, err)
		}
		points := m.Points
		if m.Calc == CalcHorizontalDistanceAverage {
			points = []string{"wrist"}
		}
		for _, p := range points {
			if !declared[p] {
				return fmt.Errorf("definition %s: metric %s references undeclared joint %q", d.ID, name, p)
			}
		}
		if m.Side != "" && m.Side != "left" && m.Side != "right" {
			return fmt.Errorf("definition %s: metric %s: invalid side %q", d.ID, name, m.Side)
		}
	}

	condSets := [][]Condition{
		d.Positions.Starting.Conditions,
		d.Positions.Rep.Conditions,
	}
	if d.Quality.Excellent != nil {
		condSets = append(condSets, d.Quality.Excellent.Conditions)
	}
	if d.Quality.Good != nil {
		condSets = append(condSets, d.Quality.Good.Conditions)
	}
	for _, conds := range condSets {
		for _, c := range conds {
			if !knownOperators[c.Op] {
				return fmt.Errorf("definition %s: unknown operator %q", d.ID, c.Op)
			}
			if _, ok := d.Metrics[c.Metric]; !ok {
				return fmt.Errorf("definition %s: condition references undefined metric %q", d.ID, c.Metric)
			}
		}
	}

	if d.Quality.Default.Message == "" {
		return fmt.Errorf("definition %s: quality_levels.default.message is required", d.ID)
	}

	return nil
}

// validateMetricShape checks the point count each calculation kind expects.
func validateMetricShape(name string, m Metric) error {
	want := -1
	switch m.Calc {
	case CalcBilateralAngle, CalcUnilateralAngle:
		want = 3
	case CalcVerticalDistanceAverage, CalcDistance2DAverage:
		want = 2
	case CalcSingleJointY:
		want = 1
	case CalcHorizontalDistanceAverage:
		want = 0
	}
	if want >= 0 && len(m.Points) != want {
		return fmt.Errorf("metric %s: calculation %s expects %d points, got %d", name, m.Calc, want, len(m.Points))
	}
	return nil
}
