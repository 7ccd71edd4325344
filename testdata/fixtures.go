// Package testdata provides shared fixtures for exercise tracking tests.
package testdata

import (
	"github.com/ayusman/repcoach/internal/exercise"
	"github.com/ayusman/repcoach/internal/pose"
)

// SquatDefinition returns a complete bodyweight squat definition matching
// the pose package's squat fixtures.
func SquatDefinition() *exercise.Definition {
	return &exercise.Definition{
		ID:       "squat",
		Name:     "Bodyweight Squat",
		Category: "legs",
		Joints: exercise.Joints{
			Required:  []string{"shoulder", "hip", "knee", "ankle"},
			Bilateral: true,
		},
		Metrics: map[string]exercise.Metric{
			"knee_angle": {Calc: exercise.CalcBilateralAngle, Points: []string{"hip", "knee", "ankle"}},
			"hip_angle":  {Calc: exercise.CalcBilateralAngle, Points: []string{"shoulder", "hip", "knee"}},
			"hip_depth":  {Calc: exercise.CalcVerticalDistanceAverage, Points: []string{"hip", "knee"}},
		},
		Positions: exercise.Positions{
			Starting: exercise.Position{Conditions: []exercise.Condition{
				{Metric: "knee_angle", Op: exercise.OpGreater, Value: 160},
			}},
			Rep: exercise.Position{Conditions: []exercise.Condition{
				{Metric: "knee_angle", Op: exercise.OpLess, Value: 100},
			}},
		},
		Quality: exercise.QualityLevels{
			Excellent: &exercise.QualityLevel{
				Conditions: []exercise.Condition{{Metric: "knee_angle", Op: exercise.OpLess, Value: 85}},
				Message:    "Excellent depth!",
			},
			Good: &exercise.QualityLevel{
				Conditions: []exercise.Condition{{Metric: "knee_angle", Op: exercise.OpLess, Value: 95}},
				Message:    "Good rep",
			},
			Default: exercise.QualityLevel{Message: "Keep going"},
		},
		Instructions: exercise.Instructions{
			Ready:      "Stand tall, feet shoulder-width apart",
			InPosition: "Lower into the squat",
			Return:     "Drive back up",
		},
	}
}

// RepFrames returns the frame sequence for one squat repetition: standing,
// a held bottom position, and the return to standing that fires the rep.
func RepFrames() []*pose.Frame {
	return []*pose.Frame{
		pose.StandingFrame(),
		pose.SquatBottomFrame(),
		pose.SquatBottomFrame(),
		pose.StandingFrame(),
	}
}

// RepSequence returns the frames for n consecutive squat repetitions.
func RepSequence(n int) []*pose.Frame {
	var frames []*pose.Frame
	for i := 0; i < n; i++ {
		frames = append(frames, RepFrames()...)
	}
	return frames
}
