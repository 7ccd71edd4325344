package exercise

// squatDefinition returns a complete, valid bodyweight squat definition used
// across the package tests.
func squatDefinition() *Definition {
	return &Definition{
		ID:       "squat",
		Name:     "Bodyweight Squat",
		Category: "legs",
		Joints: Joints{
			Required:  []string{"shoulder", "hip", "knee", "ankle"},
			Bilateral: true,
		},
		Metrics: map[string]Metric{
			"knee_angle": {Calc: CalcBilateralAngle, Points: []string{"hip", "knee", "ankle"}},
			"hip_angle":  {Calc: CalcBilateralAngle, Points: []string{"shoulder", "hip", "knee"}},
			"hip_depth":  {Calc: CalcVerticalDistanceAverage, Points: []string{"hip", "knee"}},
		},
		Positions: Positions{
			Starting: Position{Conditions: []Condition{
				{Metric: "knee_angle", Op: OpGreater, Value: 160},
			}},
			Rep: Position{Conditions: []Condition{
				{Metric: "knee_angle", Op: OpLess, Value: 100},
			}},
		},
		Quality: QualityLevels{
			Excellent: &QualityLevel{
				Conditions: []Condition{{Metric: "knee_angle", Op: OpLess, Value: 85}},
				Message:    "Excellent depth!",
			},
			Good: &QualityLevel{
				Conditions: []Condition{{Metric: "knee_angle", Op: OpLess, Value: 95}},
				Message:    "Good rep",
			},
			Default: QualityLevel{Message: "Keep going"},
		},
		Instructions: Instructions{
			Ready:      "Stand tall, feet shoulder-width apart",
			InPosition: "Lower into the squat",
			Return:     "Drive back up",
		},
	}
}
