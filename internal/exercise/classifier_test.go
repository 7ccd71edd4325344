package exercise

import (
	"testing"

	"github.com/ayusman/repcoach/internal/pose"
)

func TestPositionClassification(t *testing.T) {
	def := squatDefinition()

	standing := ComputeMetrics(def, pose.StandingFrame())
	if !AtStartingPosition(def, standing) {
		t.Error("standing frame should classify as starting position")
	}
	if AtRepPosition(def, standing) {
		t.Error("standing frame should not classify as rep position")
	}

	bottom := ComputeMetrics(def, pose.SquatBottomFrame())
	if AtStartingPosition(def, bottom) {
		t.Error("squat-bottom frame should not classify as starting position")
	}
	if !AtRepPosition(def, bottom) {
		t.Error("squat-bottom frame should classify as rep position")
	}
}

func TestPositionClassification_FailsClosedOnOcclusion(t *testing.T) {
	def := squatDefinition()
	frame := pose.SquatBottomFrame()
	frame.Visibility[pose.LeftKnee] = 0
	frame.Visibility[pose.RightKnee] = 0

	metrics := ComputeMetrics(def, frame)
	if AtRepPosition(def, metrics) {
		t.Error("rep position must not be detected when its metric is unavailable")
	}
}

func TestAssessQuality_PriorityLadder(t *testing.T) {
	def := squatDefinition()

	tests := []struct {
		kneeAngle   float64
		wantTier    string
		wantMessage string
	}{
		{80, TierExcellent, "Excellent depth!"},
		{90, TierGood, "Good rep"},
		{100, TierDefault, "Keep going"},
	}

	for _, tt := range tests {
		got := AssessQuality(def, Metrics{"knee_angle": tt.kneeAngle})
		if got.Tier != tt.wantTier {
			t.Errorf("knee_angle=%f: expected tier %s, got %s", tt.kneeAngle, tt.wantTier, got.Tier)
		}
		if got.Message != tt.wantMessage {
			t.Errorf("knee_angle=%f: expected message %q, got %q", tt.kneeAngle, tt.wantMessage, got.Message)
		}
	}
}

func TestAssessQuality_UnavailableMetricFallsThrough(t *testing.T) {
	def := squatDefinition()

	got := AssessQuality(def, Metrics{})
	if got.Tier != TierDefault {
		t.Errorf("expected default tier when tier metrics are unavailable, got %s", got.Tier)
	}
}

func TestAssessQuality_ConditionlessTierOnlyFallback(t *testing.T) {
	def := squatDefinition()
	def.Quality.Excellent = &QualityLevel{Message: "should never match directly"}

	got := AssessQuality(def, Metrics{"knee_angle": 90})
	if got.Tier != TierGood {
		t.Errorf("conditionless excellent tier must be skipped, got tier %s", got.Tier)
	}
}
