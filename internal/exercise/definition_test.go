package exercise

import (
	"strings"
	"testing"
)

func TestValidate_ValidDefinition(t *testing.T) {
	if err := squatDefinition().Validate(); err != nil {
		t.Fatalf("expected valid definition, got %v", err)
	}
}

func TestValidate_MissingID(t *testing.T) {
	def := squatDefinition()
	def.ID = ""

	if err := def.Validate(); err == nil {
		t.Error("expected error for missing id")
	}
}

func TestValidate_UnknownJoint(t *testing.T) {
	def := squatDefinition()
	def.Joints.Required = append(def.Joints.Required, "tail")

	err := def.Validate()
	if err == nil || !strings.Contains(err.Error(), "unknown joint") {
		t.Errorf("expected unknown joint error, got %v", err)
	}
}

func TestValidate_MetricReferencesUndeclaredJoint(t *testing.T) {
	def := squatDefinition()
	def.Metrics["elbow_angle"] = Metric{
		Calc:   CalcBilateralAngle,
		Points: []string{"shoulder", "elbow", "wrist"},
	}

	err := def.Validate()
	if err == nil || !strings.Contains(err.Error(), "undeclared joint") {
		t.Errorf("expected undeclared joint error, got %v", err)
	}
}

func TestValidate_UnknownCalculation(t *testing.T) {
	def := squatDefinition()
	def.Metrics["bogus"] = Metric{Calc: Calculation("quaternion_twist"), Points: []string{"hip"}}

	err := def.Validate()
	if err == nil || !strings.Contains(err.Error(), "unknown calculation") {
		t.Errorf("expected unknown calculation error, got %v", err)
	}
}

func TestValidate_WrongPointCount(t *testing.T) {
	def := squatDefinition()
	def.Metrics["knee_angle"] = Metric{Calc: CalcBilateralAngle, Points: []string{"hip", "knee"}}

	err := def.Validate()
	if err == nil || !strings.Contains(err.Error(), "expects 3 points") {
		t.Errorf("expected point-count error, got %v", err)
	}
}

func TestValidate_ConditionOnUndefinedMetric(t *testing.T) {
	def := squatDefinition()
	def.Positions.Rep.Conditions = append(def.Positions.Rep.Conditions,
		Condition{Metric: "nonexistent", Op: OpLess, Value: 1})

	err := def.Validate()
	if err == nil || !strings.Contains(err.Error(), "undefined metric") {
		t.Errorf("expected undefined metric error, got %v", err)
	}
}

func TestValidate_UnknownOperator(t *testing.T) {
	def := squatDefinition()
	def.Positions.Starting.Conditions[0].Op = Operator("between")

	err := def.Validate()
	if err == nil || !strings.Contains(err.Error(), "unknown operator") {
		t.Errorf("expected unknown operator error, got %v", err)
	}
}

func TestValidate_QualityConditionsChecked(t *testing.T) {
	def := squatDefinition()
	def.Quality.Excellent.Conditions[0].Metric = "missing"

	if err := def.Validate(); err == nil {
		t.Error("expected quality tier conditions to be validated")
	}
}

func TestValidate_DefaultMessageRequired(t *testing.T) {
	def := squatDefinition()
	def.Quality.Default.Message = ""

	if err := def.Validate(); err == nil {
		t.Error("expected error for missing default quality message")
	}
}

func TestValidate_HorizontalDistanceNeedsWrists(t *testing.T) {
	def := squatDefinition()
	def.Metrics["wrist_spread"] = Metric{Calc: CalcHorizontalDistanceAverage}

	err := def.Validate()
	if err == nil || !strings.Contains(err.Error(), `undeclared joint "wrist"`) {
		t.Errorf("expected wrist declaration error, got %v", err)
	}

	def.Joints.Required = append(def.Joints.Required, "wrist")
	if err := def.Validate(); err != nil {
		t.Errorf("expected valid definition with wrists declared, got %v", err)
	}
}

func TestValidate_InvalidSide(t *testing.T) {
	def := squatDefinition()
	def.Metrics["knee_y"] = Metric{Calc: CalcSingleJointY, Points: []string{"knee"}, Side: "upper"}

	err := def.Validate()
	if err == nil || !strings.Contains(err.Error(), "invalid side") {
		t.Errorf("expected invalid side error, got %v", err)
	}
}
