package exercise

// Quality tier names, best first.
const (
	TierExcellent = "excellent"
	TierGood      = "good"
	TierDefault   = "default"
)

// Quality is the assessed form feedback for one repetition.
type Quality struct {
	Tier    string `json:"tier"`
	Message string `json:"message"`
}

// AtStartingPosition reports whether the metrics satisfy the exercise's
// starting-position conditions.
func AtStartingPosition(def *Definition, metrics Metrics) bool {
	return Evaluate(metrics, def.Positions.Starting.Conditions)
}

// AtRepPosition reports whether the metrics satisfy the exercise's
// rep-position conditions.
func AtRepPosition(def *Definition, metrics Metrics) bool {
	return Evaluate(metrics, def.Positions.Rep.Conditions)
}

// AssessQuality walks the quality ladder: excellent first, then good, then
// the unconditional default. First matching tier wins; it is a strict
// priority ladder, not a scored blend. Tiers without conditions are never
// matched directly, only reached as the fallback.
func AssessQuality(def *Definition, metrics Metrics) Quality {
	if lvl := def.Quality.Excellent; lvl != nil && len(lvl.Conditions) > 0 && Evaluate(metrics, lvl.Conditions) {
		return Quality{Tier: TierExcellent, Message: lvl.Message}
	}
	if lvl := def.Quality.Good; lvl != nil && len(lvl.Conditions) > 0 && Evaluate(metrics, lvl.Conditions) {
		return Quality{Tier: TierGood, Message: lvl.Message}
	}
	return Quality{Tier: TierDefault, Message: def.Quality.Default.Message}
}
