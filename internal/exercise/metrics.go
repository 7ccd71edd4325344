package exercise

import (
	"log"
	"math"

	"github.com/ayusman/repcoach/internal/pose"
)

// ComputeMetrics evaluates every metric of the definition against one frame
// and returns the resulting metric map. Joints missing from the frame are
// silently omitted; the metrics that depend on them come out unavailable and
// the condition evaluator fails closed downstream. Called once per incoming
// frame, never cached.
func ComputeMetrics(def *Definition, frame *pose.Frame) Metrics {
	joints := resolveJoints(def, frame)

	metrics := make(Metrics, len(def.Metrics))
	for name, m := range def.Metrics {
		if value, ok := computeMetric(name, m, joints); ok {
			metrics[name] = value
		}
	}
	return metrics
}

// jointMap holds the joints present in the current frame, keyed "left_hip",
// "right_knee" for bilateral joints and by plain name for midline ones.
type jointMap map[string]pose.Point3D

func resolveJoints(def *Definition, frame *pose.Frame) jointMap {
	joints := make(jointMap)
	for _, name := range def.Joints.Required {
		left, right, ok := pose.JointIndices(name)
		if !ok {
			// Validation rejects unknown joints at load time; an unknown
			// name here is simply omitted, like an occluded landmark.
			continue
		}

		if right < 0 {
			if p, present := frame.Landmark(left); present {
				joints[name] = p
			}
			continue
		}

		if p, present := frame.Landmark(left); present {
			joints["left_"+name] = p
		}
		if def.Joints.Bilateral {
			if p, present := frame.Landmark(right); present {
				joints["right_"+name] = p
			}
		}
	}
	return joints
}

// point looks up a joint for the given side, falling back to the plain name
// for midline joints such as the nose.
func (j jointMap) point(side, name string) (pose.Point3D, bool) {
	if p, ok := j[name]; ok {
		return p, true
	}
	p, ok := j[side+"_"+name]
	return p, ok
}

// triple resolves three named points on one side, or nil if any is missing.
func (j jointMap) triple(side string, names []string) []pose.Point3D {
	pts := make([]pose.Point3D, 0, 3)
	for _, n := range names {
		p, ok := j.point(side, n)
		if !ok {
			return nil
		}
		pts = append(pts, p)
	}
	return pts
}

// computeMetric dispatches on the calculation kind. It returns ok=false when
// the metric is unavailable for this frame. It never fails: a frame must
// always produce a complete metric map even when configuration is
// incomplete, so unknown kinds log a warning and read as 0.
func computeMetric(name string, m Metric, joints jointMap) (float64, bool) {
	switch m.Calc {
	case CalcBilateralAngle:
		return pose.BilateralAngle(joints.triple("left", m.Points), joints.triple("right", m.Points))

	case CalcUnilateralAngle:
		side := m.Side
		if side == "" {
			side = "left"
		}
		pts := joints.triple(side, m.Points)
		if pts == nil {
			return 0, true
		}
		return pose.Angle(pts[0], pts[1], pts[2]), true

	case CalcVerticalDistanceAverage:
		return sideDistanceAverage(joints, m, pose.VerticalDistance)

	case CalcDistance2DAverage:
		return sideDistanceAverage(joints, m, pose.Distance2D)

	case CalcSingleJointY:
		side := m.Side
		if side == "" {
			side = "left"
		}
		p, ok := joints.point(side, m.Points[0])
		if !ok {
			return 0, false
		}
		return p.Y, true

	case CalcHorizontalDistanceAverage:
		left, lok := joints.point("left", "wrist")
		right, rok := joints.point("right", "wrist")
		if !lok || !rok {
			return 0, false
		}
		return pose.HorizontalDistance(left, right), true

	default:
		log.Printf("metric %s: unknown calculation %q, reading as 0", name, m.Calc)
		return 0, true
	}
}

// sideDistanceAverage computes a two-point distance per side and averages
// the available sides.
func sideDistanceAverage(joints jointMap, m Metric, dist func(a, b pose.Point3D) float64) (float64, bool) {
	var left, right *float64

	if a, aok := joints.point("left", m.Points[0]); aok {
		if b, bok := joints.point("left", m.Points[1]); bok {
			v := dist(a, b)
			left = &v
		}
	}
	if a, aok := joints.point("right", m.Points[0]); aok {
		if b, bok := joints.point("right", m.Points[1]); bok {
			v := dist(a, b)
			right = &v
		}
	}

	avg, ok := pose.BilateralAverage(left, right)
	if !ok {
		return 0, false
	}
	if m.Absolute {
		avg = math.Abs(avg)
	}
	return avg, true
}
