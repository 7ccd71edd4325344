package pose

import "math"

// Angle returns the angle at vertex b between rays b→a and b→c, in degrees.
// The result is always in [0, 180]. Degenerate inputs (a zero-length ray)
// return 0 rather than NaN: the cosine is clamped to [-1, 1] before acos.
func Angle(a, b, c Point3D) float64 {
	v1x, v1y, v1z := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	v2x, v2y, v2z := c.X-b.X, c.Y-b.Y, c.Z-b.Z

	mag1 := math.Sqrt(v1x*v1x + v1y*v1y + v1z*v1z)
	mag2 := math.Sqrt(v2x*v2x + v2y*v2y + v2z*v2z)
	if mag1 == 0 || mag2 == 0 {
		return 0
	}

	cos := (v1x*v2x + v1y*v2y + v1z*v2z) / (mag1 * mag2)
	cos = math.Max(-1, math.Min(1, cos))

	return math.Acos(cos) * 180 / math.Pi
}

// Distance3D returns the Euclidean distance between two points.
func Distance3D(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Distance2D returns the Euclidean distance between two points ignoring depth.
func Distance2D(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// VerticalDistance returns the signed vertical offset a.Y - b.Y.
// Image Y grows downward, so a positive result means a is below b.
func VerticalDistance(a, b Point3D) float64 {
	return a.Y - b.Y
}

// HorizontalDistance returns the absolute horizontal offset |a.X - b.X|.
func HorizontalDistance(a, b Point3D) float64 {
	return math.Abs(a.X - b.X)
}

// Midpoint returns the component-wise average of two points.
func Midpoint(a, b Point3D) Point3D {
	return Point3D{
		X: (a.X + b.X) / 2,
		Y: (a.Y + b.Y) / 2,
		Z: (a.Z + b.Z) / 2,
	}
}

// BilateralAverage averages two optional per-side values. If one side is
// missing the other side's value is returned unchanged. If both sides are
// missing ok is false: the metric is unavailable, not zero.
func BilateralAverage(left, right *float64) (float64, bool) {
	switch {
	case left != nil && right != nil:
		return (*left + *right) / 2, true
	case left != nil:
		return *left, true
	case right != nil:
		return *right, true
	default:
		return 0, false
	}
}

// BilateralAngle computes the joint angle independently for each side that
// has all three points present, then averages the available sides with
// BilateralAverage semantics. A triple is a slice of exactly three points
// (vertex in the middle); pass nil for a side with missing landmarks.
func BilateralAngle(left, right []Point3D) (float64, bool) {
	var lv, rv *float64
	if len(left) == 3 {
		v := Angle(left[0], left[1], left[2])
		lv = &v
	}
	if len(right) == 3 {
		v := Angle(right[0], right[1], right[2])
		rv = &v
	}
	return BilateralAverage(lv, rv)
}
