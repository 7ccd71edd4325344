// Package pose provides body landmark types and the geometry used to turn
// them into exercise metrics.
package pose

// Body landmark indices following the MediaPipe pose convention.
// See: https://developers.google.com/mediapipe/solutions/vision/pose_landmarker
const (
	Nose           = 0
	LeftEyeInner   = 1
	LeftEye        = 2
	LeftEyeOuter   = 3
	RightEyeInner  = 4
	RightEye       = 5
	RightEyeOuter  = 6
	LeftEar        = 7
	RightEar       = 8
	MouthLeft      = 9
	MouthRight     = 10
	LeftShoulder   = 11
	RightShoulder  = 12
	LeftElbow      = 13
	RightElbow     = 14
	LeftWrist      = 15
	RightWrist     = 16
	LeftPinky      = 17
	RightPinky     = 18
	LeftIndex      = 19
	RightIndex     = 20
	LeftThumb      = 21
	RightThumb     = 22
	LeftHip        = 23
	RightHip       = 24
	LeftKnee       = 25
	RightKnee      = 26
	LeftAnkle      = 27
	RightAnkle     = 28
	LeftHeel       = 29
	RightHeel      = 30
	LeftFootIndex  = 31
	RightFootIndex = 32
	NumLandmarks   = 33
)

// MinVisibility is the confidence below which a landmark is treated as
// missing for metric computation.
const MinVisibility = 0.5

// Point3D represents a 3D point in space with x, y, z coordinates.
// X and Y are normalized image coordinates (0..1); Z is depth relative
// to the hip midpoint with an arbitrary scale.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Frame represents one detected body: 33 pose landmarks with per-point
// visibility confidence. Frames are produced once per processed camera
// frame and are never mutated by consumers.
type Frame struct {
	Points      [NumLandmarks]Point3D `json:"points"`
	Visibility  [NumLandmarks]float64 `json:"visibility"`
	Score       float64               `json:"score"`
	TimestampMs int64                 `json:"ts"`
}

// Landmark returns the point at index if its visibility is at or above
// MinVisibility. Occluded or out-of-range landmarks report ok=false.
func (f *Frame) Landmark(index int) (Point3D, bool) {
	if f == nil || index < 0 || index >= NumLandmarks {
		return Point3D{}, false
	}
	if f.Visibility[index] < MinVisibility {
		return Point3D{}, false
	}
	return f.Points[index], true
}

// bilateralJoints maps anatomical joint names to their left/right landmark
// indices. Exercise definitions reference joints by these names.
var bilateralJoints = map[string][2]int{
	"shoulder":   {LeftShoulder, RightShoulder},
	"elbow":      {LeftElbow, RightElbow},
	"wrist":      {LeftWrist, RightWrist},
	"hip":        {LeftHip, RightHip},
	"knee":       {LeftKnee, RightKnee},
	"ankle":      {LeftAnkle, RightAnkle},
	"heel":       {LeftHeel, RightHeel},
	"foot_index": {LeftFootIndex, RightFootIndex},
	"ear":        {LeftEar, RightEar},
}

// unilateralJoints maps midline joint names to their single landmark index.
var unilateralJoints = map[string]int{
	"nose": Nose,
}

// JointIndices resolves an anatomical joint name to landmark indices.
// Bilateral joints resolve to a left and a right index; midline joints
// resolve to a single index with right < 0.
func JointIndices(name string) (left, right int, ok bool) {
	if pair, found := bilateralJoints[name]; found {
		return pair[0], pair[1], true
	}
	if idx, found := unilateralJoints[name]; found {
		return idx, -1, true
	}
	return 0, 0, false
}

// KnownJoint reports whether name is a resolvable joint name.
func KnownJoint(name string) bool {
	_, _, ok := JointIndices(name)
	return ok
}
