package pose

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It plays back a pre-configured sequence of frames, one per Detect call.
type MockDetector struct {
	mu     sync.Mutex
	frames []*Frame
	index  int
	loop   bool
	err    error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetFrames sets the frame sequence returned by Detect. With loop set the
// sequence repeats; otherwise Detect returns nil once exhausted.
func (m *MockDetector) SetFrames(frames []*Frame, loop bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frames = frames
	m.index = 0
	m.loop = loop
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Detect returns the next pre-configured frame or error.
func (m *MockDetector) Detect(frame *gocv.Mat) (*Frame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	if len(m.frames) == 0 {
		return nil, nil
	}
	if m.index >= len(m.frames) {
		if !m.loop {
			return nil, nil
		}
		m.index = 0
	}

	f := m.frames[m.index]
	m.index++
	return f, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// StandingFrame returns a preset Frame for an upright standing posture.
// Knee and hip angles are close to 180 degrees.
func StandingFrame() *Frame {
	f := &Frame{Score: 0.97}
	for i := range f.Visibility {
		f.Visibility[i] = 0.95
	}

	f.Points[Nose] = Point3D{X: 0.50, Y: 0.18}
	f.Points[LeftEar] = Point3D{X: 0.46, Y: 0.19}
	f.Points[RightEar] = Point3D{X: 0.54, Y: 0.19}

	f.Points[LeftShoulder] = Point3D{X: 0.44, Y: 0.30}
	f.Points[RightShoulder] = Point3D{X: 0.56, Y: 0.30}
	f.Points[LeftElbow] = Point3D{X: 0.42, Y: 0.42}
	f.Points[RightElbow] = Point3D{X: 0.58, Y: 0.42}
	f.Points[LeftWrist] = Point3D{X: 0.41, Y: 0.53}
	f.Points[RightWrist] = Point3D{X: 0.59, Y: 0.53}

	f.Points[LeftHip] = Point3D{X: 0.45, Y: 0.55}
	f.Points[RightHip] = Point3D{X: 0.55, Y: 0.55}
	f.Points[LeftKnee] = Point3D{X: 0.45, Y: 0.72}
	f.Points[RightKnee] = Point3D{X: 0.55, Y: 0.72}
	f.Points[LeftAnkle] = Point3D{X: 0.45, Y: 0.90}
	f.Points[RightAnkle] = Point3D{X: 0.55, Y: 0.90}
	f.Points[LeftHeel] = Point3D{X: 0.44, Y: 0.92}
	f.Points[RightHeel] = Point3D{X: 0.56, Y: 0.92}
	f.Points[LeftFootIndex] = Point3D{X: 0.43, Y: 0.93}
	f.Points[RightFootIndex] = Point3D{X: 0.57, Y: 0.93}

	return f
}

// SquatBottomFrame returns a preset Frame for the bottom of a deep squat.
// Hips sit slightly below knee level, knee angle around 70 degrees.
func SquatBottomFrame() *Frame {
	f := StandingFrame()

	f.Points[Nose] = Point3D{X: 0.50, Y: 0.40}
	f.Points[LeftEar] = Point3D{X: 0.46, Y: 0.41}
	f.Points[RightEar] = Point3D{X: 0.54, Y: 0.41}

	f.Points[LeftShoulder] = Point3D{X: 0.41, Y: 0.48}
	f.Points[RightShoulder] = Point3D{X: 0.59, Y: 0.48}
	f.Points[LeftElbow] = Point3D{X: 0.35, Y: 0.50}
	f.Points[RightElbow] = Point3D{X: 0.65, Y: 0.50}
	f.Points[LeftWrist] = Point3D{X: 0.30, Y: 0.50}
	f.Points[RightWrist] = Point3D{X: 0.70, Y: 0.50}

	f.Points[LeftHip] = Point3D{X: 0.39, Y: 0.74}
	f.Points[RightHip] = Point3D{X: 0.61, Y: 0.74}
	// Knees and below stay where they were in the standing frame.

	return f
}
