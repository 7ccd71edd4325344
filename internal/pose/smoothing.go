package pose

// MovingAverage smooths a noisy scalar signal over a fixed-size trailing
// window. The zero value is not usable; create one with NewMovingAverage.
type MovingAverage struct {
	window  int
	samples []float64
}

// NewMovingAverage creates a MovingAverage with the given window size.
// Window sizes below 1 are treated as 1.
func NewMovingAverage(window int) *MovingAverage {
	if window < 1 {
		window = 1
	}
	return &MovingAverage{
		window:  window,
		samples: make([]float64, 0, window),
	}
}

// Add appends a sample, evicting the oldest once the window is full, and
// returns the updated mean.
func (m *MovingAverage) Add(value float64) float64 {
	if len(m.samples) >= m.window {
		copy(m.samples, m.samples[1:])
		m.samples = m.samples[:m.window-1]
	}
	m.samples = append(m.samples, value)

	mean, _ := m.Mean()
	return mean
}

// Mean returns the current mean of the window. With zero samples the mean
// is unavailable (ok=false), never zero.
func (m *MovingAverage) Mean() (float64, bool) {
	if len(m.samples) == 0 {
		return 0, false
	}
	var sum float64
	for _, s := range m.samples {
		sum += s
	}
	return sum / float64(len(m.samples)), true
}

// Count returns the number of samples currently in the window.
func (m *MovingAverage) Count() int {
	return len(m.samples)
}

// Reset discards all accumulated samples.
func (m *MovingAverage) Reset() {
	m.samples = m.samples[:0]
}
