package sigwav

import "fmt"

// Stage transforms one sample at a time. Stages may carry state between
// calls; the pipeline never resets a stage mid stream.
type Stage interface {
	Process(x float32) float32
}

// Gain scales every sample by a fixed factor. It never clips on its
// own; values pushed outside [-1, 1] are clipped when encoded.
type Gain struct {
	g float32
}

// NewGain creates a gain stage. Any factor is allowed, including zero
// and negative ones.
func NewGain(g float64) *Gain {
	return &Gain{g: float32(g)}
}

// Process implements the Stage interface.
func (f *Gain) Process(x float32) float32 {
	return f.g * x
}

// LowPass is a one-pole RC low-pass filter,
//
//	y[n] = y[n-1] + a*(x[n] - y[n-1])
//
// with a = dt/(rc+dt), dt = 1/rate, rc = 1/(2π·cutoff). The coefficient
// is fixed at construction and the state persists for the life of the
// stage.
type LowPass struct {
	a  float32
	y1 float32
}

// NewLowPass creates a low-pass stage for the given rate and cutoff.
func NewLowPass(rate int, cutoff float64) (*LowPass, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d must be > 0", ErrInvalidParameter, rate)
	}

	if cutoff <= 0 {
		return nil, fmt.Errorf("%w: cutoff %v Hz must be > 0", ErrInvalidParameter, cutoff)
	}

	dt := 1 / float64(rate)
	rc := 1 / (twoPi * cutoff)

	return &LowPass{a: float32(dt / (rc + dt))}, nil
}

// Process implements the Stage interface.
func (f *LowPass) Process(x float32) float32 {
	f.y1 += f.a * (x - f.y1)

	return f.y1
}
