package sigwav

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"
)

// ErrInvalidParameter is returned when a generator or filter is
// constructed with an out of range rate, duration, frequency or cutoff.
var ErrInvalidParameter = errors.New("invalid parameter")

const twoPi = 2 * math.Pi

// generator carries the bookkeeping shared by all synthetic sources.
type generator struct {
	rate  int
	total int
	pos   int
}

func newGenerator(rate int, seconds float64) (generator, error) {
	if !ValidSampleRate(rate) {
		return generator{}, fmt.Errorf("%w: sample rate %d out of range [%d, %d]",
			ErrInvalidParameter, rate, MinSampleRate, MaxSampleRate)
	}

	if seconds <= 0 {
		return generator{}, fmt.Errorf("%w: duration %v must be > 0", ErrInvalidParameter, seconds)
	}

	return generator{
		rate:  rate,
		total: int(math.Round(seconds * float64(rate))),
	}, nil
}

// SampleRate reports the rate the source was built for.
func (g generator) SampleRate() int {
	return g.rate
}

// Len reports the total number of samples the source will produce.
func (g generator) Len() int {
	return g.total
}

// Silence produces zero samples for the whole duration. There is no
// amplitude; silence is silence at any level.
type Silence struct {
	generator
}

// NewSilence creates a silence source.
func NewSilence(rate int, seconds float64) (*Silence, error) {
	g, err := newGenerator(rate, seconds)
	if err != nil {
		return nil, err
	}

	return &Silence{generator: g}, nil
}

// Next implements the Source interface.
func (s *Silence) Next() (float32, error) {
	if s.pos >= s.total {
		return 0, io.EOF
	}

	s.pos++

	return 0, nil
}

// Impulse produces a single sample at the configured amplitude followed
// by silence. Handy for looking at filter responses.
type Impulse struct {
	generator
	amp float32
}

// NewImpulse creates an impulse source.
func NewImpulse(rate int, seconds, amp float64) (*Impulse, error) {
	g, err := newGenerator(rate, seconds)
	if err != nil {
		return nil, err
	}

	return &Impulse{generator: g, amp: float32(amp)}, nil
}

// Next implements the Source interface.
func (s *Impulse) Next() (float32, error) {
	if s.pos >= s.total {
		return 0, io.EOF
	}

	s.pos++
	if s.pos == 1 {
		return s.amp, nil
	}

	return 0, nil
}

// Sine produces amp·sin(2π·freq·t). The phase accumulates per sample
// and is wrapped by subtracting one turn once it reaches 2π.
type Sine struct {
	generator
	amp   float32
	inc   float64
	phase float64
}

// NewSine creates a sine source. The frequency is not constrained; zero
// and negative values produce the signal the math says they do.
func NewSine(rate int, seconds, freq, amp float64) (*Sine, error) {
	g, err := newGenerator(rate, seconds)
	if err != nil {
		return nil, err
	}

	return &Sine{
		generator: g,
		amp:       float32(amp),
		inc:       twoPi * freq / float64(rate),
	}, nil
}

// Next implements the Source interface.
func (s *Sine) Next() (float32, error) {
	if s.pos >= s.total {
		return 0, io.EOF
	}

	s.pos++

	x := s.amp * float32(math.Sin(s.phase))

	s.phase += s.inc
	if s.phase >= twoPi {
		s.phase -= twoPi
	}

	return x, nil
}

// Chirp sweeps linearly from f1 to f2 over the whole duration. The
// instantaneous frequency drives the same wrapped phase accumulator as
// Sine.
type Chirp struct {
	generator
	amp      float32
	f1, f2   float64
	duration float64
	phase    float64
}

// NewChirp creates a linear chirp source. Both frequencies must be
// positive.
func NewChirp(rate int, seconds, f1, f2, amp float64) (*Chirp, error) {
	g, err := newGenerator(rate, seconds)
	if err != nil {
		return nil, err
	}

	if f1 <= 0 || f2 <= 0 {
		return nil, fmt.Errorf("%w: chirp frequencies must be > 0, got %v and %v",
			ErrInvalidParameter, f1, f2)
	}

	return &Chirp{
		generator: g,
		amp:       float32(amp),
		f1:        f1,
		f2:        f2,
		duration:  seconds,
	}, nil
}

// Next implements the Source interface.
func (c *Chirp) Next() (float32, error) {
	if c.pos >= c.total {
		return 0, io.EOF
	}

	// f(t) = f1 + (f2-f1)*t/T, linear in elapsed time
	t := float64(c.pos) / float64(c.rate)
	ft := c.f1 + (c.f2-c.f1)*(t/c.duration)

	c.pos++

	x := c.amp * float32(math.Sin(c.phase))

	c.phase += twoPi * ft / float64(c.rate)
	if c.phase >= twoPi {
		c.phase -= twoPi
	}

	return x, nil
}

// Noise produces white noise, every sample drawn uniform in [-1, 1] and
// scaled by the amplitude.
type Noise struct {
	generator
	amp float32
	rng *rand.Rand
}

// NewNoise creates a white noise source. A nil rng gets replaced by a
// clock-seeded one, so output differs from run to run; pass a fixed
// seed for reproducible noise.
func NewNoise(rate int, seconds, amp float64, rng *rand.Rand) (*Noise, error) {
	g, err := newGenerator(rate, seconds)
	if err != nil {
		return nil, err
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Noise{generator: g, amp: float32(amp), rng: rng}, nil
}

// Next implements the Source interface.
func (s *Noise) Next() (float32, error) {
	if s.pos >= s.total {
		return 0, io.EOF
	}

	s.pos++

	return s.amp * float32(2*s.rng.Float64()-1), nil
}
