package sigwav

import (
	"errors"
	"io"
	"math"
	"math/rand"
	"testing"
)

func collectSamples(t *testing.T, src Source, want int) []float32 {
	t.Helper()

	out := make([]float32, 0, want)
	for {
		x, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("sample %d: %v", len(out), err)
		}
		out = append(out, x)
	}

	if len(out) != want {
		t.Fatalf("source produced %d samples, want %d", len(out), want)
	}
	return out
}

func TestSineMatchesPhaseAccumulator(t *testing.T) {
	const rate = 8000

	// Runtime values, not constants: the reference accumulator must
	// round exactly like the generator.
	freq := 440.0
	amp := float32(0.5)

	src, err := NewSine(rate, 0.01, freq, float64(amp))
	if err != nil {
		t.Fatalf("failed to create source: %v", err)
	}
	if src.SampleRate() != rate {
		t.Fatalf("sample rate %d, want %d", src.SampleRate(), rate)
	}
	if src.Len() != 80 {
		t.Fatalf("source length %d, want 80", src.Len())
	}

	phase := 0.0
	inc := twoPi * freq / float64(rate)

	for i := range src.Len() {
		got, err := src.Next()
		if err != nil {
			t.Fatalf("sample %d: %v", i, err)
		}

		want := amp * float32(math.Sin(phase))
		phase += inc
		if phase >= twoPi {
			phase -= twoPi
		}

		if got != want {
			t.Fatalf("sample %d: got %v, want %v", i, got, want)
		}
	}

	if _, err := src.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("got %v past the last sample, want io.EOF", err)
	}
	if _, err := src.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("got %v on repeated read past the end, want io.EOF", err)
	}
}

func TestSinePhaseStaysWrapped(t *testing.T) {
	freq := 3999.0

	src, err := NewSine(8000, 0.025, freq, 1)
	if err != nil {
		t.Fatalf("failed to create source: %v", err)
	}

	phase := 0.0
	inc := twoPi * freq / 8000.0

	for i := range src.Len() {
		got, err := src.Next()
		if err != nil {
			t.Fatalf("sample %d: %v", i, err)
		}

		want := float32(math.Sin(phase))
		phase += inc
		if phase >= twoPi {
			phase -= twoPi
		}

		if got != want {
			t.Fatalf("sample %d: got %v, want %v", i, got, want)
		}
		if src.phase >= twoPi || src.phase < 0 {
			t.Fatalf("sample %d: phase %v escaped [0, 2π)", i, src.phase)
		}
	}
}

func TestGeneratorSampleCountRounding(t *testing.T) {
	tests := []struct {
		name    string
		rate    int
		seconds float64
		want    int
	}{
		{name: "whole second", rate: 44100, seconds: 1, want: 44100},
		{name: "power of two second", rate: 8192, seconds: 1, want: 8192},
		{name: "half sample rounds away", rate: 8192, seconds: 6.103515625e-05, want: 1},
		{name: "quarter sample rounds down", rate: 8192, seconds: 3.0517578125e-05, want: 0},
		{name: "three quarter sample rounds up", rate: 8192, seconds: 9.1552734375e-05, want: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src, err := NewSilence(tc.rate, tc.seconds)
			if err != nil {
				t.Fatalf("failed to create source: %v", err)
			}
			if src.Len() != tc.want {
				t.Fatalf("Len() = %d, want %d", src.Len(), tc.want)
			}
		})
	}
}

func TestGeneratorValidation(t *testing.T) {
	tests := []struct {
		name string
		make func() error
	}{
		{
			name: "rate below range",
			make: func() error { _, err := NewSilence(7999, 1); return err },
		},
		{
			name: "rate above range",
			make: func() error { _, err := NewSine(192001, 1, 440, 1); return err },
		},
		{
			name: "zero rate",
			make: func() error { _, err := NewNoise(0, 1, 1, nil); return err },
		},
		{
			name: "zero duration",
			make: func() error { _, err := NewImpulse(8000, 0, 1); return err },
		},
		{
			name: "negative duration",
			make: func() error { _, err := NewSine(8000, -1, 440, 1); return err },
		},
		{
			name: "chirp start frequency zero",
			make: func() error { _, err := NewChirp(8000, 1, 0, 100, 1); return err },
		},
		{
			name: "chirp end frequency negative",
			make: func() error { _, err := NewChirp(8000, 1, 100, -5, 1); return err },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.make(); !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("got %v, want ErrInvalidParameter", err)
			}
		})
	}

	// Boundary rates are inside the range.
	if _, err := NewSilence(8000, 1); err != nil {
		t.Fatalf("rate 8000 rejected: %v", err)
	}
	if _, err := NewSilence(192000, 1); err != nil {
		t.Fatalf("rate 192000 rejected: %v", err)
	}
}

func TestSilenceIsAllZero(t *testing.T) {
	src, err := NewSilence(8000, 0.25)
	if err != nil {
		t.Fatalf("failed to create source: %v", err)
	}

	for _, x := range collectSamples(t, src, 2000) {
		if x != 0 {
			t.Fatalf("silence produced %v", x)
		}
	}
}

func TestImpulseFiresOnce(t *testing.T) {
	src, err := NewImpulse(8000, 0.01, 0.5)
	if err != nil {
		t.Fatalf("failed to create source: %v", err)
	}

	samples := collectSamples(t, src, 80)
	if samples[0] != 0.5 {
		t.Fatalf("first sample %v, want 0.5", samples[0])
	}
	for i, x := range samples[1:] {
		if x != 0 {
			t.Fatalf("sample %d: got %v, want 0", i+1, x)
		}
	}
}

func TestChirpSweepsLinearly(t *testing.T) {
	const (
		rate    = 8000
		samples = 10
		seconds = float64(samples) / rate
		f1      = 1.0
		f2      = 2.0
	)

	src, err := NewChirp(rate, seconds, f1, f2, 1)
	if err != nil {
		t.Fatalf("failed to create source: %v", err)
	}
	if src.Len() != samples {
		t.Fatalf("source length %d, want %d", src.Len(), samples)
	}

	if _, err := src.Next(); err != nil {
		t.Fatalf("first sample: %v", err)
	}
	if want := twoPi * src.f1 / float64(rate); src.phase != want {
		t.Fatalf("first increment %v, want %v", src.phase, want)
	}

	prev := src.phase
	lastInc := prev
	for i := 1; i < samples; i++ {
		if _, err := src.Next(); err != nil {
			t.Fatalf("sample %d: %v", i, err)
		}

		inc := src.phase - prev
		if inc < lastInc {
			t.Fatalf("sample %d: increment %v fell below %v", i, inc, lastInc)
		}
		prev = src.phase
		lastInc = inc
	}

	// After the full sweep the increment sits one step short of the end
	// frequency: the last sample is computed at t=(n-1)/rate, not t=T.
	target := twoPi * f2 / rate
	step := twoPi * (f2 - f1) / (samples * rate)
	if lastInc >= target || target-lastInc > step+1e-15 {
		t.Fatalf("final increment %v, want just under %v", lastInc, target)
	}
}

func TestChirpWithEqualFrequenciesMatchesSine(t *testing.T) {
	chirp, err := NewChirp(8000, 0.01, 440, 440, 0.8)
	if err != nil {
		t.Fatalf("failed to create chirp: %v", err)
	}
	sine, err := NewSine(8000, 0.01, 440, 0.8)
	if err != nil {
		t.Fatalf("failed to create sine: %v", err)
	}

	for i := range sine.Len() {
		want, err := sine.Next()
		if err != nil {
			t.Fatalf("sine sample %d: %v", i, err)
		}
		got, err := chirp.Next()
		if err != nil {
			t.Fatalf("chirp sample %d: %v", i, err)
		}
		if got != want {
			t.Fatalf("sample %d: chirp %v, sine %v", i, got, want)
		}
	}
}

func TestNoiseSeededIsReproducible(t *testing.T) {
	first, err := NewNoise(8000, 0.01, 0.5, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("failed to create source: %v", err)
	}
	second, err := NewNoise(8000, 0.01, 0.5, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("failed to create source: %v", err)
	}

	a := collectSamples(t, first, 80)
	b := collectSamples(t, second, 80)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs between identical seeds: %v vs %v", i, a[i], b[i])
		}
		if a[i] > 0.5 || a[i] < -0.5 {
			t.Fatalf("sample %d: %v exceeds the amplitude", i, a[i])
		}
	}

	other, err := NewNoise(8000, 0.01, 0.5, rand.New(rand.NewSource(43)))
	if err != nil {
		t.Fatalf("failed to create source: %v", err)
	}
	c := collectSamples(t, other, 80)

	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestNoiseDefaultsToClockSeed(t *testing.T) {
	src, err := NewNoise(8000, 0.01, 1, nil)
	if err != nil {
		t.Fatalf("failed to create source: %v", err)
	}

	for i, x := range collectSamples(t, src, 80) {
		if x > 1 || x < -1 {
			t.Fatalf("sample %d: %v out of range", i, x)
		}
	}
}
