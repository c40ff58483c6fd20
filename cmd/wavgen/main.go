// This tool writes synthetic test signals to wav files.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/cwbudde/sigwav"
)

const usageMessage = `Usage:
  wavgen mode out.wav sample_rate seconds f1 amplitude [f2]
Modes: sine, noise, impulse, silence, chirp
  sine:    f1 is the frequency in Hz
  noise:   f1 is ignored
  impulse: f1 is ignored
  silence: f1 and amplitude are ignored
  chirp:   sweeps from f1 to f2 Hz, f2 is required
`

var errUsage = errors.New("bad usage")

func main() {
	err := run(os.Args[1:])
	if err == nil {
		return
	}

	if errors.Is(err, errUsage) {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprint(os.Stderr, usageMessage)
		os.Exit(2)
	}

	log.Fatal(err)
}

func run(args []string) error {
	if len(args) < 6 {
		return fmt.Errorf("%w: expected at least 6 arguments, got %d", errUsage, len(args))
	}

	mode := args[0]
	outPath := args[1]

	rate, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("%w: invalid sample_rate %q", errUsage, args[2])
	}

	seconds, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return fmt.Errorf("%w: invalid seconds %q", errUsage, args[3])
	}

	f1, err := strconv.ParseFloat(args[4], 64)
	if err != nil {
		return fmt.Errorf("%w: invalid f1 %q", errUsage, args[4])
	}

	amp, err := strconv.ParseFloat(args[5], 64)
	if err != nil {
		return fmt.Errorf("%w: invalid amplitude %q", errUsage, args[5])
	}

	src, err := newSource(mode, rate, seconds, f1, amp, args[6:])
	if err != nil {
		return err
	}

	if src.Len() == 0 {
		return errors.New("duration too short")
	}

	log.Printf("generating a %g sec %s wav at %d Hz", seconds, mode, rate)

	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", outPath, err)
	}
	defer file.Close()

	return sigwav.Generate(file, src)
}

// newSource resolves the mode to a concrete source once, before any
// sample is produced.
func newSource(mode string, rate int, seconds, f1, amp float64, rest []string) (sigwav.Source, error) {
	switch mode {
	case "sine":
		return sigwav.NewSine(rate, seconds, f1, amp)
	case "noise":
		return sigwav.NewNoise(rate, seconds, amp, nil)
	case "impulse":
		return sigwav.NewImpulse(rate, seconds, amp)
	case "silence":
		return sigwav.NewSilence(rate, seconds)
	case "chirp":
		if len(rest) < 1 {
			return nil, fmt.Errorf("%w: chirp mode requires f2", errUsage)
		}

		f2, err := strconv.ParseFloat(rest[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid f2 %q", errUsage, rest[0])
		}

		return sigwav.NewChirp(rate, seconds, f1, f2, amp)
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", errUsage, mode)
	}
}
