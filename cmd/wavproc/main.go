// This tool streams a wav file through a single processing stage.
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
  wavproc gain <in.wav> <out.wav> <gain>
  wavproc lpf  <in.wav> <out.wav> <cutoff_hz>

Notes: PCM 16-bit mono only.
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
	if len(args) != 4 {
		return fmt.Errorf("%w: expected 4 arguments, got %d", errUsage, len(args))
	}

	mode := args[0]
	inPath := args[1]
	outPath := args[2]

	if mode != "gain" && mode != "lpf" {
		return fmt.Errorf("%w: unknown mode %q", errUsage, mode)
	}

	param, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return fmt.Errorf("%w: invalid parameter %q", errUsage, args[3])
	}

	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	r := sigwav.NewReader(in)

	hdr, err := r.ReadHeader()
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inPath, err)
	}

	stage, err := newStage(mode, param, hdr)
	if err != nil {
		return err
	}

	src, err := sigwav.NewPCMSource(r)
	if err != nil {
		return err
	}

	log.Printf("applying %s %g to %s (%s)", mode, param, inPath, hdr)

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", outPath, err)
	}
	defer out.Close()

	return sigwav.Generate(out, src, stage)
}

// newStage resolves the mode to a concrete stage once, before any
// sample flows. The low-pass coefficient derives from the input file's
// own rate.
func newStage(mode string, param float64, hdr sigwav.Header) (sigwav.Stage, error) {
	switch mode {
	case "gain":
		return sigwav.NewGain(param), nil
	case "lpf":
		return sigwav.NewLowPass(int(hdr.SampleRate), param)
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", errUsage, mode)
	}
}
