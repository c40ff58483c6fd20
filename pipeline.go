package sigwav

import (
	"fmt"
	"io"
)

// Generate pulls every sample out of src, runs it through the stages in
// order and writes the result to w as a complete wav stream. The stream
// goes out strictly one sample at a time; memory use does not depend on
// the signal length.
func Generate(w io.Writer, src Source, stages ...Stage) error {
	wr := NewWriter(w, src.SampleRate(), src.Len())

	if err := wr.WriteHeader(); err != nil {
		return err
	}

	for i := range src.Len() {
		x, err := src.Next()
		if err != nil {
			return fmt.Errorf("failed to produce sample %d: %w", i, err)
		}

		for _, stage := range stages {
			x = stage.Process(x)
		}

		if err := wr.WriteSample(x); err != nil {
			return err
		}
	}

	return wr.Close()
}

// Process decodes the wav stream at rs, runs every sample through the
// stages in order and writes the result to w. Sample rate and duration
// carry over unchanged.
func Process(w io.Writer, rs io.ReadSeeker, stages ...Stage) error {
	src, err := NewPCMSource(NewReader(rs))
	if err != nil {
		return err
	}

	return Generate(w, src, stages...)
}
