package sigwav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
)

var (
	errNilWriter          = errors.New("can't write to a nil writer")
	errNilBuffer          = errors.New("can't add a nil buffer")
	errAlreadyWroteHdr    = errors.New("already wrote header")
	errInvalidSampleCount = errors.New("invalid sample count")
	errTooManyFrames      = errors.New("more frames than declared")
	errMissingFrames      = errors.New("fewer frames than declared")
)

// Writer encodes 16-bit mono PCM samples into a wav container.
//
// The payload length is declared up front, so the complete header is
// emitted before the first sample and never patched afterwards. The
// writer does not seek; any io.Writer will do.
type Writer struct {
	w io.Writer

	SampleRate int
	NumSamples int

	WrittenBytes int
	frames       int
	wroteHeader  bool
}

// NewWriter creates a writer that will hold numSamples samples at the
// given rate. Don't forget to Close() the writer, it reports frame
// count shortfalls.
func NewWriter(w io.Writer, sampleRate, numSamples int) *Writer {
	return &Writer{
		w:          w,
		SampleRate: sampleRate,
		NumSamples: numSamples,
	}
}

// AddLE serializes and adds the passed value using little endian.
func (wr *Writer) AddLE(src any) error {
	wr.WrittenBytes += binary.Size(src)

	err := binary.Write(wr.w, binary.LittleEndian, src)
	if err != nil {
		return fmt.Errorf("failed to write little endian: %w", err)
	}

	return nil
}

// WriteHeader emits the complete 44-byte header. The first WriteSample
// calls it for you; calling it twice is an error.
func (wr *Writer) WriteHeader() error {
	return wr.writeHeader()
}

func (wr *Writer) writeHeader() error {
	if wr.wroteHeader {
		return errAlreadyWroteHdr
	}

	if wr.w == nil {
		return errNilWriter
	}

	if wr.NumSamples < 0 || uint64(wr.NumSamples) > (math.MaxUint32-headerSize+8)/blockAlign {
		return fmt.Errorf("%w: %d", errInvalidSampleCount, wr.NumSamples)
	}

	wr.wroteHeader = true

	dataBytes := uint32(wr.NumSamples) * blockAlign

	// riff ID
	err := wr.AddLE(riff.RiffID)
	if err != nil {
		return err
	}

	// file size minus the 8 bytes already written
	err = wr.AddLE(uint32(headerSize-8) + dataBytes)
	if err != nil {
		return err
	}

	// wave headers
	err = wr.AddLE(riff.WavFormatID)
	if err != nil {
		return err
	}

	// form
	err = wr.AddLE(riff.FmtID)
	if err != nil {
		return err
	}

	err = wr.writeFmtChunk()
	if err != nil {
		return err
	}

	// sound header
	err = wr.AddLE(riff.DataFormatID)
	if err != nil {
		return fmt.Errorf("error encoding sound header %w", err)
	}

	return wr.AddLE(dataBytes)
}

func (wr *Writer) writeFmtChunk() error {
	err := wr.AddLE(uint32(16))
	if err != nil {
		return err
	}

	err = wr.AddLE(uint16(wavFormatPCM))
	if err != nil {
		return err
	}

	err = wr.AddLE(uint16(numChannels))
	if err != nil {
		return fmt.Errorf("error encoding the number of channels - %w", err)
	}

	err = wr.AddLE(uint32(wr.SampleRate))
	if err != nil {
		return fmt.Errorf("error encoding the sample rate - %w", err)
	}

	err = wr.AddLE(uint32(wr.SampleRate * blockAlign))
	if err != nil {
		return fmt.Errorf("error encoding the avg bytes per sec - %w", err)
	}

	err = wr.AddLE(uint16(blockAlign))
	if err != nil {
		return err
	}

	err = wr.AddLE(uint16(bitsPerSample))
	if err != nil {
		return fmt.Errorf("error encoding bits per sample - %w", err)
	}

	return nil
}

// WriteSample encodes and writes a single sample to the underlying
// writer. Writing more samples than declared is an error.
func (wr *Writer) WriteSample(x float32) error {
	if !wr.wroteHeader {
		err := wr.writeHeader()
		if err != nil {
			return err
		}
	}

	if wr.frames >= wr.NumSamples {
		return fmt.Errorf("%w: %d declared", errTooManyFrames, wr.NumSamples)
	}

	wr.frames++

	return wr.AddLE(EncodeSample(x))
}

// Write encodes and writes the passed buffer to the underlying writer.
// Don't forget to Close() the writer or the frame count won't be checked.
func (wr *Writer) Write(buf *audio.Float32Buffer) error {
	if buf == nil {
		return errNilBuffer
	}

	for _, x := range buf.Data {
		err := wr.WriteSample(x)
		if err != nil {
			return err
		}
	}

	return nil
}

// Close makes sure the header went out and the declared frame count was
// honored. Note that the underlying writer is NOT being closed.
func (wr *Writer) Close() error {
	if wr == nil || wr.w == nil {
		return nil
	}

	if !wr.wroteHeader {
		err := wr.writeHeader()
		if err != nil {
			return err
		}
	}

	if wr.frames != wr.NumSamples {
		return fmt.Errorf("%w: declared %d, wrote %d", errMissingFrames, wr.NumSamples, wr.frames)
	}

	if f, ok := wr.w.(*os.File); ok {
		return f.Sync()
	}

	return nil
}
