package sigwav

import (
	"fmt"
	"time"

	"github.com/go-audio/audio"
)

const (
	// MinSampleRate and MaxSampleRate bound the rates accepted when
	// generating files. Existing files may carry any rate on read.
	MinSampleRate = 8000
	MaxSampleRate = 192000

	wavFormatPCM  = 1
	numChannels   = 1
	bitsPerSample = 16
	blockAlign    = numChannels * bitsPerSample / 8

	headerSize = 44
)

// Header describes the negotiated format of a PCM16 mono stream: the
// sample rate, the fixed channel/bit layout, and the payload length.
type Header struct {
	SampleRate    uint32
	NumChannels   uint16
	BitsPerSample uint16
	// DataBytes is the declared byte length of the sample payload.
	DataBytes uint32
	// DataOffset is the stream position where the payload begins.
	// Populated by ReadHeader only.
	DataOffset int64
}

// NumSamples returns the number of complete 16-bit samples in the payload.
func (h Header) NumSamples() int {
	return int(h.DataBytes) / blockAlign
}

// Duration returns the play time of the payload.
func (h Header) Duration() time.Duration {
	if h.SampleRate == 0 {
		return 0
	}

	return time.Duration(h.NumSamples()) * time.Second / time.Duration(h.SampleRate)
}

// Format returns the stream format in go-audio terms.
func (h Header) Format() *audio.Format {
	return &audio.Format{
		NumChannels: int(h.NumChannels),
		SampleRate:  int(h.SampleRate),
	}
}

// String implements the Stringer interface.
func (h Header) String() string {
	return fmt.Sprintf("%d Hz @ %d bits, %d channel(s), %d data bytes, duration: %s",
		h.SampleRate, h.BitsPerSample, h.NumChannels, h.DataBytes, h.Duration())
}

// ValidSampleRate reports whether rate is acceptable for generation.
func ValidSampleRate(rate int) bool {
	return rate >= MinSampleRate && rate <= MaxSampleRate
}
