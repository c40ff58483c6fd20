package sigwav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
)

var (
	// ErrFormat is returned when the stream is not a RIFF/WAVE container.
	ErrFormat = errors.New("invalid riff/wave header")
	// ErrUnsupportedFormat is returned when the container is well formed
	// but the fmt chunk does not describe 16-bit mono PCM.
	ErrUnsupportedFormat = errors.New("unsupported wav format")
	// ErrTruncated is returned when the stream ends before both the fmt
	// and data chunks have been seen.
	ErrTruncated = errors.New("truncated wav stream")
)

// Reader decodes 16-bit mono PCM wav streams.
//
// The header walk is tolerant about layout: fmt and data may arrive in
// either order with any number of unknown chunks between them, and the
// declared riff size is never checked against the stream length. The
// payload itself is never buffered; samples are decoded on demand.
type Reader struct {
	r      io.ReadSeeker
	parser *riff.Parser

	hdr         Header
	headerRead  bool
	pcmAccessed bool
	remaining   int
}

// NewReader creates a reader for the passed wav stream.
// Note that the stream doesn't get rewinded as the container is processed.
func NewReader(rs io.ReadSeeker) *Reader {
	return &Reader{
		r:      rs,
		parser: riff.New(rs),
	}
}

// ReadHeader parses the container preamble and walks the chunk list
// until both the fmt and data chunks have been seen. Chunks past that
// point are not inspected. Safe to call multiple times.
func (r *Reader) ReadHeader() (Header, error) {
	if err := r.readHeaders(); err != nil {
		return Header{}, err
	}

	return r.hdr, nil
}

// ReadHeader parses the wav header of rs and reports the negotiated
// format. The stream is left wherever the walk stopped; use
// Header.DataOffset to locate the sample payload.
func ReadHeader(rs io.ReadSeeker) (Header, error) {
	return NewReader(rs).ReadHeader()
}

// IsValidFile verifies that the stream parses as 16-bit mono PCM.
func (r *Reader) IsValidFile() bool {
	_, err := r.ReadHeader()

	return err == nil
}

// FwdToPCM forwards the underlying stream to the start of the sample
// payload, parsing the header first if that hasn't happened yet.
func (r *Reader) FwdToPCM() error {
	if err := r.readHeaders(); err != nil {
		return err
	}

	if r.pcmAccessed {
		return nil
	}

	if _, err := r.r.Seek(r.hdr.DataOffset, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to the PCM data: %w", err)
	}

	r.pcmAccessed = true
	r.remaining = r.hdr.NumSamples()

	return nil
}

// Rewind puts the reader back at the beginning of the PCM data.
// This is useful if you want to keep on decoding the same file in a loop.
func (r *Reader) Rewind() error {
	if _, err := r.r.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek back to the start %w", err)
	}

	// we have to use a new parser since it's read only and can't be seeked
	r.parser = riff.New(r.r)
	r.hdr = Header{}
	r.headerRead = false
	r.pcmAccessed = false
	r.remaining = 0

	return r.FwdToPCM()
}

// Next decodes the next sample of the payload. It returns io.EOF once
// the declared sample count has been consumed.
func (r *Reader) Next() (float32, error) {
	if !r.pcmAccessed {
		if err := r.FwdToPCM(); err != nil {
			return 0, err
		}
	}

	if r.remaining == 0 {
		return 0, io.EOF
	}

	var scratch [blockAlign]byte

	if _, err := io.ReadFull(r.r, scratch[:]); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}

		return 0, fmt.Errorf("failed to read sample data: %w", err)
	}

	r.remaining--

	return DecodeSample(int16(binary.LittleEndian.Uint16(scratch[:]))), nil
}

// PCMBuffer populates the passed buffer with decoded samples. It
// returns the number of samples written; 0 with a nil error means the
// payload is exhausted.
func (r *Reader) PCMBuffer(buf *audio.Float32Buffer) (n int, err error) {
	if buf == nil {
		return 0, nil
	}

	if !r.pcmAccessed {
		if err := r.FwdToPCM(); err != nil {
			return 0, err
		}
	}

	buf.Format = r.hdr.Format()
	buf.SourceBitDepth = bitsPerSample

	want := len(buf.Data)
	if want > r.remaining {
		want = r.remaining
	}

	if want == 0 {
		return 0, nil
	}

	// populate a file buffer to avoid multiple very small reads
	tmpBuf := make([]byte, want*blockAlign)

	read, rErr := io.ReadFull(r.r, tmpBuf)

	n = read / blockAlign
	for i := range n {
		buf.Data[i] = DecodeSample(int16(binary.LittleEndian.Uint16(tmpBuf[i*blockAlign:])))
	}

	r.remaining -= n

	if rErr != nil {
		// The header promised more samples than the stream holds.
		if errors.Is(rErr, io.EOF) {
			rErr = io.ErrUnexpectedEOF
		}

		return n, fmt.Errorf("failed to read sample data: %w", rErr)
	}

	return n, nil
}

// FullPCMBuffer is an inefficient way to access all the PCM data
// contained in the audio container. The entire payload is held in
// memory. Consider using PCMBuffer() instead.
func (r *Reader) FullPCMBuffer() (*audio.Float32Buffer, error) {
	if err := r.FwdToPCM(); err != nil {
		return nil, err
	}

	buf := &audio.Float32Buffer{
		Data:           make([]float32, r.remaining),
		Format:         r.hdr.Format(),
		SourceBitDepth: bitsPerSample,
	}

	n, err := r.PCMBuffer(buf)
	if err != nil {
		return nil, err
	}

	buf.Data = buf.Data[:n]

	return buf, nil
}

// String implements the Stringer interface.
func (r *Reader) String() string {
	return r.parser.String()
}

// readHeaders is safe to call multiple times.
func (r *Reader) readHeaders() error {
	if r.headerRead {
		return nil
	}

	id, size, err := r.parser.IDnSize()
	if err != nil {
		return headerReadError(err)
	}

	r.parser.ID = id
	if r.parser.ID != riff.RiffID {
		return fmt.Errorf("%s - %w", string(id[:]), ErrFormat)
	}

	// The declared riff size is recorded but never validated; files with
	// understated sizes or trailing bytes are common in the wild.
	r.parser.Size = size

	if err := binary.Read(r.r, binary.BigEndian, &r.parser.Format); err != nil {
		return headerReadError(err)
	}

	if r.parser.Format != riff.WavFormatID {
		return fmt.Errorf("%s - %w", string(r.parser.Format[:]), ErrFormat)
	}

	var fmtSeen, dataSeen bool

	for !fmtSeen || !dataSeen {
		chunk, declared, err := r.nextChunk()
		if err != nil {
			return headerReadError(err)
		}

		switch chunk.ID {
		case riff.FmtID:
			if err := r.decodeFmtChunk(chunk); err != nil {
				return headerReadError(err)
			}

			fmtSeen = true
		case riff.DataFormatID:
			r.hdr.DataBytes = declared

			pos, err := r.r.Seek(0, io.SeekCurrent)
			if err != nil {
				return fmt.Errorf("failed to locate sample data: %w", err)
			}

			r.hdr.DataOffset = pos
			dataSeen = true

			// Only walk past the payload when the fmt chunk is still
			// outstanding.
			if !fmtSeen {
				chunk.Drain()
			}
		default:
			chunk.Drain()
		}
	}

	r.headerRead = true

	return nil
}

// nextChunk returns the next available chunk along with its declared
// size. The chunk reader covers the pad byte of an odd-sized chunk; the
// declared size does not.
func (r *Reader) nextChunk() (*riff.Chunk, uint32, error) {
	id, declared, err := r.parser.IDnSize()
	if err != nil {
		return nil, 0, err
	}

	// all RIFF chunks (including WAVE "data" chunks) must be word aligned.
	// If the data uses an odd number of bytes, a padding byte with a value
	// of zero must be placed at the end of the sample data.
	// The chunk header's size should not include this byte.
	size := declared
	if size%2 == 1 {
		size++
	}

	chunk := &riff.Chunk{
		ID:   id,
		Size: int(size),
		R:    io.LimitReader(r.r, int64(size)),
	}

	return chunk, declared, nil
}

func (r *Reader) decodeFmtChunk(chunk *riff.Chunk) error {
	var (
		tag, chans, align, bits uint16
		rate, avgBytesPerSec    uint32
	)

	if err := chunk.ReadLE(&tag); err != nil {
		return fmt.Errorf("failed to read wav format: %w", err)
	}

	if err := chunk.ReadLE(&chans); err != nil {
		return fmt.Errorf("failed to read channels: %w", err)
	}

	if err := chunk.ReadLE(&rate); err != nil {
		return fmt.Errorf("failed to read sample rate: %w", err)
	}

	if err := chunk.ReadLE(&avgBytesPerSec); err != nil {
		return fmt.Errorf("failed to read avg bytes/sec: %w", err)
	}

	if err := chunk.ReadLE(&align); err != nil {
		return fmt.Errorf("failed to read block align: %w", err)
	}

	if err := chunk.ReadLE(&bits); err != nil {
		return fmt.Errorf("failed to read bit depth: %w", err)
	}

	r.parser.WavAudioFormat = tag
	r.parser.NumChannels = chans
	r.parser.SampleRate = rate
	r.parser.AvgBytesPerSec = avgBytesPerSec
	r.parser.BlockAlign = align
	r.parser.BitsPerSample = bits

	// Extension bytes carry nothing a plain PCM stream needs.
	chunk.Drain()

	if tag != wavFormatPCM {
		return fmt.Errorf("%w: format tag %d", ErrUnsupportedFormat, tag)
	}

	if chans != numChannels {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, chans)
	}

	if bits != bitsPerSample {
		return fmt.Errorf("%w: %d bits per sample", ErrUnsupportedFormat, bits)
	}

	r.hdr.SampleRate = rate
	r.hdr.NumChannels = chans
	r.hdr.BitsPerSample = bits

	return nil
}

func headerReadError(err error) error {
	if errors.Is(err, ErrUnsupportedFormat) {
		return err
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncated
	}

	return fmt.Errorf("failed to read riff header: %w", err)
}
