package sigwav

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// writeRiffPreamble writes the 12 byte RIFF/WAVE preamble with the given
// riff size field. Callers that need a correct size patch it afterwards.
func writeRiffPreamble(t *testing.T, b *bytes.Buffer, riffSize uint32) {
	t.Helper()
	b.WriteString("RIFF")
	if err := binary.Write(b, binary.LittleEndian, riffSize); err != nil {
		t.Fatalf("failed to write riff size: %v", err)
	}
	b.WriteString("WAVE")
}

// writeTestChunk appends a chunk with the given id and payload, padding to
// an even boundary the way riff requires.
func writeTestChunk(t *testing.T, b *bytes.Buffer, id string, payload []byte) {
	t.Helper()
	if len(id) != 4 {
		t.Fatalf("chunk id %q must be 4 bytes", id)
	}
	b.WriteString(id)
	if err := binary.Write(b, binary.LittleEndian, uint32(len(payload))); err != nil {
		t.Fatalf("failed to write chunk size: %v", err)
	}
	b.Write(payload)
	if len(payload)%2 == 1 {
		b.WriteByte(0)
	}
}

// fmtPayload builds the 16 byte body of a fmt chunk.
func fmtPayload(tag, chans uint16, rate uint32, bits uint16) []byte {
	p := make([]byte, 16)
	binary.LittleEndian.PutUint16(p[0:2], tag)
	binary.LittleEndian.PutUint16(p[2:4], chans)
	binary.LittleEndian.PutUint32(p[4:8], rate)
	binary.LittleEndian.PutUint32(p[8:12], rate*uint32(chans)*uint32(bits)/8)
	binary.LittleEndian.PutUint16(p[12:14], chans*bits/8)
	binary.LittleEndian.PutUint16(p[14:16], bits)
	return p
}

// pcmPayload packs samples as little endian 16 bit words.
func pcmPayload(samples ...int16) []byte {
	p := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(p[i*2:], uint16(s))
	}
	return p
}

// makeTestWav builds a canonical mono 16 bit file in memory: preamble,
// fmt chunk, then a data chunk holding the given samples.
func makeTestWav(t *testing.T, rate uint32, samples ...int16) []byte {
	t.Helper()

	var b bytes.Buffer
	writeRiffPreamble(t, &b, 0)
	writeTestChunk(t, &b, "fmt ", fmtPayload(wavFormatPCM, numChannels, rate, bitsPerSample))
	writeTestChunk(t, &b, "data", pcmPayload(samples...))

	out := b.Bytes()
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(out)-8))
	return out
}

type testChunk struct {
	id   string
	size uint32
	data []byte
}

// parseWavChunks walks a complete in memory file and returns every chunk
// after the preamble, so tests can assert on the exact layout written.
func parseWavChunks(t *testing.T, data []byte) []testChunk {
	t.Helper()

	if len(data) < 12 {
		t.Fatalf("file too small: %d bytes", len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Fatalf("not a riff/wave stream: % x", data[:12])
	}

	var chunks []testChunk
	pos := 12
	for pos+8 <= len(data) {
		id := string(data[pos : pos+4])
		size := binary.LittleEndian.Uint32(data[pos+4 : pos+8])
		pos += 8

		end := pos + int(size)
		if end > len(data) {
			t.Fatalf("chunk %q exceeds file size", id)
		}
		chunks = append(chunks, testChunk{id: id, size: size, data: data[pos:end]})

		pos = end
		if size%2 == 1 {
			pos++
		}
	}
	return chunks
}

func findChunk(chunks []testChunk, id string) *testChunk {
	for i := range chunks {
		if chunks[i].id == id {
			return &chunks[i]
		}
	}
	return nil
}
