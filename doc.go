// Package sigwav generates and processes 16-bit PCM mono WAV files.
//
// The package pairs a strict RIFF/WAVE container codec with a streaming
// sample pipeline. Files are produced and consumed one sample at a time:
// a Source emits normalized float32 samples, zero or more Stages transform
// them, and the container Writer quantizes and stores them as little-endian
// int16 PCM. Five synthetic sources are provided (sine, noise, impulse,
// silence, linear chirp) along with two stages (gain, one-pole low-pass)
// and a PCMSource that streams the payload of an existing file.
//
// The read path tolerates unknown chunks and either fmt/data ordering but
// accepts only uncompressed PCM, mono, 16-bit streams. The write path
// always emits the canonical 44-byte header; sizes are declared up front,
// so the output writer never needs to seek.
//
// The cmd directory holds the CLI tools built on this package: wavgen,
// wavproc, wavinfo and wavtoaiff.
package sigwav
