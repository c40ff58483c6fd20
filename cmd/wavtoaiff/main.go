// This tool converts a wav file into an aiff file and stores it in the
// same folder as the source.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/cwbudde/sigwav"
	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
)

var errMissingPath = errors.New("you must set the -path flag")

func main() {
	err := run(os.Args[1:])
	if err == nil {
		return
	}

	if errors.Is(err, errMissingPath) {
		fmt.Fprintln(os.Stderr, errMissingPath)
		os.Exit(2)
	}

	log.Fatal(err)
}

func run(args []string) error {
	flagSet := flag.NewFlagSet("wavtoaiff", flag.ContinueOnError)

	path := flagSet.String("path", "", "The path to the wav file to convert to aiff")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if *path == "" {
		return errMissingPath
	}

	sourcePath := *path
	if strings.HasPrefix(sourcePath, "~/") {
		usr, err := user.Current()
		if err != nil {
			return fmt.Errorf("failed to get the user home directory: %w", err)
		}

		sourcePath = strings.Replace(sourcePath, "~", usr.HomeDir, 1)
	}

	file, err := os.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("invalid path %s: %w", sourcePath, err)
	}
	defer file.Close()

	r := sigwav.NewReader(file)

	hdr, err := r.ReadHeader()
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", sourcePath, err)
	}

	outPath := sourcePath[:len(sourcePath)-len(filepath.Ext(sourcePath))] + ".aif"

	outFile, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer outFile.Close()

	err = convert(outFile, r, hdr)
	if err != nil {
		return err
	}

	log.Printf("wav file converted to %s", outPath)

	return nil
}

func convert(w io.WriteSeeker, r *sigwav.Reader, hdr sigwav.Header) error {
	encoder := aiff.NewEncoder(w, int(hdr.SampleRate), int(hdr.BitsPerSample), int(hdr.NumChannels))

	format := hdr.Format()

	const bufferSize = 1000000

	buf := &audio.Float32Buffer{Data: make([]float32, bufferSize), Format: format}

	for {
		num, err := r.PCMBuffer(buf)
		if err != nil {
			return err
		}

		if num == 0 {
			break
		}

		err = encoder.Write(float32ToIntBuffer(buf.Data[:num], format))
		if err != nil {
			return err
		}
	}

	return encoder.Close()
}

// float32ToIntBuffer requantizes normalized samples into the 16-bit
// integer buffer the aiff encoder consumes.
func float32ToIntBuffer(data []float32, format *audio.Format) *audio.IntBuffer {
	intBuf := &audio.IntBuffer{
		Format:         format,
		SourceBitDepth: 16,
		Data:           make([]int, len(data)),
	}

	for i, v := range data {
		intBuf.Data[i] = int(sigwav.EncodeSample(v))
	}

	return intBuf
}
