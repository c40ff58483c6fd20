// This tool prints the format of the passed wav file.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cwbudde/sigwav"
)

const missingPathMessage = "You must pass the path of the file to inspect"

var errMissingPath = errors.New("missing path argument")

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	if errors.Is(err, errMissingPath) {
		fmt.Fprintln(os.Stderr, missingPathMessage)
		os.Exit(2)
	}

	log.Fatal(err)
}

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		return errMissingPath
	}

	file, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer file.Close()

	hdr, err := sigwav.ReadHeader(file)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "SampleRate: %d\n", hdr.SampleRate)
	fmt.Fprintf(out, "Channels: %d\n", hdr.NumChannels)
	fmt.Fprintf(out, "BitsPerSample: %d\n", hdr.BitsPerSample)
	fmt.Fprintf(out, "DataBytes: %d\n", hdr.DataBytes)
	fmt.Fprintf(out, "Samples: %d\n", hdr.NumSamples())
	fmt.Fprintf(out, "Duration: %s\n", hdr.Duration())

	return nil
}
