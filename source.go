package sigwav

// Source produces a bounded stream of normalized samples, one per call.
//
// Sources report their rate and total length up front so the container
// header can go out before the first sample is pulled.
type Source interface {
	// SampleRate reports the rate the samples are meant to be played at.
	SampleRate() int
	// Len reports the total number of samples the source will produce.
	Len() int
	// Next returns the next sample, or io.EOF once Len samples have
	// been produced.
	Next() (float32, error)
}

// PCMSource adapts a Reader into a Source so recorded payloads can be
// run through the same pipeline as synthetic signals.
type PCMSource struct {
	r *Reader
}

// NewPCMSource forwards r to its sample payload and wraps it. The
// declared payload length becomes the source length; a stream shorter
// than its declaration surfaces as a read error, not an early stop.
func NewPCMSource(r *Reader) (*PCMSource, error) {
	if err := r.FwdToPCM(); err != nil {
		return nil, err
	}

	return &PCMSource{r: r}, nil
}

// SampleRate reports the rate declared by the underlying stream.
func (s *PCMSource) SampleRate() int {
	return int(s.r.hdr.SampleRate)
}

// Len reports the declared sample count of the underlying stream.
func (s *PCMSource) Len() int {
	return s.r.hdr.NumSamples()
}

// Next decodes the next sample of the underlying stream.
func (s *PCMSource) Next() (float32, error) {
	return s.r.Next()
}
