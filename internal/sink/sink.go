// Package sink receives the session's canonical PCM blocks. Sinks own
// container framing and file placement; the session only hands them float32
// blocks in the output format they were opened with.
package sink

import "github.com/notecap/notecap/internal/audio"

// Sink accepts interleaved canonical blocks until closed.
type Sink interface {
	WriteBlock(samples []float32) error
	Close() error
}

// Opener creates sinks on demand. The suffix distinguishes the two outputs
// of a dual-separate session ("_loopback", "_microphone"); single-output
// modes pass an empty suffix.
type Opener interface {
	Open(suffix string, format audio.Format) (Sink, error)
}
