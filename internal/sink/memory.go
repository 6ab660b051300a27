package sink

import (
	"sync"

	"github.com/notecap/notecap/internal/audio"
)

// MemoryOpener keeps every opened sink's blocks in memory, for tests and for
// consumers that process PCM in-process instead of writing files.
type MemoryOpener struct {
	mu    sync.Mutex
	sinks map[string]*MemorySink
	// OpenErr, when set, fails every Open call.
	OpenErr error
}

func NewMemoryOpener() *MemoryOpener {
	return &MemoryOpener{sinks: make(map[string]*MemorySink)}
}

func (o *MemoryOpener) Open(suffix string, format audio.Format) (Sink, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.OpenErr != nil {
		return nil, o.OpenErr
	}
	s := &MemorySink{format: format}
	o.sinks[suffix] = s
	return s, nil
}

// Sink returns the sink opened under suffix, or nil.
func (o *MemoryOpener) Sink(suffix string) *MemorySink {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.sinks[suffix]
}

// Suffixes lists the suffixes sinks were opened under.
func (o *MemoryOpener) Suffixes() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, 0, len(o.sinks))
	for k := range o.sinks {
		out = append(out, k)
	}
	return out
}

// MemorySink accumulates written samples.
type MemorySink struct {
	mu      sync.Mutex
	format  audio.Format
	samples []float32
	closed  bool
	// WriteErr, when set, fails the next WriteBlock.
	WriteErr error
}

func (s *MemorySink) WriteBlock(samples []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.samples = append(s.samples, samples...)
	return nil
}

func (s *MemorySink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Samples returns a copy of everything written so far.
func (s *MemorySink) Samples() []float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]float32(nil), s.samples...)
}

// Format returns the format the sink was opened with.
func (s *MemorySink) Format() audio.Format {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.format
}

// Closed reports whether Close was called.
func (s *MemorySink) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// SetWriteErr injects a write failure.
func (s *MemorySink) SetWriteErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.WriteErr = err
}
