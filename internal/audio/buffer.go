package audio

import "sync"

// SampleBuffer accumulates canonical float32 samples from a single capture
// goroutine and hands them off to whoever drains it. Appends and drains are
// each one lock-protected operation, so a drain never observes a partial
// append. The lock is held only for the slice swap, never during conversion
// or mixing.
type SampleBuffer struct {
	mu      sync.Mutex
	samples []float32
}

func NewSampleBuffer() *SampleBuffer {
	return &SampleBuffer{}
}

// Append adds samples to the end of the buffer.
func (b *SampleBuffer) Append(samples []float32) {
	if len(samples) == 0 {
		return
	}
	b.mu.Lock()
	b.samples = append(b.samples, samples...)
	b.mu.Unlock()
}

// AppendSilence appends n zero samples. Silent platform packets carry no
// data but still occupy time; zero-filling preserves the stream's length.
func (b *SampleBuffer) AppendSilence(n int) {
	if n <= 0 {
		return
	}
	b.mu.Lock()
	b.samples = append(b.samples, make([]float32, n)...)
	b.mu.Unlock()
}

// Drain atomically removes and returns everything accumulated since the
// previous drain. The returned slice is owned by the caller.
func (b *SampleBuffer) Drain() []float32 {
	b.mu.Lock()
	out := b.samples
	b.samples = nil
	b.mu.Unlock()
	return out
}

// Len reports the number of buffered samples.
func (b *SampleBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.samples)
}
