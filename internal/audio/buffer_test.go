package audio

import (
	"sync"
	"testing"
)

func TestSampleBufferAppendDrain(t *testing.T) {
	buf := NewSampleBuffer()
	buf.Append([]float32{0.1, 0.2})
	buf.Append([]float32{0.3})

	got := buf.Drain()
	want := []float32{0.1, 0.2, 0.3}
	if len(got) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d: expected %f, got %f", i, want[i], got[i])
		}
	}

	if second := buf.Drain(); len(second) != 0 {
		t.Fatalf("expected empty buffer after drain, got %d samples", len(second))
	}
}

// A silent packet of N frames x C channels must grow the buffer by exactly
// N*C zeros so the stream keeps its temporal length.
func TestSampleBufferAppendSilence(t *testing.T) {
	const frames, channels = 480, 2

	buf := NewSampleBuffer()
	buf.Append([]float32{0.5})
	buf.AppendSilence(frames * channels)

	got := buf.Drain()
	if len(got) != 1+frames*channels {
		t.Fatalf("expected %d samples, got %d", 1+frames*channels, len(got))
	}
	for i, s := range got[1:] {
		if s != 0 {
			t.Fatalf("silent sample %d: expected 0, got %f", i, s)
		}
	}
}

// Concurrent appends and drains must neither lose nor duplicate samples:
// everything appended shows up exactly once across the drains plus whatever
// remains at the end.
func TestSampleBufferConcurrentAppendDrain(t *testing.T) {
	const (
		producers       = 2
		appendsPerProd  = 500
		samplesPerBatch = 64
	)

	buf := NewSampleBuffer()
	var wg sync.WaitGroup

	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			batch := make([]float32, samplesPerBatch)
			for i := range batch {
				batch[i] = 0.25
			}
			for i := 0; i < appendsPerProd; i++ {
				buf.Append(batch)
			}
		}()
	}

	drainDone := make(chan int)
	stop := make(chan struct{})
	go func() {
		total := 0
		for {
			select {
			case <-stop:
				drainDone <- total
				return
			default:
				total += len(buf.Drain())
			}
		}
	}()

	wg.Wait()
	close(stop)
	drained := <-drainDone
	remaining := buf.Len()

	want := producers * appendsPerProd * samplesPerBatch
	if drained+remaining != want {
		t.Fatalf("expected %d samples total, drained %d with %d remaining", want, drained, remaining)
	}
}
