package audio

import (
	"errors"
	"testing"
)

func TestNewResamplerRejectsBadRates(t *testing.T) {
	tests := []struct {
		name               string
		src, channels, dst int
	}{
		{"zero source rate", 0, 1, 16000},
		{"zero target rate", 48000, 1, 0},
		{"zero channels", 48000, 0, 16000},
		{"negative rate", -48000, 1, 16000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewResampler(tt.src, tt.channels, tt.dst); !errors.Is(err, ErrInvalidRate) {
				t.Fatalf("expected ErrInvalidRate, got %v", err)
			}
		})
	}
}

func TestResamplerPassthroughSameRate(t *testing.T) {
	r, err := NewResampler(16000, 1, 16000)
	if err != nil {
		t.Fatal(err)
	}

	in := []float32{0.1, -0.2, 0.3, -0.4}
	got, err := r.Process(in)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(in) {
		t.Fatalf("expected %d samples, got %d", len(in), len(got))
	}
	for i := range in {
		if got[i] != in[i] {
			t.Fatalf("sample %d: expected %f, got %f", i, in[i], got[i])
		}
	}
}

func TestResamplerFoldsChannelsBeforeConversion(t *testing.T) {
	r, err := NewResampler(16000, 2, 16000)
	if err != nil {
		t.Fatal(err)
	}

	// Interleaved stereo frames averaging to 0.5, 0.0, -0.5
	in := []float32{1.0, 0.0, 0.5, -0.5, -1.0, 0.0}
	got, err := r.Process(in)
	if err != nil {
		t.Fatal(err)
	}
	want := []float32{0.5, 0.0, -0.5}
	if len(got) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d: expected %f, got %f", i, want[i], got[i])
		}
	}
}

func TestResamplerInstancesAreIndependent(t *testing.T) {
	a, err := NewResampler(48000, 1, 16000)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewResampler(44100, 2, 16000)
	if err != nil {
		t.Fatal(err)
	}

	if a.SourceRate() != 48000 || b.SourceRate() != 44100 {
		t.Fatal("source rates crossed between instances")
	}
	if a.TargetRate() != 16000 || b.TargetRate() != 16000 {
		t.Fatal("unexpected target rates")
	}
}
