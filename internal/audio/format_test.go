package audio

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestToFloat32Int16(t *testing.T) {
	samples := []int16{0, 16384, -16384, 32767, -32768}
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(s))
	}

	got := ToFloat32(data, Int16)
	if len(got) != len(samples) {
		t.Fatalf("expected %d samples, got %d", len(samples), len(got))
	}
	for i, s := range samples {
		want := float32(s) / 32768.0
		if got[i] != want {
			t.Errorf("sample %d: expected %f, got %f", i, want, got[i])
		}
	}
}

func TestToFloat32Int32(t *testing.T) {
	samples := []int32{0, 1 << 30, -(1 << 30), math.MaxInt32, math.MinInt32}
	data := make([]byte, len(samples)*4)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(data[i*4:], uint32(s))
	}

	got := ToFloat32(data, Int32)
	for i, s := range samples {
		want := float32(float64(s) / 2147483648.0)
		if got[i] != want {
			t.Errorf("sample %d: expected %f, got %f", i, want, got[i])
		}
	}
	if got[4] != -1.0 {
		t.Errorf("expected MinInt32 to map to exactly -1.0, got %f", got[4])
	}
}

func TestToFloat32Float32Passthrough(t *testing.T) {
	samples := []float32{0, 0.5, -0.5, 1.0, -1.0}
	data := make([]byte, len(samples)*4)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(s))
	}

	got := ToFloat32(data, Float32)
	for i, s := range samples {
		if got[i] != s {
			t.Errorf("sample %d: expected %f, got %f", i, s, got[i])
		}
	}
}

// Round trip through the canonical format loses at most one quantization
// step on 16-bit samples.
func TestInt16RoundTripWithinOne(t *testing.T) {
	for _, s := range []int16{0, 1, -1, 100, -100, 12345, -12345, 32767, -32768} {
		f := float32(s) / 32768.0
		back := Float32ToInt16(f)
		diff := int(back) - int(s)
		if diff < -1 || diff > 1 {
			t.Errorf("sample %d round-tripped to %d (diff %d)", s, back, diff)
		}
	}
}

func TestFloat32ToInt16Clamps(t *testing.T) {
	tests := []struct {
		in   float32
		want int16
	}{
		{2.0, 32767},
		{1.0, 32767},
		{-1.0, -32767},
		{-2.0, -32767},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Float32ToInt16(tt.in); got != tt.want {
			t.Errorf("Float32ToInt16(%f): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestSampleKindBytes(t *testing.T) {
	if Int16.Bytes() != 2 || Int32.Bytes() != 4 || Float32.Bytes() != 4 {
		t.Fatal("unexpected sample widths")
	}
}
