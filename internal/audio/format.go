package audio

import (
	"encoding/binary"
	"fmt"
	"math"
)

// SampleKind identifies the native sample encoding a platform endpoint delivers.
type SampleKind int

const (
	Int16 SampleKind = iota
	Int32
	Float32
)

func (k SampleKind) String() string {
	switch k {
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Float32:
		return "float32"
	}
	return "unknown"
}

// Bytes returns the width of one sample in bytes.
func (k SampleKind) Bytes() int {
	switch k {
	case Int16:
		return 2
	case Int32, Float32:
		return 4
	}
	return 0
}

// Format describes a PCM stream. It is fixed once a capture source is
// initialized; the platform endpoint decides it, not the caller.
type Format struct {
	SampleRate int
	Channels   int
	Kind       SampleKind
}

func (f Format) String() string {
	return fmt.Sprintf("%d Hz, %d ch, %s", f.SampleRate, f.Channels, f.Kind)
}

// ToFloat32 converts interleaved little-endian native samples to canonical
// float32 in [-1,1]. Native sources are assumed in-range, so there is no
// clamping on the way in. An unknown kind yields nil; callers reject
// unsupported formats at endpoint activation.
func ToFloat32(data []byte, kind SampleKind) []float32 {
	switch kind {
	case Int16:
		out := make([]float32, len(data)/2)
		for i := range out {
			s := int16(binary.LittleEndian.Uint16(data[i*2:]))
			out[i] = float32(s) / 32768.0
		}
		return out
	case Int32:
		out := make([]float32, len(data)/4)
		for i := range out {
			s := int32(binary.LittleEndian.Uint32(data[i*4:]))
			out[i] = float32(float64(s) / 2147483648.0)
		}
		return out
	case Float32:
		out := make([]float32, len(data)/4)
		for i := range out {
			out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
		}
		return out
	}
	return nil
}

// Float32ToInt16 clamps x to [-1,1] and scales to a 16-bit sample. The
// positive peak maps to 32767 to avoid overflow.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	return int16(x * 32767.0)
}
