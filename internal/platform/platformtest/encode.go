package platformtest

import (
	"encoding/binary"
	"math"

	"github.com/notecap/notecap/internal/audio"
)

// EncodeSamples packs canonical float32 samples into the little-endian
// native encoding a real endpoint would deliver. The inverse of
// audio.ToFloat32, used to script realistic packets.
func EncodeSamples(samples []float32, kind audio.SampleKind) []byte {
	switch kind {
	case audio.Int16:
		out := make([]byte, len(samples)*2)
		for i, s := range samples {
			v := float64(s) * 32768.0
			if v > 32767 {
				v = 32767
			} else if v < -32768 {
				v = -32768
			}
			binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(v)))
		}
		return out
	case audio.Int32:
		out := make([]byte, len(samples)*4)
		for i, s := range samples {
			v := float64(s) * 2147483648.0
			if v > 2147483647 {
				v = 2147483647
			} else if v < -2147483648 {
				v = -2147483648
			}
			binary.LittleEndian.PutUint32(out[i*4:], uint32(int32(v)))
		}
		return out
	case audio.Float32:
		out := make([]byte, len(samples)*4)
		for i, s := range samples {
			binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(s))
		}
		return out
	}
	return nil
}
