package audio

// Mixing helpers for combining the loopback and microphone streams. The two
// sources drain on independent schedules, so blocks rarely have equal length;
// every combiner here uses the longer length and treats missing samples as
// silence. That is the whole reconciliation strategy: alignment is only as
// tight as the drain period.

// MixMono sums two mono blocks with per-source gains, clamping to [-1,1].
// The result has length max(len(a), len(b)).
func MixMono(a, b []float32, gainA, gainB float32) []float32 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]float32, n)
	for i := range out {
		var s float32
		if i < len(a) {
			s += a[i] * gainA
		}
		if i < len(b) {
			s += b[i] * gainB
		}
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		out[i] = s
	}
	return out
}

// MixStereo interleaves two mono blocks as [L0,R0,L1,R1,...], zero-padding
// the shorter one. The result has length 2*max(len(left), len(right)).
func MixStereo(left, right []float32) []float32 {
	n := len(left)
	if len(right) > n {
		n = len(right)
	}
	out := make([]float32, 2*n)
	for i := 0; i < n; i++ {
		if i < len(left) {
			out[2*i] = left[i]
		}
		if i < len(right) {
			out[2*i+1] = right[i]
		}
	}
	return out
}

// StereoToMono averages each interleaved L/R pair into one sample.
func StereoToMono(interleaved []float32) []float32 {
	out := make([]float32, len(interleaved)/2)
	for i := range out {
		out[i] = (interleaved[2*i] + interleaved[2*i+1]) / 2
	}
	return out
}

// MonoToStereo duplicates each sample into both channel slots.
func MonoToStereo(mono []float32) []float32 {
	out := make([]float32, 2*len(mono))
	for i, s := range mono {
		out[2*i] = s
		out[2*i+1] = s
	}
	return out
}

// DownmixInterleaved folds an interleaved multi-channel block into mono by
// averaging the channels of each frame. Mono input is copied into a fresh
// slice so callers may retain the result.
func DownmixInterleaved(input []float32, channels, frames int) []float32 {
	if channels <= 1 {
		out := make([]float32, len(input))
		copy(out, input)
		return out
	}
	out := make([]float32, frames)
	inv := 1.0 / float32(channels)
	for f := 0; f < frames; f++ {
		var sum float32
		base := f * channels
		for c := 0; c < channels; c++ {
			sum += input[base+c]
		}
		out[f] = sum * inv
	}
	return out
}
