package audio

import (
	"errors"
	"fmt"

	resampling "github.com/tphakala/go-audio-resampling"
)

var ErrInvalidRate = errors.New("sample rates and channel count must be positive")

// Resampler converts one logical stream from its native rate to a fixed
// target rate, folding multi-channel input to mono first. The underlying
// engine keeps filter history across calls, so one instance must be used per
// stream and never shared: resetting or sharing state puts audible
// discontinuities at chunk boundaries.
type Resampler struct {
	srcRate  int
	dstRate  int
	channels int
	engine   resampling.Resampler // nil when no rate conversion is needed
}

// NewResampler builds a resampler for a stream with the given native rate
// and channel count. When srcRate == dstRate the engine is skipped and
// Process only folds channels.
func NewResampler(srcRate, srcChannels, dstRate int) (*Resampler, error) {
	if srcRate <= 0 || dstRate <= 0 || srcChannels <= 0 {
		return nil, ErrInvalidRate
	}
	r := &Resampler{srcRate: srcRate, dstRate: dstRate, channels: srcChannels}
	if srcRate != dstRate {
		engine, err := resampling.New(&resampling.Config{
			InputRate:  float64(srcRate),
			OutputRate: float64(dstRate),
			Channels:   1,
			Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
		})
		if err != nil {
			return nil, fmt.Errorf("create resampling engine: %w", err)
		}
		r.engine = engine
	}
	return r, nil
}

// SourceRate returns the native rate this resampler consumes.
func (r *Resampler) SourceRate() int { return r.srcRate }

// TargetRate returns the rate this resampler produces.
func (r *Resampler) TargetRate() int { return r.dstRate }

// Process folds chunk to mono and converts it to the target rate. The chunk
// is interleaved at the stream's native channel count. Output length varies
// with engine buffering; over a whole stream it converges on
// len(chunk)/channels * dstRate/srcRate.
func (r *Resampler) Process(chunk []float32) ([]float32, error) {
	mono := DownmixInterleaved(chunk, r.channels, len(chunk)/r.channels)
	if r.engine == nil {
		return mono, nil
	}
	in := make([]float64, len(mono))
	for i, s := range mono {
		in[i] = float64(s)
	}
	out, err := r.engine.Process(in)
	if err != nil {
		return nil, fmt.Errorf("resample: %w", err)
	}
	res := make([]float32, len(out))
	for i, s := range out {
		res[i] = float32(s)
	}
	return res, nil
}
