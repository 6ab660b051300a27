// Package capture owns one platform endpoint per Source and runs its
// acquisition loop: wait for a packet, convert to canonical float32, append
// to the source's buffer. The session drains the buffer on its own schedule.
package capture

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/notecap/notecap/internal/audio"
	"github.com/notecap/notecap/internal/platform"
)

// readTimeout bounds each wait for a packet so the loop can observe
// cancellation even when nothing is playing. A timeout is not an error;
// silence is expected.
const readTimeout = 2 * time.Second

// State is the one-directional lifecycle of a Source. A Stopped source
// cannot be restarted; build a new one.
type State int32

const (
	Uninitialized State = iota
	Initialized
	Recording
	Stopped
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case Recording:
		return "recording"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// Source captures one endpoint (loopback or microphone) on a dedicated
// goroutine and accumulates canonical samples in its buffer.
type Source struct {
	dir  platform.Direction
	enum platform.Enumerator
	log  zerolog.Logger

	state atomic.Int32

	endpoint platform.Endpoint
	format   audio.Format
	buf      *audio.SampleBuffer

	cancel context.CancelFunc
	done   chan struct{}

	mu      sync.Mutex
	loopErr error
}

// New builds a source for one direction. The enumerator is shared with the
// session; the endpoint activated in Initialize is owned by this source.
func New(dir platform.Direction, enum platform.Enumerator, log zerolog.Logger) *Source {
	return &Source{
		dir:  dir,
		enum: enum,
		log:  log.With().Str("source", dir.String()).Logger(),
		buf:  audio.NewSampleBuffer(),
	}
}

// Initialize resolves the endpoint for this source's direction and activates
// it with the device's native format. selector is a case-sensitive substring
// of the device name; empty means the platform default, and a selector that
// matches nothing falls back to the default as well.
func (s *Source) Initialize(selector string) (audio.Format, error) {
	if State(s.state.Load()) != Uninitialized {
		return audio.Format{}, ErrAlreadyInitialized
	}

	devices, err := s.enum.Devices(s.dir)
	if err != nil {
		return audio.Format{}, &InitError{Direction: s.dir.String(), Err: err}
	}

	dev, fellBack, err := platform.Match(devices, selector)
	if err != nil {
		return audio.Format{}, ErrDeviceUnavailable
	}
	if fellBack {
		s.log.Warn().
			Str("selector", selector).
			Str("device", dev.Name).
			Msg("no device matched selector, using default endpoint")
	}

	endpoint, err := s.enum.Activate(s.dir, dev.Name)
	if err != nil {
		return audio.Format{}, &InitError{Direction: s.dir.String(), Err: err}
	}

	s.endpoint = endpoint
	s.format = endpoint.Format()
	s.state.Store(int32(Initialized))

	s.log.Info().
		Str("device", dev.Name).
		Str("format", s.format.String()).
		Msg("capture source initialized")
	return s.format, nil
}

// StartCapture spawns the acquisition goroutine. It is a no-op returning
// false unless the source is Initialized.
func (s *Source) StartCapture() bool {
	if !s.state.CompareAndSwap(int32(Initialized), int32(Recording)) {
		return false
	}
	if err := s.endpoint.Start(); err != nil {
		s.setLoopErr(err)
		s.state.Store(int32(Stopped))
		return false
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.run(ctx)
	return true
}

// run is the acquisition loop. A fatal endpoint error ends the loop and
// marks the source Stopped; the session sees the error on its next
// PullAndClear rather than asynchronously.
func (s *Source) run(ctx context.Context) {
	defer close(s.done)
	for {
		pkt, err := s.endpoint.ReadPacket(ctx, readTimeout)
		switch {
		case err == nil:
		case ctx.Err() != nil:
			return
		case errors.Is(err, platform.ErrReadTimeout):
			continue
		default:
			s.log.Error().Err(err).Msg("capture loop terminated")
			s.setLoopErr(err)
			s.state.Store(int32(Stopped))
			return
		}

		if pkt.Discontinuity {
			// Gaps are logged, not backfilled; the streams keep their own
			// timelines and mixing absorbs the drift.
			s.log.Warn().Int("frames", pkt.Frames).Msg("platform reported a capture discontinuity")
		}
		if pkt.Silent {
			s.buf.AppendSilence(pkt.Frames * s.format.Channels)
			continue
		}
		s.buf.Append(audio.ToFloat32(pkt.Data, s.format.Kind))
	}
}

// StopCapture signals the loop and blocks until it has exited, then releases
// the endpoint. Idempotent, and safe in any state.
func (s *Source) StopCapture() {
	prev := State(s.state.Swap(int32(Stopped)))
	if s.cancel != nil {
		s.cancel()
		<-s.done
		s.cancel = nil
	}
	if s.endpoint != nil && prev != Uninitialized {
		if err := s.endpoint.Stop(); err != nil {
			s.log.Warn().Err(err).Msg("stopping endpoint")
		}
		if err := s.endpoint.Close(); err != nil {
			s.log.Warn().Err(err).Msg("closing endpoint")
		}
		s.endpoint = nil
	}
}

// PullAndClear atomically drains everything accumulated since the previous
// call. The error reports a fatal acquisition failure observed since then;
// once the loop has died it is returned on every subsequent call.
func (s *Source) PullAndClear() ([]float32, error) {
	samples := s.buf.Drain()
	s.mu.Lock()
	err := s.loopErr
	s.mu.Unlock()
	return samples, err
}

// Format returns the endpoint's native format. Zero value before Initialize.
func (s *Source) Format() audio.Format { return s.format }

// Direction reports which endpoint kind this source captures.
func (s *Source) Direction() platform.Direction { return s.dir }

// State reports the current lifecycle state.
func (s *Source) State() State { return State(s.state.Load()) }

func (s *Source) setLoopErr(err error) {
	s.mu.Lock()
	if s.loopErr == nil {
		s.loopErr = err
	}
	s.mu.Unlock()
}
