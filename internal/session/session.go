// Package session orchestrates a recording: it owns one or two capture
// sources, drains their buffers on a fixed period, normalizes and combines
// the blocks per the capture mode, and forwards the result to the sink.
// One Session value is built per recording; nothing is shared across
// recordings.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/notecap/notecap/internal/audio"
	"github.com/notecap/notecap/internal/capture"
	"github.com/notecap/notecap/internal/platform"
	"github.com/notecap/notecap/internal/sink"
)

const (
	defaultDrainInterval = 50 * time.Millisecond
	defaultTargetRate    = 16000
	defaultGain          = 0.7
)

// State is the session lifecycle. Draining is entered once a stop signal or
// the duration timer fires, and lasts until the capture goroutines have
// joined and the sinks are closed.
type State int32

const (
	Idle State = iota
	Recording
	Draining
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Recording:
		return "recording"
	case Draining:
		return "draining"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// Config wires a session. Platform and Sinks are external collaborators:
// referenced, not owned.
type Config struct {
	Mode Mode
	// Duration bounds the recording; zero records until Stop.
	Duration time.Duration
	// DrainInterval is the pull period; defaults to 50ms.
	DrainInterval time.Duration
	// TargetRate is the output sample rate; defaults to 16000.
	TargetRate int
	// LoopbackSelector and MicrophoneSelector are case-sensitive substrings
	// of device names; empty selects the platform default.
	LoopbackSelector   string
	MicrophoneSelector string
	// LoopbackGain and MicrophoneGain apply in DualMono; both default to
	// 0.7 to limit clipping when the streams are near full scale.
	LoopbackGain   float32
	MicrophoneGain float32

	Platform platform.Enumerator
	Sinks    sink.Opener
	Logger   zerolog.Logger
}

// Session runs one recording through its Idle → Recording → Draining →
// Stopped lifecycle. Stopped is terminal; build a new session to record
// again.
type Session struct {
	id  string
	cfg Config
	log zerolog.Logger

	state atomic.Int32

	loopback *capture.Source
	micro    *capture.Source
	loopRes  *audio.Resampler
	microRes *audio.Resampler
	sinks    map[string]sink.Sink

	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
	result   Result
}

func New(cfg Config) *Session {
	if cfg.DrainInterval <= 0 {
		cfg.DrainInterval = defaultDrainInterval
	}
	if cfg.TargetRate <= 0 {
		cfg.TargetRate = defaultTargetRate
	}
	if cfg.LoopbackGain == 0 {
		cfg.LoopbackGain = defaultGain
	}
	if cfg.MicrophoneGain == 0 {
		cfg.MicrophoneGain = defaultGain
	}
	id := uuid.NewString()
	return &Session{
		id:     id,
		cfg:    cfg,
		log:    cfg.Logger.With().Str("session", id).Str("mode", cfg.Mode.String()).Logger(),
		sinks:  make(map[string]sink.Sink),
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// ID returns the session's identifier, present on all its log lines.
func (s *Session) ID() string { return s.id }

// State reports the current lifecycle state.
func (s *Session) State() State { return State(s.state.Load()) }

// Start initializes the sources and sinks and begins recording. Any
// initialization failure aborts the whole session before a single capture
// goroutine is spawned, and the returned error says why. On success the
// drain loop runs until the duration elapses, Stop is called, or ctx is
// cancelled; Wait blocks for the final Result.
func (s *Session) Start(ctx context.Context) error {
	if !s.state.CompareAndSwap(int32(Idle), int32(Recording)) {
		return errors.New("session already started")
	}

	if err := s.setup(); err != nil {
		s.teardownSources()
		s.closeSinks()
		s.result = Result{Status: FailedToStart}
		s.state.Store(int32(Stopped))
		close(s.done)
		return err
	}

	s.log.Info().Dur("duration", s.cfg.Duration).Msg("recording started")
	go s.drainLoop(ctx)
	return nil
}

func (s *Session) setup() error {
	if s.cfg.Mode.wantsLoopback() {
		src := capture.New(platform.Render, s.cfg.Platform, s.log)
		if _, err := src.Initialize(s.cfg.LoopbackSelector); err != nil {
			return err
		}
		s.loopback = src
	}
	if s.cfg.Mode.wantsMicrophone() {
		src := capture.New(platform.Capture, s.cfg.Platform, s.log)
		if _, err := src.Initialize(s.cfg.MicrophoneSelector); err != nil {
			return err
		}
		s.micro = src
	}

	var err error
	if s.loopback != nil {
		f := s.loopback.Format()
		if s.loopRes, err = audio.NewResampler(f.SampleRate, f.Channels, s.cfg.TargetRate); err != nil {
			return err
		}
	}
	if s.micro != nil {
		f := s.micro.Format()
		if s.microRes, err = audio.NewResampler(f.SampleRate, f.Channels, s.cfg.TargetRate); err != nil {
			return err
		}
	}

	if err := s.openSinks(); err != nil {
		return err
	}

	for _, src := range s.sources() {
		if !src.StartCapture() {
			return fmt.Errorf("start %s capture", src.Direction())
		}
	}
	return nil
}

func (s *Session) openSinks() error {
	mono := audio.Format{SampleRate: s.cfg.TargetRate, Channels: 1, Kind: audio.Int16}
	switch s.cfg.Mode {
	case DualSeparate:
		for _, suffix := range []string{"_loopback", "_microphone"} {
			snk, err := s.cfg.Sinks.Open(suffix, mono)
			if err != nil {
				return fmt.Errorf("open sink %s: %w", suffix, err)
			}
			s.sinks[suffix] = snk
		}
	case DualStereo:
		stereo := mono
		stereo.Channels = 2
		snk, err := s.cfg.Sinks.Open("", stereo)
		if err != nil {
			return fmt.Errorf("open sink: %w", err)
		}
		s.sinks[""] = snk
	default:
		snk, err := s.cfg.Sinks.Open("", mono)
		if err != nil {
			return fmt.Errorf("open sink: %w", err)
		}
		s.sinks[""] = snk
	}
	return nil
}

// Stop signals the drain loop to finish. Callable from any goroutine at any
// time; the drain loop performs the actual teardown.
func (s *Session) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

// Wait blocks until the session has fully torn down and returns its result.
func (s *Session) Wait() Result {
	<-s.done
	return s.result
}

func (s *Session) drainLoop(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.cfg.DrainInterval)
	defer ticker.Stop()

	var expiry <-chan time.Time
	if s.cfg.Duration > 0 {
		timer := time.NewTimer(s.cfg.Duration)
		defer timer.Stop()
		expiry = timer.C
	}

	aborted := false
loop:
	for {
		select {
		case <-s.stopCh:
			s.log.Info().Msg("stop requested")
			break loop
		case <-expiry:
			s.log.Info().Msg("recording duration elapsed")
			break loop
		case <-ctx.Done():
			s.log.Info().Msg("context cancelled")
			break loop
		case <-ticker.C:
			if err := s.drainOnce(); err != nil {
				s.log.Error().Err(err).Msg("sink failure, aborting session")
				s.result.SinkErr = err
				aborted = true
				break loop
			}
		}
	}

	s.state.Store(int32(Draining))
	s.teardownSources()

	// One final pull so samples appended between the last tick and the stop
	// signal are not lost.
	if !aborted {
		if err := s.drainOnce(); err != nil {
			s.result.SinkErr = err
		}
	}
	if err := s.closeSinks(); err != nil && s.result.SinkErr == nil {
		s.result.SinkErr = err
	}

	s.result.Status = s.status()
	s.state.Store(int32(Stopped))
	s.log.Info().Str("status", s.result.Status.String()).Msg("recording stopped")
}

// drainOnce pulls both buffers, normalizes each to target-rate mono, and
// forwards the combined block per the mode. Per-source failures are
// recorded and that source goes quiet; only a sink failure is returned,
// because only that aborts the session.
func (s *Session) drainOnce() error {
	loopBlock := s.pull(s.loopback, s.loopRes, &s.result.LoopbackErr)
	microBlock := s.pull(s.micro, s.microRes, &s.result.MicrophoneErr)

	switch s.cfg.Mode {
	case LoopbackOnly:
		return s.write("", loopBlock)
	case MicrophoneOnly:
		return s.write("", microBlock)
	case DualSeparate:
		if err := s.write("_loopback", loopBlock); err != nil {
			return err
		}
		return s.write("_microphone", microBlock)
	case DualStereo:
		if len(loopBlock) == 0 && len(microBlock) == 0 {
			return nil
		}
		return s.write("", audio.MixStereo(microBlock, loopBlock))
	case DualMono:
		if len(loopBlock) == 0 && len(microBlock) == 0 {
			return nil
		}
		return s.write("", audio.MixMono(loopBlock, microBlock, s.cfg.LoopbackGain, s.cfg.MicrophoneGain))
	}
	return nil
}

// pull drains one source and converts the chunk to target-rate mono. The
// first fatal capture or resampling error is latched into errSlot; the
// sibling source keeps recording.
func (s *Session) pull(src *capture.Source, res *audio.Resampler, errSlot *error) []float32 {
	if src == nil {
		return nil
	}
	raw, err := src.PullAndClear()
	if err != nil && *errSlot == nil {
		s.log.Error().Err(err).Msg("capture source failed")
		*errSlot = err
	}
	if len(raw) == 0 {
		return nil
	}
	block, err := res.Process(raw)
	if err != nil {
		if *errSlot == nil {
			s.log.Error().Err(err).Msg("resampling failed")
			*errSlot = err
		}
		return nil
	}
	return block
}

func (s *Session) write(suffix string, block []float32) error {
	if len(block) == 0 {
		return nil
	}
	if err := s.sinks[suffix].WriteBlock(block); err != nil {
		return fmt.Errorf("write block: %w", err)
	}
	return nil
}

func (s *Session) sources() []*capture.Source {
	var out []*capture.Source
	if s.loopback != nil {
		out = append(out, s.loopback)
	}
	if s.micro != nil {
		out = append(out, s.micro)
	}
	return out
}

func (s *Session) teardownSources() {
	for _, src := range s.sources() {
		src.StopCapture()
	}
}

func (s *Session) closeSinks() error {
	var firstErr error
	for suffix, snk := range s.sinks {
		if err := snk.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close sink %q: %w", suffix, err)
		}
	}
	return firstErr
}

func (s *Session) status() Status {
	if s.result.LoopbackErr != nil || s.result.MicrophoneErr != nil || s.result.SinkErr != nil {
		return Partial
	}
	return Complete
}
