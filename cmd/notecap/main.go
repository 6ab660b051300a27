package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/notecap/notecap/internal/config"
	"github.com/notecap/notecap/internal/logging"
	"github.com/notecap/notecap/internal/platform"
	"github.com/notecap/notecap/internal/session"
	"github.com/notecap/notecap/internal/sink"
)

var (
	// Version is set via ldflags at build time
	Version = "dev"
	// Commit is set via ldflags at build time
	Commit = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load config from XDG/Library/AppData
	cfg, err := config.Load()
	if err != nil {
		log := logging.New()
		log.Error().Err(err).Msg("Failed to load config")
		return 1
	}

	mode := flag.String("mode", cfg.Mode, "capture mode: loopback, microphone, dual-separate, dual-stereo, dual-mono")
	out := flag.String("out", cfg.OutputDir, "output directory for recordings")
	duration := flag.Int("duration", cfg.DurationSeconds, "recording duration in seconds, 0 to record until interrupted")
	loopbackDev := flag.String("loopback-device", cfg.LoopbackDevice, "substring of the system-output device name, empty for default")
	micDev := flag.String("microphone-device", cfg.MicrophoneDevice, "substring of the microphone device name, empty for default")
	rate := flag.Int("rate", cfg.Audio.TargetSampleRate, "output sample rate in Hz")
	logLevel := flag.String("log-level", cfg.LogLevel, "log level: trace, debug, info, warn, error")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Printf("notecap %s (%s)\n", Version, Commit)
		return 0
	}

	log := logging.NewWithLevel(*logLevel)

	captureMode, err := session.ParseMode(*mode)
	if err != nil {
		log.Error().Err(err).Msg("Invalid capture mode")
		return 1
	}

	enumerator, err := platform.NewMiniaudioEnumerator(log)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize audio backend")
		return 1
	}
	defer enumerator.Close()

	opener := sink.NewWAVOpener(*out)

	sess := session.New(session.Config{
		Mode:               captureMode,
		Duration:           time.Duration(*duration) * time.Second,
		DrainInterval:      time.Duration(cfg.Audio.DrainIntervalMS) * time.Millisecond,
		TargetRate:         *rate,
		LoopbackSelector:   *loopbackDev,
		MicrophoneSelector: *micDev,
		LoopbackGain:       float32(cfg.Audio.LoopbackGain),
		MicrophoneGain:     float32(cfg.Audio.MicrophoneGain),
		Platform:           enumerator,
		Sinks:              opener,
		Logger:             log,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := sess.Start(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to start recording")
		return 1
	}

	log.Info().
		Str("output", opener.BasePath()).
		Str("mode", captureMode.String()).
		Msg("notecap recording...")

	// Ctrl-C stops the session; the drain loop handles teardown.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info().Msg("Shutting down...")
		sess.Stop()
	}()

	result := sess.Wait()
	switch result.Status {
	case session.Complete:
		return 0
	case session.Partial:
		log.Warn().
			AnErr("loopback", result.LoopbackErr).
			AnErr("microphone", result.MicrophoneErr).
			AnErr("sink", result.SinkErr).
			Msg("Recording finished with a partial result")
		return 0
	default:
		return 1
	}
}
