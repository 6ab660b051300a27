package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/notecap/notecap/internal/audio"
)

// WAVOpener writes 16-bit PCM WAV files under dir, named
// "recording_YYYYMMDD_HHMMSS<suffix>.wav" from a timestamp fixed when the
// opener is built, so the outputs of one session share a base name.
type WAVOpener struct {
	dir  string
	base string
}

func NewWAVOpener(dir string) *WAVOpener {
	return &WAVOpener{
		dir:  dir,
		base: "recording_" + time.Now().Format("20060102_150405"),
	}
}

// BasePath returns the shared path prefix of this opener's files.
func (o *WAVOpener) BasePath() string {
	return filepath.Join(o.dir, o.base)
}

func (o *WAVOpener) Open(suffix string, format audio.Format) (Sink, error) {
	if err := os.MkdirAll(o.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	path := o.BasePath() + suffix + ".wav"
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return &wavSink{
		file:   f,
		enc:    wav.NewEncoder(f, format.SampleRate, 16, format.Channels, 1),
		format: format,
	}, nil
}

type wavSink struct {
	file   *os.File
	enc    *wav.Encoder
	format audio.Format
}

func (s *wavSink) WriteBlock(samples []float32) error {
	if len(samples) == 0 {
		return nil
	}
	data := make([]int, len(samples))
	for i, v := range samples {
		data[i] = int(audio.Float32ToInt16(v))
	}
	buf := &gaudio.IntBuffer{
		Format: &gaudio.Format{
			NumChannels: s.format.Channels,
			SampleRate:  s.format.SampleRate,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := s.enc.Write(buf); err != nil {
		return fmt.Errorf("write wav block: %w", err)
	}
	return nil
}

// Close finalizes the WAV header and closes the file.
func (s *wavSink) Close() error {
	if err := s.enc.Close(); err != nil {
		s.file.Close()
		return fmt.Errorf("finalize wav: %w", err)
	}
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("close wav file: %w", err)
	}
	return nil
}
