package sink

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-audio/wav"

	"github.com/notecap/notecap/internal/audio"
)

func TestWAVOpenerWritesDecodableFile(t *testing.T) {
	dir := t.TempDir()
	opener := NewWAVOpener(dir)

	format := audio.Format{SampleRate: 16000, Channels: 1, Kind: audio.Int16}
	s, err := opener.Open("_loopback", format)
	if err != nil {
		t.Fatal(err)
	}

	samples := []float32{0, 0.5, -0.5, 1.0}
	if err := s.WriteBlock(samples); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one output file, got %d", len(entries))
	}
	name := entries[0].Name()
	if !strings.HasPrefix(name, "recording_") || !strings.HasSuffix(name, "_loopback.wav") {
		t.Fatalf("unexpected output name %q", name)
	}

	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatal(err)
	}
	if buf.Format.SampleRate != 16000 {
		t.Errorf("expected 16000 Hz, got %d", buf.Format.SampleRate)
	}
	if buf.Format.NumChannels != 1 {
		t.Errorf("expected mono, got %d channels", buf.Format.NumChannels)
	}
	if len(buf.Data) != len(samples) {
		t.Fatalf("expected %d samples, got %d", len(samples), len(buf.Data))
	}
	for i, want := range samples {
		if got := int16(buf.Data[i]); got != audio.Float32ToInt16(want) {
			t.Errorf("sample %d: expected %d, got %d", i, audio.Float32ToInt16(want), got)
		}
	}
}

func TestWAVOpenerSharedBaseName(t *testing.T) {
	dir := t.TempDir()
	opener := NewWAVOpener(dir)

	format := audio.Format{SampleRate: 16000, Channels: 1, Kind: audio.Int16}
	for _, suffix := range []string{"_loopback", "_microphone"} {
		s, err := opener.Open(suffix, format)
		if err != nil {
			t.Fatal(err)
		}
		if err := s.Close(); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected two output files, got %d", len(entries))
	}
	base := func(name string) string {
		return strings.TrimSuffix(strings.TrimSuffix(name, "_loopback.wav"), "_microphone.wav")
	}
	if base(entries[0].Name()) != base(entries[1].Name()) {
		t.Fatalf("expected a shared base name, got %q and %q", entries[0].Name(), entries[1].Name())
	}
}

func TestWAVOpenerCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "recordings")
	opener := NewWAVOpener(dir)

	s, err := opener.Open("", audio.Format{SampleRate: 16000, Channels: 1, Kind: audio.Int16})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("expected output directory to exist: %v", err)
	}
}
