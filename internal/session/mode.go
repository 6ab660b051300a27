package session

import "fmt"

// Mode selects which sources a session captures and how their streams are
// combined. Fixed for the life of a session.
type Mode int

const (
	// LoopbackOnly records system output alone.
	LoopbackOnly Mode = iota
	// MicrophoneOnly records the microphone alone.
	MicrophoneOnly
	// DualSeparate records both sources to separate sinks, unmixed.
	DualSeparate
	// DualStereo maps microphone to the left channel and loopback to the
	// right of a single stereo sink.
	DualStereo
	// DualMono sums both sources into one mono sink with attenuating gains.
	DualMono
)

var modeNames = map[Mode]string{
	LoopbackOnly:   "loopback",
	MicrophoneOnly: "microphone",
	DualSeparate:   "dual-separate",
	DualStereo:     "dual-stereo",
	DualMono:       "dual-mono",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// ParseMode maps a config/CLI string to a Mode.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown capture mode %q", s)
}

func (m Mode) wantsLoopback() bool   { return m != MicrophoneOnly }
func (m Mode) wantsMicrophone() bool { return m != LoopbackOnly }
