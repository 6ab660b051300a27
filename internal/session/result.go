package session

// Status summarizes how a session ended.
type Status int

const (
	// Complete means every requested source captured for the whole session.
	Complete Status = iota
	// Partial means the session produced output but a source or the sink
	// failed along the way; the surviving data is preserved.
	Partial
	// FailedToStart means no capture happened at all.
	FailedToStart
)

func (s Status) String() string {
	switch s {
	case Complete:
		return "complete"
	case Partial:
		return "partial"
	case FailedToStart:
		return "failed-to-start"
	}
	return "unknown"
}

// Result is what a session reports after it has fully torn down.
type Result struct {
	Status Status
	// LoopbackErr and MicrophoneErr carry a fatal per-source capture or
	// resampling failure; the sibling source's data is still written.
	LoopbackErr   error
	MicrophoneErr error
	// SinkErr carries a sink write or close failure, which aborts the
	// session immediately.
	SinkErr error
}
