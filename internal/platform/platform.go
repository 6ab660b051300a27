// Package platform abstracts the native audio endpoints: enumeration,
// activation with the device's own format, and a packet stream with the
// flags the capture loop cares about. Whether the backend is event-driven or
// polls underneath is an adapter detail; the loop only ever sees "read the
// next packet, bounded by a timeout".
package platform

import (
	"context"
	"errors"
	"time"

	"github.com/notecap/notecap/internal/audio"
)

// Direction distinguishes the two endpoint kinds this system captures from.
type Direction int

const (
	// Render is a playback endpoint captured in loopback mode (system audio).
	Render Direction = iota
	// Capture is a recording endpoint (microphone).
	Capture
)

func (d Direction) String() string {
	if d == Render {
		return "loopback"
	}
	return "microphone"
}

var (
	// ErrNoDevices is returned when the platform exposes no endpoint of the
	// requested direction at all.
	ErrNoDevices = errors.New("no audio endpoints of the requested direction")
	// ErrReadTimeout reports that no packet arrived within the wait bound.
	// It is informational: silence is expected when nothing is playing.
	ErrReadTimeout = errors.New("no audio packet before timeout")
	// ErrEndpointClosed reports a read on a stopped or failed endpoint.
	ErrEndpointClosed = errors.New("endpoint closed")
)

// DeviceInfo describes one enumerated endpoint.
type DeviceInfo struct {
	Name    string
	Default bool
}

// Packet is one batch of frames pulled from an endpoint. Data is empty when
// Silent is set; the frame count still stands for the elapsed time.
type Packet struct {
	Data          []byte // interleaved native-format samples
	Frames        int
	Silent        bool
	Discontinuity bool
}

// Endpoint is one activated device. It is owned by exactly one capture
// source; Close releases every native handle it acquired.
type Endpoint interface {
	// Format reports the device's native format, fixed at activation.
	Format() audio.Format
	// Start begins delivery of packets.
	Start() error
	// ReadPacket blocks for the next packet, bounded by timeout and by ctx.
	// ErrReadTimeout means no audio arrived, not a fault.
	ReadPacket(ctx context.Context, timeout time.Duration) (Packet, error)
	// Stop halts delivery. Idempotent.
	Stop() error
	// Close releases the device. The endpoint is unusable afterwards.
	Close() error
}

// Enumerator lists devices and activates endpoints. One enumerator is shared
// by all sources of a session; each activated Endpoint is owned separately.
type Enumerator interface {
	Devices(dir Direction) ([]DeviceInfo, error)
	// Activate opens the named device, or the direction's default when name
	// is empty. The returned endpoint is not yet started.
	Activate(dir Direction, name string) (Endpoint, error)
	Close() error
}
