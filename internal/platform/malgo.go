package platform

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gen2brain/malgo"
	"github.com/rs/zerolog"

	"github.com/notecap/notecap/internal/audio"
)

// ErrFormatUnsupported reports a native sample format outside the set the
// converter handles (16/32-bit int, 32-bit float).
var ErrFormatUnsupported = fmt.Errorf("native sample format not supported")

// packetQueueLen bounds the callback-to-reader handoff. The device callback
// must never block, so a full queue drops the packet and the next delivered
// one carries the discontinuity flag.
const packetQueueLen = 64

// MiniaudioEnumerator backs the Enumerator interface with miniaudio. Render
// endpoints are opened as loopback devices, so "capturing" a playback device
// yields whatever the system is currently playing.
type MiniaudioEnumerator struct {
	ctx *malgo.AllocatedContext
	log zerolog.Logger
}

func NewMiniaudioEnumerator(log zerolog.Logger) (*MiniaudioEnumerator, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(message string) {
		log.Trace().Str("component", "miniaudio").Msg(strings.TrimSpace(message))
	})
	if err != nil {
		return nil, fmt.Errorf("init miniaudio context: %w", err)
	}
	return &MiniaudioEnumerator{ctx: ctx, log: log}, nil
}

func (e *MiniaudioEnumerator) Devices(dir Direction) ([]DeviceInfo, error) {
	kind := malgo.Capture
	if dir == Render {
		kind = malgo.Playback
	}
	infos, err := e.ctx.Devices(kind)
	if err != nil {
		return nil, fmt.Errorf("enumerate %s devices: %w", dir, err)
	}
	devices := make([]DeviceInfo, 0, len(infos))
	for _, info := range infos {
		devices = append(devices, DeviceInfo{
			Name:    info.Name(),
			Default: info.IsDefault != 0,
		})
	}
	return devices, nil
}

func (e *MiniaudioEnumerator) Activate(dir Direction, name string) (Endpoint, error) {
	deviceType := malgo.Capture
	if dir == Render {
		deviceType = malgo.Loopback
	}

	config := malgo.DefaultDeviceConfig(deviceType)
	// Leaving format, channels, and rate at zero asks miniaudio for the
	// device's native format; the converter handles the rest.
	if name != "" {
		infos, err := e.ctx.Devices(deviceTypeToEnum(dir))
		if err != nil {
			return nil, fmt.Errorf("enumerate %s devices: %w", dir, err)
		}
		for i := range infos {
			if infos[i].Name() == name {
				config.Capture.DeviceID = infos[i].ID.Pointer()
				break
			}
		}
	}

	ep := &miniaudioEndpoint{
		packets: make(chan Packet, packetQueueLen),
		log:     e.log.With().Str("endpoint", dir.String()).Logger(),
	}

	device, err := malgo.InitDevice(e.ctx.Context, config, malgo.DeviceCallbacks{
		Data: ep.onData,
	})
	if err != nil {
		return nil, fmt.Errorf("activate %s endpoint: %w", dir, err)
	}

	kind, err := sampleKindFromMalgo(device.CaptureFormat())
	if err != nil {
		device.Uninit()
		return nil, err
	}
	ep.device = device
	ep.format = audio.Format{
		SampleRate: int(device.SampleRate()),
		Channels:   int(device.CaptureChannels()),
		Kind:       kind,
	}
	return ep, nil
}

func (e *MiniaudioEnumerator) Close() error {
	if err := e.ctx.Uninit(); err != nil {
		return fmt.Errorf("uninit miniaudio context: %w", err)
	}
	e.ctx.Free()
	return nil
}

func deviceTypeToEnum(dir Direction) malgo.DeviceType {
	if dir == Render {
		return malgo.Playback
	}
	return malgo.Capture
}

func sampleKindFromMalgo(f malgo.FormatType) (audio.SampleKind, error) {
	switch f {
	case malgo.FormatS16:
		return audio.Int16, nil
	case malgo.FormatS32:
		return audio.Int32, nil
	case malgo.FormatF32:
		return audio.Float32, nil
	}
	return 0, fmt.Errorf("%w: miniaudio format %d", ErrFormatUnsupported, f)
}

type miniaudioEndpoint struct {
	device  *malgo.Device
	format  audio.Format
	packets chan Packet
	log     zerolog.Logger

	// dropped counts packets lost to a full queue; the next delivered packet
	// carries the discontinuity flag. Atomic because onData runs on the
	// device thread while Stop may be joining it.
	dropped atomic.Int64
	closed  sync.Once
}

func (ep *miniaudioEndpoint) Format() audio.Format { return ep.format }

// onData runs on the miniaudio device thread. It copies the packet and hands
// it off without blocking; a full queue counts as a discontinuity reported
// with the next packet that does get through.
func (ep *miniaudioEndpoint) onData(_, input []byte, frameCount uint32) {
	data := make([]byte, len(input))
	copy(data, input)

	pkt := Packet{Data: data, Frames: int(frameCount), Discontinuity: ep.dropped.Load() > 0}
	select {
	case ep.packets <- pkt:
		ep.dropped.Store(0)
	default:
		ep.dropped.Add(1)
	}
}

func (ep *miniaudioEndpoint) Start() error {
	if err := ep.device.Start(); err != nil {
		return fmt.Errorf("start device: %w", err)
	}
	return nil
}

func (ep *miniaudioEndpoint) ReadPacket(ctx context.Context, timeout time.Duration) (Packet, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case pkt := <-ep.packets:
		return pkt, nil
	case <-timer.C:
		return Packet{}, ErrReadTimeout
	case <-ctx.Done():
		return Packet{}, ctx.Err()
	}
}

func (ep *miniaudioEndpoint) Stop() error {
	if err := ep.device.Stop(); err != nil {
		return fmt.Errorf("stop device: %w", err)
	}
	return nil
}

func (ep *miniaudioEndpoint) Close() error {
	ep.closed.Do(func() {
		if n := ep.dropped.Load(); n > 0 {
			ep.log.Warn().Int64("packets", n).Msg("packets dropped at shutdown before the reader drained them")
		}
		ep.device.Uninit()
	})
	return nil
}
