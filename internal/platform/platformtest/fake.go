// Package platformtest provides in-memory platform fakes so the capture and
// session layers can be exercised without audio hardware.
package platformtest

import (
	"context"
	"sync"
	"time"

	"github.com/notecap/notecap/internal/audio"
	"github.com/notecap/notecap/internal/platform"
)

// FakeEnumerator serves scripted devices and endpoints per direction.
type FakeEnumerator struct {
	mu        sync.Mutex
	devices   map[platform.Direction][]platform.DeviceInfo
	endpoints map[platform.Direction]*FakeEndpoint
	// ActivateErr, when set, fails every Activate call with this error.
	ActivateErr error
	// Activated records the device names Activate was called with.
	Activated []string
	closed    bool
}

func NewFakeEnumerator() *FakeEnumerator {
	return &FakeEnumerator{
		devices:   make(map[platform.Direction][]platform.DeviceInfo),
		endpoints: make(map[platform.Direction]*FakeEndpoint),
	}
}

// AddDevice registers an enumerable device for a direction.
func (e *FakeEnumerator) AddDevice(dir platform.Direction, name string, isDefault bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.devices[dir] = append(e.devices[dir], platform.DeviceInfo{Name: name, Default: isDefault})
}

// SetEndpoint wires the endpoint Activate hands out for a direction.
func (e *FakeEnumerator) SetEndpoint(dir platform.Direction, ep *FakeEndpoint) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.endpoints[dir] = ep
}

func (e *FakeEnumerator) Devices(dir platform.Direction) ([]platform.DeviceInfo, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]platform.DeviceInfo(nil), e.devices[dir]...), nil
}

func (e *FakeEnumerator) Activate(dir platform.Direction, name string) (platform.Endpoint, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Activated = append(e.Activated, name)
	if e.ActivateErr != nil {
		return nil, e.ActivateErr
	}
	ep := e.endpoints[dir]
	if ep == nil {
		return nil, platform.ErrNoDevices
	}
	return ep, nil
}

func (e *FakeEnumerator) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	return nil
}

// Closed reports whether Close was called.
func (e *FakeEnumerator) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// FakeEndpoint feeds scripted packets to a capture loop. Packets pushed
// after the queue is exhausted wake a blocked reader; an injected error is
// delivered once and then the endpoint reads as closed.
type FakeEndpoint struct {
	format audio.Format

	mu      sync.Mutex
	packets chan packetOrErr
	started bool
	stopped bool
	closed  bool
}

type packetOrErr struct {
	pkt platform.Packet
	err error
}

func NewFakeEndpoint(format audio.Format) *FakeEndpoint {
	return &FakeEndpoint{
		format:  format,
		packets: make(chan packetOrErr, 256),
	}
}

// Push queues a packet for the reader.
func (ep *FakeEndpoint) Push(pkt platform.Packet) {
	ep.packets <- packetOrErr{pkt: pkt}
}

// PushSamples queues a packet holding the given canonical samples encoded in
// the endpoint's native format.
func (ep *FakeEndpoint) PushSamples(samples []float32) {
	ep.Push(platform.Packet{
		Data:   EncodeSamples(samples, ep.format.Kind),
		Frames: len(samples) / ep.format.Channels,
	})
}

// Fail injects a fatal read error.
func (ep *FakeEndpoint) Fail(err error) {
	ep.packets <- packetOrErr{err: err}
}

func (ep *FakeEndpoint) Format() audio.Format { return ep.format }

func (ep *FakeEndpoint) Start() error {
	ep.mu.Lock()
	defer ep.mu.Unlock()
	ep.started = true
	return nil
}

func (ep *FakeEndpoint) ReadPacket(ctx context.Context, timeout time.Duration) (platform.Packet, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case pe := <-ep.packets:
		if pe.err != nil {
			return platform.Packet{}, pe.err
		}
		return pe.pkt, nil
	case <-timer.C:
		return platform.Packet{}, platform.ErrReadTimeout
	case <-ctx.Done():
		return platform.Packet{}, ctx.Err()
	}
}

func (ep *FakeEndpoint) Stop() error {
	ep.mu.Lock()
	defer ep.mu.Unlock()
	ep.stopped = true
	return nil
}

func (ep *FakeEndpoint) Close() error {
	ep.mu.Lock()
	defer ep.mu.Unlock()
	ep.closed = true
	return nil
}

// Stopped reports whether Stop was called.
func (ep *FakeEndpoint) Stopped() bool {
	ep.mu.Lock()
	defer ep.mu.Unlock()
	return ep.stopped
}

// Closed reports whether Close was called.
func (ep *FakeEndpoint) Closed() bool {
	ep.mu.Lock()
	defer ep.mu.Unlock()
	return ep.closed
}
