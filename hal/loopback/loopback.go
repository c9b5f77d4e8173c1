// Package loopback implements an in-memory, paired [hal.Transport] useful
// for tests and local demos that don't have real SPI/I2C/UART hardware.
package loopback

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/ardnew/shtp/hal"
	"github.com/ardnew/shtp/pkg"
)

// Default limits for a loopback transport. These are arbitrary but small
// enough to exercise the endpoint's fragmentation path in tests.
const (
	DefaultMaxTransferOut = 64
	DefaultMaxTransferIn  = 64
	DefaultMaxPayloadOut  = 32768
	DefaultMaxPayloadIn   = 32768
)

// frame is a single written buffer plus the time it was enqueued, so the
// reading side can report an accurate receive timestamp.
type frame struct {
	data []byte
	at   uint64
}

// Endpoint is one side of a loopback pair. Writes on one Endpoint arrive as
// reads on its peer. Endpoint implements [hal.Transport].
type Endpoint struct {
	name   string
	limits hal.Limits

	inbox chan frame
	peer  *Endpoint

	connected uint32 // atomic: 1 once Open has succeeded
	mutex     sync.RWMutex
	closeCh   chan struct{}
	closeOnce sync.Once
}

// NewPair creates two linked loopback endpoints, "a" and "b", each the
// peer of the other. Writes to one arrive as reads on the other. Both
// endpoints use limits if non-nil, or the package defaults otherwise.
func NewPair(limits *hal.Limits) (a, b *Endpoint) {
	lim := hal.Limits{
		MaxTransferOut: DefaultMaxTransferOut,
		MaxTransferIn:  DefaultMaxTransferIn,
		MaxPayloadOut:  DefaultMaxPayloadOut,
		MaxPayloadIn:   DefaultMaxPayloadIn,
	}
	if limits != nil {
		lim = *limits
	}

	a = &Endpoint{
		name:    "a",
		limits:  lim,
		inbox:   make(chan frame, 64),
		closeCh: make(chan struct{}),
	}
	b = &Endpoint{
		name:    "b",
		limits:  lim,
		inbox:   make(chan frame, 64),
		closeCh: make(chan struct{}),
	}
	a.peer, b.peer = b, a
	return a, b
}

// Open marks the endpoint connected. It never fails.
func (e *Endpoint) Open() error {
	atomic.StoreUint32(&e.connected, 1)
	pkg.LogDebug(pkg.ComponentHAL, "loopback endpoint opened", "side", e.name)
	return nil
}

// Close marks the endpoint disconnected and unblocks any Write waiting on
// a full inbox. It is safe to call more than once.
func (e *Endpoint) Close() error {
	atomic.StoreUint32(&e.connected, 0)
	e.closeOnce.Do(func() {
		close(e.closeCh)
	})
	pkg.LogDebug(pkg.ComponentHAL, "loopback endpoint closed", "side", e.name)
	return nil
}

// Write delivers frame to the peer's inbox as a single unit. Write is
// all-or-nothing: either the whole frame is queued, or none of it is.
func (e *Endpoint) Write(data []byte) (int, error) {
	if atomic.LoadUint32(&e.connected) == 0 || atomic.LoadUint32(&e.peer.connected) == 0 {
		return 0, pkg.ErrClosed
	}
	if len(data) > e.limits.MaxTransferOut {
		return 0, pkg.ErrBadParam
	}

	cp := make([]byte, len(data))
	copy(cp, data)
	f := frame{data: cp, at: uint64(time.Now().UnixMicro())}

	select {
	case e.peer.inbox <- f:
		return len(data), nil
	case <-e.closeCh:
		return 0, pkg.ErrClosed
	case <-e.peer.closeCh:
		return 0, pkg.ErrClosed
	}
}

// Read copies the oldest queued frame into buf and returns its length and
// the timestamp it was written at. Read never blocks: with nothing queued
// it returns (0, 0, nil), matching the HAL's busy convention.
func (e *Endpoint) Read(buf []byte) (int, uint64, error) {
	if atomic.LoadUint32(&e.connected) == 0 {
		return 0, 0, pkg.ErrClosed
	}

	select {
	case f := <-e.inbox:
		n := copy(buf, f.data)
		return n, f.at, nil
	default:
		return 0, 0, nil
	}
}

// Limits reports the transport's configured transfer and payload ceilings.
func (e *Endpoint) Limits() hal.Limits {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	return e.limits
}

var _ hal.Transport = (*Endpoint)(nil)
