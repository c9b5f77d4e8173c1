// Package shtp implements the Sensor Hub Transport Protocol core: a
// fragmenting, multi-channel, sequence-numbered framing layer that moves
// variable-length application payloads over a [hal.Transport].
package shtp

import (
	"fmt"

	"github.com/ardnew/shtp/hal"
	"github.com/ardnew/shtp/pkg"
)

// Endpoint owns a transport, a channel table, reassembly state, and
// diagnostic counters. It is single-threaded cooperative: Send, Service,
// Listen, SetEventCallback, and Close must not be called concurrently on
// the same Endpoint. The one exception is Counters, which is safe to call
// from another goroutine at any time.
type Endpoint struct {
	transport hal.Transport
	limits    hal.Limits

	channels [MaxChannels]channelState

	eventCB     EventCallback
	eventCookie any

	outBuf []byte
	inBuf  []byte

	// Reassembly state (one in-flight payload at a time).
	inPayload   []byte
	inCursor    int
	inRemaining int
	inChannel   uint8
	inTimestamp uint64

	counters counterSet

	closed bool
}

// Open acquires the transport (calling its Open method) and returns a
// ready-to-use Endpoint sized according to the transport's reported
// [hal.Limits]. On transport failure, Open returns [pkg.ErrHalOpenFailed].
func Open(transport hal.Transport) (*Endpoint, error) {
	if transport == nil {
		return nil, pkg.ErrBadParam
	}
	if err := transport.Open(); err != nil {
		return nil, fmt.Errorf("%w: %v", pkg.ErrHalOpenFailed, err)
	}

	limits := transport.Limits()
	e := &Endpoint{
		transport: transport,
		limits:    limits,
		outBuf:    make([]byte, limits.MaxTransferOut),
		inBuf:     make([]byte, limits.MaxTransferIn),
		inPayload: make([]byte, limits.MaxPayloadIn),
	}
	pkg.LogInfo(pkg.ComponentEndpoint, "endpoint opened",
		"maxTransferOut", limits.MaxTransferOut,
		"maxTransferIn", limits.MaxTransferIn,
		"maxPayloadOut", limits.MaxPayloadOut,
		"maxPayloadIn", limits.MaxPayloadIn)
	return e, nil
}

// Close closes the underlying transport and invalidates the endpoint.
// Calling any other method after Close is undefined.
func (e *Endpoint) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	for i := range e.channels {
		e.channels[i].listener = nil
		e.channels[i].cookie = nil
	}
	e.eventCB = nil
	pkg.LogInfo(pkg.ComponentEndpoint, "endpoint closed")
	return e.transport.Close()
}

// SetEventCallback installs the callback invoked for asynchronous
// protocol anomalies. May be called at any time after Open.
func (e *Endpoint) SetEventCallback(cb EventCallback, cookie any) {
	e.eventCB = cb
	e.eventCookie = cookie
}

// Listen registers a listener for channel, overwriting any prior
// registration. Channel 0 is reserved and always fails with
// [pkg.ErrBadParam], as does any channel >= MaxChannels.
func (e *Endpoint) Listen(channel uint8, cb Listener, cookie any) error {
	if channel == 0 || int(channel) >= MaxChannels {
		return pkg.ErrBadParam
	}
	e.channels[channel].listener = cb
	e.channels[channel].cookie = cookie
	pkg.LogDebug(pkg.ComponentChannel, "listener registered", "channel", channel)
	return nil
}

// Send fragments payload into transport-sized frames and writes each one
// via the transport, pumping Service between retries whenever the
// transport reports busy. A HAL write error aborts the cargo mid-flight;
// the endpoint itself remains usable.
//
// The receiver's only end-of-cargo signal is a fragment shorter than
// MaxTransferIn (see rxAssemble); a fragment that exactly fills the
// ceiling reads as "more data follows." Whenever the last real chunk of a
// cargo would exactly fill MaxTransferOut — including an empty payload,
// which never enters the loop below — Send appends one more, empty
// fragment so that signal is never ambiguous.
func (e *Endpoint) Send(channel uint8, payload []byte) error {
	if e.closed {
		return pkg.ErrClosed
	}
	if int(channel) >= MaxChannels {
		e.counters.incTxBadChannel()
		e.emit(pkg.EventBadTxChannel)
		return pkg.ErrBadParam
	}
	if len(payload) > e.limits.MaxPayloadOut {
		e.counters.incTxTooLargePayloads()
		e.emit(pkg.EventTooLargePayload)
		return pkg.ErrBadParam
	}

	maxChunk := e.limits.MaxTransferOut - HeaderLen
	cursor, remaining, continuation := 0, len(payload), false
	lastChunk := -1

	for remaining > 0 {
		chunk := remaining
		if chunk > maxChunk {
			chunk = maxChunk
		}
		if err := e.sendFragment(channel, payload[cursor:cursor+chunk], continuation); err != nil {
			return err
		}
		continuation = true
		cursor += chunk
		remaining -= chunk
		lastChunk = chunk
	}

	if lastChunk == maxChunk || lastChunk == -1 {
		if err := e.sendFragment(channel, nil, continuation); err != nil {
			return err
		}
	}
	return nil
}

// sendFragment writes a single fragment of chunk bytes, assigning and
// advancing the channel's outbound sequence number.
func (e *Endpoint) sendFragment(channel uint8, chunk []byte, continuation bool) error {
	frameLen := len(chunk) + HeaderLen

	seq := e.channels[channel].nextOutSeq
	e.channels[channel].nextOutSeq = seq + 1 // wraps mod 256 via uint8

	frame := e.outBuf[:frameLen]
	putHeader(frame, frameLen, continuation, channel, seq)
	copy(frame[HeaderLen:], chunk)

	if err := e.writeFrame(frame); err != nil {
		e.counters.incTxDiscards()
		e.emit(pkg.EventTxDiscard)
		return fmt.Errorf("%w: %v", pkg.ErrHAL, err)
	}
	return nil
}

// writeFrame writes frame, pumping Service and retrying while the
// transport reports busy (a zero-length, nil-error write).
func (e *Endpoint) writeFrame(frame []byte) error {
	for {
		n, err := e.transport.Write(frame)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		e.Service()
	}
}

// Service performs one non-blocking read from the transport and, if a
// frame was available, feeds it to the reassembly state machine.
func (e *Endpoint) Service() {
	if e.closed {
		return
	}
	n, ts, err := e.transport.Read(e.inBuf)
	if err != nil {
		pkg.LogWarn(pkg.ComponentHAL, "transport read error", "error", err)
		return
	}
	if n <= 0 {
		return
	}
	e.rxAssemble(e.inBuf[:n], ts)
}
