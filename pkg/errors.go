package pkg

import "errors"

// Synchronous errors returned by endpoint API calls.
var (
	// ErrBadParam indicates an out-of-range channel or an oversized payload
	// passed to Send or Listen.
	ErrBadParam = errors.New("bad parameter")

	// ErrHAL indicates the HAL returned a negative status from Write,
	// aborting the in-progress cargo.
	ErrHAL = errors.New("hal error")

	// ErrNoInstance indicates Open failed to allocate an endpoint slot.
	ErrNoInstance = errors.New("no instance available")

	// ErrHalOpenFailed indicates the HAL's Open call failed.
	ErrHalOpenFailed = errors.New("hal open failed")

	// ErrClosed indicates an operation was attempted on a closed endpoint.
	ErrClosed = errors.New("endpoint closed")
)

// EventKind identifies an asynchronous, non-fatal protocol anomaly
// reported through the endpoint's event callback.
type EventKind int

// Protocol event kinds reported asynchronously through an endpoint's
// event callback; see [EventLevel] for how each kind is logged.
const (
	// EventShortFragment: a received transfer was shorter than the header,
	// or its declared payload length was shorter than the header.
	EventShortFragment EventKind = iota

	// EventTooLargePayload: a new assembly's declared payload length
	// exceeds MaxPayloadIn, an assembly in progress grows past
	// MaxPayloadIn, or Send was given a payload larger than MaxPayloadOut.
	EventTooLargePayload

	// EventBadRxChannel: a received frame named a channel >= MaxChannels.
	EventBadRxChannel

	// EventBadTxChannel: Send was called with a channel >= MaxChannels.
	EventBadTxChannel

	// EventBadFragment: a frame arrived while an assembly was in progress
	// and was not a compatible continuation of it (continuation bit clear,
	// wrong channel, or wrong sequence). A continuation frame that arrives
	// with no assembly in progress is not reported; it starts a new one.
	EventBadFragment

	// EventBadSequence: a received frame's sequence number did not match
	// the channel's expected next_in_seq. The frame is still processed.
	EventBadSequence

	// EventInterruptedPayload: an in-progress assembly was abandoned
	// because an incompatible frame arrived.
	EventInterruptedPayload

	// EventTxDiscard: Send aborted a cargo mid-transmission because the
	// HAL's Write returned an error.
	EventTxDiscard
)

// String returns a human-readable event name.
func (e EventKind) String() string {
	switch e {
	case EventShortFragment:
		return "short_fragment"
	case EventTooLargePayload:
		return "too_large_payload"
	case EventBadRxChannel:
		return "bad_rx_channel"
	case EventBadTxChannel:
		return "bad_tx_channel"
	case EventBadFragment:
		return "bad_fragment"
	case EventBadSequence:
		return "bad_sequence"
	case EventInterruptedPayload:
		return "interrupted_payload"
	case EventTxDiscard:
		return "tx_discard"
	default:
		return "unknown"
	}
}
