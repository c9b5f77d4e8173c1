// Package hal defines the Hardware Abstraction Layer contract the SHTP
// core consumes. It has no dependency on the shtp package: any transport
// that moves framed bytes over SPI, I2C, UART, or an in-memory pipe can
// implement [Transport] and be handed to shtp.Open.
package hal

// Limits describes the transfer and payload size ceilings a transport
// imposes on the endpoint sitting on top of it.
type Limits struct {
	MaxTransferOut int // Largest byte slice Write will accept in one call.
	MaxTransferIn  int // Largest byte slice Read may fill in one call.
	MaxPayloadOut  int // Largest cargo Send will fragment.
	MaxPayloadIn   int // Largest cargo the endpoint will reassemble.
}

// Transport is the byte-level collaborator the SHTP endpoint polls for
// I/O. Implementations must be safe to call from a single goroutine only;
// the endpoint never calls Transport methods concurrently with itself.
type Transport interface {
	// Open brings the transport up. Called once, from the endpoint's
	// Open.
	Open() error

	// Close releases the transport. Called once, from the endpoint's
	// Close.
	Close() error

	// Write attempts to transmit frame in full. It returns the number of
	// bytes accepted (equal to len(frame) on success), 0 if the transport
	// is momentarily busy (the caller should pump Service and retry the
	// identical frame), or a non-nil error to abort the in-progress
	// cargo. Partial writes are not a supported outcome: an implementation
	// either accepts the whole frame or none of it.
	Write(frame []byte) (int, error)

	// Read is non-blocking: it returns (0, 0, nil) immediately when no
	// frame is currently available. When a frame is available it copies
	// up to len(buf) bytes into buf and returns the byte count along with
	// a monotonic microsecond timestamp recorded at the moment the
	// transport received the frame. A non-nil error indicates the
	// transport itself has failed (not a protocol anomaly, which is the
	// endpoint's concern).
	Read(buf []byte) (int, uint64, error)

	// Limits returns the transfer and payload size ceilings this
	// transport imposes.
	Limits() Limits
}
