//go:build linux

// Package serial implements [hal.Transport] over a Linux TTY device, for
// running the protocol across a real UART instead of the in-memory
// [github.com/ardnew/shtp/hal/loopback] pair.
package serial

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"github.com/ardnew/shtp/hal"
	"github.com/ardnew/shtp/pkg"
)

// Default transfer unit and payload ceiling for a UART link. A single
// transfer unit is sized to fit comfortably inside the kernel's TTY
// buffers without the HAL having to chunk its own writes.
const (
	DefaultTransferUnit = 256
	DefaultMaxPayload   = 32768
)

// Config describes how to open and configure a serial port.
type Config struct {
	// Path is the device node, e.g. "/dev/ttyUSB0" or "/dev/ttyAMA0".
	Path string

	// Baud is the symbol rate. Only the standard B-constants recognized by
	// [baudConstant] are accepted; anything else causes Open to fail.
	Baud int

	// TransferUnit overrides DefaultTransferUnit when non-zero.
	TransferUnit int

	// MaxPayload overrides DefaultMaxPayload when non-zero.
	MaxPayload int
}

// HAL implements [hal.Transport] over a termios-configured serial port.
type HAL struct {
	cfg Config

	mutex sync.RWMutex
	fd    int
	open  bool
}

// New creates a serial HAL for the given configuration. The port is not
// opened until Open is called.
func New(cfg Config) *HAL {
	if cfg.TransferUnit == 0 {
		cfg.TransferUnit = DefaultTransferUnit
	}
	if cfg.MaxPayload == 0 {
		cfg.MaxPayload = DefaultMaxPayload
	}
	return &HAL{cfg: cfg, fd: -1}
}

// Open opens the configured device node in non-blocking raw mode.
func (h *HAL) Open() error {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.open {
		return pkg.ErrBadParam
	}

	fd, err := unix.Open(h.cfg.Path, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", h.cfg.Path, err)
	}

	if err := configureRaw(fd, h.cfg.Baud); err != nil {
		unix.Close(fd)
		return fmt.Errorf("configure %s: %w", h.cfg.Path, err)
	}

	h.fd = fd
	h.open = true
	pkg.LogInfo(pkg.ComponentHAL, "serial port opened", "path", h.cfg.Path, "baud", h.cfg.Baud)
	return nil
}

// Close closes the underlying file descriptor.
func (h *HAL) Close() error {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if !h.open {
		return nil
	}
	err := unix.Close(h.fd)
	h.fd = -1
	h.open = false
	pkg.LogInfo(pkg.ComponentHAL, "serial port closed", "path", h.cfg.Path)
	return err
}

// Write writes frame to the port. A short write from the kernel is
// retried until the whole frame is sent or an error other than EAGAIN
// occurs.
func (h *HAL) Write(frame []byte) (int, error) {
	h.mutex.RLock()
	fd, open := h.fd, h.open
	h.mutex.RUnlock()
	if !open {
		return 0, pkg.ErrClosed
	}

	written := 0
	for written < len(frame) {
		n, err := unix.Write(fd, frame[written:])
		if n > 0 {
			written += n
		}
		if err != nil {
			if err == unix.EAGAIN {
				time.Sleep(time.Millisecond)
				continue
			}
			return written, err
		}
	}
	return written, nil
}

// Read performs a single non-blocking read. With nothing waiting on the
// port it returns (0, 0, nil) per the HAL's busy convention.
func (h *HAL) Read(buf []byte) (int, uint64, error) {
	h.mutex.RLock()
	fd, open := h.fd, h.open
	h.mutex.RUnlock()
	if !open {
		return 0, 0, pkg.ErrClosed
	}

	n, err := unix.Read(fd, buf)
	if err != nil {
		if err == unix.EAGAIN {
			return 0, 0, nil
		}
		return 0, 0, err
	}
	if n <= 0 {
		return 0, 0, nil
	}
	return n, uint64(time.Now().UnixMicro()), nil
}

// Limits reports the configured transfer unit and payload ceiling, used
// for both directions since a UART link is symmetric.
func (h *HAL) Limits() hal.Limits {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return hal.Limits{
		MaxTransferOut: h.cfg.TransferUnit,
		MaxTransferIn:  h.cfg.TransferUnit,
		MaxPayloadOut:  h.cfg.MaxPayload,
		MaxPayloadIn:   h.cfg.MaxPayload,
	}
}

var _ hal.Transport = (*HAL)(nil)
