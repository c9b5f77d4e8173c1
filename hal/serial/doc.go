// Package serial implements [hal.Transport] over a Linux UART device node
// using raw termios ioctls from [golang.org/x/sys/unix]. It is the
// transport used when the host or sensor hub is attached to a real TTY
// rather than the [github.com/ardnew/shtp/hal/loopback] test pair.
//
//	h := serial.New(serial.Config{Path: "/dev/ttyUSB0", Baud: 115200})
//	ep, err := shtp.Open(h) // Open calls h.Open() internally
//	if err != nil {
//	    // ...
//	}
//	defer ep.Close() // closes h too
//
// The port is opened O_NONBLOCK and left there: Read always returns
// immediately, reporting (0, 0, nil) when no bytes are waiting, matching
// the HAL's busy convention.
package serial
