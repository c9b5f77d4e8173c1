// Package loopback provides an in-process [hal.Transport] pair connected by
// buffered channels instead of a real bus. It exists for endpoint tests and
// the gateway's loopback mode, where no SPI/I2C/UART hardware is available.
//
//	a, b := loopback.NewPair(nil)
//	ep, _ := shtp.Open(a)
//	peer, _ := shtp.Open(b)
//
// Frames written to a arrive as reads on b, and vice versa. Both sides
// share the same [hal.Limits], defaulting to a 64-byte transfer unit and a
// 32KiB payload ceiling.
package loopback
