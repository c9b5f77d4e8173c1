// Package hal defines the Hardware Abstraction Layer interface consumed by
// the SHTP core.
//
// # Design Principles
//
// The HAL is designed to be:
//
//   - Minimal: read, write, open, close, and the four size limits.
//   - Generic: no assumptions about SPI vs I2C vs UART vs an in-memory pipe.
//   - Polled: all I/O is non-blocking from the endpoint's point of view;
//     there is no asynchronous completion callback in the contract.
//
// # Implementing a HAL
//
// To implement a HAL for a new transport:
//
//  1. Create a type that implements all [Transport] methods.
//  2. Make Write all-or-nothing at the frame boundary (see [Transport]).
//  3. Make Read non-blocking, returning (0, 0, nil) when idle.
//  4. Report accurate Limits so the endpoint sizes its buffers correctly.
//
// An in-memory implementation for tests and local demos is available in
// [github.com/ardnew/shtp/hal/loopback]. A Linux UART implementation is
// available in [github.com/ardnew/shtp/hal/serial].
package hal
