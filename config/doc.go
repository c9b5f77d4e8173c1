// Package config loads and validates the YAML configuration consumed by
// the shtp-gateway binary: which HAL to use, serial device parameters,
// channel-to-label mapping for logging, and the metrics listen address.
package config
