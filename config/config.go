package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ardnew/shtp/pkg"
)

// HAL names the transport implementation the gateway should open.
type HAL string

// Supported HAL kinds.
const (
	HALLoopback HAL = "loopback"
	HALSerial   HAL = "serial"
)

// Config is the gateway's top-level configuration document.
type Config struct {
	HAL     HAL           `yaml:"hal"`
	Serial  SerialConfig  `yaml:"serial"`
	Channel []ChannelSpec `yaml:"channels"`
	Metrics MetricsConfig `yaml:"metrics"`
	Log     LogConfig     `yaml:"log"`
}

// SerialConfig parameterizes hal/serial. Ignored unless HAL is
// [HALSerial].
type SerialConfig struct {
	Path         string `yaml:"path"`
	Baud         int    `yaml:"baud"`
	TransferUnit int    `yaml:"transfer_unit"`
	MaxPayload   int    `yaml:"max_payload"`
}

// ChannelSpec names a channel for logging. The gateway attaches a logging
// listener to every listed channel.
type ChannelSpec struct {
	ID    uint8  `yaml:"id"`
	Label string `yaml:"label"`
}

// MetricsConfig controls the Prometheus exporter.
type MetricsConfig struct {
	Listen string `yaml:"listen"`
}

// LogConfig controls pkg's structured logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// defaults applied to fields left zero in the parsed document.
const (
	defaultSerialBaud         = 115200
	defaultSerialTransferUnit = 256
	defaultSerialMaxPayload   = 32768
	defaultMetricsListen      = ":9400"
	defaultLogLevel           = "info"
	defaultLogFormat          = "text"
)

// Load reads and parses the YAML document at path, applies defaults, and
// validates the result.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HAL == "" {
		c.HAL = HALLoopback
	}
	if c.Serial.Baud == 0 {
		c.Serial.Baud = defaultSerialBaud
	}
	if c.Serial.TransferUnit == 0 {
		c.Serial.TransferUnit = defaultSerialTransferUnit
	}
	if c.Serial.MaxPayload == 0 {
		c.Serial.MaxPayload = defaultSerialMaxPayload
	}
	if c.Metrics.Listen == "" {
		c.Metrics.Listen = defaultMetricsListen
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = defaultLogFormat
	}
}

// Validate checks the document for internally-consistent, usable values.
// Load always calls Validate; callers constructing a Config by hand
// (e.g. in tests) should call it explicitly.
func (c *Config) Validate() error {
	switch c.HAL {
	case HALLoopback, HALSerial:
	default:
		return fmt.Errorf("%w: unknown hal %q", pkg.ErrBadParam, c.HAL)
	}

	if c.HAL == HALSerial && c.Serial.Path == "" {
		return fmt.Errorf("%w: serial.path is required when hal is %q", pkg.ErrBadParam, HALSerial)
	}

	seen := make(map[uint8]struct{}, len(c.Channel))
	for _, ch := range c.Channel {
		if ch.ID == 0 {
			return fmt.Errorf("%w: channel 0 is reserved and cannot be labeled", pkg.ErrBadParam)
		}
		if _, dup := seen[ch.ID]; dup {
			return fmt.Errorf("%w: duplicate channel id %d", pkg.ErrBadParam, ch.ID)
		}
		seen[ch.ID] = struct{}{}
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", pkg.ErrBadParam, c.Log.Format)
	}

	return nil
}

// LogFormat maps the configured format name to a [pkg.LogFormat] value
// usable with pkg.SetLogFormat.
func (c *Config) LogFormat() pkg.LogFormat {
	if c.Log.Format == "json" {
		return pkg.LogFormatJSON
	}
	return pkg.LogFormatText
}
