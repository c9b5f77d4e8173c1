package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/shtp/pkg"
)

func writeTempConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "shtp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeTempConfig(t, "hal: loopback\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, HALLoopback, cfg.HAL)
	assert.Equal(t, defaultSerialBaud, cfg.Serial.Baud)
	assert.Equal(t, defaultSerialTransferUnit, cfg.Serial.TransferUnit)
	assert.Equal(t, defaultSerialMaxPayload, cfg.Serial.MaxPayload)
	assert.Equal(t, defaultMetricsListen, cfg.Metrics.Listen)
	assert.Equal(t, defaultLogLevel, cfg.Log.Level)
	assert.Equal(t, defaultLogFormat, cfg.Log.Format)
}

func TestLoad_EmptyHALDefaultsToLoopback(t *testing.T) {
	path := writeTempConfig(t, "channels:\n  - id: 1\n    label: imu\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, HALLoopback, cfg.HAL)
	require.Len(t, cfg.Channel, 1)
	assert.EqualValues(t, 1, cfg.Channel[0].ID)
	assert.Equal(t, "imu", cfg.Channel[0].Label)
}

func TestLoad_SerialRequiresPath(t *testing.T) {
	path := writeTempConfig(t, "hal: serial\n")

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_SerialWithPathSucceeds(t *testing.T) {
	path := writeTempConfig(t, "hal: serial\nserial:\n  path: /dev/ttyUSB0\n  baud: 921600\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyUSB0", cfg.Serial.Path)
	assert.Equal(t, 921600, cfg.Serial.Baud)
}

func TestLoad_UnknownHAL(t *testing.T) {
	path := writeTempConfig(t, "hal: carrier-pigeon\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_ReservedChannelZero(t *testing.T) {
	path := writeTempConfig(t, "channels:\n  - id: 0\n    label: bad\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_DuplicateChannel(t *testing.T) {
	path := writeTempConfig(t, "channels:\n  - id: 2\n    label: a\n  - id: 2\n    label: b\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_UnknownLogFormat(t *testing.T) {
	path := writeTempConfig(t, "log:\n  format: xml\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_LogFormat(t *testing.T) {
	var cfg Config
	cfg.Log.Format = "json"
	assert.Equal(t, pkg.LogFormatJSON, cfg.LogFormat())

	cfg.Log.Format = "text"
	assert.Equal(t, pkg.LogFormatText, cfg.LogFormat())
}
