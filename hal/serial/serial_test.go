//go:build linux

package serial

import "testing"

func TestBaudConstant(t *testing.T) {
	tests := []struct {
		baud    int
		wantErr bool
	}{
		{9600, false},
		{19200, false},
		{38400, false},
		{57600, false},
		{115200, false},
		{230400, false},
		{460800, false},
		{921600, false},
		{1234, true},
	}

	for _, tt := range tests {
		_, err := baudConstant(tt.baud)
		if (err != nil) != tt.wantErr {
			t.Errorf("baudConstant(%d) error = %v, wantErr %v", tt.baud, err, tt.wantErr)
		}
	}
}

func TestNew_Defaults(t *testing.T) {
	h := New(Config{Path: "/dev/ttyUSB0", Baud: 115200})
	lim := h.Limits()
	if lim.MaxTransferOut != DefaultTransferUnit {
		t.Errorf("MaxTransferOut = %d, want %d", lim.MaxTransferOut, DefaultTransferUnit)
	}
	if lim.MaxPayloadOut != DefaultMaxPayload {
		t.Errorf("MaxPayloadOut = %d, want %d", lim.MaxPayloadOut, DefaultMaxPayload)
	}
}

func TestNew_CustomLimits(t *testing.T) {
	h := New(Config{Path: "/dev/ttyUSB0", Baud: 9600, TransferUnit: 32, MaxPayload: 1024})
	lim := h.Limits()
	if lim.MaxTransferOut != 32 || lim.MaxPayloadOut != 1024 {
		t.Errorf("Limits() = %+v, want transfer=32 payload=1024", lim)
	}
}

func TestReadWriteOnUnopenedPort(t *testing.T) {
	h := New(Config{Path: "/dev/ttyUSB0", Baud: 115200})
	if _, err := h.Write([]byte{0x01}); err == nil {
		t.Error("Write() on unopened port error = nil, want non-nil")
	}
	buf := make([]byte, 8)
	if _, _, err := h.Read(buf); err == nil {
		t.Error("Read() on unopened port error = nil, want non-nil")
	}
}

func TestCloseUnopenedIsSafe(t *testing.T) {
	h := New(Config{Path: "/dev/ttyUSB0", Baud: 115200})
	if err := h.Close(); err != nil {
		t.Errorf("Close() on unopened port error = %v, want nil", err)
	}
}
