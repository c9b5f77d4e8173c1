package shtp

import "testing"

func TestPutHeader_SingleFragment(t *testing.T) {
	// S1: send(2, [0x01,0x02,0x03]) -> [07 00 02 00 01 02 03]
	buf := make([]byte, 7)
	putHeader(buf, 7, false, 2, 0)
	copy(buf[HeaderLen:], []byte{0x01, 0x02, 0x03})

	want := []byte{0x07, 0x00, 0x02, 0x00, 0x01, 0x02, 0x03}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("buf[%d] = %#x, want %#x", i, buf[i], want[i])
		}
	}
}

func TestPutHeader_TwoFragments(t *testing.T) {
	// S2: frame 1 header = [40 00 03 00], frame 2 header = [18 80 03 01]
	f1 := make([]byte, 4)
	putHeader(f1, 64, false, 3, 0)
	want1 := []byte{0x40, 0x00, 0x03, 0x00}
	for i := range want1 {
		if f1[i] != want1[i] {
			t.Errorf("frame1[%d] = %#x, want %#x", i, f1[i], want1[i])
		}
	}

	f2 := make([]byte, 4)
	putHeader(f2, 24, true, 3, 1)
	want2 := []byte{0x18, 0x80, 0x03, 0x01}
	for i := range want2 {
		if f2[i] != want2[i] {
			t.Errorf("frame2[%d] = %#x, want %#x", i, f2[i], want2[i])
		}
	}
}

func TestDecodeHeader_RoundTrip(t *testing.T) {
	tests := []struct {
		name         string
		frameLen     int
		continuation bool
		channel      uint8
		sequence     uint8
	}{
		{"single fragment", 7, false, 2, 0},
		{"continuation", 24, true, 3, 1},
		{"max length", 0x7FFF, false, 7, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, HeaderLen)
			putHeader(buf, tt.frameLen, tt.continuation, tt.channel, tt.sequence)
			got := decodeHeader(buf)
			if got.frameLen != tt.frameLen {
				t.Errorf("frameLen = %d, want %d", got.frameLen, tt.frameLen)
			}
			if got.continuation != tt.continuation {
				t.Errorf("continuation = %v, want %v", got.continuation, tt.continuation)
			}
			if got.channel != tt.channel {
				t.Errorf("channel = %d, want %d", got.channel, tt.channel)
			}
			if got.sequence != tt.sequence {
				t.Errorf("sequence = %d, want %d", got.sequence, tt.sequence)
			}
		})
	}
}
