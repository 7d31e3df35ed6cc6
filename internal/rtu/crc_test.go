// internal/rtu/crc_test.go
package rtu

import "testing"

func TestCRC16(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want uint16
	}{
		{"empty", nil, 0xFFFF},
		{"single zero byte", []byte{0x00}, 0x40BF},
		{"single one byte", []byte{0x01}, 0x807E},
		{"read coils request", []byte{0x11, 0x01, 0x00, 0x13, 0x00, 0x25}, 0x840E},
		{"read holding reply", []byte{0x01, 0x03, 0x04, 0x00, 0x0A, 0x00, 0x14}, 0x3EDA},
	}

	for _, tc := range cases {
		if got := CRC16(tc.data); got != tc.want {
			t.Errorf("%s: CRC16=0x%04X want 0x%04X", tc.name, got, tc.want)
		}
	}
}

func TestAppendCRC_LowByteFirst(t *testing.T) {
	frame := AppendCRC([]byte{0x11, 0x01, 0x00, 0x13, 0x00, 0x25})

	if len(frame) != 8 {
		t.Fatalf("len=%d want 8", len(frame))
	}
	if frame[6] != 0x0E || frame[7] != 0x84 {
		t.Fatalf("trailer=%02X %02X want 0E 84", frame[6], frame[7])
	}
}

func TestVerifyCRC(t *testing.T) {
	frame := AppendCRC([]byte{0x01, 0x03, 0x02, 0x00, 0x2A})

	if !VerifyCRC(frame) {
		t.Fatalf("valid frame rejected")
	}

	frame[4]++ // corrupt payload
	if VerifyCRC(frame) {
		t.Fatalf("corrupt frame accepted")
	}
}

func TestVerifyCRC_ShortFrame(t *testing.T) {
	for _, frame := range [][]byte{nil, {0x01}, {0x01, 0x03}, {0x01, 0x03, 0x00}} {
		if VerifyCRC(frame) {
			t.Fatalf("frame of %d bytes accepted", len(frame))
		}
	}
}
