// internal/rtu/request_test.go
package rtu

import (
	"errors"
	"testing"
)

func TestDecodeRequest(t *testing.T) {
	frame := []byte{0x01, 0x03, 0x00, 0x00, 0x00, 0x02, 0xC4, 0x0B}

	req, err := DecodeRequest(frame)
	if err != nil {
		t.Fatalf("DecodeRequest err=%v", err)
	}
	if req.SlaveID != 1 || req.Function != 3 {
		t.Fatalf("slave=%d fc=%d want 1/3", req.SlaveID, req.Function)
	}
	if req.Address != 0 || req.Quantity != 2 {
		t.Fatalf("addr=%d qty=%d want 0/2", req.Address, req.Quantity)
	}
}

func TestDecodeRequest_BadCRC(t *testing.T) {
	frame := []byte{0x01, 0x03, 0x00, 0x00, 0x00, 0x02, 0xC4, 0x0C}

	if _, err := DecodeRequest(frame); !errors.Is(err, ErrCRC) {
		t.Fatalf("err=%v want ErrCRC", err)
	}
}

func TestDecodeRequest_Short(t *testing.T) {
	frame := []byte{0x01, 0x03, 0x00}

	if _, err := DecodeRequest(frame); !errors.Is(err, ErrShortFrame) {
		t.Fatalf("err=%v want ErrShortFrame", err)
	}
}

func TestRequestSize(t *testing.T) {
	cases := []struct {
		name string
		buf  []byte
		want int
	}{
		{"header incomplete", []byte{0x01}, 2},
		{"read coils", []byte{0x01, 0x01}, 8},
		{"read holding", []byte{0x01, 0x03}, 8},
		{"write single register", []byte{0x01, 0x06}, 8},
		{"write multiple needs count byte", []byte{0x01, 0x10, 0x00, 0x00, 0x00, 0x01}, 7},
		{"write multiple sized", []byte{0x01, 0x10, 0x00, 0x00, 0x00, 0x01, 0x02}, 11},
		{"device identification", []byte{0x01, 0x2B}, 7},
		{"unknown function", []byte{0x01, 0x55}, 0},
	}

	for _, tc := range cases {
		if got := RequestSize(tc.buf); got != tc.want {
			t.Errorf("%s: size=%d want %d", tc.name, got, tc.want)
		}
	}
}
