// internal/rtu/frame_test.go
package rtu

import (
	"bytes"
	"testing"
)

func TestBuildReadReply_Layout(t *testing.T) {
	got := BuildReadReply(1, FuncReadHolding, []uint16{10, 20})
	want := []byte{0x01, 0x03, 0x04, 0x00, 0x0A, 0x00, 0x14, 0xDA, 0x3E}

	if !bytes.Equal(got, want) {
		t.Fatalf("frame=% X want % X", got, want)
	}
}

func TestBuildReadReply_ByteCount(t *testing.T) {
	for _, n := range []int{1, 2, 5, 125} {
		frame := BuildReadReply(1, FuncReadHolding, make([]uint16, n))

		if int(frame[2]) != 2*n {
			t.Fatalf("n=%d byteCount=%d want %d", n, frame[2], 2*n)
		}
		if len(frame) != 3+2*n+2 {
			t.Fatalf("n=%d len=%d want %d", n, len(frame), 3+2*n+2)
		}
		if !VerifyCRC(frame) {
			t.Fatalf("n=%d crc trailer invalid", n)
		}
	}
}

func TestBuildReadReply_ValueOrder(t *testing.T) {
	got := BuildReadReply(1, FuncReadHolding, []uint16{0x0A0B, 0x0C0D, 0xFFFF})
	want := []byte{0x01, 0x03, 0x06, 0x0A, 0x0B, 0x0C, 0x0D, 0xFF, 0xFF, 0x17, 0x3D}

	if !bytes.Equal(got, want) {
		t.Fatalf("frame=% X want % X", got, want)
	}
}

func TestBuildReadReply_Empty(t *testing.T) {
	got := BuildReadReply(2, FuncReadHolding, nil)
	want := []byte{0x02, 0x03, 0x00, 0xD0, 0xF0}

	if !bytes.Equal(got, want) {
		t.Fatalf("frame=% X want % X", got, want)
	}
}

func TestBuildBitReply(t *testing.T) {
	// Low bits 1,0,1 pack LSB first into 0x05.
	got := BuildBitReply(1, FuncReadCoils, []uint16{1, 0, 1})
	want := []byte{0x01, 0x01, 0x01, 0x05, 0x91, 0x8B}

	if !bytes.Equal(got, want) {
		t.Fatalf("frame=% X want % X", got, want)
	}
}

func TestBuildBitReply_PayloadRoundsUp(t *testing.T) {
	got := BuildBitReply(1, FuncReadDiscreteInputs, make([]uint16, 9))
	want := []byte{0x01, 0x02, 0x02, 0x00, 0x00, 0xB9, 0xB8}

	if !bytes.Equal(got, want) {
		t.Fatalf("frame=% X want % X", got, want)
	}
}

func TestBuildExceptionReply(t *testing.T) {
	got := BuildExceptionReply(1, FuncWriteMultipleRegs, ExcIllegalFunction)
	want := []byte{0x01, 0x90, 0x01, 0x8D, 0xC0}

	if !bytes.Equal(got, want) {
		t.Fatalf("frame=% X want % X", got, want)
	}
}

func TestFrameHex(t *testing.T) {
	got := FrameHex([]byte{0x01, 0x03, 0x02, 0x00, 0x2A, 0x39, 0x9B})
	want := "01 03 02 00 2A 39 9B"

	if got != want {
		t.Fatalf("hex=%q want %q", got, want)
	}
	if FrameHex(nil) != "" {
		t.Fatalf("empty frame must render empty string")
	}
}
