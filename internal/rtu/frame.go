// internal/rtu/frame.go
package rtu

import (
	"fmt"
	"strings"
)

// Reply frame assembly. Pure byte layout: no IO, no side effects.

// BuildReadReply assembles a register read reply ADU.
//
// Layout (byte count is always 2 * len(values)):
//
//	[slave][fc][byteCount][v0 hi][v0 lo]...[crc lo][crc hi]
//
// values in slice order become register payload in request order.
func BuildReadReply(slaveID, function uint8, values []uint16) []byte {
	frame := make([]byte, 0, 3+2*len(values)+2)
	frame = append(frame, slaveID, function, uint8(2*len(values)))
	for _, v := range values {
		frame = append(frame, byte(v>>8), byte(v))
	}
	return AppendCRC(frame)
}

// BuildBitReply assembles a coil / discrete input read reply ADU.
// The low bit of each value becomes one payload bit, packed LSB first.
func BuildBitReply(slaveID, function uint8, values []uint16) []byte {
	n := (len(values) + 7) / 8
	bits := make([]byte, n)
	for i, v := range values {
		if v&1 != 0 {
			bits[i/8] |= 1 << uint(i%8)
		}
	}
	frame := make([]byte, 0, 3+n+2)
	frame = append(frame, slaveID, function, uint8(n))
	frame = append(frame, bits...)
	return AppendCRC(frame)
}

// BuildExceptionReply assembles an exception reply ADU for function.
func BuildExceptionReply(slaveID, function, code uint8) []byte {
	return AppendCRC([]byte{slaveID, function | ExceptionBit, code})
}

// FrameHex renders a frame as space-separated uppercase hex pairs,
// e.g. "01 03 02 00 2A 39 9B". This is the form written to logs.
func FrameHex(frame []byte) string {
	var b strings.Builder
	b.Grow(3 * len(frame))
	for i, v := range frame {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02X", v)
	}
	return b.String()
}
