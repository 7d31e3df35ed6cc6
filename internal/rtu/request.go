// internal/rtu/request.go
package rtu

import "errors"

// Request is one decoded master read request.
// Geometry only: no semantics.
type Request struct {
	SlaveID  uint8
	Function uint8
	Address  uint16
	Quantity uint16
}

var (
	ErrShortFrame = errors.New("rtu: frame too short")
	ErrCRC        = errors.New("rtu: crc mismatch")
)

// DecodeRequest parses a fixed-size request ADU (FC 1-6 geometry).
// It checks length and CRC only, never function semantics.
func DecodeRequest(frame []byte) (Request, error) {
	if len(frame) < ReadRequestSize {
		return Request{}, ErrShortFrame
	}
	if !VerifyCRC(frame) {
		return Request{}, ErrCRC
	}
	return Request{
		SlaveID:  frame[0],
		Function: frame[1],
		Address:  uint16(frame[2])<<8 | uint16(frame[3]),
		Quantity: uint16(frame[4])<<8 | uint16(frame[5]),
	}, nil
}

// RequestSize returns the expected full ADU size of the request
// beginning at buf. When buf is too short to decide, it returns the
// number of bytes needed to decide. Unknown function codes return 0;
// callers must drop the burst.
func RequestSize(buf []byte) int {
	if len(buf) < 2 {
		return 2
	}
	switch buf[1] {
	case FuncReadCoils, FuncReadDiscreteInputs, FuncReadHolding, FuncReadInput,
		FuncWriteSingleCoil, FuncWriteSingleRegister:
		return ReadRequestSize
	case FuncWriteMultipleCoils, FuncWriteMultipleRegs:
		// slave, fc, address, quantity, byte count, data, crc
		if len(buf) < 7 {
			return 7
		}
		return 9 + int(buf[6])
	case FuncEncapsulated:
		// slave, fc, mei type, read code, object id, crc
		return 7
	}
	return 0
}
