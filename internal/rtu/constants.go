// internal/rtu/constants.go
package rtu

// Modbus RTU protocol constants.
// These values define the wire protocol and MUST NOT be configurable.

// ---- FUNCTION CODES ----

const (
	FuncReadCoils          uint8 = 0x01
	FuncReadDiscreteInputs uint8 = 0x02
	FuncReadHolding        uint8 = 0x03
	FuncReadInput          uint8 = 0x04
)

// Write functions are recognized for framing only. The emulator never
// serves them.
const (
	FuncWriteSingleCoil     uint8 = 0x05
	FuncWriteSingleRegister uint8 = 0x06
	FuncWriteMultipleCoils  uint8 = 0x0F
	FuncWriteMultipleRegs   uint8 = 0x10
)

// FuncEncapsulated carries MEI transport requests (device identification).
const FuncEncapsulated uint8 = 0x2B

// MEIReadDeviceID is the MEI type for Read Device Identification.
const MEIReadDeviceID uint8 = 0x0E

// ---- EXCEPTIONS ----

// ExceptionBit marks a reply as an exception when ORed into the function code.
const ExceptionBit uint8 = 0x80

const (
	ExcIllegalFunction uint8 = 0x01
	ExcIllegalAddress  uint8 = 0x02
	ExcIllegalValue    uint8 = 0x03
	ExcServerFailure   uint8 = 0x04
)

// ---- FRAME GEOMETRY ----

// ReadRequestSize is the fixed ADU size of every FC 1-6 request:
// slave, function, two address bytes, two quantity bytes, two CRC bytes.
const ReadRequestSize = 8

// MinFrameSize is the smallest frame that can carry a CRC:
// slave, function, CRC low, CRC high.
const MinFrameSize = 4

// MaxFrameSize is the largest ADU the emulator will buffer.
const MaxFrameSize = 256

// ---- SLAVE ADDRESSING ----

// MaxSlaveID is the highest valid unicast slave address.
const MaxSlaveID = 247
