// internal/rtu/crc.go
package rtu

// CRC16 computes the Modbus RTU checksum of data.
// Initial value 0xFFFF, reflected polynomial 0xA001.
// The empty input yields 0xFFFF.
func CRC16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc ^= uint16(b)
		for i := 0; i < 8; i++ {
			if crc&0x0001 != 0 {
				crc = (crc >> 1) ^ 0xA001
			} else {
				crc >>= 1
			}
		}
	}
	return crc
}

// AppendCRC returns frame with its CRC appended.
// Wire order is low byte first.
func AppendCRC(frame []byte) []byte {
	crc := CRC16(frame)
	return append(frame, byte(crc), byte(crc>>8)) // low byte, high byte
}

// VerifyCRC reports whether the trailing two bytes of frame hold the
// correct CRC for the preceding bytes. Frames shorter than MinFrameSize
// cannot carry a CRC and always fail.
func VerifyCRC(frame []byte) bool {
	if len(frame) < MinFrameSize {
		return false
	}
	n := len(frame) - 2
	crc := CRC16(frame[:n])
	return frame[n] == byte(crc) && frame[n+1] == byte(crc>>8)
}
