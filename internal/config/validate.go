// internal/config/validate.go
package config

import (
	"fmt"

	"github.com/frankenbubble/twc3-modbus/internal/logger"
	"github.com/frankenbubble/twc3-modbus/internal/rtu"
)

// maxIdentityBytes is the room one identity reply frame leaves for the
// three strings: rtu.MaxFrameSize minus the MEI header (8), three
// object headers (2 each) and the CRC (2).
const maxIdentityBytes = rtu.MaxFrameSize - 8 - 3*2 - 2

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
// Zero values that Normalize() fills with defaults are accepted here.
func Validate(cfg *Config) error {
	e := &cfg.Emulator

	// ------------------------------------------------------------
	// SLAVE ADDRESSING
	// ------------------------------------------------------------

	if e.SlaveID > 247 {
		return fmt.Errorf("config: slave_id %d out of range 1..247", e.SlaveID)
	}

	// ------------------------------------------------------------
	// SERIAL LINE
	// ------------------------------------------------------------

	if e.Serial.Port == "" {
		return fmt.Errorf("config: serial.port required")
	}
	if e.Serial.BaudRate < 0 {
		return fmt.Errorf("config: serial.baud_rate %d must not be negative", e.Serial.BaudRate)
	}
	switch e.Serial.DataBits {
	case 0, 5, 6, 7, 8:
	default:
		return fmt.Errorf("config: serial.data_bits %d must be 5..8", e.Serial.DataBits)
	}
	switch e.Serial.Parity {
	case "", "N", "E", "O", "n", "e", "o":
	default:
		return fmt.Errorf("config: serial.parity %q must be N, E or O", e.Serial.Parity)
	}
	switch e.Serial.StopBits {
	case 0, 1, 2:
	default:
		return fmt.Errorf("config: serial.stop_bits %d must be 1 or 2", e.Serial.StopBits)
	}
	if e.Serial.TimeoutMs < 0 {
		return fmt.Errorf("config: serial.timeout_ms %d must not be negative", e.Serial.TimeoutMs)
	}

	// ------------------------------------------------------------
	// IDENTITY (ASCII only, three strings share one reply frame)
	// ------------------------------------------------------------

	combined := 0
	for _, s := range []struct {
		name  string
		value string
		def   string
	}{
		{"identity.vendor", e.Identity.Vendor, defaultVendor},
		{"identity.product", e.Identity.Product, defaultProduct},
		{"identity.revision", e.Identity.Revision, defaultRevision},
	} {
		for i := 0; i < len(s.value); i++ {
			if s.value[i] > 0x7F {
				return fmt.Errorf("config: %s must contain ASCII characters only", s.name)
			}
		}
		if s.value == "" {
			// Sized as the default Normalize will fill in.
			combined += len(s.def)
			continue
		}
		combined += len(s.value)
	}
	if combined > maxIdentityBytes {
		return fmt.Errorf("config: identity strings total %d bytes, the identity reply carries at most %d",
			combined, maxIdentityBytes)
	}

	// ------------------------------------------------------------
	// LOGGING
	// ------------------------------------------------------------

	if _, err := logger.ParseLevel(e.Logging.Level); err != nil {
		return fmt.Errorf("config: logging.level: %v", err)
	}

	// ------------------------------------------------------------
	// TRACE SINK (OPT-IN)
	// ------------------------------------------------------------

	if e.Trace.Enabled {
		if e.Trace.Broker == "" {
			return fmt.Errorf("config: trace.broker required when trace is enabled")
		}
		if e.Trace.Topic == "" {
			return fmt.Errorf("config: trace.topic required when trace is enabled")
		}
	}
	if e.Trace.QoS > 2 {
		return fmt.Errorf("config: trace.qos %d must be 0..2", e.Trace.QoS)
	}

	return nil
}
