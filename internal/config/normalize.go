// internal/config/normalize.go
package config

import "strings"

// Identity defaults. Validate sizes empty identity fields as these
// before they are filled in.
const (
	defaultVendor   = "Modbus Server"
	defaultProduct  = "MS001"
	defaultRevision = "1.0"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	e := &cfg.Emulator

	// ------------------------------------------------------------
	// DEFAULTS
	// ------------------------------------------------------------

	if e.ResponseDir == "" {
		e.ResponseDir = "responses"
	}
	if e.SlaveID == 0 {
		e.SlaveID = 1
	}
	if e.Serial.BaudRate == 0 {
		e.Serial.BaudRate = 115200
	}
	if e.Serial.DataBits == 0 {
		e.Serial.DataBits = 8
	}
	if e.Serial.Parity == "" {
		e.Serial.Parity = "N"
	}
	if e.Serial.StopBits == 0 {
		e.Serial.StopBits = 1
	}
	if e.Serial.TimeoutMs == 0 {
		e.Serial.TimeoutMs = 1000
	}
	if e.Identity.Vendor == "" {
		e.Identity.Vendor = defaultVendor
	}
	if e.Identity.Product == "" {
		e.Identity.Product = defaultProduct
	}
	if e.Identity.Revision == "" {
		e.Identity.Revision = defaultRevision
	}
	if e.Trace.ClientID == "" {
		e.Trace.ClientID = "twc3sim"
	}

	// ------------------------------------------------------------
	// CANONICAL FORMS
	// ------------------------------------------------------------

	// Parity letter is upper case on the serial layer.
	e.Serial.Parity = strings.ToUpper(e.Serial.Parity)

	// Log level comparison is lower case everywhere.
	e.Logging.Level = strings.ToLower(e.Logging.Level)
}
