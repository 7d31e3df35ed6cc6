// internal/server/builder.go
package server

import (
	"fmt"
	"time"

	"github.com/goburrow/serial"

	cfg "github.com/frankenbubble/twc3-modbus/internal/config"
	"github.com/frankenbubble/twc3-modbus/internal/dispatch"
	"github.com/frankenbubble/twc3-modbus/internal/logger"
)

// Build opens the serial port and constructs the Server around it.
// The returned closer shuts the port and unblocks Serve.
func Build(e cfg.EmulatorConfig, resolver dispatch.RegisterReader, log *logger.Logger) (*Server, func() error, error) {
	port, err := serial.Open(&serial.Config{
		Address:  e.Serial.Port,
		BaudRate: e.Serial.BaudRate,
		DataBits: e.Serial.DataBits,
		Parity:   e.Serial.Parity,
		StopBits: e.Serial.StopBits,
		Timeout:  time.Duration(e.Serial.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("server: open %s: %w", e.Serial.Port, err)
	}

	srv, err := New(port, resolver, Config{
		SlaveID: e.SlaveID,
		Identity: Identity{
			Vendor:   e.Identity.Vendor,
			Product:  e.Identity.Product,
			Revision: e.Identity.Revision,
		},
	}, log)
	if err != nil {
		port.Close()
		return nil, nil, err
	}

	return srv, srv.Close, nil
}
