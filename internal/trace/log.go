// internal/trace/log.go
package trace

import (
	"github.com/frankenbubble/twc3-modbus/internal/dispatch"
	"github.com/frankenbubble/twc3-modbus/internal/logger"
)

// LogObserver writes one log line per dispatched request.
//
// Levels follow the outcome: misses an operator can fix by adding or
// extending a response file warn, rejected files error, served and
// suppressed replies are informational.
type LogObserver struct {
	log *logger.Logger
}

func NewLogObserver(log *logger.Logger) *LogObserver {
	return &LogObserver{log: log}
}

func (o *LogObserver) Observe(rec dispatch.Record) {
	switch rec.Outcome {
	case dispatch.OutcomeServed:
		o.log.Infof("fc=%d addr=%d qty=%d reply: %s",
			rec.Function, rec.Address, rec.Quantity, rec.Frame)

	case dispatch.OutcomeSuppressed:
		o.log.Infof("fc=%d addr=%d qty=%d reply (not sent): %s",
			rec.Function, rec.Address, rec.Quantity, rec.Frame)

	case dispatch.OutcomeNotFound:
		o.log.Warnf("fc=%d addr=%d qty=%d: no response file, staying silent",
			rec.Function, rec.Address, rec.Quantity)

	case dispatch.OutcomeInsufficient:
		o.log.Warnf("fc=%d addr=%d: response file has %d of %d values, staying silent",
			rec.Function, rec.Address, rec.Available, rec.Quantity)

	case dispatch.OutcomeMalformed:
		o.log.Errorf("fc=%d addr=%d qty=%d: response file rejected: %v",
			rec.Function, rec.Address, rec.Quantity, rec.Err)

	case dispatch.OutcomeError:
		o.log.Errorf("fc=%d addr=%d qty=%d: lookup failed: %v",
			rec.Function, rec.Address, rec.Quantity, rec.Err)

	case dispatch.OutcomeDelegated:
		o.log.Debugf("fc=%d addr=%d qty=%d delegated to fallback",
			rec.Function, rec.Address, rec.Quantity)
	}
}
