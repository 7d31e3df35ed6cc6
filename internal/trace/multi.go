// internal/trace/multi.go
package trace

import "github.com/frankenbubble/twc3-modbus/internal/dispatch"

// Multi fans one record out to several observers in order.
func Multi(obs ...dispatch.Observer) dispatch.Observer {
	return multi(obs)
}

type multi []dispatch.Observer

func (m multi) Observe(rec dispatch.Record) {
	for _, o := range m {
		o.Observe(rec)
	}
}
