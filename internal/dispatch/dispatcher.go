// internal/dispatch/dispatcher.go
package dispatch

import (
	"errors"

	"github.com/frankenbubble/twc3-modbus/internal/rtu"
	"github.com/frankenbubble/twc3-modbus/internal/store"
)

// ErrNoResponse means the request must be answered with silence on the
// wire. It covers dry-run suppression and every lookup miss: the bus
// master's own timeout is the failure signal, not a fabricated
// exception frame.
var ErrNoResponse = errors.New("dispatch: no response")

// Lookup is the slice of the file store the dispatcher needs.
type Lookup interface {
	Lookup(address, count uint16) ([]uint16, error)
}

// Dispatcher intercepts holding and input register reads (FC 3, FC 4)
// and resolves them from response files. Every other function code is
// delegated to the fallback reader.
//
// The dispatcher holds no per-request state; the dispatch mode is
// fixed at construction.
type Dispatcher struct {
	files    Lookup
	fallback RegisterReader
	slaveID  uint8
	dryRun   bool
	obs      Observer
}

// Config is the runtime config the dispatcher needs.
type Config struct {
	SlaveID uint8
	DryRun  bool

	// Fallback answers non-intercepted function codes.
	// Nil means those are answered with silence too.
	Fallback RegisterReader

	// Observer receives one record per request. Nil disables tracing.
	Observer Observer
}

// New creates a dispatcher with immutable config.
func New(files Lookup, cfg Config) (*Dispatcher, error) {
	if files == nil {
		return nil, errors.New("dispatch: file lookup required")
	}
	if cfg.SlaveID == 0 || cfg.SlaveID > rtu.MaxSlaveID {
		return nil, errors.New("dispatch: slave id must be 1..247")
	}
	return &Dispatcher{
		files:    files,
		fallback: cfg.Fallback,
		slaveID:  cfg.SlaveID,
		dryRun:   cfg.DryRun,
		obs:      cfg.Observer,
	}, nil
}

// Resolve implements RegisterReader.
//
// FC 3 and FC 4 are answered from response files. A missing, short, or
// malformed file yields ErrNoResponse, never an exception: the emulator
// behaves like a device that did not hear the request.
func (d *Dispatcher) Resolve(req Request) ([]uint16, error) {
	if req.Function != rtu.FuncReadHolding && req.Function != rtu.FuncReadInput {
		return d.delegate(req)
	}

	values, err := d.files.Lookup(req.Address, req.Quantity)
	if err != nil {
		outcome, available := classify(err)
		d.observe(Record{
			Function:  req.Function,
			Address:   req.Address,
			Quantity:  req.Quantity,
			Outcome:   outcome,
			Available: available,
			Err:       err,
		})
		return nil, ErrNoResponse
	}

	// Render the reply even when it will be withheld: the rendered
	// frame is the whole point of a dry run.
	frame := rtu.FrameHex(rtu.BuildReadReply(d.slaveID, req.Function, values))

	if d.dryRun {
		d.observe(Record{
			Function: req.Function,
			Address:  req.Address,
			Quantity: req.Quantity,
			Outcome:  OutcomeSuppressed,
			Values:   values,
			Frame:    frame,
		})
		return nil, ErrNoResponse
	}

	d.observe(Record{
		Function: req.Function,
		Address:  req.Address,
		Quantity: req.Quantity,
		Outcome:  OutcomeServed,
		Values:   values,
		Frame:    frame,
	})
	return values, nil
}

func (d *Dispatcher) delegate(req Request) ([]uint16, error) {
	rec := Record{
		Function: req.Function,
		Address:  req.Address,
		Quantity: req.Quantity,
		Outcome:  OutcomeDelegated,
	}

	if d.fallback == nil {
		rec.Err = ErrNoResponse
		d.observe(rec)
		return nil, ErrNoResponse
	}

	values, err := d.fallback.Resolve(req)
	rec.Values = values
	rec.Err = err
	d.observe(rec)
	return values, err
}

func (d *Dispatcher) observe(rec Record) {
	if d.obs != nil {
		d.obs.Observe(rec)
	}
}

// classify maps a lookup error to its outcome. For insufficient files
// it also extracts how many values were actually on disk.
func classify(err error) (Outcome, int) {
	var ie *store.InsufficientError
	var me *store.MalformedLineError

	switch {
	case errors.Is(err, store.ErrNotFound):
		return OutcomeNotFound, 0
	case errors.As(err, &ie):
		return OutcomeInsufficient, ie.Available
	case errors.As(err, &me):
		return OutcomeMalformed, 0
	default:
		return OutcomeError, 0
	}
}
