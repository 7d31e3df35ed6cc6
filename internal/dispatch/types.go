// internal/dispatch/types.go
package dispatch

// Request is one read request as seen by the dispatcher.
// Geometry only: no transport details.
type Request struct {
	Function uint8
	Address  uint16
	Quantity uint16
}

// RegisterReader resolves a read request to register values.
// Returning ErrNoResponse means: answer with silence on the wire.
type RegisterReader interface {
	Resolve(req Request) ([]uint16, error)
}

// ---- OBSERVABILITY ----

// Outcome classifies how one request was handled.
type Outcome string

const (
	// OutcomeServed: values resolved from a response file and returned.
	OutcomeServed Outcome = "served"

	// OutcomeSuppressed: values resolved, reply rendered, but withheld
	// because the dispatcher runs dry.
	OutcomeSuppressed Outcome = "suppressed"

	// OutcomeNotFound: no response file for the address.
	OutcomeNotFound Outcome = "not-found"

	// OutcomeInsufficient: response file holds fewer values than requested.
	OutcomeInsufficient Outcome = "insufficient"

	// OutcomeMalformed: response file rejected because of a bad value line.
	OutcomeMalformed Outcome = "malformed"

	// OutcomeError: response file unreadable for reasons other than absence.
	OutcomeError Outcome = "error"

	// OutcomeDelegated: function code not intercepted, passed to the fallback.
	OutcomeDelegated Outcome = "delegated"
)

// Record is the observability record emitted once per dispatched
// request, whatever the outcome.
type Record struct {
	Function uint8
	Address  uint16
	Quantity uint16
	Outcome  Outcome

	// Values and Frame are set when a reply was rendered
	// (served and suppressed outcomes).
	Values []uint16
	Frame  string

	// Available is the number of values on disk for insufficient outcomes.
	Available int

	// Err carries the lookup or fallback error, nil when served.
	Err error
}

// Observer receives one Record per request.
type Observer interface {
	Observe(rec Record)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(Record)

func (f ObserverFunc) Observe(rec Record) { f(rec) }
