// internal/store/errors.go
package store

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that no response file exists for the address.
var ErrNotFound = errors.New("store: no response file")

// InsufficientError reports a response file holding fewer values than
// the request asked for. The file itself is well formed.
type InsufficientError struct {
	Address   uint16
	Requested uint16
	Available int
}

func (e *InsufficientError) Error() string {
	return fmt.Sprintf("store: address %d: %d values requested, file holds %d",
		e.Address, e.Requested, e.Available)
}

// MalformedLineError reports a value line that is not a 16-bit hex
// literal. The whole file is rejected: no partial data is ever served.
type MalformedLineError struct {
	Path string
	Line int // 1-based
	Text string
	Err  error
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("store: %s:%d: bad hex value %q: %v", e.Path, e.Line, e.Text, e.Err)
}

func (e *MalformedLineError) Unwrap() error { return e.Err }
