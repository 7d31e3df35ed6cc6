// internal/dispatch/static.go
package dispatch

// StaticReader answers every request with Quantity copies of a fixed
// fill value. It backs the function codes the emulator does not
// intercept, the way a freshly initialized device exposes all-zero
// data blocks.
type StaticReader struct {
	Fill uint16
}

func (r StaticReader) Resolve(req Request) ([]uint16, error) {
	values := make([]uint16, req.Quantity)
	for i := range values {
		values[i] = r.Fill
	}
	return values, nil
}
