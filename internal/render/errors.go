package render

import "fmt"

// ResourceError reports a figure-persistence failure: directory creation
// or file write. It propagates to the caller; the frame is not retried
// since redrawing on a shared surface is not idempotent.
type ResourceError struct {
	Path    string
	Wrapped error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("render: persist %s: %v", e.Path, e.Wrapped)
}

func (e *ResourceError) Unwrap() error { return e.Wrapped }
