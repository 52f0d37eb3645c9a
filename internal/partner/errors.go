package partner

import "fmt"

// TransformError means a trip or order cannot be rendered into the
// partner wire format.
type TransformError struct {
	Reason string
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("cannot build partner payload: %s", e.Reason)
}

// Error is a failed partner call: either a non-2xx response (StatusCode
// and Body set) or a transport fault (Err set). It is always surfaced
// to the caller and never silently retried.
type Error struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("partner request failed: %v", e.Err)
	}
	return fmt.Sprintf("partner returned status %d: %s", e.StatusCode, e.Body)
}

func (e *Error) Unwrap() error { return e.Err }
