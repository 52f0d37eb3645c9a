package services

import "fmt"

// PersistenceError is a failed read or write against the integration
// history store. It is fatal on the success path (losing the
// idempotency record risks duplicate partner submissions) and
// best-effort on the failure path.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("integration history %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
