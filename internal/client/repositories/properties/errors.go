package properties

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/rentkeeper/internal/client/client"
)

// StoreError is returned by every Adapter method that fails.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Kind names the classified cause for log lines.
func (e *StoreError) Kind() string {
	switch {
	case errors.Is(e.Err, client.ErrUnauthorized), errors.Is(e.Err, client.ErrNoSession):
		return "unauthorized"
	case errors.Is(e.Err, client.ErrUnavailable):
		return "unavailable"
	case errors.Is(e.Err, client.ErrNotFound):
		return "not_found"
	case errors.Is(e.Err, client.ErrInvalidInput):
		return "invalid_input"
	default:
		return "rpc"
	}
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
