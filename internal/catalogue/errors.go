package catalogue

import (
	"errors"
	"fmt"
	"strings"
)

// StoreError wraps a failure from the store, flagging whether it is
// transient (connection lost, deadlock — retry on the next loop iteration,
// spec §7) or not (a programmer/schema error that should surface loudly).
type StoreError struct {
	Transient bool
	Op        string
	Err       error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("catalogue: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// IsTransient reports whether err (or any error it wraps) is a transient
// StoreError.
func IsTransient(err error) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Transient
	}
	return false
}

func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Transient: looksTransient(err), Op: op, Err: err}
}

// looksTransient classifies common driver-level connection/deadlock errors.
// GORM surfaces these as plain wrapped errors from database/sql, so we
// match on substrings the way the teacher's connection_pool.go logs them
// rather than depending on a specific driver's error types.
func looksTransient(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"too many connections",
		"deadlock",
		"timeout",
		"database is locked",
		"server closed the connection",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
