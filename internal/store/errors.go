package store

import (
	"errors"
	"fmt"
)

var (
	// ErrFailure matches every error produced by a store backend.
	ErrFailure = errors.New("store failure")
	// ErrWrongType is returned when a key holds a different structure than the operation expects.
	ErrWrongType = errors.New("operation against a key holding the wrong kind of value")
)

// Error carries the failed operation and key.
type Error struct {
	Op  string
	Key string
	Err error
}

func (e *Error) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("store %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes every store error match ErrFailure.
func (e *Error) Is(target error) bool {
	return target == ErrFailure
}

// Wrap annotates err with the operation and key; nil stays nil.
func Wrap(op, key string, err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	return &Error{Op: op, Key: key, Err: err}
}
