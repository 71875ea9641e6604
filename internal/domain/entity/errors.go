package entity

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a store failure
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindConnection
	KindTransaction
	KindStatement
	KindNotFound
)

// Sentinel errors matched with errors.Is against a *StoreError
var (
	ErrValidation  = errors.New("validation error")
	ErrConnection  = errors.New("connection error")
	ErrTransaction = errors.New("transaction error")
	ErrStatement   = errors.New("statement error")
	ErrNotFound    = errors.New("not found")
)

// String returns the metric/log label of the kind
func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConnection:
		return "connection"
	case KindTransaction:
		return "transaction"
	case KindStatement:
		return "statement"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindConnection:
		return ErrConnection
	case KindTransaction:
		return ErrTransaction
	case KindStatement:
		return ErrStatement
	case KindNotFound:
		return ErrNotFound
	default:
		return nil
	}
}

// StoreError describes the failing step of a store operation
type StoreError struct {
	Kind ErrorKind
	Op   string
	Msg  string
	Err  error
}

// NewStoreError creates a StoreError
func NewStoreError(kind ErrorKind, op, msg string, err error) *StoreError {
	return &StoreError{Kind: kind, Op: op, Msg: msg, Err: err}
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

// Unwrap returns the underlying driver error, if any
func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind
func (e *StoreError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && s == target
}

// KindOf returns the kind of the first StoreError in err's chain
func KindOf(err error) (ErrorKind, bool) {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return 0, false
}
