package transfer

import (
	"errors"
	"fmt"
)

// Sentinel errors matched with errors.Is against an *ImportError.
var (
	ErrMalformed        = errors.New("transfer: malformed JSON")
	ErrInvalidChecklist = errors.New("transfer: invalid checklist")
	ErrInvalidItem      = errors.New("transfer: invalid item")
)

// ErrorKind classifies why an import was rejected.
type ErrorKind int

const (
	// KindMalformed means the input is not parseable JSON.
	KindMalformed ErrorKind = iota + 1
	// KindInvalidChecklist means the checklist lacks a name or an items array.
	KindInvalidChecklist
	// KindInvalidItem means an item lacks a name or a category.
	KindInvalidItem
)

func (k ErrorKind) String() string {
	switch k {
	case KindMalformed:
		return "malformed"
	case KindInvalidChecklist:
		return "invalid checklist"
	case KindInvalidItem:
		return "invalid item"
	default:
		return "unknown"
	}
}

// ImportError describes a rejected import.
type ImportError struct {
	Kind ErrorKind

	// Index is the offending item position for KindInvalidItem, -1 otherwise.
	Index int

	// Cause is the underlying decoder error, if any.
	Cause error
}

// Error returns the user-facing message.
func (e *ImportError) Error() string {
	switch e.Kind {
	case KindMalformed:
		return "Invalid JSON format"
	case KindInvalidChecklist:
		return "Invalid checklist format: missing name or items"
	case KindInvalidItem:
		return fmt.Sprintf("Invalid item #%d: missing name or category", e.Index+1)
	default:
		return "Invalid checklist"
	}
}

// Unwrap exposes the sentinel for the error kind.
func (e *ImportError) Unwrap() error {
	switch e.Kind {
	case KindMalformed:
		return ErrMalformed
	case KindInvalidChecklist:
		return ErrInvalidChecklist
	case KindInvalidItem:
		return ErrInvalidItem
	default:
		return nil
	}
}
