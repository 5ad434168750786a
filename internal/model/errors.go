package model

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the store, the tracker and the API.
var (
	ErrNotFound   = errors.New("not found")
	ErrOverflow   = errors.New("encounter count overflow")
	ErrValidation = errors.New("validation error")
	ErrStore      = errors.New("store error")
)

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// StoreError wraps a connection or query failure of the named store operation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrStore.
func (e *StoreError) Is(target error) bool {
	return target == ErrStore
}
