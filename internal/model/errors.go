package model

import "errors"

var (
	// ErrNotFound is returned when a container or snapshot is not defined.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a container definition already exists.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotValid is returned when an argument is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrUnknown is returned when the native library reports a failure
	// without exposing any further detail.
	ErrUnknown = errors.New("unknown error")
)
