package config

import "errors"

var (
	// ErrParsingConfig wraps env tag parsing failures.
	ErrParsingConfig = errors.New("config.parsing_failed")

	// ErrNilPointer indicates Load was given a nil destination.
	ErrNilPointer = errors.New("config.nil_pointer")
)
