package gifmeta

import (
	"errors"
	"fmt"
)

var (
	ErrFileNotFound      = errors.New("file not found")
	ErrDirectoryNotFound = errors.New("directory not found")
)

// DecodeError is returned by Inspect when a file exists but cannot be decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding '%s': %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ProcessError records a per-file failure inside a directory batch.
// It never aborts the batch.
type ProcessError struct {
	File string
	Err  error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("processing '%s': %v", e.File, e.Err)
}

func (e *ProcessError) Unwrap() error { return e.Err }
