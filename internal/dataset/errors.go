// Copyright (C) 2026 truevis (aifab.xyz)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package dataset

import (
	"errors"
	"fmt"
)

// Sentinel errors for dataset loading.
var (
	// ErrLoad is wrapped by every loader failure. Use errors.Is(err, ErrLoad)
	// to distinguish fatal load problems from parameter errors downstream.
	ErrLoad = errors.New("dataset load failed")

	// ErrMissingColumn is returned when the file parses but lacks one of
	// the required manifest columns.
	ErrMissingColumn = errors.New("required column missing")
)

// LoadError reports a failure to read or parse the dataset file.
// The session is not initialized when this is returned; there is no retry.
type LoadError struct {
	// Path is the dataset file that failed to load.
	Path string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is reports ErrLoad so callers can match the whole class.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}
