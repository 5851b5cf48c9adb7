// Copyright (C) 2026 truevis (aifab.xyz)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package analytics

import "errors"

// Sentinel errors for pipeline parameters. These are the recoverable
// class: the HTTP layer answers 400 or falls back to "no filter applied",
// never a crash.
var (
	// ErrUnknownColumn is returned when an operation references a column
	// the frame does not have.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrInvalidRange is returned when a numeric range has min > max.
	ErrInvalidRange = errors.New("invalid range: min exceeds max")

	// ErrEmptyColumn is returned when an operation needs at least one
	// non-null value and the column has none.
	ErrEmptyColumn = errors.New("column has no usable values")
)
