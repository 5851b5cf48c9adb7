// Copyright (C) 2026 truevis (aifab.xyz)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package analytics

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
)

// NumericRange is one inclusive [Min, Max] bound over a numeric column.
type NumericRange struct {
	Column string  `json:"column"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// RangeFilter keeps the rows where every bounded column falls inside its
// range. Null in any bounded column excludes the row. A range with
// min > max is a parameter error (ErrInvalidRange); callers recover by
// applying no filter, never by crashing.
func RangeFilter(df dataframe.DataFrame, ranges ...NumericRange) (dataframe.DataFrame, error) {
	preds := make([]Predicate, 0, len(ranges))
	for _, r := range ranges {
		if r.Min > r.Max {
			return df, fmt.Errorf("%w: %s [%g, %g]", ErrInvalidRange, r.Column, r.Min, r.Max)
		}
		preds = append(preds, Between(r.Column, r.Min, r.Max))
	}
	return Filter(df, preds...)
}

// ColumnBounds returns the min and max of a numeric column, ignoring
// nulls. An all-null or empty column yields ErrEmptyColumn; UI sliders
// fall back to zero bounds in that case.
func ColumnBounds(df dataframe.DataFrame, column string) (min, max float64, err error) {
	if !hasColumn(df, column) {
		return 0, 0, fmt.Errorf("%w: %s", ErrUnknownColumn, column)
	}

	s := df.Col(column)
	found := false
	for i := 0; i < s.Len(); i++ {
		el := s.Elem(i)
		if el.IsNA() {
			continue
		}
		v := el.Float()
		if math.IsNaN(v) {
			continue
		}
		if !found {
			min, max = v, v
			found = true
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if !found {
		return 0, 0, fmt.Errorf("%w: %s", ErrEmptyColumn, column)
	}
	return min, max, nil
}
