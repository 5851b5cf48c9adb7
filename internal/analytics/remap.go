// Copyright (C) 2026 truevis (aifab.xyz)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package analytics

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// EmbarkedPorts maps the manifest's port codes to display labels.
var EmbarkedPorts = map[string]string{
	"C": "Cherbourg",
	"S": "Southampton",
	"Q": "Queenstown",
}

// Remap returns a derived frame with the column's values replaced via
// the mapping. Codes absent from the mapping pass through unchanged and
// nulls stay null. The source frame is not modified.
func Remap(df dataframe.DataFrame, column string, mapping map[string]string) (dataframe.DataFrame, error) {
	if !hasColumn(df, column) {
		return df, fmt.Errorf("%w: %s", ErrUnknownColumn, column)
	}

	s := df.Col(column)
	vals := make([]interface{}, s.Len())
	for i := 0; i < s.Len(); i++ {
		el := s.Elem(i)
		if el.IsNA() {
			vals[i] = nil
			continue
		}
		raw := el.String()
		if label, ok := mapping[raw]; ok {
			vals[i] = label
		} else {
			vals[i] = raw
		}
	}

	out := df.Mutate(series.New(vals, series.String, column))
	if out.Err != nil {
		return df, out.Err
	}
	return out, nil
}

// DistinctValues lists the column's distinct non-null values in
// first-appearance order, for populating UI choice lists.
func DistinctValues(df dataframe.DataFrame, column string) ([]string, error) {
	if !hasColumn(df, column) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, column)
	}

	s := df.Col(column)
	seen := make(map[string]bool)
	var out []string
	for i := 0; i < s.Len(); i++ {
		el := s.Elem(i)
		if el.IsNA() {
			continue
		}
		v := el.String()
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out, nil
}
