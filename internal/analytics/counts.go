// Copyright (C) 2026 truevis (aifab.xyz)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package analytics

import (
	"fmt"
	"sort"

	"github.com/go-gota/gota/dataframe"
)

// ValueCount pairs one distinct value with its occurrence count and its
// share of all counted occurrences. Proportions across a CountResult sum
// to 1.0 within floating-point tolerance.
type ValueCount struct {
	Value      string  `json:"value"`
	Count      int     `json:"count"`
	Proportion float64 `json:"proportion"`
}

// CountResult is the value-count table for one column, sorted by
// descending count with ties in first-encountered order. Nulls are not
// counted as a distinct value; their number is reported separately.
type CountResult struct {
	Column    string       `json:"column"`
	Counts    []ValueCount `json:"counts"`
	NullCount int          `json:"null_count"`
	Total     int          `json:"total"`
}

// ValueCounts tallies the distinct non-null values of one column.
func ValueCounts(df dataframe.DataFrame, column string) (CountResult, error) {
	if !hasColumn(df, column) {
		return CountResult{}, fmt.Errorf("%w: %s", ErrUnknownColumn, column)
	}

	s := df.Col(column)
	values := make([]string, 0, s.Len())
	nulls := 0
	for i := 0; i < s.Len(); i++ {
		el := s.Elem(i)
		if el.IsNA() {
			nulls++
			continue
		}
		values = append(values, el.String())
	}

	result := tally(values)
	result.Column = column
	result.NullCount = nulls
	return result, nil
}

// ToTable renders the counts as a generic three-column table.
func (r CountResult) ToTable() Table {
	rows := make([][]any, len(r.Counts))
	for i, c := range r.Counts {
		rows[i] = []any{c.Value, c.Count, c.Proportion}
	}
	return Table{
		Columns: []string{r.Column, "count", "proportion"},
		Rows:    rows,
	}
}

// Head returns a copy limited to the first n entries.
func (r CountResult) Head(n int) CountResult {
	if n < 0 || n >= len(r.Counts) {
		return r
	}
	out := r
	out.Counts = r.Counts[:n]
	return out
}

// tally counts occurrences preserving first-encounter order for ties.
func tally(values []string) CountResult {
	order := make([]string, 0)
	counts := make(map[string]int)
	for _, v := range values {
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	out := make([]ValueCount, len(order))
	total := len(values)
	for i, v := range order {
		out[i] = ValueCount{Value: v, Count: counts[v]}
		if total > 0 {
			out[i].Proportion = float64(counts[v]) / float64(total)
		}
	}
	// Stable sort keeps first-encounter order among equal counts.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})

	return CountResult{Counts: out, Total: total}
}
