// Copyright (C) 2026 truevis (aifab.xyz)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package analytics implements the tabular transformations of the
// Titanic explorer as pure functions over gota DataFrames: predicate
// filtering (eager and deferred), value counts, grouped aggregation,
// pivoting, title extraction, categorical remapping, and numeric range
// filtering. Every function derives a new frame; none mutates its input.
package analytics

import (
	"fmt"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Predicate is a boolean row test over a single column. Predicates are
// compiled once to gota filters, so the eager and deferred evaluation
// paths share the exact same row test and produce identical frames.
//
// Null handling is three-valued: a null element never satisfies a
// predicate.
type Predicate struct {
	column string
	test   func(series.Element) bool
	desc   string
}

// Column returns the column the predicate inspects.
func (p Predicate) Column() string { return p.column }

// String describes the predicate for plan listings and logs.
func (p Predicate) String() string { return p.desc }

// filter compiles the predicate to a gota filter clause.
func (p Predicate) filter() dataframe.F {
	test := p.test
	return dataframe.F{
		Colname:    p.column,
		Comparator: series.CompFunc,
		Comparando: func(el series.Element) bool {
			if el.IsNA() {
				return false
			}
			return test(el)
		},
	}
}

// Contains matches rows whose column value, rendered as a string,
// contains term. Case folding follows the caseSensitive flag.
func Contains(column, term string, caseSensitive bool) Predicate {
	needle := term
	if !caseSensitive {
		needle = strings.ToLower(term)
	}
	return Predicate{
		column: column,
		desc:   fmt.Sprintf("contains(%s, %q)", column, term),
		test: func(el series.Element) bool {
			haystack := el.String()
			if !caseSensitive {
				haystack = strings.ToLower(haystack)
			}
			return strings.Contains(haystack, needle)
		},
	}
}

// HasPrefix matches rows whose column value starts with prefix.
func HasPrefix(column, prefix string) Predicate {
	return Predicate{
		column: column,
		desc:   fmt.Sprintf("prefix(%s, %q)", column, prefix),
		test: func(el series.Element) bool {
			return strings.HasPrefix(el.String(), prefix)
		},
	}
}

// Between matches rows whose numeric column value lies in [min, max].
// Null values never match.
func Between(column string, min, max float64) Predicate {
	return Predicate{
		column: column,
		desc:   fmt.Sprintf("between(%s, %g, %g)", column, min, max),
		test: func(el series.Element) bool {
			v := el.Float()
			return v >= min && v <= max
		},
	}
}

// Filter applies all predicates eagerly, ANDed together, preserving the
// original row order. Zero predicates return the frame unchanged.
func Filter(df dataframe.DataFrame, preds ...Predicate) (dataframe.DataFrame, error) {
	if len(preds) == 0 {
		return df, nil
	}
	filters := make([]dataframe.F, 0, len(preds))
	for _, p := range preds {
		if !hasColumn(df, p.column) {
			return df, fmt.Errorf("%w: %s", ErrUnknownColumn, p.column)
		}
		filters = append(filters, p.filter())
	}
	out := df.FilterAggregation(dataframe.And, filters...)
	if out.Err != nil {
		return df, out.Err
	}
	return out, nil
}

// hasColumn reports whether the frame has the named column.
func hasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}
