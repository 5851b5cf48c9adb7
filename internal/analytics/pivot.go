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

// AggFunc selects the reduction a Pivot applies per cell.
type AggFunc int

const (
	// AggCount counts the rows in each (index, spread) group.
	AggCount AggFunc = iota

	// AggMean averages the non-null value-column entries in each group.
	AggMean
)

// String returns "count" or "mean".
func (a AggFunc) String() string {
	switch a {
	case AggCount:
		return "count"
	case AggMean:
		return "mean"
	default:
		return fmt.Sprintf("AggFunc(%d)", int(a))
	}
}

// PivotSpec names the three columns of a pivot and the cell reduction.
type PivotSpec struct {
	// Values is the column aggregated into cells.
	Values string

	// Index is the column whose distinct values become output rows.
	Index string

	// Columns is the column whose distinct values are spread into
	// output columns.
	Columns string

	// Agg is the per-cell reduction.
	Agg AggFunc
}

// pivotCell accumulates one (index, spread) group.
type pivotCell struct {
	rows  int
	sum   float64
	nVals int
}

// Pivot reshapes the frame into a wide table: one row per distinct index
// value, one column per distinct spread value (both in first-appearance
// order), plus the index column itself. Cells reduce the matching rows
// with spec.Agg; combinations with no rows are null. Rows whose index or
// spread value is null are not assigned to any group.
//
// gota has no pivot operator, so this is built over its primitives.
func Pivot(df dataframe.DataFrame, spec PivotSpec) (dataframe.DataFrame, error) {
	for _, col := range []string{spec.Values, spec.Index, spec.Columns} {
		if !hasColumn(df, col) {
			return df, fmt.Errorf("%w: %s", ErrUnknownColumn, col)
		}
	}
	if spec.Agg != AggCount && spec.Agg != AggMean {
		return df, fmt.Errorf("unsupported pivot aggregation %v", spec.Agg)
	}

	idxSeries := df.Col(spec.Index)
	spreadSeries := df.Col(spec.Columns)
	valSeries := df.Col(spec.Values)

	var idxOrder, spreadOrder []string
	idxSeen := make(map[string]bool)
	spreadSeen := make(map[string]bool)
	cells := make(map[string]map[string]*pivotCell)

	for i := 0; i < df.Nrow(); i++ {
		idxEl := idxSeries.Elem(i)
		spreadEl := spreadSeries.Elem(i)
		if idxEl.IsNA() || spreadEl.IsNA() {
			continue
		}
		idxKey := idxEl.String()
		spreadKey := spreadEl.String()

		if !idxSeen[idxKey] {
			idxSeen[idxKey] = true
			idxOrder = append(idxOrder, idxKey)
			cells[idxKey] = make(map[string]*pivotCell)
		}
		if !spreadSeen[spreadKey] {
			spreadSeen[spreadKey] = true
			spreadOrder = append(spreadOrder, spreadKey)
		}

		cell := cells[idxKey][spreadKey]
		if cell == nil {
			cell = &pivotCell{}
			cells[idxKey][spreadKey] = cell
		}
		cell.rows++
		if valEl := valSeries.Elem(i); !valEl.IsNA() {
			cell.sum += valEl.Float()
			cell.nVals++
		}
	}

	// The index column keeps its source type; string keys round-trip
	// through series.New's parser.
	out := []series.Series{series.New(idxOrder, idxSeries.Type(), spec.Index)}

	for _, spreadKey := range spreadOrder {
		vals := make([]interface{}, len(idxOrder))
		for r, idxKey := range idxOrder {
			cell := cells[idxKey][spreadKey]
			switch {
			case cell == nil:
				vals[r] = nil
			case spec.Agg == AggCount:
				vals[r] = cell.rows
			case cell.nVals == 0:
				vals[r] = nil
			default:
				vals[r] = cell.sum / float64(cell.nVals)
			}
		}
		if spec.Agg == AggCount {
			out = append(out, series.New(vals, series.Int, spreadKey))
		} else {
			out = append(out, series.New(vals, series.Float, spreadKey))
		}
	}

	result := dataframe.New(out...)
	if result.Err != nil {
		return df, result.Err
	}
	return result, nil
}
