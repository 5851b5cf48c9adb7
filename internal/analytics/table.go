// Copyright (C) 2026 truevis (aifab.xyz)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package analytics

import (
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Table is the generic row/column structure handed to rendering surfaces.
// Cell values are typed per column (int, float64, bool, string); null
// cells are nil. Tables are ephemeral derived results, never the Dataset.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// FromFrame converts a gota frame into a Table, preserving row order
// and per-column types.
func FromFrame(df dataframe.DataFrame) Table {
	names := df.Names()
	types := df.Types()
	nrow := df.Nrow()

	cols := make([]series.Series, len(names))
	for i, name := range names {
		cols[i] = df.Col(name)
	}

	rows := make([][]any, nrow)
	for r := 0; r < nrow; r++ {
		row := make([]any, len(names))
		for c := range names {
			row[c] = cellValue(cols[c].Elem(r), types[c])
		}
		rows[r] = row
	}

	return Table{Columns: names, Rows: rows}
}

// cellValue extracts one typed cell, mapping nulls to nil.
func cellValue(el series.Element, t series.Type) any {
	if el.IsNA() {
		return nil
	}
	switch t {
	case series.Int:
		v, err := el.Int()
		if err != nil {
			return nil
		}
		return v
	case series.Float:
		v := el.Float()
		if math.IsNaN(v) {
			return nil
		}
		return v
	case series.Bool:
		v, err := el.Bool()
		if err != nil {
			return nil
		}
		return v
	default:
		return el.String()
	}
}
