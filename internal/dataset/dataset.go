// Copyright (C) 2026 truevis (aifab.xyz)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package dataset loads the gzipped Titanic passenger manifest into an
// in-memory gota DataFrame and caches it per session.
//
// The Dataset is immutable after load: every analytics operation derives
// a new frame and never writes back. The only state the package holds is
// the per-session cache in Store, so one process reads the source file at
// most once per session.
package dataset

import (
	"compress/gzip"
	"fmt"
	"os"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Column names of the passenger manifest.
const (
	ColPassengerID = "PassengerId"
	ColSurvived    = "Survived"
	ColPclass      = "Pclass"
	ColName        = "Name"
	ColSex         = "Sex"
	ColAge         = "Age"
	ColSibSp       = "SibSp"
	ColParch       = "Parch"
	ColTicket      = "Ticket"
	ColFare        = "Fare"
	ColCabin       = "Cabin"
	ColEmbarked    = "Embarked"
)

// columnTypes pins the schema so numeric columns never degrade to string
// when the first rows happen to be blank.
var columnTypes = map[string]series.Type{
	ColPassengerID: series.Int,
	ColSurvived:    series.Int,
	ColPclass:      series.Int,
	ColName:        series.String,
	ColSex:         series.String,
	ColAge:         series.Float,
	ColSibSp:       series.Int,
	ColParch:       series.Int,
	ColTicket:      series.String,
	ColFare:        series.Float,
	ColCabin:       series.String,
	ColEmbarked:    series.String,
}

// requiredColumns must all be present for the manifest to be usable.
var requiredColumns = []string{
	ColPassengerID, ColSurvived, ColPclass, ColName, ColSex,
	ColAge, ColFare, ColEmbarked,
}

// Dataset is the loaded, read-only passenger manifest.
type Dataset struct {
	frame    dataframe.DataFrame
	path     string
	loadedAt time.Time
}

// Load reads the gzipped CSV at path into a typed DataFrame.
// Any failure (missing file, bad gzip, bad CSV, missing columns) is a
// *LoadError matching ErrLoad; there is no retry.
func Load(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("gzip: %w", err)}
	}
	defer gz.Close()

	df := dataframe.ReadCSV(gz,
		dataframe.HasHeader(true),
		dataframe.WithTypes(columnTypes),
		dataframe.NaNValues([]string{"", "NA", "NaN"}),
	)
	if df.Err != nil {
		return nil, &LoadError{Path: path, Err: df.Err}
	}

	names := df.Names()
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}
	for _, col := range requiredColumns {
		if !present[col] {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %s", ErrMissingColumn, col)}
		}
	}

	return &Dataset{
		frame:    df,
		path:     path,
		loadedAt: time.Now(),
	}, nil
}

// Frame returns the loaded DataFrame. gota operations are value-returning,
// so callers cannot mutate the cached instance through it.
func (d *Dataset) Frame() dataframe.DataFrame {
	return d.frame
}

// Path returns the source file this Dataset was loaded from.
func (d *Dataset) Path() string {
	return d.path
}

// LoadedAt returns the load timestamp.
func (d *Dataset) LoadedAt() time.Time {
	return d.loadedAt
}

// ColumnInfo pairs a column name with its gota type.
type ColumnInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Overview describes the shape of the loaded manifest.
type Overview struct {
	Rows        int          `json:"rows"`
	Columns     int          `json:"columns"`
	MemoryBytes int64        `json:"memory_bytes"`
	Schema      []ColumnInfo `json:"schema"`
}

// Overview returns row count, column count, an estimated in-memory
// footprint, and the ordered column schema. Pure and deterministic.
func (d *Dataset) Overview() Overview {
	names := d.frame.Names()
	types := d.frame.Types()

	schema := make([]ColumnInfo, len(names))
	var memory int64
	for i, name := range names {
		schema[i] = ColumnInfo{Name: name, Type: string(types[i])}
		memory += columnFootprint(d.frame.Col(name), types[i])
	}

	return Overview{
		Rows:        d.frame.Nrow(),
		Columns:     d.frame.Ncol(),
		MemoryBytes: memory,
		Schema:      schema,
	}
}

// columnFootprint estimates the bytes a column occupies. Numeric and bool
// elements count at fixed width; strings count content plus header.
func columnFootprint(s series.Series, t series.Type) int64 {
	const stringHeader = 16

	switch t {
	case series.Int, series.Float:
		return int64(s.Len()) * 8
	case series.Bool:
		return int64(s.Len())
	default:
		var total int64
		for i := 0; i < s.Len(); i++ {
			el := s.Elem(i)
			if el.IsNA() {
				total += stringHeader
				continue
			}
			total += stringHeader + int64(len(el.String()))
		}
		return total
	}
}
