// Copyright (C) 2026 truevis (aifab.xyz)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package analytics

import (
	"fmt"
	"strings"

	"github.com/go-gota/gota/dataframe"
)

// ExtractTitle pulls the title token out of a manifest name formatted
// as "Last, Title. First ...". ok is false when the name lacks the
// expected punctuation; the caller records a null for that row instead
// of failing the pipeline.
func ExtractTitle(name string) (title string, ok bool) {
	_, remainder, found := strings.Cut(name, ", ")
	if !found {
		return "", false
	}
	title, _, found = strings.Cut(remainder, ".")
	if !found {
		return "", false
	}
	return title, true
}

// TitleCounts extracts a title per passenger name and tallies the
// distinct titles. Rows whose name cannot be parsed contribute to the
// returned failure count, not to the tally.
func TitleCounts(df dataframe.DataFrame, nameCol string) (CountResult, int, error) {
	if !hasColumn(df, nameCol) {
		return CountResult{}, 0, fmt.Errorf("%w: %s", ErrUnknownColumn, nameCol)
	}

	s := df.Col(nameCol)
	titles := make([]string, 0, s.Len())
	failed := 0
	for i := 0; i < s.Len(); i++ {
		el := s.Elem(i)
		if el.IsNA() {
			failed++
			continue
		}
		title, ok := ExtractTitle(el.String())
		if !ok {
			failed++
			continue
		}
		titles = append(titles, title)
	}

	result := tally(titles)
	result.Column = "Title"
	result.NullCount = failed
	return result, failed, nil
}

// Captain returns the rows whose name carries the captain's title,
// projected to name, age, and class columns.
func Captain(df dataframe.DataFrame, nameCol, ageCol, classCol string) (dataframe.DataFrame, error) {
	matched, err := Filter(df, Contains(nameCol, ", Capt.", true))
	if err != nil {
		return df, err
	}
	out := matched.Select([]string{nameCol, ageCol, classCol})
	if out.Err != nil {
		return df, out.Err
	}
	return out, nil
}
