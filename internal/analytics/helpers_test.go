// Copyright (C) 2026 truevis (aifab.xyz)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package analytics

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/require"
)

// sampleFrame builds an eight-passenger manifest slice covering the
// interesting cases: a null age, a null port, a captain, a name without
// the "Last, Title." shape, and tied class counts.
func sampleFrame(t *testing.T) dataframe.DataFrame {
	t.Helper()

	records := [][]string{
		{"PassengerId", "Survived", "Pclass", "Name", "Sex", "Age", "Fare", "Embarked"},
		{"1", "0", "3", "Braund, Mr. Owen Harris", "male", "22", "7.25", "S"},
		{"2", "1", "1", "Cumings, Mrs. John", "female", "38", "71.28", "C"},
		{"3", "1", "3", "Heikkinen, Miss. Laina", "female", "26", "7.92", "S"},
		{"4", "0", "1", "Smith, Capt. Edward John", "male", "62", "26.55", "S"},
		{"5", "0", "3", "Moran, Mr. James", "male", "", "8.46", "Q"},
		{"6", "1", "2", "Doe, Mr. John", "male", "25", "40", ""},
		{"7", "0", "3", "Malformed Name Without Comma", "male", "28", "7.85", "S"},
		{"8", "1", "2", "Nasser, Mrs. Adele", "female", "14", "30.07", "C"},
	}

	df := dataframe.LoadRecords(records,
		dataframe.WithTypes(map[string]series.Type{
			"PassengerId": series.Int,
			"Survived":    series.Int,
			"Pclass":      series.Int,
			"Name":        series.String,
			"Sex":         series.String,
			"Age":         series.Float,
			"Fare":        series.Float,
			"Embarked":    series.String,
		}),
		dataframe.NaNValues([]string{""}),
	)
	require.NoError(t, df.Err)
	require.Equal(t, 8, df.Nrow())
	return df
}
