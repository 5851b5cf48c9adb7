// Copyright (C) 2026 truevis (aifab.xyz)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_ContainsCaseSensitive(t *testing.T) {
	df := sampleFrame(t)

	out, err := Filter(df, Contains("Name", ", Mr.", true))
	require.NoError(t, err)
	assert.Equal(t, 3, out.Nrow())
	assert.Equal(t, []string{
		"Braund, Mr. Owen Harris",
		"Moran, Mr. James",
		"Doe, Mr. John",
	}, out.Col("Name").Records())
}

func TestFilter_ContainsCaseInsensitive(t *testing.T) {
	df := sampleFrame(t)

	// "mr." also hits "Mrs." once folded; five of the eight names match.
	out, err := Filter(df, Contains("Name", "mr.", false))
	require.NoError(t, err)
	assert.Equal(t, 5, out.Nrow())
}

func TestFilter_HasPrefix(t *testing.T) {
	df := sampleFrame(t)

	out, err := Filter(df, HasPrefix("Name", "Braund"))
	require.NoError(t, err)
	require.Equal(t, 1, out.Nrow())
	assert.Equal(t, "Braund, Mr. Owen Harris", out.Col("Name").Elem(0).String())
}

func TestFilter_BetweenExcludesNulls(t *testing.T) {
	df := sampleFrame(t)

	out, err := Filter(df, Between("Age", 20, 30))
	require.NoError(t, err)
	// Ages 22, 26, 25, 28 qualify; the null age never matches.
	assert.Equal(t, 4, out.Nrow())
	for i := 0; i < out.Nrow(); i++ {
		assert.False(t, out.Col("Age").Elem(i).IsNA())
	}
}

func TestFilter_BetweenBoundsInclusive(t *testing.T) {
	df := sampleFrame(t)

	out, err := Filter(df, Between("Age", 22, 62))
	require.NoError(t, err)
	// Both endpoints are present in the data and both are kept.
	assert.Equal(t, 6, out.Nrow())
}

func TestFilter_MultiplePredicatesAnded(t *testing.T) {
	df := sampleFrame(t)

	out, err := Filter(df,
		Between("Age", 20, 30),
		Contains("Embarked", "S", true),
	)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Nrow())
	assert.Equal(t, []string{"1", "3", "7"}, out.Col("PassengerId").Records())
}

func TestFilter_NoPredicates(t *testing.T) {
	df := sampleFrame(t)

	out, err := Filter(df)
	require.NoError(t, err)
	assert.Equal(t, df.Records(), out.Records())
}

func TestFilter_UnknownColumn(t *testing.T) {
	df := sampleFrame(t)

	_, err := Filter(df, Contains("Nope", "x", true))
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestPredicate_String(t *testing.T) {
	assert.Equal(t, `contains(Name, "Mr")`, Contains("Name", "Mr", true).String())
	assert.Equal(t, `prefix(Name, "Braund")`, HasPrefix("Name", "Braund").String())
	assert.Equal(t, "between(Age, 20, 30)", Between("Age", 20, 30).String())
	assert.Equal(t, "Age", Between("Age", 20, 30).Column())
}
