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

func TestGroupedMean_SurvivalByClass(t *testing.T) {
	df := sampleFrame(t)

	out, err := GroupedMean(df, "Pclass", "Survived", "Survival_Rate")
	require.NoError(t, err)

	require.Equal(t, 3, out.Nrow(), "one row per distinct class")
	assert.Equal(t, []string{"1", "2", "3"}, out.Col("Pclass").Records(),
		"groups sorted ascending by key")

	rates := out.Col("Survival_Rate").Float()
	require.Len(t, rates, 3)
	assert.InDelta(t, 0.5, rates[0], 1e-9)
	assert.InDelta(t, 1.0, rates[1], 1e-9)
	assert.InDelta(t, 0.25, rates[2], 1e-9)
}

func TestGroupedMean_AliasReplacesGeneratedName(t *testing.T) {
	df := sampleFrame(t)

	out, err := GroupedMean(df, "Sex", "Fare", "Mean_Fare")
	require.NoError(t, err)

	assert.Contains(t, out.Names(), "Mean_Fare")
	assert.NotContains(t, out.Names(), "Fare_MEAN")
}

func TestGroupedMean_UnknownColumns(t *testing.T) {
	df := sampleFrame(t)

	_, err := GroupedMean(df, "Nope", "Survived", "x")
	assert.ErrorIs(t, err, ErrUnknownColumn)

	_, err = GroupedMean(df, "Pclass", "Nope", "x")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestGroupedMean_SourceUntouched(t *testing.T) {
	df := sampleFrame(t)

	_, err := GroupedMean(df, "Pclass", "Survived", "Rate")
	require.NoError(t, err)
	assert.Equal(t, 8, df.Nrow())
	assert.NotContains(t, df.Names(), "Rate")
}
