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

func TestRemap_PortLabels(t *testing.T) {
	df := sampleFrame(t)

	out, err := Remap(df, "Embarked", EmbarkedPorts)
	require.NoError(t, err)

	col := out.Col("Embarked")
	assert.Equal(t, "Southampton", col.Elem(0).String())
	assert.Equal(t, "Cherbourg", col.Elem(1).String())
	assert.Equal(t, "Queenstown", col.Elem(4).String())
	assert.True(t, col.Elem(5).IsNA(), "null stays null")

	// Source frame keeps its raw codes.
	assert.Equal(t, "S", df.Col("Embarked").Elem(0).String())
}

func TestRemap_UnmappedValuesPassThrough(t *testing.T) {
	df := sampleFrame(t)

	out, err := Remap(df, "Embarked", map[string]string{"S": "Southampton"})
	require.NoError(t, err)

	col := out.Col("Embarked")
	assert.Equal(t, "Southampton", col.Elem(0).String())
	assert.Equal(t, "C", col.Elem(1).String(), "codes absent from the mapping are untouched")
	assert.Equal(t, "Q", col.Elem(4).String())
}

func TestRemap_UnknownColumn(t *testing.T) {
	df := sampleFrame(t)

	_, err := Remap(df, "Nope", EmbarkedPorts)
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestDistinctValues(t *testing.T) {
	df := sampleFrame(t)

	sexes, err := DistinctValues(df, "Sex")
	require.NoError(t, err)
	assert.Equal(t, []string{"male", "female"}, sexes, "first-appearance order")

	remapped, err := Remap(df, "Embarked", EmbarkedPorts)
	require.NoError(t, err)
	ports, err := DistinctValues(remapped, "Embarked")
	require.NoError(t, err)
	assert.Equal(t, []string{"Southampton", "Cherbourg", "Queenstown"}, ports,
		"distinct values reflect the mapping, nulls excluded")

	_, err = DistinctValues(df, "Nope")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}
