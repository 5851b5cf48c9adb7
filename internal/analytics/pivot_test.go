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

func TestPivot_Count(t *testing.T) {
	df := sampleFrame(t)

	out, err := Pivot(df, PivotSpec{
		Values:  "PassengerId",
		Index:   "Pclass",
		Columns: "Survived",
		Agg:     AggCount,
	})
	require.NoError(t, err)

	// One row per distinct class, one column per survival flag plus the
	// index itself; both in first-appearance order.
	assert.Equal(t, []string{"Pclass", "0", "1"}, out.Names())
	require.Equal(t, 3, out.Nrow())
	assert.Equal(t, []string{"3", "1", "2"}, out.Col("Pclass").Records())

	died := out.Col("0")
	survived := out.Col("1")

	v, err := died.Elem(0).Int()
	require.NoError(t, err)
	assert.Equal(t, 3, v, "three third-class passengers died")
	v, err = survived.Elem(0).Int()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = survived.Elem(2).Int()
	require.NoError(t, err)
	assert.Equal(t, 2, v, "both second-class passengers survived")
	assert.True(t, died.Elem(2).IsNA(), "empty combination stays null")
}

func TestPivot_Mean(t *testing.T) {
	df := sampleFrame(t)

	out, err := Pivot(df, PivotSpec{
		Values:  "Survived",
		Index:   "Pclass",
		Columns: "Sex",
		Agg:     AggMean,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Pclass", "male", "female"}, out.Names())
	require.Equal(t, 3, out.Nrow())
	assert.Equal(t, []string{"3", "1", "2"}, out.Col("Pclass").Records())

	male := out.Col("male").Float()
	female := out.Col("female").Float()
	assert.InDelta(t, 0.0, male[0], 1e-9, "no third-class man survived")
	assert.InDelta(t, 1.0, female[0], 1e-9)
	assert.InDelta(t, 0.0, male[1], 1e-9)
	assert.InDelta(t, 1.0, male[2], 1e-9)
	assert.InDelta(t, 1.0, female[2], 1e-9)
}

func TestPivot_NullIndexOrSpreadRowsSkipped(t *testing.T) {
	df := sampleFrame(t)

	out, err := Pivot(df, PivotSpec{
		Values:  "PassengerId",
		Index:   "Sex",
		Columns: "Embarked",
		Agg:     AggCount,
	})
	require.NoError(t, err)

	// The passenger with an unknown port belongs to no group, so the
	// spread holds only the three known ports.
	assert.Equal(t, []string{"Sex", "S", "C", "Q"}, out.Names())
	require.Equal(t, 2, out.Nrow())

	total := 0
	for _, port := range []string{"S", "C", "Q"} {
		col := out.Col(port)
		for r := 0; r < out.Nrow(); r++ {
			if col.Elem(r).IsNA() {
				continue
			}
			v, err := col.Elem(r).Int()
			require.NoError(t, err)
			total += v
		}
	}
	assert.Equal(t, 7, total, "seven of eight passengers have a known port")
}

func TestPivot_Errors(t *testing.T) {
	df := sampleFrame(t)

	_, err := Pivot(df, PivotSpec{Values: "Nope", Index: "Pclass", Columns: "Sex", Agg: AggCount})
	assert.ErrorIs(t, err, ErrUnknownColumn)

	_, err = Pivot(df, PivotSpec{Values: "Survived", Index: "Pclass", Columns: "Sex", Agg: AggFunc(99)})
	assert.Error(t, err)
}

func TestAggFunc_String(t *testing.T) {
	assert.Equal(t, "count", AggCount.String())
	assert.Equal(t, "mean", AggMean.String())
}
