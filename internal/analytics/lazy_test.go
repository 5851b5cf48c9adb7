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

func TestLazy_CollectMatchesEagerFilter(t *testing.T) {
	df := sampleFrame(t)
	preds := []Predicate{
		Between("Age", 20, 30),
		Contains("Embarked", "S", true),
	}

	eager, err := Filter(df, preds...)
	require.NoError(t, err)

	lazy, err := Lazy(df).Filter(preds...).Collect()
	require.NoError(t, err)

	assert.Equal(t, eager.Records(), lazy.Records(),
		"deferred execution must yield the same rows in the same order")
}

func TestLazy_NothingRunsBeforeCollect(t *testing.T) {
	df := sampleFrame(t)

	lf := Lazy(df).Filter(Contains("Nope", "x", true))
	assert.Equal(t, 8, df.Nrow(), "building a plan must not touch the source")

	_, err := lf.Collect()
	assert.ErrorIs(t, err, ErrUnknownColumn, "the bad column surfaces only at Collect")
}

func TestLazy_Plan(t *testing.T) {
	df := sampleFrame(t)

	lf := Lazy(df).
		Filter(Between("Age", 20, 30)).
		Select("Name", "Age")

	assert.Equal(t, []string{
		"filter(between(Age, 20, 30))",
		"select(Name, Age)",
	}, lf.Plan())
}

func TestLazy_Select(t *testing.T) {
	df := sampleFrame(t)

	out, err := Lazy(df).Select("Name", "Pclass").Collect()
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Pclass"}, out.Names())
	assert.Equal(t, 8, out.Nrow())

	_, err = Lazy(df).Select("Name", "Nope").Collect()
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestLazy_CollectIsRepeatable(t *testing.T) {
	df := sampleFrame(t)
	lf := Lazy(df).Filter(Between("Fare", 10, 50))

	first, err := lf.Collect()
	require.NoError(t, err)
	second, err := lf.Collect()
	require.NoError(t, err)

	assert.Equal(t, first.Records(), second.Records())
	assert.Equal(t, 8, df.Nrow())
}

func TestLazy_BuilderIsImmutable(t *testing.T) {
	df := sampleFrame(t)

	base := Lazy(df).Filter(Between("Age", 0, 100))
	withSelect := base.Select("Name")

	assert.Len(t, base.Plan(), 1, "extending a plan must not mutate the parent")
	assert.Len(t, withSelect.Plan(), 2)
}
