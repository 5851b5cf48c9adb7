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

func TestFromFrame(t *testing.T) {
	df := sampleFrame(t)

	table := FromFrame(df)
	assert.Equal(t, []string{
		"PassengerId", "Survived", "Pclass", "Name", "Sex", "Age", "Fare", "Embarked",
	}, table.Columns)
	require.Len(t, table.Rows, 8)

	assert.Equal(t, []any{
		1, 0, 3, "Braund, Mr. Owen Harris", "male", 22.0, 7.25, "S",
	}, table.Rows[0])
}

func TestFromFrame_NullsBecomeNil(t *testing.T) {
	df := sampleFrame(t)

	table := FromFrame(df)
	ageIdx, embarkedIdx := 5, 7

	assert.Nil(t, table.Rows[4][ageIdx], "unknown age renders as null")
	assert.Nil(t, table.Rows[5][embarkedIdx], "unknown port renders as null")
	assert.Equal(t, 38.0, table.Rows[1][ageIdx])
}
