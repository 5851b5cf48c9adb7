// Copyright (C) 2026 truevis (aifab.xyz)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package analytics

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
)

// GroupedMean reduces targetCol to its mean per distinct groupCol value.
// The output has one row per group, the mean column renamed to alias,
// and is sorted ascending by the group key.
func GroupedMean(df dataframe.DataFrame, groupCol, targetCol, alias string) (dataframe.DataFrame, error) {
	for _, col := range []string{groupCol, targetCol} {
		if !hasColumn(df, col) {
			return df, fmt.Errorf("%w: %s", ErrUnknownColumn, col)
		}
	}

	groups := df.GroupBy(groupCol)
	if groups.Err != nil {
		return df, fmt.Errorf("group by %s: %w", groupCol, groups.Err)
	}

	agg := groups.Aggregation(
		[]dataframe.AggregationType{dataframe.Aggregation_MEAN},
		[]string{targetCol},
	)
	if agg.Err != nil {
		return df, fmt.Errorf("aggregate %s: %w", targetCol, agg.Err)
	}

	// gota names the reduced column "<target>_MEAN" and returns groups
	// in map order; rename and sort for a stable result.
	out := agg.
		Rename(alias, targetCol+"_MEAN").
		Arrange(dataframe.Sort(groupCol))
	if out.Err != nil {
		return df, out.Err
	}
	return out, nil
}
