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

// Step is one deferred operation in a LazyFrame plan.
type Step interface {
	// Apply executes the step against a frame.
	Apply(df dataframe.DataFrame) (dataframe.DataFrame, error)

	// String describes the step for plan listings.
	String() string
}

// filterStep defers a predicate filter.
type filterStep struct {
	preds []Predicate
}

func (s filterStep) Apply(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	return Filter(df, s.preds...)
}

func (s filterStep) String() string {
	descs := make([]string, len(s.preds))
	for i, p := range s.preds {
		descs[i] = p.String()
	}
	return "filter(" + strings.Join(descs, " AND ") + ")"
}

// selectStep defers a column projection.
type selectStep struct {
	cols []string
}

func (s selectStep) Apply(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	for _, col := range s.cols {
		if !hasColumn(df, col) {
			return df, fmt.Errorf("%w: %s", ErrUnknownColumn, col)
		}
	}
	out := df.Select(s.cols)
	if out.Err != nil {
		return df, out.Err
	}
	return out, nil
}

func (s selectStep) String() string {
	return "select(" + strings.Join(s.cols, ", ") + ")"
}

// LazyFrame records a plan of Steps against a source frame and executes
// nothing until Collect. For the same predicates, Collect returns a frame
// identical to the eager Filter path; the deferred path exists so its
// execution can be timed separately from plan construction.
//
// LazyFrame values are immutable: each builder call returns a new plan.
type LazyFrame struct {
	src   dataframe.DataFrame
	steps []Step
}

// Lazy starts an empty plan over the frame.
func Lazy(df dataframe.DataFrame) LazyFrame {
	return LazyFrame{src: df}
}

// Filter appends a deferred predicate filter to the plan.
func (lf LazyFrame) Filter(preds ...Predicate) LazyFrame {
	return lf.append(filterStep{preds: preds})
}

// Select appends a deferred column projection to the plan.
func (lf LazyFrame) Select(cols ...string) LazyFrame {
	return lf.append(selectStep{cols: cols})
}

func (lf LazyFrame) append(step Step) LazyFrame {
	steps := make([]Step, len(lf.steps), len(lf.steps)+1)
	copy(steps, lf.steps)
	return LazyFrame{src: lf.src, steps: append(steps, step)}
}

// Plan lists the recorded steps in execution order.
func (lf LazyFrame) Plan() []string {
	plan := make([]string, len(lf.steps))
	for i, s := range lf.steps {
		plan[i] = s.String()
	}
	return plan
}

// Collect executes the plan top to bottom and materializes the result.
// The source frame is never modified.
func (lf LazyFrame) Collect() (dataframe.DataFrame, error) {
	df := lf.src
	for _, step := range lf.steps {
		var err error
		df, err = step.Apply(df)
		if err != nil {
			return lf.src, fmt.Errorf("collect %s: %w", step, err)
		}
	}
	return df, nil
}
