// Copyright (C) 2026 truevis (aifab.xyz)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package server

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-gota/gota/dataframe"
	"github.com/truevis/aifab-titanic/internal/analytics"
	"github.com/truevis/aifab-titanic/internal/dataset"
	"github.com/truevis/aifab-titanic/pkg/logging"
)

// sessionHeader scopes the dataset cache; absent means the default session.
const sessionHeader = "X-Session-ID"

// FilterModeEager and FilterModeLazy select the evaluation strategy for
// /v1/dataset/filter. Both produce identical tables; lazy defers work to
// an explicit collect step whose latency is reported separately.
const (
	FilterModeEager = "eager"
	FilterModeLazy  = "lazy"
)

// HealthCheck reports service liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// getFrame resolves the session's cached Dataset, answering 500 with a
// visible message when the load fails (fatal per the error taxonomy).
func getFrame(c *gin.Context, store *dataset.Store) (*dataset.Dataset, bool) {
	ds, err := store.Get(c.GetHeader(sessionHeader))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "dataset unavailable: " + err.Error(),
		})
		return nil, false
	}
	return ds, true
}

// respondParamError maps pipeline parameter errors to 400.
func respondParamError(c *gin.Context, err error) bool {
	if errors.Is(err, analytics.ErrUnknownColumn) || errors.Is(err, analytics.ErrInvalidRange) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return true
	}
	return false
}

// HandleCreateSession mints a session key for cache scoping.
func HandleCreateSession(store *dataset.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"session_id": store.NewSession()})
	}
}

// HandleOverview returns row/column counts, estimated memory, and schema.
func HandleOverview(store *dataset.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ds, ok := getFrame(c, store)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, ds.Overview())
	}
}

// FilterRequest selects rows by substring match on one column.
type FilterRequest struct {
	Column        string `json:"column" binding:"required"`
	Value         string `json:"value" binding:"required"`
	CaseSensitive bool   `json:"case_sensitive"`
	Mode          string `json:"mode" binding:"omitempty,oneof=eager lazy"`
}

// FilterResponse carries the derived table plus the measured execution
// time of the chosen evaluation path.
type FilterResponse struct {
	Mode           string          `json:"mode"`
	Plan           []string        `json:"plan,omitempty"`
	Matched        int             `json:"matched"`
	ElapsedSeconds float64         `json:"elapsed_seconds"`
	Table          analytics.Table `json:"table"`
}

// HandleFilter runs the predicate filter in eager or lazy mode.
func HandleFilter(store *dataset.Store, m *Metrics, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FilterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}
		if req.Mode == "" {
			req.Mode = FilterModeEager
		}

		ds, ok := getFrame(c, store)
		if !ok {
			return
		}
		df := ds.Frame()
		pred := analytics.Contains(req.Column, req.Value, req.CaseSensitive)

		resp := FilterResponse{Mode: req.Mode}
		switch req.Mode {
		case FilterModeLazy:
			lazy := analytics.Lazy(df).Filter(pred)
			resp.Plan = lazy.Plan()

			start := time.Now()
			out, err := lazy.Collect()
			elapsed := time.Since(start)
			if err != nil {
				if !respondParamError(c, err) {
					c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				}
				return
			}
			m.FilterDuration.WithLabelValues(FilterModeLazy).Observe(elapsed.Seconds())
			resp.ElapsedSeconds = elapsed.Seconds()
			resp.Matched = out.Nrow()
			resp.Table = analytics.FromFrame(out)

		default:
			start := time.Now()
			out, err := analytics.Filter(df, pred)
			elapsed := time.Since(start)
			if err != nil {
				if !respondParamError(c, err) {
					c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				}
				return
			}
			m.FilterDuration.WithLabelValues(FilterModeEager).Observe(elapsed.Seconds())
			resp.ElapsedSeconds = elapsed.Seconds()
			resp.Matched = out.Nrow()
			resp.Table = analytics.FromFrame(out)
		}

		logger.Debug("filter executed",
			"mode", req.Mode,
			"column", req.Column,
			"matched", resp.Matched,
			"elapsed_seconds", resp.ElapsedSeconds,
		)
		c.JSON(http.StatusOK, resp)
	}
}

// HandleSexAnalysis returns counts and proportions by passenger sex.
func HandleSexAnalysis(store *dataset.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ds, ok := getFrame(c, store)
		if !ok {
			return
		}
		counts, err := analytics.ValueCounts(ds.Frame(), dataset.ColSex)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"counts": counts,
			"table":  counts.ToTable(),
		})
	}
}

// HandleClassAnalysis returns the passenger count pivot by class and
// survival, plus the mean survival rate per class.
func HandleClassAnalysis(store *dataset.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ds, ok := getFrame(c, store)
		if !ok {
			return
		}
		df := ds.Frame()

		pivot, err := analytics.Pivot(df, analytics.PivotSpec{
			Values:  dataset.ColPassengerID,
			Index:   dataset.ColPclass,
			Columns: dataset.ColSurvived,
			Agg:     analytics.AggCount,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		pivot = pivot.Arrange(dataframe.Sort(dataset.ColPclass))

		rates, err := analytics.GroupedMean(df, dataset.ColPclass, dataset.ColSurvived, "Survival_Rate")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"survival_by_class": analytics.FromFrame(pivot),
			"survival_rates":    analytics.FromFrame(rates),
		})
	}
}

// HandlePortsAnalysis remaps embarkation port codes to display names and
// returns distinct ports plus counts and proportions.
func HandlePortsAnalysis(store *dataset.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ds, ok := getFrame(c, store)
		if !ok {
			return
		}

		remapped, err := analytics.Remap(ds.Frame(), dataset.ColEmbarked, analytics.EmbarkedPorts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		ports, err := analytics.DistinctValues(remapped, dataset.ColEmbarked)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		counts, err := analytics.ValueCounts(remapped, dataset.ColEmbarked)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"ports":  ports,
			"counts": counts,
			"table":  counts.ToTable(),
		})
	}
}

// HandleTitles extracts passenger titles from names and returns the top
// counts plus any captain rows. Unparseable names are reported as a
// failure count, never an aborted request.
func HandleTitles(store *dataset.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 10
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
				return
			}
			limit = n
		}

		ds, ok := getFrame(c, store)
		if !ok {
			return
		}
		df := ds.Frame()

		counts, failed, err := analytics.TitleCounts(df, dataset.ColName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		captain, err := analytics.Captain(df, dataset.ColName, dataset.ColAge, dataset.ColPclass)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"titles":            counts.Head(limit),
			"table":             counts.Head(limit).ToTable(),
			"extraction_failed": failed,
			"captain":           analytics.FromFrame(captain),
			"captain_found":     captain.Nrow() > 0,
		})
	}
}

// RangeBounds reports a numeric column's span plus the slider defaults
// the original page uses (age floor 18, fare ceiling 300).
type RangeBounds struct {
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	DefaultMin float64 `json:"default_min"`
	DefaultMax float64 `json:"default_max"`
}

// HandleAgeFareBounds returns slider bounds for the age/fare filter.
func HandleAgeFareBounds(store *dataset.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ds, ok := getFrame(c, store)
		if !ok {
			return
		}
		df := ds.Frame()

		age := boundsOrZero(df, dataset.ColAge)
		fare := boundsOrZero(df, dataset.ColFare)

		age.DefaultMin = math.Max(age.Min, 18)
		age.DefaultMax = age.Max
		fare.DefaultMin = fare.Min
		fare.DefaultMax = math.Min(fare.Max, 300)

		c.JSON(http.StatusOK, gin.H{"age": age, "fare": fare})
	}
}

// boundsOrZero wraps ColumnBounds with the zero fallback for columns
// that hold no usable values.
func boundsOrZero(df dataframe.DataFrame, column string) RangeBounds {
	min, max, err := analytics.ColumnBounds(df, column)
	if err != nil {
		return RangeBounds{}
	}
	return RangeBounds{Min: min, Max: max}
}

// buildRanges turns the request bounds into NumericRanges, widening any
// omitted bound to the column's own span.
func buildRanges(df dataframe.DataFrame, req AgeFareRequest) ([]analytics.NumericRange, error) {
	ageLo, ageHi, err := analytics.ColumnBounds(df, dataset.ColAge)
	if err != nil && !errors.Is(err, analytics.ErrEmptyColumn) {
		return nil, err
	}
	fareLo, fareHi, err := analytics.ColumnBounds(df, dataset.ColFare)
	if err != nil && !errors.Is(err, analytics.ErrEmptyColumn) {
		return nil, err
	}

	age := analytics.NumericRange{Column: dataset.ColAge, Min: ageLo, Max: ageHi}
	if req.AgeMin != nil {
		age.Min = *req.AgeMin
	}
	if req.AgeMax != nil {
		age.Max = *req.AgeMax
	}

	fare := analytics.NumericRange{Column: dataset.ColFare, Min: fareLo, Max: fareHi}
	if req.FareMin != nil {
		fare.Min = *req.FareMin
	}
	if req.FareMax != nil {
		fare.Max = *req.FareMax
	}

	return []analytics.NumericRange{age, fare}, nil
}

// AgeFareRequest carries the slider bounds. Omitted bounds widen to the
// column's full span.
type AgeFareRequest struct {
	AgeMin  *float64 `json:"age_min"`
	AgeMax  *float64 `json:"age_max"`
	FareMin *float64 `json:"fare_min"`
	FareMax *float64 `json:"fare_max"`
}

// AgeFareResponse reports the rows passing both ranges. FilterApplied is
// false when the bounds were invalid (min > max) and the filter was
// skipped rather than failed.
type AgeFareResponse struct {
	Matched       int                      `json:"matched"`
	FilterApplied bool                     `json:"filter_applied"`
	Warning       string                   `json:"warning,omitempty"`
	Ranges        []analytics.NumericRange `json:"ranges"`
	Table         analytics.Table          `json:"table"`
}

// HandleAgeFare filters passengers by inclusive age and fare ranges.
// Rows with a null age or fare are excluded when that bound is active.
func HandleAgeFare(store *dataset.Store, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AgeFareRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}

		ds, ok := getFrame(c, store)
		if !ok {
			return
		}
		df := ds.Frame()

		ranges, err := buildRanges(df, req)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		out, err := analytics.RangeFilter(df, ranges...)
		if err != nil {
			if errors.Is(err, analytics.ErrInvalidRange) {
				// Parameter error: recover by applying no filter.
				logger.Warn("invalid range bounds, filter skipped", "error", err)
				c.JSON(http.StatusOK, AgeFareResponse{
					Matched:       df.Nrow(),
					FilterApplied: false,
					Warning:       err.Error(),
					Ranges:        ranges,
					Table:         analytics.FromFrame(df),
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, AgeFareResponse{
			Matched:       out.Nrow(),
			FilterApplied: true,
			Ranges:        ranges,
			Table:         analytics.FromFrame(out),
		})
	}
}

// HandleSurvivalAnalysis returns the mean survival rate pivoted by
// passenger class and (title-cased) sex.
func HandleSurvivalAnalysis(store *dataset.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ds, ok := getFrame(c, store)
		if !ok {
			return
		}
		df := ds.Frame()

		df, err := analytics.Remap(df, dataset.ColSex, map[string]string{
			"male":   "Male",
			"female": "Female",
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		df = df.Rename("Passenger Class", dataset.ColPclass)
		if df.Err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": df.Err.Error()})
			return
		}

		pivot, err := analytics.Pivot(df, analytics.PivotSpec{
			Values:  dataset.ColSurvived,
			Index:   "Passenger Class",
			Columns: dataset.ColSex,
			Agg:     analytics.AggMean,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		pivot = pivot.Arrange(dataframe.Sort("Passenger Class"))

		c.JSON(http.StatusOK, gin.H{
			"survival_by_sex_and_class": analytics.FromFrame(pivot),
		})
	}
}
