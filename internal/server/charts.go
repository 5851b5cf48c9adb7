// Copyright (C) 2026 truevis (aifab.xyz)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package server

import (
	"bytes"
	"image/color"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-gota/gota/dataframe"
	"github.com/truevis/aifab-titanic/internal/analytics"
	"github.com/truevis/aifab-titanic/internal/dataset"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// classColors distinguish passenger classes on the scatter chart.
var classColors = []color.Color{
	color.RGBA{R: 228, G: 26, B: 28, A: 255},
	color.RGBA{R: 55, G: 126, B: 184, A: 255},
	color.RGBA{R: 77, G: 175, B: 74, A: 255},
}

// writePNG renders the plot and sends it as image/png.
func writePNG(c *gin.Context, p *plot.Plot) {
	wt, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "rendering chart: " + err.Error()})
		return
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "encoding chart: " + err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// barChart builds a labeled bar chart.
func barChart(title, yLabel string, labels []string, values []float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLabel

	bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(30))
	if err != nil {
		return nil, err
	}
	bars.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	p.Add(bars)
	p.NominalX(labels...)
	return p, nil
}

// HandleSexChart renders passenger counts by sex as a bar chart.
func HandleSexChart(store *dataset.Store) gin.HandlerFunc {
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

		labels := make([]string, len(counts.Counts))
		values := make([]float64, len(counts.Counts))
		for i, vc := range counts.Counts {
			labels[i] = vc.Value
			values[i] = float64(vc.Count)
		}

		p, err := barChart("Number of Passengers by Sex", "Passengers", labels, values)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		writePNG(c, p)
	}
}

// HandleClassChart renders the mean survival rate per class as a bar chart.
func HandleClassChart(store *dataset.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ds, ok := getFrame(c, store)
		if !ok {
			return
		}
		rates, err := analytics.GroupedMean(ds.Frame(), dataset.ColPclass, dataset.ColSurvived, "Survival_Rate")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		classes := rates.Col(dataset.ColPclass).Records()
		values := rates.Col("Survival_Rate").Float()

		p, err := barChart("Survival Rate by Passenger Class", "Survival Rate", classes, values)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		p.Y.Min = 0
		p.Y.Max = 1
		writePNG(c, p)
	}
}

// HandleTitlesChart renders the top passenger titles as a bar chart.
func HandleTitlesChart(store *dataset.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ds, ok := getFrame(c, store)
		if !ok {
			return
		}
		counts, _, err := analytics.TitleCounts(ds.Frame(), dataset.ColName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		top := counts.Head(10)

		labels := make([]string, len(top.Counts))
		values := make([]float64, len(top.Counts))
		for i, vc := range top.Counts {
			labels[i] = vc.Value
			values[i] = float64(vc.Count)
		}

		p, err := barChart("Passenger Titles Distribution", "Passengers", labels, values)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		writePNG(c, p)
	}
}

// HandleAgeFareChart renders an age-vs-fare scatter, one glyph color per
// passenger class, over rows passing the optional query bounds
// (age_min, age_max, fare_min, fare_max).
func HandleAgeFareChart(store *dataset.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ds, ok := getFrame(c, store)
		if !ok {
			return
		}
		df := ds.Frame()

		ranges, err := queryRanges(c, df)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		out, err := analytics.RangeFilter(df, ranges...)
		if err != nil {
			// Invalid bounds degrade to the unfiltered frame.
			out = df
		}

		p := plot.New()
		p.Title.Text = "Titanic Passengers by Age and Fare"
		p.X.Label.Text = "Age"
		p.Y.Label.Text = "Fare"

		ages := out.Col(dataset.ColAge)
		fares := out.Col(dataset.ColFare)
		classes := out.Col(dataset.ColPclass)

		for class := 1; class <= 3; class++ {
			pts := make(plotter.XYs, 0)
			for i := 0; i < out.Nrow(); i++ {
				ageEl, fareEl := ages.Elem(i), fares.Elem(i)
				if ageEl.IsNA() || fareEl.IsNA() {
					continue
				}
				cv, err := classes.Elem(i).Int()
				if err != nil || cv != class {
					continue
				}
				pts = append(pts, plotter.XY{X: ageEl.Float(), Y: fareEl.Float()})
			}
			if len(pts) == 0 {
				continue
			}
			s, err := plotter.NewScatter(pts)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			s.Color = classColors[class-1]
			p.Add(s)
			p.Legend.Add("Class "+strconv.Itoa(class), s)
		}

		writePNG(c, p)
	}
}

// queryRanges parses optional numeric bounds from query parameters,
// defaulting each side to the column's own span.
func queryRanges(c *gin.Context, df dataframe.DataFrame) ([]analytics.NumericRange, error) {
	req := AgeFareRequest{}
	parse := func(key string) (*float64, error) {
		raw := c.Query(key)
		if raw == "" {
			return nil, nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}

	var err error
	if req.AgeMin, err = parse("age_min"); err != nil {
		return nil, err
	}
	if req.AgeMax, err = parse("age_max"); err != nil {
		return nil, err
	}
	if req.FareMin, err = parse("fare_min"); err != nil {
		return nil, err
	}
	if req.FareMax, err = parse("fare_max"); err != nil {
		return nil, err
	}
	return buildRanges(df, req)
}
