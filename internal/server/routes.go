// Copyright (C) 2026 truevis (aifab.xyz)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/truevis/aifab-titanic/internal/dataset"
	"github.com/truevis/aifab-titanic/pkg/logging"
)

// SetupRoutes wires every endpoint onto the router.
func SetupRoutes(router *gin.Engine, store *dataset.Store, m *Metrics, logger *logging.Logger, uiDir string) {
	router.GET("/health", HealthCheck)
	router.GET("/metrics", gin.WrapH(m.Handler()))

	if uiDir != "" {
		router.StaticFS("/ui", http.Dir(uiDir))
		router.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusMovedPermanently, "/ui/")
		})
	}

	// API version 1 group
	v1 := router.Group("/v1")
	{
		v1.POST("/sessions", HandleCreateSession(store))
		v1.GET("/dataset/overview", HandleOverview(store))
		v1.POST("/dataset/filter", HandleFilter(store, m, logger))

		analysis := v1.Group("/analysis")
		{
			analysis.GET("/sex", HandleSexAnalysis(store))
			analysis.GET("/class", HandleClassAnalysis(store))
			analysis.GET("/ports", HandlePortsAnalysis(store))
			analysis.GET("/titles", HandleTitles(store))
			analysis.GET("/age-fare/bounds", HandleAgeFareBounds(store))
			analysis.POST("/age-fare", HandleAgeFare(store, logger))
			analysis.GET("/survival", HandleSurvivalAnalysis(store))
		}

		charts := v1.Group("/charts")
		{
			charts.GET("/sex.png", HandleSexChart(store))
			charts.GET("/class.png", HandleClassChart(store))
			charts.GET("/titles.png", HandleTitlesChart(store))
			charts.GET("/age-fare.png", HandleAgeFareChart(store))
		}
	}
}
