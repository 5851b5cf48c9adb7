// Copyright (C) 2026 truevis (aifab.xyz)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package server

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/truevis/aifab-titanic/pkg/logging"
)

// RequestLogger logs one line per request and feeds the request counter.
// The route label uses the matched template (e.g. "/v1/analysis/titles")
// rather than the raw path, keeping metric cardinality bounded.
func RequestLogger(logger *logging.Logger, m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		m.Requests.WithLabelValues(route, strconv.Itoa(status)).Inc()

		logger.Info("request",
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
