// Copyright (C) 2026 truevis (aifab.xyz)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package server exposes the Titanic analytics pipeline over HTTP: a
// JSON API for the derived tables, PNG chart endpoints, a Prometheus
// metrics endpoint, and the static single-page UI.
package server

import (
	"github.com/gin-gonic/gin"
	"github.com/truevis/aifab-titanic/internal/config"
	"github.com/truevis/aifab-titanic/internal/dataset"
	"github.com/truevis/aifab-titanic/pkg/logging"
)

// Server owns the router and its dependencies.
type Server struct {
	cfg     config.Config
	logger  *logging.Logger
	store   *dataset.Store
	metrics *Metrics
	router  *gin.Engine
}

// New builds a Server around a dataset store. The dataset itself is
// loaded lazily on the first data request.
func New(cfg config.Config, logger *logging.Logger, store *dataset.Store) *Server {
	if logger == nil {
		logger = logging.Default()
	}

	m := NewMetrics(store)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(logger, m))
	SetupRoutes(router, store, m, logger, cfg.UIDir)

	return &Server{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		metrics: m,
		router:  router,
	}
}

// Router exposes the gin engine, mainly for httptest.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run blocks serving HTTP on the configured address.
func (s *Server) Run() error {
	s.logger.Info("serving",
		"addr", s.cfg.ListenAddr,
		"dataset", s.cfg.DatasetPath,
		"ui_dir", s.cfg.UIDir,
	)
	return s.router.Run(s.cfg.ListenAddr)
}
