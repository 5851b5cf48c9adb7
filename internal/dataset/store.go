// Copyright (C) 2026 truevis (aifab.xyz)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package dataset

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/truevis/aifab-titanic/pkg/logging"
)

// DefaultSession is the cache key used when a request carries no session.
const DefaultSession = "default"

// Store memoizes one Dataset per session key. The first Get for a session
// reads the source file; every later Get for that session returns the
// identical cached instance. Safe for concurrent use.
type Store struct {
	path   string
	logger *logging.Logger

	mu       sync.RWMutex
	sessions map[string]*Dataset
	loads    atomic.Int64
}

// NewStore creates a Store reading from the given dataset path.
func NewStore(path string, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{
		path:     path,
		logger:   logger,
		sessions: make(map[string]*Dataset),
	}
}

// NewSession registers a fresh session key and returns it.
// The dataset is loaded lazily on the session's first Get.
func (s *Store) NewSession() string {
	return uuid.NewString()
}

// Get returns the Dataset for the session, loading it on first access.
// An empty sessionID maps to DefaultSession.
func (s *Store) Get(sessionID string) (*Dataset, error) {
	if sessionID == "" {
		sessionID = DefaultSession
	}

	s.mu.RLock()
	ds, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return ds, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ds, ok := s.sessions[sessionID]; ok {
		return ds, nil
	}

	start := time.Now()
	ds, err := Load(s.path)
	if err != nil {
		s.logger.Error("dataset load failed", "path", s.path, "session", sessionID, "error", err)
		return nil, err
	}
	s.sessions[sessionID] = ds
	s.loads.Add(1)
	s.logger.Info("dataset loaded",
		"path", s.path,
		"session", sessionID,
		"rows", ds.Frame().Nrow(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return ds, nil
}

// Evict drops a session's cached Dataset. A later Get re-reads the file.
func (s *Store) Evict(sessionID string) {
	if sessionID == "" {
		sessionID = DefaultSession
	}
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// Loads reports how many times the source file has been read.
func (s *Store) Loads() int64 {
	return s.loads.Load()
}

// Sessions reports how many sessions currently hold a cached Dataset.
func (s *Store) Sessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
