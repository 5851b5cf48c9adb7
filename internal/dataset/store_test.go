// Copyright (C) 2026 truevis (aifab.xyz)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package dataset

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetCachesPerSession(t *testing.T) {
	store := NewStore(fixturePath, nil)

	first, err := store.Get("alice")
	require.NoError(t, err)
	second, err := store.Get("alice")
	require.NoError(t, err)

	assert.Same(t, first, second, "repeat Get must return the cached instance")
	assert.Equal(t, int64(1), store.Loads())

	other, err := store.Get("bob")
	require.NoError(t, err)
	assert.NotSame(t, first, other)
	assert.Equal(t, int64(2), store.Loads())
	assert.Equal(t, 2, store.Sessions())
}

func TestStore_EmptySessionUsesDefault(t *testing.T) {
	store := NewStore(fixturePath, nil)

	anon, err := store.Get("")
	require.NoError(t, err)
	named, err := store.Get(DefaultSession)
	require.NoError(t, err)

	assert.Same(t, anon, named)
	assert.Equal(t, int64(1), store.Loads())
}

func TestStore_Evict(t *testing.T) {
	store := NewStore(fixturePath, nil)

	first, err := store.Get("alice")
	require.NoError(t, err)

	store.Evict("alice")
	assert.Equal(t, 0, store.Sessions())

	reloaded, err := store.Get("alice")
	require.NoError(t, err)
	assert.NotSame(t, first, reloaded)
	assert.Equal(t, int64(2), store.Loads())
}

func TestStore_LoadFailure(t *testing.T) {
	store := NewStore("testdata/does-not-exist.csv.gz", nil)

	_, err := store.Get("alice")
	assert.ErrorIs(t, err, ErrLoad)
	assert.Equal(t, int64(0), store.Loads())
	assert.Equal(t, 0, store.Sessions())
}

func TestStore_ConcurrentGetLoadsOnce(t *testing.T) {
	store := NewStore(fixturePath, nil)

	const workers = 16
	results := make([]*Dataset, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ds, err := store.Get("shared")
			assert.NoError(t, err)
			results[i] = ds
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(1), store.Loads())
	for i := 1; i < workers; i++ {
		assert.Same(t, results[0], results[i])
	}
}

func TestStore_NewSessionKeysAreUnique(t *testing.T) {
	store := NewStore(fixturePath, nil)

	a := store.NewSession()
	b := store.NewSession()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
