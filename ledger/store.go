// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ledger

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Store.Get for keys that were never Put.
var ErrNotFound = errors.New("ledger: key not found")

// Store is the key/value storage the ledger keeps encrypted balances in.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value stored under key or ErrNotFound.
	Get(ctx context.Context, key []byte) ([]byte, error)
	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key, value []byte) error
	// PutAll stores every entry or, on error, none of them.
	PutAll(ctx context.Context, entries ...Entry) error
}

// Entry is one key/value pair of a PutAll call.
type Entry struct {
	Key, Value []byte
}

// MemStore is an in-memory Store, suitable for tests and single process
// deployments.
type MemStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string][]byte)}
}

// Get implements Store.
func (s *MemStore) Get(ctx context.Context, key []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[string(key)]
	if !ok {
		return nil, ErrNotFound
	}
	// Return a copy so callers cannot modify the stored value.
	return append([]byte(nil), v...), nil
}

// Put implements Store.
func (s *MemStore) Put(ctx context.Context, key, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[string(key)] = append([]byte(nil), value...)
	return nil
}

// PutAll implements Store.
func (s *MemStore) PutAll(ctx context.Context, entries ...Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		s.values[string(e.Key)] = append([]byte(nil), e.Value...)
	}
	return nil
}

// Len returns the number of stored keys.
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
