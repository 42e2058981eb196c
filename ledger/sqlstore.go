// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"v.io/x/aibe/dbutil"
)

// SQLTable is the name of the table SQLStore keeps its rows in.
const SQLTable = "aibe_store"

// SQLStore is a Store backed by a MySQL table. Rows are keyed by
// Blake2b-128(key) followed by the key itself, which spreads keys evenly
// over the primary index while keeping them reversible.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore returns a Store over db. CreateTable must have been called
// on the database at least once.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// CreateTable creates the store's table if it does not exist.
func (s *SQLStore) CreateTable(ctx context.Context) error {
	stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (k VARBINARY(512) NOT NULL PRIMARY KEY, v BLOB NOT NULL) %s",
		SQLTable, dbutil.SqlCreateTableSuffix)
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("ledger: creating table %s: %w", SQLTable, err)
	}
	return nil
}

func storageKey(key []byte) []byte {
	h, _ := blake2b.New(16, nil) // only fails for invalid sizes or keys.
	h.Write(key)
	return append(h.Sum(nil), key...)
}

// Get implements Store.
func (s *SQLStore) Get(ctx context.Context, key []byte) ([]byte, error) {
	var v []byte
	err := s.db.QueryRowContext(ctx, "SELECT v FROM "+SQLTable+" WHERE k = ?", storageKey(key)).Scan(&v)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("ledger: reading %s: %w", SQLTable, err)
	}
	return v, nil
}

const upsertStmt = "INSERT INTO " + SQLTable + " (k, v) VALUES (?, ?) ON DUPLICATE KEY UPDATE v = VALUES(v)"

// Put implements Store.
func (s *SQLStore) Put(ctx context.Context, key, value []byte) error {
	if _, err := s.db.ExecContext(ctx, upsertStmt, storageKey(key), value); err != nil {
		return fmt.Errorf("ledger: writing %s: %w", SQLTable, err)
	}
	return nil
}

// PutAll implements Store. The entries are written in one transaction.
func (s *SQLStore) PutAll(ctx context.Context, entries ...Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ledger: starting transaction: %w", err)
	}
	defer tx.Rollback()
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, upsertStmt, storageKey(e.Key), e.Value); err != nil {
			return fmt.Errorf("ledger: writing %s: %w", SQLTable, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ledger: committing to %s: %w", SQLTable, err)
	}
	return nil
}
