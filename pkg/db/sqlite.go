/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	applog "aderlee/internal/log"
	"log/slog"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

// SQLite manages a single-file SQLite database. The file and its parent
// directories are created on Connect if absent.
type SQLite struct {
	core
	path string
}

var _ Manager = (*SQLite)(nil)

// NewSQLite returns a manager for the database file at path. No connection
// is opened until Connect.
func NewSQLite(path string) *SQLite {
	s := &SQLite{path: path}
	s.ph = qmark
	s.log = applog.WithComponent("db").With(
		slog.String("driver", "sqlite"),
		slog.String("path", path),
	)
	return s
}

// Path returns the database file path the manager was constructed with.
func (s *SQLite) Path() string { return s.path }

// Connect opens the database file, creating it if absent, and enables WAL
// mode. Connecting an already-connected manager is a no-op.
func (s *SQLite) Connect() error {
	if s.db != nil {
		return nil
	}
	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			s.log.Error("create database dir failed", slog.Any("err", err))
			return fmt.Errorf("%w: create dir: %v", ErrConnection, err)
		}
	}
	// Use a URI with shared cache and set busy timeout. Convert to forward slashes for SQLite URI.
	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", filepath.ToSlash(s.path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		s.log.Error("sqlite open failed", slog.Any("err", err))
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	// Set reasonable connection pool limits for embedded usage.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	// Ensure WAL mode is active.
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		s.log.Error("enable WAL failed", slog.Any("err", err))
		return fmt.Errorf("%w: enable WAL: %v", ErrConnection, err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON;"); err != nil {
		s.log.Warn("enable foreign_keys failed", slog.Any("err", err))
	}

	s.db = db
	s.log.Info("database ready")
	return nil
}

// CreateTable creates the table if it does not exist. Tables are created
// STRICT, so column types must be one of SQLite's strict types (INT,
// INTEGER, REAL, TEXT, BLOB, ANY) plus optional constraints.
func (s *SQLite) CreateTable(table string, columns map[string]string) error {
	return s.createTable(table, columns, " STRICT")
}

// Tables lists user tables in name order, excluding SQLite's internal ones.
func (s *SQLite) Tables() ([]string, error) {
	ds, err := s.Query("SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return nil, err
	}
	return namesFrom(ds), nil
}

// Columns describes the table's columns in definition order.
func (s *SQLite) Columns(table string) ([]Column, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := ValidIdentifier(table); err != nil {
		return nil, err
	}
	// PRAGMA arguments cannot be bound; the identifier check above is the
	// guard for the interpolation.
	ds, err := s.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, err
	}
	cols := make([]Column, 0, len(ds))
	for _, rec := range ds {
		cols = append(cols, Column{
			Name:       stringValue(rec["name"]),
			Type:       stringValue(rec["type"]),
			Nullable:   intValue(rec["notnull"]) == 0,
			PrimaryKey: intValue(rec["pk"]) > 0,
		})
	}
	return cols, nil
}

// TableSchema returns the CREATE statement the table was defined with.
func (s *SQLite) TableSchema(table string) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	if err := ValidIdentifier(table); err != nil {
		return "", err
	}
	ds, err := s.Query("SELECT sql FROM sqlite_schema WHERE name = ?", table)
	if err != nil {
		return "", err
	}
	if len(ds) == 0 {
		return "", fmt.Errorf("%w: no such table: %s", ErrQuery, table)
	}
	return stringValue(ds[0]["sql"]), nil
}

// Indexes lists the table's indexes as raw PRAGMA index_list records.
func (s *SQLite) Indexes(table string) (Dataset, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := ValidIdentifier(table); err != nil {
		return nil, err
	}
	return s.Query(fmt.Sprintf("PRAGMA index_list(%s)", table))
}

// ForeignKeys lists the table's foreign keys as raw PRAGMA
// foreign_key_list records.
func (s *SQLite) ForeignKeys(table string) (Dataset, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := ValidIdentifier(table); err != nil {
		return nil, err
	}
	return s.Query(fmt.Sprintf("PRAGMA foreign_key_list(%s)", table))
}
