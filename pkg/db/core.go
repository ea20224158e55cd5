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
	"log/slog"
)

// core is the backend-independent half of a manager: the open handle, the
// placeholder dialect and the statement plumbing shared by SQLite, MySQL
// and PostgreSQL. Each backend embeds it and contributes Connect plus its
// catalog queries.
type core struct {
	db  *sql.DB
	ph  placeholderFunc
	log *slog.Logger
}

func (c *core) ready() error {
	if c.db == nil {
		return ErrNotConnected
	}
	return nil
}

// Connected reports whether a connection is currently open.
func (c *core) Connected() bool { return c.db != nil }

// Disconnect closes the connection if open. Calling it on a closed manager
// is a no-op.
func (c *core) Disconnect() error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	if err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	c.log.Debug("database closed")
	return nil
}

// Execute runs a raw parameterized statement, dispatching on its leading
// keyword: row-returning statements go through Query, everything else
// through Exec.
func (c *core) Execute(query string, args ...any) (Dataset, int64, error) {
	if returnsRows(query) {
		ds, err := c.Query(query, args...)
		return ds, 0, err
	}
	n, err := c.Exec(query, args...)
	return nil, n, err
}

// Query runs a row-returning statement and scans every row into a Record.
func (c *core) Query(query string, args ...any) (Dataset, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		c.log.Error("query failed", slog.String("query", query), slog.Any("err", err))
		return nil, fmt.Errorf("%w: %q: %v", ErrQuery, query, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	return scanRows(rows)
}

// Exec runs a statement that returns no rows and reports the affected-row
// count.
func (c *core) Exec(query string, args ...any) (int64, error) {
	if err := c.ready(); err != nil {
		return 0, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	res, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		c.log.Error("exec failed", slog.String("query", query), slog.Any("err", err))
		return 0, fmt.Errorf("%w: %q: %v", ErrQuery, query, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		// Driver cannot report a count; the statement still succeeded.
		return 0, nil
	}
	return n, nil
}

// Insert builds a parameterized INSERT from the record's keys and values.
// It returns the driver-reported insert id where the backend supports one
// (SQLite, MySQL); PostgreSQL reports zero.
func (c *core) Insert(table string, data Record) (int64, error) {
	if err := c.ready(); err != nil {
		return 0, err
	}
	query, args, err := buildInsert(table, data, c.ph)
	if err != nil {
		return 0, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	res, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		c.log.Error("insert failed", slog.String("query", query), slog.Any("err", err))
		return 0, fmt.Errorf("%w: %q: %v", ErrQuery, query, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, nil
	}
	return id, nil
}

// Select builds a parameterized SELECT. A nil or empty columns slice selects
// all columns; where conditions are AND-joined equality comparisons.
func (c *core) Select(table string, columns []string, where Record) (Dataset, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	query, args, err := buildSelect(table, columns, where, c.ph)
	if err != nil {
		return nil, err
	}
	return c.Query(query, args...)
}

// Update builds a parameterized UPDATE and reports the number of rows
// modified. Empty where conditions are refused.
func (c *core) Update(table string, data, where Record) (int64, error) {
	if err := c.ready(); err != nil {
		return 0, err
	}
	query, args, err := buildUpdate(table, data, where, c.ph)
	if err != nil {
		return 0, err
	}
	return c.Exec(query, args...)
}

// Delete builds a parameterized DELETE and reports the number of rows
// removed. Empty where conditions are refused.
func (c *core) Delete(table string, where Record) (int64, error) {
	if err := c.ready(); err != nil {
		return 0, err
	}
	query, args, err := buildDelete(table, where, c.ph)
	if err != nil {
		return 0, err
	}
	return c.Exec(query, args...)
}

func (c *core) createTable(table string, columns map[string]string, suffix string) error {
	if err := c.ready(); err != nil {
		return err
	}
	query, err := buildCreateTable(table, columns, suffix)
	if err != nil {
		return err
	}
	if _, err := c.Exec(query); err != nil {
		return err
	}
	c.log.Debug("table ready", slog.String("table", table))
	return nil
}

// DropTable removes the table if it exists. Dropping an absent table is a
// no-op.
func (c *core) DropTable(table string) error {
	if err := c.ready(); err != nil {
		return err
	}
	if err := ValidIdentifier(table); err != nil {
		return err
	}
	_, err := c.Exec("DROP TABLE IF EXISTS " + table)
	return err
}

// DropView removes the view if it exists. Dropping an absent view is a
// no-op.
func (c *core) DropView(view string) error {
	if err := c.ready(); err != nil {
		return err
	}
	if err := ValidIdentifier(view); err != nil {
		return err
	}
	_, err := c.Exec("DROP VIEW IF EXISTS " + view)
	return err
}

// scanRows reads every remaining row into a Dataset. Byte slices become
// strings so text columns read uniformly across drivers; NULL stays nil.
func scanRows(rows *sql.Rows) (Dataset, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	out := Dataset{}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQuery, err)
		}
		rec := make(Record, len(cols))
		for i, col := range cols {
			switch v := values[i].(type) {
			case []byte:
				rec[col] = string(v)
			default:
				rec[col] = v
			}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	return out, nil
}

// namesFrom extracts the "name" column of a catalog query result.
func namesFrom(ds Dataset) []string {
	names := make([]string, 0, len(ds))
	for _, rec := range ds {
		if n, ok := rec["name"].(string); ok {
			names = append(names, n)
		}
	}
	return names
}

func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case nil:
		return ""
	default:
		return fmt.Sprint(s)
	}
}

func intValue(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case float64:
		return int64(n)
	default:
		return 0
	}
}
