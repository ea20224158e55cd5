/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package db

import (
	"strconv"
	"time"
)

// Record is a single row as a mapping of column name to value.
type Record = map[string]any

// Dataset is an ordered collection of Records.
type Dataset = []Record

// Column describes one column of a table as reported by the backend catalog.
type Column struct {
	Name       string
	Type       string
	Nullable   bool
	PrimaryKey bool
}

// opTimeout bounds every single statement sent to the database.
const opTimeout = 5 * time.Second

// Manager is the common surface of the SQLite, MySQL and PostgreSQL
// managers. Lifecycle: construct, Connect, use, Disconnect. Every method
// other than Connect and Disconnect returns ErrNotConnected while no
// connection is open.
type Manager interface {
	Connect() error
	Disconnect() error
	Connected() bool

	// Execute runs a raw parameterized statement. Row-returning statements
	// (SELECT, PRAGMA, SHOW, ...) yield a Dataset and a zero count; all
	// others yield a nil Dataset and the affected-row count.
	Execute(query string, args ...any) (Dataset, int64, error)
	Query(query string, args ...any) (Dataset, error)
	Exec(query string, args ...any) (int64, error)

	CreateTable(table string, columns map[string]string) error
	Insert(table string, data Record) (int64, error)
	Select(table string, columns []string, where Record) (Dataset, error)
	Update(table string, data, where Record) (int64, error)
	Delete(table string, where Record) (int64, error)

	Tables() ([]string, error)
	Columns(table string) ([]Column, error)
	DropTable(table string) error
	DropView(view string) error
}

// With connects m, runs fn, and disconnects on every exit path, normal or
// not. A Disconnect failure surfaces only when fn itself succeeded.
func With(m Manager, fn func(Manager) error) (err error) {
	if err = m.Connect(); err != nil {
		return err
	}
	defer func() {
		if cerr := m.Disconnect(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(m)
}

// placeholderFunc renders the bind marker for the i-th parameter (1-based).
type placeholderFunc func(i int) string

func qmark(int) string { return "?" }

func dollar(i int) string { return "$" + strconv.Itoa(i) }
