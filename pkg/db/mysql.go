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

	"github.com/go-sql-driver/mysql"

	applog "aderlee/internal/log"
	"log/slog"
)

// MySQL manages a connection to a MySQL or MariaDB server.
type MySQL struct {
	core
	dsn string
}

var _ Manager = (*MySQL)(nil)

// NewMySQL returns a manager for the given server and database. parseTime
// is forced on so DATETIME and TIMESTAMP columns scan as time.Time.
func NewMySQL(host string, port int, user, password, database string) *MySQL {
	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", host, port)
	cfg.User = user
	cfg.Passwd = password
	cfg.DBName = database
	cfg.ParseTime = true
	return NewMySQLDSN(cfg.FormatDSN())
}

// NewMySQLDSN returns a manager for a DSN in go-sql-driver form, e.g.
// "user:pass@tcp(host:3306)/dbname?parseTime=true".
func NewMySQLDSN(dsn string) *MySQL {
	m := &MySQL{dsn: dsn}
	m.ph = qmark
	m.log = applog.WithComponent("db").With(slog.String("driver", "mysql"))
	return m
}

// Connect opens and pings the server. Connecting an already-connected
// manager is a no-op.
func (m *MySQL) Connect() error {
	if m.db != nil {
		return nil
	}
	db, err := sql.Open("mysql", m.dsn)
	if err != nil {
		m.log.Error("mysql open failed", slog.Any("err", err))
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		m.log.Error("mysql ping failed", slog.Any("err", err))
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	m.db = db
	m.log.Info("database ready")
	return nil
}

// CreateTable creates the table if it does not exist.
func (m *MySQL) CreateTable(table string, columns map[string]string) error {
	return m.createTable(table, columns, "")
}

// Tables lists the current database's tables in name order.
func (m *MySQL) Tables() ([]string, error) {
	ds, err := m.Query("SELECT table_name AS name FROM information_schema.tables WHERE table_schema = DATABASE() ORDER BY table_name")
	if err != nil {
		return nil, err
	}
	return namesFrom(ds), nil
}

// Columns describes the table's columns in ordinal order.
func (m *MySQL) Columns(table string) ([]Column, error) {
	if err := m.ready(); err != nil {
		return nil, err
	}
	if err := ValidIdentifier(table); err != nil {
		return nil, err
	}
	ds, err := m.Query(`SELECT column_name AS name, column_type AS col_type, is_nullable AS nullable, column_key AS col_key
		FROM information_schema.columns
		WHERE table_schema = DATABASE() AND table_name = ?
		ORDER BY ordinal_position`, table)
	if err != nil {
		return nil, err
	}
	cols := make([]Column, 0, len(ds))
	for _, rec := range ds {
		cols = append(cols, Column{
			Name:       stringValue(rec["name"]),
			Type:       stringValue(rec["col_type"]),
			Nullable:   stringValue(rec["nullable"]) == "YES",
			PrimaryKey: stringValue(rec["col_key"]) == "PRI",
		})
	}
	return cols, nil
}
