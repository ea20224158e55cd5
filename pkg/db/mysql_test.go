/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package db

import (
	"os"
	"strings"
	"testing"
)

// openMySQLForTest connects to the server named by ADERLEE_MYSQL_DSN and
// skips the test when none is reachable.
func openMySQLForTest(t *testing.T) *MySQL {
	t.Helper()
	dsn := os.Getenv("ADERLEE_MYSQL_DSN")
	if dsn == "" {
		t.Skip("ADERLEE_MYSQL_DSN not set")
	}
	m := NewMySQLDSN(dsn)
	if err := m.Connect(); err != nil {
		t.Skipf("mysql not available: %v", err)
	}
	t.Cleanup(func() {
		_ = m.DropTable("aderlee_mysql_test")
		_ = m.Disconnect()
	})
	return m
}

func TestMySQLDSNFromParts(t *testing.T) {
	m := NewMySQL("dbhost", 3307, "user", "secret", "mydb")
	if !strings.Contains(m.dsn, "tcp(dbhost:3307)") {
		t.Fatalf("address missing from DSN: %q", m.dsn)
	}
	if !strings.Contains(m.dsn, "/mydb") {
		t.Fatalf("database missing from DSN: %q", m.dsn)
	}
	if !strings.Contains(m.dsn, "parseTime=true") {
		t.Fatalf("parseTime not enabled: %q", m.dsn)
	}
}

func TestMySQLCRUD(t *testing.T) {
	m := openMySQLForTest(t)

	_ = m.DropTable("aderlee_mysql_test")
	err := m.CreateTable("aderlee_mysql_test", map[string]string{
		"id":   "INT AUTO_INCREMENT PRIMARY KEY",
		"name": "VARCHAR(64)",
		"age":  "INT",
	})
	if err != nil {
		t.Fatalf("create table: %v", err)
	}

	id, err := m.Insert("aderlee_mysql_test", Record{"name": "Ann", "age": 30})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id < 1 {
		t.Fatalf("insert id = %d, want >= 1", id)
	}

	payload := "'; DROP TABLE aderlee_mysql_test; --"
	if _, err := m.Insert("aderlee_mysql_test", Record{"name": payload, "age": 1}); err != nil {
		t.Fatalf("insert payload: %v", err)
	}
	rows, err := m.Select("aderlee_mysql_test", []string{"name"}, Record{"name": payload})
	if err != nil {
		t.Fatalf("select payload: %v", err)
	}
	if len(rows) != 1 || rows[0]["name"] != payload {
		t.Fatalf("payload not stored verbatim: %#v", rows)
	}

	n, err := m.Update("aderlee_mysql_test", Record{"age": 31}, Record{"name": "Ann"})
	if err != nil || n != 1 {
		t.Fatalf("update: n %d, err %v", n, err)
	}
	n, err = m.Delete("aderlee_mysql_test", Record{"name": payload})
	if err != nil || n != 1 {
		t.Fatalf("delete: n %d, err %v", n, err)
	}

	tables, err := m.Tables()
	if err != nil {
		t.Fatalf("tables: %v", err)
	}
	found := false
	for _, name := range tables {
		if name == "aderlee_mysql_test" {
			found = true
		}
	}
	if !found {
		t.Fatalf("test table missing from catalog: %v", tables)
	}

	cols, err := m.Columns("aderlee_mysql_test")
	if err != nil {
		t.Fatalf("columns: %v", err)
	}
	if len(cols) != 3 {
		t.Fatalf("unexpected columns: %#v", cols)
	}
	for _, c := range cols {
		if c.Name == "id" && !c.PrimaryKey {
			t.Fatalf("id should be the primary key: %#v", c)
		}
	}
}
