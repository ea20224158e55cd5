/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package db

import (
	"bytes"
	"strings"
	"testing"
)

func TestExportImportCSV(t *testing.T) {
	m := openSQLiteForTest(t)
	mustCreateUsers(t, m)

	if _, err := m.Insert("users", Record{"name": "Ann", "age": 30}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := m.Insert("users", Record{"name": "Jane, Jr.", "age": 25}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	var buf bytes.Buffer
	if err := ExportCSV(m, "users", &buf); err != nil {
		t.Fatalf("export: %v", err)
	}
	out := buf.String()
	// Header follows the table's column order (definition order).
	if !strings.HasPrefix(out, "age,id,name\n") {
		t.Fatalf("unexpected header: %q", out)
	}
	if !strings.Contains(out, `"Jane, Jr."`) {
		t.Fatalf("comma value not quoted: %q", out)
	}

	err := m.CreateTable("users_copy", map[string]string{
		"id":   "INTEGER PRIMARY KEY",
		"name": "TEXT",
		"age":  "INTEGER",
	})
	if err != nil {
		t.Fatalf("create copy table: %v", err)
	}
	n, err := ImportCSV(m, "users_copy", strings.NewReader(out))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 2 {
		t.Fatalf("imported %d rows, want 2", n)
	}

	rows, err := m.Select("users_copy", []string{"name"}, Record{"age": 25})
	if err != nil {
		t.Fatalf("select copy: %v", err)
	}
	if len(rows) != 1 || rows[0]["name"] != "Jane, Jr." {
		t.Fatalf("round trip mismatch: %#v", rows)
	}
}

func TestExportCSVMissingTable(t *testing.T) {
	m := openSQLiteForTest(t)
	var buf bytes.Buffer
	if err := ExportCSV(m, "nothing_here", &buf); err == nil {
		t.Fatalf("expected error for missing table")
	}
}

func TestImportCSVEmptyInput(t *testing.T) {
	m := openSQLiteForTest(t)
	mustCreateUsers(t, m)

	n, err := ImportCSV(m, "users", strings.NewReader(""))
	if err != nil || n != 0 {
		t.Fatalf("empty input: n %d, err %v", n, err)
	}
	// A header with no data rows inserts nothing.
	n, err = ImportCSV(m, "users", strings.NewReader("name,age\n"))
	if err != nil || n != 0 {
		t.Fatalf("header only: n %d, err %v", n, err)
	}
}
