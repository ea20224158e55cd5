/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package db

import (
	"fmt"
	"sort"
	"strings"
)

// sortedKeys returns the record's keys in sorted order so generated SQL is
// deterministic regardless of map iteration.
func sortedKeys(m Record) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// rowPrefixes lists leading keywords of statements that produce a result set.
var rowPrefixes = []string{"SELECT", "PRAGMA", "SHOW", "WITH", "VALUES", "EXPLAIN", "DESCRIBE", "DESC"}

// returnsRows reports whether the statement produces a result set, judged
// by its leading keyword.
func returnsRows(query string) bool {
	q := strings.ToUpper(strings.TrimSpace(query))
	for _, p := range rowPrefixes {
		if strings.HasPrefix(q, p) {
			return true
		}
	}
	return false
}

// buildWhere renders AND-joined equality conditions over the record's keys
// in sorted order. start is the 1-based index of the first placeholder, so
// clauses can follow earlier bound parameters in the same statement.
func buildWhere(where Record, ph placeholderFunc, start int) (string, []any, error) {
	keys := sortedKeys(where)
	parts := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for i, k := range keys {
		if err := ValidIdentifier(k); err != nil {
			return "", nil, err
		}
		parts = append(parts, fmt.Sprintf("%s = %s", k, ph(start+i)))
		args = append(args, where[k])
	}
	return strings.Join(parts, " AND "), args, nil
}

func buildInsert(table string, data Record, ph placeholderFunc) (string, []any, error) {
	if err := ValidIdentifier(table); err != nil {
		return "", nil, err
	}
	if len(data) == 0 {
		return "", nil, fmt.Errorf("%w: insert into %s", ErrEmptyData, table)
	}
	keys := sortedKeys(data)
	marks := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for i, k := range keys {
		if err := ValidIdentifier(k); err != nil {
			return "", nil, err
		}
		marks = append(marks, ph(i+1))
		args = append(args, data[k])
	}
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(keys, ", "), strings.Join(marks, ", "))
	return q, args, nil
}

func buildSelect(table string, columns []string, where Record, ph placeholderFunc) (string, []any, error) {
	if err := ValidIdentifier(table); err != nil {
		return "", nil, err
	}
	cols := "*"
	if len(columns) > 0 {
		for _, c := range columns {
			if err := ValidIdentifier(c); err != nil {
				return "", nil, err
			}
		}
		cols = strings.Join(columns, ", ")
	}
	q := fmt.Sprintf("SELECT %s FROM %s", cols, table)
	if len(where) == 0 {
		return q, nil, nil
	}
	clause, args, err := buildWhere(where, ph, 1)
	if err != nil {
		return "", nil, err
	}
	return q + " WHERE " + clause, args, nil
}

func buildUpdate(table string, data, where Record, ph placeholderFunc) (string, []any, error) {
	if err := ValidIdentifier(table); err != nil {
		return "", nil, err
	}
	if len(data) == 0 {
		return "", nil, fmt.Errorf("%w: update %s", ErrEmptyData, table)
	}
	if len(where) == 0 {
		return "", nil, fmt.Errorf("%w: update %s", ErrEmptyWhere, table)
	}
	keys := sortedKeys(data)
	sets := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys)+len(where))
	for i, k := range keys {
		if err := ValidIdentifier(k); err != nil {
			return "", nil, err
		}
		sets = append(sets, fmt.Sprintf("%s = %s", k, ph(i+1)))
		args = append(args, data[k])
	}
	clause, whereArgs, err := buildWhere(where, ph, len(keys)+1)
	if err != nil {
		return "", nil, err
	}
	q := fmt.Sprintf("UPDATE %s SET %s WHERE %s", table, strings.Join(sets, ", "), clause)
	return q, append(args, whereArgs...), nil
}

func buildDelete(table string, where Record, ph placeholderFunc) (string, []any, error) {
	if err := ValidIdentifier(table); err != nil {
		return "", nil, err
	}
	if len(where) == 0 {
		return "", nil, fmt.Errorf("%w: delete from %s", ErrEmptyWhere, table)
	}
	clause, args, err := buildWhere(where, ph, 1)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("DELETE FROM %s WHERE %s", table, clause), args, nil
}

// buildCreateTable renders CREATE TABLE IF NOT EXISTS from a column name to
// type mapping, columns in sorted-name order. suffix appends backend table
// options such as SQLite's STRICT.
func buildCreateTable(table string, columns map[string]string, suffix string) (string, error) {
	if err := ValidIdentifier(table); err != nil {
		return "", err
	}
	if len(columns) == 0 {
		return "", fmt.Errorf("%w: create table %s", ErrEmptyData, table)
	}
	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	sort.Strings(names)
	defs := make([]string, 0, len(names))
	for _, name := range names {
		if err := ValidIdentifier(name); err != nil {
			return "", err
		}
		if err := validColumnType(columns[name]); err != nil {
			return "", err
		}
		defs = append(defs, name+" "+columns[name])
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)%s",
		table, strings.Join(defs, ", "), suffix), nil
}
