/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package db

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// ExportCSV writes every row of the table to w as CSV: a header line of
// column names in catalog order, then one line per row. NULL values export
// as empty fields.
func ExportCSV(m Manager, table string, w io.Writer) error {
	cols, err := m.Columns(table)
	if err != nil {
		return err
	}
	if len(cols) == 0 {
		return fmt.Errorf("%w: no such table: %s", ErrQuery, table)
	}
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	ds, err := m.Select(table, names, nil)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(names); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range ds {
		row := make([]string, len(names))
		for i, name := range names {
			switch v := rec[name].(type) {
			case nil:
			case string:
				row[i] = v
			case time.Time:
				row[i] = v.Format(time.RFC3339)
			default:
				row[i] = fmt.Sprint(v)
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ImportCSV reads CSV rows from r, the first line naming the target
// columns, and inserts one record per data line. It reports the number of
// rows inserted; on failure the rows inserted so far stay in place.
func ImportCSV(m Manager, table string, r io.Reader) (int, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}

	n := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return n, fmt.Errorf("read row: %w", err)
		}
		data := make(Record, len(header))
		for i, name := range header {
			if i < len(row) {
				data[name] = row[i]
			}
		}
		if _, err := m.Insert(table, data); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
