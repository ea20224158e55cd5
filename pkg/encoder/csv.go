/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package encoder

import (
	"encoding/csv"
	"fmt"
	"sort"
	"strings"
)

// ToCSV serializes a Dataset to comma-delimited text with a header line.
// The header is taken from the explicit columns when given; otherwise it is
// the first record's keys in sorted order (maps carry no insertion order, so
// sorting is the documented deterministic choice). Missing keys and nil
// values become empty fields. Values containing the delimiter, quotes, or
// newlines are quoted per RFC 4180. An empty Dataset yields an empty string.
func ToCSV(ds Dataset, columns ...string) (string, error) {
	return ToCSVDelim(ds, ',', columns...)
}

// ToCSVDelim is ToCSV with an explicit field delimiter.
func ToCSVDelim(ds Dataset, delim rune, columns ...string) (string, error) {
	if len(ds) == 0 {
		return "", nil
	}
	cols := columns
	if len(cols) == 0 {
		cols = make([]string, 0, len(ds[0]))
		for k := range ds[0] {
			cols = append(cols, k)
		}
		sort.Strings(cols)
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Comma = delim
	if err := w.Write(cols); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSerialize, err)
	}
	row := make([]string, len(cols))
	for _, rec := range ds {
		for i, c := range cols {
			row[i] = fieldString(rec[c])
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("%w: %v", ErrSerialize, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSerialize, err)
	}
	return sb.String(), nil
}

// FromCSV parses comma-delimited text into a Dataset. The first line is the
// header; every field value remains a string (no numeric or boolean
// inference). Rows shorter than the header produce records without the
// trailing keys; extra fields beyond the header are discarded. Empty input
// or header-only input yields an empty Dataset. Malformed input (unbalanced
// quotes) fails with an error satisfying errors.Is(err, ErrParse).
func FromCSV(text string) (Dataset, error) {
	return FromCSVDelim(text, ',')
}

// FromCSVDelim is FromCSV with an explicit field delimiter.
func FromCSVDelim(text string, delim rune) (Dataset, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	// ragged rows are zipped against the header, not rejected
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if len(rows) == 0 {
		return Dataset{}, nil
	}
	header := rows[0]
	ds := make(Dataset, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			}
		}
		ds = append(ds, rec)
	}
	return ds, nil
}

// fieldString renders a scalar for CSV output. nil becomes the empty string.
func fieldString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(v)
	}
}
