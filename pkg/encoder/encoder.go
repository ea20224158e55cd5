/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package encoder converts between in-memory structured data and textual
// serialization formats (JSON, CSV). All functions are pure and stateless;
// the package holds no configuration beyond per-call arguments.
package encoder

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Record is a single mapping of field name to scalar value, analogous to
// one CSV row or one JSON object. It is a type alias so values flow freely
// between packages without conversion.
type Record = map[string]any

// Dataset is an ordered collection of Records sharing a logical schema.
type Dataset = []Record

// jsonIndent is the indentation unit for ToJSON output.
const jsonIndent = "    "

// ToJSON serializes v (a Record, Dataset, or any JSON-compatible structure)
// to indented JSON text. Map keys are emitted in sorted order, the stable
// ordering the standard encoder guarantees. Values that have no JSON
// representation (functions, channels, cyclic structures) fail with an error
// satisfying errors.Is(err, ErrSerialize).
func ToJSON(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", jsonIndent)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSerialize, err)
	}
	return string(b), nil
}

// FromJSON parses JSON text into the caller-provided target, typically a
// *Record, *Dataset, or a pointer to a plain any for arbitrary structures.
// Malformed input fails with an error satisfying errors.Is(err, ErrParse),
// carrying the byte offset of the problem when the parser reports one.
func FromJSON(text string, v any) error {
	if err := json.Unmarshal([]byte(text), v); err != nil {
		if off, ok := errorOffset(err); ok {
			return fmt.Errorf("%w at offset %d: %v", ErrParse, off, err)
		}
		return fmt.Errorf("%w: %v", ErrParse, err)
	}
	return nil
}

// errorOffset extracts the input position from stdlib JSON errors.
func errorOffset(err error) (int64, bool) {
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		return syn.Offset, true
	}
	var typ *json.UnmarshalTypeError
	if errors.As(err, &typ) {
		return typ.Offset, true
	}
	return 0, false
}
