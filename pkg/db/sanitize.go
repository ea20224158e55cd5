/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package db

import "fmt"

// maxIdentifier caps identifier length well below every backend's limit
// (SQLite is effectively unlimited, MySQL allows 64, PostgreSQL 63).
const maxIdentifier = 63

// ValidIdentifier checks a table or column name against the allow-list
// [A-Za-z_][A-Za-z0-9_]*. Drivers cannot bind identifiers as parameters, so
// everything interpolated into SQL text must pass this check first. Names
// are rejected, never rewritten.
func ValidIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidIdentifier)
	}
	if len(name) > maxIdentifier {
		return fmt.Errorf("%w: %q exceeds %d characters", ErrInvalidIdentifier, name, maxIdentifier)
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return fmt.Errorf("%w: %q starts with a digit", ErrInvalidIdentifier, name)
			}
		default:
			return fmt.Errorf("%w: %q contains %q", ErrInvalidIdentifier, name, string(c))
		}
	}
	return nil
}

// validColumnType checks a type/constraint fragment for CreateTable, e.g.
// "INTEGER PRIMARY KEY" or "VARCHAR(255) NOT NULL". Allowed characters are
// letters, digits, underscores, spaces, parentheses and commas; quotes,
// semicolons and comment markers never pass.
func validColumnType(typ string) error {
	if typ == "" {
		return fmt.Errorf("%w: empty type", ErrInvalidColumnType)
	}
	c := typ[0]
	if !(c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
		return fmt.Errorf("%w: %q must start with a letter", ErrInvalidColumnType, typ)
	}
	for i := 0; i < len(typ); i++ {
		switch c := typ[i]; {
		case c == '_', c == ' ', c == '(', c == ')', c == ',',
			c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		default:
			return fmt.Errorf("%w: %q contains %q", ErrInvalidColumnType, typ, string(typ[i]))
		}
	}
	return nil
}
