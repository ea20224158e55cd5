/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package db

import (
	"errors"
	"strings"
	"testing"
)

func TestValidIdentifierAccepts(t *testing.T) {
	for _, name := range []string{"users", "_tmp", "Users2", "a_b_c", "A", "order_items"} {
		if err := ValidIdentifier(name); err != nil {
			t.Fatalf("ValidIdentifier(%q) = %v, want nil", name, err)
		}
	}
}

func TestValidIdentifierRejects(t *testing.T) {
	bad := []string{
		"",
		"1abc",
		"users; DROP TABLE x",
		"users--",
		"na me",
		`tab"le`,
		"back`tick",
		"a.b",
		"café",
		"col'umn",
		strings.Repeat("x", maxIdentifier+1),
	}
	for _, name := range bad {
		if err := ValidIdentifier(name); !errors.Is(err, ErrInvalidIdentifier) {
			t.Fatalf("ValidIdentifier(%q) = %v, want ErrInvalidIdentifier", name, err)
		}
	}
}

func TestValidColumnTypeAccepts(t *testing.T) {
	good := []string{
		"INTEGER",
		"INTEGER PRIMARY KEY",
		"TEXT NOT NULL",
		"VARCHAR(255)",
		"NUMERIC(10,2)",
		"ANY",
		"INTEGER REFERENCES parent(id)",
	}
	for _, typ := range good {
		if err := validColumnType(typ); err != nil {
			t.Fatalf("validColumnType(%q) = %v, want nil", typ, err)
		}
	}
}

func TestValidColumnTypeRejects(t *testing.T) {
	bad := []string{
		"",
		"TEXT; DROP TABLE x",
		"TEXT DEFAULT 'x'",
		"TEXT -- comment",
		`TEXT CHECK(name = "x")`,
		"(255)",
	}
	for _, typ := range bad {
		if err := validColumnType(typ); !errors.Is(err, ErrInvalidColumnType) {
			t.Fatalf("validColumnType(%q) = %v, want ErrInvalidColumnType", typ, err)
		}
	}
}
