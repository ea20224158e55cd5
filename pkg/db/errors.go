/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package db

import "errors"

var (
	// ErrConnection indicates the database could not be opened or reached.
	ErrConnection = errors.New("cannot open database")

	// ErrQuery indicates a statement failed to execute; the wrapped message
	// carries the statement text and the driver's error.
	ErrQuery = errors.New("query failed")

	// ErrNotConnected indicates a method was called before Connect or after
	// Disconnect. This is a usage error, not a transient condition.
	ErrNotConnected = errors.New("database is not connected")

	// ErrInvalidIdentifier indicates a table or column name failed the
	// allow-list check and was refused before reaching the database.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrInvalidColumnType indicates a column type/constraint string in a
	// CreateTable mapping contained characters outside the allow-list.
	ErrInvalidColumnType = errors.New("invalid column type")

	// ErrEmptyData indicates an Insert or Update was called with no values.
	ErrEmptyData = errors.New("no values given")

	// ErrEmptyWhere indicates an Update or Delete was called without
	// conditions; whole-table statements must go through Exec explicitly.
	ErrEmptyWhere = errors.New("no where conditions given")
)
