/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package db provides managed access to SQLite, MySQL and PostgreSQL
// databases behind one Manager interface: an explicit Connect/Disconnect
// lifecycle, raw parameterized statements, and mapping-based helpers for
// table creation and CRUD.
//
// Values are always bound through driver placeholders, never formatted
// into SQL text. Identifiers (table and column names) cannot be bound by
// the drivers, so every helper validates them against a strict allow-list
// before they reach a statement; see ValidIdentifier.
//
// A Manager owns its connection exclusively and performs no internal
// locking. Methods other than Connect and Disconnect require an open
// connection and return ErrNotConnected otherwise.
package db
