/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package encoder

import "errors"

// Sentinel errors returned by conversion operations.
var (
	// ErrSerialize is returned when a value cannot be represented in the
	// target format.
	ErrSerialize = errors.New("value cannot be serialized")

	// ErrParse is returned when input text is malformed for its format.
	ErrParse = errors.New("malformed input")

	// ErrSchema is returned when a document is well-formed JSON but does
	// not conform to the supplied JSON Schema.
	ErrSchema = errors.New("document does not conform to schema")
)
