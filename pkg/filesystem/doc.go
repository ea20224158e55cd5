/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package filesystem provides base-path-anchored synchronous file I/O.
// Relative paths resolve against the base directory fixed at construction;
// absolute paths pass through unchanged. JSON and CSV helpers delegate to
// the encoder package. Writes replace files transactionally (temp file plus
// rename) and create missing parent directories; timestamped backups are
// available for files that must survive a bad overwrite.
package filesystem
