/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package filesystem

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	applog "aderlee/internal/log"
	"aderlee/pkg/encoder"
)

// FileSystem anchors file operations to a base directory. The zero cost of
// construction makes it cheap to hold one per data directory. Instances are
// stateless beyond the base path but are not synchronized for concurrent
// use of the same paths.
type FileSystem struct {
	base string
	log  *slog.Logger
}

// New returns a FileSystem rooted at basePath. An empty base means the
// current working directory.
func New(basePath string) *FileSystem {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	return &FileSystem{base: basePath, log: applog.WithComponent("filesystem")}
}

// Base returns the base directory the instance was constructed with.
func (f *FileSystem) Base() string { return f.base }

// Resolve maps a name to its on-disk path: absolute names pass through,
// relative names are joined onto the base directory.
func (f *FileSystem) Resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(f.base, name)
}

// ReadFile reads the whole file as UTF-8 text. A missing path satisfies
// errors.Is(err, fs.ErrNotExist); other failures surface as wrapped I/O
// errors.
func (f *FileSystem) ReadFile(name string) (string, error) {
	path := f.Resolve(name)
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file %s: %w", path, err)
	}
	return string(b), nil
}

// WriteFile writes content to the resolved path, creating missing parent
// directories and overwriting any existing file. The replacement is
// transactional: content lands in a temp file that is renamed over the
// target.
func (f *FileSystem) WriteFile(name, content string) error {
	path := f.Resolve(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent dirs for %s: %w", path, err)
	}
	if err := replaceFile(path, []byte(content)); err != nil {
		return fmt.Errorf("write file %s: %w", path, err)
	}
	f.log.Debug("file written", slog.String("path", path), slog.Int("bytes", len(content)))
	return nil
}

// ReadJSON reads the file and parses its JSON into the caller's target.
// Failure kinds from both layers propagate: fs.ErrNotExist for a missing
// file, encoder.ErrParse for malformed content.
func (f *FileSystem) ReadJSON(name string, v any) error {
	text, err := f.ReadFile(name)
	if err != nil {
		return err
	}
	return encoder.FromJSON(text, v)
}

// WriteJSON serializes v as indented JSON and writes it with a trailing
// newline.
func (f *FileSystem) WriteJSON(name string, v any) error {
	text, err := encoder.ToJSON(v)
	if err != nil {
		return err
	}
	return f.WriteFile(name, text+"\n")
}

// ReadCSV reads the file and parses comma-delimited records.
func (f *FileSystem) ReadCSV(name string) (encoder.Dataset, error) {
	return f.ReadCSVDelim(name, ',')
}

// ReadCSVDelim is ReadCSV with an explicit delimiter.
func (f *FileSystem) ReadCSVDelim(name string, delim rune) (encoder.Dataset, error) {
	text, err := f.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return encoder.FromCSVDelim(text, delim)
}

// WriteCSV serializes the Dataset as comma-delimited text and writes it.
// Columns follow encoder.ToCSV's header rules.
func (f *FileSystem) WriteCSV(name string, ds encoder.Dataset, columns ...string) error {
	return f.WriteCSVDelim(name, ds, ',', columns...)
}

// WriteCSVDelim is WriteCSV with an explicit delimiter.
func (f *FileSystem) WriteCSVDelim(name string, ds encoder.Dataset, delim rune, columns ...string) error {
	text, err := encoder.ToCSVDelim(ds, delim, columns...)
	if err != nil {
		return err
	}
	return f.WriteFile(name, text)
}

// ListFiles returns the paths under the base directory matching a glob
// pattern, lexically sorted. An empty pattern lists everything. The result
// is recomputed on every call; nothing is cached.
func (f *FileSystem) ListFiles(pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*"
	}
	matches, err := filepath.Glob(filepath.Join(f.base, pattern))
	if err != nil {
		return nil, fmt.Errorf("list files %q: %w", pattern, err)
	}
	return matches, nil
}

// Exists reports whether the resolved path exists at call time. The answer
// is inherently racy against concurrent external modification; callers must
// tolerate TOCTOU.
func (f *FileSystem) Exists(name string) bool {
	_, err := os.Stat(f.Resolve(name))
	return err == nil
}
