/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package environment loads dotenv files and resolves environment variables
// whose values are obfuscated with the securedata codec. The per-variable
// key material is the master key concatenated with the variable name, so a
// leaked value cannot be replayed under another name.
package environment

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	applog "aderlee/internal/log"
	"aderlee/pkg/securedata"
)

// MasterKeyEnv names the environment variable holding the master key.
const MasterKeyEnv = "ADERLEE_SECURITY"

// Load reads a dotenv file and sets the variables it defines. Lines are
// KEY=VALUE pairs; blank lines and #-comments are skipped, a leading
// "export " is tolerated, and matching surrounding quotes are stripped.
// Variables already present in the environment are left untouched.
func Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open env file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	l := applog.WithOperation(applog.WithComponent("environment"), "load")
	loaded := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		value = unquote(strings.TrimSpace(value))
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
		loaded++
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read env file %s: %w", path, err)
	}
	l.Debug("env file loaded", slog.String("path", path), slog.Int("vars", loaded))
	return nil
}

// Decode returns the value of the named environment variable, transparently
// decoding obfuscated values. The boolean reports whether the variable is
// set at all. Values that are not recognized as encoded come back verbatim.
func Decode(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	if value == "" {
		return "", true
	}
	keys := make([]string, 0, 2)
	if master := MasterKey(); master != "" {
		keys = append(keys, master)
	}
	keys = append(keys, key)
	codec, err := securedata.New(keys...)
	if err != nil {
		return value, true
	}
	if codec.IsEncoded(value) {
		plain, err := codec.Decode(value)
		if err == nil {
			return plain, true
		}
	}
	return value, true
}

// MasterKey resolves the master key: the ADERLEE_SECURITY variable when set,
// otherwise the OS keyring entry. Empty when neither source has it.
func MasterKey() string {
	if v := os.Getenv(MasterKeyEnv); v != "" {
		return v
	}
	if v, err := NewSecretStore().Get(masterKeyName); err == nil {
		return v
	}
	return ""
}

// unquote strips one pair of matching surrounding quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
