/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package environment

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"aderlee/pkg/securedata"
)

// stubKeyring swaps the OS keyring for an in-memory map for the duration of
// a test.
func stubKeyring(t *testing.T) map[string]string {
	t.Helper()
	store := map[string]string{}
	origGet, origSet, origDelete := keyringGet, keyringSet, keyringDelete
	keyringGet = func(service, name string) (string, error) {
		v, ok := store[service+"/"+name]
		if !ok {
			return "", errors.New("secret not found")
		}
		return v, nil
	}
	keyringSet = func(service, name, value string) error {
		store[service+"/"+name] = value
		return nil
	}
	keyringDelete = func(service, name string) error {
		delete(store, service+"/"+name)
		return nil
	}
	t.Cleanup(func() {
		keyringGet, keyringSet, keyringDelete = origGet, origSet, origDelete
	})
	return store
}

func TestLoadSetsVariables(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "# comment line\n" +
		"export ADERLEE_TEST_EXPORTED=exported\n" +
		"ADERLEE_TEST_PLAIN=value\n" +
		"ADERLEE_TEST_QUOTED=\"has spaces\"\n" +
		"ADERLEE_TEST_SINGLE='single'\n" +
		"ADERLEE_TEST_EMPTY=\n" +
		"not a key value line\n" +
		"ADERLEE_TEST_PRESET=from_file\n"
	if err := os.WriteFile(envPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	for _, k := range []string{
		"ADERLEE_TEST_EXPORTED", "ADERLEE_TEST_PLAIN", "ADERLEE_TEST_QUOTED",
		"ADERLEE_TEST_SINGLE", "ADERLEE_TEST_EMPTY",
	} {
		key := k
		t.Cleanup(func() { _ = os.Unsetenv(key) })
	}
	t.Setenv("ADERLEE_TEST_PRESET", "original")

	if err := Load(envPath); err != nil {
		t.Fatalf("Load error: %v", err)
	}

	checks := map[string]string{
		"ADERLEE_TEST_EXPORTED": "exported",
		"ADERLEE_TEST_PLAIN":    "value",
		"ADERLEE_TEST_QUOTED":   "has spaces",
		"ADERLEE_TEST_SINGLE":   "single",
		"ADERLEE_TEST_EMPTY":    "",
	}
	for k, want := range checks {
		if got := os.Getenv(k); got != want {
			t.Fatalf("%s = %q, want %q", k, got, want)
		}
	}
	// preexisting variables win over the file
	if got := os.Getenv("ADERLEE_TEST_PRESET"); got != "original" {
		t.Fatalf("preset variable overridden: %q", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	err := Load(filepath.Join(t.TempDir(), "absent.env"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestDecodePassthroughAndMissing(t *testing.T) {
	stubKeyring(t)
	t.Setenv(MasterKeyEnv, "")

	t.Setenv("ADERLEE_TEST_RAW", "just a value")
	if got, ok := Decode("ADERLEE_TEST_RAW"); !ok || got != "just a value" {
		t.Fatalf("Decode raw mismatch: %q %v", got, ok)
	}

	t.Setenv("ADERLEE_TEST_BLANK", "")
	if got, ok := Decode("ADERLEE_TEST_BLANK"); !ok || got != "" {
		t.Fatalf("Decode blank mismatch: %q %v", got, ok)
	}

	if _, ok := Decode("ADERLEE_TEST_DEFINITELY_UNSET"); ok {
		t.Fatalf("unset variable should report absent")
	}
}

func TestDecodeObfuscatedValue(t *testing.T) {
	stubKeyring(t)
	t.Setenv(MasterKeyEnv, "master-key")

	codec, err := securedata.New("master-key", "ADERLEE_TEST_SECRET")
	if err != nil {
		t.Fatalf("securedata.New error: %v", err)
	}
	t.Setenv("ADERLEE_TEST_SECRET", codec.Encode("s3cret"))

	got, ok := Decode("ADERLEE_TEST_SECRET")
	if !ok || got != "s3cret" {
		t.Fatalf("Decode mismatch: %q %v", got, ok)
	}
}

func TestDecodeWithoutMasterKey(t *testing.T) {
	stubKeyring(t)
	t.Setenv(MasterKeyEnv, "")

	codec, err := securedata.New("ADERLEE_TEST_ONLYNAME")
	if err != nil {
		t.Fatalf("securedata.New error: %v", err)
	}
	t.Setenv("ADERLEE_TEST_ONLYNAME", codec.Encode("plain"))

	got, ok := Decode("ADERLEE_TEST_ONLYNAME")
	if !ok || got != "plain" {
		t.Fatalf("Decode mismatch: %q %v", got, ok)
	}
}

func TestMasterKeyFromKeyring(t *testing.T) {
	store := stubKeyring(t)
	t.Setenv(MasterKeyEnv, "")
	store[DefaultService+"/"+masterKeyName] = "vault-key"

	if got := MasterKey(); got != "vault-key" {
		t.Fatalf("MasterKey = %q, want vault-key", got)
	}
}

func TestSecretStoreRoundTrip(t *testing.T) {
	stubKeyring(t)
	s := NewSecretStore()
	if err := s.Set("token", "abc"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	got, err := s.Get("token")
	if err != nil || got != "abc" {
		t.Fatalf("Get mismatch: %q %v", got, err)
	}
	if err := s.Delete("token"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := s.Get("token"); err == nil {
		t.Fatalf("Get after Delete should fail")
	}
}
