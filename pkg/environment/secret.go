/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package environment

import "github.com/zalando/go-keyring"

// DefaultService is the keyring service name for library secrets.
const DefaultService = "aderlee"

// masterKeyName is the keyring entry holding the master key.
const masterKeyName = "security"

// Function-var indirection over go-keyring so tests can stub the OS keychain.
var (
	keyringGet    = keyring.Get
	keyringSet    = keyring.Set
	keyringDelete = keyring.Delete
)

// SecretStore reads and writes named secrets in the OS keyring.
type SecretStore struct {
	Service string
}

// NewSecretStore returns a store scoped to the default service name.
func NewSecretStore() *SecretStore { return &SecretStore{Service: DefaultService} }

// Get retrieves the named secret.
func (s *SecretStore) Get(name string) (string, error) {
	return keyringGet(s.Service, name)
}

// Set stores the named secret.
func (s *SecretStore) Set(name, value string) error {
	return keyringSet(s.Service, name, value)
}

// Delete removes the named secret.
func (s *SecretStore) Delete(name string) error {
	return keyringDelete(s.Service, name)
}

// SetMasterKey persists the master key in the OS keyring so processes can
// run without ADERLEE_SECURITY in their environment.
func SetMasterKey(value string) error {
	return NewSecretStore().Set(masterKeyName, value)
}

// DeleteMasterKey removes the stored master key.
func DeleteMasterKey() error {
	return NewSecretStore().Delete(masterKeyName)
}
