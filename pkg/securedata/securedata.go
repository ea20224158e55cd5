/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package securedata implements the checksum-prefixed XOR obfuscation codec
// used for environment variable values. The format: the plaintext is
// Base64-encoded, a one-byte checksum (sum of the Base64 bytes mod 256) is
// emitted as two hex digits, and each Base64 byte is XORed with the
// corresponding byte of the SHA-512 hex digest of the key material, hex
// encoded pairwise.
//
// This is obfuscation, not encryption; it keeps secrets out of casual sight
// in .env files but must not be relied on against a determined attacker.
package securedata

import (
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// DefaultKey is used when no key material is supplied.
const DefaultKey = "KhaledKarman"

// Sentinel errors returned by Decode.
var (
	// ErrInvalidFormat is returned when the input does not have the
	// checksum-plus-hex-pairs shape.
	ErrInvalidFormat = errors.New("encoded data is not valid")

	// ErrChecksum is returned when the embedded checksum does not match,
	// which signals a wrong key or corrupted data.
	ErrChecksum = errors.New("incorrect key or corrupted data")
)

// Codec encodes and decodes strings under a fixed key.
type Codec struct {
	// secret is the SHA-512 hex digest of the concatenated key material.
	// The XOR key stream is the digest's ASCII bytes, repeated.
	secret string
}

// New builds a Codec from one or more secret keys. The keys are concatenated
// and hashed; with no arguments DefaultKey is used. Empty key strings are
// rejected.
func New(keys ...string) (*Codec, error) {
	if len(keys) == 0 {
		keys = []string{DefaultKey}
	}
	var combined strings.Builder
	for _, k := range keys {
		if k == "" {
			return nil, errors.New("secret key must be a non-empty string")
		}
		combined.WriteString(k)
	}
	sum := sha512.Sum512([]byte(combined.String()))
	return &Codec{secret: hex.EncodeToString(sum[:])}, nil
}

// Encode obfuscates plain and returns the hex-encoded result with its
// two-digit checksum prefix.
func (c *Codec) Encode(plain string) string {
	b64 := base64.StdEncoding.EncodeToString([]byte(plain))

	var checksum int
	for i := 0; i < len(b64); i++ {
		checksum += int(b64[i])
	}
	checksum %= 256

	var out strings.Builder
	out.Grow(2 + 2*len(b64))
	fmt.Fprintf(&out, "%02x", checksum)
	for i := 0; i < len(b64); i++ {
		fmt.Fprintf(&out, "%02x", b64[i]^c.secret[i%len(c.secret)])
	}
	return out.String()
}

// Decode reverses Encode. It fails with ErrInvalidFormat on malformed input
// and ErrChecksum when the checksum does not verify, meaning the key is
// wrong or the data was altered.
func (c *Codec) Decode(encoded string) (string, error) {
	if len(encoded) < 2 || len(encoded)%2 != 0 {
		return "", ErrInvalidFormat
	}
	raw, err := hex.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	stored := int(raw[0])
	data := raw[1:]

	b64 := make([]byte, len(data))
	var checksum int
	for i, b := range data {
		b64[i] = b ^ c.secret[i%len(c.secret)]
		checksum += int(b64[i])
	}
	if checksum%256 != stored {
		return "", ErrChecksum
	}

	plain, err := base64.StdEncoding.DecodeString(string(b64))
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}
	return string(plain), nil
}

// IsEncoded reports whether s appears to be output of Encode under this
// Codec's key: hex shape plus a successful decode.
func (c *Codec) IsEncoded(s string) bool {
	if len(s) < 2 || len(s)%2 != 0 {
		return false
	}
	if _, err := hex.DecodeString(s); err != nil {
		return false
	}
	_, err := c.Decode(s)
	return err == nil
}
