// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

// hashDelimiter separates the hex key from the hex salt. It never occurs in
// hex output.
const hashDelimiter = "."

// ErrEmptyPassword is returned by Hash for an empty plaintext.
var ErrEmptyPassword = errors.New("password cannot be empty")

// argon2Hasher is the Argon2id implementation of [PasswordHasher].
type argon2Hasher struct {
	// Argon2id tuning parameters. Stored in the struct so they can be
	// adjusted per deployment target.
	time    uint32
	memory  uint32
	threads uint8
	keyLen  uint32
	saltLen int

	rand io.Reader
}

// NewPasswordHasher constructs a [PasswordHasher] with the Argon2id
// parameters recommended by OWASP:
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes, salt length: 16 bytes
func NewPasswordHasher() PasswordHasher {
	return &argon2Hasher{
		time:    1,
		memory:  64 * 1024, // 64 MiB
		threads: 4,
		keyLen:  32,
		saltLen: 16,
		rand:    rand.Reader,
	}
}

// NewPasswordHasherWithMemory is [NewPasswordHasher] with a custom memory
// cost in KiB. Tests use it to keep hashing cheap.
func NewPasswordHasherWithMemory(memoryKiB uint32) PasswordHasher {
	h := NewPasswordHasher().(*argon2Hasher)
	h.memory = memoryKiB
	return h
}

// Hash implements [PasswordHasher].
func (h *argon2Hasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}

	salt := make([]byte, h.saltLen)
	if _, err := io.ReadFull(h.rand, salt); err != nil {
		return "", fmt.Errorf("error generating salt: %w", err)
	}

	key := h.derive(plaintext, salt)

	return hex.EncodeToString(key) + hashDelimiter + hex.EncodeToString(salt), nil
}

// Verify implements [PasswordHasher].
func (h *argon2Hasher) Verify(plaintext, stored string) bool {
	storedKey, salt, ok := h.split(stored)
	if !ok {
		return false
	}

	return subtle.ConstantTimeCompare(h.derive(plaintext, salt), storedKey) == 1
}

func (h *argon2Hasher) derive(plaintext string, salt []byte) []byte {
	return argon2.IDKey([]byte(plaintext), salt, h.time, h.memory, h.threads, h.keyLen)
}

// split decodes the stored form, rejecting anything that is not exactly
// "<keyLen bytes hex>.<saltLen bytes hex>".
func (h *argon2Hasher) split(stored string) (key, salt []byte, ok bool) {
	parts := strings.Split(stored, hashDelimiter)
	if len(parts) != 2 {
		return nil, nil, false
	}

	key, err := hex.DecodeString(parts[0])
	if err != nil || len(key) != int(h.keyLen) {
		return nil, nil, false
	}

	salt, err = hex.DecodeString(parts[1])
	if err != nil || len(salt) != h.saltLen {
		return nil, nil, false
	}

	return key, salt, true
}
