// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto holds the server-side credential primitives: salted
// password hashing and random bearer-token generation.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// PasswordHasher turns plaintext passwords into salted hashes and verifies
// plaintext attempts against a stored hash.
type PasswordHasher interface {
	// Hash derives a key from plaintext and a fresh random salt and returns
	// the stored form "<hex key>.<hex salt>".
	Hash(plaintext string) (string, error)

	// Verify re-derives the key from plaintext and the salt embedded in
	// stored and compares it in constant time. A malformed stored value
	// never verifies.
	Verify(plaintext, stored string) bool
}

// TokenGenerator produces unguessable bearer tokens (session ids, reset
// tokens).
type TokenGenerator interface {
	Generate() (string, error)
}
