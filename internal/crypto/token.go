// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// TokenBytes is the entropy of generated tokens: 32 bytes = 256 bits,
// 64 hex characters.
const TokenBytes = 32

type randomTokenGenerator struct {
	rand io.Reader
}

// NewTokenGenerator returns a [TokenGenerator] backed by the OS CSPRNG.
func NewTokenGenerator() TokenGenerator {
	return &randomTokenGenerator{rand: rand.Reader}
}

// Generate implements [TokenGenerator].
func (g *randomTokenGenerator) Generate() (string, error) {
	b := make([]byte, TokenBytes)
	if _, err := io.ReadFull(g.rand, b); err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
