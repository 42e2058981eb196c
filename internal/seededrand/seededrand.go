// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package seededrand provides a deterministic io.Reader producing the
// ChaCha20 keystream of a 32-byte seed. It is for reproducible command
// runs and tests; production key generation reads crypto/rand.
package seededrand

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/chacha20"
)

// SeedSize is the size of a seed in bytes.
const SeedSize = chacha20.KeySize

// Reader is a deterministic stream of bytes. It is not safe for concurrent
// use.
type Reader struct {
	c *chacha20.Cipher
}

// New returns a Reader over the keystream keyed by seed.
func New(seed []byte) (*Reader, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("seededrand: seed is %d bytes, want %d", len(seed), SeedSize)
	}
	c, err := chacha20.NewUnauthenticatedCipher(seed, make([]byte, chacha20.NonceSize))
	if err != nil {
		return nil, err
	}
	return &Reader{c: c}, nil
}

// FromString derives a seed from an arbitrary label. Tests use it to get
// independent but reproducible streams.
func FromString(label string) *Reader {
	seed := sha256.Sum256([]byte(label))
	r, err := New(seed[:])
	if err != nil {
		panic(err) // seed size is fixed
	}
	return r
}

// FromHex parses a hex-encoded 32-byte seed.
func FromHex(s string) (*Reader, error) {
	seed, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("seededrand: invalid hex seed: %w", err)
	}
	return New(seed)
}

// Read fills p with the next len(p) keystream bytes. It never fails.
func (r *Reader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	r.c.XORKeyStream(p, p)
	return len(p), nil
}
