// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ibe implements the Boneh-Franklin identity-based encryption scheme
// with plaintexts in the exponent, which makes ciphertexts additively
// homomorphic.
//
// The construction follows "Identity-Based Encryption from the Weil Pairing"
// by Dan Boneh and Matthew Franklin
// (http://crypto.stanford.edu/~dabo/papers/bfibe.pdf), with the mask applied
// multiplicatively in GT instead of by XOR:
//
// (1) GenerateKey: msk is a random scalar and mpk = g1^msk.
//
// (2) Extract: the identity key is sk_id = H(id)^msk, where H maps identity
// strings into G2.
//
// (3) Encrypt: for a random r, c1 = g1^r and
// c2 = e(g1, g2)^msg · e(mpk, H(id))^r.
//
// (4) Decrypt: c2 · e(c1, sk_id)^-1 = e(g1, g2)^msg, from which msg is
// recovered by a bounded discrete log search. Plaintexts must therefore lie
// in [0, bound) for a bound chosen by the caller.
//
// Ciphertexts for the same identity multiply component-wise to an
// encryption of the sum of their plaintexts (AddCiphers).
//
// Group notation in the comments is multiplicative; the group package
// writes G1 and G2 additively, so g1^r is group.G1BaseMul(r).
package ibe

import (
	"errors"

	"v.io/x/aibe/dlog"
	"v.io/x/aibe/group"
)

var (
	// ErrGtInverse is returned by Decrypt if the pairing of the ciphertext
	// with the identity key has no inverse. It is not expected for any
	// well-formed input.
	ErrGtInverse = errors.New("ibe: pairing result is not invertible")
	// ErrOutOfBound is returned by Decrypt when the plaintext is not in
	// [0, bound), or the key does not match the ciphertext.
	ErrOutOfBound = dlog.ErrOutOfBound
)

// MasterKeyPair is the key pair of a key-issuing authority.
type MasterKeyPair struct {
	Secret group.Scalar // msk, never leaves the authority
	Public group.G1     // mpk = g1^msk
}

// IdSecretKey is the decryption key for one identity.
type IdSecretKey struct {
	ID  string
	Key group.G2 // H(ID)^msk
}

// CipherText is a BF-IBE ciphertext (c1, c2).
type CipherText struct {
	C1 group.G1
	C2 group.GT
}

// Correlated is the result of EncryptCorrelated: two ciphertexts of the
// same message sharing the randomness R, together with the hashed
// identities they were encrypted to.
type Correlated struct {
	Ciphers   [2]CipherText
	HashedIDs [2]group.G2
	R         group.Scalar
}
