// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ibe

import (
	"io"

	"v.io/x/aibe/dlog"
	"v.io/x/aibe/group"
)

// GenerateKey creates a master key pair using randomness from rand.
func GenerateKey(rand io.Reader) (*MasterKeyPair, error) {
	msk, err := group.RandomScalar(rand)
	if err != nil {
		return nil, err
	}
	return &MasterKeyPair{Secret: msk, Public: MasterPublicKey(msk)}, nil
}

// MasterPublicKey returns g1^msk.
func MasterPublicKey(msk group.Scalar) group.G1 {
	return group.G1BaseMul(msk)
}

// HashID returns H(id), the image of an identity in G2.
func HashID(id string) group.G2 {
	return group.HashToG2([]byte(id))
}

// Extract derives the identity key for id.
func Extract(id string, msk group.Scalar) IdSecretKey {
	return IdSecretKey{ID: id, Key: HashID(id).Mul(msk)}
}

// Extract derives the identity key for id under m.
func (m *MasterKeyPair) Extract(id string) IdSecretKey {
	return Extract(id, m.Secret)
}

// Encrypt encrypts msg for id under mpk with fresh randomness from rand.
func Encrypt(rand io.Reader, msg group.Scalar, id string, mpk group.G1) (CipherText, error) {
	r, err := group.RandomScalar(rand)
	if err != nil {
		return CipherText{}, err
	}
	return EncryptWithRandomness(msg, id, mpk, r), nil
}

// EncryptWithRandomness encrypts msg for id under mpk with the given r.
// Reusing r across ciphertexts links them; callers must supply fresh,
// uniformly random values unless a correlation is intended.
func EncryptWithRandomness(msg group.Scalar, id string, mpk group.G1, r group.Scalar) CipherText {
	// c1 = g1^r, c2 = e(g1,g2)^msg · e(mpk, H(id))^r
	c1 := group.G1BaseMul(r)
	c2 := group.GTBaseExp(msg).Mul(group.Pair(mpk, HashID(id)).Exp(r))
	return CipherText{C1: c1, C2: c2}
}

// EncryptCorrelated encrypts msg for two (identity, mpk) pairs with one
// shared randomness r, so both ciphertexts carry the same c1.
func EncryptCorrelated(rand io.Reader, msg group.Scalar, ids [2]string, mpks [2]group.G1) (*Correlated, error) {
	r, err := group.RandomScalar(rand)
	if err != nil {
		return nil, err
	}
	var (
		ret = &Correlated{R: r}
		c1  = group.G1BaseMul(r)
		gm  = group.GTBaseExp(msg)
	)
	for i := range ids {
		h := HashID(ids[i])
		ret.HashedIDs[i] = h
		ret.Ciphers[i] = CipherText{C1: c1, C2: gm.Mul(group.Pair(mpks[i], h.Mul(r)))}
	}
	return ret, nil
}

// AddCiphers returns a ciphertext of the sum of the plaintexts of a and b.
// The result only decrypts if a and b were encrypted to the same identity
// under the same mpk.
func AddCiphers(a, b CipherText) CipherText {
	return CipherText{C1: a.C1.Add(b.C1), C2: a.C2.Mul(b.C2)}
}

// SubCiphers returns a ciphertext of the difference of the plaintexts of a
// and b.
func SubCiphers(a, b CipherText) (CipherText, error) {
	c2, err := a.C2.Div(b.C2)
	if err != nil {
		return CipherText{}, ErrGtInverse
	}
	return CipherText{C1: a.C1.Sub(b.C1), C2: c2}, nil
}

// PublicAmount returns the encryption of m with zero randomness,
// (1, e(g1,g2)^m). It is a valid ciphertext under every identity and is
// used to apply public deposits and withdrawals to encrypted balances.
func PublicAmount(m group.Scalar) CipherText {
	return CipherText{C1: group.G1Identity(), C2: group.GTBaseExp(m)}
}

// ZeroCipher returns the encryption of 0 with randomness 1 for the identity
// whose PkID is pkID: (g1, pkID).
func ZeroCipher(pkID group.GT) CipherText {
	return CipherText{C1: group.G1Generator(), C2: pkID}
}

// Decrypt recovers the plaintext of ct, which must lie in [0, bound).
func Decrypt(ct CipherText, sk IdSecretKey, bound uint64) (group.Scalar, error) {
	return DecryptWithTable(ct, sk, dlog.NewTable(group.GTBase(), bound))
}

// DecryptWithTable is Decrypt with a precomputed table for base
// e(g1, g2), for callers decrypting many ciphertexts under one bound.
func DecryptWithTable(ct CipherText, sk IdSecretKey, table *dlog.Table) (group.Scalar, error) {
	mask, err := group.Pair(ct.C1, sk.Key).Inverse()
	if err != nil {
		return group.Scalar{}, ErrGtInverse
	}
	// masked = c2 · e(c1, sk)^-1 = e(g1,g2)^msg
	return table.Solve(ct.C2.Mul(mask))
}

// PkID returns e(mpk, H(id)), the per-identity pairing that every
// ciphertext for id is built from.
func PkID(mpk group.G1, id string) group.GT {
	return group.Pair(mpk, HashID(id))
}
