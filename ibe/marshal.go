// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ibe

import (
	"fmt"

	"v.io/x/aibe/group"
)

const (
	// CipherTextSize is the size of an encoded CipherText: c1 ‖ c2.
	CipherTextSize = group.G1Size + group.GTSize
	// IdSecretKeySize is the size of an encoded identity key. The identity
	// string is not part of the encoding.
	IdSecretKeySize = group.G2Size
)

// Bytes returns the canonical encoding of ct.
func (ct CipherText) Bytes() []byte {
	return group.Concat(ct.C1, ct.C2)
}

// ParseCipherText decodes an encoded CipherText.
func ParseCipherText(data []byte) (CipherText, error) {
	d := group.NewDecoder(data, CipherTextSize)
	ct := CipherText{
		C1: d.G1("c1"),
		C2: d.GT("c2"),
	}
	if err := d.Err(); err != nil {
		return CipherText{}, fmt.Errorf("ibe: invalid ciphertext: %w", err)
	}
	return ct, nil
}

// Bytes returns the canonical encoding of the key, without the identity.
func (sk IdSecretKey) Bytes() []byte {
	return sk.Key.Bytes()
}

// ParseIdSecretKey decodes the key for id from data.
func ParseIdSecretKey(id string, data []byte) (IdSecretKey, error) {
	k, err := group.ParseG2(data)
	if err != nil {
		return IdSecretKey{}, fmt.Errorf("ibe: invalid identity key: %w", err)
	}
	return IdSecretKey{ID: id, Key: k}, nil
}

// ParseMasterKeyPair decodes an encoded master secret and derives the
// public key.
func ParseMasterKeyPair(data []byte) (*MasterKeyPair, error) {
	msk, err := group.ParseScalar(data)
	if err != nil {
		return nil, fmt.Errorf("ibe: invalid master secret: %w", err)
	}
	return &MasterKeyPair{Secret: msk, Public: MasterPublicKey(msk)}, nil
}
