// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package group

import (
	"crypto/sha256"
	"math/big"
)

// HashToScalar maps msg to a scalar: the SHA-256 digest of msg, read as a
// big-endian integer and reduced modulo n.
func HashToScalar(msg []byte) Scalar {
	h := sha256.Sum256(msg)
	return newScalar(new(big.Int).SetBytes(h[:]))
}

// HashToG2 maps msg into G2 as G2Generator()·HashToScalar(msg).
//
// The discrete log of the result is public, so this is not a hash onto the
// curve in the random-oracle sense. It matches the identity map used by
// existing ciphertexts and proofs, and must not be changed.
func HashToG2(msg []byte) G2 {
	return G2BaseMul(HashToScalar(msg))
}

// Concat returns the concatenation of the canonical encodings of the given
// values, in order.
func Concat(vals ...Encoder) []byte {
	n := 0
	for _, v := range vals {
		n += v.Size()
	}
	out := make([]byte, 0, n)
	for _, v := range vals {
		out = append(out, v.Bytes()...)
	}
	return out
}

// Encoder is implemented by Scalar, G1, G2 and GT.
type Encoder interface {
	Bytes() []byte
	Size() int
}

// Size returns ScalarSize.
func (Scalar) Size() int { return ScalarSize }

// Size returns G1Size.
func (G1) Size() int { return G1Size }

// Size returns G2Size.
func (G2) Size() int { return G2Size }

// Size returns GTSize.
func (GT) Size() int { return GTSize }
