// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package group binds the pairing-friendly group triple (G1, G2, GT) and its
// scalar field used by the ibe and zk packages.
//
// The implementation is backed by golang.org/x/crypto/bn256. That package
// uses additive notation for all three groups; this package keeps additive
// notation for G1 and G2 and exposes GT multiplicatively (Mul, Exp,
// Inverse), which is how the BF-IBE and Sigma-protocol literature writes it.
//
// Every value has a canonical, fixed-width, little-endian encoding:
//
//	Scalar  32 bytes
//	G1      64 bytes  (x, y)
//	G2     128 bytes  (x.x, x.y, y.x, y.y)
//	GT     384 bytes  (12 base field words)
//
// Each 256-bit word is written least significant byte first. The identity
// of G1 and G2 encodes as all zeros. Two mathematically equal values always
// produce identical bytes, so encodings may be hashed (Fiat-Shamir) and used
// as map keys (discrete-log tables).
//
// Values are immutable. Each group element computes its encoding when it is
// constructed and is never modified afterwards, which makes all values safe
// to share between goroutines.
package group

import (
	"errors"
	"io"
	"math/big"

	"golang.org/x/crypto/bn256"
)

const (
	wordSize = 32

	// ScalarSize is the encoded size of a Scalar.
	ScalarSize = wordSize
	// G1Size is the encoded size of a G1 element.
	G1Size = 2 * wordSize
	// G2Size is the encoded size of a G2 element.
	G2Size = 4 * wordSize
	// GTSize is the encoded size of a GT element.
	GTSize = 12 * wordSize
)

var (
	// ErrInvalidEncoding is returned when bytes do not hold the canonical
	// encoding of a value of the requested type.
	ErrInvalidEncoding = errors.New("group: invalid encoding")
	// ErrNilRand is returned when a sampling function is given no
	// randomness source.
	ErrNilRand = errors.New("group: nil randomness source")
	// ErrNotInvertible is returned when a GT element has no inverse in the
	// target group.
	ErrNotInvertible = errors.New("group: GT element is not invertible")
)

// Order returns the order n shared by G1, G2 and GT. The returned value is
// a fresh copy.
func Order() *big.Int {
	return new(big.Int).Set(bn256.Order)
}

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)

	g1Gen      = newG1(new(bn256.G1).ScalarBaseMult(bigOne))
	g1Identity = newG1(new(bn256.G1).ScalarBaseMult(bigZero))
	g2Gen      = newG2(new(bn256.G2).ScalarBaseMult(bigOne))
	g2Identity = newG2(new(bn256.G2).ScalarBaseMult(bigZero))
	gtBase     = newGT(bn256.Pair(g1Gen.p, g2Gen.p))
	gtIdentity = newGT(new(bn256.GT).ScalarMult(gtBase.p, bigZero))
)

// reverseWords returns a copy of b with every 32-byte word byte-reversed.
// It converts between bn256's big-endian words and the little-endian
// canonical encoding; it is its own inverse.
func reverseWords(b []byte) []byte {
	out := make([]byte, len(b))
	for w := 0; w+wordSize <= len(b); w += wordSize {
		for i := 0; i < wordSize; i++ {
			out[w+i] = b[w+wordSize-1-i]
		}
	}
	return out
}

func allZero(b []byte) bool {
	var acc byte
	for _, v := range b {
		acc |= v
	}
	return acc == 0
}

// checkRand rejects a nil randomness source. There is deliberately no
// fallback reader.
func checkRand(r io.Reader) error {
	if r == nil {
		return ErrNilRand
	}
	return nil
}
