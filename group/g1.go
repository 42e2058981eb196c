// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package group

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/crypto/bn256"
)

// G1 is an element of the first source group. The zero value is the
// identity.
type G1 struct {
	p   *bn256.G1
	enc []byte // bn256 (big-endian) marshaling of p
}

func newG1(p *bn256.G1) G1 {
	return G1{p: p, enc: p.Marshal()}
}

func (a G1) point() *bn256.G1 {
	if a.p == nil {
		return g1Identity.p
	}
	return a.p
}

func (a G1) raw() []byte {
	if a.p == nil {
		return g1Identity.enc
	}
	return a.enc
}

// G1Generator returns the fixed generator of G1.
func G1Generator() G1 { return g1Gen }

// G1Identity returns the identity of G1.
func G1Identity() G1 { return g1Identity }

// G1BaseMul returns G1Generator()·k.
func G1BaseMul(k Scalar) G1 {
	return newG1(new(bn256.G1).ScalarBaseMult(k.big()))
}

// RandomG1 returns G1Generator()·k for a uniformly random scalar k read
// from r.
func RandomG1(r io.Reader) (G1, error) {
	k, err := RandomScalar(r)
	if err != nil {
		return G1{}, err
	}
	return G1BaseMul(k), nil
}

// ParseG1 decodes the canonical 64-byte encoding of a G1 element.
func ParseG1(b []byte) (G1, error) {
	if len(b) != G1Size {
		return G1{}, fmt.Errorf("%w: G1 element is %d bytes, want %d", ErrInvalidEncoding, len(b), G1Size)
	}
	be := reverseWords(b)
	p := new(bn256.G1)
	if _, ok := p.Unmarshal(be); !ok {
		return G1{}, fmt.Errorf("%w: G1 point not on curve", ErrInvalidEncoding)
	}
	a := newG1(p)
	if !bytes.Equal(a.enc, be) {
		return G1{}, fmt.Errorf("%w: non-canonical G1 encoding", ErrInvalidEncoding)
	}
	return a, nil
}

// Add returns a + b.
func (a G1) Add(b G1) G1 {
	return newG1(new(bn256.G1).Add(a.point(), b.point()))
}

// Sub returns a - b.
func (a G1) Sub(b G1) G1 {
	return a.Add(b.Neg())
}

// Neg returns -a.
func (a G1) Neg() G1 {
	return newG1(new(bn256.G1).Neg(a.point()))
}

// Mul returns a·k.
func (a G1) Mul(k Scalar) G1 {
	return newG1(new(bn256.G1).ScalarMult(a.point(), k.big()))
}

// IsIdentity reports whether a is the identity.
func (a G1) IsIdentity() bool {
	return allZero(a.raw())
}

// Equal reports whether a and b are the same element.
func (a G1) Equal(b G1) bool {
	return bytes.Equal(a.raw(), b.raw())
}

// Bytes returns the canonical 64-byte encoding of a.
func (a G1) Bytes() []byte {
	return reverseWords(a.raw())
}
