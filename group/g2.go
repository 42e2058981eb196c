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

// G2 is an element of the second source group. The zero value is the
// identity.
type G2 struct {
	p   *bn256.G2
	enc []byte
}

func newG2(p *bn256.G2) G2 {
	return G2{p: p, enc: p.Marshal()}
}

func (a G2) point() *bn256.G2 {
	if a.p == nil {
		return g2Identity.p
	}
	return a.p
}

func (a G2) raw() []byte {
	if a.p == nil {
		return g2Identity.enc
	}
	return a.enc
}

// G2Generator returns the fixed generator of G2.
func G2Generator() G2 { return g2Gen }

// G2Identity returns the identity of G2.
func G2Identity() G2 { return g2Identity }

// G2BaseMul returns G2Generator()·k.
func G2BaseMul(k Scalar) G2 {
	return newG2(new(bn256.G2).ScalarBaseMult(k.big()))
}

// RandomG2 returns G2Generator()·k for a uniformly random scalar k read
// from r.
func RandomG2(r io.Reader) (G2, error) {
	k, err := RandomScalar(r)
	if err != nil {
		return G2{}, err
	}
	return G2BaseMul(k), nil
}

// ParseG2 decodes the canonical 128-byte encoding of a G2 element. Points
// on the twist but outside the order-n subgroup are rejected.
func ParseG2(b []byte) (G2, error) {
	if len(b) != G2Size {
		return G2{}, fmt.Errorf("%w: G2 element is %d bytes, want %d", ErrInvalidEncoding, len(b), G2Size)
	}
	be := reverseWords(b)
	p := new(bn256.G2)
	if _, ok := p.Unmarshal(be); !ok {
		return G2{}, fmt.Errorf("%w: G2 point not on curve", ErrInvalidEncoding)
	}
	a := newG2(p)
	if !bytes.Equal(a.enc, be) {
		return G2{}, fmt.Errorf("%w: non-canonical G2 encoding", ErrInvalidEncoding)
	}
	if !allZero(new(bn256.G2).ScalarMult(p, bn256.Order).Marshal()) {
		return G2{}, fmt.Errorf("%w: G2 point outside prime-order subgroup", ErrInvalidEncoding)
	}
	return a, nil
}

// Add returns a + b.
func (a G2) Add(b G2) G2 {
	return newG2(new(bn256.G2).Add(a.point(), b.point()))
}

// Mul returns a·k.
func (a G2) Mul(k Scalar) G2 {
	return newG2(new(bn256.G2).ScalarMult(a.point(), k.big()))
}

// IsIdentity reports whether a is the identity.
func (a G2) IsIdentity() bool {
	return allZero(a.raw())
}

// Equal reports whether a and b are the same element.
func (a G2) Equal(b G2) bool {
	return bytes.Equal(a.raw(), b.raw())
}

// Bytes returns the canonical 128-byte encoding of a.
func (a G2) Bytes() []byte {
	return reverseWords(a.raw())
}
