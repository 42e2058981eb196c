// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package group

import (
	"bytes"
	"fmt"

	"golang.org/x/crypto/bn256"
)

// GT is an element of the pairing target group, written multiplicatively.
// The zero value is the identity 1.
type GT struct {
	p   *bn256.GT
	enc []byte
}

func newGT(p *bn256.GT) GT {
	return GT{p: p, enc: p.Marshal()}
}

func (a GT) elem() *bn256.GT {
	if a.p == nil {
		return gtIdentity.p
	}
	return a.p
}

func (a GT) raw() []byte {
	if a.p == nil {
		return gtIdentity.enc
	}
	return a.enc
}

// Pair computes the bilinear pairing e(a, b).
func Pair(a G1, b G2) GT {
	return newGT(bn256.Pair(a.point(), b.point()))
}

// GTBase returns e(G1Generator(), G2Generator()), the base used to embed
// plaintexts in ciphertexts.
func GTBase() GT { return gtBase }

// GTIdentity returns 1.
func GTIdentity() GT { return gtIdentity }

// GTBaseExp returns GTBase()^k.
func GTBaseExp(k Scalar) GT {
	return gtBase.Exp(k)
}

// ParseGT decodes the canonical 384-byte encoding of a GT element. Field
// elements that are not in the order-n subgroup are rejected.
func ParseGT(b []byte) (GT, error) {
	if len(b) != GTSize {
		return GT{}, fmt.Errorf("%w: GT element is %d bytes, want %d", ErrInvalidEncoding, len(b), GTSize)
	}
	be := reverseWords(b)
	p := new(bn256.GT)
	if _, ok := p.Unmarshal(be); !ok {
		return GT{}, fmt.Errorf("%w: malformed GT element", ErrInvalidEncoding)
	}
	a := newGT(p)
	if !bytes.Equal(a.enc, be) {
		return GT{}, fmt.Errorf("%w: non-canonical GT encoding", ErrInvalidEncoding)
	}
	if !bytes.Equal(new(bn256.GT).ScalarMult(p, bn256.Order).Marshal(), gtIdentity.enc) {
		return GT{}, fmt.Errorf("%w: GT element outside prime-order subgroup", ErrInvalidEncoding)
	}
	return a, nil
}

// Mul returns a·b.
func (a GT) Mul(b GT) GT {
	return newGT(new(bn256.GT).Add(a.elem(), b.elem()))
}

// Exp returns a^k.
func (a GT) Exp(k Scalar) GT {
	return newGT(new(bn256.GT).ScalarMult(a.elem(), k.big()))
}

// Inverse returns a⁻¹. Inside the order-n subgroup the inverse is the
// conjugate; ErrNotInvertible is returned if the result does not satisfy
// a·a⁻¹ = 1.
func (a GT) Inverse() (GT, error) {
	inv := newGT(new(bn256.GT).Neg(a.elem()))
	if !a.Mul(inv).IsIdentity() {
		return GT{}, ErrNotInvertible
	}
	return inv, nil
}

// Div returns a·b⁻¹.
func (a GT) Div(b GT) (GT, error) {
	inv, err := b.Inverse()
	if err != nil {
		return GT{}, err
	}
	return a.Mul(inv), nil
}

// IsIdentity reports whether a is 1.
func (a GT) IsIdentity() bool {
	return bytes.Equal(a.raw(), gtIdentity.enc)
}

// Equal reports whether a and b are the same element.
func (a GT) Equal(b GT) bool {
	return bytes.Equal(a.raw(), b.raw())
}

// Bytes returns the canonical 384-byte encoding of a.
func (a GT) Bytes() []byte {
	return reverseWords(a.raw())
}

// Key returns the canonical encoding as a string, suitable as a map key.
func (a GT) Key() string {
	return string(a.raw())
}
