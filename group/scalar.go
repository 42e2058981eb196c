// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package group

import (
	"crypto/rand"
	"fmt"
	"io"
	"math"
	"math/big"

	"golang.org/x/crypto/bn256"
)

// Scalar is an element of Z_n where n is the group order. The zero value is
// the scalar 0.
type Scalar struct {
	v *big.Int // in [0, n), never modified after construction
}

func newScalar(v *big.Int) Scalar {
	return Scalar{v: v.Mod(v, bn256.Order)}
}

func (s Scalar) big() *big.Int {
	if s.v == nil {
		return bigZero
	}
	return s.v
}

// NewScalar returns v as a scalar.
func NewScalar(v uint64) Scalar {
	return newScalar(new(big.Int).SetUint64(v))
}

// NewScalarInt64 returns v as a scalar. Negative values map to n - |v|.
func NewScalarInt64(v int64) Scalar {
	return newScalar(big.NewInt(v))
}

// ScalarFromBig reduces v modulo n. v is not retained.
func ScalarFromBig(v *big.Int) Scalar {
	return newScalar(new(big.Int).Set(v))
}

// RandomScalar samples a uniformly random scalar in [0, n) from r.
func RandomScalar(r io.Reader) (Scalar, error) {
	if err := checkRand(r); err != nil {
		return Scalar{}, err
	}
	k, err := rand.Int(r, bn256.Order)
	if err != nil {
		return Scalar{}, fmt.Errorf("group: sampling scalar: %w", err)
	}
	return Scalar{v: k}, nil
}

// ParseScalar decodes the 32-byte little-endian encoding of a scalar.
// Values outside [0, n) are rejected.
func ParseScalar(b []byte) (Scalar, error) {
	if len(b) != ScalarSize {
		return Scalar{}, fmt.Errorf("%w: scalar is %d bytes, want %d", ErrInvalidEncoding, len(b), ScalarSize)
	}
	v := new(big.Int).SetBytes(reverseWords(b))
	if v.Cmp(bn256.Order) >= 0 {
		return Scalar{}, fmt.Errorf("%w: scalar out of range", ErrInvalidEncoding)
	}
	return Scalar{v: v}, nil
}

// Bytes returns the canonical 32-byte little-endian encoding of s.
func (s Scalar) Bytes() []byte {
	be := make([]byte, ScalarSize)
	s.big().FillBytes(be)
	return reverseWords(be)
}

// BigInt returns a copy of s as a big.Int in [0, n).
func (s Scalar) BigInt() *big.Int {
	return new(big.Int).Set(s.big())
}

// Uint64 returns s as a uint64 and whether it fits.
func (s Scalar) Uint64() (uint64, bool) {
	v := s.big()
	if !v.IsUint64() {
		return math.MaxUint64, false
	}
	return v.Uint64(), true
}

// Add returns s + t.
func (s Scalar) Add(t Scalar) Scalar {
	return newScalar(new(big.Int).Add(s.big(), t.big()))
}

// Sub returns s - t.
func (s Scalar) Sub(t Scalar) Scalar {
	return newScalar(new(big.Int).Sub(s.big(), t.big()))
}

// Mul returns s * t.
func (s Scalar) Mul(t Scalar) Scalar {
	return newScalar(new(big.Int).Mul(s.big(), t.big()))
}

// Neg returns -s.
func (s Scalar) Neg() Scalar {
	return newScalar(new(big.Int).Neg(s.big()))
}

// IsZero reports whether s is 0.
func (s Scalar) IsZero() bool {
	return s.big().Sign() == 0
}

// Equal reports whether s and t are the same scalar.
func (s Scalar) Equal(t Scalar) bool {
	return s.big().Cmp(t.big()) == 0
}

// String returns s in decimal.
func (s Scalar) String() string {
	return s.big().String()
}
