// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pedersen implements Pedersen commitments G1·m + h1·r over G1.
package pedersen

import (
	"io"

	"v.io/x/aibe/group"
)

// Commitment is a commitment together with the randomness that opens it.
type Commitment struct {
	R     group.Scalar
	Value group.G1
}

// Commit samples r from rand and commits to m under base h1.
func Commit(m group.Scalar, h1 group.G1, rand io.Reader) (Commitment, error) {
	r, err := group.RandomScalar(rand)
	if err != nil {
		return Commitment{}, err
	}
	return Commitment{R: r, Value: commit(m, h1, r)}, nil
}

func commit(m group.Scalar, h1 group.G1, r group.Scalar) group.G1 {
	return group.G1BaseMul(m).Add(h1.Mul(r))
}

// Open reports whether c commits to m under base h1.
func (c Commitment) Open(m group.Scalar, h1 group.G1) bool {
	return commit(m, h1, c.R).Equal(c.Value)
}
