// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package zk implements two non-interactive Sigma-protocol proofs over BF-IBE
// ciphertexts, made non-interactive with the Fiat-Shamir transform:
//
// A burn proof shows that a public ciphertext decrypts to a value b known
// to the prover, under the identity key derived from the master secret
// behind a public mpk, without revealing the key.
//
// A transfer proof shows that two ciphertexts sharing randomness encrypt
// the same amount to a sender and a receiver, that the sender's balance
// minus that amount is a consistent ciphertext, and that both amounts are
// the openings of two Pedersen commitments.
//
// In both protocols the prover commits to blinding values, derives the
// challenge x by hashing the commitments in a fixed order, and answers with
// responses of the form z = witness·x + blinding. The verifier recomputes
// each commitment from the responses by dividing out statement^x and
// accepts if and only if hashing the recomputed commitments yields x again.
//
// Provers draw every blinding value from the io.Reader they are created
// with. That reader must be a cryptographically secure source: a repeated
// blinding value across two proofs reveals the witness.
package zk

import (
	"errors"
	"io"

	"v.io/x/aibe/group"
)

// ErrVerification is returned when a proof does not verify.
var ErrVerification = errors.New("zk: proof verification failed")

// challenge hashes the commitments, in order, into the scalar field.
func challenge(commitments ...group.Encoder) group.Scalar {
	return group.HashToScalar(group.Concat(commitments...))
}

// sampler draws blinding values from one reader and keeps the first error.
type sampler struct {
	r   io.Reader
	err error
}

func (s *sampler) scalar() group.Scalar {
	if s.err != nil {
		return group.Scalar{}
	}
	v, err := group.RandomScalar(s.r)
	s.err = err
	return v
}

func (s *sampler) g2() group.G2 {
	if s.err != nil {
		return group.G2{}
	}
	v, err := group.RandomG2(s.r)
	s.err = err
	return v
}

// neg1 is -g1. e(-g1, q) = e(g1, q)^-1.
var neg1 = group.G1Generator().Neg()
