// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zk

import (
	"fmt"
	"io"

	"v.io/x/aibe/group"
	"v.io/x/aibe/ibe"
)

const (
	// BurnStatementSize is the encoded size of a BurnStatement.
	BurnStatementSize = 2*group.G1Size + group.GTSize
	// BurnProofSize is the encoded size of a BurnProof.
	BurnProofSize = 3*group.ScalarSize + 2*group.G2Size
)

// BurnStatement is the public input of a burn proof: the issuer's mpk and
// a ciphertext (C1, C2) to an identity under it.
type BurnStatement struct {
	Y  group.G1
	C1 group.G1
	C2 group.GT
}

// BurnWitness is the prover's secret input: the plaintext B of the
// ciphertext, the master secret S, the hashed identity HID and the
// identity key SKID = HID·S.
type BurnWitness struct {
	B    group.Scalar
	S    group.Scalar
	HID  group.G2
	SKID group.G2
}

// BurnProof is a non-interactive burn proof.
type BurnProof struct {
	X   group.Scalar
	ZB  group.Scalar
	ZS  group.Scalar
	ZID group.G2
	ZSK group.G2
}

// NewBurnStatement returns the statement for ct encrypted under mpk.
func NewBurnStatement(mpk group.G1, ct ibe.CipherText) BurnStatement {
	return BurnStatement{Y: mpk, C1: ct.C1, C2: ct.C2}
}

// NewBurnWitness returns the witness for a ciphertext of b to id, for the
// authority holding msk.
func NewBurnWitness(b, msk group.Scalar, id string) BurnWitness {
	sk := ibe.Extract(id, msk)
	return BurnWitness{B: b, S: msk, HID: ibe.HashID(id), SKID: sk.Key}
}

// BurnProver generates burn proofs. It is not safe for concurrent use
// unless its reader is.
type BurnProver struct {
	rand io.Reader
}

// NewBurnProver returns a prover that draws blinding values from rand.
func NewBurnProver(rand io.Reader) (*BurnProver, error) {
	if rand == nil {
		return nil, group.ErrNilRand
	}
	return &BurnProver{rand: rand}, nil
}

// GenerateProof proves that st.C1, st.C2 decrypts to w.B under the key
// w.SKID belonging to st.Y.
func (p *BurnProver) GenerateProof(st BurnStatement, w BurnWitness) (*BurnProof, error) {
	s := &sampler{r: p.rand}
	mb, ms := s.scalar(), s.scalar()
	mID, mSK := s.g2(), s.g2()
	if s.err != nil {
		return nil, fmt.Errorf("zk: sampling burn blinding values: %w", s.err)
	}

	// d_y = g1^ms
	// r = e(y, m_id) · e(g1, m_sk)^-1
	// d_id = e(g1, g2)^mb · e(c1, m_sk)
	dy := group.G1BaseMul(ms)
	r := group.Pair(st.Y, mID).Mul(group.Pair(neg1, mSK))
	did := group.GTBaseExp(mb).Mul(group.Pair(st.C1, mSK))

	x := challenge(dy, r, did)
	return &BurnProof{
		X:   x,
		ZB:  x.Mul(w.B).Add(mb),
		ZS:  x.Mul(w.S).Add(ms),
		ZID: w.HID.Mul(x).Add(mID),
		ZSK: w.SKID.Mul(x).Add(mSK),
	}, nil
}

// VerifyBurn checks proof against st. It returns nil or ErrVerification.
func VerifyBurn(st BurnStatement, proof *BurnProof) error {
	if proof == nil {
		return ErrVerification
	}
	negX := proof.X.Neg()
	dy := group.G1BaseMul(proof.ZS).Add(st.Y.Mul(negX))
	r := group.Pair(st.Y, proof.ZID).Mul(group.Pair(neg1, proof.ZSK))
	did := group.GTBaseExp(proof.ZB).
		Mul(group.Pair(st.C1, proof.ZSK)).
		Mul(st.C2.Exp(negX))

	if !challenge(dy, r, did).Equal(proof.X) {
		return ErrVerification
	}
	return nil
}

// Bytes returns y ‖ c1 ‖ c2.
func (st BurnStatement) Bytes() []byte {
	return group.Concat(st.Y, st.C1, st.C2)
}

// ParseBurnStatement decodes an encoded BurnStatement.
func ParseBurnStatement(data []byte) (BurnStatement, error) {
	d := group.NewDecoder(data, BurnStatementSize)
	st := BurnStatement{
		Y:  d.G1("y"),
		C1: d.G1("c1"),
		C2: d.GT("c2"),
	}
	if err := d.Err(); err != nil {
		return BurnStatement{}, fmt.Errorf("zk: invalid burn statement: %w", err)
	}
	return st, nil
}

// Bytes returns x ‖ zb ‖ zs ‖ z_id ‖ z_sk.
func (p *BurnProof) Bytes() []byte {
	return group.Concat(p.X, p.ZB, p.ZS, p.ZID, p.ZSK)
}

// ParseBurnProof decodes an encoded BurnProof.
func ParseBurnProof(data []byte) (*BurnProof, error) {
	d := group.NewDecoder(data, BurnProofSize)
	p := &BurnProof{
		X:   d.Scalar("x"),
		ZB:  d.Scalar("zb"),
		ZS:  d.Scalar("zs"),
		ZID: d.G2("z_id"),
		ZSK: d.G2("z_sk"),
	}
	if err := d.Err(); err != nil {
		return nil, fmt.Errorf("zk: invalid burn proof: %w", err)
	}
	return p, nil
}
