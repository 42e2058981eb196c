// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zk

import (
	"fmt"
	"io"

	"v.io/x/aibe/group"
	"v.io/x/aibe/ibe"
	"v.io/x/aibe/pedersen"
)

const (
	// TransferStatementSize is the encoded size of a TransferStatement.
	TransferStatementSize = 7*group.G1Size + 3*group.GTSize
	// TransferProofSize is the encoded size of a TransferProof.
	TransferProofSize = 7*group.ScalarSize + 5*group.G2Size
)

// TransferStatement is the public input of a transfer proof.
//
// (C1, C2) and (C1, C2Bar) are the transfer amount encrypted with shared
// randomness to the sender under Y and to the receiver under YBar.
// (C1Tilde, C2Tilde) is the sender's balance ciphertext divided by
// (C1, C2). CBStar and CBPrime are Pedersen commitments under base H1 to
// the transfer amount and to the remaining balance.
type TransferStatement struct {
	H1      group.G1
	Y       group.G1
	YBar    group.G1
	C1      group.G1
	C2      group.GT
	C2Bar   group.GT
	C1Tilde group.G1
	C2Tilde group.GT
	CBStar  group.G1
	CBPrime group.G1
}

// TransferWitness is the sender's secret input.
type TransferWitness struct {
	R      group.Scalar // shared encryption randomness
	S      group.Scalar // sender's master secret
	RStar  group.Scalar // opening of CBStar
	RPrime group.Scalar // opening of CBPrime
	BStar  group.Scalar // transfer amount
	BPrime group.Scalar // remaining balance
	HID    group.G2     // sender's hashed identity
	HIDBar group.G2     // receiver's hashed identity
	SKID   group.G2     // sender's identity key
}

// TransferProof is a non-interactive transfer proof.
type TransferProof struct {
	X           group.Scalar
	ZR          group.Scalar
	ZS          group.Scalar
	ZRStar      group.Scalar
	ZRPrime     group.Scalar
	ZBStar      group.Scalar
	ZBPrime     group.Scalar
	ZID         group.G2
	ZIDPrime    group.G2
	ZIDBar      group.G2
	ZIDBarPrime group.G2
	ZSK         group.G2
}

// NewTransferStatement assembles the statement for moving the amount
// encrypted in transfer from a sender holding balance (encrypted under
// mpks[0]) to a receiver under mpks[1].
func NewTransferStatement(h1 group.G1, mpks [2]group.G1, balance ibe.CipherText, transfer [2]ibe.CipherText, cbStar, cbPrime group.G1) (TransferStatement, error) {
	rest, err := ibe.SubCiphers(balance, transfer[0])
	if err != nil {
		return TransferStatement{}, err
	}
	return TransferStatement{
		H1:      h1,
		Y:       mpks[0],
		YBar:    mpks[1],
		C1:      transfer[0].C1,
		C2:      transfer[0].C2,
		C2Bar:   transfer[1].C2,
		C1Tilde: rest.C1,
		C2Tilde: rest.C2,
		CBStar:  cbStar,
		CBPrime: cbPrime,
	}, nil
}

// NewTransferWitness assembles the witness from the sender's master
// secret and identity key, the correlated encryption of the amount and
// the commitments to the amount and to the remaining balance.
func NewTransferWitness(msk group.Scalar, sk ibe.IdSecretKey, transfer *ibe.Correlated, bStar, bPrime group.Scalar, cStar, cPrime pedersen.Commitment) TransferWitness {
	return TransferWitness{
		R:      transfer.R,
		S:      msk,
		RStar:  cStar.R,
		RPrime: cPrime.R,
		BStar:  bStar,
		BPrime: bPrime,
		HID:    transfer.HashedIDs[0],
		HIDBar: transfer.HashedIDs[1],
		SKID:   sk.Key,
	}
}

// TransferProver generates transfer proofs. It is not safe for concurrent
// use unless its reader is.
type TransferProver struct {
	rand io.Reader
}

// NewTransferProver returns a prover that draws blinding values from rand.
func NewTransferProver(rand io.Reader) (*TransferProver, error) {
	if rand == nil {
		return nil, group.ErrNilRand
	}
	return &TransferProver{rand: rand}, nil
}

// GenerateProof proves st with witness w.
func (p *TransferProver) GenerateProof(st TransferStatement, w TransferWitness) (*TransferProof, error) {
	s := &sampler{r: p.rand}
	var (
		mr, ms         = s.scalar(), s.scalar()
		mrStar, mrPrim = s.scalar(), s.scalar()
		mbStar, mbPrim = s.scalar(), s.scalar()
		mID, mIDPrime  = s.g2(), s.g2()
		mIDBar         = s.g2()
		mIDBarPrime    = s.g2()
		mSK            = s.g2()
	)
	if s.err != nil {
		return nil, fmt.Errorf("zk: sampling transfer blinding values: %w", s.err)
	}

	var (
		dy      = group.G1BaseMul(ms)
		d1      = group.G1BaseMul(mr)
		dbStar  = group.G1BaseMul(mbStar).Add(st.H1.Mul(mrStar))
		dbPrime = group.G1BaseMul(mbPrim).Add(st.H1.Mul(mrPrim))

		r    = group.Pair(st.C1, mID).Mul(group.Pair(neg1, mIDPrime))
		rBar = group.Pair(st.C1, mIDBar).Mul(group.Pair(neg1, mIDBarPrime))
		rSK  = group.Pair(st.Y, mID).Mul(group.Pair(neg1, mSK))

		gtStar  = group.GTBaseExp(mbStar)
		d2      = gtStar.Mul(group.Pair(st.Y, mIDPrime))
		d2Bar   = gtStar.Mul(group.Pair(st.YBar, mIDBarPrime))
		d2Tilde = group.GTBaseExp(mbPrim).Mul(group.Pair(st.C1Tilde, mSK))
	)
	x := challenge(dy, d1, dbStar, dbPrime, r, rBar, rSK, d2, d2Bar, d2Tilde)

	// h_id·r and h_id_bar·r are derived here, not taken from the witness.
	hIDPrime := w.HID.Mul(w.R)
	hIDBarPrime := w.HIDBar.Mul(w.R)

	return &TransferProof{
		X:           x,
		ZR:          x.Mul(w.R).Add(mr),
		ZS:          x.Mul(w.S).Add(ms),
		ZRStar:      x.Mul(w.RStar).Add(mrStar),
		ZRPrime:     x.Mul(w.RPrime).Add(mrPrim),
		ZBStar:      x.Mul(w.BStar).Add(mbStar),
		ZBPrime:     x.Mul(w.BPrime).Add(mbPrim),
		ZID:         w.HID.Mul(x).Add(mID),
		ZIDPrime:    hIDPrime.Mul(x).Add(mIDPrime),
		ZIDBar:      w.HIDBar.Mul(x).Add(mIDBar),
		ZIDBarPrime: hIDBarPrime.Mul(x).Add(mIDBarPrime),
		ZSK:         w.SKID.Mul(x).Add(mSK),
	}, nil
}

// VerifyTransfer checks proof against st. It returns nil or
// ErrVerification.
func VerifyTransfer(st TransferStatement, proof *TransferProof) error {
	if proof == nil {
		return ErrVerification
	}
	negX := proof.X.Neg()
	var (
		dy      = group.G1BaseMul(proof.ZS).Add(st.Y.Mul(negX))
		d1      = group.G1BaseMul(proof.ZR).Add(st.C1.Mul(negX))
		dbStar  = group.G1BaseMul(proof.ZBStar).Add(st.H1.Mul(proof.ZRStar)).Add(st.CBStar.Mul(negX))
		dbPrime = group.G1BaseMul(proof.ZBPrime).Add(st.H1.Mul(proof.ZRPrime)).Add(st.CBPrime.Mul(negX))

		r    = group.Pair(st.C1, proof.ZID).Mul(group.Pair(neg1, proof.ZIDPrime))
		rBar = group.Pair(st.C1, proof.ZIDBar).Mul(group.Pair(neg1, proof.ZIDBarPrime))
		rSK  = group.Pair(st.Y, proof.ZID).Mul(group.Pair(neg1, proof.ZSK))

		gtStar  = group.GTBaseExp(proof.ZBStar)
		d2      = gtStar.Mul(group.Pair(st.Y, proof.ZIDPrime)).Mul(st.C2.Exp(negX))
		d2Bar   = gtStar.Mul(group.Pair(st.YBar, proof.ZIDBarPrime)).Mul(st.C2Bar.Exp(negX))
		d2Tilde = group.GTBaseExp(proof.ZBPrime).Mul(group.Pair(st.C1Tilde, proof.ZSK)).Mul(st.C2Tilde.Exp(negX))
	)
	if !challenge(dy, d1, dbStar, dbPrime, r, rBar, rSK, d2, d2Bar, d2Tilde).Equal(proof.X) {
		return ErrVerification
	}
	return nil
}

// Bytes returns the fields of st concatenated in declaration order.
func (st TransferStatement) Bytes() []byte {
	return group.Concat(st.H1, st.Y, st.YBar, st.C1, st.C2, st.C2Bar, st.C1Tilde, st.C2Tilde, st.CBStar, st.CBPrime)
}

// ParseTransferStatement decodes an encoded TransferStatement.
func ParseTransferStatement(data []byte) (TransferStatement, error) {
	d := group.NewDecoder(data, TransferStatementSize)
	st := TransferStatement{
		H1:      d.G1("h1"),
		Y:       d.G1("y"),
		YBar:    d.G1("y_bar"),
		C1:      d.G1("c1"),
		C2:      d.GT("c2"),
		C2Bar:   d.GT("c2_bar"),
		C1Tilde: d.G1("c1_tilde"),
		C2Tilde: d.GT("c2_tilde"),
		CBStar:  d.G1("c_b_star"),
		CBPrime: d.G1("c_b_prime"),
	}
	if err := d.Err(); err != nil {
		return TransferStatement{}, fmt.Errorf("zk: invalid transfer statement: %w", err)
	}
	return st, nil
}

// Bytes returns the fields of p concatenated in declaration order.
func (p *TransferProof) Bytes() []byte {
	return group.Concat(p.X, p.ZR, p.ZS, p.ZRStar, p.ZRPrime, p.ZBStar, p.ZBPrime,
		p.ZID, p.ZIDPrime, p.ZIDBar, p.ZIDBarPrime, p.ZSK)
}

// ParseTransferProof decodes an encoded TransferProof.
func ParseTransferProof(data []byte) (*TransferProof, error) {
	d := group.NewDecoder(data, TransferProofSize)
	p := &TransferProof{
		X:           d.Scalar("x"),
		ZR:          d.Scalar("zr"),
		ZS:          d.Scalar("zs"),
		ZRStar:      d.Scalar("zr_star"),
		ZRPrime:     d.Scalar("zr_prime"),
		ZBStar:      d.Scalar("zb_star"),
		ZBPrime:     d.Scalar("zb_prime"),
		ZID:         d.G2("z_id"),
		ZIDPrime:    d.G2("z_id_prime"),
		ZIDBar:      d.G2("z_id_bar"),
		ZIDBarPrime: d.G2("z_id_bar_prime"),
		ZSK:         d.G2("z_sk"),
	}
	if err := d.Err(); err != nil {
		return nil, fmt.Errorf("zk: invalid transfer proof: %w", err)
	}
	return p, nil
}
