// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zk

import (
	"errors"
	"testing"

	"v.io/x/aibe/group"
	"v.io/x/aibe/ibe"
	"v.io/x/aibe/internal/seededrand"
	"v.io/x/aibe/pedersen"
)

func burnFixture(t *testing.T, label string) (BurnStatement, BurnWitness, *seededrand.Reader) {
	rand := seededrand.FromString(label)
	master, err := ibe.GenerateKey(rand)
	if err != nil {
		t.Fatal(err)
	}
	b := group.NewScalar(35)
	ct, err := ibe.Encrypt(rand, b, "zico", master.Public)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ibe.Decrypt(ct, master.Extract("zico"), 100)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(b) {
		t.Fatalf("decrypted %v, want 35", got)
	}
	return NewBurnStatement(master.Public, ct), NewBurnWitness(b, master.Secret, "zico"), rand
}

type transferFixture struct {
	st      TransferStatement
	w       TransferWitness
	rand    *seededrand.Reader
	balance ibe.CipherText
	corr    *ibe.Correlated
	sk      [2]ibe.IdSecretKey
}

func newTransferFixture(t *testing.T, label string) *transferFixture {
	rand := seededrand.FromString(label)
	var (
		b      = group.NewScalar(60)
		bStar  = group.NewScalar(40)
		bPrime = b.Sub(bStar)
	)
	m1, err := ibe.GenerateKey(rand)
	if err != nil {
		t.Fatal(err)
	}
	m2, err := ibe.GenerateKey(rand)
	if err != nil {
		t.Fatal(err)
	}
	sk1 := m1.Extract("zico1")
	balance, err := ibe.Encrypt(rand, b, "zico1", m1.Public)
	if err != nil {
		t.Fatal(err)
	}
	corr, err := ibe.EncryptCorrelated(rand, bStar, [2]string{"zico1", "zico2"}, [2]group.G1{m1.Public, m2.Public})
	if err != nil {
		t.Fatal(err)
	}
	h1, err := group.RandomG1(rand)
	if err != nil {
		t.Fatal(err)
	}
	cStar, err := pedersen.Commit(bStar, h1, rand)
	if err != nil {
		t.Fatal(err)
	}
	cPrime, err := pedersen.Commit(bPrime, h1, rand)
	if err != nil {
		t.Fatal(err)
	}
	st, err := NewTransferStatement(h1, [2]group.G1{m1.Public, m2.Public}, balance, corr.Ciphers, cStar.Value, cPrime.Value)
	if err != nil {
		t.Fatal(err)
	}
	return &transferFixture{
		st:      st,
		w:       NewTransferWitness(m1.Secret, sk1, corr, bStar, bPrime, cStar, cPrime),
		rand:    rand,
		balance: balance,
		corr:    corr,
		sk:      [2]ibe.IdSecretKey{sk1, m2.Extract("zico2")},
	}
}

func TestBurnCompleteness(t *testing.T) {
	st, w, rand := burnFixture(t, "burn")
	prover, err := NewBurnProver(rand)
	if err != nil {
		t.Fatal(err)
	}
	proof, err := prover.GenerateProof(st, w)
	if err != nil {
		t.Fatal(err)
	}
	if err := VerifyBurn(st, proof); err != nil {
		t.Fatalf("honest proof rejected: %v", err)
	}
	proof2, err := prover.GenerateProof(st, w)
	if err != nil {
		t.Fatal(err)
	}
	if proof2.X.Equal(proof.X) {
		t.Error("two proofs share a challenge")
	}
	if err := VerifyBurn(st, proof2); err != nil {
		t.Fatalf("second proof rejected: %v", err)
	}
}

func TestBurnWrongWitness(t *testing.T) {
	st, w, rand := burnFixture(t, "burn-wrong")
	prover, _ := NewBurnProver(rand)
	for name, bad := range map[string]BurnWitness{
		"amount": {B: group.NewScalar(36), S: w.S, HID: w.HID, SKID: w.SKID},
		"secret": {B: w.B, S: w.S.Add(group.NewScalar(1)), HID: w.HID, SKID: w.SKID},
		"id":     NewBurnWitness(w.B, w.S, "zico2"),
	} {
		proof, err := prover.GenerateProof(st, bad)
		if err != nil {
			t.Fatal(err)
		}
		if err := VerifyBurn(st, proof); !errors.Is(err, ErrVerification) {
			t.Errorf("%s: err = %v, want ErrVerification", name, err)
		}
	}
	if err := VerifyBurn(st, nil); !errors.Is(err, ErrVerification) {
		t.Errorf("nil proof: err = %v", err)
	}
}

// flipEach flips every byte of data in turn (every stride'th byte in short
// mode) and requires that the result either fails to decode or fails to
// verify.
func flipEach(t *testing.T, what string, data []byte, check func([]byte) error) {
	stride := 1
	if testing.Short() {
		stride = 13
	}
	for i := 0; i < len(data); i += stride {
		mutated := append([]byte(nil), data...)
		mutated[i] ^= 0x01
		if err := check(mutated); err == nil {
			t.Errorf("%s: flipping byte %d was accepted", what, i)
		}
	}
}

func TestBurnSoundnessByteFlip(t *testing.T) {
	st, w, rand := burnFixture(t, "burn-flip")
	prover, _ := NewBurnProver(rand)
	proof, err := prover.GenerateProof(st, w)
	if err != nil {
		t.Fatal(err)
	}
	stBytes, proofBytes := st.Bytes(), proof.Bytes()
	if len(stBytes) != BurnStatementSize || len(proofBytes) != BurnProofSize {
		t.Fatalf("sizes = (%d, %d)", len(stBytes), len(proofBytes))
	}
	verify := func(sb, pb []byte) error {
		st, err := ParseBurnStatement(sb)
		if err != nil {
			return err
		}
		p, err := ParseBurnProof(pb)
		if err != nil {
			return err
		}
		return VerifyBurn(st, p)
	}
	if err := verify(stBytes, proofBytes); err != nil {
		t.Fatalf("decoded proof rejected: %v", err)
	}
	flipEach(t, "statement", stBytes, func(b []byte) error { return verify(b, proofBytes) })
	flipEach(t, "proof", proofBytes, func(b []byte) error { return verify(stBytes, b) })
}

func TestTransferCompleteness(t *testing.T) {
	f := newTransferFixture(t, "transfer")
	// The remaining balance ciphertext decrypts to 20 under the sender's key.
	rest := ibe.CipherText{C1: f.st.C1Tilde, C2: f.st.C2Tilde}
	if got, err := ibe.Decrypt(rest, f.sk[0], 100); err != nil || !got.Equal(group.NewScalar(20)) {
		t.Fatalf("remaining balance = (%v, %v), want 20", got, err)
	}
	if got, err := ibe.Decrypt(f.corr.Ciphers[1], f.sk[1], 100); err != nil || !got.Equal(group.NewScalar(40)) {
		t.Fatalf("receiver amount = (%v, %v), want 40", got, err)
	}
	prover, err := NewTransferProver(f.rand)
	if err != nil {
		t.Fatal(err)
	}
	proof, err := prover.GenerateProof(f.st, f.w)
	if err != nil {
		t.Fatal(err)
	}
	if err := VerifyTransfer(f.st, proof); err != nil {
		t.Fatalf("honest proof rejected: %v", err)
	}

	corrupted := *proof
	corrupted.ZBStar = corrupted.ZBStar.Add(group.NewScalar(1))
	if err := VerifyTransfer(f.st, &corrupted); !errors.Is(err, ErrVerification) {
		t.Errorf("corrupted zb_star: err = %v, want ErrVerification", err)
	}
	if err := VerifyTransfer(f.st, nil); !errors.Is(err, ErrVerification) {
		t.Errorf("nil proof: err = %v", err)
	}
}

func TestTransferWrongWitness(t *testing.T) {
	f := newTransferFixture(t, "transfer-wrong")
	prover, _ := NewTransferProver(f.rand)
	cases := map[string]func(w *TransferWitness){
		"amount":     func(w *TransferWitness) { w.BStar = w.BStar.Add(group.NewScalar(1)) },
		"remaining":  func(w *TransferWitness) { w.BPrime = w.BPrime.Add(group.NewScalar(1)) },
		"randomness": func(w *TransferWitness) { w.R = w.R.Add(group.NewScalar(1)) },
		"receiver":   func(w *TransferWitness) { w.HIDBar = ibe.HashID("mallory") },
		"opening":    func(w *TransferWitness) { w.RStar = w.RStar.Add(group.NewScalar(1)) },
	}
	for name, mutate := range cases {
		w := f.w
		mutate(&w)
		proof, err := prover.GenerateProof(f.st, w)
		if err != nil {
			t.Fatal(err)
		}
		if err := VerifyTransfer(f.st, proof); !errors.Is(err, ErrVerification) {
			t.Errorf("%s: err = %v, want ErrVerification", name, err)
		}
	}
}

func TestTransferSoundnessByteFlip(t *testing.T) {
	f := newTransferFixture(t, "transfer-flip")
	prover, _ := NewTransferProver(f.rand)
	proof, err := prover.GenerateProof(f.st, f.w)
	if err != nil {
		t.Fatal(err)
	}
	stBytes, proofBytes := f.st.Bytes(), proof.Bytes()
	if len(stBytes) != TransferStatementSize || len(proofBytes) != TransferProofSize {
		t.Fatalf("sizes = (%d, %d)", len(stBytes), len(proofBytes))
	}
	verify := func(sb, pb []byte) error {
		st, err := ParseTransferStatement(sb)
		if err != nil {
			return err
		}
		p, err := ParseTransferProof(pb)
		if err != nil {
			return err
		}
		return VerifyTransfer(st, p)
	}
	if err := verify(stBytes, proofBytes); err != nil {
		t.Fatalf("decoded proof rejected: %v", err)
	}
	flipEach(t, "statement", stBytes, func(b []byte) error { return verify(b, proofBytes) })
	flipEach(t, "proof", proofBytes, func(b []byte) error { return verify(stBytes, b) })
}

func TestProverNilRand(t *testing.T) {
	if _, err := NewBurnProver(nil); !errors.Is(err, group.ErrNilRand) {
		t.Errorf("NewBurnProver(nil) err = %v", err)
	}
	if _, err := NewTransferProver(nil); !errors.Is(err, group.ErrNilRand) {
		t.Errorf("NewTransferProver(nil) err = %v", err)
	}
}

func TestParseSizes(t *testing.T) {
	if BurnStatementSize != 512 || BurnProofSize != 352 {
		t.Errorf("burn sizes = (%d, %d)", BurnStatementSize, BurnProofSize)
	}
	if TransferStatementSize != 1600 || TransferProofSize != 864 {
		t.Errorf("transfer sizes = (%d, %d)", TransferStatementSize, TransferProofSize)
	}
	for _, err := range []error{
		func() error { _, err := ParseBurnStatement(make([]byte, 10)); return err }(),
		func() error { _, err := ParseBurnProof(make([]byte, BurnProofSize+1)); return err }(),
		func() error { _, err := ParseTransferStatement(nil); return err }(),
		func() error { _, err := ParseTransferProof(make([]byte, TransferProofSize-1)); return err }(),
	} {
		if !errors.Is(err, group.ErrInvalidEncoding) {
			t.Errorf("err = %v, want ErrInvalidEncoding", err)
		}
	}
}
