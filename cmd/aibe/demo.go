// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/binary"
	"fmt"
	"io"

	"v.io/x/aibe/group"
	"v.io/x/aibe/ibe"
	"v.io/x/aibe/ledger"
	"v.io/x/aibe/pedersen"
	"v.io/x/aibe/vlog"
	"v.io/x/aibe/zk"
)

func init() {
	register(
		command{
			name:  "burn",
			short: "encrypt a random amount and prove and verify its burn",
			flags: func() interface{} { return &burnFlags{} },
			run:   runBurn,
		},
		command{
			name:  "transfer",
			short: "prove, verify and settle a transfer between two identities on an in-memory ledger",
			flags: func() interface{} { return &transferFlags{} },
			run:   runTransfer,
		},
	)
}

type burnFlags struct {
	ID    string `flag:"id,zico,identity that holds the burned amount"`
	Bound uint64 `flag:"bound,100,exclusive upper bound on the amount"`
}

type transferFlags struct {
	Sender   string `flag:"sender,zico1,identity of the sender"`
	Receiver string `flag:"receiver,zico2,identity of the receiver"`
	Balance  uint64 `flag:"balance,60,sender's balance before the transfer"`
	Amount   uint64 `flag:"amount,40,amount to transfer"`
	Bound    uint64 `flag:"bound,100,exclusive upper bound on decrypted amounts"`
}

// randomBelow returns a value in [0, bound) read from r, with modulo bias.
func randomBelow(r io.Reader, bound uint64) (uint64, error) {
	if err := checkBound(bound); err != nil {
		return 0, err
	}
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]) % bound, nil
}

func expect(what string, got group.Scalar, want uint64) error {
	if !got.Equal(group.NewScalar(want)) {
		return fmt.Errorf("%s: got %v, want %d", what, got, want)
	}
	return nil
}

func runBurn(env *env, flags interface{}) error {
	fl := flags.(*burnFlags)
	b, err := randomBelow(env.rand, fl.Bound)
	if err != nil {
		return err
	}
	var (
		master *ibe.MasterKeyPair
		sk     ibe.IdSecretKey
		ct     ibe.CipherText
		st     zk.BurnStatement
		proof  *zk.BurnProof
	)
	steps := []struct {
		name string
		fn   func() error
	}{
		{"keygen", func() (err error) {
			master, err = ibe.GenerateKey(env.rand)
			if err == nil {
				sk = master.Extract(fl.ID)
			}
			return
		}},
		{"encrypt", func() (err error) {
			ct, err = ibe.Encrypt(env.rand, group.NewScalar(b), fl.ID, master.Public)
			return
		}},
		{"decrypt", func() error {
			got, err := ibe.Decrypt(ct, sk, fl.Bound)
			if err != nil {
				return err
			}
			return expect("decrypted amount", got, b)
		}},
		{"prove", func() error {
			prover, err := zk.NewBurnProver(env.rand)
			if err != nil {
				return err
			}
			st = zk.NewBurnStatement(master.Public, ct)
			proof, err = prover.GenerateProof(st, zk.NewBurnWitness(group.NewScalar(b), master.Secret, fl.ID))
			return err
		}},
		{"verify", func() error { return zk.VerifyBurn(st, proof) }},
	}
	for _, s := range steps {
		if err := env.timer.Time(s.name, s.fn); err != nil {
			return fmt.Errorf("burn: %s: %w", s.name, err)
		}
		vlog.VI(1).Infof("burn: %s done", s.name)
	}
	fmt.Fprintf(env.stdout, "amount: %d\n", b)
	printBlob(env.stdout, "statement", st.Bytes())
	printBlob(env.stdout, "proof", proof.Bytes())
	fmt.Fprintln(env.stdout, "verified: true")
	return nil
}

func runTransfer(env *env, flags interface{}) error {
	fl := flags.(*transferFlags)
	if err := checkBound(fl.Bound); err != nil {
		return err
	}
	if fl.Amount > fl.Balance {
		return fmt.Errorf("--amount %d exceeds --balance %d", fl.Amount, fl.Balance)
	}
	if fl.Balance >= fl.Bound {
		return fmt.Errorf("--balance %d must be below --bound %d", fl.Balance, fl.Bound)
	}
	var (
		ids     = [2]string{fl.Sender, fl.Receiver}
		bStar   = group.NewScalar(fl.Amount)
		bPrime  = group.NewScalar(fl.Balance - fl.Amount)
		book    = ledger.New(ledger.NewMemStore())
		pkids   = ibe.NewPkIDCache(0)
		masters [2]*ibe.MasterKeyPair
		mpks    [2]group.G1
		corr    *ibe.Correlated
		st      zk.TransferStatement
		proof   *zk.TransferProof
	)
	account := func(i int) []byte { return pkids.PkID(mpks[i], ids[i]).Bytes() }
	balanceOf := func(i int) (group.Scalar, error) {
		ct, err := book.Balance(env.ctx, account(i))
		if err != nil {
			return group.Scalar{}, err
		}
		return ibe.Decrypt(ct, masters[i].Extract(ids[i]), fl.Bound)
	}
	steps := []struct {
		name string
		fn   func() error
	}{
		{"keygen", func() error {
			for i := range masters {
				m, err := ibe.GenerateKey(env.rand)
				if err != nil {
					return err
				}
				masters[i], mpks[i] = m, m.Public
			}
			return nil
		}},
		{"register", func() error {
			for i := range ids {
				if err := book.Register(env.ctx, account(i)); err != nil {
					return err
				}
			}
			return book.Deposit(env.ctx, account(0), fl.Balance)
		}},
		{"encrypt", func() (err error) {
			corr, err = ibe.EncryptCorrelated(env.rand, bStar, ids, mpks)
			return err
		}},
		{"prove", func() error {
			balance, err := book.Balance(env.ctx, account(0))
			if err != nil {
				return err
			}
			h1, err := group.RandomG1(env.rand)
			if err != nil {
				return err
			}
			cStar, err := pedersen.Commit(bStar, h1, env.rand)
			if err != nil {
				return err
			}
			cPrime, err := pedersen.Commit(bPrime, h1, env.rand)
			if err != nil {
				return err
			}
			if st, err = zk.NewTransferStatement(h1, mpks, balance, corr.Ciphers, cStar.Value, cPrime.Value); err != nil {
				return err
			}
			prover, err := zk.NewTransferProver(env.rand)
			if err != nil {
				return err
			}
			sk := masters[0].Extract(fl.Sender)
			proof, err = prover.GenerateProof(st, zk.NewTransferWitness(masters[0].Secret, sk, corr, bStar, bPrime, cStar, cPrime))
			return err
		}},
		{"verify", func() error { return book.VerifyTransfer(env.ctx, st.Bytes(), proof.Bytes()) }},
		{"settle", func() error {
			// The sender's side of the correlated pair encrypts +amount.
			out, err := ibe.SubCiphers(ibe.PublicAmount(group.NewScalar(0)), corr.Ciphers[0])
			if err != nil {
				return err
			}
			return book.Transfer(env.ctx, account(0), account(1), out.Bytes(), corr.Ciphers[1].Bytes())
		}},
		{"decrypt", func() error {
			got, err := balanceOf(0)
			if err != nil {
				return err
			}
			if err := expect("sender's remaining balance", got, fl.Balance-fl.Amount); err != nil {
				return err
			}
			if got, err = balanceOf(1); err != nil {
				return err
			}
			return expect("receiver's balance", got, fl.Amount)
		}},
	}
	for _, s := range steps {
		if err := env.timer.Time(s.name, s.fn); err != nil {
			return fmt.Errorf("transfer: %s: %w", s.name, err)
		}
		vlog.VI(1).Infof("transfer: %s done", s.name)
	}
	vlog.VI(1).Infof("transfer: %d pk_ids cached", pkids.Len())
	fmt.Fprintf(env.stdout, "remaining: %d\n", fl.Balance-fl.Amount)
	fmt.Fprintf(env.stdout, "received: %d\n", fl.Amount)
	printBlob(env.stdout, "statement", st.Bytes())
	printBlob(env.stdout, "proof", proof.Bytes())
	fmt.Fprintln(env.stdout, "verified: true")
	return nil
}
