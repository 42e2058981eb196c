// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ledger keeps identity-encrypted account balances and applies
// public deposits and withdrawals, homomorphic transfers and burn and
// transfer proof verification to them.
//
// Accounts are keyed by the canonical encoding of their pk_id, the GT
// element e(mpk, H(id)) that ibe.PkID computes. A balance is a
// ciphertext of the account's amount under that identity; the ledger
// never learns the amount. Registration stores an encryption of zero.
package ledger

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"v.io/x/aibe/group"
	"v.io/x/aibe/ibe"
	"v.io/x/aibe/vlog"
	"v.io/x/aibe/zk"
)

var (
	// ErrAccountNotRegistered is returned for operations on a pk_id that
	// was never registered.
	ErrAccountNotRegistered = errors.New("ledger: account not registered")
	// ErrAccountExists is returned by Register for a pk_id that already
	// has an account.
	ErrAccountExists = errors.New("ledger: account already registered")
	// ErrMalformed wraps decoding failures of pk_ids, ciphertexts,
	// statements and proofs.
	ErrMalformed = errors.New("ledger: malformed input")
	// ErrBurnVerification is returned by VerifyBurn for proofs that do not
	// verify. It wraps zk.ErrVerification.
	ErrBurnVerification = fmt.Errorf("ledger: burn proof rejected: %w", zk.ErrVerification)
	// ErrTransferVerification is returned by VerifyTransfer for proofs that
	// do not verify. It wraps zk.ErrVerification.
	ErrTransferVerification = fmt.Errorf("ledger: transfer proof rejected: %w", zk.ErrVerification)
)

// EventKind names the operation an Event records.
type EventKind string

const (
	EventRegister         EventKind = "register"          // account created
	EventDeposit          EventKind = "deposit"           // public amount added
	EventWithdraw         EventKind = "withdraw"          // public amount subtracted
	EventTransfer         EventKind = "transfer"          // encrypted amounts applied
	EventBurnVerified     EventKind = "burn_verified"     // burn proof accepted
	EventTransferVerified EventKind = "transfer_verified" // transfer proof accepted
)

// Event describes a successful ledger operation.
type Event struct {
	ID   uuid.UUID
	Kind EventKind
	Time time.Time
	// Account is the pk_id the operation applied to; the sender's for
	// transfers and empty for proof verification.
	Account []byte
	// Amount is set for deposits and withdrawals.
	Amount uint64
	// Proof is the verified proof for proof verification events.
	Proof []byte
}

// EventSink receives every Event. It is called with the ledger's lock
// held and must not call back into the ledger.
type EventSink func(Event)

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger directs the ledger's logging to logger instead of vlog.Log.
func WithLogger(logger vlog.Logger) Option {
	return func(l *Ledger) { l.log = logger }
}

// WithEventSink sends events to sink.
func WithEventSink(sink EventSink) Option {
	return func(l *Ledger) { l.sink = sink }
}

// Ledger applies account operations to a Store. Read-modify-write
// sequences on balances are serialized, so a Ledger is safe for
// concurrent use.
type Ledger struct {
	store Store
	log   vlog.Logger
	sink  EventSink
	now   func() time.Time

	mu sync.Mutex
}

// New returns a Ledger over store.
func New(store Store, opts ...Option) *Ledger {
	l := &Ledger{store: store, log: vlog.Log, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func accountLabel(pkID []byte) string {
	s := base64.RawURLEncoding.EncodeToString(pkID)
	if len(s) > 12 {
		s = s[:12]
	}
	return s
}

func parsePkID(pkID []byte) (group.GT, error) {
	pid, err := group.ParseGT(pkID)
	if err != nil {
		return group.GT{}, fmt.Errorf("%w: pk_id: %w", ErrMalformed, err)
	}
	return pid, nil
}

func (l *Ledger) emit(ev Event) {
	ev.ID = uuid.New()
	ev.Time = l.now()
	zl := l.log.Structured()
	zl.Info().
		Str("event_id", ev.ID.String()).
		Str("kind", string(ev.Kind)).
		Str("account", accountLabel(ev.Account)).
		Uint64("amount", ev.Amount).
		Msg("ledger event")
	if l.sink != nil {
		l.sink(ev)
	}
}

func (l *Ledger) balance(ctx context.Context, pkID []byte) (ibe.CipherText, error) {
	raw, err := l.store.Get(ctx, pkID)
	if errors.Is(err, ErrNotFound) {
		return ibe.CipherText{}, fmt.Errorf("%w: %s", ErrAccountNotRegistered, accountLabel(pkID))
	}
	if err != nil {
		return ibe.CipherText{}, err
	}
	ct, err := ibe.ParseCipherText(raw)
	if err != nil {
		return ibe.CipherText{}, fmt.Errorf("ledger: corrupt balance for account %s: %w", accountLabel(pkID), err)
	}
	return ct, nil
}

// Register creates an account for pkID with a balance of zero.
func (l *Ledger) Register(ctx context.Context, pkID []byte) error {
	pid, err := parsePkID(pkID)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	switch _, err := l.store.Get(ctx, pkID); {
	case err == nil:
		return fmt.Errorf("%w: %s", ErrAccountExists, accountLabel(pkID))
	case !errors.Is(err, ErrNotFound):
		return err
	}
	if err := l.store.Put(ctx, pkID, ibe.ZeroCipher(pid).Bytes()); err != nil {
		return err
	}
	l.log.VI(1).Infof("registered account %s", accountLabel(pkID))
	l.emit(Event{Kind: EventRegister, Account: pkID})
	return nil
}

// Balance returns the encrypted balance of pkID.
func (l *Ledger) Balance(ctx context.Context, pkID []byte) (ibe.CipherText, error) {
	if _, err := parsePkID(pkID); err != nil {
		return ibe.CipherText{}, err
	}
	return l.balance(ctx, pkID)
}

// Deposit adds the public amount to the balance of pkID.
func (l *Ledger) Deposit(ctx context.Context, pkID []byte, amount uint64) (err error) {
	defer vlog.LogCallf("amount: %d", amount)("err: %v", &err)
	return l.adjust(ctx, pkID, EventDeposit, amount, group.NewScalar(amount))
}

// Withdraw subtracts the public amount from the balance of pkID. The
// ledger cannot see the balance, so it cannot refuse an overdraft; the
// result is then an encryption of a negative amount that no bounded
// decryption recovers.
func (l *Ledger) Withdraw(ctx context.Context, pkID []byte, amount uint64) (err error) {
	defer vlog.LogCallf("amount: %d", amount)("err: %v", &err)
	return l.adjust(ctx, pkID, EventWithdraw, amount, group.NewScalar(amount).Neg())
}

func (l *Ledger) adjust(ctx context.Context, pkID []byte, kind EventKind, amount uint64, delta group.Scalar) error {
	if _, err := parsePkID(pkID); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	bal, err := l.balance(ctx, pkID)
	if err != nil {
		return err
	}
	bal = ibe.AddCiphers(bal, ibe.PublicAmount(delta))
	if err := l.store.Put(ctx, pkID, bal.Bytes()); err != nil {
		return err
	}
	l.log.VI(1).Infof("%s of %d applied to account %s", kind, amount, accountLabel(pkID))
	l.emit(Event{Kind: kind, Account: pkID, Amount: amount})
	return nil
}

// Transfer adds the ciphertext enc1 to the balance of pkID1 and enc2 to
// the balance of pkID2. For a transfer of b from sender to receiver enc1
// encrypts -b under the sender's identity and enc2 encrypts b under the
// receiver's. Both accounts must be registered, and both balances are
// written with one Store.PutAll, so a failed transfer changes neither. A
// transfer to the sending account applies both ciphertexts.
func (l *Ledger) Transfer(ctx context.Context, pkID1, pkID2, enc1, enc2 []byte) error {
	for _, pk := range [][]byte{pkID1, pkID2} {
		if _, err := parsePkID(pk); err != nil {
			return err
		}
	}
	c1, err := ibe.ParseCipherText(enc1)
	if err != nil {
		return fmt.Errorf("%w: first amount: %w", ErrMalformed, err)
	}
	c2, err := ibe.ParseCipherText(enc2)
	if err != nil {
		return fmt.Errorf("%w: second amount: %w", ErrMalformed, err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	bal1, err := l.balance(ctx, pkID1)
	if err != nil {
		return err
	}
	bal1 = ibe.AddCiphers(bal1, c1)
	var writes []Entry
	if bytes.Equal(pkID1, pkID2) {
		writes = []Entry{{Key: pkID1, Value: ibe.AddCiphers(bal1, c2).Bytes()}}
	} else {
		bal2, err := l.balance(ctx, pkID2)
		if err != nil {
			return err
		}
		writes = []Entry{
			{Key: pkID1, Value: bal1.Bytes()},
			{Key: pkID2, Value: ibe.AddCiphers(bal2, c2).Bytes()},
		}
	}
	if err := l.store.PutAll(ctx, writes...); err != nil {
		return err
	}
	l.log.VI(1).Infof("transfer from account %s to account %s", accountLabel(pkID1), accountLabel(pkID2))
	l.emit(Event{Kind: EventTransfer, Account: pkID1})
	return nil
}

// VerifyBurn checks an encoded burn proof against an encoded burn
// statement. It returns ErrMalformed for undecodable input and
// ErrBurnVerification for proofs that do not verify.
func (l *Ledger) VerifyBurn(ctx context.Context, statement, proof []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	st, err := zk.ParseBurnStatement(statement)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	p, err := zk.ParseBurnProof(proof)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if err := zk.VerifyBurn(st, p); err != nil {
		l.log.VI(1).Info("burn proof rejected")
		return ErrBurnVerification
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.emit(Event{Kind: EventBurnVerified, Proof: proof})
	return nil
}

// VerifyTransfer checks an encoded transfer proof against an encoded
// transfer statement. It returns ErrMalformed for undecodable input and
// ErrTransferVerification for proofs that do not verify.
func (l *Ledger) VerifyTransfer(ctx context.Context, statement, proof []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	st, err := zk.ParseTransferStatement(statement)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	p, err := zk.ParseTransferProof(proof)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if err := zk.VerifyTransfer(st, p); err != nil {
		l.log.VI(1).Info("transfer proof rejected")
		return ErrTransferVerification
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.emit(Event{Kind: EventTransferVerified, Proof: proof})
	return nil
}
