// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ibe

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"v.io/x/aibe/dlog"
	"v.io/x/aibe/group"
	"v.io/x/aibe/internal/seededrand"
)

func mustKey(t testing.TB, label string) *MasterKeyPair {
	master, err := GenerateKey(seededrand.FromString(label))
	if err != nil {
		t.Fatal(err)
	}
	return master
}

func decryptUint64(t *testing.T, ct CipherText, sk IdSecretKey, bound uint64) uint64 {
	m, err := Decrypt(ct, sk, bound)
	if err != nil {
		t.Fatal(err)
	}
	v, ok := m.Uint64()
	if !ok {
		t.Fatalf("plaintext %v does not fit in uint64", m)
	}
	return v
}

func TestBFCorrectness(t *testing.T) {
	// The "zico" scenario: 35 under bound 100.
	rand := seededrand.FromString("zico")
	master, err := GenerateKey(rand)
	if err != nil {
		t.Fatal(err)
	}
	if !master.Public.Equal(MasterPublicKey(master.Secret)) {
		t.Fatal("mpk != g1^msk")
	}
	sk := Extract("zico", master.Secret)
	if sk.ID != "zico" || !sk.Key.Equal(master.Extract("zico").Key) {
		t.Fatal("Extract is not deterministic")
	}
	C, err := Encrypt(rand, group.NewScalar(35), "zico", master.Public)
	if err != nil {
		t.Fatal(err)
	}
	C2, err := Encrypt(rand, group.NewScalar(35), "zico", master.Public)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(C.Bytes(), C2.Bytes()) {
		t.Errorf("Repeated encryptions of the identical plaintext should not produce identical ciphertext")
	}
	if got := decryptUint64(t, C, sk, 100); got != 35 {
		t.Errorf("Got %d, want 35", got)
	}
	if got := decryptUint64(t, C2, sk, 100); got != 35 {
		t.Errorf("Got %d, want 35", got)
	}
	// Wrong identity and wrong bound.
	if _, err := Decrypt(C, Extract("bob", master.Secret), 100); !errors.Is(err, ErrOutOfBound) {
		t.Errorf("Decrypt with another identity's key: err = %v", err)
	}
	if _, err := Decrypt(C, sk, 35); !errors.Is(err, dlog.ErrOutOfBound) {
		t.Errorf("Decrypt with bound 35: err = %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	rand := seededrand.FromString("roundtrip")
	master := mustKey(t, "roundtrip-master")
	const bound = 50
	sk := master.Extract("alice")
	table := dlog.NewTable(group.GTBase(), bound)
	for msg := uint64(0); msg < bound; msg += 7 {
		C, err := Encrypt(rand, group.NewScalar(msg), "alice", master.Public)
		if err != nil {
			t.Fatal(err)
		}
		got, err := DecryptWithTable(C, sk, table)
		if err != nil {
			t.Fatalf("msg %d: %v", msg, err)
		}
		if v, _ := got.Uint64(); v != msg {
			t.Errorf("Got %d, want %d", v, msg)
		}
	}
}

func TestEncryptWithRandomness(t *testing.T) {
	master := mustKey(t, "fixed-r")
	r := group.NewScalar(9)
	a := EncryptWithRandomness(group.NewScalar(3), "alice", master.Public, r)
	b := EncryptWithRandomness(group.NewScalar(3), "alice", master.Public, r)
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Fatal("encryption is not a function of its randomness")
	}
	if !a.C1.Equal(group.G1BaseMul(r)) {
		t.Error("c1 != g1^r")
	}
	want := group.GTBaseExp(group.NewScalar(3)).Mul(PkID(master.Public, "alice").Exp(r))
	if !a.C2.Equal(want) {
		t.Error("c2 != e(g1,g2)^m · pk_id^r")
	}
}

func TestHomomorphism(t *testing.T) {
	rand := seededrand.FromString("homomorphism")
	master := mustKey(t, "homomorphism-master")
	sk := master.Extract("alice")
	for _, tc := range []struct{ a, b uint64 }{{0, 0}, {1, 2}, {20, 40}, {99, 0}} {
		A, _ := Encrypt(rand, group.NewScalar(tc.a), "alice", master.Public)
		B, _ := Encrypt(rand, group.NewScalar(tc.b), "alice", master.Public)
		if got := decryptUint64(t, AddCiphers(A, B), sk, 100); got != tc.a+tc.b {
			t.Errorf("%d+%d: got %d", tc.a, tc.b, got)
		}
		if tc.a >= tc.b {
			D, err := SubCiphers(A, B)
			if err != nil {
				t.Fatal(err)
			}
			if got := decryptUint64(t, D, sk, 100); got != tc.a-tc.b {
				t.Errorf("%d-%d: got %d", tc.a, tc.b, got)
			}
		}
	}
}

func TestPublicAmountAndZeroCipher(t *testing.T) {
	rand := seededrand.FromString("public")
	master := mustKey(t, "public-master")
	sk := master.Extract("alice")
	balance := ZeroCipher(PkID(master.Public, "alice"))
	if got := decryptUint64(t, balance, sk, 10); got != 0 {
		t.Fatalf("zero cipher decrypts to %d", got)
	}
	balance = AddCiphers(balance, PublicAmount(group.NewScalar(60)))
	C, _ := Encrypt(rand, group.NewScalar(15), "alice", master.Public)
	balance = AddCiphers(balance, C)
	balance = AddCiphers(balance, PublicAmount(group.NewScalar(25).Neg()))
	if got := decryptUint64(t, balance, sk, 100); got != 50 {
		t.Errorf("balance = %d, want 50", got)
	}
	// A public amount is valid under any identity.
	other := mustKey(t, "public-other")
	if got := decryptUint64(t, PublicAmount(group.NewScalar(7)), other.Extract("bob"), 10); got != 7 {
		t.Errorf("public amount decrypts to %d under another key", got)
	}
}

func TestEncryptCorrelated(t *testing.T) {
	rand := seededrand.FromString("correlated")
	m1, m2 := mustKey(t, "correlated-1"), mustKey(t, "correlated-2")
	c, err := EncryptCorrelated(rand, group.NewScalar(40), [2]string{"zico1", "zico2"}, [2]group.G1{m1.Public, m2.Public})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(c.Ciphers[0].C1.Bytes(), c.Ciphers[1].C1.Bytes()) {
		t.Fatal("correlated ciphertexts have different c1")
	}
	if !c.HashedIDs[0].Equal(HashID("zico1")) || !c.HashedIDs[1].Equal(HashID("zico2")) {
		t.Error("wrong hashed identities")
	}
	want := EncryptWithRandomness(group.NewScalar(40), "zico1", m1.Public, c.R)
	if !bytes.Equal(want.Bytes(), c.Ciphers[0].Bytes()) {
		t.Error("correlated ciphertext differs from EncryptWithRandomness")
	}
	if got := decryptUint64(t, c.Ciphers[0], m1.Extract("zico1"), 100); got != 40 {
		t.Errorf("first ciphertext decrypts to %d", got)
	}
	if got := decryptUint64(t, c.Ciphers[1], m2.Extract("zico2"), 100); got != 40 {
		t.Errorf("second ciphertext decrypts to %d", got)
	}
}

func TestNilRand(t *testing.T) {
	if _, err := GenerateKey(nil); !errors.Is(err, group.ErrNilRand) {
		t.Errorf("GenerateKey(nil) err = %v", err)
	}
	master := mustKey(t, "nil-rand")
	if _, err := Encrypt(nil, group.NewScalar(1), "a", master.Public); !errors.Is(err, group.ErrNilRand) {
		t.Errorf("Encrypt(nil) err = %v", err)
	}
	if _, err := EncryptCorrelated(nil, group.NewScalar(1), [2]string{"a", "b"}, [2]group.G1{master.Public, master.Public}); !errors.Is(err, group.ErrNilRand) {
		t.Errorf("EncryptCorrelated(nil) err = %v", err)
	}
}

func TestMarshal(t *testing.T) {
	rand := seededrand.FromString("marshal")
	master := mustKey(t, "marshal-master")
	C, _ := Encrypt(rand, group.NewScalar(5), "alice", master.Public)
	data := C.Bytes()
	if len(data) != CipherTextSize {
		t.Fatalf("ciphertext is %d bytes, want %d", len(data), CipherTextSize)
	}
	got, err := ParseCipherText(data)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.Bytes(), data) {
		t.Error("ciphertext round trip changed the encoding")
	}
	if _, err := ParseCipherText(data[:len(data)-1]); !errors.Is(err, group.ErrInvalidEncoding) {
		t.Errorf("short ciphertext: err = %v", err)
	}
	sk := master.Extract("alice")
	sk2, err := ParseIdSecretKey("alice", sk.Bytes())
	if err != nil || !sk2.Key.Equal(sk.Key) {
		t.Errorf("ParseIdSecretKey = (%v, %v)", sk2, err)
	}
	m2, err := ParseMasterKeyPair(master.Secret.Bytes())
	if err != nil || !m2.Public.Equal(master.Public) {
		t.Errorf("ParseMasterKeyPair = (%v, %v)", m2, err)
	}
}

func TestPkIDCache(t *testing.T) {
	master := mustKey(t, "pkid")
	c := NewPkIDCache(time.Minute)
	a := c.PkID(master.Public, "alice")
	if !a.Equal(PkID(master.Public, "alice")) {
		t.Fatal("cached PkID differs from PkID")
	}
	if b := c.PkID(master.Public, "alice"); !b.Equal(a) {
		t.Fatal("second lookup differs")
	}
	c.PkID(master.Public, "bob")
	if got := c.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
	c.Flush()
	if got := c.Len(); got != 0 {
		t.Errorf("Len() after Flush = %d", got)
	}
	if !NewPkIDCache(0).PkID(master.Public, "alice").Equal(a) {
		t.Error("non-expiring cache differs")
	}
}

var (
	benchMaster = func() *MasterKeyPair {
		m, err := GenerateKey(seededrand.FromString("bench"))
		if err != nil {
			panic(err)
		}
		return m
	}()
	benchSK = benchMaster.Extract("alice")
)

func BenchmarkExtract(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Extract("alice", benchMaster.Secret)
	}
}

func BenchmarkEncrypt(b *testing.B) {
	rand := seededrand.FromString("bench-encrypt")
	for i := 0; i < b.N; i++ {
		if _, err := Encrypt(rand, group.NewScalar(35), "alice", benchMaster.Public); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecrypt(b *testing.B) {
	C, err := Encrypt(seededrand.FromString("bench-decrypt"), group.NewScalar(35), "alice", benchMaster.Public)
	if err != nil {
		b.Fatal(err)
	}
	table := dlog.NewTable(group.GTBase(), 100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := DecryptWithTable(C, benchSK, table); err != nil {
			b.Fatal(err)
		}
	}
}
