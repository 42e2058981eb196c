// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"v.io/x/aibe/group"
	"v.io/x/aibe/ibe"
)

func init() {
	register(
		command{
			name:  "keygen",
			short: "generate a master key pair",
			flags: func() interface{} { return &keygenFlags{} },
			run:   runKeygen,
		},
		command{
			name:  "extract",
			short: "derive the identity key for an identity",
			flags: func() interface{} { return &extractFlags{} },
			run:   runExtract,
		},
		command{
			name:  "encrypt",
			short: "encrypt an amount to an identity",
			flags: func() interface{} { return &encryptFlags{} },
			run:   runEncrypt,
		},
		command{
			name:  "decrypt",
			short: "decrypt a ciphertext with an identity key",
			flags: func() interface{} { return &decryptFlags{} },
			run:   runDecrypt,
		},
		command{
			name:  "pkid",
			short: "print the ledger account key of an identity",
			flags: func() interface{} { return &pkidFlags{} },
			run:   runPkID,
		},
	)
}

type keygenFlags struct{}

type extractFlags struct {
	Msk []byte `flag:"msk,,base64 master secret"`
	ID  string `flag:"id,,identity to extract the key for"`
}

type encryptFlags struct {
	Mpk []byte `flag:"mpk,,base64 master public key"`
	ID  string `flag:"id,,identity to encrypt to"`
	Msg uint64 `flag:"msg,0,amount to encrypt"`
}

type decryptFlags struct {
	Sk    []byte `flag:"sk,,base64 identity key"`
	ID    string `flag:"id,,identity the key was extracted for"`
	Ct    []byte `flag:"ct,,base64 ciphertext"`
	Bound uint64 `flag:"bound,1000,exclusive upper bound on the plaintext; at most 2^36"`
}

type pkidFlags struct {
	Mpk []byte `flag:"mpk,,base64 master public key"`
	ID  string `flag:"id,,identity"`
}

// maxBound is the largest plaintext bound accepted on the command line.
// Decryption builds a table of about sqrt(bound) GT elements, 384 bytes
// each, so 2^36 needs roughly 100MB.
const maxBound = 1 << 36

func checkBound(bound uint64) error {
	if bound == 0 {
		return errors.New("--bound must be positive")
	}
	if bound > maxBound {
		return fmt.Errorf("--bound %d exceeds the maximum of %d", bound, uint64(maxBound))
	}
	return nil
}

func printBlob(w io.Writer, name string, b []byte) {
	fmt.Fprintf(w, "%s: %s\n", name, base64.StdEncoding.EncodeToString(b))
}

func required(name string, missing bool) error {
	if missing {
		return fmt.Errorf("--%s is required", name)
	}
	return nil
}

func runKeygen(env *env, _ interface{}) error {
	var master *ibe.MasterKeyPair
	err := env.timer.Time("keygen", func() (err error) {
		master, err = ibe.GenerateKey(env.rand)
		return
	})
	if err != nil {
		return err
	}
	printBlob(env.stdout, "msk", master.Secret.Bytes())
	printBlob(env.stdout, "mpk", master.Public.Bytes())
	return nil
}

func runExtract(env *env, flags interface{}) error {
	fl := flags.(*extractFlags)
	if err := required("msk", len(fl.Msk) == 0); err != nil {
		return err
	}
	master, err := ibe.ParseMasterKeyPair(fl.Msk)
	if err != nil {
		return err
	}
	var sk ibe.IdSecretKey
	env.timer.Time("extract", func() error {
		sk = master.Extract(fl.ID)
		return nil
	})
	printBlob(env.stdout, "sk", sk.Bytes())
	return nil
}

func runEncrypt(env *env, flags interface{}) error {
	fl := flags.(*encryptFlags)
	if err := required("mpk", len(fl.Mpk) == 0); err != nil {
		return err
	}
	mpk, err := group.ParseG1(fl.Mpk)
	if err != nil {
		return fmt.Errorf("invalid master public key: %w", err)
	}
	var ct ibe.CipherText
	err = env.timer.Time("encrypt", func() (err error) {
		ct, err = ibe.Encrypt(env.rand, group.NewScalar(fl.Msg), fl.ID, mpk)
		return
	})
	if err != nil {
		return err
	}
	printBlob(env.stdout, "ct", ct.Bytes())
	return nil
}

func runDecrypt(env *env, flags interface{}) error {
	fl := flags.(*decryptFlags)
	if err := checkBound(fl.Bound); err != nil {
		return err
	}
	if err := required("sk", len(fl.Sk) == 0); err != nil {
		return err
	}
	if err := required("ct", len(fl.Ct) == 0); err != nil {
		return err
	}
	sk, err := ibe.ParseIdSecretKey(fl.ID, fl.Sk)
	if err != nil {
		return err
	}
	ct, err := ibe.ParseCipherText(fl.Ct)
	if err != nil {
		return err
	}
	var msg group.Scalar
	err = env.timer.Time("decrypt", func() (err error) {
		msg, err = ibe.Decrypt(ct, sk, fl.Bound)
		return
	})
	if err != nil {
		return fmt.Errorf("decrypt with bound %d: %w", fl.Bound, err)
	}
	fmt.Fprintf(env.stdout, "msg: %v\n", msg)
	return nil
}

func runPkID(env *env, flags interface{}) error {
	fl := flags.(*pkidFlags)
	if err := required("mpk", len(fl.Mpk) == 0); err != nil {
		return err
	}
	mpk, err := group.ParseG1(fl.Mpk)
	if err != nil {
		return fmt.Errorf("invalid master public key: %w", err)
	}
	pkID := ibe.PkID(mpk, fl.ID).Bytes()
	printBlob(env.stdout, "pk_id", pkID)
	fmt.Fprintf(env.stdout, "pk_id_url: %s\n", base64.RawURLEncoding.EncodeToString(pkID))
	return nil
}
