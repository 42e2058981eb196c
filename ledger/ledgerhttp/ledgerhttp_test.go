// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ledgerhttp_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"v.io/x/aibe/group"
	"v.io/x/aibe/ibe"
	"v.io/x/aibe/internal/seededrand"
	"v.io/x/aibe/ledger"
	"v.io/x/aibe/ledger/ledgerhttp"
	"v.io/x/aibe/vlog"
	"v.io/x/aibe/zk"
)

func newServer(t *testing.T) *httptest.Server {
	logger := vlog.NewLogger("ledgerhttp-test")
	require.NoError(t, logger.Configure(vlog.Output{Writer: io.Discard}, vlog.Level(1)))
	l := ledger.New(ledger.NewMemStore(), ledger.WithLogger(logger))
	srv := httptest.NewServer(ledgerhttp.NewHandler(l, logger))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path string, body interface{}) (int, map[string]string) {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func getBalance(t *testing.T, srv *httptest.Server, pkID []byte) (int, ledgerhttp.BalanceResponse) {
	t.Helper()
	resp, err := http.Get(srv.URL + "/v1/accounts/" + base64.RawURLEncoding.EncodeToString(pkID) + "/balance")
	require.NoError(t, err)
	defer resp.Body.Close()
	var out ledgerhttp.BalanceResponse
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out
}

func TestAccountLifecycle(t *testing.T) {
	srv := newServer(t)
	rand := seededrand.FromString("http")
	master, err := ibe.GenerateKey(rand)
	require.NoError(t, err)
	sk := master.Extract("zico")
	pkID := ibe.PkID(master.Public, "zico").Bytes()

	status, _ := getBalance(t, srv, pkID)
	require.Equal(t, http.StatusNotFound, status)

	status, _ = post(t, srv, "/v1/accounts", ledgerhttp.AccountRequest{PkID: pkID})
	require.Equal(t, http.StatusCreated, status)
	status, out := post(t, srv, "/v1/accounts", ledgerhttp.AccountRequest{PkID: pkID})
	require.Equal(t, http.StatusConflict, status)
	require.Contains(t, out["error"], "already registered")

	status, _ = post(t, srv, "/v1/accounts/deposit", ledgerhttp.AmountRequest{PkID: pkID, Amount: 50})
	require.Equal(t, http.StatusOK, status)
	status, _ = post(t, srv, "/v1/accounts/withdraw", ledgerhttp.AmountRequest{PkID: pkID, Amount: 15})
	require.Equal(t, http.StatusOK, status)

	status, bal := getBalance(t, srv, pkID)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, pkID, bal.PkID)
	ct, err := ibe.ParseCipherText(bal.Balance)
	require.NoError(t, err)
	got, err := ibe.Decrypt(ct, sk, 100)
	require.NoError(t, err)
	require.True(t, got.Equal(group.NewScalar(35)))

	prover, err := zk.NewBurnProver(rand)
	require.NoError(t, err)
	st := zk.NewBurnStatement(master.Public, ct)
	proof, err := prover.GenerateProof(st, zk.NewBurnWitness(group.NewScalar(35), master.Secret, "zico"))
	require.NoError(t, err)
	status, out = post(t, srv, "/v1/proofs/burn", ledgerhttp.ProofRequest{Statement: st.Bytes(), Proof: proof.Bytes()})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "verified", out["status"])

	wrong, err := prover.GenerateProof(st, zk.NewBurnWitness(group.NewScalar(34), master.Secret, "zico"))
	require.NoError(t, err)
	status, _ = post(t, srv, "/v1/proofs/burn", ledgerhttp.ProofRequest{Statement: st.Bytes(), Proof: wrong.Bytes()})
	require.Equal(t, http.StatusUnprocessableEntity, status)
	status, _ = post(t, srv, "/v1/proofs/transfer", ledgerhttp.ProofRequest{Statement: st.Bytes(), Proof: proof.Bytes()})
	require.Equal(t, http.StatusBadRequest, status)
}

func TestTransferRoute(t *testing.T) {
	srv := newServer(t)
	rand := seededrand.FromString("http-transfer")
	m1, err := ibe.GenerateKey(rand)
	require.NoError(t, err)
	m2, err := ibe.GenerateKey(rand)
	require.NoError(t, err)
	pk1, pk2 := ibe.PkID(m1.Public, "zico1").Bytes(), ibe.PkID(m2.Public, "zico2").Bytes()
	for _, pk := range [][]byte{pk1, pk2} {
		status, _ := post(t, srv, "/v1/accounts", ledgerhttp.AccountRequest{PkID: pk})
		require.Equal(t, http.StatusCreated, status)
	}
	status, _ := post(t, srv, "/v1/accounts/deposit", ledgerhttp.AmountRequest{PkID: pk1, Amount: 60})
	require.Equal(t, http.StatusOK, status)

	out, err := ibe.Encrypt(rand, group.NewScalar(40).Neg(), "zico1", m1.Public)
	require.NoError(t, err)
	in, err := ibe.Encrypt(rand, group.NewScalar(40), "zico2", m2.Public)
	require.NoError(t, err)
	status, _ = post(t, srv, "/v1/transfers", ledgerhttp.TransferRequest{PkID1: pk1, PkID2: pk2, EncAmount1: out.Bytes(), EncAmount2: in.Bytes()})
	require.Equal(t, http.StatusOK, status)

	for _, tc := range []struct {
		pkID []byte
		sk   ibe.IdSecretKey
		want uint64
	}{
		{pk1, m1.Extract("zico1"), 20},
		{pk2, m2.Extract("zico2"), 40},
	} {
		status, bal := getBalance(t, srv, tc.pkID)
		require.Equal(t, http.StatusOK, status)
		ct, err := ibe.ParseCipherText(bal.Balance)
		require.NoError(t, err)
		got, err := ibe.Decrypt(ct, tc.sk, 100)
		require.NoError(t, err)
		require.True(t, got.Equal(group.NewScalar(tc.want)))
	}

	status, _ = post(t, srv, "/v1/transfers", ledgerhttp.TransferRequest{PkID1: pk1, PkID2: pk2, EncAmount1: out.Bytes()})
	require.Equal(t, http.StatusBadRequest, status)
}

func TestBadRequests(t *testing.T) {
	srv := newServer(t)
	resp, err := http.Post(srv.URL+"/v1/accounts", "application/json", bytes.NewBufferString(`{"pk_id": "not base64!"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/v1/accounts", "application/json", bytes.NewBufferString(`{"unknown": 1}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/v1/accounts/@@@/balance")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	status, _ := post(t, srv, "/v1/accounts/deposit", ledgerhttp.AmountRequest{PkID: []byte{1, 2, 3}, Amount: 1})
	require.Equal(t, http.StatusBadRequest, status)

	resp, err = http.Get(srv.URL + "/v1/nothing")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	srv := newServer(t)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out ledgerhttp.StatusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, "ok", out.Status)
}
