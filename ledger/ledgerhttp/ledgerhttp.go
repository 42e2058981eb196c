// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ledgerhttp serves a ledger over HTTP. Request and response
// bodies are JSON objects whose binary fields (pk_ids, ciphertexts,
// statements and proofs) are standard base64 strings. The pk_id in the
// balance URL is unpadded base64url.
//
//	POST /v1/accounts            {"pk_id"}
//	POST /v1/accounts/deposit    {"pk_id", "amount"}
//	POST /v1/accounts/withdraw   {"pk_id", "amount"}
//	POST /v1/transfers           {"pk_id1", "pk_id2", "enc_amount1", "enc_amount2"}
//	POST /v1/proofs/burn         {"statement", "proof"}
//	POST /v1/proofs/transfer     {"statement", "proof"}
//	GET  /v1/accounts/{pkid}/balance
package ledgerhttp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"v.io/x/aibe/ibe"
	"v.io/x/aibe/ledger"
	"v.io/x/aibe/vlog"
)

const maxBodyBytes = 1 << 20

// Ledger is the set of ledger operations the handler serves.
type Ledger interface {
	Register(ctx context.Context, pkID []byte) error
	Deposit(ctx context.Context, pkID []byte, amount uint64) error
	Withdraw(ctx context.Context, pkID []byte, amount uint64) error
	Transfer(ctx context.Context, pkID1, pkID2, enc1, enc2 []byte) error
	VerifyBurn(ctx context.Context, statement, proof []byte) error
	VerifyTransfer(ctx context.Context, statement, proof []byte) error
	Balance(ctx context.Context, pkID []byte) (ibe.CipherText, error)
}

type AccountRequest struct {
	PkID []byte `json:"pk_id"`
}

type AmountRequest struct {
	PkID   []byte `json:"pk_id"`
	Amount uint64 `json:"amount"`
}

type TransferRequest struct {
	PkID1      []byte `json:"pk_id1"`
	PkID2      []byte `json:"pk_id2"`
	EncAmount1 []byte `json:"enc_amount1"`
	EncAmount2 []byte `json:"enc_amount2"`
}

type ProofRequest struct {
	Statement []byte `json:"statement"`
	Proof     []byte `json:"proof"`
}

type BalanceResponse struct {
	PkID    []byte `json:"pk_id"`
	Balance []byte `json:"balance"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type handler struct {
	ledger Ledger
	log    vlog.Logger
}

// NewHandler returns the HTTP API for l. Requests are logged to logger at
// verbosity 1 and failures at the error level.
func NewHandler(l Ledger, logger vlog.Logger) http.Handler {
	h := &handler{ledger: l, log: logger}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		h.writeJSON(w, r, http.StatusOK, StatusResponse{Status: "ok"})
	})
	r.Route("/v1", func(r chi.Router) {
		r.Post("/accounts", h.register)
		r.Post("/accounts/deposit", h.amount(l.Deposit))
		r.Post("/accounts/withdraw", h.amount(l.Withdraw))
		r.Get("/accounts/{pkid}/balance", h.balance)
		r.Post("/transfers", h.transfer)
		r.Post("/proofs/burn", h.proof(l.VerifyBurn))
		r.Post("/proofs/transfer", h.proof(l.VerifyTransfer))
	})
	return r
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		if h.log.V(1) {
			zl := h.log.Structured()
			zl.Info().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("elapsed", time.Since(start)).
				Msg("http request")
		}
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrAccountNotRegistered):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrAccountExists):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrMalformed):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrBurnVerification), errors.Is(err, ledger.ErrTransferVerification):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (h *handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.VI(1).Infof("%s %s: writing response: %v", r.Method, r.URL.Path, err)
	}
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.log.Errorf("%s %s: %v", r.Method, r.URL.Path, err)
		msg = "internal error"
	}
	h.writeJSON(w, r, status, ErrorResponse{Error: msg})
}

func (h *handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		h.writeJSON(w, r, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON: " + err.Error()})
		return false
	}
	return true
}

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var req AccountRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.ledger.Register(r.Context(), req.PkID); err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusCreated, StatusResponse{Status: "registered"})
}

func (h *handler) amount(op func(context.Context, []byte, uint64) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AmountRequest
		if !h.decode(w, r, &req) {
			return
		}
		if err := op(r.Context(), req.PkID, req.Amount); err != nil {
			h.fail(w, r, err)
			return
		}
		h.writeJSON(w, r, http.StatusOK, StatusResponse{Status: "ok"})
	}
}

func (h *handler) transfer(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.ledger.Transfer(r.Context(), req.PkID1, req.PkID2, req.EncAmount1, req.EncAmount2); err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, StatusResponse{Status: "ok"})
}

func (h *handler) proof(verify func(context.Context, []byte, []byte) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ProofRequest
		if !h.decode(w, r, &req) {
			return
		}
		if err := verify(r.Context(), req.Statement, req.Proof); err != nil {
			h.fail(w, r, err)
			return
		}
		h.writeJSON(w, r, http.StatusOK, StatusResponse{Status: "verified"})
	}
}

func (h *handler) balance(w http.ResponseWriter, r *http.Request) {
	pkID, err := base64.RawURLEncoding.DecodeString(chi.URLParam(r, "pkid"))
	if err != nil {
		h.writeJSON(w, r, http.StatusBadRequest, ErrorResponse{Error: "invalid pk_id: " + err.Error()})
		return
	}
	ct, err := h.ledger.Balance(r.Context(), pkID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, BalanceResponse{PkID: pkID, Balance: ct.Bytes()})
}
