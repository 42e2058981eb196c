// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"v.io/x/aibe/dbutil"
	"v.io/x/aibe/ledger"
	"v.io/x/aibe/ledger/ledgerhttp"
	"v.io/x/aibe/vlog"
)

func init() {
	register(command{
		name:  "serve",
		short: "serve the encrypted balance ledger over HTTP",
		flags: func() interface{} { return &serveFlags{} },
		run:   runServe,
	})
}

type serveFlags struct {
	Addr            string        `flag:"addr,localhost:8080,address to listen on"`
	SQLConfig       string        `flag:"sql-config,,path to a JSON SQL configuration file; balances are kept in memory if empty"`
	TxIsolation     string        `flag:"tx-isolation,REPEATABLE-READ,MySQL transaction isolation level"`
	ShutdownTimeout time.Duration `flag:"shutdown-timeout,10s,time allowed for in-flight requests on shutdown"`
}

func openStore(ctx context.Context, fl *serveFlags) (ledger.Store, func(), error) {
	if fl.SQLConfig == "" {
		vlog.Info("keeping balances in memory")
		return ledger.NewMemStore(), func() {}, nil
	}
	cfg, err := dbutil.ParseSqlConfigFromFile(fl.SQLConfig)
	if err != nil {
		return nil, nil, err
	}
	db, err := dbutil.OpenMySQL(ctx, cfg, fl.TxIsolation)
	if err != nil {
		return nil, nil, err
	}
	store := ledger.NewSQLStore(db)
	if err := store.CreateTable(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	vlog.Infof("keeping balances in table %s", ledger.SQLTable)
	return store, func() { db.Close() }, nil
}

func runServe(env *env, flags interface{}) error {
	fl := flags.(*serveFlags)
	ctx, stop := signal.NotifyContext(env.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, fl)
	if err != nil {
		return err
	}
	defer closeStore()

	ln, err := net.Listen("tcp", fl.Addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           ledgerhttp.NewHandler(ledger.New(store), vlog.Log),
		ReadHeaderTimeout: 10 * time.Second,
	}
	fmt.Fprintf(env.stdout, "listening on %s\n", ln.Addr())
	vlog.Infof("serving ledger on %s", ln.Addr())

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	vlog.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), fl.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
