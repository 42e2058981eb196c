// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command aibe generates identity-based keys, encrypts and decrypts
// amounts, runs the burn and transfer proof protocols end to end and
// serves the encrypted-balance ledger over HTTP.
//
// Usage:
//
//	aibe [global flags] <command> [command flags]
//
// Keys, ciphertexts, statements and proofs are read and printed as
// standard base64. Global flags:
//
//	--seed <hex>   run deterministically from a 32 byte ChaCha20 seed
//	--timing       print the time taken by each step to stderr
//	-v <level>     log verbosity
package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/pflag"

	"v.io/x/aibe/cmd/flagvar"
	"v.io/x/aibe/internal/seededrand"
	"v.io/x/aibe/timing"
	"v.io/x/aibe/vlog"
)

var errUsage = errors.New("usage error")

type globalFlags struct {
	Seed   flagvar.HexBytes `flag:"seed,,hex encoded 32 byte seed; makes the run deterministic"`
	Timing bool             `flag:"timing,false,print the time taken by each step"`
}

// env is what every command runs with.
type env struct {
	ctx            context.Context
	stdout, stderr io.Writer
	rand           io.Reader
	timer          *timing.Timer
}

type command struct {
	name  string
	short string
	// flags returns a pointer to a new tagged flag struct.
	flags func() interface{}
	run   func(env *env, flags interface{}) error
}

var commands = map[string]command{}

func register(cmds ...command) {
	for _, c := range cmds {
		commands[c.name] = c
	}
}

func usage(w io.Writer, global *pflag.FlagSet) {
	fmt.Fprintln(w, "usage: aibe [global flags] <command> [command flags]")
	fmt.Fprintln(w, "\ncommands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-10s %s\n", name, commands[name].short)
	}
	fmt.Fprintln(w, "\nglobal flags:")
	fmt.Fprint(w, global.FlagUsages())
}

func run(args []string, stdout, stderr io.Writer) error {
	var (
		gf globalFlags
		lf vlog.LoggingFlags
	)
	fs := pflag.NewFlagSet("aibe", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SetInterspersed(false)
	if err := flagvar.RegisterFlagsInStruct(fs, "flag", &gf, nil, nil); err != nil {
		return err
	}
	vlog.RegisterLoggingFlags(fs, &lf, "")
	fs.Usage = func() { usage(stderr, fs) }
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	opts := []vlog.LoggingOpts{vlog.OverridePriorConfiguration(true)}
	if lf.LogDir == "" {
		opts = append(opts, vlog.Output{Writer: stderr})
	}
	if err := vlog.ConfigureFromLoggingFlags(&lf, opts...); err != nil {
		return err
	}
	defer vlog.FlushLog()

	if fs.NArg() == 0 {
		usage(stderr, fs)
		return errUsage
	}
	cmd, ok := commands[fs.Arg(0)]
	if !ok {
		fmt.Fprintf(stderr, "aibe: unknown command %q\n", fs.Arg(0))
		usage(stderr, fs)
		return errUsage
	}

	e := &env{ctx: context.Background(), stdout: stdout, stderr: stderr, rand: rand.Reader, timer: timing.NewTimer(cmd.name)}
	if len(gf.Seed) > 0 {
		r, err := seededrand.New(gf.Seed)
		if err != nil {
			return err
		}
		e.rand = r
		vlog.VI(1).Infof("using a seeded random stream")
	}

	flags := cmd.flags()
	cfs := pflag.NewFlagSet(cmd.name, pflag.ContinueOnError)
	cfs.SetOutput(stderr)
	if err := flagvar.RegisterFlagsInStruct(cfs, "flag", flags, nil, nil); err != nil {
		return err
	}
	cfs.Usage = func() {
		fmt.Fprintf(stderr, "usage: aibe %s [flags]\n\n%s\n\nflags:\n%s", cmd.name, cmd.short, cfs.FlagUsages())
	}
	if err := cfs.Parse(fs.Args()[1:]); err != nil {
		return errUsage
	}
	if cfs.NArg() > 0 {
		fmt.Fprintf(stderr, "aibe %s: unexpected arguments %v\n", cmd.name, cfs.Args())
		return errUsage
	}
	err := cmd.run(e, flags)
	if gf.Timing {
		e.timer.Finish()
		fmt.Fprint(stderr, e.timer.String())
	}
	return err
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "aibe: %v\n", err)
		}
		os.Exit(1)
	}
}
