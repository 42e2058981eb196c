// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

var testSeed = strings.Repeat("a5", 32)

func runCmd(t *testing.T, args ...string) (stdout, stderr string) {
	t.Helper()
	var out, errs bytes.Buffer
	if err := run(append([]string{"--seed", testSeed}, args...), &out, &errs); err != nil {
		t.Fatalf("aibe %v: %v\nstderr: %s", args, err, errs.String())
	}
	return out.String(), errs.String()
}

// fields parses "name: value" lines.
func fields(t *testing.T, out string) map[string]string {
	t.Helper()
	m := map[string]string{}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		k, v, ok := strings.Cut(line, ": ")
		if !ok {
			t.Fatalf("malformed output line %q", line)
		}
		m[k] = v
	}
	return m
}

func TestKeyLifecycle(t *testing.T) {
	out, _ := runCmd(t, "keygen")
	keys := fields(t, out)
	if len(keys["msk"]) == 0 || len(keys["mpk"]) == 0 {
		t.Fatalf("keygen output %q", out)
	}
	out, _ = runCmd(t, "extract", "--msk", keys["msk"], "--id", "zico")
	sk := fields(t, out)["sk"]
	out, _ = runCmd(t, "encrypt", "--mpk", keys["mpk"], "--id", "zico", "--msg", "35")
	ct := fields(t, out)["ct"]
	out, _ = runCmd(t, "decrypt", "--sk", sk, "--id", "zico", "--ct", ct, "--bound", "100")
	if got, want := fields(t, out)["msg"], "35"; got != want {
		t.Errorf("decrypted %v, want %v", got, want)
	}

	// The amount is outside a bound of 10.
	var stdout, stderr bytes.Buffer
	err := run([]string{"decrypt", "--sk", sk, "--ct", ct, "--bound", "10"}, &stdout, &stderr)
	if err == nil || !strings.Contains(err.Error(), "bound 10") {
		t.Errorf("decrypt with a small bound: %v", err)
	}

	out, _ = runCmd(t, "pkid", "--mpk", keys["mpk"], "--id", "zico")
	ids := fields(t, out)
	std, err := base64.StdEncoding.DecodeString(ids["pk_id"])
	if err != nil {
		t.Fatal(err)
	}
	url, err := base64.RawURLEncoding.DecodeString(ids["pk_id_url"])
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(std, url) || len(std) != 384 {
		t.Errorf("pk_id encodings differ or have the wrong size: %d, %d", len(std), len(url))
	}
}

func TestSeedIsDeterministic(t *testing.T) {
	a, _ := runCmd(t, "keygen")
	b, _ := runCmd(t, "keygen")
	if a != b {
		t.Errorf("seeded keygen differed:\n%s\n%s", a, b)
	}
	var out, errs bytes.Buffer
	if err := run([]string{"keygen"}, &out, &errs); err != nil {
		t.Fatal(err)
	}
	if out.String() == a {
		t.Errorf("unseeded keygen matched the seeded output")
	}
}

func TestBurn(t *testing.T) {
	out, _ := runCmd(t, "burn", "--id", "zico", "--bound", "100")
	got := fields(t, out)
	if got["verified"] != "true" {
		t.Errorf("burn output %q", out)
	}
	if len(got["statement"]) == 0 || len(got["proof"]) == 0 {
		t.Errorf("missing statement or proof in %q", out)
	}
}

func TestTransfer(t *testing.T) {
	out, stderr := runCmd(t, "--timing", "transfer", "--balance", "60", "--amount", "40")
	got := fields(t, out)
	if got["remaining"] != "20" || got["received"] != "40" || got["verified"] != "true" {
		t.Errorf("transfer output %q", out)
	}
	for _, step := range []string{"keygen", "register", "encrypt", "prove", "verify", "settle", "decrypt"} {
		if !strings.Contains(stderr, step) {
			t.Errorf("timing output is missing %q: %s", step, stderr)
		}
	}
}

func TestErrors(t *testing.T) {
	for i, tc := range []struct {
		args  []string
		usage bool
		want  string
	}{
		{nil, true, ""},
		{[]string{"frobnicate"}, true, ""},
		{[]string{"keygen", "extra"}, true, ""},
		{[]string{"extract", "--bogus"}, true, ""},
		{[]string{"extract", "--id", "zico"}, false, "--msk is required"},
		{[]string{"encrypt", "--mpk", "AAAA"}, false, "invalid master public key"},
		{[]string{"burn", "--bound", "0"}, false, "--bound must be positive"},
		{[]string{"burn", "--bound", "68719476737"}, false, "exceeds the maximum"},
		{[]string{"decrypt", "--bound", "18446744073709551615"}, false, "exceeds the maximum"},
		{[]string{"transfer", "--bound", "1099511627776"}, false, "exceeds the maximum"},
		{[]string{"transfer", "--balance", "10", "--amount", "20"}, false, "exceeds"},
		{[]string{"--seed", "abcd", "keygen"}, false, "seed"},
	} {
		var out, errs bytes.Buffer
		err := run(tc.args, &out, &errs)
		if err == nil {
			t.Errorf("%d: %v: expected an error", i, tc.args)
			continue
		}
		if got := errors.Is(err, errUsage); got != tc.usage {
			t.Errorf("%d: %v: usage error %v, want %v: %v", i, tc.args, got, tc.usage, err)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%d: %v: error %q does not contain %q", i, tc.args, err, tc.want)
		}
	}
}

func TestVersion(t *testing.T) {
	out, _ := runCmd(t, "version")
	if !strings.HasPrefix(out, `{"goVersion":`) {
		t.Errorf("version output %q", out)
	}
}
