// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"v.io/x/aibe/buildinfo"
)

func init() {
	register(command{
		name:  "version",
		short: "print build metadata as JSON",
		flags: func() interface{} { return &struct{}{} },
		run: func(env *env, _ interface{}) error {
			_, err := fmt.Fprintln(env.stdout, buildinfo.Info())
			return err
		},
	})
}
