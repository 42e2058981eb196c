// Copyright 2015 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package buildinfo describes the binary it is linked into: the Go
// version, the module version and VCS revision recorded by the go command,
// and optional metadata injected at link time.
package buildinfo

import (
	"encoding/json"
	"runtime"
	"runtime/debug"
)

// These variables are filled in at link time, using:
//
//	-ldflags "-X v.io/x/aibe/buildinfo.<varname>=<value>"
var timestamp, username string

// T describes binary metadata.
type T struct {
	GoVersion      string `json:"goVersion"`
	ModulePath     string `json:"modulePath,omitempty"`
	ModuleVersion  string `json:"moduleVersion,omitempty"`
	Revision       string `json:"revision,omitempty"`
	Modified       bool   `json:"modified,omitempty"`
	BuildTimestamp string `json:"buildTimestamp,omitempty"`
	BuildUser      string `json:"buildUser,omitempty"`
	BuildPlatform  string `json:"buildPlatform"`
}

// Info returns metadata about the current binary.
func Info() *T {
	t := &T{
		GoVersion:      runtime.Version(),
		BuildTimestamp: timestamp,
		BuildUser:      username,
		BuildPlatform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		t.fill(bi)
	}
	return t
}

func (t *T) fill(bi *debug.BuildInfo) {
	t.ModulePath = bi.Main.Path
	t.ModuleVersion = bi.Main.Version
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			t.Revision = s.Value
		case "vcs.modified":
			t.Modified = s.Value == "true"
		case "vcs.time":
			if t.BuildTimestamp == "" {
				t.BuildTimestamp = s.Value
			}
		}
	}
}

// String returns the binary metadata as a JSON-encoded string, under the
// expectation that clients may want to parse it for specific bits of metadata.
func (t *T) String() string {
	jsonT, err := json.Marshal(t)
	if err != nil {
		return ""
	}
	return string(jsonT)
}
