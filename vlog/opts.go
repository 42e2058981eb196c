// Copyright 2015 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vlog

import "io"

type LoggingOpts interface {
	LoggingOpt()
}

type AutoFlush bool
type LogDir string
type LogToStderr bool
type JSON bool
type OverridePriorConfiguration bool

// Output directs log output to an arbitrary writer.
type Output struct {
	io.Writer
}

// Enable V-leveled logging at the specified level.
func (Level) LoggingOpt() {}

// log files will be written to this directory, one file per logger name,
// instead of to standard error.
func (LogDir) LoggingOpt() {}

// If true, logs are written to standard error. This is the default.
func (LogToStderr) LoggingOpt() {}

// If true, log lines are written as JSON objects instead of the console
// format.
func (JSON) LoggingOpt() {}

// Output takes precedence over LogDir and LogToStderr.
func (Output) LoggingOpt() {}

// If true, the log file is synced after every call.
func (AutoFlush) LoggingOpt() {}

// If true, allows Configure to be called more than once.
func (OverridePriorConfiguration) LoggingOpt() {}
