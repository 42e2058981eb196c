// Copyright 2015 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vlog

import (
	"strconv"

	"github.com/rs/zerolog"
)

type InfoLog interface {
	// Info logs to the INFO log.
	// Arguments are handled in the manner of fmt.Print.
	Info(args ...interface{})

	// Infof logs to the INFO log.
	// Arguments are handled in the manner of fmt.Printf.
	Infof(format string, args ...interface{})
}

type Verbosity interface {
	// V returns true if the configured logging level is greater than or equal to its parameter
	V(level Level) bool
	// VI is like V, except that it returns an instance of the Info
	// interface that will either log (if level >= the configured level)
	// or discard its parameters. This allows for logger.VI(2).Info
	// style usage.
	VI(level Level) InfoLog
}

// Level specifies a level of verbosity for V logs.
// It can be set via the Level optional parameter to Configure.
// It implements the flag.Value and pflag.Value interfaces to support
// command line option parsing.
type Level int

// Set is part of the flag.Value interface.
func (l *Level) Set(v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return err
	}
	*l = Level(n)
	return nil
}

// Get is part of the flag.Getter interface.
func (l *Level) Get() interface{} {
	return *l
}

// String is part of the flag.Value interface.
func (l *Level) String() string {
	return strconv.Itoa(int(*l))
}

// Type is part of the pflag.Value interface.
func (l *Level) Type() string {
	return "level"
}

// LevelStats tracks the number of lines of output and number of bytes
// of message text for one severity.
type LevelStats struct {
	Lines, Bytes int64
}

type Logger interface {
	InfoLog
	Verbosity

	// FlushLog flushes all pending log I/O.
	FlushLog()

	// Error logs to the ERROR log.
	// Arguments are handled in the manner of fmt.Print.
	Error(args ...interface{})

	// Errorf logs to the ERROR log.
	// Arguments are handled in the manner of fmt.Printf.
	Errorf(format string, args ...interface{})

	// Fatal logs to the FATAL log, then calls os.Exit(1).
	// Arguments are handled in the manner of fmt.Print.
	Fatal(args ...interface{})

	// Fatalf logs to the FATAL log, then calls os.Exit(1).
	// Arguments are handled in the manner of fmt.Printf.
	Fatalf(format string, args ...interface{})

	// Panic is equivalent to Error() followed by a call to panic().
	Panic(args ...interface{})

	// Panicf is equivalent to Errorf() followed by a call to panic().
	Panicf(format string, args ...interface{})

	// Configure configures all future logging. ErrConfigured is returned
	// if the logger was configured before, unless the
	// OverridePriorConfiguration option is included.
	Configure(opts ...LoggingOpts) error

	// Stats returns how many lines and bytes have been written at the INFO
	// and ERROR severities.
	Stats() (info, errors LevelStats)

	// LogDir returns the directory log files are written to, or "" when
	// logging to a stream.
	LogDir() string

	// Structured returns the underlying zerolog logger for callers that
	// attach typed fields.
	Structured() zerolog.Logger
}
