// Copyright 2015 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vlog is a leveled logging facade in the style of glog: Info and
// Error logs plus V-leveled verbose logging (vlog.VI(2).Infof(...)). Output
// is produced by github.com/rs/zerolog, either as human readable console
// lines or as JSON objects.
package vlog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

const consoleTimeFormat = "0102 15:04:05.000000"

type logger struct {
	name string
	// stats are indexed by severity: 0 for INFO, 1 for ERROR and above.
	stats [2]struct{ lines, bytes atomic.Int64 }

	mu         sync.RWMutex // guards updates to the vars below.
	zl         zerolog.Logger
	level      Level
	logDir     string
	file       *os.File
	autoFlush  bool
	configured bool
}

var (
	Log           *logger
	ErrConfigured = errors.New("logger has already been configured")
)

func init() {
	Log = newLogger("aibe")
}

// NewLogger creates a new instance of the logging interface. It writes to
// standard error until configured otherwise.
func NewLogger(name string) Logger {
	return newLogger(name)
}

func newLogger(name string) *logger {
	l := &logger{name: name}
	l.zl = l.build(os.Stderr, false)
	return l
}

type statsHook struct{ l *logger }

func (h statsHook) Run(_ *zerolog.Event, level zerolog.Level, msg string) {
	i := 0
	switch level {
	case zerolog.InfoLevel:
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		i = 1
	default:
		return
	}
	h.l.stats[i].lines.Add(1)
	h.l.stats[i].bytes.Add(int64(len(msg)))
}

func (l *logger) build(w io.Writer, json bool) zerolog.Logger {
	w = zerolog.SyncWriter(w)
	if !json {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: consoleTimeFormat}
	}
	return zerolog.New(w).With().Timestamp().Str("logger", l.name).Logger().Hook(statsHook{l})
}

// Configure configures all future logging. The ErrConfigured error is
// returned if Configure has already been called unless the
// OverridePriorConfiguration option is included.
func (l *logger) Configure(opts ...LoggingOpts) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	override := false
	for _, o := range opts {
		if v, ok := o.(OverridePriorConfiguration); ok {
			override = bool(v)
		}
	}
	if l.configured && !override {
		return ErrConfigured
	}
	var (
		out    io.Writer
		json   bool
		logDir = l.logDir
	)
	for _, o := range opts {
		switch v := o.(type) {
		case Level:
			l.level = v
		case LogDir:
			logDir = string(v)
		case LogToStderr:
			if bool(v) {
				logDir = ""
			}
		case JSON:
			json = bool(v)
		case Output:
			out = v.Writer
		case AutoFlush:
			l.autoFlush = bool(v)
		}
	}
	if out == nil && len(logDir) > 0 {
		if l.file == nil || logDir != l.logDir {
			f, err := os.OpenFile(filepath.Join(logDir, l.name+".log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("failed opening log file in %q: %v", logDir, err)
			}
			l.closeFile()
			l.file = f
		}
		out = l.file
	} else {
		l.closeFile()
		logDir = ""
	}
	if out == nil {
		out = os.Stderr
	}
	l.logDir = logDir
	l.zl = l.build(out, json)
	l.configured = true
	return nil
}

func (l *logger) closeFile() {
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
}

func (l *logger) current() zerolog.Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.zl
}

func (l *logger) maybeFlush() {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.autoFlush && l.file != nil {
		l.file.Sync()
	}
}

// LogDir returns the directory where the log files are written.
func (l *logger) LogDir() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.logDir
}

// Stats returns stats on how many lines/bytes have been written to
// this set of logs.
func (l *logger) Stats() (info, errors LevelStats) {
	info = LevelStats{Lines: l.stats[0].lines.Load(), Bytes: l.stats[0].bytes.Load()}
	errors = LevelStats{Lines: l.stats[1].lines.Load(), Bytes: l.stats[1].bytes.Load()}
	return
}

// Structured returns the zerolog logger currently in use.
func (l *logger) Structured() zerolog.Logger {
	return l.current()
}

// Info logs to the INFO log.
// Arguments are handled in the manner of fmt.Print.
func (l *logger) Info(args ...interface{}) {
	zl := l.current()
	zl.Info().Msg(fmt.Sprint(args...))
	l.maybeFlush()
}

// Infof logs to the INFO log.
// Arguments are handled in the manner of fmt.Printf.
func (l *logger) Infof(format string, args ...interface{}) {
	zl := l.current()
	zl.Info().Msgf(format, args...)
	l.maybeFlush()
}

func (l *logger) V(v Level) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level >= v
}

type discardInfo struct{}

func (*discardInfo) Info(args ...interface{})                 {}
func (*discardInfo) Infof(format string, args ...interface{}) {}

func (l *logger) VI(v Level) InfoLog {
	if l.V(v) {
		return l
	}
	return &discardInfo{}
}

// FlushLog flushes all pending log I/O.
func (l *logger) FlushLog() {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.file != nil {
		l.file.Sync()
	}
}

// Error logs to the ERROR log.
// Arguments are handled in the manner of fmt.Print.
func (l *logger) Error(args ...interface{}) {
	zl := l.current()
	zl.Error().Msg(fmt.Sprint(args...))
	l.maybeFlush()
}

// Errorf logs to the ERROR log.
// Arguments are handled in the manner of fmt.Printf.
func (l *logger) Errorf(format string, args ...interface{}) {
	zl := l.current()
	zl.Error().Msgf(format, args...)
	l.maybeFlush()
}

// Fatal logs to the FATAL log, then calls os.Exit(1).
// Arguments are handled in the manner of fmt.Print.
func (l *logger) Fatal(args ...interface{}) {
	l.FlushLog()
	zl := l.current()
	zl.Fatal().Msg(fmt.Sprint(args...))
}

// Fatalf logs to the FATAL log, then calls os.Exit(1).
// Arguments are handled in the manner of fmt.Printf.
func (l *logger) Fatalf(format string, args ...interface{}) {
	l.FlushLog()
	zl := l.current()
	zl.Fatal().Msgf(format, args...)
}

// Panic is equivalent to Error() followed by a call to panic().
func (l *logger) Panic(args ...interface{}) {
	l.Error(args...)
	panic(fmt.Sprint(args...))
}

// Panicf is equivalent to Errorf() followed by a call to panic().
func (l *logger) Panicf(format string, args ...interface{}) {
	l.Errorf(format, args...)
	panic(fmt.Sprintf(format, args...))
}
