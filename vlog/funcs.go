// Copyright 2015 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vlog

// Info logs to the INFO log.
// Arguments are handled in the manner of fmt.Print.
func Info(args ...interface{}) {
	Log.Info(args...)
}

// Infof logs to the INFO log.
// Arguments are handled in the manner of fmt.Printf.
func Infof(format string, args ...interface{}) {
	Log.Infof(format, args...)
}

// V returns true if the configured logging level is greater than or equal to its parameter
func V(level Level) bool {
	return Log.V(level)
}

// VI is like V, except that it returns an instance of the Info
// interface that will either log (if level >= the configured level)
// or discard its parameters. This allows for logger.VI(2).Info
// style usage.
func VI(level Level) InfoLog {
	return Log.VI(level)
}

// FlushLog flushes all pending log I/O.
func FlushLog() {
	Log.FlushLog()
}

// Error logs to the ERROR log.
// Arguments are handled in the manner of fmt.Print.
func Error(args ...interface{}) {
	Log.Error(args...)
}

// Errorf logs to the ERROR log.
// Arguments are handled in the manner of fmt.Printf.
func Errorf(format string, args ...interface{}) {
	Log.Errorf(format, args...)
}

// Fatal logs to the FATAL log, then calls os.Exit(1).
// Arguments are handled in the manner of fmt.Print.
func Fatal(args ...interface{}) {
	Log.Fatal(args...)
}

// Fatalf logs to the FATAL log, then calls os.Exit(1).
// Arguments are handled in the manner of fmt.Printf.
func Fatalf(format string, args ...interface{}) {
	Log.Fatalf(format, args...)
}

// Configure configures all future logging of the package level logger.
func Configure(opts ...LoggingOpts) error {
	return Log.Configure(opts...)
}

// Stats returns stats on how many lines/bytes have been written by the
// package level logger.
func Stats() (info, errors LevelStats) {
	return Log.Stats()
}

// Panic is equivalent to Error() followed by a call to panic().
func Panic(args ...interface{}) {
	Log.Panic(args...)
}

// Panicf is equivalent to Errorf() followed by a call to panic().
func Panicf(format string, args ...interface{}) {
	Log.Panicf(format, args...)
}
