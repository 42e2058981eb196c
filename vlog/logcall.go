// Copyright 2015 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vlog

import (
	"fmt"
	"path"
	"reflect"
	"runtime"
	"sync/atomic"
)

// logCallLogLevel is the log level beyond which calls are logged.
const logCallLogLevel = 1

// callerSkip skips callerFuncName and LogCall.
const callerSkip = 2

func callerFuncName() string {
	var funcName string
	pc, _, _, ok := runtime.Caller(callerSkip)
	if ok {
		function := runtime.FuncForPC(pc)
		if function != nil {
			funcName = path.Base(function.Name())
		}
	}
	return funcName
}

// LogCall logs that its caller has been called given the arguments
// passed to it.  It returns a function that is supposed to be called
// when the caller returns, logging the caller’s return along with the
// arguments it is provided with.
//
// The caller's function name and a per-process invocation identifier
// are logged automatically. Nothing is logged unless V(1) is enabled.
//
// The canonical way to use LogCall is along the lines of the following:
//
//	func Function(a Type1, b Type2) ReturnType {
//		defer vlog.LogCall(a, b)()
//		// ... function body ...
//		return retVal
//	}
//
// To log the return value as the function returns, the following
// pattern should be used.  Note that pointers to the output
// variables should be passed to the returning function, not the
// variables themselves:
//
//	func Function(a Type1, b Type2) (r ReturnType) {
//		defer vlog.LogCall(a, b)(&r)
//		// ... function body ...
//		return computeReturnValue()
//	}
//
// Note that when using this pattern, you do not need to actually
// assign anything to the named return variable explicitly.  A regular
// return statement would automatically do the proper return variable
// assignments.
func LogCall(v ...interface{}) func(...interface{}) {
	if !V(logCallLogLevel) {
		return func(...interface{}) {}
	}
	callerFuncName := callerFuncName()
	invocationID := newInvocationIdentifier()
	if len(v) > 0 {
		Log.Infof("call[%s %s]: args:%v", callerFuncName, invocationID, v)
	} else {
		Log.Infof("call[%s %s]", callerFuncName, invocationID)
	}
	return func(v ...interface{}) {
		if len(v) > 0 {
			Log.Infof("return[%s %s]: %v", callerFuncName, invocationID, derefSlice(v))
		} else {
			Log.Infof("return[%s %s]", callerFuncName, invocationID)
		}
	}
}

// LogCallf behaves identically to LogCall, except it lets the caller to
// customize the log messages via format specifiers, like the following:
//
//	func Function(a Type1, b Type2) (r, t ReturnType) {
//		defer vlog.LogCallf("a: %v, b: %v", a, b)("(r,t)=(%v,%v)", &r, &t)
//		// ... function body ...
//		return finalR, finalT
//	}
func LogCallf(format string, v ...interface{}) func(string, ...interface{}) {
	if !V(logCallLogLevel) {
		return func(string, ...interface{}) {}
	}
	callerFuncName := callerFuncName()
	invocationID := newInvocationIdentifier()
	Log.Infof("call[%s %s]: %s", callerFuncName, invocationID, fmt.Sprintf(format, v...))
	return func(format string, v ...interface{}) {
		Log.Infof("return[%s %s]: %v", callerFuncName, invocationID, fmt.Sprintf(format, derefSlice(v)...))
	}
}

func derefSlice(slice []interface{}) []interface{} {
	o := make([]interface{}, 0, len(slice))
	for _, x := range slice {
		o = append(o, reflect.Indirect(reflect.ValueOf(x)).Interface())
	}
	return o
}

var invocationCounter uint64

// newInvocationIdentifier generates a unique identifier for a method invocation
// to make it easier to match up log lines for the entry and exit of a function
// when looking at a log transcript.
func newInvocationIdentifier() string {
	const (
		charSet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789abcdefghijklmnopqrstuvwxyz"
		charSetLen = uint64(len(charSet))
	)
	r := []byte{'@'}
	for n := atomic.AddUint64(&invocationCounter, 1); n > 0; n /= charSetLen {
		r = append(r, charSet[n%charSetLen])
	}
	return string(r)
}
