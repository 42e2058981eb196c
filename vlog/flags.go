// Copyright 2015 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vlog

import (
	"github.com/spf13/pflag"
)

// LoggingFlags represents all of the flags that can be used to configure
// logging.
type LoggingFlags struct {
	ToStderr  bool
	LogDir    string
	Verbosity Level
	JSON      bool
}

// RegisterLoggingFlags registers the logging flags with the specified
// flagset and with prefix prepended to their flag names.
//
//	--<prefix>v, -v (when prefix is empty)
//	--<prefix>log_dir
//	--<prefix>logtostderr
//	--<prefix>log_json
func RegisterLoggingFlags(fs *pflag.FlagSet, lf *LoggingFlags, prefix string) {
	if prefix == "" {
		fs.VarP(&lf.Verbosity, "v", "v", "log level for V logs")
	} else {
		fs.Var(&lf.Verbosity, prefix+"v", "log level for V logs")
	}
	fs.StringVar(&lf.LogDir, prefix+"log_dir", "", "if non-empty, write log files to this directory")
	fs.BoolVar(&lf.ToStderr, prefix+"logtostderr", false, "log to standard error instead of files")
	fs.BoolVar(&lf.JSON, prefix+"log_json", false, "write log lines as JSON objects")
}

// ConfigureFromLoggingFlags will configure the logger using the specified
// LoggingFlags. Options in opts are applied after those derived from lf.
func (l *logger) ConfigureFromLoggingFlags(lf *LoggingFlags, opts ...LoggingOpts) error {
	all := []LoggingOpts{
		LogDir(lf.LogDir),
		LogToStderr(lf.ToStderr),
		Level(lf.Verbosity),
		JSON(lf.JSON),
	}
	all = append(all, opts...)
	return l.Configure(all...)
}

// ConfigureFromLoggingFlags configures the package level logger.
func ConfigureFromLoggingFlags(lf *LoggingFlags, opts ...LoggingOpts) error {
	return Log.ConfigureFromLoggingFlags(lf, opts...)
}
