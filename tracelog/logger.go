// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tracelog carries the runtime's own diagnostics — the
// handful of warnings and errors produced by Save, RegisterThread,
// and friends — to whichever third-party logger the host application
// already uses. It deliberately knows nothing about traced events:
// those travel through the binary wire format, not through a logger.
package tracelog

// Logger receives tracecore's diagnostic output. keysAndValues is an
// alternating key/value sequence, the same convention used by logr
// and zap's SugaredLogger.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(err error, msg string, keysAndValues ...interface{})
}

// Discard is a Logger that drops everything. It is the Runtime's
// default so that tracing never pays for logging it didn't ask for.
var Discard Logger = discard{}

type discard struct{}

func (discard) Debug(string, ...interface{})        {}
func (discard) Info(string, ...interface{})         {}
func (discard) Warn(string, ...interface{})         {}
func (discard) Error(error, string, ...interface{}) {}
