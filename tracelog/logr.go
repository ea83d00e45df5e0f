// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tracelog

import "github.com/go-logr/logr"

// NewLogr adapts a logr.Logger into a Logger. logr has no separate
// warn level, so Warn logs at info with a "level=warn" field.
func NewLogr(l logr.Logger) Logger { return logrLogger{l} }

type logrLogger struct{ l logr.Logger }

func (lg logrLogger) Debug(msg string, kv ...interface{}) { lg.l.V(1).Info(msg, kv...) }
func (lg logrLogger) Info(msg string, kv ...interface{})  { lg.l.Info(msg, kv...) }
func (lg logrLogger) Warn(msg string, kv ...interface{}) {
	lg.l.Info(msg, append([]interface{}{"level", "warn"}, kv...)...)
}
func (lg logrLogger) Error(err error, msg string, kv ...interface{}) { lg.l.Error(err, msg, kv...) }
