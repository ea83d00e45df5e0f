// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tracelog

import "github.com/go-kit/kit/log"

// NewGoKit adapts a go-kit log.Logger into a Logger.
func NewGoKit(l log.Logger) Logger { return gokitLogger{l} }

type gokitLogger struct{ l log.Logger }

func (g gokitLogger) Debug(msg string, kv ...interface{}) { g.log("debug", msg, kv) }
func (g gokitLogger) Info(msg string, kv ...interface{})  { g.log("info", msg, kv) }
func (g gokitLogger) Warn(msg string, kv ...interface{})  { g.log("warn", msg, kv) }
func (g gokitLogger) Error(err error, msg string, kv ...interface{}) {
	g.log("error", msg, append([]interface{}{"error", err}, kv...))
}

func (g gokitLogger) log(level, msg string, kv []interface{}) {
	args := append([]interface{}{"level", level, "msg", msg}, kv...)
	_ = g.l.Log(args...)
}
