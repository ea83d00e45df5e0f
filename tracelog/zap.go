// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tracelog

import "go.uber.org/zap"

// NewZap adapts a *zap.SugaredLogger into a Logger.
func NewZap(l *zap.SugaredLogger) Logger { return zapLogger{l} }

type zapLogger struct{ l *zap.SugaredLogger }

func (z zapLogger) Debug(msg string, kv ...interface{}) { z.l.Debugw(msg, kv...) }
func (z zapLogger) Info(msg string, kv ...interface{})  { z.l.Infow(msg, kv...) }
func (z zapLogger) Warn(msg string, kv ...interface{})  { z.l.Warnw(msg, kv...) }
func (z zapLogger) Error(err error, msg string, kv ...interface{}) {
	z.l.Errorw(msg, append([]interface{}{"error", err}, kv...)...)
}
