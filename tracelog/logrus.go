// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tracelog

import "github.com/sirupsen/logrus"

// NewLogrus adapts a *logrus.Logger into a Logger.
func NewLogrus(l *logrus.Logger) Logger { return logrusLogger{l} }

type logrusLogger struct{ l *logrus.Logger }

func (lg logrusLogger) Debug(msg string, kv ...interface{}) { fields(lg.l, kv).Debug(msg) }
func (lg logrusLogger) Info(msg string, kv ...interface{})  { fields(lg.l, kv).Info(msg) }
func (lg logrusLogger) Warn(msg string, kv ...interface{})  { fields(lg.l, kv).Warn(msg) }
func (lg logrusLogger) Error(err error, msg string, kv ...interface{}) {
	fields(lg.l, kv).WithError(err).Error(msg)
}

func fields(l *logrus.Logger, kv []interface{}) *logrus.Entry {
	f := make(logrus.Fields, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		f[key] = kv[i+1]
	}
	return l.WithFields(f)
}
