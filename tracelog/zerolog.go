// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tracelog

import "github.com/rs/zerolog"

// NewZerolog adapts a zerolog.Logger into a Logger.
func NewZerolog(l zerolog.Logger) Logger { return zerologLogger{l} }

type zerologLogger struct{ l zerolog.Logger }

func (z zerologLogger) Debug(msg string, kv ...interface{}) { event(z.l.Debug(), kv).Msg(msg) }
func (z zerologLogger) Info(msg string, kv ...interface{})  { event(z.l.Info(), kv).Msg(msg) }
func (z zerologLogger) Warn(msg string, kv ...interface{})  { event(z.l.Warn(), kv).Msg(msg) }
func (z zerologLogger) Error(err error, msg string, kv ...interface{}) {
	event(z.l.Error().Err(err), kv).Msg(msg)
}

func event(e *zerolog.Event, kv []interface{}) *zerolog.Event {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, kv[i+1])
	}
	return e
}
