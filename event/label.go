// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package event

import (
	"github.com/tracecore/tracecore/event/internal/value"
	"github.com/tracecore/tracecore/stringtable"
)

// Arg is one packed argument value attached to a scope-enter or
// instantaneous event. Constructing an Arg never allocates, except
// when String interns a string the table has not seen before.
type Arg struct {
	v value.Value
}

func Int32(v int32) Arg     { return Arg{value.OfInt32(v)} }
func Uint32(v uint32) Arg   { return Arg{value.OfUint32(v)} }
func Int64(v int64) Arg     { return Arg{value.OfInt64(v)} }
func Uint64(v uint64) Arg   { return Arg{value.OfUint64(v)} }
func Float64(v float64) Arg { return Arg{value.OfFloat64(v)} }
func Bool(v bool) Arg       { return Arg{value.OfBool(v)} }

// StringID wraps a string id already resolved from a StringTable.
// Prefer this over String on a hot path that reuses the same string
// across calls, since it skips the table lookup.
func StringID(id uint32) Arg { return Arg{value.OfStringID(id)} }

// String interns v in tbl and wraps the resulting id. This acquires
// tbl's mutex; call sites that pass a fixed set of strings should
// resolve the id once and reuse StringID instead.
func String(tbl *stringtable.StringTable, v string) Arg {
	return Arg{value.OfStringID(tbl.GetStringId(v))}
}

// TypeCode returns the byte used for this argument in a scope's
// argument-type schema string.
func (a Arg) TypeCode() byte { return a.v.TypeCode() }

// Wide reports whether this argument occupies two slots.
func (a Arg) Wide() bool { return a.v.Wide() }

// AppendSlots appends this argument's slots to dst.
func (a Arg) AppendSlots(dst []uint32) []uint32 { return a.v.AppendSlots(dst) }
