// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package value provides Value, a non-allocating tagged union over the
// handful of argument kinds the event-encoding format supports: 32-
// and 64-bit integers, a float64, a bool, and a pre-interned string
// id. Unlike an interface{}, storing one of these in a Value never
// allocates.
package value

import (
	"fmt"
	"math"
)

// A kind is the kind of value stored. It also doubles as the single
// type-code byte written into a scope's argument-type schema string.
type kind byte

const (
	int32Kind    kind = 'i'
	uint32Kind   kind = 'u'
	int64Kind    kind = 'q'
	uint64Kind   kind = 'Q'
	float64Kind  kind = 'f'
	boolKind     kind = 'b'
	stringIDKind kind = 's'
)

// Value holds one argument's value along with enough information to
// pack it into event slots.
type Value struct {
	packed uint64
	k      kind
}

func OfInt32(x int32) Value     { return Value{packed: uint64(uint32(x)), k: int32Kind} }
func OfUint32(x uint32) Value   { return Value{packed: uint64(x), k: uint32Kind} }
func OfInt64(x int64) Value     { return Value{packed: uint64(x), k: int64Kind} }
func OfUint64(x uint64) Value   { return Value{packed: x, k: uint64Kind} }
func OfFloat64(x float64) Value { return Value{packed: math.Float64bits(x), k: float64Kind} }

func OfBool(x bool) Value {
	var b uint64
	if x {
		b = 1
	}
	return Value{packed: b, k: boolKind}
}

// OfStringID wraps a string id already assigned by a StringTable.
// Only the id travels in the slot stream, never the string bytes.
func OfStringID(id uint32) Value { return Value{packed: uint64(id), k: stringIDKind} }

// Wide reports whether this value occupies two slots, low word
// first, rather than one.
func (v Value) Wide() bool {
	return v.k == int64Kind || v.k == uint64Kind || v.k == float64Kind
}

// TypeCode is the byte used for this value in a scope's
// comma-separated argument-type schema string (e.g. "i" for int32,
// "q" for int64).
func (v Value) TypeCode() byte { return byte(v.k) }

// AppendSlots appends this value's constituent slots (one, or two
// low-word-first for wide kinds) to dst and returns the result.
func (v Value) AppendSlots(dst []uint32) []uint32 {
	if v.Wide() {
		return append(dst, uint32(v.packed), uint32(v.packed>>32))
	}
	return append(dst, uint32(v.packed))
}

func (v Value) AsInt32() int32     { v.check(int32Kind); return int32(v.packed) }
func (v Value) AsUint32() uint32   { v.check(uint32Kind); return uint32(v.packed) }
func (v Value) AsInt64() int64     { v.check(int64Kind); return int64(v.packed) }
func (v Value) AsUint64() uint64   { v.check(uint64Kind); return v.packed }
func (v Value) AsFloat64() float64 { v.check(float64Kind); return math.Float64frombits(v.packed) }
func (v Value) AsBool() bool       { v.check(boolKind); return v.packed != 0 }
func (v Value) AsStringID() uint32 { v.check(stringIDKind); return uint32(v.packed) }

func (v Value) check(want kind) {
	if v.k != want {
		panic(fmt.Sprintf("value: wrong kind %c, want %c", v.k, want))
	}
}

func (v Value) String() string {
	switch v.k {
	case int32Kind:
		return fmt.Sprint(v.AsInt32())
	case uint32Kind:
		return fmt.Sprint(v.AsUint32())
	case int64Kind:
		return fmt.Sprint(v.AsInt64())
	case uint64Kind:
		return fmt.Sprint(v.AsUint64())
	case float64Kind:
		return fmt.Sprint(v.AsFloat64())
	case boolKind:
		return fmt.Sprint(v.AsBool())
	default:
		return fmt.Sprintf("stringID(%d)", v.AsStringID())
	}
}
