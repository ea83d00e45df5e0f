// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package event

import (
	"testing"

	"github.com/tracecore/tracecore/stringtable"
)

func TestArgTypeCodes(t *testing.T) {
	for _, test := range []struct {
		a    Arg
		code byte
		wide bool
	}{
		{Int32(1), 'i', false},
		{Uint32(1), 'u', false},
		{Int64(1), 'q', true},
		{Uint64(1), 'Q', true},
		{Float64(1), 'f', true},
		{Bool(true), 'b', false},
		{StringID(1), 's', false},
	} {
		if got := test.a.TypeCode(); got != test.code {
			t.Errorf("TypeCode() = %c, want %c", got, test.code)
		}
		if got := test.a.Wide(); got != test.wide {
			t.Errorf("Wide() = %v, want %v", got, test.wide)
		}
	}
}

func TestStringInternsAndWraps(t *testing.T) {
	var tbl stringtable.StringTable
	a := String(&tbl, "hello")
	if got := a.TypeCode(); got != 's' {
		t.Fatalf("TypeCode() = %c, want 's'", got)
	}
	slots := a.AppendSlots(nil)
	if len(slots) != 1 {
		t.Fatalf("AppendSlots returned %d slots, want 1", len(slots))
	}
	if want := tbl.GetStringId("hello"); slots[0] != want {
		t.Errorf("slot = %d, want interned id %d", slots[0], want)
	}
}
