// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stringtable

import (
	"bytes"
	"testing"

	"github.com/tracecore/tracecore"
)

type appendAligner struct {
	buf     bytes.Buffer
	written int
}

func (w *appendAligner) Append(p []byte) error {
	w.buf.Write(p)
	w.written += len(p)
	return nil
}

func (w *appendAligner) Align() error {
	for w.written%4 != 0 {
		w.buf.WriteByte(0)
		w.written++
	}
	return nil
}

func TestInterningDeterminism(t *testing.T) {
	var tbl StringTable
	id1 := tbl.GetStringId("alpha")
	id2 := tbl.GetStringId("beta")
	id1Again := tbl.GetStringId("alpha")

	if id1 != id1Again {
		t.Errorf("GetStringId(\"alpha\") = %d then %d, want equal", id1, id1Again)
	}
	if id1 == id2 {
		t.Errorf("distinct strings got the same id %d", id1)
	}
}

func TestDenseIds(t *testing.T) {
	var tbl StringTable
	names := []string{"a", "b", "c", "d", "e"}
	seen := make(map[uint32]bool)
	for _, n := range names {
		seen[tbl.GetStringId(n)] = true
	}
	for i := range names {
		if !seen[uint32(i)] {
			t.Errorf("id %d missing from dense id set", i)
		}
	}
}

func TestPopulateHeaderAndWriteTo(t *testing.T) {
	var tbl StringTable
	tbl.GetStringId("T")
	tbl.GetStringId("S")
	tbl.GetStringId("S:i")

	snap := tbl.Snapshot()
	var h tracecore.PartHeader
	snap.PopulateHeader(&h)
	if h.Type != tracecore.PartTypeStringTable {
		t.Errorf("Type = %#x, want %#x", h.Type, tracecore.PartTypeStringTable)
	}
	want := uint32(len("T\x00S\x00S:i\x00"))
	if h.Length != want {
		t.Errorf("Length = %d, want %d", h.Length, want)
	}

	w := &appendAligner{}
	if err := snap.WriteTo(&h, w); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if got := w.buf.String(); got != "T\x00S\x00S:i\x00" {
		t.Errorf("payload = %q, want %q", got, "T\x00S\x00S:i\x00")
	}
	if w.written%4 != 0 {
		t.Errorf("written bytes %d not 4-aligned", w.written)
	}
}

func TestClearInvalidatesIds(t *testing.T) {
	var tbl StringTable
	tbl.GetStringId("x")
	tbl.Clear()
	if got := tbl.Len(); got != 0 {
		t.Fatalf("Len after Clear = %d, want 0", got)
	}
	id := tbl.GetStringId("x")
	if id != 0 {
		t.Errorf("first id after Clear = %d, want 0", id)
	}
}

func TestEmptySnapshot(t *testing.T) {
	var tbl StringTable
	snap := tbl.Snapshot()
	var h tracecore.PartHeader
	snap.PopulateHeader(&h)
	if h.Length != 0 {
		t.Fatalf("Length = %d, want 0", h.Length)
	}
	w := &appendAligner{}
	if err := snap.WriteTo(&h, w); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if w.buf.Len() != 0 {
		t.Errorf("payload len = %d, want 0", w.buf.Len())
	}
}
