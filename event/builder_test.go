// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package event

import (
	"testing"

	"github.com/tracecore/tracecore"
	"github.com/tracecore/tracecore/eventbuf"
	"github.com/tracecore/tracecore/stringtable"
)

type testHost struct {
	buf *eventbuf.EventBuffer
	tbl *stringtable.StringTable
}

func newTestHost() *testHost {
	return &testHost{buf: eventbuf.New(eventbuf.DefaultChunkLimit), tbl: &stringtable.StringTable{}}
}

func (h *testHost) Buffer() *eventbuf.EventBuffer     { return h.buf }
func (h *testHost) Strings() *stringtable.StringTable { return h.tbl }

func TestScopeEnterLeaveRoundTrip(t *testing.T) {
	h := newTestHost()
	s := NewScope("Widget.Render")

	s.Enter(h, 100, Int32(7))
	s.Leave(h, 200)

	slots := drain(t, h)
	records, err := DecodeRecords(slots, []int{1})
	if err != nil {
		t.Fatalf("DecodeRecords: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Kind != Enter || records[0].Timestamp() != 100 {
		t.Errorf("enter record = %+v", records[0])
	}
	if got := records[0].Args; len(got) != 1 || got[0] != 7 {
		t.Errorf("enter args = %v, want [7]", got)
	}
	if records[1].Kind != Leave || records[1].Timestamp() != 200 {
		t.Errorf("leave record = %+v", records[1])
	}
	if records[0].ScopeID == records[1].ScopeID {
		t.Error("enter and leave referenced the same scope id, want distinct name/schema ids")
	}
}

func TestScopeSchemaInternedOnce(t *testing.T) {
	h := newTestHost()
	s := NewScope("Widget.Render")

	s.Enter(h, 1, Int32(1))
	s.Enter(h, 2, Int32(2))

	if got := h.tbl.Len(); got != 1 {
		t.Fatalf("StringTable.Len() = %d, want 1 (schema interned once)", got)
	}
}

func TestScopeWideArgSlotCount(t *testing.T) {
	h := newTestHost()
	s := NewScope("Widget.Measure")
	s.Enter(h, 1, Int64(1<<40), Int32(3))

	slots := drain(t, h)
	if len(slots) != fixedSlots+2+1 {
		t.Fatalf("wrote %d slots, want %d", len(slots), fixedSlots+3)
	}
	records, err := DecodeRecords(slots, []int{3})
	if err != nil {
		t.Fatalf("DecodeRecords: %v", err)
	}
	args := records[0].Args
	if got := uint64(args[0]) | uint64(args[1])<<32; got != 1<<40 {
		t.Errorf("int64 arg = %#x, want %#x", got, uint64(1)<<40)
	}
	if args[2] != 3 {
		t.Errorf("int32 arg = %d, want 3", args[2])
	}
}

func drain(t *testing.T, h *testHost) []uint32 {
	t.Helper()
	var ph tracecore.PartHeader
	h.buf.PopulateHeader(&ph)
	w := &sliceBuf{}
	if err := h.buf.WriteTo(&ph, w); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	out := make([]uint32, len(w.b)/4)
	for i := range out {
		out[i] = uint32(w.b[i*4]) | uint32(w.b[i*4+1])<<8 | uint32(w.b[i*4+2])<<16 | uint32(w.b[i*4+3])<<24
	}
	return out
}

type sliceBuf struct{ b []byte }

func (w *sliceBuf) Append(p []byte) error { w.b = append(w.b, p...); return nil }
func (w *sliceBuf) Align() error {
	for len(w.b)%4 != 0 {
		w.b = append(w.b, 0)
	}
	return nil
}
