// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package eventtest provides an in-memory event.ScopeHost for tests,
// along with a decoder that turns its buffer back into Records so a
// test can assert on what a Scope actually wrote.
package eventtest

import (
	"encoding/binary"

	"github.com/tracecore/tracecore"
	"github.com/tracecore/tracecore/event"
	"github.com/tracecore/tracecore/eventbuf"
	"github.com/tracecore/tracecore/stringtable"
)

// Host is a single-thread event.ScopeHost backed by one EventBuffer
// and one StringTable. It is not safe for concurrent writers; tests
// that need more than one producer should create one Host per
// simulated thread.
type Host struct {
	buf *eventbuf.EventBuffer
	tbl *stringtable.StringTable
}

// NewHost creates a Host with the default chunk limit.
func NewHost() *Host {
	return &Host{buf: eventbuf.New(eventbuf.DefaultChunkLimit), tbl: &stringtable.StringTable{}}
}

func (h *Host) Buffer() *eventbuf.EventBuffer     { return h.buf }
func (h *Host) Strings() *stringtable.StringTable { return h.tbl }

// Records decodes every event written to the host's buffer so far.
// argCounts must list, in order, the number of argument slots each
// ENTER or EVENT record carries; LEAVE records consume no entry.
func (h *Host) Records(argCounts []int) ([]event.Record, error) {
	var hdr tracecore.PartHeader
	h.buf.PopulateHeader(&hdr)

	w := &sliceWriter{}
	if err := h.buf.WriteTo(&hdr, w); err != nil {
		return nil, err
	}

	slots := make([]tracecore.Slot, len(w.buf)/4)
	for i := range slots {
		slots[i] = binary.LittleEndian.Uint32(w.buf[i*4:])
	}
	return event.DecodeRecords(slots, argCounts)
}

type sliceWriter struct {
	buf []byte
}

func (w *sliceWriter) Append(p []byte) error {
	w.buf = append(w.buf, p...)
	return nil
}

func (w *sliceWriter) Align() error {
	for len(w.buf)%4 != 0 {
		w.buf = append(w.buf, 0)
	}
	return nil
}

// Clock hands out a deterministic, monotonically increasing sequence
// of timestamps so event ordering assertions don't depend on wall
// clock resolution.
type Clock struct {
	next uint64
}

// Next returns the next timestamp in the sequence, starting at 1.
func (c *Clock) Next() uint64 {
	c.next++
	return c.next
}
