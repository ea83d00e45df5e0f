// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package eventbuf implements the per-thread append-only event
// buffer: a singly linked list of fixed-capacity slot chunks that
// publishes each reservation to readers without the writer ever
// blocking.
//
// One EventBuffer has exactly one writer for its whole lifetime.
// AddSlots must only ever be called by that writer. PopulateHeader
// and WriteTo may be called concurrently by any number of readers,
// concurrently with the writer and with each other.
package eventbuf

import (
	"fmt"

	"github.com/tracecore/tracecore"
)

// DefaultChunkLimit is the slot capacity of a chunk when none is
// configured explicitly.
const DefaultChunkLimit = 16 * 1024 // 64KiB of slots.

// EventBuffer is a per-thread, append-only linked list of chunks.
// Chunks are never reclaimed during the buffer's lifetime: once
// allocated, a chunk's memory address is stable for as long as the
// EventBuffer exists.
type EventBuffer struct {
	chunkLimit int

	head    *chunk // stable for the buffer's lifetime.
	current *chunk // writer-private tail; only AddSlots touches this field.
}

// New creates an EventBuffer whose chunks hold chunkLimit slots each.
// A chunkLimit that is not positive is replaced by DefaultChunkLimit.
func New(chunkLimit int) *EventBuffer {
	if chunkLimit <= 0 {
		chunkLimit = DefaultChunkLimit
	}
	c := newChunk(chunkLimit)
	return &EventBuffer{chunkLimit: chunkLimit, head: c, current: c}
}

// AddSlots reserves n contiguous slots at the tail of the buffer,
// calls fill to populate them, and publishes them to readers only
// after fill returns — so a reader can never observe a published
// slot the writer has not finished writing. It is the only producer
// operation and must only be called by the buffer's single writer
// goroutine. It never blocks and never fails: slot reservation is
// writer-local arithmetic except on the rare path that allocates a
// new chunk.
func (b *EventBuffer) AddSlots(n int, fill func([]tracecore.Slot)) {
	cur := b.current
	if cur.size+n <= len(cur.slots) {
		start := cur.size
		cur.size += n
		fill(cur.slots[start:cur.size])
		cur.publish()
		return
	}
	b.expand(n, fill)
}

// expand allocates a new chunk sized to hold the request (honoring
// oversize reservations: a request larger than chunkLimit gets a
// chunk sized exactly to it, rather than being rejected), lets fill
// populate it, publishes it, and links it as the old tail's
// successor. The old tail needs no fresh publish here: its size was
// already published in full by the AddSlots call that last wrote to
// it, so nothing about sealing it changes what a reader can observe.
func (b *EventBuffer) expand(n int, fill func([]tracecore.Slot)) {
	capacity := b.chunkLimit
	if n > capacity {
		capacity = n
	}
	next := newChunk(capacity)
	next.size = n
	fill(next.slots[:n])
	next.publish()

	b.current.link(next)
	b.current = next
}

// PopulateHeader walks the chunk list from head, summing each
// chunk's published size (acquire load), and writes the resulting
// part header. This defines the length that a subsequent WriteTo call
// using the same header is contractually bound to produce.
func (b *EventBuffer) PopulateHeader(h *tracecore.PartHeader) {
	var slots uint32
	for c := b.head; c != nil; c = c.next.Load() {
		slots += c.publishedSize.Load()
	}
	h.Type = tracecore.PartTypeEventBuffer
	h.Offset = 0
	h.Length = slots * 4
}

// ErrSizeMismatch is returned by WriteTo when the chunk chain cannot
// produce as many bytes as the header declared. Since chunks are
// append-only and published sizes are monotone, this only happens if
// the header came from a different EventBuffer or the buffer has more
// than one writer.
var ErrSizeMismatch = fmt.Errorf("eventbuf: chunk chain ended before header.Length was satisfied")

// WriteTo writes exactly h.Length bytes of little-endian slots, in
// producer order, to out. h must have been populated by a prior
// PopulateHeader call on this same EventBuffer.
//
// The writer may continue producing while WriteTo runs, so a later
// chunk's publishedSize sample taken here can exceed the value
// implied by h (taken earlier, in PopulateHeader). WriteTo bounds its
// output to min(remaining, publishedSize) per chunk so the total
// never exceeds h.Length.
func (b *EventBuffer) WriteTo(h *tracecore.PartHeader, out tracecore.PartWriter) error {
	remaining := int(h.Length / 4)
	for c := b.head; remaining > 0; c = c.next.Load() {
		if c == nil {
			return ErrSizeMismatch
		}
		published := int(c.publishedSize.Load())
		n := remaining
		if published < n {
			n = published
		}
		for i := 0; i < n; i++ {
			if err := appendUint32(out, c.slots[i]); err != nil {
				return err
			}
		}
		remaining -= n
	}
	return out.Align()
}

func appendUint32(out tracecore.PartWriter, v uint32) error {
	var buf [4]byte
	buf[0] = byte(v)
	buf[1] = byte(v >> 8)
	buf[2] = byte(v >> 16)
	buf[3] = byte(v >> 24)
	return out.Append(buf[:])
}
