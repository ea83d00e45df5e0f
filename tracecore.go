// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tracecore defines the on-disk wire format shared by every
// component of the tracing runtime: the chunk and part headers, the
// part type discriminants, and the 4-byte alignment rule that every
// part payload obeys.
package tracecore

// Slot is the fundamental unit of the event stream: one 32-bit
// little-endian word. All event payloads occupy a whole number of
// slots.
type Slot = uint32

// ChunkHeaderSize is the byte size of a chunk header: six u32 fields.
const ChunkHeaderSize = 6 * 4

// PartHeaderSize is the byte size of a single part header: three u32
// fields.
const PartHeaderSize = 3 * 4

// Part type discriminants. Unknown part types are ignored by readers.
const (
	// PartTypeStringTable marks a part payload as a sequence of
	// null-terminated, id-ordered strings.
	PartTypeStringTable uint32 = 0x30000
	// PartTypeEventBuffer marks a part payload as a stream of
	// little-endian u32 slots in producer order.
	PartTypeEventBuffer uint32 = 0x20002
)

// ChunkTypeEventSnapshot is the chunk type written by Runtime.Save: a
// StringTable part followed by zero or more EventBuffer parts.
const ChunkTypeEventSnapshot uint32 = 1

// ChunkHeader is the fixed 6-word header that precedes every chunk's
// part headers and payloads. Length is filled in by OutputBuffer.StartChunk
// once the part layout is known; callers only need to set ID, Type,
// StartTime and EndTime.
type ChunkHeader struct {
	ID        uint32
	Type      uint32
	Length    uint32
	StartTime uint32
	EndTime   uint32
	PartCount uint32
}

// PartHeader describes one part within a chunk: its type, its byte
// offset relative to the start of the chunk's payload region, and its
// unpadded byte length. Offset is computed by OutputBuffer.StartChunk;
// callers set Type and Length before calling it.
type PartHeader struct {
	Type   uint32
	Offset uint32
	Length uint32
}

// PartWriter is the subset of chunkio.OutputBuffer a Part needs to
// write its payload: raw byte append and alignment. Declaring it here
// lets stringtable and eventbuf depend on tracecore instead of on
// chunkio directly, avoiding an import cycle (chunkio.OutputBuffer
// implements this interface, and chunkio.Part's WriteTo takes it).
type PartWriter interface {
	Append(p []byte) error
	Align() error
}

// Align4 rounds n up to the next multiple of 4.
func Align4(n uint32) uint32 {
	if rem := n % 4; rem != 0 {
		n += 4 - rem
	}
	return n
}
