// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chunkio implements the chunked binary output encoder: an
// OutputBuffer that wraps a byte sink, computes part layout and chunk
// length, and back-patches part offsets before the parts themselves
// are written.
package chunkio

import (
	"encoding/binary"

	"github.com/tracecore/tracecore"
)

// Sink is the byte-sink interface the core writes to. Any io.Writer
// satisfies it; the core never seeks.
type Sink interface {
	Write(p []byte) (n int, err error)
}

// Part is something that can report the size of its serialized form
// and then write that exact number of bytes. stringtable.Snapshot and
// *eventbuf.EventBuffer both implement it.
type Part interface {
	// PopulateHeader computes this part's type and length and writes
	// them into h. Offset is left zero; OutputBuffer.StartChunk fills
	// it in.
	PopulateHeader(h *tracecore.PartHeader)
	// WriteTo writes exactly h.Length bytes to out, then aligns. It
	// reports an error if it cannot produce that many bytes.
	WriteTo(h *tracecore.PartHeader, out tracecore.PartWriter) error
}

var _ tracecore.PartWriter = (*OutputBuffer)(nil)

// OutputBuffer wraps a byte sink with aligned append primitives and
// chunk-layout bookkeeping. It does not buffer the chunk in memory:
// every Append call is forwarded straight to the sink, so the caller
// must call StartChunk, then each part's WriteTo, in order.
type OutputBuffer struct {
	sink    Sink
	written int64 // bytes written since the OutputBuffer was created; used for alignment.
}

// New wraps sink in an OutputBuffer.
func New(sink Sink) *OutputBuffer {
	return &OutputBuffer{sink: sink}
}

// AppendUint32 writes v as four little-endian bytes.
func (o *OutputBuffer) AppendUint32(v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return o.Append(buf[:])
}

// Append writes p verbatim.
func (o *OutputBuffer) Append(p []byte) error {
	n, err := o.sink.Write(p)
	o.written += int64(n)
	if err != nil {
		return &SinkWriteError{Err: err}
	}
	return nil
}

// Align pads with zero bytes until the total bytes written is a
// multiple of 4.
func (o *OutputBuffer) Align() error {
	rem := o.written % 4
	if rem == 0 {
		return nil
	}
	var pad [4]byte
	return o.Append(pad[:4-rem])
}

// StartChunk computes each part's offset (relative to the start of
// the part payload region) and the overall chunk length, then writes
// the chunk header followed by all part headers. parts must already
// have Type and Length populated (e.g. via Part.PopulateHeader);
// StartChunk fills in Offset in place.
//
// After StartChunk returns, the caller must invoke each part's
// WriteTo, in the same order as parts. OutputBuffer does not itself
// enforce that ordering: a caller that gets it wrong produces a
// chunk whose part headers and payloads disagree, which a reader
// detects as a size mismatch or garbage payload.
func (o *OutputBuffer) StartChunk(header tracecore.ChunkHeader, parts []tracecore.PartHeader) error {
	header.PartCount = uint32(len(parts))
	length := uint32(tracecore.ChunkHeaderSize) + uint32(len(parts))*uint32(tracecore.PartHeaderSize)
	offset := uint32(0)
	for i := range parts {
		parts[i].Offset = offset
		aligned := tracecore.Align4(parts[i].Length)
		length += aligned
		offset += aligned
	}
	header.Length = length

	for _, v := range [...]uint32{header.ID, header.Type, header.Length, header.StartTime, header.EndTime, header.PartCount} {
		if err := o.AppendUint32(v); err != nil {
			return err
		}
	}
	for _, p := range parts {
		for _, v := range [...]uint32{p.Type, p.Offset, p.Length} {
			if err := o.AppendUint32(v); err != nil {
				return err
			}
		}
	}
	return nil
}

// SinkWriteError wraps a failure returned by the underlying byte
// sink. Save aborts and reports it; the sink is considered
// compromised.
type SinkWriteError struct {
	Err error
}

func (e *SinkWriteError) Error() string { return "sink write failed: " + e.Err.Error() }
func (e *SinkWriteError) Unwrap() error { return e.Err }
