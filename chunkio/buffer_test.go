// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chunkio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/tracecore/tracecore"
)

func TestEmptyChunkLayout(t *testing.T) {
	var buf bytes.Buffer
	ob := New(&buf)
	parts := []tracecore.PartHeader{{Type: tracecore.PartTypeStringTable, Length: 0}}
	if err := ob.StartChunk(tracecore.ChunkHeader{ID: 1, Type: tracecore.ChunkTypeEventSnapshot, StartTime: 10, EndTime: 20}, parts); err != nil {
		t.Fatalf("StartChunk: %v", err)
	}
	if got := buf.Len(); got != int(tracecore.ChunkHeaderSize+tracecore.PartHeaderSize) {
		t.Fatalf("wrote %d bytes, want %d", got, tracecore.ChunkHeaderSize+tracecore.PartHeaderSize)
	}
	length := binary.LittleEndian.Uint32(buf.Bytes()[8:12])
	if length != 36 {
		t.Errorf("chunk length = %d, want 36", length)
	}
	partCount := binary.LittleEndian.Uint32(buf.Bytes()[20:24])
	if partCount != 1 {
		t.Errorf("part_count = %d, want 1", partCount)
	}
}

func TestAlignmentLaw(t *testing.T) {
	var buf bytes.Buffer
	ob := New(&buf)
	parts := []tracecore.PartHeader{
		{Type: tracecore.PartTypeStringTable, Length: 5},
		{Type: tracecore.PartTypeEventBuffer, Length: 12},
	}
	if err := ob.StartChunk(tracecore.ChunkHeader{ID: 2, Type: 1}, parts); err != nil {
		t.Fatalf("StartChunk: %v", err)
	}
	for _, p := range parts {
		if p.Offset%4 != 0 {
			t.Errorf("part offset %d not 4-aligned", p.Offset)
		}
	}
	wantLen := uint32(tracecore.ChunkHeaderSize) + uint32(len(parts))*uint32(tracecore.PartHeaderSize) +
		tracecore.Align4(5) + tracecore.Align4(12)
	gotLen := binary.LittleEndian.Uint32(buf.Bytes()[8:12])
	if gotLen != wantLen {
		t.Errorf("chunk length = %d, want %d", gotLen, wantLen)
	}
	if parts[0].Offset != 0 {
		t.Errorf("first part offset = %d, want 0", parts[0].Offset)
	}
	if parts[1].Offset != tracecore.Align4(5) {
		t.Errorf("second part offset = %d, want %d", parts[1].Offset, tracecore.Align4(5))
	}
}

type failingSink struct {
	failAfter int
	writes    int
}

func (s *failingSink) Write(p []byte) (int, error) {
	s.writes++
	if s.writes > s.failAfter {
		return 0, errors.New("disk full")
	}
	return len(p), nil
}

func TestSinkWriteFailure(t *testing.T) {
	ob := New(&failingSink{failAfter: 1})
	err := ob.AppendUint32(1)
	if err != nil {
		t.Fatalf("first write: %v", err)
	}
	err = ob.AppendUint32(2)
	var swe *SinkWriteError
	if !errors.As(err, &swe) {
		t.Fatalf("second write error = %v, want *SinkWriteError", err)
	}
}
