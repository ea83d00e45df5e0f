// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chunkio

import (
	"encoding/binary"
	"fmt"

	"github.com/tracecore/tracecore"
)

// ChunkView is one chunk decoded directly from a MappedFile's bytes:
// its header, its part headers, and the byte range backing the whole
// chunk (header, part headers, and payloads), sliced out with no
// copy.
type ChunkView struct {
	Header tracecore.ChunkHeader
	Parts  []tracecore.PartHeader
	Bytes  []byte
}

// Payload returns the unpadded bytes of part i, sliced directly out
// of the chunk's mapped bytes.
func (v ChunkView) Payload(i int) []byte {
	p := v.Parts[i]
	start := tracecore.ChunkHeaderSize + len(v.Parts)*tracecore.PartHeaderSize + int(p.Offset)
	return v.Bytes[start : start+int(p.Length)]
}

// decodeChunks walks b front to back, decoding every chunk's header
// and part headers in place. It is the random-access counterpart to
// the sequential bufio.Reader a streaming consumer of the same wire
// format needs: each chunk's boundary comes from its own Length
// field rather than from reading past it.
func decodeChunks(b []byte) ([]ChunkView, error) {
	var views []ChunkView
	off := 0
	for off < len(b) {
		if off+tracecore.ChunkHeaderSize > len(b) {
			return nil, fmt.Errorf("chunkio: truncated chunk header at offset %d", off)
		}
		h := tracecore.ChunkHeader{
			ID:        binary.LittleEndian.Uint32(b[off:]),
			Type:      binary.LittleEndian.Uint32(b[off+4:]),
			Length:    binary.LittleEndian.Uint32(b[off+8:]),
			StartTime: binary.LittleEndian.Uint32(b[off+12:]),
			EndTime:   binary.LittleEndian.Uint32(b[off+16:]),
			PartCount: binary.LittleEndian.Uint32(b[off+20:]),
		}
		if h.Length < tracecore.ChunkHeaderSize {
			return nil, fmt.Errorf("chunkio: chunk at offset %d has implausible length %d", off, h.Length)
		}
		end := off + int(h.Length)
		if end > len(b) {
			return nil, fmt.Errorf("chunkio: chunk at offset %d (length %d) runs past end of file", off, h.Length)
		}

		parts := make([]tracecore.PartHeader, h.PartCount)
		po := off + tracecore.ChunkHeaderSize
		for i := range parts {
			if po+tracecore.PartHeaderSize > end {
				return nil, fmt.Errorf("chunkio: truncated part header %d in chunk at offset %d", i, off)
			}
			parts[i] = tracecore.PartHeader{
				Type:   binary.LittleEndian.Uint32(b[po:]),
				Offset: binary.LittleEndian.Uint32(b[po+4:]),
				Length: binary.LittleEndian.Uint32(b[po+8:]),
			}
			po += tracecore.PartHeaderSize
		}

		views = append(views, ChunkView{Header: h, Parts: parts, Bytes: b[off:end]})
		off = end
	}
	return views, nil
}
