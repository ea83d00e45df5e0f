// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stringtable implements the shared string-interning
// registry: a mapping from byte strings to dense, stable 32-bit ids.
package stringtable

import (
	"sync"

	"github.com/tracecore/tracecore"
)

// StringTable interns strings to dense 32-bit ids. Once interned, a
// string's id is stable for the life of the StringTable (until
// Clear). The zero value is a usable, empty table.
type StringTable struct {
	mu      sync.Mutex
	strings []string
	ids     map[string]uint32
}

// GetStringId returns the id previously assigned to s, or interns s
// and assigns it the next id. Two calls with equal strings always
// return the same id.
func (t *StringTable) GetStringId(s string) uint32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ids == nil {
		t.ids = make(map[string]uint32)
	}
	if id, ok := t.ids[s]; ok {
		return id
	}
	id := uint32(len(t.strings))
	t.strings = append(t.strings, s)
	t.ids[s] = id
	return id
}

// Len reports the number of distinct strings currently interned.
func (t *StringTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.strings)
}

// Snapshot is a consistent, point-in-time copy of the interned
// strings in id order. PopulateHeader and WriteTo both derive from a
// Snapshot taken once under the table's lock, rather than re-reading
// live state between the two calls: taking two separate lock
// acquisitions would rely on there being a single saver thread to
// keep them consistent, which breaks under a concurrent reader.
// Taking one snapshot up front removes that assumption.
type Snapshot struct {
	strings   []string
	rawLength uint32
}

// Snapshot copies the current string sequence and computes its
// serialized length (each string plus one NUL terminator).
func (t *StringTable) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	strs := make([]string, len(t.strings))
	copy(strs, t.strings)
	var raw uint32
	for _, s := range strs {
		raw += uint32(len(s)) + 1
	}
	return Snapshot{strings: strs, rawLength: raw}
}

// PopulateHeader writes this snapshot's part type and length into h.
func (s Snapshot) PopulateHeader(h *tracecore.PartHeader) {
	h.Type = tracecore.PartTypeStringTable
	h.Offset = 0
	h.Length = s.rawLength
}

// WriteTo writes every string in the snapshot, null-terminated and in
// id order, then aligns. It does not read h: the byte count equals
// h.Length only when h was populated by this same Snapshot's
// PopulateHeader, and a mismatch is a programming error that WriteTo
// does not detect.
func (s Snapshot) WriteTo(h *tracecore.PartHeader, out tracecore.PartWriter) error {
	for _, str := range s.strings {
		if err := out.Append([]byte(str)); err != nil {
			return err
		}
		if err := out.Append([]byte{0}); err != nil {
			return err
		}
	}
	return out.Align()
}

// Clear empties the table, invalidating every id previously returned.
// The caller must ensure no outstanding EventBuffer slots still
// reference ids from before the clear.
func (t *StringTable) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.strings = nil
	t.ids = nil
}
