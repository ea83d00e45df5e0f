// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runtime

import (
	"cmp"
	"slices"
	"sync"

	"github.com/tracecore/tracecore/eventbuf"
	"github.com/tracecore/tracecore/stringtable"
)

// Handle is a registered thread's view of the Runtime: its own
// EventBuffer, and the Runtime's shared StringTable. Handle satisfies
// event.ScopeHost.
type Handle struct {
	name string
	buf  *eventbuf.EventBuffer
	tbl  *stringtable.StringTable
}

func (h *Handle) Buffer() *eventbuf.EventBuffer     { return h.buf }
func (h *Handle) Strings() *stringtable.StringTable { return h.tbl }
func (h *Handle) Name() string                      { return h.name }

// registry is the Runtime's thread table: comparable caller-supplied
// keys to Handles. It has no notion of OS threads; Go has no stable
// thread identity to hang a registry off of, so callers supply their
// own key (a goroutine-scoped value, a worker id, whatever is stable
// for that caller's lifetime).
type registry struct {
	mu      sync.Mutex
	byKey   map[any]*Handle
	strings *stringtable.StringTable
}

func newRegistry(tbl *stringtable.StringTable) *registry {
	return &registry{byKey: make(map[any]*Handle), strings: tbl}
}

// getOrRegister returns the Handle for key, registering a new one
// named name on first use. chunkLimit sizes new handles' EventBuffer.
// ErrReregisterConflict is returned if key already names a different
// thread.
func (r *registry) getOrRegister(key any, name string, chunkLimit int) (*Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok := r.byKey[key]; ok {
		if h.name != name {
			return nil, ErrReregisterConflict
		}
		return h, nil
	}
	h := &Handle{name: name, buf: eventbuf.New(chunkLimit), tbl: r.strings}
	r.byKey[key] = h
	return h, nil
}

// snapshot returns every registered Handle, sorted by name so that
// Save produces deterministic part ordering across runs with the
// same set of threads.
func (r *registry) snapshot() []*Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	handles := make([]*Handle, 0, len(r.byKey))
	for _, h := range r.byKey {
		handles = append(handles, h)
	}
	slices.SortFunc(handles, func(a, b *Handle) int { return cmp.Compare(a.name, b.name) })
	return handles
}
