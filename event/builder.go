// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package event

import (
	"strings"

	"github.com/tracecore/tracecore"
	"github.com/tracecore/tracecore/eventbuf"
	"github.com/tracecore/tracecore/internal/syncutil"
	"github.com/tracecore/tracecore/stringtable"
)

// ScopeHost is whatever a Scope needs to emit into: a per-thread
// slot buffer and the process-wide string table that resolves the
// scope's descriptor strings to ids. A runtime.Handle satisfies this
// interface without the event package ever importing runtime.
type ScopeHost interface {
	Buffer() *eventbuf.EventBuffer
	Strings() *stringtable.StringTable
}

// Scope is a call-site-local handle for a named region of code.
// Construct one per call site, typically as a package-level var, and
// reuse it across every Enter/Leave/Emit at that site. The first
// Enter or Emit call interns the scope's descriptor string (name plus
// the argument-type schema inferred from the arguments passed) and
// caches the resulting id; the first Leave call does the same for the
// bare name. Every later call at that site reuses the cached ids
// without touching the string table.
type Scope struct {
	name string

	nameID   syncutil.Once[uint32]
	schemaID syncutil.Once[uint32]
}

// NewScope creates a Scope for a region named name.
func NewScope(name string) *Scope {
	return &Scope{name: name}
}

// Name returns the scope's name, as passed to NewScope.
func (s *Scope) Name() string { return s.name }

// Enter records a scope-enter event at timestamp ts with the given
// arguments.
func (s *Scope) Enter(h ScopeHost, ts uint64, args ...Arg) {
	s.write(h, Enter, ts, args)
}

// Emit records an instantaneous event at timestamp ts with the given
// arguments.
func (s *Scope) Emit(h ScopeHost, ts uint64, args ...Arg) {
	s.write(h, Event, ts, args)
}

// Leave records a scope-leave event at timestamp ts. Leave carries no
// arguments: it references the scope's bare name, not its
// argument-type schema.
func (s *Scope) Leave(h ScopeHost, ts uint64) {
	id := s.nameID.Get(func() uint32 { return h.Strings().GetStringId(s.name) })
	h.Buffer().AddSlots(fixedSlots, func(slots []tracecore.Slot) {
		slots[0] = controlWord(Leave, id)
		slots[1] = uint32(ts)
		slots[2] = uint32(ts >> 32)
	})
}

func (s *Scope) write(h ScopeHost, kind Kind, ts uint64, args []Arg) {
	id := s.schemaID.Get(func() uint32 { return h.Strings().GetStringId(s.schema(args)) })

	n := fixedSlots
	for _, a := range args {
		if a.Wide() {
			n += 2
		} else {
			n++
		}
	}

	h.Buffer().AddSlots(n, func(slots []tracecore.Slot) {
		slots[0] = controlWord(kind, id)
		slots[1] = uint32(ts)
		slots[2] = uint32(ts >> 32)

		dst := slots[fixedSlots:fixedSlots]
		for _, a := range args {
			dst = a.AppendSlots(dst)
		}
	})
}

// schema builds the "Name:t1,t2" descriptor string for the argument
// types actually passed on the first enter/emit call at this site.
func (s *Scope) schema(args []Arg) string {
	if len(args) == 0 {
		return s.name
	}
	var b strings.Builder
	b.WriteString(s.name)
	b.WriteByte(':')
	for i, a := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte(a.TypeCode())
	}
	return b.String()
}
