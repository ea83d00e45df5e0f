// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runtime

import (
	"github.com/tracecore/tracecore/eventbuf"
	"github.com/tracecore/tracecore/tracelog"
)

// Option configures a Runtime at construction time.
type Option func(*config)

type config struct {
	chunkLimit int
	log        tracelog.Logger
	clock      func() uint64
}

func defaultConfig() *config {
	return &config{
		chunkLimit: eventbuf.DefaultChunkLimit,
		log:        tracelog.Discard,
		clock:      microsSinceProcessEpoch,
	}
}

// WithChunkLimit sets the slot capacity of newly registered threads'
// EventBuffer chunks. It has no effect on threads already registered.
func WithChunkLimit(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.chunkLimit = n
		}
	}
}

// WithLogger routes the Runtime's own diagnostics (registration
// conflicts, save failures) to l instead of discarding them.
func WithLogger(l tracelog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

// WithClock overrides the clock used to stamp a Save's chunk header.
// Save always takes both start and end times from this clock; it does
// not derive them from the timestamps of the events in the chunk.
// Intended for tests that need deterministic chunk headers.
func WithClock(fn func() uint64) Option {
	return func(c *config) {
		if fn != nil {
			c.clock = fn
		}
	}
}
