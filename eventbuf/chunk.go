// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eventbuf

import (
	"sync/atomic"

	"github.com/tracecore/tracecore"
)

// chunk is a fixed-capacity array of slots. size is writer-local (the
// owning EventBuffer's writer goroutine is the only thing that ever
// touches it); publishedSize and next are the only state readers may
// observe, and both are published with a release store and observed
// with an acquire load.
//
// Once next becomes non-nil, the chunk is sealed: publishedSize
// equals the final size and no further slots are written to it.
type chunk struct {
	slots []tracecore.Slot
	size  int // writer-local; never read by a reader goroutine.

	publishedSize atomic.Uint32
	next          atomic.Pointer[chunk]
}

func newChunk(capacity int) *chunk {
	return &chunk{slots: make([]tracecore.Slot, capacity)}
}

// publish stores the chunk's current size with release ordering, so
// that a reader acquiring publishedSize afterwards observes every
// slot write the writer made before the store. The writer must only
// call this once it has finished writing every slot up to the new
// size: publishing before those writes land would let a concurrent
// reader observe unwritten memory in c.slots.
func (c *chunk) publish() {
	c.publishedSize.Store(uint32(c.size))
}

// link publishes succ as this chunk's successor with release
// ordering, so that a reader acquiring next afterwards can safely
// walk into succ.
func (c *chunk) link(succ *chunk) {
	c.next.Store(succ)
}
