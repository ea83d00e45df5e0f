// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runtime is the process-wide tracing registry: one
// StringTable shared by every registered thread, and one EventBuffer
// per thread. Save walks the current set of threads and emits one
// self-consistent chunk to a byte sink.
package runtime

import (
	"sync/atomic"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/xerrors"

	"github.com/tracecore/tracecore"
	"github.com/tracecore/tracecore/chunkio"
	"github.com/tracecore/tracecore/stringtable"
)

// Runtime is a process-wide registry of EventBuffers plus the
// StringTable they all share. The zero value is not usable; construct
// one with New.
type Runtime struct {
	cfg *config

	strings  *stringtable.StringTable
	registry *registry

	closed      atomic.Bool
	nextChunkID atomic.Uint32
}

// New creates a Runtime. It owns no background goroutines: Save runs
// synchronously on the caller's goroutine.
func New(opts ...Option) *Runtime {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	tbl := &stringtable.StringTable{}
	return &Runtime{
		cfg:      cfg,
		strings:  tbl,
		registry: newRegistry(tbl),
	}
}

// processEpoch is the reference point "start_time"/"end_time" in a
// chunk header are measured from: microseconds elapsed since this
// package was initialized. Using time.Since keeps the clock
// monotonic (immune to wall-clock adjustments) without requiring
// every caller to thread a *testing.T-supplied clock through.
var processEpoch = time.Now()

func microsSinceProcessEpoch() uint64 { return uint64(time.Since(processEpoch).Microseconds()) }

// RegisterThread associates key with name and returns a Handle the
// caller uses for every subsequent Enter/Leave/Emit call from that
// thread. key only needs to be stable and comparable for the
// lifetime of that thread — a goroutine-local token, a worker index,
// whatever the caller already has. Calling RegisterThread again with
// the same key and name returns the same Handle; calling it with the
// same key and a different name is ErrReregisterConflict.
func (r *Runtime) RegisterThread(key any, name string) (*Handle, error) {
	if r.closed.Load() {
		return nil, ErrClosed
	}
	h, err := r.registry.getOrRegister(key, name, r.cfg.chunkLimit)
	if err != nil {
		r.cfg.log.Warn("RegisterThread conflict", "key", key, "name", name, "error", err)
		return nil, err
	}
	return h, nil
}

// Save snapshots the registry and every registered thread's
// EventBuffer and writes one chunk to sink: StringTable first, then
// one EventBuffer part per thread, in a deterministic (name-sorted)
// order. Producers may continue running during Save; their output
// appears in a later snapshot, not this one.
func (r *Runtime) Save(sink chunkio.Sink) error {
	if r.closed.Load() {
		return ErrClosed
	}
	start := r.cfg.clock()
	handles := r.registry.snapshot()

	stringsSnap := r.strings.Snapshot()
	participants := make([]chunkio.Part, 1+len(handles))
	participants[0] = stringsSnap
	for i, h := range handles {
		participants[i+1] = h.buf
	}

	headers := make([]tracecore.PartHeader, len(participants))
	for i, p := range participants {
		p.PopulateHeader(&headers[i])
	}

	out := chunkio.New(sink)
	// Sampled here rather than after the writes below finish, so it
	// undercounts the true save duration. start <= end still holds
	// because the configured clock is monotonic, not because this is
	// actually taken at save-end.
	end := r.cfg.clock()
	chunkID := r.nextChunkID.Add(1)
	header := tracecore.ChunkHeader{
		ID:        chunkID,
		Type:      tracecore.ChunkTypeEventSnapshot,
		StartTime: uint32(start),
		EndTime:   uint32(end),
	}
	if err := out.StartChunk(header, headers); err != nil {
		r.cfg.log.Error(err, "Save: StartChunk failed", "chunk_id", chunkID)
		return xerrors.Errorf("runtime: writing chunk header: %w", err)
	}

	var errs error
	for i, p := range participants {
		if err := p.WriteTo(&headers[i], out); err != nil {
			errs = multierr.Append(errs, xerrors.Errorf("runtime: writing part %d: %w", i, err))
		}
	}
	if errs != nil {
		r.cfg.log.Error(errs, "Save: part write failed", "chunk_id", chunkID)
	}
	return errs
}

// SaveToFile is a convenience wrapper over Save that writes to path
// atomically: the chunk is assembled in a temporary file beside path
// and only renamed into place once Save succeeds, so a failed or
// partial Save never leaves a truncated trace file at the
// destination. Producers may keep running after a failed SaveToFile;
// the caller retries by calling it again, typically against a fresh
// path.
func (r *Runtime) SaveToFile(path string) error {
	sink, err := chunkio.CreateAtomicFileSink(path)
	if err != nil {
		return xerrors.Errorf("runtime: creating file sink: %w", err)
	}
	if err := r.Save(sink); err != nil {
		if abortErr := sink.Abort(); abortErr != nil {
			return multierr.Append(xerrors.Errorf("runtime: save to %q: %w", path, err), abortErr)
		}
		return err
	}
	if err := sink.Commit(); err != nil {
		return xerrors.Errorf("runtime: committing %q: %w", path, err)
	}
	return nil
}

// Close marks the Runtime closed. Registered EventBuffers and the
// StringTable are not freed: per the whole-process reset contract,
// there is no partial teardown. Close exists so RegisterThread and
// Save can report a clear error after shutdown has begun, rather than
// racing a process exit.
func (r *Runtime) Close() {
	r.closed.Store(true)
}
