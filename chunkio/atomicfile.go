// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chunkio

import (
	"bufio"
	"os"
	"path/filepath"
)

// pendingFile is a temporary file waiting to atomically replace a
// destination path. SaveToFile writes through one of these so a
// Save that fails partway never leaves a truncated trace file at the
// destination: readers either see the previous file or the complete
// new one, never something in between.
//
// Requires the file system's rename(2) to be atomic; this does not
// hold over NFS with multiple clients.
type pendingFile struct {
	*os.File

	path   string
	done   bool
	closed bool
}

func createPendingFile(path string) (*pendingFile, error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path))
	if err != nil {
		return nil, err
	}
	return &pendingFile{File: f, path: path}, nil
}

// cleanup closes and removes the temporary file if commit was never
// called successfully. Safe to call unconditionally.
func (t *pendingFile) cleanup() error {
	if t.done {
		return nil
	}
	var closeErr error
	if !t.closed {
		closeErr = t.Close()
	}
	if err := os.Remove(t.Name()); err != nil {
		return err
	}
	return closeErr
}

// commit flushes, closes, and atomically renames the temporary file
// onto the destination path.
func (t *pendingFile) commit() error {
	if err := t.Sync(); err != nil {
		return err
	}
	t.closed = true
	if err := t.Close(); err != nil {
		return err
	}
	if err := os.Rename(t.Name(), t.path); err != nil {
		return err
	}
	t.done = true
	return nil
}

// AtomicFileSink is a Sink backed by a pendingFile: writes accumulate
// in a buffered temporary file beside the destination path, and only
// become visible at path once Commit succeeds. A Save that fails
// partway calls Abort instead, so the destination is left exactly as
// it was before the attempt.
type AtomicFileSink struct {
	pf *pendingFile
	bw *bufio.Writer
}

// CreateAtomicFileSink opens a temporary file beside path. Exactly
// one of Commit or Abort must be called to release it.
func CreateAtomicFileSink(path string) (*AtomicFileSink, error) {
	pf, err := createPendingFile(path)
	if err != nil {
		return nil, err
	}
	return &AtomicFileSink{pf: pf, bw: bufio.NewWriter(pf)}, nil
}

func (s *AtomicFileSink) Write(p []byte) (int, error) {
	return s.bw.Write(p)
}

// Commit flushes buffered bytes and atomically renames the temporary
// file onto the destination path.
func (s *AtomicFileSink) Commit() error {
	if err := s.bw.Flush(); err != nil {
		s.pf.cleanup()
		return err
	}
	return s.pf.commit()
}

// Abort discards everything written so far; the destination path is
// left untouched.
func (s *AtomicFileSink) Abort() error {
	return s.pf.cleanup()
}
