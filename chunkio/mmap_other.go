// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !linux || !amd64

// +build !linux !amd64

package chunkio

import (
	"os"
)

// MappedFile is a memory-mapped trace file, opened for reading. On
// this platform it falls back to ordinary file reads.
type MappedFile struct {
	f    *os.File
	size int64
}

// Close closes the file.
func (r *MappedFile) Close() error {
	return r.f.Close()
}

// Size returns the size of the underlying file.
func (r *MappedFile) Size() int64 {
	return r.size
}

// ReadAt implements the io.ReaderAt interface.
//
// It is safe to call ReadAt multiple times concurrently.
func (r *MappedFile) ReadAt(p []byte, off int64) (int, error) {
	return r.f.ReadAt(p, off)
}

// Chunks reads the whole file and decodes every chunk from it. This
// fallback MappedFile has no mapped byte slice to decode in place, so
// unlike the mmap build it pays for one full read, not zero.
func (r *MappedFile) Chunks() ([]ChunkView, error) {
	b := make([]byte, r.size)
	if _, err := r.f.ReadAt(b, 0); err != nil {
		return nil, err
	}
	return decodeChunks(b)
}

// OpenMapped opens path for reading.
func OpenMapped(path string) (*MappedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	return &MappedFile{
		f:    f,
		size: fi.Size(),
	}, nil
}
