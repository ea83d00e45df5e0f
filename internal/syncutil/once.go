// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package syncutil provides synchronization helpers layered on top of
// the standard sync package.
package syncutil

import "sync"

// Once lazily computes and caches a single value of type T. It is
// the generic counterpart of sync.Once for call sites that want to
// memoize a computed value rather than just run a side effect once.
//
// The zero Once is ready to use.
type Once[T any] struct {
	once sync.Once
	val  T
}

// Get runs fn on the first call and returns its result; every
// subsequent call returns the cached result without running fn
// again, even if the arguments conceptually differ.
func (o *Once[T]) Get(fn func() T) T {
	o.once.Do(func() { o.val = fn() })
	return o.val
}
