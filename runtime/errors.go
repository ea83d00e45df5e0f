// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runtime

import "golang.org/x/xerrors"

// ErrReregisterConflict is returned by RegisterThread when the
// caller's key was already registered under a different name.
// Re-registering under the same name is not an error: it returns the
// existing Handle.
var ErrReregisterConflict = xerrors.New("runtime: thread key already registered under a different name")

// ErrClosed is returned by Save and RegisterThread once the Runtime
// has been torn down.
var ErrClosed = xerrors.New("runtime: runtime is closed")
