// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package event defines the conventions for packing scope-enter,
// scope-leave, and instantaneous events into an EventBuffer's slot
// stream, and for decoding that stream back into Records.
//
// A Scope is a call-site-local handle: construct one per traced
// region and reuse it for every Enter/Leave/Emit call there. The
// scope's descriptor string is interned and its id cached on first
// use, so steady-state tracing never touches the string table's
// mutex.
package event
