// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package otelbridge mirrors scope enter/leave events into OpenTelemetry
// spans, so a process can be traced by both the binary chunk format
// and whatever span backend the host already has wired up.
package otelbridge

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/tracecore/tracecore/event"
)

// Bridge pairs an OpenTelemetry tracer with the event.ScopeHost that
// every Enter/Leave call is also encoded to.
type Bridge struct {
	tracer trace.Tracer
	host   event.ScopeHost
}

// New creates a Bridge that mirrors scope events from host through
// tracer.
func New(tracer trace.Tracer, host event.ScopeHost) *Bridge {
	return &Bridge{tracer: tracer, host: host}
}

// Enter records scope's enter event at ts, the same as calling
// scope.Enter directly, and additionally starts a child span under
// ctx. The returned span must be ended via Leave.
func (b *Bridge) Enter(ctx context.Context, scope *event.Scope, ts uint64, args ...event.Arg) (context.Context, trace.Span) {
	scope.Enter(b.host, ts, args...)
	return b.tracer.Start(ctx, scope.Name())
}

// Leave records scope's leave event at ts and ends the span returned
// by the matching Enter call.
func (b *Bridge) Leave(scope *event.Scope, ts uint64, span trace.Span) {
	scope.Leave(b.host, ts)
	span.End()
}
