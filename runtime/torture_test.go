// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runtime

import (
	"bytes"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/tracecore/tracecore/event"
)

// TestConcurrentSaveAndProducers mirrors the stress pattern of
// pairing a saver goroutine against several noisy producers: a save
// goroutine calls Save repeatedly while a handful of "noise maker"
// goroutines keep registering scopes of varying nesting depth. Save
// must never observe a size mismatch or any other error while
// producers run concurrently with it.
func TestConcurrentSaveAndProducers(t *testing.T) {
	if testing.Short() {
		t.Skip("torture test; skipped with -short")
	}

	rt := New()

	const iterations = 751
	const noiseMakers = 4

	var stop atomic.Bool
	var hadError atomic.Bool

	loopScope := event.NewScope("NoiseMaker.Loop")
	scope100 := event.NewScope("NoiseMaker.Scope100")
	scope400 := event.NewScope("NoiseMaker.Scope400")
	scope1600 := event.NewScope("NoiseMaker.Scope1600")

	var wg sync.WaitGroup
	for n := 0; n < noiseMakers; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			h, err := rt.RegisterThread(n, fmt.Sprintf("NoiseMaker%d", n))
			if err != nil {
				hadError.Store(true)
				return
			}
			var ts uint64
			for i := 0; !stop.Load(); i++ {
				ts++
				loopScope.Emit(h, ts, event.Int32(int32(n)), event.Int32(int32(i)))
				if i%100 == 0 {
					scope100.Enter(h, ts, event.Int32(int32(n)), event.Int32(int32(i)))
					if i%400 == 0 {
						scope400.Enter(h, ts, event.Int32(int32(n)), event.Int32(int32(i)))
						if i%1600 == 0 {
							scope1600.Enter(h, ts, event.Int32(int32(n)), event.Int32(int32(i)))
							scope1600.Leave(h, ts)
						}
						scope400.Leave(h, ts)
					}
					scope100.Leave(h, ts)
				}
			}
		}(n)
	}

	for i := 0; i < iterations; i++ {
		var buf bytes.Buffer
		if err := rt.Save(&buf); err != nil {
			hadError.Store(true)
			t.Errorf("Save() failed on iteration %d: %v", i, err)
		}
	}
	stop.Store(true)
	wg.Wait()

	if hadError.Load() {
		t.Fatal("at least one goroutine reported an error")
	}
}
