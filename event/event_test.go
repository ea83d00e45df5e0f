// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package event

import "testing"

func TestControlWordRoundTrip(t *testing.T) {
	for _, test := range []struct {
		kind    Kind
		scopeID uint32
	}{
		{Enter, 0},
		{Leave, 1},
		{Event, 1<<29 - 1},
	} {
		w := controlWord(test.kind, test.scopeID)
		gotKind, gotID := decodeControl(w)
		if gotKind != test.kind || gotID != test.scopeID {
			t.Errorf("controlWord(%v, %d) round-trips to (%v, %d)", test.kind, test.scopeID, gotKind, gotID)
		}
	}
}

func TestDecodeRecordsEnterLeave(t *testing.T) {
	slots := []uint32{
		controlWord(Enter, 3), 100, 0,
		controlWord(Leave, 3), 200, 0,
	}
	records, err := DecodeRecords(slots, []int{0})
	if err != nil {
		t.Fatalf("DecodeRecords: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Kind != Enter || records[0].Timestamp() != 100 {
		t.Errorf("records[0] = %+v", records[0])
	}
	if records[1].Kind != Leave || records[1].Timestamp() != 200 {
		t.Errorf("records[1] = %+v", records[1])
	}
}

func TestDecodeRecordsWithArgs(t *testing.T) {
	slots := []uint32{
		controlWord(Event, 5), 1, 0, 42, 7,
	}
	records, err := DecodeRecords(slots, []int{2})
	if err != nil {
		t.Fatalf("DecodeRecords: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if got := records[0].Args; len(got) != 2 || got[0] != 42 || got[1] != 7 {
		t.Errorf("Args = %v, want [42 7]", got)
	}
}

func TestDecodeRecordsShortStream(t *testing.T) {
	slots := []uint32{controlWord(Enter, 0), 100}
	if _, err := DecodeRecords(slots, []int{0}); err == nil {
		t.Fatal("DecodeRecords on truncated stream succeeded, want error")
	}
}
