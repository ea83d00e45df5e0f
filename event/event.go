// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package event

import "github.com/tracecore/tracecore"

// Kind identifies what an event's control word records.
type Kind uint32

const (
	Enter Kind = 0
	Leave Kind = 1
	Event Kind = 2
)

const (
	kindBits = 2
	kindMask = (1 << kindBits) - 1
)

func (k Kind) String() string {
	switch k {
	case Enter:
		return "ENTER"
	case Leave:
		return "LEAVE"
	case Event:
		return "EVENT"
	default:
		return "UNKNOWN"
	}
}

// controlWord packs a Kind into the low kindBits bits and a scope id
// into the remaining high bits.
func controlWord(k Kind, scopeID uint32) tracecore.Slot {
	return tracecore.Slot(k)&kindMask | scopeID<<kindBits
}

func decodeControl(w tracecore.Slot) (Kind, uint32) {
	return Kind(w & kindMask), uint32(w) >> kindBits
}

// DecodeControl unpacks a raw control word into its Kind and scope
// id. Exported for tools, like tracedump, that need to know a
// record's shape before they have enough context to call
// DecodeRecords.
func DecodeControl(w uint32) (Kind, uint32) { return decodeControl(tracecore.Slot(w)) }

// Record is a single decoded event, as read back from an
// EventBuffer's slot stream.
type Record struct {
	Kind        Kind
	ScopeID     uint32
	TimestampLo uint32
	TimestampHi uint32
	Args        []tracecore.Slot // raw argument slots, undecoded.
}

// Timestamp reassembles the 64-bit timestamp from its two slots.
func (r Record) Timestamp() uint64 {
	return uint64(r.TimestampLo) | uint64(r.TimestampHi)<<32
}

// fixedSlots is the number of slots every event carries before its
// argument payload: the control word and the two timestamp halves.
const fixedSlots = 3

// DecodeRecords decodes a contiguous slot stream into Records. It
// does not know where one event's argument list ends and the next
// event's control word begins: callers must supply argCounts, the
// number of argument slots belonging to each record in order. Pass
// nil for a stream that carries only LEAVE records, which never have
// an argCounts entry to consume.
func DecodeRecords(slots []tracecore.Slot, argCounts []int) ([]Record, error) {
	var records []Record
	i := 0
	argIdx := 0
	for i < len(slots) {
		if i+fixedSlots > len(slots) {
			return nil, errShortRecord
		}
		kind, scopeID := decodeControl(slots[i])
		rec := Record{
			Kind:        kind,
			ScopeID:     scopeID,
			TimestampLo: slots[i+1],
			TimestampHi: slots[i+2],
		}
		i += fixedSlots
		if kind == Enter || kind == Event {
			n := 0
			if argIdx < len(argCounts) {
				n = argCounts[argIdx]
			}
			argIdx++
			if i+n > len(slots) {
				return nil, errShortRecord
			}
			rec.Args = slots[i : i+n]
			i += n
		}
		records = append(records, rec)
	}
	return records, nil
}

var errShortRecord = decodeError("event: slot stream ended mid-record")

type decodeError string

func (e decodeError) Error() string { return string(e) }
