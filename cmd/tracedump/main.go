// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command tracedump prints a human-readable dump of a tracecore
// chunk file: the chunk header, each part's header, the interned
// strings, and the decoded ENTER/LEAVE/EVENT records in every
// EventBuffer part.
package main

import (
	"bufio"
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/tracecore/tracecore"
	"github.com/tracecore/tracecore/chunkio"
	"github.com/tracecore/tracecore/event"
)

var useMmap = flag.Bool("mmap", false, "memory-map the trace file instead of streaming it")

func init() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-mmap] <trace-file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	log.SetFlags(0)
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("expected exactly one positional argument: the trace file; see -h output")
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	if *useMmap {
		if err := dumpMapped(w, flag.Arg(0)); err != nil {
			log.Fatal(err)
		}
		return
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	for chunkIndex := 0; ; chunkIndex++ {
		if err := dumpChunk(w, r, chunkIndex); err != nil {
			if err == errEOF {
				return
			}
			log.Fatal(err)
		}
	}
}

// dumpMapped memory-maps path and decodes every chunk straight from
// the mapped bytes via chunkio.MappedFile.Chunks, rather than reading
// it through the same sequential bufio.Reader path the non-mmap mode
// uses: the chunk boundaries are already known from each chunk's own
// header, so no Reader is needed at all.
func dumpMapped(w *bufio.Writer, path string) error {
	mf, err := chunkio.OpenMapped(path)
	if err != nil {
		return err
	}
	defer mf.Close()

	chunks, err := mf.Chunks()
	if err != nil {
		return err
	}
	for index, c := range chunks {
		payload := func(i int) []byte { return c.Payload(i) }
		if err := printChunk(w, index, c.Header, c.Parts, payload); err != nil {
			return err
		}
	}
	return nil
}

var errEOF = fmt.Errorf("tracedump: clean end of file")

func dumpChunk(w *bufio.Writer, r *bufio.Reader, index int) error {
	header, err := readChunkHeader(r)
	if err != nil {
		return err
	}

	partHeaders := make([]tracecore.PartHeader, header.PartCount)
	for i := range partHeaders {
		ph, err := readPartHeader(r)
		if err != nil {
			return fmt.Errorf("tracedump: reading part header %d: %w", i, err)
		}
		partHeaders[i] = ph
	}

	payloads := make([][]byte, len(partHeaders))
	for i, ph := range partHeaders {
		payload, err := readPayload(r, ph.Length)
		if err != nil {
			return fmt.Errorf("tracedump: reading part %d payload: %w", i, err)
		}
		payloads[i] = payload
	}

	return printChunk(w, index, header, partHeaders, func(i int) []byte { return payloads[i] })
}

// printChunk prints one chunk's header, part headers, and decoded
// payloads. It is shared by the streaming and memory-mapped dump
// paths, which differ only in how they get from a chunk index to a
// part's payload bytes.
func printChunk(w *bufio.Writer, index int, header tracecore.ChunkHeader, partHeaders []tracecore.PartHeader, payload func(i int) []byte) error {
	fmt.Fprintf(w, "chunk %d: id=%d type=%d length=%d start=%d end=%d parts=%d\n",
		index, header.ID, header.Type, header.Length, header.StartTime, header.EndTime, header.PartCount)

	var strs []string
	for i, ph := range partHeaders {
		p := payload(i)
		switch ph.Type {
		case tracecore.PartTypeStringTable:
			strs = decodeStrings(p)
			fmt.Fprintf(w, "  part %d: StringTable (%d strings)\n", i, len(strs))
			for id, s := range strs {
				fmt.Fprintf(w, "    [%d] %q\n", id, s)
			}
		case tracecore.PartTypeEventBuffer:
			fmt.Fprintf(w, "  part %d: EventBuffer (%d bytes)\n", i, len(p))
			if err := dumpEventBuffer(w, p, strs); err != nil {
				return err
			}
		default:
			fmt.Fprintf(w, "  part %d: unknown type %#x (%d bytes)\n", i, ph.Type, len(p))
		}
	}
	return nil
}

func readChunkHeader(r *bufio.Reader) (tracecore.ChunkHeader, error) {
	var words [6]uint32
	if err := readUint32s(r, words[:]); err != nil {
		return tracecore.ChunkHeader{}, err
	}
	return tracecore.ChunkHeader{
		ID: words[0], Type: words[1], Length: words[2],
		StartTime: words[3], EndTime: words[4], PartCount: words[5],
	}, nil
}

func readPartHeader(r *bufio.Reader) (tracecore.PartHeader, error) {
	var words [3]uint32
	if err := readUint32s(r, words[:]); err != nil {
		return tracecore.PartHeader{}, err
	}
	return tracecore.PartHeader{Type: words[0], Offset: words[1], Length: words[2]}, nil
}

func readUint32s(r *bufio.Reader, dst []uint32) error {
	buf := make([]byte, 4*len(dst))
	n, err := r.Read(buf)
	if n == 0 && err != nil {
		return errEOF
	}
	for n < len(buf) {
		m, rerr := r.Read(buf[n:])
		n += m
		if rerr != nil {
			return fmt.Errorf("tracedump: short read: %w", rerr)
		}
	}
	for i := range dst {
		dst[i] = binary.LittleEndian.Uint32(buf[i*4:])
	}
	return nil
}

func readPayload(r *bufio.Reader, length uint32) ([]byte, error) {
	aligned := tracecore.Align4(length)
	buf := make([]byte, aligned)
	n := 0
	for n < len(buf) {
		m, err := r.Read(buf[n:])
		n += m
		if err != nil && n < len(buf) {
			return nil, fmt.Errorf("tracedump: short payload read: %w", err)
		}
	}
	return buf[:length], nil
}

func decodeStrings(payload []byte) []string {
	var out []string
	start := 0
	for i, b := range payload {
		if b == 0 {
			out = append(out, string(payload[start:i]))
			start = i + 1
		}
	}
	return out
}

// argSlotCount returns how many argument slots a record referencing
// schema occupies, by parsing the comma-separated type codes after
// the ':' in "Name:t1,t2".
func argSlotCount(schema string) int {
	i := strings.IndexByte(schema, ':')
	if i < 0 {
		return 0
	}
	n := 0
	for _, c := range schema[i+1:] {
		if c == ',' {
			continue
		}
		switch c {
		case 'q', 'Q', 'f':
			n += 2
		default:
			n++
		}
	}
	return n
}

func dumpEventBuffer(w *bufio.Writer, payload []byte, strs []string) error {
	slots := make([]uint32, len(payload)/4)
	for i := range slots {
		slots[i] = binary.LittleEndian.Uint32(payload[i*4:])
	}

	var argCounts []int
	for i := 0; i < len(slots); {
		if i+3 > len(slots) {
			return fmt.Errorf("tracedump: event buffer truncated mid-record")
		}
		kind, scopeID := event.DecodeControl(slots[i])
		i += 3
		if kind == event.Enter || kind == event.Event {
			n := 0
			if int(scopeID) < len(strs) {
				n = argSlotCount(strs[scopeID])
			}
			argCounts = append(argCounts, n)
			i += n
		}
	}

	records, err := event.DecodeRecords(slots, argCounts)
	if err != nil {
		return fmt.Errorf("tracedump: decoding records: %w", err)
	}
	for _, rec := range records {
		name := "?"
		if int(rec.ScopeID) < len(strs) {
			name = strs[rec.ScopeID]
		}
		fmt.Fprintf(w, "    %-5s %-20s ts=%d args=%v\n", rec.Kind, name, rec.Timestamp(), rec.Args)
	}
	return nil
}
