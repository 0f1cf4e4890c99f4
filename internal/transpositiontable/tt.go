//
// FrankyGo - UCI chess engine in GO for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Package transpositiontable implements the shared, concurrently-accessed
// transposition table. Unlike a single-threaded cache, entries here are
// written and read by many search workers at once: a fixed ring of 1024
// stripe locks, each guarding its share of the buckets, bounds the
// synchronization cost rather than one lock per entry or one for the whole
// table.
package transpositiontable

import (
	"math"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/arcticchess/arctic/internal/eval"
	myLogging "github.com/arcticchess/arctic/internal/logging"
	"github.com/arcticchess/arctic/internal/util"
	. "github.com/arcticchess/arctic/pkg/types"
)

var out = message.NewPrinter(language.German)

const (
	// MaxSizeInMB is the largest table size Resize will honor.
	MaxSizeInMB = 65_536

	mb = 1024 * 1024

	// NumStripeLocks is the number of mutexes sharing the table's entries.
	// Must be a power of two so "& (NumStripeLocks-1)" replaces a modulo.
	NumStripeLocks = 1024

	// HashNoEntry is the Entry.depth sentinel meaning "bucket never written".
	HashNoEntry int8 = -1

	entrySize = int(unsafe.Sizeof(Entry{}))
)

// Entry is one transposition table bucket: the zobrist key that produced
// it, the Eval bound the search found, the move that achieved it, the
// search depth it was found at, and the base-ply of the search run that
// wrote it (so a later, fresher search can evict a stale one even at equal
// depth).
type Entry struct {
	zobrist uint64
	low     int32
	high    int32
	move    Move
	basePly uint16
	depth   int8
}

// Stats counts table traffic. Incremented with plain (non-atomic) ops
// under whichever stripe lock the caller already holds, except for the
// lock-free probe fast path which uses atomic.AddUint64 since it runs
// outside any lock.
type Stats struct {
	Probes    uint64
	Hits      uint64
	Misses    uint64
	Updates   uint64
	Collisions uint64
}

// Table is the shared transposition table. All exported methods are safe
// for concurrent use by multiple search workers; Resize and Clear are not
// and must not run concurrently with a search.
type Table struct {
	log *logging.Logger

	entries []Entry
	locks   [NumStripeLocks]sync.Mutex

	mask       uint64
	sizeInByte uint64

	Stats Stats
}

// NewTable creates a Table sized to fit within sizeInMByte, rounding its
// entry count down to the nearest power of two.
func NewTable(sizeInMByte int) *Table {
	t := &Table{log: myLogging.GetLog()}
	t.Resize(sizeInMByte)
	return t
}

// Resize clears the table and resizes it. Not safe to call while a search
// is using the table.
func (t *Table) Resize(sizeInMByte int) {
	if sizeInMByte > MaxSizeInMB {
		t.log.Warning(out.Sprintf("requested TT size %d MB reduced to max %d MB", sizeInMByte, MaxSizeInMB))
		sizeInMByte = MaxSizeInMB
	}
	if sizeInMByte < 0 {
		sizeInMByte = 0
	}

	sizeInByte := uint64(sizeInMByte) * mb
	numEntries := uint64(0)
	if sizeInByte >= uint64(entrySize) {
		numEntries = 1 << uint64(math.Floor(math.Log2(float64(sizeInByte)/float64(entrySize))))
	}

	t.entries = make([]Entry, numEntries)
	for i := range t.entries {
		t.entries[i].depth = HashNoEntry
	}
	if numEntries == 0 {
		t.mask = 0
	} else {
		t.mask = numEntries - 1
	}
	t.sizeInByte = numEntries * uint64(entrySize)
	t.Stats = Stats{}

	t.log.Info(out.Sprintf("TT size %d MB, capacity %d entries (%d bytes/entry), requested %d MB",
		t.sizeInByte/mb, numEntries, entrySize, sizeInMByte))
	t.log.Debug(util.MemStat())
}

// Clear wipes every entry without changing the table's size.
func (t *Table) Clear() {
	for i := range t.entries {
		t.entries[i] = Entry{depth: HashNoEntry}
	}
	t.Stats = Stats{}
}

// NumEntries returns the table's bucket capacity (not how many are filled).
func (t *Table) NumEntries() uint64 { return uint64(len(t.entries)) }

// index maps a zobrist key to its bucket.
func (t *Table) index(zobrist uint64) uint64 { return zobrist & t.mask }

// lockFor returns the stripe lock guarding zobrist's bucket. The shift
// decorrelates the lock stripe from the bucket index, which is taken from
// the low bits of the same key - otherwise every bucket sharing a stripe
// would also share an index and the striping would buy nothing.
func (t *Table) lockFor(zobrist uint64) *sync.Mutex {
	return &t.locks[(zobrist>>32)&(NumStripeLocks-1)]
}

// Prefetch is a best-effort cache warm for a zobrist key a caller knows it
// will probe soon. Go exposes no hardware prefetch instruction, so this
// just touches the bucket's cache line a little earlier than IsHit would.
func (t *Table) Prefetch(zobrist uint64) {
	if len(t.entries) == 0 {
		return
	}
	_ = t.entries[t.index(zobrist)].zobrist
}

// IsHit reports whether the table holds a usable result for zobrist at the
// given remaining depth (ignored during quiescence). A stored result is
// usable when it is exact, already resolves the window (its low is at
// least beta or its high is at most alpha), or records a forced mate or
// loss. A hit refreshes the entry's base-ply so it survives eviction by
// younger, shallower entries for the remainder of this search generation.
func (t *Table) IsHit(zobrist uint64, depth int8, basePly uint16, alpha, beta int, quiescence bool) (eval.Eval, Move, bool) {
	if len(t.entries) == 0 {
		return eval.Eval{}, MoveNone, false
	}
	idx := t.index(zobrist)
	e := &t.entries[idx]

	// Lock-free fast path: a zobrist mismatch is a miss without touching
	// the lock. The slice element is read racily here, which is safe on
	// every supported platform for a naturally-aligned uint64 load.
	if e.zobrist != zobrist {
		atomic.AddUint64(&t.Stats.Misses, 1)
		return eval.Eval{}, MoveNone, false
	}

	lock := t.lockFor(zobrist)
	lock.Lock()
	defer lock.Unlock()

	t.Stats.Probes++
	if e.zobrist != zobrist {
		t.Stats.Misses++
		return eval.Eval{}, MoveNone, false
	}
	if e.depth < depth && !quiescence {
		t.Stats.Misses++
		return eval.Eval{}, MoveNone, false
	}

	bound := eval.Bound(int(e.low), int(e.high))
	usable := bound.IsExact() ||
		bound.GreaterEq(beta) ||
		bound.LessEq(alpha) ||
		bound.LowBound() == eval.Win ||
		bound.HighBound() == eval.Loss
	if !usable {
		t.Stats.Misses++
		return eval.Eval{}, MoveNone, false
	}

	e.basePly = basePly
	t.Stats.Hits++
	return bound, e.move, true
}

// ConditionalUpdate writes result/move/zobrist into the table unless an
// existing, still-relevant entry is already at least as good: the slot is
// overwritten only when it is empty, the new depth is strictly greater,
// the stored entry is from an older search generation, or the new bound is
// narrower at equal depth.
func (t *Table) ConditionalUpdate(result eval.Eval, move Move, zobrist uint64, depth int8, basePly uint16) {
	if len(t.entries) == 0 {
		return
	}
	idx := t.index(zobrist)
	e := &t.entries[idx]

	lock := t.lockFor(zobrist)
	lock.Lock()
	defer lock.Unlock()

	empty := e.depth == HashNoEntry
	stale := e.basePly < basePly
	better := depth > e.depth
	narrower := depth == e.depth && result.Range() < int(e.high-e.low)

	if !(empty || stale || better || narrower) {
		if e.zobrist != zobrist {
			t.Stats.Collisions++
		}
		return
	}

	t.Stats.Updates++
	e.zobrist = zobrist
	e.low = int32(result.LowBound())
	e.high = int32(result.HighBound())
	e.move = move
	e.depth = depth
	e.basePly = basePly
}

// Hashfull returns how full the table is, in permille, as commonly
// reported by chess engines.
func (t *Table) Hashfull() int {
	if len(t.entries) == 0 {
		return 0
	}
	filled := 0
	sampleSize := len(t.entries)
	if sampleSize > 1000 {
		sampleSize = 1000
	}
	for i := 0; i < sampleSize; i++ {
		if t.entries[i].depth != HashNoEntry {
			filled++
		}
	}
	return (filled * 1000) / sampleSize
}

// String renders a one-line summary suitable for logging.
func (t *Table) String() string {
	return out.Sprintf("TT: size %d MB capacity %d entries (%d bytes) hashfull %d%%o probes %d hits %d misses %d updates %d collisions %d",
		t.sizeInByte/mb, len(t.entries), entrySize, t.Hashfull(),
		t.Stats.Probes, t.Stats.Hits, t.Stats.Misses, t.Stats.Updates, t.Stats.Collisions)
}
