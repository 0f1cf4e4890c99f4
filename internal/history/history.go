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

// Package history implements the history heuristic: a per-worker table
// remembering, for a quiet move that raised alpha, how recently (in ply)
// it last did so. Search uses recency instead of the more common
// increment-on-cutoff counter because move ordering here only needs a
// "hot within a window of the current ply" test, not a magnitude-ranked
// score.
package history

import (
	. "github.com/arcticchess/arctic/pkg/types"
)

// notSet marks a (turn, src, dst) triple that has never raised alpha.
const notSet = -1

// Table is the hist[turn][src][dst] table. It is not safe for concurrent
// use: each search worker owns its own Table, and races on it would only
// degrade move ordering, never correctness, which is why workers don't
// share one behind a lock.
type Table struct {
	hist [ColorLength][SqLength][SqLength]int
}

// NewTable returns an empty history table.
func NewTable() *Table {
	t := &Table{}
	t.Clear()
	return t
}

// Clear resets every entry to "never set".
func (t *Table) Clear() {
	for c := range t.hist {
		for from := range t.hist[c] {
			for to := range t.hist[c][from] {
				t.hist[c][from][to] = notSet
			}
		}
	}
}

// Record marks that the quiet move (turn, from, to) raised alpha at ply.
func (t *Table) Record(turn Color, from, to Square, ply int) {
	t.hist[turn][from][to] = ply
}

// IsHot reports whether (turn, from, to) raised alpha within windowPlies of
// currentPly.
func (t *Table) IsHot(turn Color, from, to Square, currentPly, windowPlies int) bool {
	last := t.hist[turn][from][to]
	if last == notSet {
		return false
	}
	return currentPly-last <= windowPlies
}
