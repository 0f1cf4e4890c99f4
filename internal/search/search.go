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

// Package search implements the alpha-beta search with
// quiescence: Searcher.Minimax is the one recursive function that handles
// both normal and quiescing nodes, consulting the shared transposition
// table and a per-worker history table for move ordering.
package search

import (
	golog "github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/arcticchess/arctic/internal/history"
	myLogging "github.com/arcticchess/arctic/internal/logging"
	"github.com/arcticchess/arctic/internal/movegen"
	"github.com/arcticchess/arctic/internal/moveslice"
	"github.com/arcticchess/arctic/internal/transpositiontable"
	"github.com/arcticchess/arctic/internal/util"
	. "github.com/arcticchess/arctic/pkg/types"
)

var out = message.NewPrinter(language.German)

// maxPly bounds recursion depth regardless of configured search depth.
const maxPly = 128

// Searcher owns everything one search thread needs: its own move
// generator and history table (move ordering is best-effort and not
// shared across workers), a reference to the transposition table shared
// across all workers, and a stop flag workers poll at every move
// iteration.
type Searcher struct {
	log *golog.Logger

	tt   *transpositiontable.Table
	hist *history.Table
	gen  *movegen.Generator

	historyWindowPlies int

	basePly uint16
	stop    *util.Bool // set once "move now"/"bail" is requested

	Stats Stats
	pv    []moveslice.MoveSlice // per-ply PV buffer, indexed by search ply
}

// NewSearcher creates a Searcher sharing tt with every other worker.
func NewSearcher(tt *transpositiontable.Table) *Searcher {
	return &Searcher{
		log:                myLogging.GetSearchLog(),
		tt:                 tt,
		hist:               history.NewTable(),
		gen:                movegen.NewGenerator(),
		historyWindowPlies: 4,
		stop:               util.NewBool(false),
		pv:                 make([]moveslice.MoveSlice, maxPly+1),
	}
}

// SetHistoryWindowPlies configures how far back in ply a history-table hit
// still counts as "hot" for move ordering purposes.
func (s *Searcher) SetHistoryWindowPlies(n int) { s.historyWindowPlies = n }

// NewBasePly starts a new search generation: the searcher's own history
// table and stop flag are reset, and basePly is recorded so the shared TT
// can tell this search's writes apart from an older generation's.
func (s *Searcher) NewBasePly(basePly uint16) {
	s.basePly = basePly
	s.stop.Store(false)
	s.hist.Clear()
	s.Stats = Stats{}
	for i := range s.pv {
		s.pv[i].Clear()
	}
}

// RequestStop flips the cancellation flag every recursion polls.
func (s *Searcher) RequestStop() { s.stop.Store(true) }

// stopRequested reports whether RequestStop has been called since the last
// NewBasePly.
func (s *Searcher) stopRequested() bool { return s.stop.Load() }

// PV returns the principal variation found at the given ply (0 is the
// root). The returned slice is owned by the Searcher and is invalidated by
// the next search.
func (s *Searcher) PV(ply int) moveslice.MoveSlice {
	if ply < 0 || ply >= len(s.pv) {
		return nil
	}
	return s.pv[ply]
}

// savePV writes move followed by child's moves into dest.
func savePV(move Move, child moveslice.MoveSlice, dest *moveslice.MoveSlice) {
	dest.Clear()
	dest.PushBack(move)
	*dest = append(*dest, child...)
}
