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

package engine

import (
	"github.com/arcticchess/arctic/internal/search"
	"github.com/arcticchess/arctic/internal/transpositiontable"
)

// worker is one of the coordinator's fixed pool of search threads. Each
// worker owns its own Searcher - and therefore its own history table and
// move generator - so its move ordering is independent of every other
// worker's; the shared transposition table is the only state two workers
// ever touch concurrently. The coordinator hands a worker a cloned root
// Board and a move to search directly (see Coordinator.searchLevel); worker
// itself only owns the long-lived state that must survive across moves
// within one game.
type worker struct {
	idx      int
	searcher *search.Searcher
}

func newWorker(idx int, tt *transpositiontable.Table) *worker {
	return &worker{idx: idx, searcher: search.NewSearcher(tt)}
}

// cancel requests the worker's in-flight search (if any) unwind early with
// a conservative bound.
func (w *worker) cancel() { w.searcher.RequestStop() }

// reset prepares the worker for a fresh search generation.
func (w *worker) reset(basePly uint16) { w.searcher.NewBasePly(basePly) }
