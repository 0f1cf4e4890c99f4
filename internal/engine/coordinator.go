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

// Package engine implements the coordinator that ties a Board, the shared
// transposition table, and a pool of search workers to the driver-facing
// command/response protocol: new-game, set-position, think, ponder,
// move-now, bail and config(key, value) in, stats/pv/move/draw/resign out.
package engine

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/arcticchess/arctic/internal/board"
	"github.com/arcticchess/arctic/internal/config"
	"github.com/arcticchess/arctic/internal/eval"
	myLogging "github.com/arcticchess/arctic/internal/logging"
	"github.com/arcticchess/arctic/internal/movegen"
	"github.com/arcticchess/arctic/internal/moveslice"
	"github.com/arcticchess/arctic/internal/search"
	"github.com/arcticchess/arctic/internal/transpositiontable"
	"github.com/arcticchess/arctic/internal/util"
	. "github.com/arcticchess/arctic/pkg/types"

	golog "github.com/op/go-logging"
)

// startingFen is compared against (ignoring the halfmove/fullmove counters)
// to detect the "normal starting position" early-stop case called out for
// iterative deepening at ply 0.
const startingFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -"

// isStartingPosition reports whether b's board/side/castling/en-passant
// fields match the initial position, regardless of move counters.
func isStartingPosition(b *board.Board) bool {
	fields := strings.Fields(b.Position().Fen())
	if len(fields) < 4 {
		return false
	}
	return strings.Join(fields[:4], " ") == startingFen
}

// Coordinator owns the master search thread and a fixed pool of workers
// that each own a private Board copy, per the root-parallel scheme: the
// master always searches the first (presumably best-ordered) root move
// itself so the reported PV is always grounded in the strongest line it has
// found, and farms out the remaining root moves to idle workers.
type Coordinator struct {
	log *golog.Logger

	tt      *transpositiontable.Table
	master  *search.Searcher
	gen     *movegen.Generator
	workers []*worker
	free    chan int

	// running gates Think/Ponder to one in flight at a time.
	running *semaphore.Weighted

	cmdCh  chan Command
	respCh chan Response

	board   *board.Board
	basePly uint16

	moveNow *util.Bool
	bail    *util.Bool

	maxDepth           int
	maxNodes           uint64
	randomMoves        bool
	canResign          bool
	historyWindowPlies int
}

// NewCoordinator builds a coordinator with numWorkers worker threads and a
// shared transposition table sized ttSizeMB. numWorkers is clamped to at
// least 1.
func NewCoordinator(numWorkers, ttSizeMB int) *Coordinator {
	if numWorkers < 1 {
		numWorkers = 1
	}

	tt := transpositiontable.NewTable(ttSizeMB)

	c := &Coordinator{
		log:                myLogging.GetLog(),
		tt:                 tt,
		master:             search.NewSearcher(tt),
		gen:                movegen.NewGenerator(),
		free:               make(chan int, numWorkers),
		running:            semaphore.NewWeighted(1),
		moveNow:            util.NewBool(false),
		bail:               util.NewBool(false),
		cmdCh:              make(chan Command, 8),
		respCh:             make(chan Response, 64),
		board:              board.NewGame(),
		maxDepth:           config.Settings.Search.MaxDepth,
		maxNodes:           config.Settings.Search.MaxNodes,
		randomMoves:        config.Settings.Search.RandomMoves,
		canResign:          config.Settings.Search.CanResign,
		historyWindowPlies: config.Settings.Search.HistoryWindowPlies,
	}
	c.master.SetHistoryWindowPlies(c.historyWindowPlies)

	c.workers = make([]*worker, numWorkers)
	for i := 0; i < numWorkers; i++ {
		c.workers[i] = newWorker(i, tt)
		c.workers[i].searcher.SetHistoryWindowPlies(c.historyWindowPlies)
		c.free <- i
	}

	return c
}

// Commands returns the channel the driver sends Command values to.
func (c *Coordinator) Commands() chan<- Command { return c.cmdCh }

// Responses returns the channel the driver reads Response values from.
func (c *Coordinator) Responses() <-chan Response { return c.respCh }

// Run processes commands until cmdCh is closed. Think and Ponder run in
// their own goroutine so move-now/bail/config still get serviced while a
// search is in flight; every other command is handled inline.
func (c *Coordinator) Run() {
	for cmd := range c.cmdCh {
		switch cmd.Kind {
		case NewGame:
			c.tt.Clear()
			c.basePly = 0

		case SetPosition:
			if cmd.Board == nil {
				break
			}
			if err := cmd.Board.Position().IsLegal(); err != nil {
				c.log.Errorf("set-position: rejecting illegal position: %v", err)
				break
			}
			c.board = cmd.Board

		case Think:
			go c.think(false)

		case Ponder:
			go c.think(true)

		case MoveNow:
			c.moveNow.Store(true)
			c.cancelInFlight()

		case Bail:
			c.bail.Store(true)
			c.moveNow.Store(true)
			c.cancelInFlight()

		case ConfigSet:
			c.applyConfig(cmd.Key, cmd.Value)
		}
	}
}

func (c *Coordinator) applyConfig(key string, value interface{}) {
	switch key {
	case "max-depth":
		if v, ok := value.(int); ok && v > 0 {
			c.maxDepth = v
		}
	case "max-nodes":
		if v, ok := value.(int); ok && v >= 0 {
			c.maxNodes = uint64(v)
		}
	case "max-threads":
		// Worker count is fixed at construction time; re-sizing the pool
		// mid-game would orphan in-flight jobs, so this key is accepted
		// (not rejected as InvalidConfig) but has no effect beyond logging.
		c.log.Infof("config: max-threads is fixed at %d workers, ignoring runtime change", len(c.workers))
	case "random-moves":
		if v, ok := value.(bool); ok {
			c.randomMoves = v
		}
	case "can-resign":
		if v, ok := value.(bool); ok {
			c.canResign = v
		}
	case "history-window-plies":
		if v, ok := value.(int); ok && v > 0 {
			c.historyWindowPlies = v
			c.master.SetHistoryWindowPlies(v)
			for _, w := range c.workers {
				w.searcher.SetHistoryWindowPlies(v)
			}
		}
	case "max-memory-bytes":
		if v, ok := value.(int64); ok && v > 0 {
			c.tt.Resize(int(v / (1024 * 1024)))
		}
	default:
		c.log.Warningf("config: unknown key %q, ignored", key)
	}
}

// stopRequested reports whether move-now or bail has been signalled.
func (c *Coordinator) stopRequested() bool { return c.moveNow.Load() }

func (c *Coordinator) resetCancellation() {
	c.moveNow.Store(false)
	c.bail.Store(false)
}

// cancelInFlight flips every searcher's own stop flag so an in-flight
// Minimax call unwinds at its next polling point, regardless of whether it
// belongs to the master or to a worker mid-job.
func (c *Coordinator) cancelInFlight() {
	c.master.RequestStop()
	for _, w := range c.workers {
		w.cancel()
	}
}

// think runs iterative deepening on the current board, emitting stats and
// pv responses as each level completes, and a final move/draw/resign once
// a stop condition is hit. ponder is accepted for protocol symmetry with
// "any stop or think converts to think": this engine does not special-case
// search under the opponent's clock beyond that, leaving clock policy to
// the driver.
func (c *Coordinator) think(ponder bool) {
	if !c.running.TryAcquire(1) {
		c.log.Warning("think requested while a search is already running")
		return
	}
	defer c.running.Release(1)

	_ = ponder
	c.resetCancellation()
	c.basePly++
	c.master.NewBasePly(c.basePly)
	for _, w := range c.workers {
		w.reset(c.basePly)
	}

	root := c.board
	us := root.NextPlayer()
	matStrgh := eval.Material(root, us) - eval.Material(root, us.Flip())
	atRootOfGame := root.Ply() == 0 && isStartingPosition(root)

	var lastMove Move
	var lastPV moveslice.MoveSlice
	haveResult := false

	for level := 0; level <= c.maxDepth; level++ {
		if c.stopRequested() {
			break
		}

		moves := c.gen.GenerateLegalMoves(root)
		if moves.Len() == 0 {
			break
		}
		if c.randomMoves {
			shuffleMoves(&moves)
		}
		if lastPV.Len() > 0 {
			reorderPVMoves(&moves, lastPV.At(0))
		}

		move, value, pv, _ := c.searchLevel(level, root, moves, matStrgh)

		lastMove, lastPV, haveResult = move, pv, true

		nodes := c.aggregateNodes()
		c.respCh <- Response{
			Kind:             RespStats,
			Nodes:            nodes,
			NonQNodes:        c.master.Stats.NonQNodes,
			MoveGenNodes:     c.master.Stats.MoveGenNodes,
			HashHitGood:      c.master.Stats.HashHitGood,
			HashFullPerMille: c.tt.Hashfull(),
		}
		c.respCh <- Response{Kind: RespPV, Level: level, Eval: value, Moves: pv}

		if value.DetectedWin() {
			break
		}
		if value.DetectedLoss() {
			if c.canResign {
				c.respCh <- Response{Kind: RespResign}
				return
			}
			break
		}
		if atRootOfGame && level == 0 {
			break
		}
		if c.maxNodes > 0 && nodes >= c.maxNodes {
			break
		}
	}

	if c.bail.Load() || !haveResult {
		return
	}

	clone := root.Clone()
	clone.MakeMove(lastMove)
	if clone.IsFiftyMoveRule() || clone.IsThreefoldRepetition() {
		c.respCh <- Response{Kind: RespDraw, Move: lastMove}
		return
	}

	c.respCh <- Response{Kind: RespMove, Move: lastMove}
}

func (c *Coordinator) aggregateNodes() uint64 {
	total := c.master.Stats.Nodes
	for _, w := range c.workers {
		total += w.searcher.Stats.Nodes
	}
	return total
}

// searchLevel performs one full iterative-deepening pass at the given
// depth: the master searches moves[0] itself, then dispatches moves[1:] to
// idle workers, blocking for a free worker (and therefore on worker
// completion) once the pool is exhausted. A fail-high anywhere cancels
// every outstanding worker and returns immediately with that move.
func (c *Coordinator) searchLevel(level int, root *board.Board, moves moveslice.MoveSlice, matStrgh int) (Move, eval.Eval, moveslice.MoveSlice, bool) {
	alpha, beta := -eval.Win, eval.Win

	first := moves.At(0)
	capWorth0 := eval.CapWorth(root, first)
	root.MakeMove(first)
	var pv0 moveslice.MoveSlice
	child0 := c.master.Minimax(root, level-1, 1, -beta, -alpha, -(matStrgh+capWorth0), &pv0)
	root.UnmakeMove()

	value0 := child0.Inverted()
	value0.DecayTo(eval.WinThreshold)

	bestValue := eval.Bound(alpha, alpha)
	bestValue.BumpTo(value0)
	bestMove := MoveNone
	var bestPV moveslice.MoveSlice

	if value0.LowBound() > alpha {
		bestMove = first
		alpha = value0.LowBound()
		bestPV.PushBack(first)
		bestPV = append(bestPV, pv0...)
	}

	if alpha >= beta || moves.Len() == 1 || c.stopRequested() {
		return bestMove, bestValue, bestPV, alpha >= beta
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	failHigh := false

	for i := 1; i < moves.Len(); i++ {
		if c.stopRequested() {
			break
		}
		mu.Lock()
		if failHigh {
			mu.Unlock()
			break
		}
		mu.Unlock()

		move := moves.At(i)
		capWorth := eval.CapWorth(root, move)

		idx := <-c.free // blocks until a worker is idle

		mu.Lock()
		curAlpha, curBeta := alpha, beta
		mu.Unlock()

		wg.Add(1)
		go func(idx int, move Move, capWorth, curAlpha, curBeta int) {
			defer wg.Done()
			defer func() { c.free <- idx }()

			w := c.workers[idx]
			clone := root.Clone()
			clone.MakeMove(move)
			var childPV moveslice.MoveSlice
			child := w.searcher.Minimax(clone, level-1, 1, -curBeta, -curAlpha, -(matStrgh+capWorth), &childPV)

			value := child.Inverted()
			value.DecayTo(eval.WinThreshold)

			mu.Lock()
			defer mu.Unlock()
			bestValue.BumpTo(value)
			if value.LowBound() > alpha {
				bestMove = move
				alpha = value.LowBound()
				bestPV.Clear()
				bestPV.PushBack(move)
				bestPV = append(bestPV, childPV...)
				if alpha >= beta {
					failHigh = true
					for _, ww := range c.workers {
						ww.cancel()
					}
				}
			}
		}(idx, move, capWorth, curAlpha, curBeta)
	}

	wg.Wait()

	return bestMove, bestValue, bestPV, failHigh
}

// shuffleMoves randomizes move order before ordering heuristics run, so
// that equally-valued root moves do not always resolve the same way.
func shuffleMoves(moves *moveslice.MoveSlice) {
	rand.Seed(int64(time.Now().Nanosecond()))
	for i := moves.Len() - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		mi, mj := moves.At(i), moves.At(j)
		moves.Set(i, mj)
		moves.Set(j, mi)
	}
}

func reorderPVMoves(moves *moveslice.MoveSlice, prev Move) {
	if prev == MoveNone {
		return
	}
	for i := 0; i < moves.Len(); i++ {
		if moves.At(i).MoveOf() == prev.MoveOf() {
			if i != 0 {
				m := moves.At(i)
				for j := i; j > 0; j-- {
					moves.Set(j, moves.At(j-1))
				}
				moves.Set(0, m)
			}
			return
		}
	}
}
