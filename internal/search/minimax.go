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

package search

import (
	"github.com/arcticchess/arctic/internal/board"
	"github.com/arcticchess/arctic/internal/eval"
	"github.com/arcticchess/arctic/internal/moveslice"
	. "github.com/arcticchess/arctic/pkg/types"
)

// stopped is the conservative result returned when cancellation is
// observed mid-search: the caller's current lower bound stands, but the
// upper bound is set to eval.Win since nothing further was proven.
func stopped(alpha int) eval.Eval {
	return eval.Bound(alpha, eval.Win)
}

// isCaptureOrPromotion reports whether move captures a piece (including en
// passant) or promotes a pawn - the filter quiescence search applies when
// not in check.
func isCaptureOrPromotion(b *board.Board, move Move) bool {
	if move.PromotionType() != PtNone {
		return true
	}
	if b.PieceAt(move.To()) != PieceNone {
		return true
	}
	return move.To() == b.Position().EpSquare() && b.PieceAt(move.From()).TypeOf() == Pawn
}

// isPreferred reports whether move belongs to the "preferred prefix":
// captures, promotions, checks, or moves the history table marks hot
// within the configured window of ply.
func (s *Searcher) isPreferred(b *board.Board, move Move, ply int) bool {
	if isCaptureOrPromotion(b, move) || move.IsCheck() {
		return true
	}
	return s.hist.IsHot(b.NextPlayer(), move.From(), move.To(), ply, s.historyWindowPlies)
}

// reorderPV moves the move recorded in prev (if any, and if still present
// in moves) to the front, so the previous iteration's best line is
// searched first this iteration.
func reorderPV(moves *moveslice.MoveSlice, prev Move) {
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

// Minimax is the single recursive search function covering both normal
// and quiescing nodes. depth is plies remaining before quiescence takes
// over; ply is distance from the root (used for mate scoring and
// cancellation-safe recursion limits). matStrgh is the side-to-move's
// material imbalance (its own material minus the opponent's). outPV
// receives the principal variation from this node downward; callers must
// pass &s.pv[ply] so the PV of a previous iterative-deepening pass at this
// node is available for front-loading the move list.
func (s *Searcher) Minimax(b *board.Board, depth, ply int, alpha, beta, matStrgh int, outPV *moveslice.MoveSlice) eval.Eval {
	outPV.Clear()
	s.Stats.Nodes++

	if s.stopRequested() {
		return stopped(alpha)
	}
	if ply >= maxPly {
		return eval.Exact(matStrgh)
	}

	quiescing := depth <= 0

	us := b.NextPlayer()

	// Draws: insufficient material, fifty-move, threefold repetition.
	// Bias away from a draw when at least as well off materially.
	if b.HasInsufficientMaterial() || b.IsFiftyMoveRule() || b.IsThreefoldRepetition() {
		if matStrgh >= 0 {
			return eval.Exact(-1)
		}
		return eval.Exact(0)
	}

	if !quiescing {
		s.Stats.NonQNodes++
	}

	if quiescing {
		// Mop-up: no material or pawns left for the side to move, but the
		// enemy still has material - evaluate via the endgame corner-the-
		// king heuristic rather than the ordinary quiescence loop.
		if !b.InCheck() && len(b.PieceList(MakePiece(us, Pawn))) == 0 && eval.Material(b, us) == 0 {
			return eval.Exact(-eval.EndGameEval(b, us.Flip()))
		}
		// Symmetric case: the enemy has nothing left and the side to move
		// holds the mating material - corner the enemy king directly
		// rather than falling through to the ordinary quiescence loop,
		// which would find no captures here and return a flat material
		// score with no mating guidance.
		if !b.InCheck() && len(b.PieceList(MakePiece(us.Flip(), Pawn))) == 0 && eval.Material(b, us.Flip()) == 0 {
			return eval.Exact(eval.EndGameEval(b, us))
		}

		// Standing pat.
		if matStrgh >= beta {
			return eval.Bound(matStrgh, eval.Win)
		}
		if matStrgh > alpha {
			alpha = matStrgh
		}
	}

	// Transposition probe. Skipped when a repetition could still occur
	// within the remaining horizon of this subtree (halfmove clock
	// running and a prior occurrence of this position already on the
	// ring), since a cached bound from a different path could hide the
	// repetition.
	skipTT := b.Position().HalfMoveClock() > 0 && b.RepetitionCount() > 0
	if !skipTT {
		s.Stats.HashProbes++
		if s.stopRequested() {
			return stopped(alpha)
		}
		if bound, move, hit := s.tt.IsHit(b.ZobristKey(), int8(depth), s.basePly, alpha, beta, quiescing); hit {
			s.Stats.HashHitGood++
			if move != MoveNone {
				outPV.PushBack(move)
			}
			return bound
		}
		s.Stats.HashMisses++
	}

	s.Stats.MoveGenNodes++
	moves := s.gen.GenerateLegalMoves(b)

	inCheck := b.InCheck()
	if quiescing && !inCheck {
		captures := make(moveslice.MoveSlice, 0, moves.Len())
		for i := 0; i < moves.Len(); i++ {
			if m := moves.At(i); isCaptureOrPromotion(b, m) {
				captures = append(captures, m)
			}
		}
		moves = captures
	}

	if moves.Len() == 0 {
		if inCheck {
			s.Stats.Checkmates++
			return eval.Exact(-eval.Win)
		}
		if quiescing {
			return eval.Exact(matStrgh)
		}
		s.Stats.Stalemates++
		return eval.Exact(0)
	}

	if prevPV := s.pv[ply]; prevPV.Len() > 0 {
		reorderPV(&moves, prevPV.At(0))
	}

	bestValue := eval.Bound(alpha, alpha)
	bestMove := MoveNone
	childPV := &s.pv[ply+1]

	for i := 0; i < moves.Len(); i++ {
		if s.stopRequested() {
			return stopped(alpha)
		}

		move := moves.At(i)
		capWorth := eval.CapWorth(b, move)

		// Futility pruning: skip moves that, even with their capture
		// gain, can't plausibly raise alpha, unless they give check.
		if (quiescing || depth == 1) && !move.IsCheck() {
			if capWorth+matStrgh <= alpha {
				if capWorth+matStrgh > bestValue.HighBound() {
					bestValue.BumpHighBoundTo(capWorth + matStrgh)
				}
				if s.isPreferred(b, move, ply) {
					break
				}
				continue
			}
		}

		b.MakeMove(move)

		childMatStrgh := -(matStrgh + capWorth)
		child := s.Minimax(b, depth-1, ply+1, -beta, -alpha, childMatStrgh, childPV)

		b.UnmakeMove()

		if s.stopRequested() {
			return stopped(alpha)
		}

		value := child.Inverted()
		value.DecayTo(eval.WinThreshold)
		bestValue.BumpTo(value)

		if value.LowBound() > alpha {
			bestMove = move
			alpha = value.LowBound()
			savePV(move, *childPV, outPV)

			if !isCaptureOrPromotion(b, move) {
				s.hist.Record(us, move.From(), move.To(), ply)
			}

			if alpha >= beta {
				s.Stats.BetaCuts++
				break
			}
		}
	}

	s.tt.ConditionalUpdate(bestValue, bestMove, b.ZobristKey(), int8(depth), s.basePly)

	return bestValue
}
