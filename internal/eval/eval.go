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

// Package eval holds Eval, the (low, high) bound pair search uses to carry
// both exact scores and alpha-beta windows through the tree, plus the
// material and mop-up scoring search calls at the leaves.
package eval

import (
	"fmt"

	"github.com/arcticchess/arctic/internal/board"
	"github.com/arcticchess/arctic/internal/tables"
	"github.com/arcticchess/arctic/internal/util"
	. "github.com/arcticchess/arctic/pkg/types"
)

// Material point values. KingWorth is Royal (0): the king is never
// captured, so giving it a nonzero worth would double-count its loss as a
// regular eval swing instead of the Win/Loss sentinels below.
const (
	PawnWorth   = 100
	KnightWorth = 300
	BishopWorth = 300
	RookWorth   = 500
	QueenWorth  = 900
	KingWorth   = 0
)

// Win is the evaluation of a forced checkmate; Loss is its mirror.
const (
	Win  = 100000
	Loss = -Win
)

// WinThreshold/LossThreshold bound the last 100 ticks below Win/above Loss,
// reserved for encoding "mate in N" - see MovesToWinOrLoss.
const (
	WinThreshold  = Win - 100
	LossThreshold = -WinThreshold
)

// Eval is a pair of integer centipawn-equivalent bounds. An exact score has
// low == high; a alpha-beta cutoff leaves the two apart, carrying only a
// one-sided guarantee. All four relational operators are strict: they
// answer only questions the bound pair can actually decide.
type Eval struct {
	low  int
	high int
}

// Exact returns an Eval whose low and high bound are both v.
func Exact(v int) Eval { return Eval{low: v, high: v} }

// Bound returns an Eval with the given low/high bounds.
func Bound(low, high int) Eval { return Eval{low: low, high: high} }

// LossEval is the Eval an outright loss evaluates to.
var LossEval = Exact(Loss)

func (e Eval) LowBound() int  { return e.low }
func (e Eval) HighBound() int { return e.high }

// Less reports whether e is strictly below v, i.e. whether even the most
// optimistic bound the interval allows is still below v.
func (e Eval) Less(v int) bool { return e.high < v }

// LessEq reports whether e's high bound is at most v.
func (e Eval) LessEq(v int) bool { return e.high <= v }

// Greater reports whether e's low bound strictly exceeds v.
func (e Eval) Greater(v int) bool { return e.low > v }

// GreaterEq reports whether e's low bound is at least v.
func (e Eval) GreaterEq(v int) bool { return e.low >= v }

// IsExact reports whether low == high.
func (e Eval) IsExact() bool { return e.low == e.high }

// Range returns high - low; zero for an exact evaluation.
func (e Eval) Range() int { return e.high - e.low }

// DetectedWin reports whether the low bound alone already guarantees a win.
func (e Eval) DetectedWin() bool { return e.low >= WinThreshold }

// DetectedLoss reports whether the high bound alone already guarantees a loss.
func (e Eval) DetectedLoss() bool { return e.high <= LossThreshold }

// DetectedWinOrLoss reports either of the above.
func (e Eval) DetectedWinOrLoss() bool { return e.DetectedWin() || e.DetectedLoss() }

// MovesToWinOrLoss returns the number of moves to a detected win/loss,
// half the encoded ply distance rounded up, or -1 if neither bound is a
// detected win or loss.
func (e Eval) MovesToWinOrLoss() int {
	if e.DetectedWin() {
		return (Win - e.low + 2) / 2
	}
	if e.DetectedLoss() {
		return (e.high - Loss + 2) / 2
	}
	return -1
}

// Inverted returns the Eval as seen by the other side: bounds swap sign and
// position.
func (e Eval) Inverted() Eval { return Eval{low: -e.high, high: -e.low} }

// Invert flips e in place and returns it, for chaining.
func (e *Eval) Invert() *Eval {
	e.low, e.high = -e.high, -e.low
	return e
}

// Set overwrites both bounds and returns e, for chaining.
func (e *Eval) Set(low, high int) *Eval {
	e.low, e.high = low, high
	return e
}

// SetExact overwrites both bounds to v and returns e, for chaining.
func (e *Eval) SetExact(v int) *Eval {
	e.low, e.high = v, v
	return e
}

// BumpTo widens e to be at least as favorable as other in both bounds.
func (e *Eval) BumpTo(other Eval) *Eval {
	e.low = util.Max(e.low, other.low)
	e.high = util.Max(e.high, other.high)
	return e
}

// BumpHighBoundTo raises the high bound to highBound if it is lower.
func (e *Eval) BumpHighBoundTo(highBound int) *Eval {
	e.high = util.Max(e.high, highBound)
	return e
}

// BumpHighBoundToWin raises the high bound to Win unconditionally; used by
// the search when a cutoff leaves the upper bound untrustworthy.
func (e *Eval) BumpHighBoundToWin() *Eval {
	e.high = Win
	return e
}

// DecayTo nudges both bounds one tick toward the window [-threshold,
// threshold], so a mate found N plies from the root scores one tick worse
// than the same mate found N-1 plies from the root. Called once per ply on
// the way back up the tree.
func (e *Eval) DecayTo(threshold int) *Eval {
	if e.low > threshold {
		e.low--
	} else if e.low < -threshold {
		e.low++
	}
	if e.high > threshold {
		e.high--
	} else if e.high < -threshold {
		e.high++
	}
	return e
}

// RipenFrom is DecayTo's inverse: it nudges bounds one tick away from the
// window, stopping at the Win/Loss sentinels.
func (e *Eval) RipenFrom(threshold int) *Eval {
	if e.low > threshold && e.low < Win {
		e.low++
	} else if e.low < -threshold && e.low > Loss {
		e.low--
	}
	if e.high > threshold && e.high < Win {
		e.high++
	} else if e.high < -threshold && e.high > Loss {
		e.high--
	}
	return e
}

func (e Eval) String() string {
	return fmt.Sprintf("{(Eval) %d %d}", e.low, e.high)
}

var pieceWorth = [PtLength]int{
	PtNone: 0,
	King:   KingWorth,
	Pawn:   PawnWorth,
	Knight: KnightWorth,
	Bishop: BishopWorth,
	Rook:   RookWorth,
	Queen:  QueenWorth,
}

// Worth returns a piece type's material point value.
func Worth(pt PieceType) int { return pieceWorth[pt] }

// Material sums the point value of every piece color still has on b.
func Material(b *board.Board, color Color) int {
	total := 0
	for pt := Pawn; pt <= Queen; pt++ {
		total += len(b.PieceList(MakePiece(color, pt))) * Worth(pt)
	}
	return total
}

// CapWorth is the value gained by playing m: the worth of whatever it
// captures (0 for a non-capture or castling) plus the net gain of a
// promotion (the promoted piece's worth less the pawn it replaces).
func CapWorth(b *board.Board, m Move) int {
	if m.IsCastling() {
		return 0
	}
	worth := 0
	if captured := b.PieceAt(m.To()); captured != PieceNone {
		worth += Worth(captured.TypeOf())
	} else if m.To() == b.Position().EpSquare() && b.PieceAt(m.From()).TypeOf() == Pawn {
		worth += Worth(Pawn)
	}
	if pt := m.PromotionType(); pt != PtNone {
		worth += Worth(pt) - Worth(Pawn)
	}
	return worth
}

// EndGameEval scores a position where color's opponent has no material and
// no pawns left: it rewards driving the bare enemy king toward the corner
// (max 84 ticks) and, failing further improvement there, closing in with
// color's own king (max 14 ticks).
func EndGameEval(b *board.Board, color Color) int {
	enemyKing := b.KingSquare(color.Flip())
	ownKing := b.KingSquare(color)
	return Material(b, color) +
		tables.CenterDistance[enemyKing]*14 +
		(14 - tables.Distance[ownKing][enemyKing])
}
