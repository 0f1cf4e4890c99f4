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

// Package movegen generates legal moves for a board.Board. Legality is
// established without a make/unmake round trip per candidate move: pinned
// pieces are identified once per call and restricted to their pin ray,
// king moves are checked against attacks with the king itself removed
// from the blocker set (so it cannot "hide" behind its own square), and
// check evasions are restricted to king moves, captures of the checker,
// or interpositions on the checking ray. The one case that still falls
// back to a trial application is en-passant capture, because removing
// two pawns from the same rank can expose a discovered check that no
// static pin table tracks cheaply.
package movegen

import (
	"github.com/arcticchess/arctic/internal/board"
	"github.com/arcticchess/arctic/internal/tables"
	"github.com/arcticchess/arctic/internal/variant"
	"github.com/arcticchess/arctic/internal/moveslice"
	. "github.com/arcticchess/arctic/pkg/types"
)

// pinInfo records, for one pinned piece, the two directions (index into
// Directions) along which it may still move: towards and away from the
// king.
type pinInfo struct {
	sq        Square
	dirToward int
	dirAway   int
}

// Generator holds no state of its own; it is a thin namespace around the
// pseudo-legal-plus-pin-filtering algorithm.
type Generator struct{}

// NewGenerator returns a Generator. Generator carries no fields: every
// method takes the board.Board it operates on explicitly, so one
// Generator value can safely be shared/reused across goroutines.
func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateLegalMoves returns every legal move for the side to move in b.
func (g *Generator) GenerateLegalMoves(b *board.Board) moveslice.MoveSlice {
	moves := moveslice.MoveSlice(make([]Move, 0, 48))
	us := b.NextPlayer()
	kingSq := b.KingSquare(us)
	pins := computePins(b, us, kingSq)

	checkingSq := b.CheckingSquare()
	doubleCheck := checkingSq == SqDoubleCheck
	inCheck := checkingSq != SqFlag

	g.generateKingMoves(b, us, kingSq, &moves)

	if doubleCheck {
		return moves
	}

	var evasionRay map[Square]bool
	if inCheck {
		evasionRay = computeEvasionSquares(kingSq, checkingSq)
	}

	for piece := PieceNone + 1; piece < PieceLength; piece++ {
		if Piece(piece).ColorOf() != us || !variant.IsLegalPiece(Piece(piece)) {
			continue
		}
		pt := Piece(piece).TypeOf()
		if pt == King {
			continue
		}
		for _, from := range append([]Square(nil), b.PieceList(Piece(piece))...) {
			pin, isPinned := pins[from]
			switch pt {
			case Pawn:
				g.generatePawnMoves(b, us, from, pin, isPinned, evasionRay, inCheck, &moves)
			case Knight:
				if isPinned {
					continue // a knight pinned to its king can never move
				}
				g.generateSliderLike(b, us, from, tables.KnightMoves[from], evasionRay, inCheck, &moves)
			default:
				g.generateSlidingMoves(b, us, from, pt, pin, isPinned, evasionRay, inCheck, &moves)
			}
		}
	}

	if !inCheck {
		g.generateCastlingMoves(b, us, &moves)
	}

	g.annotateChecks(b, &moves)

	return moves
}

// annotateChecks fills in each move's checking-square field by trial-
// applying it and reading the resulting board's checking square back.
// Castling moves are skipped: their checking-square field stays SqFlag
// even when the castle gives check, so such a move is not reported by
// IsCheck and is not in move ordering's "preferred prefix" on that account.
func (g *Generator) annotateChecks(b *board.Board, moves *moveslice.MoveSlice) {
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if m.IsCastling() {
			continue
		}
		b.MakeMove(m)
		chk := b.CheckingSquare()
		b.UnmakeMove()
		if chk != SqFlag {
			moves.Set(i, CreateCheckingMove(m.From(), m.To(), m.PromotionType(), chk))
		}
	}
}

func (g *Generator) generateKingMoves(b *board.Board, us Color, kingSq Square, moves *moveslice.MoveSlice) {
	them := us.Flip()
	for _, to := range tables.KingMoves[kingSq] {
		target := b.PieceAt(to)
		if target != PieceNone && target.ColorOf() == us {
			continue
		}
		if b.IsAttackedIgnoring(to, them, kingSq) {
			continue
		}
		*moves = append(*moves, CreateMove(kingSq, to, PtNone))
	}
}

// computeEvasionSquares returns the set of squares (including the
// checking square itself) that block or capture a single checker.
// Knight and pawn checks have no interposition squares, only the
// checker's own square.
func computeEvasionSquares(kingSq, checkerSq Square) map[Square]bool {
	result := map[Square]bool{checkerSq: true}
	dirIdx := int(tables.SquareDirection[kingSq][checkerSq])
	if dirIdx < 0 {
		return result // knight or pawn check: capture only
	}
	for _, sq := range tables.Ray[kingSq][dirIdx] {
		if sq == checkerSq {
			break
		}
		result[sq] = true
	}
	return result
}

// computePins walks all 8 rays from the king and records, for the first
// own piece found on a ray that is followed by an enemy slider attacking
// along that same ray, the pin and its two legal directions of travel.
func computePins(b *board.Board, us Color, kingSq Square) map[Square]pinInfo {
	pins := make(map[Square]pinInfo)
	them := us.Flip()
	for dirIdx := 0; dirIdx < 8; dirIdx++ {
		orthogonal := dirIdx < 4
		var candidate Square = SqNone
		for _, sq := range tables.Ray[kingSq][dirIdx] {
			piece := b.PieceAt(sq)
			if piece == PieceNone {
				continue
			}
			if candidate == SqNone {
				if piece.ColorOf() != us {
					break // first piece on ray is enemy: no pin possible here
				}
				candidate = sq
				continue
			}
			// second piece found
			if piece.ColorOf() == them {
				pt := piece.TypeOf()
				if pt == Queen || (orthogonal && pt == Rook) || (!orthogonal && pt == Bishop) {
					pins[candidate] = pinInfo{sq: candidate, dirToward: dirIdx, dirAway: oppositeDir(dirIdx)}
				}
			}
			break
		}
	}
	return pins
}

func oppositeDir(dirIdx int) int {
	// Directions order: North, East, South, West, NE, SE, SW, NW.
	opp := [8]int{2, 3, 0, 1, 6, 7, 4, 5}
	return opp[dirIdx]
}

func (g *Generator) generateSliderLike(b *board.Board, us Color, from Square, targets []Square, evasionRay map[Square]bool, inCheck bool, moves *moveslice.MoveSlice) {
	for _, to := range targets {
		target := b.PieceAt(to)
		if target != PieceNone && target.ColorOf() == us {
			continue
		}
		if inCheck && !evasionRay[to] {
			continue
		}
		*moves = append(*moves, CreateMove(from, to, PtNone))
	}
}

func (g *Generator) generateSlidingMoves(b *board.Board, us Color, from Square, pt PieceType, pin pinInfo, isPinned bool, evasionRay map[Square]bool, inCheck bool, moves *moveslice.MoveSlice) {
	var dirIdxs []int
	switch pt {
	case Bishop:
		dirIdxs = []int{4, 5, 6, 7}
	case Rook:
		dirIdxs = []int{0, 1, 2, 3}
	case Queen:
		dirIdxs = []int{0, 1, 2, 3, 4, 5, 6, 7}
	}
	for _, dirIdx := range dirIdxs {
		if isPinned && dirIdx != pin.dirToward && dirIdx != pin.dirAway {
			continue
		}
		for _, to := range tables.Ray[from][dirIdx] {
			target := b.PieceAt(to)
			if target != PieceNone && target.ColorOf() == us {
				break
			}
			if !(inCheck && !evasionRay[to]) {
				*moves = append(*moves, CreateMove(from, to, PtNone))
			}
			if target != PieceNone {
				break
			}
		}
	}
}

func (g *Generator) generatePawnMoves(b *board.Board, us Color, from Square, pin pinInfo, isPinned bool, evasionRay map[Square]bool, inCheck bool, moves *moveslice.MoveSlice) {
	them := us.Flip()
	forward := North
	if us == Black {
		forward = South
	}
	promRank := us.PromotionRank()

	addPawnMove := func(to Square) {
		if isPinned {
			dir := int(tables.SquareDirection[from][to])
			if dir != pin.dirToward && dir != pin.dirAway {
				return
			}
		}
		if inCheck && !evasionRay[to] {
			return
		}
		if to.RankOf() == promRank {
			for _, pt := range []PieceType{Queen, Rook, Bishop, Knight} {
				*moves = append(*moves, CreateMove(from, to, pt))
			}
			return
		}
		*moves = append(*moves, CreateMove(from, to, PtNone))
	}

	if to := from.To(forward); to != SqNone && b.PieceAt(to) == PieceNone {
		addPawnMove(to)
		if from.RankOf() == us.PawnStartRank() {
			if to2 := to.To(forward); to2 != SqNone && b.PieceAt(to2) == PieceNone {
				addPawnMove(to2)
			}
		}
	}

	for _, to := range tables.PawnCaptures[us][from] {
		target := b.PieceAt(to)
		if target != PieceNone && target.ColorOf() == them {
			addPawnMove(to)
		} else if to == b.Position().EpSquare() {
			g.maybeAddEnPassant(b, us, from, to, moves)
		}
	}
}

// maybeAddEnPassant applies the capture on a scratch copy of the board to
// confirm it does not expose the king - the one legality check that is
// cheaper to verify by trial than to special-case statically, because
// removing both the moving pawn and the captured pawn from the same rank
// can unmask a rook or queen behind them.
func (g *Generator) maybeAddEnPassant(b *board.Board, us Color, from, to Square, moves *moveslice.MoveSlice) {
	m := CreateMove(from, to, PtNone)
	b.MakeMove(m)
	stillInCheck := b.IsAttacked(b.KingSquare(us), us.Flip())
	b.UnmakeMove()
	if !stillInCheck {
		*moves = append(*moves, m)
	}
}

func (g *Generator) generateCastlingMoves(b *board.Board, us Color, moves *moveslice.MoveSlice) {
	them := us.Flip()
	cr := b.Position().Castling()
	cc := variant.Castling[us]

	canCastle := func(right CastlingRights, rookSq Square, through []Square) bool {
		if !cr.Has(right) {
			return false
		}
		if b.PieceAt(rookSq) != MakePiece(us, Rook) {
			return false
		}
		for _, sq := range through {
			if sq != cc.Start.King && b.PieceAt(sq) != PieceNone {
				return false
			}
			if b.IsAttacked(sq, them) {
				return false
			}
		}
		return true
	}

	var ooRight, oooRight CastlingRights
	if us == White {
		ooRight, oooRight = CastlingWhiteOO, CastlingWhiteOOO
	} else {
		ooRight, oooRight = CastlingBlackOO, CastlingBlackOOO
	}

	kingTo1 := Square(int(cc.Start.King) + 1)
	kingTo2 := Square(int(cc.Start.King) + 2)
	if canCastle(ooRight, cc.Start.RookOO, []Square{cc.Start.King, kingTo1, kingTo2}) {
		*moves = append(*moves, CreateCastlingMove(us, true))
	}

	queenKnightSq := Square(int(cc.Start.RookOOO) + 1)
	kingTo1 = Square(int(cc.Start.King) - 1)
	kingTo2 = Square(int(cc.Start.King) - 2)
	if canCastle(oooRight, cc.Start.RookOOO, []Square{cc.Start.King, kingTo1, kingTo2}) && b.PieceAt(queenKnightSq) == PieceNone {
		*moves = append(*moves, CreateCastlingMove(us, false))
	}
}
