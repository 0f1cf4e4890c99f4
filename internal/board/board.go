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

// Package board turns the pure position.Position snapshot into a state
// machine that can apply and unapply moves incrementally: a zobrist key
// XORed in place rather than recomputed, a piece-list-plus-reverse-index
// per square so captures are O(1) swap-removes instead of a board scan,
// and a running checking-square (ncheck) so InCheck never has to search.
package board

import (
	"fmt"

	"github.com/arcticchess/arctic/internal/assert"
	"github.com/arcticchess/arctic/internal/tables"
	"github.com/arcticchess/arctic/internal/variant"
	"github.com/arcticchess/arctic/internal/position"
	. "github.com/arcticchess/arctic/pkg/types"
)

// repetitionRingSize must be a power of two and at least 128: large enough
// that the 50-move rule can never wrap the ring before a game-ending draw
// is already forced, the same bound the original engine documents next to
// its own saved-position ring.
const repetitionRingSize = 128

// undoInfo is the per-ply record MakeMove pushes and UnmakeMove pops. It
// holds exactly what cannot be recovered by reversing the move itself.
type undoInfo struct {
	move          Move
	captured      Piece
	capturedSq    Square
	castling      CastlingRights
	epSquare      Square
	halfMoveClock int
	zobrist       uint64
	checkingSq    Square
}

// Board is the engine's mutable, incrementally-updated board. It embeds a
// position.Position snapshot that MakeMove/UnmakeMove keep in sync, plus
// the indexes that make legality/check testing and the move generator
// fast.
type Board struct {
	pos Position

	zobrist    uint64
	checkingSq Square // SqFlag, SqDoubleCheck, or the single checking square

	pieceSquares [PieceLength][]Square // piece list per Piece value
	listIndex    [SqLength]int         // index of a square's piece within its list

	repetitionRing [repetitionRingSize][]uint64 // zobrist keys bucketed by key % size
	ply            int

	undo []undoInfo
}

// Position is the subset of Position's read-only API Board re-exposes
// directly, so callers rarely need to import package position at all.
type Position = position.Position

// NewFromPosition builds a Board from a pure Position snapshot, indexing
// every occupied square into its piece list and computing the zobrist key
// and initial check state from scratch. Use this once per search root;
// MakeMove/UnmakeMove keep everything incremental afterwards.
func NewFromPosition(pos Position) *Board {
	b := &Board{pos: pos, checkingSq: SqFlag}
	for sq := SqA1; sq < SqNone; sq++ {
		piece := pos.PieceAt(sq)
		if piece == PieceNone {
			continue
		}
		b.listIndex[sq] = len(b.pieceSquares[piece])
		b.pieceSquares[piece] = append(b.pieceSquares[piece], sq)
		b.zobrist ^= tables.ZobristSquare[tables.ZobristPieceIndex(piece)][sq]
	}
	b.zobrist ^= tables.ZobristCastling[pos.Castling()]
	b.zobrist ^= epZobrist(pos.EpSquare())
	if pos.NextPlayer() == Black {
		b.zobrist ^= tables.ZobristColor
	}
	b.recomputeCheckingSquare()
	b.pushRepetition()
	return b
}

// NewGame returns a Board set up in the standard chess starting position.
func NewGame() *Board {
	return NewFromPosition(position.New())
}

func epZobrist(epSq Square) uint64 {
	if epSq == SqNone {
		return tables.ZobristEpFile[8]
	}
	return tables.ZobristEpFile[epSq.FileOf()]
}

// Position returns a copy of the current pure snapshot.
func (b *Board) Position() Position { return b.pos }

// PieceAt returns the piece on sq, or PieceNone.
func (b *Board) PieceAt(sq Square) Piece { return b.pos.PieceAt(sq) }

// NextPlayer returns the side to move.
func (b *Board) NextPlayer() Color { return b.pos.NextPlayer() }

// ZobristKey returns the board's current zobrist hash.
func (b *Board) ZobristKey() uint64 { return b.zobrist }

// Ply returns the number of half-moves made since this Board was created
// from a Position (0 at the root of a search or a freshly loaded FEN).
func (b *Board) Ply() int { return b.ply }

// CheckingSquare returns SqFlag if the side to move is not in check,
// SqDoubleCheck if in check from two pieces at once, or the single
// checking square otherwise.
func (b *Board) CheckingSquare() Square { return b.checkingSq }

// InCheck reports whether the side to move is in check.
func (b *Board) InCheck() bool { return b.checkingSq != SqFlag }

// KingSquare returns the square of c's king.
func (b *Board) KingSquare(c Color) Square {
	list := b.pieceSquares[MakePiece(c, King)]
	if assert.DEBUG {
		assert.Assert(len(list) == 1, "expected exactly one king for color %d, got %d", c, len(list))
	}
	return list[0]
}

// PieceList returns the (shared, read-only-by-convention) slice of
// squares occupied by p. Callers must not retain or mutate it across a
// MakeMove/UnmakeMove call.
func (b *Board) PieceList(p Piece) []Square { return b.pieceSquares[p] }

// addPiece places piece on sq: updates the board array, the piece list,
// the reverse index and the zobrist key.
func (b *Board) addPiece(sq Square, piece Piece) {
	b.pos.SetSquare(sq, piece)
	b.listIndex[sq] = len(b.pieceSquares[piece])
	b.pieceSquares[piece] = append(b.pieceSquares[piece], sq)
	b.zobrist ^= tables.ZobristSquare[tables.ZobristPieceIndex(piece)][sq]
}

// removePiece takes whatever piece stands on sq off the board using the
// classic swap-remove: move the list's last entry into the removed
// piece's slot so removal never has to shift the rest of the list.
func (b *Board) removePiece(sq Square) Piece {
	piece := b.pos.PieceAt(sq)
	list := b.pieceSquares[piece]
	idx := b.listIndex[sq]
	last := len(list) - 1
	movedSq := list[last]
	list[idx] = movedSq
	b.listIndex[movedSq] = idx
	b.listIndex[sq] = 0
	b.pieceSquares[piece] = list[:last]
	b.pos.SetSquare(sq, PieceNone)
	b.zobrist ^= tables.ZobristSquare[tables.ZobristPieceIndex(piece)][sq]
	return piece
}

// movePiece relocates the piece on from to to (to must be empty).
func (b *Board) movePiece(from, to Square) {
	piece := b.removePiece(from)
	b.addPiece(to, piece)
}

// MakeMove applies m to the board, pushing an undoInfo record so
// UnmakeMove can reverse it exactly.
func (b *Board) MakeMove(m Move) {
	u := undoInfo{
		move:          m,
		captured:      PieceNone,
		capturedSq:    SqNone,
		castling:      b.pos.Castling(),
		epSquare:      b.pos.EpSquare(),
		halfMoveClock: b.pos.HalfMoveClock(),
		zobrist:       b.zobrist,
		checkingSq:    b.checkingSq,
	}

	us := b.pos.NextPlayer()
	them := us.Flip()

	b.zobrist ^= epZobrist(b.pos.EpSquare())
	b.zobrist ^= tables.ZobristCastling[b.pos.Castling()]

	if m.IsCastling() {
		cc := variant.Castling[m.CastlingColor()]
		if m.CastlingKingside() {
			b.movePiece(cc.Start.King, cc.EndOO.King)
			b.movePiece(cc.Start.RookOO, cc.EndOO.Rook)
		} else {
			b.movePiece(cc.Start.King, cc.EndOOO.King)
			b.movePiece(cc.Start.RookOOO, cc.EndOOO.Rook)
		}
		newCastling := b.pos.Castling()
		if m.CastlingColor() == White {
			newCastling.Remove(CastlingWhite)
		} else {
			newCastling.Remove(CastlingBlack)
		}
		b.pos.SetCastling(newCastling)
		b.pos.SetEpSquare(SqNone)
		b.pos.SetHalfMoveClock(b.pos.HalfMoveClock() + 1)
	} else {
		from, to := m.From(), m.To()
		moving := b.pos.PieceAt(from)

		capturedSq := to
		isEp := moving.TypeOf() == Pawn && to == u.epSquare && b.pos.PieceAt(to) == PieceNone && from.FileOf() != to.FileOf()
		if isEp {
			capturedSq = SquareOf(to.FileOf(), from.RankOf())
		}

		if captured := b.pos.PieceAt(capturedSq); captured != PieceNone || isEp {
			u.captured = b.removePiece(capturedSq)
			u.capturedSq = capturedSq
		}

		b.movePiece(from, to)

		if m.PromotionType() != PtNone {
			b.removePiece(to)
			b.addPiece(to, MakePiece(us, m.PromotionType()))
		}

		if moving.TypeOf() == Pawn || u.captured != PieceNone {
			b.pos.SetHalfMoveClock(0)
		} else {
			b.pos.SetHalfMoveClock(b.pos.HalfMoveClock() + 1)
		}

		newCastling := b.pos.Castling()
		newCastling = stripCastlingRights(newCastling, from)
		newCastling = stripCastlingRights(newCastling, to)
		b.pos.SetCastling(newCastling)

		b.pos.SetEpSquare(SqNone)
		if moving.TypeOf() == Pawn {
			if (us == White && from.RankOf() == Rank2 && to.RankOf() == Rank4) ||
				(us == Black && from.RankOf() == Rank7 && to.RankOf() == Rank5) {
				b.pos.SetEpSquare(SquareOf(from.FileOf(), (from.RankOf()+to.RankOf())/2))
			}
		}
	}

	if us == Black {
		b.pos.SetFullMoveNumber(b.pos.FullMoveNumber() + 1)
	}
	b.pos.SetNextPlayer(them)

	b.zobrist ^= epZobrist(b.pos.EpSquare())
	b.zobrist ^= tables.ZobristCastling[b.pos.Castling()]
	b.zobrist ^= tables.ZobristColor

	b.recomputeCheckingSquare()
	b.ply++
	b.pushRepetition()
	b.undo = append(b.undo, u)

	if assert.DEBUG {
		b.checkInvariants(m)
	}
}

// UnmakeMove reverses the most recent MakeMove call.
func (b *Board) UnmakeMove() {
	if assert.DEBUG {
		assert.Assert(len(b.undo) > 0, "UnmakeMove called with empty undo stack")
	}
	b.popRepetition()
	b.ply--

	last := len(b.undo) - 1
	u := b.undo[last]
	b.undo = b.undo[:last]

	them := b.pos.NextPlayer()
	us := them.Flip()
	m := u.move

	if us == Black {
		b.pos.SetFullMoveNumber(b.pos.FullMoveNumber() - 1)
	}

	if m.IsCastling() {
		cc := variant.Castling[m.CastlingColor()]
		if m.CastlingKingside() {
			b.movePiece(cc.EndOO.King, cc.Start.King)
			b.movePiece(cc.EndOO.Rook, cc.Start.RookOO)
		} else {
			b.movePiece(cc.EndOOO.King, cc.Start.King)
			b.movePiece(cc.EndOOO.Rook, cc.Start.RookOOO)
		}
	} else {
		from, to := m.From(), m.To()
		if m.PromotionType() != PtNone {
			b.removePiece(to)
			b.addPiece(to, MakePiece(us, Pawn))
		}
		b.movePiece(to, from)
		if u.captured != PieceNone {
			b.addPiece(u.capturedSq, u.captured)
		}
	}

	b.pos.SetNextPlayer(us)
	b.pos.SetCastling(u.castling)
	b.pos.SetEpSquare(u.epSquare)
	b.pos.SetHalfMoveClock(u.halfMoveClock)
	b.zobrist = u.zobrist
	b.checkingSq = u.checkingSq

	if assert.DEBUG {
		b.checkInvariants(m)
	}
}

// zobristFromScratch recomputes the zobrist key from pos alone, the same
// way NewFromPosition builds one. Used only to cross-check the
// incrementally maintained key never drifts.
func zobristFromScratch(pos Position) uint64 {
	var z uint64
	for sq := SqA1; sq < SqNone; sq++ {
		piece := pos.PieceAt(sq)
		if piece == PieceNone {
			continue
		}
		z ^= tables.ZobristSquare[tables.ZobristPieceIndex(piece)][sq]
	}
	z ^= tables.ZobristCastling[pos.Castling()]
	z ^= epZobrist(pos.EpSquare())
	if pos.NextPlayer() == Black {
		z ^= tables.ZobristColor
	}
	return z
}

// checkInvariants cross-checks the incrementally maintained zobrist key and
// piece-list reverse index against a from-scratch recomputation, panicking
// with a diagnostic dump on the first mismatch found. move is the move that
// was just made or unmade, reported for diagnosis only.
func (b *Board) checkInvariants(move Move) {
	if want := zobristFromScratch(b.pos); want != b.zobrist {
		panic(fmt.Sprintf("zobrist mismatch after move %s: have %x want %x\nfen: %s", move, b.zobrist, want, b.pos.Fen()))
	}
	for sq := SqA1; sq < SqNone; sq++ {
		piece := b.pos.PieceAt(sq)
		if piece == PieceNone {
			continue
		}
		idx := b.listIndex[sq]
		list := b.pieceSquares[piece]
		if idx < 0 || idx >= len(list) || list[idx] != sq {
			panic(fmt.Sprintf("piece-list reverse index broken after move %s: square %s piece %s listIndex %d\nfen: %s", move, sq, piece, idx, b.pos.Fen()))
		}
	}
}

func stripCastlingRights(cr CastlingRights, sq Square) CastlingRights {
	switch sq {
	case SqE1:
		cr.Remove(CastlingWhite)
	case SqA1:
		cr.Remove(CastlingWhiteOOO)
	case SqH1:
		cr.Remove(CastlingWhiteOO)
	case SqE8:
		cr.Remove(CastlingBlack)
	case SqA8:
		cr.Remove(CastlingBlackOOO)
	case SqH8:
		cr.Remove(CastlingBlackOO)
	}
	return cr
}

// IsAttacked reports whether sq is attacked by a piece of color by.
func (b *Board) IsAttacked(sq Square, by Color) bool {
	return b.IsAttackedIgnoring(sq, by, SqNone)
}

// IsAttackedIgnoring is IsAttacked but treats ignoreSq as empty even if
// occupied; king-move legality needs this to see through the king's own
// current square when testing the square it is about to step to.
func (b *Board) IsAttackedIgnoring(sq Square, by Color, ignoreSq Square) bool {
	for _, from := range tables.PawnCaptures[by.Flip()][sq] {
		if from != ignoreSq && b.pos.PieceAt(from) == MakePiece(by, Pawn) {
			return true
		}
	}
	for _, from := range tables.KnightMoves[sq] {
		if from != ignoreSq && b.pos.PieceAt(from) == MakePiece(by, Knight) {
			return true
		}
	}
	for _, from := range tables.KingMoves[sq] {
		if from != ignoreSq && b.pos.PieceAt(from) == MakePiece(by, King) {
			return true
		}
	}
	for dirIdx := 0; dirIdx < 8; dirIdx++ {
		orthogonal := dirIdx < 4
		for _, cur := range tables.Ray[sq][dirIdx] {
			if cur == ignoreSq {
				continue
			}
			piece := b.pos.PieceAt(cur)
			if piece == PieceNone {
				continue
			}
			if piece.ColorOf() == by {
				pt := piece.TypeOf()
				if pt == Queen || (orthogonal && pt == Rook) || (!orthogonal && pt == Bishop) {
					return true
				}
			}
			break
		}
	}
	return false
}

// recomputeCheckingSquare scans for attackers of the side-to-move's king
// and sets checkingSq to SqFlag, SqDoubleCheck or the single checker.
func (b *Board) recomputeCheckingSquare() {
	us := b.pos.NextPlayer()
	them := us.Flip()
	kingSq := b.KingSquare(us)

	var checkers []Square
	for _, from := range tables.PawnCaptures[them.Flip()][kingSq] {
		if b.pos.PieceAt(from) == MakePiece(them, Pawn) {
			checkers = append(checkers, from)
		}
	}
	for _, from := range tables.KnightMoves[kingSq] {
		if b.pos.PieceAt(from) == MakePiece(them, Knight) {
			checkers = append(checkers, from)
		}
	}
	for dirIdx := 0; dirIdx < 8; dirIdx++ {
		orthogonal := dirIdx < 4
		for _, cur := range tables.Ray[kingSq][dirIdx] {
			piece := b.pos.PieceAt(cur)
			if piece == PieceNone {
				continue
			}
			if piece.ColorOf() == them {
				pt := piece.TypeOf()
				if pt == Queen || (orthogonal && pt == Rook) || (!orthogonal && pt == Bishop) {
					checkers = append(checkers, cur)
				}
			}
			break
		}
	}

	switch len(checkers) {
	case 0:
		b.checkingSq = SqFlag
	case 1:
		b.checkingSq = checkers[0]
	default:
		b.checkingSq = SqDoubleCheck
	}
}

func (b *Board) pushRepetition() {
	bucket := b.zobrist % repetitionRingSize
	b.repetitionRing[bucket] = append(b.repetitionRing[bucket], b.zobrist)
}

func (b *Board) popRepetition() {
	bucket := b.zobrist % repetitionRingSize
	list := b.repetitionRing[bucket]
	b.repetitionRing[bucket] = list[:len(list)-1]
}

// RepetitionCount returns how many times the current zobrist key has
// occurred in the game so far (including the current occurrence).
func (b *Board) RepetitionCount() int {
	bucket := b.zobrist % repetitionRingSize
	count := 0
	for _, key := range b.repetitionRing[bucket] {
		if key == b.zobrist {
			count++
		}
	}
	return count
}

// IsThreefoldRepetition reports whether the current position has occurred
// three or more times.
func (b *Board) IsThreefoldRepetition() bool {
	return b.RepetitionCount() >= 3
}

// IsFiftyMoveRule reports whether fifty full moves (100 plies) have
// passed without a capture or pawn move.
func (b *Board) IsFiftyMoveRule() bool {
	return b.pos.HalfMoveClock() >= 100
}

// HasInsufficientMaterial reports whether neither side has enough force
// left on the board to deliver checkmate (K vs K, K+N vs K, K+B vs K, and
// K+B vs K+B with same-colored bishops are the only cases recognized).
func (b *Board) HasInsufficientMaterial() bool {
	var minorCount [ColorLength]int
	var bishopSq [ColorLength]Square
	for sq := SqA1; sq < SqNone; sq++ {
		piece := b.pos.PieceAt(sq)
		if piece == PieceNone {
			continue
		}
		switch piece.TypeOf() {
		case King:
			continue
		case Knight:
			minorCount[piece.ColorOf()]++
		case Bishop:
			minorCount[piece.ColorOf()]++
			bishopSq[piece.ColorOf()] = sq
		default:
			return false
		}
		if minorCount[piece.ColorOf()] > 1 {
			return false
		}
	}
	if minorCount[White] == 0 && minorCount[Black] == 0 {
		return true
	}
	if minorCount[White]+minorCount[Black] == 1 {
		return true
	}
	if minorCount[White] == 1 && minorCount[Black] == 1 {
		wp := b.pos.PieceAt(bishopSq[White])
		bp := b.pos.PieceAt(bishopSq[Black])
		if wp.TypeOf() == Bishop && bp.TypeOf() == Bishop {
			return squareColor(bishopSq[White]) == squareColor(bishopSq[Black])
		}
	}
	return false
}

func squareColor(sq Square) int {
	return (int(sq.FileOf()) + int(sq.RankOf())) & 1
}

// IsDraw reports whether the game is drawn by the fifty-move rule,
// threefold repetition, or insufficient material.
func (b *Board) IsDraw() bool {
	return b.IsFiftyMoveRule() || b.IsThreefoldRepetition() || b.HasInsufficientMaterial()
}

// Clone returns a deep copy of the board, independent of the original for
// every subsequent MakeMove/UnmakeMove. Search workers each search their
// own clone of the root board so no two goroutines ever share mutable
// board state.
func (b *Board) Clone() *Board {
	c := &Board{
		pos:        b.pos,
		zobrist:    b.zobrist,
		checkingSq: b.checkingSq,
		listIndex:  b.listIndex,
		ply:        b.ply,
	}
	for p := range b.pieceSquares {
		if len(b.pieceSquares[p]) == 0 {
			continue
		}
		c.pieceSquares[p] = append([]Square(nil), b.pieceSquares[p]...)
	}
	for i := range b.repetitionRing {
		if len(b.repetitionRing[i]) == 0 {
			continue
		}
		c.repetitionRing[i] = append([]uint64(nil), b.repetitionRing[i]...)
	}
	c.undo = append([]undoInfo(nil), b.undo...)
	return c
}

// String renders the board for debug output.
func (b *Board) String() string {
	return fmt.Sprintf("%s\ncheckingSq: %s  zobrist: %x", b.pos.String(), b.checkingSq, b.zobrist)
}
