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

package types

import (
	"fmt"
	"strings"
)

// Move is a 32-bit unsigned int encoding a chess move as a primitive data
// type - the low 22 bits for the move itself, plus a 10-bit sort value in
// the high bits for move ordering inside a MoveList.
//
// Unlike a tagged-union encoding, Move carries no explicit move-type field.
// A castling move is recognized structurally: From() == To(), which can
// never happen for a normal, capturing, en-passant or promotion move (a
// piece never "moves" to the square it started on). The sentinel value
// itself tells the mover which side castled and whose move it was:
//
//	From == To == turn                   -> king-side castle (O-O)
//	From == To == (1<<1)|turn            -> queen-side castle (O-O-O)
//
// turn is 0 for White and 1 for Black, so these sentinels land on A1-D1
// (0-3) - themselves legal square indices - but that is harmless because
// the castling branch never reads From()/To() as board coordinates; it
// looks the real king/rook squares up from the position's castling table.
//
// Promotion is recognized by PromotionType() != PtNone. En passant is not
// separately tagged at all: it is discovered at make-time as a pawn move
// to an empty square one file away from its start, which can only be an
// en-passant capture.
//
// Chk carries the checking square raised by this move once played, using
// the same FLAG/DOUBLE_CHECK sentinels as Board.CheckingSq (see square.go):
// SqFlag when the move delivers no check, SqDoubleCheck when it checks from
// two pieces at once, otherwise the single square of the checking piece.
//
//	BITMAP 32-bit
//	|-value -------------|-Move ---------------------------------------|
//	3 3 2 2 2 2 2 2 2 2 | 2 2 1 1 1 1 1 1 1 1 1 1 0 0 0 0 0 0 0 0 0 0
//	1 0 9 8 7 6 5 4 3 2 | 1 0 9 8 7 6 5 4 3 2 1 0 9 8 7 6 5 4 3 2 1 0
//	--------------------|----------------------------------------------
//	                    |                                 1 1 1 1 1 1  to
//	                    |                     1 1 1 1 1 1              from
//	                    |               1 1 1                          promotion piece type
//	                    | 1 1 1 1 1 1 1                                checking square (chk)
//	1 1 1 1 1 1 1 1 1 1 |                                              move sort value
type Move uint32

// MoveNone is the empty, non valid move. It is all-zero, which can never be
// produced by CreateMove (From==To==To==SqA1 with PtNone promotion and
// Chk==SqFlag would collide, which is exactly why callers must use MoveNone
// instead of constructing it by hand).
const MoveNone Move = 0

const (
	fromShift  uint = 6
	promShift  uint = 12
	chkShift   uint = 15
	valueShift uint = 22

	squareMask Move = 0x3F
	toMask          = squareMask
	fromMask        = squareMask << fromShift
	promMask   Move = 0x7 << promShift
	chkMask    Move = 0x7F << chkShift
	moveMask   Move = (1 << valueShift) - 1
	valueMask  Move = 0x3FF << valueShift
)

// CreateMove returns an encoded Move for a normal, capturing or promoting
// move. promType is PtNone for a non-promoting move.
func CreateMove(from, to Square, promType PieceType) Move {
	return Move(to) |
		Move(from)<<fromShift |
		Move(promType)<<promShift |
		Move(SqFlag)<<chkShift
}

// CreateCheckingMove is CreateMove plus the checking square the move
// delivers once played (SqFlag if none, SqDoubleCheck if double check).
func CreateCheckingMove(from, to Square, promType PieceType, chk Square) Move {
	return Move(to) |
		Move(from)<<fromShift |
		Move(promType)<<promShift |
		Move(chk)<<chkShift
}

// CreateCastlingMove returns the encoded castling move for the given
// color. The From/To sentinel is what lets Move.IsCastling work without an
// explicit type tag; the board recovers the real king/rook squares from
// its castling-coordinate table at make time.
func CreateCastlingMove(c Color, kingside bool) Move {
	var sentinel Square
	if kingside {
		sentinel = Square(c)
	} else {
		sentinel = Square(2 | int(c))
	}
	return Move(sentinel) |
		Move(sentinel)<<fromShift |
		Move(SqFlag)<<chkShift
}

// To returns the to-Square of the move.
func (m Move) To() Square {
	return Square(m & toMask)
}

// From returns the from-Square of the move.
func (m Move) From() Square {
	return Square((m & fromMask) >> fromShift)
}

// PromotionType returns the PieceType the moving pawn promotes to, or
// PtNone if this move is not a promotion.
func (m Move) PromotionType() PieceType {
	return PieceType((m & promMask) >> promShift)
}

// Chk returns the checking-square sentinel this move carries: SqFlag if
// the move gives no check, SqDoubleCheck if it checks from two pieces,
// otherwise the single checking square.
func (m Move) Chk() Square {
	return Square((m & chkMask) >> chkShift)
}

// IsCheck reports whether this move delivers check at all.
func (m Move) IsCheck() bool {
	return m.Chk() != SqFlag
}

// IsCastling reports whether this move is a castling move: the defining
// structural property is From() == To(), which is otherwise impossible.
func (m Move) IsCastling() bool {
	return m != MoveNone && m.From() == m.To()
}

// CastlingKingside reports which side a castling move castles to. The
// result is meaningless if !m.IsCastling().
func (m Move) CastlingKingside() bool {
	return int(m.From())&2 == 0
}

// CastlingColor recovers whose castling move this is. The result is
// meaningless if !m.IsCastling().
func (m Move) CastlingColor() Color {
	return Color(int(m.From()) & 1)
}

// MoveOf returns the move without any sort value (low 22 bits).
func (m Move) MoveOf() Move {
	return m & moveMask
}

// ValueOf returns the sort value for the move used by the move generator.
func (m Move) ValueOf() Value {
	return Value((m&valueMask)>>valueShift) + ValueNA
}

// SetValue encodes the given value into the high bits of the move and
// returns the new, combined move. MoveNone cannot carry a value.
func (m *Move) SetValue(v Value) Move {
	if *m == MoveNone {
		return *m
	}
	*m = *m&moveMask | Move(v-ValueNA)<<valueShift
	return *m
}

// IsValid checks if the move has valid squares and promotion type.
// MoveNone is not a valid move in this sense.
func (m Move) IsValid() bool {
	if m == MoveNone {
		return false
	}
	if m.IsCastling() {
		return true
	}
	return m.From().IsValid() && m.To().IsValid() && m.PromotionType() < PtLength
}

// String returns a human readable representation of a move.
func (m Move) String() string {
	if m == MoveNone {
		return "Move: { MoveNone }"
	}
	return fmt.Sprintf("Move: { %-5s value:%-6d (%d) }", m.StringUci(), m.ValueOf(), m)
}

// StringUci returns a UCI/CAN compatible string representation of the move
// (e.g. "e2e4", "e7e8q", "e1g1" for white king-side castling).
func (m Move) StringUci() string {
	if m == MoveNone {
		return "0000"
	}
	if m.IsCastling() {
		if m.CastlingColor() == White {
			if m.CastlingKingside() {
				return "e1g1"
			}
			return "e1c1"
		}
		if m.CastlingKingside() {
			return "e8g8"
		}
		return "e8c8"
	}
	var os strings.Builder
	os.WriteString(m.From().String())
	os.WriteString(m.To().String())
	if m.PromotionType() != PtNone {
		os.WriteString(m.PromotionType().Char())
	}
	return os.String()
}
