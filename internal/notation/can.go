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

// Package notation provides the wire-level move notations a driver needs
// to talk to the engine and a test needs to write a fixture: CAN
// (<from><to>[promo], the move.go UCI-compatible form Move.StringUci
// already prints) and SAN (standard algebraic, with full disambiguation).
// Neither is a general chess text toolkit - there is no PGN, no comment
// or variation parsing, no support for non-standard castling notation
// beyond the two forms the engine itself may see on the wire.
package notation

import (
	"fmt"
	"strings"

	"github.com/arcticchess/arctic/internal/board"
	"github.com/arcticchess/arctic/internal/movegen"
	. "github.com/arcticchess/arctic/pkg/types"
)

// ParseCAN resolves a CAN string against the legal moves of b, returning
// the matching Move. CAN is "<from-file><from-rank><to-file><to-rank>"
// plus an optional one-letter promotion piece, e.g. "e2e4" or "e7e8q".
//
// Castling is accepted in both notations a driver might send: the
// two-squares-apart king move ("e1g1") and the king-captures-its-own-rook
// form ("e1h1") some protocols use to disambiguate Chess960-style
// castling. Both are normalized to the engine's canonical castling Move
// by matching against the generator's legal moves rather than
// constructing the Move by hand, so an input that isn't actually legal
// in b is rejected rather than silently accepted.
func ParseCAN(b *board.Board, can string) (Move, error) {
	can = strings.TrimSpace(can)
	if len(can) < 4 {
		return MoveNone, fmt.Errorf("notation: %q is too short to be a CAN move", can)
	}

	from := MakeSquare(can[0:2])
	to := MakeSquare(can[2:4])
	if from == SqNone || to == SqNone {
		return MoveNone, fmt.Errorf("notation: %q has an invalid square", can)
	}

	var promo PieceType = PtNone
	if len(can) > 4 {
		p, err := parsePromotionChar(can[4])
		if err != nil {
			return MoveNone, err
		}
		promo = p
	}

	us := b.NextPlayer()
	legal := movegen.NewGenerator().GenerateLegalMoves(b)
	for i := 0; i < legal.Len(); i++ {
		m := legal.At(i)
		if m.IsCastling() {
			if matchesCastlingCAN(m, us, from, to) {
				return m.MoveOf(), nil
			}
			continue
		}
		if m.From() == from && m.To() == to && m.PromotionType() == promo {
			return m.MoveOf(), nil
		}
	}
	return MoveNone, fmt.Errorf("notation: %q is not a legal move", can)
}

// matchesCastlingCAN reports whether a castling Move m is the one a CAN
// string (from, to) refers to, accepting both the "king moves two
// squares" form and the "king captures its own rook" form.
func matchesCastlingCAN(m Move, us Color, from, to Square) bool {
	kingSq := startKingSquare(us)
	if from != kingSq {
		return false
	}
	kingside := m.CastlingKingside()
	rookSq := startRookSquare(us, kingside)
	twoSquareTo := twoSquareCastleTarget(us, kingside)
	return to == twoSquareTo || to == rookSq
}

func startKingSquare(c Color) Square {
	if c == White {
		return SqE1
	}
	return SqE8
}

func startRookSquare(c Color, kingside bool) Square {
	switch {
	case c == White && kingside:
		return SqH1
	case c == White && !kingside:
		return SqA1
	case c == Black && kingside:
		return SqH8
	default:
		return SqA8
	}
}

func twoSquareCastleTarget(c Color, kingside bool) Square {
	switch {
	case c == White && kingside:
		return SqG1
	case c == White && !kingside:
		return SqC1
	case c == Black && kingside:
		return SqG8
	default:
		return SqC8
	}
}

func parsePromotionChar(c byte) (PieceType, error) {
	switch c {
	case 'n', 'N':
		return Knight, nil
	case 'b', 'B':
		return Bishop, nil
	case 'r', 'R':
		return Rook, nil
	case 'q', 'Q':
		return Queen, nil
	default:
		return PtNone, fmt.Errorf("notation: %q is not a valid promotion piece", string(c))
	}
}
