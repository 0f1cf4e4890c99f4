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

package notation

import (
	"fmt"
	"strings"

	"github.com/arcticchess/arctic/internal/board"
	"github.com/arcticchess/arctic/internal/movegen"
	"github.com/arcticchess/arctic/internal/moveslice"
	. "github.com/arcticchess/arctic/pkg/types"
)

// ToSAN renders m, which must be legal in b, as standard algebraic
// notation including the +/# suffix. The suffix requires knowing whether
// the position after m is check or checkmate, so ToSAN plays m on a clone
// of b rather than touching the caller's board.
func ToSAN(b *board.Board, m Move) string {
	if m == MoveNone {
		return "-"
	}
	from, to := m.From(), m.To()

	if m.IsCastling() {
		san := "O-O"
		if !m.CastlingKingside() {
			san = "O-O-O"
		}
		return san + checkSuffix(b, m)
	}

	piece := b.PieceAt(from)
	pt := piece.TypeOf()
	isCapture := b.PieceAt(to) != PieceNone || isEnPassant(b, m)

	var sb strings.Builder
	if pt != Pawn {
		sb.WriteString(pt.Char())
		sb.WriteString(disambiguation(b, m, pt))
	}
	if isCapture {
		if pt == Pawn {
			sb.WriteString(from.String()[:1])
		}
		sb.WriteByte('x')
	}
	sb.WriteString(to.String())
	if m.PromotionType() != PtNone {
		sb.WriteByte('=')
		sb.WriteString(m.PromotionType().Char())
	}
	sb.WriteString(checkSuffix(b, m))
	return sb.String()
}

// checkSuffix plays m on a clone of b and reports "+" if the side to move
// is left in check, "#" if that side additionally has no legal reply, and
// "" otherwise.
func checkSuffix(b *board.Board, m Move) string {
	clone := b.Clone()
	clone.MakeMove(m)
	if !clone.InCheck() {
		return ""
	}
	if movegen.NewGenerator().GenerateLegalMoves(clone).Len() == 0 {
		return "#"
	}
	return "+"
}

func isEnPassant(b *board.Board, m Move) bool {
	piece := b.PieceAt(m.From())
	return piece.TypeOf() == Pawn && m.From().FileOf() != m.To().FileOf() && b.PieceAt(m.To()) == PieceNone
}

// disambiguation returns the minimal from-square qualifier SAN requires
// when more than one piece of type pt can legally reach m.To(): empty if
// no other piece of the same type can, the origin file if that alone
// disambiguates, the origin rank failing that, and the full origin square
// if neither alone does.
func disambiguation(b *board.Board, m Move, pt PieceType) string {
	from := m.From()
	var sameFile, sameRank, other bool
	legal := movegen.NewGenerator().GenerateLegalMoves(b)
	for i := 0; i < legal.Len(); i++ {
		cand := legal.At(i)
		if cand.To() != m.To() || cand.From() == from || cand.IsCastling() {
			continue
		}
		if b.PieceAt(cand.From()).TypeOf() != pt {
			continue
		}
		other = true
		if cand.From().FileOf() == from.FileOf() {
			sameFile = true
		}
		if cand.From().RankOf() == from.RankOf() {
			sameRank = true
		}
	}
	if !other {
		return ""
	}
	if !sameFile {
		return from.String()[:1]
	}
	if !sameRank {
		return from.String()[1:]
	}
	return from.String()
}

// ParseSAN resolves a SAN string against the legal moves of b. It accepts
// both "O-O"/"O-O-O" and the "0-0"/"0-0-0" digit-zero spelling some
// drivers send, and tolerates a trailing "+" or "#" whether or not it
// matches the move's actual check status.
func ParseSAN(b *board.Board, san string) (Move, error) {
	s := strings.TrimSpace(san)
	s = strings.TrimSuffix(s, "#")
	s = strings.TrimSuffix(s, "+")

	legal := movegen.NewGenerator().GenerateLegalMoves(b)

	if s == "O-O" || s == "0-0" {
		return findCastling(legal, true)
	}
	if s == "O-O-O" || s == "0-0-0" {
		return findCastling(legal, false)
	}

	promo := PtNone
	if idx := strings.IndexByte(s, '='); idx >= 0 {
		p, err := parsePromotionChar(s[idx+1])
		if err != nil {
			return MoveNone, err
		}
		promo = p
		s = s[:idx]
	}
	s = strings.ReplaceAll(s, "x", "")

	pt := Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		p, err := parsePieceChar(s[0])
		if err != nil {
			return MoveNone, err
		}
		pt = p
		s = s[1:]
	}

	if len(s) < 2 {
		return MoveNone, fmt.Errorf("notation: %q is not a valid SAN move", san)
	}
	to := MakeSquare(s[len(s)-2:])
	if to == SqNone {
		return MoveNone, fmt.Errorf("notation: %q has no valid destination square", san)
	}
	qualifier := s[:len(s)-2]

	var match Move
	found := 0
	for i := 0; i < legal.Len(); i++ {
		m := legal.At(i)
		if m.IsCastling() || m.To() != to || m.PromotionType() != promo {
			continue
		}
		if b.PieceAt(m.From()).TypeOf() != pt {
			continue
		}
		if !qualifierMatches(m.From(), qualifier) {
			continue
		}
		match = m
		found++
	}
	switch found {
	case 0:
		return MoveNone, fmt.Errorf("notation: %q is not a legal move", san)
	case 1:
		return match.MoveOf(), nil
	default:
		return MoveNone, fmt.Errorf("notation: %q is ambiguous", san)
	}
}

func qualifierMatches(from Square, qualifier string) bool {
	if qualifier == "" {
		return true
	}
	if qualifier == from.String() {
		return true
	}
	if len(qualifier) == 1 {
		c := qualifier[0]
		if c >= 'a' && c <= 'h' {
			return from.String()[0] == c
		}
		if c >= '1' && c <= '8' {
			return from.String()[1] == c
		}
	}
	return false
}

func findCastling(legal moveslice.MoveSlice, kingside bool) (Move, error) {
	for i := 0; i < legal.Len(); i++ {
		m := legal.At(i)
		if m.IsCastling() && m.CastlingKingside() == kingside {
			return m.MoveOf(), nil
		}
	}
	side := "O-O-O"
	if kingside {
		side = "O-O"
	}
	return MoveNone, fmt.Errorf("notation: %s is not legal here", side)
}

func parsePieceChar(c byte) (PieceType, error) {
	switch c {
	case 'N':
		return Knight, nil
	case 'B':
		return Bishop, nil
	case 'R':
		return Rook, nil
	case 'Q':
		return Queen, nil
	case 'K':
		return King, nil
	default:
		return PtNone, fmt.Errorf("notation: %q is not a piece letter", string(c))
	}
}
