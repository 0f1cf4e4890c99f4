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

// Package position holds Position, the pure value-type snapshot of a chess
// position: 64 squares plus the handful of extra bits of state (castling
// rights, en-passant target, side to move, ply counters) a FEN string
// carries. Position never tracks piece lists, check state, or a zobrist
// key incrementally - that is package board's job. Position is what you
// compare for equality, hash once, or hand to a caller who should not be
// able to mutate an engine's live search state by holding a reference.
package position

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arcticchess/arctic/internal/tables"
	"github.com/arcticchess/arctic/internal/variant"
	. "github.com/arcticchess/arctic/pkg/types"
)

// Position is an immutable-by-convention snapshot of one position. Callers
// get a Position by value or via Clone; nothing in this package hands out
// a pointer into another Position's backing array.
type Position struct {
	squares        [SqLength]Piece
	nextPlayer     Color
	castling       CastlingRights
	epSquare       Square // SqNone if no ep target
	halfMoveClock  int    // ncpPlies: plies since last capture or pawn move
	fullMoveNumber int
}

// New returns the standard chess starting position.
func New() Position {
	p, err := FromFen("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if err != nil {
		panic("startpos FEN must always parse: " + err.Error())
	}
	return p
}

// FromFen parses a Forsyth-Edwards Notation string into a Position.
// Returns InvalidPositionError if the string is malformed. Structural
// legality (exactly one king per side, no pawns on back ranks, ...) is
// checked separately by IsLegal.
func FromFen(fen string) (Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return Position{}, &InvalidPositionError{Reason: fmt.Sprintf("fen %q: need at least 4 fields", fen)}
	}

	var p Position
	for i := range p.squares {
		p.squares[i] = PieceNone
	}

	rank := Rank8
	file := FileA
	for _, c := range fields[0] {
		switch {
		case c == '/':
			if rank == Rank1 {
				return Position{}, &InvalidPositionError{Reason: fmt.Sprintf("fen %q: too many ranks", fen)}
			}
			rank--
			file = FileA
		case c >= '1' && c <= '8':
			file += File(c - '0')
		default:
			piece := PieceFromChar(string(c))
			if piece == PieceNone || file > FileH {
				return Position{}, &InvalidPositionError{Reason: fmt.Sprintf("fen %q: bad piece placement field", fen)}
			}
			p.squares[SquareOf(file, rank)] = piece
			file++
		}
	}

	switch fields[1] {
	case "w":
		p.nextPlayer = White
	case "b":
		p.nextPlayer = Black
	default:
		return Position{}, &InvalidPositionError{Reason: fmt.Sprintf("fen %q: bad side to move %q", fen, fields[1])}
	}

	p.castling = CastlingNone
	if fields[2] != "-" {
		for _, c := range fields[2] {
			switch c {
			case 'K':
				p.castling.Add(CastlingWhiteOO)
			case 'Q':
				p.castling.Add(CastlingWhiteOOO)
			case 'k':
				p.castling.Add(CastlingBlackOO)
			case 'q':
				p.castling.Add(CastlingBlackOOO)
			default:
				return Position{}, &InvalidPositionError{Reason: fmt.Sprintf("fen %q: bad castling field", fen)}
			}
		}
	}

	if fields[3] == "-" {
		p.epSquare = SqNone
	} else {
		sq := MakeSquare(fields[3])
		if sq == SqNone {
			return Position{}, &InvalidPositionError{Reason: fmt.Sprintf("fen %q: bad en-passant field %q", fen, fields[3])}
		}
		p.epSquare = sq
	}

	p.halfMoveClock = 0
	if len(fields) > 4 {
		if n, err := strconv.Atoi(fields[4]); err == nil && n >= 0 {
			p.halfMoveClock = n
		}
	}
	p.fullMoveNumber = 1
	if len(fields) > 5 {
		if n, err := strconv.Atoi(fields[5]); err == nil && n >= 1 {
			p.fullMoveNumber = n
		}
	}

	return p, nil
}

// PieceAt returns the piece on sq, or PieceNone if sq is empty.
func (p Position) PieceAt(sq Square) Piece { return p.squares[sq] }

// NextPlayer returns the side to move.
func (p Position) NextPlayer() Color { return p.nextPlayer }

// Castling returns the castling rights still available in this position.
func (p Position) Castling() CastlingRights { return p.castling }

// EpSquare returns the en-passant target square, or SqNone if none.
func (p Position) EpSquare() Square { return p.epSquare }

// HalfMoveClock returns the number of plies since the last capture or pawn
// move (the 50-move-rule counter).
func (p Position) HalfMoveClock() int { return p.halfMoveClock }

// FullMoveNumber returns the FEN full-move counter.
func (p Position) FullMoveNumber() int { return p.fullMoveNumber }

// IsLegal runs every structural check decidable from the snapshot alone:
// exactly one king per side, no pawns on the back ranks, the side not to
// move is not left in check, castling rights agree with where the kings
// and rooks actually are, and an en-passant target (if any) is empty and
// has the double-pushed pawn it claims sitting behind it.
func (p Position) IsLegal() error {
	var whiteKings, blackKings int
	var kingSquare [ColorLength]Square
	kingSquare[White], kingSquare[Black] = SqNone, SqNone
	for sq := SqA1; sq < SqNone; sq++ {
		piece := p.squares[sq]
		if piece == PieceNone {
			continue
		}
		if piece.TypeOf() == King {
			kingSquare[piece.ColorOf()] = sq
			if piece.ColorOf() == White {
				whiteKings++
			} else {
				blackKings++
			}
		}
		if piece.TypeOf() == Pawn && (sq.RankOf() == Rank1 || sq.RankOf() == Rank8) {
			return &InvalidPositionError{Reason: fmt.Sprintf("pawn on back rank at %s", sq)}
		}
	}
	if whiteKings != 1 || blackKings != 1 {
		return &InvalidPositionError{Reason: fmt.Sprintf("need exactly one king per side, got white=%d black=%d", whiteKings, blackKings)}
	}

	notToMove := p.nextPlayer.Flip()
	if isAttacked(p, kingSquare[notToMove], p.nextPlayer) {
		return &InvalidPositionError{Reason: fmt.Sprintf("%s is not to move but is in check", notToMove)}
	}

	if err := p.checkCastlingConsistency(kingSquare); err != nil {
		return err
	}

	return p.checkEnPassantConsistency()
}

// checkCastlingConsistency rejects a castling-right bit whose king or rook
// is not actually sitting on its home square - a right a FEN can claim
// independently of the piece placement field, but which no legal game
// could have reached.
func (p Position) checkCastlingConsistency(kingSquare [ColorLength]Square) error {
	check := func(has bool, color Color, rookSq Square, rightName string) error {
		if !has {
			return nil
		}
		coords := variant.Castling[color]
		if kingSquare[color] != coords.Start.King {
			return &InvalidPositionError{Reason: fmt.Sprintf("castling right %s claimed but king is not on %s", rightName, coords.Start.King)}
		}
		if p.squares[rookSq] != MakePiece(color, Rook) {
			return &InvalidPositionError{Reason: fmt.Sprintf("castling right %s claimed but no rook on %s", rightName, rookSq)}
		}
		return nil
	}
	if err := check(p.castling.Has(CastlingWhiteOO), White, variant.Castling[White].Start.RookOO, "K"); err != nil {
		return err
	}
	if err := check(p.castling.Has(CastlingWhiteOOO), White, variant.Castling[White].Start.RookOOO, "Q"); err != nil {
		return err
	}
	if err := check(p.castling.Has(CastlingBlackOO), Black, variant.Castling[Black].Start.RookOO, "k"); err != nil {
		return err
	}
	return check(p.castling.Has(CastlingBlackOOO), Black, variant.Castling[Black].Start.RookOOO, "q")
}

// checkEnPassantConsistency rejects an en-passant target that isn't empty,
// isn't on the rank a double push can actually land behind, or whose
// double-pushed pawn isn't where it must be.
func (p Position) checkEnPassantConsistency() error {
	if p.epSquare == SqNone {
		return nil
	}
	if p.squares[p.epSquare] != PieceNone {
		return &InvalidPositionError{Reason: fmt.Sprintf("en-passant square %s is not empty", p.epSquare)}
	}
	// nextPlayer is the side to move now, so the double push that set this
	// target was played by the other side.
	var pawnSq Square
	var mover Color
	switch p.nextPlayer {
	case Black:
		if p.epSquare.RankOf() != Rank3 {
			return &InvalidPositionError{Reason: fmt.Sprintf("en-passant square %s is not on rank 3 for a white double push", p.epSquare)}
		}
		mover = White
		pawnSq = p.epSquare.To(North)
	case White:
		if p.epSquare.RankOf() != Rank6 {
			return &InvalidPositionError{Reason: fmt.Sprintf("en-passant square %s is not on rank 6 for a black double push", p.epSquare)}
		}
		mover = Black
		pawnSq = p.epSquare.To(South)
	}
	if p.squares[pawnSq] != MakePiece(mover, Pawn) {
		return &InvalidPositionError{Reason: fmt.Sprintf("en-passant square %s has no %s pawn on %s", p.epSquare, mover, pawnSq)}
	}
	return nil
}

// isAttacked reports whether sq is attacked by a piece of color by. It is
// a read-only, snapshot-only twin of board.Board.IsAttacked: IsLegal runs
// before a Board even exists, so it cannot depend on package board without
// creating an import cycle, and instead walks p.squares directly with the
// same lookup tables board.Board uses.
func isAttacked(p Position, sq Square, by Color) bool {
	if sq == SqNone {
		return false
	}
	for _, from := range tables.PawnCaptures[by.Flip()][sq] {
		if p.squares[from] == MakePiece(by, Pawn) {
			return true
		}
	}
	for _, from := range tables.KnightMoves[sq] {
		if p.squares[from] == MakePiece(by, Knight) {
			return true
		}
	}
	for _, from := range tables.KingMoves[sq] {
		if p.squares[from] == MakePiece(by, King) {
			return true
		}
	}
	for dirIdx := 0; dirIdx < 8; dirIdx++ {
		orthogonal := dirIdx < 4
		for _, cur := range tables.Ray[sq][dirIdx] {
			piece := p.squares[cur]
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

// Fen renders the position back to Forsyth-Edwards Notation.
func (p Position) Fen() string {
	var os strings.Builder
	for rank := Rank8; ; rank-- {
		empty := 0
		for file := FileA; file <= FileH; file++ {
			piece := p.squares[SquareOf(file, rank)]
			if piece == PieceNone {
				empty++
				continue
			}
			if empty > 0 {
				os.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			os.WriteString(piece.String())
		}
		if empty > 0 {
			os.WriteString(strconv.Itoa(empty))
		}
		if rank == Rank1 {
			break
		}
		os.WriteString("/")
	}
	os.WriteString(" ")
	os.WriteString(p.nextPlayer.String())
	os.WriteString(" ")
	os.WriteString(p.castling.String())
	os.WriteString(" ")
	if p.epSquare == SqNone {
		os.WriteString("-")
	} else {
		os.WriteString(p.epSquare.String())
	}
	os.WriteString(" ")
	os.WriteString(strconv.Itoa(p.halfMoveClock))
	os.WriteString(" ")
	os.WriteString(strconv.Itoa(p.fullMoveNumber))
	return os.String()
}

// String renders an 8x8 ASCII board for debug/test failure output.
func (p Position) String() string {
	var os strings.Builder
	for rank := Rank8; ; rank-- {
		os.WriteString(rank.String())
		os.WriteString(" ")
		for file := FileA; file <= FileH; file++ {
			os.WriteString(p.squares[SquareOf(file, rank)].Char())
			os.WriteString(" ")
		}
		os.WriteString("\n")
		if rank == Rank1 {
			break
		}
	}
	os.WriteString("  a b c d e f g h\n")
	os.WriteString(p.Fen())
	return os.String()
}

// Mutate returns a copy of p with fn applied to it. It is how package board
// derives a new Position from an old one plus field changes: the Set*
// methods below act on a *Position, so fn changes the copy and p itself is
// left as it was.
func Mutate(p Position, fn func(*Position)) Position {
	fn(&p)
	return p
}

func (p *Position) SetSquare(sq Square, piece Piece) { p.squares[sq] = piece }
func (p *Position) SetNextPlayer(c Color)            { p.nextPlayer = c }
func (p *Position) SetCastling(cr CastlingRights)    { p.castling = cr }
func (p *Position) SetEpSquare(sq Square)            { p.epSquare = sq }
func (p *Position) SetHalfMoveClock(n int)           { p.halfMoveClock = n }
func (p *Position) SetFullMoveNumber(n int)          { p.fullMoveNumber = n }

// InvalidPositionError is returned when a FEN string or a sequence of
// board mutations produces a position that cannot represent a legal game
// state (malformed FEN, wrong king count, pawns on back rank, ...).
type InvalidPositionError struct {
	Reason string
}

func (e *InvalidPositionError) Error() string {
	return "invalid position: " + e.Reason
}
