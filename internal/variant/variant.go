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

// Package variant supplies the one piece of board geometry that is not
// fixed by the rules of chess itself: where the king and rooks start, and
// where they end up after O-O / O-O-O. Everything else (move generation,
// check detection, evaluation) is variant-agnostic and lives elsewhere.
//
// Only standard chess is wired up. The types are shaped so that a second
// table (e.g. for Chess960) could be added later, but none is: fixing
// castling geometry to one well-known layout is what keeps the castling
// sentinel trick in pkg/types.Move unambiguous.
package variant

import (
	. "github.com/arcticchess/arctic/pkg/types"
)

// CastleStartCoords names the three squares that matter before a castle:
// the king's home square and both rooks' home squares.
type CastleStartCoords struct {
	King, RookOO, RookOOO Square
}

// CastleEndCoords names where the king and rook land after a castle.
type CastleEndCoords struct {
	King, Rook Square
}

// CastleCoords bundles the start and both possible end configurations for
// one color.
type CastleCoords struct {
	Start        CastleStartCoords
	EndOO, EndOOO CastleEndCoords
}

// Castling holds the castling geometry for both colors in standard chess.
var Castling = [ColorLength]CastleCoords{
	White: {
		Start: CastleStartCoords{King: SqE1, RookOO: SqH1, RookOOO: SqA1},
		EndOO: CastleEndCoords{King: SqG1, Rook: SqF1},
		EndOOO: CastleEndCoords{King: SqC1, Rook: SqD1},
	},
	Black: {
		Start: CastleStartCoords{King: SqE8, RookOO: SqH8, RookOOO: SqA8},
		EndOO: CastleEndCoords{King: SqG8, Rook: SqF8},
		EndOOO: CastleEndCoords{King: SqC8, Rook: SqD8},
	},
}

// StartingPieces is the piece on each of the 64 squares in the normal
// chess starting position, in square-index order (A1, B1, ... H8).
var StartingPieces = [SqLength]Piece{
	MakePiece(White, Rook), MakePiece(White, Knight), MakePiece(White, Bishop), MakePiece(White, Queen),
	MakePiece(White, King), MakePiece(White, Bishop), MakePiece(White, Knight), MakePiece(White, Rook),
	MakePiece(White, Pawn), MakePiece(White, Pawn), MakePiece(White, Pawn), MakePiece(White, Pawn),
	MakePiece(White, Pawn), MakePiece(White, Pawn), MakePiece(White, Pawn), MakePiece(White, Pawn),
	PieceNone, PieceNone, PieceNone, PieceNone, PieceNone, PieceNone, PieceNone, PieceNone,
	PieceNone, PieceNone, PieceNone, PieceNone, PieceNone, PieceNone, PieceNone, PieceNone,
	PieceNone, PieceNone, PieceNone, PieceNone, PieceNone, PieceNone, PieceNone, PieceNone,
	PieceNone, PieceNone, PieceNone, PieceNone, PieceNone, PieceNone, PieceNone, PieceNone,
	MakePiece(Black, Pawn), MakePiece(Black, Pawn), MakePiece(Black, Pawn), MakePiece(Black, Pawn),
	MakePiece(Black, Pawn), MakePiece(Black, Pawn), MakePiece(Black, Pawn), MakePiece(Black, Pawn),
	MakePiece(Black, Rook), MakePiece(Black, Knight), MakePiece(Black, Bishop), MakePiece(Black, Queen),
	MakePiece(Black, King), MakePiece(Black, Bishop), MakePiece(Black, Knight), MakePiece(Black, Rook),
}

// StartFen is the standard chess starting position in Forsyth-Edwards
// Notation.
const StartFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// IsLegalPiece reports whether p is a piece this variant's board may
// contain. Standard chess allows every non-empty Piece value.
func IsLegalPiece(p Piece) bool {
	return p != PieceNone && p.TypeOf() != PtNone && p.TypeOf() < PtLength
}
