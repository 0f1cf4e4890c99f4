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

package board

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arcticchess/arctic/internal/position"
	. "github.com/arcticchess/arctic/pkg/types"
)

func mustPosition(t *testing.T, fen string) Position {
	t.Helper()
	pos, err := position.FromFen(fen)
	require.NoError(t, err)
	return pos
}

func TestCastlingRightsClearOnKingMove(t *testing.T) {
	b := NewFromPosition(mustPosition(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"))
	b.MakeMove(CreateMove(SqE1, SqE2, PtNone))
	require.False(t, b.Position().Castling().Has(CastlingWhiteOO))
	require.False(t, b.Position().Castling().Has(CastlingWhiteOOO))
	require.True(t, b.Position().Castling().Has(CastlingBlackOO))
	require.True(t, b.Position().Castling().Has(CastlingBlackOOO))
}

func TestCastlingRightsClearOnRookMove(t *testing.T) {
	b := NewFromPosition(mustPosition(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"))
	b.MakeMove(CreateMove(SqH1, SqG1, PtNone))
	require.False(t, b.Position().Castling().Has(CastlingWhiteOO))
	require.True(t, b.Position().Castling().Has(CastlingWhiteOOO))
}

func TestCastlingRightsClearOnRookCapture(t *testing.T) {
	// A rook captured on its home square loses that side's castling right
	// even though the piece that moved there was never the king or rook.
	b := NewFromPosition(mustPosition(t, "4k3/8/8/8/8/8/6b1/4K2R b K - 0 1"))
	b.MakeMove(CreateMove(SqG2, SqH1, PtNone))
	require.False(t, b.Position().Castling().Has(CastlingWhiteOO))
}

func TestCastlingMoveClearsBothRights(t *testing.T) {
	b := NewFromPosition(mustPosition(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"))
	b.MakeMove(CreateCastlingMove(White, true))
	require.False(t, b.Position().Castling().Has(CastlingWhite))
	require.True(t, b.Position().Castling().Has(CastlingBlack))
	require.Equal(t, SqG1, b.KingSquare(White))
	require.Equal(t, PieceNone, b.PieceAt(SqH1))
	require.Equal(t, MakePiece(White, Rook), b.PieceAt(SqF1))
}

func TestThreefoldRepetitionDetected(t *testing.T) {
	b := NewGame()
	for i := 0; i < 3; i++ {
		b.MakeMove(CreateMove(SqG1, SqF3, PtNone))
		b.MakeMove(CreateMove(SqG8, SqF6, PtNone))
		b.MakeMove(CreateMove(SqF3, SqG1, PtNone))
		b.MakeMove(CreateMove(SqF6, SqG8, PtNone))
	}
	require.True(t, b.IsThreefoldRepetition())
}

func TestThreefoldRepetitionNotYetReachedAfterTwoOccurrences(t *testing.T) {
	b := NewGame()
	for i := 0; i < 1; i++ {
		b.MakeMove(CreateMove(SqG1, SqF3, PtNone))
		b.MakeMove(CreateMove(SqG8, SqF6, PtNone))
		b.MakeMove(CreateMove(SqF3, SqG1, PtNone))
		b.MakeMove(CreateMove(SqF6, SqG8, PtNone))
	}
	require.False(t, b.IsThreefoldRepetition())
}

func TestUnmakeMoveRestoresCastlingRights(t *testing.T) {
	b := NewFromPosition(mustPosition(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"))
	before := b.Position().Castling()
	b.MakeMove(CreateMove(SqH1, SqG1, PtNone))
	b.UnmakeMove()
	require.Equal(t, before, b.Position().Castling())
}

func clonePieceSquares(b *Board) [PieceLength][]Square {
	var out [PieceLength][]Square
	for p := range b.pieceSquares {
		if len(b.pieceSquares[p]) == 0 {
			continue
		}
		out[p] = append([]Square(nil), b.pieceSquares[p]...)
	}
	return out
}

// A quiet (non-capturing, non-castling) move is fully reversible: every
// field MakeMove touches - zobrist, piece-lists, the reverse index, ply and
// the checking square - must come back exactly as it was once UnmakeMove
// replays it.
func TestMakeUnmakeRestoresBoardBitForBit(t *testing.T) {
	b := NewGame()
	beforeZobrist := b.ZobristKey()
	beforeChecking := b.CheckingSquare()
	beforePly := b.Ply()
	beforeUndoLen := len(b.undo)
	beforeListIndex := b.listIndex
	beforePieceSquares := clonePieceSquares(b)

	b.MakeMove(CreateMove(SqG1, SqF3, PtNone))
	b.UnmakeMove()

	require.Equal(t, beforeZobrist, b.ZobristKey())
	require.Equal(t, beforeChecking, b.CheckingSquare())
	require.Equal(t, beforePly, b.Ply())
	require.Equal(t, beforeUndoLen, len(b.undo))
	require.Equal(t, beforeListIndex, b.listIndex)
	for p := range beforePieceSquares {
		require.Equal(t, beforePieceSquares[p], b.pieceSquares[p], "piece list for piece %d", p)
	}
}

// A castling move touches two piece lists (king and rook) in one MakeMove
// call; unmaking it must restore both exactly, the same way a single-piece
// quiet move does above.
func TestMakeUnmakeRestoresBoardBitForBitAcrossCastling(t *testing.T) {
	b := NewFromPosition(mustPosition(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"))
	beforeZobrist := b.ZobristKey()
	beforeListIndex := b.listIndex
	beforePieceSquares := clonePieceSquares(b)

	b.MakeMove(CreateCastlingMove(White, true))
	b.UnmakeMove()

	require.Equal(t, beforeZobrist, b.ZobristKey())
	require.Equal(t, beforeListIndex, b.listIndex)
	for p := range beforePieceSquares {
		require.Equal(t, beforePieceSquares[p], b.pieceSquares[p], "piece list for piece %d", p)
	}
}

// Board.zobrist is maintained incrementally by MakeMove/UnmakeMove; it must
// always agree with a from-scratch recomputation off the current Position,
// the same cross-check checkInvariants runs under assert.DEBUG.
func TestZobristMatchesFromScratchRecomputation(t *testing.T) {
	b := NewFromPosition(mustPosition(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"))
	require.Equal(t, zobristFromScratch(b.Position()), b.ZobristKey())

	b.MakeMove(CreateMove(SqE5, SqF7, PtNone))
	require.Equal(t, zobristFromScratch(b.Position()), b.ZobristKey())

	b.UnmakeMove()
	require.Equal(t, zobristFromScratch(b.Position()), b.ZobristKey())
}

// Every occupied square's piece-list entry must point back to that exact
// square: pieceSquares[piece][listIndex[sq]] == sq for every sq on the
// board, the reverse-pointer invariant removePiece's swap-remove relies on.
func TestReversePointerInvariantHoldsAfterMoves(t *testing.T) {
	b := NewFromPosition(mustPosition(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"))
	b.MakeMove(CreateMove(SqE5, SqF7, PtNone))

	for sq := SqA1; sq < SqNone; sq++ {
		piece := b.PieceAt(sq)
		if piece == PieceNone {
			continue
		}
		idx := b.listIndex[sq]
		require.True(t, idx >= 0 && idx < len(b.pieceSquares[piece]))
		require.Equal(t, sq, b.pieceSquares[piece][idx])
	}
}

// The same final position reached by two different move orders must hash
// to the same Zobrist key - this is what lets a transposition table pay
// off across a search tree instead of only within one line of play.
func TestZobristKeyMatchesAcrossTranspositions(t *testing.T) {
	viaKnightFirst := NewGame()
	viaKnightFirst.MakeMove(CreateMove(SqG1, SqF3, PtNone))
	viaKnightFirst.MakeMove(CreateMove(SqD7, SqD5, PtNone))
	viaKnightFirst.MakeMove(CreateMove(SqD2, SqD4, PtNone))
	viaKnightFirst.MakeMove(CreateMove(SqG8, SqF6, PtNone))

	viaPawnFirst := NewGame()
	viaPawnFirst.MakeMove(CreateMove(SqD2, SqD4, PtNone))
	viaPawnFirst.MakeMove(CreateMove(SqD7, SqD5, PtNone))
	viaPawnFirst.MakeMove(CreateMove(SqG1, SqF3, PtNone))
	viaPawnFirst.MakeMove(CreateMove(SqG8, SqF6, PtNone))

	require.Equal(t, viaPawnFirst.ZobristKey(), viaKnightFirst.ZobristKey())
}
