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

package movegen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arcticchess/arctic/internal/board"
	"github.com/arcticchess/arctic/internal/moveslice"
	"github.com/arcticchess/arctic/internal/position"
	. "github.com/arcticchess/arctic/pkg/types"
)

func mustBoard(t *testing.T, fen string) *board.Board {
	t.Helper()
	pos, err := position.FromFen(fen)
	require.NoError(t, err)
	return board.NewFromPosition(pos)
}

// The classic en-passant-pin case: capturing en passant removes both the
// capturing and the captured pawn from the same rank in one move, which
// can expose the king to a rook/queen on that rank even though neither
// pawn alone was pinned.
func TestGenerateLegalMovesRejectsEnPassantThatExposesCheck(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/r3Pp1K/8/8/8/8 w - f6 0 1")
	moves := NewGenerator().GenerateLegalMoves(b)
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		require.False(t, m.From() == SqE5 && m.To() == SqF6, "en passant capture must be rejected: exposes the king on the 5th rank")
	}
}

// Without the rook on the rank, the same en passant capture is perfectly
// legal - this pins down that the rejection above is really about the
// discovered check, not en passant being mishandled in general.
func TestGenerateLegalMovesAllowsEnPassantWhenNotPinned(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/4Pp1K/8/8/8/8 w - f6 0 1")
	moves := NewGenerator().GenerateLegalMoves(b)
	found := false
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if m.From() == SqE5 && m.To() == SqF6 {
			found = true
		}
	}
	require.True(t, found, "en passant capture should be legal without the discovered-check rook")
}

func TestGenerateLegalMovesStalemate(t *testing.T) {
	b := mustBoard(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.False(t, b.InCheck())
	require.Equal(t, 0, NewGenerator().GenerateLegalMoves(b).Len())
}

// moveSet reduces a move list to the set of (from, to, promotion) values it
// contains, stripping the check annotation so two paths to the same
// position compare equal regardless of which moves happen to give check.
func moveSet(moves moveslice.MoveSlice) map[Move]bool {
	set := make(map[Move]bool, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		set[moves.At(i).MoveOf()] = true
	}
	return set
}

// The same position reached by two different move orders must generate the
// same set of legal moves - GenerateLegalMoves has no hidden dependency on
// move-order history beyond what the Position snapshot itself encodes.
func TestGenerateLegalMovesIsPathIndependent(t *testing.T) {
	viaKnightFirst := board.NewGame()
	viaKnightFirst.MakeMove(CreateMove(SqG1, SqF3, PtNone))
	viaKnightFirst.MakeMove(CreateMove(SqD7, SqD5, PtNone))
	viaKnightFirst.MakeMove(CreateMove(SqD2, SqD4, PtNone))
	viaKnightFirst.MakeMove(CreateMove(SqG8, SqF6, PtNone))

	viaPawnFirst := board.NewGame()
	viaPawnFirst.MakeMove(CreateMove(SqD2, SqD4, PtNone))
	viaPawnFirst.MakeMove(CreateMove(SqD7, SqD5, PtNone))
	viaPawnFirst.MakeMove(CreateMove(SqG1, SqF3, PtNone))
	viaPawnFirst.MakeMove(CreateMove(SqG8, SqF6, PtNone))

	require.Equal(t, viaPawnFirst.ZobristKey(), viaKnightFirst.ZobristKey())

	gen := NewGenerator()
	knightFirstMoves := moveSet(gen.GenerateLegalMoves(viaKnightFirst))
	pawnFirstMoves := moveSet(gen.GenerateLegalMoves(viaPawnFirst))
	require.Equal(t, pawnFirstMoves, knightFirstMoves)
}

func TestGenerateCastlingMovesRejectsThroughAttackedSquare(t *testing.T) {
	b := mustBoard(t, "k4r2/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	require.False(t, b.InCheck())
	moves := NewGenerator().GenerateLegalMoves(b)
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		require.False(t, m.IsCastling() && m.CastlingKingside(), "f1 is attacked by the rook on f8's file, so O-O must be rejected")
	}
}
