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

package position

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustFen(t *testing.T, fen string) Position {
	t.Helper()
	pos, err := FromFen(fen)
	require.NoError(t, err)
	return pos
}

func TestIsLegalAcceptsStartingPosition(t *testing.T) {
	require.NoError(t, New().IsLegal())
}

func TestIsLegalAcceptsKiwipete(t *testing.T) {
	pos := mustFen(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, pos.IsLegal())
}

func TestIsLegalRejectsSideNotToMoveInCheck(t *testing.T) {
	// Black king on e8 is attacked along the e-file by the white rook on
	// e5, but it is white to move - meaning black, the side not to move,
	// would have had to leave its own king in check. No legal game reaches
	// this.
	pos := mustFen(t, "4k3/8/8/4R3/8/8/8/K7 w - - 0 1")
	err := pos.IsLegal()
	require.Error(t, err)
}

func TestIsLegalAcceptsSideToMoveInCheck(t *testing.T) {
	// The side to move being in check is completely ordinary - that is
	// just "the game continues" as long as it has a legal reply.
	pos := mustFen(t, "4k2R/8/8/8/8/8/8/4K3 b - - 0 1")
	require.NoError(t, pos.IsLegal())
}

func TestIsLegalRejectsCastlingRightWithoutRook(t *testing.T) {
	// White claims kingside castling rights but there is no rook on h1.
	pos := mustFen(t, "4k3/8/8/8/8/8/8/4K3 w K - 0 1")
	err := pos.IsLegal()
	require.Error(t, err)
}

func TestIsLegalRejectsCastlingRightWithKingOffStartSquare(t *testing.T) {
	// White claims kingside castling rights, the rook is on h1, but the
	// king has already moved off e1.
	pos := mustFen(t, "4k3/8/8/8/8/8/8/3K3R w K - 0 1")
	err := pos.IsLegal()
	require.Error(t, err)
}

func TestIsLegalRejectsOccupiedEnPassantSquare(t *testing.T) {
	// d3 is claimed as the en-passant target but is not empty.
	pos := mustFen(t, "4k3/8/8/8/8/3P4/8/4K3 b - d3 0 1")
	err := pos.IsLegal()
	require.Error(t, err)
}

func TestIsLegalRejectsEnPassantWithoutDoublePushedPawn(t *testing.T) {
	// d3 is empty, but a white double push to d4 is required to have set
	// this target and there is no pawn on d4 at all.
	pos := mustFen(t, "4k3/8/8/8/8/8/8/4K3 b - d3 0 1")
	err := pos.IsLegal()
	require.Error(t, err)
}

func TestIsLegalAcceptsValidEnPassantTarget(t *testing.T) {
	// White just played d2-d4; black to move, d3 is the target and d4
	// holds the pawn that just double-pushed.
	pos := mustFen(t, "4k3/8/8/8/3P4/8/8/4K3 b - d3 0 1")
	require.NoError(t, pos.IsLegal())
}
