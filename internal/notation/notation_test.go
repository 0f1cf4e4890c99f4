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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arcticchess/arctic/internal/board"
	"github.com/arcticchess/arctic/internal/position"
	. "github.com/arcticchess/arctic/pkg/types"
)

func mustBoard(t *testing.T, fen string) *board.Board {
	t.Helper()
	pos, err := position.FromFen(fen)
	require.NoError(t, err)
	return board.NewFromPosition(pos)
}

func TestParseCANFromStartingPosition(t *testing.T) {
	b := board.NewGame()
	m, err := ParseCAN(b, "e2e4")
	require.NoError(t, err)
	require.Equal(t, SqE2, m.From())
	require.Equal(t, SqE4, m.To())
}

func TestParseCANRejectsIllegalMove(t *testing.T) {
	b := board.NewGame()
	_, err := ParseCAN(b, "e2e5")
	require.Error(t, err)
}

func TestParseCANAcceptsBothCastlingSpellings(t *testing.T) {
	b := mustBoard(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	twoSquare, err := ParseCAN(b, "e1g1")
	require.NoError(t, err)
	require.True(t, twoSquare.IsCastling())
	require.True(t, twoSquare.CastlingKingside())

	kxr, err := ParseCAN(b, "e1h1")
	require.NoError(t, err)
	require.Equal(t, twoSquare.MoveOf(), kxr.MoveOf())
}

func TestParseCANPromotion(t *testing.T) {
	b := mustBoard(t, "8/P6k/8/8/8/8/7K/8 w - - 0 1")
	m, err := ParseCAN(b, "a7a8q")
	require.NoError(t, err)
	require.Equal(t, Queen, m.PromotionType())
}

func TestToSANPawnPush(t *testing.T) {
	b := board.NewGame()
	push, err := ParseCAN(b, "e2e4")
	require.NoError(t, err)
	require.Equal(t, "e4", ToSAN(b, push))
}

func TestToSANCastling(t *testing.T) {
	b := mustBoard(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	m, err := ParseCAN(b, "e1g1")
	require.NoError(t, err)
	require.Equal(t, "O-O", ToSAN(b, m))
}

func TestToSANCheckmateSuffix(t *testing.T) {
	b := mustBoard(t, "6k1/5ppp/8/8/8/8/8/R3K3 w - - 0 1")
	m, err := ParseCAN(b, "a1a8")
	require.NoError(t, err)
	require.Equal(t, "Ra8#", ToSAN(b, m))
}

func TestToSANDisambiguatesByFile(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/R6R/8/8/8/4K3 w - - 0 1")
	m, err := ParseCAN(b, "a5d5")
	require.NoError(t, err)
	require.Equal(t, "Rad5", ToSAN(b, m))
}

func TestParseSANRoundTripsWithToSAN(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/R6R/8/8/8/4K3 w - - 0 1")
	m, err := ParseCAN(b, "a5d5")
	require.NoError(t, err)
	san := ToSAN(b, m)

	parsed, err := ParseSAN(b, san)
	require.NoError(t, err)
	require.Equal(t, m.MoveOf(), parsed)
}

func TestParseSANCastling(t *testing.T) {
	b := mustBoard(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	m, err := ParseSAN(b, "O-O-O")
	require.NoError(t, err)
	require.True(t, m.IsCastling())
	require.False(t, m.CastlingKingside())
}
