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

	"github.com/arcticchess/arctic/internal/variant"
)

// https://www.chessprogramming.org/Perft_Results
func TestPerftStandardPosition(t *testing.T) {
	var results = []uint64{1, 20, 400, 8_902, 197_281, 4_865_609}

	for depth, want := range results {
		if depth == 0 {
			continue
		}
		var perft Perft
		perft.StartPerft(variant.StartFen, depth)
		require.Equal(t, want, perft.Nodes, "depth %d", depth)
	}
}

// Kiwipete: a position dense with captures, checks, castling rights on
// both sides and en-passant captures a few plies in, chosen by the Perft_Results page
// specifically to stress every special move kind at once.
func TestPerftKiwipete(t *testing.T) {
	const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

	var perft3 Perft
	perft3.StartPerft(kiwipete, 3)
	require.Equal(t, uint64(97_862), perft3.Nodes)

	var perft4 Perft
	perft4.StartPerft(kiwipete, 4)
	require.Equal(t, uint64(4_085_603), perft4.Nodes)
}
