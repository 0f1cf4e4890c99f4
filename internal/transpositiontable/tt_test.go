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

package transpositiontable

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcticchess/arctic/internal/board"
	"github.com/arcticchess/arctic/internal/eval"
	. "github.com/arcticchess/arctic/pkg/types"
)

func TestResizeRoundsDownToPowerOfTwo(t *testing.T) {
	tt := NewTable(1)
	assert.True(t, tt.NumEntries() > 0)
	assert.Equal(t, tt.NumEntries(), tt.NumEntries()&(^(tt.NumEntries() - 1)))
}

func TestResizeZeroGivesEmptyTable(t *testing.T) {
	tt := NewTable(0)
	assert.Equal(t, uint64(0), tt.NumEntries())
	_, _, hit := tt.IsHit(12345, 3, 0, -1000, 1000, false)
	assert.False(t, hit)
}

func TestResizeClampsToMax(t *testing.T) {
	tt := NewTable(MaxSizeInMB + 1000)
	assert.True(t, tt.sizeInByte <= uint64(MaxSizeInMB)*mb)
}

func TestMissOnEmptyTable(t *testing.T) {
	tt := NewTable(4)
	_, _, hit := tt.IsHit(0xdeadbeef, 5, 0, -1000, 1000, false)
	assert.False(t, hit)
}

func TestUpdateThenHit(t *testing.T) {
	tt := NewTable(4)
	zobrist := uint64(0xabc123)
	result := eval.Exact(37)
	move := CreateMove(SqE2, SqE4, PtNone)

	tt.ConditionalUpdate(result, move, zobrist, 6, 1)

	got, gotMove, hit := tt.IsHit(zobrist, 4, 1, -1000, 1000, false)
	assert.True(t, hit)
	assert.True(t, got.IsExact())
	assert.Equal(t, 37, got.LowBound())
	assert.Equal(t, move, gotMove)
}

func TestMissWhenStoredDepthTooShallow(t *testing.T) {
	tt := NewTable(4)
	zobrist := uint64(0x555)
	tt.ConditionalUpdate(eval.Exact(10), CreateMove(SqD2, SqD4, PtNone), zobrist, 2, 0)

	_, _, hit := tt.IsHit(zobrist, 8, 0, -1000, 1000, false)
	assert.False(t, hit)
}

func TestQuiescenceIgnoresDepthRequirement(t *testing.T) {
	tt := NewTable(4)
	zobrist := uint64(0x777)
	tt.ConditionalUpdate(eval.Exact(10), CreateMove(SqD2, SqD4, PtNone), zobrist, 1, 0)

	_, _, hit := tt.IsHit(zobrist, 20, 0, -1000, 1000, true)
	assert.True(t, hit)
}

func TestNonExactBoundOnlyUsableWhenItResolvesWindow(t *testing.T) {
	tt := NewTable(4)
	zobrist := uint64(0x999)
	// a fail-low bound: real value <= 10
	tt.ConditionalUpdate(eval.Bound(-100000, 10), CreateMove(SqG1, SqF3, PtNone), zobrist, 6, 0)

	// alpha=20: bound.high(10) <= alpha(20), so it is usable (fails low against alpha).
	_, _, hit := tt.IsHit(zobrist, 4, 0, 20, 1000, false)
	assert.True(t, hit)

	// alpha=5, beta=1000: bound doesn't resolve this narrower window.
	_, _, hit = tt.IsHit(zobrist, 4, 0, 5, 1000, false)
	assert.False(t, hit)
}

func TestConditionalUpdateKeepsDeeperEntry(t *testing.T) {
	tt := NewTable(4)
	zobrist := uint64(0x111)
	deep := CreateMove(SqB1, SqC3, PtNone)
	shallow := CreateMove(SqG1, SqF3, PtNone)

	tt.ConditionalUpdate(eval.Exact(50), deep, zobrist, 10, 0)
	tt.ConditionalUpdate(eval.Exact(-50), shallow, zobrist, 3, 0)

	got, gotMove, hit := tt.IsHit(zobrist, 1, 0, -1000, 1000, false)
	assert.True(t, hit)
	assert.Equal(t, deep, gotMove)
	assert.Equal(t, 50, got.LowBound())
}

func TestConditionalUpdateOverwritesOnNewerGeneration(t *testing.T) {
	tt := NewTable(4)
	zobrist := uint64(0x222)
	old := CreateMove(SqB1, SqC3, PtNone)
	fresh := CreateMove(SqG1, SqF3, PtNone)

	tt.ConditionalUpdate(eval.Exact(50), old, zobrist, 10, 0)
	tt.ConditionalUpdate(eval.Exact(-50), fresh, zobrist, 5, 1)

	got, gotMove, hit := tt.IsHit(zobrist, 1, 1, -1000, 1000, false)
	assert.True(t, hit)
	assert.Equal(t, fresh, gotMove)
	assert.Equal(t, -50, got.LowBound())
}

func TestClearResetsEntriesAndStats(t *testing.T) {
	tt := NewTable(4)
	zobrist := uint64(0x333)
	tt.ConditionalUpdate(eval.Exact(5), CreateMove(SqA2, SqA4, PtNone), zobrist, 4, 0)
	tt.Clear()

	_, _, hit := tt.IsHit(zobrist, 1, 0, -1000, 1000, false)
	assert.False(t, hit)
	assert.Equal(t, uint64(0), tt.Stats.Updates)
}

func TestHashfullReflectsFillRatio(t *testing.T) {
	tt := NewTable(4)
	assert.Equal(t, 0, tt.Hashfull())
	for i := 0; i < 10; i++ {
		tt.ConditionalUpdate(eval.Exact(i), CreateMove(SqA2, SqA4, PtNone), uint64(i), 3, 0)
	}
	assert.True(t, tt.Hashfull() > 0)
}

func TestConcurrentAccessDoesNotRace(t *testing.T) {
	tt := NewTable(4)
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			z := uint64(n) * 0x9e3779b97f4a7c15
			tt.ConditionalUpdate(eval.Exact(n), CreateMove(SqA2, SqA4, PtNone), z, 3, 0)
			tt.IsHit(z, 1, 0, -1000, 1000, false)
		}(i)
	}
	wg.Wait()
}

func TestPrefetchOnEmptyTableDoesNotPanic(t *testing.T) {
	tt := NewTable(0)
	assert.NotPanics(t, func() { tt.Prefetch(123) })
}

// Two different move orders reaching the same position must share a table
// entry: storing a result under one board's Zobrist key has to be visible
// to a lookup keyed by the other board's, even though the boards were never
// the same Go value and never played the same sequence of moves.
func TestConditionalUpdateHitsAfterTransposition(t *testing.T) {
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

	tt := NewTable(4)
	move := CreateMove(SqC1, SqF4, PtNone)
	tt.ConditionalUpdate(eval.Exact(15), move, viaKnightFirst.ZobristKey(), 8, 2)

	got, gotMove, hit := tt.IsHit(viaPawnFirst.ZobristKey(), 4, 2, -1000, 1000, false)
	assert.True(t, hit)
	assert.Equal(t, move, gotMove)
	assert.Equal(t, 15, got.LowBound())
}
