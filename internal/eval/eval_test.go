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

package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arcticchess/arctic/internal/board"
	"github.com/arcticchess/arctic/internal/position"
	. "github.com/arcticchess/arctic/pkg/types"
)

func TestEvalRelationalOperators(t *testing.T) {
	tests := []struct {
		e        Eval
		v        int
		less     bool
		lessEq   bool
		greater  bool
		greaterEq bool
	}{
		{Exact(100), 100, false, true, false, true},
		{Bound(50, 150), 100, false, false, false, false},
		{Bound(150, 200), 100, false, false, true, true},
		{Bound(0, 50), 100, true, true, false, false},
	}
	for _, test := range tests {
		assert.Equal(t, test.less, test.e.Less(test.v))
		assert.Equal(t, test.lessEq, test.e.LessEq(test.v))
		assert.Equal(t, test.greater, test.e.Greater(test.v))
		assert.Equal(t, test.greaterEq, test.e.GreaterEq(test.v))
	}
}

func TestEvalIsExactAndRange(t *testing.T) {
	assert.True(t, Exact(42).IsExact())
	assert.False(t, Bound(10, 20).IsExact())
	assert.Equal(t, 0, Exact(42).Range())
	assert.Equal(t, 10, Bound(10, 20).Range())
}

func TestEvalDetectedWinLoss(t *testing.T) {
	assert.True(t, Exact(Win).DetectedWin())
	assert.True(t, Bound(WinThreshold, Win).DetectedWin())
	assert.False(t, Bound(WinThreshold-1, Win).DetectedWin())
	assert.True(t, Exact(Loss).DetectedLoss())
	assert.True(t, Bound(Loss, LossThreshold).DetectedLoss())
	assert.False(t, Bound(Loss, LossThreshold+1).DetectedLoss())
	assert.True(t, Exact(Win).DetectedWinOrLoss())
	assert.True(t, Exact(Loss).DetectedWinOrLoss())
	assert.False(t, Exact(0).DetectedWinOrLoss())
}

func TestEvalMovesToWinOrLoss(t *testing.T) {
	assert.Equal(t, 1, Exact(Win).MovesToWinOrLoss())
	assert.Equal(t, 1, Exact(Win-1).MovesToWinOrLoss())
	assert.Equal(t, 1, Exact(Loss).MovesToWinOrLoss())
	assert.Equal(t, -1, Exact(0).MovesToWinOrLoss())
}

func TestEvalInvertedIsInvolution(t *testing.T) {
	for _, v := range []Eval{Exact(17), Bound(-30, 42), Exact(Win), Exact(Loss)} {
		assert.Equal(t, v, v.Inverted().Inverted())
	}
}

func TestEvalInvert(t *testing.T) {
	e := Bound(10, 20)
	e.Invert()
	assert.Equal(t, Bound(-20, -10), e)
}

func TestEvalBumpTo(t *testing.T) {
	e := Bound(10, 20)
	e.BumpTo(Bound(5, 30))
	assert.Equal(t, Bound(10, 30), e)
	e2 := Bound(10, 20)
	e2.BumpTo(Bound(15, 18))
	assert.Equal(t, Bound(15, 20), e2)
}

func TestEvalDecayAndRipenAreInverses(t *testing.T) {
	e := Exact(Win)
	e.DecayTo(WinThreshold)
	assert.Equal(t, Win-1, e.LowBound())
	e.RipenFrom(WinThreshold)
	assert.Equal(t, Win, e.LowBound())
}

func TestWorth(t *testing.T) {
	assert.Equal(t, PawnWorth, Worth(Pawn))
	assert.Equal(t, QueenWorth, Worth(Queen))
	assert.Equal(t, 0, Worth(King))
}

func TestMaterialStartingPosition(t *testing.T) {
	b := board.NewGame()
	expected := 8*PawnWorth + 2*KnightWorth + 2*BishopWorth + 2*RookWorth + QueenWorth
	assert.Equal(t, expected, Material(b, White))
	assert.Equal(t, expected, Material(b, Black))
}

func TestCapWorthQuietMoveIsZero(t *testing.T) {
	b := board.NewGame()
	m := CreateMove(SqE2, SqE4, PtNone)
	assert.Equal(t, 0, CapWorth(b, m))
}

func TestEndGameEvalFavorsCorneringBareKing(t *testing.T) {
	pos, err := position.FromFen("8/8/8/4k3/8/8/4K3/8 w - - 0 1")
	assert.NoError(t, err)
	centerBoard := board.NewFromPosition(pos)

	cornerPos, err := position.FromFen("k7/8/8/8/8/8/4K3/8 w - - 0 1")
	assert.NoError(t, err)
	cornerBoard := board.NewFromPosition(cornerPos)

	assert.True(t, EndGameEval(cornerBoard, White) > EndGameEval(centerBoard, White))
}
