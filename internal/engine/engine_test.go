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

package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arcticchess/arctic/internal/board"
	"github.com/arcticchess/arctic/internal/movegen"
	"github.com/arcticchess/arctic/internal/position"
	. "github.com/arcticchess/arctic/pkg/types"
)

func newCoordinatorForTest(t *testing.T) *Coordinator {
	t.Helper()
	c := NewCoordinator(2, 4)
	go c.Run()
	return c
}

func awaitMoveResponse(t *testing.T, c *Coordinator, timeout time.Duration) Response {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case r := <-c.Responses():
			if r.Kind == RespMove || r.Kind == RespDraw || r.Kind == RespResign {
				return r
			}
		case <-deadline:
			t.Fatal("timed out waiting for a final response")
		}
	}
}

func TestThinkOnMateInOneReturnsWinningMove(t *testing.T) {
	pos, err := position.FromFen("6k1/5ppp/8/8/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)
	b := board.NewFromPosition(pos)

	c := newCoordinatorForTest(t)
	c.Commands() <- Command{Kind: NewGame}
	c.Commands() <- Command{Kind: SetPosition, Board: b}
	c.Commands() <- Command{Kind: ConfigSet, Key: "max-depth", Value: 3}
	c.Commands() <- Command{Kind: Think}

	resp := awaitMoveResponse(t, c, 5*time.Second)
	require.Equal(t, RespMove, resp.Kind)
	require.Equal(t, SqA1, resp.Move.From())
	require.Equal(t, SqA8, resp.Move.To())
}

func TestSetPositionRejectsIllegalPosition(t *testing.T) {
	// Two white kings: never legal.
	pos, err := position.FromFen("4K2K/8/8/8/8/8/8/4k3 w - - 0 1")
	require.NoError(t, err)
	illegal := board.NewFromPosition(pos)

	c := newCoordinatorForTest(t)
	c.Commands() <- Command{Kind: SetPosition, Board: illegal}
	c.Commands() <- Command{Kind: ConfigSet, Key: "max-depth", Value: 1}
	c.Commands() <- Command{Kind: Think}

	// The illegal position must have been rejected: the coordinator is
	// still searching the default starting position, so the reported move
	// must be one of its legal opening moves rather than anything derived
	// from the two-white-kings position.
	resp := awaitMoveResponse(t, c, 5*time.Second)
	require.Equal(t, RespMove, resp.Kind)

	startMoves := movegen.NewGenerator().GenerateLegalMoves(board.NewGame())
	found := false
	for i := 0; i < startMoves.Len(); i++ {
		if startMoves.At(i).MoveOf() == resp.Move.MoveOf() {
			found = true
			break
		}
	}
	require.True(t, found, "expected a legal starting move, got %s", resp.Move.StringUci())
}

func TestMoveNowStopsAnOngoingThink(t *testing.T) {
	c := newCoordinatorForTest(t)
	c.Commands() <- Command{Kind: NewGame}
	c.Commands() <- Command{Kind: ConfigSet, Key: "max-depth", Value: 64}
	c.Commands() <- Command{Kind: Think}

	time.Sleep(20 * time.Millisecond)
	c.Commands() <- Command{Kind: MoveNow}

	resp := awaitMoveResponse(t, c, 5*time.Second)
	require.Equal(t, RespMove, resp.Kind)
	require.NotEqual(t, MoveNone, resp.Move)
}
