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
	"github.com/arcticchess/arctic/internal/board"
	"github.com/arcticchess/arctic/internal/eval"
	"github.com/arcticchess/arctic/internal/moveslice"
	. "github.com/arcticchess/arctic/pkg/types"
)

// CommandKind discriminates the handful of commands the driver can send the
// coordinator. There is deliberately no "pause"/"resume": the driver either
// lets a think run to completion, cuts it short with MoveNow, or discards it
// entirely with Bail.
type CommandKind int

const (
	NewGame CommandKind = iota
	SetPosition
	Think
	Ponder
	MoveNow
	Bail
	ConfigSet
)

// Command is sent to the coordinator's command channel. Only the fields
// relevant to Kind are populated.
type Command struct {
	Kind CommandKind

	// SetPosition
	Board *board.Board

	// ConfigSet
	Key   string
	Value interface{}
}

// ResponseKind discriminates the coordinator's outgoing messages.
type ResponseKind int

const (
	RespStats ResponseKind = iota
	RespPV
	RespMove
	RespDraw
	RespResign
)

// Response is emitted on the coordinator's response channel. Only the
// fields relevant to Kind are populated.
type Response struct {
	Kind ResponseKind

	// RespStats
	Nodes            uint64
	NonQNodes        uint64
	MoveGenNodes     uint64
	HashHitGood      uint64
	HashFullPerMille int

	// RespPV
	Level int
	Eval  eval.Eval
	Moves moveslice.MoveSlice

	// RespMove, RespDraw ("draw" may carry MoveNone for an automatic draw)
	Move Move
}
