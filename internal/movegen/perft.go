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
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/arcticchess/arctic/internal/board"
	"github.com/arcticchess/arctic/internal/position"
	"github.com/arcticchess/arctic/internal/util"
	. "github.com/arcticchess/arctic/pkg/types"
)

var out = message.NewPrinter(language.German)

// Perft counts the leaf nodes reachable from a position at a fixed depth,
// the standard move-generator correctness check: the totals at each depth
// from the start position and from well-known test FENs are published
// numbers, so a mismatch pinpoints a move-generation bug no unit test
// phrased in terms of a single position ever would.
type Perft struct {
	Nodes            uint64
	CaptureCounter   uint64
	EnpassantCounter uint64
	CastleCounter    uint64
	PromotionCounter uint64
	CheckCounter     uint64

	gen *Generator
}

// NewPerft returns an empty Perft ready to run.
func NewPerft() *Perft {
	return &Perft{gen: NewGenerator()}
}

// StartPerft runs perft from fen to the given depth and prints the result
// the way a driver's "perft" command would report it.
func (p *Perft) StartPerft(fen string, depth int) {
	if depth < 1 {
		depth = 1
	}
	p.resetCounters()

	pos, err := position.FromFen(fen)
	if err != nil {
		out.Printf("perft: invalid fen %q: %v\n", fen, err)
		return
	}
	b := board.NewFromPosition(pos)

	out.Printf("Performing PERFT Test for Depth %d\n", depth)
	out.Printf("FEN: %s\n", fen)
	out.Printf("-----------------------------------------\n")

	start := time.Now()
	p.Nodes = p.search(b, depth)
	elapsed := time.Since(start)

	out.Printf("Time         : %s\n", elapsed)
	out.Printf("NPS          : %d nps\n", util.Nps(p.Nodes, elapsed))
	out.Printf("Results:\n")
	out.Printf("   Nodes     : %d\n", p.Nodes)
	out.Printf("   Captures  : %d\n", p.CaptureCounter)
	out.Printf("   EnPassant : %d\n", p.EnpassantCounter)
	out.Printf("   Castles   : %d\n", p.CastleCounter)
	out.Printf("   Promotions: %d\n", p.PromotionCounter)
	out.Printf("   Checks    : %d\n", p.CheckCounter)
	out.Printf("-----------------------------------------\n")
}

// search walks the legal move tree and returns the leaf count at depth 1
// (the deepest ply), tallying the move-kind counters along the way.
func (p *Perft) search(b *board.Board, depth int) uint64 {
	moves := p.gen.GenerateLegalMoves(b)
	if depth == 1 {
		for i := 0; i < moves.Len(); i++ {
			p.tallyLeaf(b, moves.At(i))
		}
		return uint64(moves.Len())
	}

	var total uint64
	for i := 0; i < moves.Len(); i++ {
		b.MakeMove(moves.At(i))
		total += p.search(b, depth-1)
		b.UnmakeMove()
	}
	return total
}

func (p *Perft) tallyLeaf(b *board.Board, m Move) {
	if m.IsCastling() {
		p.CastleCounter++
	}
	if m.PromotionType() != PtNone {
		p.PromotionCounter++
	}
	isCapture := !m.IsCastling() && b.PieceAt(m.To()) != PieceNone
	isEnPassant := !isCapture && b.PieceAt(m.From()).TypeOf() == Pawn && m.From().FileOf() != m.To().FileOf()
	if isEnPassant {
		p.EnpassantCounter++
		p.CaptureCounter++
	} else if isCapture {
		p.CaptureCounter++
	}
	if m.IsCheck() {
		p.CheckCounter++
	}
}

func (p *Perft) resetCounters() {
	p.Nodes, p.CaptureCounter, p.EnpassantCounter = 0, 0, 0
	p.CastleCounter, p.PromotionCounter, p.CheckCounter = 0, 0, 0
}
