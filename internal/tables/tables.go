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

// Package tables holds every lookup table the board representation and
// move generator need at a per-square granularity, all built once in
// init() the same way pkg/types builds Square.To(). Nothing here depends
// on the current position; everything is a pure function of geometry.
package tables

import (
	"math/rand"

	. "github.com/arcticchess/arctic/pkg/types"
)

// Ray[sq][dir] is the ordered list of squares from sq (exclusive) to the
// edge of the board along dir, nearest first. Sliding-piece attack
// generation and the pin/discovered-check scan both walk a Ray until they
// hit an occupied square or run off the end of the slice.
var Ray [SqLength][8][]Square

// KnightMoves[sq] lists the (up to 8) squares a knight on sq attacks.
var KnightMoves [SqLength][]Square

// KingMoves[sq] lists the (up to 8) squares a king on sq attacks.
var KingMoves [SqLength][]Square

// PawnCaptures[color][sq] lists the (up to 2) squares a pawn of color on
// sq attacks diagonally.
var PawnCaptures [ColorLength][SqLength][]Square

// SquareDirection[from][to] is the index into types.Directions (and into
// Ray's second dimension) of the direction from "from" towards "to" if the
// two squares share a rank, file or diagonal, or -1 otherwise. Used by
// the pin / discovered-check scanner to find which ray a target square
// sits on without trying all 8 directions.
var SquareDirection [SqLength][SqLength]int8

const noDirection int8 = -1

// Distance[sq1][sq2] is the Manhattan (rank + file) distance between two
// squares. CenterDistance[sq] is the minimum Manhattan distance from sq to
// one of the four center squares (d4, e4, d5, e5); used by the mop-up
// evaluation to reward driving an enemy bare king toward the board edge.
var Distance [SqLength][SqLength]int
var CenterDistance [SqLength]int

func init() {
	initRays()
	initKnightMoves()
	initKingMoves()
	initPawnCaptures()
	initSquareDirection()
	initZobrist()
	initDistance()
}

func initDistance() {
	abs := func(n int) int {
		if n < 0 {
			return -n
		}
		return n
	}
	manhattan := func(a, b Square) int {
		return abs(int(a.RankOf())-int(b.RankOf())) + abs(int(a.FileOf())-int(b.FileOf()))
	}
	centerSquares := []Square{SqD4, SqE4, SqD5, SqE5}
	for sq := SqA1; sq < SqNone; sq++ {
		for other := SqA1; other < SqNone; other++ {
			Distance[sq][other] = manhattan(sq, other)
		}
		best := 99
		for _, c := range centerSquares {
			if d := manhattan(sq, c); d < best {
				best = d
			}
		}
		CenterDistance[sq] = best
	}
}

func initRays() {
	for sq := SqA1; sq < SqNone; sq++ {
		for i, dir := range Directions {
			var ray []Square
			cur := sq
			for {
				next := cur.To(dir)
				if next == SqNone {
					break
				}
				ray = append(ray, next)
				cur = next
			}
			Ray[sq][i] = ray
		}
	}
}

func initKnightMoves() {
	deltas := [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	for sq := SqA1; sq < SqNone; sq++ {
		f, r := int(sq.FileOf()), int(sq.RankOf())
		var moves []Square
		for _, d := range deltas {
			nf, nr := f+d[0], r+d[1]
			if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
				continue
			}
			moves = append(moves, SquareOf(File(nf), Rank(nr)))
		}
		KnightMoves[sq] = moves
	}
}

func initKingMoves() {
	for sq := SqA1; sq < SqNone; sq++ {
		var moves []Square
		for _, dir := range Directions {
			if to := sq.To(dir); to != SqNone {
				moves = append(moves, to)
			}
		}
		KingMoves[sq] = moves
	}
}

func initPawnCaptures() {
	for sq := SqA1; sq < SqNone; sq++ {
		var white, black []Square
		if to := sq.To(Northeast); to != SqNone {
			white = append(white, to)
		}
		if to := sq.To(Northwest); to != SqNone {
			white = append(white, to)
		}
		if to := sq.To(Southeast); to != SqNone {
			black = append(black, to)
		}
		if to := sq.To(Southwest); to != SqNone {
			black = append(black, to)
		}
		PawnCaptures[White][sq] = white
		PawnCaptures[Black][sq] = black
	}
}

func initSquareDirection() {
	for from := SqA1; from < SqNone; from++ {
		for to := SqA1; to < SqNone; to++ {
			SquareDirection[from][to] = noDirection
		}
		for i, dir := range Directions {
			for _, to := range Ray[from][i] {
				SquareDirection[from][to] = int8(directionIndexOf(dir))
			}
		}
	}
}

func directionIndexOf(d Direction) int {
	for i, cand := range Directions {
		if cand == d {
			return i
		}
	}
	panic("unreachable: direction not in Directions table")
}

// ZobristSquare[piece][sq] and ZobristCastling/ZobristEpFile/ZobristColor
// are XORed incrementally by Board.MakeMove / Board.UnmakeMove rather than
// recomputed from scratch.
var (
	ZobristSquare   [PtLength * 2][SqLength]uint64
	ZobristCastling [CastlingRightsLength]uint64
	ZobristEpFile   [9]uint64 // index 8 == "no ep file"
	ZobristColor    uint64
)

func initZobrist() {
	// A fixed seed keeps Zobrist keys - and therefore perft/TT behavior -
	// reproducible across runs, which matters for debugging and for the
	// transposition table's test suite.
	rng := rand.New(rand.NewSource(0xA12C71C))
	for pc := range ZobristSquare {
		for sq := range ZobristSquare[pc] {
			ZobristSquare[pc][sq] = rng.Uint64()
		}
	}
	for cr := range ZobristCastling {
		ZobristCastling[cr] = rng.Uint64()
	}
	for f := range ZobristEpFile {
		ZobristEpFile[f] = rng.Uint64()
	}
	ZobristColor = rng.Uint64()
}

// ZobristPieceIndex maps a Piece to the first dimension of ZobristSquare.
func ZobristPieceIndex(p Piece) int {
	return int(p.ColorOf())*int(PtLength) + int(p.TypeOf())
}
