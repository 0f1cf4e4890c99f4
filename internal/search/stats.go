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

package search

import (
	"github.com/arcticchess/arctic/internal/moveslice"
	. "github.com/arcticchess/arctic/pkg/types"
)

// Stats are the counters a running search accumulates. The five fields
// commented "wire" name the counters the coordinator's periodic stats
// response reports to the driver (it sums Nodes across workers and reads
// the hash fill from the table itself); the rest are extra detail kept for
// logging and tests.
type Stats struct {
	Nodes            uint64 // wire: total nodes visited
	NonQNodes        uint64 // wire: nodes visited outside quiescence
	MoveGenNodes     uint64 // wire: nodes where move generation actually ran
	HashHitGood      uint64 // wire: TT hits that produced a usable cutoff
	HashFullPerMille int    // wire: the coordinator reports tt.Hashfull() in its place

	HashProbes   uint64
	HashMisses   uint64
	Checkmates   uint64
	Stalemates   uint64
	FutilityCuts uint64
	StandPatCuts uint64
	BetaCuts     uint64

	CurrentIterationDepth int
	CurrentVariation      moveslice.MoveSlice
}

func (s *Stats) String() string {
	return out.Sprintf("%+v", *s)
}
