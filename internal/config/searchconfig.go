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

package config

// searchConfiguration is a data structure to hold the configuration of an
// instance of a search.
type searchConfiguration struct {
	// Iterative deepening / node and depth budgets
	MaxDepth  int
	MaxNodes  uint64
	MaxThreads int

	// Tie-breaking: when true, equally-valued moves are shuffled before
	// search rather than always preferring generation order.
	RandomMoves bool

	// Whether the coordinator is allowed to emit a "resign" response on a
	// detected forced loss.
	CanResign bool

	// Quiescence search
	UseQuiescence bool

	// Move ordering via the history heuristic
	UseHistory         bool
	HistoryWindowPlies int

	// Futility pruning at/near the leaf
	UseFutilityPruning bool
}

// sets defaults which might be overwritten by config file
func init() {
	Settings.Search.MaxDepth = 64
	Settings.Search.MaxNodes = 0 // 0 == unlimited
	Settings.Search.MaxThreads = 1

	Settings.Search.RandomMoves = false
	Settings.Search.CanResign = true

	Settings.Search.UseQuiescence = true

	Settings.Search.UseHistory = true
	Settings.Search.HistoryWindowPlies = 4

	Settings.Search.UseFutilityPruning = true
}

// set defaults for configurations here in case a configuration
// is not available from the config file
func setupSearch() {
	if Settings.Search.MaxDepth <= 0 {
		Settings.Search.MaxDepth = 64
	}
	if Settings.Search.MaxThreads <= 0 {
		Settings.Search.MaxThreads = 1
	}
	if Settings.Search.HistoryWindowPlies <= 0 {
		Settings.Search.HistoryWindowPlies = 4
	}
}
