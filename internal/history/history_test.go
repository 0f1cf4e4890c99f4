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

package history

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/arcticchess/arctic/pkg/types"
)

func TestFreshTableHasNothingHot(t *testing.T) {
	tb := NewTable()
	assert.False(t, tb.IsHot(White, SqE2, SqE4, 10, 64))
}

func TestRecordThenHotWithinWindow(t *testing.T) {
	tb := NewTable()
	tb.Record(White, SqE2, SqE4, 10)
	assert.True(t, tb.IsHot(White, SqE2, SqE4, 12, 4))
}

func TestRecordOutsideWindowIsNotHot(t *testing.T) {
	tb := NewTable()
	tb.Record(White, SqE2, SqE4, 10)
	assert.False(t, tb.IsHot(White, SqE2, SqE4, 20, 4))
}

func TestClearForgetsRecordings(t *testing.T) {
	tb := NewTable()
	tb.Record(Black, SqD7, SqD5, 3)
	tb.Clear()
	assert.False(t, tb.IsHot(Black, SqD7, SqD5, 3, 64))
}

func TestColorsAreIndependent(t *testing.T) {
	tb := NewTable()
	tb.Record(White, SqE2, SqE4, 5)
	assert.False(t, tb.IsHot(Black, SqE2, SqE4, 5, 64))
}
