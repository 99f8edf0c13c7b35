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

package attacks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasparik/chesscore/internal/board"
	. "github.com/kasparik/chesscore/internal/types"
)

func TestComputeStartPosition(t *testing.T) {
	b := board.NewBoard()
	a := NewBoardAttacks()
	a.Compute(b)

	assert.NotEqual(t, Bitboard(0), a.Pawns[White])
	assert.NotEqual(t, Bitboard(0), a.Pawns[Black])
	assert.Equal(t, b.ZobristKey(), a.Zobrist)

	assert.Greater(t, a.Mobility[White], 0)
	assert.Greater(t, a.Mobility[Black], 0)
}

func TestComputeIsIdempotentForUnchangedZobrist(t *testing.T) {
	b := board.NewBoard()
	a := NewBoardAttacks()
	a.Compute(b)
	first := a.All[White]
	a.Compute(b)
	assert.Equal(t, first, a.All[White])
}

func TestComputeTracksBoardChanges(t *testing.T) {
	b := board.NewBoard()
	a := NewBoardAttacks()
	a.Compute(b)
	beforeKey := a.Zobrist

	m := CreateMove(SqE2, SqE4, DoublePawnPush)
	undo := b.Make(m)
	a.Compute(b)
	assert.NotEqual(t, beforeKey, a.Zobrist)
	assert.Equal(t, b.ZobristKey(), a.Zobrist)
	b.Unmake(m, undo)
}

func TestAttacksToEnPassant(t *testing.T) {
	b, err := board.NewBoardFen("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	require.NoError(t, err)

	attackers := AttacksTo(b, SqD6, White)
	assert.True(t, attackers.Has(SqE5))
}

func TestAttacksToKnight(t *testing.T) {
	b, err := board.NewBoardFen("4k3/8/8/8/3N4/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	attackers := AttacksTo(b, SqC6, White)
	assert.True(t, attackers.Has(SqD4))
}

func TestRevealedAttacksAfterCapture(t *testing.T) {
	// white rook on e1 with a clear file up to e4: the symmetric-attack
	// trick (project a rook pattern from e4 and intersect with the real
	// rook) must find it.
	clear, err := board.NewBoardFen("4k3/8/8/8/4p3/8/8/4R1K1 w - - 0 1")
	require.NoError(t, err)
	revealed := RevealedAttacks(clear, SqE4, clear.OccupiedAll(), White)
	assert.NotEqual(t, Bitboard(0), revealed&SqE1.Bb())

	// same rook but with a white knight on e3 blocking the file: the
	// rook must not be found.
	blocked, err := board.NewBoardFen("4k3/8/8/8/4p3/4N3/8/4R1K1 w - - 0 1")
	require.NoError(t, err)
	revealedBlocked := RevealedAttacks(blocked, SqE4, blocked.OccupiedAll(), White)
	assert.Equal(t, Bitboard(0), revealedBlocked&SqE1.Bb())
}
