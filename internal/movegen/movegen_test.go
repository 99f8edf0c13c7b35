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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasparik/chesscore/internal/board"
	. "github.com/kasparik/chesscore/internal/types"
)

func containsMove(moves []Move, from, to Square) bool {
	for _, m := range moves {
		if m.From() == from && m.To() == to {
			return true
		}
	}
	return false
}

func legalMoveList(t *testing.T, fen string, mode GenMode) []Move {
	t.Helper()
	b, err := board.NewBoardFen(fen)
	require.NoError(t, err)
	mg := NewMoveGen()
	ms := mg.GenerateLegalMoves(b, mode)
	out := make([]Move, ms.Len())
	for i := 0; i < ms.Len(); i++ {
		out[i] = ms.At(i)
	}
	return out
}

func TestStartPositionHas20LegalMoves(t *testing.T) {
	moves := legalMoveList(t, board.StartFen, GenAll)
	assert.Len(t, moves, 20)
}

func TestPinnedPieceCannotMoveOffTheLine(t *testing.T) {
	// white king e1, white bishop e2 pinned by a black rook on e8 down the
	// e-file: the bishop has no legal move at all.
	b, err := board.NewBoardFen("4r1k1/8/8/8/8/8/4B3/4K3 w - - 0 1")
	require.NoError(t, err)
	mg := NewMoveGen()
	moves := mg.GenerateLegalMoves(b, GenAll)
	for i := 0; i < moves.Len(); i++ {
		assert.NotEqualf(t, SqE2, moves.At(i).From(), "pinned bishop must not move: %s", moves.At(i).StringUci())
	}
}

func TestPinnedPieceCanMoveAlongThePinLine(t *testing.T) {
	// white king e1, white rook e2 pinned by a black rook on e8: the rook
	// can still shuffle along the e-file, including capturing the pinner.
	moves := legalMoveList(t, "4r1k1/8/8/8/8/8/4R3/4K3 w - - 0 1", GenAll)
	assert.True(t, containsMove(moves, SqE2, SqE8))
	assert.True(t, containsMove(moves, SqE2, SqE3))
}

func TestEnPassantCaptureRevealsCheckIsIllegal(t *testing.T) {
	// white king a5, white pawn b5, black pawn c5 (just double pushed,
	// en passant target c6), black rook h5: capturing en passant empties
	// both b5 and c5, opening the entire fifth rank to the rook.
	fen := "4k3/8/8/KPp4r/8/8/8/8 w - c6 0 1"
	b, err := board.NewBoardFen(fen)
	require.NoError(t, err)

	mg := NewMoveGen()
	pseudo := mg.GeneratePseudoLegalMoves(b, GenAll)
	epFound := false
	for i := 0; i < pseudo.Len(); i++ {
		if pseudo.At(i).IsEnPassant() {
			epFound = true
		}
	}
	assert.True(t, epFound, "en passant capture must be pseudo-legal")

	legal := mg.GenerateLegalMoves(b, GenAll)
	for i := 0; i < legal.Len(); i++ {
		assert.False(t, legal.At(i).IsEnPassant(), "en passant capture must be filtered as illegal")
	}
}

func TestEnPassantCaptureAvailableWhenNotPinned(t *testing.T) {
	b, err := board.NewBoardFen("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	require.NoError(t, err)
	mg := NewMoveGen()
	moves := mg.GenerateLegalMoves(b, GenAll)
	found := false
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if m.IsEnPassant() {
			found = true
			assert.Equal(t, SqE5, m.From())
			assert.Equal(t, SqD6, m.To())
		}
	}
	assert.True(t, found)
}

func TestDiscoveredCheckDetected(t *testing.T) {
	// white rook a1, white bishop b1 (blocker), black king e1... instead
	// use a clean discovered-check shape: white rook a4, white knight b4
	// blocking the fourth rank, black king e4. Moving the knight away
	// uncovers the rook's check.
	b, err := board.NewBoardFen("8/8/8/8/RN2k3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	m := CreateMove(SqB4, SqD5, Quiet)
	assert.True(t, b.GivesCheck(m))
}

func TestCastlingGeneratedWhenPathClear(t *testing.T) {
	moves := legalMoveList(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", GenAll)
	assert.True(t, containsMove(moves, SqE1, SqG1))
	assert.True(t, containsMove(moves, SqE1, SqC1))
}

func TestCastlingNotGeneratedWithoutRights(t *testing.T) {
	moves := legalMoveList(t, "r3k2r/8/8/8/8/8/8/R3K2R w - - 0 1", GenAll)
	assert.False(t, containsMove(moves, SqE1, SqG1))
	assert.False(t, containsMove(moves, SqE1, SqC1))
}

func TestParseUciMovePromotion(t *testing.T) {
	b, err := board.NewBoardFen("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	m, err := ParseUciMove(b, "a7a8q")
	require.NoError(t, err)
	assert.Equal(t, SqA7, m.From())
	assert.Equal(t, SqA8, m.To())
	assert.Equal(t, Queen, m.PromotionType())
}

func TestParseUciMoveRejectsIllegalSyntax(t *testing.T) {
	b := board.NewBoard()
	_, err := ParseUciMove(b, "e2e9")
	assert.Error(t, err)
}

func TestParseUciMoveRejectsUnplayableMove(t *testing.T) {
	b := board.NewBoard()
	_, err := ParseUciMove(b, "a1a8")
	assert.Error(t, err)
}

func TestHasLegalMoveFalseOnCheckmate(t *testing.T) {
	// corner back-rank mate: black king h8 has no square on the rank past
	// it to escape to, and its own pawns wall off the seventh rank.
	b, err := board.NewBoardFen("R6k/5ppp/8/8/8/8/8/6K1 b - - 0 1")
	require.NoError(t, err)
	mg := NewMoveGen()
	assert.False(t, mg.HasLegalMove(b))
	assert.True(t, b.HasCheck())
}
