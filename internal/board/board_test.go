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

// External test package (board_test, not board) so it can import movegen
// to drive legal moves without creating an import cycle (movegen imports
// board).
package board_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasparik/chesscore/internal/board"
	"github.com/kasparik/chesscore/internal/movegen"
	. "github.com/kasparik/chesscore/internal/types"
)

// assertConsistent checks invariants 1-3 of spec.md §3: mailbox/bitboard
// agreement, occupancy derivation, and exactly one king per color.
func assertConsistent(t *testing.T, b *board.Board) {
	t.Helper()
	var seen [ColorLength]Bitboard
	var kingCount [ColorLength]int
	for sq := SqA1; sq < SqLength; sq++ {
		pc := b.GetPiece(sq)
		if pc == PieceNone {
			continue
		}
		c := pc.ColorOf()
		pt := pc.TypeOf()
		assert.Truef(t, b.PiecesBb(c, pt).Has(sq), "mailbox says %s on %s but bitboard disagrees", pc, sq)
		seen[c].PushSquare(sq)
		if pt == King {
			kingCount[c]++
			assert.Equal(t, sq, b.KingSquare(c))
		}
	}
	for c := White; c <= Black; c++ {
		assert.Equal(t, seen[c], b.OccupiedBb(c))
		assert.Equal(t, 1, kingCount[c], "exactly one king of color %s", c)
	}
	assert.Equal(t, b.OccupiedBb(White)|b.OccupiedBb(Black), b.OccupiedAll())
}

// assertZobristFromScratch re-derives the zobrist key by round-tripping
// through FEN (setupBoard always rebuilds the key from scratch) and checks
// it matches the incrementally maintained one.
func assertZobristFromScratch(t *testing.T, b *board.Board) {
	t.Helper()
	fromScratch, err := board.NewBoardFen(b.Fen())
	require.NoError(t, err)
	assert.Equal(t, fromScratch.ZobristKey(), b.ZobristKey(), "incremental zobrist diverged from a from-scratch recompute")
}

func TestStartPositionInvariants(t *testing.T) {
	b := board.NewBoard()
	assertConsistent(t, b)
	assertZobristFromScratch(t, b)
}

func TestMakeUnmakeRestoresEveryField(t *testing.T) {
	positions := []string{
		board.StartFen,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"4k3/P7/8/8/8/8/8/4K3 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fen := range positions {
		b, err := board.NewBoardFen(fen)
		require.NoError(t, err)
		before := b.Fen()
		beforeKey := b.ZobristKey()

		mg := movegen.NewMoveGen()
		moves := mg.GenerateLegalMoves(b, movegen.GenAll)
		for i := 0; i < moves.Len(); i++ {
			m := moves.At(i)
			undo := b.Make(m)
			b.Unmake(m, undo)
			assert.Equalf(t, before, b.Fen(), "fen=%q move=%s: Make/Unmake did not restore position", fen, m.StringUci())
			assert.Equalf(t, beforeKey, b.ZobristKey(), "fen=%q move=%s: zobrist key not restored", fen, m.StringUci())
		}
	}
}

func TestMakeUnmakeStressRandomSequence(t *testing.T) {
	b := board.NewBoard()
	startKey := b.ZobristKey()
	startFen := b.Fen()

	rng := rand.New(rand.NewSource(42))
	mg := movegen.NewMoveGen()

	type played struct {
		move Move
		undo board.UndoInfo
	}
	var stack []played

	for i := 0; i < 1000; i++ {
		moves := mg.GenerateLegalMoves(b, movegen.GenAll)
		if moves.Len() == 0 {
			break
		}
		m := moves.At(rng.Intn(moves.Len()))
		undo := b.Make(m)
		stack = append(stack, played{m, undo})
		assertConsistent(t, b)
	}

	for i := len(stack) - 1; i >= 0; i-- {
		b.Unmake(stack[i].move, stack[i].undo)
	}

	assert.Equal(t, startFen, b.Fen())
	assert.Equal(t, startKey, b.ZobristKey())
}

func TestMakeUnmakeStressPromotionHeavy(t *testing.T) {
	// both sides have a pawn one step from promoting, biasing the random
	// walk toward promotion/capture-promotion paths.
	fen := "4k3/1P6/8/8/8/8/p7/4K3 b - - 0 1"
	b, err := board.NewBoardFen(fen)
	require.NoError(t, err)
	startKey := b.ZobristKey()
	startFen := b.Fen()

	rng := rand.New(rand.NewSource(7))
	mg := movegen.NewMoveGen()

	type played struct {
		move Move
		undo board.UndoInfo
	}
	var stack []played

	for i := 0; i < 200; i++ {
		moves := mg.GenerateLegalMoves(b, movegen.GenAll)
		if moves.Len() == 0 {
			break
		}
		m := moves.At(rng.Intn(moves.Len()))
		undo := b.Make(m)
		stack = append(stack, played{m, undo})
		assertConsistent(t, b)
	}
	for i := len(stack) - 1; i >= 0; i-- {
		b.Unmake(stack[i].move, stack[i].undo)
	}

	assert.Equal(t, startFen, b.Fen())
	assert.Equal(t, startKey, b.ZobristKey())
}

func TestDoublePawnPushSetsReachableEnPassantOnly(t *testing.T) {
	// black pawn on d7 can meet a white pawn on e5 adjacent after d7d5, so
	// the ep square is reachable and must be recorded.
	b, err := board.NewBoardFen("4k3/3p4/8/4P3/8/8/8/4K3 b - - 0 1")
	require.NoError(t, err)
	mg := movegen.NewMoveGen()
	m, err := movegen.ParseUciMove(b, "d7d5")
	require.NoError(t, err)
	undo := b.Make(m)
	assert.Equal(t, SqD6, b.EnPassantSquare())
	b.Unmake(m, undo)
	_ = mg
}

func TestDoublePawnPushWithNoAdjacentEnemyPawnLeavesEpUnset(t *testing.T) {
	// no black pawn anywhere near the e-file: e2e4 has no reachable capture.
	b := board.NewBoard()
	m, err := movegen.ParseUciMove(b, "e2e4")
	require.NoError(t, err)
	b.Make(m)
	assert.Equal(t, SqNone, b.EnPassantSquare())
}

func TestNonPawnPushClearsEnPassant(t *testing.T) {
	b, err := board.NewBoardFen("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	require.NoError(t, err)
	require.Equal(t, SqD6, b.EnPassantSquare())
	m := CreateMove(SqE1, SqE2, Quiet)
	b.Make(m)
	assert.Equal(t, SqNone, b.EnPassantSquare())
}

func TestHalfmoveClockResetsOnPawnMoveOrCapture(t *testing.T) {
	b := board.NewBoard()
	quiet := CreateMove(SqB1, SqC3, Quiet)
	b.Make(quiet)
	assert.Equal(t, 1, b.HalfmoveClock())

	pawnPush := CreateMove(SqE7, SqE5, DoublePawnPush)
	b.Make(pawnPush)
	assert.Equal(t, 0, b.HalfmoveClock())
}

func TestCastlingRightsAreMonotoneNonIncreasing(t *testing.T) {
	b, err := board.NewBoardFen("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	mg := movegen.NewMoveGen()

	prev := b.CastlingRights()
	for i := 0; i < 40; i++ {
		moves := mg.GenerateLegalMoves(b, movegen.GenAll)
		if moves.Len() == 0 {
			break
		}
		m := moves.At(0)
		b.Make(m)
		cur := b.CastlingRights()
		assert.Equal(t, cur, cur&prev, "castling rights must only shrink, never regrow, during play")
		prev = cur
	}
}

func TestRookCaptureOnOriginalSquareClearsOpponentRight(t *testing.T) {
	// white bishop takes the black rook on a8, removing black's queenside
	// castling right even though no black king or rook move occurred.
	b, err := board.NewBoardFen("r3k3/8/8/8/8/8/8/B3K3 w q - 0 1")
	require.NoError(t, err)
	m := CreateMove(SqA1, SqA8, Capture)
	b.Make(m)
	assert.False(t, b.CastlingRights().Has(CastlingBlackOOO))
}

func TestIsAttackedIndependentOfSideToMove(t *testing.T) {
	fenWhite := "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"
	fenBlack := "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1"
	bw, err := board.NewBoardFen(fenWhite)
	require.NoError(t, err)
	bb, err := board.NewBoardFen(fenBlack)
	require.NoError(t, err)
	for sq := SqA1; sq <= SqH8; sq++ {
		assert.Equal(t, bw.IsAttacked(sq, White), bb.IsAttacked(sq, White))
		assert.Equal(t, bw.IsAttacked(sq, Black), bb.IsAttacked(sq, Black))
	}
}

func TestFenRoundTrip(t *testing.T) {
	fens := []string{
		board.StartFen,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"4k3/8/8/8/8/8/8/4K3 w - - 0 1",
	}
	for _, fen := range fens {
		b, err := board.NewBoardFen(fen)
		require.NoError(t, err)
		assert.Equal(t, fen, b.Fen())
	}
}

func TestMalformedFenReturnsFenError(t *testing.T) {
	cases := map[string]string{
		"empty":             "",
		"bad piece letter":  "rnbqkbnx/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"bad active color":  "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"bad castling":      "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w ZZZZ - 0 1",
		"bad ep square":     "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1",
		"bad halfmove":      "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1",
		"short rank":        "rnbqkbn/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	}
	for name, fen := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := board.NewBoardFen(fen)
			require.Error(t, err)
			_, ok := err.(*board.FenError)
			assert.True(t, ok, "expected a *board.FenError, got %T", err)
		})
	}
}
