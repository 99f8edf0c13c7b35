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

// perftCase is one depth/expected-count row of a perft regression table.
type perftCase struct {
	depth            int
	nodes            uint64
	captures         uint64
	enPassant        uint64
	castles          uint64
	promotions       uint64
	checks           uint64
	mates            uint64
}

func runPerftTable(t *testing.T, fen string, cases []perftCase) {
	t.Helper()
	for _, c := range cases {
		p := NewPerft()
		b, err := board.NewBoardFen(fen)
		require.NoError(t, err)
		p.miniMax(c.depth, b)
		assert.Equalf(t, c.nodes, p.Nodes, "fen=%q depth=%d nodes", fen, c.depth)
		if c.captures > 0 {
			assert.Equalf(t, c.captures, p.CaptureCounter, "fen=%q depth=%d captures", fen, c.depth)
		}
		if c.enPassant > 0 {
			assert.Equalf(t, c.enPassant, p.EnPassantCounter, "fen=%q depth=%d ep", fen, c.depth)
		}
		if c.castles > 0 {
			assert.Equalf(t, c.castles, p.CastleCounter, "fen=%q depth=%d castles", fen, c.depth)
		}
		if c.promotions > 0 {
			assert.Equalf(t, c.promotions, p.PromotionCounter, "fen=%q depth=%d promotions", fen, c.depth)
		}
		if c.checks > 0 {
			assert.Equalf(t, c.checks, p.CheckCounter, "fen=%q depth=%d checks", fen, c.depth)
		}
		if c.mates > 0 {
			assert.Equalf(t, c.mates, p.CheckMateCounter, "fen=%q depth=%d mates", fen, c.depth)
		}
	}
}

func TestStandardPerft(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	runPerftTable(t, board.StartFen, []perftCase{
		{depth: 1, nodes: 20},
		{depth: 2, nodes: 400},
		{depth: 3, nodes: 8902, captures: 34, checks: 12},
		{depth: 4, nodes: 197281, captures: 1576, enPassant: 0, checks: 469, mates: 8},
		{depth: 5, nodes: 4865609, captures: 82719, enPassant: 258, checks: 27351, mates: 347},
		{depth: 6, nodes: 119060324, captures: 2812008, enPassant: 5248, checks: 809099, mates: 10828},
	})
}

func TestKiwipetePerft(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	runPerftTable(t, fen, []perftCase{
		{depth: 1, nodes: 48, captures: 8, castles: 2, checks: 0},
		{depth: 2, nodes: 2039, captures: 351, enPassant: 1, castles: 91, checks: 3},
		{depth: 3, nodes: 97862, captures: 17102, enPassant: 45, castles: 3162, promotions: 0, checks: 993, mates: 1},
		{depth: 4, nodes: 4085603, captures: 757163, enPassant: 1929, castles: 128013, promotions: 15172, checks: 25523, mates: 43},
	})
}

func TestMirrorPerft(t *testing.T) {
	white := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	black := "r3k2r/pppbbppp/2n2q1P/1P2p3/3pn3/BN2PNP1/P1PPQPB1/R3K2R b KQkq - 0 1"
	for depth := 1; depth <= 3; depth++ {
		pw := NewPerft()
		bw, err := board.NewBoardFen(white)
		require.NoError(t, err)
		pw.miniMax(depth, bw)

		pb := NewPerft()
		bb, err := board.NewBoardFen(black)
		require.NoError(t, err)
		pb.miniMax(depth, bb)

		assert.Equalf(t, pw.Nodes, pb.Nodes, "mirrored position diverged at depth %d", depth)
	}
}

func TestPos3PerftEnPassantRevealsCheck(t *testing.T) {
	// the classic en-passant-discloses-a-rook-check position: taking en
	// passant on b5/b4 opens the fifth rank to the black king.
	fen := "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	runPerftTable(t, fen, []perftCase{
		{depth: 1, nodes: 14},
		{depth: 2, nodes: 191},
		{depth: 3, nodes: 2812},
		{depth: 4, nodes: 43238},
		{depth: 5, nodes: 674624},
	})
}

func TestPos4PerftCastlingAndPromotion(t *testing.T) {
	fen := "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
	runPerftTable(t, fen, []perftCase{
		{depth: 1, nodes: 6},
		{depth: 2, nodes: 264},
		{depth: 3, nodes: 9467},
		{depth: 4, nodes: 422333},
	})
}

func TestPos6Perft(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	fen := "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 1"
	runPerftTable(t, fen, []perftCase{
		{depth: 1, nodes: 46},
		{depth: 2, nodes: 2079},
		{depth: 3, nodes: 89890},
	})
}

func TestPromotionPositionLegalMoveCount(t *testing.T) {
	b, err := board.NewBoardFen("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	mg := NewMoveGen()
	moves := mg.GenerateLegalMoves(b, GenAll)
	assert.Equal(t, 9, moves.Len())
}

func TestBlockedPromotionLegalMoveCount(t *testing.T) {
	b, err := board.NewBoardFen("r3k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	mg := NewMoveGen()
	moves := mg.GenerateLegalMoves(b, GenAll)
	assert.Equal(t, 5, moves.Len())
}

func TestCastlingThroughCheckExcluded(t *testing.T) {
	// a black rook on f7 rakes down the f-file and covers f1, so white's
	// kingside castle (which passes the king through f1) must not be legal
	// even though both squares between king and rook are empty.
	b, err := board.NewBoardFen("r3k2r/5r2/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	mg := NewMoveGen()
	moves := mg.GenerateLegalMoves(b, GenAll)
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		assert.Falsef(t, m.Flag() == KingCastle, "kingside castle must be illegal: %s", m.StringUci())
	}
}

func TestDivideSumsToPerftNodes(t *testing.T) {
	b, err := board.NewBoardFen(board.StartFen)
	require.NoError(t, err)

	p := NewPerft()
	p.miniMax(4, b)

	entries := Divide(b, 4)
	var sum uint64
	for _, e := range entries {
		sum += e.Nodes
	}
	assert.Equal(t, p.Nodes, sum)
	assert.Equal(t, 20, len(entries))
}
