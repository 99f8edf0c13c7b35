/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package config

// benchConfiguration holds the defaults cmd/bench falls back to when not
// overridden on the command line.
type benchConfiguration struct {
	DefaultDepth int
	Workers      int
}

// sets defaults which might be overwritten by config file
func init() {
	Settings.Bench.DefaultDepth = 5
	Settings.Bench.Workers = 4
}

func setupBench() {
	if Settings.Bench.DefaultDepth <= 0 {
		Settings.Bench.DefaultDepth = 5
	}
	if Settings.Bench.Workers <= 0 {
		Settings.Bench.Workers = 4
	}
}

// BenchPosition is one entry of the standard benchmark suite: a fixed set
// of opening/middlegame/endgame FENs with a depth picked so each position
// finishes in a reasonable time.
type BenchPosition struct {
	Fen          string
	Description  string
	DefaultDepth int
}

// BenchPositions is the standard benchmark suite, a mix of opening,
// middlegame and endgame positions.
var BenchPositions = []BenchPosition{
	{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "Starting position", 5},
	{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", "Kiwipete", 4},
	{"r1bqk1nr/pppp1ppp/2n5/2b1p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4", "Italian Game", 4},
	{"r1bqkbnr/pppp1ppp/2n5/1B2p3/4P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 3 3", "Spanish", 4},
	{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", "Endgame", 5},
	{"8/pp3p1k/2p2q1p/3r1P2/5R2/7P/P1P1QP2/7K b - - 0 1", "Queen endgame", 4},
	{"r1bq1rk1/pp2nppp/4n3/3ppP2/1b1P4/3BP3/PP2N1PP/R1BQNRK1 b - - 1 8", "Closed center", 4},
	{"4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", "KP vs K", 6},
	{"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10", "Complex middlegame", 3},
	{"8/k7/3p4/p2P1p2/P2P1P2/8/8/K7 w - - 0 1", "Pawn endgame", 5},
	{"r2q1rk1/ppp2ppp/2n1bn2/2bpp3/3P4/3QPN2/PPP1BPPP/R1B1K2R w KQ - 0 8", "Ruy Lopez", 4},
	{"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", "Position 5", 4},
}
