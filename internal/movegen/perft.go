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

	"github.com/kasparik/chesscore/internal/board"
	. "github.com/kasparik/chesscore/internal/types"
)

var out = message.NewPrinter(language.German)

// Perft counts the leaf nodes of a fixed-depth search tree rooted at a
// position, along with a per-move-kind breakdown. It is the standard
// correctness harness for a move generator: wrong counts at any depth
// point at a concrete generation or make/unmake bug.
//
// Each recursion depth gets its own MoveGen (mgList, indexed by remaining
// depth) so that generating moves several plies down never overwrites the
// move list an ancestor frame is still iterating - a single shared
// MoveGen reused across the whole recursion would alias its buffer across
// depths and corrupt the in-progress loop.
type Perft struct {
	Nodes            uint64
	CheckCounter     uint64
	CheckMateCounter uint64
	CaptureCounter   uint64
	EnPassantCounter uint64
	CastleCounter    uint64
	PromotionCounter uint64

	stopFlag bool
	mgList   []*MoveGen
	mateMg   *MoveGen
}

// NewPerft creates a Perft instance ready for use.
func NewPerft() *Perft {
	return &Perft{mateMg: NewMoveGen()}
}

// Stop requests that a running StartPerft/StartPerftMulti return as soon as
// the current subtree finishes, rather than continuing to the next depth
// or root move.
func (p *Perft) Stop() {
	p.stopFlag = true
}

func (p *Perft) resetCounters() {
	p.Nodes = 0
	p.CheckCounter = 0
	p.CheckMateCounter = 0
	p.CaptureCounter = 0
	p.EnPassantCounter = 0
	p.CastleCounter = 0
	p.PromotionCounter = 0
}

// mgAt returns the MoveGen reserved for the given remaining depth,
// allocating it on first use.
func (p *Perft) mgAt(depth int) *MoveGen {
	for len(p.mgList) <= depth {
		p.mgList = append(p.mgList, NewMoveGen())
	}
	return p.mgList[depth]
}

// StartPerftMulti runs StartPerft for every depth from startDepth to
// endDepth inclusive, printing a line per depth.
func (p *Perft) StartPerftMulti(fen string, startDepth, endDepth int) {
	for d := startDepth; d <= endDepth && !p.stopFlag; d++ {
		p.StartPerft(fen, d)
	}
}

// StartPerft runs a single fixed-depth perft from fen and prints the node
// count, per-move-kind breakdown, elapsed time and nodes per second.
func (p *Perft) StartPerft(fen string, depth int) {
	p.stopFlag = false
	p.resetCounters()

	b, err := board.NewBoardFen(fen)
	if err != nil {
		log.Errorf("perft: invalid fen %q: %s", fen, err)
		return
	}

	start := time.Now()
	if depth > 0 {
		p.miniMax(depth, b)
	} else {
		p.Nodes = 1
	}
	elapsed := time.Since(start)

	_, _ = out.Printf(
		"Perft depth %d: nodes=%d captures=%d ep=%d castles=%d promotions=%d checks=%d mates=%d time=%s nps=%d\n",
		depth, p.Nodes, p.CaptureCounter, p.EnPassantCounter, p.CastleCounter, p.PromotionCounter,
		p.CheckCounter, p.CheckMateCounter, elapsed, nps(p.Nodes, elapsed))
}

// miniMax walks the tree below b to the given remaining depth, accumulating
// leaf statistics into p.
func (p *Perft) miniMax(depth int, b *board.Board) {
	mg := p.mgAt(depth)
	moves := mg.GeneratePseudoLegalMoves(b, GenAll)

	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if !b.IsLegalMove(m) {
			continue
		}

		if depth == 1 {
			p.countLeaf(b, m)
			if p.stopFlag {
				return
			}
			continue
		}

		undo := b.Make(m)
		p.miniMax(depth-1, b)
		b.Unmake(m, undo)

		if p.stopFlag {
			return
		}
	}
}

// countLeaf records statistics for move m played from b. b is restored to
// its original state before this call returns.
func (p *Perft) countLeaf(b *board.Board, m Move) {
	p.Nodes++
	if b.IsCapturingMove(m) {
		p.CaptureCounter++
	}
	if m.IsEnPassant() {
		p.EnPassantCounter++
	}
	if m.IsCastling() {
		p.CastleCounter++
	}
	if m.IsPromotion() {
		p.PromotionCounter++
	}
	if b.GivesCheck(m) {
		p.CheckCounter++
		undo := b.Make(m)
		if !p.mateMg.HasLegalMove(b) {
			p.CheckMateCounter++
		}
		b.Unmake(m, undo)
	}
}

// DivideEntry is one root move's subtree node count, as reported by Divide.
type DivideEntry struct {
	Move  Move
	Nodes uint64
}

// Divide runs perft to depth from b and returns, for every legal root
// move, the number of leaf nodes in that move's subtree. Divide is the
// standard tool for isolating which root move a perft mismatch comes
// from: compare each entry against a reference engine's divide output and
// recurse into the first move that disagrees.
func Divide(b *board.Board, depth int) []DivideEntry {
	root := NewMoveGen()
	moves := root.GenerateLegalMoves(b, GenAll)

	counter := &nodeCounter{}
	entries := make([]DivideEntry, 0, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		undo := b.Make(m)
		nodes := counter.count(depth-1, b)
		b.Unmake(m, undo)
		entries = append(entries, DivideEntry{Move: m, Nodes: nodes})
	}
	return entries
}

// nodeCounter is Divide's bare-bones equivalent of Perft.miniMax: it only
// needs a leaf count per subtree, not the full statistics breakdown, so it
// keeps its own per-depth MoveGen list instead of carrying a whole Perft.
type nodeCounter struct {
	mgList []*MoveGen
}

func (c *nodeCounter) mgAt(depth int) *MoveGen {
	for len(c.mgList) <= depth {
		c.mgList = append(c.mgList, NewMoveGen())
	}
	return c.mgList[depth]
}

func (c *nodeCounter) count(depth int, b *board.Board) uint64 {
	if depth <= 0 {
		return 1
	}
	mg := c.mgAt(depth)
	moves := mg.GeneratePseudoLegalMoves(b, GenAll)

	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if !b.IsLegalMove(m) {
			continue
		}
		undo := b.Make(m)
		nodes += c.count(depth-1, b)
		b.Unmake(m, undo)
	}
	return nodes
}

func nps(nodes uint64, duration time.Duration) uint64 {
	return uint64(int64(nodes) * time.Second.Nanoseconds() / (duration.Nanoseconds() + 1))
}
