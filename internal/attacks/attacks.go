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

// Package attacks computes a read-only attack/mobility snapshot for a
// board.Board: who attacks what, and how many legal-ish destination
// squares each side has. It is a derived view only - Make/Unmake and the
// move generator never consult it.
package attacks

import (
	"github.com/kasparik/chesscore/internal/board"
	"github.com/kasparik/chesscore/internal/logging"
	. "github.com/kasparik/chesscore/internal/types"
)

var log = logging.GetLog("attacks")

// BoardAttacks holds per-color/per-square attack and mobility data for a
// single board.Board, keyed by that board's zobrist key so recomputing
// against an unchanged position is a no-op.
type BoardAttacks struct {
	Zobrist board.Key

	// From[c][sq] is the set of squares a non-pawn piece of color c on sq
	// attacks; pawn attacks are only in Pawns, PawnsDouble, Piece and All.
	From [ColorLength][SqLength]Bitboard
	// To[c][sq] is the set of squares from which a non-pawn piece of color
	// c attacks sq.
	To [ColorLength][SqLength]Bitboard
	// All[c] is the union of every square color c attacks.
	All [ColorLength]Bitboard
	// Piece[c][pt] is the union of attacks by color c's pieces of type pt.
	Piece [ColorLength][PtLength]Bitboard
	// Mobility[c] counts color c's attacked squares not occupied by its
	// own pieces, summed over all its non-pawn pieces.
	Mobility [ColorLength]int
	// Pawns[c] is the set of squares color c's pawns attack.
	Pawns [ColorLength]Bitboard
	// PawnsDouble[c] is the set of squares attacked by two pawns of color c.
	PawnsDouble [ColorLength]Bitboard
}

// NewBoardAttacks creates an empty, unkeyed BoardAttacks.
func NewBoardAttacks() *BoardAttacks {
	return &BoardAttacks{}
}

// Clear resets every field without reallocating, for reuse across calls.
func (a *BoardAttacks) Clear() {
	*a = BoardAttacks{}
}

// Compute fills a from b. If b's zobrist key matches what was already
// computed, Compute is a no-op.
func (a *BoardAttacks) Compute(b *board.Board) {
	if a.Zobrist != 0 && b.ZobristKey() == a.Zobrist {
		log.Debugf("attacks already computed for zobrist %x", a.Zobrist)
		return
	}
	a.Clear()
	a.Zobrist = b.ZobristKey()
	a.nonPawnAttacks(b)
	a.pawnAttacks(b)
}

var nonPawnTypes = [5]PieceType{King, Knight, Bishop, Rook, Queen}

func (a *BoardAttacks) nonPawnAttacks(b *board.Board) {
	occupiedAll := b.OccupiedAll()
	for c := White; c <= Black; c++ {
		ownPieces := b.OccupiedBb(c)
		for _, pt := range nonPawnTypes {
			pieces := b.PiecesBb(c, pt)
			for pieces != 0 {
				fromSq := pieces.PopLsb()
				atk := GetAttacksBb(pt, fromSq, occupiedAll)
				a.From[c][fromSq] = atk
				a.Piece[c][pt] |= atk
				a.All[c] |= atk
				tmp := atk
				for tmp != 0 {
					toSq := tmp.PopLsb()
					a.To[c][toSq].PushSquare(fromSq)
				}
				a.Mobility[c] += (atk &^ ownPieces).PopCount()
			}
		}
	}
}

func (a *BoardAttacks) pawnAttacks(b *board.Board) {
	for c := White; c <= Black; c++ {
		pawns := b.PiecesBb(c, Pawn)
		west := ShiftBitboard(pawns, c.MoveDirection()+Direction(West))
		east := ShiftBitboard(pawns, c.MoveDirection()+Direction(East))
		a.Pawns[c] = west | east
		a.PawnsDouble[c] = west & east
		a.Piece[c][Pawn] = a.Pawns[c]
		a.All[c] |= a.Pawns[c]
	}
}

// AttacksTo returns every square from which a piece of color by attacks
// sq on the position held by b. When sq is the current en-passant target
// and a pawn of color by can take en passant, the square of the pawn that
// would be captured is added to the result as well.
func AttacksTo(b *board.Board, sq Square, by Color) Bitboard {
	occupiedAll := b.OccupiedAll()
	result := (GetPawnAttacks(by.Flip(), sq) & b.PiecesBb(by, Pawn)) |
		(GetAttacksBb(Knight, sq, occupiedAll) & b.PiecesBb(by, Knight)) |
		(GetAttacksBb(King, sq, occupiedAll) & b.PiecesBb(by, King)) |
		(GetAttacksBb(Rook, sq, occupiedAll) & (b.PiecesBb(by, Rook) | b.PiecesBb(by, Queen))) |
		(GetAttacksBb(Bishop, sq, occupiedAll) & (b.PiecesBb(by, Bishop) | b.PiecesBb(by, Queen)))

	if ep := b.EnPassantSquare(); ep != SqNone && ep == sq {
		pawnSq := ep.To(by.Flip().MoveDirection())
		if pawnSq.NeighbourFilesMask()&pawnSq.RankOf().Bb()&b.PiecesBb(by, Pawn) != 0 {
			result |= pawnSq.Bb()
		}
	}
	return result
}

// RevealedAttacks returns the sliding attacks of color by's rooks/bishops/
// queens against sq once occupied no longer contains whatever piece was
// removed to produce it - the attacks a capture or an en-passant removal
// uncovers.
func RevealedAttacks(b *board.Board, sq Square, occupied Bitboard, by Color) Bitboard {
	return (GetAttacksBb(Rook, sq, occupied) & (b.PiecesBb(by, Rook) | b.PiecesBb(by, Queen))) |
		(GetAttacksBb(Bishop, sq, occupied) & (b.PiecesBb(by, Bishop) | b.PiecesBb(by, Queen)))
}
