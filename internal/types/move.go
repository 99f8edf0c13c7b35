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

package types

import "fmt"

// Move is a compact 16 bit encoding of a chess move:
//  bit 0-5:   to square   (0-63)
//  bit 6-11:  from square (0-63)
//  bit 12-15: flag (see MoveFlag)
// There is no embedded score or move-ordering payload - a Move is a pure
// description of "from, to and what kind of move", nothing else.
type Move uint16

// MoveFlag occupies the top four bits of a Move and distinguishes quiet
// moves from captures, pawn double pushes, castling and the eight
// promotion variants (plain and capturing, for each of N/B/R/Q).
type MoveFlag uint8

// MoveFlag constants, following the common chess-programming-wiki
// 4 bit encoding so that bit 3 always marks a promotion and bit 2
// always marks a capture.
const (
	Quiet              MoveFlag = 0b0000
	DoublePawnPush     MoveFlag = 0b0001
	KingCastle         MoveFlag = 0b0010
	QueenCastle        MoveFlag = 0b0011
	Capture            MoveFlag = 0b0100
	EnPassantCapture   MoveFlag = 0b0101
	PromoKnight        MoveFlag = 0b1000
	PromoBishop        MoveFlag = 0b1001
	PromoRook          MoveFlag = 0b1010
	PromoQueen         MoveFlag = 0b1011
	PromoCaptureKnight MoveFlag = 0b1100
	PromoCaptureBishop MoveFlag = 0b1101
	PromoCaptureRook   MoveFlag = 0b1110
	PromoCaptureQueen  MoveFlag = 0b1111
)

// MoveNone is the zero Move and never describes a legal move (from==to==SqA1
// with a Quiet flag); generators never emit it and callers use it as a
// sentinel for "no move found".
const MoveNone Move = 0

const (
	moveToMask    = 0x003F
	moveFromShift = 6
	moveFromMask  = 0x0FC0
	moveFlagShift = 12
)

// CreateMove builds a Move from its three components.
func CreateMove(from, to Square, flag MoveFlag) Move {
	return Move(uint16(to)&moveToMask | uint16(from)<<moveFromShift | uint16(flag)<<moveFlagShift)
}

// To returns the destination square of the move.
func (m Move) To() Square {
	return Square(m & moveToMask)
}

// From returns the origin square of the move.
func (m Move) From() Square {
	return Square((m & moveFromMask) >> moveFromShift)
}

// Flag returns the MoveFlag of the move.
func (m Move) Flag() MoveFlag {
	return MoveFlag(m >> moveFlagShift)
}

// IsCapture returns true if the move flag marks a capture, including
// en passant captures and capturing promotions.
func (m Move) IsCapture() bool {
	return m.Flag()&0b0100 != 0
}

// IsPromotion returns true if the move flag marks a pawn promotion,
// plain or capturing.
func (m Move) IsPromotion() bool {
	return m.Flag()&0b1000 != 0
}

// IsEnPassant returns true if the move is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Flag() == EnPassantCapture
}

// IsCastling returns true if the move is a kingside or queenside castle.
func (m Move) IsCastling() bool {
	return m.Flag() == KingCastle || m.Flag() == QueenCastle
}

// IsDoublePawnPush returns true if the move is a pawn's initial two
// square advance.
func (m Move) IsDoublePawnPush() bool {
	return m.Flag() == DoublePawnPush
}

// promoTypeOf maps the four promotion flag values (masking off the
// capture bit) to the promoted-to piece type.
var promoTypeOf = [4]PieceType{Knight, Bishop, Rook, Queen}

// PromotionType returns the piece type a promotion move promotes to.
// Calling this on a non-promoting move returns PtNone.
func (m Move) PromotionType() PieceType {
	if !m.IsPromotion() {
		return PtNone
	}
	return promoTypeOf[m.Flag()&0b0011]
}

// IsValid does a minimal sanity check: from and to must differ and both
// must be valid squares. It does not check legality against any board.
func (m Move) IsValid() bool {
	return m != MoveNone && m.From() != m.To() && m.From().IsValid() && m.To().IsValid()
}

var promoFlagChar = [4]string{"n", "b", "r", "q"}

// StringUci returns the move in UCI long algebraic notation, e.g. "e2e4"
// or "e7e8q" for a promotion. This is the format used on the UCI wire.
func (m Move) StringUci() string {
	if m == MoveNone {
		return "-"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += promoFlagChar[m.Flag()&0b0011]
	}
	return s
}

// String returns a human-readable representation identical to StringUci,
// the natural default for logging and error messages.
func (m Move) String() string {
	return m.StringUci()
}

// StringBits returns the raw bit layout of the move, useful when
// debugging move encoding/decoding.
func (m Move) StringBits() string {
	return fmt.Sprintf("from=%06b to=%06b flag=%04b", m.From(), m.To(), m.Flag())
}
