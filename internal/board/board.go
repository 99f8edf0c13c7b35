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

// Package board represents the authoritative chess position: a mailbox plus
// bitboards, zobrist key, castling/en-passant/clock state and the explicit
// Make/Unmake protocol the rest of the engine is built on.
//
// Create a new instance with NewBoard(...) with no arguments for the chess
// start position, or NewBoard(fen) for an arbitrary one.
package board

import (
	"fmt"
	"strings"

	"github.com/kasparik/chesscore/internal/assert"
	"github.com/kasparik/chesscore/internal/logging"
	. "github.com/kasparik/chesscore/internal/types"
)

var log = logging.GetLog("board")

var initialized = false

func init() {
	if !initialized {
		initZobrist()
		initialized = true
	}
}

// Board is the mutable chess position. The zero value is not usable -
// construct one with NewBoard.
type Board struct {
	mailbox [SqLength]Piece

	piecesBb   [ColorLength][PtLength]Bitboard
	occupiedBb [ColorLength]Bitboard

	sideToMove      Color
	castlingRights  CastlingRights
	enPassantSquare Square
	halfmoveClock   int
	fullmoveNumber  int
	zobristKey      Key
	kingSquare      [ColorLength]Square

	hasCheckFlag flag
}

type flag int8

const (
	flagTBD flag = iota
	flagTrue
	flagFalse
)

// UndoInfo is the per-ply record Make returns and Unmake consumes to
// reverse exactly one move. Callers own the storage (typically a local
// variable on the search stack); Board keeps no history of its own.
type UndoInfo struct {
	CapturedPiece   Piece
	CastlingRights  CastlingRights
	EnPassantSquare Square
	HalfmoveClock   int
	ZobristKey      Key
}

// NewBoard creates a board from the given FEN, or the standard starting
// position if no FEN is given.
func NewBoard(fen ...string) *Board {
	if len(fen) == 0 {
		b, _ := NewBoardFen(StartFen)
		return b
	}
	b, _ := NewBoardFen(fen[0])
	return b
}

// NewBoardFen creates a new board from the given FEN string. Returns nil
// and a *FenError if the FEN is malformed.
func NewBoardFen(fen string) (*Board, error) {
	b := &Board{}
	if err := b.setupBoard(fen); err != nil {
		log.Errorf("fen for board setup not valid and board can't be created: %s", err)
		return nil, err
	}
	return b, nil
}

// Make commits move to the board and returns the information needed to
// reverse it. The caller is responsible for only ever passing moves
// produced against the current position (pseudo-legal is enough; Make
// does not itself check legality).
func (b *Board) Make(m Move) UndoInfo {
	fromSq := m.From()
	toSq := m.To()
	fromPc := b.mailbox[fromSq]
	mover := fromPc.ColorOf()
	mf := m.Flag()

	undo := UndoInfo{
		CapturedPiece:   PieceNone,
		CastlingRights:  b.castlingRights,
		EnPassantSquare: b.enPassantSquare,
		HalfmoveClock:   b.halfmoveClock,
		ZobristKey:      b.zobristKey,
	}

	b.clearEnPassant()
	b.hasCheckFlag = flagTBD

	switch {
	case mf == EnPassantCapture:
		if assert.DEBUG {
			assert.Assert(undo.EnPassantSquare != SqNone, "Board.Make: en passant move without en passant square set")
		}
		capSq := toSq.To(mover.Flip().MoveDirection())
		undo.CapturedPiece = b.removePiece(capSq)
		b.movePiece(fromSq, toSq)
		b.halfmoveClock = 0
	case m.IsCastling():
		b.doCastlingMove(fromSq, toSq)
		b.halfmoveClock++
	case m.IsPromotion():
		if m.IsCapture() {
			undo.CapturedPiece = b.removePiece(toSq)
		}
		b.removePiece(fromSq)
		b.putPiece(MakePiece(mover, m.PromotionType()), toSq)
		b.updateCastlingRights(fromSq, toSq)
		b.halfmoveClock = 0
	default:
		if m.IsCapture() {
			undo.CapturedPiece = b.removePiece(toSq)
			b.halfmoveClock = 0
		} else if fromPc.TypeOf() == Pawn {
			b.halfmoveClock = 0
		} else {
			b.halfmoveClock++
		}
		b.movePiece(fromSq, toSq)
		b.updateCastlingRights(fromSq, toSq)
		if mf == DoublePawnPush {
			b.setEnPassant(toSq, mover)
		}
	}

	if mover == Black {
		b.fullmoveNumber++
	}
	b.sideToMove = b.sideToMove.Flip()
	b.zobristKey ^= zobristBase.nextPlayer

	return undo
}

// Unmake reverses move m using undo, the UndoInfo returned by the matching
// Make call. Calls must nest in strict LIFO order with Make.
func (b *Board) Unmake(m Move, undo UndoInfo) {
	b.sideToMove = b.sideToMove.Flip()
	mover := b.sideToMove
	if mover == Black {
		b.fullmoveNumber--
	}

	fromSq := m.From()
	toSq := m.To()
	mf := m.Flag()

	switch {
	case mf == EnPassantCapture:
		b.movePiece(toSq, fromSq)
		capSq := toSq.To(mover.Flip().MoveDirection())
		b.putPiece(MakePiece(mover.Flip(), Pawn), capSq)
	case m.IsCastling():
		b.undoCastlingMove(fromSq, toSq)
	case m.IsPromotion():
		b.removePiece(toSq)
		b.putPiece(MakePiece(mover, Pawn), fromSq)
		if undo.CapturedPiece != PieceNone {
			b.putPiece(undo.CapturedPiece, toSq)
		}
	default:
		b.movePiece(toSq, fromSq)
		if undo.CapturedPiece != PieceNone {
			b.putPiece(undo.CapturedPiece, toSq)
		}
	}

	b.castlingRights = undo.CastlingRights
	b.enPassantSquare = undo.EnPassantSquare
	b.halfmoveClock = undo.HalfmoveClock
	b.zobristKey = undo.ZobristKey
	b.hasCheckFlag = flagTBD
}

func (b *Board) doCastlingMove(fromSq, toSq Square) {
	b.movePiece(fromSq, toSq)
	switch toSq {
	case SqG1:
		b.movePiece(SqH1, SqF1)
	case SqC1:
		b.movePiece(SqA1, SqD1)
	case SqG8:
		b.movePiece(SqH8, SqF8)
	case SqC8:
		b.movePiece(SqA8, SqD8)
	default:
		panic("Board.Make: invalid castle destination")
	}
	b.updateCastlingRights(fromSq, toSq)
}

func (b *Board) undoCastlingMove(fromSq, toSq Square) {
	b.movePiece(toSq, fromSq)
	switch toSq {
	case SqG1:
		b.movePiece(SqF1, SqH1)
	case SqC1:
		b.movePiece(SqD1, SqA1)
	case SqG8:
		b.movePiece(SqF8, SqH8)
	case SqC8:
		b.movePiece(SqD8, SqA8)
	default:
		panic("Board.Unmake: invalid castle destination")
	}
}

// updateCastlingRights clears whichever rights the squares touched by this
// move (source or destination) hold, covering both "king/rook moved away"
// and "rook captured on its original square".
func (b *Board) updateCastlingRights(fromSq, toSq Square) {
	if b.castlingRights == CastlingNone {
		return
	}
	cr := GetCastlingRights(fromSq) | GetCastlingRights(toSq)
	if cr == CastlingNone {
		return
	}
	b.zobristKey ^= zobristBase.castlingRights[b.castlingRights]
	b.castlingRights.Remove(cr)
	b.zobristKey ^= zobristBase.castlingRights[b.castlingRights]
}

// setEnPassant records the skipped square of a double pawn push as the
// board's en-passant target, but only when an enemy pawn actually stands
// adjacent on the landing rank - the "reachable ep" convention. An
// unreachable ep square is recorded nowhere, not in enPassantSquare and
// not in the zobrist key, so two positions differing only by a phantom
// ep square are indistinguishable: same FEN, same hash.
func (b *Board) setEnPassant(toSq Square, mover Color) {
	epSq := toSq.To(mover.Flip().MoveDirection())
	enemy := mover.Flip()
	if toSq.NeighbourFilesMask()&toSq.RankOf().Bb()&b.piecesBb[enemy][Pawn] == 0 {
		return
	}
	b.enPassantSquare = epSq
	b.zobristKey ^= zobristBase.enPassantFile[epSq.FileOf()]
}

func (b *Board) clearEnPassant() {
	if b.enPassantSquare != SqNone {
		b.zobristKey ^= zobristBase.enPassantFile[b.enPassantSquare.FileOf()]
		b.enPassantSquare = SqNone
	}
}

func (b *Board) movePiece(fromSq, toSq Square) {
	b.putPiece(b.removePiece(fromSq), toSq)
}

func (b *Board) putPiece(piece Piece, square Square) {
	color := piece.ColorOf()
	pieceType := piece.TypeOf()

	if assert.DEBUG {
		assert.Assert(b.mailbox[square] == PieceNone, "Board.putPiece: square already occupied: %s", square.String())
	}

	b.mailbox[square] = piece
	if pieceType == King {
		b.kingSquare[color] = square
	}
	b.piecesBb[color][pieceType].PushSquare(square)
	b.occupiedBb[color].PushSquare(square)
	b.zobristKey ^= zobristBase.pieces[piece][square]
}

func (b *Board) removePiece(square Square) Piece {
	removed := b.mailbox[square]
	color := removed.ColorOf()
	pieceType := removed.TypeOf()

	if assert.DEBUG {
		assert.Assert(removed != PieceNone, "Board.removePiece: square is empty: %s", square.String())
	}

	b.mailbox[square] = PieceNone
	b.piecesBb[color][pieceType].PopSquare(square)
	b.occupiedBb[color].PopSquare(square)
	b.zobristKey ^= zobristBase.pieces[removed][square]
	return removed
}

// IsAttacked reports whether sq is attacked by a piece of color by. This
// depends only on piece placement, not on side to move, clocks or
// en-passant state.
func (b *Board) IsAttacked(sq Square, by Color) bool {
	if GetPawnAttacks(by.Flip(), sq)&b.piecesBb[by][Pawn] != 0 ||
		GetPseudoAttacks(Knight, sq)&b.piecesBb[by][Knight] != 0 ||
		GetPseudoAttacks(King, sq)&b.piecesBb[by][King] != 0 {
		return true
	}
	occ := b.OccupiedAll()
	if GetAttacksBb(Bishop, sq, occ)&b.piecesBb[by][Bishop] != 0 ||
		GetAttacksBb(Rook, sq, occ)&b.piecesBb[by][Rook] != 0 ||
		GetAttacksBb(Queen, sq, occ)&b.piecesBb[by][Queen] != 0 {
		return true
	}
	return false
}

// IsLegalMove tests whether move is legal on the current position: the
// king must not be left in check, and castling must not cross or start
// from an attacked square. This is the brute-filter strategy: for
// non-castling moves it plays the move out and checks the resulting
// position.
func (b *Board) IsLegalMove(m Move) bool {
	opponent := b.sideToMove.Flip()
	if m.IsCastling() {
		if b.IsAttacked(m.From(), opponent) {
			return false
		}
		switch m.To() {
		case SqG1:
			if b.IsAttacked(SqF1, opponent) {
				return false
			}
		case SqC1:
			if b.IsAttacked(SqD1, opponent) {
				return false
			}
		case SqG8:
			if b.IsAttacked(SqF8, opponent) {
				return false
			}
		case SqC8:
			if b.IsAttacked(SqD8, opponent) {
				return false
			}
		}
	}
	mover := b.sideToMove
	undo := b.Make(m)
	legal := !b.IsAttacked(b.kingSquare[mover], opponent)
	b.Unmake(m, undo)
	return legal
}

// HasCheck returns true if the side to move is in check. Cached per
// position; repeated calls between Make/Unmake pairs are cheap.
func (b *Board) HasCheck() bool {
	if b.hasCheckFlag != flagTBD {
		return b.hasCheckFlag == flagTrue
	}
	check := b.IsAttacked(b.kingSquare[b.sideToMove], b.sideToMove.Flip())
	if check {
		b.hasCheckFlag = flagTrue
	} else {
		b.hasCheckFlag = flagFalse
	}
	return check
}

// GivesCheck reports whether playing m (a pseudo-legal move for the side
// to move) would give check to the opponent, including discovered and
// en-passant-revealed checks. It does not mutate the board.
func (b *Board) GivesCheck(m Move) bool {
	us := b.sideToMove
	them := us.Flip()
	kingSq := b.kingSquare[them]

	fromSq := m.From()
	toSq := m.To()
	fromPt := b.mailbox[fromSq].TypeOf()
	epTargetSq := SqNone

	switch {
	case m.IsPromotion():
		fromPt = m.PromotionType()
	case m.IsCastling():
		fromPt = Rook
		switch toSq {
		case SqG1:
			toSq = SqF1
		case SqC1:
			toSq = SqD1
		case SqG8:
			toSq = SqF8
		case SqC8:
			toSq = SqD8
		}
	case m.IsEnPassant():
		epTargetSq = toSq.To(them.MoveDirection())
	}

	occAfter := b.OccupiedAll()
	occAfter.PopSquare(fromSq)
	occAfter.PushSquare(toSq)
	if m.IsEnPassant() {
		occAfter.PopSquare(epTargetSq)
	}

	switch fromPt {
	case Pawn:
		if GetPawnAttacks(us, toSq).Has(kingSq) {
			return true
		}
	case King:
		// a king move can never give direct check
	default:
		if GetAttacksBb(fromPt, toSq, occAfter).Has(kingSq) {
			return true
		}
	}

	// discovered check: a rook/bishop/queen of ours now sees the enemy
	// king through the squares vacated by this move (or by the captured
	// en-passant pawn).
	switch {
	case GetAttacksBb(Bishop, kingSq, occAfter)&b.piecesBb[us][Bishop] != 0:
		return true
	case GetAttacksBb(Rook, kingSq, occAfter)&b.piecesBb[us][Rook] != 0:
		return true
	case GetAttacksBb(Queen, kingSq, occAfter)&b.piecesBb[us][Queen] != 0:
		return true
	}
	return false
}

// IsCapturingMove reports whether m captures a piece on the current
// position, including en passant.
func (b *Board) IsCapturingMove(m Move) bool {
	return b.occupiedBb[b.sideToMove.Flip()].Has(m.To()) || m.IsEnPassant()
}

// ZobristKey returns the current zobrist hash.
func (b *Board) ZobristKey() Key { return b.zobristKey }

// SideToMove returns the color to move.
func (b *Board) SideToMove() Color { return b.sideToMove }

// GetPiece returns the piece on sq, or PieceNone for an empty square.
func (b *Board) GetPiece(sq Square) Piece { return b.mailbox[sq] }

// PiecesBb returns the bitboard of pieces of type pt and color c.
func (b *Board) PiecesBb(c Color, pt PieceType) Bitboard { return b.piecesBb[c][pt] }

// OccupiedAll returns a bitboard of every occupied square.
func (b *Board) OccupiedAll() Bitboard { return b.occupiedBb[White] | b.occupiedBb[Black] }

// OccupiedBb returns a bitboard of the squares occupied by color c.
func (b *Board) OccupiedBb(c Color) Bitboard { return b.occupiedBb[c] }

// EnPassantSquare returns the en-passant target square, or SqNone.
func (b *Board) EnPassantSquare() Square { return b.enPassantSquare }

// CastlingRights returns the current castling rights.
func (b *Board) CastlingRights() CastlingRights { return b.castlingRights }

// KingSquare returns the square of the king of color c.
func (b *Board) KingSquare(c Color) Square { return b.kingSquare[c] }

// HalfmoveClock returns the halfmoves since the last pawn move or capture.
func (b *Board) HalfmoveClock() int { return b.halfmoveClock }

// FullmoveNumber returns the current fullmove number (increments after
// Black's move).
func (b *Board) FullmoveNumber() int { return b.fullmoveNumber }

// String returns the FEN followed by an ASCII board diagram.
func (b *Board) String() string {
	var os strings.Builder
	os.WriteString(b.Fen())
	os.WriteString("\n")
	os.WriteString(b.StringBoard())
	os.WriteString(fmt.Sprintf("Side to move: %s\n", b.sideToMove.String()))
	return os.String()
}

// StringBoard returns a visual 8x8 matrix of the board.
func (b *Board) StringBoard() string {
	var os strings.Builder
	os.WriteString("+---+---+---+---+---+---+---+---+\n")
	for r := Rank1; r <= Rank8; r++ {
		for f := FileA; f <= FileH; f++ {
			os.WriteString("| ")
			os.WriteString(b.mailbox[SquareOf(f, Rank8-r)].Char())
			os.WriteString(" ")
		}
		os.WriteString("|\n+---+---+---+---+---+---+---+---+\n")
	}
	return os.String()
}
