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

// Package movegen generates pseudo-legal and legal moves for a board.Board.
// It carries no search state of its own - no killer moves, no PV hints, no
// on-demand staged generation - those belong to a search package that
// consumes this one.
package movegen

import (
	"fmt"
	"regexp"

	"github.com/kasparik/chesscore/internal/board"
	"github.com/kasparik/chesscore/internal/logging"
	"github.com/kasparik/chesscore/internal/moveslice"
	. "github.com/kasparik/chesscore/internal/types"
)

var log = logging.GetLog("movegen")

// MaxMoves bounds the number of pseudo-legal moves any chess position can
// have; 218 is the known maximum, rounded up for headroom.
const MaxMoves = 256

// GenMode selects which kind of moves GeneratePseudoLegalMoves and
// GenerateLegalMoves emit. It is a bitmask so GenAll == GenCapture|GenNonCapture.
type GenMode uint8

// GenMode constants.
const (
	GenCapture    GenMode = 1 << 0
	GenNonCapture GenMode = 1 << 1
	GenAll        GenMode = GenCapture | GenNonCapture
)

// MoveGen generates moves against a board.Board. It owns a reusable
// moveslice buffer so repeated calls avoid reallocating, but holds no
// position-specific state between calls.
type MoveGen struct {
	moves *moveslice.MoveSlice
}

// NewMoveGen creates a MoveGen ready for use.
func NewMoveGen() *MoveGen {
	return &MoveGen{
		moves: moveslice.NewMoveSlice(MaxMoves),
	}
}

// pieceTypesToGenerate lists every non-pawn, non-castling piece type
// generation loops over identically via GetAttacksBb.
var pieceTypesToGenerate = [5]PieceType{Knight, Bishop, Rook, Queen, King}

// GeneratePseudoLegalMoves returns every pseudo-legal move for the side to
// move matching mode - legal except possibly leaving its own king in
// check. The returned slice is owned by mg and is overwritten by the next
// call.
func (mg *MoveGen) GeneratePseudoLegalMoves(b *board.Board, mode GenMode) *moveslice.MoveSlice {
	mg.moves.Clear()
	mg.generatePawnMoves(b, mode)
	mg.generatePieceMoves(b, mode)
	if mode&GenNonCapture != 0 {
		mg.generateCastlingMoves(b)
	}
	return mg.moves
}

// GenerateLegalMoves returns every legal move for the side to move matching
// mode, filtering GeneratePseudoLegalMoves through board.Board.IsLegalMove.
// The returned slice is owned by mg and is overwritten by the next call.
func (mg *MoveGen) GenerateLegalMoves(b *board.Board, mode GenMode) *moveslice.MoveSlice {
	pseudo := mg.GeneratePseudoLegalMoves(b, mode)
	pseudo.Filter(func(i int) bool {
		return b.IsLegalMove(pseudo.At(i))
	})
	return pseudo
}

// HasLegalMove reports whether the side to move has at least one legal
// move - useful for checkmate and stalemate detection. It generates the
// full pseudo-legal list and stops at the first move that passes the
// legality check.
func (mg *MoveGen) HasLegalMove(b *board.Board) bool {
	pseudo := mg.GeneratePseudoLegalMoves(b, GenAll)
	for i := 0; i < pseudo.Len(); i++ {
		if b.IsLegalMove(pseudo.At(i)) {
			return true
		}
	}
	return false
}

func (mg *MoveGen) generatePieceMoves(b *board.Board, mode GenMode) {
	us := b.SideToMove()
	occAll := b.OccupiedAll()
	ownOcc := b.OccupiedBb(us)
	enemyOcc := b.OccupiedBb(us.Flip())

	for _, pt := range pieceTypesToGenerate {
		pieces := b.PiecesBb(us, pt)
		for pieces != 0 {
			from := pieces.PopLsb()
			attacks := GetAttacksBb(pt, from, occAll) &^ ownOcc
			if mode&GenCapture != 0 {
				caps := attacks & enemyOcc
				for caps != 0 {
					to := caps.PopLsb()
					mg.moves.PushBack(CreateMove(from, to, Capture))
				}
			}
			if mode&GenNonCapture != 0 {
				quiets := attacks &^ enemyOcc
				for quiets != 0 {
					to := quiets.PopLsb()
					mg.moves.PushBack(CreateMove(from, to, Quiet))
				}
			}
		}
	}
}

func (mg *MoveGen) generatePawnMoves(b *board.Board, mode GenMode) {
	us := b.SideToMove()
	them := us.Flip()
	dir := us.MoveDirection()
	occAll := b.OccupiedAll()
	enemyOcc := b.OccupiedBb(them)
	promRank := us.PromotionRankBb()
	startRank := [2]Bitboard{Rank2_Bb, Rank7_Bb}[us]

	pawns := b.PiecesBb(us, Pawn)

	if mode&GenNonCapture != 0 {
		singlePush := ShiftBitboard(pawns, dir) &^ occAll
		quiet := singlePush &^ promRank
		for quiet != 0 {
			to := quiet.PopLsb()
			mg.moves.PushBack(CreateMove(to.To(-dir), to, Quiet))
		}
		promo := singlePush & promRank
		for promo != 0 {
			to := promo.PopLsb()
			mg.addPromotions(to.To(-dir), to, false)
		}
		doubleStarters := pawns & startRank
		firstHop := ShiftBitboard(doubleStarters, dir) &^ occAll
		double := ShiftBitboard(firstHop, dir) &^ occAll
		for double != 0 {
			to := double.PopLsb()
			mg.moves.PushBack(CreateMove(to.To(-dir).To(-dir), to, DoublePawnPush))
		}
	}

	if mode&GenCapture != 0 {
		for _, side := range [2]Direction{East, West} {
			captures := ShiftBitboard(pawns, dir+side) & enemyOcc
			quiet := captures &^ promRank
			for quiet != 0 {
				to := quiet.PopLsb()
				mg.moves.PushBack(CreateMove(to.To(-(dir+side)), to, Capture))
			}
			promo := captures & promRank
			for promo != 0 {
				to := promo.PopLsb()
				mg.addPromotions(to.To(-(dir+side)), to, true)
			}
		}
		if ep := b.EnPassantSquare(); ep != SqNone {
			for _, side := range [2]Direction{East, West} {
				from := ep.To(-(dir + side))
				if from.IsValid() && pawns.Has(from) {
					mg.moves.PushBack(CreateMove(from, ep, EnPassantCapture))
				}
			}
		}
	}
}

var promoFlags = [4]MoveFlag{PromoQueen, PromoRook, PromoBishop, PromoKnight}
var promoCaptureFlags = [4]MoveFlag{PromoCaptureQueen, PromoCaptureRook, PromoCaptureBishop, PromoCaptureKnight}

func (mg *MoveGen) addPromotions(from, to Square, capture bool) {
	flags := promoFlags
	if capture {
		flags = promoCaptureFlags
	}
	for _, f := range flags {
		mg.moves.PushBack(CreateMove(from, to, f))
	}
}

func (mg *MoveGen) generateCastlingMoves(b *board.Board) {
	us := b.SideToMove()
	cr := b.CastlingRights()
	occAll := b.OccupiedAll()

	if us == White {
		if cr.Has(CastlingWhiteOO) && Intermediate(SqE1, SqH1)&occAll == 0 {
			mg.moves.PushBack(CreateMove(SqE1, SqG1, KingCastle))
		}
		if cr.Has(CastlingWhiteOOO) && Intermediate(SqE1, SqA1)&occAll == 0 {
			mg.moves.PushBack(CreateMove(SqE1, SqC1, QueenCastle))
		}
	} else {
		if cr.Has(CastlingBlackOO) && Intermediate(SqE8, SqH8)&occAll == 0 {
			mg.moves.PushBack(CreateMove(SqE8, SqG8, KingCastle))
		}
		if cr.Has(CastlingBlackOOO) && Intermediate(SqE8, SqA8)&occAll == 0 {
			mg.moves.PushBack(CreateMove(SqE8, SqC8, QueenCastle))
		}
	}
}

var uciMoveRegex = regexp.MustCompile(`^([a-h][1-8])([a-h][1-8])([nbrq])?$`)

// ParseUciMove parses s (e.g. "e2e4" or "e7e8q") in UCI long algebraic
// notation and resolves it to the matching pseudo-legal move on b. Returns
// an error if s is not well formed or matches no pseudo-legal move.
func ParseUciMove(b *board.Board, s string) (Move, error) {
	parts := uciMoveRegex.FindStringSubmatch(s)
	if parts == nil {
		return MoveNone, fmt.Errorf("movegen: %q is not a valid UCI move", s)
	}
	from := MakeSquare(parts[1])
	to := MakeSquare(parts[2])

	mg := NewMoveGen()
	candidates := mg.GeneratePseudoLegalMoves(b, GenAll)
	for i := 0; i < candidates.Len(); i++ {
		m := candidates.At(i)
		if m.From() != from || m.To() != to {
			continue
		}
		if parts[3] == "" {
			if !m.IsPromotion() {
				return m, nil
			}
			continue
		}
		if m.IsPromotion() && promoLetter(m.PromotionType()) == parts[3] {
			return m, nil
		}
	}
	log.Debugf("movegen: no pseudo-legal move matches uci move %q", s)
	return MoveNone, fmt.Errorf("movegen: %q is not a legal move in this position", s)
}

func promoLetter(pt PieceType) string {
	switch pt {
	case Knight:
		return "n"
	case Bishop:
		return "b"
	case Rook:
		return "r"
	case Queen:
		return "q"
	default:
		return ""
	}
}
