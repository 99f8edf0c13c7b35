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

package board

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	. "github.com/kasparik/chesscore/internal/types"
)

// StartFen is the standard chess starting position.
const StartFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FenError reports which field of a FEN string failed to parse.
type FenError struct {
	Field string
	Input string
	Msg   string
}

func (e *FenError) Error() string {
	return fmt.Sprintf("fen field %q (%q): %s", e.Field, e.Input, e.Msg)
}

var (
	regexFenPos           = regexp.MustCompile("^[0-8pPnNbBrRqQkK/]+$")
	regexWorB             = regexp.MustCompile("^[wb]$")
	regexCastlingRights   = regexp.MustCompile("^(K?Q?k?q?|-)$")
	regexEnPassantSquare  = regexp.MustCompile("^([a-h][1-8]|-)$")
)

// setupBoard parses fen and populates b. Only the piece-placement field
// is mandatory; all later fields fall back to their default when absent.
// On success the board's zobrist key has been built up from scratch via
// the same putPiece/Add-right calls Make uses, so it is always consistent
// with the final state.
func (b *Board) setupBoard(fen string) error {
	fen = strings.TrimSpace(fen)
	fenParts := strings.Fields(fen)

	if len(fenParts) == 0 {
		return &FenError{Field: "placement", Input: fen, Msg: "fen must not be empty"}
	}

	if !regexFenPos.MatchString(fenParts[0]) {
		return &FenError{Field: "placement", Input: fenParts[0], Msg: "contains invalid characters"}
	}

	// fen starts at a8 and runs to h8, '/' drops to file A of the next
	// lower rank.
	currentSquare := SqA8
	for _, c := range fenParts[0] {
		switch {
		case c >= '1' && c <= '8':
			currentSquare = Square(int(currentSquare) + (int(c-'0') * int(East)))
		case c == '/':
			if currentSquare.FileOf() != FileA {
				return &FenError{Field: "placement", Input: fenParts[0], Msg: "rank does not cover exactly 8 squares"}
			}
			currentSquare = Square(int(currentSquare) + 2*int(South))
		default:
			piece := PieceFromChar(string(c))
			if piece == PieceNone {
				return &FenError{Field: "placement", Input: string(c), Msg: "invalid piece character"}
			}
			b.putPiece(piece, currentSquare)
			currentSquare++
		}
	}
	if currentSquare != SqA2 {
		return &FenError{Field: "placement", Input: fenParts[0], Msg: "did not terminate on a2 after h1"}
	}

	b.fullmoveNumber = 1
	b.enPassantSquare = SqNone

	if len(fenParts) >= 2 {
		if !regexWorB.MatchString(fenParts[1]) {
			return &FenError{Field: "active color", Input: fenParts[1], Msg: "must be w or b"}
		}
		if fenParts[1] == "b" {
			b.sideToMove = Black
			b.zobristKey ^= zobristBase.nextPlayer
		}
	}

	if len(fenParts) >= 3 {
		if !regexCastlingRights.MatchString(fenParts[2]) {
			return &FenError{Field: "castling rights", Input: fenParts[2], Msg: "must be -, or a subset of KQkq"}
		}
		if fenParts[2] != "-" {
			for _, c := range fenParts[2] {
				switch c {
				case 'K':
					b.castlingRights.Add(CastlingWhiteOO)
				case 'Q':
					b.castlingRights.Add(CastlingWhiteOOO)
				case 'k':
					b.castlingRights.Add(CastlingBlackOO)
				case 'q':
					b.castlingRights.Add(CastlingBlackOOO)
				}
			}
		}
	}
	b.zobristKey ^= zobristBase.castlingRights[b.castlingRights]

	if len(fenParts) >= 4 {
		if !regexEnPassantSquare.MatchString(fenParts[3]) {
			return &FenError{Field: "en passant square", Input: fenParts[3], Msg: "must be -, or an algebraic square"}
		}
		if fenParts[3] != "-" {
			epSq := MakeSquare(fenParts[3])
			pawnSq := epSq.To(b.sideToMove.Flip().MoveDirection())
			if pawnSq.NeighbourFilesMask()&pawnSq.RankOf().Bb()&b.piecesBb[b.sideToMove][Pawn] != 0 {
				b.enPassantSquare = epSq
				b.zobristKey ^= zobristBase.enPassantFile[epSq.FileOf()]
			}
		}
	}

	if len(fenParts) >= 5 {
		n, err := strconv.Atoi(fenParts[4])
		if err != nil {
			return &FenError{Field: "halfmove clock", Input: fenParts[4], Msg: err.Error()}
		}
		b.halfmoveClock = n
	}

	if len(fenParts) >= 6 {
		n, err := strconv.Atoi(fenParts[5])
		if err != nil {
			return &FenError{Field: "fullmove number", Input: fenParts[5], Msg: err.Error()}
		}
		if n == 0 {
			n = 1
		}
		b.fullmoveNumber = n
	}

	return nil
}

// Fen returns the current position in standard Forsyth-Edwards notation.
func (b *Board) Fen() string {
	var fen strings.Builder
	for r := Rank1; r <= Rank8; r++ {
		empty := 0
		for f := FileA; f <= FileH; f++ {
			pc := b.mailbox[SquareOf(f, Rank8-r)]
			if pc == PieceNone {
				empty++
				continue
			}
			if empty > 0 {
				fen.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			fen.WriteString(pc.String())
		}
		if empty > 0 {
			fen.WriteString(strconv.Itoa(empty))
		}
		if r < Rank8 {
			fen.WriteString("/")
		}
	}
	fen.WriteString(" ")
	fen.WriteString(b.sideToMove.String())
	fen.WriteString(" ")
	fen.WriteString(b.castlingRights.String())
	fen.WriteString(" ")
	fen.WriteString(b.enPassantSquare.String())
	fen.WriteString(" ")
	fen.WriteString(strconv.Itoa(b.halfmoveClock))
	fen.WriteString(" ")
	fen.WriteString(strconv.Itoa(b.fullmoveNumber))
	return fen.String()
}
