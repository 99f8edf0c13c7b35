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

// CastlingRights is a four-bit set recording which of White's and
// Black's kingside/queenside castles are still available. Bit layout:
//
//	bit 0 (0001) White O-O
//	bit 1 (0010) White O-O-O
//	bit 2 (0100) Black O-O
//	bit 3 (1000) Black O-O-O
type CastlingRights uint8

const (
	CastlingWhiteOO CastlingRights = 1 << iota
	CastlingWhiteOOO
	CastlingBlackOO
	CastlingBlackOOO

	CastlingNone CastlingRights = 0

	CastlingRightsLength CastlingRights = 16
)

const (
	CastlingWhite = CastlingWhiteOO | CastlingWhiteOOO
	CastlingBlack = CastlingBlackOO | CastlingBlackOOO
	CastlingAny   = CastlingWhite | CastlingBlack
)

// castlingGlyphs pairs each single-side right with the FEN letter it
// contributes, in the canonical KQkq ordering.
var castlingGlyphs = [4]struct {
	right CastlingRights
	ch    byte
}{
	{CastlingWhiteOO, 'K'},
	{CastlingWhiteOOO, 'Q'},
	{CastlingBlackOO, 'k'},
	{CastlingBlackOOO, 'q'},
}

// Has reports whether cr and rhs share at least one set bit.
func (cr CastlingRights) Has(rhs CastlingRights) bool {
	return cr&rhs != 0
}

// Remove clears the bits of rhs from cr and returns the new value.
func (cr *CastlingRights) Remove(rhs CastlingRights) CastlingRights {
	*cr &^= rhs
	return *cr
}

// Add sets the bits of rhs on cr and returns the new value.
func (cr *CastlingRights) Add(rhs CastlingRights) CastlingRights {
	*cr |= rhs
	return *cr
}

// String renders cr as a FEN castling field, e.g. "KQkq", "Kq", or "-"
// when no rights remain.
func (cr CastlingRights) String() string {
	buf := make([]byte, 0, 4)
	for _, g := range castlingGlyphs {
		if cr.Has(g.right) {
			buf = append(buf, g.ch)
		}
	}
	if len(buf) == 0 {
		return "-"
	}
	return string(buf)
}
