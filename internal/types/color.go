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

// Color is White or Black.
type Color uint8

const (
	White Color = iota
	Black

	// ColorLength is the count of real colors, usable as an array bound.
	ColorLength int = 2
)

// colorTraits bundles every per-color constant that would otherwise
// live in its own parallel array, keyed by Color.
type colorTraits struct {
	label        string
	pawnStep     Direction
	forwardSign  int
	promotionBb  Bitboard
	doublePushBb Bitboard
}

var byColor = [ColorLength]colorTraits{
	White: {label: "w", pawnStep: North, forwardSign: 1, promotionBb: Rank8_Bb, doublePushBb: Rank3_Bb},
	Black: {label: "b", pawnStep: South, forwardSign: -1, promotionBb: Rank1_Bb, doublePushBb: Rank6_Bb},
}

// Flip returns the opposing color.
func (c Color) Flip() Color {
	return c ^ 1
}

// IsValid reports whether c is White or Black.
func (c Color) IsValid() bool {
	return int(c) < ColorLength
}

// String returns "w" for White or "b" for Black.
func (c Color) String() string {
	if !c.IsValid() {
		panic(fmt.Sprintf("invalid color %d", c))
	}
	return byColor[c].label
}

// Direction returns +1 for White, -1 for Black - the sign a piece-square
// evaluation term needs to face the right way for either side.
func (c Color) Direction() int {
	return byColor[c].forwardSign
}

// MoveDirection returns the compass Direction a pawn of color c advances.
func (c Color) MoveDirection() Direction {
	return byColor[c].pawnStep
}

// PromotionRankBb returns the rank on which color c's pawns promote.
func (c Color) PromotionRankBb() Bitboard {
	return byColor[c].promotionBb
}

// PawnDoubleRank returns the rank a color-c pawn reaches with a single
// step from its start rank (rank 3 for White, rank 6 for Black); a pawn
// that has reached it this way can step once more as a double push.
func (c Color) PawnDoubleRank() Bitboard {
	return byColor[c].doublePushBb
}
