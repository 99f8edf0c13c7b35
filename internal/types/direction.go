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

// Direction is a signed square-index delta: adding it to a Square steps
// one square across the board in a compass direction, as long as the
// move doesn't wrap a board edge (callers check that separately).
type Direction int8

// North is 8 because squares are numbered a1..h1, a2..h2, ...; every
// other direction is built from North and East so the relationship
// between them stays explicit.
const North Direction = 8
const East Direction = 1

const (
	South     = -North
	West      = -East
	Northeast = North + East
	Southeast = South + East
	Southwest = South + West
	Northwest = North + West
)

// Directions lists all eight compass directions, in the fixed order
// Square.To's precomputed lookup table depends on: N, E, S, W, NE, SE,
// SW, NW.
var Directions = [8]Direction{North, East, South, West, Northeast, Southeast, Southwest, Northwest}

var directionNames = map[Direction]string{
	North: "N", Northeast: "NE", East: "E", Southeast: "SE",
	South: "S", Southwest: "SW", West: "W", Northwest: "NW",
}

// String returns d's compass abbreviation (N, NE, E, ...); it panics on
// any value that isn't one of the eight named directions, since such a
// value is always a programming error rather than data to report.
func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	panic(fmt.Sprintf("invalid direction %d", d))
}
