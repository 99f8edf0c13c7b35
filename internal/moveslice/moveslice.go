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

// Package moveslice wraps []Move with the deque- and filter-style
// operations the move generator and perft harness need, so callers
// never manipulate the backing array's indices directly.
package moveslice

import (
	"fmt"
	"strings"
	"sync"

	. "github.com/kasparik/chesscore/internal/types"
)

// MoveSlice is a []Move with deque, random-access and filtering helpers
// attached. The zero value is a usable empty slice; NewMoveSlice is only
// needed to pre-size the backing array.
type MoveSlice []Move

// NewMoveSlice returns an empty MoveSlice backed by an array of the
// given capacity.
func NewMoveSlice(capacity int) *MoveSlice {
	backing := make([]Move, 0, capacity)
	return (*MoveSlice)(&backing)
}

func (ms *MoveSlice) requireIndex(i int) {
	if i < 0 || i >= len(*ms) {
		panic(fmt.Sprintf("moveslice: index %d out of bounds (len=%d)", i, len(*ms)))
	}
}

// --- size ---

// Len returns the number of moves currently stored.
func (ms *MoveSlice) Len() int { return len(*ms) }

// Cap returns the capacity of the backing array.
func (ms *MoveSlice) Cap() int { return cap(*ms) }

// Clear empties the slice while keeping its backing array, so a hot
// loop can reuse the same allocation across many positions.
func (ms *MoveSlice) Clear() {
	*ms = (*ms)[:0]
}

// --- deque ends ---

// PushBack appends m after the last element.
func (ms *MoveSlice) PushBack(m Move) {
	*ms = append(*ms, m)
}

// PopBack removes and returns the last element; it panics on an empty
// slice.
func (ms *MoveSlice) PopBack() Move {
	ms.requireIndex(len(*ms) - 1)
	last := len(*ms) - 1
	m := (*ms)[last]
	*ms = (*ms)[:last]
	return m
}

// PushFront inserts m before the first element, shifting every existing
// element one slot to the right within the same backing array.
func (ms *MoveSlice) PushFront(m Move) {
	*ms = append(*ms, MoveNone)
	copy((*ms)[1:], *ms)
	(*ms)[0] = m
}

// PopFront removes and returns the first element by re-slicing past it;
// it panics on an empty slice. Because it only moves the slice header,
// repeated calls shrink available capacity rather than the backing
// array, which can force an earlier reallocation on later PushBack/
// PushFront calls.
func (ms *MoveSlice) PopFront() Move {
	ms.requireIndex(0)
	m := (*ms)[0]
	*ms = (*ms)[1:]
	return m
}

// Front returns the first element without removing it; it panics on an
// empty slice.
func (ms *MoveSlice) Front() Move {
	ms.requireIndex(0)
	return (*ms)[0]
}

// Back returns the last element without removing it; it panics on an
// empty slice.
func (ms *MoveSlice) Back() Move {
	ms.requireIndex(len(*ms) - 1)
	return (*ms)[len(*ms)-1]
}

// --- random access ---

// At returns the element at index i; it panics if i is out of bounds.
func (ms *MoveSlice) At(i int) Move {
	ms.requireIndex(i)
	return (*ms)[i]
}

// Set overwrites the element at index i; it panics if i is out of
// bounds.
func (ms *MoveSlice) Set(i int, m Move) {
	ms.requireIndex(i)
	(*ms)[i] = m
}

// --- bulk operations ---

// Filter keeps only the elements for which keep returns true, compacting
// the backing array in place.
func (ms *MoveSlice) Filter(keep func(index int) bool) {
	kept := (*ms)[:0]
	for i, m := range *ms {
		if keep(i) {
			kept = append(kept, m)
		}
	}
	*ms = kept
}

// FilterCopy appends every element for which keep returns true onto dest,
// leaving ms itself untouched.
func (ms *MoveSlice) FilterCopy(dest *MoveSlice, keep func(index int) bool) {
	for i, m := range *ms {
		if keep(i) {
			*dest = append(*dest, m)
		}
	}
}

// Clone returns an independent MoveSlice with the same elements and
// capacity.
func (ms *MoveSlice) Clone() *MoveSlice {
	dup := make([]Move, ms.Len(), ms.Cap())
	copy(dup, *ms)
	return (*MoveSlice)(&dup)
}

// Equals reports whether ms and other hold the same moves in the same
// order.
func (ms *MoveSlice) Equals(other *MoveSlice) bool {
	if ms.Len() != other.Len() {
		return false
	}
	for i, m := range *ms {
		if m != (*other)[i] {
			return false
		}
	}
	return true
}

// ForEach calls f once per index in stored order.
func (ms *MoveSlice) ForEach(f func(index int)) {
	for i := range *ms {
		f(i)
	}
}

// ForEachParallel calls f once per index, each call on its own goroutine,
// and blocks until every call returns. f is responsible for any
// synchronization it needs against shared state.
func (ms *MoveSlice) ForEachParallel(f func(index int)) {
	var wg sync.WaitGroup
	wg.Add(len(*ms))
	for i := range *ms {
		go func(idx int) {
			defer wg.Done()
			f(idx)
		}(i)
	}
	wg.Wait()
}

// --- ordering ---

// less defines the canonical (from, to, promotion) move order used by
// Sort: without a search attached there is no notion of move value, so
// moves are ordered purely by their encoding, giving tests a
// deterministic, comparable move-list order.
func less(a, b Move) bool {
	switch {
	case a.From() != b.From():
		return a.From() < b.From()
	case a.To() != b.To():
		return a.To() < b.To()
	default:
		return a.PromotionType() < b.PromotionType()
	}
}

// Sort orders moves by (from, to, promotion) ascending, in place, using
// insertion sort - MoveSlices here are small and often nearly sorted
// already, so the usual quadratic worst case doesn't apply in practice.
func (ms *MoveSlice) Sort() {
	s := *ms
	for i := 1; i < len(s); i++ {
		moving := s[i]
		j := i
		for j > 0 && less(moving, s[j-1]) {
			s[j] = s[j-1]
			j--
		}
		s[j] = moving
	}
}

// --- formatting ---

// String renders ms as "MoveList: [n] { e2e4, e7e5, ... }".
func (ms *MoveSlice) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "MoveList: [%d] { ", ms.Len())
	for i := 0; i < ms.Len(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(ms.At(i).String())
	}
	b.WriteString(" }")
	return b.String()
}

// StringUci renders ms as a space-separated list of UCI long-algebraic
// moves, the format the engine writes on its "bestmove"/"info" lines.
func (ms *MoveSlice) StringUci() string {
	var b strings.Builder
	for i, m := range *ms {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(m.StringUci())
	}
	return b.String()
}
