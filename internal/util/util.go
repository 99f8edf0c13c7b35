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

// Package util holds the handful of small helpers cmd/bench and the
// bitboard geometry code share. MemStat has no caller outside this
// package's tests; every other exported helper is used elsewhere.
package util

import (
	"runtime"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// germanPrinter formats large node counts with thousands separators the
// way the bench CLI's own output does, e.g. "118.252.771 nps".
var germanPrinter = message.NewPrinter(language.German)

// Abs returns the absolute value of n using a branchless sign-mask trick
// (n>>63 is all-ones for negative n, all-zeros otherwise).
func Abs(n int) int {
	mask := n >> 63
	return (n + mask) ^ mask
}

// Max returns the larger of x and y.
func Max(x, y int) int {
	if x > y {
		return x
	}
	return y
}

// Nps converts a node count and the wall-clock time it took into nodes
// per second. A zero or sub-nanosecond duration is nudged to one
// nanosecond so the division never produces a divide-by-zero panic.
func Nps(nodes uint64, elapsed time.Duration) uint64 {
	ns := elapsed.Nanoseconds()
	if ns <= 0 {
		ns = 1
	}
	return uint64(int64(nodes) * time.Second.Nanoseconds() / ns)
}

// memSnapshot is a point-in-time read of the Go runtime's heap counters.
type memSnapshot struct {
	allocBytes  uint64
	totalBytes  uint64
	heapObjects uint64
	numGC       uint32
}

func takeMemSnapshot() memSnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return memSnapshot{
		allocBytes:  m.Alloc,
		totalBytes:  m.TotalAlloc,
		heapObjects: m.HeapObjects,
		numGC:       m.NumGC,
	}
}

func (s memSnapshot) String() string {
	return germanPrinter.Sprintf("alloc=%d total_alloc=%d heap_objects=%d num_gc=%d",
		s.allocBytes, s.totalBytes, s.heapObjects, s.numGC)
}

// MemStat reports the current heap allocation and GC counters as a
// single formatted line, for logging around hot sections of the search.
func MemStat() string {
	return takeMemSnapshot().String()
}

// GcWithStats forces a garbage-collection cycle and returns a before/
// after/duration report, for use between benchmark runs where stable
// memory baselines matter more than GC latency.
func GcWithStats() string {
	before := takeMemSnapshot()
	start := time.Now()
	runtime.GC()
	took := time.Since(start)
	after := takeMemSnapshot()
	return germanPrinter.Sprintf("before: %s | gc took %d ms | after: %s",
		before, took.Milliseconds(), after)
}
