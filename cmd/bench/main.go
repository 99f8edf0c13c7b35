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

// Command bench drives the move generator and perft harness over a fixed
// position suite (or a single -fen/-depth pair) and reports nodes, elapsed
// time and nodes per second per position, plus a combined total. It is the
// throughput and correctness smoke test for the core: no search, no
// evaluation, just make/unmake and move generation under load.
package main

import (
	"flag"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kasparik/chesscore/internal/board"
	"github.com/kasparik/chesscore/internal/config"
	"github.com/kasparik/chesscore/internal/logging"
	"github.com/kasparik/chesscore/internal/movegen"
	"github.com/kasparik/chesscore/internal/util"

	"github.com/pkg/profile"
)

var (
	log = logging.GetLog("bench")
	out = message.NewPrinter(language.German)
)

func main() {
	configFile := flag.String("config", "./config.toml", "path to configuration settings file")
	fen := flag.String("fen", "", "run a single position instead of the standard suite")
	depth := flag.Int("depth", 0, "perft depth for -fen (ignored for the suite, which carries its own depths)")
	divide := flag.Bool("divide", false, "print a per-root-move divide table for -fen instead of aggregate perft")
	workers := flag.Int("workers", 0, "number of positions to run concurrently (0 = config default)")
	cpuProfile := flag.Bool("cpuprofile", false, "write a pprof CPU profile of the run to ./cpu.pprof")
	memProfile := flag.Bool("memprofile", false, "write a pprof heap profile of the run to ./mem.pprof")
	flag.Parse()

	config.ConfFile = *configFile
	config.Setup()

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	} else if *memProfile {
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	}

	if *fen != "" {
		d := *depth
		if d <= 0 {
			d = config.Settings.Bench.DefaultDepth
		}
		if *divide {
			runDivide(*fen, d)
		} else {
			runOne(config.BenchPosition{Fen: *fen, Description: "custom", DefaultDepth: d})
		}
		return
	}

	n := *workers
	if n <= 0 {
		n = config.Settings.Bench.Workers
	}
	if err := runSuite(config.BenchPositions, n); err != nil {
		log.Errorf("bench: suite failed: %s", err)
		os.Exit(1)
	}
}

// runDivide prints the per-root-move subtree counts for fen at depth, the
// standard tool for isolating which root move a perft mismatch comes from.
func runDivide(fen string, depth int) {
	b, err := board.NewBoardFen(fen)
	if err != nil {
		log.Errorf("bench: invalid fen %q: %s", fen, err)
		os.Exit(1)
	}
	entries := movegen.Divide(b, depth)
	var total uint64
	for _, e := range entries {
		_, _ = out.Printf("%-6s %d\n", e.Move.StringUci(), e.Nodes)
		total += e.Nodes
	}
	_, _ = out.Printf("total %d\n", total)
}

// runOne runs the full Perft statistics harness for a single position and
// prints its report line via Perft.StartPerft.
func runOne(p config.BenchPosition) uint64 {
	pf := movegen.NewPerft()
	start := time.Now()
	pf.StartPerft(p.Fen, p.DefaultDepth)
	elapsed := time.Since(start)
	_, _ = out.Printf("%-22s depth=%d nodes=%d nps=%d elapsed=%s\n",
		p.Description, p.DefaultDepth, pf.Nodes, util.Nps(pf.Nodes, elapsed), elapsed)
	return pf.Nodes
}

// runSuite fans BenchPositions out across workers concurrent goroutines,
// each driving its own Board/MoveGen pair (no shared mutable state, per the
// core's single-threaded-per-Board rule), and reports a combined total.
// The per-position goroutines never return an error, so every position
// in the list is always run.
func runSuite(positions []config.BenchPosition, workers int) error {
	g := new(errgroup.Group)
	sem := make(chan struct{}, workers)

	var totalNodes uint64
	start := time.Now()

	for _, p := range positions {
		p := p
		sem <- struct{}{}
		g.Go(func() error {
			defer func() { <-sem }()
			nodes := runOne(p)
			atomic.AddUint64(&totalNodes, nodes)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	elapsed := time.Since(start)
	_, _ = out.Printf("\nsuite: %d positions, %d total nodes, elapsed=%s, nps=%d\n",
		len(positions), totalNodes, elapsed, util.Nps(totalNodes, elapsed))
	fmt.Println(util.GcWithStats())
	return nil
}
