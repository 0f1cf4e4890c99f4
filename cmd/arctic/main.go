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

package main

import (
	"flag"
	"fmt"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/arcticchess/arctic/internal/board"
	"github.com/arcticchess/arctic/internal/config"
	"github.com/arcticchess/arctic/internal/engine"
	"github.com/arcticchess/arctic/internal/logging"
	"github.com/arcticchess/arctic/internal/movegen"
	"github.com/arcticchess/arctic/internal/notation"
	"github.com/arcticchess/arctic/internal/position"
	"github.com/arcticchess/arctic/internal/variant"
)

var out = message.NewPrinter(language.German)

// arctic has no driver front-end of its own - no UCI, no XBoard, no
// console REPL. This binary exists for the things a driver can't do for
// you at the command line: perft correctness runs and a one-shot "think
// about this FEN and print the move" smoke test against the
// engine.Coordinator, the same command/response protocol any real driver
// would speak.
func main() {
	versionInfo := flag.Bool("version", false, "prints version and exits")
	configFile := flag.String("config", "./config/config.toml", "path to configuration settings file")
	logLvl := flag.String("loglvl", "info", "standard log level\n(critical|error|warning|notice|info|debug)")
	perft := flag.Int("perft", 0, "runs perft on the start position (or -fen) to the given depth")
	fen := flag.String("fen", variant.StartFen, "fen for -perft and -think")
	think := flag.Bool("think", false, "search -fen with the coordinator and print the chosen move")
	depth := flag.Int("depth", 6, "max-depth config value used by -think")
	movetime := flag.Duration("movetime", 5*time.Second, "how long to wait for -think to produce a move")
	threads := flag.Int("threads", 1, "number of worker threads behind the root-parallel fan-out")
	ttmb := flag.Int("ttmb", 64, "transposition table size in megabytes")
	cpuProfile := flag.Bool("cpuprofile", false, "write a CPU profile of this run to ./bin")
	flag.Parse()

	if *versionInfo {
		printVersionInfo()
		return
	}

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("./bin")).Stop()
	}

	config.Setup(*configFile)
	if lvl, found := config.LogLevels[*logLvl]; found {
		config.LogLevel = lvl
	}
	logging.GetLog()

	switch {
	case *perft != 0:
		runPerft(*fen, *perft)
	case *think:
		runThink(*fen, *depth, *threads, *ttmb, *movetime)
	default:
		flag.Usage()
	}
}

func runPerft(fen string, depth int) {
	var p movegen.Perft
	p.StartPerft(fen, depth)
}

func runThink(fen string, depth, threads, ttmb int, movetime time.Duration) {
	pos, err := position.FromFen(fen)
	if err != nil {
		out.Printf("invalid fen %q: %v\n", fen, err)
		return
	}
	if err := pos.IsLegal(); err != nil {
		out.Printf("illegal position %q: %v\n", fen, err)
		return
	}
	b := board.NewFromPosition(pos)

	c := engine.NewCoordinator(threads, ttmb)
	go c.Run()

	c.Commands() <- engine.Command{Kind: engine.NewGame}
	c.Commands() <- engine.Command{Kind: engine.SetPosition, Board: b}
	c.Commands() <- engine.Command{Kind: engine.ConfigSet, Key: "max-depth", Value: depth}
	c.Commands() <- engine.Command{Kind: engine.Think}

	deadline := time.After(movetime)
	for {
		select {
		case r := <-c.Responses():
			switch r.Kind {
			case engine.RespPV:
				out.Printf("info depth %d eval %s pv %s\n", r.Level, r.Eval, r.Moves.StringUci())
			case engine.RespMove:
				out.Printf("move %s (%s)\n", r.Move.StringUci(), notation.ToSAN(b, r.Move))
				return
			case engine.RespDraw:
				out.Printf("draw %s\n", r.Move.StringUci())
				return
			case engine.RespResign:
				out.Println("resign")
				return
			}
		case <-deadline:
			c.Commands() <- engine.Command{Kind: engine.MoveNow}
		}
	}
}

func printVersionInfo() {
	out.Println("arctic - a standard-chess search core")
	out.Println("Environment:")
	out.Printf("  Using GO version %s\n", runtime.Version())
	out.Printf("  Running %s using %s as a compiler\n", runtime.GOARCH, runtime.Compiler)
	out.Printf("  Number of CPU: %d\n", runtime.NumCPU())
	fmt.Println()
}
