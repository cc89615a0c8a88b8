// Package usi implements the subset of the Universal Shogi Interface needed
// to drive move generation from a GUI or a script: position setup, perft
// and board inspection.
package usi

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/hailam/shogiplay/internal/board"
	"github.com/hailam/shogiplay/internal/perft"
	"github.com/hailam/shogiplay/internal/sfen"
)

const defaultHashMB = 64

// USI implements the protocol loop.
type USI struct {
	in  io.Reader
	out io.Writer
	mu  sync.Mutex // serializes writes to out

	tables   *board.Tables
	position *board.Position

	// Perft configuration
	hashMB  int
	threads int
	cache   *perft.Cache

	// Running perft, if any
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a protocol handler reading commands from in and writing
// responses to out.
func New(in io.Reader, out io.Writer) *USI {
	t := board.DefaultTables()
	pos, _ := sfen.ParseWithTables(t, sfen.Start)
	return &USI{
		in:       in,
		out:      out,
		tables:   t,
		position: pos,
		hashMB:   defaultHashMB,
		threads:  runtime.GOMAXPROCS(0),
	}
}

// Run reads commands until "quit" or end of input. At end of input a
// running perft is allowed to finish; "quit" cancels it.
func (u *USI) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(u.in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "usi":
			u.handleUSI()
		case "isready":
			u.println("readyok")
		case "usinewgame":
			u.handleNewGame()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(ctx, args)
		case "stop":
			u.handleStop()
		case "setoption":
			u.handleSetOption(args)
		case "quit":
			u.handleStop()
			return nil
		// Debug commands
		case "d":
			u.handleDisplay()
		case "moves":
			u.handleMoves()
		case "perft":
			u.handlePerft(ctx, args)
		default:
			u.println("info string Unknown command: " + cmd)
		}
	}

	u.waitPerft()
	return scanner.Err()
}

func (u *USI) println(a ...any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintln(u.out, a...)
}

func (u *USI) printf(format string, a ...any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintf(u.out, format, a...)
}

// handleUSI responds to the "usi" command.
func (u *USI) handleUSI() {
	u.println("id name ShogiPlay")
	u.println("id author ShogiPlay Team")
	u.printf("option name USI_Hash type spin default %d min 0 max 4096\n", defaultHashMB)
	u.printf("option name Threads type spin default %d min 1 max 256\n", runtime.GOMAXPROCS(0))
	u.println("usiok")
}

// handleNewGame resets to the start position and drops cached counts.
func (u *USI) handleNewGame() {
	u.waitPerft()
	u.position, _ = sfen.ParseWithTables(u.tables, sfen.Start)
	if u.cache != nil {
		u.cache.Clear()
	}
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos [moves 7g7f ...]
//   - position sfen <sfen> [moves 7g7f ...]
func (u *USI) handlePosition(args []string) {
	u.waitPerft()
	pos, err := sfen.ParsePosition(u.tables, strings.Join(args, " "))
	if err != nil {
		u.println("info string Invalid position: " + err.Error())
		return
	}
	u.position = pos
}

// handleGo accepts "go perft <depth>". Searching is not supported, so any
// other go command is answered with resign.
func (u *USI) handleGo(ctx context.Context, args []string) {
	if len(args) > 0 && args[0] == "perft" {
		u.handlePerft(ctx, args[1:])
		return
	}
	u.println("info string search is not supported; use go perft <depth>")
	u.println("bestmove resign")
}

// handlePerft starts a divide count in the background. "stop" cancels it.
func (u *USI) handlePerft(ctx context.Context, args []string) {
	depth := 3
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil || d < 0 {
			u.println("info string Invalid perft depth: " + args[0])
			return
		}
		depth = d
	}

	u.waitPerft()
	if u.hashMB > 0 && u.cache == nil {
		u.cache = perft.NewCache(u.hashMB)
	}

	runCtx, cancel := context.WithCancel(ctx)
	u.cancel = cancel
	u.done = make(chan struct{})

	pos := u.position.Copy()
	opts := perft.Options{Workers: u.threads}
	if u.hashMB > 0 {
		opts.Cache = u.cache
	}

	go func(done chan struct{}) {
		defer close(done)

		res, err := perft.Run(runCtx, pos, depth, opts)
		if err != nil {
			u.println("info string perft stopped: " + err.Error())
			return
		}
		for _, e := range res.Sorted() {
			u.printf("%s: %d\n", e.Move, e.Nodes)
		}
		u.println()
		u.printf("Nodes searched: %d\n", res.Nodes)
		u.printf("info string time %d nps %d\n", res.Elapsed.Milliseconds(), res.NPS())
	}(u.done)
}

// handleStop cancels a running perft and waits for it to finish.
func (u *USI) handleStop() {
	if u.cancel != nil {
		u.cancel()
	}
	u.waitPerft()
}

// waitPerft blocks until a running perft has printed its result. Commands
// that replace the position or the cache wait rather than cancel, so a
// script can queue several counts.
func (u *USI) waitPerft() {
	if u.done == nil {
		return
	}
	<-u.done
	u.cancel()
	u.cancel = nil
	u.done = nil
}

// handleSetOption processes "setoption name <name> value <value>".
func (u *USI) handleSetOption(args []string) {
	var name, value string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "name":
			if i+1 < len(args) {
				name = args[i+1]
				i++
			}
		case "value":
			if i+1 < len(args) {
				value = args[i+1]
				i++
			}
		}
	}

	n, err := strconv.Atoi(value)
	switch strings.ToLower(name) {
	case "usi_hash", "hash":
		if err != nil || n < 0 {
			u.println("info string Invalid hash size: " + value)
			return
		}
		u.waitPerft()
		u.hashMB = n
		u.cache = nil
	case "threads":
		if err != nil || n < 1 {
			u.println("info string Invalid thread count: " + value)
			return
		}
		u.threads = n
	default:
		u.println("info string Unknown option: " + name)
	}
}

// handleDisplay prints the board, its SFEN and its state.
func (u *USI) handleDisplay() {
	p := u.position
	u.printf("%v", p)
	u.println("sfen " + sfen.Format(p))
	u.printf("Checkers: %v\n", p.Checkers.Squares())
	u.printf("Repetition: %v\n", p.Repetition())
}

// handleMoves lists the legal moves in USI and CSA notation.
func (u *USI) handleMoves() {
	moves := u.position.GenerateLegalMoves().Slice()
	csa := make([]string, len(moves))
	for i, m := range moves {
		csa[i] = m.ToCSA(u.position)
	}
	u.printf("info string %d moves\n", len(moves))
	u.println("moves " + sfen.FormatMoves(moves))
	u.println("csa " + strings.Join(csa, " "))
}
