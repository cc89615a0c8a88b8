package sfen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hailam/shogiplay/internal/board"
)

var (
	// ErrInvalidMove is returned for move strings that are not USI notation.
	ErrInvalidMove = errors.New("invalid USI move")

	// ErrIllegalMove is returned for well-formed moves that are not legal in
	// the given position.
	ErrIllegalMove = errors.New("illegal move")
)

// ParseMove decodes a USI move ("7g7f", "8h2b+", "P*5e") and checks that it
// is legal in p.
func ParseMove(p *board.Position, s string) (board.Move, error) {
	m, err := decodeMove(s)
	if err != nil {
		return board.NoMove, err
	}
	if !p.IsLegal(m) {
		return board.NoMove, fmt.Errorf("%w: %s", ErrIllegalMove, s)
	}
	return m, nil
}

func decodeMove(s string) (board.Move, error) {
	if len(s) == 4 && s[1] == '*' {
		pc, err := pieceFromChar(s[0], false)
		if err != nil || pc.Color() != board.Black || pc.Type() == board.King {
			return board.NoMove, fmt.Errorf("%w: bad drop piece in %q", ErrInvalidMove, s)
		}
		to, err := board.ParseSquare(s[2:])
		if err != nil {
			return board.NoMove, fmt.Errorf("%w: %q: %v", ErrInvalidMove, s, err)
		}
		return board.NewDrop(pc.Type(), to), nil
	}

	if len(s) != 4 && !(len(s) == 5 && s[4] == '+') {
		return board.NoMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	from, err := board.ParseSquare(s[0:2])
	if err != nil {
		return board.NoMove, fmt.Errorf("%w: %q: %v", ErrInvalidMove, s, err)
	}
	to, err := board.ParseSquare(s[2:4])
	if err != nil {
		return board.NoMove, fmt.Errorf("%w: %q: %v", ErrInvalidMove, s, err)
	}
	if from == to {
		return board.NoMove, fmt.Errorf("%w: %q does not move", ErrInvalidMove, s)
	}
	if len(s) == 5 {
		return board.NewPromotion(from, to), nil
	}
	return board.NewMove(from, to), nil
}

// FormatMoves joins moves in USI notation separated by spaces.
func FormatMoves(moves []board.Move) string {
	strs := make([]string, len(moves))
	for i, m := range moves {
		strs[i] = m.String()
	}
	return strings.Join(strs, " ")
}

// ParsePosition parses the argument of a USI "position" command:
//
//	startpos [moves m1 m2 ...]
//	sfen <sfen> [moves m1 m2 ...]
//
// and returns the position after the listed moves, which stay in its
// history.
func ParsePosition(t *board.Tables, cmd string) (*board.Position, error) {
	args := strings.Fields(cmd)
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: empty position command", ErrInvalidSFEN)
	}

	movesAt := len(args)
	for i, arg := range args {
		if arg == "moves" {
			movesAt = i
			break
		}
	}

	var pos *board.Position
	var err error
	switch args[0] {
	case "startpos":
		if movesAt != 1 {
			return nil, fmt.Errorf("%w: unexpected %q after startpos", ErrInvalidSFEN, args[1])
		}
		pos, err = ParseWithTables(t, Start)
	case "sfen":
		pos, err = ParseWithTables(t, strings.Join(args[1:movesAt], " "))
	default:
		return nil, fmt.Errorf("%w: unknown position kind %q", ErrInvalidSFEN, args[0])
	}
	if err != nil {
		return nil, err
	}

	if movesAt < len(args) {
		for _, s := range args[movesAt+1:] {
			m, err := ParseMove(pos, s)
			if err != nil {
				return nil, fmt.Errorf("after %d moves: %w", pos.Ply(), err)
			}
			pos.MakeMove(m)
		}
	}
	return pos, nil
}
