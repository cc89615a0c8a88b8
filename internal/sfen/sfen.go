// Package sfen reads and writes shogi positions in SFEN notation and moves
// in USI notation.
package sfen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hailam/shogiplay/internal/board"
)

// Start is the SFEN string for the starting position.
const Start = "lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b - 1"

// ErrInvalidSFEN wraps every syntax error reported by Parse.
var ErrInvalidSFEN = errors.New("invalid SFEN")

var pieceTypes = map[byte]board.PieceType{
	'P': board.Pawn,
	'L': board.Lance,
	'N': board.Knight,
	'S': board.Silver,
	'B': board.Bishop,
	'R': board.Rook,
	'G': board.Gold,
	'K': board.King,
}

// Parse parses an SFEN string using the default tables.
func Parse(s string) (*board.Position, error) {
	return ParseWithTables(nil, s)
}

// ParseWithTables parses an SFEN string: board, side to move, hands and an
// optional move number. The resulting position is validated.
func ParseWithTables(t *board.Tables, s string) (*board.Position, error) {
	parts := strings.Fields(s)
	if len(parts) < 3 || len(parts) > 4 {
		return nil, fmt.Errorf("%w: need 3 or 4 fields, got %d", ErrInvalidSFEN, len(parts))
	}

	cells, err := parsePlacement(parts[0])
	if err != nil {
		return nil, err
	}

	var side board.Color
	switch parts[1] {
	case "b":
		side = board.Black
	case "w":
		side = board.White
	default:
		return nil, fmt.Errorf("%w: invalid side to move %q", ErrInvalidSFEN, parts[1])
	}

	hands, err := parseHands(parts[2])
	if err != nil {
		return nil, err
	}

	if len(parts) == 4 {
		n, err := strconv.Atoi(parts[3])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: invalid move number %q", ErrInvalidSFEN, parts[3])
		}
	}

	return board.NewPosition(t, cells, hands, side)
}

// parsePlacement parses the board field, rank a first, each rank listed
// from file 9 to file 1.
func parsePlacement(placement string) ([board.NumSquares]board.Piece, error) {
	var cells [board.NumSquares]board.Piece
	for i := range cells {
		cells[i] = board.NoPiece
	}

	ranks := strings.Split(placement, "/")
	if len(ranks) != 9 {
		return cells, fmt.Errorf("%w: need 9 ranks, got %d", ErrInvalidSFEN, len(ranks))
	}

	for rank, rankStr := range ranks {
		file := 8
		promoted := false

		for i := 0; i < len(rankStr); i++ {
			c := rankStr[i]
			switch {
			case c >= '1' && c <= '9':
				if promoted {
					return cells, fmt.Errorf("%w: '+' before digit in rank %c", ErrInvalidSFEN, 'a'+rank)
				}
				file -= int(c - '0')
				if file < -1 {
					return cells, fmt.Errorf("%w: too many squares in rank %c", ErrInvalidSFEN, 'a'+rank)
				}
			case c == '+':
				if promoted {
					return cells, fmt.Errorf("%w: doubled '+' in rank %c", ErrInvalidSFEN, 'a'+rank)
				}
				promoted = true
			default:
				pc, err := pieceFromChar(c, promoted)
				if err != nil {
					return cells, err
				}
				if file < 0 {
					return cells, fmt.Errorf("%w: too many squares in rank %c", ErrInvalidSFEN, 'a'+rank)
				}
				cells[board.NewSquare(file, rank)] = pc
				file--
				promoted = false
			}
		}

		if promoted {
			return cells, fmt.Errorf("%w: dangling '+' in rank %c", ErrInvalidSFEN, 'a'+rank)
		}
		if file != -1 {
			return cells, fmt.Errorf("%w: rank %c has %d squares", ErrInvalidSFEN, 'a'+rank, 8-file)
		}
	}

	return cells, nil
}

func pieceFromChar(c byte, promoted bool) (board.Piece, error) {
	color := board.Black
	upper := c
	if c >= 'a' && c <= 'z' {
		color = board.White
		upper = c - ('a' - 'A')
	}

	pt, ok := pieceTypes[upper]
	if !ok {
		return board.NoPiece, fmt.Errorf("%w: invalid piece character %q", ErrInvalidSFEN, c)
	}
	if promoted {
		if !pt.CanPromote() {
			return board.NoPiece, fmt.Errorf("%w: %s cannot be promoted", ErrInvalidSFEN, pt)
		}
		pt = pt.Promote()
	}
	return board.NewPiece(pt, color), nil
}

// parseHands parses the hand field: "-" or count-prefixed letters, with
// uppercase for Black and lowercase for White (e.g. "RB2Pg3p").
func parseHands(s string) ([2]board.Hand, error) {
	var hands [2]board.Hand
	if s == "-" {
		return hands, nil
	}

	count := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			count = count*10 + int(c-'0')
			if count > 18 {
				return hands, fmt.Errorf("%w: hand count too large in %q", ErrInvalidSFEN, s)
			}
			continue
		}

		pc, err := pieceFromChar(c, false)
		if err != nil {
			return hands, err
		}
		pt := pc.Type()
		if pt == board.King {
			return hands, fmt.Errorf("%w: king in hand", ErrInvalidSFEN)
		}
		if i > 0 && s[i-1] >= '0' && s[i-1] <= '9' && count == 0 {
			return hands, fmt.Errorf("%w: zero count in hand %q", ErrInvalidSFEN, s)
		}
		if count == 0 {
			count = 1
		}
		for ; count > 0; count-- {
			if hands[pc.Color()].Count(pt) >= int(board.MaxHand[pt]) {
				return hands, fmt.Errorf("%w: too many %s in hand", ErrInvalidSFEN, pt)
			}
			hands[pc.Color()].Add(pt)
		}
	}

	if count != 0 {
		return hands, fmt.Errorf("%w: hand %q ends with a count", ErrInvalidSFEN, s)
	}
	return hands, nil
}

// Format returns the SFEN string of the position. The move number is one
// more than the number of moves played on the position.
func Format(p *board.Position) string {
	var sb strings.Builder

	for rank := 0; rank < 9; rank++ {
		if rank > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for file := 8; file >= 0; file-- {
			pc := p.PieceAt(board.NewSquare(file, rank))
			if pc == board.NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteString(pc.String())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}

	if p.SideToMove == board.Black {
		sb.WriteString(" b ")
	} else {
		sb.WriteString(" w ")
	}

	sb.WriteString(formatHands(p.Hands))
	fmt.Fprintf(&sb, " %d", p.Ply()+1)

	return sb.String()
}

// handOrder is the conventional SFEN listing order.
var handOrder = []board.PieceType{
	board.Rook, board.Bishop, board.Gold, board.Silver, board.Knight, board.Lance, board.Pawn,
}

func formatHands(hands [2]board.Hand) string {
	if hands[board.Black].IsEmpty() && hands[board.White].IsEmpty() {
		return "-"
	}

	var sb strings.Builder
	for c := board.Black; c <= board.White; c++ {
		for _, pt := range handOrder {
			n := hands[c].Count(pt)
			if n == 0 {
				continue
			}
			if n > 1 {
				sb.WriteString(strconv.Itoa(n))
			}
			sb.WriteString(board.NewPiece(pt, c).String())
		}
	}
	return sb.String()
}
