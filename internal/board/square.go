// Package board implements shogi board representation using bitboards.
package board

import "fmt"

// NumSquares is the number of squares on the board.
const NumSquares = 81

// Square represents a square on the shogi board (0-80).
// Index = (file-1)*9 + (rank-1), so SQ11 = 0, SQ19 = 8, SQ21 = 9 and SQ99 = 80.
// Rank 1 ("a" in USI notation) is White's back rank.
type Square uint8

// Square constants for all 81 squares, named SQ<file><rank>.
const (
	SQ11 Square = iota
	SQ12
	SQ13
	SQ14
	SQ15
	SQ16
	SQ17
	SQ18
	SQ19
	SQ21
	SQ22
	SQ23
	SQ24
	SQ25
	SQ26
	SQ27
	SQ28
	SQ29
	SQ31
	SQ32
	SQ33
	SQ34
	SQ35
	SQ36
	SQ37
	SQ38
	SQ39
	SQ41
	SQ42
	SQ43
	SQ44
	SQ45
	SQ46
	SQ47
	SQ48
	SQ49
	SQ51
	SQ52
	SQ53
	SQ54
	SQ55
	SQ56
	SQ57
	SQ58
	SQ59
	SQ61
	SQ62
	SQ63
	SQ64
	SQ65
	SQ66
	SQ67
	SQ68
	SQ69
	SQ71
	SQ72
	SQ73
	SQ74
	SQ75
	SQ76
	SQ77
	SQ78
	SQ79
	SQ81
	SQ82
	SQ83
	SQ84
	SQ85
	SQ86
	SQ87
	SQ88
	SQ89
	SQ91
	SQ92
	SQ93
	SQ94
	SQ95
	SQ96
	SQ97
	SQ98
	SQ99
	NoSquare Square = NumSquares
)

// File returns the file index of the square (0-8, where 0 is file 1).
func (sq Square) File() int {
	return int(sq) / 9
}

// Rank returns the rank index of the square (0-8, where 0 is rank "a").
func (sq Square) Rank() int {
	return int(sq) % 9
}

// String returns the USI notation for the square (e.g., "7g").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", '1'+sq.File(), 'a'+sq.Rank())
}

// NewSquare creates a square from file and rank (0-indexed).
func NewSquare(file, rank int) Square {
	return Square(file*9 + rank)
}

// ParseSquare parses USI notation (e.g., "7g") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	file := int(s[0]) - '1'
	rank := int(s[1]) - 'a'

	if file < 0 || file > 8 || rank < 0 || rank > 8 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	return NewSquare(file, rank), nil
}

// IsValid returns true if the square is a valid board square (0-80).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// Flip returns the square rotated by 180 degrees (the opponent's view).
func (sq Square) Flip() Square {
	return NumSquares - 1 - sq
}

// RelativeRank returns the rank counted from the given color's far side.
// Rank 0 is the last rank the color can advance to.
func (sq Square) RelativeRank(c Color) int {
	if c == Black {
		return sq.Rank()
	}
	return 8 - sq.Rank()
}
