package board

import (
	"fmt"
	"strings"
)

// NumHandTypes is the number of piece types that can be held in hand
// (Pawn through Gold, which share their PieceType value as index).
const NumHandTypes = int(Gold) + 1

// MaxHand is the number of pieces of each hand type in a full set.
var MaxHand = [NumHandTypes]uint8{18, 4, 4, 4, 2, 2, 4}

// handOrder is the customary listing order: rook first, pawn last.
var handOrder = [NumHandTypes]PieceType{Rook, Bishop, Gold, Silver, Knight, Lance, Pawn}

// Hand holds the captured pieces of one color, counted per hand type.
type Hand [NumHandTypes]uint8

// Count returns how many pieces of the given type are held.
func (h Hand) Count(pt PieceType) int {
	return int(h[pt])
}

// Has returns true if at least one piece of the type is held.
func (h Hand) Has(pt PieceType) bool {
	return h[pt] != 0
}

// Add increments the count for pt.
func (h *Hand) Add(pt PieceType) {
	h[pt]++
}

// Remove decrements the count for pt. The caller guarantees it is held.
func (h *Hand) Remove(pt PieceType) {
	h[pt]--
}

// IsEmpty returns true if nothing is held.
func (h Hand) IsEmpty() bool {
	return h == Hand{}
}

// Total returns the number of held pieces.
func (h Hand) Total() int {
	n := 0
	for _, c := range h {
		n += int(c)
	}
	return n
}

// Validate checks that no count exceeds a full set.
func (h Hand) Validate() error {
	for pt := Pawn; pt <= Gold; pt++ {
		if h[pt] > MaxHand[pt] {
			return fmt.Errorf("hand holds %d %s, at most %d", h[pt], pt, MaxHand[pt])
		}
	}
	return nil
}

// String lists the held pieces as "R2P" style tokens (uppercase letters).
func (h Hand) String() string {
	var sb strings.Builder
	for _, pt := range handOrder {
		switch n := h[pt]; {
		case n == 0:
		case n == 1:
			sb.WriteByte(pt.Char())
		default:
			fmt.Fprintf(&sb, "%d%c", n, pt.Char())
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}
