package board

import (
	"math/bits"
	"strings"
)

// Bitboard is a set of the 81 board squares held in two 64-bit words.
// Square n lives in bit n of Lo for n < 64 and in bit n-64 of Hi otherwise,
// so the pair behaves like a single little-endian 128-bit integer.
type Bitboard struct {
	Lo, Hi uint64
}

// hiMask covers the 17 squares (64..80) stored in the high word.
const hiMask uint64 = 1<<(NumSquares-64) - 1

// Special masks
var (
	Empty    = Bitboard{}
	Universe = Bitboard{Lo: ^uint64(0), Hi: hiMask}
)

// FileMask holds one mask per file index (0 = file 1).
// RankMask holds one mask per rank index (0 = rank "a", White's back rank).
var FileMask, RankMask = fileRankMasks()

// squareBB makes SquareBB a table load. The extra entry keeps NoSquare empty.
var squareBB = func() (t [NumSquares + 1]Bitboard) {
	for sq := Square(0); sq < NumSquares; sq++ {
		if sq < 64 {
			t[sq] = Bitboard{Lo: 1 << sq}
		} else {
			t[sq] = Bitboard{Hi: 1 << (sq - 64)}
		}
	}
	return t
}()

func fileRankMasks() (files, ranks [9]Bitboard) {
	for sq := Square(0); sq < NumSquares; sq++ {
		files[sq.File()] = files[sq.File()].Or(squareBB[sq])
		ranks[sq.Rank()] = ranks[sq.Rank()].Or(squareBB[sq])
	}
	return files, ranks
}

// SquareBB returns a bitboard with only the given square set.
// NoSquare maps to the empty set.
func SquareBB(sq Square) Bitboard {
	return squareBB[sq]
}

// RanksBB returns the union of the given rank range [from, to].
func RanksBB(from, to int) Bitboard {
	bb := Empty
	for r := from; r <= to; r++ {
		bb = bb.Or(RankMask[r])
	}
	return bb
}

// PromotionZone returns the three farthest ranks for the given color.
func PromotionZone(c Color) Bitboard {
	if c == Black {
		return RanksBB(0, 2)
	}
	return RanksBB(6, 8)
}

// Set sets a bit at the given square.
func (b Bitboard) Set(sq Square) Bitboard {
	return b.Or(squareBB[sq])
}

// Clear clears a bit at the given square.
func (b Bitboard) Clear(sq Square) Bitboard {
	return b.AndNot(squareBB[sq])
}

// IsSet returns true if the bit at the given square is set.
func (b Bitboard) IsSet(sq Square) bool {
	if sq < 64 {
		return b.Lo&(1<<sq) != 0
	}
	return b.Hi&(1<<(sq-64)) != 0
}

// Toggle flips the bit at the given square.
func (b Bitboard) Toggle(sq Square) Bitboard {
	return b.Xor(squareBB[sq])
}

func (b Bitboard) And(o Bitboard) Bitboard    { return Bitboard{b.Lo & o.Lo, b.Hi & o.Hi} }
func (b Bitboard) Or(o Bitboard) Bitboard     { return Bitboard{b.Lo | o.Lo, b.Hi | o.Hi} }
func (b Bitboard) Xor(o Bitboard) Bitboard    { return Bitboard{b.Lo ^ o.Lo, b.Hi ^ o.Hi} }
func (b Bitboard) AndNot(o Bitboard) Bitboard { return Bitboard{b.Lo &^ o.Lo, b.Hi &^ o.Hi} }

// Not returns the complement restricted to the 81 board squares.
func (b Bitboard) Not() Bitboard {
	return Bitboard{^b.Lo, ^b.Hi & hiMask}
}

// Intersects reports whether b and o share any square.
func (b Bitboard) Intersects(o Bitboard) bool {
	return b.Lo&o.Lo != 0 || b.Hi&o.Hi != 0
}

// PopCount returns the number of set bits (population count).
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(b.Lo) + bits.OnesCount64(b.Hi)
}

// LSB returns the least significant bit (lowest square index).
func (b Bitboard) LSB() Square {
	if b.Lo != 0 {
		return Square(bits.TrailingZeros64(b.Lo))
	}
	if b.Hi != 0 {
		return Square(64 + bits.TrailingZeros64(b.Hi))
	}
	return NoSquare
}

// MSB returns the most significant bit (highest square index).
func (b Bitboard) MSB() Square {
	if b.Hi != 0 {
		return Square(127 - bits.LeadingZeros64(b.Hi))
	}
	if b.Lo != 0 {
		return Square(63 - bits.LeadingZeros64(b.Lo))
	}
	return NoSquare
}

// PopLSB removes and returns the least significant bit.
func (b *Bitboard) PopLSB() Square {
	if b.Lo != 0 {
		sq := Square(bits.TrailingZeros64(b.Lo))
		b.Lo &= b.Lo - 1
		return sq
	}
	sq := Square(64 + bits.TrailingZeros64(b.Hi))
	b.Hi &= b.Hi - 1
	return sq
}

// More returns true if there are any bits set.
func (b Bitboard) More() bool {
	return b.Lo|b.Hi != 0
}

// Empty returns true if no bits are set.
func (b Bitboard) Empty() bool {
	return b.Lo|b.Hi == 0
}

// MoreThanOne returns true if at least two bits are set.
func (b Bitboard) MoreThanOne() bool {
	if b.Lo != 0 && b.Hi != 0 {
		return true
	}
	return b.Lo&(b.Lo-1) != 0 || b.Hi&(b.Hi-1) != 0
}

// ShiftLeft shifts toward higher square indices, dropping bits past square 80.
func (b Bitboard) ShiftLeft(n uint) Bitboard {
	var r Bitboard
	switch {
	case n == 0:
		return b
	case n >= 64:
		r.Hi = b.Lo << (n - 64)
	default:
		r.Hi = b.Hi<<n | b.Lo>>(64-n)
		r.Lo = b.Lo << n
	}
	r.Hi &= hiMask
	return r
}

// ShiftRight shifts toward lower square indices.
func (b Bitboard) ShiftRight(n uint) Bitboard {
	switch {
	case n == 0:
		return b
	case n >= 64:
		return Bitboard{Lo: b.Hi >> (n - 64)}
	default:
		return Bitboard{Lo: b.Lo>>n | b.Hi<<(64-n), Hi: b.Hi >> n}
	}
}

// Flip rotates the board by 180 degrees (square n maps to 80-n).
// Applying it to one color's pieces gives the other color's point of view.
func (b Bitboard) Flip() Bitboard {
	rev := Bitboard{Lo: bits.Reverse64(b.Hi), Hi: bits.Reverse64(b.Lo)}
	return rev.ShiftRight(128 - NumSquares)
}

// ForEach calls fn for every set square in ascending order.
func (b Bitboard) ForEach(fn func(Square)) {
	for b.More() {
		fn(b.PopLSB())
	}
}

// Squares returns the set squares in ascending order.
func (b Bitboard) Squares() []Square {
	squares := make([]Square, 0, b.PopCount())
	b.ForEach(func(sq Square) {
		squares = append(squares, sq)
	})
	return squares
}

// String returns a visual representation of the bitboard, drawn from
// Black's side: file 9 on the left, rank a on top.
func (b Bitboard) String() string {
	var sb strings.Builder
	for rank := 0; rank < 9; rank++ {
		sb.WriteByte(byte('a' + rank))
		sb.WriteByte(' ')
		for file := 8; file >= 0; file-- {
			if b.IsSet(NewSquare(file, rank)) {
				sb.WriteString("1 ")
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  9 8 7 6 5 4 3 2 1\n")
	return sb.String()
}
