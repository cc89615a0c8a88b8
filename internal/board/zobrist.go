package board

// zobristKeys are the random values XORed together to form a position hash.
// Keys come from a PRNG with a fixed seed, so hashes are reproducible
// across runs and across independently built Tables.
type zobristKeys struct {
	piece [NumPieces][NumSquares]uint64
	// hand[c][pt][n] is XORed in while color c holds at least n pieces of pt.
	hand [2][NumHandTypes][19]uint64
	side uint64 // XOR when White to move
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func (z *zobristKeys) init() {
	rng := newPRNG(0x98F107A2BEEF1234) // Fixed seed

	for pc := 0; pc < NumPieces; pc++ {
		for sq := 0; sq < NumSquares; sq++ {
			z.piece[pc][sq] = rng.next()
		}
	}

	for c := Black; c <= White; c++ {
		for pt := Pawn; pt <= Gold; pt++ {
			for n := 1; n <= int(MaxHand[pt]); n++ {
				z.hand[c][pt][n] = rng.next()
			}
		}
	}

	z.side = rng.next()
}

// ZobristPiece returns the key for a piece on a square.
func (t *Tables) ZobristPiece(pc Piece, sq Square) uint64 {
	return t.zobrist.piece[pc][sq]
}

// ZobristHand returns the key toggled when color c's count of pt moves
// between n-1 and n.
func (t *Tables) ZobristHand(c Color, pt PieceType, n int) uint64 {
	return t.zobrist.hand[c][pt][n]
}

// ZobristSideToMove returns the key for White to move.
func (t *Tables) ZobristSideToMove() uint64 {
	return t.zobrist.side
}

// ComputeHash computes the hash from scratch.
func (p *Position) ComputeHash() uint64 {
	t := p.tables
	var h uint64

	for sq := Square(0); sq < NumSquares; sq++ {
		if pc := p.Board[sq]; pc != NoPiece {
			h ^= t.zobrist.piece[pc][sq]
		}
	}

	for c := Black; c <= White; c++ {
		for pt := Pawn; pt <= Gold; pt++ {
			for n := 1; n <= p.Hands[c].Count(pt); n++ {
				h ^= t.zobrist.hand[c][pt][n]
			}
		}
	}

	if p.SideToMove == White {
		h ^= t.zobrist.side
	}

	return h
}
