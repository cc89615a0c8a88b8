package board

import "sync"

// direction indexes the eight rays used by sliding pieces.
// Directions are named from Black's point of view: "up" is toward rank a,
// "right" is toward file 1.
type direction uint8

const (
	dirUp        direction = iota // rank-1        (index -1)
	dirDown                       // rank+1        (index +1)
	dirRight                      // file-1        (index -9)
	dirLeft                       // file+1        (index +9)
	dirUpRight                    // file-1 rank-1 (index -10)
	dirDownLeft                   // file+1 rank+1 (index +10)
	dirUpLeft                     // file+1 rank-1 (index +8)
	dirDownRight                  // file-1 rank+1 (index -8)
	numDirections
)

var directionDelta = [numDirections][2]int{
	dirUp:        {0, -1},
	dirDown:      {0, 1},
	dirRight:     {-1, 0},
	dirLeft:      {1, 0},
	dirUpRight:   {-1, -1},
	dirDownLeft:  {1, 1},
	dirUpLeft:    {1, -1},
	dirDownRight: {-1, 1},
}

// increasing reports whether squares along the ray have growing indices,
// which decides whether the nearest blocker is the LSB or the MSB.
func (d direction) increasing() bool {
	df, dr := directionDelta[d][0], directionDelta[d][1]
	return df*9+dr > 0
}

// opposite relies on opposite rays being declared in adjacent pairs.
func (d direction) opposite() direction {
	return d ^ 1
}

// Step offsets (file, rank) for Black. White uses the same offsets with
// the rank negated.
var (
	pawnSteps   = [][2]int{{0, -1}}
	knightSteps = [][2]int{{-1, -2}, {1, -2}}
	silverSteps = [][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 1}, {1, 1}}
	goldSteps   = [][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {0, 1}}
	kingSteps   = [][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}}
)

// Tables holds every precomputed lookup the generator and the applier need.
// A Tables value is immutable once NewTables returns and may be shared by
// any number of goroutines.
type Tables struct {
	pawn   [2][NumSquares]Bitboard
	knight [2][NumSquares]Bitboard
	silver [2][NumSquares]Bitboard
	gold   [2][NumSquares]Bitboard
	king   [NumSquares]Bitboard

	// rays[sq][d] is every square from sq (exclusive) to the edge along d.
	rays [NumSquares][numDirections]Bitboard

	// Empty-board reach of the sliders, used to find snipers.
	lance  [2][NumSquares]Bitboard
	bishop [NumSquares]Bitboard
	rook   [NumSquares]Bitboard

	between [NumSquares][NumSquares]Bitboard // squares strictly between
	line    [NumSquares][NumSquares]Bitboard // full line through both, endpoints included

	// deadZone[c][pt] are the squares where an unpromoted pt of color c
	// would have no move (pawn/lance last rank, knight last two ranks).
	deadZone [2][NumHandTypes]Bitboard
	zone     [2]Bitboard

	zobrist zobristKeys
}

var (
	defaultTablesOnce sync.Once
	defaultTables     *Tables
)

// DefaultTables returns the process-wide Tables, built on first use.
func DefaultTables() *Tables {
	defaultTablesOnce.Do(func() {
		defaultTables = NewTables()
	})
	return defaultTables
}

// NewTables builds a fresh, fully initialized Tables value.
func NewTables() *Tables {
	t := &Tables{}
	t.initSteps()
	t.initRays()
	t.initLines()
	t.initZones()
	t.zobrist.init()
	return t
}

func onBoard(file, rank int) bool {
	return file >= 0 && file < 9 && rank >= 0 && rank < 9
}

func stepTargets(sq Square, steps [][2]int, c Color) Bitboard {
	bb := Empty
	for _, s := range steps {
		df, dr := s[0], s[1]
		if c == White {
			dr = -dr
		}
		f, r := sq.File()+df, sq.Rank()+dr
		if onBoard(f, r) {
			bb = bb.Set(NewSquare(f, r))
		}
	}
	return bb
}

func (t *Tables) initSteps() {
	for sq := Square(0); sq < NumSquares; sq++ {
		for c := Black; c <= White; c++ {
			t.pawn[c][sq] = stepTargets(sq, pawnSteps, c)
			t.knight[c][sq] = stepTargets(sq, knightSteps, c)
			t.silver[c][sq] = stepTargets(sq, silverSteps, c)
			t.gold[c][sq] = stepTargets(sq, goldSteps, c)
		}
		t.king[sq] = stepTargets(sq, kingSteps, Black)
	}
}

func (t *Tables) initRays() {
	for sq := Square(0); sq < NumSquares; sq++ {
		for d := direction(0); d < numDirections; d++ {
			df, dr := directionDelta[d][0], directionDelta[d][1]
			f, r := sq.File()+df, sq.Rank()+dr
			for onBoard(f, r) {
				t.rays[sq][d] = t.rays[sq][d].Set(NewSquare(f, r))
				f, r = f+df, r+dr
			}
		}
		t.lance[Black][sq] = t.rays[sq][dirUp]
		t.lance[White][sq] = t.rays[sq][dirDown]
		t.rook[sq] = t.rays[sq][dirUp].Or(t.rays[sq][dirDown]).
			Or(t.rays[sq][dirRight]).Or(t.rays[sq][dirLeft])
		t.bishop[sq] = t.rays[sq][dirUpRight].Or(t.rays[sq][dirUpLeft]).
			Or(t.rays[sq][dirDownRight]).Or(t.rays[sq][dirDownLeft])
	}
}

func (t *Tables) initLines() {
	for a := Square(0); a < NumSquares; a++ {
		for d := direction(0); d < numDirections; d++ {
			ray := t.rays[a][d]
			full := ray.Or(t.rays[a][d.opposite()]).Set(a)
			ray.ForEach(func(b Square) {
				t.between[a][b] = ray.AndNot(t.rays[b][d]).Clear(b)
				t.line[a][b] = full
			})
		}
	}
}

func (t *Tables) initZones() {
	for c := Black; c <= White; c++ {
		t.zone[c] = PromotionZone(c)
		last, lastTwo := RankMask[0], RanksBB(0, 1)
		if c == White {
			last, lastTwo = RankMask[8], RanksBB(7, 8)
		}
		t.deadZone[c][Pawn] = last
		t.deadZone[c][Lance] = last
		t.deadZone[c][Knight] = lastTwo
	}
}

// Between returns the squares strictly between sq1 and sq2, or Empty if
// they do not share a file, rank or diagonal.
func (t *Tables) Between(sq1, sq2 Square) Bitboard {
	return t.between[sq1][sq2]
}

// Line returns the full line through sq1 and sq2, or Empty if not aligned.
func (t *Tables) Line(sq1, sq2 Square) Bitboard {
	return t.line[sq1][sq2]
}

// Aligned returns true if the three squares lie on one line.
func (t *Tables) Aligned(sq1, sq2, sq3 Square) bool {
	return t.line[sq1][sq2].IsSet(sq3)
}

// PromotionZone returns the promotion zone of color c.
func (t *Tables) PromotionZone(c Color) Bitboard {
	return t.zone[c]
}

// DeadZone returns the squares on which an unpromoted pt of color c could
// never move again.
func (t *Tables) DeadZone(c Color, pt PieceType) Bitboard {
	if int(pt) >= NumHandTypes {
		return Empty
	}
	return t.deadZone[c][pt]
}
