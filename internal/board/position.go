package board

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidPosition wraps every failure reported by Validate.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrNullMoveInCheck is returned by MakeNullMove when the side to move
	// is in check.
	ErrNullMoveInCheck = errors.New("null move while in check")
)

// Position represents a complete shogi position.
type Position struct {
	// Mailbox, kept in sync with the bitboards below
	Board [NumSquares]Piece

	// Piece bitboards: [Color][PieceType]
	Pieces [2][NumPieceTypes]Bitboard

	// Occupancy bitboards
	Occupied    [2]Bitboard // All pieces of each color
	AllOccupied Bitboard    // All pieces

	// Captured pieces available for drops
	Hands [2]Hand

	SideToMove Color

	// Zobrist hash of board, hands and side to move
	Hash uint64

	// King positions (cached for check detection)
	KingSquare [2]Square

	// Checkers bitboard (pieces giving check)
	Checkers Bitboard

	// One entry per move played since construction, null moves included.
	history []UndoInfo

	tables *Tables
}

// NewPosition builds a position from a board layout, hands and side to move,
// and rejects it if it is not a legal shogi position. A nil t selects
// DefaultTables.
func NewPosition(t *Tables, cells [NumSquares]Piece, hands [2]Hand, side Color) (*Position, error) {
	if t == nil {
		t = DefaultTables()
	}
	if side != Black && side != White {
		return nil, fmt.Errorf("%w: bad side to move %d", ErrInvalidPosition, side)
	}

	p := &Position{tables: t}
	p.Clear()
	p.Hands = hands
	p.SideToMove = side

	for sq := Square(0); sq < NumSquares; sq++ {
		pc := cells[sq]
		if pc == NoPiece {
			continue
		}
		if pc > NoPiece {
			return nil, fmt.Errorf("%w: bad piece %d on %s", ErrInvalidPosition, pc, sq)
		}
		p.putPiece(pc, sq)
	}

	// Checked before anything that indexes tables by king square or hand count.
	for c := Black; c <= White; c++ {
		if p.Pieces[c][King].PopCount() != 1 {
			return nil, fmt.Errorf("%w: %s must have exactly one king", ErrInvalidPosition, c)
		}
		if err := hands[c].Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s %v", ErrInvalidPosition, c, err)
		}
	}

	p.UpdateCheckers()
	p.Hash = p.ComputeHash()

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// StartPosition returns the standard initial position with Black to move.
func StartPosition() *Position {
	var cells [NumSquares]Piece
	for i := range cells {
		cells[i] = NoPiece
	}

	backRank := [9]PieceType{Lance, Knight, Silver, Gold, King, Gold, Silver, Knight, Lance}
	for file := 0; file < 9; file++ {
		cells[NewSquare(file, 0)] = NewPiece(backRank[file], White)
		cells[NewSquare(file, 2)] = WhitePawn
		cells[NewSquare(file, 6)] = BlackPawn
		cells[NewSquare(file, 8)] = NewPiece(backRank[file], Black)
	}
	cells[SQ22] = WhiteBishop
	cells[SQ82] = WhiteRook
	cells[SQ88] = BlackBishop
	cells[SQ28] = BlackRook

	pos, err := NewPosition(nil, cells, [2]Hand{}, Black)
	if err != nil {
		panic(fmt.Sprintf("start position rejected: %v", err))
	}
	return pos
}

// Tables returns the lookup tables the position was built with.
func (p *Position) Tables() *Tables {
	return p.tables
}

// Copy creates a deep copy of the position, move history included.
// This is the only supported way to hand a position to another goroutine.
func (p *Position) Copy() *Position {
	newPos := *p
	newPos.history = append(make([]UndoInfo, 0, cap(p.history)), p.history...)
	return &newPos
}

// Ply returns the number of moves (null moves included) made since construction.
func (p *Position) Ply() int {
	return len(p.history)
}

// LastMove returns the most recent move, or NoMove.
func (p *Position) LastMove() Move {
	if len(p.history) == 0 {
		return NoMove
	}
	return p.history[len(p.history)-1].Move
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	return p.Board[sq]
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.Board[sq] == NoPiece
}

// Hand returns the hand of color c.
func (p *Position) Hand(c Color) Hand {
	return p.Hands[c]
}

// putPiece places a piece on an empty square (does not update hash).
func (p *Position) putPiece(pc Piece, sq Square) {
	c := pc.Color()
	pt := pc.Type()
	bb := SquareBB(sq)

	p.Board[sq] = pc
	p.Pieces[c][pt] = p.Pieces[c][pt].Or(bb)
	p.Occupied[c] = p.Occupied[c].Or(bb)
	p.AllOccupied = p.AllOccupied.Or(bb)

	if pt == King {
		p.KingSquare[c] = sq
	}
}

// removePiece removes the piece on sq (does not update hash).
func (p *Position) removePiece(sq Square) Piece {
	pc := p.Board[sq]
	if pc == NoPiece {
		return NoPiece
	}

	c := pc.Color()
	bb := SquareBB(sq)

	p.Board[sq] = NoPiece
	p.Pieces[c][pc.Type()] = p.Pieces[c][pc.Type()].AndNot(bb)
	p.Occupied[c] = p.Occupied[c].AndNot(bb)
	p.AllOccupied = p.AllOccupied.AndNot(bb)

	return pc
}

// Clear resets the position to an empty board with empty hands.
func (p *Position) Clear() {
	t := p.tables
	*p = Position{tables: t}
	for i := range p.Board {
		p.Board[i] = NoPiece
	}
	p.KingSquare[Black] = NoSquare
	p.KingSquare[White] = NoSquare
}

// InCheck returns true if the side to move is in check.
func (p *Position) InCheck() bool {
	return p.Checkers.More()
}

// Equal reports whether two positions have the same board, hands and side
// to move. History is ignored.
func (p *Position) Equal(o *Position) bool {
	return p.Board == o.Board && p.Hands == o.Hands && p.SideToMove == o.SideToMove
}

// Validate checks the position for internal consistency and for the rules
// every reachable shogi position obeys.
func (p *Position) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidPosition, fmt.Sprintf(format, args...))
	}

	var occ [2]Bitboard
	var counts [NumHandTypes]int
	for c := Black; c <= White; c++ {
		for pt := Pawn; pt < NoPieceType; pt++ {
			bb := p.Pieces[c][pt]
			if occ[c].Intersects(bb) || occ[c.Other()].Intersects(bb) {
				return invalid("square claimed twice by %s %s", c, pt)
			}
			occ[c] = occ[c].Or(bb)
			if pt != King {
				counts[pt.Demote()] += bb.PopCount()
			}
			for b := bb; b.More(); {
				sq := b.PopLSB()
				if p.Board[sq] != NewPiece(pt, c) {
					return invalid("board has %s on %s, bitboards have %s %s", p.Board[sq], sq, c, pt)
				}
			}
		}
		if occ[c] != p.Occupied[c] {
			return invalid("%s occupancy out of sync", c)
		}
		if err := p.Hands[c].Validate(); err != nil {
			return invalid("%s %v", c, err)
		}
		for pt := Pawn; pt <= Gold; pt++ {
			counts[pt] += p.Hands[c].Count(pt)
		}
	}
	if occ[Black].Or(occ[White]) != p.AllOccupied {
		return invalid("total occupancy out of sync")
	}
	if p.AllOccupied.PopCount() != 81-countEmpty(&p.Board) {
		return invalid("board has pieces missing from the bitboards")
	}
	for pt := Pawn; pt <= Gold; pt++ {
		if counts[pt] > int(MaxHand[pt]) {
			return invalid("%d %s in play, at most %d", counts[pt], pt, MaxHand[pt])
		}
	}

	for c := Black; c <= White; c++ {
		kings := p.Pieces[c][King]
		if kings.PopCount() != 1 {
			return invalid("%s must have exactly one king", c)
		}
		if p.KingSquare[c] != kings.LSB() {
			return invalid("%s king square out of sync", c)
		}
		for _, pt := range []PieceType{Pawn, Lance, Knight} {
			if p.Pieces[c][pt].Intersects(p.tables.DeadZone(c, pt)) {
				return invalid("%s %s with no legal move", c, pt)
			}
		}
		for file := 0; file < 9; file++ {
			if p.Pieces[c][Pawn].And(FileMask[file]).MoreThanOne() {
				return invalid("%s has two pawns on file %d", c, file+1)
			}
		}
	}

	them := p.SideToMove.Other()
	if p.AttackersByColor(p.KingSquare[them], p.SideToMove, p.AllOccupied).More() {
		return invalid("side not to move is in check")
	}
	if p.Checkers != p.AttackersByColor(p.KingSquare[p.SideToMove], them, p.AllOccupied) {
		return invalid("checkers out of sync")
	}
	if p.Hash != p.ComputeHash() {
		return invalid("hash %016x, want %016x", p.Hash, p.ComputeHash())
	}

	return nil
}

func countEmpty(cells *[NumSquares]Piece) int {
	n := 0
	for _, pc := range cells {
		if pc == NoPiece {
			n++
		}
	}
	return n
}

var csaNames = [NumPieceTypes]string{
	"FU", "KY", "KE", "GI", "KA", "HI", "KI", "OU",
	"TO", "NY", "NK", "NG", "UM", "RY",
}

// String returns the position as a CSA-style diagram: rows P1..P9 listing
// files 9 to 1, then both hands and the side to move.
func (p *Position) String() string {
	var sb strings.Builder
	for rank := 0; rank < 9; rank++ {
		fmt.Fprintf(&sb, "P%d", rank+1)
		for file := 8; file >= 0; file-- {
			pc := p.Board[NewSquare(file, rank)]
			if pc == NoPiece {
				sb.WriteString(" * ")
				continue
			}
			if pc.Color() == Black {
				sb.WriteByte('+')
			} else {
				sb.WriteByte('-')
			}
			sb.WriteString(csaNames[pc.Type()])
		}
		sb.WriteByte('\n')
	}
	for c := Black; c <= White; c++ {
		if c == Black {
			sb.WriteString("P+")
		} else {
			sb.WriteString("P-")
		}
		for _, pt := range handOrder {
			for i := 0; i < p.Hands[c].Count(pt); i++ {
				sb.WriteString("00")
				sb.WriteString(csaNames[pt])
			}
		}
		sb.WriteByte('\n')
	}
	if p.SideToMove == Black {
		sb.WriteString("+\n")
	} else {
		sb.WriteString("-\n")
	}
	fmt.Fprintf(&sb, "Hash: %016x\n", p.Hash)
	return sb.String()
}
