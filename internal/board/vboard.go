package board

// VBoard is a lightweight board for move simulation.
// Unlike Position, it only contains data needed for attack detection: no
// mailbox, hands, hash or history.
type VBoard struct {
	Pieces      [2][NumPieceTypes]Bitboard
	Occupied    [2]Bitboard
	AllOccupied Bitboard
	KingSquare  [2]Square
}

// NewVBoard creates a VBoard from a Position.
func NewVBoard(p *Position) VBoard {
	return VBoard{
		Pieces:      p.Pieces,
		Occupied:    p.Occupied,
		AllOccupied: p.AllOccupied,
		KingSquare:  p.KingSquare,
	}
}

// ApplyMove applies a move by color us (no validation).
func (v *VBoard) ApplyMove(m Move, us Color) {
	them := us.Other()
	to := m.To()
	toBB := SquareBB(to)

	if m.IsDrop() {
		pt := m.DropPiece()
		v.Pieces[us][pt] = v.Pieces[us][pt].Or(toBB)
		v.Occupied[us] = v.Occupied[us].Or(toBB)
		v.AllOccupied = v.AllOccupied.Or(toBB)
		return
	}

	from := m.From()
	fromBB := SquareBB(from)

	// Find moving piece type
	pt := NoPieceType
	for t := Pawn; t < NoPieceType; t++ {
		if v.Pieces[us][t].Intersects(fromBB) {
			pt = t
			break
		}
	}
	if pt == NoPieceType {
		return
	}

	// Handle capture - remove enemy piece at destination
	if v.Occupied[them].Intersects(toBB) {
		for t := Pawn; t < NoPieceType; t++ {
			if v.Pieces[them][t].Intersects(toBB) {
				v.Pieces[them][t] = v.Pieces[them][t].AndNot(toBB)
				break
			}
		}
		v.Occupied[them] = v.Occupied[them].AndNot(toBB)
	}

	v.Pieces[us][pt] = v.Pieces[us][pt].AndNot(fromBB)
	if m.IsPromotion() {
		pt = pt.Promote()
	}
	v.Pieces[us][pt] = v.Pieces[us][pt].Or(toBB)
	v.Occupied[us] = v.Occupied[us].AndNot(fromBB).Or(toBB)
	v.AllOccupied = v.Occupied[Black].Or(v.Occupied[White])

	// Update king position if king moved
	if pt == King {
		v.KingSquare[us] = to
	}
}

// IsKingAttacked checks if the king on kingSq is attacked by byColor.
// A piece of byColor reaches kingSq exactly when the same piece of the
// other color standing on kingSq would reach it.
func (v *VBoard) IsKingAttacked(t *Tables, kingSq Square, byColor Color) bool {
	us := byColor.Other()
	for pt := Pawn; pt < NoPieceType; pt++ {
		pieces := v.Pieces[byColor][pt]
		if pieces.Empty() {
			continue
		}
		if t.Attacks(pt, us, kingSq, v.AllOccupied).Intersects(pieces) {
			return true
		}
	}
	return false
}
