package board

// ray casts along d from sq and stops at the first occupied square,
// which stays in the result since capturing there is legal.
func (t *Tables) ray(sq Square, d direction, occupied Bitboard) Bitboard {
	r := t.rays[sq][d]
	blockers := r.And(occupied)
	if blockers.Empty() {
		return r
	}
	var first Square
	if d.increasing() {
		first = blockers.LSB()
	} else {
		first = blockers.MSB()
	}
	return r.AndNot(t.rays[first][d])
}

// PawnAttacks returns the square a pawn of color c on sq attacks.
func (t *Tables) PawnAttacks(c Color, sq Square) Bitboard {
	return t.pawn[c][sq]
}

// KnightAttacks returns the knight targets for color c.
func (t *Tables) KnightAttacks(c Color, sq Square) Bitboard {
	return t.knight[c][sq]
}

// SilverAttacks returns the silver targets for color c.
func (t *Tables) SilverAttacks(c Color, sq Square) Bitboard {
	return t.silver[c][sq]
}

// GoldAttacks returns the gold targets for color c. Promoted pawns, lances,
// knights and silvers move the same way.
func (t *Tables) GoldAttacks(c Color, sq Square) Bitboard {
	return t.gold[c][sq]
}

// KingAttacks returns the king targets.
func (t *Tables) KingAttacks(sq Square) Bitboard {
	return t.king[sq]
}

// LanceAttacks returns the lance attacks for color c given occupancy.
func (t *Tables) LanceAttacks(c Color, sq Square, occupied Bitboard) Bitboard {
	if c == Black {
		return t.ray(sq, dirUp, occupied)
	}
	return t.ray(sq, dirDown, occupied)
}

// BishopAttacks returns bishop attacks given occupancy.
func (t *Tables) BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	return t.ray(sq, dirUpRight, occupied).
		Or(t.ray(sq, dirUpLeft, occupied)).
		Or(t.ray(sq, dirDownRight, occupied)).
		Or(t.ray(sq, dirDownLeft, occupied))
}

// RookAttacks returns rook attacks given occupancy.
func (t *Tables) RookAttacks(sq Square, occupied Bitboard) Bitboard {
	return t.ray(sq, dirUp, occupied).
		Or(t.ray(sq, dirDown, occupied)).
		Or(t.ray(sq, dirRight, occupied)).
		Or(t.ray(sq, dirLeft, occupied))
}

// HorseAttacks returns the attacks of a promoted bishop.
func (t *Tables) HorseAttacks(sq Square, occupied Bitboard) Bitboard {
	return t.BishopAttacks(sq, occupied).Or(t.king[sq])
}

// DragonAttacks returns the attacks of a promoted rook.
func (t *Tables) DragonAttacks(sq Square, occupied Bitboard) Bitboard {
	return t.RookAttacks(sq, occupied).Or(t.king[sq])
}

// Attacks returns the squares a piece of type pt and color c on sq attacks.
func (t *Tables) Attacks(pt PieceType, c Color, sq Square, occupied Bitboard) Bitboard {
	switch pt {
	case Pawn:
		return t.pawn[c][sq]
	case Lance:
		return t.LanceAttacks(c, sq, occupied)
	case Knight:
		return t.knight[c][sq]
	case Silver:
		return t.silver[c][sq]
	case Gold, ProPawn, ProLance, ProKnight, ProSilver:
		return t.gold[c][sq]
	case Bishop:
		return t.BishopAttacks(sq, occupied)
	case Rook:
		return t.RookAttacks(sq, occupied)
	case King:
		return t.king[sq]
	case Horse:
		return t.HorseAttacks(sq, occupied)
	case Dragon:
		return t.DragonAttacks(sq, occupied)
	}
	return Empty
}

// golds returns every piece of color c that moves like a gold.
func (p *Position) golds(c Color) Bitboard {
	pc := &p.Pieces[c]
	return pc[Gold].Or(pc[ProPawn]).Or(pc[ProLance]).Or(pc[ProKnight]).Or(pc[ProSilver])
}

// AttackersTo returns all pieces (both colors) attacking the given square.
// Step attackers are found by looking from sq with the opposite color's
// pattern; a silver on X attacks sq exactly when a silver of the other
// color on sq would attack X.
func (p *Position) AttackersTo(sq Square, occupied Bitboard) Bitboard {
	return p.AttackersByColor(sq, Black, occupied).Or(p.AttackersByColor(sq, White, occupied))
}

// AttackersByColor returns pieces of color c attacking sq.
func (p *Position) AttackersByColor(sq Square, c Color, occupied Bitboard) Bitboard {
	t := p.tables
	them := c.Other()
	pc := &p.Pieces[c]

	rookLike := pc[Rook].Or(pc[Dragon])
	bishopLike := pc[Bishop].Or(pc[Horse])
	kingLike := pc[King].Or(pc[Horse]).Or(pc[Dragon])

	attackers := t.pawn[them][sq].And(pc[Pawn])
	attackers = attackers.Or(t.knight[them][sq].And(pc[Knight]))
	attackers = attackers.Or(t.silver[them][sq].And(pc[Silver]))
	attackers = attackers.Or(t.gold[them][sq].And(p.golds(c)))
	attackers = attackers.Or(t.king[sq].And(kingLike))
	attackers = attackers.Or(t.LanceAttacks(them, sq, occupied).And(pc[Lance]))
	if rookLike.Intersects(t.rook[sq]) {
		attackers = attackers.Or(t.RookAttacks(sq, occupied).And(rookLike))
	}
	if bishopLike.Intersects(t.bishop[sq]) {
		attackers = attackers.Or(t.BishopAttacks(sq, occupied).And(bishopLike))
	}
	return attackers
}

// IsSquareAttacked returns true if the square is attacked by the given color.
func (p *Position) IsSquareAttacked(sq Square, byColor Color) bool {
	return p.AttackersByColor(sq, byColor, p.AllOccupied).More()
}

// UpdateCheckers recomputes the checkers bitboard for the side to move.
func (p *Position) UpdateCheckers() {
	us := p.SideToMove
	p.Checkers = p.AttackersByColor(p.KingSquare[us], us.Other(), p.AllOccupied)
}

// sliderBlockers returns the pieces (of either color) that are the only
// piece between sq and an enemy slider aimed at it. pinners receives the
// sliders doing the aiming.
func (p *Position) sliderBlockers(sq Square, enemy Color) (blockers, pinners Bitboard) {
	t := p.tables
	pc := &p.Pieces[enemy]
	us := enemy.Other()

	snipers := t.rook[sq].And(pc[Rook].Or(pc[Dragon]))
	snipers = snipers.Or(t.bishop[sq].And(pc[Bishop].Or(pc[Horse])))
	snipers = snipers.Or(t.lance[us][sq].And(pc[Lance]))

	for snipers.More() {
		s := snipers.PopLSB()
		between := t.between[sq][s].And(p.AllOccupied)
		if between.More() && !between.MoreThanOne() {
			blockers = blockers.Or(between)
			pinners = pinners.Set(s)
		}
	}
	return blockers, pinners
}

// Pinned returns the pieces of color c pinned to their own king.
func (p *Position) Pinned(c Color) Bitboard {
	blockers, _ := p.sliderBlockers(p.KingSquare[c], c.Other())
	return blockers.And(p.Occupied[c])
}
