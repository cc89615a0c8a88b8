package board

import "log"

// DebugMoveValidation enables entry checks in MakeMove that log moves
// breaking the caller's contract (moving from an empty square, capturing a
// king, dropping a piece not in hand). Off by default: the hot path trusts
// the generator.
var DebugMoveValidation = false

// MakeMove applies a legal move to the position and returns undo information.
// The returned token must be passed to exactly one UnmakeMove call, in LIFO
// order with respect to other MakeMove calls on the same position.
func (p *Position) MakeMove(m Move) UndoInfo {
	t := p.tables
	us := p.SideToMove
	them := us.Other()
	to := m.To()

	if DebugMoveValidation {
		p.debugCheckMove(m)
	}

	undo := UndoInfo{
		Move:       m,
		Captured:   NoPiece,
		Hash:       p.Hash,
		Checkers:   p.Checkers,
		KingSquare: p.KingSquare,
	}

	if m.IsDrop() {
		pt := m.DropPiece()
		p.Hash ^= t.zobrist.hand[us][pt][p.Hands[us].Count(pt)]
		p.Hands[us].Remove(pt)

		pc := NewPiece(pt, us)
		p.putPiece(pc, to)
		p.Hash ^= t.zobrist.piece[pc][to]
	} else {
		from := m.From()

		// Captured pieces change sides and lose their promotion.
		if captured := p.Board[to]; captured != NoPiece {
			p.removePiece(to)
			p.Hash ^= t.zobrist.piece[captured][to]

			ht := captured.Type().Demote()
			p.Hands[us].Add(ht)
			p.Hash ^= t.zobrist.hand[us][ht][p.Hands[us].Count(ht)]
			undo.Captured = captured
		}

		pc := p.removePiece(from)
		p.Hash ^= t.zobrist.piece[pc][from]
		if m.IsPromotion() {
			pc = NewPiece(pc.Type().Promote(), us)
		}
		p.putPiece(pc, to)
		p.Hash ^= t.zobrist.piece[pc][to]
	}

	p.SideToMove = them
	p.Hash ^= t.zobrist.side
	p.UpdateCheckers()

	p.history = append(p.history, undo)
	return undo
}

// UnmakeMove undoes the move recorded in undo, restoring the position
// exactly as it was before the matching MakeMove.
func (p *Position) UnmakeMove(undo UndoInfo) {
	n := len(p.history)
	if n == 0 {
		panic("board: UnmakeMove without a matching MakeMove")
	}
	p.history = p.history[:n-1]

	m := undo.Move
	us := p.SideToMove.Other()
	to := m.To()

	pc := p.removePiece(to)
	if m.IsDrop() {
		p.Hands[us].Add(m.DropPiece())
	} else {
		if m.IsPromotion() {
			pc = NewPiece(pc.Type().Demote(), us)
		}
		p.putPiece(pc, m.From())
		if undo.Captured != NoPiece {
			p.putPiece(undo.Captured, to)
			p.Hands[us].Remove(undo.Captured.Type().Demote())
		}
	}

	p.SideToMove = us
	p.Hash = undo.Hash
	p.Checkers = undo.Checkers
	p.KingSquare = undo.KingSquare
}

// MakeNullMove passes the turn. Passing out of check is not a legal
// transition, so it fails with ErrNullMoveInCheck when in check.
func (p *Position) MakeNullMove() (NullMoveUndo, error) {
	if p.InCheck() {
		return NullMoveUndo{}, ErrNullMoveInCheck
	}

	undo := NullMoveUndo{Hash: p.Hash}
	p.history = append(p.history, UndoInfo{
		Move:       NoMove,
		Captured:   NoPiece,
		Hash:       p.Hash,
		Checkers:   p.Checkers,
		KingSquare: p.KingSquare,
	})

	p.SideToMove = p.SideToMove.Other()
	p.Hash ^= p.tables.zobrist.side

	// The side now to move was the side not to move, which is never in check.
	p.Checkers = Empty

	return undo, nil
}

// UnmakeNullMove undoes a null move.
func (p *Position) UnmakeNullMove(undo NullMoveUndo) {
	n := len(p.history)
	if n == 0 {
		panic("board: UnmakeNullMove without a matching MakeNullMove")
	}
	p.history = p.history[:n-1]

	p.SideToMove = p.SideToMove.Other()
	p.Hash = undo.Hash
	p.Checkers = Empty
}

// GivesCheck returns true if the legal move m checks the opponent's king.
func (p *Position) GivesCheck(m Move) bool {
	t := p.tables
	us := p.SideToMove
	ksq := p.KingSquare[us.Other()]
	to := m.To()
	occ := p.AllOccupied.Set(to)

	var pt PieceType
	if m.IsDrop() {
		pt = m.DropPiece()
	} else {
		from := m.From()
		pt = p.Board[from].Type()
		if m.IsPromotion() {
			pt = pt.Promote()
		}
		occ = occ.Clear(from)

		// Discovered check: from shielded ksq from one of our sliders and
		// the piece leaves the line.
		blockers, _ := p.sliderBlockers(ksq, us)
		if blockers.IsSet(from) && !t.Aligned(ksq, from, to) {
			return true
		}
	}

	return t.Attacks(pt, us, to, occ).IsSet(ksq)
}

func (p *Position) debugCheckMove(m Move) {
	us := p.SideToMove
	to := m.To()

	if m.IsDrop() {
		if !p.Hands[us].Has(m.DropPiece()) {
			log.Printf("MAKEMOVE ILLEGAL: %v drops %v not in hand! move=%v hash=%x", us, m.DropPiece(), m, p.Hash)
		}
		if !p.IsEmpty(to) {
			log.Printf("MAKEMOVE ILLEGAL: drop onto occupied %v! move=%v hash=%x", to, m, p.Hash)
		}
		return
	}

	from := m.From()
	if pc := p.Board[from]; pc == NoPiece || pc.Color() != us {
		log.Printf("MAKEMOVE ILLEGAL: %v has no piece on %v! move=%v hash=%x", us, from, m, p.Hash)
	}
	if captured := p.Board[to]; captured != NoPiece {
		if captured.Color() == us {
			log.Printf("MAKEMOVE ILLEGAL: %v captures own piece on %v! move=%v hash=%x", us, to, m, p.Hash)
		}
		if captured.Type() == King {
			log.Printf("MAKEMOVE ILLEGAL: Trying to capture %v King at %v! move=%v hash=%x",
				captured.Color(), to, m, p.Hash)
		}
	}
}
