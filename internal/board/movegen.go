package board

import "log"

// genKind selects which legal moves a generation pass emits.
type genKind uint8

const (
	genAll      genKind = iota
	genCaptures         // board moves landing on an enemy piece
	genQuiets           // everything else, drops included
)

// DebugLegalMoveVerification enables dual-path verification of generated
// moves: every move is also checked by make/unmake, mismatches are logged,
// and moves that leave the king attacked are dropped.
var DebugLegalMoveVerification = false

// GenerateLegalMoves generates all legal moves.
func (p *Position) GenerateLegalMoves() *MoveList {
	ml := NewMoveList()
	p.generate(ml, genAll)
	return ml
}

// GenerateLegalMovesInto fills ml with all legal moves, reusing its storage.
func (p *Position) GenerateLegalMovesInto(ml *MoveList) {
	ml.Clear()
	p.generate(ml, genAll)
}

// GenerateCaptures generates legal captures (promotions included).
func (p *Position) GenerateCaptures() *MoveList {
	ml := NewMoveList()
	p.generate(ml, genCaptures)
	return ml
}

// GenerateQuiets generates legal non-captures and drops.
func (p *Position) GenerateQuiets() *MoveList {
	ml := NewMoveList()
	p.generate(ml, genQuiets)
	return ml
}

func (p *Position) generate(ml *MoveList, kind genKind) {
	t := p.tables
	us := p.SideToMove
	them := us.Other()
	ksq := p.KingSquare[us]
	start := ml.Len()

	var kindMask Bitboard
	switch kind {
	case genCaptures:
		kindMask = p.Occupied[them]
	case genQuiets:
		kindMask = p.AllOccupied.Not()
	default:
		kindMask = p.Occupied[us].Not()
	}

	// King moves are checked against attacks with the king lifted, so that
	// stepping back along a slider's ray is caught.
	occNoKing := p.AllOccupied.Clear(ksq)
	for targets := t.king[ksq].And(kindMask).AndNot(p.Occupied[us]); targets.More(); {
		to := targets.PopLSB()
		if p.AttackersByColor(to, them, occNoKing).Empty() {
			ml.Add(NewMove(ksq, to))
		}
	}

	// Double check: only the king can move.
	if p.Checkers.MoreThanOne() {
		p.verify(ml, start)
		return
	}

	target := p.Occupied[us].Not()
	dropTarget := p.AllOccupied.Not()
	if p.Checkers.More() {
		checker := p.Checkers.LSB()
		dropTarget = t.between[ksq][checker]
		target = dropTarget.Set(checker)
	}
	target = target.And(kindMask)
	if kind == genCaptures {
		dropTarget = Empty
	}

	pinned := p.Pinned(us)
	for pt := Pawn; pt < NoPieceType; pt++ {
		if pt == King {
			continue
		}
		for pieces := p.Pieces[us][pt]; pieces.More(); {
			from := pieces.PopLSB()
			attacks := t.Attacks(pt, us, from, p.AllOccupied).And(target)
			if pinned.IsSet(from) {
				attacks = attacks.And(t.line[ksq][from])
			}
			for attacks.More() {
				p.addBoardMoves(ml, pt, from, attacks.PopLSB())
			}
		}
	}

	if dropTarget.More() && !p.Hands[us].IsEmpty() {
		p.generateDrops(ml, dropTarget)
	}

	p.verify(ml, start)
}

// addBoardMoves adds from-to with its promotion variants. Pieces that would
// be left without a move (pawn/lance on the last rank, knight on the last
// two) may only arrive promoted.
func (p *Position) addBoardMoves(ml *MoveList, pt PieceType, from, to Square) {
	t := p.tables
	us := p.SideToMove

	if pt.CanPromote() && (t.zone[us].IsSet(from) || t.zone[us].IsSet(to)) {
		ml.Add(NewPromotion(from, to))
		if !t.DeadZone(us, pt).IsSet(to) {
			ml.Add(NewMove(from, to))
		}
		return
	}
	ml.Add(NewMove(from, to))
}

// generateDrops adds drops onto target for every piece type in hand.
func (p *Position) generateDrops(ml *MoveList, target Bitboard) {
	t := p.tables
	us := p.SideToMove
	them := us.Other()
	hand := p.Hands[us]

	for pt := Pawn; pt <= Gold; pt++ {
		if !hand.Has(pt) {
			continue
		}
		squares := target.AndNot(t.deadZone[us][pt])

		if pt == Pawn {
			// Nifu: at most one unpromoted pawn per file.
			pawns := p.Pieces[us][Pawn]
			for file := 0; file < 9; file++ {
				if pawns.Intersects(FileMask[file]) {
					squares = squares.AndNot(FileMask[file])
				}
			}

			// Uchifuzume: the single square from which a pawn checks the
			// enemy king must not be a mating drop.
			front := t.pawn[them][p.KingSquare[them]]
			if squares.Intersects(front) {
				sq := front.LSB()
				if p.isPawnDropMate(sq) {
					squares = squares.Clear(sq)
				}
			}
		}

		for squares.More() {
			ml.Add(NewDrop(pt, squares.PopLSB()))
		}
	}
}

// isPawnDropMate tentatively drops a pawn on sq and reports whether the
// opponent is left without a legal reply.
func (p *Position) isPawnDropMate(sq Square) bool {
	undo := p.MakeMove(NewDrop(Pawn, sq))
	mate := !p.HasLegalMoves()
	p.UnmakeMove(undo)
	return mate
}

// verify re-checks ml[start:] by make/unmake when DebugLegalMoveVerification
// is on, logging and removing any move that leaves the king attacked.
func (p *Position) verify(ml *MoveList, start int) {
	if !DebugLegalMoveVerification {
		return
	}
	kept := start
	for i := start; i < ml.Len(); i++ {
		m := ml.Get(i)
		if !p.isLegalSlow(m) {
			log.Printf("DEBUG MISMATCH: generator accepted move %v but it leaves the king attacked\n%v", m, p)
			continue
		}
		ml.Set(kept, m)
		kept++
	}
	ml.count = kept
}

// isLegalSlow plays m on a scratch VBoard and tests whether the mover's king
// is attacked. It shares no code with the pin and check logic of generate.
func (p *Position) isLegalSlow(m Move) bool {
	us := p.SideToMove
	v := NewVBoard(p)
	v.ApplyMove(m, us)
	return !v.IsKingAttacked(p.tables, v.KingSquare[us], us.Other())
}

// IsLegal returns true if m is one of the legal moves of the position.
func (p *Position) IsLegal(m Move) bool {
	var ml MoveList
	p.generate(&ml, genAll)
	return ml.Contains(m)
}

// HasLegalMoves returns true if the side to move has any legal moves.
func (p *Position) HasLegalMoves() bool {
	var ml MoveList
	p.generate(&ml, genAll)
	return ml.Len() > 0
}

// IsCheckmate returns true if the position is checkmate.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the side to move has no legal move while not
// in check. Rare in shogi but possible in composed positions.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}
