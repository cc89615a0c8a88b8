package board

import "testing"

// newTestPosition builds a position from a sparse piece placement.
func newTestPosition(t *testing.T, pieces map[Square]Piece, hands [2]Hand, side Color) *Position {
	t.Helper()
	var cells [NumSquares]Piece
	for i := range cells {
		cells[i] = NoPiece
	}
	for sq, pc := range pieces {
		cells[sq] = pc
	}
	pos, err := NewPosition(nil, cells, hands, side)
	if err != nil {
		t.Fatalf("NewPosition: %v", err)
	}
	return pos
}

// movesFrom returns the generated board moves starting on from.
func movesFrom(ml *MoveList, from Square) []Move {
	var out []Move
	for _, m := range ml.Slice() {
		if !m.IsDrop() && m.From() == from {
			out = append(out, m)
		}
	}
	return out
}

func sameMoves(got, want []Move) bool {
	if len(got) != len(want) {
		return false
	}
	seen := make(map[Move]int)
	for _, m := range got {
		seen[m]++
	}
	for _, m := range want {
		if seen[m] == 0 {
			return false
		}
		seen[m]--
	}
	return true
}

func TestStartPositionMoves(t *testing.T) {
	pos := StartPosition()
	moves := pos.GenerateLegalMoves()

	if moves.Len() != 30 {
		t.Fatalf("start position has %d moves, want 30", moves.Len())
	}

	want := []Move{
		NewMove(SQ77, SQ76),
		NewMove(SQ28, SQ18),
		NewMove(SQ28, SQ78),
		NewMove(SQ59, SQ58),
		NewMove(SQ19, SQ18),
	}
	for _, m := range want {
		if !moves.Contains(m) {
			t.Errorf("missing move %v", m)
		}
	}
	for _, m := range moves.Slice() {
		if m.IsDrop() || m.IsPromotion() {
			t.Errorf("unexpected move %v", m)
		}
	}
}

func TestDoubleCheckOnlyKingMoves(t *testing.T) {
	pos := newTestPosition(t, map[Square]Piece{
		SQ59: BlackKing,
		SQ69: BlackGold,
		SQ51: WhiteRook,
		SQ15: WhiteBishop,
		SQ91: WhiteKing,
	}, [2]Hand{Black: {Pawn: 1}}, Black)

	if !pos.Checkers.MoreThanOne() {
		t.Fatalf("expected double check, checkers:\n%v", pos.Checkers)
	}

	moves := pos.GenerateLegalMoves()
	want := []Move{NewMove(SQ59, SQ68), NewMove(SQ59, SQ49)}
	if !sameMoves(moves.Slice(), want) {
		t.Errorf("legal moves = %v, want %v", moves.Slice(), want)
	}
	for _, m := range moves.Slice() {
		if m.IsDrop() || m.From() != SQ59 {
			t.Errorf("non-king move %v generated in double check", m)
		}
	}
}

func TestSingleCheckEvasions(t *testing.T) {
	// Rook checks down the 5th file; the gold can interpose on 5h and a
	// pawn can be dropped on any square between.
	pos := newTestPosition(t, map[Square]Piece{
		SQ59: BlackKing,
		SQ69: BlackGold,
		SQ51: WhiteRook,
		SQ91: WhiteKing,
	}, [2]Hand{Black: {Pawn: 1}}, Black)

	moves := pos.GenerateLegalMoves()
	if !moves.Contains(NewMove(SQ69, SQ58)) {
		t.Errorf("missing interposition 6i5h")
	}
	if moves.Contains(NewMove(SQ69, SQ68)) {
		t.Errorf("6i6h does not answer the check")
	}
	for _, sq := range []Square{SQ52, SQ53, SQ54, SQ55, SQ56, SQ57, SQ58} {
		if !moves.Contains(NewDrop(Pawn, sq)) {
			t.Errorf("missing blocking drop P*%v", sq)
		}
	}
	if moves.Contains(NewDrop(Pawn, SQ44)) {
		t.Errorf("drop off the check line generated")
	}
}

func TestPinnedPieceStaysOnLine(t *testing.T) {
	pos := newTestPosition(t, map[Square]Piece{
		SQ59: BlackKing,
		SQ58: BlackSilver,
		SQ51: WhiteRook,
		SQ91: WhiteKing,
	}, [2]Hand{}, Black)

	if got := pos.Pinned(Black); got != SquareBB(SQ58) {
		t.Fatalf("pinned =\n%v", got)
	}

	moves := pos.GenerateLegalMoves()
	got := movesFrom(moves, SQ58)
	want := []Move{NewMove(SQ58, SQ57)}
	if !sameMoves(got, want) {
		t.Errorf("pinned silver moves = %v, want %v", got, want)
	}
	if moves.Len() != 5 {
		t.Errorf("got %d moves, want 5 (4 king + 1 silver)", moves.Len())
	}
}

func TestPawnDropMateExcluded(t *testing.T) {
	// P*1b would be mate: the gold on 1c guards the pawn and the king's
	// other flights are blocked by its own pieces.
	mate := newTestPosition(t, map[Square]Piece{
		SQ11: WhiteKing,
		SQ21: WhiteKnight,
		SQ22: WhiteSilver,
		SQ13: BlackGold,
		SQ59: BlackKing,
	}, [2]Hand{Black: {Pawn: 1}}, Black)

	moves := mate.GenerateLegalMoves()
	if moves.Contains(NewDrop(Pawn, SQ12)) {
		t.Errorf("pawn drop mate P*1b generated")
	}
	if !moves.Contains(NewDrop(Pawn, SQ55)) {
		t.Errorf("ordinary pawn drop P*5e missing")
	}

	// Without the gold the king can take the pawn, so the checking drop is legal.
	check := newTestPosition(t, map[Square]Piece{
		SQ11: WhiteKing,
		SQ21: WhiteKnight,
		SQ22: WhiteSilver,
		SQ79: BlackGold,
		SQ59: BlackKing,
	}, [2]Hand{Black: {Pawn: 1}}, Black)

	if !check.GenerateLegalMoves().Contains(NewDrop(Pawn, SQ12)) {
		t.Errorf("checking pawn drop P*1b missing")
	}
}

func TestDropMateWithOtherPiecesAllowed(t *testing.T) {
	pos := newTestPosition(t, map[Square]Piece{
		SQ11: WhiteKing,
		SQ21: WhiteKnight,
		SQ22: WhiteSilver,
		SQ13: BlackGold,
		SQ59: BlackKing,
	}, [2]Hand{Black: {Gold: 1}}, Black)

	m := NewDrop(Gold, SQ12)
	if !pos.IsLegal(m) {
		t.Fatalf("G*1b not generated")
	}
	pos.MakeMove(m)
	if !pos.IsCheckmate() {
		t.Errorf("G*1b should be checkmate:\n%v", pos)
	}
	if pos.IsStalemate() {
		t.Errorf("checkmate reported as stalemate")
	}
}

func TestNifu(t *testing.T) {
	pos := newTestPosition(t, map[Square]Piece{
		SQ59: BlackKing,
		SQ77: BlackPawn,
		SQ51: WhiteKing,
	}, [2]Hand{Black: {Pawn: 1}}, Black)

	drops := 0
	for _, m := range pos.GenerateLegalMoves().Slice() {
		if !m.IsDrop() || m.DropPiece() != Pawn {
			continue
		}
		drops++
		if m.To().File() == 6 {
			t.Errorf("pawn dropped on the file of an unpromoted pawn: %v", m)
		}
		if m.To().Rank() == 0 {
			t.Errorf("pawn dropped on the last rank: %v", m)
		}
	}
	if drops != 63 {
		t.Errorf("got %d pawn drops, want 63", drops)
	}

	// A promoted pawn does not count.
	pos = newTestPosition(t, map[Square]Piece{
		SQ59: BlackKing,
		SQ77: BlackProPawn,
		SQ51: WhiteKing,
	}, [2]Hand{Black: {Pawn: 1}}, Black)
	if !pos.GenerateLegalMoves().Contains(NewDrop(Pawn, SQ76)) {
		t.Errorf("pawn drop next to a tokin missing")
	}
}

func TestDropDeadZones(t *testing.T) {
	for _, side := range []Color{Black, White} {
		var hands [2]Hand
		hands[side] = Hand{Lance: 1, Knight: 1, Gold: 1}
		pos := newTestPosition(t, map[Square]Piece{
			SQ59: BlackKing,
			SQ51: WhiteKing,
		}, hands, side)

		counts := map[PieceType]int{}
		for _, m := range pos.GenerateLegalMoves().Slice() {
			if !m.IsDrop() {
				continue
			}
			pt := m.DropPiece()
			counts[pt]++
			if rel := m.To().RelativeRank(side); (pt == Lance && rel < 1) || (pt == Knight && rel < 2) {
				t.Errorf("%v: futile drop %v", side, m)
			}
		}

		if counts[Lance] != 71 || counts[Knight] != 62 || counts[Gold] != 79 {
			t.Errorf("%v: drop counts = %v, want lance 71, knight 62, gold 79", side, counts)
		}
	}
}

func TestForcedPromotion(t *testing.T) {
	pos := newTestPosition(t, map[Square]Piece{
		SQ59: BlackKing,
		SQ12: BlackPawn,
		SQ33: BlackKnight,
		SQ93: BlackLance,
		SQ51: WhiteKing,
	}, [2]Hand{}, Black)

	moves := pos.GenerateLegalMoves()

	tests := []struct {
		from Square
		want []Move
	}{
		{SQ12, []Move{NewPromotion(SQ12, SQ11)}},
		{SQ33, []Move{NewPromotion(SQ33, SQ21), NewPromotion(SQ33, SQ41)}},
		{SQ93, []Move{NewPromotion(SQ93, SQ91), NewPromotion(SQ93, SQ92), NewMove(SQ93, SQ92)}},
	}
	for _, tc := range tests {
		if got := movesFrom(moves, tc.from); !sameMoves(got, tc.want) {
			t.Errorf("moves from %v = %v, want %v", tc.from, got, tc.want)
		}
	}

	for _, m := range moves.Slice() {
		pt := pos.PieceAt(m.From()).Type()
		if !m.IsPromotion() && pos.Tables().DeadZone(Black, pt).IsSet(m.To()) {
			t.Errorf("non-promoting move %v into the dead zone", m)
		}
	}
}

func TestOptionalPromotion(t *testing.T) {
	// Leaving the zone still allows promotion; silvers may decline.
	pos := newTestPosition(t, map[Square]Piece{
		SQ59: BlackKing,
		SQ33: BlackSilver,
		SQ51: WhiteKing,
	}, [2]Hand{}, Black)

	moves := pos.GenerateLegalMoves()
	for _, to := range []Square{SQ44, SQ24, SQ32, SQ22, SQ42} {
		if !moves.Contains(NewMove(SQ33, to)) || !moves.Contains(NewPromotion(SQ33, to)) {
			t.Errorf("3c%v: want both promoting and non-promoting variants", to)
		}
	}
}

func TestCapturesAndQuietsPartition(t *testing.T) {
	for _, pos := range samplePositions(t) {
		all := pos.GenerateLegalMoves()
		caps := pos.GenerateCaptures()
		quiets := pos.GenerateQuiets()

		if caps.Len()+quiets.Len() != all.Len() {
			t.Errorf("captures %d + quiets %d != all %d\n%v", caps.Len(), quiets.Len(), all.Len(), pos)
		}
		for _, m := range caps.Slice() {
			if !m.IsCapture(pos) || !all.Contains(m) {
				t.Errorf("bad capture %v", m)
			}
		}
		for _, m := range quiets.Slice() {
			if m.IsCapture(pos) || !all.Contains(m) {
				t.Errorf("bad quiet %v", m)
			}
		}
	}
}

func TestNoMoveLeavesKingAttacked(t *testing.T) {
	for _, pos := range samplePositions(t) {
		us := pos.SideToMove
		for _, m := range pos.GenerateLegalMoves().Slice() {
			undo := pos.MakeMove(m)
			if pos.IsSquareAttacked(pos.KingSquare[us], us.Other()) {
				t.Errorf("move %v leaves the king attacked\n%v", m, pos)
			}
			pos.UnmakeMove(undo)
		}
	}
}

func TestDebugVerificationAgrees(t *testing.T) {
	DebugLegalMoveVerification = true
	defer func() { DebugLegalMoveVerification = false }()

	pos := StartPosition()
	if got := Perft(pos, 3); got != 25470 {
		t.Errorf("Perft(3) with verification = %d, want 25470", got)
	}
}

func TestGivesCheck(t *testing.T) {
	for _, pos := range samplePositions(t) {
		for _, m := range pos.GenerateLegalMoves().Slice() {
			want := func() bool {
				undo := pos.MakeMove(m)
				defer pos.UnmakeMove(undo)
				return pos.InCheck()
			}()
			if got := pos.GivesCheck(m); got != want {
				t.Errorf("GivesCheck(%v) = %v, want %v\n%v", m, got, want, pos)
			}
		}
	}
}
