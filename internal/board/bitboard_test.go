package board

import "testing"

func TestBitboardAcrossWords(t *testing.T) {
	var b Bitboard
	for _, sq := range []Square{SQ11, SQ81, SQ82, SQ99} {
		b = b.Set(sq)
	}
	if b.PopCount() != 4 {
		t.Fatalf("PopCount = %d, want 4", b.PopCount())
	}
	if b.LSB() != SQ11 || b.MSB() != SQ99 {
		t.Errorf("LSB/MSB = %v/%v, want 1a/9i", b.LSB(), b.MSB())
	}

	// SQ81 is index 63, the last bit of the low word.
	if SquareBB(SQ81).Lo != 1<<63 || SquareBB(SQ82).Hi != 1 {
		t.Errorf("word boundary misplaced")
	}

	got := b.Squares()
	want := []Square{SQ11, SQ81, SQ82, SQ99}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Squares()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if Universe.PopCount() != NumSquares || Universe.Not().More() {
		t.Errorf("Universe is not exactly the 81 squares")
	}
}

func TestBitboardShift(t *testing.T) {
	tests := []struct {
		from Square
		n    uint
		want Square
	}{
		{SQ11, 1, SQ12},
		{SQ81, 1, SQ82},
		{SQ71, 9, SQ81},
		{SQ81, 9, SQ91},
		{SQ11, 80, SQ99},
	}
	for _, tc := range tests {
		if got := SquareBB(tc.from).ShiftLeft(tc.n); got != SquareBB(tc.want) {
			t.Errorf("%v << %d = %v", tc.from, tc.n, got.Squares())
		}
		if got := SquareBB(tc.want).ShiftRight(tc.n); got != SquareBB(tc.from) {
			t.Errorf("%v >> %d = %v", tc.want, tc.n, got.Squares())
		}
	}

	if SquareBB(SQ99).ShiftLeft(1).More() {
		t.Errorf("shift past 9i kept a bit")
	}
}

func TestBitboardFlip(t *testing.T) {
	for sq := Square(0); sq < NumSquares; sq++ {
		if got := SquareBB(sq).Flip(); got != SquareBB(sq.Flip()) {
			t.Fatalf("Flip(%v) = %v, want %v", sq, got.Squares(), sq.Flip())
		}
	}
	if PromotionZone(Black).Flip() != PromotionZone(White) {
		t.Errorf("promotion zones are not mirror images")
	}
}

func TestSquareNotation(t *testing.T) {
	for _, tc := range []struct {
		sq   Square
		want string
	}{
		{SQ11, "1a"},
		{SQ77, "7g"},
		{SQ55, "5e"},
		{SQ99, "9i"},
	} {
		if got := tc.sq.String(); got != tc.want {
			t.Errorf("%d.String() = %q, want %q", tc.sq, got, tc.want)
		}
		parsed, err := ParseSquare(tc.want)
		if err != nil || parsed != tc.sq {
			t.Errorf("ParseSquare(%q) = %v, %v", tc.want, parsed, err)
		}
	}
	for _, bad := range []string{"", "0a", "1j", "a1", "10a"} {
		if _, err := ParseSquare(bad); err == nil {
			t.Errorf("ParseSquare(%q) succeeded", bad)
		}
	}
}

func TestStepAttacks(t *testing.T) {
	tb := DefaultTables()

	tests := []struct {
		name string
		got  Bitboard
		want []Square
	}{
		{"BlackPawn5e", tb.PawnAttacks(Black, SQ55), []Square{SQ54}},
		{"WhitePawn5e", tb.PawnAttacks(White, SQ55), []Square{SQ56}},
		{"BlackKnight5e", tb.KnightAttacks(Black, SQ55), []Square{SQ43, SQ63}},
		{"WhiteKnight5e", tb.KnightAttacks(White, SQ55), []Square{SQ47, SQ67}},
		{"BlackKnight1c", tb.KnightAttacks(Black, SQ13), []Square{SQ21}},
		{"BlackSilver5e", tb.SilverAttacks(Black, SQ55), []Square{SQ44, SQ54, SQ64, SQ46, SQ66}},
		{"BlackGold5e", tb.GoldAttacks(Black, SQ55), []Square{SQ44, SQ54, SQ64, SQ45, SQ65, SQ56}},
		{"WhiteGold5e", tb.GoldAttacks(White, SQ55), []Square{SQ46, SQ56, SQ66, SQ45, SQ65, SQ54}},
		{"King1a", tb.KingAttacks(SQ11), []Square{SQ12, SQ21, SQ22}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var want Bitboard
			for _, sq := range tc.want {
				want = want.Set(sq)
			}
			if tc.got != want {
				t.Errorf("got %v, want %v", tc.got.Squares(), tc.want)
			}
		})
	}
}

func TestSliderAttacks(t *testing.T) {
	tb := DefaultTables()

	if got := tb.RookAttacks(SQ55, Empty).PopCount(); got != 16 {
		t.Errorf("rook on empty board reaches %d squares, want 16", got)
	}
	if got := tb.BishopAttacks(SQ55, Empty).PopCount(); got != 16 {
		t.Errorf("bishop on empty board reaches %d squares, want 16", got)
	}
	if got := tb.DragonAttacks(SQ55, Empty).PopCount(); got != 20 {
		t.Errorf("dragon on empty board reaches %d squares, want 20", got)
	}
	if got := tb.HorseAttacks(SQ55, Empty).PopCount(); got != 20 {
		t.Errorf("horse on empty board reaches %d squares, want 20", got)
	}

	occ := SquareBB(SQ53).Set(SQ35).Set(SQ77)
	rook := tb.RookAttacks(SQ55, occ)
	for _, sq := range []Square{SQ54, SQ53, SQ45, SQ35, SQ56, SQ59, SQ65, SQ95} {
		if !rook.IsSet(sq) {
			t.Errorf("rook on 5e misses %v", sq)
		}
	}
	for _, sq := range []Square{SQ52, SQ25} {
		if rook.IsSet(sq) {
			t.Errorf("rook on 5e sees through a blocker to %v", sq)
		}
	}

	bishop := tb.BishopAttacks(SQ55, occ)
	if !bishop.IsSet(SQ77) || bishop.IsSet(SQ88) {
		t.Errorf("bishop on 5e: blocker on 7g handled wrong")
	}

	lance := tb.LanceAttacks(Black, SQ59, occ)
	want := SquareBB(SQ58).Set(SQ57).Set(SQ56).Set(SQ55).Set(SQ54).Set(SQ53)
	if lance != want {
		t.Errorf("black lance on 5i = %v", lance.Squares())
	}
	if tb.LanceAttacks(White, SQ51, Empty).PopCount() != 8 {
		t.Errorf("white lance on 5a should reach the whole file")
	}
}

func TestBetweenAndLine(t *testing.T) {
	tb := DefaultTables()

	if got := tb.Between(SQ51, SQ55); got != SquareBB(SQ52).Set(SQ53).Set(SQ54) {
		t.Errorf("Between(5a, 5e) = %v", got.Squares())
	}
	if got := tb.Between(SQ11, SQ99); got.PopCount() != 7 {
		t.Errorf("Between(1a, 9i) has %d squares, want 7", got.PopCount())
	}
	if tb.Between(SQ11, SQ23).More() {
		t.Errorf("knight-distance squares have a between set")
	}
	if !tb.Aligned(SQ11, SQ55, SQ99) || tb.Aligned(SQ11, SQ55, SQ98) {
		t.Errorf("Aligned on the long diagonal is wrong")
	}
	if tb.Line(SQ51, SQ55) != FileMask[4] {
		t.Errorf("Line(5a, 5e) is not file 5")
	}
}

func TestZones(t *testing.T) {
	tb := DefaultTables()

	if tb.PromotionZone(Black) != RanksBB(0, 2) || tb.PromotionZone(White) != RanksBB(6, 8) {
		t.Errorf("promotion zones wrong")
	}
	if tb.DeadZone(Black, Pawn) != RankMask[0] || tb.DeadZone(Black, Knight) != RanksBB(0, 1) {
		t.Errorf("black dead zones wrong")
	}
	if tb.DeadZone(White, Lance) != RankMask[8] || tb.DeadZone(White, Knight) != RanksBB(7, 8) {
		t.Errorf("white dead zones wrong")
	}
	if tb.DeadZone(Black, Gold).More() || tb.DeadZone(Black, Silver).More() {
		t.Errorf("gold and silver must have no dead zone")
	}
}
