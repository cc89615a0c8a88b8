package sfen

import (
	"errors"
	"testing"

	"github.com/hailam/shogiplay/internal/board"
)

func TestParseMove(t *testing.T) {
	pos := board.StartPosition()

	tests := []struct {
		in   string
		want board.Move
		err  error
	}{
		{"7g7f", board.NewMove(board.SQ77, board.SQ76), nil},
		{"2h1h", board.NewMove(board.SQ28, board.SQ18), nil},
		{"7g7e", board.NoMove, ErrIllegalMove},
		{"7g7f+", board.NoMove, ErrIllegalMove},
		{"P*5e", board.NoMove, ErrIllegalMove},
		{"7g7g", board.NoMove, ErrInvalidMove},
		{"7g", board.NoMove, ErrInvalidMove},
		{"0g7f", board.NoMove, ErrInvalidMove},
		{"K*5e", board.NoMove, ErrInvalidMove},
		{"p*5e", board.NoMove, ErrInvalidMove},
		{"7g7f=", board.NoMove, ErrInvalidMove},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			m, err := ParseMove(pos, tc.in)
			if !errors.Is(err, tc.err) {
				t.Fatalf("ParseMove(%q) error = %v, want %v", tc.in, err, tc.err)
			}
			if m != tc.want {
				t.Errorf("ParseMove(%q) = %v, want %v", tc.in, m, tc.want)
			}
		})
	}
}

func TestMoveStringRoundTrip(t *testing.T) {
	pos, err := Parse("l6nl/5+P1gk/2np1S3/p1p4Pp/3P2Sp1/1PPb2P1P/P5GS1/R8/LN4bKL w RGgsn5p 1")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	for _, m := range pos.GenerateLegalMoves().Slice() {
		got, err := ParseMove(pos, m.String())
		if err != nil || got != m {
			t.Errorf("ParseMove(%q) = %v, %v", m.String(), got, err)
		}
	}
}

func TestParsePosition(t *testing.T) {
	pos, err := ParsePosition(nil, "startpos moves 7g7f 3c3d 8h2b+ 3a2b B*3c")
	if err != nil {
		t.Fatalf("ParsePosition: %v", err)
	}
	if pos.Ply() != 5 || !pos.InCheck() {
		t.Errorf("ply=%d inCheck=%v, want 5 and true", pos.Ply(), pos.InCheck())
	}
	want := "lnsgkg1nl/1r5s1/ppppppBpp/6p2/9/2P6/PP1PPPPPP/7R1/LNSGKGSNL w b 6"
	if got := Format(pos); got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}

	same, err := ParsePosition(nil, "sfen "+Start+" moves 7g7f 3c3d 8h2b+ 3a2b B*3c")
	if err != nil {
		t.Fatalf("ParsePosition(sfen): %v", err)
	}
	if !same.Equal(pos) || same.Hash != pos.Hash {
		t.Errorf("sfen and startpos forms disagree")
	}

	bare, err := ParsePosition(board.NewTables(), "startpos")
	if err != nil {
		t.Fatalf("ParsePosition(startpos): %v", err)
	}
	if bare.Ply() != 0 || !bare.Equal(board.StartPosition()) {
		t.Errorf("ParsePosition(startpos) is not the start position")
	}

	for _, bad := range []string{
		"",
		"fen 4k4/9/9/9/9/9/9/9/4K4 b - 1",
		"startpos 7g7f",
		"startpos moves 7g7f 7g7f",
	} {
		if _, err := ParsePosition(nil, bad); err == nil {
			t.Errorf("ParsePosition(%q) succeeded", bad)
		}
	}

	if _, err := ParsePosition(nil, "startpos moves 7g7f 5e5d"); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("illegal move error = %v, want ErrIllegalMove", err)
	}
}

func TestFormatMoves(t *testing.T) {
	moves := []board.Move{
		board.NewMove(board.SQ77, board.SQ76),
		board.NewPromotion(board.SQ88, board.SQ22),
		board.NewDrop(board.Pawn, board.SQ55),
	}
	if got := FormatMoves(moves); got != "7g7f 8h2b+ P*5e" {
		t.Errorf("FormatMoves = %q", got)
	}
}
