package sfen

import (
	"errors"
	"testing"

	"github.com/hailam/shogiplay/internal/board"
)

func TestStartRoundTrip(t *testing.T) {
	pos, err := Parse(Start)
	if err != nil {
		t.Fatalf("Parse(Start): %v", err)
	}
	want := board.StartPosition()
	if !pos.Equal(want) || pos.Hash != want.Hash {
		t.Errorf("parsed start position differs from StartPosition()\n%v", pos)
	}
	if got := Format(pos); got != Start {
		t.Errorf("Format = %q, want %q", got, Start)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []string{
		"R8/2K1S1SSk/4B4/9/9/9/9/9/1L1L1L3 b RBGSNLP3g3n17p 1",
		"l6nl/5+P1gk/2np1S3/p1p4Pp/3P2Sp1/1PPb2P1P/P5GS1/R8/LN4bKL w RGgsn5p 1",
		"8l/1l+R2P3/p2pBG1pp/kps1p4/Nn1P2G2/P1P1P2PP/1PS6/1KSG3+r1/LN2+p3L w Sbgn3p 1",
		"4k4/9/9/9/9/9/9/9/4K4 b - 1",
	}
	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			pos, err := Parse(s)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got := Format(pos); got != s {
				t.Errorf("Format = %q", got)
			}
		})
	}
}

func TestParseOptionalMoveNumber(t *testing.T) {
	a, err := Parse("lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b -")
	if err != nil {
		t.Fatalf("Parse without move number: %v", err)
	}
	if !a.Equal(board.StartPosition()) {
		t.Errorf("position differs from start")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		sfen string
		want error
	}{
		{"TooFewFields", "4k4/9/9/9/9/9/9/9/4K4 b", ErrInvalidSFEN},
		{"EightRanks", "4k4/9/9/9/9/9/9/4K4 b - 1", ErrInvalidSFEN},
		{"ShortRank", "4k3/9/9/9/9/9/9/9/4K4 b - 1", ErrInvalidSFEN},
		{"LongRank", "4k5/9/9/9/9/9/9/9/4K4 b - 1", ErrInvalidSFEN},
		{"BadPiece", "4k4/9/9/9/4Q4/9/9/9/4K4 b - 1", ErrInvalidSFEN},
		{"PromotedGold", "4k4/9/9/9/4+G4/9/9/9/4K4 b - 1", ErrInvalidSFEN},
		{"PromotedKing", "4+k4/9/9/9/9/9/9/9/4K4 b - 1", ErrInvalidSFEN},
		{"DanglingPlus", "4k4/9/9/9/8+/9/9/9/4K4 b - 1", ErrInvalidSFEN},
		{"BadSide", "4k4/9/9/9/9/9/9/9/4K4 x - 1", ErrInvalidSFEN},
		{"KingInHand", "4k4/9/9/9/9/9/9/9/4K4 b K 1", ErrInvalidSFEN},
		{"ZeroCount", "4k4/9/9/9/9/9/9/9/4K4 b 0P 1", ErrInvalidSFEN},
		{"TrailingCount", "4k4/9/9/9/9/9/9/9/4K4 b 2 1", ErrInvalidSFEN},
		{"HandOverflow", "4k4/9/9/9/9/9/9/9/4K4 b 3R 1", ErrInvalidSFEN},
		{"BadMoveNumber", "4k4/9/9/9/9/9/9/9/4K4 b - 0", ErrInvalidSFEN},
		{"NoKing", "9/9/9/9/9/9/9/9/4K4 b - 1", board.ErrInvalidPosition},
		{"Nifu", "4k4/9/9/4P4/9/4P4/9/9/4K4 b - 1", board.ErrInvalidPosition},
		{"DeadPawn", "P3k4/9/9/9/9/9/9/9/4K4 b - 1", board.ErrInvalidPosition},
		{"DeadKnight", "4k4/9/9/9/9/9/9/n8/4K4 b - 1", board.ErrInvalidPosition},
		{"ThirdRook", "4k4/9/9/9/9/9/9/9/R3K4 b 2R 1", board.ErrInvalidPosition},
		{"OpponentInCheck", "4k4/9/9/9/4R4/9/9/9/4K4 b - 1", board.ErrInvalidPosition},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.sfen)
			if !errors.Is(err, tc.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tc.sfen, err, tc.want)
			}
		})
	}
}

func TestMaxMovesPosition(t *testing.T) {
	pos, err := Parse("R8/2K1S1SSk/4B4/9/9/9/9/9/1L1L1L3 b RBGSNLP3g3n17p 1")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := pos.GenerateLegalMoves().Len(); got != 593 {
		t.Errorf("legal moves = %d, want 593", got)
	}
	// P*1c checks, but the king escapes by taking the silver on 2b, so the
	// drop is not mate and must be generated.
	drop := board.NewDrop(board.Pawn, board.SQ13)
	if !pos.IsLegal(drop) {
		t.Fatalf("pawn-drop check P*1c not generated")
	}
	if !pos.GivesCheck(drop) {
		t.Errorf("P*1c does not give check")
	}
	pos.MakeMove(drop)
	replies := pos.GenerateLegalMoves().Slice()
	if len(replies) != 1 || replies[0] != board.NewMove(board.SQ12, board.SQ22) {
		t.Errorf("replies to P*1c = %v, want [1b2b]", replies)
	}
}

func TestPerftMatsuri(t *testing.T) {
	pos, err := Parse("l6nl/5+P1gk/2np1S3/p1p4Pp/3P2Sp1/1PPb2P1P/P5GS1/R8/LN4bKL w RGgsn5p 1")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	for depth, want := range []uint64{1, 207, 28684} {
		if got := board.Perft(pos, depth); got != want {
			t.Errorf("Perft(%d) = %d, want %d", depth, got, want)
		}
	}
}
