package board

import (
	"fmt"
	"strings"
)

// ToCSA converts a move to CSA notation: side sign, origin ("00" for
// drops), destination and the piece as it stands after the move
// (e.g. "+7776FU", "+8822UM", "-0033KA").
func (m Move) ToCSA(pos *Position) string {
	if m == NoMove {
		return "%TORYO"
	}

	var sb strings.Builder
	if pos.SideToMove == Black {
		sb.WriteByte('+')
	} else {
		sb.WriteByte('-')
	}

	var pt PieceType
	if m.IsDrop() {
		sb.WriteString("00")
		pt = m.DropPiece()
	} else {
		from := m.From()
		writeCSASquare(&sb, from)
		pt = pos.PieceAt(from).Type()
		if m.IsPromotion() {
			pt = pt.Promote()
		}
	}
	writeCSASquare(&sb, m.To())

	if pt >= NoPieceType {
		return m.String() // Fallback to USI
	}
	sb.WriteString(csaNames[pt])
	return sb.String()
}

func writeCSASquare(sb *strings.Builder, sq Square) {
	sb.WriteByte('1' + byte(sq.File()))
	sb.WriteByte('1' + byte(sq.Rank()))
}

// ParseCSA parses a CSA move and returns the matching legal move.
func ParseCSA(s string, pos *Position) (Move, error) {
	s = strings.TrimSpace(s)

	// Side sign is optional but must match when present
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		if (s[0] == '+') != (pos.SideToMove == Black) {
			return NoMove, fmt.Errorf("CSA move %q: wrong side to move", s)
		}
		s = s[1:]
	}
	if len(s) != 6 {
		return NoMove, fmt.Errorf("invalid CSA move: %q", s)
	}

	pt := NoPieceType
	for i, name := range csaNames {
		if s[4:] == name {
			pt = PieceType(i)
			break
		}
	}
	if pt == NoPieceType {
		return NoMove, fmt.Errorf("invalid CSA piece %q", s[4:])
	}

	to, err := parseCSASquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	var m Move
	if s[0:2] == "00" {
		m = NewDrop(pt, to)
	} else {
		from, err := parseCSASquare(s[0:2])
		if err != nil {
			return NoMove, err
		}
		moving := pos.PieceAt(from).Type()
		switch {
		case moving == pt:
			m = NewMove(from, to)
		case moving.CanPromote() && moving.Promote() == pt:
			m = NewPromotion(from, to)
		default:
			return NoMove, fmt.Errorf("CSA move %q: no %s on %s", s, pt, from)
		}
	}

	if !pos.IsLegal(m) {
		return NoMove, fmt.Errorf("CSA move %q is not legal", s)
	}
	return m, nil
}

func parseCSASquare(s string) (Square, error) {
	file := int(s[0]) - '1'
	rank := int(s[1]) - '1'
	if file < 0 || file > 8 || rank < 0 || rank > 8 {
		return NoSquare, fmt.Errorf("invalid CSA square: %s", s)
	}
	return NewSquare(file, rank), nil
}

// MovesToCSA converts a slice of moves to CSA notation.
func MovesToCSA(pos *Position, moves []Move) []string {
	result := make([]string, len(moves))
	p := pos.Copy()

	for i, m := range moves {
		result[i] = m.ToCSA(p)
		p.MakeMove(m)
	}

	return result
}
