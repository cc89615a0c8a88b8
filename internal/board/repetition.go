package board

// SennichiteCount is the number of occurrences of one position that ends
// the game by repetition.
const SennichiteCount = 4

// RepetitionState classifies the current position with respect to
// repetition, from the side to move's point of view.
type RepetitionState uint8

const (
	NoRepetition   RepetitionState = iota
	RepetitionDraw                 // plain sennichite
	RepetitionWin                  // the opponent gave check on every move of the cycle
	RepetitionLoss                 // the side to move gave check on every move of the cycle
)

// String returns the state name.
func (s RepetitionState) String() string {
	switch s {
	case RepetitionDraw:
		return "Draw"
	case RepetitionWin:
		return "Win"
	case RepetitionLoss:
		return "Loss"
	default:
		return "None"
	}
}

// IsRepetition reports whether the current hash occurred at least n times
// earlier with the same side to move. Hash-only: suitable for search, not
// for adjudication.
func (p *Position) IsRepetition(n int) bool {
	count := 0
	for j := len(p.history) - 1; j >= 0; j-- {
		if p.history[j].Move == NoMove {
			break
		}
		if (len(p.history)-j)%2 == 0 && p.history[j].Hash == p.Hash {
			count++
			if count >= n {
				return true
			}
		}
	}
	return false
}

// earlierOccurrences returns the plies (most recent first) at which the
// current position occurred before. Hash matches are confirmed by rewinding
// a scratch copy and comparing board, hands and side to move. The scan stops
// at the most recent null move.
func (p *Position) earlierOccurrences() []int {
	var plies []int
	var scratch *Position

	for j := len(p.history) - 1; j >= 0; j-- {
		if p.history[j].Move == NoMove {
			break
		}
		if (len(p.history)-j)%2 != 0 || p.history[j].Hash != p.Hash {
			continue
		}
		if scratch == nil {
			scratch = p.Copy()
		}
		for scratch.Ply() > j {
			scratch.UnmakeMove(scratch.history[scratch.Ply()-1])
		}
		if scratch.Equal(p) {
			plies = append(plies, j)
		}
	}
	return plies
}

// RepetitionCount returns how many times the current position occurred
// before, confirmed by exact comparison.
func (p *Position) RepetitionCount() int {
	return len(p.earlierOccurrences())
}

// checkedAt reports whether the side to move was in check at the given ply.
func (p *Position) checkedAt(ply int) bool {
	if ply == len(p.history) {
		return p.Checkers.More()
	}
	return p.history[ply].Checkers.More()
}

// Repetition classifies the position under the sennichite rule: the fourth
// occurrence of the same position ends the game as a draw, unless one side
// gave check with every one of its moves since the first occurrence, in
// which case that side loses.
func (p *Position) Repetition() RepetitionState {
	plies := p.earlierOccurrences()
	if len(plies)+1 < SennichiteCount {
		return NoRepetition
	}

	first := plies[SennichiteCount-2]
	now := len(p.history)

	// Moves by the side to move are played at plies first, first+2, ...;
	// each of them checked if the following ply is in check.
	usChecking, themChecking := true, true
	for ply := first + 1; ply <= now; ply++ {
		if (now-ply)%2 == 1 {
			usChecking = usChecking && p.checkedAt(ply)
		} else {
			themChecking = themChecking && p.checkedAt(ply)
		}
	}

	switch {
	case usChecking:
		return RepetitionLoss
	case themChecking:
		return RepetitionWin
	default:
		return RepetitionDraw
	}
}
