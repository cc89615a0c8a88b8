package board

// Perft counts the leaf nodes of the legal move tree to the given depth.
// Depth 0 counts the position itself.
func Perft(p *Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	lists := make([]MoveList, depth)
	return perft(p, depth, lists)
}

// perft uses lists[depth-1] as the move buffer for this ply.
func perft(p *Position, depth int, lists []MoveList) uint64 {
	ml := &lists[depth-1]
	p.GenerateLegalMovesInto(ml)

	// Bulk counting at the frontier
	if depth == 1 {
		return uint64(ml.Len())
	}

	var nodes uint64
	for i := 0; i < ml.Len(); i++ {
		undo := p.MakeMove(ml.Get(i))
		nodes += perft(p, depth-1, lists)
		p.UnmakeMove(undo)
	}
	return nodes
}

// PerftDivide returns the perft count below each root move.
func PerftDivide(p *Position, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}

	moves := p.GenerateLegalMoves()
	lists := make([]MoveList, depth)
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := p.MakeMove(m)
		if depth == 1 {
			result[m] = 1
		} else {
			result[m] = perft(p, depth-1, lists)
		}
		p.UnmakeMove(undo)
	}
	return result
}
