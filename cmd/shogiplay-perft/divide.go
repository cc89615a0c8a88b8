package main

import (
	"sort"

	"golang.org/x/exp/maps"
)

type divideLine struct {
	move  string
	nodes uint64
}

// sortedDivide orders a stored divide listing by move notation.
func sortedDivide(divide map[string]uint64) []divideLine {
	moves := maps.Keys(divide)
	sort.Strings(moves)

	lines := make([]divideLine, len(moves))
	for i, m := range moves {
		lines[i] = divideLine{move: m, nodes: divide[m]}
	}
	return lines
}
