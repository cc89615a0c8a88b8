package perft

import (
	"context"

	"github.com/hailam/shogiplay/internal/board"
)

// cancelCheckDepth is the smallest remaining depth at which a worker polls
// its context. Shallower subtrees finish quickly enough to run to the end.
const cancelCheckDepth = 3

// Worker counts subtrees of root moves on its own copy of the root position.
// Workers share only the cache.
type Worker struct {
	id int

	// Per-worker position copy
	pos *board.Position

	// Per-ply move buffers, indexed by remaining depth - 1
	lists []board.MoveList

	// Shared resources
	cache *Cache

	nodes uint64
}

// NewWorker creates a worker. cache may be nil.
func NewWorker(id int, cache *Cache) *Worker {
	return &Worker{
		id:    id,
		cache: cache,
	}
}

// ID returns the worker's ID.
func (w *Worker) ID() int {
	return w.id
}

// Nodes returns the number of leaves counted by this worker since Init.
func (w *Worker) Nodes() uint64 {
	return w.nodes
}

// Init gives the worker its own copy of the root position and buffers for
// the given depth.
func (w *Worker) Init(pos *board.Position, depth int) {
	w.pos = pos.Copy()
	if cap(w.lists) < depth {
		w.lists = make([]board.MoveList, depth)
	}
	w.lists = w.lists[:depth]
	w.nodes = 0
}

// CountMove plays root move m and counts the leaves depth-1 plies below it.
// The worker's position is restored before returning, also on cancellation.
func (w *Worker) CountMove(ctx context.Context, m board.Move, depth int) (uint64, error) {
	undo := w.pos.MakeMove(m)
	defer w.pos.UnmakeMove(undo)

	n, err := w.count(ctx, depth-1)
	if err != nil {
		return 0, err
	}
	w.nodes += n
	return n, nil
}

func (w *Worker) count(ctx context.Context, depth int) (uint64, error) {
	if depth <= 0 {
		return 1, nil
	}

	if depth >= cancelCheckDepth {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
	}

	if w.cache != nil && depth >= 2 {
		if n, ok := w.cache.Probe(w.pos.Hash, depth); ok {
			return n, nil
		}
	}

	ml := &w.lists[depth-1]
	w.pos.GenerateLegalMovesInto(ml)

	// Bulk counting at the frontier
	if depth == 1 {
		return uint64(ml.Len()), nil
	}

	var nodes uint64
	for i := 0; i < ml.Len(); i++ {
		undo := w.pos.MakeMove(ml.Get(i))
		n, err := w.count(ctx, depth-1)
		w.pos.UnmakeMove(undo)
		if err != nil {
			return 0, err
		}
		nodes += n
	}

	if w.cache != nil {
		w.cache.Store(w.pos.Hash, depth, nodes)
	}
	return nodes, nil
}
