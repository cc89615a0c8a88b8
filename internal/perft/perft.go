// Package perft counts legal move trees in parallel. Root moves are spread
// over a bounded pool of workers, each owning a copy of the root position.
package perft

import (
	"cmp"
	"context"
	"runtime"
	"slices"
	"sync"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/shogiplay/internal/board"
)

// Options configures a perft run.
type Options struct {
	// Workers bounds the number of root moves counted at once.
	// Zero means runtime.GOMAXPROCS(0).
	Workers int

	// Cache, if non-nil, is shared by all workers.
	Cache *Cache

	// OnRootMove, if set, is called once per finished root move. Calls are
	// serialized.
	OnRootMove func(m board.Move, nodes uint64)
}

// Result is the outcome of a perft run.
type Result struct {
	Depth   int
	Nodes   uint64
	Divide  map[board.Move]uint64
	Elapsed time.Duration
}

// NPS returns nodes per second.
func (r Result) NPS() uint64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return uint64(float64(r.Nodes) / r.Elapsed.Seconds())
}

// Entry is one line of a divide listing.
type Entry struct {
	Move  board.Move
	Nodes uint64
}

// Sorted returns the divide counts ordered by move notation.
func (r Result) Sorted() []Entry {
	moves := maps.Keys(r.Divide)
	slices.SortFunc(moves, func(a, b board.Move) int {
		return cmp.Compare(a.String(), b.String())
	})

	entries := make([]Entry, len(moves))
	for i, m := range moves {
		entries[i] = Entry{Move: m, Nodes: r.Divide[m]}
	}
	return entries
}

// Run counts the leaves of the legal move tree depth plies below pos. pos is
// not modified. The first error (context cancellation) stops all workers.
func Run(ctx context.Context, pos *board.Position, depth int, opts Options) (Result, error) {
	start := time.Now()
	res := Result{Depth: depth, Divide: make(map[board.Move]uint64)}

	if depth <= 0 {
		res.Nodes = 1
		res.Elapsed = time.Since(start)
		return res, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	roots := pos.GenerateLegalMoves().Slice()
	if workers > len(roots) {
		workers = len(roots)
	}

	pool := make(chan *Worker, workers)
	for i := 0; i < workers; i++ {
		w := NewWorker(i, opts.Cache)
		w.Init(pos, depth)
		pool <- w
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, m := range roots {
		m := m
		g.Go(func() error {
			w := <-pool
			defer func() { pool <- w }()

			n, err := w.CountMove(gctx, m, depth)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			res.Divide[m] = n
			res.Nodes += n
			if opts.OnRootMove != nil {
				opts.OnRootMove(m, n)
			}
			return nil
		})
	}

	err := g.Wait()
	res.Elapsed = time.Since(start)
	if err != nil {
		return Result{}, err
	}
	return res, nil
}
