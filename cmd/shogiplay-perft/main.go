package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"

	"github.com/hailam/shogiplay/internal/board"
	"github.com/hailam/shogiplay/internal/perft"
	"github.com/hailam/shogiplay/internal/sfen"
	"github.com/hailam/shogiplay/internal/storage"
	"github.com/hailam/shogiplay/internal/usi"
)

var (
	position   = flag.String("position", "startpos", `USI position: "startpos [moves ...]" or "sfen <sfen> [moves ...]"`)
	depth      = flag.Int("depth", 4, "perft depth")
	divide     = flag.Bool("divide", false, "print the node count below each root move")
	workers    = flag.Int("workers", 0, "parallel workers (0 = GOMAXPROCS)")
	hashMB     = flag.Int("hash", 64, "node cache size in MB (0 disables the cache)")
	useDB      = flag.Bool("db", false, "look up and save results in the perft database")
	dbDir      = flag.String("dbdir", "", "perft database directory (default: user data dir)")
	list       = flag.Bool("list", false, "list stored perft results and exit")
	usiMode    = flag.Bool("usi", false, "run the USI command loop on stdin/stdout")
	timeout    = flag.Duration("timeout", 0, "abort the count after this long (0 = no limit)")
	verbosity  = flag.Int("v", 0, "log verbosity")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	stdr.SetVerbosity(*verbosity)
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags))

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	if *usiMode {
		if err := usi.New(os.Stdin, os.Stdout).Run(context.Background()); err != nil {
			log.Print(err)
		}
		return
	}

	var store *storage.PerftStore
	if *useDB || *list {
		var err error
		store, err = storage.Open(storage.Options{Dir: *dbDir, Logger: logger})
		if err != nil {
			log.Fatal(err)
		}
		defer store.Close()
	}

	if *list {
		if err := listRecords(store); err != nil {
			log.Print(err)
		}
		return
	}

	pos, err := sfen.ParsePosition(nil, *position)
	if err != nil {
		log.Fatal(err)
	}
	logger.V(1).Info("position", "sfen", sfen.Format(pos), "repetition", pos.Repetition().String())
	logger.V(2).Info("board\n" + pos.String())

	if store != nil {
		rec, ok, err := store.Get(pos, *depth)
		if err != nil {
			log.Printf("Warning: perft database lookup failed: %v", err)
		} else if ok {
			logger.V(1).Info("served from database", "created", rec.Created)
			printRecord(rec)
			return
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	opts := perft.Options{
		Workers:    *workers,
		OnRootMove: rootMoveLogger(logger),
	}
	if *hashMB > 0 {
		opts.Cache = perft.NewCache(*hashMB)
	}

	res, err := perft.Run(ctx, pos, *depth, opts)
	if err != nil {
		log.Printf("perft aborted: %v", err)
		return
	}

	if *divide {
		for _, e := range res.Sorted() {
			fmt.Printf("%s: %s\n", e.Move, humanize.Comma(int64(e.Nodes)))
		}
		fmt.Println()
	}
	fmt.Printf("Depth: %d\n", res.Depth)
	fmt.Printf("Nodes: %s\n", humanize.Comma(int64(res.Nodes)))
	fmt.Printf("Time: %v\n", res.Elapsed.Round(time.Millisecond))
	fmt.Printf("NPS: %s\n", humanize.Comma(int64(res.NPS())))
	if opts.Cache != nil {
		fmt.Printf("Cache hits: %.1f%% of %s entries\n", opts.Cache.HitRate(), humanize.Comma(int64(opts.Cache.Size())))
	}

	if store != nil {
		rec := storage.NewRecord(pos, res.Depth, res.Nodes, res.Divide, res.Elapsed)
		if err := store.Put(pos, rec); err != nil {
			log.Printf("Warning: could not save result: %v", err)
		}
	}
}

func rootMoveLogger(logger logr.Logger) func(board.Move, uint64) {
	if !logger.V(1).Enabled() {
		return nil
	}
	return func(m board.Move, nodes uint64) {
		logger.V(1).Info("root move counted", "move", m.String(), "nodes", nodes)
	}
}

func printRecord(rec *storage.PerftRecord) {
	if *divide {
		for _, e := range sortedDivide(rec.Divide) {
			fmt.Printf("%s: %s\n", e.move, humanize.Comma(int64(e.nodes)))
		}
		fmt.Println()
	}
	fmt.Printf("Depth: %d\n", rec.Depth)
	fmt.Printf("Nodes: %s\n", humanize.Comma(int64(rec.Nodes)))
	fmt.Printf("Time: %v (stored %s)\n", rec.Elapsed.Round(time.Millisecond), humanize.Time(rec.Created))
}

func listRecords(store *storage.PerftStore) error {
	return store.ForEach(func(rec *storage.PerftRecord) error {
		fmt.Printf("%-80s depth %2d  %15s nodes  %s\n",
			rec.Position, rec.Depth, humanize.Comma(int64(rec.Nodes)), humanize.Time(rec.Created))
		return nil
	})
}
