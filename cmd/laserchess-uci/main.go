package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"

	"github.com/hailam/laserchess/internal/board"
	"github.com/hailam/laserchess/internal/engine"
	"github.com/hailam/laserchess/internal/storage"
	"github.com/hailam/laserchess/internal/uci"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	dbDir      = flag.String("db", "", "database directory (default: platform data dir, \"none\" disables storage)")
	randomize  = flag.Int("randomize", -1, "override the stored randomize weight")
	seed       = flag.Int64("seed", 1, "seed for score jitter")
	batchFile  = flag.String("batch", "", "score every FEN in file (one per line) and exit")
	workers    = flag.Int("workers", 0, "batch workers (default: number of CPUs)")
	hashMB     = flag.Int("hash", 16, "evaluation cache size in MB (0 disables)")
	color      = flag.Bool("color", false, "highlight laser paths with ANSI colors")
	verbosity  = flag.Int("v", 0, "log verbosity")
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
		logger.Info("CPU profiling enabled", "path", profilePath)
	}

	store, err := openStorage(logger)
	if err != nil {
		logger.Error(err, "storage unavailable, using default weights")
	}
	if store != nil {
		defer store.Close()
	}

	weights := engine.DefaultWeights()
	if store != nil {
		if weights, err = store.LoadWeights(); err != nil {
			logger.Error(err, "could not load weights, using defaults")
		}
	}
	if *randomize >= 0 {
		weights.Randomize = *randomize
	}
	if err := weights.Validate(); err != nil {
		log.Fatal("invalid weights: ", err)
	}
	logger.V(1).Info("weights", "values", weights, "fingerprint", fmt.Sprintf("%016x", weights.Fingerprint()))

	var table *engine.EvalTable
	if *hashMB > 0 {
		table = engine.NewEvalTable(*hashMB)
	}

	if *batchFile != "" {
		if err := runBatch(logger, *batchFile, weights, table); err != nil {
			log.Fatal(err)
		}
		return
	}

	protocol := uci.New(uci.Config{
		Weights: weights,
		Seed:    *seed,
		Table:   table,
		Store:   store,
		Logger:  logger.WithName("uci"),
		Color:   *color,
	}, os.Stdin, os.Stdout)
	if err := protocol.Run(); err != nil {
		logger.Error(err, "reading commands")
	}
}

func openStorage(logger logr.Logger) (*storage.Storage, error) {
	switch *dbDir {
	case "none":
		return nil, nil
	case "":
		return storage.NewStorage(logger.WithName("storage"))
	default:
		return storage.Open(storage.Options{Dir: *dbDir, Logger: logger.WithName("storage")})
	}
}

// runBatch prints "<score>\t<fen>" for each position in path.
func runBatch(logger logr.Logger, path string, w engine.Weights, table *engine.EvalTable) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var fens []string
	var positions []*board.Position
	scanner := bufio.NewScanner(f)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		pos, err := board.ParseFEN(line)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		fens = append(fens, line)
		positions = append(positions, pos)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	scores, err := engine.EvaluateBatch(ctx, positions, w, engine.BatchOptions{
		Workers: *workers,
		Seed:    *seed,
		Table:   table,
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	for i, score := range scores {
		fmt.Fprintf(out, "%d\t%s\n", score, fens[i])
	}

	logger.Info("batch done",
		"positions", humanize.Comma(int64(len(scores))),
		"elapsed", elapsed.Round(time.Millisecond),
		"cacheHitRate", tableHitRate(table))
	return nil
}

func tableHitRate(t *engine.EvalTable) string {
	if t == nil {
		return "off"
	}
	return fmt.Sprintf("%.1f%%", t.HitRate())
}
