// Package uci implements a line-oriented text protocol for the evaluator,
// modelled on the Universal Chess Interface.
package uci

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/buger/goterm"
	"github.com/dustin/go-humanize"
	"github.com/go-logr/logr"

	"github.com/hailam/laserchess/internal/board"
	"github.com/hailam/laserchess/internal/engine"
	"github.com/hailam/laserchess/internal/storage"
)

// Config holds what the protocol handler needs from the binary.
type Config struct {
	Weights engine.Weights
	Seed    int64
	Table   *engine.EvalTable // optional
	Store   *storage.Storage  // optional; enables saveweights/loadweights and analysis records
	Logger  logr.Logger
	Color   bool // highlight beams with ANSI colors
}

// UCI implements the protocol loop.
type UCI struct {
	in  io.Reader
	out io.Writer
	log logr.Logger

	color     bool
	weights   engine.Weights
	seed      int64
	table     *engine.EvalTable
	store     *storage.Storage
	evaluator *engine.Evaluator
	position  *board.Position
}

// New creates a new protocol handler reading commands from in.
func New(cfg Config, in io.Reader, out io.Writer) *UCI {
	u := &UCI{
		in:       in,
		out:      out,
		log:      cfg.Logger,
		color:    cfg.Color,
		weights:  cfg.Weights,
		seed:     cfg.Seed,
		table:    cfg.Table,
		store:    cfg.Store,
		position: board.NewPosition(),
	}
	u.rebuildEvaluator()
	return u
}

func (u *UCI) rebuildEvaluator() {
	opts := []engine.Option{engine.WithSeed(u.seed)}
	if u.table != nil {
		opts = append(opts, engine.WithTable(u.table))
	}
	u.evaluator = engine.NewEvaluator(u.weights, opts...)
}

func (u *UCI) printf(format string, args ...interface{}) {
	fmt.Fprintf(u.out, format, args...)
}

func (u *UCI) infof(format string, args ...interface{}) {
	u.printf("info string "+format+"\n", args...)
}

// Run processes commands until "quit" or end of input.
func (u *UCI) Run() error {
	scanner := bufio.NewScanner(u.in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		if u.dispatch(parts[0], parts[1:]) {
			return nil
		}
	}

	return scanner.Err()
}

// dispatch runs one command and reports whether the loop should stop.
// An invariant violation aborts the command, not the session.
func (u *UCI) dispatch(cmd string, args []string) (quit bool) {
	defer func() {
		if r := recover(); r != nil {
			var inv *engine.InvariantError
			err, ok := r.(error)
			if !ok || !errors.As(err, &inv) {
				panic(r)
			}
			u.log.Error(inv, "evaluation aborted", "command", cmd, "fen", u.position.ToFEN())
			u.infof("error %v", inv)
		}
	}()

	switch cmd {
	case "uci":
		u.handleUCI()
	case "isready":
		u.printf("readyok\n")
	case "newgame", "ucinewgame":
		u.handleNewGame()
	case "position":
		u.handlePosition(args)
	case "eval":
		u.handleEval(args)
	case "laser":
		u.handleLaser(args)
	case "mobility":
		u.handleMobility()
	case "setoption":
		u.handleSetOption(args)
	case "saveweights":
		u.handleSaveWeights()
	case "loadweights":
		u.handleLoadWeights()
	case "analysis":
		u.handleAnalysis()
	case "bench":
		u.handleBench(args)
	case "d":
		u.printf("%s", u.position.String())
	case "quit":
		return true
	default:
		u.infof("unknown command: %s", cmd)
	}
	return false
}

// handleUCI responds to the "uci" command.
func (u *UCI) handleUCI() {
	u.printf("id name LaserChess\n")
	u.printf("id author LaserChess Team\n\n")
	for _, name := range engine.WeightNames() {
		lo, hi, _ := engine.WeightBounds(name)
		v, _ := u.weights.Get(name)
		u.printf("option name %s type spin default %d min %d max %d\n", name, v, lo, hi)
	}
	u.printf("uciok\n")
}

// handleNewGame resets the position and clears cached scores.
func (u *UCI) handleNewGame() {
	u.position = board.NewPosition()
	if u.table != nil {
		u.table.Clear()
	}
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position fen <fen>
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		u.infof("position: missing argument")
		return
	}

	var fenArgs []string
	switch args[0] {
	case "startpos":
		fenArgs = []string{board.StartFEN}
		args = args[1:]
	case "fen":
		end := len(args)
		for i, arg := range args {
			if arg == "moves" {
				end = i
				break
			}
		}
		fenArgs = args[1:end]
		args = args[end:]
	default:
		u.infof("position: expected startpos or fen, got %s", args[0])
		return
	}

	if len(args) > 0 && args[0] == "moves" {
		u.infof("position: moves are not supported by the evaluator")
		return
	}

	pos, err := board.ParseFEN(strings.Join(fenArgs, " "))
	if err != nil {
		u.infof("Invalid FEN: %v", err)
		return
	}
	u.position = pos
}

// handleEval prints the static score; "eval verbose" prints every term first.
func (u *UCI) handleEval(args []string) {
	verbose := len(args) > 0 && args[0] == "verbose"

	var score int
	var tr *engine.Trace
	if verbose || u.store != nil {
		score, tr = u.evaluator.EvaluateTrace(u.position)
	} else {
		score = u.evaluator.Evaluate(u.position)
	}

	if verbose {
		if _, err := tr.WriteTo(u.out); err != nil {
			u.log.Error(err, "writing trace")
		}
	} else {
		u.printf("score %d\n", score)
	}

	if u.store != nil {
		rec := storage.AnalysisRecord{
			FEN:         u.position.ToFEN(),
			Score:       score,
			Fingerprint: u.weights.Fingerprint(),
			Terms:       tr.Contributions,
		}
		if err := u.store.SaveAnalysis(rec); err != nil {
			u.log.Error(err, "saving analysis")
		}
	}
}

// handleLaser draws the squares swept by one side's beam.
func (u *UCI) handleLaser(args []string) {
	c := u.position.SideToMove
	if len(args) > 0 {
		switch strings.ToLower(args[0]) {
		case "white", "w":
			c = board.White
		case "black", "b":
			c = board.Black
		default:
			u.infof("laser: unknown color %s", args[0])
			return
		}
	}

	var m engine.LaserMap
	m.Reset()
	steps := engine.FireLaser(u.position, c, &m, engine.LaserPath)

	beam := "**"
	if u.color {
		beam = goterm.Color(beam, goterm.RED)
	}

	var sb strings.Builder
	for rank := board.BoardWidth - 1; rank >= 0; rank-- {
		sb.WriteString(fmt.Sprintf("%d  ", rank))
		for file := 0; file < board.BoardWidth; file++ {
			sq := board.NewSquare(file, rank)
			piece := u.position.PieceAt(sq)
			switch {
			case piece.Type() != board.Empty:
				sb.WriteString(piece.String())
			case m.Marked(sq):
				sb.WriteString(beam)
			default:
				sb.WriteString("..")
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	u.printf("%s", sb.String())
	u.printf("laser %s steps %d\n", strings.ToLower(c.String()), steps)
}

// handleMobility prints both beam-derived measures for each side.
func (u *UCI) handleMobility() {
	for c := board.White; c <= board.Black; c++ {
		u.printf("%s mobility %d attackability %.3f\n",
			strings.ToLower(c.String()),
			u.evaluator.Mobility(u.position, c),
			u.evaluator.Attackability(u.position, c))
	}
}

// handleSetOption processes "setoption" commands.
func (u *UCI) handleSetOption(args []string) {
	// Format: setoption name <name> value <value>
	var name, value string
	readingName := false
	readingValue := false

	for _, arg := range args {
		switch arg {
		case "name":
			readingName = true
			readingValue = false
		case "value":
			readingName = false
			readingValue = true
		default:
			if readingName {
				if name != "" {
					name += " "
				}
				name += arg
			} else if readingValue {
				if value != "" {
					value += " "
				}
				value += arg
			}
		}
	}

	w := u.weights
	if err := w.Set(name, value); err != nil {
		u.infof("setoption: %v", err)
		return
	}
	u.weights = w
	u.rebuildEvaluator()
	u.log.V(1).Info("weight changed", "name", name, "value", value)
}

func (u *UCI) handleSaveWeights() {
	if u.store == nil {
		u.infof("no storage configured")
		return
	}
	if err := u.store.SaveWeights(u.weights); err != nil {
		u.infof("saveweights: %v", err)
		return
	}
	u.infof("weights saved")
}

func (u *UCI) handleLoadWeights() {
	if u.store == nil {
		u.infof("no storage configured")
		return
	}
	w, err := u.store.LoadWeights()
	if err != nil {
		u.infof("loadweights: %v", err)
		return
	}
	u.weights = w
	u.rebuildEvaluator()
	u.infof("weights loaded")
}

// handleAnalysis shows the stored evaluation of the current position under
// the current weights.
func (u *UCI) handleAnalysis() {
	if u.store == nil {
		u.infof("no storage configured")
		return
	}

	fp := u.weights.Fingerprint()
	n, err := u.store.CountAnalyses(fp)
	if err != nil {
		u.infof("analysis: %v", err)
		return
	}
	u.printf("analyses stored %s\n", humanize.Comma(int64(n)))

	rec, found, err := u.store.LoadAnalysis(u.position.ToFEN(), fp)
	if err != nil {
		u.infof("analysis: %v", err)
		return
	}
	if !found {
		u.infof("no stored analysis for this position")
		return
	}
	for _, c := range rec.Terms {
		u.printf("%s\n", c)
	}
	u.printf("analysis score %d terms %d stored %s\n", rec.Score, len(rec.Terms), humanize.Time(rec.CreatedAt))
}

// handleBench times repeated evaluation of the current position.
func (u *UCI) handleBench(args []string) {
	n := 100000
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v <= 0 {
			u.infof("bench: invalid count %s", args[0])
			return
		}
		n = v
	}

	// Bypass the table so every iteration does the full work
	ev := engine.NewEvaluator(u.weights, engine.WithSeed(u.seed))
	start := time.Now()
	for i := 0; i < n; i++ {
		ev.Evaluate(u.position)
	}
	elapsed := time.Since(start)

	nps := uint64(0)
	if elapsed > 0 {
		nps = uint64(float64(n) / elapsed.Seconds())
	}
	u.printf("bench %s evaluations in %v (%s/s)\n",
		humanize.Comma(int64(n)), elapsed.Round(time.Millisecond), humanize.Comma(int64(nps)))
}
