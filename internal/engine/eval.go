// Package engine implements the static evaluator for the laser game.
//
// Scores are accumulated in hi-res units (PawnEvValue per Pawn) and reported
// divided by EvScoreRatio, from the point of view of the side to move.
package engine

import (
	"math/rand"

	"github.com/hailam/laserchess/internal/board"
)

// Evaluator scores positions with a fixed set of weights.
//
// An Evaluator owns a scratch laser map and, when randomization is enabled,
// its own random source, so it must not be shared between goroutines.
// Parallel callers create one Evaluator per worker; an EvalTable may be shared.
type Evaluator struct {
	weights     Weights
	fingerprint uint64
	rng         *rand.Rand
	table       *EvalTable

	laserMap LaserMap
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithSeed seeds the jitter source. Evaluators with equal seeds and weights
// produce identical score sequences.
func WithSeed(seed int64) Option {
	return func(e *Evaluator) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithTable shares a score cache. It is only consulted when randomization is off.
func WithTable(t *EvalTable) Option {
	return func(e *Evaluator) {
		e.table = t
	}
}

// NewEvaluator creates an evaluator for w.
func NewEvaluator(w Weights, opts ...Option) *Evaluator {
	e := &Evaluator{
		weights:     w,
		fingerprint: w.Fingerprint(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(1))
	}
	return e
}

// Clone returns an evaluator with the same weights and table and a new jitter seed.
func (e *Evaluator) Clone(seed int64) *Evaluator {
	return &Evaluator{
		weights:     e.weights,
		fingerprint: e.fingerprint,
		rng:         rand.New(rand.NewSource(seed)),
		table:       e.table,
	}
}

// Weights returns the evaluator's parameters.
func (e *Evaluator) Weights() Weights {
	return e.weights
}

// Evaluate returns the static score of pos for the side to move.
func (e *Evaluator) Evaluate(pos *board.Position) int {
	if e.table == nil || e.weights.Randomize > 0 {
		return e.evaluate(pos, nil)
	}

	key := pos.Hash ^ e.fingerprint
	if score, ok := e.table.Probe(key); ok {
		return score
	}
	score := e.evaluate(pos, nil)
	e.table.Store(key, score)
	return score
}

// EvaluateTrace scores pos and records every contribution.
func (e *Evaluator) EvaluateTrace(pos *board.Position) (int, *Trace) {
	t := &Trace{}
	score := e.evaluate(pos, t)
	return score, t
}

// Mobility is Mobility using the evaluator's scratch map.
func (e *Evaluator) Mobility(pos *board.Position, c board.Color) int {
	return mobility(pos, c, &e.laserMap)
}

// Attackability is Attackability using the evaluator's scratch map.
func (e *Evaluator) Attackability(pos *board.Position, c board.Color) float64 {
	return attackability(pos, c, &e.laserMap)
}

// Evaluate scores pos with a throwaway evaluator seeded 1. With Randomize > 0
// every call adds the same seed-1 jitter; keep an Evaluator for a fresh draw
// per call.
func Evaluate(pos *board.Position, w Weights) int {
	return NewEvaluator(w).evaluate(pos, nil)
}

func (e *Evaluator) evaluate(pos *board.Position, t *Trace) int {
	w := &e.weights
	var score [2]int

	credit := func(h Heuristic, c board.Color, kind board.PieceType, sq board.Square, bonus int) {
		score[c] += bonus
		if t != nil {
			t.add(h, c, kind, sq, bonus)
		}
	}

	for f := 0; f < board.BoardWidth; f++ {
		for r := 0; r < board.BoardWidth; r++ {
			sq := board.NewSquare(f, r)
			x := pos.Board[sq]
			c := x.Color()

			switch x.Type() {
			case board.Empty:
			case board.Pawn:
				credit(Material, c, board.Pawn, sq, PawnEvValue)
				credit(PBetweenBonus, c, board.Pawn, sq, PBetween(w, pos, f, r))
				credit(PCentralBonus, c, board.Pawn, sq, PCentral(w, f, r))
			case board.King:
				credit(KFaceBonus, c, board.King, sq, KFace(w, pos, f, r))
				credit(KAggressiveBonus, c, board.King, sq, KAggressive(w, pos, f, r))
			case board.Invalid:
			default:
				violate("unknown piece type in evaluation scan", sq, int(x))
			}
		}
	}

	for c := board.White; c <= board.Black; c++ {
		h := attackability(pos, c, &e.laserMap)
		credit(HAttackBonus, c, board.Empty, board.NoSquare, int(float64(w.AttackScale)*h))
	}
	for c := board.White; c <= board.Black; c++ {
		credit(MobilityBonus, c, board.Empty, board.NoSquare, w.MobilityScale*mobility(pos, c, &e.laserMap))
	}

	// Score from White's point of view
	total := score[board.White] - score[board.Black]

	if w.Randomize > 0 {
		jitter := e.rng.Intn(2*w.Randomize+1) - w.Randomize
		total += jitter
		if t != nil {
			t.Jitter = jitter
		}
	}

	if pos.SideToMove == board.Black {
		total = -total
	}

	total /= EvScoreRatio
	if t != nil {
		t.Score = total
	}
	return total
}
