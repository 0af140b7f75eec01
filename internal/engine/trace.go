package engine

import (
	"fmt"
	"io"

	"github.com/hailam/laserchess/internal/board"
)

// Heuristic names a component of the evaluation.
type Heuristic uint8

const (
	Material Heuristic = iota
	PBetweenBonus
	PCentralBonus
	KFaceBonus
	KAggressiveBonus
	HAttackBonus
	MobilityBonus
)

var heuristicNames = [...]string{
	Material:         "MATERIAL",
	PBetweenBonus:    "PBETWEEN",
	PCentralBonus:    "PCENTRAL",
	KFaceBonus:       "KFACE",
	KAggressiveBonus: "KAGGRESSIVE",
	HAttackBonus:     "HATTACK",
	MobilityBonus:    "MOBILITY",
}

func (h Heuristic) String() string {
	if int(h) < len(heuristicNames) {
		return heuristicNames[h]
	}
	return "UNKNOWN"
}

// Contribution is one heuristic term added to a side's subtotal.
// Whole-side terms (HATTACK, MOBILITY) have Square == board.NoSquare.
type Contribution struct {
	Heuristic Heuristic       `json:"heuristic"`
	Color     board.Color     `json:"color"`
	Kind      board.PieceType `json:"kind"`
	Square    board.Square    `json:"square"`
	Value     int             `json:"value"`
}

// String renders the contribution as one diagnostic line.
func (c Contribution) String() string {
	if c.Square == board.NoSquare {
		return fmt.Sprintf("%s bonus %d for %s", c.Heuristic, c.Value, c.Color)
	}
	return fmt.Sprintf("%s bonus %d for %s %s on %s", c.Heuristic, c.Value, c.Color, c.Kind, c.Square)
}

// Trace records the terms of one evaluation in the order they were computed.
type Trace struct {
	Contributions []Contribution `json:"contributions"`
	Jitter        int            `json:"jitter"`
	Score         int            `json:"score"`
}

func (t *Trace) add(h Heuristic, c board.Color, kind board.PieceType, sq board.Square, v int) {
	t.Contributions = append(t.Contributions, Contribution{
		Heuristic: h,
		Color:     c,
		Kind:      kind,
		Square:    sq,
		Value:     v,
	})
}

// Total returns the subtotal of color c in hi-res units.
func (t *Trace) Total(c board.Color) int {
	sum := 0
	for _, ct := range t.Contributions {
		if ct.Color == c {
			sum += ct.Value
		}
	}
	return sum
}

// ByHeuristic sums each heuristic for color c.
func (t *Trace) ByHeuristic(c board.Color) map[Heuristic]int {
	sums := make(map[Heuristic]int)
	for _, ct := range t.Contributions {
		if ct.Color == c {
			sums[ct.Heuristic] += ct.Value
		}
	}
	return sums
}

// WriteTo writes one line per contribution followed by the final score.
func (t *Trace) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, ct := range t.Contributions {
		k, err := fmt.Fprintln(w, ct.String())
		n += int64(k)
		if err != nil {
			return n, err
		}
	}
	if t.Jitter != 0 {
		k, err := fmt.Fprintf(w, "RANDOMIZE jitter %d\n", t.Jitter)
		n += int64(k)
		if err != nil {
			return n, err
		}
	}
	k, err := fmt.Fprintf(w, "score %d\n", t.Score)
	n += int64(k)
	return n, err
}
