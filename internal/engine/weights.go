package engine

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Score scaling
const (
	PawnValue    = 100
	EvScoreRatio = 100                      // hi-res units per reported unit
	PawnEvValue  = PawnValue * EvScoreRatio // material bonus per Pawn
)

// Weights holds the tunable evaluation parameters.
// A Weights value is built once and never mutated by evaluators.
type Weights struct {
	CenterBonus         int `json:"pcentral"`
	BetweenBonus        int `json:"pbetween"`
	KingFaceScale       int `json:"kface"`
	KingAggressiveScale int `json:"kaggressive"`
	MobilityScale       int `json:"mobility"`
	AttackScale         int `json:"hattack"`
	Randomize           int `json:"randomize"` // jitter half-width, 0 disables
}

// DefaultWeights returns the offline-tuned parameters.
func DefaultWeights() Weights {
	return Weights{
		CenterBonus:         200,
		BetweenBonus:        50,
		KingFaceScale:       500,
		KingAggressiveScale: 1000,
		MobilityScale:       100,
		AttackScale:         -50,
		Randomize:           0,
	}
}

// weightRange bounds each option for setoption and Validate.
type weightRange struct {
	field    func(w *Weights) *int
	min, max int
}

var weightRanges = map[string]weightRange{
	"pcentral":    {func(w *Weights) *int { return &w.CenterBonus }, 0, PawnEvValue},
	"pbetween":    {func(w *Weights) *int { return &w.BetweenBonus }, 0, PawnEvValue},
	"kface":       {func(w *Weights) *int { return &w.KingFaceScale }, 0, PawnEvValue},
	"kaggressive": {func(w *Weights) *int { return &w.KingAggressiveScale }, 0, PawnEvValue},
	"mobility":    {func(w *Weights) *int { return &w.MobilityScale }, 0, PawnEvValue},
	"hattack":     {func(w *Weights) *int { return &w.AttackScale }, -PawnEvValue, PawnEvValue},
	"randomize":   {func(w *Weights) *int { return &w.Randomize }, 0, PawnEvValue},
}

// WeightNames returns the option names in sorted order.
func WeightNames() []string {
	names := make([]string, 0, len(weightRanges))
	for name := range weightRanges {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WeightBounds returns the allowed range of the named weight.
func WeightBounds(name string) (lo, hi int, ok bool) {
	r, ok := weightRanges[strings.ToLower(name)]
	return r.min, r.max, ok
}

// Get returns the value of the named weight.
func (w Weights) Get(name string) (int, error) {
	r, ok := weightRanges[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown weight %q", name)
	}
	return *r.field(&w), nil
}

// Set parses value and stores it in the named weight.
func (w *Weights) Set(name, value string) error {
	r, ok := weightRanges[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("unknown weight %q", name)
	}
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("weight %s: %w", name, err)
	}
	if v < r.min || v > r.max {
		return fmt.Errorf("weight %s: %d outside [%d, %d]", name, v, r.min, r.max)
	}
	*r.field(w) = v
	return nil
}

// Validate checks every weight against its allowed range.
func (w Weights) Validate() error {
	for _, name := range WeightNames() {
		r := weightRanges[name]
		v := *r.field(&w)
		if v < r.min || v > r.max {
			return fmt.Errorf("weight %s: %d outside [%d, %d]", name, v, r.min, r.max)
		}
	}
	return nil
}

// Fingerprint identifies a parameter set, used to key cached and stored scores.
func (w Weights) Fingerprint() uint64 {
	data, err := json.Marshal(w)
	if err != nil {
		// A struct of ints always marshals
		panic(err)
	}
	return xxhash.Sum64(data)
}
