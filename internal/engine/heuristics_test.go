package engine

import (
	"math/rand"
	"testing"

	"github.com/hailam/laserchess/internal/board"
)

func TestMobility(t *testing.T) {
	t.Run("FacingKings", func(t *testing.T) {
		// Each beam runs along rank 4 into the other King, sweeping the
		// King square and the neighbour it enters from.
		pos := build(t, map[string]string{"b4": "EE", "i4": "ww"})
		if got := Mobility(pos, board.White); got != 7 {
			t.Errorf("Mobility(White) = %d, want 7", got)
		}
		if got := Mobility(pos, board.Black); got != 7 {
			t.Errorf("Mobility(Black) = %d, want 7", got)
		}
	})

	t.Run("Unthreatened", func(t *testing.T) {
		pos := build(t, map[string]string{"e4": "NN", "j9": "ss", "j5": "se"})
		// Black beam: j8..j5, absorbed by its own pawn back
		if got := Mobility(pos, board.White); got != 9 {
			t.Errorf("Mobility(White) = %d, want 9", got)
		}
	})

	t.Run("Corner", func(t *testing.T) {
		pos := build(t, map[string]string{"a0": "NN", "j9": "nn"})
		// Only four squares around a0 exist
		if got := Mobility(pos, board.White); got != 4 {
			t.Errorf("Mobility(White) = %d, want 4", got)
		}
	})

	t.Run("Range", func(t *testing.T) {
		rng := rand.New(rand.NewSource(11))
		for i := 0; i < 1000; i++ {
			pos := randomPosition(rng, rng.Intn(30))
			for c := board.White; c <= board.Black; c++ {
				if got := Mobility(pos, c); got < 0 || got > 9 {
					t.Fatalf("Mobility(%s) = %d in %s", c, got, pos.ToFEN())
				}
			}
		}
	})
}

func TestAttackability(t *testing.T) {
	if got := HDist(sq(t, "c3"), sq(t, "c3")); got != 2.0 {
		t.Errorf("HDist(same) = %f, want 2", got)
	}
	if HDist(sq(t, "a0"), sq(t, "j9")) >= HDist(sq(t, "a0"), sq(t, "b1")) {
		t.Error("HDist should fall with distance")
	}

	rng := rand.New(rand.NewSource(13))
	for i := 0; i < 1000; i++ {
		pos := randomPosition(rng, rng.Intn(30))
		for c := board.White; c <= board.Black; c++ {
			got := Attackability(pos, c)
			if got < 0 || got > 2*board.BoardWidth*board.BoardWidth {
				t.Fatalf("Attackability(%s) = %f in %s", c, got, pos.ToFEN())
			}
		}
	}
}

func TestPCentral(t *testing.T) {
	w := DefaultWeights()

	center := PCentral(&w, 4, 4)
	if center != w.CenterBonus {
		t.Errorf("PCentral(center) = %d, want %d", center, w.CenterBonus)
	}
	for f := 0; f < board.BoardWidth; f++ {
		for r := 0; r < board.BoardWidth; r++ {
			v := PCentral(&w, f, r)
			if v > center || v < 0 {
				t.Errorf("PCentral(%d, %d) = %d out of [0, %d]", f, r, v, center)
			}
			if m := PCentral(&w, board.BoardWidth-1-f, r); m != v {
				t.Errorf("PCentral not symmetric across files at (%d, %d): %d vs %d", f, r, v, m)
			}
			if m := PCentral(&w, f, board.BoardWidth-1-r); m != v {
				t.Errorf("PCentral not symmetric across ranks at (%d, %d): %d vs %d", f, r, v, m)
			}
		}
	}
	if PCentral(&w, 0, 0) >= PCentral(&w, 2, 2) {
		t.Error("corner should score below the near-center")
	}
}

func TestPBetween(t *testing.T) {
	w := DefaultWeights()
	pos := build(t, map[string]string{"c3": "NN", "h1": "ss"})
	swapped := build(t, map[string]string{"c3": "nn", "h1": "SS"})

	tests := []struct {
		f, r int
		want int
	}{
		{5, 2, w.BetweenBonus},
		{2, 3, w.BetweenBonus}, // corners are inclusive
		{7, 1, w.BetweenBonus},
		{5, 4, 0},
		{1, 2, 0},
		{8, 1, 0},
	}
	for _, tc := range tests {
		if got := PBetween(&w, pos, tc.f, tc.r); got != tc.want {
			t.Errorf("PBetween(%d, %d) = %d, want %d", tc.f, tc.r, got, tc.want)
		}
		if got := PBetween(&w, swapped, tc.f, tc.r); got != tc.want {
			t.Errorf("PBetween swapped kings (%d, %d) = %d, want %d", tc.f, tc.r, got, tc.want)
		}
	}
}

func TestKFace(t *testing.T) {
	w := DefaultWeights()

	tests := []struct {
		name   string
		pieces map[string]string
		want   int
	}{
		{"FacingNorth", map[string]string{"d2": "NN", "d5": "ss"}, w.KingFaceScale},
		{"FacingAway", map[string]string{"d2": "SS", "d5": "ss"}, -w.KingFaceScale},
		{"Perpendicular", map[string]string{"d2": "EE", "d5": "ss"}, 0},
		{"Diagonal", map[string]string{"a0": "NN", "d4": "ss"}, 4 * w.KingFaceScale / 7},
		{"DiagonalAway", map[string]string{"a0": "WW", "d4": "ss"}, -3 * w.KingFaceScale / 7},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := build(t, tc.pieces)
			k := pos.KingSquare[board.White]
			if got := KFace(&w, pos, k.File(), k.Rank()); got != tc.want {
				t.Errorf("KFace = %d, want %d", got, tc.want)
			}
		})
	}

	t.Run("SharedSquare", func(t *testing.T) {
		pos := build(t, map[string]string{"d2": "NN", "d5": "ss"})
		pos.KingSquare[board.Black] = pos.KingSquare[board.White]
		expectInvariant(t, func() { KFace(&w, pos, 3, 2) })
	})
}

func TestKAggressive(t *testing.T) {
	w := DefaultWeights()

	tests := []struct {
		enemy string
		want  int
	}{
		{"h8", w.KingAggressiveScale * 3 * 4 / 100}, // enemy north-east
		{"a8", w.KingAggressiveScale * 8 * 4 / 100}, // enemy north-west
		{"a0", w.KingAggressiveScale * 8 * 7 / 100}, // enemy south-west
		{"h0", w.KingAggressiveScale * 3 * 7 / 100}, // enemy south-east
	}
	for _, tc := range tests {
		pos := build(t, map[string]string{"c3": "NN", tc.enemy: "ss"})
		if got := KAggressive(&w, pos, 2, 3); got != tc.want {
			t.Errorf("KAggressive vs %s = %d, want %d", tc.enemy, got, tc.want)
		}
	}

	pos := build(t, map[string]string{"c3": "NN", "h8": "ss"})
	expectInvariant(t, func() { KAggressive(&w, pos, 4, 4) })

	t.Run("SharedFile", func(t *testing.T) {
		// deltaFil == 0 always resolves to the north-east quadrant
		pos := build(t, map[string]string{"c2": "NN", "c7": "ss"})
		if got, want := KAggressive(&w, pos, 2, 2), w.KingAggressiveScale*3*3/100; got != want {
			t.Errorf("KAggressive(c2) = %d, want %d", got, want)
		}

		m := pos.Mirror()
		if got, want := KAggressive(&w, m, 7, 2), w.KingAggressiveScale*8*3/100; got != want {
			t.Errorf("mirrored KAggressive(h2) = %d, want %d", got, want)
		}
	})
}
