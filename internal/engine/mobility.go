package engine

import (
	"github.com/hailam/laserchess/internal/board"
)

// hDistTable[df][dr] = 1/(df+1) + 1/(dr+1)
var hDistTable [board.BoardWidth][board.BoardWidth]float64

func init() {
	for df := 0; df < board.BoardWidth; df++ {
		for dr := 0; dr < board.BoardWidth; dr++ {
			hDistTable[df][dr] = 1.0/float64(df+1) + 1.0/float64(dr+1)
		}
	}
}

// HDist is the harmonic distance between two playable squares.
// It is 2.0 for equal squares and decreases as the files and ranks separate.
func HDist(a, b board.Square) float64 {
	return hDistTable[abs(a.File()-b.File())][abs(a.Rank()-b.Rank())]
}

// Mobility counts the King square of color c and its neighbours that the
// opponent's beam does not reach. The result is in [0, 9].
func Mobility(pos *board.Position, c board.Color) int {
	var m LaserMap
	return mobility(pos, c, &m)
}

func mobility(pos *board.Position, c board.Color, m *LaserMap) int {
	m.Reset()
	FireLaser(pos, c.Other(), m, LaserPath)

	kingSq := pos.KingSquare[c]
	if !kingSq.InBounds() {
		violate("king square off the board", kingSq, int(c))
	}
	king := pos.Board[kingSq]
	if king.Type() != board.King || king.Color() != c {
		violate("king square does not hold the evaluated king", kingSq, int(king))
	}

	n := 0
	if m[kingSq] == LaserUnmarked {
		n++
	}
	for _, d := range board.NeighborOffsets {
		if m[kingSq+d] == LaserUnmarked {
			n++
		}
	}
	return n
}

// Attackability sums HDist to the opposing King over every playable square
// the beam of color c leaves unmarked. Large values mean the beam sweeps
// little of the board near the enemy King.
func Attackability(pos *board.Position, c board.Color) float64 {
	var m LaserMap
	return attackability(pos, c, &m)
}

func attackability(pos *board.Position, c board.Color, m *LaserMap) float64 {
	m.Reset()
	FireLaser(pos, c, m, LaserPath)

	oppSq := pos.KingSquare[c.Other()]
	if !oppSq.InBounds() {
		violate("king square off the board", oppSq, int(c.Other()))
	}
	opp := pos.Board[oppSq]
	if opp.Type() != board.King || opp.Color() == c {
		violate("opposing king square does not hold the opposing king", oppSq, int(opp))
	}
	of, or := oppSq.File(), oppSq.Rank()

	// Bucket by distance first so the sum does not depend on scan order.
	var counts [board.BoardWidth][board.BoardWidth]int
	for f := 0; f < board.BoardWidth; f++ {
		for r := 0; r < board.BoardWidth; r++ {
			if m[board.NewSquare(f, r)] == LaserUnmarked {
				counts[abs(f-of)][abs(r-or)]++
			}
		}
	}

	total := 0.0
	for df := range counts {
		for dr, n := range counts[df] {
			total += float64(n) * hDistTable[df][dr]
		}
	}
	return total
}
