package engine

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/hailam/laserchess/internal/board"
)

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// between reports whether c lies on or between a and b, which are not ordered.
func between(c, a, b int) bool {
	return (c >= a && c <= b) || (c <= a && c >= b)
}

// Largest distance from the center, used to normalise the center bonus.
var maxCenterDist = board.BoardWidth / math.Sqrt2

// PCentral is the bonus for a Pawn near the middle of the board.
// Coordinates are reflected so the four central squares all sit at distance 0.
func PCentral(w *Weights, f, r int) int {
	df := board.BoardWidth/2 - f - 1
	if df < 0 {
		df = f - board.BoardWidth/2
	}
	dr := board.BoardWidth/2 - r - 1
	if dr < 0 {
		dr = r - board.BoardWidth/2
	}
	bonus := 1 - math.Sqrt(float64(df*df+dr*dr))/maxCenterDist
	return int(float64(w.CenterBonus) * bonus)
}

// PBetween is the bonus for a Pawn inside the rectangle spanned by the two Kings.
func PBetween(w *Weights, pos *board.Position, f, r int) int {
	wk, bk := pos.KingSquare[board.White], pos.KingSquare[board.Black]
	if between(f, wk.File(), bk.File()) && between(r, wk.Rank(), bk.Rank()) {
		return w.BetweenBonus
	}
	return 0
}

// KFace rewards (or penalises) a King at (f, r) for pointing toward the enemy King.
func KFace(w *Weights, pos *board.Position, f, r int) int {
	sq := board.NewSquare(f, r)
	x := pos.Board[sq]
	if x.Type() != board.King {
		violate("kface on a square without a king", sq, int(x))
	}
	oppSq := pos.KingSquare[x.Color().Other()]
	deltaFil := oppSq.File() - f
	deltaRnk := oppSq.Rank() - r

	var bonus int
	switch x.Orientation() {
	case board.NN:
		bonus = deltaRnk
	case board.EE:
		bonus = deltaFil
	case board.SS:
		bonus = -deltaRnk
	case board.WW:
		bonus = -deltaFil
	default:
		violate("illegal king orientation", sq, int(x.Orientation()))
	}

	dist := abs(deltaRnk) + abs(deltaFil)
	if dist == 0 {
		violate("kings share a square", sq, int(x))
	}
	return (bonus * w.KingFaceScale) / dist
}

// KAggressive rewards a King at (f, r) for the space behind it, measured as the
// rectangle from the King to the corner away from the enemy King's quadrant.
// Kings sharing a file or rank take the first matching quadrant in the order
// NE, NW, SW, SE, so such positions are not mirror symmetric.
func KAggressive(w *Weights, pos *board.Position, f, r int) int {
	sq := board.NewSquare(f, r)
	x := pos.Board[sq]
	if x.Type() != board.King {
		violate("kaggressive on a square without a king", sq, int(x))
	}

	oppSq := pos.KingSquare[x.Color().Other()]
	deltaFil := oppSq.File() - f
	deltaRnk := oppSq.Rank() - r

	const width = board.BoardWidth
	var bonus int
	switch {
	case deltaFil >= 0 && deltaRnk >= 0:
		bonus = (f + 1) * (r + 1)
	case deltaFil <= 0 && deltaRnk >= 0:
		bonus = (width - f) * (r + 1)
	case deltaFil <= 0 && deltaRnk <= 0:
		bonus = (width - f) * (width - r)
	case deltaFil >= 0 && deltaRnk <= 0:
		bonus = (f + 1) * (width - r)
	}

	return (w.KingAggressiveScale * bonus) / (width * width)
}
