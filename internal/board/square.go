// Package board implements the laser game board representation.
//
// The playable 10x10 grid is embedded in a 16x16 array so that any single
// step off the board lands on a sentinel square instead of outside the array.
package board

import "fmt"

// Board geometry.
const (
	BoardWidth = 10
	ArrWidth   = 16
	ArrSize    = ArrWidth * ArrWidth

	FileOrigin = (ArrWidth - BoardWidth) / 2
	RankOrigin = (ArrWidth - BoardWidth) / 2
)

// Square is an index into the padded board array.
// Files advance by ArrWidth, ranks by 1.
type Square int

// NoSquare marks an absent square.
const NoSquare Square = -1

// NewSquare creates a square from file and rank (0-indexed).
func NewSquare(file, rank int) Square {
	return Square(ArrWidth*(FileOrigin+file) + RankOrigin + rank)
}

// File returns the file of the square (0-9 for playable squares).
func (sq Square) File() int {
	return int(sq)/ArrWidth - FileOrigin
}

// Rank returns the rank of the square (0-9 for playable squares).
func (sq Square) Rank() int {
	return int(sq)%ArrWidth - RankOrigin
}

// InArray reports whether sq indexes the padded array.
func (sq Square) InArray() bool {
	return sq >= 0 && sq < ArrSize
}

// InBounds reports whether sq is a playable square.
func (sq Square) InBounds() bool {
	if !sq.InArray() {
		return false
	}
	f, r := sq.File(), sq.Rank()
	return f >= 0 && f < BoardWidth && r >= 0 && r < BoardWidth
}

// String returns the algebraic label for the square (e.g., "e4", ranks start at 0).
func (sq Square) String() string {
	if !sq.InBounds() {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'a'+sq.File(), sq.Rank())
}

// ParseSquare parses an algebraic label (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	file := int(s[0] - 'a')
	rank := int(s[1] - '0')

	if file < 0 || file >= BoardWidth || rank < 0 || rank >= BoardWidth {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	return NewSquare(file, rank), nil
}

// MirrorFile returns the square reflected across the vertical axis.
func (sq Square) MirrorFile() Square {
	return NewSquare(BoardWidth-1-sq.File(), sq.Rank())
}

// BeamOffset returns the index delta for one beam step in direction o.
func BeamOffset(o Orientation) Square {
	switch o {
	case NN:
		return 1
	case EE:
		return ArrWidth
	case SS:
		return -1
	case WW:
		return -ArrWidth
	}
	return 0
}

// NeighborOffsets are the index deltas to the 8 squares around a square.
var NeighborOffsets = [8]Square{
	-ArrWidth - 1, -ArrWidth, -ArrWidth + 1,
	-1, 1,
	ArrWidth - 1, ArrWidth, ArrWidth + 1,
}
