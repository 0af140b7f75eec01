package engine

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/hailam/laserchess/internal/board"
)

// randomPosition places two Kings and n Pawns with random colors and facings.
func randomPosition(rng *rand.Rand, n int) *board.Position {
	pos := board.NewEmptyPosition()
	squares := rng.Perm(board.BoardWidth * board.BoardWidth)
	place := func(i int, piece board.Piece) {
		idx := squares[i]
		pos.SetPiece(piece, board.NewSquare(idx/board.BoardWidth, idx%board.BoardWidth))
	}

	place(0, board.NewPiece(board.King, board.White, board.Orientation(rng.Intn(4))))
	place(1, board.NewPiece(board.King, board.Black, board.Orientation(rng.Intn(4))))
	for i := 0; i < n; i++ {
		place(2+i, board.NewPiece(board.Pawn, board.Color(rng.Intn(2)), board.Orientation(rng.Intn(4))))
	}
	if rng.Intn(2) == 1 {
		pos.SetSideToMove(board.Black)
	}
	return pos
}

func mustParse(t *testing.T, fen string) *board.Position {
	t.Helper()
	pos, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("Failed to parse FEN %q: %v", fen, err)
	}
	return pos
}

func sq(t *testing.T, s string) board.Square {
	t.Helper()
	square, err := board.ParseSquare(s)
	if err != nil {
		t.Fatal(err)
	}
	return square
}

// expectInvariant runs fn and fails unless it panics with an *InvariantError.
func expectInvariant(t *testing.T, fn func()) *InvariantError {
	t.Helper()
	var got *InvariantError
	func() {
		defer func() {
			r := recover()
			err, ok := r.(error)
			if !ok || !errors.As(err, &got) {
				t.Fatalf("expected InvariantError panic, got %v", r)
			}
		}()
		fn()
	}()
	return got
}
