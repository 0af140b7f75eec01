package engine

import (
	"fmt"

	"github.com/hailam/laserchess/internal/board"
)

// InvariantError reports an impossible position handed to the evaluator.
// The evaluator panics with it; it is never returned as an ordinary error.
type InvariantError struct {
	Invariant string
	Square    board.Square
	Value     int
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated: %s (square %s [%d], value %d)",
		e.Invariant, e.Square, int(e.Square), e.Value)
}

func violate(invariant string, sq board.Square, value int) {
	panic(&InvariantError{Invariant: invariant, Square: sq, Value: value})
}
