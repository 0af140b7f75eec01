package engine

import (
	"github.com/hailam/laserchess/internal/board"
)

// Absorbed is the reflection result when a beam strikes the back of a Pawn.
const Absorbed board.Orientation = 0xFF

// reflectTable[beam][pawn] gives the outgoing beam direction.
// A Pawn's two mirrored faces point the way its orientation names (NW = north and west).
var reflectTable = [board.NumOrientations][board.NumOrientations]board.Orientation{
	//         NW           NE           SE           SW
	board.NN: {Absorbed, Absorbed, board.EE, board.WW},
	board.EE: {board.NN, Absorbed, Absorbed, board.SS},
	board.SS: {board.WW, board.EE, Absorbed, Absorbed},
	board.WW: {Absorbed, board.NN, board.SS, Absorbed},
}

// Reflect returns the direction a beam travelling in beam leaves a Pawn facing pawn,
// or Absorbed.
func Reflect(beam, pawn board.Orientation) board.Orientation {
	return reflectTable[beam&3][pawn&3]
}

// Laser map states.
const (
	LaserUnmarked uint8 = 0
	LaserPath     uint8 = 1 // beam passed through
	LaserInvalid  uint8 = 4 // off-board square
)

// maxBeamSteps bounds a trace: each (square, direction) pair can be entered at most once.
const maxBeamSteps = board.NumOrientations*board.BoardWidth*board.BoardWidth + 1

// LaserMap marks the squares a beam visited, parallel to the padded board.
type LaserMap [board.ArrSize]uint8

var blankLaserMap LaserMap

func init() {
	for i := range blankLaserMap {
		if !board.Square(i).InBounds() {
			blankLaserMap[i] = LaserInvalid
		}
	}
}

// Reset unmarks every playable square and marks the border invalid.
func (m *LaserMap) Reset() {
	*m = blankLaserMap
}

// Marked reports whether sq carries any mark, including the invalid mark.
func (m *LaserMap) Marked(sq board.Square) bool {
	return m[sq] != LaserUnmarked
}

// FireLaser fires the beam of color c and ORs mark into every square it enters,
// including the King's own square and the square where the beam stops.
// It returns the number of steps the beam took.
func FireLaser(pos *board.Position, c board.Color, m *LaserMap, mark uint8) int {
	sq := pos.KingSquare[c]
	if !sq.InBounds() {
		violate("king square off the board", sq, int(c))
	}
	king := pos.Board[sq]
	if king.Type() != board.King || king.Color() != c {
		violate("king square does not hold the firing king", sq, int(king))
	}

	dir := king.Orientation()
	m[sq] |= mark

	for steps := 1; ; steps++ {
		if steps > maxBeamSteps {
			violate("beam did not terminate", sq, steps)
		}

		sq += board.BeamOffset(dir)
		if !sq.InArray() {
			violate("beam left the laser map", sq, int(dir))
		}
		m[sq] |= mark

		piece := pos.Board[sq]
		switch piece.Type() {
		case board.Empty:
		case board.Pawn:
			dir = Reflect(dir, piece.Orientation())
			if dir == Absorbed {
				return steps
			}
		case board.King:
			return steps
		case board.Invalid:
			return steps
		default:
			violate("unknown piece type on beam path", sq, int(piece))
		}
	}
}

// TracePath returns the squares the beam of color c visits, in order.
// The final square is where the beam stopped and may be off the board.
func TracePath(pos *board.Position, c board.Color) []board.Square {
	var m LaserMap
	m.Reset()

	path := []board.Square{pos.KingSquare[c]}
	sq := pos.KingSquare[c]
	steps := FireLaser(pos, c, &m, LaserPath)

	// Replay the walk; FireLaser already validated it.
	dir := pos.Board[sq].Orientation()
	for i := 0; i < steps; i++ {
		sq += board.BeamOffset(dir)
		path = append(path, sq)
		if piece := pos.Board[sq]; piece.Type() == board.Pawn {
			dir = Reflect(dir, piece.Orientation())
		}
	}
	return path
}
