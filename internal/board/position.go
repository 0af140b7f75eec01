package board

import (
	"fmt"
	"strings"
)

// Position represents a complete game position.
type Position struct {
	// Padded board; squares outside the playable grid hold InvalidPiece.
	Board [ArrSize]Piece

	// King locations, kept in sync by SetPiece/RemovePiece
	KingSquare [2]Square

	SideToMove Color

	// Zobrist hash of pieces and side to move
	Hash uint64
}

// NewEmptyPosition creates a position with no pieces and White to move.
func NewEmptyPosition() *Position {
	p := &Position{}
	p.Clear()
	return p
}

// NewPosition creates the starting position.
func NewPosition() *Position {
	pos, _ := ParseFEN(StartFEN)
	return pos
}

// Copy creates a deep copy of the position.
func (p *Position) Copy() *Position {
	newPos := *p
	return &newPos
}

// Clear resets the position to an empty board.
func (p *Position) Clear() {
	*p = Position{}
	for i := range p.Board {
		if !Square(i).InBounds() {
			p.Board[i] = InvalidPiece
		}
	}
	p.KingSquare[White] = NoSquare
	p.KingSquare[Black] = NoSquare
	p.Hash = p.ComputeHash()
}

// PieceAt returns the piece at the given square.
// Indices outside the array read as the off-board sentinel.
func (p *Position) PieceAt(sq Square) Piece {
	if !sq.InArray() {
		return InvalidPiece
	}
	return p.Board[sq]
}

// SetPiece places a piece on a playable square, replacing whatever was there.
func (p *Position) SetPiece(piece Piece, sq Square) error {
	if !sq.InBounds() {
		return fmt.Errorf("square %d is off the board", sq)
	}
	switch piece.Type() {
	case Empty, Pawn, King:
	default:
		return fmt.Errorf("cannot place %s on %s", piece.Type(), sq)
	}

	p.RemovePiece(sq)
	if piece.Type() == Empty {
		return nil
	}

	p.Board[sq] = piece
	p.Hash ^= zobristPiece[sq][piece]
	if piece.Type() == King {
		p.KingSquare[piece.Color()] = sq
	}
	return nil
}

// RemovePiece clears a playable square and returns what was on it.
func (p *Position) RemovePiece(sq Square) Piece {
	if !sq.InBounds() {
		return InvalidPiece
	}
	piece := p.Board[sq]
	if piece.Type() == Empty {
		return NoPiece
	}

	p.Board[sq] = NoPiece
	p.Hash ^= zobristPiece[sq][piece]
	if piece.Type() == King && p.KingSquare[piece.Color()] == sq {
		p.KingSquare[piece.Color()] = NoSquare
	}
	return piece
}

// SetSideToMove sets the mover and keeps the hash in sync.
func (p *Position) SetSideToMove(c Color) {
	if c != p.SideToMove {
		p.Hash ^= zobristSideToMove
	}
	p.SideToMove = c
}

// Validate checks the invariants the evaluator relies on.
func (p *Position) Validate() error {
	var kings [2]int
	for i := range p.Board {
		sq := Square(i)
		piece := p.Board[i]
		if !sq.InBounds() {
			if piece != InvalidPiece {
				return fmt.Errorf("sentinel square %d holds %s", i, piece.Type())
			}
			continue
		}
		switch piece.Type() {
		case Empty, Pawn:
		case King:
			kings[piece.Color()]++
			if p.KingSquare[piece.Color()] != sq {
				return fmt.Errorf("%s king on %s but recorded on %s", piece.Color(), sq, p.KingSquare[piece.Color()])
			}
		default:
			return fmt.Errorf("square %s holds %s", sq, piece.Type())
		}
	}

	for c := White; c <= Black; c++ {
		if kings[c] != 1 {
			return fmt.Errorf("%s must have exactly one king, found %d", strings.ToLower(c.String()), kings[c])
		}
	}

	if p.SideToMove > Black {
		return fmt.Errorf("invalid side to move: %d", p.SideToMove)
	}
	return nil
}

// Mirror returns the position reflected across the vertical axis with colors swapped.
// Side to move is unchanged.
func (p *Position) Mirror() *Position {
	m := NewEmptyPosition()
	for f := 0; f < BoardWidth; f++ {
		for r := 0; r < BoardWidth; r++ {
			sq := NewSquare(f, r)
			piece := p.Board[sq]
			if piece.Type() == Empty {
				continue
			}
			m.SetPiece(piece.Mirror(), sq.MirrorFile())
		}
	}
	m.SetSideToMove(p.SideToMove)
	return m
}

// PawnCount returns the number of pawns of color c.
func (p *Position) PawnCount(c Color) int {
	n := 0
	for f := 0; f < BoardWidth; f++ {
		for r := 0; r < BoardWidth; r++ {
			piece := p.Board[NewSquare(f, r)]
			if piece.Type() == Pawn && piece.Color() == c {
				n++
			}
		}
	}
	return n
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := BoardWidth - 1; rank >= 0; rank-- {
		sb.WriteString(fmt.Sprintf("%d  ", rank))
		for file := 0; file < BoardWidth; file++ {
			sb.WriteString(p.Board[NewSquare(file, rank)].String())
			sb.WriteByte(' ')
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   ")
	for file := 0; file < BoardWidth; file++ {
		sb.WriteString(fmt.Sprintf(" %c ", 'a'+file))
	}
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Side to move: %s\n", p.SideToMove))
	sb.WriteString(fmt.Sprintf("Hash: %016x\n", p.Hash))
	return sb.String()
}
