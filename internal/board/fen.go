package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "ss9/10/1se1se1se1se1se/10/10/10/10/NW1NW1NW1NW1NW1/10/9NN W"

// ParseFEN parses a FEN string and returns a Position.
//
// Ranks are listed from 9 down to 0 and separated by '/'. Within a rank,
// files run a to j; a number skips that many empty squares and a two-letter
// token places a piece (NN/EE/SS/WW for Kings, NW/NE/SE/SW for Pawns,
// uppercase White, lowercase Black). The side to move follows as W or B.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return nil, fmt.Errorf("invalid FEN: need 2 fields, got %d", len(parts))
	}

	pos := NewEmptyPosition()

	// Parse piece placement (field 0)
	if err := parsePiecePlacement(pos, parts[0]); err != nil {
		return nil, err
	}

	// Parse side to move (field 1)
	switch parts[1] {
	case "W", "w":
		pos.SetSideToMove(White)
	case "B", "b":
		pos.SetSideToMove(Black)
	default:
		return nil, fmt.Errorf("invalid side to move: %s", parts[1])
	}

	if err := pos.Validate(); err != nil {
		return nil, fmt.Errorf("invalid FEN: %w", err)
	}

	return pos, nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != BoardWidth {
		return fmt.Errorf("invalid piece placement: need %d ranks, got %d", BoardWidth, len(ranks))
	}

	for i, rankStr := range ranks {
		rank := BoardWidth - 1 - i // FEN starts from the top rank
		file := 0

		for j := 0; j < len(rankStr); {
			c := rankStr[j]
			if c >= '0' && c <= '9' {
				k := j
				for k < len(rankStr) && rankStr[k] >= '0' && rankStr[k] <= '9' {
					k++
				}
				n, err := strconv.Atoi(rankStr[j:k])
				if err != nil || n == 0 {
					return fmt.Errorf("invalid empty run %q in rank %d", rankStr[j:k], rank)
				}
				file += n
				j = k
				continue
			}

			if j+2 > len(rankStr) {
				return fmt.Errorf("truncated piece token in rank %d", rank)
			}
			piece, ok := PieceFromToken(rankStr[j : j+2])
			if !ok {
				return fmt.Errorf("invalid piece token: %s", rankStr[j:j+2])
			}
			if file >= BoardWidth {
				return fmt.Errorf("too many squares in rank %d", rank)
			}
			sq := NewSquare(file, rank)
			if piece.Type() == King && pos.KingSquare[piece.Color()] != NoSquare {
				return fmt.Errorf("second %s king on %s", strings.ToLower(piece.Color().String()), sq)
			}
			if err := pos.SetPiece(piece, sq); err != nil {
				return err
			}
			file++
			j += 2
		}

		if file != BoardWidth {
			return fmt.Errorf("invalid number of squares in rank %d: got %d", rank, file)
		}
	}

	return nil
}

// ToFEN returns the FEN representation of the position.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	for rank := BoardWidth - 1; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < BoardWidth; file++ {
			piece := p.Board[NewSquare(file, rank)]
			if piece.Type() == Empty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('W')
	} else {
		sb.WriteByte('B')
	}

	return sb.String()
}
