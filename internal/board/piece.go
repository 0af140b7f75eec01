package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// PieceType represents what occupies a square.
type PieceType uint8

const (
	Empty PieceType = iota
	Pawn
	King
	Invalid // Off-board sentinel
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Empty:
		return "Empty"
	case Pawn:
		return "Pawn"
	case King:
		return "King"
	case Invalid:
		return "Invalid"
	default:
		return "Unknown"
	}
}

// Orientation is one of the four facings of a piece.
// Kings use NN/EE/SS/WW, Pawns use NW/NE/SE/SW; both share the values 0-3.
type Orientation uint8

const (
	NN Orientation = iota
	EE
	SS
	WW
)

const (
	NW Orientation = iota
	NE
	SE
	SW
)

// NumOrientations is the number of legal facings.
const NumOrientations = 4

// IsValid reports whether o is one of the four cardinal facings.
func (o Orientation) IsValid() bool {
	return o < NumOrientations
}

var (
	kingOriNames = [NumOrientations]string{"NN", "EE", "SS", "WW"}
	pawnOriNames = [NumOrientations]string{"NW", "NE", "SE", "SW"}
)

// KingString returns the King facing name (NN, EE, SS, WW).
func (o Orientation) KingString() string {
	if !o.IsValid() {
		return "??"
	}
	return kingOriNames[o]
}

// PawnString returns the Pawn facing name (NW, NE, SE, SW).
func (o Orientation) PawnString() string {
	if !o.IsValid() {
		return "??"
	}
	return pawnOriNames[o]
}

// MirrorKing returns the King facing reflected across the vertical axis.
func (o Orientation) MirrorKing() Orientation {
	switch o {
	case EE:
		return WW
	case WW:
		return EE
	}
	return o
}

// MirrorPawn returns the Pawn facing reflected across the vertical axis.
func (o Orientation) MirrorPawn() Orientation {
	switch o {
	case NW:
		return NE
	case NE:
		return NW
	case SE:
		return SW
	case SW:
		return SE
	}
	return o
}

// Piece packs type, color and orientation into one byte.
// Layout: bits 0-1 orientation, bit 2 color, bits 3-5 type.
type Piece uint8

const (
	oriMask    = 0x3
	colorShift = 2
	colorMask  = 0x1
	typeShift  = 3
	typeMask   = 0x7
)

const (
	NoPiece      Piece = Piece(Empty) << typeShift
	InvalidPiece Piece = Piece(Invalid) << typeShift
)

// NewPiece creates a Piece from its parts.
func NewPiece(pt PieceType, c Color, o Orientation) Piece {
	return Piece(pt&typeMask)<<typeShift | Piece(c&colorMask)<<colorShift | Piece(o&oriMask)
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	return PieceType(p>>typeShift) & typeMask
}

// Color returns the Color of the piece.
func (p Piece) Color() Color {
	return Color(p>>colorShift) & colorMask
}

// Orientation returns the facing of the piece.
func (p Piece) Orientation() Orientation {
	return Orientation(p & oriMask)
}

// String returns the two-letter FEN token for the piece.
// Uppercase for white, lowercase for black, "--" for empty squares.
func (p Piece) String() string {
	var s string
	switch p.Type() {
	case King:
		s = p.Orientation().KingString()
	case Pawn:
		s = p.Orientation().PawnString()
	case Empty:
		return "--"
	default:
		return "##"
	}
	if p.Color() == Black {
		return string([]byte{s[0] + 'a' - 'A', s[1] + 'a' - 'A'})
	}
	return s
}

// PieceFromToken converts a two-letter FEN token to a Piece.
func PieceFromToken(tok string) (Piece, bool) {
	if len(tok) != 2 {
		return NoPiece, false
	}
	c := White
	upper := []byte(tok)
	if tok[0] >= 'a' && tok[0] <= 'z' && tok[1] >= 'a' && tok[1] <= 'z' {
		c = Black
		upper[0] -= 'a' - 'A'
		upper[1] -= 'a' - 'A'
	} else if tok[0] < 'A' || tok[0] > 'Z' || tok[1] < 'A' || tok[1] > 'Z' {
		return NoPiece, false
	}
	s := string(upper)
	for o := Orientation(0); o < NumOrientations; o++ {
		if kingOriNames[o] == s {
			return NewPiece(King, c, o), true
		}
		if pawnOriNames[o] == s {
			return NewPiece(Pawn, c, o), true
		}
	}
	return NoPiece, false
}

// Mirror returns the piece reflected across the vertical axis with its color swapped.
func (p Piece) Mirror() Piece {
	switch p.Type() {
	case King:
		return NewPiece(King, p.Color().Other(), p.Orientation().MirrorKing())
	case Pawn:
		return NewPiece(Pawn, p.Color().Other(), p.Orientation().MirrorPawn())
	}
	return p
}
