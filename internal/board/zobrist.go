package board

// Zobrist hash keys for position hashing.
// Uses PRNG with fixed seed for reproducibility.
var (
	zobristPiece      [ArrSize][64]uint64 // [Square][Piece]
	zobristSideToMove uint64              // XOR when black to move
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234) // Fixed seed

	for sq := 0; sq < ArrSize; sq++ {
		if !Square(sq).InBounds() {
			continue
		}
		for _, pt := range []PieceType{Pawn, King} {
			for c := White; c <= Black; c++ {
				for o := Orientation(0); o < NumOrientations; o++ {
					zobristPiece[sq][NewPiece(pt, c, o)] = rng.next()
				}
			}
		}
	}

	zobristSideToMove = rng.next()
}

// ComputeHash computes the Zobrist hash for the position from scratch.
func (p *Position) ComputeHash() uint64 {
	var hash uint64

	for f := 0; f < BoardWidth; f++ {
		for r := 0; r < BoardWidth; r++ {
			sq := NewSquare(f, r)
			piece := p.Board[sq]
			if piece.Type() == Pawn || piece.Type() == King {
				hash ^= zobristPiece[sq][piece]
			}
		}
	}

	if p.SideToMove == Black {
		hash ^= zobristSideToMove
	}

	return hash
}
