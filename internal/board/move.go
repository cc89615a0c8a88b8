package board

// Move encodes a shogi move in 16 bits:
// bits 0-6:   to square (0-80)
// bits 7-13:  from square (0-80), or the dropped piece type for drops
// bit 14:     promotion
// bit 15:     drop
type Move uint16

// Move flags
const (
	FlagPromotion uint16 = 1 << 14
	FlagDrop      uint16 = 1 << 15
)

// NoMove represents an invalid or null move. It cannot collide with a real
// move because a board move never has from == to.
const NoMove Move = 0

// NewMove creates a non-promoting board move.
func NewMove(from, to Square) Move {
	return Move(to) | Move(from)<<7
}

// NewPromotion creates a promoting board move.
func NewPromotion(from, to Square) Move {
	return Move(to) | Move(from)<<7 | Move(FlagPromotion)
}

// NewDrop creates a drop of pt from hand onto to.
func NewDrop(pt PieceType, to Square) Move {
	return Move(to) | Move(pt)<<7 | Move(FlagDrop)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square(m & 0x7F)
}

// From returns the origin square. Meaningless for drops.
func (m Move) From() Square {
	return Square((m >> 7) & 0x7F)
}

// DropPiece returns the dropped piece type. Meaningless for board moves.
func (m Move) DropPiece() PieceType {
	return PieceType((m >> 7) & 0x7F)
}

// IsDrop returns true if this is a drop from hand.
func (m Move) IsDrop() bool {
	return uint16(m)&FlagDrop != 0
}

// IsPromotion returns true if this is a promoting board move.
func (m Move) IsPromotion() bool {
	return uint16(m)&FlagPromotion != 0
}

// IsCapture returns true if this move captures a piece.
func (m Move) IsCapture(pos *Position) bool {
	return !m.IsDrop() && !pos.IsEmpty(m.To())
}

// IsQuiet returns true if this is not a capture or promotion.
func (m Move) IsQuiet(pos *Position) bool {
	return !m.IsCapture(pos) && !m.IsPromotion()
}

// String returns the USI format of the move (e.g., "7g7f", "8h2b+", "P*5e").
func (m Move) String() string {
	if m == NoMove {
		return "resign"
	}
	if m.IsDrop() {
		return string(m.DropPiece().Char()) + "*" + m.To().String()
	}

	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += "+"
	}
	return s
}

// MaxMoves bounds the number of legal moves in any shogi position (593 is
// the known maximum).
const MaxMoves = 600

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [MaxMoves]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Set sets the move at index i.
func (ml *MoveList) Set(i int, m Move) {
	ml.moves[i] = m
}

// Swap swaps two moves in the list.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Clear clears the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

// UndoInfo stores information needed to undo a move.
type UndoInfo struct {
	Move       Move
	Captured   Piece     // NoPiece if nothing was captured
	Hash       uint64    // Hash before the move
	Checkers   Bitboard  // Checkers before the move
	KingSquare [2]Square // King positions before move
}

// NullMoveUndo stores information needed to undo a null move.
type NullMoveUndo struct {
	Hash uint64
}
