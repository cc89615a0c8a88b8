package board

// Color represents the color of a piece or player.
// Black (sente) moves first.
type Color uint8

const (
	Black Color = iota
	White
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	default:
		return "NoColor"
	}
}

// PieceType represents the type of a shogi piece.
// The six promotable types are laid out so that promoting sets bit 3.
type PieceType uint8

const (
	Pawn PieceType = iota
	Lance
	Knight
	Silver
	Bishop
	Rook
	Gold
	King
	ProPawn
	ProLance
	ProKnight
	ProSilver
	Horse
	Dragon
	NoPieceType
)

// NumPieceTypes is the number of real piece types.
const NumPieceTypes = int(NoPieceType)

// promotedFlag is set on every promoted piece type.
const promotedFlag PieceType = 8

var pieceTypeNames = [...]string{
	"Pawn", "Lance", "Knight", "Silver", "Bishop", "Rook", "Gold", "King",
	"ProPawn", "ProLance", "ProKnight", "ProSilver", "Horse", "Dragon", "None",
}

// String returns the piece type name.
func (pt PieceType) String() string {
	if pt > NoPieceType {
		return "None"
	}
	return pieceTypeNames[pt]
}

// Char returns the SFEN letter of the unpromoted form (uppercase).
func (pt PieceType) Char() byte {
	chars := []byte{'P', 'L', 'N', 'S', 'B', 'R', 'G', 'K'}
	if pt >= NoPieceType {
		return ' '
	}
	return chars[pt.Demote()]
}

// CanPromote returns true if the type has a promoted form.
func (pt PieceType) CanPromote() bool {
	return pt <= Rook
}

// IsPromoted returns true for the six promoted types.
func (pt PieceType) IsPromoted() bool {
	return pt >= ProPawn && pt <= Dragon
}

// Promote returns the promoted form, or pt itself if it has none.
func (pt PieceType) Promote() PieceType {
	if pt.CanPromote() {
		return pt | promotedFlag
	}
	return pt
}

// Demote returns the unpromoted form. Captured pieces go to hand demoted.
func (pt PieceType) Demote() PieceType {
	if pt.IsPromoted() {
		return pt &^ promotedFlag
	}
	return pt
}

// Piece combines PieceType and Color into a single value.
// Encoded as: pieceType + color*14
type Piece uint8

const (
	BlackPawn      Piece = Piece(Pawn) + Piece(Black)*14
	BlackLance     Piece = Piece(Lance) + Piece(Black)*14
	BlackKnight    Piece = Piece(Knight) + Piece(Black)*14
	BlackSilver    Piece = Piece(Silver) + Piece(Black)*14
	BlackBishop    Piece = Piece(Bishop) + Piece(Black)*14
	BlackRook      Piece = Piece(Rook) + Piece(Black)*14
	BlackGold      Piece = Piece(Gold) + Piece(Black)*14
	BlackKing      Piece = Piece(King) + Piece(Black)*14
	BlackProPawn   Piece = Piece(ProPawn) + Piece(Black)*14
	BlackProLance  Piece = Piece(ProLance) + Piece(Black)*14
	BlackProKnight Piece = Piece(ProKnight) + Piece(Black)*14
	BlackProSilver Piece = Piece(ProSilver) + Piece(Black)*14
	BlackHorse     Piece = Piece(Horse) + Piece(Black)*14
	BlackDragon    Piece = Piece(Dragon) + Piece(Black)*14

	WhitePawn      Piece = Piece(Pawn) + Piece(White)*14
	WhiteLance     Piece = Piece(Lance) + Piece(White)*14
	WhiteKnight    Piece = Piece(Knight) + Piece(White)*14
	WhiteSilver    Piece = Piece(Silver) + Piece(White)*14
	WhiteBishop    Piece = Piece(Bishop) + Piece(White)*14
	WhiteRook      Piece = Piece(Rook) + Piece(White)*14
	WhiteGold      Piece = Piece(Gold) + Piece(White)*14
	WhiteKing      Piece = Piece(King) + Piece(White)*14
	WhiteProPawn   Piece = Piece(ProPawn) + Piece(White)*14
	WhiteProLance  Piece = Piece(ProLance) + Piece(White)*14
	WhiteProKnight Piece = Piece(ProKnight) + Piece(White)*14
	WhiteProSilver Piece = Piece(ProSilver) + Piece(White)*14
	WhiteHorse     Piece = Piece(Horse) + Piece(White)*14
	WhiteDragon    Piece = Piece(Dragon) + Piece(White)*14

	NoPiece Piece = 28
)

// NumPieces is the number of real (colored) pieces.
const NumPieces = int(NoPiece)

// NewPiece creates a piece from type and color.
func NewPiece(pt PieceType, c Color) Piece {
	return Piece(pt) + Piece(c)*14
}

// Type returns the piece type.
func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p % 14)
}

// Color returns the piece color.
func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	return Color(p / 14)
}

// String returns the SFEN token: uppercase for Black, lowercase for White,
// "+" prefixed when promoted.
func (p Piece) String() string {
	if p >= NoPiece {
		return "."
	}
	pt := p.Type()
	c := pt.Char()
	if p.Color() == White {
		c += 'a' - 'A'
	}
	if pt.IsPromoted() {
		return "+" + string(c)
	}
	return string(c)
}
