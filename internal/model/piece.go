package model

import "fmt"

// CellCount is the number of cells in every tetromino
const CellCount = 4

// Intner is the slice of a random source a piece needs to pick its shape
type Intner interface {
	Intn(n int) int
}

// Piece is a tetromino: a square shape template anchored on the board.
// AnchorX/AnchorY may go negative while a rotation kick is being tried;
// combined with the template's occupied cells they must land on the board
// before Positions is called.
type Piece struct {
	AnchorX  int
	AnchorY  int
	kind     ShapeKind
	template *Grid
}

// NewPiece creates a piece of the given shape in spawn orientation
func NewPiece(kind ShapeKind, anchorX, anchorY int) *Piece {
	return &Piece{
		AnchorX:  anchorX,
		AnchorY:  anchorY,
		kind:     kind,
		template: kind.Template(),
	}
}

// NewRandomPiece creates a piece with a uniformly chosen shape
func NewRandomPiece(rnd Intner, anchorX, anchorY int) *Piece {
	return NewPiece(randomShape(rnd), anchorX, anchorY)
}

func randomShape(rnd Intner) ShapeKind {
	return ShapeKind(rnd.Intn(ShapeCount))
}

// Kind returns the piece's shape
func (p *Piece) Kind() ShapeKind {
	return p.kind
}

// Color returns the piece's display color
func (p *Piece) Color() Color {
	return p.kind.Color()
}

// Template returns a copy of the current (possibly rotated) template
func (p *Piece) Template() *Grid {
	return p.template.Clone()
}

// Clone returns an independent copy of the piece
func (p *Piece) Clone() *Piece {
	return &Piece{
		AnchorX:  p.AnchorX,
		AnchorY:  p.AnchorY,
		kind:     p.kind,
		template: p.template.Clone(),
	}
}

// RotateClockwise turns the template a quarter turn clockwise
func (p *Piece) RotateClockwise() {
	size := p.template.Cols()
	rotated := NewGrid(size, size)
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			rotated.Set(i, j, p.template.Get(size-1-j, i))
		}
	}
	p.template = rotated
}

// RotateCounterClockwise turns the template a quarter turn counter-clockwise
func (p *Piece) RotateCounterClockwise() {
	size := p.template.Cols()
	rotated := NewGrid(size, size)
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			rotated.Set(i, j, p.template.Get(j, size-1-i))
		}
	}
	p.template = rotated
}

// PositionsUnsafe returns the board coordinates of the piece's cells.
// Coordinates may be negative or past the board edge.
func (p *Piece) PositionsUnsafe() [CellCount]Position {
	var result [CellCount]Position
	n := 0
	for idx := 0; idx < p.template.Len(); idx++ {
		if !p.template.At(idx) {
			continue
		}
		row, col := p.template.Coords(idx)
		result[n] = Position{Row: row + p.AnchorY, Col: col + p.AnchorX}
		n++
	}
	return result
}

// Positions returns the board coordinates of the piece's cells.
// It panics if any cell has a negative coordinate: callers must only use it
// on a piece that is known to be on the board.
func (p *Piece) Positions() [CellCount]Position {
	positions := p.PositionsUnsafe()
	for _, pos := range positions {
		if pos.Row < 0 || pos.Col < 0 {
			panic(fmt.Sprintf("piece %s has off-board cell (%d, %d)", p.kind, pos.Row, pos.Col))
		}
	}
	return positions
}

// MoveDownUnsafe moves the anchor one row down without any checks
func (p *Piece) MoveDownUnsafe() {
	p.AnchorY++
}

// MoveLeftUnsafe moves the anchor one column left without any checks
func (p *Piece) MoveLeftUnsafe() {
	p.AnchorX--
}

// MoveRightUnsafe moves the anchor one column right without any checks
func (p *Piece) MoveRightUnsafe() {
	p.AnchorX++
}

// PlaceAt resets the anchor
func (p *Piece) PlaceAt(anchorX, anchorY int) {
	p.AnchorX = anchorX
	p.AnchorY = anchorY
}

// SwapFigures exchanges shape and orientation with another piece.
// Both anchors stay where they are.
func (p *Piece) SwapFigures(other *Piece) {
	p.template, other.template = other.template, p.template
	p.kind, other.kind = other.kind, p.kind
}

// Refresh returns the piece to its spawn orientation
func (p *Piece) Refresh() {
	p.template = p.kind.Template()
}

// Randomize draws a new shape and resets the orientation
func (p *Piece) Randomize(rnd Intner) {
	p.kind = randomShape(rnd)
	p.template = p.kind.Template()
}
