package model

// Grid is a fixed-size boolean occupancy table stored row-major in one slice.
// Bounds are the caller's responsibility.
type Grid struct {
	cols  int
	cells []bool
}

// NewGrid creates an empty grid
func NewGrid(cols, rows int) *Grid {
	return &Grid{
		cols:  cols,
		cells: make([]bool, cols*rows),
	}
}

// NewGridFrom creates a grid over a copy of the given cells.
// len(cells) must be a multiple of cols.
func NewGridFrom(cols int, cells []bool) *Grid {
	backing := make([]bool, len(cells))
	copy(backing, cells)
	return &Grid{cols: cols, cells: backing}
}

// Cols returns the column count
func (g *Grid) Cols() int {
	return g.cols
}

// Rows returns the row count
func (g *Grid) Rows() int {
	if g.cols == 0 {
		return 0
	}
	return len(g.cells) / g.cols
}

// Len returns the total number of cells
func (g *Grid) Len() int {
	return len(g.cells)
}

// Index converts a row/col pair into a flat index
func (g *Grid) Index(row, col int) int {
	return row*g.cols + col
}

// Coords converts a flat index back into a row/col pair
func (g *Grid) Coords(idx int) (row, col int) {
	return idx / g.cols, idx % g.cols
}

// Get returns the cell at row/col
func (g *Grid) Get(row, col int) bool {
	return g.cells[g.Index(row, col)]
}

// Set stores a value at row/col
func (g *Grid) Set(row, col int, value bool) {
	g.cells[g.Index(row, col)] = value
}

// At returns the cell at a flat index
func (g *Grid) At(idx int) bool {
	return g.cells[idx]
}

// Row returns a view of one row. Writes through the view modify the grid.
func (g *Grid) Row(row int) []bool {
	start := row * g.cols
	return g.cells[start : start+g.cols : start+g.cols]
}

// CopyRow overwrites row `to` with the contents of row `from`
func (g *Grid) CopyRow(from, to int) {
	if from == to {
		return
	}
	copy(g.Row(to), g.Row(from))
}

// Clone returns a deep copy
func (g *Grid) Clone() *Grid {
	return NewGridFrom(g.cols, g.cells)
}

// Count returns the number of occupied cells
func (g *Grid) Count() int {
	n := 0
	for _, v := range g.cells {
		if v {
			n++
		}
	}
	return n
}

// Equal reports whether both grids have the same shape and contents
func (g *Grid) Equal(other *Grid) bool {
	if g.cols != other.cols || len(g.cells) != len(other.cells) {
		return false
	}
	for i, v := range g.cells {
		if other.cells[i] != v {
			return false
		}
	}
	return true
}
