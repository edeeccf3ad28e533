package model

import (
	"sort"

	"github.com/kamstrup/intmap"
)

// Position identifies a cell on the board
type Position struct {
	Row int // 0-indexed from top
	Col int // 0-indexed from left
}

// Cell is an occupied board cell and its color
type Cell struct {
	Position
	Color Color
}

// Board is the pile of landed blocks.
// The grid answers collision queries; the color map, keyed by the grid's
// flat index, holds exactly the occupied cells.
type Board struct {
	grid   *Grid
	colors *intmap.Map[int, Color]
}

// NewBoard creates an empty board
func NewBoard(cols, rows int) *Board {
	return &Board{
		grid:   NewGrid(cols, rows),
		colors: intmap.New[int, Color](cols * rows),
	}
}

// Cols returns the board width
func (b *Board) Cols() int {
	return b.grid.Cols()
}

// Rows returns the board height
func (b *Board) Rows() int {
	return b.grid.Rows()
}

// IsValidPosition returns true if the position is within bounds
func (b *Board) IsValidPosition(pos Position) bool {
	return pos.Row >= 0 && pos.Row < b.Rows() && pos.Col >= 0 && pos.Col < b.Cols()
}

// Contains reports whether the cell is occupied
func (b *Board) Contains(row, col int) bool {
	return b.grid.Get(row, col)
}

// ColorAt returns the color of an occupied cell
func (b *Board) ColorAt(row, col int) (Color, bool) {
	return b.colors.Get(b.grid.Index(row, col))
}

// Place marks a single cell occupied with the given color
func (b *Board) Place(pos Position, color Color) {
	b.grid.Set(pos.Row, pos.Col, true)
	b.colors.Put(b.grid.Index(pos.Row, pos.Col), color)
}

// Add merges a landed piece into the pile
func (b *Board) Add(piece *Piece) {
	color := piece.Color()
	for _, pos := range piece.Positions() {
		b.Place(pos, color)
	}
}

// Count returns the number of occupied cells
func (b *Board) Count() int {
	return b.colors.Len()
}

// Cells returns all occupied cells ordered by row then column
func (b *Board) Cells() []Cell {
	cells := make([]Cell, 0, b.colors.Len())
	b.colors.ForEach(func(idx int, color Color) bool {
		row, col := b.grid.Coords(idx)
		cells = append(cells, Cell{Position: Position{Row: row, Col: col}, Color: color})
		return true
	})
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
	return cells
}

// CompleteLinesWith returns the rows, ascending and without duplicates, that
// would be full if the extra positions were occupied as well. The board is
// not modified.
func (b *Board) CompleteLinesWith(positions []Position) []int {
	extra := make(map[int]bool, len(positions))
	for _, pos := range positions {
		if b.IsValidPosition(pos) {
			extra[b.grid.Index(pos.Row, pos.Col)] = true
		}
	}

	seen := make(map[int]bool, len(positions))
	result := []int{}
	for _, pos := range positions {
		if !b.IsValidPosition(pos) || seen[pos.Row] {
			continue
		}
		seen[pos.Row] = true
		if b.isCompleteLineWith(pos.Row, extra) {
			result = append(result, pos.Row)
		}
	}
	sort.Ints(result)
	return result
}

func (b *Board) isCompleteLineWith(row int, extra map[int]bool) bool {
	for col, occupied := range b.grid.Row(row) {
		if !occupied && !extra[b.grid.Index(row, col)] {
			return false
		}
	}
	return true
}

// CleanupFullLines removes every full row and compacts the rest downward in
// a single bottom-up pass. Each surviving row drops by the number of full
// rows below it. Row 0 is scanned and moved like every other row.
// Returns the number of rows removed.
func (b *Board) CleanupFullLines() int {
	write := b.Rows() - 1
	cleared := 0

	for row := b.Rows() - 1; row >= 0; row-- {
		if b.isCompleteLineWith(row, nil) {
			b.removeLine(row)
			cleared++
			continue
		}
		if row != write {
			b.copyLine(row, write)
			b.removeLine(row)
		}
		write--
	}

	for row := 0; row <= write; row++ {
		b.removeLine(row)
	}
	return cleared
}

func (b *Board) copyLine(from, to int) {
	b.grid.CopyRow(from, to)
	for col, occupied := range b.grid.Row(to) {
		toIdx := b.grid.Index(to, col)
		if !occupied {
			b.colors.Del(toIdx)
			continue
		}
		if color, ok := b.colors.Get(b.grid.Index(from, col)); ok {
			b.colors.Put(toIdx, color)
		}
	}
}

func (b *Board) removeLine(row int) {
	line := b.grid.Row(row)
	for col := range line {
		line[col] = false
		b.colors.Del(b.grid.Index(row, col))
	}
}
