package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGridDimensions(t *testing.T) {
	g := NewGrid(5, 3)
	assert.Equal(t, 5, g.Cols())
	assert.Equal(t, 3, g.Rows())
	assert.Equal(t, 15, g.Len())
	assert.Equal(t, 0, g.Count())
}

func TestGridIndexRoundTrip(t *testing.T) {
	g := NewGrid(7, 4)
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			idx := g.Index(row, col)
			assert.Equal(t, row*7+col, idx)
			r, c := g.Coords(idx)
			assert.Equal(t, row, r)
			assert.Equal(t, col, c)
		}
	}
}

func TestGridSetGet(t *testing.T) {
	g := NewGrid(3, 3)
	g.Set(1, 2, true)

	assert.True(t, g.Get(1, 2))
	assert.True(t, g.At(5))
	assert.False(t, g.Get(2, 1))
	assert.Equal(t, 1, g.Count())
}

func TestGridRowIsAView(t *testing.T) {
	g := NewGrid(3, 2)
	row := g.Row(1)
	row[0] = true

	assert.True(t, g.Get(1, 0))
	assert.Len(t, row, 3)
	assert.Equal(t, []bool{false, false, false}, g.Row(0))
}

func TestGridCopyRow(t *testing.T) {
	g := NewGridFrom(3, []bool{
		true, false, true,
		false, false, false,
	})
	g.CopyRow(0, 1)

	assert.Equal(t, []bool{true, false, true}, g.Row(1))
	assert.Equal(t, []bool{true, false, true}, g.Row(0))
}

func TestGridFromCopiesInput(t *testing.T) {
	cells := []bool{true, false, false, true}
	g := NewGridFrom(2, cells)
	cells[0] = false

	assert.True(t, g.Get(0, 0))
}

func TestGridCloneAndEqual(t *testing.T) {
	g := NewGridFrom(2, []bool{true, false, false, true})
	clone := g.Clone()
	assert.True(t, g.Equal(clone))

	clone.Set(0, 1, true)
	assert.False(t, g.Equal(clone))
	assert.False(t, g.Equal(NewGrid(4, 1)))
}
