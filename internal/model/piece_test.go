package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/tetris-go/internal/dependencies/mocks"
)

func allShapes() []ShapeKind {
	kinds := make([]ShapeKind, 0, ShapeCount)
	for k := ShapeKind(0); k < ShapeCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func TestEveryShapeHasFourCells(t *testing.T) {
	for _, kind := range allShapes() {
		template := kind.Template()
		assert.Equal(t, CellCount, template.Count(), kind.String())
		assert.Equal(t, template.Cols(), template.Rows(), "%s template must be square", kind)
	}
}

func TestShapeColorsAreDistinct(t *testing.T) {
	seen := map[Color]ShapeKind{}
	for _, kind := range allShapes() {
		color := kind.Color()
		assert.NotEqual(t, ColorNone, color)
		_, dup := seen[color]
		assert.False(t, dup, "color %s reused by %s", color, kind)
		seen[color] = kind
	}
	assert.Equal(t, ColorNone, ShapeKind(42).Color())
}

func TestRotateFourTimesRestoresTemplate(t *testing.T) {
	for _, kind := range allShapes() {
		p := NewPiece(kind, 0, 0)
		original := p.Template()

		for i := 0; i < 4; i++ {
			p.RotateClockwise()
			assert.Equal(t, CellCount, p.Template().Count())
		}
		assert.True(t, original.Equal(p.Template()), "clockwise round trip for %s", kind)

		for i := 0; i < 4; i++ {
			p.RotateCounterClockwise()
		}
		assert.True(t, original.Equal(p.Template()), "counter-clockwise round trip for %s", kind)
	}
}

func TestRotateClockwiseThenCounterClockwiseIsIdentity(t *testing.T) {
	for _, kind := range allShapes() {
		p := NewPiece(kind, 0, 0)
		original := p.Template()
		p.RotateClockwise()
		p.RotateCounterClockwise()
		assert.True(t, original.Equal(p.Template()), kind.String())
	}
}

func TestRotateClockwiseT(t *testing.T) {
	p := NewPiece(ShapeT, 0, 0)
	p.RotateClockwise()

	expected := NewGridFrom(3, []bool{
		false, true, false,
		false, true, true,
		false, true, false,
	})
	assert.True(t, expected.Equal(p.Template()))
}

func TestRotateStraightStaysInsidePaddedTemplate(t *testing.T) {
	p := NewPiece(ShapeStraight, 0, 0)
	p.RotateClockwise()

	positions := p.Positions()
	for _, pos := range positions {
		assert.Equal(t, 2, pos.Col)
	}

	p.Refresh()
	p.RotateCounterClockwise()
	for _, pos := range p.Positions() {
		assert.Equal(t, 1, pos.Col)
	}
}

func TestPositionsAreOffsetByAnchor(t *testing.T) {
	p := NewPiece(ShapeSquare, 3, 5)
	assert.Equal(t, [CellCount]Position{
		{Row: 5, Col: 3}, {Row: 5, Col: 4},
		{Row: 6, Col: 3}, {Row: 6, Col: 4},
	}, p.Positions())
}

func TestPositionsPanicsOffBoard(t *testing.T) {
	p := NewPiece(ShapeSquare, -1, 0)
	assert.Panics(t, func() { p.Positions() })

	p.PlaceAt(0, -1)
	assert.Panics(t, func() { p.Positions() })
}

func TestPositionsUnsafeAllowsNegative(t *testing.T) {
	// T's template column 0 is empty in row 0, so anchor -1 still puts
	// cells on both sides of the edge
	p := NewPiece(ShapeT, -1, 0)
	positions := p.PositionsUnsafe()
	assert.Contains(t, positions, Position{Row: 1, Col: -1})
	assert.Contains(t, positions, Position{Row: 0, Col: 0})
}

func TestPositionsAllowNegativeAnchorWithEmptyPadding(t *testing.T) {
	p := NewPiece(ShapeStraight, 0, -1)
	require.NotPanics(t, func() { p.Positions() })
	for _, pos := range p.Positions() {
		assert.Equal(t, 0, pos.Row)
	}
}

func TestUnsafeMoves(t *testing.T) {
	p := NewPiece(ShapeL, 4, 4)
	p.MoveDownUnsafe()
	p.MoveLeftUnsafe()
	p.MoveLeftUnsafe()
	p.MoveRightUnsafe()

	assert.Equal(t, 3, p.AnchorX)
	assert.Equal(t, 5, p.AnchorY)
}

func TestSwapFiguresKeepsAnchors(t *testing.T) {
	a := NewPiece(ShapeT, 1, 2)
	a.RotateClockwise()
	rotatedT := a.Template()
	b := NewPiece(ShapeSquare, 7, 8)

	a.SwapFigures(b)

	assert.Equal(t, ShapeSquare, a.Kind())
	assert.Equal(t, ShapeT, b.Kind())
	assert.True(t, rotatedT.Equal(b.Template()))
	assert.Equal(t, 1, a.AnchorX)
	assert.Equal(t, 2, a.AnchorY)
	assert.Equal(t, 7, b.AnchorX)
	assert.Equal(t, 8, b.AnchorY)
}

func TestRefreshRestoresSpawnOrientation(t *testing.T) {
	p := NewPiece(ShapeWorm, 0, 0)
	p.RotateClockwise()
	p.Refresh()
	assert.True(t, ShapeWorm.Template().Equal(p.Template()))
}

func TestRandomizeUsesSource(t *testing.T) {
	rnd := mocks.NewMockRandom()
	rnd.QueueIntn(int(ShapeStraight), int(ShapeReverseWorm))

	p := NewRandomPiece(rnd, 0, 0)
	assert.Equal(t, ShapeStraight, p.Kind())

	p.RotateClockwise()
	p.Randomize(rnd)
	assert.Equal(t, ShapeReverseWorm, p.Kind())
	assert.True(t, ShapeReverseWorm.Template().Equal(p.Template()))
	assert.Equal(t, ColorMagenta, p.Color())
}

func TestCloneIsIndependent(t *testing.T) {
	p := NewPiece(ShapeL, 2, 2)
	clone := p.Clone()
	clone.RotateClockwise()
	clone.MoveDownUnsafe()

	assert.True(t, ShapeL.Template().Equal(p.Template()))
	assert.Equal(t, 2, p.AnchorY)
}
