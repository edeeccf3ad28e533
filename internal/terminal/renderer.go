package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/mcoot/tetris-go/internal/model"
	"github.com/mcoot/tetris-go/internal/services/tetris"
)

// Layout of the drawing, in screen cells. A board cell is CellWidth
// screen columns wide and one row tall; the board sits inside a one cell
// border at the top left of the screen.
const (
	CellWidth    = 2
	BoardOriginX = 1
	BoardOriginY = 1
	panelGap     = 2
	previewRows  = 4
)

const block = '█'

var (
	styleDefault   = tcell.StyleDefault
	styleBorder    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleGhost     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHighlight = tcell.StyleDefault.Foreground(tcell.ColorLightGray)
	styleLabel     = tcell.StyleDefault.Bold(true)
	styleGameOver  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorRed).Bold(true)
)

var pieceColors = map[model.Color]tcell.Color{
	model.ColorRed:         tcell.ColorRed,
	model.ColorGreen:       tcell.ColorGreen,
	model.ColorBlue:        tcell.ColorBlue,
	model.ColorLightBlue:   tcell.ColorLightBlue,
	model.ColorLightYellow: tcell.ColorLightYellow,
	model.ColorYellow:      tcell.ColorYellow,
	model.ColorMagenta:     tcell.ColorFuchsia,
}

// PieceStyle returns the style used to draw blocks of the given color
func PieceStyle(c model.Color) tcell.Style {
	fg, ok := pieceColors[c]
	if !ok {
		fg = tcell.ColorWhite
	}
	return tcell.StyleDefault.Foreground(fg)
}

// Renderer draws snapshots onto a tcell screen
type Renderer struct {
	screen tcell.Screen
}

// NewRenderer creates a renderer for an initialised screen
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// BoardCell returns the screen coordinates of the left half of a board cell
func BoardCell(p model.Position) (x, y int) {
	return BoardOriginX + p.Col*CellWidth, BoardOriginY + p.Row
}

// PanelX returns the first screen column of the side panel
func PanelX(columns int) int {
	return BoardOriginX + columns*CellWidth + panelGap
}

// Draw replaces the screen contents with the snapshot and shows it
func (r *Renderer) Draw(snap tetris.Snapshot) {
	r.screen.Clear()

	r.drawBorder(snap.Columns, snap.Rows)
	r.drawPile(snap)
	for _, p := range snap.Projected.Cells {
		r.drawBoardBlock(p, styleGhost)
	}
	current := PieceStyle(snap.Current.Color)
	for _, p := range snap.Current.Cells {
		r.drawBoardBlock(p, current)
	}
	r.drawPanel(snap)
	if snap.Over {
		r.drawGameOver(snap.Columns, snap.Rows)
	}

	r.screen.Show()
}

func (r *Renderer) drawBorder(columns, rows int) {
	left := BoardOriginX - 1
	right := BoardOriginX + columns*CellWidth
	top := BoardOriginY - 1
	bottom := BoardOriginY + rows

	for x := left + 1; x < right; x++ {
		r.screen.SetContent(x, top, '─', nil, styleBorder)
		r.screen.SetContent(x, bottom, '─', nil, styleBorder)
	}
	for y := top + 1; y < bottom; y++ {
		r.screen.SetContent(left, y, '│', nil, styleBorder)
		r.screen.SetContent(right, y, '│', nil, styleBorder)
	}
	r.screen.SetContent(left, top, '╭', nil, styleBorder)
	r.screen.SetContent(right, top, '╮', nil, styleBorder)
	r.screen.SetContent(left, bottom, '╰', nil, styleBorder)
	r.screen.SetContent(right, bottom, '╯', nil, styleBorder)
	r.drawText(left+2, top, styleLabel, " Tetris ")
}

func (r *Renderer) drawPile(snap tetris.Snapshot) {
	highlighted := make(map[int]bool, len(snap.HighlightRows))
	for _, row := range snap.HighlightRows {
		highlighted[row] = true
	}
	for _, c := range snap.Pile {
		style := PieceStyle(c.Color)
		if highlighted[c.Row] {
			style = styleHighlight
		}
		r.drawBoardBlock(c.Position, style)
	}
}

func (r *Renderer) drawBoardBlock(p model.Position, style tcell.Style) {
	x, y := BoardCell(p)
	for i := 0; i < CellWidth; i++ {
		r.screen.SetContent(x+i, y, block, nil, style)
	}
}

func (r *Renderer) drawPanel(snap tetris.Snapshot) {
	x := PanelX(snap.Columns)
	y := BoardOriginY

	r.drawText(x, y, styleLabel, "Next")
	r.drawPreview(x, y+1, snap.Next)
	y += previewRows + 2

	spareLabel := "Spare"
	if snap.SpareUsed {
		spareLabel = "Spare (used)"
	}
	r.drawText(x, y, styleLabel, spareLabel)
	r.drawPreview(x, y+1, snap.Spare)
	y += previewRows + 2

	r.drawText(x, y, styleLabel, fmt.Sprintf("Score: %d", snap.Score))
	r.drawText(x, y+1, styleDefault, fmt.Sprintf("Last combo: %d", snap.LastCombo))
	r.drawText(x, y+2, styleDefault, fmt.Sprintf("Lines: %d", snap.LinesCleared))
	r.drawText(x, y+3, styleDefault, fmt.Sprintf("Speed: %dms", snap.TickSpeed.Milliseconds()))
}

func (r *Renderer) drawPreview(x, y int, piece tetris.PieceView) {
	style := PieceStyle(piece.Color)
	for _, p := range piece.Cells {
		for i := 0; i < CellWidth; i++ {
			r.screen.SetContent(x+p.Col*CellWidth+i, y+p.Row, block, nil, style)
		}
	}
}

func (r *Renderer) drawGameOver(columns, rows int) {
	const banner = " GAME OVER "
	width := columns * CellWidth
	x := BoardOriginX + (width-len(banner))/2
	y := BoardOriginY + rows/2
	r.drawText(x, y, styleGameOver, banner)
}

func (r *Renderer) drawText(x, y int, style tcell.Style, text string) {
	for _, ch := range text {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}
