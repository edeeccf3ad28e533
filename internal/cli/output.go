package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/mcoot/tetris-go/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// PlayResult is printed after a game finishes
type PlayResult struct {
	Reason string         `json:"reason"`
	Score  response.Score `json:"score"`
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Score:
		o.printScore(v)
	case response.ScoreList:
		o.printScoreList(v)
	case response.Health:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	case PlayResult:
		o.printPlayResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printScore(s response.Score) {
	fmt.Fprintf(o.w, "Score %s by %s\n", s.ID, s.Player)
	fmt.Fprintf(o.w, "Points: %d\n", s.Score)
	fmt.Fprintf(o.w, "Lines: %d\n", s.LinesCleared)
	fmt.Fprintf(o.w, "Last combo: %d\n", s.LastCombo)
	fmt.Fprintf(o.w, "Pieces: %d\n", s.PiecesPlaced)
	fmt.Fprintf(o.w, "Played: %s (%s)\n",
		s.EndedAt.Format(time.RFC3339), time.Duration(s.DurationMS)*time.Millisecond)
}

func (o *Output) printScoreList(l response.ScoreList) {
	if len(l.Scores) == 0 {
		fmt.Fprintln(o.w, "No scores recorded yet")
		return
	}

	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tPLAYER\tSCORE\tLINES\tCOMBO\tID")
	for i, s := range l.Scores {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%s\n", i+1, s.Player, s.Score, s.LinesCleared, s.LastCombo, s.ID)
	}
	_ = tw.Flush()
	fmt.Fprintf(o.w, "Showing %d of %d\n", len(l.Scores), l.Total)
}

func (o *Output) printPlayResult(p PlayResult) {
	switch p.Reason {
	case "game_over":
		fmt.Fprintln(o.w, "Game over!")
	default:
		fmt.Fprintln(o.w, "Game ended.")
	}
	o.printScore(p.Score)
}
