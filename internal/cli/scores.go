package cli

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/tetris-go/internal/api/response"
	"github.com/mcoot/tetris-go/internal/factory"
	"github.com/mcoot/tetris-go/internal/model"
)

func newScoresCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Show the leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := fetchScores(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out.Print(list)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of scores to show (1-100)")
	cmd.AddCommand(newScoreShowCmd())

	return cmd
}

func newScoreShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single recorded game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			score, err := fetchScore(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out.Print(score)
			return nil
		},
	}
}

func fetchScores(ctx context.Context, limit int) (response.ScoreList, error) {
	var list response.ScoreList

	if cfg.ServerURL != "" {
		path := fmt.Sprintf("/api/v1/scores?limit=%d", limit)
		err := NewClient(cfg.ServerURL).Get(ctx, path, &list)
		return list, err
	}

	err := withLocalApp(func(app *factory.App) error {
		records, err := app.ScoreService.Top(ctx, limit)
		if err != nil {
			return err
		}
		total, err := app.ScoreService.Count(ctx)
		if err != nil {
			return err
		}
		list = response.ScoreListFromModel(records, total)
		return nil
	})
	return list, err
}

func fetchScore(ctx context.Context, id string) (response.Score, error) {
	var score response.Score

	if cfg.ServerURL != "" {
		err := NewClient(cfg.ServerURL).Get(ctx, "/api/v1/scores/"+url.PathEscape(id), &score)
		return score, err
	}

	err := withLocalApp(func(app *factory.App) error {
		record, err := app.ScoreService.Get(ctx, model.ScoreID(id))
		if err != nil {
			return err
		}
		score = response.ScoreFromModel(record)
		return nil
	})
	return score, err
}

// withLocalApp wires the configured storage for a short-lived command
func withLocalApp(fn func(app *factory.App) error) error {
	logger, closeLog, err := cfg.NewLogger(io.Discard)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	app, err := factory.New(cfg.FactoryConfig(logger, 0))
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "closing storage: %v\n", err)
		}
	}()

	return fn(app)
}
