package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mcoot/tetris-go/internal/api/response"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check a running server's health",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.ServerURL == "" {
				return errors.New("--server (or TETRIS_SERVER) is required")
			}

			var result response.Health
			if err := NewClient(cfg.ServerURL).Get(cmd.Context(), "/api/v1/health", &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}
}
