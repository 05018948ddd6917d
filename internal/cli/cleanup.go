package cli

import (
	"github.com/spf13/cobra"
)

func newCleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Clear all game data",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result CleanupResult

			if err := client.Post("/cleanup", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
