package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the live leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Dashboard

			if err := client.Get("/dashboard", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Aggregated game statistics",
	}

	cmd.AddCommand(newStatsGlobalCmd())
	cmd.AddCommand(newStatsQuestionCmd())

	return cmd
}

func newStatsGlobalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "global",
		Short: "Show aggregate statistics over all players",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GlobalStats

			if err := client.Get("/stats", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newStatsQuestionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "question <question-id>",
		Short: "Show statistics for a single question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := strconv.Atoi(args[0]); err != nil {
				return err
			}

			var result QuestionStats
			if err := client.Get("/questions/"+args[0]+"/stats", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
