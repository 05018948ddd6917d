package cli

import (
	"github.com/spf13/cobra"
)

func newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <name>",
		Short: "Register a new player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"name": args[0]}
			var result RegisterResult

			if err := client.Post("/register", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newUpdateCmd() *cobra.Command {
	var (
		name     string
		score    int
		current  int
		total    int
		status   string
		question int
		timeMS   int64
		correct  bool
	)

	cmd := &cobra.Command{
		Use:   "update <player-id>",
		Short: "Update a player, optionally submitting an answer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"player_id": args[0]}

			flags := cmd.Flags()
			if flags.Changed("name") {
				req["name"] = name
			}
			if flags.Changed("score") {
				req["score"] = score
			}
			if flags.Changed("current-question") {
				req["current_question_number"] = current
			}
			if flags.Changed("total-questions") {
				req["total_questions_in_game"] = total
			}
			if flags.Changed("status") {
				req["status"] = status
			}
			if flags.Changed("question") {
				req["question_id"] = question
				req["last_answer_correct"] = correct
			}
			if flags.Changed("time-ms") {
				req["time_spent_ms"] = timeMS
			}

			var result UpdateResult
			if err := client.Post("/update_status", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New display name")
	cmd.Flags().IntVar(&score, "score", 0, "Client-reported base score")
	cmd.Flags().IntVar(&current, "current-question", 0, "Current question number")
	cmd.Flags().IntVar(&total, "total-questions", 0, "Total questions in the game")
	cmd.Flags().StringVar(&status, "status", "", "Player status (waiting, playing, finished)")
	cmd.Flags().IntVar(&question, "question", 0, "Question id being answered")
	cmd.Flags().Int64Var(&timeMS, "time-ms", 0, "Time spent answering, in milliseconds")
	cmd.Flags().BoolVar(&correct, "correct", false, "Whether the submitted answer was correct")

	return cmd
}

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Per-player statistics",
	}

	cmd.AddCommand(newPlayerQuestionsCmd())
	cmd.AddCommand(newPlayerTimesCmd())

	return cmd
}

func newPlayerQuestionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "questions <player-id>",
		Short: "Show a player's per-question status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PlayerQuestions

			if err := client.Get("/players/"+args[0]+"/questions", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerTimesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "times <player-id>",
		Short: "Show a player's answer times",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PlayerTimes

			if err := client.Get("/players/"+args[0]+"/times", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
