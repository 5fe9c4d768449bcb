package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPuzzleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "puzzle",
		Short: "Puzzle commands",
	}

	cmd.AddCommand(newPuzzleDailyCmd())
	cmd.AddCommand(newPuzzleGetCmd())

	return cmd
}

func newPuzzleDailyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daily",
		Short: "Fetch today's puzzle",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Puzzle

			if err := client.Get("/api/puzzle/daily", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPuzzleGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <board-id>",
		Short: "Fetch a puzzle by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Puzzle

			if err := client.Get(fmt.Sprintf("/api/puzzle/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
