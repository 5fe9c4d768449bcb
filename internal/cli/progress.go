package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProgressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Saved-progress commands",
	}

	cmd.AddCommand(newProgressFindCmd())
	cmd.AddCommand(newProgressLoadCmd())
	cmd.AddCommand(newProgressClearCmd())

	return cmd
}

func newProgressFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <board-id>",
		Short: "Find saved progress for a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ProgressResult

			if err := client.Get(fmt.Sprintf("/api/game/find-progress/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newProgressLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <session-id>",
		Short: "Load a saved progress snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ProgressResult

			if err := client.Get(fmt.Sprintf("/api/game/load-progress/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newProgressClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <session-id>",
		Short: "Delete a saved progress snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(fmt.Sprintf("/api/game/clear-progress/%s", args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Progress cleared")
			return nil
		},
	}
}
