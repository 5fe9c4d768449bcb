package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player and profile commands",
	}

	cmd.AddCommand(newPlayerGuestCmd())
	cmd.AddCommand(newPlayerRegisterCmd())
	cmd.AddCommand(newPlayerLoginCmd())
	cmd.AddCommand(newPlayerMeCmd())
	cmd.AddCommand(newPlayerProfilesCmd())

	return cmd
}

func newPlayerGuestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guest [display-name]",
		Short: "Create a guest player and save the session token",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			displayName := "Guest"
			if len(args) > 0 {
				displayName = args[0]
			}

			req := map[string]string{"display_name": displayName}
			var result AuthResult

			if err := client.Post("/api/players/guest", req, &result); err != nil {
				return err
			}

			if err := cfg.SaveToken(result.SessionToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerRegisterCmd() *cobra.Command {
	var displayName string

	cmd := &cobra.Command{
		Use:   "register <username> <password>",
		Short: "Register a player account and save the session token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]
			password := args[1]
			if displayName == "" {
				displayName = username
			}

			req := map[string]string{
				"username":     username,
				"password":     password,
				"display_name": displayName,
			}
			var result AuthResult

			if err := client.Post("/api/players/register", req, &result); err != nil {
				return err
			}

			if err := cfg.SaveToken(result.SessionToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&displayName, "display-name", "", "Display name (defaults to username)")

	return cmd
}

func newPlayerLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <username> <password>",
		Short: "Log in and save the session token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"username": args[0],
				"password": args[1],
			}
			var result AuthResult

			if err := client.Post("/api/players/login", req, &result); err != nil {
				return err
			}

			if err := cfg.SaveToken(result.SessionToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the current player",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player

			if err := client.Get("/api/players/me", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerProfilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List profiles",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Profile

			if err := client.Get("/api/players/profiles", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if cfg.Output == "json" {
				out.Print(result)
				return nil
			}
			for _, p := range result {
				defaultStr := ""
				if p.IsDefault {
					defaultStr = " [default]"
				}
				fmt.Printf("  - %s (%s)%s\n", p.Name, p.ID, defaultStr)
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"name": args[0]}
			var result Profile

			if err := client.Post("/api/players/profiles", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if cfg.Output == "json" {
				out.Print(result)
				return nil
			}
			fmt.Printf("Profile created: %s (%s)\n", result.Name, result.ID)
			return nil
		},
	})

	return cmd
}
