package cli

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

func newRegisterCmd() *cobra.Command {
	var login, pass string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"login":    login,
				"password": pass,
			}
			var result RegisterResult

			if err := client.Post("/register", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&login, "login", "", "Login name (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("login")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newLoginCmd() *cobra.Command {
	var login, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login with an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"login":    login,
				"password": pass,
			}
			var result AuthResult

			if err := client.Post("/login", req, &result); err != nil {
				return err
			}

			// Save token
			if err := cfg.SaveToken(result.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&login, "login", "", "Login name (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("login")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newCheckLoginCmd() *cobra.Command {
	var login string

	cmd := &cobra.Command{
		Use:   "check-login",
		Short: "Check whether a login name is still available",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/check-login?login=" + url.QueryEscape(login)
			body, err := client.DoText(http.MethodGet, path)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if body == "true" {
				out.PrintMessage(fmt.Sprintf("%q is available", login))
			} else {
				out.PrintMessage(fmt.Sprintf("%q is taken", login))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&login, "login", "", "Login name (required)")
	_ = cmd.MarkFlagRequired("login")

	return cmd
}

func newUserDataCmd() *cobra.Command {
	var login, playerID string

	cmd := &cobra.Command{
		Use:   "user-data",
		Short: "Show a user's public data by login or player id",
		RunE: func(cmd *cobra.Command, args []string) error {
			if login == "" && playerID == "" {
				return fmt.Errorf("--login or --player-id is required")
			}

			q := url.Values{}
			if login != "" {
				q.Set("login", login)
			}
			if playerID != "" {
				q.Set("player_id", playerID)
			}

			var result UserData
			if err := client.Get("/user-data?"+q.Encode(), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&login, "login", "", "Login name")
	cmd.Flags().StringVar(&playerID, "player-id", "", "Player id")

	return cmd
}

func newMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the authenticated account",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Me

			if err := client.Get("/me", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the top players by score",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Leaderboard

			if err := client.Get("/leaderboard", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newUpdateScoreCmd() *cobra.Command {
	var login string
	var score int

	cmd := &cobra.Command{
		Use:   "update-score",
		Short: "Add to a user's score (negative deltas allowed)",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"login": login,
				"score": score,
			}
			var result MessageResult

			if err := client.Post("/update-score", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&login, "login", "", "Login name (required)")
	cmd.Flags().IntVar(&score, "score", 0, "Score delta (required)")
	_ = cmd.MarkFlagRequired("login")
	_ = cmd.MarkFlagRequired("score")

	return cmd
}

func newUnlockAchievementCmd() *cobra.Command {
	var login, achievementID string

	cmd := &cobra.Command{
		Use:   "unlock-achievement",
		Short: "Unlock an achievement for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"login":          login,
				"achievement_id": achievementID,
			}
			var result MessageResult

			if err := client.Post("/unlock-achievement", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&login, "login", "", "Login name (required)")
	cmd.Flags().StringVar(&achievementID, "achievement", "", "Achievement id (required)")
	_ = cmd.MarkFlagRequired("login")
	_ = cmd.MarkFlagRequired("achievement")

	return cmd
}
