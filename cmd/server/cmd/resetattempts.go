package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/eventorbit/server/internal/auth"
	"github.com/eventorbit/server/internal/config"
	"github.com/eventorbit/server/internal/domain/accounts"
	"github.com/eventorbit/server/internal/storage/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var resetAttemptsRole string

// resetAttemptsCmd is the only way out of a lockout: no API endpoint clears
// the counter.
var resetAttemptsCmd = &cobra.Command{
	Use:   "reset-attempts <email>",
	Short: "Reset an account's failed-login counter",
	Long: `Reset the failed-login counter for an account, unlocking it if it was
deactivated after too many failed attempts.

Examples:
  # Unlock a user account
  server reset-attempts grace@example.com

  # Unlock an admin account
  server reset-attempts ada@example.com --role admin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		role := accounts.Role(resetAttemptsRole)
		if !role.Valid() {
			return fmt.Errorf("invalid role %q (want admin or user)", resetAttemptsRole)
		}

		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		logger := config.NewLogger(cfg.Logging)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		pool, err := pgxpool.New(ctx, cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		defer pool.Close()

		repo, err := postgres.NewRepository(pool)
		if err != nil {
			return err
		}

		tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.AccessExpiry, cfg.Auth.RefreshExpiry, cfg.Auth.Issuer)
		service := accounts.NewService(repo.Accounts(), tokens, logger)

		email := args[0]
		if err := service.ResetLoginAttempts(ctx, role, email); err != nil {
			return fmt.Errorf("reset attempts: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "login attempts reset for %s (%s)\n", email, role)
		return nil
	},
}

func init() {
	resetAttemptsCmd.Flags().StringVar(&resetAttemptsRole, "role", "user", "account role (admin or user)")
}
