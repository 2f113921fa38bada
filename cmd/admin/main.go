package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"tripnest_backend/internal/repository"
	"tripnest_backend/pkg/config"
	"tripnest_backend/pkg/cron"
	"tripnest_backend/pkg/database"
	"tripnest_backend/pkg/email"
	"tripnest_backend/pkg/live"
	"tripnest_backend/pkg/seed"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tripnest-admin",
		Short: "TripNest maintenance commands",
	}

	rootCmd.AddCommand(
		migrateCmd(),
		seedCmd(),
		createAdminCmd(),
		leadDigestCmd(),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func connect() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if cfg.Database.URL == "" {
		return nil, nil, fmt.Errorf("DATABASE_URL is not set")
	}
	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return cfg, db, nil
}

func openRepositories() (*config.Config, repository.Repositories, error) {
	cfg, db, err := connect()
	if err != nil {
		return nil, repository.Repositories{}, err
	}
	repos, err := repository.NewRepositories(cfg.RecordStore, db, live.Noop{})
	if err != nil {
		return nil, repository.Repositories{}, err
	}
	return cfg, repos, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := connect()
			if err != nil {
				return err
			}
			return database.MigrateDatabase(db, repository.Models()...)
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo catalog into an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, repos, err := openRepositories()
			if err != nil {
				return err
			}
			return seed.Catalog(cmd.Context(), repos)
		},
	}
}

func createAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin profile or promote an existing one",
		RunE: func(cmd *cobra.Command, args []string) error {
			emailAddr, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			name, _ := cmd.Flags().GetString("name")
			if emailAddr == "" {
				return fmt.Errorf("--email is required")
			}

			_, repos, err := openRepositories()
			if err != nil {
				return err
			}
			profile, err := seed.Admin(cmd.Context(), repos.Profiles, emailAddr, password, name)
			if err != nil {
				return err
			}
			fmt.Printf("Admin ready: %s (%s)\n", profile.Email, profile.ID)
			return nil
		},
	}
	cmd.Flags().String("email", "", "admin email")
	cmd.Flags().String("password", "", "password for a new profile (min 8 characters)")
	cmd.Flags().String("name", "", "full name")
	return cmd
}

func leadDigestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lead-digest",
		Short: "Send the lead digest email now",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, repos, err := openRepositories()
			if err != nil {
				return err
			}
			mailer, err := email.NewEmailService(cfg.Mail, cfg.Server.SiteURL)
			if err != nil {
				return err
			}
			return cron.NewLeadDigest(repos.Leads, mailer).Run(cmd.Context())
		},
	}
}
