// cmd/blogctl/main.go
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"blog-backend/internal/config"
	"blog-backend/pkg/logger"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "blogctl",
	Short: "Operational tooling for the blog backend",
	Long: `blogctl runs schema migrations and manages user pool group membership.

Available commands:
  migrate - Apply or roll back the embedded schema migrations
  groups  - Add, remove or list group membership for a user`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
		logger.Init(cfg.App.Environment, cfg.App.LogLevel)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(groupsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
