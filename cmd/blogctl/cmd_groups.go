package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"blog-backend/internal/config"
	"blog-backend/internal/domains/identity"
	identityRepo "blog-backend/internal/domains/identity/repository"
	identityService "blog-backend/internal/domains/identity/service"
	"blog-backend/internal/infrastructure/database"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Manage user pool group membership",
	Long: `Manage group membership in the configured user pool.

Examples:
  blogctl groups add alice@example.com AUTHORS
  blogctl groups remove alice@example.com AUTHORS
  blogctl groups list alice@example.com`,
}

var groupsAddCmd = &cobra.Command{
	Use:   "add <username> <group>",
	Short: "Add a user to a group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withGroupAdmin(func(ctx context.Context, admin identity.GroupAdmin) error {
			if err := admin.AdminAddUserToGroup(ctx, cfg.Identity.UserPoolID, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s to %s\n", args[0], args[1])
			return nil
		})
	},
}

var groupsRemoveCmd = &cobra.Command{
	Use:   "remove <username> <group>",
	Short: "Remove a user from a group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withGroupAdmin(func(ctx context.Context, admin identity.GroupAdmin) error {
			if err := admin.AdminRemoveUserFromGroup(ctx, cfg.Identity.UserPoolID, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s from %s\n", args[0], args[1])
			return nil
		})
	},
}

var groupsListCmd = &cobra.Command{
	Use:   "list <username>",
	Short: "List the groups a user belongs to",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withGroupAdmin(func(ctx context.Context, admin identity.GroupAdmin) error {
			groups, err := admin.AdminListGroupsForUser(ctx, cfg.Identity.UserPoolID, args[0])
			if err != nil {
				return err
			}
			if len(groups) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "(no groups)")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(groups, "\n"))
			return nil
		})
	},
}

func init() {
	groupsCmd.AddCommand(groupsAddCmd)
	groupsCmd.AddCommand(groupsRemoveCmd)
	groupsCmd.AddCommand(groupsListCmd)
}

func withGroupAdmin(fn func(ctx context.Context, admin identity.GroupAdmin) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbConfig, err := config.LoadDatabaseConfig(cfg.Database)
	if err != nil {
		return err
	}
	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	repo := identityRepo.NewPostgresRepository(db.Pool)
	if err := repo.EnsureGroups(ctx, cfg.Identity.AuthorGroup, cfg.Identity.ReaderGroup); err != nil {
		return err
	}
	return fn(ctx, identityService.NewGroupAdmin(repo, cfg.Identity))
}
