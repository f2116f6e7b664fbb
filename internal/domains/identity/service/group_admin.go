package service

import (
	"context"
	"fmt"
	"strings"

	"blog-backend/internal/config"
	"blog-backend/internal/domains/identity"
	"blog-backend/pkg/logger"
)

// groupAdmin implements the user pool admin API over the identity repository.
type groupAdmin struct {
	repo   identity.Repository
	poolID string
}

func NewGroupAdmin(repo identity.Repository, cfg config.IdentityConfig) identity.GroupAdmin {
	return &groupAdmin{
		repo:   repo,
		poolID: cfg.UserPoolID,
	}
}

func (g *groupAdmin) resolve(ctx context.Context, userPoolID, userName string) (*identity.Account, error) {
	if userPoolID != g.poolID {
		return nil, fmt.Errorf("%s: %w", userPoolID, identity.ErrUserPoolNotFound)
	}
	return g.repo.FindByUsername(ctx, identity.NormalizeEmail(userName))
}

// resolveMembership: add/remove luôn cần group có thật trong pool
func (g *groupAdmin) resolveMembership(ctx context.Context, userPoolID, userName, group string) (*identity.Account, error) {
	if userPoolID != g.poolID {
		return nil, fmt.Errorf("%s: %w", userPoolID, identity.ErrUserPoolNotFound)
	}
	if strings.TrimSpace(group) == "" {
		return nil, fmt.Errorf("empty group name: %w", identity.ErrGroupNotFound)
	}
	exists, err := g.repo.GroupExists(ctx, group)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%s: %w", group, identity.ErrGroupNotFound)
	}
	return g.resolve(ctx, userPoolID, userName)
}

// AdminAddUserToGroup - idempotent, gọi 2 lần vẫn chỉ có 1 membership
func (g *groupAdmin) AdminAddUserToGroup(ctx context.Context, userPoolID, userName, group string) error {
	account, err := g.resolveMembership(ctx, userPoolID, userName, group)
	if err != nil {
		return err
	}

	added, err := g.repo.AddToGroup(ctx, account.ID, group)
	if err != nil {
		return err
	}

	logger.Info("group membership ensured", map[string]interface{}{
		"user":    account.Username,
		"group":   group,
		"created": added,
	})
	return nil
}

func (g *groupAdmin) AdminRemoveUserFromGroup(ctx context.Context, userPoolID, userName, group string) error {
	account, err := g.resolveMembership(ctx, userPoolID, userName, group)
	if err != nil {
		return err
	}
	return g.repo.RemoveFromGroup(ctx, account.ID, group)
}

func (g *groupAdmin) AdminListGroupsForUser(ctx context.Context, userPoolID, userName string) ([]string, error) {
	account, err := g.resolve(ctx, userPoolID, userName)
	if err != nil {
		return nil, err
	}
	if account.Groups == nil {
		return []string{}, nil
	}
	return account.Groups, nil
}
