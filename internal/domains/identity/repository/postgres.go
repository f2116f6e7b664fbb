package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domains/identity"
	"blog-backend/pkg/database"
)

const uniqueViolation = "23505"

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) identity.Repository {
	return &postgresRepository{pool: pool}
}

const accountColumns = `
	id, username, email, password_hash, given_name, family_name,
	confirmed, confirmation_code, confirmation_expires_at, confirmed_at,
	created_at, updated_at`

func scanAccount(row pgx.Row) (*identity.Account, error) {
	var a identity.Account
	err := row.Scan(
		&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.GivenName, &a.FamilyName,
		&a.Confirmed, &a.ConfirmationCode, &a.ConfirmationExpiresAt, &a.ConfirmedAt,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, identity.ErrUserNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ========================================
// ACCOUNTS
// ========================================

func (r *postgresRepository) Create(ctx context.Context, a *identity.Account) error {
	query := `
		INSERT INTO accounts (
			id, username, email, password_hash, given_name, family_name,
			confirmed, confirmation_code, confirmation_expires_at,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.pool.Exec(ctx, query,
		a.ID, a.Username, a.Email, a.PasswordHash, a.GivenName, a.FamilyName,
		a.Confirmed, a.ConfirmationCode, a.ConfirmationExpiresAt,
		a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return identity.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *postgresRepository) findOne(ctx context.Context, where string, arg interface{}) (*identity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE ` + where
	a, err := scanAccount(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, err
	}

	a.Groups, err = r.ListGroups(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*identity.Account, error) {
	return r.findOne(ctx, "email = $1", email)
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Account, error) {
	return r.findOne(ctx, "id = $1", id)
}

// FindByUsername chấp nhận username hoặc account id (sub)
func (r *postgresRepository) FindByUsername(ctx context.Context, username string) (*identity.Account, error) {
	if id, err := uuid.Parse(username); err == nil {
		return r.FindByID(ctx, id)
	}
	return r.findOne(ctx, "username = $1", username)
}

func (r *postgresRepository) UpdateConfirmationCode(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET confirmation_code = $2, confirmation_expires_at = $3, updated_at = NOW()
		WHERE id = $1 AND confirmed = FALSE
	`, id, code, expiresAt)
	if err != nil {
		return fmt.Errorf("update confirmation code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return identity.ErrUserNotFound
	}
	return nil
}

// Confirm chạy trong transaction: account confirmed + User record được tạo cùng lúc
func (r *postgresRepository) Confirm(ctx context.Context, id uuid.UUID, profile identity.Profile, confirmedAt time.Time) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE accounts
			SET confirmed = TRUE,
			    confirmation_code = NULL,
			    confirmation_expires_at = NULL,
			    confirmed_at = $2,
			    updated_at = $2
			WHERE id = $1 AND confirmed = FALSE
		`, id, confirmedAt)
		if err != nil {
			return fmt.Errorf("mark account confirmed: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return identity.ErrAlreadyConfirmed
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO users (id, first_name, last_name, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $4)
			ON CONFLICT (id) DO NOTHING
		`, id, profile.FirstName, profile.LastName, confirmedAt)
		if err != nil {
			return fmt.Errorf("create user record: %w", err)
		}
		return nil
	})
}

func (r *postgresRepository) ClearExpiredCodes(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET confirmation_code = NULL, confirmation_expires_at = NULL, updated_at = NOW()
		WHERE confirmed = FALSE
		  AND confirmation_code IS NOT NULL
		  AND confirmation_expires_at < $1
	`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("clear expired codes: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// ========================================
// GROUPS
// ========================================

func (r *postgresRepository) AddToGroup(ctx context.Context, accountID uuid.UUID, group string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO group_memberships (account_id, group_name)
		VALUES ($1, $2)
		ON CONFLICT (account_id, group_name) DO NOTHING
	`, accountID, group)
	if err != nil {
		return false, fmt.Errorf("add %s to group %s: %w", accountID, group, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *postgresRepository) RemoveFromGroup(ctx context.Context, accountID uuid.UUID, group string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM group_memberships WHERE account_id = $1 AND group_name = $2`,
		accountID, group)
	if err != nil {
		return fmt.Errorf("remove %s from group %s: %w", accountID, group, err)
	}
	return nil
}

func (r *postgresRepository) ListGroups(ctx context.Context, accountID uuid.UUID) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT gm.group_name
		FROM group_memberships gm
		JOIN user_groups g ON g.name = gm.group_name
		WHERE gm.account_id = $1
		ORDER BY g.precedence, gm.group_name
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}

	groups, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan groups: %w", err)
	}
	return groups, nil
}

func (r *postgresRepository) GroupExists(ctx context.Context, group string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM user_groups WHERE name = $1)`, group,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check group: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) EnsureGroups(ctx context.Context, groups ...string) error {
	batch := &pgx.Batch{}
	for i, g := range groups {
		batch.Queue(`
			INSERT INTO user_groups (name, precedence) VALUES ($1, $2)
			ON CONFLICT (name) DO NOTHING
		`, g, i)
	}
	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("ensure groups: %w", err)
	}
	return nil
}
