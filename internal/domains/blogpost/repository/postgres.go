package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domains/blogpost/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresBlogpostRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresBlogpostRepository(pool *pgxpool.Pool) BlogpostRepository {
	return &postgresBlogpostRepository{pool: pool}
}

const postColumns = `
	id, title, content, user_id, author_name, category,
	header_image, date, created_at, updated_at`

func scanPost(row pgx.Row) (*model.Blogpost, error) {
	var p model.Blogpost
	err := row.Scan(
		&p.ID, &p.Title, &p.Content, &p.UserID, &p.AuthorName, &p.Category,
		&p.HeaderImage, &p.Date, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// mapWriteError: FK category → ErrCategoryNotFound
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" && strings.Contains(pgErr.ConstraintName, "category") {
		return model.ErrCategoryNotFound
	}
	return err
}

// =====================================================
// LIST
// =====================================================

func (r *postgresBlogpostRepository) List(ctx context.Context, filter model.ListFilter) ([]model.Blogpost, int, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.Category != "" {
		args = append(args, filter.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)))
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM blogposts " + whereClause
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset())
	query := fmt.Sprintf(`
		SELECT %s FROM blogposts
		%s
		ORDER BY created_at DESC, id
		LIMIT $%d OFFSET $%d
	`, postColumns, whereClause, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]model.Blogpost, 0, filter.Limit)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// =====================================================
// GET
// =====================================================

func (r *postgresBlogpostRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Blogpost, error) {
	p, err := scanPost(r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM blogposts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return p, nil
}

func (r *postgresBlogpostRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM blogposts WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check post: %w", err)
	}
	return exists, nil
}

// =====================================================
// WRITE
// =====================================================

func (r *postgresBlogpostRepository) Create(ctx context.Context, p *model.Blogpost) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO blogposts (
			id, title, content, user_id, author_name, category,
			header_image, date, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		p.ID, p.Title, p.Content, p.UserID, p.AuthorName, p.Category,
		p.HeaderImage, p.Date, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert post: %w", mapWriteError(err))
	}
	return nil
}

func (r *postgresBlogpostRepository) Update(ctx context.Context, p *model.Blogpost) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE blogposts
		SET title = $2, content = $3, category = $4,
		    header_image = $5, date = $6, updated_at = $7
		WHERE id = $1
	`, p.ID, p.Title, p.Content, p.Category, p.HeaderImage, p.Date, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update post: %w", mapWriteError(err))
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

func (r *postgresBlogpostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blogposts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

// =====================================================
// RELATIONSHIPS
// =====================================================

func (r *postgresBlogpostRepository) Author(ctx context.Context, id uuid.UUID) (*model.AuthorRef, error) {
	var (
		ref                 model.AuthorRef
		authorName          string
		firstName, lastName *string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT b.user_id, b.author_name, u.first_name, u.last_name
		FROM blogposts b
		LEFT JOIN users u ON u.id = b.user_id
		WHERE b.id = $1
	`, id).Scan(&ref.ID, &authorName, &firstName, &lastName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post author: %w", err)
	}

	ref.DisplayName = joinName(firstName, lastName)
	if ref.DisplayName == "" {
		ref.DisplayName = authorName
	}
	return &ref, nil
}

func (r *postgresBlogpostRepository) DisplayName(ctx context.Context, userID uuid.UUID) (string, error) {
	var firstName, lastName *string
	err := r.pool.QueryRow(ctx,
		`SELECT first_name, last_name FROM users WHERE id = $1`, userID,
	).Scan(&firstName, &lastName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("find display name: %w", err)
	}
	return joinName(firstName, lastName), nil
}

func joinName(first, last *string) string {
	var parts []string
	for _, p := range []*string{first, last} {
		if p != nil && strings.TrimSpace(*p) != "" {
			parts = append(parts, strings.TrimSpace(*p))
		}
	}
	return strings.Join(parts, " ")
}
