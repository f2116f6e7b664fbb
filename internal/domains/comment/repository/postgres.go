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

	"blog-backend/internal/domains/comment/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresCommentRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &postgresCommentRepository{pool: pool}
}

const selectComment = `
	SELECT c.id, c.comment, c.user_id, c.blogpost_id, COALESCE(a.email, ''), c.created_at
	FROM comments c
	LEFT JOIN accounts a ON a.id = c.user_id`

func scanComment(row pgx.Row) (*model.Comment, error) {
	var c model.Comment
	if err := row.Scan(&c.ID, &c.Comment, &c.UserID, &c.BlogpostID, &c.AuthorEmail, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *postgresCommentRepository) Create(ctx context.Context, c *model.Comment) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO comments (id, comment, user_id, blogpost_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, c.ID, c.Comment, c.UserID, c.BlogpostID, c.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			if strings.Contains(pgErr.ConstraintName, "blogpost") {
				return model.ErrPostNotFound
			}
			return model.ErrUserRecordMissing
		}
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *postgresCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	c, err := scanComment(r.pool.QueryRow(ctx, selectComment+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCommentNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return c, nil
}

func (r *postgresCommentRepository) ListByPost(ctx context.Context, blogpostID uuid.UUID) ([]model.Comment, error) {
	rows, err := r.pool.Query(ctx, selectComment+`
		WHERE c.blogpost_id = $1
		ORDER BY c.created_at ASC, c.id
	`, blogpostID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return collectComments(rows)
}

func (r *postgresCommentRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Comment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count user comments: %w", err)
	}

	rows, err := r.pool.Query(ctx, selectComment+`
		WHERE c.user_id = $1
		ORDER BY c.created_at DESC, c.id
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list user comments: %w", err)
	}
	comments, err := collectComments(rows)
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func collectComments(rows pgx.Rows) ([]model.Comment, error) {
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, *c)
	}
	return comments, rows.Err()
}
