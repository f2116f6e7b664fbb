package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domains/category/model"
)

type postgresCategoryRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &postgresCategoryRepository{pool: pool}
}

func (r *postgresCategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	query := `
		SELECT c.id, c.category_name, c.slug, c.created_at, COUNT(b.id) AS post_count
		FROM categories c
		LEFT JOIN blogposts b ON b.category = c.category_name
		GROUP BY c.id
		ORDER BY c.category_name
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	categories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Category, error) {
		var c model.Category
		err := row.Scan(&c.ID, &c.CategoryName, &c.Slug, &c.CreatedAt, &c.PostCount)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan categories: %w", err)
	}
	return categories, nil
}

func (r *postgresCategoryRepository) Create(ctx context.Context, c *model.Category) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO categories (id, category_name, slug, created_at)
		VALUES ($1, $2, $3, $4)
	`, c.ID, c.CategoryName, c.Slug, c.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrDuplicateCategory
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *postgresCategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE category_name = $1)`, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check category: %w", err)
	}
	return exists, nil
}
