package category

import (
	"context"
	"errors"

	"category-admin/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

const columns = `id::text, COALESCE(parent_id::text, ''), name, slug, description, sort, image, created_at, updated_at`

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Get(ctx context.Context, id string) (*domain.Category, error) {
	q := `SELECT ` + columns + ` FROM categories WHERE id = $1`
	c, err := scanCategory(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		return nil, mapErr(err)
	}
	return c, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Category, error) {
	q := `SELECT ` + columns + ` FROM categories ORDER BY sort ASC, name ASC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Create(ctx context.Context, c domain.Category) (*domain.Category, error) {
	q := `
INSERT INTO categories (parent_id, name, slug, description, sort, image)
VALUES (NULLIF($1, '')::uuid, $2, $3, $4, $5, $6)
RETURNING ` + columns
	out, err := scanCategory(r.pool.QueryRow(ctx, q, c.ParentID, c.Name, c.Slug, c.Description, c.Sort, c.Image))
	if err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

func (r *postgresRepo) Update(ctx context.Context, c domain.Category) (*domain.Category, error) {
	q := `
UPDATE categories
SET parent_id = NULLIF($2, '')::uuid,
    name = $3,
    slug = $4,
    description = $5,
    sort = $6,
    image = $7,
    updated_at = now()
WHERE id = $1
RETURNING ` + columns
	out, err := scanCategory(r.pool.QueryRow(ctx, q, c.ID, c.ParentID, c.Name, c.Slug, c.Description, c.Sort, c.Image))
	if err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Upsert(ctx context.Context, c domain.Category) (*domain.Category, error) {
	q := `
INSERT INTO categories (parent_id, name, slug, description, sort, image)
VALUES (NULLIF($1, '')::uuid, $2, $3, $4, $5, $6)
ON CONFLICT (slug) DO UPDATE
SET parent_id = COALESCE(EXCLUDED.parent_id, categories.parent_id),
    name = EXCLUDED.name,
    description = COALESCE(NULLIF(EXCLUDED.description, ''), categories.description),
    sort = EXCLUDED.sort,
    image = COALESCE(NULLIF(EXCLUDED.image, ''), categories.image),
    updated_at = now()
RETURNING ` + columns
	out, err := scanCategory(r.pool.QueryRow(ctx, q, c.ParentID, c.Name, c.Slug, c.Description, c.Sort, c.Image))
	if err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	if err := row.Scan(&c.ID, &c.ParentID, &c.Name, &c.Slug, &c.Description, &c.Sort, &c.Image, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func mapErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrAlreadyExists
	}
	return err
}
