package category

import (
	"context"

	"category-admin/internal/domain"
)

type Repository interface {
	Get(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, c domain.Category) (*domain.Category, error)
	Update(ctx context.Context, c domain.Category) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
	// Upsert inserts or updates by slug.
	Upsert(ctx context.Context, c domain.Category) (*domain.Category, error)
}
