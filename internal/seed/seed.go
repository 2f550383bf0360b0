package seed

import (
	"context"
	"fmt"

	"category-admin/internal/domain"
)

type CategoryWriter interface {
	Upsert(ctx context.Context, c domain.Category) (*domain.Category, error)
}

type categorySeed struct {
	Slug        string
	Name        string
	Parent      string
	Description string
	Sort        int
}

var categories = []categorySeed{
	{Slug: "news", Name: "News", Description: "Site announcements", Sort: 1},
	{Slug: "news-company", Name: "Company", Parent: "news", Sort: 1},
	{Slug: "news-industry", Name: "Industry", Parent: "news", Sort: 2},
	{Slug: "docs", Name: "Documentation", Description: "Guides and references", Sort: 2},
}

// Apply inserts demo categories for manual testing. It is idempotent via upsert by slug.
func Apply(ctx context.Context, w CategoryWriter) (int, error) {
	ids := make(map[string]string, len(categories))
	for _, s := range categories {
		c := domain.Category{
			Slug:        s.Slug,
			Name:        s.Name,
			Description: s.Description,
			Sort:        s.Sort,
			ParentID:    ids[s.Parent],
		}
		saved, err := w.Upsert(ctx, c)
		if err != nil {
			return 0, fmt.Errorf("upsert category %s: %w", s.Slug, err)
		}
		ids[s.Slug] = saved.ID
	}
	return len(categories), nil
}
