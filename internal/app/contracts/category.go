package contracts

import (
	"context"
	"intake-service/internal/app/models"
)

type CategoryRepository interface {
	FindByName(ctx context.Context, name string) (*models.Category, error)
	FindAll(ctx context.Context) ([]models.Category, error)
}

// CategoryCatalog is the read-only, cached view of answer categories.
type CategoryCatalog interface {
	Lookup(ctx context.Context) (models.CategoryLookup, error)
	All(ctx context.Context) ([]models.Category, error)
	FindByName(ctx context.Context, name string) (*models.Category, error)
	Invalidate(ctx context.Context) error
}
