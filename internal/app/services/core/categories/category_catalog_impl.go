package categories

import (
	"context"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type categoryCatalog struct {
	CategoryRepository contracts.CategoryRepository
	RedisRepository    contracts.RedisRepository
	CacheTTL           time.Duration
	Log                *zap.Logger
}

// NewCategoryCatalog serves categories from redis and falls back to the
// repository when the cache is empty or unavailable.
func NewCategoryCatalog(categoryRepository contracts.CategoryRepository, redisRepository contracts.RedisRepository, cacheTTL time.Duration, logger *zap.Logger) contracts.CategoryCatalog {
	return &categoryCatalog{
		CategoryRepository: categoryRepository,
		RedisRepository:    redisRepository,
		CacheTTL:           cacheTTL,
		Log:                logger,
	}
}

func (c *categoryCatalog) Lookup(ctx context.Context) (models.CategoryLookup, error) {
	categories, err := c.All(ctx)
	if err != nil {
		return nil, err
	}
	return models.NewCategoryIndex(categories), nil
}

func (c *categoryCatalog) All(ctx context.Context) ([]models.Category, error) {
	requestID := utils.GetRequestID(ctx)

	if categories, ok := c.fromCache(ctx, requestID); ok {
		return categories, nil
	}

	categories, err := c.CategoryRepository.FindAll(ctx)
	if err != nil {
		c.Log.Error("categoryCatalog.All error calling CategoryRepository.FindAll",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if err := c.RedisRepository.Set(ctx, constvars.RedisKeyCategoryCatalog, categories, c.CacheTTL); err != nil {
		c.Log.Warn("categoryCatalog.All failed to cache categories",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
	return categories, nil
}

// FindByName returns nil when no category has that name.
func (c *categoryCatalog) FindByName(ctx context.Context, name string) (*models.Category, error) {
	categories, err := c.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].Name == name {
			return &categories[i], nil
		}
	}

	// the cache may predate a newly seeded category
	category, err := c.CategoryRepository.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if category != nil {
		c.Log.Info("categoryCatalog.FindByName found uncached category",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingCategoryNameKey, name),
		)
		if err := c.Invalidate(ctx); err != nil {
			c.Log.Warn("categoryCatalog.FindByName failed to invalidate cached categories",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.Error(err),
			)
		}
	}
	return category, nil
}

func (c *categoryCatalog) Invalidate(ctx context.Context) error {
	return c.RedisRepository.Delete(ctx, constvars.RedisKeyCategoryCatalog)
}

func (c *categoryCatalog) fromCache(ctx context.Context, requestID string) ([]models.Category, bool) {
	cached, err := c.RedisRepository.Get(ctx, constvars.RedisKeyCategoryCatalog)
	if err != nil {
		c.Log.Warn("categoryCatalog.fromCache error reading cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, false
	}
	if cached == "" {
		return nil, false
	}

	var categories []models.Category
	if err := json.Unmarshal([]byte(cached), &categories); err != nil {
		c.Log.Warn("categoryCatalog.fromCache dropping undecodable cache entry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, false
	}
	return categories, true
}
