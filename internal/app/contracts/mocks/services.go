package mocks

import (
	"context"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/dto/requests"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockCategoryCatalog struct {
	mock.Mock
}

func (m *MockCategoryCatalog) Lookup(ctx context.Context) (models.CategoryLookup, error) {
	args := m.Called(ctx)
	lookup, _ := args.Get(0).(models.CategoryLookup)
	return lookup, args.Error(1)
}

func (m *MockCategoryCatalog) All(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]models.Category)
	return categories, args.Error(1)
}

func (m *MockCategoryCatalog) FindByName(ctx context.Context, name string) (*models.Category, error) {
	args := m.Called(ctx, name)
	category, _ := args.Get(0).(*models.Category)
	return category, args.Error(1)
}

func (m *MockCategoryCatalog) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockTransactor runs fn with the caller's context unless an error is
// configured for the call.
type MockTransactor struct {
	mock.Mock
}

func (m *MockTransactor) WithTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

type MockWorkflowPublisher struct {
	mock.Mock
}

func (m *MockWorkflowPublisher) Publish(ctx context.Context, event *requests.WorkflowEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockRedisRepository struct {
	mock.Mock
}

func (m *MockRedisRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	args := m.Called(ctx, key, value, exp)
	return args.Error(0)
}

func (m *MockRedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func (m *MockRedisRepository) Expire(ctx context.Context, key string, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, exp)
	return args.Bool(0), args.Error(1)
}

func (m *MockRedisRepository) IncrementWithTTL(ctx context.Context, key string, exp time.Duration) (int, error) {
	args := m.Called(ctx, key, exp)
	return args.Int(0), args.Error(1)
}

type MockLockerService struct {
	mock.Mock
}

func (m *MockLockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockLockerService) Unlock(ctx context.Context, key, lockValue string) error {
	args := m.Called(ctx, key, lockValue)
	return args.Error(0)
}

func (m *MockLockerService) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	args := m.Called(ctx, key, lockValue, expiration)
	return args.Error(0)
}
