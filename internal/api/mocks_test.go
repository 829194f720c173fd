package api

import (
	"context"

	"github.com/quickai/quickai-api/internal/domain"
	"github.com/quickai/quickai-api/internal/identity"
	"github.com/stretchr/testify/mock"
)

// MockCreationService mocks the CreationService and CreationReader surfaces.
type MockCreationService struct {
	mock.Mock
}

func (m *MockCreationService) GenerateArticle(ctx context.Context, user *identity.User, prompt string, length int) (*domain.Creation, error) {
	args := m.Called(ctx, user, prompt, length)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Creation), args.Error(1)
}

func (m *MockCreationService) GenerateEmail(ctx context.Context, user *identity.User, prompt, tone string) (*domain.Creation, error) {
	args := m.Called(ctx, user, prompt, tone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Creation), args.Error(1)
}

func (m *MockCreationService) GenerateImage(ctx context.Context, user *identity.User, prompt string, publish bool) (*domain.Creation, error) {
	args := m.Called(ctx, user, prompt, publish)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Creation), args.Error(1)
}

func (m *MockCreationService) RemoveBackground(ctx context.Context, user *identity.User, imagePath string) (*domain.Creation, error) {
	args := m.Called(ctx, user, imagePath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Creation), args.Error(1)
}

func (m *MockCreationService) RemoveObject(ctx context.Context, user *identity.User, imagePath, object string) (*domain.Creation, error) {
	args := m.Called(ctx, user, imagePath, object)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Creation), args.Error(1)
}

func (m *MockCreationService) ListUserCreations(ctx context.Context, userID string) ([]*domain.Creation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Creation), args.Error(1)
}

func (m *MockCreationService) ListPublishedCreations(ctx context.Context) ([]*domain.Creation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Creation), args.Error(1)
}
