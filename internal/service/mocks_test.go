package service

import (
	"context"

	"github.com/quickai/quickai-api/internal/domain"
	"github.com/quickai/quickai-api/internal/generation"
	"github.com/quickai/quickai-api/internal/identity"
	"github.com/stretchr/testify/mock"
)

// MockTextGenerator mocks generation.TextGenerator
type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) GenerateText(ctx context.Context, req generation.TextRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// MockImageGenerator mocks generation.ImageGenerator
type MockImageGenerator struct {
	mock.Mock
}

func (m *MockImageGenerator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// MockBackgroundRemover mocks generation.BackgroundRemover
type MockBackgroundRemover struct {
	mock.Mock
}

func (m *MockBackgroundRemover) RemoveBackground(ctx context.Context, imagePath string) (string, error) {
	args := m.Called(ctx, imagePath)
	return args.String(0), args.Error(1)
}

// MockObjectRemover mocks generation.ObjectRemover
type MockObjectRemover struct {
	mock.Mock
}

func (m *MockObjectRemover) RemoveObject(ctx context.Context, imagePath, object string) (string, error) {
	args := m.Called(ctx, imagePath, object)
	return args.String(0), args.Error(1)
}

// MockCreationStore mocks store.CreationStore
type MockCreationStore struct {
	mock.Mock
}

func (m *MockCreationStore) Create(ctx context.Context, creation *domain.Creation) error {
	args := m.Called(ctx, creation)
	return args.Error(0)
}

func (m *MockCreationStore) FindByUserID(ctx context.Context, userID string) ([]*domain.Creation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Creation), args.Error(1)
}

func (m *MockCreationStore) FindPublished(ctx context.Context) ([]*domain.Creation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Creation), args.Error(1)
}

// MockIdentityProvider mocks identity.Provider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) CurrentUser(ctx context.Context, sessionToken string) (*identity.User, error) {
	args := m.Called(ctx, sessionToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockIdentityProvider) IncrementFreeUsage(ctx context.Context, userID string, seen int) error {
	args := m.Called(ctx, userID, seen)
	return args.Error(0)
}
