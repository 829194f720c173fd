package imaging

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/quickai/quickai-api/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRenderer mocks the Renderer interface
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) TextToImage(ctx context.Context, prompt string) ([]byte, error) {
	args := m.Called(ctx, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockUploader mocks the Uploader interface
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, source interface{}) (string, error) {
	args := m.Called(ctx, source)
	return args.String(0), args.Error(1)
}

func TestNewGeneratorValidation(t *testing.T) {
	t.Parallel()

	_, err := NewGenerator(nil, &MockUploader{}, nil)
	assert.Error(t, err)

	_, err = NewGenerator(&MockRenderer{}, nil, nil)
	assert.Error(t, err)
}

func TestGenerateImage(t *testing.T) {
	t.Parallel()

	t.Run("renders then uploads", func(t *testing.T) {
		t.Parallel()

		renderer := new(MockRenderer)
		uploader := new(MockUploader)
		imageBytes := []byte{0x89, 'P', 'N', 'G'}

		renderer.On("TextToImage", mock.Anything, "a red bicycle").Return(imageBytes, nil)
		uploader.On("Upload", mock.Anything, mock.MatchedBy(func(source interface{}) bool {
			r, ok := source.(io.Reader)
			if !ok {
				return false
			}
			data, err := io.ReadAll(r)
			return err == nil && string(data) == string(imageBytes)
		})).Return("https://res.example.com/quickai/abc.png", nil)

		g, err := NewGenerator(renderer, uploader, nil)
		require.NoError(t, err)

		url, err := g.GenerateImage(context.Background(), "a red bicycle")
		require.NoError(t, err)
		assert.Equal(t, "https://res.example.com/quickai/abc.png", url)

		renderer.AssertExpectations(t)
		uploader.AssertExpectations(t)
	})

	t.Run("render failure short-circuits upload", func(t *testing.T) {
		t.Parallel()

		renderer := new(MockRenderer)
		uploader := new(MockUploader)

		providerErr := generation.NewProviderError(http.StatusBadGateway, "image generation failed", "", nil)
		renderer.On("TextToImage", mock.Anything, "x").Return(nil, providerErr)

		g, err := NewGenerator(renderer, uploader, nil)
		require.NoError(t, err)

		url, err := g.GenerateImage(context.Background(), "x")
		assert.Empty(t, url)
		assert.ErrorIs(t, err, providerErr)
		uploader.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
	})

	t.Run("upload failure propagates", func(t *testing.T) {
		t.Parallel()

		renderer := new(MockRenderer)
		uploader := new(MockUploader)

		renderer.On("TextToImage", mock.Anything, "x").Return([]byte{1}, nil)
		uploadErr := generation.NewProviderError(0, "image upload failed", "", nil)
		uploader.On("Upload", mock.Anything, mock.Anything).Return("", uploadErr)

		g, err := NewGenerator(renderer, uploader, nil)
		require.NoError(t, err)

		_, err = g.GenerateImage(context.Background(), "x")
		assert.ErrorIs(t, err, uploadErr)
	})
}
