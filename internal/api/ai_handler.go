package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/quickai/quickai-api/internal/api/shared"
	"github.com/quickai/quickai-api/internal/domain"
	"github.com/quickai/quickai-api/internal/identity"
	"github.com/quickai/quickai-api/internal/platform/logger"
	"github.com/quickai/quickai-api/internal/redact"
)

// maxUploadBytes bounds multipart image uploads.
const maxUploadBytes = 10 << 20 // 10 MiB

// CreationService is the application surface the AI handlers depend on.
type CreationService interface {
	GenerateArticle(ctx context.Context, user *identity.User, prompt string, length int) (*domain.Creation, error)
	GenerateEmail(ctx context.Context, user *identity.User, prompt, tone string) (*domain.Creation, error)
	GenerateImage(ctx context.Context, user *identity.User, prompt string, publish bool) (*domain.Creation, error)
	RemoveBackground(ctx context.Context, user *identity.User, imagePath string) (*domain.Creation, error)
	RemoveObject(ctx context.Context, user *identity.User, imagePath, object string) (*domain.Creation, error)
}

// AIHandler serves the five generation endpoints.
type AIHandler struct {
	service   CreationService
	validator *validator.Validate
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(service CreationService) *AIHandler {
	return &AIHandler{
		service:   service,
		validator: validator.New(),
	}
}

// GenerateArticle handles POST /api/ai/generate-article.
func (h *AIHandler) GenerateArticle(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromRequest(w, r)
	if !ok {
		return
	}

	var req GenerateArticleRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	creation, err := h.service.GenerateArticle(r.Context(), user, req.Prompt, req.Length)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, map[string]interface{}{"content": creation.Content})
}

// GenerateEmail handles POST /api/ai/generate-email.
func (h *AIHandler) GenerateEmail(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromRequest(w, r)
	if !ok {
		return
	}

	var req GenerateEmailRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	creation, err := h.service.GenerateEmail(r.Context(), user, req.Prompt, req.Tone)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, map[string]interface{}{"content": creation.Content})
}

// GenerateImage handles POST /api/ai/generate-image.
func (h *AIHandler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromRequest(w, r)
	if !ok {
		return
	}

	var req GenerateImageRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	creation, err := h.service.GenerateImage(r.Context(), user, req.Prompt, req.Publish)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, map[string]interface{}{"imageUrl": creation.Content})
}

// RemoveImageBackground handles POST /api/ai/remove-image-background
// (multipart: image).
func (h *AIHandler) RemoveImageBackground(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromRequest(w, r)
	if !ok {
		return
	}

	imagePath, cleanup, ok := h.saveUpload(w, r)
	if !ok {
		return
	}
	defer cleanup()

	creation, err := h.service.RemoveBackground(r.Context(), user, imagePath)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, map[string]interface{}{"secure_url": creation.Content})
}

// RemoveImageObject handles POST /api/ai/remove-image-object
// (multipart: image + object field).
func (h *AIHandler) RemoveImageObject(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromRequest(w, r)
	if !ok {
		return
	}

	imagePath, cleanup, ok := h.saveUpload(w, r)
	if !ok {
		return
	}
	defer cleanup()

	object := r.FormValue("object")
	if object == "" {
		shared.RespondWithFailure(w, r, http.StatusBadRequest, "object field is required")
		return
	}

	creation, err := h.service.RemoveObject(r.Context(), user, imagePath, object)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, map[string]interface{}{"imageUrl": creation.Content})
}

// decodeAndValidate parses the JSON body into req and applies its validate
// tags, writing a 400 failure on either problem.
func (h *AIHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		shared.RespondWithFailure(w, r, http.StatusBadRequest, "Invalid request payload")
		return false
	}

	if err := h.validator.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			field := validationErrs[0]
			shared.RespondWithFailure(w, r, http.StatusBadRequest,
				fmt.Sprintf("Invalid field: %s (%s)", field.Field(), field.Tag()))
		} else {
			shared.RespondWithFailure(w, r, http.StatusBadRequest, "Invalid request payload")
		}
		return false
	}

	return true
}

// saveUpload copies the multipart "image" part to a temp file and hands the
// pipeline its local path. The returned cleanup removes the file after the
// request; the durable copy lives at the image host.
func (h *AIHandler) saveUpload(w http.ResponseWriter, r *http.Request) (string, func(), bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		shared.RespondWithFailure(w, r, http.StatusBadRequest, "Invalid multipart form")
		return "", nil, false
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		shared.RespondWithFailure(w, r, http.StatusBadRequest, "image file is required")
		return "", nil, false
	}
	defer func() { _ = file.Close() }()

	tmp, err := os.CreateTemp("", "quickai-upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		shared.RespondWithFailureAndLog(w, r, http.StatusInternalServerError, genericFailureMessage, err)
		return "", nil, false
	}

	if _, err := io.Copy(tmp, file); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		shared.RespondWithFailureAndLog(w, r, http.StatusInternalServerError, genericFailureMessage, err)
		return "", nil, false
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		shared.RespondWithFailureAndLog(w, r, http.StatusInternalServerError, genericFailureMessage, err)
		return "", nil, false
	}

	path := tmp.Name()
	cleanup := func() {
		if err := os.Remove(path); err != nil {
			log := logger.FromContextOrDefault(r.Context(), slog.Default())
			log.Warn("failed to remove upload temp file",
				slog.String("error", redact.Error(err)))
		}
	}
	return path, cleanup, true
}

// userFromRequest extracts the authenticated snapshot placed in the context
// by the auth middleware, writing a 401 failure when it is missing.
func userFromRequest(w http.ResponseWriter, r *http.Request) (*identity.User, bool) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		shared.RespondWithFailure(w, r, http.StatusUnauthorized, "Authentication required")
		return nil, false
	}
	return user, true
}
