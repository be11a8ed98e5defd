package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/familyllc/recipe-manager/backend/internal/apperr"
	"github.com/familyllc/recipe-manager/backend/internal/logger"
	"github.com/familyllc/recipe-manager/backend/internal/types"
)

// MaxImageSize is the largest recipe photo accepted for upload.
const MaxImageSize = 5 << 20

// ErrStorageDisabled is returned when no object store is configured.
var ErrStorageDisabled = errors.New("image storage is not configured")

var imageExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// ObjectStore uploads an object and returns its public URL.
type ObjectStore interface {
	PutObject(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// ImageService stores recipe photos and records their URL on the recipe.
type ImageService struct {
	store   ObjectStore
	recipes *RecipeService
	log     *logger.Logger
}

// NewImageService creates an ImageService. store may be nil, in which case
// every upload fails with ErrStorageDisabled.
func NewImageService(store ObjectStore, recipes *RecipeService, baseLog *logger.Logger) *ImageService {
	return &ImageService{
		store:   store,
		recipes: recipes,
		log:     baseLog.With("service", "ImageService"),
	}
}

func (s *ImageService) Enabled() bool {
	return s.store != nil
}

// UploadRecipeImage stores the image under recipes/{id}/{uuid}.{ext} and
// points the recipe at it. The content type is sniffed from the bytes.
func (s *ImageService) UploadRecipeImage(ctx context.Context, recipeID uuid.UUID, body io.Reader) (*types.RecipeView, error) {
	if s.store == nil {
		return nil, ErrStorageDisabled
	}

	exists, err := s.recipes.Exists(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("recipe", recipeID)
	}

	data, err := io.ReadAll(io.LimitReader(body, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) == 0 {
		return nil, apperr.Validation(apperr.FieldError{Field: "image", Message: "must not be empty"})
	}
	if len(data) > MaxImageSize {
		return nil, apperr.Validation(apperr.FieldError{Field: "image", Message: "must be at most 5 MiB"})
	}

	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, apperr.Validation(apperr.FieldError{
			Field:   "image",
			Message: fmt.Sprintf("unsupported content type %s", contentType),
		})
	}

	key := fmt.Sprintf("recipes/%s/%s.%s", recipeID, uuid.New(), ext)
	url, err := s.store.PutObject(ctx, key, contentType, bytes.NewReader(data))
	if err != nil {
		s.log.Error("Failed to upload recipe image", "recipe_id", recipeID, "key", key, "error", err)
		return nil, err
	}

	s.log.Info("Recipe image uploaded", "recipe_id", recipeID, "key", key, "bytes", len(data))
	return s.recipes.SetRecipeImage(ctx, recipeID, url)
}
