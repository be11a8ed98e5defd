package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/familyllc/recipe-manager/backend/internal/apperr"
	"github.com/familyllc/recipe-manager/backend/internal/logger"
	"github.com/familyllc/recipe-manager/backend/internal/service"
)

// multipart overhead allowed on top of the image itself
const formOverhead = 1 << 20

// ImageHandler handles recipe photo uploads
type ImageHandler struct {
	images service.IImageService
	log    *logger.Logger
}

func NewImageHandler(images service.IImageService, baseLog *logger.Logger) *ImageHandler {
	return &ImageHandler{
		images: images,
		log:    baseLog.With("handler", "ImageHandler"),
	}
}

func (h *ImageHandler) RegisterRoutes(router gin.IRouter, write ...gin.HandlerFunc) {
	router.POST("/recipes/:id/image", withGuards(write, h.UploadRecipeImage)...)
}

// UploadRecipeImage accepts a multipart form with the photo in field "image".
func (h *ImageHandler) UploadRecipeImage(c *gin.Context) {
	if !h.images.Enabled() {
		respondError(c, h.log, service.ErrStorageDisabled)
		return
	}
	id, ok := pathID(c, h.log, "recipe")
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, service.MaxImageSize+formOverhead)
	header, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, h.log, apperr.Validation(apperr.FieldError{Field: "image", Message: "must be at most 5 MiB"}))
			return
		}
		badRequest(c, "multipart field \"image\" is required")
		return
	}

	file, err := header.Open()
	if err != nil {
		badRequest(c, "failed to read uploaded image")
		return
	}
	defer file.Close()

	recipe, err := h.images.UploadRecipeImage(c.Request.Context(), id, file)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}
