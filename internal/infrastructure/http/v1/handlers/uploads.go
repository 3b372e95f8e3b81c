package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"loomledger/internal/core/apperror"
	"loomledger/internal/infrastructure/storage/images"
)

// maxUploadSize caps image uploads at 5 MiB.
const maxUploadSize = 5 << 20

// UploadHandler handles image uploads to the object store.
type UploadHandler struct {
	*BaseHandler
	store *images.Store
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(base *BaseHandler, store *images.Store) *UploadHandler {
	return &UploadHandler{
		BaseHandler: base,
		store:       store,
	}
}

// UploadImage handles POST /uploads/image (multipart form, field "file").
// An optional "folder" field groups objects, defaulting to "products".
func (h *UploadHandler) UploadImage(c *gin.Context) {
	ctx := c.Request.Context()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.Error(c, apperror.NewValidation("file is required").WithDetail("field", "file"))
		return
	}

	if fileHeader.Size > maxUploadSize {
		h.Error(c, apperror.NewValidation("file too large").
			WithDetail("maxBytes", maxUploadSize))
		return
	}

	folder := c.DefaultPostForm("folder", "products")

	file, err := fileHeader.Open()
	if err != nil {
		h.Error(c, apperror.NewValidation("cannot read file"))
		return
	}
	defer file.Close()

	url, err := h.store.Upload(ctx, folder, file)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}

// DeleteImage handles DELETE /uploads/image?url=...
func (h *UploadHandler) DeleteImage(c *gin.Context) {
	ctx := c.Request.Context()

	url := c.Query("url")
	if url == "" {
		h.Error(c, apperror.NewValidation("url is required").WithDetail("field", "url"))
		return
	}

	if err := h.store.Delete(ctx, url); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
