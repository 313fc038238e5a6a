package handler

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
)

// FileStore persists an uploaded file and returns its stored name.
type FileStore interface {
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
}

// UploadHandler handles file uploads.
type UploadHandler struct {
	store FileStore
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(store FileStore) *UploadHandler {
	return &UploadHandler{store: store}
}

// UploadResponse names the stored files. Filename is the first of Filenames.
type UploadResponse struct {
	Message   string   `json:"message"`
	Filename  string   `json:"filename"`
	Filenames []string `json:"filenames"`
}

// Upload godoc
// @Summary Upload files
// @Description Every file part is stored under a random name; register it with POST /images.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /upload [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest("invalid multipart form")
	}
	defer form.RemoveAll()

	fields := make([]string, 0, len(form.File))
	for field := range form.File {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var names []string
	for _, field := range fields {
		for _, fh := range form.File[field] {
			name, err := h.save(c.Request().Context(), fh)
			if err != nil {
				return respondError(c, err)
			}
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return badRequest("no file uploaded")
	}

	return c.JSON(http.StatusOK, UploadResponse{
		Message:   "File Uploaded",
		Filename:  names[0],
		Filenames: names,
	})
}

func (h *UploadHandler) save(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()
	return h.store.Save(ctx, fh.Filename, src)
}
