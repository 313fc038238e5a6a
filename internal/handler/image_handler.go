package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fotolab/internal/service"
)

// ImageHandler handles image and album membership endpoints.
type ImageHandler struct {
	svc service.ImageService
}

// NewImageHandler creates a new image handler.
func NewImageHandler(svc service.ImageService) *ImageHandler {
	return &ImageHandler{svc: svc}
}

// CreateImageRequest registers an uploaded file as an image.
type CreateImageRequest struct {
	Title string   `json:"title" validate:"required,max=255"`
	Date  string   `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Path  string   `json:"path" validate:"required,max=512"`
	Tags  []string `json:"tags" validate:"max=100,dive,max=100"`
}

// UpdateImageRequest updates the canonical image fields. The path is fixed
// at creation.
type UpdateImageRequest struct {
	Title string   `json:"title" validate:"required,max=255"`
	Date  string   `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Tags  []string `json:"tags" validate:"max=100,dive,max=100"`
}

// AlbumImageRequest names an image and an album.
type AlbumImageRequest struct {
	AlbumID uint `json:"albumid" validate:"required"`
	ImageID uint `json:"imageid" validate:"required"`
}

// AlbumImageUpdateRequest sets the album-scoped title, date and path of an
// image. Omitted fields are cleared.
type AlbumImageUpdateRequest struct {
	Title *string `json:"title" validate:"omitempty,max=255"`
	Date  *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Path  *string `json:"path" validate:"omitempty,max=512"`
}

// ListImages godoc
// @Summary List the caller's images
// @Tags images
// @Produce json
// @Success 200 {array} model.Image
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/images [get]
func (h *ImageHandler) ListImages(c echo.Context) error {
	images, err := h.svc.ListImages(c.Request().Context(), callerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, images)
}

// GetImage godoc
// @Summary Get one of the caller's images
// @Tags images
// @Produce json
// @Param id path int true "Image ID"
// @Success 200 {object} model.Image
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/images/{id} [get]
func (h *ImageHandler) GetImage(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	image, err := h.svc.GetImage(c.Request().Context(), id, callerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, image)
}

// CreateImage godoc
// @Summary Register an uploaded file as an image
// @Tags images
// @Accept json
// @Produce json
// @Param request body CreateImageRequest true "Image"
// @Success 200 {object} IDResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /images [post]
func (h *ImageHandler) CreateImage(c echo.Context) error {
	var req CreateImageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	image, err := h.svc.CreateImage(c.Request().Context(), callerID(c), service.ImageInput{
		Title: req.Title,
		Date:  req.Date,
		Path:  req.Path,
		Tags:  req.Tags,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, IDResponse{Message: "Image created", ID: image.ID})
}

// UpdateImage godoc
// @Summary Update an image and replace its tags
// @Tags images
// @Accept json
// @Produce json
// @Param id path int true "Image ID"
// @Param request body UpdateImageRequest true "Image"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /images/{id} [put]
func (h *ImageHandler) UpdateImage(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateImageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	err = h.svc.UpdateImage(c.Request().Context(), id, callerID(c), service.ImageInput{
		Title: req.Title,
		Date:  req.Date,
		Tags:  req.Tags,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Image updated"})
}

// DeleteImage godoc
// @Summary Delete an image
// @Tags images
// @Produce json
// @Param id path int true "Image ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /images/{id} [delete]
func (h *ImageHandler) DeleteImage(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteImage(c.Request().Context(), id, callerID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Image deleted"})
}

// ListAlbumImages godoc
// @Summary List the images of an album
// @Tags albums
// @Produce json
// @Param id path int true "Album ID"
// @Success 200 {array} model.AlbumImageView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /albums/{id}/albumimages [get]
func (h *ImageHandler) ListAlbumImages(c echo.Context) error {
	albumID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	views, err := h.svc.ListAlbumImages(c.Request().Context(), callerID(c), albumID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, views)
}

// AddToAlbum godoc
// @Summary Add an image to an album
// @Tags albums
// @Accept json
// @Produce json
// @Param request body AlbumImageRequest true "Album and image"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /albums/images [post]
func (h *ImageHandler) AddToAlbum(c echo.Context) error {
	var req AlbumImageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.svc.AddToAlbum(c.Request().Context(), callerID(c), req.AlbumID, req.ImageID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Image added to album"})
}

// UpdateInAlbum godoc
// @Summary Update the album-scoped title, date and path of an image
// @Tags albums
// @Accept json
// @Produce json
// @Param id path int true "Album ID"
// @Param imageid path int true "Image ID"
// @Param request body AlbumImageUpdateRequest true "Album-scoped fields"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /albums/{id}/albumimages/{imageid} [put]
func (h *ImageHandler) UpdateInAlbum(c echo.Context) error {
	albumID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	imageID, err := pathID(c, "imageid")
	if err != nil {
		return err
	}
	var req AlbumImageUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	err = h.svc.UpdateInAlbum(c.Request().Context(), callerID(c), albumID, imageID, service.AlbumImageInput{
		Title: req.Title,
		Date:  req.Date,
		Path:  req.Path,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Album image updated"})
}

// RemoveFromAlbum godoc
// @Summary Remove an image from an album
// @Tags albums
// @Produce json
// @Param id path int true "Album ID"
// @Param imageid path int true "Image ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /albums/{id}/images/{imageid} [delete]
func (h *ImageHandler) RemoveFromAlbum(c echo.Context) error {
	albumID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	imageID, err := pathID(c, "imageid")
	if err != nil {
		return err
	}
	if err := h.svc.RemoveFromAlbum(c.Request().Context(), callerID(c), albumID, imageID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Image removed from album"})
}
