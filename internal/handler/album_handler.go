package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fotolab/internal/service"
)

// AlbumHandler handles album endpoints.
type AlbumHandler struct {
	svc service.AlbumService
}

// NewAlbumHandler creates a new album handler.
func NewAlbumHandler(svc service.AlbumService) *AlbumHandler {
	return &AlbumHandler{svc: svc}
}

// AlbumRequest is the body of album create and update. Tags is a comma
// separated list.
type AlbumRequest struct {
	Title string `json:"title" validate:"required,max=255"`
	Tags  string `json:"tags" validate:"max=2000"`
}

// ListAlbums godoc
// @Summary List the caller's albums
// @Tags albums
// @Produce json
// @Success 200 {array} model.Album
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/albums [get]
func (h *AlbumHandler) ListAlbums(c echo.Context) error {
	albums, err := h.svc.ListAlbums(c.Request().Context(), callerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, albums)
}

// GetAlbum godoc
// @Summary Get one of the caller's albums
// @Tags albums
// @Produce json
// @Param id path int true "Album ID"
// @Success 200 {object} model.Album
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/albums/{id} [get]
func (h *AlbumHandler) GetAlbum(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	album, err := h.svc.GetAlbum(c.Request().Context(), id, callerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, album)
}

// CreateAlbum godoc
// @Summary Create an album
// @Tags albums
// @Accept json
// @Produce json
// @Param request body AlbumRequest true "Album"
// @Success 200 {object} IDResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /albums [post]
func (h *AlbumHandler) CreateAlbum(c echo.Context) error {
	var req AlbumRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	album, err := h.svc.CreateAlbum(c.Request().Context(), callerID(c), req.Title, req.Tags)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, IDResponse{Message: "Album created", ID: album.ID})
}

// UpdateAlbum godoc
// @Summary Update an album's title and replace its tags
// @Tags albums
// @Accept json
// @Produce json
// @Param id path int true "Album ID"
// @Param request body AlbumRequest true "Album"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /albums/{id} [put]
func (h *AlbumHandler) UpdateAlbum(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req AlbumRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.svc.UpdateAlbum(c.Request().Context(), id, callerID(c), req.Title, req.Tags); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Album updated"})
}

// DeleteAlbum godoc
// @Summary Delete an album
// @Tags albums
// @Produce json
// @Param id path int true "Album ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /albums/{id} [delete]
func (h *AlbumHandler) DeleteAlbum(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteAlbum(c.Request().Context(), id, callerID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Album deleted"})
}
