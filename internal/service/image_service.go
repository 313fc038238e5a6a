package service

import (
	"context"
	"fmt"
	"strings"

	apperrors "fotolab/internal/errors"
	"fotolab/internal/model"
	"fotolab/internal/repository"
)

// ImageInput carries the writable fields of an image.
type ImageInput struct {
	Title string
	Date  string
	Path  string
	Tags  []string
}

// AlbumImageInput carries the album-scoped projection of an image. Nil or
// blank fields are stored as NULL.
type AlbumImageInput struct {
	Title *string
	Date  *string
	Path  *string
}

// ImageService handles image operations and album membership for the
// calling user.
type ImageService interface {
	ListImages(ctx context.Context, userID uint) ([]model.Image, error)
	GetImage(ctx context.Context, id, userID uint) (*model.Image, error)
	CreateImage(ctx context.Context, userID uint, in ImageInput) (*model.Image, error)
	UpdateImage(ctx context.Context, id, userID uint, in ImageInput) error
	DeleteImage(ctx context.Context, id, userID uint) error

	ListAlbumImages(ctx context.Context, userID, albumID uint) ([]model.AlbumImageView, error)
	AddToAlbum(ctx context.Context, userID, albumID, imageID uint) error
	RemoveFromAlbum(ctx context.Context, userID, albumID, imageID uint) error
	UpdateInAlbum(ctx context.Context, userID, albumID, imageID uint, in AlbumImageInput) error
}

type imageService struct {
	repo repository.ImageRepository
}

// NewImageService creates a new image service.
func NewImageService(repo repository.ImageRepository) ImageService {
	return &imageService{repo: repo}
}

func (s *imageService) ListImages(ctx context.Context, userID uint) ([]model.Image, error) {
	if err := requireSession(userID); err != nil {
		return nil, err
	}
	images, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	return images, nil
}

func (s *imageService) GetImage(ctx context.Context, id, userID uint) (*model.Image, error) {
	if err := requireSession(userID); err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, apperrors.ErrBadRequest
	}
	image, err := s.repo.FindOwned(ctx, id, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get image: %w", err)
	}
	return image, nil
}

func (s *imageService) CreateImage(ctx context.Context, userID uint, in ImageInput) (*model.Image, error) {
	if err := requireSession(userID); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	path := strings.TrimSpace(in.Path)
	if title == "" || path == "" {
		return nil, apperrors.ErrBadRequest
	}

	tags := repository.NormalizeTags(in.Tags)
	if err := checkTags(tags); err != nil {
		return nil, err
	}

	image := &model.Image{
		UserID: userID,
		Title:  title,
		Date:   strings.TrimSpace(in.Date),
		Path:   path,
	}
	if err := s.repo.CreateWithTags(ctx, image, tags); err != nil {
		return nil, mapWriteError("create image", err, apperrors.ErrConflict)
	}
	image.Tags = tags
	return image, nil
}

// UpdateImage writes the canonical title and date and replaces the tag set.
// The stored path is immutable.
func (s *imageService) UpdateImage(ctx context.Context, id, userID uint, in ImageInput) error {
	if err := requireSession(userID); err != nil {
		return err
	}
	title := strings.TrimSpace(in.Title)
	if id == 0 || title == "" {
		return apperrors.ErrBadRequest
	}

	tags := repository.NormalizeTags(in.Tags)
	if err := checkTags(tags); err != nil {
		return err
	}

	image := &model.Image{ID: id, UserID: userID, Title: title, Date: strings.TrimSpace(in.Date)}
	err := s.repo.UpdateWithTags(ctx, image, tags)
	return mapWriteError("update image", err, apperrors.ErrConflict)
}

func (s *imageService) DeleteImage(ctx context.Context, id, userID uint) error {
	if err := requireSession(userID); err != nil {
		return err
	}
	if id == 0 {
		return apperrors.ErrBadRequest
	}
	return mapWriteError("delete image", s.repo.DeleteOwned(ctx, id, userID), apperrors.ErrNotFound)
}

// ListAlbumImages lists the images of one of the caller's albums. A foreign
// or missing album yields an empty list.
func (s *imageService) ListAlbumImages(ctx context.Context, userID, albumID uint) ([]model.AlbumImageView, error) {
	if err := requireSession(userID); err != nil {
		return nil, err
	}
	if albumID == 0 {
		return nil, apperrors.ErrBadRequest
	}
	views, err := s.repo.ListByAlbum(ctx, userID, albumID)
	if err != nil {
		return nil, fmt.Errorf("list album images: %w", err)
	}
	return views, nil
}

// AddToAlbum fails with ErrConflict when the link exists or either side is
// missing, never silently.
func (s *imageService) AddToAlbum(ctx context.Context, userID, albumID, imageID uint) error {
	if err := requireSession(userID); err != nil {
		return err
	}
	if albumID == 0 || imageID == 0 {
		return apperrors.ErrBadRequest
	}
	err := s.repo.AddToAlbum(ctx, userID, albumID, imageID)
	return mapWriteError("add image to album", err, apperrors.ErrConflict)
}

func (s *imageService) RemoveFromAlbum(ctx context.Context, userID, albumID, imageID uint) error {
	if err := requireSession(userID); err != nil {
		return err
	}
	if albumID == 0 || imageID == 0 {
		return apperrors.ErrBadRequest
	}
	err := s.repo.RemoveFromAlbum(ctx, userID, albumID, imageID)
	return mapWriteError("remove image from album", err, apperrors.ErrNotFound)
}

func (s *imageService) UpdateInAlbum(ctx context.Context, userID, albumID, imageID uint, in AlbumImageInput) error {
	if err := requireSession(userID); err != nil {
		return err
	}
	if albumID == 0 || imageID == 0 {
		return apperrors.ErrBadRequest
	}
	entry := &model.AlbumImage{
		AlbumID: albumID,
		ImageID: imageID,
		Title:   trimmed(in.Title),
		Date:    trimmed(in.Date),
		Path:    trimmed(in.Path),
	}
	err := s.repo.UpdateInAlbum(ctx, userID, entry)
	return mapWriteError("update album image", err, apperrors.ErrConflict)
}

// trimmed returns nil for nil or blank values.
func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
