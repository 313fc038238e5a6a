package service

import (
	"context"
	"fmt"
	"strings"

	apperrors "fotolab/internal/errors"
	"fotolab/internal/model"
	"fotolab/internal/repository"
)

// AlbumService handles album operations for the calling user.
type AlbumService interface {
	ListAlbums(ctx context.Context, userID uint) ([]model.Album, error)
	GetAlbum(ctx context.Context, id, userID uint) (*model.Album, error)
	CreateAlbum(ctx context.Context, userID uint, title, rawTags string) (*model.Album, error)
	UpdateAlbum(ctx context.Context, id, userID uint, title, rawTags string) error
	DeleteAlbum(ctx context.Context, id, userID uint) error
}

type albumService struct {
	repo repository.AlbumRepository
}

// NewAlbumService creates a new album service.
func NewAlbumService(repo repository.AlbumRepository) AlbumService {
	return &albumService{repo: repo}
}

func (s *albumService) ListAlbums(ctx context.Context, userID uint) ([]model.Album, error) {
	if err := requireSession(userID); err != nil {
		return nil, err
	}
	albums, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	return albums, nil
}

func (s *albumService) GetAlbum(ctx context.Context, id, userID uint) (*model.Album, error) {
	if err := requireSession(userID); err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, apperrors.ErrBadRequest
	}
	album, err := s.repo.FindOwned(ctx, id, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get album: %w", err)
	}
	return album, nil
}

// CreateAlbum stores a new album with the tags parsed from rawTags.
func (s *albumService) CreateAlbum(ctx context.Context, userID uint, title, rawTags string) (*model.Album, error) {
	if err := requireSession(userID); err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.ErrBadRequest
	}

	tags := repository.ParseTags(rawTags)
	if err := checkTags(tags); err != nil {
		return nil, err
	}

	album := &model.Album{UserID: userID, Title: title}
	if err := s.repo.CreateWithTags(ctx, album, tags); err != nil {
		return nil, mapWriteError("create album", err, apperrors.ErrConflict)
	}
	album.Tags = tags
	return album, nil
}

// UpdateAlbum sets the title and replaces the whole tag set.
func (s *albumService) UpdateAlbum(ctx context.Context, id, userID uint, title, rawTags string) error {
	if err := requireSession(userID); err != nil {
		return err
	}
	title = strings.TrimSpace(title)
	if id == 0 || title == "" {
		return apperrors.ErrBadRequest
	}

	tags := repository.ParseTags(rawTags)
	if err := checkTags(tags); err != nil {
		return err
	}

	album := &model.Album{ID: id, UserID: userID, Title: title}
	err := s.repo.UpdateWithTags(ctx, album, tags)
	return mapWriteError("update album", err, apperrors.ErrConflict)
}

func (s *albumService) DeleteAlbum(ctx context.Context, id, userID uint) error {
	if err := requireSession(userID); err != nil {
		return err
	}
	if id == 0 {
		return apperrors.ErrBadRequest
	}
	return mapWriteError("delete album", s.repo.DeleteOwned(ctx, id, userID), apperrors.ErrNotFound)
}
