package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fotolab/internal/auth"
	"fotolab/internal/model"
	"fotolab/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindRoleByName(ctx context.Context, name string) (*model.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *MockUserRepository) RoleOf(ctx context.Context, userID uint) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) Summary(ctx context.Context, id uint) (*model.UserSummary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserSummary), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.UserSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserSummary), args.Error(1)
}

func (m *MockUserRepository) ListPaged(ctx context.Context, offset, limit int) ([]model.UserSummary, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserSummary), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) UpdateCredentials(ctx context.Context, id uint, username, passwordHash string) error {
	args := m.Called(ctx, id, username, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTransaction runs fn against the mock itself unless an error is stubbed.
func (m *MockUserRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.UserRepository) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m)
}

// MockAlbumRepository is a mock implementation of AlbumRepository.
type MockAlbumRepository struct {
	mock.Mock
}

func (m *MockAlbumRepository) ListByOwner(ctx context.Context, userID uint) ([]model.Album, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Album), args.Error(1)
}

func (m *MockAlbumRepository) FindOwned(ctx context.Context, id, userID uint) (*model.Album, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Album), args.Error(1)
}

func (m *MockAlbumRepository) CreateWithTags(ctx context.Context, album *model.Album, tags []string) error {
	args := m.Called(ctx, album, tags)
	return args.Error(0)
}

func (m *MockAlbumRepository) UpdateWithTags(ctx context.Context, album *model.Album, tags []string) error {
	args := m.Called(ctx, album, tags)
	return args.Error(0)
}

func (m *MockAlbumRepository) ReplaceTags(ctx context.Context, id, userID uint, tags []string) error {
	args := m.Called(ctx, id, userID, tags)
	return args.Error(0)
}

func (m *MockAlbumRepository) DeleteOwned(ctx context.Context, id, userID uint) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockImageRepository is a mock implementation of ImageRepository.
type MockImageRepository struct {
	mock.Mock
}

func (m *MockImageRepository) ListByOwner(ctx context.Context, userID uint) ([]model.Image, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Image), args.Error(1)
}

func (m *MockImageRepository) FindOwned(ctx context.Context, id, userID uint) (*model.Image, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Image), args.Error(1)
}

func (m *MockImageRepository) CreateWithTags(ctx context.Context, image *model.Image, tags []string) error {
	args := m.Called(ctx, image, tags)
	return args.Error(0)
}

func (m *MockImageRepository) UpdateWithTags(ctx context.Context, image *model.Image, tags []string) error {
	args := m.Called(ctx, image, tags)
	return args.Error(0)
}

func (m *MockImageRepository) DeleteOwned(ctx context.Context, id, userID uint) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockImageRepository) AddToAlbum(ctx context.Context, userID, albumID, imageID uint) error {
	args := m.Called(ctx, userID, albumID, imageID)
	return args.Error(0)
}

func (m *MockImageRepository) RemoveFromAlbum(ctx context.Context, userID, albumID, imageID uint) error {
	args := m.Called(ctx, userID, albumID, imageID)
	return args.Error(0)
}

func (m *MockImageRepository) ListByAlbum(ctx context.Context, userID, albumID uint) ([]model.AlbumImageView, error) {
	args := m.Called(ctx, userID, albumID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AlbumImageView), args.Error(1)
}

func (m *MockImageRepository) UpdateInAlbum(ctx context.Context, userID uint, entry *model.AlbumImage) error {
	args := m.Called(ctx, userID, entry)
	return args.Error(0)
}

// MockSessionIssuer is a mock implementation of SessionIssuer.
type MockSessionIssuer struct {
	mock.Mock
}

func (m *MockSessionIssuer) Issue(ctx context.Context, userID uint) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockSessionIssuer) Revoke(ctx context.Context, id auth.Identity) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
