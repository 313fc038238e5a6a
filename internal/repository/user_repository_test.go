package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fotolab/internal/model"
)

func TestUserRepository_RoleOf(t *testing.T) {
	gormDB := newTestDB(t)
	admin := seedUser(t, gormDB, "root", model.RoleAdmin)
	user := seedUser(t, gormDB, "alice", model.RoleUser)
	repo := NewUserRepository(gormDB)
	ctx := context.Background()

	role, err := repo.RoleOf(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, role)

	role, err = repo.RoleOf(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, role)

	_, err = repo.RoleOf(ctx, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_ListPaged(t *testing.T) {
	gormDB := newTestDB(t)
	for i := 0; i < 5; i++ {
		seedUser(t, gormDB, fmt.Sprintf("user%d", i), model.RoleUser)
	}
	repo := NewUserRepository(gormDB)
	ctx := context.Background()

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)

	page, err := repo.ListPaged(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "user2", page[0].Username)
	assert.Equal(t, "user3", page[1].Username)
	assert.Equal(t, model.RoleUser, page[0].Role)

	beyond, err := repo.ListPaged(ctx, 10, 2)
	require.NoError(t, err)
	assert.NotNil(t, beyond)
	assert.Empty(t, beyond)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestUserRepository_WithTransactionRollsBack(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewUserRepository(gormDB)
	ctx := context.Background()

	errRole := errors.New("role assignment failed")
	err := repo.WithTransaction(ctx, func(ctx context.Context, tx UserRepository) error {
		role, err := tx.FindRoleByName(ctx, model.RoleUser)
		if err != nil {
			return err
		}
		if err := tx.Create(ctx, &model.User{Username: "ghost", PasswordHash: "x", RoleID: role.ID}); err != nil {
			return err
		}
		return errRole
	})
	assert.ErrorIs(t, err, errRole)

	_, err = repo.FindByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_UpdateCredentials(t *testing.T) {
	gormDB := newTestDB(t)
	user := seedUser(t, gormDB, "alice", model.RoleUser)
	repo := NewUserRepository(gormDB)
	ctx := context.Background()

	require.NoError(t, repo.UpdateCredentials(ctx, user.ID, "alicia", "newhash"))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alicia", found.Username)
	assert.Equal(t, "newhash", found.PasswordHash)

	assert.ErrorIs(t, repo.UpdateCredentials(ctx, 9999, "x", "y"), gorm.ErrRecordNotFound)
}

func TestUserRepository_DeleteRemovesOwnedData(t *testing.T) {
	gormDB := newTestDB(t)
	alice := seedUser(t, gormDB, "alice", model.RoleUser)
	bob := seedUser(t, gormDB, "bob", model.RoleUser)
	albums := NewAlbumRepository(gormDB)
	images := NewImageRepository(gormDB)
	repo := NewUserRepository(gormDB)
	ctx := context.Background()

	album := &model.Album{UserID: alice.ID, Title: "Trip"}
	require.NoError(t, albums.CreateWithTags(ctx, album, []string{"beach"}))
	image := createImage(t, images, alice.ID, "sea", "uploads/sea.jpg", "blue")
	require.NoError(t, images.AddToAlbum(ctx, alice.ID, album.ID, image.ID))
	createImage(t, images, bob.ID, "bob", "uploads/bob.jpg", "keep")

	require.NoError(t, repo.Delete(ctx, alice.ID))
	assert.ErrorIs(t, repo.Delete(ctx, alice.ID), gorm.ErrRecordNotFound)

	var albumCount, imageCount, tagCount, linkCount int64
	require.NoError(t, gormDB.Model(&model.Album{}).Count(&albumCount).Error)
	require.NoError(t, gormDB.Model(&model.Image{}).Count(&imageCount).Error)
	require.NoError(t, gormDB.Model(&model.ImageTag{}).Count(&tagCount).Error)
	require.NoError(t, gormDB.Model(&model.AlbumImage{}).Count(&linkCount).Error)
	assert.Zero(t, albumCount)
	assert.EqualValues(t, 1, imageCount)
	assert.EqualValues(t, 1, tagCount)
	assert.Zero(t, linkCount)
}
