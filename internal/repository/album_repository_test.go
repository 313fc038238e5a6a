package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fotolab/internal/model"
)

func TestAlbumRepository_CreateThenFind(t *testing.T) {
	gormDB := newTestDB(t)
	owner := seedUser(t, gormDB, "alice", model.RoleUser)
	repo := NewAlbumRepository(gormDB)
	ctx := context.Background()

	album := &model.Album{UserID: owner.ID, Title: "Trip"}
	require.NoError(t, repo.CreateWithTags(ctx, album, ParseTags("beach, sunset, beach")))
	require.NotZero(t, album.ID)

	found, err := repo.FindOwned(ctx, album.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Trip", found.Title)
	assert.ElementsMatch(t, []string{"beach", "sunset"}, found.Tags)
}

func TestAlbumRepository_CreateKeepsInnerWhitespace(t *testing.T) {
	gormDB := newTestDB(t)
	owner := seedUser(t, gormDB, "alice", model.RoleUser)
	repo := NewAlbumRepository(gormDB)
	ctx := context.Background()

	album := &model.Album{UserID: owner.ID, Title: "Trip"}
	require.NoError(t, repo.CreateWithTags(ctx, album, ParseTags("summer  vacation, a\tb")))

	found, err := repo.FindOwned(ctx, album.ID, owner.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"summer  vacation", "a\tb"}, found.Tags)
}

func TestAlbumRepository_CreateWithoutTags(t *testing.T) {
	gormDB := newTestDB(t)
	owner := seedUser(t, gormDB, "alice", model.RoleUser)
	repo := NewAlbumRepository(gormDB)
	ctx := context.Background()

	album := &model.Album{UserID: owner.ID, Title: "Empty"}
	require.NoError(t, repo.CreateWithTags(ctx, album, ParseTags("")))

	found, err := repo.FindOwned(ctx, album.ID, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, found.Tags)
	assert.NotNil(t, found.Tags)
}

func TestAlbumRepository_CreateRollsBackWhenTagsFail(t *testing.T) {
	gormDB := newTestDB(t)
	owner := seedUser(t, gormDB, "alice", model.RoleUser)
	repo := NewAlbumRepository(gormDB)

	require.NoError(t, gormDB.Callback().Create().Before("gorm:create").Register("test:fail_album_tags", func(d *gorm.DB) {
		if d.Statement.Table == "album_tags" {
			_ = d.AddError(errors.New("tag insert failed"))
		}
	}))

	album := &model.Album{UserID: owner.ID, Title: "Broken"}
	err := repo.CreateWithTags(context.Background(), album, []string{"a"})
	require.Error(t, err)

	var count int64
	require.NoError(t, gormDB.Model(&model.Album{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAlbumRepository_FindOwned_OtherUser(t *testing.T) {
	gormDB := newTestDB(t)
	alice := seedUser(t, gormDB, "alice", model.RoleUser)
	bob := seedUser(t, gormDB, "bob", model.RoleUser)
	repo := NewAlbumRepository(gormDB)
	ctx := context.Background()

	album := &model.Album{UserID: alice.ID, Title: "Private"}
	require.NoError(t, repo.CreateWithTags(ctx, album, nil))

	_, err := repo.FindOwned(ctx, album.ID, bob.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAlbumRepository_ListByOwner(t *testing.T) {
	gormDB := newTestDB(t)
	alice := seedUser(t, gormDB, "alice", model.RoleUser)
	bob := seedUser(t, gormDB, "bob", model.RoleUser)
	repo := NewAlbumRepository(gormDB)
	ctx := context.Background()

	require.NoError(t, repo.CreateWithTags(ctx, &model.Album{UserID: alice.ID, Title: "A1"}, []string{"x", "y"}))
	require.NoError(t, repo.CreateWithTags(ctx, &model.Album{UserID: alice.ID, Title: "A2"}, nil))
	require.NoError(t, repo.CreateWithTags(ctx, &model.Album{UserID: bob.ID, Title: "B1"}, []string{"z"}))

	albums, err := repo.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, albums, 2)
	assert.Equal(t, "A1", albums[0].Title)
	assert.Equal(t, []string{"x", "y"}, albums[0].Tags)
	assert.Equal(t, "A2", albums[1].Title)
	assert.Empty(t, albums[1].Tags)
}

func TestAlbumRepository_UpdateReplacesTags(t *testing.T) {
	gormDB := newTestDB(t)
	owner := seedUser(t, gormDB, "alice", model.RoleUser)
	repo := NewAlbumRepository(gormDB)
	ctx := context.Background()

	album := &model.Album{UserID: owner.ID, Title: "Trip"}
	require.NoError(t, repo.CreateWithTags(ctx, album, []string{"beach", "sunset"}))

	update := &model.Album{ID: album.ID, UserID: owner.ID, Title: "Trip 2024"}
	require.NoError(t, repo.UpdateWithTags(ctx, update, ParseTags("mountains, snow")))

	found, err := repo.FindOwned(ctx, album.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Trip 2024", found.Title)
	assert.ElementsMatch(t, []string{"mountains", "snow"}, found.Tags)
}

func TestAlbumRepository_ReplaceTagsIsIdempotent(t *testing.T) {
	gormDB := newTestDB(t)
	owner := seedUser(t, gormDB, "alice", model.RoleUser)
	repo := NewAlbumRepository(gormDB)
	ctx := context.Background()

	album := &model.Album{UserID: owner.ID, Title: "Trip"}
	require.NoError(t, repo.CreateWithTags(ctx, album, []string{"old"}))

	tags := ParseTags("a, b, c")
	require.NoError(t, repo.ReplaceTags(ctx, album.ID, owner.ID, tags))
	once, err := repo.FindOwned(ctx, album.ID, owner.ID)
	require.NoError(t, err)

	require.NoError(t, repo.ReplaceTags(ctx, album.ID, owner.ID, tags))
	twice, err := repo.FindOwned(ctx, album.ID, owner.ID)
	require.NoError(t, err)

	assert.Equal(t, once.Tags, twice.Tags)
	assert.Equal(t, []string{"a", "b", "c"}, twice.Tags)
}

func TestAlbumRepository_UpdateRequiresOwner(t *testing.T) {
	gormDB := newTestDB(t)
	alice := seedUser(t, gormDB, "alice", model.RoleUser)
	bob := seedUser(t, gormDB, "bob", model.RoleUser)
	repo := NewAlbumRepository(gormDB)
	ctx := context.Background()

	album := &model.Album{UserID: alice.ID, Title: "Mine"}
	require.NoError(t, repo.CreateWithTags(ctx, album, []string{"keep"}))

	err := repo.UpdateWithTags(ctx, &model.Album{ID: album.ID, UserID: bob.ID, Title: "Stolen"}, []string{"gone"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	found, err := repo.FindOwned(ctx, album.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mine", found.Title)
	assert.Equal(t, []string{"keep"}, found.Tags)
}

func TestAlbumRepository_DeleteThenFind(t *testing.T) {
	gormDB := newTestDB(t)
	owner := seedUser(t, gormDB, "alice", model.RoleUser)
	repo := NewAlbumRepository(gormDB)
	ctx := context.Background()

	album := &model.Album{UserID: owner.ID, Title: "Trip"}
	require.NoError(t, repo.CreateWithTags(ctx, album, []string{"beach"}))

	require.NoError(t, repo.DeleteOwned(ctx, album.ID, owner.ID))

	_, err := repo.FindOwned(ctx, album.ID, owner.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var tagCount int64
	require.NoError(t, gormDB.Model(&model.AlbumTag{}).Where("album_id = ?", album.ID).Count(&tagCount).Error)
	assert.Zero(t, tagCount)

	assert.ErrorIs(t, repo.DeleteOwned(ctx, album.ID, owner.ID), gorm.ErrRecordNotFound)
}

func TestAlbumRepository_DeleteRequiresOwner(t *testing.T) {
	gormDB := newTestDB(t)
	alice := seedUser(t, gormDB, "alice", model.RoleUser)
	bob := seedUser(t, gormDB, "bob", model.RoleUser)
	repo := NewAlbumRepository(gormDB)
	ctx := context.Background()

	album := &model.Album{UserID: alice.ID, Title: "Mine"}
	require.NoError(t, repo.CreateWithTags(ctx, album, nil))

	assert.ErrorIs(t, repo.DeleteOwned(ctx, album.ID, bob.ID), gorm.ErrRecordNotFound)

	_, err := repo.FindOwned(ctx, album.ID, alice.ID)
	assert.NoError(t, err)
}

func TestAlbumRepository_ConcurrentReplaceTags(t *testing.T) {
	gormDB := newTestDB(t)
	owner := seedUser(t, gormDB, "alice", model.RoleUser)
	repo := NewAlbumRepository(gormDB)
	ctx := context.Background()

	album := &model.Album{UserID: owner.ID, Title: "Race"}
	require.NoError(t, repo.CreateWithTags(ctx, album, nil))

	sets := [][]string{
		{"a1", "a2", "a3"},
		{"b1", "b2"},
		{"c1", "c2", "c3", "c4"},
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(sets)*5)
	for i := 0; i < 5; i++ {
		for _, set := range sets {
			wg.Add(1)
			go func(tags []string) {
				defer wg.Done()
				errs <- repo.ReplaceTags(ctx, album.ID, owner.ID, tags)
			}(set)
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	found, err := repo.FindOwned(ctx, album.ID, owner.ID)
	require.NoError(t, err)
	assert.Contains(t, sets, found.Tags)
}
