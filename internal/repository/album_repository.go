package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fotolab/internal/model"
)

// AlbumRepository defines album persistence operations. Every lookup and
// write is scoped to the owning user.
type AlbumRepository interface {
	ListByOwner(ctx context.Context, userID uint) ([]model.Album, error)
	FindOwned(ctx context.Context, id, userID uint) (*model.Album, error)
	CreateWithTags(ctx context.Context, album *model.Album, tags []string) error
	UpdateWithTags(ctx context.Context, album *model.Album, tags []string) error
	ReplaceTags(ctx context.Context, id, userID uint, tags []string) error
	DeleteOwned(ctx context.Context, id, userID uint) error
}

type albumRepository struct {
	db   *gorm.DB
	tags tagAssociation[model.AlbumTag]
}

// NewAlbumRepository creates a new album repository.
func NewAlbumRepository(db *gorm.DB) AlbumRepository {
	return &albumRepository{
		db: db,
		tags: tagAssociation[model.AlbumTag]{
			parentTable: "albums",
			column:      "album_id",
			newRow: func(parentID uint, tag string) model.AlbumTag {
				return model.AlbumTag{AlbumID: parentID, Tag: tag}
			},
		},
	}
}

// ListByOwner lists the user's albums with their tags.
func (r *albumRepository) ListByOwner(ctx context.Context, userID uint) ([]model.Album, error) {
	db := r.db.WithContext(ctx)

	var albums []model.Album
	if err := db.Where("user_id = ?", userID).Order("id").Find(&albums).Error; err != nil {
		return nil, err
	}

	ids := make([]uint, len(albums))
	for i := range albums {
		ids[i] = albums[i].ID
	}
	tags, err := r.tags.load(db, ids)
	if err != nil {
		return nil, err
	}
	for i := range albums {
		albums[i].Tags = tags[albums[i].ID]
	}
	return albums, nil
}

// FindOwned finds an album by ID and owner.
func (r *albumRepository) FindOwned(ctx context.Context, id, userID uint) (*model.Album, error) {
	db := r.db.WithContext(ctx)

	var album model.Album
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&album).Error; err != nil {
		return nil, err
	}

	tags, err := r.tags.load(db, []uint{album.ID})
	if err != nil {
		return nil, err
	}
	album.Tags = tags[album.ID]
	return &album, nil
}

// CreateWithTags inserts the album and its tags atomically. album.ID is set on success.
func (r *albumRepository) CreateWithTags(ctx context.Context, album *model.Album, tags []string) error {
	err := r.tags.createWithTags(r.db.WithContext(ctx), album, func() uint { return album.ID }, tags)
	if err != nil {
		return err
	}
	album.Tags = append([]string{}, tags...)
	return nil
}

// UpdateWithTags updates the title of an owned album and replaces its tag set.
func (r *albumRepository) UpdateWithTags(ctx context.Context, album *model.Album, tags []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Album
		if err := lockOwned(tx, &existing, album.ID, album.UserID); err != nil {
			return err
		}
		if err := tx.Model(&existing).Update("title", album.Title).Error; err != nil {
			return fmt.Errorf("update album: %w", err)
		}
		return r.tags.replace(tx, album.ID, tags)
	})
}

// ReplaceTags replaces the tag set of an owned album.
func (r *albumRepository) ReplaceTags(ctx context.Context, id, userID uint, tags []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Album
		if err := lockOwned(tx, &existing, id, userID); err != nil {
			return err
		}
		return r.tags.replace(tx, id, tags)
	})
}

// DeleteOwned removes an owned album with its tags and image links.
func (r *albumRepository) DeleteOwned(ctx context.Context, id, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Album
		if err := lockOwned(tx, &existing, id, userID); err != nil {
			return err
		}
		if err := tx.Where("album_id = ?", id).Delete(&model.AlbumImage{}).Error; err != nil {
			return fmt.Errorf("delete album images: %w", err)
		}
		if err := r.tags.deleteAll(tx, id); err != nil {
			return fmt.Errorf("delete album tags: %w", err)
		}
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Album{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// lockOwned loads the row identified by id and owner into dest, holding a
// row lock until the surrounding transaction ends.
func lockOwned(tx *gorm.DB, dest interface{}, id, userID uint) error {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", id, userID).
		Take(dest).Error
}
