package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fotolab/internal/model"
)

// ImageRepository defines image persistence operations, including the
// album membership join.
type ImageRepository interface {
	ListByOwner(ctx context.Context, userID uint) ([]model.Image, error)
	FindOwned(ctx context.Context, id, userID uint) (*model.Image, error)
	CreateWithTags(ctx context.Context, image *model.Image, tags []string) error
	UpdateWithTags(ctx context.Context, image *model.Image, tags []string) error
	DeleteOwned(ctx context.Context, id, userID uint) error

	AddToAlbum(ctx context.Context, userID, albumID, imageID uint) error
	RemoveFromAlbum(ctx context.Context, userID, albumID, imageID uint) error
	ListByAlbum(ctx context.Context, userID, albumID uint) ([]model.AlbumImageView, error)
	UpdateInAlbum(ctx context.Context, userID uint, entry *model.AlbumImage) error
}

type imageRepository struct {
	db   *gorm.DB
	tags tagAssociation[model.ImageTag]
}

// NewImageRepository creates a new image repository.
func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{
		db: db,
		tags: tagAssociation[model.ImageTag]{
			parentTable: "images",
			column:      "image_id",
			newRow: func(parentID uint, tag string) model.ImageTag {
				return model.ImageTag{ImageID: parentID, Tag: tag}
			},
		},
	}
}

// ListByOwner lists the user's images with their tags.
func (r *imageRepository) ListByOwner(ctx context.Context, userID uint) ([]model.Image, error) {
	db := r.db.WithContext(ctx)

	var images []model.Image
	if err := db.Where("user_id = ?", userID).Order("id").Find(&images).Error; err != nil {
		return nil, err
	}

	ids := make([]uint, len(images))
	for i := range images {
		ids[i] = images[i].ID
	}
	tags, err := r.tags.load(db, ids)
	if err != nil {
		return nil, err
	}
	for i := range images {
		images[i].Tags = tags[images[i].ID]
	}
	return images, nil
}

// FindOwned finds an image by ID and owner.
func (r *imageRepository) FindOwned(ctx context.Context, id, userID uint) (*model.Image, error) {
	db := r.db.WithContext(ctx)

	var image model.Image
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&image).Error; err != nil {
		return nil, err
	}

	tags, err := r.tags.load(db, []uint{image.ID})
	if err != nil {
		return nil, err
	}
	image.Tags = tags[image.ID]
	return &image, nil
}

// CreateWithTags inserts the image and its tags atomically. Tags are keyed
// by the generated id, never by path: paths are not unique.
func (r *imageRepository) CreateWithTags(ctx context.Context, image *model.Image, tags []string) error {
	err := r.tags.createWithTags(r.db.WithContext(ctx), image, func() uint { return image.ID }, tags)
	if err != nil {
		return err
	}
	image.Tags = append([]string{}, tags...)
	return nil
}

// UpdateWithTags updates title and date of an owned image and replaces its tag set.
func (r *imageRepository) UpdateWithTags(ctx context.Context, image *model.Image, tags []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Image
		if err := lockOwned(tx, &existing, image.ID, image.UserID); err != nil {
			return err
		}
		if err := tx.Model(&existing).Updates(map[string]interface{}{
			"title": image.Title,
			"date":  image.Date,
		}).Error; err != nil {
			return fmt.Errorf("update image: %w", err)
		}
		return r.tags.replace(tx, image.ID, tags)
	})
}

// DeleteOwned removes an owned image with its tags and album links.
func (r *imageRepository) DeleteOwned(ctx context.Context, id, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Image
		if err := lockOwned(tx, &existing, id, userID); err != nil {
			return err
		}
		if err := tx.Where("image_id = ?", id).Delete(&model.AlbumImage{}).Error; err != nil {
			return fmt.Errorf("delete album links: %w", err)
		}
		if err := r.tags.deleteAll(tx, id); err != nil {
			return fmt.Errorf("delete image tags: %w", err)
		}
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Image{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// AddToAlbum links an image into an album; both must belong to userID.
// It returns gorm.ErrRecordNotFound when either side is missing and
// gorm.ErrDuplicatedKey when the link already exists. The album-scoped
// projection starts as a copy of the image.
func (r *imageRepository) AddToAlbum(ctx context.Context, userID, albumID, imageID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var album model.Album
		if err := lockOwned(tx, &album, albumID, userID); err != nil {
			return err
		}
		var image model.Image
		if err := tx.Where("id = ? AND user_id = ?", imageID, userID).Take(&image).Error; err != nil {
			return err
		}

		entry := model.AlbumImage{
			AlbumID: albumID,
			ImageID: imageID,
			Title:   &image.Title,
			Date:    &image.Date,
			Path:    &image.Path,
		}
		res := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&entry)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrDuplicatedKey
		}
		return nil
	})
}

// RemoveFromAlbum deletes the link between an owned album and an image.
func (r *imageRepository) RemoveFromAlbum(ctx context.Context, userID, albumID, imageID uint) error {
	db := r.db.WithContext(ctx)

	res := db.Where("album_id = ? AND image_id = ?", albumID, imageID).
		Where("album_id IN (?)", db.Model(&model.Album{}).Select("id").Where("user_id = ?", userID)).
		Delete(&model.AlbumImage{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByAlbum lists the images of an owned album.
func (r *imageRepository) ListByAlbum(ctx context.Context, userID, albumID uint) ([]model.AlbumImageView, error) {
	var views []model.AlbumImageView
	err := r.db.WithContext(ctx).
		Table("images AS i").
		Select("i.id, i.title, i.date, i.path, ai.title AS album_title, ai.date AS album_date, ai.path AS album_path").
		Joins("JOIN album_images ai ON ai.image_id = i.id").
		Joins("JOIN albums a ON a.id = ai.album_id").
		Where("a.id = ? AND a.user_id = ?", albumID, userID).
		Order("ai.created_at, i.id").
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []model.AlbumImageView{}
	}
	return views, nil
}

// UpdateInAlbum writes the album-scoped projection of an image. The
// canonical images row is not touched.
func (r *imageRepository) UpdateInAlbum(ctx context.Context, userID uint, entry *model.AlbumImage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var album model.Album
		if err := lockOwned(tx, &album, entry.AlbumID, userID); err != nil {
			return err
		}

		var existing model.AlbumImage
		if err := tx.Where("album_id = ? AND image_id = ?", entry.AlbumID, entry.ImageID).
			Take(&existing).Error; err != nil {
			return err
		}
		return tx.Model(&model.AlbumImage{}).
			Where("album_id = ? AND image_id = ?", entry.AlbumID, entry.ImageID).
			Updates(map[string]interface{}{
				"title": entry.Title,
				"date":  entry.Date,
				"path":  entry.Path,
			}).Error
	})
}
