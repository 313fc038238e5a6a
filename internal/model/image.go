package model

import "time"

// Image is a registered upload owned by a user.
type Image struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"-" gorm:"not null;index"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Date      string    `json:"date" gorm:"size:32"` // YYYY-MM-DD
	Path      string    `json:"path" gorm:"size:512;not null"`
	Tags      []string  `json:"tags" gorm:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// ImageTag attaches one tag to an image.
type ImageTag struct {
	ImageID uint   `json:"image_id" gorm:"primaryKey;autoIncrement:false"`
	Tag     string `json:"tag" gorm:"primaryKey;size:100"`

	Image Image `json:"-" gorm:"foreignKey:ImageID;constraint:OnDelete:CASCADE"`
}

// ParentID returns the owning image id.
func (t ImageTag) ParentID() uint { return t.ImageID }

// TagValue returns the tag text.
func (t ImageTag) TagValue() string { return t.Tag }

// AlbumImage joins an image into an album. Title, Date and Path hold an
// album-scoped projection of the image and are written independently of
// the canonical Image row.
type AlbumImage struct {
	AlbumID   uint      `json:"album_id" gorm:"primaryKey;autoIncrement:false"`
	ImageID   uint      `json:"image_id" gorm:"primaryKey;autoIncrement:false;index"`
	Title     *string   `json:"title,omitempty" gorm:"size:255"`
	Date      *string   `json:"date,omitempty" gorm:"size:32"`
	Path      *string   `json:"path,omitempty" gorm:"size:512"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Album Album `json:"-" gorm:"foreignKey:AlbumID;constraint:OnDelete:CASCADE"`
	Image Image `json:"-" gorm:"foreignKey:ImageID;constraint:OnDelete:CASCADE"`
}

// AlbumImageView is an image as listed inside an album: the canonical
// fields plus the album-scoped projection.
type AlbumImageView struct {
	ID         uint    `json:"id"`
	Title      string  `json:"title"`
	Date       string  `json:"date"`
	Path       string  `json:"path"`
	AlbumTitle *string `json:"album_title,omitempty"`
	AlbumDate  *string `json:"album_date,omitempty"`
	AlbumPath  *string `json:"album_path,omitempty"`
}
