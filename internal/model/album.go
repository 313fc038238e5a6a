package model

import "time"

// Album is a user-owned collection of images.
type Album struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"-" gorm:"not null;index"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Tags      []string  `json:"tags" gorm:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// AlbumTag attaches one tag to an album. The composite key keeps tags unique per album.
type AlbumTag struct {
	AlbumID uint   `json:"album_id" gorm:"primaryKey;autoIncrement:false"`
	Tag     string `json:"tag" gorm:"primaryKey;size:100"`

	Album Album `json:"-" gorm:"foreignKey:AlbumID;constraint:OnDelete:CASCADE"`
}

// ParentID returns the owning album id.
func (t AlbumTag) ParentID() uint { return t.AlbumID }

// TagValue returns the tag text.
func (t AlbumTag) TagValue() string { return t.Tag }
