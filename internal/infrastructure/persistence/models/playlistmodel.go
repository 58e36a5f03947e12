package models

import "time"

// PlaylistModel represents the database persistence model for playlists.
// The unique index on SID is the uniqueness gate for mirror identifier
// allocation: inserts race on it instead of checking first.
type PlaylistModel struct {
	ID         uint      `gorm:"primarykey"`
	SID        string    `gorm:"column:sid;size:32;not null;uniqueIndex"`
	Name       string    `gorm:"size:255;not null"`
	OriginURL  string    `gorm:"size:2048;not null"`
	MaxDevices int       `gorm:"not null;default:1"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (PlaylistModel) TableName() string {
	return "playlists"
}
