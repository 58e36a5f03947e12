package models

import "time"

// DeviceSessionModel represents the database persistence model for device
// sessions. The composite unique index on (playlist_id, identity_token)
// enforces at most one session per pairing; the Touch upsert races on it.
type DeviceSessionModel struct {
	ID            uint      `gorm:"primarykey"`
	PlaylistID    uint      `gorm:"not null;uniqueIndex:idx_playlist_identity;index"`
	IdentityToken string    `gorm:"size:64;not null;uniqueIndex:idx_playlist_identity"`
	UserAgent     string    `gorm:"size:512"`
	DeviceType    string    `gorm:"size:16;not null"`
	Active        bool      `gorm:"not null;default:true"`
	FirstSeenAt   time.Time `gorm:"not null"`
	LastSeenAt    time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (DeviceSessionModel) TableName() string {
	return "device_sessions"
}
