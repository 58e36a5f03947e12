package models

import "time"

// AccessEventModel represents the append-only audit trail of admitted
// accesses. Rows are written once and never updated.
type AccessEventModel struct {
	ID            uint      `gorm:"primarykey"`
	PlaylistID    uint      `gorm:"not null;index"`
	IdentityToken string    `gorm:"size:64;not null"`
	UserAgent     string    `gorm:"size:512"`
	DeviceType    string    `gorm:"size:16;not null"`
	OccurredAt    time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (AccessEventModel) TableName() string {
	return "access_events"
}
