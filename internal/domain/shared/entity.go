package shared

import "time"

// BaseEntity provides common fields for all persisted entities.
// Identifiers are MySQL auto-increment integers.
type BaseEntity struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}
