package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a delivery request produced by the attendance workflows.
type Notification struct {
	UserIDs       []string
	Type          string
	Title         string
	Message       string
	Payload       map[string]any
	AggregateType string
	AggregateID   string
}

// InAppNotification is one stored inbox row per recipient.
type InAppNotification struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null"`
	Type      string         `gorm:"not null"`
	Title     string         `gorm:"not null"`
	Message   string         `gorm:"not null"`
	Payload   map[string]any `gorm:"type:jsonb;serializer:json"`
	DedupeKey string         `gorm:"not null"`
	IsRead    bool           `gorm:"not null;default:false"`
	CreatedAt time.Time
}

func (InAppNotification) TableName() string {
	return "notifications"
}
