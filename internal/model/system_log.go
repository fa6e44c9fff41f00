package model

import (
	"time"

	"github.com/google/uuid"
)

// SystemLog is a structured event record written by the audit sink.
// Write-only from the engines' perspective; queried by admins via /api/logs.
type SystemLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Level     string    `gorm:"type:varchar(10);not null;index"` // debug|info|warn|error|audit
	Module    string    `gorm:"not null;index"`                  // auth | sales | inventory
	Action    string    `gorm:"not null"`
	Message   string    `gorm:"type:text;not null"`
	UserID    *uuid.UUID `gorm:"type:uuid;index"`
	IPAddress *string
	Meta      []byte    `gorm:"type:jsonb"`
	CreatedAt time.Time `gorm:"index"`

	User *User `gorm:"foreignKey:UserID"`
}
