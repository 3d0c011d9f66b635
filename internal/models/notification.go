package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	UserID  string           `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Type    NotificationType `gorm:"type:varchar(30);not null" json:"type"`
	Title   string           `gorm:"type:varchar(200);not null" json:"title"`
	Message string           `gorm:"type:text" json:"message"`
	Data    datatypes.JSON   `json:"data,omitempty"` // {"company_id": "..."} / {"application_id": "...", "job_id": "..."}
	IsRead  bool             `gorm:"not null;default:false;index" json:"is_read"`
	ReadAt  *time.Time       `json:"read_at,omitempty"`
}
