package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel - общий первичный ключ и временные метки.
// UUID генерируется в приложении, чтобы схема одинаково работала на postgres, mysql и sqlite.
type BaseModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// AllModels - список моделей для AutoMigrate
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&RefreshToken{},
		&Company{},
		&JobSeeker{},
		&Job{},
		&Application{},
		&SavedJob{},
		&Notification{},
	}
}
