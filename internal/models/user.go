package models

import "time"

type User struct {
	BaseModel
	Username     string   `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email        string   `gorm:"type:varchar(254);index" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null;index" json:"role"`
	Phone        string   `gorm:"type:varchar(20)" json:"phone,omitempty"`
	IsActive     bool     `gorm:"not null" json:"is_active"`

	// Relations
	Company       *Company       `gorm:"foreignKey:UserID" json:"company,omitempty"`
	JobSeeker     *JobSeeker     `gorm:"foreignKey:UserID" json:"job_seeker,omitempty"`
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"type:varchar(36);not null;index"`
	Token     string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}

func (t *RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
