package models

import "time"

type JobSeeker struct {
	BaseModel
	UserID      string     `gorm:"type:varchar(36);uniqueIndex;not null" json:"user_id"`
	FullName    string     `gorm:"type:varchar(200);not null" json:"full_name"`
	Email       string     `gorm:"type:varchar(254)" json:"email"`
	Phone       string     `gorm:"type:varchar(20)" json:"phone"`
	Address     string     `gorm:"type:text" json:"address"`
	City        string     `gorm:"type:varchar(100)" json:"city"`
	ResumeKey   string     `gorm:"type:varchar(255)" json:"resume_key,omitempty"`
	ResumeText  string     `gorm:"type:text" json:"-"`
	Skills      string     `gorm:"type:text" json:"skills"`
	Education   string     `gorm:"type:text" json:"education"`
	Experience  string     `gorm:"type:text" json:"experience"`
	DateOfBirth *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (s *JobSeeker) HasResume() bool {
	return s.ResumeKey != ""
}
