package models

import "time"

type Job struct {
	BaseModel
	CompanyID          string          `gorm:"type:varchar(36);not null;index" json:"company_id"`
	Title              string          `gorm:"type:varchar(200);not null" json:"title"`
	Description        string          `gorm:"type:text;not null" json:"description"`
	Requirements       string          `gorm:"type:text" json:"requirements"`
	Responsibilities   string          `gorm:"type:text" json:"responsibilities"`
	Location           string          `gorm:"type:varchar(200)" json:"location"`
	City               string          `gorm:"type:varchar(100);index" json:"city"`
	JobType            JobType         `gorm:"type:varchar(20);not null;index" json:"job_type"`
	Category           string          `gorm:"type:varchar(100);index" json:"category"`
	SalaryMin          *float64        `gorm:"type:decimal(10,2)" json:"salary_min,omitempty"`
	SalaryMax          *float64        `gorm:"type:decimal(10,2)" json:"salary_max,omitempty"`
	ExperienceRequired ExperienceLevel `gorm:"type:varchar(10)" json:"experience_required"`
	Vacancies          int             `gorm:"not null;default:1" json:"vacancies"`
	IsActive           bool            `gorm:"not null;index" json:"is_active"`
	PostedAt           time.Time       `gorm:"not null;index" json:"posted_at"`
	Deadline           *time.Time      `json:"deadline,omitempty"`
	ViewsCount         int64           `gorm:"not null;default:0" json:"views_count"`

	Company      *Company      `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Applications []Application `gorm:"foreignKey:JobID" json:"-"`
}

// Expired - дедлайн прошёл (задача закрытия вакансий деактивирует такие вакансии)
func (j *Job) Expired(now time.Time) bool {
	return j.Deadline != nil && j.Deadline.Before(now)
}

// PubliclyVisible - вакансия активна и её компания одобрена
func (j *Job) PubliclyVisible() bool {
	return j.IsActive && j.Company != nil && j.Company.IsApproved()
}
