package models

import "time"

type Application struct {
	BaseModel
	JobID       string            `gorm:"type:varchar(36);not null;uniqueIndex:idx_application_job_applicant" json:"job_id"`
	ApplicantID string            `gorm:"type:varchar(36);not null;uniqueIndex:idx_application_job_applicant;index" json:"applicant_id"`
	ResumeKey   string            `gorm:"type:varchar(255)" json:"resume_key"`
	CoverLetter string            `gorm:"type:text;not null" json:"cover_letter"`
	Status      ApplicationStatus `gorm:"type:varchar(30);not null;default:'submitted';index" json:"status"`
	Notes       string            `gorm:"type:text" json:"notes,omitempty"`
	AppliedAt   time.Time         `gorm:"not null" json:"applied_at"`

	Job       *Job       `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Applicant *JobSeeker `gorm:"foreignKey:ApplicantID" json:"applicant,omitempty"`
}
