package models

type SavedJob struct {
	BaseModel
	UserID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_saved_job_user_job" json:"user_id"`
	JobID  string `gorm:"type:varchar(36);not null;uniqueIndex:idx_saved_job_user_job;index" json:"job_id"`

	Job *Job `gorm:"foreignKey:JobID" json:"job,omitempty"`
}
