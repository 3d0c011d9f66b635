package dto

import (
	"time"

	"jobportal_backend/internal/models"
)

// JobSeekerProfile - профиль соискателя в ответах
type JobSeekerProfile struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	FullName    string     `json:"full_name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Address     string     `json:"address"`
	City        string     `json:"city"`
	Skills      string     `json:"skills"`
	Education   string     `json:"education"`
	Experience  string     `json:"experience"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	HasResume   bool       `json:"has_resume"`
	ResumeURL   string     `json:"resume_url,omitempty"`
}

// UpdateJobSeekerProfileRequest - редактирование профиля соискателя
type UpdateJobSeekerProfileRequest struct {
	FullName    string `json:"full_name" validate:"required,max=200"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required,max=20"`
	Address     string `json:"address"`
	City        string `json:"city" validate:"required,max=100"`
	Skills      string `json:"skills" validate:"omitempty,max=5000"`
	Education   string `json:"education" validate:"omitempty,max=5000"`
	Experience  string `json:"experience" validate:"omitempty,max=5000"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
}

// SavedJobResponse - сохранённая вакансия
type SavedJobResponse struct {
	ID      string      `json:"id"`
	SavedAt time.Time   `json:"saved_at"`
	Job     JobResponse `json:"job"`
}

// ToggleSavedResponse - результат переключения закладки
type ToggleSavedResponse struct {
	Saved   bool   `json:"saved"`
	Message string `json:"message"`
}

func NewJobSeekerProfile(s *models.JobSeeker, resumeURL string) JobSeekerProfile {
	return JobSeekerProfile{
		ID:          s.ID,
		UserID:      s.UserID,
		FullName:    s.FullName,
		Email:       s.Email,
		Phone:       s.Phone,
		Address:     s.Address,
		City:        s.City,
		Skills:      s.Skills,
		Education:   s.Education,
		Experience:  s.Experience,
		DateOfBirth: s.DateOfBirth,
		HasResume:   s.HasResume(),
		ResumeURL:   resumeURL,
	}
}
