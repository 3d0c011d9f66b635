package dto

import (
	"time"

	"jobportal_backend/internal/models"
)

// ApplyRequest - multipart-форма отклика; файл резюме передаётся отдельно
type ApplyRequest struct {
	CoverLetter string `form:"cover_letter" json:"cover_letter" validate:"required"`
}

// UpdateApplicationStatusRequest - смена статуса отклика компанией
type UpdateApplicationStatusRequest struct {
	Status string  `json:"status" validate:"required,is-application-status"`
	Notes  *string `json:"notes"`
}

// ApplicationListRequest - фильтры списка откликов компании
type ApplicationListRequest struct {
	Status string `form:"status" validate:"omitempty,is-application-status"`
	JobID  string `form:"job_id" validate:"omitempty,max=36"`
	Search string `form:"q" validate:"omitempty,max=200"`
}

type ApplicantSummary struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
	Skills   string `json:"skills,omitempty"`
}

type ApplicationResponse struct {
	ID          string                   `json:"id"`
	JobID       string                   `json:"job_id"`
	ApplicantID string                   `json:"applicant_id"`
	CoverLetter string                   `json:"cover_letter"`
	Status      models.ApplicationStatus `json:"status"`
	StatusLabel string                   `json:"status_label"`
	Notes       string                   `json:"notes,omitempty"`
	AppliedAt   time.Time                `json:"applied_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
	ResumeURL   string                   `json:"resume_url,omitempty"`
	// Оценка соответствия соискателя вакансии, только в ответах компании
	MatchScore   *float64          `json:"match_score,omitempty"`
	MatchReasons []string          `json:"match_reasons,omitempty"`
	Job          *JobResponse      `json:"job,omitempty"`
	Applicant    *ApplicantSummary `json:"applicant,omitempty"`
}

type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	PageMeta
}

func NewApplicationResponse(a *models.Application) ApplicationResponse {
	resp := ApplicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		ApplicantID: a.ApplicantID,
		CoverLetter: a.CoverLetter,
		Status:      a.Status,
		StatusLabel: a.Status.Label(),
		Notes:       a.Notes,
		AppliedAt:   a.AppliedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	if a.Job != nil {
		job := NewJobResponse(a.Job)
		resp.Job = &job
	}
	if a.Applicant != nil {
		resp.Applicant = &ApplicantSummary{
			ID:       a.Applicant.ID,
			FullName: a.Applicant.FullName,
			Email:    a.Applicant.Email,
			Phone:    a.Applicant.Phone,
			City:     a.Applicant.City,
			Skills:   a.Applicant.Skills,
		}
	}
	return resp
}
