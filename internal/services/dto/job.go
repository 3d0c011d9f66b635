package dto

import (
	"time"

	"jobportal_backend/internal/models"
)

// JobSearchRequest - фильтры публичного списка вакансий
type JobSearchRequest struct {
	Keyword    string `form:"q" validate:"omitempty,max=200"`
	Location   string `form:"location" validate:"omitempty,max=200"`
	JobType    string `form:"job_type" validate:"omitempty,is-job-type"`
	Experience string `form:"experience" validate:"omitempty,is-experience"`
	Category   string `form:"category" validate:"omitempty,max=100"`
	Sort       string `form:"sort"`
}

// JobRequest - создание и редактирование вакансии компанией
type JobRequest struct {
	Title              string   `json:"title" validate:"required,max=200"`
	Description        string   `json:"description" validate:"required"`
	Requirements       string   `json:"requirements" validate:"required"`
	Responsibilities   string   `json:"responsibilities" validate:"required"`
	Location           string   `json:"location" validate:"required,max=200"`
	City               string   `json:"city" validate:"required,max=100"`
	JobType            string   `json:"job_type" validate:"required,is-job-type"`
	Category           string   `json:"category" validate:"required,max=100"`
	SalaryMin          *float64 `json:"salary_min" validate:"omitempty,gte=0"`
	SalaryMax          *float64 `json:"salary_max" validate:"omitempty,gte=0"`
	ExperienceRequired string   `json:"experience_required" validate:"required,is-experience"`
	Vacancies          int      `json:"vacancies" validate:"omitempty,min=1"`
	// YYYY-MM-DD, вакансия закрывается после этой даты
	Deadline *string `json:"deadline" validate:"omitempty,datetime=2006-01-02"`
	IsActive *bool   `json:"is_active"`
}

// AdminJobListRequest - фильтры списка вакансий в админке
type AdminJobListRequest struct {
	Status string `form:"status" validate:"omitempty,oneof=active inactive"`
	Search string `form:"q" validate:"omitempty,max=200"`
}

type JobResponse struct {
	ID                 string                 `json:"id"`
	CompanyID          string                 `json:"company_id"`
	Title              string                 `json:"title"`
	Description        string                 `json:"description"`
	Requirements       string                 `json:"requirements"`
	Responsibilities   string                 `json:"responsibilities"`
	Location           string                 `json:"location"`
	City               string                 `json:"city"`
	JobType            models.JobType         `json:"job_type"`
	Category           string                 `json:"category"`
	SalaryMin          *float64               `json:"salary_min,omitempty"`
	SalaryMax          *float64               `json:"salary_max,omitempty"`
	ExperienceRequired models.ExperienceLevel `json:"experience_required"`
	Vacancies          int                    `json:"vacancies"`
	IsActive           bool                   `json:"is_active"`
	PostedAt           time.Time              `json:"posted_at"`
	Deadline           *time.Time             `json:"deadline,omitempty"`
	ViewsCount         int64                  `json:"views_count"`
	Company            *CompanySummary        `json:"company,omitempty"`

	// Только для аутентифицированного соискателя/пользователя
	HasApplied        *bool  `json:"has_applied,omitempty"`
	IsSaved           *bool  `json:"is_saved,omitempty"`
	ApplicationsCount *int64 `json:"applications_count,omitempty"`
}

type JobListResponse struct {
	Jobs []JobResponse `json:"jobs"`
	PageMeta
}

func NewJobResponse(j *models.Job) JobResponse {
	resp := JobResponse{
		ID:                 j.ID,
		CompanyID:          j.CompanyID,
		Title:              j.Title,
		Description:        j.Description,
		Requirements:       j.Requirements,
		Responsibilities:   j.Responsibilities,
		Location:           j.Location,
		City:               j.City,
		JobType:            j.JobType,
		Category:           j.Category,
		SalaryMin:          j.SalaryMin,
		SalaryMax:          j.SalaryMax,
		ExperienceRequired: j.ExperienceRequired,
		Vacancies:          j.Vacancies,
		IsActive:           j.IsActive,
		PostedAt:           j.PostedAt,
		Deadline:           j.Deadline,
		ViewsCount:         j.ViewsCount,
	}
	if j.Company != nil {
		resp.Company = &CompanySummary{
			ID:          j.Company.ID,
			CompanyName: j.Company.CompanyName,
			City:        j.Company.City,
			Website:     j.Company.Website,
		}
	}
	return resp
}
