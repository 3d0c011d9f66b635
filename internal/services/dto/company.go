package dto

import (
	"time"

	"jobportal_backend/internal/models"
)

type CompanyResponse struct {
	ID                 string               `json:"id"`
	UserID             string               `json:"user_id"`
	CompanyName        string               `json:"company_name"`
	RegistrationNumber string               `json:"registration_number"`
	Email              string               `json:"email"`
	Phone              string               `json:"phone"`
	Address            string               `json:"address"`
	City               string               `json:"city"`
	State              string               `json:"state"`
	Website            string               `json:"website,omitempty"`
	LogoURL            string               `json:"logo_url,omitempty"`
	Description        string               `json:"description"`
	Status             models.CompanyStatus `json:"status"`
	SubmittedAt        time.Time            `json:"submitted_at"`
	ApprovedAt         *time.Time           `json:"approved_at,omitempty"`
	RejectionReason    string               `json:"rejection_reason,omitempty"`
	Username           string               `json:"username,omitempty"`
}

// CompanySummary - компания в карточке вакансии
type CompanySummary struct {
	ID          string `json:"id"`
	CompanyName string `json:"company_name"`
	City        string `json:"city"`
	Website     string `json:"website,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`
}

// UpdateCompanyProfileRequest - редактирование профиля компании.
// Регистрационный номер и статус не редактируются.
type UpdateCompanyProfileRequest struct {
	CompanyName string `json:"company_name" validate:"required,max=200"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required,max=20"`
	Address     string `json:"address" validate:"required"`
	City        string `json:"city" validate:"required,max=100"`
	State       string `json:"state" validate:"required,max=100"`
	Website     string `json:"website" validate:"omitempty,url"`
	Description string `json:"description" validate:"required"`
}

// CompanyDashboardResponse - дашборд компании (доступен и до одобрения)
type CompanyDashboardResponse struct {
	Company            CompanyResponse       `json:"company"`
	IsApproved         bool                  `json:"is_approved"`
	TotalJobs          int64                 `json:"total_jobs"`
	ActiveJobs         int64                 `json:"active_jobs"`
	TotalApplications  int64                 `json:"total_applications"`
	RecentApplications []ApplicationResponse `json:"recent_applications"`
}

// CompanyDetailResponse - компания с вакансиями для администратора
type CompanyDetailResponse struct {
	Company CompanyResponse `json:"company"`
	Jobs    []JobResponse   `json:"jobs"`
}

type CompanyListResponse struct {
	Companies []CompanyResponse `json:"companies"`
	PageMeta
}

// NewCompanyResponse - logoURL уже разрешён через хранилище
func NewCompanyResponse(c *models.Company, logoURL string) CompanyResponse {
	resp := CompanyResponse{
		ID:                 c.ID,
		UserID:             c.UserID,
		CompanyName:        c.CompanyName,
		RegistrationNumber: c.RegistrationNumber,
		Email:              c.Email,
		Phone:              c.Phone,
		Address:            c.Address,
		City:               c.City,
		State:              c.State,
		Website:            c.Website,
		LogoURL:            logoURL,
		Description:        c.Description,
		Status:             c.Status,
		SubmittedAt:        c.SubmittedAt,
		ApprovedAt:         c.ApprovedAt,
		RejectionReason:    c.RejectionReason,
	}
	if c.User != nil {
		resp.Username = c.User.Username
	}
	return resp
}
