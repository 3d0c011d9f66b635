package dto

// CompanyListRequest - фильтры списка компаний
type CompanyListRequest struct {
	Status string `form:"status" validate:"omitempty,is-company-status"`
	Search string `form:"q" validate:"omitempty,max=200"`
}

type RejectCompanyRequest struct {
	Reason *string `json:"reason" form:"reason" validate:"omitempty,max=2000"`
}

type SetUserActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type AdminStats struct {
	TotalCompanies    int64 `json:"total_companies"`
	PendingCompanies  int64 `json:"pending_companies"`
	ApprovedCompanies int64 `json:"approved_companies"`
	RejectedCompanies int64 `json:"rejected_companies"`
	TotalJobs         int64 `json:"total_jobs"`
	ActiveJobs        int64 `json:"active_jobs"`
	TotalApplications int64 `json:"total_applications"`
	TotalJobSeekers   int64 `json:"total_job_seekers"`
}

type AdminDashboardResponse struct {
	Stats           AdminStats        `json:"stats"`
	RecentCompanies []CompanyResponse `json:"recent_companies"`
	RecentJobs      []JobResponse     `json:"recent_jobs"`
}

type CloseExpiredResponse struct {
	Closed int64 `json:"closed"`
}
