package services

import (
	"strings"
	"time"

	"jobportal_backend/internal/email"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/internal/workers"
	"jobportal_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const adminRecentLimit = 5

type AdminService interface {
	Dashboard(db *gorm.DB) (*dto.AdminDashboardResponse, error)
	ListCompanies(db *gorm.DB, req *dto.CompanyListRequest, page, pageSize int) (*dto.CompanyListResponse, error)
	GetCompany(db *gorm.DB, companyID string) (*dto.CompanyDetailResponse, error)
	ApproveCompany(db *gorm.DB, companyID string) (*dto.CompanyResponse, error)
	RejectCompany(db *gorm.DB, companyID, reason string) (*dto.CompanyResponse, error)
	SetUserActive(db *gorm.DB, adminID, userID string, active bool) (*dto.UserDTO, error)
	// CloseExpiredJobs деактивирует активные вакансии с прошедшим дедлайном
	CloseExpiredJobs(db *gorm.DB) (int64, error)
}

type adminService struct {
	userRepo         repositories.UserRepository
	companyRepo      repositories.CompanyRepository
	jobRepo          repositories.JobRepository
	applicationRepo  repositories.ApplicationRepository
	seekerRepo       repositories.JobSeekerRepository
	notificationRepo repositories.NotificationRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	files            *FileService
	dispatcher       workers.Dispatcher
}

func NewAdminService(
	userRepo repositories.UserRepository,
	companyRepo repositories.CompanyRepository,
	jobRepo repositories.JobRepository,
	applicationRepo repositories.ApplicationRepository,
	seekerRepo repositories.JobSeekerRepository,
	notificationRepo repositories.NotificationRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	files *FileService,
	dispatcher workers.Dispatcher,
) AdminService {
	return &adminService{
		userRepo:         userRepo,
		companyRepo:      companyRepo,
		jobRepo:          jobRepo,
		applicationRepo:  applicationRepo,
		seekerRepo:       seekerRepo,
		notificationRepo: notificationRepo,
		refreshTokenRepo: refreshTokenRepo,
		files:            files,
		dispatcher:       dispatcher,
	}
}

func (s *adminService) Dashboard(db *gorm.DB) (*dto.AdminDashboardResponse, error) {
	var stats dto.AdminStats
	counters := []struct {
		dst *int64
		fn  func() (int64, error)
	}{
		{&stats.TotalCompanies, func() (int64, error) { return s.companyRepo.Count(db) }},
		{&stats.PendingCompanies, func() (int64, error) { return s.companyRepo.CountByStatus(db, models.CompanyStatusPending) }},
		{&stats.ApprovedCompanies, func() (int64, error) { return s.companyRepo.CountByStatus(db, models.CompanyStatusApproved) }},
		{&stats.RejectedCompanies, func() (int64, error) { return s.companyRepo.CountByStatus(db, models.CompanyStatusRejected) }},
		{&stats.TotalJobs, func() (int64, error) { return s.jobRepo.Count(db) }},
		{&stats.ActiveJobs, func() (int64, error) { return s.jobRepo.CountActive(db) }},
		{&stats.TotalApplications, func() (int64, error) { return s.applicationRepo.Count(db) }},
		{&stats.TotalJobSeekers, func() (int64, error) { return s.seekerRepo.Count(db) }},
	}
	for _, c := range counters {
		n, err := c.fn()
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		*c.dst = n
	}

	companies, err := s.companyRepo.Recent(db, adminRecentLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	jobs, err := s.jobRepo.Recent(db, adminRecentLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	ctx := ctxFrom(db)
	resp := &dto.AdminDashboardResponse{
		Stats:           stats,
		RecentCompanies: make([]dto.CompanyResponse, 0, len(companies)),
		RecentJobs:      make([]dto.JobResponse, 0, len(jobs)),
	}
	for i := range companies {
		resp.RecentCompanies = append(resp.RecentCompanies, dto.NewCompanyResponse(&companies[i], s.files.URL(ctx, companies[i].LogoKey)))
	}
	for i := range jobs {
		resp.RecentJobs = append(resp.RecentJobs, dto.NewJobResponse(&jobs[i]))
	}
	return resp, nil
}

func (s *adminService) ListCompanies(db *gorm.DB, req *dto.CompanyListRequest, page, pageSize int) (*dto.CompanyListResponse, error) {
	filter := repositories.CompanyFilter{
		Status: models.CompanyStatus(req.Status),
		Search: strings.TrimSpace(req.Search),
		Page:   repositories.Page{Page: page, PageSize: pageSize},
	}
	companies, total, err := s.companyRepo.List(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	ctx := ctxFrom(db)
	resp := &dto.CompanyListResponse{
		Companies: make([]dto.CompanyResponse, 0, len(companies)),
		PageMeta:  dto.NewPageMeta(total, page, pageSize),
	}
	for i := range companies {
		resp.Companies = append(resp.Companies, dto.NewCompanyResponse(&companies[i], s.files.URL(ctx, companies[i].LogoKey)))
	}
	return resp, nil
}

func (s *adminService) GetCompany(db *gorm.DB, companyID string) (*dto.CompanyDetailResponse, error) {
	company, err := s.companyRepo.FindByID(db, companyID)
	if err != nil {
		return nil, mapCompanyError(err)
	}
	jobs, err := s.jobRepo.FindByCompany(db, company.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.CompanyDetailResponse{
		Company: dto.NewCompanyResponse(company, s.files.URL(ctxFrom(db), company.LogoKey)),
		Jobs:    make([]dto.JobResponse, 0, len(jobs)),
	}
	for i := range jobs {
		resp.Jobs = append(resp.Jobs, dto.NewJobResponse(&jobs[i]))
	}
	return resp, nil
}

// ApproveCompany - повторное одобрение разрешено и обновляет время одобрения
func (s *adminService) ApproveCompany(db *gorm.DB, companyID string) (*dto.CompanyResponse, error) {
	return s.decide(db, companyID, func(c *models.Company, mail *outbox) *models.Notification {
		c.Approve(time.Now())
		mail.add(c.Email, "Your company has been approved", email.TemplateCompanyApproved, map[string]interface{}{
			"CompanyName": c.CompanyName,
		})
		return newNotification(
			c.UserID,
			models.NotificationTypeApproval,
			"Company Approved",
			"Your company "+c.CompanyName+" has been approved. You can now post jobs.",
			map[string]interface{}{"company_id": c.ID},
		)
	})
}

// RejectCompany сохраняет причину как передана
func (s *adminService) RejectCompany(db *gorm.DB, companyID, reason string) (*dto.CompanyResponse, error) {
	return s.decide(db, companyID, func(c *models.Company, mail *outbox) *models.Notification {
		c.Reject(reason)
		mail.add(c.Email, "Company registration update", email.TemplateCompanyRejected, map[string]interface{}{
			"CompanyName": c.CompanyName,
			"Reason":      c.RejectionReason,
		})
		return newNotification(
			c.UserID,
			models.NotificationTypeRejection,
			"Company Registration Rejected",
			"Your company registration has been rejected. Reason: "+c.RejectionReason,
			map[string]interface{}{"company_id": c.ID},
		)
	})
}

// decide применяет решение администратора, сохраняет компанию и уведомление в одной
// транзакции и ставит письмо в очередь после commit
func (s *adminService) decide(db *gorm.DB, companyID string, apply func(*models.Company, *outbox) *models.Notification) (*dto.CompanyResponse, error) {
	ctx := ctxFrom(db)

	var company *models.Company
	var mail outbox
	err := db.Transaction(func(tx *gorm.DB) error {
		found, err := s.companyRepo.FindByID(tx, companyID)
		if err != nil {
			return err
		}
		notification := apply(found, &mail)
		if err := s.companyRepo.UpdateStatus(tx, found); err != nil {
			return err
		}
		if err := s.notificationRepo.Create(tx, notification); err != nil {
			return err
		}
		company = found
		return nil
	})
	if err != nil {
		return nil, mapCompanyError(err)
	}

	mail.flush(ctx, s.dispatcher)
	logger.CtxInfo(ctx, "company status changed", "company_id", company.ID, "status", company.Status)

	resp := dto.NewCompanyResponse(company, s.files.URL(ctx, company.LogoKey))
	return &resp, nil
}

func (s *adminService) SetUserActive(db *gorm.DB, adminID, userID string, active bool) (*dto.UserDTO, error) {
	if adminID == userID {
		return nil, apperrors.ErrCannotModifySelf
	}
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.userRepo.SetActive(tx, user.ID, active); err != nil {
		return nil, apperrors.InternalError(err)
	}
	// Деактивированный пользователь теряет все сессии сразу
	var revoked int64
	if !active {
		if revoked, err = s.refreshTokenRepo.RevokeAll(tx, user.ID); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	user.IsActive = active

	logger.CtxInfo(ctxFrom(db), "user activity changed",
		"user_id", user.ID, "is_active", active, "admin_id", adminID, "sessions_revoked", revoked)
	resp := dto.NewUserDTO(user)
	return &resp, nil
}

func (s *adminService) CloseExpiredJobs(db *gorm.DB) (int64, error) {
	closed, err := s.jobRepo.DeactivateExpired(db, time.Now())
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	logger.CtxInfo(ctxFrom(db), "expired jobs closed by admin", "count", closed)
	return closed, nil
}

func mapCompanyError(err error) error {
	if apperrors.Is(err, repositories.ErrCompanyNotFound) {
		return apperrors.ErrCompanyNotFound
	}
	return apperrors.InternalError(err)
}
