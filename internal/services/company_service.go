package services

import (
	"bytes"
	"mime/multipart"
	"strings"

	"jobportal_backend/internal/imageprocessor"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/resume"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/internal/storage"
	"jobportal_backend/pkg/apperrors"

	"github.com/gabriel-vasile/mimetype"
	"gorm.io/gorm"
)

const recentApplicationsLimit = 5

var allowedLogoTypes = []string{"image/png", "image/jpeg", "image/gif", "image/webp"}

type CompanyService interface {
	// Dashboard доступен компании в любом статусе
	Dashboard(db *gorm.DB, company *models.Company) (*dto.CompanyDashboardResponse, error)
	GetProfile(db *gorm.DB, company *models.Company) (*dto.CompanyResponse, error)
	UpdateProfile(db *gorm.DB, company *models.Company, req *dto.UpdateCompanyProfileRequest) (*dto.CompanyResponse, error)
	UploadLogo(db *gorm.DB, company *models.Company, file *multipart.FileHeader) (*dto.CompanyResponse, error)
}

type companyService struct {
	companyRepo     repositories.CompanyRepository
	jobRepo         repositories.JobRepository
	applicationRepo repositories.ApplicationRepository
	files           *FileService
	images          *imageprocessor.Processor
	maxLogoSize     int64
}

func NewCompanyService(
	companyRepo repositories.CompanyRepository,
	jobRepo repositories.JobRepository,
	applicationRepo repositories.ApplicationRepository,
	files *FileService,
	images *imageprocessor.Processor,
	maxLogoSize int64,
) CompanyService {
	if maxLogoSize <= 0 {
		maxLogoSize = 2 * 1024 * 1024
	}
	return &companyService{
		companyRepo:     companyRepo,
		jobRepo:         jobRepo,
		applicationRepo: applicationRepo,
		files:           files,
		images:          images,
		maxLogoSize:     maxLogoSize,
	}
}

func (s *companyService) Dashboard(db *gorm.DB, company *models.Company) (*dto.CompanyDashboardResponse, error) {
	totalJobs, err := s.jobRepo.CountByCompany(db, company.ID, false)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	activeJobs, err := s.jobRepo.CountByCompany(db, company.ID, true)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	totalApplications, err := s.applicationRepo.CountForCompany(db, company.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	recent, err := s.applicationRepo.RecentForCompany(db, company.ID, recentApplicationsLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.CompanyDashboardResponse{
		Company:            dto.NewCompanyResponse(company, s.files.URL(ctxFrom(db), company.LogoKey)),
		IsApproved:         company.IsApproved(),
		TotalJobs:          totalJobs,
		ActiveJobs:         activeJobs,
		TotalApplications:  totalApplications,
		RecentApplications: make([]dto.ApplicationResponse, 0, len(recent)),
	}
	for i := range recent {
		resp.RecentApplications = append(resp.RecentApplications, dto.NewApplicationResponse(&recent[i]))
	}
	return resp, nil
}

func (s *companyService) GetProfile(db *gorm.DB, company *models.Company) (*dto.CompanyResponse, error) {
	resp := dto.NewCompanyResponse(company, s.files.URL(ctxFrom(db), company.LogoKey))
	return &resp, nil
}

// UpdateProfile не меняет регистрационный номер и статус
func (s *companyService) UpdateProfile(db *gorm.DB, company *models.Company, req *dto.UpdateCompanyProfileRequest) (*dto.CompanyResponse, error) {
	company.CompanyName = strings.TrimSpace(req.CompanyName)
	company.Email = req.Email
	company.Phone = req.Phone
	company.Address = req.Address
	company.City = req.City
	company.State = req.State
	company.Website = req.Website
	company.Description = req.Description

	if err := s.companyRepo.UpdateProfile(db, company); err != nil {
		return nil, apperrors.InternalError(err)
	}
	logger.CtxInfo(ctxFrom(db), "company profile updated", "company_id", company.ID)
	return s.GetProfile(db, company)
}

// UploadLogo проверяет тип по содержимому, уменьшает изображение и заменяет старый логотип
func (s *companyService) UploadLogo(db *gorm.DB, company *models.Company, fh *multipart.FileHeader) (*dto.CompanyResponse, error) {
	ctx := ctxFrom(db)

	if fh.Size > s.maxLogoSize {
		return nil, apperrors.ErrFileTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer f.Close()

	data, err := resume.ReadLimited(f, s.maxLogoSize)
	if err != nil {
		if apperrors.Is(err, resume.ErrTooLarge) {
			return nil, apperrors.ErrFileTooLarge
		}
		return nil, apperrors.InternalError(err)
	}
	if !mimetype.EqualsAny(mimetype.Detect(data).String(), allowedLogoTypes...) {
		return nil, apperrors.ErrInvalidFileType
	}

	img, err := s.images.Process(bytes.NewReader(data), imageprocessor.SizeLogo)
	if err != nil {
		return nil, apperrors.ErrInvalidFileType
	}

	key, err := s.files.Save(ctx, storage.PrefixCompanyLogos, "logo"+img.Extension, img.ContentType, img.Data)
	if err != nil {
		return nil, err
	}

	if err := s.companyRepo.UpdateLogo(db, company.ID, key); err != nil {
		s.files.Remove(ctx, key)
		return nil, apperrors.InternalError(err)
	}
	s.files.Remove(ctx, company.LogoKey)
	company.LogoKey = key

	logger.CtxInfo(ctx, "company logo uploaded", "company_id", company.ID, "key", key)
	return s.GetProfile(db, company)
}
