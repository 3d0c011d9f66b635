package services

import (
	"math"
	"mime/multipart"
	"strings"
	"time"
	"unicode/utf8"

	"jobportal_backend/internal/access"
	"jobportal_backend/internal/algorithms"
	"jobportal_backend/internal/email"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/resume"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/internal/storage"
	"jobportal_backend/internal/workers"
	"jobportal_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	// MinCoverLetterLength - минимальная длина сопроводительного письма в символах
	MinCoverLetterLength = 100
	// MaxApplicationResumeSize - лимит PDF-резюме, приложенного к отклику
	MaxApplicationResumeSize = 5 * 1024 * 1024
)

type ApplicationService interface {
	// Apply - отклик соискателя. resumeFile может быть nil, тогда берётся резюме из профиля.
	Apply(db *gorm.DB, seeker *access.SeekerPrincipal, jobID string, req *dto.ApplyRequest, resumeFile *multipart.FileHeader) (*dto.ApplicationResponse, error)
	MyApplications(db *gorm.DB, seekerID string) ([]dto.ApplicationResponse, error)

	ListForCompany(db *gorm.DB, companyID string, req *dto.ApplicationListRequest, page, pageSize int) (*dto.ApplicationListResponse, error)
	GetForCompany(db *gorm.DB, companyID, applicationID string) (*dto.ApplicationResponse, error)
	UpdateStatus(db *gorm.DB, companyID, applicationID string, req *dto.UpdateApplicationStatusRequest) (*dto.ApplicationResponse, error)
}

type applicationService struct {
	applicationRepo  repositories.ApplicationRepository
	jobRepo          repositories.JobRepository
	notificationRepo repositories.NotificationRepository
	files            *FileService
	dispatcher       workers.Dispatcher
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	notificationRepo repositories.NotificationRepository,
	files *FileService,
	dispatcher workers.Dispatcher,
) ApplicationService {
	return &applicationService{
		applicationRepo:  applicationRepo,
		jobRepo:          jobRepo,
		notificationRepo: notificationRepo,
		files:            files,
		dispatcher:       dispatcher,
	}
}

// Apply проверяет всё до первой записи: видимость вакансии, повторный отклик,
// длину письма и резюме. Уникальный индекс (job, applicant) страхует от гонки.
func (s *applicationService) Apply(db *gorm.DB, seeker *access.SeekerPrincipal, jobID string, req *dto.ApplyRequest, resumeFile *multipart.FileHeader) (*dto.ApplicationResponse, error) {
	ctx := ctxFrom(db)
	profile := seeker.Seeker

	job, err := s.jobRepo.FindVisibleByID(db, jobID)
	if err != nil {
		return nil, mapJobError(err)
	}

	exists, err := s.applicationRepo.Exists(db, job.ID, profile.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrDuplicateApplication
	}

	coverLetter := strings.TrimSpace(req.CoverLetter)
	if utf8.RuneCountInString(coverLetter) < MinCoverLetterLength {
		return nil, apperrors.ErrCoverLetterTooShort
	}

	var resumeKey string
	var uploadedKey string
	switch {
	case resumeFile != nil:
		file, err := readUpload(resumeFile, MaxApplicationResumeSize, resume.MIMEPDF)
		if err != nil {
			return nil, err
		}
		uploadedKey, err = s.files.Save(ctx, storage.PrefixApplicationResumes, file.Name, file.MIME, file.Data)
		if err != nil {
			return nil, err
		}
		resumeKey = uploadedKey
	case profile.HasResume():
		resumeKey = profile.ResumeKey
	default:
		return nil, apperrors.ErrResumeRequired
	}

	application := &models.Application{
		JobID:       job.ID,
		ApplicantID: profile.ID,
		ResumeKey:   resumeKey,
		CoverLetter: coverLetter,
		Status:      models.ApplicationStatusSubmitted,
		AppliedAt:   time.Now(),
	}

	var mail outbox
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.applicationRepo.Create(tx, application); err != nil {
			return err
		}
		if job.Company == nil {
			return nil
		}
		notification := newNotification(
			job.Company.UserID,
			models.NotificationTypeNewApplication,
			"New Application Received",
			profile.FullName+" applied for "+job.Title,
			map[string]interface{}{"application_id": application.ID, "job_id": job.ID},
		)
		if err := s.notificationRepo.Create(tx, notification); err != nil {
			return err
		}
		mail.add(job.Company.Email, "New application: "+job.Title, email.TemplateNewApplication, map[string]interface{}{
			"CompanyName":   job.Company.CompanyName,
			"ApplicantName": profile.FullName,
			"JobTitle":      job.Title,
		})
		return nil
	})
	if err != nil {
		s.files.Remove(ctx, uploadedKey)
		if apperrors.Is(err, repositories.ErrDuplicateApplication) {
			return nil, apperrors.ErrDuplicateApplication
		}
		return nil, apperrors.InternalError(err)
	}

	mail.flush(ctx, s.dispatcher)
	logger.CtxInfo(ctx, "application submitted", "application_id", application.ID, "job_id", job.ID)

	application.Job = job
	resp := dto.NewApplicationResponse(application)
	return &resp, nil
}

func (s *applicationService) MyApplications(db *gorm.DB, seekerID string) ([]dto.ApplicationResponse, error) {
	applications, err := s.applicationRepo.ListByApplicant(db, seekerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	items := make([]dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		items = append(items, dto.NewApplicationResponse(&applications[i]))
	}
	return items, nil
}

func (s *applicationService) ListForCompany(db *gorm.DB, companyID string, req *dto.ApplicationListRequest, page, pageSize int) (*dto.ApplicationListResponse, error) {
	filter := repositories.ApplicationFilter{
		Status: models.ApplicationStatus(req.Status),
		JobID:  req.JobID,
		Search: strings.TrimSpace(req.Search),
		Page:   repositories.Page{Page: page, PageSize: pageSize},
	}
	applications, total, err := s.applicationRepo.ListForCompany(db, companyID, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		items = append(items, withMatch(dto.NewApplicationResponse(&applications[i]), &applications[i]))
	}
	return &dto.ApplicationListResponse{
		Applications: items,
		PageMeta:     dto.NewPageMeta(total, page, pageSize),
	}, nil
}

// GetForCompany - отклик на чужую вакансию не находится
func (s *applicationService) GetForCompany(db *gorm.DB, companyID, applicationID string) (*dto.ApplicationResponse, error) {
	application, err := s.applicationRepo.FindForCompany(db, companyID, applicationID)
	if err != nil {
		return nil, mapApplicationError(err)
	}
	resp := withMatch(dto.NewApplicationResponse(application), application)
	resp.ResumeURL = s.files.URL(ctxFrom(db), application.ResumeKey)
	return &resp, nil
}

// withMatch добавляет оценку соответствия, если вакансия и соискатель подгружены
func withMatch(resp dto.ApplicationResponse, a *models.Application) dto.ApplicationResponse {
	if a.Job == nil || a.Applicant == nil {
		return resp
	}
	score, reasons := algorithms.CalculateMatchScore(a.Job, a.Applicant)
	score = math.Round(score*10) / 10
	resp.MatchScore = &score
	resp.MatchReasons = reasons
	return resp
}

// UpdateStatus принимает любой статус из перечня, порядок переходов не ограничен
func (s *applicationService) UpdateStatus(db *gorm.DB, companyID, applicationID string, req *dto.UpdateApplicationStatusRequest) (*dto.ApplicationResponse, error) {
	status := models.ApplicationStatus(req.Status)
	if !status.IsValid() {
		return nil, apperrors.ErrInvalidStatus("application", "Invalid application status: "+req.Status)
	}
	ctx := ctxFrom(db)

	var application *models.Application
	var mail outbox
	err := db.Transaction(func(tx *gorm.DB) error {
		found, err := s.applicationRepo.FindForCompany(tx, companyID, applicationID)
		if err != nil {
			return err
		}
		if err := s.applicationRepo.UpdateStatus(tx, found.ID, status, req.Notes); err != nil {
			return err
		}
		found.Status = status
		if req.Notes != nil {
			found.Notes = *req.Notes
		}
		application = found

		if found.Applicant == nil || found.Job == nil {
			return nil
		}
		notification := newNotification(
			found.Applicant.UserID,
			models.NotificationTypeApplicationStatus,
			"Application Status Updated",
			"Your application for "+found.Job.Title+" is now "+status.Label(),
			map[string]interface{}{"application_id": found.ID, "job_id": found.JobID, "status": string(status)},
		)
		if err := s.notificationRepo.Create(tx, notification); err != nil {
			return err
		}

		companyName := ""
		if found.Job.Company != nil {
			companyName = found.Job.Company.CompanyName
		}
		mail.add(found.Applicant.Email, "Application update: "+found.Job.Title, email.TemplateApplicationStatus, map[string]interface{}{
			"ApplicantName": found.Applicant.FullName,
			"JobTitle":      found.Job.Title,
			"CompanyName":   companyName,
			"Status":        status.Label(),
			"Notes":         found.Notes,
		})
		return nil
	})
	if err != nil {
		return nil, mapApplicationError(err)
	}

	mail.flush(ctx, s.dispatcher)
	logger.CtxInfo(ctx, "application status updated", "application_id", application.ID, "status", status)

	resp := dto.NewApplicationResponse(application)
	resp.ResumeURL = s.files.URL(ctx, application.ResumeKey)
	return &resp, nil
}

func mapApplicationError(err error) error {
	if apperrors.Is(err, repositories.ErrApplicationNotFound) {
		return apperrors.ErrApplicationNotFound
	}
	return apperrors.InternalError(err)
}
