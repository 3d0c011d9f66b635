package services

import (
	"strings"
	"time"

	"jobportal_backend/internal/access"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type JobService interface {
	// Публичные операции. viewer может быть nil.
	ListPublic(db *gorm.DB, viewer access.Principal, req *dto.JobSearchRequest, page, pageSize int) (*dto.JobListResponse, error)
	Featured(db *gorm.DB, viewer access.Principal) ([]dto.JobResponse, error)
	GetPublic(db *gorm.DB, viewer access.Principal, jobID string) (*dto.JobResponse, error)

	// Операции одобренной компании, всегда в пределах её вакансий
	ListOwn(db *gorm.DB, companyID string) ([]dto.JobResponse, error)
	GetOwn(db *gorm.DB, companyID, jobID string) (*dto.JobResponse, error)
	Create(db *gorm.DB, companyID string, req *dto.JobRequest) (*dto.JobResponse, error)
	Update(db *gorm.DB, companyID, jobID string, req *dto.JobRequest) (*dto.JobResponse, error)
	Delete(db *gorm.DB, companyID, jobID string) error

	AdminList(db *gorm.DB, req *dto.AdminJobListRequest, page, pageSize int) (*dto.JobListResponse, error)
}

type jobService struct {
	jobRepo         repositories.JobRepository
	applicationRepo repositories.ApplicationRepository
	savedJobRepo    repositories.SavedJobRepository
	featuredCount   int
}

func NewJobService(
	jobRepo repositories.JobRepository,
	applicationRepo repositories.ApplicationRepository,
	savedJobRepo repositories.SavedJobRepository,
	featuredCount int,
) JobService {
	if featuredCount <= 0 {
		featuredCount = 6
	}
	return &jobService{
		jobRepo:         jobRepo,
		applicationRepo: applicationRepo,
		savedJobRepo:    savedJobRepo,
		featuredCount:   featuredCount,
	}
}

// ---------------- Public ----------------

func (s *jobService) ListPublic(db *gorm.DB, viewer access.Principal, req *dto.JobSearchRequest, page, pageSize int) (*dto.JobListResponse, error) {
	filter := repositories.JobFilter{
		Keyword:    strings.TrimSpace(req.Keyword),
		Location:   strings.TrimSpace(req.Location),
		JobType:    models.JobType(req.JobType),
		Experience: models.ExperienceLevel(req.Experience),
		Category:   req.Category,
		Sort:       req.Sort,
		Page:       repositories.Page{Page: page, PageSize: pageSize},
	}

	jobs, total, err := s.jobRepo.SearchVisible(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items, err := s.withViewerFlags(db, viewer, jobs)
	if err != nil {
		return nil, err
	}
	return &dto.JobListResponse{
		Jobs:     items,
		PageMeta: dto.NewPageMeta(total, page, pageSize),
	}, nil
}

func (s *jobService) Featured(db *gorm.DB, viewer access.Principal) ([]dto.JobResponse, error) {
	jobs, err := s.jobRepo.Featured(db, s.featuredCount)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.withViewerFlags(db, viewer, jobs)
}

// GetPublic - только видимая вакансия; каждый успешный просмотр увеличивает счётчик на единицу
func (s *jobService) GetPublic(db *gorm.DB, viewer access.Principal, jobID string) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindVisibleByID(db, jobID)
	if err != nil {
		return nil, mapJobError(err)
	}

	if err := s.jobRepo.IncrementViews(db, job.ID); err != nil {
		return nil, mapJobError(err)
	}
	job.ViewsCount++

	items, err := s.withViewerFlags(db, viewer, []models.Job{*job})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

// withViewerFlags добавляет has_applied / is_saved для аутентифицированного пользователя
func (s *jobService) withViewerFlags(db *gorm.DB, viewer access.Principal, jobs []models.Job) ([]dto.JobResponse, error) {
	items := make([]dto.JobResponse, 0, len(jobs))
	ids := make([]string, 0, len(jobs))
	for i := range jobs {
		items = append(items, dto.NewJobResponse(&jobs[i]))
		ids = append(ids, jobs[i].ID)
	}
	if viewer == nil || len(jobs) == 0 {
		return items, nil
	}

	saved, err := s.savedJobRepo.SavedJobIDs(db, viewer.Account().ID, ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	var applied map[string]bool
	if sp, ok := viewer.(*access.SeekerPrincipal); ok && sp.Seeker != nil {
		applied, err = s.applicationRepo.AppliedJobIDs(db, sp.Seeker.ID, ids)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	for i := range items {
		isSaved := saved[items[i].ID]
		items[i].IsSaved = &isSaved
		if applied != nil {
			hasApplied := applied[items[i].ID]
			items[i].HasApplied = &hasApplied
		}
	}
	return items, nil
}

// ---------------- Company ----------------

func (s *jobService) ListOwn(db *gorm.DB, companyID string) ([]dto.JobResponse, error) {
	jobs, err := s.jobRepo.FindByCompany(db, companyID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	ids := make([]string, 0, len(jobs))
	for i := range jobs {
		ids = append(ids, jobs[i].ID)
	}
	counts, err := s.applicationRepo.CountByJobs(db, ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		item := dto.NewJobResponse(&jobs[i])
		count := counts[jobs[i].ID]
		item.ApplicationsCount = &count
		items = append(items, item)
	}
	return items, nil
}

func (s *jobService) GetOwn(db *gorm.DB, companyID, jobID string) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindOwned(db, companyID, jobID)
	if err != nil {
		return nil, mapJobError(err)
	}
	resp := dto.NewJobResponse(job)
	return &resp, nil
}

func (s *jobService) Create(db *gorm.DB, companyID string, req *dto.JobRequest) (*dto.JobResponse, error) {
	job := &models.Job{
		CompanyID: companyID,
		IsActive:  true,
		PostedAt:  time.Now(),
	}
	if err := applyJobRequest(job, req); err != nil {
		return nil, err
	}

	if err := s.jobRepo.Create(db, job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctxFrom(db), "job created", "job_id", job.ID, "company_id", companyID)
	resp := dto.NewJobResponse(job)
	return &resp, nil
}

// Update - чужая вакансия не находится
func (s *jobService) Update(db *gorm.DB, companyID, jobID string, req *dto.JobRequest) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindOwned(db, companyID, jobID)
	if err != nil {
		return nil, mapJobError(err)
	}
	if err := applyJobRequest(job, req); err != nil {
		return nil, err
	}

	if err := s.jobRepo.Update(db, job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctxFrom(db), "job updated", "job_id", job.ID, "company_id", companyID)
	resp := dto.NewJobResponse(job)
	return &resp, nil
}

// Delete удаляет вакансию вместе с откликами и закладками
func (s *jobService) Delete(db *gorm.DB, companyID, jobID string) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	job, err := s.jobRepo.FindOwned(tx, companyID, jobID)
	if err != nil {
		return mapJobError(err)
	}
	if err := s.applicationRepo.DeleteByJob(tx, job.ID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.savedJobRepo.DeleteByJob(tx, job.ID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.jobRepo.DeleteOwned(tx, companyID, job.ID); err != nil {
		return mapJobError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctxFrom(db), "job deleted", "job_id", jobID, "company_id", companyID)
	return nil
}

// ---------------- Admin ----------------

func (s *jobService) AdminList(db *gorm.DB, req *dto.AdminJobListRequest, page, pageSize int) (*dto.JobListResponse, error) {
	filter := repositories.AdminJobFilter{
		Search: strings.TrimSpace(req.Search),
		Page:   repositories.Page{Page: page, PageSize: pageSize},
	}
	switch req.Status {
	case "active":
		active := true
		filter.Active = &active
	case "inactive":
		inactive := false
		filter.Active = &inactive
	}

	jobs, total, err := s.jobRepo.AdminList(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		items = append(items, dto.NewJobResponse(&jobs[i]))
	}
	return &dto.JobListResponse{Jobs: items, PageMeta: dto.NewPageMeta(total, page, pageSize)}, nil
}

// --- Helper functions ---

// applyJobRequest переносит поля формы в вакансию; диапазон зарплаты проверяется до записи
func applyJobRequest(job *models.Job, req *dto.JobRequest) error {
	if req.SalaryMin != nil && req.SalaryMax != nil && *req.SalaryMax < *req.SalaryMin {
		return apperrors.ErrSalaryRange
	}

	var deadline *time.Time
	if req.Deadline != nil {
		d, err := parseDate("deadline", *req.Deadline)
		if err != nil {
			return err
		}
		if d != nil {
			// вакансия открыта до конца дня дедлайна
			end := d.Add(24*time.Hour - time.Second)
			deadline = &end
		}
	}

	job.Title = strings.TrimSpace(req.Title)
	job.Description = req.Description
	job.Requirements = req.Requirements
	job.Responsibilities = req.Responsibilities
	job.Location = req.Location
	job.City = req.City
	job.JobType = models.JobType(req.JobType)
	job.Category = req.Category
	job.SalaryMin = req.SalaryMin
	job.SalaryMax = req.SalaryMax
	job.ExperienceRequired = models.ExperienceLevel(req.ExperienceRequired)
	job.Deadline = deadline
	job.Vacancies = req.Vacancies
	if job.Vacancies < 1 {
		job.Vacancies = 1
	}
	if req.IsActive != nil {
		job.IsActive = *req.IsActive
	}
	return nil
}

func mapJobError(err error) error {
	if apperrors.Is(err, repositories.ErrJobNotFound) {
		return apperrors.ErrJobNotFound
	}
	return apperrors.InternalError(err)
}
