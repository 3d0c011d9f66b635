package repositories

import (
	"errors"

	"jobportal_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("application for this job already exists")
)

// ApplicationFilter - фильтры списка откликов компании
type ApplicationFilter struct {
	Status models.ApplicationStatus
	JobID  string
	Search string // по имени соискателя
	Page
}

type ApplicationRepository interface {
	// Create вставляет отклик; нарушение уникальности (job, applicant) возвращает ErrDuplicateApplication
	Create(db *gorm.DB, application *models.Application) error
	Exists(db *gorm.DB, jobID, applicantID string) (bool, error)
	FindByID(db *gorm.DB, id string) (*models.Application, error)
	// FindForCompany находит отклик только на вакансию этой компании
	FindForCompany(db *gorm.DB, companyID, id string) (*models.Application, error)
	ListForCompany(db *gorm.DB, companyID string, filter ApplicationFilter) ([]models.Application, int64, error)
	RecentForCompany(db *gorm.DB, companyID string, limit int) ([]models.Application, error)
	ListByApplicant(db *gorm.DB, applicantID string) ([]models.Application, error)
	AppliedJobIDs(db *gorm.DB, applicantID string, jobIDs []string) (map[string]bool, error)
	UpdateStatus(db *gorm.DB, id string, status models.ApplicationStatus, notes *string) error
	Count(db *gorm.DB) (int64, error)
	CountForCompany(db *gorm.DB, companyID string) (int64, error)
	// CountByJobs - число откликов по каждой вакансии из списка
	CountByJobs(db *gorm.DB, jobIDs []string) (map[string]int64, error)
	DeleteByJob(db *gorm.DB, jobID string) error
}

type applicationRepository struct{}

func NewApplicationRepository() ApplicationRepository {
	return &applicationRepository{}
}

func forCompany(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN jobs ON jobs.id = applications.job_id").
			Where("jobs.company_id = ?", companyID)
	}
}

func (r *applicationRepository) Create(db *gorm.DB, application *models.Application) error {
	if err := db.Create(application).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateApplication
		}
		return err
	}
	return nil
}

func (r *applicationRepository) Exists(db *gorm.DB, jobID, applicantID string) (bool, error) {
	var count int64
	err := db.Model(&models.Application{}).
		Where("job_id = ? AND applicant_id = ?", jobID, applicantID).
		Count(&count).Error
	return count > 0, err
}

func (r *applicationRepository) FindByID(db *gorm.DB, id string) (*models.Application, error) {
	var application models.Application
	err := db.Preload("Job.Company").Preload("Applicant.User").
		Where("id = ?", id).
		First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *applicationRepository) FindForCompany(db *gorm.DB, companyID, id string) (*models.Application, error) {
	var application models.Application
	err := db.Model(&models.Application{}).
		Scopes(forCompany(companyID)).
		Preload("Job.Company").Preload("Applicant.User").
		Where("applications.id = ?", id).
		First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *applicationRepository) ListForCompany(db *gorm.DB, companyID string, filter ApplicationFilter) ([]models.Application, int64, error) {
	query := db.Model(&models.Application{}).Scopes(forCompany(companyID))
	if filter.Status != "" {
		query = query.Where("applications.status = ?", filter.Status)
	}
	if filter.JobID != "" {
		query = query.Where("applications.job_id = ?", filter.JobID)
	}
	if filter.Search != "" {
		query = query.Joins("JOIN job_seekers ON job_seekers.id = applications.applicant_id").
			Where("LOWER(job_seekers.full_name) LIKE ?", likePattern(filter.Search))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var applications []models.Application
	err := query.Preload("Job").Preload("Applicant").
		Order("applications.applied_at DESC").
		Scopes(paginate(filter.Page)).
		Find(&applications).Error
	return applications, total, err
}

func (r *applicationRepository) RecentForCompany(db *gorm.DB, companyID string, limit int) ([]models.Application, error) {
	var applications []models.Application
	err := db.Model(&models.Application{}).
		Scopes(forCompany(companyID)).
		Preload("Job").Preload("Applicant").
		Order("applications.applied_at DESC").
		Limit(limit).
		Find(&applications).Error
	return applications, err
}

func (r *applicationRepository) ListByApplicant(db *gorm.DB, applicantID string) ([]models.Application, error) {
	var applications []models.Application
	err := db.Preload("Job.Company").
		Where("applicant_id = ?", applicantID).
		Order("applied_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *applicationRepository) AppliedJobIDs(db *gorm.DB, applicantID string, jobIDs []string) (map[string]bool, error) {
	result := make(map[string]bool, len(jobIDs))
	if len(jobIDs) == 0 {
		return result, nil
	}
	var ids []string
	err := db.Model(&models.Application{}).
		Where("applicant_id = ? AND job_id IN ?", applicantID, jobIDs).
		Pluck("job_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

func (r *applicationRepository) UpdateStatus(db *gorm.DB, id string, status models.ApplicationStatus, notes *string) error {
	updates := map[string]interface{}{"status": status}
	if notes != nil {
		updates["notes"] = *notes
	}
	result := db.Model(&models.Application{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *applicationRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Application{}).Count(&count).Error
	return count, err
}

func (r *applicationRepository) CountForCompany(db *gorm.DB, companyID string) (int64, error) {
	var count int64
	err := db.Model(&models.Application{}).Scopes(forCompany(companyID)).Count(&count).Error
	return count, err
}

func (r *applicationRepository) CountByJobs(db *gorm.DB, jobIDs []string) (map[string]int64, error) {
	result := make(map[string]int64, len(jobIDs))
	if len(jobIDs) == 0 {
		return result, nil
	}
	var rows []struct {
		JobID string
		Total int64
	}
	err := db.Model(&models.Application{}).
		Select("job_id, COUNT(*) AS total").
		Where("job_id IN ?", jobIDs).
		Group("job_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.JobID] = row.Total
	}
	return result, nil
}

func (r *applicationRepository) DeleteByJob(db *gorm.DB, jobID string) error {
	return db.Where("job_id = ?", jobID).Delete(&models.Application{}).Error
}
