package repositories

import (
	"errors"
	"strings"
	"time"

	"jobportal_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

// Сортировки публичного списка. Всё, что не в списке, игнорируется.
var jobSortColumns = map[string]string{
	"-posted_at":   "jobs.posted_at DESC",
	"posted_at":    "jobs.posted_at ASC",
	"-posted_date": "jobs.posted_at DESC",
	"posted_date":  "jobs.posted_at ASC",
	"-salary_max":  "jobs.salary_max DESC",
	"salary_min":   "jobs.salary_min ASC",
	"title":        "jobs.title ASC",
	"-views_count": "jobs.views_count DESC",
	"deadline":     "jobs.deadline ASC",
}

const defaultJobSort = "jobs.posted_at DESC"

// jobTieBreak делает порядок стабильным при одинаковых значениях сортировки
const jobTieBreak = "jobs.id ASC"

// JobSortOrder возвращает ORDER BY для ключа сортировки, по умолчанию - новые сверху
func JobSortOrder(key string) string {
	if order, ok := jobSortColumns[key]; ok {
		return order
	}
	return defaultJobSort
}

// JobFilter - фильтры публичного поиска
type JobFilter struct {
	Keyword    string // title, description, category
	Location   string // city, location
	JobType    models.JobType
	Experience models.ExperienceLevel
	Category   string
	Sort       string
	Page
}

// AdminJobFilter - фильтры списка вакансий в админке
type AdminJobFilter struct {
	Active *bool
	Search string // title или название компании
	Page
}

type JobRepository interface {
	Create(db *gorm.DB, job *models.Job) error
	Update(db *gorm.DB, job *models.Job) error
	FindByID(db *gorm.DB, id string) (*models.Job, error)
	// FindVisibleByID находит вакансию, только если она активна и компания одобрена
	FindVisibleByID(db *gorm.DB, id string) (*models.Job, error)
	// FindOwned находит вакансию компании, чужие вакансии не находятся
	FindOwned(db *gorm.DB, companyID, id string) (*models.Job, error)
	DeleteOwned(db *gorm.DB, companyID, id string) error
	SearchVisible(db *gorm.DB, filter JobFilter) ([]models.Job, int64, error)
	Featured(db *gorm.DB, limit int) ([]models.Job, error)
	FindByCompany(db *gorm.DB, companyID string) ([]models.Job, error)
	FindByCompanyAndTitle(db *gorm.DB, companyID, title string) (*models.Job, error)
	AdminList(db *gorm.DB, filter AdminJobFilter) ([]models.Job, int64, error)
	Recent(db *gorm.DB, limit int) ([]models.Job, error)
	IncrementViews(db *gorm.DB, id string) error
	DeactivateExpired(db *gorm.DB, now time.Time) (int64, error)
	Count(db *gorm.DB) (int64, error)
	CountActive(db *gorm.DB) (int64, error)
	CountByCompany(db *gorm.DB, companyID string, activeOnly bool) (int64, error)
}

type jobRepository struct{}

func NewJobRepository() JobRepository {
	return &jobRepository{}
}

// visible - вакансия активна и её компания одобрена
func visible(db *gorm.DB) *gorm.DB {
	return db.Joins("JOIN companies ON companies.id = jobs.company_id").
		Where("jobs.is_active = ? AND companies.status = ?", true, models.CompanyStatusApproved)
}

func (r *jobRepository) Create(db *gorm.DB, job *models.Job) error {
	return db.Create(job).Error
}

// редактируемые компанией поля; счётчик просмотров и дата публикации не перезаписываются
var jobEditableColumns = []string{
	"title", "description", "requirements", "responsibilities", "location", "city", "job_type",
	"category", "salary_min", "salary_max", "experience_required", "vacancies", "is_active", "deadline",
}

func (r *jobRepository) Update(db *gorm.DB, job *models.Job) error {
	return db.Model(job).Select(jobEditableColumns).Updates(job).Error
}

func (r *jobRepository) FindByID(db *gorm.DB, id string) (*models.Job, error) {
	var job models.Job
	if err := db.Preload("Company").Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) FindVisibleByID(db *gorm.DB, id string) (*models.Job, error) {
	var job models.Job
	err := db.Model(&models.Job{}).
		Scopes(visible).
		Preload("Company").
		Where("jobs.id = ?", id).
		First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) FindOwned(db *gorm.DB, companyID, id string) (*models.Job, error) {
	var job models.Job
	if err := db.Where("id = ? AND company_id = ?", id, companyID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) DeleteOwned(db *gorm.DB, companyID, id string) error {
	result := db.Where("id = ? AND company_id = ?", id, companyID).Delete(&models.Job{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *jobRepository) SearchVisible(db *gorm.DB, filter JobFilter) ([]models.Job, int64, error) {
	query := db.Model(&models.Job{}).Scopes(visible)

	if filter.Keyword != "" {
		pattern := likePattern(filter.Keyword)
		query = query.Where(
			"LOWER(jobs.title) LIKE ? OR LOWER(jobs.description) LIKE ? OR LOWER(jobs.category) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filter.Location != "" {
		pattern := likePattern(filter.Location)
		query = query.Where("LOWER(jobs.city) LIKE ? OR LOWER(jobs.location) LIKE ?", pattern, pattern)
	}
	if filter.JobType != "" {
		query = query.Where("jobs.job_type = ?", filter.JobType)
	}
	if filter.Experience != "" {
		query = query.Where("jobs.experience_required = ?", filter.Experience)
	}
	if filter.Category != "" {
		query = query.Where("LOWER(jobs.category) = ?", strings.ToLower(strings.TrimSpace(filter.Category)))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []models.Job
	err := query.Preload("Company").
		Order(JobSortOrder(filter.Sort)).
		Order(jobTieBreak).
		Scopes(paginate(filter.Page)).
		Find(&jobs).Error
	return jobs, total, err
}

func (r *jobRepository) Featured(db *gorm.DB, limit int) ([]models.Job, error) {
	var jobs []models.Job
	err := db.Model(&models.Job{}).
		Scopes(visible).
		Preload("Company").
		Order(defaultJobSort).
		Order(jobTieBreak).
		Limit(limit).
		Find(&jobs).Error
	return jobs, err
}

func (r *jobRepository) FindByCompany(db *gorm.DB, companyID string) ([]models.Job, error) {
	var jobs []models.Job
	err := db.Where("company_id = ?", companyID).Order("posted_at DESC").Find(&jobs).Error
	return jobs, err
}

func (r *jobRepository) FindByCompanyAndTitle(db *gorm.DB, companyID, title string) (*models.Job, error) {
	var job models.Job
	if err := db.Where("company_id = ? AND title = ?", companyID, title).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) AdminList(db *gorm.DB, filter AdminJobFilter) ([]models.Job, int64, error) {
	query := db.Model(&models.Job{}).Joins("JOIN companies ON companies.id = jobs.company_id")
	if filter.Active != nil {
		query = query.Where("jobs.is_active = ?", *filter.Active)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(jobs.title) LIKE ? OR LOWER(companies.company_name) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []models.Job
	err := query.Preload("Company").
		Order(defaultJobSort).
		Order(jobTieBreak).
		Scopes(paginate(filter.Page)).
		Find(&jobs).Error
	return jobs, total, err
}

func (r *jobRepository) Recent(db *gorm.DB, limit int) ([]models.Job, error) {
	var jobs []models.Job
	err := db.Preload("Company").Order("posted_at DESC").Limit(limit).Find(&jobs).Error
	return jobs, err
}

// IncrementViews увеличивает счётчик на единицу выражением в SQL, без read-modify-write
func (r *jobRepository) IncrementViews(db *gorm.DB, id string) error {
	result := db.Model(&models.Job{}).Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *jobRepository) DeactivateExpired(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Model(&models.Job{}).
		Where("is_active = ? AND deadline IS NOT NULL AND deadline < ?", true, now).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}

func (r *jobRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Job{}).Count(&count).Error
	return count, err
}

func (r *jobRepository) CountActive(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Job{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

func (r *jobRepository) CountByCompany(db *gorm.DB, companyID string, activeOnly bool) (int64, error) {
	var count int64
	query := db.Model(&models.Job{}).Where("company_id = ?", companyID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Count(&count).Error
	return count, err
}
