package repositories

import (
	"errors"

	"jobportal_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCompanyNotFound          = errors.New("company not found")
	ErrRegistrationNumberExists = errors.New("registration number already exists")
)

// CompanyFilter - фильтры списка компаний в админке
type CompanyFilter struct {
	Status models.CompanyStatus
	Search string // по названию или email
	Page
}

type CompanyRepository interface {
	Create(db *gorm.DB, company *models.Company) error
	FindByID(db *gorm.DB, id string) (*models.Company, error)
	FindByUserID(db *gorm.DB, userID string) (*models.Company, error)
	FindByRegistrationNumber(db *gorm.DB, number string) (*models.Company, error)
	RegistrationNumberExists(db *gorm.DB, number string) (bool, error)
	// UpdateProfile пишет только поля профиля, статус модерации не трогает
	UpdateProfile(db *gorm.DB, company *models.Company) error
	UpdateLogo(db *gorm.DB, id, logoKey string) error
	// UpdateStatus пишет только решение администратора
	UpdateStatus(db *gorm.DB, company *models.Company) error
	List(db *gorm.DB, filter CompanyFilter) ([]models.Company, int64, error)
	Recent(db *gorm.DB, limit int) ([]models.Company, error)
	CountByStatus(db *gorm.DB, status models.CompanyStatus) (int64, error)
	Count(db *gorm.DB) (int64, error)
}

type companyRepository struct{}

func NewCompanyRepository() CompanyRepository {
	return &companyRepository{}
}

func (r *companyRepository) Create(db *gorm.DB, company *models.Company) error {
	if err := db.Create(company).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrRegistrationNumberExists
		}
		return err
	}
	return nil
}

func (r *companyRepository) FindByID(db *gorm.DB, id string) (*models.Company, error) {
	var company models.Company
	if err := db.Preload("User").Where("id = ?", id).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) FindByUserID(db *gorm.DB, userID string) (*models.Company, error) {
	var company models.Company
	if err := db.Where("user_id = ?", userID).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) FindByRegistrationNumber(db *gorm.DB, number string) (*models.Company, error) {
	var company models.Company
	if err := db.Where("registration_number = ?", number).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) RegistrationNumberExists(db *gorm.DB, number string) (bool, error) {
	var count int64
	err := db.Model(&models.Company{}).Where("registration_number = ?", number).Count(&count).Error
	return count > 0, err
}

var companyProfileColumns = []string{
	"company_name", "email", "phone", "address", "city", "state", "website", "description",
}

func (r *companyRepository) UpdateProfile(db *gorm.DB, company *models.Company) error {
	return r.updateColumns(db, company, companyProfileColumns...)
}

func (r *companyRepository) UpdateLogo(db *gorm.DB, id, logoKey string) error {
	return r.updateColumns(db, &models.Company{BaseModel: models.BaseModel{ID: id}, LogoKey: logoKey}, "logo_key")
}

func (r *companyRepository) UpdateStatus(db *gorm.DB, company *models.Company) error {
	return r.updateColumns(db, company, "status", "approved_at", "rejection_reason")
}

func (r *companyRepository) updateColumns(db *gorm.DB, company *models.Company, columns ...string) error {
	return db.Model(company).Select(columns).Updates(company).Error
}

func (r *companyRepository) List(db *gorm.DB, filter CompanyFilter) ([]models.Company, int64, error) {
	query := db.Model(&models.Company{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(company_name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var companies []models.Company
	err := query.Order("submitted_at DESC").Scopes(paginate(filter.Page)).Find(&companies).Error
	return companies, total, err
}

func (r *companyRepository) Recent(db *gorm.DB, limit int) ([]models.Company, error) {
	var companies []models.Company
	err := db.Order("submitted_at DESC").Limit(limit).Find(&companies).Error
	return companies, err
}

func (r *companyRepository) CountByStatus(db *gorm.DB, status models.CompanyStatus) (int64, error) {
	var count int64
	err := db.Model(&models.Company{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *companyRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Company{}).Count(&count).Error
	return count, err
}
