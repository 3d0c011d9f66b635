package repositories

import (
	"errors"

	"jobportal_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobSeekerNotFound = errors.New("job seeker not found")

type JobSeekerRepository interface {
	Create(db *gorm.DB, seeker *models.JobSeeker) error
	FindByID(db *gorm.DB, id string) (*models.JobSeeker, error)
	FindByUserID(db *gorm.DB, userID string) (*models.JobSeeker, error)
	// UpdateProfile пишет только анкетные поля, резюме не трогает
	UpdateProfile(db *gorm.DB, seeker *models.JobSeeker) error
	UpdateResume(db *gorm.DB, id, resumeKey, resumeText string) error
	Count(db *gorm.DB) (int64, error)
}

type jobSeekerRepository struct{}

func NewJobSeekerRepository() JobSeekerRepository {
	return &jobSeekerRepository{}
}

func (r *jobSeekerRepository) Create(db *gorm.DB, seeker *models.JobSeeker) error {
	return db.Create(seeker).Error
}

func (r *jobSeekerRepository) FindByID(db *gorm.DB, id string) (*models.JobSeeker, error) {
	var seeker models.JobSeeker
	if err := db.Preload("User").Where("id = ?", id).First(&seeker).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobSeekerNotFound
		}
		return nil, err
	}
	return &seeker, nil
}

func (r *jobSeekerRepository) FindByUserID(db *gorm.DB, userID string) (*models.JobSeeker, error) {
	var seeker models.JobSeeker
	if err := db.Where("user_id = ?", userID).First(&seeker).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobSeekerNotFound
		}
		return nil, err
	}
	return &seeker, nil
}

var seekerProfileColumns = []string{
	"full_name", "email", "phone", "address", "city", "skills", "education", "experience", "date_of_birth",
}

func (r *jobSeekerRepository) UpdateProfile(db *gorm.DB, seeker *models.JobSeeker) error {
	return r.updateColumns(db, seeker, seekerProfileColumns...)
}

func (r *jobSeekerRepository) UpdateResume(db *gorm.DB, id, resumeKey, resumeText string) error {
	seeker := &models.JobSeeker{BaseModel: models.BaseModel{ID: id}, ResumeKey: resumeKey, ResumeText: resumeText}
	return r.updateColumns(db, seeker, "resume_key", "resume_text")
}

func (r *jobSeekerRepository) updateColumns(db *gorm.DB, seeker *models.JobSeeker, columns ...string) error {
	return db.Model(seeker).Select(columns).Updates(seeker).Error
}

func (r *jobSeekerRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.JobSeeker{}).Count(&count).Error
	return count, err
}
