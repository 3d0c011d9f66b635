package repositories

import (
	"errors"

	"jobportal_backend/internal/models"

	"gorm.io/gorm"
)

var ErrSavedJobNotFound = errors.New("saved job not found")

type SavedJobRepository interface {
	Find(db *gorm.DB, userID, jobID string) (*models.SavedJob, error)
	Create(db *gorm.DB, saved *models.SavedJob) error
	Delete(db *gorm.DB, userID, jobID string) error
	ListByUser(db *gorm.DB, userID string) ([]models.SavedJob, error)
	SavedJobIDs(db *gorm.DB, userID string, jobIDs []string) (map[string]bool, error)
	DeleteByJob(db *gorm.DB, jobID string) error
}

type savedJobRepository struct{}

func NewSavedJobRepository() SavedJobRepository {
	return &savedJobRepository{}
}

func (r *savedJobRepository) Find(db *gorm.DB, userID, jobID string) (*models.SavedJob, error) {
	var saved models.SavedJob
	if err := db.Where("user_id = ? AND job_id = ?", userID, jobID).First(&saved).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSavedJobNotFound
		}
		return nil, err
	}
	return &saved, nil
}

// Create игнорирует нарушение уникальности (user, job): запись уже есть, результат тот же
func (r *savedJobRepository) Create(db *gorm.DB, saved *models.SavedJob) error {
	if err := db.Create(saved).Error; err != nil && !isUniqueViolation(err) {
		return err
	}
	return nil
}

func (r *savedJobRepository) Delete(db *gorm.DB, userID, jobID string) error {
	return db.Where("user_id = ? AND job_id = ?", userID, jobID).Delete(&models.SavedJob{}).Error
}

func (r *savedJobRepository) ListByUser(db *gorm.DB, userID string) ([]models.SavedJob, error) {
	var saved []models.SavedJob
	err := db.Preload("Job.Company").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&saved).Error
	return saved, err
}

func (r *savedJobRepository) SavedJobIDs(db *gorm.DB, userID string, jobIDs []string) (map[string]bool, error) {
	result := make(map[string]bool, len(jobIDs))
	if len(jobIDs) == 0 {
		return result, nil
	}
	var ids []string
	err := db.Model(&models.SavedJob{}).
		Where("user_id = ? AND job_id IN ?", userID, jobIDs).
		Pluck("job_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

func (r *savedJobRepository) DeleteByJob(db *gorm.DB, jobID string) error {
	return db.Where("job_id = ?", jobID).Delete(&models.SavedJob{}).Error
}
