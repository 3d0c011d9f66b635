package services

import (
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type SavedJobService interface {
	// Toggle добавляет вакансию в закладки или убирает её оттуда
	Toggle(db *gorm.DB, userID, jobID string) (*dto.ToggleSavedResponse, error)
	List(db *gorm.DB, userID string) ([]dto.SavedJobResponse, error)
}

type savedJobService struct {
	savedJobRepo repositories.SavedJobRepository
	jobRepo      repositories.JobRepository
}

func NewSavedJobService(savedJobRepo repositories.SavedJobRepository, jobRepo repositories.JobRepository) SavedJobService {
	return &savedJobService{savedJobRepo: savedJobRepo, jobRepo: jobRepo}
}

func (s *savedJobService) Toggle(db *gorm.DB, userID, jobID string) (*dto.ToggleSavedResponse, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		return nil, mapJobError(err)
	}

	_, err = s.savedJobRepo.Find(db, userID, job.ID)
	switch {
	case err == nil:
		if err := s.savedJobRepo.Delete(db, userID, job.ID); err != nil {
			return nil, apperrors.InternalError(err)
		}
		return &dto.ToggleSavedResponse{Saved: false, Message: "Job removed from saved jobs"}, nil
	case apperrors.Is(err, repositories.ErrSavedJobNotFound):
		if err := s.savedJobRepo.Create(db, &models.SavedJob{UserID: userID, JobID: job.ID}); err != nil {
			return nil, apperrors.InternalError(err)
		}
		return &dto.ToggleSavedResponse{Saved: true, Message: "Job saved successfully"}, nil
	default:
		return nil, apperrors.InternalError(err)
	}
}

func (s *savedJobService) List(db *gorm.DB, userID string) ([]dto.SavedJobResponse, error) {
	saved, err := s.savedJobRepo.ListByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	items := make([]dto.SavedJobResponse, 0, len(saved))
	for i := range saved {
		if saved[i].Job == nil {
			continue
		}
		items = append(items, dto.SavedJobResponse{
			ID:      saved[i].ID,
			SavedAt: saved[i].CreatedAt,
			Job:     dto.NewJobResponse(saved[i].Job),
		})
	}
	return items, nil
}
