package services

import (
	"mime/multipart"
	"strings"

	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/resume"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/internal/storage"
	"jobportal_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type SeekerService interface {
	GetProfile(db *gorm.DB, seeker *models.JobSeeker) (*dto.JobSeekerProfile, error)
	UpdateProfile(db *gorm.DB, seeker *models.JobSeeker, req *dto.UpdateJobSeekerProfileRequest) (*dto.JobSeekerProfile, error)
	// UploadResume сохраняет PDF/DOCX в хранилище и извлекает текст для поиска
	UploadResume(db *gorm.DB, seeker *models.JobSeeker, file *multipart.FileHeader) (*dto.JobSeekerProfile, error)
}

type seekerService struct {
	seekerRepo    repositories.JobSeekerRepository
	files         *FileService
	maxResumeSize int64
}

func NewSeekerService(seekerRepo repositories.JobSeekerRepository, files *FileService, maxResumeSize int64) SeekerService {
	if maxResumeSize <= 0 {
		maxResumeSize = MaxApplicationResumeSize
	}
	return &seekerService{seekerRepo: seekerRepo, files: files, maxResumeSize: maxResumeSize}
}

func (s *seekerService) GetProfile(db *gorm.DB, seeker *models.JobSeeker) (*dto.JobSeekerProfile, error) {
	profile := dto.NewJobSeekerProfile(seeker, s.files.URL(ctxFrom(db), seeker.ResumeKey))
	return &profile, nil
}

func (s *seekerService) UpdateProfile(db *gorm.DB, seeker *models.JobSeeker, req *dto.UpdateJobSeekerProfileRequest) (*dto.JobSeekerProfile, error) {
	dob, err := parseDate("date_of_birth", req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	seeker.FullName = strings.TrimSpace(req.FullName)
	seeker.Email = req.Email
	seeker.Phone = req.Phone
	seeker.Address = req.Address
	seeker.City = req.City
	seeker.Skills = req.Skills
	seeker.Education = req.Education
	seeker.Experience = req.Experience
	seeker.DateOfBirth = dob

	if err := s.seekerRepo.UpdateProfile(db, seeker); err != nil {
		return nil, apperrors.InternalError(err)
	}
	logger.CtxInfo(ctxFrom(db), "job seeker profile updated", "job_seeker_id", seeker.ID)
	return s.GetProfile(db, seeker)
}

func (s *seekerService) UploadResume(db *gorm.DB, seeker *models.JobSeeker, fh *multipart.FileHeader) (*dto.JobSeekerProfile, error) {
	ctx := ctxFrom(db)

	file, err := readUpload(fh, s.maxResumeSize, resume.MIMEPDF, resume.MIMEDOCX)
	if err != nil {
		return nil, err
	}

	filename := "resume" + resume.Extension(file.MIME)
	key, err := s.files.Save(ctx, storage.PrefixResumes, filename, file.MIME, file.Data)
	if err != nil {
		return nil, err
	}

	text, err := resume.ExtractText(file.MIME, file.Data)
	if err != nil {
		logger.CtxWarn(ctx, "resume text extraction failed", "job_seeker_id", seeker.ID, "error", err)
		text = ""
	}

	if err := s.seekerRepo.UpdateResume(db, seeker.ID, key, text); err != nil {
		s.files.Remove(ctx, key)
		return nil, apperrors.InternalError(err)
	}
	seeker.ResumeKey = key
	seeker.ResumeText = text

	// старое резюме могло быть приложено к откликам, поэтому оно не удаляется
	logger.CtxInfo(ctx, "resume uploaded", "job_seeker_id", seeker.ID, "key", key, "text_length", len(text))
	return s.GetProfile(db, seeker)
}
