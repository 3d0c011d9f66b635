package services_test

import (
	"bytes"
	"mime/multipart"
	"testing"
	"time"

	"jobportal_backend/internal/access"
	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/imageprocessor"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/storage"
	"jobportal_backend/internal/testutil"
	"jobportal_backend/internal/workers"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// harness - сервисы поверх SQLite и локального хранилища во временной директории
type harness struct {
	db         *gorm.DB
	store      *storage.LocalStorage
	dispatcher *workers.RecordingDispatcher
	tokens     *auth.TokenManager

	auth         services.AuthService
	company      services.CompanyService
	jobs         services.JobService
	applications services.ApplicationService
	saved        services.SavedJobService
	seekers      services.SeekerService
	notify       services.NotificationService
	admin        services.AdminService
	files        *services.FileService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testutil.NewTestDB(t)

	store, err := storage.NewLocalStorage(storage.Config{BasePath: t.TempDir(), BaseURL: "/api/v1/files"})
	require.NoError(t, err)

	dispatcher := &workers.RecordingDispatcher{}
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	userRepo := repositories.NewUserRepository()
	refreshTokenRepo := repositories.NewRefreshTokenRepository()
	companyRepo := repositories.NewCompanyRepository()
	seekerRepo := repositories.NewJobSeekerRepository()
	jobRepo := repositories.NewJobRepository()
	applicationRepo := repositories.NewApplicationRepository()
	savedJobRepo := repositories.NewSavedJobRepository()
	notificationRepo := repositories.NewNotificationRepository()

	files := services.NewFileService(store)

	return &harness{
		db:         db,
		store:      store,
		dispatcher: dispatcher,
		tokens:     tokens,

		auth:         services.NewAuthService(userRepo, companyRepo, seekerRepo, refreshTokenRepo, tokens, 24*time.Hour, files),
		company:      services.NewCompanyService(companyRepo, jobRepo, applicationRepo, files, imageprocessor.NewProcessor(85), 2<<20),
		jobs:         services.NewJobService(jobRepo, applicationRepo, savedJobRepo, 6),
		applications: services.NewApplicationService(applicationRepo, jobRepo, notificationRepo, files, dispatcher),
		saved:        services.NewSavedJobService(savedJobRepo, jobRepo),
		seekers:      services.NewSeekerService(seekerRepo, files, 5<<20),
		notify:       services.NewNotificationService(notificationRepo),
		admin: services.NewAdminService(
			userRepo, companyRepo, jobRepo, applicationRepo, seekerRepo, notificationRepo, refreshTokenRepo,
			files, dispatcher,
		),
		files: files,
	}
}

// seekerPrincipal загружает соискателя так же, как это делает middleware
func (h *harness) seekerPrincipal(t *testing.T, userID string) *access.SeekerPrincipal {
	t.Helper()
	p, err := h.auth.LoadPrincipal(h.db, userID)
	require.NoError(t, err)
	sp, ok := p.(*access.SeekerPrincipal)
	require.True(t, ok, "ожидался SeekerPrincipal")
	return sp
}

func (h *harness) reloadCompany(t *testing.T, id string) *models.Company {
	t.Helper()
	var company models.Company
	require.NoError(t, h.db.First(&company, "id = ?", id).Error)
	return &company
}

// fileHeader собирает multipart.FileHeader так, как его получает хэндлер
func fileHeader(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	headers := form.File[field]
	require.Len(t, headers, 1)
	return headers[0]
}

// minimalPDF - достаточно для определения типа по сигнатуре
func minimalPDF() []byte {
	return []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")
}
