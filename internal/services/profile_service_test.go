package services_test

import (
	"archive/zip"
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/internal/testutil"
	"jobportal_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{B: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// buildDocx собирает минимальный .docx с одним абзацем
func buildDocx(t *testing.T, text string) []byte {
	t.Helper()
	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?>` +
			`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`,
		"_rels/.rels": `<?xml version="1.0" encoding="UTF-8"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
			`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>` +
			text + `</w:t></w:r></w:p></w:body></w:document>`,
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", "word/_rels/document.xml.rels", "word/document.xml"} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(files[name]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// ============================================================================
// Компания
// ============================================================================

func TestCompany_UploadLogoReplacesOld(t *testing.T) {
	h := newHarness(t)
	_, company := testutil.CreateCompany(t, h.db, models.CompanyStatusPending)
	ctx := context.Background()

	first, err := h.company.UploadLogo(h.db, company, fileHeader(t, "logo", "logo.png", encodePNG(t, 1200, 600)))
	require.NoError(t, err)
	require.NotEmpty(t, first.LogoURL)
	firstKey := company.LogoKey
	assert.True(t, strings.HasPrefix(firstKey, "company_logos/"))

	_, err = h.company.UploadLogo(h.db, company, fileHeader(t, "logo", "logo2.png", encodePNG(t, 100, 100)))
	require.NoError(t, err)
	assert.NotEqual(t, firstKey, company.LogoKey)

	// Старый логотип удалён, новый на месте
	exists, err := h.store.Exists(ctx, firstKey)
	require.NoError(t, err)
	assert.False(t, exists)
	exists, err = h.store.Exists(ctx, company.LogoKey)
	require.NoError(t, err)
	assert.True(t, exists)

	assert.Equal(t, company.LogoKey, h.reloadCompany(t, company.ID).LogoKey)
}

func TestCompany_UploadLogoRejectsNonImage(t *testing.T) {
	h := newHarness(t)
	_, company := testutil.CreateCompany(t, h.db, models.CompanyStatusApproved)

	_, err := h.company.UploadLogo(h.db, company, fileHeader(t, "logo", "logo.png", []byte("definitely not an image")))
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)
	assert.Empty(t, h.reloadCompany(t, company.ID).LogoKey)
}

func TestCompany_DashboardAndProfile(t *testing.T) {
	h := newHarness(t)
	_, company := testutil.CreateCompany(t, h.db, models.CompanyStatusPending)
	testutil.CreateJob(t, h.db, company.ID)
	testutil.CreateJob(t, h.db, company.ID, testutil.Inactive())

	// Дашборд доступен до одобрения
	dashboard, err := h.company.Dashboard(h.db, company)
	require.NoError(t, err)
	assert.False(t, dashboard.IsApproved)
	assert.Equal(t, int64(2), dashboard.TotalJobs)
	assert.Equal(t, int64(1), dashboard.ActiveJobs)
	assert.Zero(t, dashboard.TotalApplications)

	regNumber := company.RegistrationNumber
	resp, err := h.company.UpdateProfile(h.db, company, &dto.UpdateCompanyProfileRequest{
		CompanyName: "  Renamed Security  ",
		Email:       "hr@renamed.example",
		Phone:       "+44 20 1111 2222",
		Address:     "2 Low Street",
		City:        "Leeds",
		State:       "England",
		Description: "Updated description",
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Security", resp.CompanyName)

	stored := h.reloadCompany(t, company.ID)
	assert.Equal(t, "Leeds", stored.City)
	assert.Equal(t, regNumber, stored.RegistrationNumber)
	assert.Equal(t, models.CompanyStatusPending, stored.Status)
}

// Компания правит профиль копией, загруженной до решения администратора
func TestCompany_ProfileEditKeepsModerationDecision(t *testing.T) {
	h := newHarness(t)
	_, company := testutil.CreateCompany(t, h.db, models.CompanyStatusPending)

	_, err := h.admin.ApproveCompany(h.db, company.ID)
	require.NoError(t, err)
	require.Equal(t, models.CompanyStatusPending, company.Status)

	_, err = h.company.UpdateProfile(h.db, company, &dto.UpdateCompanyProfileRequest{
		CompanyName: company.CompanyName,
		Email:       company.Email,
		Phone:       company.Phone,
		Address:     company.Address,
		City:        "York",
		State:       company.State,
		Description: company.Description,
	})
	require.NoError(t, err)

	stored := h.reloadCompany(t, company.ID)
	assert.Equal(t, "York", stored.City)
	assert.Equal(t, models.CompanyStatusApproved, stored.Status)
	assert.NotNil(t, stored.ApprovedAt)

	// Загрузка логотипа тоже не откатывает решение
	_, err = h.admin.RejectCompany(h.db, company.ID, "Documents expired")
	require.NoError(t, err)
	_, err = h.company.UploadLogo(h.db, company, fileHeader(t, "logo", "logo.png", encodePNG(t, 64, 64)))
	require.NoError(t, err)

	stored = h.reloadCompany(t, company.ID)
	assert.Equal(t, models.CompanyStatusRejected, stored.Status)
	assert.Equal(t, "Documents expired", stored.RejectionReason)
	assert.Equal(t, company.LogoKey, stored.LogoKey)
}

// ============================================================================
// Соискатель
// ============================================================================

func TestSeeker_UploadResumeExtractsText(t *testing.T) {
	h := newHarness(t)
	_, seeker := testutil.CreateSeeker(t, h.db)

	profile, err := h.seekers.UploadResume(h.db, seeker,
		fileHeader(t, "resume", "cv.docx", buildDocx(t, "Experienced CCTV operator with SIA licence")))
	require.NoError(t, err)
	assert.True(t, profile.HasResume)
	assert.NotEmpty(t, profile.ResumeURL)
	assert.True(t, strings.HasSuffix(seeker.ResumeKey, ".docx"))
	assert.Contains(t, seeker.ResumeText, "CCTV operator")

	var stored models.JobSeeker
	require.NoError(t, h.db.First(&stored, "id = ?", seeker.ID).Error)
	assert.Equal(t, seeker.ResumeKey, stored.ResumeKey)
}

func TestSeeker_UploadResumeRejectsUnsupported(t *testing.T) {
	h := newHarness(t)
	_, seeker := testutil.CreateSeeker(t, h.db)

	_, err := h.seekers.UploadResume(h.db, seeker, fileHeader(t, "resume", "cv.txt", []byte("plain text resume")))
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)
	assert.Empty(t, seeker.ResumeKey)
}

func TestSeeker_ProfileEditKeepsResume(t *testing.T) {
	h := newHarness(t)
	_, seeker := testutil.CreateSeeker(t, h.db)
	stale := *seeker

	_, err := h.seekers.UploadResume(h.db, seeker, fileHeader(t, "resume", "cv.pdf", minimalPDF()))
	require.NoError(t, err)
	require.NotEmpty(t, seeker.ResumeKey)

	_, err = h.seekers.UpdateProfile(h.db, &stale, &dto.UpdateJobSeekerProfileRequest{
		FullName: "Stale Copy",
		Email:    stale.Email,
		City:     "Bath",
	})
	require.NoError(t, err)

	var stored models.JobSeeker
	require.NoError(t, h.db.First(&stored, "id = ?", seeker.ID).Error)
	assert.Equal(t, "Stale Copy", stored.FullName)
	assert.Equal(t, seeker.ResumeKey, stored.ResumeKey)
}

func TestSeeker_UpdateProfile(t *testing.T) {
	h := newHarness(t)
	_, seeker := testutil.CreateSeeker(t, h.db)

	req := &dto.UpdateJobSeekerProfileRequest{
		FullName:    "Jane Updated",
		Email:       "jane@example.com",
		Phone:       "+44 7700 900999",
		City:        "Bristol",
		Skills:      "CCTV, First Aid",
		DateOfBirth: "1988-02-29",
	}
	profile, err := h.seekers.UpdateProfile(h.db, seeker, req)
	require.NoError(t, err)
	assert.Equal(t, "Jane Updated", profile.FullName)
	require.NotNil(t, profile.DateOfBirth)

	req.DateOfBirth = "not-a-date"
	_, err = h.seekers.UpdateProfile(h.db, seeker, req)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

// ============================================================================
// Закладки и уведомления
// ============================================================================

func TestSavedJobs_Toggle(t *testing.T) {
	h := newHarness(t)
	_, company := testutil.CreateCompany(t, h.db, models.CompanyStatusApproved)
	job := testutil.CreateJob(t, h.db, company.ID)
	user, _ := testutil.CreateSeeker(t, h.db)

	resp, err := h.saved.Toggle(h.db, user.ID, job.ID)
	require.NoError(t, err)
	assert.True(t, resp.Saved)

	list, err := h.saved.List(h.db, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, job.ID, list[0].Job.ID)

	resp, err = h.saved.Toggle(h.db, user.ID, job.ID)
	require.NoError(t, err)
	assert.False(t, resp.Saved)

	list, err = h.saved.List(h.db, user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = h.saved.Toggle(h.db, user.ID, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
}

func TestNotifications_ReadFlow(t *testing.T) {
	h := newHarness(t)
	user, _ := testutil.CreateSeeker(t, h.db)
	other, _ := testutil.CreateSeeker(t, h.db)

	for i := 0; i < 3; i++ {
		require.NoError(t, h.db.Create(&models.Notification{
			UserID:  user.ID,
			Type:    models.NotificationTypeApplicationStatus,
			Title:   "Application Status Updated",
			Message: "Your application is now Under Review",
		}).Error)
	}
	foreign := &models.Notification{UserID: other.ID, Type: models.NotificationTypeApproval, Title: "Company Approved"}
	require.NoError(t, h.db.Create(foreign).Error)

	list, err := h.notify.GetUserNotifications(h.db, user.ID, &dto.NotificationListRequest{}, 1, 20)
	require.NoError(t, err)
	require.Len(t, list.Notifications, 3)
	assert.Equal(t, int64(3), list.UnreadCount)

	require.NoError(t, h.notify.MarkAsRead(h.db, user.ID, list.Notifications[0].ID))
	count, err := h.notify.GetUnreadCount(h.db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	unread, err := h.notify.GetUserNotifications(h.db, user.ID, &dto.NotificationListRequest{UnreadOnly: true}, 1, 20)
	require.NoError(t, err)
	assert.Len(t, unread.Notifications, 2)

	// Чужое уведомление не найдено
	assert.ErrorIs(t, h.notify.MarkAsRead(h.db, user.ID, foreign.ID), apperrors.ErrNotificationNotFound)

	updated, err := h.notify.MarkAllAsRead(h.db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	count, err = h.notify.GetUnreadCount(h.db, other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "чужие уведомления не затронуты")
}
