package app

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jobportal_backend/internal/config"
	"jobportal_backend/internal/email"
	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/storage"
	"jobportal_backend/internal/testutil"
	"jobportal_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServer struct {
	Server     *httptest.Server
	DB         *gorm.DB
	Dispatcher *workers.RecordingDispatcher
}

// newTestServer поднимает весь роутер поверх SQLite и локального хранилища
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.Server.CORSOrigins = []string{"*"}
	cfg.JWT.Secret = "integration-secret"
	cfg.JWT.TTL = 60
	cfg.JWT.RefreshTTLHours = 24
	cfg.Upload.MaxResumeSize = 5 * 1024 * 1024
	cfg.Upload.MaxLogoSize = 2 * 1024 * 1024
	cfg.Jobs.PageSize = 20
	cfg.Jobs.FeaturedCount = 6
	cfg.RateLimit.AuthAttempts = 50
	cfg.RateLimit.WindowSeconds = 60

	db := testutil.NewTestDB(t)
	store, err := storage.NewLocalStorage(storage.Config{BasePath: t.TempDir(), BaseURL: "/api/v1/files"})
	require.NoError(t, err)

	dispatcher := &workers.RecordingDispatcher{}
	router := SetupRouter(cfg, db, store, &email.MemoryProvider{}, dispatcher, middleware.NewMemoryLimiter())

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testServer{Server: server, DB: db, Dispatcher: dispatcher}
}

// SendRequest отправляет JSON-запрос и возвращает ответ с телом
func (ts *testServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return ts.do(t, req)
}

// SendMultipart отправляет форму с одним файлом
func (ts *testServer) SendMultipart(t *testing.T, path, token string, fields map[string]string, fileField, filename string, content []byte) (*http.Response, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return ts.do(t, req)
}

func (ts *testServer) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(data)
}

func decode(t *testing.T, body string, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(body), out), body)
}

type authBody struct {
	AccessToken string `json:"access_token"`
	Redirect    string `json:"redirect"`
	User        struct {
		ID string `json:"id"`
	} `json:"user"`
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	res, body := ts.SendRequest(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "ok")
}

func TestHiringFlow(t *testing.T) {
	ts := newTestServer(t)
	testutil.CreateUser(t, ts.DB, "root_admin", "AdminPass1", models.UserRoleAdmin)

	// 1. Регистрация компании: профиль ждёт одобрения
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register/company", "", map[string]interface{}{
		"username":            "acme_hr",
		"password":            "Secret123",
		"password_confirm":    "Secret123",
		"company_name":        "Acme Security",
		"registration_number": "ACME-001",
		"email":               "hr@acme.example",
		"phone":               "+441234567890",
		"address":             "1 High Street",
		"city":                "London",
		"state":               "Greater London",
		"description":         "Manned guarding and patrols",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	var company authBody
	decode(t, body, &company)

	var profile struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/company/profile", company.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	decode(t, body, &profile)
	assert.Equal(t, string(models.CompanyStatusPending), profile.Status)

	jobBody := map[string]interface{}{
		"title":               "Night Security Officer",
		"description":         "Overnight patrols of the warehouse",
		"requirements":        "SIA licence",
		"responsibilities":    "Patrols, CCTV, incident reports",
		"location":            "Docklands",
		"city":                "London",
		"job_type":            "full-time",
		"category":            "Security",
		"experience_required": "1-3",
		"salary_min":          25000,
		"salary_max":          30000,
	}

	// 2. До одобрения вакансии недоступны
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/company/jobs", company.AccessToken, jobBody)
	require.Equal(t, http.StatusForbidden, res.StatusCode, body)
	assert.Contains(t, body, "company_dashboard")
	var pendingJobs int64
	require.NoError(t, ts.DB.Model(&models.Job{}).Where("company_id = ?", profile.ID).Count(&pendingJobs).Error)
	assert.Zero(t, pendingJobs)

	// 3. Администратор одобряет компанию
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "root_admin", "password": "AdminPass1",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var admin authBody
	decode(t, body, &admin)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/admin/companies/"+profile.ID+"/approve", admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	// 4. Тот же токен компании теперь проходит проверку одобрения
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/company/jobs", company.AccessToken, jobBody)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	var job struct {
		ID string `json:"id"`
	}
	decode(t, body, &job)

	// 5. Вакансия видна без авторизации
	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/jobs?q=night&location=london", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var list struct {
		Jobs  []struct{ ID string } `json:"jobs"`
		Total int64                 `json:"total"`
	}
	decode(t, body, &list)
	require.Equal(t, int64(1), list.Total)
	assert.Equal(t, job.ID, list.Jobs[0].ID)

	// 6. Соискатель регистрируется и откликается с PDF-резюме
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register/jobseeker", "", map[string]interface{}{
		"username":         "jane_doe",
		"password":         "Secret123",
		"password_confirm": "Secret123",
		"full_name":        "Jane Doe",
		"email":            "jane@example.com",
		"phone":            "+447700900123",
		"city":             "London",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	var seeker authBody
	decode(t, body, &seeker)

	pdf := []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")
	letter := strings.Repeat("I have five years of experience in static guarding. ", 3)

	// Компания не может откликаться
	res, _ = ts.SendMultipart(t, "/api/v1/jobs/"+job.ID+"/apply", company.AccessToken,
		map[string]string{"cover_letter": letter}, "resume", "cv.pdf", pdf)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, body = ts.SendMultipart(t, "/api/v1/jobs/"+job.ID+"/apply", seeker.AccessToken,
		map[string]string{"cover_letter": letter}, "resume", "cv.pdf", pdf)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	var application struct {
		ID        string `json:"id"`
		Status    string `json:"status"`
		ResumeURL string `json:"resume_url"`
	}
	decode(t, body, &application)
	assert.Equal(t, string(models.ApplicationStatusSubmitted), application.Status)
	require.True(t, strings.HasPrefix(application.ResumeURL, "/api/v1/files/"), application.ResumeURL)

	// Повторный отклик отклоняется
	res, body = ts.SendMultipart(t, "/api/v1/jobs/"+job.ID+"/apply", seeker.AccessToken,
		map[string]string{"cover_letter": letter}, "resume", "cv.pdf", pdf)
	assert.Equal(t, http.StatusConflict, res.StatusCode, body)

	// 7. Компания видит отклик и скачивает резюме
	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/company/applications?job_id="+job.ID, company.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, application.ID)
	assert.Contains(t, body, "Jane Doe")

	res, body = ts.SendRequest(t, http.MethodGet, application.ResumeURL, company.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/pdf", res.Header.Get("Content-Type"))
	assert.Equal(t, string(pdf), body)

	res, _ = ts.SendRequest(t, http.MethodGet, application.ResumeURL, "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	// 8. Смена статуса уведомляет соискателя
	res, body = ts.SendRequest(t, http.MethodPut, "/api/v1/company/applications/"+application.ID+"/status", company.AccessToken,
		map[string]string{"status": "shortlisted", "notes": "Strong candidate"})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "Shortlisted")

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/notifications/unread-count", seeker.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var unread struct {
		Count int64 `json:"count"`
	}
	decode(t, body, &unread)
	assert.Equal(t, int64(1), unread.Count)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/seeker/applications", seeker.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "shortlisted")

	// Письма: компании об отклике, компании об одобрении, соискателю о статусе
	assert.Len(t, ts.Dispatcher.Messages(), 3)
}

func TestRejectCompanyReason(t *testing.T) {
	ts := newTestServer(t)
	testutil.CreateUser(t, ts.DB, "root_admin", "AdminPass1", models.UserRoleAdmin)
	_, company := testutil.CreateCompany(t, ts.DB, models.CompanyStatusPending)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "root_admin", "password": "AdminPass1",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var admin authBody
	decode(t, body, &admin)

	reason := func() string {
		var stored models.Company
		require.NoError(t, ts.DB.First(&stored, "id = ?", company.ID).Error)
		return stored.RejectionReason
	}
	path := "/api/v1/admin/companies/" + company.ID + "/reject"

	// Без тела подставляется стандартная причина
	res, body = ts.SendRequest(t, http.MethodPost, path, admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Equal(t, models.DefaultRejectionReason, reason())

	// Переданная причина хранится как есть, в том числе пустая
	res, body = ts.SendRequest(t, http.MethodPost, path, admin.AccessToken, map[string]string{"reason": ""})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Equal(t, "", reason())

	res, body = ts.SendRequest(t, http.MethodPost, path, admin.AccessToken, map[string]string{"reason": " Unverified address "})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Equal(t, " Unverified address ", reason())
}

func TestErrorEnvelope(t *testing.T) {
	ts := newTestServer(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "nobody", "password": "whatever",
	})
	require.Equal(t, http.StatusUnauthorized, res.StatusCode)

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	decode(t, body, &envelope)
	assert.NotEmpty(t, envelope.Error.Code)
	assert.NotEmpty(t, envelope.Error.Message)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/jobs/does-not-exist", "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode, body)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/admin/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	// Нераспознанный query-параметр отдаёт ошибку валидации
	seekerUser, _ := testutil.CreateSeeker(t, ts.DB)
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": seekerUser.Username, "password": "jobseeker123",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var login authBody
	decode(t, body, &login)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/notifications?unread_only=maybe", login.AccessToken, nil)
	require.Equal(t, http.StatusBadRequest, res.StatusCode, body)
	decode(t, body, &envelope)
	assert.Equal(t, "VALIDATION_FAILED", envelope.Error.Code)
}
