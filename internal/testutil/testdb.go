package testutil

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"jobportal_backend/internal/database"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var seq atomic.Int64

// Unique возвращает уникальную строку с префиксом (username, регистрационный номер)
func Unique(prefix string) string {
	return fmt.Sprintf("%s_%d_%d", prefix, time.Now().UnixNano(), seq.Add(1))
}

// NewTestDB создаёт чистую SQLite-базу во временной директории теста и мигрирует схему
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger.Init("test")

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Не удалось открыть тестовую БД: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Не удалось выполнить AutoMigrate: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// CreateUser создаёт пользователя; пароль передаётся в открытом виде и хешируется
func CreateUser(t *testing.T, db *gorm.DB, username, password string, role models.UserRole) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Не удалось хешировать пароль: %v", err)
	}
	user := &models.User{
		Username:     username,
		Email:        strings.ToLower(username) + "@test.local",
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Не удалось создать пользователя %s: %v", username, err)
	}
	return user
}

// CreateCompany создаёт пользователя-компанию с профилем в нужном статусе
func CreateCompany(t *testing.T, db *gorm.DB, status models.CompanyStatus) (*models.User, *models.Company) {
	t.Helper()
	user := CreateUser(t, db, Unique("company"), "company123", models.UserRoleCompany)
	company := &models.Company{
		UserID:             user.ID,
		CompanyName:        "Company " + user.Username,
		RegistrationNumber: Unique("REG"),
		Email:              user.Email,
		Phone:              "+44 20 0000 0000",
		City:               "London",
		Description:        "Test company",
		Status:             status,
		SubmittedAt:        time.Now(),
	}
	if status == models.CompanyStatusApproved {
		company.Approve(time.Now())
	}
	if err := db.Create(company).Error; err != nil {
		t.Fatalf("Не удалось создать компанию: %v", err)
	}
	return user, company
}

// CreateSeeker создаёт соискателя с профилем
func CreateSeeker(t *testing.T, db *gorm.DB) (*models.User, *models.JobSeeker) {
	t.Helper()
	user := CreateUser(t, db, Unique("seeker"), "jobseeker123", models.UserRoleJobSeeker)
	seeker := &models.JobSeeker{
		UserID:   user.ID,
		FullName: "Seeker " + user.Username,
		Email:    user.Email,
		City:     "London",
	}
	if err := db.Create(seeker).Error; err != nil {
		t.Fatalf("Не удалось создать соискателя: %v", err)
	}
	return user, seeker
}

// JobOption меняет вакансию перед сохранением
type JobOption func(*models.Job)

func Inactive() JobOption {
	return func(j *models.Job) { j.IsActive = false }
}

func WithTitle(title string) JobOption {
	return func(j *models.Job) { j.Title = title }
}

func WithCity(city string) JobOption {
	return func(j *models.Job) { j.City = city; j.Location = city }
}

func WithDeadline(deadline time.Time) JobOption {
	return func(j *models.Job) { j.Deadline = &deadline }
}

// CreateJob создаёт активную вакансию компании
func CreateJob(t *testing.T, db *gorm.DB, companyID string, opts ...JobOption) *models.Job {
	t.Helper()
	job := &models.Job{
		CompanyID:          companyID,
		Title:              "Security Officer",
		Description:        "Patrol and monitor premises",
		Requirements:       "SIA licence",
		Location:           "London",
		City:               "London",
		JobType:            models.JobTypeFullTime,
		Category:           "Security",
		ExperienceRequired: models.Experience1To3,
		Vacancies:          1,
		IsActive:           true,
		PostedAt:           time.Now(),
	}
	for _, opt := range opts {
		opt(job)
	}
	if err := db.Create(job).Error; err != nil {
		t.Fatalf("Не удалось создать вакансию: %v", err)
	}
	return job
}

// CoverLetter возвращает сопроводительное письмо нужной длины
func CoverLetter(n int) string {
	return strings.Repeat("a", n)
}
