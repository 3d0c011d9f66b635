package seed

import (
	"testing"

	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeeder_RunIsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)

	report, err := NewSeeder().Run(db)
	require.NoError(t, err)
	assert.Equal(t, 7, report.Created["users"])
	assert.Equal(t, 3, report.Created["companies"])
	assert.Equal(t, 6, report.Created["jobs"])
	assert.Equal(t, 3, report.Created["seekers"])
	assert.Equal(t, 6, report.Created["applications"])
	assert.Equal(t, 2, report.Created["notifications"])

	// Повторный запуск ничего не создаёт
	second, err := NewSeeder().Run(db)
	require.NoError(t, err)
	assert.Empty(t, second.Created)
	assert.Equal(t, 6, second.Skipped["jobs"])
	assert.Equal(t, 6, second.Skipped["applications"])

	var users, jobs, applications int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Job{}).Count(&jobs).Error)
	require.NoError(t, db.Model(&models.Application{}).Count(&applications).Error)
	assert.Equal(t, int64(7), users)
	assert.Equal(t, int64(6), jobs)
	assert.Equal(t, int64(6), applications)
}

func TestSeeder_DataMatchesDemoAccounts(t *testing.T) {
	db := testutil.NewTestDB(t)
	_, err := NewSeeder().Run(db)
	require.NoError(t, err)

	var admin models.User
	require.NoError(t, db.First(&admin, "username = ?", AdminUsername).Error)
	assert.Equal(t, models.UserRoleAdmin, admin.Role)
	assert.True(t, auth.CheckPasswordHash(AdminPassword, admin.PasswordHash))

	// Третья компания ждёт одобрения и не получает вакансий
	var pending models.Company
	require.NoError(t, db.First(&pending, "registration_number = ?", "REG003").Error)
	assert.Equal(t, models.CompanyStatusPending, pending.Status)
	var pendingJobs int64
	require.NoError(t, db.Model(&models.Job{}).Where("company_id = ?", pending.ID).Count(&pendingJobs).Error)
	assert.Zero(t, pendingJobs)

	// Вакансии берут город компании
	var approved models.Company
	require.NoError(t, db.First(&approved, "registration_number = ?", "REG002").Error)
	var job models.Job
	require.NoError(t, db.First(&job, "company_id = ?", approved.ID).Error)
	assert.Equal(t, "Manchester", job.City)
	require.NotNil(t, job.Deadline)

	// Сопроводительные письма проходят проверку длины
	var applications []models.Application
	require.NoError(t, db.Find(&applications).Error)
	for _, a := range applications {
		assert.GreaterOrEqual(t, len(a.CoverLetter), 100)
	}
}
