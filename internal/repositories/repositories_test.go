package repositories

import (
	"errors"
	"testing"
	"time"

	"jobportal_backend/internal/models"
	"jobportal_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPage_Defaults(t *testing.T) {
	assert.Equal(t, 0, Page{}.Offset())
	assert.Equal(t, 20, Page{}.Limit())
	assert.Equal(t, 20, Page{Page: 2, PageSize: 10}.Offset())
	assert.Equal(t, 10, Page{Page: -3, PageSize: 10}.Limit())
}

func TestJobSortOrder(t *testing.T) {
	assert.Equal(t, "jobs.title ASC", JobSortOrder("title"))
	assert.Equal(t, "jobs.posted_at DESC", JobSortOrder("-posted_date"))
	// Неизвестный ключ не попадает в SQL
	assert.Equal(t, defaultJobSort, JobSortOrder("id; DROP TABLE jobs"))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, isUniqueViolation(nil))
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueViolation(errors.New(`pq: duplicate key value violates unique constraint "idx"`)))
	assert.True(t, isUniqueViolation(errors.New("Error 1062: Duplicate entry 'x' for key 'idx'")))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
}

func TestJobRepository_Visibility(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewJobRepository()

	_, approved := testutil.CreateCompany(t, db, models.CompanyStatusApproved)
	_, pending := testutil.CreateCompany(t, db, models.CompanyStatusPending)

	open := testutil.CreateJob(t, db, approved.ID, testutil.WithTitle("Go Developer"))
	closed := testutil.CreateJob(t, db, approved.ID, testutil.Inactive())
	hidden := testutil.CreateJob(t, db, pending.ID)

	job, err := repo.FindVisibleByID(db, open.ID)
	require.NoError(t, err)
	require.NotNil(t, job.Company)
	assert.Equal(t, approved.ID, job.Company.ID)

	_, err = repo.FindVisibleByID(db, closed.ID)
	assert.ErrorIs(t, err, ErrJobNotFound)
	_, err = repo.FindVisibleByID(db, hidden.ID)
	assert.ErrorIs(t, err, ErrJobNotFound)

	jobs, total, err := repo.SearchVisible(db, JobFilter{Keyword: "GO DEV"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, jobs, 1)
	assert.Equal(t, open.ID, jobs[0].ID)

	// Владелец видит и закрытую вакансию, чужая компания - нет
	_, err = repo.FindOwned(db, approved.ID, closed.ID)
	assert.NoError(t, err)
	_, err = repo.FindOwned(db, pending.ID, closed.ID)
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestJobRepository_DeactivateExpired(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewJobRepository()
	_, company := testutil.CreateCompany(t, db, models.CompanyStatusApproved)

	now := time.Now()
	expired := testutil.CreateJob(t, db, company.ID, testutil.WithDeadline(now.Add(-time.Hour)))
	testutil.CreateJob(t, db, company.ID, testutil.WithDeadline(now.Add(time.Hour)))
	testutil.CreateJob(t, db, company.ID)

	n, err := repo.DeactivateExpired(db, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	job, err := repo.FindByID(db, expired.ID)
	require.NoError(t, err)
	assert.False(t, job.IsActive)

	active, err := repo.CountByCompany(db, company.ID, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), active)
}

func TestJobRepository_UpdateKeepsViews(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewJobRepository()
	_, company := testutil.CreateCompany(t, db, models.CompanyStatusApproved)
	job := testutil.CreateJob(t, db, company.ID)

	require.NoError(t, repo.IncrementViews(db, job.ID))
	require.NoError(t, repo.IncrementViews(db, job.ID))

	job.Title = "Night Supervisor"
	require.NoError(t, repo.Update(db, job))

	stored, err := repo.FindByID(db, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Night Supervisor", stored.Title)
	assert.Equal(t, int64(2), stored.ViewsCount)
}

func TestApplicationRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewApplicationRepository()

	_, company := testutil.CreateCompany(t, db, models.CompanyStatusApproved)
	_, other := testutil.CreateCompany(t, db, models.CompanyStatusApproved)
	_, seeker := testutil.CreateSeeker(t, db)
	_, second := testutil.CreateSeeker(t, db)

	jobA := testutil.CreateJob(t, db, company.ID)
	jobB := testutil.CreateJob(t, db, company.ID)
	foreign := testutil.CreateJob(t, db, other.ID)

	apply := func(jobID, applicantID string) *models.Application {
		a := &models.Application{
			JobID:       jobID,
			ApplicantID: applicantID,
			CoverLetter: testutil.CoverLetter(120),
			Status:      models.ApplicationStatusSubmitted,
			AppliedAt:   time.Now(),
		}
		require.NoError(t, repo.Create(db, a))
		return a
	}

	first := apply(jobA.ID, seeker.ID)
	apply(jobA.ID, second.ID)
	apply(jobB.ID, seeker.ID)
	apply(foreign.ID, seeker.ID)

	t.Run("повторный отклик", func(t *testing.T) {
		err := repo.Create(db, &models.Application{
			JobID:       jobA.ID,
			ApplicantID: seeker.ID,
			CoverLetter: testutil.CoverLetter(120),
			AppliedAt:   time.Now(),
		})
		assert.ErrorIs(t, err, ErrDuplicateApplication)
	})

	t.Run("подсчёт по вакансиям", func(t *testing.T) {
		counts, err := repo.CountByJobs(db, []string{jobA.ID, jobB.ID, foreign.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(2), counts[jobA.ID])
		assert.Equal(t, int64(1), counts[jobB.ID])
		assert.Equal(t, int64(1), counts[foreign.ID])

		empty, err := repo.CountByJobs(db, nil)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("список компании", func(t *testing.T) {
		list, total, err := repo.ListForCompany(db, company.ID, ApplicationFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, list, 3)
		for _, a := range list {
			require.NotNil(t, a.Job)
			assert.Equal(t, company.ID, a.Job.CompanyID)
		}

		byJob, total, err := repo.ListForCompany(db, company.ID, ApplicationFilter{JobID: jobB.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, jobB.ID, byJob[0].JobID)

		total, err = repo.CountForCompany(db, other.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("смена статуса", func(t *testing.T) {
		notes := "Call on Monday"
		require.NoError(t, repo.UpdateStatus(db, first.ID, models.ApplicationStatusShortlisted, &notes))

		got, err := repo.FindForCompany(db, company.ID, first.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ApplicationStatusShortlisted, got.Status)
		assert.Equal(t, notes, got.Notes)

		_, err = repo.FindForCompany(db, other.ID, first.ID)
		assert.ErrorIs(t, err, ErrApplicationNotFound)

		err = repo.UpdateStatus(db, "missing-id", models.ApplicationStatusRejected, nil)
		assert.ErrorIs(t, err, ErrApplicationNotFound)
	})

	t.Run("отметки откликов", func(t *testing.T) {
		applied, err := repo.AppliedJobIDs(db, second.ID, []string{jobA.ID, jobB.ID})
		require.NoError(t, err)
		assert.True(t, applied[jobA.ID])
		assert.False(t, applied[jobB.ID])
	})

	t.Run("удаление вместе с вакансией", func(t *testing.T) {
		require.NoError(t, repo.DeleteByJob(db, jobA.ID))
		exists, err := repo.Exists(db, jobA.ID, seeker.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestSavedJobRepository_CreateIsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSavedJobRepository()

	seekerUser, _ := testutil.CreateSeeker(t, db)
	_, company := testutil.CreateCompany(t, db, models.CompanyStatusApproved)
	job := testutil.CreateJob(t, db, company.ID)

	require.NoError(t, repo.Create(db, &models.SavedJob{UserID: seekerUser.ID, JobID: job.ID}))
	require.NoError(t, repo.Create(db, &models.SavedJob{UserID: seekerUser.ID, JobID: job.ID}))

	saved, err := repo.ListByUser(db, seekerUser.ID)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	require.NotNil(t, saved[0].Job)
	require.NotNil(t, saved[0].Job.Company)

	require.NoError(t, repo.Delete(db, seekerUser.ID, job.ID))
	_, err = repo.Find(db, seekerUser.ID, job.ID)
	assert.ErrorIs(t, err, ErrSavedJobNotFound)
}
