package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompany_ApproveAndReject(t *testing.T) {
	c := &Company{Status: CompanyStatusPending}
	assert.False(t, c.IsApproved())

	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	c.Approve(now)
	assert.True(t, c.IsApproved())
	assert.Equal(t, now, *c.ApprovedAt)

	// Повторное одобрение обновляет время
	later := now.Add(time.Hour)
	c.Approve(later)
	assert.Equal(t, later, *c.ApprovedAt)

	// Причина сохраняется как передана, даже пустая
	c.Reject("")
	assert.Equal(t, CompanyStatusRejected, c.Status)
	assert.Empty(t, c.RejectionReason)

	c.Reject("  Missing VAT number ")
	assert.Equal(t, "  Missing VAT number ", c.RejectionReason)

	c.Reject("Documents expired")
	assert.Equal(t, "Documents expired", c.RejectionReason)
}

func TestJob_VisibilityAndExpiry(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)

	job := &Job{IsActive: true, Company: &Company{Status: CompanyStatusApproved}}
	assert.True(t, job.PubliclyVisible())
	assert.False(t, job.Expired(now), "без дедлайна вакансия не истекает")

	job.Deadline = &past
	assert.True(t, job.Expired(now))

	job.Company.Status = CompanyStatusPending
	assert.False(t, job.PubliclyVisible())

	job.Company = nil
	assert.False(t, job.PubliclyVisible())
}

func TestStatuses(t *testing.T) {
	assert.True(t, ApplicationStatusInterviewScheduled.IsValid())
	assert.False(t, ApplicationStatus("hired").IsValid())
	assert.Equal(t, "Under Review", ApplicationStatusUnderReview.Label())
	assert.Equal(t, "hired", ApplicationStatus("hired").Label())

	assert.True(t, JobTypeInternship.IsValid())
	assert.False(t, JobType("freelance").IsValid())
	assert.True(t, Experience5.IsValid())
	assert.False(t, UserRole("superuser").IsValid())
	assert.True(t, CompanyStatusRejected.IsValid())
}

func TestRefreshToken_Expired(t *testing.T) {
	now := time.Now()
	token := &RefreshToken{ExpiresAt: now}
	assert.True(t, token.Expired(now), "граница считается истёкшей")
	assert.False(t, token.Expired(now.Add(-time.Second)))
}
