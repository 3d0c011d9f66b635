package access

import (
	"testing"

	"jobportal_backend/internal/models"
	"jobportal_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func companyUser(status models.CompanyStatus) *models.User {
	return &models.User{
		Role:    models.UserRoleCompany,
		Company: &models.Company{CompanyName: "SecureCorp", Status: status},
	}
}

func TestFromUser(t *testing.T) {
	assert.Nil(t, FromUser(nil))
	assert.IsType(t, &AdminPrincipal{}, FromUser(&models.User{Role: models.UserRoleAdmin}))
	assert.IsType(t, &CompanyPrincipal{}, FromUser(companyUser(models.CompanyStatusPending)))
	assert.IsType(t, &SeekerPrincipal{}, FromUser(&models.User{Role: models.UserRoleJobSeeker}))
	assert.Nil(t, FromUser(&models.User{Role: "robot"}))
}

func TestRequireRole(t *testing.T) {
	assert.ErrorIs(t, RequireRole(nil, models.UserRoleAdmin), apperrors.ErrLoginRequired)

	seeker := FromUser(&models.User{Role: models.UserRoleJobSeeker, JobSeeker: &models.JobSeeker{}})
	assert.ErrorIs(t, RequireRole(seeker, models.UserRoleAdmin), apperrors.ErrWrongRole)
	assert.NoError(t, RequireRole(seeker, models.UserRoleJobSeeker))
}

func TestRequireApprovedCompany(t *testing.T) {
	tests := []struct {
		name      string
		principal Principal
		wantErr   error
		redirect  string
	}{
		{"anonymous", nil, apperrors.ErrLoginRequired, apperrors.RedirectLogin},
		{"wrong role", FromUser(&models.User{Role: models.UserRoleJobSeeker}), apperrors.ErrWrongRole, apperrors.RedirectHome},
		{"no profile", FromUser(&models.User{Role: models.UserRoleCompany}), apperrors.ErrProfileMissing, apperrors.RedirectHome},
		{"pending", FromUser(companyUser(models.CompanyStatusPending)), apperrors.ErrApprovalPending, apperrors.RedirectCompanyDashboard},
		{"rejected", FromUser(companyUser(models.CompanyStatusRejected)), apperrors.ErrApprovalPending, apperrors.RedirectCompanyDashboard},
		{"approved", FromUser(companyUser(models.CompanyStatusApproved)), nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cp, err := RequireApprovedCompany(tt.principal)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, "SecureCorp", cp.Company.CompanyName)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, tt.redirect, appErr.Redirect)
		})
	}
}

func TestRequireCompany_IgnoresApproval(t *testing.T) {
	cp, err := RequireCompany(FromUser(companyUser(models.CompanyStatusPending)))
	require.NoError(t, err)
	assert.Equal(t, models.CompanyStatusPending, cp.Company.Status)
}

func TestRequireSeeker(t *testing.T) {
	_, err := RequireSeeker(FromUser(&models.User{Role: models.UserRoleJobSeeker}))
	assert.ErrorIs(t, err, apperrors.ErrProfileMissing)

	sp, err := RequireSeeker(FromUser(&models.User{Role: models.UserRoleJobSeeker, JobSeeker: &models.JobSeeker{FullName: "John Doe"}}))
	require.NoError(t, err)
	assert.Equal(t, "John Doe", sp.Seeker.FullName)

	_, err = RequireAdmin(FromUser(&models.User{Role: models.UserRoleJobSeeker}))
	assert.ErrorIs(t, err, apperrors.ErrWrongRole)
}
