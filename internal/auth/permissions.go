package auth

import (
	"jobportal_backend/internal/models"
	"jobportal_backend/pkg/apperrors"
)

// LandingFor возвращает страницу, на которую клиент отправляет пользователя после входа
func LandingFor(role models.UserRole) string {
	switch role {
	case models.UserRoleAdmin:
		return apperrors.RedirectAdminDashboard
	case models.UserRoleCompany:
		return apperrors.RedirectCompanyDashboard
	default:
		return apperrors.RedirectHome
	}
}
