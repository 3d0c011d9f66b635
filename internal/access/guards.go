package access

import (
	"jobportal_backend/internal/models"
	"jobportal_backend/pkg/apperrors"
)

// RequireRole пропускает только аутентифицированного пользователя с ожидаемой ролью.
func RequireRole(p Principal, role models.UserRole) error {
	if p == nil {
		return apperrors.ErrLoginRequired
	}
	if p.Role() != role {
		return apperrors.ErrWrongRole
	}
	return nil
}

func RequireAdmin(p Principal) (*AdminPrincipal, error) {
	if err := RequireRole(p, models.UserRoleAdmin); err != nil {
		return nil, err
	}
	return p.(*AdminPrincipal), nil
}

// RequireCompany - роль компании и существующий профиль, статус одобрения не важен
func RequireCompany(p Principal) (*CompanyPrincipal, error) {
	if err := RequireRole(p, models.UserRoleCompany); err != nil {
		return nil, err
	}
	cp := p.(*CompanyPrincipal)
	if cp.Company == nil {
		return nil, apperrors.ErrProfileMissing
	}
	return cp, nil
}

// RequireApprovedCompany - роль компании, профиль существует и одобрен администратором.
// Отсутствие профиля и ожидание одобрения - разные ошибки с разными редиректами.
func RequireApprovedCompany(p Principal) (*CompanyPrincipal, error) {
	cp, err := RequireCompany(p)
	if err != nil {
		return nil, err
	}
	if !cp.Company.IsApproved() {
		return nil, apperrors.ErrApprovalPending
	}
	return cp, nil
}

func RequireSeeker(p Principal) (*SeekerPrincipal, error) {
	if err := RequireRole(p, models.UserRoleJobSeeker); err != nil {
		return nil, err
	}
	sp := p.(*SeekerPrincipal)
	if sp.Seeker == nil {
		return nil, apperrors.ErrProfileMissing
	}
	return sp, nil
}
