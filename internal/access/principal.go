// Package access описывает вызывающего пользователя запроса и проверки доступа к операциям.
//
// Principal - закрытое объединение трёх вариантов: администратор, компания
// (пользователь + профиль компании) и соискатель (пользователь + профиль).
// Гарды - чистые функции: не пишут в БД и не зависят от HTTP.
package access

import (
	"jobportal_backend/internal/models"
)

type Principal interface {
	Account() *models.User
	Role() models.UserRole
	isPrincipal()
}

type AdminPrincipal struct {
	User *models.User
}

// CompanyPrincipal - пользователь-компания. Company может быть nil, если профиль не создан.
type CompanyPrincipal struct {
	User    *models.User
	Company *models.Company
}

// SeekerPrincipal - соискатель. Seeker может быть nil, если профиль не создан.
type SeekerPrincipal struct {
	User   *models.User
	Seeker *models.JobSeeker
}

func (p *AdminPrincipal) Account() *models.User   { return p.User }
func (p *CompanyPrincipal) Account() *models.User { return p.User }
func (p *SeekerPrincipal) Account() *models.User  { return p.User }

func (p *AdminPrincipal) Role() models.UserRole   { return models.UserRoleAdmin }
func (p *CompanyPrincipal) Role() models.UserRole { return models.UserRoleCompany }
func (p *SeekerPrincipal) Role() models.UserRole  { return models.UserRoleJobSeeker }

func (*AdminPrincipal) isPrincipal()   {}
func (*CompanyPrincipal) isPrincipal() {}
func (*SeekerPrincipal) isPrincipal()  {}

// FromUser строит Principal по роли пользователя. Профили берутся из
// предзагруженных user.Company / user.JobSeeker. Неизвестная роль даёт nil.
func FromUser(user *models.User) Principal {
	if user == nil {
		return nil
	}
	switch user.Role {
	case models.UserRoleAdmin:
		return &AdminPrincipal{User: user}
	case models.UserRoleCompany:
		return &CompanyPrincipal{User: user, Company: user.Company}
	case models.UserRoleJobSeeker:
		return &SeekerPrincipal{User: user, Seeker: user.JobSeeker}
	}
	return nil
}
