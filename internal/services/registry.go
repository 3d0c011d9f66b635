package services

import (
	"jobportal_backend/internal/email"
	"jobportal_backend/internal/workers"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService         AuthService
	CompanyService      CompanyService
	JobService          JobService
	ApplicationService  ApplicationService
	SavedJobService     SavedJobService
	SeekerService       SeekerService
	NotificationService NotificationService
	AdminService        AdminService
	FileService         *FileService
	EmailProvider       email.Provider
	Dispatcher          workers.Dispatcher
}
