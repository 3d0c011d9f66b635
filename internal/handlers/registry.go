package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	JobHandler          *JobHandler
	SeekerHandler       *SeekerHandler
	CompanyHandler      *CompanyHandler
	AdminHandler        *AdminHandler
	NotificationHandler *NotificationHandler
	FileHandler         *FileHandler
}
