package dto

import (
	"time"

	"jobportal_backend/internal/models"
)

// LoginRequest - запрос входа
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required,max=150"`
	Password string `json:"password" form:"password" validate:"required"`
}

// RefreshTokenRequest - запрос обновления токена
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest - запрос выхода
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RegisterJobSeekerRequest - регистрация соискателя
type RegisterJobSeekerRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=150"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
	FullName        string `json:"full_name" validate:"required,max=200"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,max=20"`
	Address         string `json:"address" validate:"omitempty"`
	City            string `json:"city" validate:"required,max=100"`
	// YYYY-MM-DD
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
}

// RegisterCompanyRequest - регистрация компании, профиль создаётся со статусом pending
type RegisterCompanyRequest struct {
	Username           string `json:"username" validate:"required,min=3,max=150"`
	Password           string `json:"password" validate:"required,min=6"`
	PasswordConfirm    string `json:"password_confirm" validate:"required"`
	CompanyName        string `json:"company_name" validate:"required,max=200"`
	RegistrationNumber string `json:"registration_number" validate:"required,max=100"`
	Email              string `json:"email" validate:"required,email"`
	Phone              string `json:"phone" validate:"required,max=20"`
	Address            string `json:"address" validate:"required"`
	City               string `json:"city" validate:"required,max=100"`
	State              string `json:"state" validate:"required,max=100"`
	Website            string `json:"website" validate:"omitempty,url"`
	Description        string `json:"description" validate:"required"`
}

// AuthResponse - ответ с токенами. Redirect - куда отправить пользователя после входа.
type AuthResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	Redirect     string    `json:"redirect"`
	User         UserDTO   `json:"user"`
	Message      string    `json:"message,omitempty"`
}

// UserDTO - базовая информация о пользователе
type UserDTO struct {
	ID        string          `json:"id"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
	Phone     string          `json:"phone,omitempty"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
}

// MeResponse - текущий пользователь с профилем его роли
type MeResponse struct {
	User      UserDTO           `json:"user"`
	Company   *CompanyResponse  `json:"company,omitempty"`
	JobSeeker *JobSeekerProfile `json:"job_seeker,omitempty"`
}

func NewUserDTO(u *models.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		Phone:     u.Phone,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
