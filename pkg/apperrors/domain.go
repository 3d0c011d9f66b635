package apperrors

import (
	"net/http"
)

/*
Этот файл содержит фабрики и предопределенные переменные
для общих ошибок бизнес-логики и домена.
*/

// =========================================================================
// Фабричные ФУНКЦИИ (Используются для оборачивания ошибок, напр. из репозитория)
// =========================================================================

// ErrInvalidStatus - фабрика для невалидных статусов (400)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// FieldError - ошибка валидации одного поля, в формате validator.ValidationError
func FieldError(field, message string) *AppError {
	return ValidationError(map[string]string{field: message})
}

// =========================================================================
// Гарды доступа
// =========================================================================

// ErrLoginRequired - запрос без аутентифицированного пользователя
var ErrLoginRequired = New(
	CodeUnauthorized,
	"auth",
	"Please login to access this page",
	http.StatusUnauthorized,
).WithRedirect(RedirectLogin)

// ErrWrongRole - роль пользователя не подходит для операции
var ErrWrongRole = New(
	CodeForbidden,
	"auth",
	"You do not have permission to access this page",
	http.StatusForbidden,
).WithRedirect(RedirectHome)

// ErrApprovalPending - компания ещё не одобрена администратором
var ErrApprovalPending = New(
	CodeApprovalPending,
	"company",
	"Your company registration is pending approval",
	http.StatusForbidden,
).WithRedirect(RedirectCompanyDashboard)

// ErrProfileMissing - у пользователя нет профиля для его роли
var ErrProfileMissing = New(
	CodeProfileMissing,
	"profile",
	"Profile not found",
	http.StatusForbidden,
).WithRedirect(RedirectHome)

// =========================================================================
// Auth & Users
// =========================================================================

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid username or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrUserInactive = New(
	CodeForbidden,
	"auth",
	"Your account has been deactivated",
	http.StatusForbidden,
)

var ErrUsernameTaken = New(
	CodeAlreadyExists,
	"auth",
	"Username already taken",
	http.StatusConflict,
)

var ErrPasswordMismatch = New(
	CodeValidationFailed,
	"validation",
	"Passwords do not match",
	http.StatusBadRequest,
).WithDetails(map[string]string{"password_confirm": "passwords do not match"})

var ErrUserNotFound = New(
	CodeNotFound,
	"user",
	"User not found",
	http.StatusNotFound,
)

var ErrCannotModifySelf = New(
	CodeForbidden,
	"business_logic",
	"Operation on self is not allowed",
	http.StatusForbidden,
)

// =========================================================================
// Companies
// =========================================================================

var ErrCompanyNotFound = New(
	CodeNotFound,
	"company",
	"Company not found",
	http.StatusNotFound,
)

var ErrDuplicateRegistration = New(
	CodeAlreadyExists,
	"company",
	"A company with this registration number already exists",
	http.StatusConflict,
).WithDetails(map[string]string{"registration_number": "already registered"})

// =========================================================================
// Jobs
// =========================================================================

var ErrJobNotFound = New(
	CodeNotFound,
	"job",
	"Job not found",
	http.StatusNotFound,
)

var ErrSalaryRange = New(
	CodeValidationFailed,
	"validation",
	"Maximum salary cannot be less than minimum salary",
	http.StatusBadRequest,
).WithDetails(map[string]string{"salary_max": "must be greater than or equal to salary_min"})

// =========================================================================
// Applications
// =========================================================================

var ErrApplicationNotFound = New(
	CodeNotFound,
	"application",
	"Application not found",
	http.StatusNotFound,
)

var ErrDuplicateApplication = New(
	CodeDuplicate,
	"application",
	"You have already applied for this job",
	http.StatusConflict,
)

var ErrCoverLetterTooShort = New(
	CodeValidationFailed,
	"validation",
	"Cover letter must be at least 100 characters",
	http.StatusBadRequest,
).WithDetails(map[string]string{"cover_letter": "must be at least 100 characters"})

var ErrResumeRequired = New(
	CodeValidationFailed,
	"validation",
	"A resume is required to apply",
	http.StatusBadRequest,
).WithDetails(map[string]string{"resume": "required"})

// =========================================================================
// Notifications
// =========================================================================

var ErrNotificationNotFound = New(
	CodeNotFound,
	"notification",
	"Notification not found",
	http.StatusNotFound,
)

// =========================================================================
// Uploads & Files
// =========================================================================

// ErrFileTooLarge - файл превышает максимальный размер
var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

// ErrInvalidFileType - тип файла не разрешен
var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)

var ErrFileNotFound = New(
	CodeNotFound,
	"file",
	"File not found",
	http.StatusNotFound,
)

// ErrTooManyRequests - превышен лимит попыток для одного клиента
var ErrTooManyRequests = New(
	CodeLimitExceeded,
	"auth",
	"Too many attempts, please try again later",
	http.StatusTooManyRequests,
)
