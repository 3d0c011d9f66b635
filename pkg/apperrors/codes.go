package apperrors

// ErrorCode - тип для кодов ошибок
type ErrorCode string

// Общие, не-доменные коды ошибок
const (
	// Системные и неизвестные ошибки
	CodeInternalError ErrorCode = "INTERNAL_ERROR"

	// Общие ошибки бизнес-логики (используются фабриками)
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeLimitExceeded    ErrorCode = "LIMIT_EXCEEDED"
	CodeInvalidStatus    ErrorCode = "INVALID_STATUS"

	// Аутентификация и Авторизация (они сквозные)
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"

	// Гарды компании
	CodeApprovalPending ErrorCode = "APPROVAL_PENDING"
	CodeProfileMissing  ErrorCode = "PROFILE_MISSING"
	CodeDuplicate       ErrorCode = "DUPLICATE"
)

// Цели редиректа, которые клиент получает вместе с ошибкой гарда
const (
	RedirectLogin            = "login"
	RedirectHome             = "home"
	RedirectCompanyDashboard = "company_dashboard"
	RedirectAdminDashboard   = "admin_dashboard"
)
