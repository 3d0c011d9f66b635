package handlers

import (
	"fmt"
	"strconv"

	"jobportal_backend/internal/access"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/validator"
	"jobportal_backend/pkg/apperrors"
	"jobportal_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ============================================================================
// 1. Базовая структура обработчика
// ============================================================================

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{
		validator: v,
	}
}

// ============================================================================
// 2. DB из контекста
// ============================================================================

// GetDB извлекает *gorm.DB (пул или транзакцию) из gin.Context.
// Ключ выставляет DBMiddleware.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	dbKey := string(contextkeys.DBContextKey)

	val, ok := c.Get(dbKey)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db key not found in context", "key", dbKey)
		panic("critical error: DBMiddleware did not set the db key")
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db in context is not *gorm.DB", "key", dbKey, "type", fmt.Sprintf("%T", val))
		panic("critical error: db in context has incorrect type")
	}

	return db
}

// ============================================================================
// 3. Методы привязки и валидации
// ============================================================================

// BindAndValidate_JSON привязывает тело запроса (JSON или multipart form) и валидирует его
func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBind(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind request body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}

	return h.validate(c, obj, "Validation failed")
}

func (h *BaseHandler) BindAndValidate_Query(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindQuery(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind query params", err, "path", c.Request.URL.Path)
		apperrors.HandleValidationError(c, err)
		return false
	}

	return h.validate(c, obj, "Validation failed (query)")
}

func (h *BaseHandler) validate(c *gin.Context, obj interface{}, msg string) bool {
	ctx := c.Request.Context()

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, msg, "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// ============================================================================
// 4. Обработчики ошибок
// ============================================================================

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		if appErr.HTTPCode >= 500 {
			logger.CtxWithError(ctx, "Service error", appErr.Unwrap(), "path", c.Request.URL.Path)
		} else {
			logger.CtxWarn(ctx, "Service error",
				"error", appErr.Message,
				"details", appErr.Details,
				"path", c.Request.URL.Path,
			)
		}
		apperrors.HandleError(c, appErr)
	} else {
		logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
}

// ============================================================================
// 5. Текущий пользователь
// ============================================================================

func (h *BaseHandler) GetAndAuthorizeUserID(c *gin.Context) (string, bool) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		logger.CtxWarn(c.Request.Context(), "Unauthorized access: userID not found in context",
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, apperrors.ErrLoginRequired)
		return "", false
	}
	return userID, true
}

// Principal - вызывающий пользователь, может быть nil на публичных маршрутах
func (h *BaseHandler) Principal(c *gin.Context) access.Principal {
	return middleware.GetPrincipal(c)
}

// Гарды повторяются в обработчиках: маршруты уже закрыты middleware,
// но обработчику нужен конкретный вариант Principal.

func (h *BaseHandler) RequireSeeker(c *gin.Context) (*access.SeekerPrincipal, bool) {
	sp, err := access.RequireSeeker(h.Principal(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return nil, false
	}
	return sp, true
}

func (h *BaseHandler) RequireCompany(c *gin.Context) (*access.CompanyPrincipal, bool) {
	cp, err := access.RequireCompany(h.Principal(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return nil, false
	}
	return cp, true
}

func (h *BaseHandler) RequireApprovedCompany(c *gin.Context) (*access.CompanyPrincipal, bool) {
	cp, err := access.RequireApprovedCompany(h.Principal(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return nil, false
	}
	return cp, true
}

func (h *BaseHandler) RequireAdmin(c *gin.Context) (*access.AdminPrincipal, bool) {
	ap, err := access.RequireAdmin(h.Principal(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return nil, false
	}
	return ap, true
}

// ============================================================================
// 6. Функции парсинга
// ============================================================================

func ParseQueryInt(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100
)

func ParsePagination(c *gin.Context) (page int, pageSize int) {
	return parsePagination(c, defaultPageSize)
}

func parsePagination(c *gin.Context, fallbackSize int) (page int, pageSize int) {
	if fallbackSize <= 0 {
		fallbackSize = defaultPageSize
	}

	page = ParseQueryInt(c, "page", defaultPage)
	if page <= 0 {
		page = defaultPage
	}

	pageSize = ParseQueryInt(c, "page_size", fallbackSize)
	if pageSize <= 0 {
		pageSize = fallbackSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return page, pageSize
}
