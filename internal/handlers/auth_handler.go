package handlers

import (
	"net/http"

	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

// RegisterRoutes регистрирует все маршруты для аутентификации
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, guards *middleware.Guards) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register/jobseeker", append(guards.Throttled("register"), h.RegisterJobSeeker)...)
		auth.POST("/register/company", append(guards.Throttled("register"), h.RegisterCompany)...)
		auth.POST("/login", append(guards.Throttled("login"), h.Login)...)
		auth.POST("/refresh", h.RefreshToken)
		auth.POST("/logout", h.Logout)
	}

	me := rg.Group("/auth")
	me.Use(guards.Authenticated()...)
	{
		me.GET("/me", h.Me)
	}
}

// RegisterJobSeeker godoc
// @Summary Регистрация соискателя
// @Description Создаёт пользователя с ролью jobseeker и его профиль, возвращает пару токенов
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterJobSeekerRequest true "Данные соискателя"
// @Success 201 {object} dto.AuthResponse
// @Failure 409 {object} apperrors.ErrorResponse "Имя пользователя занято"
// @Failure 422 {object} apperrors.ErrorResponse "Ошибка валидации"
// @Router /auth/register/jobseeker [post]
func (h *AuthHandler) RegisterJobSeeker(c *gin.Context) {
	var req dto.RegisterJobSeekerRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.authService.RegisterJobSeeker(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// RegisterCompany godoc
// @Summary Регистрация компании
// @Description Компания создаётся в статусе pending и ждёт одобрения администратора
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterCompanyRequest true "Данные компании"
// @Success 201 {object} dto.AuthResponse
// @Failure 409 {object} apperrors.ErrorResponse "Регистрационный номер или имя пользователя заняты"
// @Failure 422 {object} apperrors.ErrorResponse "Ошибка валидации"
// @Router /auth/register/company [post]
func (h *AuthHandler) RegisterCompany(c *gin.Context) {
	var req dto.RegisterCompanyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.authService.RegisterCompany(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Login godoc
// @Summary Вход
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Логин и пароль"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} apperrors.ErrorResponse "Неверные учётные данные"
// @Failure 429 {object} apperrors.ErrorResponse "Слишком много попыток"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.authService.Login(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// RefreshToken godoc
// @Summary Обновить токены
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.authService.Refresh(h.GetDB(c), req.RefreshToken)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.Logout(h.GetDB(c), req.RefreshToken); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "You have been logged out."})
}

// Me godoc
// @Summary Текущий пользователь
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MeResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	response, err := h.authService.Me(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
