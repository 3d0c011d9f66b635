package handlers

import (
	"net/http"

	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	adminService services.AdminService
	jobService   services.JobService
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService, jobService services.JobService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  base,
		adminService: adminService,
		jobService:   jobService,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup, guards *middleware.Guards) {
	admin := rg.Group("/admin")
	admin.Use(guards.Role(models.UserRoleAdmin)...)
	{
		admin.GET("/dashboard", h.Dashboard)

		admin.GET("/companies", h.ListCompanies)
		admin.GET("/companies/:companyId", h.GetCompany)
		admin.POST("/companies/:companyId/approve", h.ApproveCompany)
		admin.POST("/companies/:companyId/reject", h.RejectCompany)

		admin.PUT("/users/:userId/active", h.SetUserActive)

		admin.GET("/jobs", h.ListJobs)
		admin.POST("/jobs/close-expired", h.CloseExpiredJobs)
	}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	response, err := h.adminService.Dashboard(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// ListCompanies godoc
// @Summary Список компаний
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending | approved | rejected"
// @Param q query string false "Поиск по названию, номеру, email"
// @Param page query int false "Страница"
// @Param page_size query int false "Размер страницы"
// @Success 200 {object} dto.CompanyListResponse
// @Router /admin/companies [get]
func (h *AdminHandler) ListCompanies(c *gin.Context) {
	var req dto.CompanyListRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}
	page, pageSize := ParsePagination(c)

	response, err := h.adminService.ListCompanies(h.GetDB(c), &req, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *AdminHandler) GetCompany(c *gin.Context) {
	response, err := h.adminService.GetCompany(h.GetDB(c), c.Param("companyId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// ApproveCompany godoc
// @Summary Одобрить компанию
// @Description Компания получает уведомление и письмо. Повторное одобрение допускается.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param companyId path string true "ID компании"
// @Success 200 {object} dto.CompanyResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /admin/companies/{companyId}/approve [post]
func (h *AdminHandler) ApproveCompany(c *gin.Context) {
	response, err := h.adminService.ApproveCompany(h.GetDB(c), c.Param("companyId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// RejectCompany godoc
// @Summary Отклонить компанию
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param companyId path string true "ID компании"
// @Param request body dto.RejectCompanyRequest false "Причина"
// @Success 200 {object} dto.CompanyResponse
// @Router /admin/companies/{companyId}/reject [post]
func (h *AdminHandler) RejectCompany(c *gin.Context) {
	var req dto.RejectCompanyRequest
	// Тело необязательно: без поля reason подставляется стандартная причина
	if c.Request.ContentLength > 0 && !h.BindAndValidate_JSON(c, &req) {
		return
	}
	reason := models.DefaultRejectionReason
	if req.Reason != nil {
		reason = *req.Reason
	}

	response, err := h.adminService.RejectCompany(h.GetDB(c), c.Param("companyId"), reason)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *AdminHandler) SetUserActive(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SetUserActiveRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.adminService.SetUserActive(h.GetDB(c), adminID, c.Param("userId"), *req.IsActive)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *AdminHandler) ListJobs(c *gin.Context) {
	var req dto.AdminJobListRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}
	page, pageSize := ParsePagination(c)

	response, err := h.jobService.AdminList(h.GetDB(c), &req, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *AdminHandler) CloseExpiredJobs(c *gin.Context) {
	closed, err := h.adminService.CloseExpiredJobs(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CloseExpiredResponse{Closed: closed})
}
