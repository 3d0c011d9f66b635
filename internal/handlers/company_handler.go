package handlers

import (
	"net/http"

	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// CompanyHandler - кабинет компании: профиль, вакансии и отклики
type CompanyHandler struct {
	*BaseHandler
	companyService     services.CompanyService
	jobService         services.JobService
	applicationService services.ApplicationService
}

func NewCompanyHandler(
	base *BaseHandler,
	companyService services.CompanyService,
	jobService services.JobService,
	applicationService services.ApplicationService,
) *CompanyHandler {
	return &CompanyHandler{
		BaseHandler:        base,
		companyService:     companyService,
		jobService:         jobService,
		applicationService: applicationService,
	}
}

func (h *CompanyHandler) RegisterRoutes(rg *gin.RouterGroup, guards *middleware.Guards) {
	// Профиль и дашборд доступны и до одобрения
	profile := rg.Group("/company")
	profile.Use(guards.Role(models.UserRoleCompany)...)
	{
		profile.GET("/dashboard", h.Dashboard)
		profile.GET("/profile", h.GetProfile)
		profile.PUT("/profile", h.UpdateProfile)
		profile.POST("/profile/logo", h.UploadLogo)
	}

	approved := rg.Group("/company")
	approved.Use(guards.ApprovedCompany()...)
	{
		approved.GET("/jobs", h.ListJobs)
		approved.POST("/jobs", h.CreateJob)
		approved.GET("/jobs/:jobId", h.GetJob)
		approved.PUT("/jobs/:jobId", h.UpdateJob)
		approved.DELETE("/jobs/:jobId", h.DeleteJob)

		approved.GET("/applications", h.ListApplications)
		approved.GET("/applications/:applicationId", h.GetApplication)
		approved.PUT("/applications/:applicationId/status", h.UpdateApplicationStatus)
	}
}

// ============================================================================
// Профиль
// ============================================================================

// Dashboard godoc
// @Summary Дашборд компании
// @Description Доступен компании в любом статусе, is_approved показывает статус одобрения
// @Tags company
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CompanyDashboardResponse
// @Router /company/dashboard [get]
func (h *CompanyHandler) Dashboard(c *gin.Context) {
	cp, ok := h.RequireCompany(c)
	if !ok {
		return
	}

	response, err := h.companyService.Dashboard(h.GetDB(c), cp.Company)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *CompanyHandler) GetProfile(c *gin.Context) {
	cp, ok := h.RequireCompany(c)
	if !ok {
		return
	}

	response, err := h.companyService.GetProfile(h.GetDB(c), cp.Company)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *CompanyHandler) UpdateProfile(c *gin.Context) {
	cp, ok := h.RequireCompany(c)
	if !ok {
		return
	}

	var req dto.UpdateCompanyProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.companyService.UpdateProfile(h.GetDB(c), cp.Company, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// UploadLogo godoc
// @Summary Загрузить логотип
// @Tags company
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param logo formData file true "PNG, JPEG, GIF или WebP"
// @Success 200 {object} dto.CompanyResponse
// @Failure 413 {object} apperrors.ErrorResponse
// @Failure 415 {object} apperrors.ErrorResponse
// @Router /company/profile/logo [post]
func (h *CompanyHandler) UploadLogo(c *gin.Context) {
	cp, ok := h.RequireCompany(c)
	if !ok {
		return
	}

	fh, err := requiredFormFile(c, "logo")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	response, err := h.companyService.UploadLogo(h.GetDB(c), cp.Company, fh)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ============================================================================
// Вакансии
// ============================================================================

func (h *CompanyHandler) ListJobs(c *gin.Context) {
	cp, ok := h.RequireApprovedCompany(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.ListOwn(h.GetDB(c), cp.Company.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// CreateJob godoc
// @Summary Создать вакансию
// @Tags company
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.JobRequest true "Вакансия"
// @Success 201 {object} dto.JobResponse
// @Failure 403 {object} apperrors.ErrorResponse "Компания не одобрена"
// @Failure 422 {object} apperrors.ErrorResponse
// @Router /company/jobs [post]
func (h *CompanyHandler) CreateJob(c *gin.Context) {
	cp, ok := h.RequireApprovedCompany(c)
	if !ok {
		return
	}

	var req dto.JobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.jobService.Create(h.GetDB(c), cp.Company.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *CompanyHandler) GetJob(c *gin.Context) {
	cp, ok := h.RequireApprovedCompany(c)
	if !ok {
		return
	}

	response, err := h.jobService.GetOwn(h.GetDB(c), cp.Company.ID, c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *CompanyHandler) UpdateJob(c *gin.Context) {
	cp, ok := h.RequireApprovedCompany(c)
	if !ok {
		return
	}

	var req dto.JobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.jobService.Update(h.GetDB(c), cp.Company.ID, c.Param("jobId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *CompanyHandler) DeleteJob(c *gin.Context) {
	cp, ok := h.RequireApprovedCompany(c)
	if !ok {
		return
	}

	if err := h.jobService.Delete(h.GetDB(c), cp.Company.ID, c.Param("jobId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Job deleted successfully."})
}

// ============================================================================
// Отклики
// ============================================================================

func (h *CompanyHandler) ListApplications(c *gin.Context) {
	cp, ok := h.RequireApprovedCompany(c)
	if !ok {
		return
	}

	var req dto.ApplicationListRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}
	page, pageSize := ParsePagination(c)

	response, err := h.applicationService.ListForCompany(h.GetDB(c), cp.Company.ID, &req, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *CompanyHandler) GetApplication(c *gin.Context) {
	cp, ok := h.RequireApprovedCompany(c)
	if !ok {
		return
	}

	response, err := h.applicationService.GetForCompany(h.GetDB(c), cp.Company.ID, c.Param("applicationId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// UpdateApplicationStatus godoc
// @Summary Изменить статус отклика
// @Description Допускается любое значение перечисления. Соискатель получает уведомление и письмо.
// @Tags company
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param applicationId path string true "ID отклика"
// @Param request body dto.UpdateApplicationStatusRequest true "Новый статус"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /company/applications/{applicationId}/status [put]
func (h *CompanyHandler) UpdateApplicationStatus(c *gin.Context) {
	cp, ok := h.RequireApprovedCompany(c)
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.applicationService.UpdateStatus(h.GetDB(c), cp.Company.ID, c.Param("applicationId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
