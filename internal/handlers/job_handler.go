package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// JobHandler - публичные вакансии, отклик и закладки
type JobHandler struct {
	*BaseHandler
	jobService         services.JobService
	applicationService services.ApplicationService
	savedJobService    services.SavedJobService
	pageSize           int
}

func NewJobHandler(
	base *BaseHandler,
	jobService services.JobService,
	applicationService services.ApplicationService,
	savedJobService services.SavedJobService,
	pageSize int,
) *JobHandler {
	return &JobHandler{
		BaseHandler:        base,
		jobService:         jobService,
		applicationService: applicationService,
		savedJobService:    savedJobService,
		pageSize:           pageSize,
	}
}

func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup, guards *middleware.Guards) {
	public := rg.Group("/jobs")
	public.Use(guards.Public()...)
	{
		public.GET("", h.ListJobs)
		public.GET("/featured", h.FeaturedJobs)
		public.GET("/:jobId", h.GetJob)
	}

	seeker := rg.Group("/jobs")
	seeker.Use(guards.Role(models.UserRoleJobSeeker)...)
	{
		seeker.POST("/:jobId/apply", h.Apply)
	}

	authed := rg.Group("/jobs")
	authed.Use(guards.Authenticated()...)
	{
		authed.POST("/:jobId/save", h.ToggleSave)
	}
}

// ListJobs godoc
// @Summary Публичный поиск вакансий
// @Description Только активные вакансии одобренных компаний. Для соискателя заполнены has_applied и is_saved.
// @Tags jobs
// @Produce json
// @Param q query string false "Ключевое слово"
// @Param location query string false "Город или регион"
// @Param job_type query string false "Тип занятости"
// @Param experience query string false "Уровень опыта"
// @Param category query string false "Категория"
// @Param sort query string false "-posted_date | posted_date | -salary_max | salary_min | title | -views_count | deadline"
// @Param page query int false "Страница"
// @Param page_size query int false "Размер страницы"
// @Success 200 {object} dto.JobListResponse
// @Router /jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	var req dto.JobSearchRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}
	page, pageSize := parsePagination(c, h.pageSize)

	response, err := h.jobService.ListPublic(h.GetDB(c), h.Principal(c), &req, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *JobHandler) FeaturedJobs(c *gin.Context) {
	jobs, err := h.jobService.Featured(h.GetDB(c), h.Principal(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// GetJob godoc
// @Summary Вакансия
// @Description Каждый запрос увеличивает счётчик просмотров
// @Tags jobs
// @Produce json
// @Param jobId path string true "ID вакансии"
// @Success 200 {object} dto.JobResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /jobs/{jobId} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	response, err := h.jobService.GetPublic(h.GetDB(c), h.Principal(c), c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Apply godoc
// @Summary Откликнуться на вакансию
// @Description multipart/form-data: cover_letter (не менее 100 символов) и необязательный PDF resume.
// @Description Без файла используется резюме из профиля.
// @Tags jobs
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param jobId path string true "ID вакансии"
// @Param cover_letter formData string true "Сопроводительное письмо"
// @Param resume formData file false "Резюме (PDF)"
// @Success 201 {object} dto.ApplicationResponse
// @Failure 409 {object} apperrors.ErrorResponse "Повторный отклик"
// @Failure 422 {object} apperrors.ErrorResponse
// @Router /jobs/{jobId}/apply [post]
func (h *JobHandler) Apply(c *gin.Context) {
	seeker, ok := h.RequireSeeker(c)
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resumeFile, err := optionalFormFile(c, "resume")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	response, err := h.applicationService.Apply(h.GetDB(c), seeker, c.Param("jobId"), &req, resumeFile)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ToggleSave godoc
// @Summary Добавить или убрать вакансию из закладок
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param jobId path string true "ID вакансии"
// @Success 200 {object} dto.ToggleSavedResponse
// @Router /jobs/{jobId}/save [post]
func (h *JobHandler) ToggleSave(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	response, err := h.savedJobService.Toggle(h.GetDB(c), userID, c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// optionalFormFile - файл из multipart-формы или nil, если его нет
func optionalFormFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(field)
	if err == nil {
		return fh, nil
	}
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	return nil, apperrors.NewBadRequestError("Invalid multipart form: " + err.Error())
}

// requiredFormFile - файл обязателен
func requiredFormFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	fh, err := optionalFormFile(c, field)
	if err != nil {
		return nil, err
	}
	if fh == nil {
		return nil, apperrors.NewBadRequestError("File field '" + field + "' is required")
	}
	return fh, nil
}
