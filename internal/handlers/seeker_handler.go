package handlers

import (
	"net/http"

	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// SeekerHandler - кабинет соискателя
type SeekerHandler struct {
	*BaseHandler
	seekerService      services.SeekerService
	applicationService services.ApplicationService
	savedJobService    services.SavedJobService
}

func NewSeekerHandler(
	base *BaseHandler,
	seekerService services.SeekerService,
	applicationService services.ApplicationService,
	savedJobService services.SavedJobService,
) *SeekerHandler {
	return &SeekerHandler{
		BaseHandler:        base,
		seekerService:      seekerService,
		applicationService: applicationService,
		savedJobService:    savedJobService,
	}
}

func (h *SeekerHandler) RegisterRoutes(rg *gin.RouterGroup, guards *middleware.Guards) {
	seeker := rg.Group("/seeker")
	seeker.Use(guards.Role(models.UserRoleJobSeeker)...)
	{
		seeker.GET("/profile", h.GetProfile)
		seeker.PUT("/profile", h.UpdateProfile)
		seeker.POST("/profile/resume", h.UploadResume)
		seeker.GET("/applications", h.MyApplications)
		seeker.GET("/saved-jobs", h.SavedJobs)
	}
}

func (h *SeekerHandler) GetProfile(c *gin.Context) {
	sp, ok := h.RequireSeeker(c)
	if !ok {
		return
	}

	response, err := h.seekerService.GetProfile(h.GetDB(c), sp.Seeker)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *SeekerHandler) UpdateProfile(c *gin.Context) {
	sp, ok := h.RequireSeeker(c)
	if !ok {
		return
	}

	var req dto.UpdateJobSeekerProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.seekerService.UpdateProfile(h.GetDB(c), sp.Seeker, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// UploadResume godoc
// @Summary Загрузить резюме в профиль
// @Tags seeker
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param resume formData file true "PDF или DOCX"
// @Success 200 {object} dto.JobSeekerProfile
// @Failure 413 {object} apperrors.ErrorResponse "Файл слишком большой"
// @Failure 415 {object} apperrors.ErrorResponse "Недопустимый тип файла"
// @Router /seeker/profile/resume [post]
func (h *SeekerHandler) UploadResume(c *gin.Context) {
	sp, ok := h.RequireSeeker(c)
	if !ok {
		return
	}

	fh, err := requiredFormFile(c, "resume")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	response, err := h.seekerService.UploadResume(h.GetDB(c), sp.Seeker, fh)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *SeekerHandler) MyApplications(c *gin.Context) {
	sp, ok := h.RequireSeeker(c)
	if !ok {
		return
	}

	applications, err := h.applicationService.MyApplications(h.GetDB(c), sp.Seeker.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": applications})
}

func (h *SeekerHandler) SavedJobs(c *gin.Context) {
	sp, ok := h.RequireSeeker(c)
	if !ok {
		return
	}

	saved, err := h.savedJobService.List(h.GetDB(c), sp.User.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved_jobs": saved})
}
