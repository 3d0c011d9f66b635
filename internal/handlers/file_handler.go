package handlers

import (
	"io"
	"net/http"
	"path"
	"strings"

	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/services"
	"jobportal_backend/pkg/apperrors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

type FileHandler struct {
	*BaseHandler
	files *services.FileService
}

func NewFileHandler(base *BaseHandler, files *services.FileService) *FileHandler {
	return &FileHandler{
		BaseHandler: base,
		files:       files,
	}
}

func (h *FileHandler) RegisterRoutes(rg *gin.RouterGroup, guards *middleware.Guards) {
	files := rg.Group("/files")
	files.Use(guards.Authenticated()...)
	{
		files.GET("/*key", h.ServeFile)
	}
}

// ServeFile godoc
// @Summary Скачать файл (резюме, логотип)
// @Tags files
// @Produce octet-stream
// @Security BearerAuth
// @Param key path string true "Ключ файла в хранилище"
// @Success 200 {file} file
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /files/{key} [get]
func (h *FileHandler) ServeFile(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")

	reader, err := h.files.Open(c.Request.Context(), key)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}

	mtype := mimetype.Detect(data)
	c.Header("Content-Disposition", `inline; filename="`+path.Base(key)+`"`)
	c.Header("Cache-Control", "private, max-age=3600")
	c.Data(http.StatusOK, mtype.String(), data)
}
