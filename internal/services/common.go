package services

import (
	"context"
	"encoding/json"
	"mime/multipart"

	"jobportal_backend/internal/email"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/resume"
	"jobportal_backend/internal/workers"
	"jobportal_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ctxFrom возвращает контекст запроса, который DBMiddleware привязал к db
func ctxFrom(db *gorm.DB) context.Context {
	if db != nil && db.Statement != nil && db.Statement.Context != nil {
		return db.Statement.Context
	}
	return context.Background()
}

func newNotification(userID string, t models.NotificationType, title, message string, data map[string]interface{}) *models.Notification {
	n := &models.Notification{
		UserID:  userID,
		Type:    t,
		Title:   title,
		Message: message,
		IsRead:  false,
	}
	if data != nil {
		if raw, err := json.Marshal(data); err == nil {
			n.Data = datatypes.JSON(raw)
		}
	}
	return n
}

// outbox копит письма внутри транзакции; flush вызывается только после commit
type outbox []workers.EmailMessage

func (o *outbox) add(to, subject, template string, data map[string]interface{}) {
	if to == "" {
		return
	}
	if data == nil {
		data = map[string]interface{}{}
	}
	data["SiteName"] = email.SiteName
	*o = append(*o, workers.EmailMessage{
		To:       []string{to},
		Subject:  subject,
		Template: template,
		Data:     data,
	})
}

func (o outbox) flush(ctx context.Context, d workers.Dispatcher) {
	if d == nil {
		return
	}
	for _, msg := range o {
		d.Dispatch(ctx, msg)
	}
}

// uploadedFile - прочитанный и проверенный файл из multipart-формы
type uploadedFile struct {
	Name string
	MIME string
	Data []byte
}

// readUpload читает файл с ограничением размера и проверяет тип по содержимому
func readUpload(fh *multipart.FileHeader, maxSize int64, allowed ...string) (*uploadedFile, error) {
	if fh.Size > maxSize {
		return nil, apperrors.ErrFileTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer f.Close()

	data, err := resume.ReadLimited(f, maxSize)
	if err != nil {
		if apperrors.Is(err, resume.ErrTooLarge) {
			return nil, apperrors.ErrFileTooLarge
		}
		return nil, apperrors.InternalError(err)
	}

	mime, err := resume.Detect(data, fh.Filename, allowed...)
	if err != nil {
		return nil, apperrors.ErrInvalidFileType
	}
	return &uploadedFile{Name: fh.Filename, MIME: mime, Data: data}, nil
}
