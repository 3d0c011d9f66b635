package services

import (
	"bytes"
	"context"
	"io"

	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/storage"
	"jobportal_backend/pkg/apperrors"
)

// FileService - обёртка над хранилищем для резюме и логотипов
type FileService struct {
	store storage.Storage
}

func NewFileService(store storage.Storage) *FileService {
	return &FileService{store: store}
}

// URL - ссылка на файл; ошибка хранилища не ломает ответ
func (s *FileService) URL(ctx context.Context, key string) string {
	if s == nil || s.store == nil || key == "" {
		return ""
	}
	url, err := s.store.GetURL(ctx, key)
	if err != nil {
		logger.CtxWarn(ctx, "failed to resolve file url", "key", key, "error", err)
		return ""
	}
	return url
}

// Save кладёт файл под новым ключом <prefix>/<uuid><ext>
func (s *FileService) Save(ctx context.Context, prefix, filename, contentType string, data []byte) (string, error) {
	key := storage.NewKey(prefix, filename)
	if err := s.store.Save(ctx, key, bytes.NewReader(data), contentType); err != nil {
		return "", apperrors.InternalError(err)
	}
	return key, nil
}

// Remove удаляет файл, ошибка только логируется
func (s *FileService) Remove(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.store.Delete(ctx, key); err != nil && !apperrors.Is(err, storage.ErrNotFound) {
		logger.CtxSideEffect(ctx, "delete_file", err, "key", key)
	}
}

// Open открывает файл для отдачи клиенту
func (s *FileService) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	cleaned, err := storage.CleanKey(key)
	if err != nil {
		return nil, apperrors.ErrFileNotFound
	}
	rc, err := s.store.Get(ctx, cleaned)
	if err != nil {
		if apperrors.Is(err, storage.ErrNotFound) {
			return nil, apperrors.ErrFileNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return rc, nil
}
