package services

import (
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type NotificationService interface {
	GetUserNotifications(db *gorm.DB, userID string, req *dto.NotificationListRequest, page, pageSize int) (*dto.NotificationListResponse, error)
	GetUnreadCount(db *gorm.DB, userID string) (int64, error)
	MarkAsRead(db *gorm.DB, userID, notificationID string) error
	MarkAllAsRead(db *gorm.DB, userID string) (int64, error)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) GetUserNotifications(db *gorm.DB, userID string, req *dto.NotificationListRequest, page, pageSize int) (*dto.NotificationListResponse, error) {
	criteria := repositories.NotificationCriteria{
		UnreadOnly: req.UnreadOnly,
		Type:       models.NotificationType(req.Type),
		Page:       repositories.Page{Page: page, PageSize: pageSize},
	}

	notifications, total, err := s.notificationRepo.FindUserNotifications(db, userID, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	unread, err := s.notificationRepo.GetUnreadCount(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.NotificationListResponse{
		Notifications: make([]dto.NotificationResponse, 0, len(notifications)),
		UnreadCount:   unread,
		PageMeta:      dto.NewPageMeta(total, page, pageSize),
	}
	for i := range notifications {
		resp.Notifications = append(resp.Notifications, dto.NewNotificationResponse(&notifications[i]))
	}
	return resp, nil
}

func (s *notificationService) GetUnreadCount(db *gorm.DB, userID string) (int64, error) {
	count, err := s.notificationRepo.GetUnreadCount(db, userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

// MarkAsRead - чужое уведомление выглядит как несуществующее
func (s *notificationService) MarkAsRead(db *gorm.DB, userID, notificationID string) error {
	if err := s.notificationRepo.MarkAsRead(db, userID, notificationID); err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(db *gorm.DB, userID string) (int64, error) {
	n, err := s.notificationRepo.MarkAllAsRead(db, userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return n, nil
}
