package repositories

import (
	"errors"
	"time"

	"jobportal_backend/internal/models"

	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationCriteria - фильтры списка уведомлений пользователя
type NotificationCriteria struct {
	UnreadOnly bool
	Type       models.NotificationType
	Page
}

type NotificationRepository interface {
	Create(db *gorm.DB, notification *models.Notification) error
	FindUserNotifications(db *gorm.DB, userID string, criteria NotificationCriteria) ([]models.Notification, int64, error)
	GetUnreadCount(db *gorm.DB, userID string) (int64, error)
	// MarkAsRead отмечает уведомление прочитанным, только если оно принадлежит пользователю
	MarkAsRead(db *gorm.DB, userID, id string) error
	MarkAllAsRead(db *gorm.DB, userID string) (int64, error)
	ExistsForUser(db *gorm.DB, userID string, notificationType models.NotificationType) (bool, error)
}

type notificationRepository struct{}

func NewNotificationRepository() NotificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Create(db *gorm.DB, notification *models.Notification) error {
	return db.Create(notification).Error
}

func (r *notificationRepository) FindUserNotifications(db *gorm.DB, userID string, criteria NotificationCriteria) ([]models.Notification, int64, error) {
	query := db.Model(&models.Notification{}).Where("user_id = ?", userID)
	if criteria.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if criteria.Type != "" {
		query = query.Where("type = ?", criteria.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []models.Notification
	err := query.Order("created_at DESC").Scopes(paginate(criteria.Page)).Find(&notifications).Error
	return notifications, total, err
}

func (r *notificationRepository) GetUnreadCount(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkAsRead(db *gorm.DB, userID, id string) error {
	var notification models.Notification
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	if notification.IsRead {
		return nil
	}
	now := time.Now()
	return db.Model(&notification).Updates(map[string]interface{}{"is_read": true, "read_at": now}).Error
}

func (r *notificationRepository) MarkAllAsRead(db *gorm.DB, userID string) (int64, error) {
	result := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": time.Now()})
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) ExistsForUser(db *gorm.DB, userID string, notificationType models.NotificationType) (bool, error) {
	var count int64
	err := db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", userID, notificationType).
		Count(&count).Error
	return count > 0, err
}
