package service

import (
	"smart-rw-svc/internal/apperr"
	"smart-rw-svc/internal/authz"
	"smart-rw-svc/internal/models"
	"smart-rw-svc/internal/repository"
	"smart-rw-svc/pkg/logger"
)

// NotificationService interface defines notification operations. Users only
// ever see their own notifications.
type NotificationService interface {
	List(actor authz.Actor, unreadOnly bool, page, limit int) ([]*models.Notification, int64, error)
	MarkRead(actor authz.Actor, id uint) error
	MarkAllRead(actor authz.Actor) error
	Broadcast(actor authz.Actor, rtNumber, rwNumber, title, message string) (int, error)
}

// notificationService implements NotificationService interface
type notificationService struct {
	notificationRepo repository.NotificationRepository
	residentRepo     repository.ResidentRepository
	logger           *logger.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	residentRepo repository.ResidentRepository,
	logger *logger.Logger,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		residentRepo:     residentRepo,
		logger:           logger,
	}
}

// List retrieves the actor's own notifications
func (s *notificationService) List(actor authz.Actor, unreadOnly bool, page, limit int) ([]*models.Notification, int64, error) {
	if !actor.Authenticated() {
		return nil, 0, apperr.New(apperr.KindAuthRequired, "authentication required")
	}
	return s.notificationRepo.ListByUser(actor.UserID, unreadOnly, page, limit)
}

// MarkRead marks one of the actor's notifications read
func (s *notificationService) MarkRead(actor authz.Actor, id uint) error {
	if !actor.Authenticated() {
		return apperr.New(apperr.KindAuthRequired, "authentication required")
	}
	return s.notificationRepo.MarkRead(id, actor.UserID)
}

// MarkAllRead marks all of the actor's notifications read
func (s *notificationService) MarkAllRead(actor authz.Actor) error {
	if !actor.Authenticated() {
		return apperr.New(apperr.KindAuthRequired, "authentication required")
	}
	return s.notificationRepo.MarkAllRead(actor.UserID)
}

// Broadcast sends an announcement to every resident account in a territory.
// RT broadcasts only to its own pair; RW and ADMIN choose the scope.
func (s *notificationService) Broadcast(actor authz.Actor, rtNumber, rwNumber, title, message string) (int, error) {
	if d := authz.RequireRole(actor, models.RoleRT, models.RoleRW, models.RoleAdmin); !d.Allowed {
		return 0, d.Err()
	}
	if title == "" || message == "" {
		return 0, apperr.New(apperr.KindInvalidInput, "title and message are required")
	}

	if actor.Role == models.RoleRT {
		if actor.Territory == nil {
			return 0, apperr.New(apperr.KindForbidden, "RT account has no territory assignment")
		}
		rtNumber = actor.Territory.RTNumber
		rwNumber = actor.Territory.RWNumber
	}

	userIDs, err := s.residentRepo.ListUserIDsByTerritory(rtNumber, rwNumber)
	if err != nil {
		return 0, err
	}

	notifications := make([]*models.Notification, 0, len(userIDs))
	for _, userID := range userIDs {
		notifications = append(notifications, &models.Notification{
			UserID:  userID,
			Type:    "announcement",
			Title:   title,
			Message: message,
		})
	}

	if err := s.notificationRepo.CreateBatch(notifications); err != nil {
		s.logger.WithError(err).Error("Failed to broadcast notifications")
		return 0, err
	}

	s.logger.WithFields(map[string]interface{}{
		"count": len(notifications),
		"rt":    rtNumber,
		"rw":    rwNumber,
		"by":    actor.UserID,
	}).Info("Broadcast sent")

	return len(notifications), nil
}
